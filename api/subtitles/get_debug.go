package subtitles

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eigotube/immersion-api/api/types"
	"github.com/eigotube/immersion-api/pkg/subtitle"
)

const debugSampleSize = 3

// GetDebug resolves a video and returns a trimmed view of the outcome
// @Summary      Debug subtitle resolution
// @Description  Run a full resolution and return the available languages, the first few cues of
// @Description  each track, and the per-language error reasons. Meant for diagnosing why a video
// @Description  shows no subtitles without shipping the full cue payload.
// @Tags         subtitles
// @Produce      json
// @Param        videoId path string true "Video ID"
// @Success      200 {object} map[string]interface{} "Resolution summary"
// @Failure      410 {object} types.ErrorResponse "Video unavailable"
// @Router       /api/v1/subtitles/{videoId}/debug [get]
func GetDebug(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "videoId")
		if !ok {
			return
		}

		bundle, err := deps.SubtitleService.Resolve(c.Request.Context(), videoID)
		if err != nil {
			log.Printf("[ERROR] Debug resolution failed for %s: %v", videoID, err)
			types.RespondError(c, err, "Failed to resolve subtitles")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":                types.StatusOK,
			"videoId":               bundle.VideoID,
			"availableLanguages":    bundle.AvailableLanguages,
			"englishCount":          len(bundle.English),
			"japaneseCount":         len(bundle.Japanese),
			"englishSample":         sampleCues(bundle.English),
			"japaneseSample":        sampleCues(bundle.Japanese),
			"errors":                bundle.Errors,
			"speechToTextAvailable": bundle.SpeechToTextAvailable,
			"suggestions":           bundle.Suggestions,
		})
	}
}

func sampleCues(cues []subtitle.Cue) []subtitle.Cue {
	if len(cues) <= debugSampleSize {
		return cues
	}
	return cues[:debugSampleSize]
}
