package subtitles

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eigotube/immersion-api/api/types"
)

// Get resolves subtitles for a video
// @Summary      Resolve subtitles
// @Description  Build the dual-language subtitle bundle for a video: native English and Japanese
// @Description  tracks where available, machine translation of the English track when Japanese is
// @Description  missing, and per-language error detail when a track cannot be produced.
// @Description  Pass ?lang= to fetch a single language's cues instead of the full bundle.
// @Tags         subtitles
// @Produce      json
// @Param        videoId path string true "Video ID" example(dQw4w9WgXcQ)
// @Param        lang query string false "Single language tag (e.g. en, ja)"
// @Success      200 {object} subtitles.Bundle "Dual-language bundle (without ?lang)"
// @Success      200 {object} types.CuesResponse "Single-language cues (with ?lang)"
// @Failure      410 {object} types.ErrorResponse "Video unavailable"
// @Failure      504 {object} types.ErrorResponse "Upstream fetch timed out"
// @Router       /api/v1/subtitles/{videoId} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "videoId")
		if !ok {
			return
		}

		if lang := c.Query("lang"); lang != "" {
			cues, err := deps.SubtitleService.ResolveLanguage(c.Request.Context(), videoID, lang)
			if err != nil {
				log.Printf("[ERROR] Failed to resolve %s subtitles for %s: %v", lang, videoID, err)
				types.RespondError(c, err, "Failed to resolve subtitles")
				return
			}
			c.JSON(http.StatusOK, types.CuesResponse{
				BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Subtitles resolved"},
				VideoID:      videoID,
				Language:     lang,
				Cues:         cues,
				Count:        len(cues),
				HasSubtitles: len(cues) > 0,
			})
			return
		}

		bundle, err := deps.SubtitleService.Resolve(c.Request.Context(), videoID)
		if err != nil {
			log.Printf("[ERROR] Failed to resolve subtitles for %s: %v", videoID, err)
			types.RespondError(c, err, "Failed to resolve subtitles")
			return
		}

		c.JSON(http.StatusOK, bundle)
	}
}
