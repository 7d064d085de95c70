package subtitles

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eigotube/immersion-api/api/types"
)

// GetLanguages lists discovered caption languages for a video
// @Summary      List caption languages
// @Description  Run language discovery for a video and return every confirmed caption language.
// @Description  Discovery is probe-based and deliberately incomplete; an empty list means no
// @Description  captions could be confirmed, not that none exist.
// @Tags         subtitles
// @Produce      json
// @Param        videoId path string true "Video ID"
// @Success      200 {object} map[string]interface{} "Confirmed languages"
// @Failure      410 {object} types.ErrorResponse "Video unavailable"
// @Router       /api/v1/subtitles/{videoId}/languages [get]
func GetLanguages(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "videoId")
		if !ok {
			return
		}

		languages, err := deps.Prober.DiscoverLanguages(c.Request.Context(), videoID)
		if err != nil {
			log.Printf("[ERROR] Failed to discover languages for %s: %v", videoID, err)
			types.RespondError(c, err, "Failed to discover languages")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":             types.StatusOK,
			"videoId":            videoID,
			"availableLanguages": languages,
			"count":              len(languages),
		})
	}
}
