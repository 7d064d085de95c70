package subtitles

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eigotube/immersion-api/api/types"
)

// Delete invalidates cached subtitles for a video
// @Summary      Invalidate cached subtitles
// @Description  Drop cached artifacts for a video. With ?lang= only that language's cue sequence
// @Description  is removed; without it every cue sequence and the discovered availability list are
// @Description  cleared and the next resolution starts from scratch.
// @Tags         subtitles
// @Produce      json
// @Param        videoId path string true "Video ID"
// @Param        lang query string false "Single language tag to invalidate (e.g. en, ja)"
// @Success      200 {object} types.BaseResponse "Cache cleared"
// @Router       /api/v1/subtitles/{videoId} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := types.RequireParam(c, "videoId")
		if !ok {
			return
		}
		lang := c.Query("lang")

		if err := deps.SubtitleService.Invalidate(c.Request.Context(), videoID, lang); err != nil {
			log.Printf("[ERROR] Failed to invalidate subtitles for %s: %v", videoID, err)
			types.RespondError(c, err, "Failed to invalidate subtitles")
			return
		}

		message := "Cached subtitles invalidated"
		if lang != "" {
			message = "Cached " + lang + " subtitles invalidated"
		}
		c.JSON(http.StatusOK, types.BaseResponse{
			Status:  types.StatusOK,
			Message: message,
		})
	}
}
