package speech

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eigotube/immersion-api/api/types"
	speechsvc "github.com/eigotube/immersion-api/internal/services/speech"
)

// GetProviders lists recognition providers and their readiness
// @Summary      List speech providers
// @Description  Report the recognition cascade order and which providers hold credentials, so the
// @Description  client knows whether server-side transcription is worth offering.
// @Tags         speech
// @Produce      json
// @Success      200 {object} types.ProvidersResponse "Provider capability listing"
// @Router       /api/v1/speech/providers [get]
func GetProviders(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, types.ProvidersResponse{
			BaseResponse:     types.BaseResponse{Status: types.StatusOK, Message: "Speech providers"},
			Providers:        deps.Transcriber.Providers(),
			Available:        deps.Transcriber.Available(),
			SupportedFormats: speechsvc.SupportedFormats(),
			MaxFileSize:      speechsvc.MaxAudioBytes,
		})
	}
}
