package translate

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eigotube/immersion-api/api/types"
	apperrors "github.com/eigotube/immersion-api/pkg/errors"
)

// Post translates a piece of text
// @Summary      Translate text
// @Description  Run text through the translation cascade: the first provider that returns a
// @Description  usable translation wins, falling back through secondary providers down to the
// @Description  offline glossary. The response names the provider that produced the result.
// @Tags         translate
// @Accept       json
// @Produce      json
// @Param        request body types.TranslateRequest true "Text and language pair"
// @Success      200 {object} types.TranslationResponse "Translation, or the original text with success=false"
// @Failure      400 {object} types.ErrorResponse "Missing or oversized text"
// @Router       /api/v1/translate [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.TranslateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Invalid request body",
				Details: err.Error(),
			})
			return
		}

		result, provider, err := deps.Translator.Translate(c.Request.Context(), req.Text, req.SourceLang, req.TargetLang)
		if err != nil {
			// A fully exhausted cascade is not an HTTP failure: the client
			// keeps the original text and renders it untranslated
			if apperrors.GetCode(err) == apperrors.ErrCodeExternalService {
				log.Printf("[WARN] Translation cascade exhausted: %v", err)
				c.JSON(http.StatusOK, types.TranslationResponse{
					BaseResponse:   types.BaseResponse{Status: types.StatusOK, Message: "Translation unavailable"},
					TranslatedText: req.Text,
					Success:        false,
					SourceLang:     req.SourceLang,
					TargetLang:     req.TargetLang,
				})
				return
			}
			log.Printf("[ERROR] Translation failed: %v", err)
			types.RespondError(c, err, "Translation failed")
			return
		}

		c.JSON(http.StatusOK, types.TranslationResponse{
			BaseResponse:   types.BaseResponse{Status: types.StatusOK, Message: "Text translated"},
			TranslatedText: result,
			Success:        true,
			Provider:       provider,
			SourceLang:     req.SourceLang,
			TargetLang:     req.TargetLang,
		})
	}
}
