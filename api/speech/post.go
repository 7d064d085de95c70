package speech

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eigotube/immersion-api/api/types"
	speechsvc "github.com/eigotube/immersion-api/internal/services/speech"
)

// Post transcribes uploaded audio
// @Summary      Transcribe audio
// @Description  Run uploaded audio through the speech recognition cascade and return timed cues.
// @Description  Send multipart form data with an "audio" file field and an optional "language"
// @Description  field. When every provider fails, the error carries a suggestion to fall back to
// @Description  the browser's interactive recognition.
// @Tags         speech
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio formData file true "Audio file (wav, mp3, ogg, or webm; 25MB max)"
// @Param        language formData string false "Spoken language tag" example(en)
// @Success      200 {object} types.TranscriptionResponse "Timed transcription"
// @Failure      400 {object} types.ErrorResponse "Missing, oversized, or unsupported audio"
// @Failure      502 {object} types.ErrorResponse "Every recognition provider failed"
// @Router       /api/v1/speech/transcriptions [post]
func Post(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("audio")
		if err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Missing audio file",
				Details: err.Error(),
			})
			return
		}

		if fileHeader.Size > speechsvc.MaxAudioBytes {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{
				Status:  types.StatusError,
				Message: "Audio file too large",
			})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			types.RespondError(c, err, "Failed to read audio file")
			return
		}
		defer file.Close()

		audio, err := io.ReadAll(io.LimitReader(file, speechsvc.MaxAudioBytes+1))
		if err != nil {
			types.RespondError(c, err, "Failed to read audio file")
			return
		}

		mimeType := fileHeader.Header.Get("Content-Type")
		language := c.PostForm("language")

		result, err := deps.Transcriber.Transcribe(c.Request.Context(), audio, mimeType, language)
		if err != nil {
			log.Printf("[ERROR] Transcription failed: %v", err)
			types.RespondError(c, err, "Transcription failed")
			return
		}

		c.JSON(http.StatusOK, types.TranscriptionResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Audio transcribed"},
			Result:       result,
		})
	}
}
