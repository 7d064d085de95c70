package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigotube/immersion-api/api/types"
	speechsvc "github.com/eigotube/immersion-api/internal/services/speech"
	"github.com/eigotube/immersion-api/pkg/subtitle"
)

type mockTranscriber struct {
	transcribeFunc func(ctx context.Context, audio []byte, mimeType, language string) (*speechsvc.Result, error)
	providers      []speechsvc.ProviderStatus
}

func (m *mockTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType, language string) (*speechsvc.Result, error) {
	if m.transcribeFunc != nil {
		return m.transcribeFunc(ctx, audio, mimeType, language)
	}
	return nil, speechsvc.ValidateAudio(nil, "", 0)
}

func (m *mockTranscriber) Providers() []speechsvc.ProviderStatus {
	return m.providers
}

func (m *mockTranscriber) Available() bool {
	for _, p := range m.providers {
		if p.Configured {
			return true
		}
	}
	return false
}

func newTestRouter(deps *types.Dependencies) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api/v1/speech"), deps)
	return router
}

func multipartAudio(t *testing.T, fieldName, mimeType string, payload []byte, language string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+fieldName+`"; filename="audio.wav"`)
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)

	if language != "" {
		require.NoError(t, writer.WriteField("language", language))
	}
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestPostTranscribes(t *testing.T) {
	transcriber := &mockTranscriber{
		transcribeFunc: func(ctx context.Context, audio []byte, mimeType, language string) (*speechsvc.Result, error) {
			assert.Equal(t, "audio/wav", mimeType)
			assert.Equal(t, "en", language)
			assert.NotEmpty(t, audio)
			return &speechsvc.Result{
				Cues:     []subtitle.Cue{{Start: 0, End: 2, Text: "hello"}},
				Text:     "hello",
				Provider: "whisper",
				Language: "english",
			}, nil
		},
	}
	router := newTestRouter(&types.Dependencies{Transcriber: transcriber})

	body, contentType := multipartAudio(t, "audio", "audio/wav", []byte{0x01, 0x02}, "en")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/speech/transcriptions", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response types.TranscriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotNil(t, response.Result)
	assert.Equal(t, "whisper", response.Result.Provider)
	assert.Len(t, response.Result.Cues, 1)
}

func TestPostMissingAudioField(t *testing.T) {
	router := newTestRouter(&types.Dependencies{Transcriber: &mockTranscriber{}})

	body, contentType := multipartAudio(t, "file", "audio/wav", []byte{0x01}, "")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/speech/transcriptions", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProviders(t *testing.T) {
	transcriber := &mockTranscriber{
		providers: []speechsvc.ProviderStatus{
			{Name: "whisper", Configured: true},
			{Name: "google-speech", Configured: false},
		},
	}
	router := newTestRouter(&types.Dependencies{Transcriber: transcriber})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/speech/providers", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response types.ProvidersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Available)
	assert.Len(t, response.Providers, 2)
}
