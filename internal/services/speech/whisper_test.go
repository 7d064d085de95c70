package speech

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhisperTranscribeSegments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "verbose_json", r.FormValue("response_format"))
		assert.Equal(t, "en", r.FormValue("language"), "regional tags are reduced to the base language")

		fmt.Fprint(w, `{"text":"Hello there. General greeting.","language":"english","segments":[
			{"start":0.0,"end":2.4,"text":" Hello there."},
			{"start":2.4,"end":4.1,"text":" General greeting."}]}`)
	}))
	defer server.Close()

	recognizer := NewWhisperRecognizer(WhisperConfig{APIKey: "test-key", APIURL: server.URL})
	result, err := recognizer.Transcribe(context.Background(), sampleAudio(), "audio/wav", "en-US")

	require.NoError(t, err)
	assert.Equal(t, "whisper", result.Provider)
	require.Len(t, result.Cues, 2)
	assert.Equal(t, 0.0, result.Cues[0].Start)
	assert.Equal(t, 2.4, result.Cues[0].End)
	assert.Equal(t, "Hello there.", result.Cues[0].Text)
}

func TestWhisperFallsBackToSentenceTiming(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"text":"First part. Second part.","language":"english"}`)
	}))
	defer server.Close()

	recognizer := NewWhisperRecognizer(WhisperConfig{APIKey: "test-key", APIURL: server.URL})
	result, err := recognizer.Transcribe(context.Background(), sampleAudio(), "audio/wav", "en")

	require.NoError(t, err)
	require.Len(t, result.Cues, 2)
	assert.Equal(t, 3.0, result.Cues[0].End, "segmentless transcripts get fixed sentence timing")
}

func TestWhisperHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"invalid api key"}}`)
	}))
	defer server.Close()

	recognizer := NewWhisperRecognizer(WhisperConfig{APIKey: "bad", APIURL: server.URL})
	_, err := recognizer.Transcribe(context.Background(), sampleAudio(), "audio/wav", "en")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestWhisperConfigured(t *testing.T) {
	assert.False(t, NewWhisperRecognizer(WhisperConfig{}).Configured())
	assert.True(t, NewWhisperRecognizer(WhisperConfig{APIKey: "k"}).Configured())
}

func TestGoogleSpeechTranscribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		fmt.Fprint(w, `{"results":[
			{"alternatives":[{"transcript":"one two three four five"}]},
			{"alternatives":[{"transcript":"six seven"}]}]}`)
	}))
	defer server.Close()

	recognizer := NewGoogleSpeechRecognizer(GoogleSpeechConfig{APIKey: "test-key", APIURL: server.URL})
	result, err := recognizer.Transcribe(context.Background(), sampleAudio(), "audio/wav", "en")

	require.NoError(t, err)
	assert.Equal(t, "google-speech", result.Provider)
	assert.Equal(t, "en-US", result.Language)
	require.Len(t, result.Cues, 2)
	assert.Equal(t, 2.0, result.Cues[0].End)
	assert.Equal(t, "one two three four five six seven", result.Text)
}

func TestGoogleSpeechEmptyResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	recognizer := NewGoogleSpeechRecognizer(GoogleSpeechConfig{APIKey: "test-key", APIURL: server.URL})
	_, err := recognizer.Transcribe(context.Background(), sampleAudio(), "audio/wav", "en")

	assert.Error(t, err)
}

func TestValidateAudio(t *testing.T) {
	assert.NoError(t, ValidateAudio(sampleAudio(), "audio/mpeg", 0))
	assert.Error(t, ValidateAudio(nil, "audio/mpeg", 0))
	assert.Error(t, ValidateAudio(sampleAudio(), "text/plain", 0))
	assert.Error(t, ValidateAudio(sampleAudio(), "audio/mpeg", 16))
}
