package translation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoogleProviderTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate_a/single", r.URL.Path)
		assert.Equal(t, "gtx", r.URL.Query().Get("client"))
		assert.Equal(t, "en", r.URL.Query().Get("sl"))
		assert.Equal(t, "ja", r.URL.Query().Get("tl"))
		assert.Equal(t, "hello. world.", r.URL.Query().Get("q"))
		fmt.Fprint(w, `[[["こんにちは。","hello.",null,null,10],["世界。","world.",null,null,10]],null,"en"]`)
	}))
	defer server.Close()

	provider := NewGoogleProvider(server.URL, time.Second)
	result, err := provider.Translate(context.Background(), "hello. world.", "en", "ja")

	require.NoError(t, err)
	assert.Equal(t, "こんにちは。世界。", result, "segments are concatenated in order")
}

func TestGoogleProviderDefaultsToAutoSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "auto", r.URL.Query().Get("sl"))
		fmt.Fprint(w, `[[["こんにちは","hello",null,null,10]],null,"en"]`)
	}))
	defer server.Close()

	provider := NewGoogleProvider(server.URL, time.Second)
	_, err := provider.Translate(context.Background(), "hello", "", "ja")
	require.NoError(t, err)
}

func TestGoogleProviderMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>captcha</html>`)
	}))
	defer server.Close()

	provider := NewGoogleProvider(server.URL, time.Second)
	_, err := provider.Translate(context.Background(), "hello", "en", "ja")
	assert.Error(t, err)
}

func TestGoogleProviderHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := NewGoogleProvider(server.URL, time.Second)
	_, err := provider.Translate(context.Background(), "hello", "en", "ja")
	assert.Error(t, err)
}

func TestMyMemoryProviderTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get", r.URL.Path)
		assert.Equal(t, "en|ja", r.URL.Query().Get("langpair"))
		fmt.Fprint(w, `{"responseStatus":200,"responseData":{"translatedText":"こんにちは"}}`)
	}))
	defer server.Close()

	provider := NewMyMemoryProvider(server.URL, time.Second)
	result, err := provider.Translate(context.Background(), "hello", "en", "ja")

	require.NoError(t, err)
	assert.Equal(t, "こんにちは", result)
}

func TestMyMemoryProviderInBandError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"responseStatus":"403","responseDetails":"daily quota exceeded","responseData":{"translatedText":""}}`)
	}))
	defer server.Close()

	provider := NewMyMemoryProvider(server.URL, time.Second)
	_, err := provider.Translate(context.Background(), "hello", "en", "ja")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}

func TestMyMemoryProviderRejectsAutoSource(t *testing.T) {
	provider := NewMyMemoryProvider("http://unused", time.Second)
	_, err := provider.Translate(context.Background(), "hello", "auto", "ja")
	assert.Error(t, err)
}
