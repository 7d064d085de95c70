package subtitles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eigotube/immersion-api/internal/services/captions"
	apperrors "github.com/eigotube/immersion-api/pkg/errors"
	"github.com/eigotube/immersion-api/pkg/subtitle"
)

// mock dependencies with func fields, teacher-style

type mockProber struct {
	discoverFunc   func(ctx context.Context, videoID string) ([]captions.LanguageAvailability, error)
	invalidateFunc func(ctx context.Context, videoID string) error
	invalidated    []string
}

func (m *mockProber) DiscoverLanguages(ctx context.Context, videoID string) ([]captions.LanguageAvailability, error) {
	if m.discoverFunc != nil {
		return m.discoverFunc(ctx, videoID)
	}
	return nil, nil
}

func (m *mockProber) Invalidate(ctx context.Context, videoID string) error {
	m.invalidated = append(m.invalidated, videoID)
	if m.invalidateFunc != nil {
		return m.invalidateFunc(ctx, videoID)
	}
	return nil
}

type mockFetcher struct {
	fetchFunc   func(ctx context.Context, videoID, lang string) ([]subtitle.Cue, error)
	calls       []string
	invalidated []string
}

func (m *mockFetcher) FetchTranscript(ctx context.Context, videoID, lang string) ([]subtitle.Cue, error) {
	m.calls = append(m.calls, lang)
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, videoID, lang)
	}
	return nil, &captions.NoTranscriptError{VideoID: videoID, Language: lang}
}

func (m *mockFetcher) Invalidate(ctx context.Context, videoID, lang string) error {
	m.invalidated = append(m.invalidated, videoID+"/"+lang)
	return nil
}

type mockTranslator struct {
	translateFunc func(ctx context.Context, cues []subtitle.Cue, sourceLang, targetLang string) ([]subtitle.Cue, error)
	calls         int
}

func (m *mockTranslator) TranslateCues(ctx context.Context, cues []subtitle.Cue, sourceLang, targetLang string) ([]subtitle.Cue, error) {
	m.calls++
	if m.translateFunc != nil {
		return m.translateFunc(ctx, cues, sourceLang, targetLang)
	}
	translated := make([]subtitle.Cue, len(cues))
	for i, cue := range cues {
		translated[i] = subtitle.Cue{Start: cue.Start, End: cue.End, Text: "訳: " + cue.Text}
	}
	return translated, nil
}

func englishCues() []subtitle.Cue {
	return []subtitle.Cue{
		{Start: 0, End: 2, Text: "Hello there"},
		{Start: 2, End: 4, Text: "Welcome back"},
	}
}

func availability(tags ...string) []captions.LanguageAvailability {
	langs := make([]captions.LanguageAvailability, 0, len(tags))
	for _, tag := range tags {
		langs = append(langs, captions.LanguageAvailability{
			Language: tag, LanguageName: tag, AutoGenerated: true, Translatable: true,
		})
	}
	return langs
}

func TestResolveBothNativeTracks(t *testing.T) {
	prober := &mockProber{
		discoverFunc: func(ctx context.Context, videoID string) ([]captions.LanguageAvailability, error) {
			return availability("en", "ja"), nil
		},
	}
	fetcher := &mockFetcher{
		fetchFunc: func(ctx context.Context, videoID, lang string) ([]subtitle.Cue, error) {
			if lang == "en" {
				return englishCues(), nil
			}
			return []subtitle.Cue{{Start: 0, End: 2, Text: "こんにちは"}}, nil
		},
	}
	translator := &mockTranslator{}

	svc := NewService(prober, fetcher, translator)
	bundle, err := svc.Resolve(context.Background(), "vid1")

	require.NoError(t, err)
	assert.True(t, bundle.HasEnglishSubtitles)
	assert.True(t, bundle.HasJapaneseSubtitles)
	assert.False(t, bundle.SpeechToTextAvailable)
	assert.Nil(t, bundle.Errors)
	assert.Empty(t, bundle.Suggestions)
	assert.Zero(t, translator.calls, "native tracks never trigger translation")
}

func TestResolveTranslatesWhenJapaneseMissing(t *testing.T) {
	prober := &mockProber{
		discoverFunc: func(ctx context.Context, videoID string) ([]captions.LanguageAvailability, error) {
			return availability("en"), nil
		},
	}
	fetcher := &mockFetcher{
		fetchFunc: func(ctx context.Context, videoID, lang string) ([]subtitle.Cue, error) {
			if lang == "en" {
				return englishCues(), nil
			}
			return nil, &captions.NoTranscriptError{VideoID: videoID, Language: lang}
		},
	}
	translator := &mockTranslator{}

	svc := NewService(prober, fetcher, translator)
	bundle, err := svc.Resolve(context.Background(), "vid1")

	require.NoError(t, err)
	assert.True(t, bundle.HasEnglishSubtitles)
	assert.True(t, bundle.HasJapaneseSubtitles)
	require.Len(t, bundle.Japanese, 2)
	assert.Equal(t, "訳: Hello there", bundle.Japanese[0].Text)
	assert.Equal(t, 0.0, bundle.Japanese[0].Start, "translation preserves timing")
	require.Len(t, bundle.Suggestions, 1)
	assert.Contains(t, bundle.Suggestions[0], "machine translated")
}

func TestResolveNoCaptionsAtAll(t *testing.T) {
	svc := NewService(&mockProber{}, &mockFetcher{}, &mockTranslator{})
	bundle, err := svc.Resolve(context.Background(), "vid1")

	require.NoError(t, err, "missing captions are data, not an exception")
	assert.False(t, bundle.HasEnglishSubtitles)
	assert.False(t, bundle.HasJapaneseSubtitles)
	assert.True(t, bundle.SpeechToTextAvailable)
	assert.Equal(t, "NO_TRANSCRIPT", bundle.Errors["english"])
	require.NotEmpty(t, bundle.Suggestions)
	assert.Contains(t, bundle.Suggestions[0], "speech recognition")
}

func TestResolveVideoUnavailable(t *testing.T) {
	prober := &mockProber{
		discoverFunc: func(ctx context.Context, videoID string) ([]captions.LanguageAvailability, error) {
			return nil, captions.ErrVideoUnavailable
		},
	}

	svc := NewService(prober, &mockFetcher{}, &mockTranslator{})
	_, err := svc.Resolve(context.Background(), "vid1")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeVideoUnavailable, apperrors.GetCode(err))
}

func TestResolveUsesRegionalVariant(t *testing.T) {
	prober := &mockProber{
		discoverFunc: func(ctx context.Context, videoID string) ([]captions.LanguageAvailability, error) {
			return availability("en-US"), nil
		},
	}
	fetcher := &mockFetcher{
		fetchFunc: func(ctx context.Context, videoID, lang string) ([]subtitle.Cue, error) {
			if lang == "en-US" {
				return englishCues(), nil
			}
			return nil, &captions.NoTranscriptError{VideoID: videoID, Language: lang}
		},
	}

	svc := NewService(prober, fetcher, &mockTranslator{})
	bundle, err := svc.Resolve(context.Background(), "vid1")

	require.NoError(t, err)
	assert.True(t, bundle.HasEnglishSubtitles)
	assert.Equal(t, "en-US", fetcher.calls[0], "the discovered regional tag is fetched directly")
}

func TestResolveFollowsFetchErrorHint(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFunc: func(ctx context.Context, videoID, lang string) ([]subtitle.Cue, error) {
			if lang == "en-GB" {
				return englishCues(), nil
			}
			return nil, &captions.NoTranscriptError{VideoID: videoID, Language: lang, Available: []string{"en-GB", "fr"}}
		},
	}

	svc := NewService(&mockProber{}, fetcher, &mockTranslator{})
	bundle, err := svc.Resolve(context.Background(), "vid1")

	require.NoError(t, err)
	assert.True(t, bundle.HasEnglishSubtitles)
	assert.Contains(t, fetcher.calls, "en-GB")
}

func TestResolveLanguageJapaneseFallsBackToTranslation(t *testing.T) {
	prober := &mockProber{
		discoverFunc: func(ctx context.Context, videoID string) ([]captions.LanguageAvailability, error) {
			return availability("en"), nil
		},
	}
	fetcher := &mockFetcher{
		fetchFunc: func(ctx context.Context, videoID, lang string) ([]subtitle.Cue, error) {
			if lang == "en" {
				return englishCues(), nil
			}
			return nil, &captions.NoTranscriptError{VideoID: videoID, Language: lang}
		},
	}
	translator := &mockTranslator{}

	svc := NewService(prober, fetcher, translator)
	cues, err := svc.ResolveLanguage(context.Background(), "vid1", "ja")

	require.NoError(t, err)
	require.Len(t, cues, 2)
	assert.Equal(t, "訳: Hello there", cues[0].Text)
	assert.Equal(t, 1, translator.calls)
}

func TestResolveLanguageNativeTrack(t *testing.T) {
	fetcher := &mockFetcher{
		fetchFunc: func(ctx context.Context, videoID, lang string) ([]subtitle.Cue, error) {
			return englishCues(), nil
		},
	}
	translator := &mockTranslator{}

	svc := NewService(&mockProber{}, fetcher, translator)
	cues, err := svc.ResolveLanguage(context.Background(), "vid1", "en")

	require.NoError(t, err)
	assert.Len(t, cues, 2)
	assert.Zero(t, translator.calls)
}

func TestResolveLanguageValidation(t *testing.T) {
	svc := NewService(&mockProber{}, &mockFetcher{}, &mockTranslator{})

	_, err := svc.ResolveLanguage(context.Background(), "", "en")
	assert.Equal(t, apperrors.ErrCodeMissingField, apperrors.GetCode(err))

	_, err = svc.ResolveLanguage(context.Background(), "vid1", "")
	assert.Equal(t, apperrors.ErrCodeMissingField, apperrors.GetCode(err))
}

func TestInvalidateClearsCuesAndAvailability(t *testing.T) {
	prober := &mockProber{}
	fetcher := &mockFetcher{}

	svc := NewService(prober, fetcher, &mockTranslator{})
	require.NoError(t, svc.Invalidate(context.Background(), "vid1", ""))

	assert.Equal(t, []string{"vid1/"}, fetcher.invalidated)
	assert.Equal(t, []string{"vid1"}, prober.invalidated)
}

func TestInvalidateSingleLanguageKeepsAvailability(t *testing.T) {
	prober := &mockProber{}
	fetcher := &mockFetcher{}

	svc := NewService(prober, fetcher, &mockTranslator{})
	require.NoError(t, svc.Invalidate(context.Background(), "vid1", "ja"))

	assert.Equal(t, []string{"vid1/ja"}, fetcher.invalidated)
	assert.Empty(t, prober.invalidated, "a single-language clear must not drop the availability list")
}

func TestTagsMatch(t *testing.T) {
	tests := []struct {
		a, b     string
		expected bool
	}{
		{"en", "en", true},
		{"en", "en-US", true},
		{"en-US", "en", true},
		{"en", "ja", false},
		{"en", "enx", false},
		{"ja", "ja-JP", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tagsMatch(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}
