package translation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionaryLongestPhraseWins(t *testing.T) {
	d := NewDictionaryProvider()
	result, err := d.Translate(context.Background(), "Thank you very much", "en", "ja")

	require.NoError(t, err)
	assert.Equal(t, "どうもありがとうございます", result, "the full phrase entry must win over its prefix")
}

func TestDictionaryCaseInsensitiveWholeWords(t *testing.T) {
	d := NewDictionaryProvider()

	result, err := d.Translate(context.Background(), "HELLO world", "en", "ja")
	require.NoError(t, err)
	assert.Contains(t, result, "こんにちは")

	// "hi" inside "this" must not match
	result, err = d.Translate(context.Background(), "this is good", "en", "ja")
	require.NoError(t, err)
	assert.NotContains(t, result, "やあ")
	assert.Contains(t, result, "良い")
}

func TestDictionaryNoMatchFails(t *testing.T) {
	d := NewDictionaryProvider()
	_, err := d.Translate(context.Background(), "xylophone quartz", "en", "ja")
	assert.Error(t, err)
}

func TestDictionaryLanguageGate(t *testing.T) {
	d := NewDictionaryProvider()

	_, err := d.Translate(context.Background(), "hello", "fr", "ja")
	assert.Error(t, err, "non-english sources are out of scope")

	_, err = d.Translate(context.Background(), "hello", "en", "ko")
	assert.Error(t, err, "non-japanese targets are out of scope")

	result, err := d.Translate(context.Background(), "hello", "auto", "ja-JP")
	require.NoError(t, err, "auto source and regional target tags are accepted")
	assert.Equal(t, "こんにちは", result)
}
