package config

import (
	"net/url"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Server:      ServerConfig{Port: 8080},
				Translation: TranslationConfig{BatchSize: 5},
				Captions:    CaptionsConfig{CacheTTL: 24 * time.Hour},
			},
			wantErr: false,
		},
		{
			name: "invalid port",
			config: Config{
				Server: ServerConfig{Port: 0},
			},
			wantErr: true,
		},
		{
			name: "port too large",
			config: Config{
				Server: ServerConfig{Port: 70000},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultTranslationURLsAreBare(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	setDefaults()

	// The providers append /translate_a/single and /get themselves, so a
	// default carrying a path would double it whenever settings.yaml is absent
	for _, key := range []string{"translation.google_url", "translation.mymemory_url"} {
		raw := viper.GetString(key)
		parsed, err := url.Parse(raw)
		require.NoError(t, err, key)
		assert.Empty(t, parsed.Path, "%s must be a bare base URL, got %s", key, raw)
	}
}

func TestConfigValidateAutoCorrects(t *testing.T) {
	cfg := Config{
		Server:      ServerConfig{Port: 8080},
		Translation: TranslationConfig{BatchSize: 0},
		Captions:    CaptionsConfig{CacheTTL: 0},
	}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5, cfg.Translation.BatchSize)
	assert.Equal(t, 24*time.Hour, cfg.Captions.CacheTTL)
}
