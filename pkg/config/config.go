package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		// Set default values
		setDefaults()

		// Load .env first so provider credentials reach viper's env layer
		_ = godotenv.Load()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix("IMMERSION")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// Load config from fixed location (cleaned for safety)
		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		// Try to read the config file
		if err := viper.ReadInConfig(); err != nil {
			// If the config file doesn't exist, just use defaults and env vars
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		// Validate the configuration
		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("database.path") == "" {
		// Database is optional; library CRUD routes stay unregistered without it
		fmt.Println("Warning: No database path configured")
	}

	// Recognition providers degrade to "not configured" without keys, but warn
	// so a silent fallback to interactive recognition is explainable
	if viper.GetString("speech.whisper.api_key") == "" {
		fmt.Println("Warning: Whisper API key not configured, speech recognition will rely on Google Cloud Speech")
	}
	if viper.GetString("youtube.api_key") == "" {
		fmt.Println("Warning: YouTube API key not configured, metadata search endpoints will be unavailable")
	}

	// Auto-correct invalid batch settings
	if viper.GetInt("translation.batch_size") <= 0 {
		viper.Set("translation.batch_size", 5)
	}
	if viper.GetDuration("captions.cache_ttl") <= 0 {
		viper.Set("captions.cache_ttl", 24*time.Hour)
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Translation.BatchSize <= 0 {
		c.Translation.BatchSize = 5
	}

	if c.Captions.CacheTTL <= 0 {
		c.Captions.CacheTTL = 24 * time.Hour
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./data/immersion.db")
	viper.SetDefault("database.log_queries", false)

	// Caption source defaults
	viper.SetDefault("captions.base_url", "https://www.youtube.com")
	viper.SetDefault("captions.fetch_timeout", 5*time.Minute)
	viper.SetDefault("captions.cache_ttl", 24*time.Hour)
	viper.SetDefault("captions.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	viper.SetDefault("captions.max_probe_languages", 3)

	// Translation defaults. Bare base URLs: the providers append their own
	// endpoint paths.
	viper.SetDefault("translation.google_url", "https://translate.googleapis.com")
	viper.SetDefault("translation.mymemory_url", "https://api.mymemory.translated.net")
	viper.SetDefault("translation.timeout", 10*time.Second)
	viper.SetDefault("translation.batch_size", 5)
	viper.SetDefault("translation.batch_delay", 500*time.Millisecond)
	viper.SetDefault("translation.max_text_length", 5000)

	// Speech recognition defaults
	viper.SetDefault("speech.whisper.api_url", "https://api.openai.com/v1/audio/transcriptions")
	viper.SetDefault("speech.whisper.model", "whisper-1")
	viper.SetDefault("speech.whisper.timeout", 5*time.Minute)
	viper.SetDefault("speech.google.api_url", "https://speech.googleapis.com/v1/speech:recognize")
	viper.SetDefault("speech.google.timeout", 5*time.Minute)
	viper.SetDefault("speech.max_file_size", 26214400)

	// YouTube metadata search defaults
	viper.SetDefault("youtube.base_url", "https://www.googleapis.com/youtube/v3")
	viper.SetDefault("youtube.timeout", 30*time.Second)
	viper.SetDefault("youtube.rate_limit", 100)
	viper.SetDefault("youtube.max_results", 12)
}
