package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Captions    CaptionsConfig    `mapstructure:"captions"`
	Translation TranslationConfig `mapstructure:"translation"`
	Speech      SpeechConfig      `mapstructure:"speech"`
	YouTube     YouTubeConfig     `mapstructure:"youtube"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains sqlite settings for the learning library
type DatabaseConfig struct {
	Path       string `mapstructure:"path"`
	LogQueries bool   `mapstructure:"log_queries"`
}

// CaptionsConfig contains caption source settings
type CaptionsConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	FetchTimeout      time.Duration `mapstructure:"fetch_timeout"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl"`
	UserAgent         string        `mapstructure:"user_agent"`
	MaxProbeLanguages int           `mapstructure:"max_probe_languages"`
}

// TranslationConfig contains translation cascade settings
type TranslationConfig struct {
	GoogleURL     string        `mapstructure:"google_url"`
	MyMemoryURL   string        `mapstructure:"mymemory_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	BatchSize     int           `mapstructure:"batch_size"`
	BatchDelay    time.Duration `mapstructure:"batch_delay"`
	MaxTextLength int           `mapstructure:"max_text_length"`
}

// SpeechConfig contains speech recognition provider settings
type SpeechConfig struct {
	Whisper     WhisperConfig      `mapstructure:"whisper"`
	Google      GoogleSpeechConfig `mapstructure:"google"`
	MaxFileSize int64              `mapstructure:"max_file_size"`
}

// WhisperConfig contains OpenAI Whisper API settings
type WhisperConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	APIURL  string        `mapstructure:"api_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// GoogleSpeechConfig contains Google Cloud Speech-to-Text settings
type GoogleSpeechConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	APIURL  string        `mapstructure:"api_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// YouTubeConfig contains YouTube Data API settings
type YouTubeConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RateLimit  int           `mapstructure:"rate_limit"`
	MaxResults int           `mapstructure:"max_results"`
}
