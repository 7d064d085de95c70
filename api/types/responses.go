package types

import (
	"github.com/eigotube/immersion-api/internal/models"
	"github.com/eigotube/immersion-api/internal/services/library"
	"github.com/eigotube/immersion-api/internal/services/speech"
	"github.com/eigotube/immersion-api/internal/services/youtube"
	"github.com/eigotube/immersion-api/pkg/subtitle"
)

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// CuesResponse for single-language subtitle requests
type CuesResponse struct {
	BaseResponse
	VideoID      string         `json:"videoId"`
	Language     string         `json:"language"`
	Cues         []subtitle.Cue `json:"cues"`
	Count        int            `json:"count"`
	HasSubtitles bool           `json:"hasSubtitles"`
}

// TranslationResponse for single text translations. Success is false when the
// whole cascade failed and TranslatedText echoes the input.
type TranslationResponse struct {
	BaseResponse
	TranslatedText string `json:"translatedText"`
	Success        bool   `json:"success"`
	Provider       string `json:"provider,omitempty"`
	SourceLang     string `json:"sourceLang"`
	TargetLang     string `json:"targetLang"`
}

// TranscriptionResponse for speech recognition results
type TranscriptionResponse struct {
	BaseResponse
	Result *speech.Result `json:"result"`
}

// ProvidersResponse for speech capability listings
type ProvidersResponse struct {
	BaseResponse
	Providers        []speech.ProviderStatus `json:"providers"`
	Available        bool                    `json:"available"`
	SupportedFormats []string                `json:"supportedFormats"`
	MaxFileSize      int64                   `json:"maxFileSize"`
}

// VideoSearchResponse for catalog video searches
type VideoSearchResponse struct {
	BaseResponse
	Results *youtube.SearchResults `json:"results"`
}

// ChannelSearchResponse for catalog channel searches
type ChannelSearchResponse struct {
	BaseResponse
	Results *youtube.ChannelResults `json:"results"`
}

// VideosResponse for library video lists
type VideosResponse struct {
	BaseResponse
	Videos []models.Video `json:"videos"`
	Count  int            `json:"count"`
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
}

// SingleVideoResponse for one library video
type SingleVideoResponse struct {
	BaseResponse
	Video *models.Video `json:"video"`
}

// ChannelsResponse for followed channel lists
type ChannelsResponse struct {
	BaseResponse
	Channels []models.Channel `json:"channels"`
	Count    int              `json:"count"`
}

// StudyCardsResponse for study card lists
type StudyCardsResponse struct {
	BaseResponse
	Cards []models.StudyCard `json:"cards"`
	Count int                `json:"count"`
}

// SingleStudyCardResponse for one study card
type SingleStudyCardResponse struct {
	BaseResponse
	Card *models.StudyCard `json:"card"`
}

// SessionResponse for study session state
type SessionResponse struct {
	BaseResponse
	Session *models.StudySession `json:"session"`
}

// SessionStatsResponse for aggregated practice stats
type SessionStatsResponse struct {
	BaseResponse
	Stats *library.SessionStats `json:"stats"`
}
