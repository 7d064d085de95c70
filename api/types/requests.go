package types

// TranslateRequest for single text translations
type TranslateRequest struct {
	Text       string `json:"text" binding:"required"`
	SourceLang string `json:"sourceLang"`
	TargetLang string `json:"targetLang" binding:"required"`
}

// SaveVideoRequest adds a video to the learning library
type SaveVideoRequest struct {
	VideoID      string `json:"videoId" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channelTitle"`
	Thumbnail    string `json:"thumbnail"`
	PublishedAt  string `json:"publishedAt"`
}

// FollowChannelRequest follows a channel
type FollowChannelRequest struct {
	ChannelID   string `json:"channelId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}

// WatchRequest records playback progress
type WatchRequest struct {
	Position float64 `json:"position"`
}

// SaveStudyCardRequest cuts a subtitle cue into review material
type SaveStudyCardRequest struct {
	CueStart     float64 `json:"cueStart"`
	CueEnd       float64 `json:"cueEnd"`
	EnglishText  string  `json:"englishText" binding:"required"`
	JapaneseText string  `json:"japaneseText"`
	Note         string  `json:"note"`
}

// StartSessionRequest opens a study session
type StartSessionRequest struct {
	VideoID string `json:"videoId"`
}

// EndSessionRequest closes a study session
type EndSessionRequest struct {
	CardsReviewed int `json:"cardsReviewed"`
	SecondsActive int `json:"secondsActive"`
}
