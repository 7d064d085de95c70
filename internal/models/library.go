package models

import (
	"time"

	"gorm.io/gorm"
)

// Channel represents a followed video channel
type Channel struct {
	gorm.Model
	ChannelID   string  `json:"channel_id" gorm:"uniqueIndex;not null"`
	Title       string  `json:"title" gorm:"not null"`
	Description string  `json:"description" gorm:"type:text"`
	Thumbnail   string  `json:"thumbnail"`
	Videos      []Video `json:"videos,omitempty" gorm:"foreignKey:ChannelRef"`
}

// Video represents a saved video in the learning library
type Video struct {
	gorm.Model
	ChannelRef   *uint  `json:"channel_ref" gorm:"index"`
	VideoID      string `json:"video_id" gorm:"uniqueIndex;not null"`
	Title        string `json:"title" gorm:"not null"`
	Description  string `json:"description" gorm:"type:text"`
	ChannelTitle string `json:"channel_title"`
	Thumbnail    string `json:"thumbnail"`
	PublishedAt  string `json:"published_at"`

	// Playback state
	WatchCount    int        `json:"watch_count" gorm:"default:0"`
	LastWatchedAt *time.Time `json:"last_watched_at"`
	Position      float64    `json:"position" gorm:"default:0"` // Resume point in seconds

	StudyCards []StudyCard `json:"study_cards,omitempty" gorm:"foreignKey:VideoRef"`
}

// StudyCard is one saved subtitle cue turned into review material
type StudyCard struct {
	gorm.Model
	VideoRef     uint    `json:"video_ref" gorm:"not null;index"`
	CueStart     float64 `json:"cue_start"`
	CueEnd       float64 `json:"cue_end"`
	EnglishText  string  `json:"english_text" gorm:"type:text;not null"`
	JapaneseText string  `json:"japanese_text" gorm:"type:text"`
	Note         string  `json:"note" gorm:"type:text"`

	// Review scheduling
	ReviewCount    int        `json:"review_count" gorm:"default:0"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
	NextReviewAt   *time.Time `json:"next_review_at" gorm:"index"`
}

// StudySession records one sitting of immersion practice
type StudySession struct {
	gorm.Model
	VideoRef      *uint      `json:"video_ref" gorm:"index"`
	StartedAt     time.Time  `json:"started_at" gorm:"not null"`
	EndedAt       *time.Time `json:"ended_at"`
	CardsReviewed int        `json:"cards_reviewed" gorm:"default:0"`
	SecondsActive int        `json:"seconds_active" gorm:"default:0"`
}
