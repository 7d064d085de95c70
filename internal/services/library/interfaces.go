package library

import (
	"context"
	"time"

	"github.com/eigotube/immersion-api/internal/models"
)

// VideoRepository defines the data access interface for the library
type VideoRepository interface {
	// Channels
	UpsertChannel(ctx context.Context, channel *models.Channel) error
	ListChannels(ctx context.Context) ([]models.Channel, error)
	DeleteChannel(ctx context.Context, channelID string) error

	// Videos
	UpsertVideo(ctx context.Context, video *models.Video) error
	GetVideoByVideoID(ctx context.Context, videoID string) (*models.Video, error)
	ListVideos(ctx context.Context, page, limit int) ([]models.Video, int64, error)
	DeleteVideo(ctx context.Context, videoID string) error
	RecordWatch(ctx context.Context, videoID string, position float64, watchedAt time.Time) error

	// Study cards
	CreateStudyCard(ctx context.Context, card *models.StudyCard) error
	ListStudyCards(ctx context.Context, videoRef uint) ([]models.StudyCard, error)
	ListDueStudyCards(ctx context.Context, due time.Time, limit int) ([]models.StudyCard, error)
	GetStudyCard(ctx context.Context, id uint) (*models.StudyCard, error)
	UpdateStudyCard(ctx context.Context, card *models.StudyCard) error
	DeleteStudyCard(ctx context.Context, id uint) error

	// Sessions
	CreateSession(ctx context.Context, session *models.StudySession) error
	UpdateSession(ctx context.Context, session *models.StudySession) error
	GetSession(ctx context.Context, id uint) (*models.StudySession, error)
	ListSessions(ctx context.Context, since time.Time) ([]models.StudySession, error)
}

// VideoService defines the business logic interface for the library
type VideoService interface {
	SaveVideo(ctx context.Context, video *models.Video) error
	GetVideo(ctx context.Context, videoID string) (*models.Video, error)
	ListVideos(ctx context.Context, page, limit int) ([]models.Video, int64, error)
	RemoveVideo(ctx context.Context, videoID string) error
	RecordWatch(ctx context.Context, videoID string, position float64) error

	FollowChannel(ctx context.Context, channel *models.Channel) error
	ListChannels(ctx context.Context) ([]models.Channel, error)
	UnfollowChannel(ctx context.Context, channelID string) error

	SaveStudyCard(ctx context.Context, card *models.StudyCard) error
	StudyCardsForVideo(ctx context.Context, videoID string) ([]models.StudyCard, error)
	DueStudyCards(ctx context.Context, limit int) ([]models.StudyCard, error)
	ReviewStudyCard(ctx context.Context, cardID uint) (*models.StudyCard, error)
	RemoveStudyCard(ctx context.Context, cardID uint) error

	StartSession(ctx context.Context, videoID string) (*models.StudySession, error)
	EndSession(ctx context.Context, sessionID uint, cardsReviewed, secondsActive int) (*models.StudySession, error)
	SessionStats(ctx context.Context, since time.Time) (*SessionStats, error)
}

// SessionStats aggregates recent practice activity
type SessionStats struct {
	Sessions      int `json:"sessions"`
	CardsReviewed int `json:"cardsReviewed"`
	SecondsActive int `json:"secondsActive"`
}
