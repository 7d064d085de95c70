package library

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/eigotube/immersion-api/internal/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) VideoRepository {
	return &Repository{db: db}
}

// UpsertChannel creates or updates a channel keyed by its catalog ID
func (r *Repository) UpsertChannel(ctx context.Context, channel *models.Channel) error {
	var existing models.Channel
	err := r.db.WithContext(ctx).
		Where("channel_id = ?", channel.ChannelID).
		First(&existing).Error

	if err == nil {
		channel.ID = existing.ID
		channel.CreatedAt = existing.CreatedAt
		if err := r.db.WithContext(ctx).Save(channel).Error; err != nil {
			return fmt.Errorf("updating channel: %w", err)
		}
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.WithContext(ctx).Create(channel).Error; err != nil {
			return fmt.Errorf("creating channel: %w", err)
		}
		return nil
	}

	return fmt.Errorf("checking existing channel: %w", err)
}

// ListChannels returns every followed channel
func (r *Repository) ListChannels(ctx context.Context) ([]models.Channel, error) {
	var channels []models.Channel
	if err := r.db.WithContext(ctx).
		Order("title ASC").
		Find(&channels).Error; err != nil {
		return nil, fmt.Errorf("listing channels: %w", err)
	}
	return channels, nil
}

// DeleteChannel removes a followed channel by catalog ID
func (r *Repository) DeleteChannel(ctx context.Context, channelID string) error {
	result := r.db.WithContext(ctx).
		Where("channel_id = ?", channelID).
		Delete(&models.Channel{})
	if result.Error != nil {
		return fmt.Errorf("deleting channel: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("channel not found")
	}
	return nil
}

// UpsertVideo creates or updates a video keyed by its catalog ID
func (r *Repository) UpsertVideo(ctx context.Context, video *models.Video) error {
	var existing models.Video
	err := r.db.WithContext(ctx).
		Where("video_id = ?", video.VideoID).
		First(&existing).Error

	if err == nil {
		video.ID = existing.ID
		video.CreatedAt = existing.CreatedAt
		// Metadata refreshes must not clobber playback state
		video.WatchCount = existing.WatchCount
		video.LastWatchedAt = existing.LastWatchedAt
		video.Position = existing.Position
		if err := r.db.WithContext(ctx).Save(video).Error; err != nil {
			return fmt.Errorf("updating video: %w", err)
		}
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.WithContext(ctx).Create(video).Error; err != nil {
			return fmt.Errorf("creating video: %w", err)
		}
		return nil
	}

	return fmt.Errorf("checking existing video: %w", err)
}

// GetVideoByVideoID retrieves a video by catalog ID
func (r *Repository) GetVideoByVideoID(ctx context.Context, videoID string) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("video not found")
		}
		return nil, fmt.Errorf("getting video: %w", err)
	}
	return &video, nil
}

// ListVideos returns a paginated list, most recently watched first
func (r *Repository) ListVideos(ctx context.Context, page, limit int) ([]models.Video, int64, error) {
	var videos []models.Video
	var total int64

	offset := (page - 1) * limit
	query := r.db.WithContext(ctx).Model(&models.Video{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting videos: %w", err)
	}

	if err := query.
		Order("last_watched_at DESC NULLS LAST").
		Limit(limit).
		Offset(offset).
		Find(&videos).Error; err != nil {
		return nil, 0, fmt.Errorf("listing videos: %w", err)
	}

	return videos, total, nil
}

// DeleteVideo removes a saved video by catalog ID
func (r *Repository) DeleteVideo(ctx context.Context, videoID string) error {
	result := r.db.WithContext(ctx).
		Where("video_id = ?", videoID).
		Delete(&models.Video{})
	if result.Error != nil {
		return fmt.Errorf("deleting video: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("video not found")
	}
	return nil
}

// RecordWatch bumps the watch counter and stores the resume position
func (r *Repository) RecordWatch(ctx context.Context, videoID string, position float64, watchedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Video{}).
		Where("video_id = ?", videoID).
		Updates(map[string]interface{}{
			"watch_count":     gorm.Expr("watch_count + 1"),
			"last_watched_at": watchedAt,
			"position":        position,
		})
	if result.Error != nil {
		return fmt.Errorf("recording watch: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("video not found")
	}
	return nil
}

// CreateStudyCard stores a new study card
func (r *Repository) CreateStudyCard(ctx context.Context, card *models.StudyCard) error {
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		return fmt.Errorf("creating study card: %w", err)
	}
	return nil
}

// ListStudyCards returns every card for a video, in cue order
func (r *Repository) ListStudyCards(ctx context.Context, videoRef uint) ([]models.StudyCard, error) {
	var cards []models.StudyCard
	if err := r.db.WithContext(ctx).
		Where("video_ref = ?", videoRef).
		Order("cue_start ASC").
		Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("listing study cards: %w", err)
	}
	return cards, nil
}

// ListDueStudyCards returns cards whose next review is due, oldest first.
// Cards never reviewed are always due.
func (r *Repository) ListDueStudyCards(ctx context.Context, due time.Time, limit int) ([]models.StudyCard, error) {
	var cards []models.StudyCard
	if err := r.db.WithContext(ctx).
		Where("next_review_at IS NULL OR next_review_at <= ?", due).
		Order("next_review_at ASC NULLS FIRST").
		Limit(limit).
		Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("listing due study cards: %w", err)
	}
	return cards, nil
}

// GetStudyCard retrieves a card by ID
func (r *Repository) GetStudyCard(ctx context.Context, id uint) (*models.StudyCard, error) {
	var card models.StudyCard
	if err := r.db.WithContext(ctx).First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("study card not found")
		}
		return nil, fmt.Errorf("getting study card: %w", err)
	}
	return &card, nil
}

// UpdateStudyCard saves card changes
func (r *Repository) UpdateStudyCard(ctx context.Context, card *models.StudyCard) error {
	result := r.db.WithContext(ctx).Save(card)
	if result.Error != nil {
		return fmt.Errorf("updating study card: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("study card not found")
	}
	return nil
}

// DeleteStudyCard removes a card
func (r *Repository) DeleteStudyCard(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.StudyCard{}, id)
	if result.Error != nil {
		return fmt.Errorf("deleting study card: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("study card not found")
	}
	return nil
}

// CreateSession stores a new study session
func (r *Repository) CreateSession(ctx context.Context, session *models.StudySession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	return nil
}

// UpdateSession saves session changes
func (r *Repository) UpdateSession(ctx context.Context, session *models.StudySession) error {
	if err := r.db.WithContext(ctx).Save(session).Error; err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID
func (r *Repository) GetSession(ctx context.Context, id uint) (*models.StudySession, error) {
	var session models.StudySession
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session not found")
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return &session, nil
}

// ListSessions returns sessions started after the given time
func (r *Repository) ListSessions(ctx context.Context, since time.Time) ([]models.StudySession, error) {
	var sessions []models.StudySession
	if err := r.db.WithContext(ctx).
		Where("started_at >= ?", since).
		Order("started_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return sessions, nil
}
