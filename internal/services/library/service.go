package library

import (
	"context"
	"strings"
	"time"

	"github.com/eigotube/immersion-api/internal/models"
	apperrors "github.com/eigotube/immersion-api/pkg/errors"
)

// reviewIntervals spaces card reviews out as they are answered repeatedly
var reviewIntervals = []time.Duration{
	24 * time.Hour,
	3 * 24 * time.Hour,
	7 * 24 * time.Hour,
	14 * 24 * time.Hour,
	30 * 24 * time.Hour,
}

type service struct {
	repo VideoRepository
	now  func() time.Time
}

// NewService creates a library service
func NewService(repo VideoRepository) VideoService {
	return &service{
		repo: repo,
		now:  time.Now,
	}
}

// SaveVideo validates and upserts a video into the library
func (s *service) SaveVideo(ctx context.Context, video *models.Video) error {
	if video == nil || strings.TrimSpace(video.VideoID) == "" {
		return apperrors.MissingFieldError("videoId")
	}
	if strings.TrimSpace(video.Title) == "" {
		return apperrors.MissingFieldError("title")
	}
	return s.repo.UpsertVideo(ctx, video)
}

func (s *service) GetVideo(ctx context.Context, videoID string) (*models.Video, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, apperrors.MissingFieldError("videoId")
	}
	video, err := s.repo.GetVideoByVideoID(ctx, videoID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeNotFound, "video not in library")
	}
	return video, nil
}

func (s *service) ListVideos(ctx context.Context, page, limit int) ([]models.Video, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.ListVideos(ctx, page, limit)
}

func (s *service) RemoveVideo(ctx context.Context, videoID string) error {
	if strings.TrimSpace(videoID) == "" {
		return apperrors.MissingFieldError("videoId")
	}
	if err := s.repo.DeleteVideo(ctx, videoID); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "video not in library")
	}
	return nil
}

// RecordWatch stores the resume point after a playback session
func (s *service) RecordWatch(ctx context.Context, videoID string, position float64) error {
	if strings.TrimSpace(videoID) == "" {
		return apperrors.MissingFieldError("videoId")
	}
	if position < 0 {
		return apperrors.ValidationError("position", "must not be negative")
	}
	if err := s.repo.RecordWatch(ctx, videoID, position, s.now()); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "video not in library")
	}
	return nil
}

func (s *service) FollowChannel(ctx context.Context, channel *models.Channel) error {
	if channel == nil || strings.TrimSpace(channel.ChannelID) == "" {
		return apperrors.MissingFieldError("channelId")
	}
	if strings.TrimSpace(channel.Title) == "" {
		return apperrors.MissingFieldError("title")
	}
	return s.repo.UpsertChannel(ctx, channel)
}

func (s *service) ListChannels(ctx context.Context) ([]models.Channel, error) {
	return s.repo.ListChannels(ctx)
}

func (s *service) UnfollowChannel(ctx context.Context, channelID string) error {
	if strings.TrimSpace(channelID) == "" {
		return apperrors.MissingFieldError("channelId")
	}
	if err := s.repo.DeleteChannel(ctx, channelID); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "channel not followed")
	}
	return nil
}

// SaveStudyCard validates and stores a card cut from a subtitle cue
func (s *service) SaveStudyCard(ctx context.Context, card *models.StudyCard) error {
	if card == nil || card.VideoRef == 0 {
		return apperrors.MissingFieldError("videoRef")
	}
	if strings.TrimSpace(card.EnglishText) == "" {
		return apperrors.MissingFieldError("englishText")
	}
	if card.CueEnd < card.CueStart {
		return apperrors.ValidationError("cueEnd", "must not precede cueStart")
	}
	return s.repo.CreateStudyCard(ctx, card)
}

func (s *service) StudyCardsForVideo(ctx context.Context, videoID string) ([]models.StudyCard, error) {
	video, err := s.GetVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListStudyCards(ctx, video.ID)
}

func (s *service) DueStudyCards(ctx context.Context, limit int) ([]models.StudyCard, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.repo.ListDueStudyCards(ctx, s.now(), limit)
}

// ReviewStudyCard marks a card reviewed and pushes its next review out on
// the spacing schedule.
func (s *service) ReviewStudyCard(ctx context.Context, cardID uint) (*models.StudyCard, error) {
	if cardID == 0 {
		return nil, apperrors.MissingFieldError("cardId")
	}

	card, err := s.repo.GetStudyCard(ctx, cardID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeNotFound, "study card not found")
	}

	now := s.now()
	card.ReviewCount++
	card.LastReviewedAt = &now

	interval := reviewIntervals[len(reviewIntervals)-1]
	if card.ReviewCount <= len(reviewIntervals) {
		interval = reviewIntervals[card.ReviewCount-1]
	}
	next := now.Add(interval)
	card.NextReviewAt = &next

	if err := s.repo.UpdateStudyCard(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *service) RemoveStudyCard(ctx context.Context, cardID uint) error {
	if cardID == 0 {
		return apperrors.MissingFieldError("cardId")
	}
	if err := s.repo.DeleteStudyCard(ctx, cardID); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeNotFound, "study card not found")
	}
	return nil
}

// StartSession opens a study session, optionally tied to a library video
func (s *service) StartSession(ctx context.Context, videoID string) (*models.StudySession, error) {
	session := &models.StudySession{StartedAt: s.now()}

	if strings.TrimSpace(videoID) != "" {
		video, err := s.GetVideo(ctx, videoID)
		if err != nil {
			return nil, err
		}
		session.VideoRef = &video.ID
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// EndSession closes a session and records what was accomplished
func (s *service) EndSession(ctx context.Context, sessionID uint, cardsReviewed, secondsActive int) (*models.StudySession, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeNotFound, "session not found")
	}
	if session.EndedAt != nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "session already ended")
	}

	now := s.now()
	session.EndedAt = &now
	session.CardsReviewed = cardsReviewed
	session.SecondsActive = secondsActive

	if err := s.repo.UpdateSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SessionStats aggregates sessions started since the given time
func (s *service) SessionStats(ctx context.Context, since time.Time) (*SessionStats, error) {
	sessions, err := s.repo.ListSessions(ctx, since)
	if err != nil {
		return nil, err
	}

	stats := &SessionStats{Sessions: len(sessions)}
	for _, session := range sessions {
		stats.CardsReviewed += session.CardsReviewed
		stats.SecondsActive += session.SecondsActive
	}
	return stats, nil
}
