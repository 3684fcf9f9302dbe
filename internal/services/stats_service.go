package services

import (
	"context"
	"time"

	"github.com/linguaflash/linguaflash/internal/errors"
	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/linguaflash/linguaflash/internal/repository"
)

// StatsService serves the progress dashboards.
type StatsService interface {
	Vocabulary(ctx context.Context, userID int64) (*models.VocabularyStat, error)
	Levels(ctx context.Context, userID int64) ([]models.LevelStat, error)
	Activity(ctx context.Context, userID int64, days int) ([]models.ActivityStat, error)
	Overview(ctx context.Context, userID int64) (*models.OverviewStat, error)
}

type statsService struct {
	stats repository.StatsRepository
	now   func() time.Time
}

func NewStatsService(stats repository.StatsRepository) StatsService {
	return &statsService{
		stats: stats,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *statsService) Vocabulary(ctx context.Context, userID int64) (*models.VocabularyStat, error) {
	stat, err := s.stats.VocabularyStats(ctx, userID, s.now())
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return stat, nil
}

func (s *statsService) Levels(ctx context.Context, userID int64) ([]models.LevelStat, error) {
	stats, err := s.stats.LevelStats(ctx, userID, s.now())
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *statsService) Activity(ctx context.Context, userID int64, days int) ([]models.ActivityStat, error) {
	if days <= 0 {
		days = 30
	}
	if days > 365 {
		return nil, errors.NewValidationError("days", "must be at most 365")
	}
	stats, err := s.stats.ReviewActivity(ctx, userID, days)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *statsService) Overview(ctx context.Context, userID int64) (*models.OverviewStat, error) {
	stat, err := s.stats.Overview(ctx, userID, s.now())
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return stat, nil
}
