package mocks

import (
	"context"
	"time"

	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) VocabularyStats(ctx context.Context, userID int64, now time.Time) (*models.VocabularyStat, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VocabularyStat), args.Error(1)
}

func (m *MockStatsRepository) LevelStats(ctx context.Context, userID int64, now time.Time) ([]models.LevelStat, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LevelStat), args.Error(1)
}

func (m *MockStatsRepository) ReviewActivity(ctx context.Context, userID int64, days int) ([]models.ActivityStat, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ActivityStat), args.Error(1)
}

func (m *MockStatsRepository) Overview(ctx context.Context, userID int64, now time.Time) (*models.OverviewStat, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OverviewStat), args.Error(1)
}

func (m *MockStatsRepository) DueByUser(ctx context.Context, now time.Time) ([]models.ReviewDigest, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewDigest), args.Error(1)
}

func (m *MockStatsRepository) InsertDigest(ctx context.Context, digest models.ReviewDigest) error {
	args := m.Called(ctx, digest)
	return args.Error(0)
}
