package jobs

import (
	"testing"
	"time"

	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/linguaflash/linguaflash/internal/testutil/mocks"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)

func newScheduler(stats *mocks.MockStatsRepository, quizzes *mocks.MockQuizRepository) *Scheduler {
	s := NewScheduler(stats, quizzes, 3, 24*time.Hour, zap.NewNop())
	s.now = func() time.Time { return testNow }
	return s
}

func TestGenerateDigestsSkipsUsersWithNothingDue(t *testing.T) {
	stats := &mocks.MockStatsRepository{}
	quizzes := &mocks.MockQuizRepository{}
	s := newScheduler(stats, quizzes)

	stats.On("DueByUser", mock.Anything, testNow).Return([]models.ReviewDigest{
		{UserID: 1, DueCount: 12},
		{UserID: 2, DueCount: 0},
	}, nil)
	stats.On("InsertDigest", mock.Anything, models.ReviewDigest{
		UserID: 1, DueCount: 12, GeneratedAt: testNow,
	}).Return(nil)

	s.GenerateDigests()

	stats.AssertExpectations(t)
	stats.AssertNumberOfCalls(t, "InsertDigest", 1)
}

func TestExpireStaleAttemptsUsesTTLCutoff(t *testing.T) {
	stats := &mocks.MockStatsRepository{}
	quizzes := &mocks.MockQuizRepository{}
	s := newScheduler(stats, quizzes)

	quizzes.On("ExpireStale", mock.Anything, testNow.Add(-24*time.Hour)).Return(int64(3), nil)

	s.ExpireStaleAttempts()

	quizzes.AssertExpectations(t)
}
