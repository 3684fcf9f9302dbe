package mocks

import (
	"context"
	"time"

	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockReviewRepository is a mock implementation of repository.ReviewRepository.
// Review executes the create/mutate callbacks against an in-memory item so
// service tests exercise the real mutation logic.
type MockReviewRepository struct {
	mock.Mock

	// Existing, when set, is returned to Review's mutate callback instead of
	// a freshly created item.
	Existing *models.ReviewItem
}

func (m *MockReviewRepository) Get(ctx context.Context, userID, wordID int64) (*models.ReviewItem, error) {
	args := m.Called(ctx, userID, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewItem), args.Error(1)
}

func (m *MockReviewRepository) Review(ctx context.Context, userID, wordID int64, create func() models.ReviewItem, mutate func(*models.ReviewItem) error) (*models.ReviewItem, error) {
	args := m.Called(ctx, userID, wordID)
	if err := args.Error(1); err != nil {
		return nil, err
	}

	var item models.ReviewItem
	if m.Existing != nil {
		item = *m.Existing
	} else {
		item = create()
	}
	if err := mutate(&item); err != nil {
		return nil, err
	}
	m.Existing = &item
	return &item, args.Error(1)
}

func (m *MockReviewRepository) Due(ctx context.Context, userID int64, now time.Time, limit int) ([]models.ReviewItemWithWord, error) {
	args := m.Called(ctx, userID, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewItemWithWord), args.Error(1)
}

func (m *MockReviewRepository) DueCount(ctx context.Context, userID int64, now time.Time) (int, error) {
	args := m.Called(ctx, userID, now)
	return args.Int(0), args.Error(1)
}

func (m *MockReviewRepository) InsertEvent(ctx context.Context, event models.ReviewEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
