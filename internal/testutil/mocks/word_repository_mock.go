package mocks

import (
	"context"

	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockWordRepository is a mock implementation of repository.WordRepository
type MockWordRepository struct {
	mock.Mock
}

func (m *MockWordRepository) Get(ctx context.Context, id int64) (*models.Word, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Word), args.Error(1)
}

func (m *MockWordRepository) GetByHeadword(ctx context.Context, headword string) (*models.Word, error) {
	args := m.Called(ctx, headword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Word), args.Error(1)
}

func (m *MockWordRepository) List(ctx context.Context, filter models.WordFilter) ([]models.Word, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Word), args.Error(1)
}

func (m *MockWordRepository) Count(ctx context.Context, filter models.WordFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockWordRepository) Insert(ctx context.Context, word models.Word) (int64, error) {
	args := m.Called(ctx, word)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWordRepository) Update(ctx context.Context, word models.Word) error {
	args := m.Called(ctx, word)
	return args.Error(0)
}

func (m *MockWordRepository) Upsert(ctx context.Context, word models.Word) (int64, bool, error) {
	args := m.Called(ctx, word)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}
