package mocks

import (
	"context"

	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockLessonRepository is a mock implementation of repository.LessonRepository
type MockLessonRepository struct {
	mock.Mock
}

func (m *MockLessonRepository) ListModules(ctx context.Context) ([]models.LessonModule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LessonModule), args.Error(1)
}

func (m *MockLessonRepository) ListLessons(ctx context.Context, moduleID int64) ([]models.Lesson, error) {
	args := m.Called(ctx, moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lesson), args.Error(1)
}

func (m *MockLessonRepository) Get(ctx context.Context, id int64) (*models.LessonWithWords, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LessonWithWords), args.Error(1)
}

func (m *MockLessonRepository) GetOrCreateProgress(ctx context.Context, userID, lessonID int64) (*models.LessonProgress, error) {
	args := m.Called(ctx, userID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LessonProgress), args.Error(1)
}

func (m *MockLessonRepository) UpdateProgress(ctx context.Context, progress models.LessonProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockLessonRepository) ModuleProgress(ctx context.Context, userID, moduleID int64) (*models.ModuleProgress, error) {
	args := m.Called(ctx, userID, moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ModuleProgress), args.Error(1)
}
