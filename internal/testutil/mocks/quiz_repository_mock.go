package mocks

import (
	"context"
	"time"

	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockQuizRepository is a mock implementation of repository.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Get(ctx context.Context, id int64) (*models.QuizWithQuestions, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizWithQuestions), args.Error(1)
}

func (m *MockQuizRepository) GetByLesson(ctx context.Context, lessonID int64) (*models.QuizWithQuestions, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizWithQuestions), args.Error(1)
}

func (m *MockQuizRepository) CreateAttempt(ctx context.Context, userID, quizID int64) (*models.QuizAttempt, error) {
	args := m.Called(ctx, userID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizAttempt), args.Error(1)
}

func (m *MockQuizRepository) GetAttempt(ctx context.Context, id int64) (*models.QuizAttempt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuizAttempt), args.Error(1)
}

func (m *MockQuizRepository) UpsertAnswer(ctx context.Context, answer models.QuizAnswer) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

func (m *MockQuizRepository) Answers(ctx context.Context, attemptID int64) ([]models.QuizAnswer, error) {
	args := m.Called(ctx, attemptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QuizAnswer), args.Error(1)
}

func (m *MockQuizRepository) CompleteAttempt(ctx context.Context, attempt models.QuizAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockQuizRepository) ExpireStale(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
