package services

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/linguaflash/linguaflash/internal/errors"
	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/linguaflash/linguaflash/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// vocabularyRecorder captures tracker calls made while grading quizzes.
type vocabularyRecorder struct {
	VocabularyService
	correct   []int64
	incorrect []int64
}

func (r *vocabularyRecorder) MarkCorrect(ctx context.Context, userID, wordID int64, quality int) (*models.ReviewItem, error) {
	r.correct = append(r.correct, wordID)
	return &models.ReviewItem{UserID: userID, WordID: wordID}, nil
}

func (r *vocabularyRecorder) MarkIncorrect(ctx context.Context, userID, wordID int64) (*models.ReviewItem, error) {
	r.incorrect = append(r.incorrect, wordID)
	return &models.ReviewItem{UserID: userID, WordID: wordID}, nil
}

// lessonRecorder captures progress updates made when a quiz completes.
type lessonRecorder struct {
	LessonService
	component string
	score     *float64
}

func (r *lessonRecorder) CompleteComponent(ctx context.Context, userID, lessonID int64, component string, score *float64) (*models.LessonProgress, error) {
	r.component = component
	r.score = score
	return &models.LessonProgress{UserID: userID, LessonID: lessonID}, nil
}

func testQuiz() *models.QuizWithQuestions {
	wordID := int64(7)
	return &models.QuizWithQuestions{
		Quiz: models.Quiz{ID: 3, LessonID: 5, Title: "Greetings quiz", PassScore: 70},
		Questions: []models.QuizQuestion{
			{ID: 10, QuizID: 3, Order: 1, QuestionType: models.QuestionMultipleChoice, Prompt: "Pick the greeting", Options: []string{"hello", "table"}, Answer: "hello", Points: 1, WordID: &wordID},
			{ID: 11, QuizID: 3, Order: 2, QuestionType: models.QuestionFillBlank, Prompt: "Good ___!", Answer: "morning", Points: 1},
			{ID: 12, QuizID: 3, Order: 3, QuestionType: models.QuestionTrueFalse, Prompt: "'Hi' is a greeting", Options: []string{"true", "false"}, Answer: "true", Points: 1},
		},
	}
}

func newQuizFixture() (*quizService, *mocks.MockQuizRepository, *vocabularyRecorder, *lessonRecorder) {
	quizzes := &mocks.MockQuizRepository{}
	vocab := &vocabularyRecorder{}
	lessons := &lessonRecorder{}
	svc := NewQuizService(quizzes, lessons, vocab).(*quizService)
	svc.now = func() time.Time { return testNow }
	return svc, quizzes, vocab, lessons
}

func activeAttemptFixture() *models.QuizAttempt {
	return &models.QuizAttempt{
		ID: 20, UserID: 1, QuizID: 3,
		Status:    models.AttemptActive,
		StartedAt: testNow.Add(-90 * time.Second),
	}
}

func TestSubmitAnswerGrading(t *testing.T) {
	tests := []struct {
		name       string
		questionID int64
		answer     string
		correct    bool
	}{
		{"multiple choice exact match", 10, "hello", true},
		{"multiple choice wrong option", 10, "table", false},
		{"fill blank ignores case and spacing", 11, "  Morning ", true},
		{"fill blank wrong word", 11, "evening", false},
		{"true/false exact match", 12, "true", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, quizzes, _, _ := newQuizFixture()
			ctx := context.Background()

			quizzes.On("GetAttempt", ctx, int64(20)).Return(activeAttemptFixture(), nil)
			quizzes.On("Get", ctx, int64(3)).Return(testQuiz(), nil)
			quizzes.On("UpsertAnswer", ctx, mock.Anything).Return(nil)

			answer, err := svc.SubmitAnswer(ctx, 1, 20, tt.questionID, tt.answer)
			require.NoError(t, err)
			assert.Equal(t, tt.correct, answer.IsCorrect)
			if tt.correct {
				assert.Equal(t, 1.0, answer.PointsEarned)
			} else {
				assert.Zero(t, answer.PointsEarned)
			}
		})
	}
}

func TestSubmitAnswerUnknownQuestion(t *testing.T) {
	svc, quizzes, _, _ := newQuizFixture()
	ctx := context.Background()

	quizzes.On("GetAttempt", ctx, int64(20)).Return(activeAttemptFixture(), nil)
	quizzes.On("Get", ctx, int64(3)).Return(testQuiz(), nil)

	_, err := svc.SubmitAnswer(ctx, 1, 20, 999, "hello")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestSubmitAnswerInactiveAttempt(t *testing.T) {
	svc, quizzes, _, _ := newQuizFixture()
	ctx := context.Background()

	done := activeAttemptFixture()
	done.Status = models.AttemptCompleted
	quizzes.On("GetAttempt", ctx, int64(20)).Return(done, nil)

	_, err := svc.SubmitAnswer(ctx, 1, 20, 10, "hello")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestSubmitAnswerWrongUser(t *testing.T) {
	svc, quizzes, _, _ := newQuizFixture()
	ctx := context.Background()

	quizzes.On("GetAttempt", ctx, int64(20)).Return(activeAttemptFixture(), nil)

	_, err := svc.SubmitAnswer(ctx, 2, 20, 10, "hello")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestCompleteAttemptPassed(t *testing.T) {
	svc, quizzes, vocab, lessons := newQuizFixture()
	ctx := context.Background()

	quizzes.On("GetAttempt", ctx, int64(20)).Return(activeAttemptFixture(), nil)
	quizzes.On("Get", ctx, int64(3)).Return(testQuiz(), nil)
	quizzes.On("Answers", ctx, int64(20)).Return([]models.QuizAnswer{
		{QuestionID: 10, Answer: "hello", IsCorrect: true, PointsEarned: 1},
		{QuestionID: 11, Answer: "morning", IsCorrect: true, PointsEarned: 1},
		{QuestionID: 12, Answer: "true", IsCorrect: true, PointsEarned: 1},
	}, nil)
	quizzes.On("CompleteAttempt", ctx, mock.MatchedBy(func(a models.QuizAttempt) bool {
		return a.Status == models.AttemptCompleted && a.Score != nil && *a.Score == 100
	})).Return(nil)

	result, err := svc.CompleteAttempt(ctx, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Score)
	assert.True(t, result.Passed)
	assert.Equal(t, 3, result.CorrectAnswers)
	assert.Equal(t, 90, result.TimeSpentSeconds)

	// The word-linked question feeds the vocabulary tracker.
	assert.Equal(t, []int64{7}, vocab.correct)
	assert.Empty(t, vocab.incorrect)

	// Lesson progress records the quiz component.
	assert.Equal(t, models.ComponentQuiz, lessons.component)
	require.NotNil(t, lessons.score)
	assert.Equal(t, 100.0, *lessons.score)
}

func TestCompleteAttemptFailedAndUnansweredWordCountsIncorrect(t *testing.T) {
	svc, quizzes, vocab, _ := newQuizFixture()
	ctx := context.Background()

	quizzes.On("GetAttempt", ctx, int64(20)).Return(activeAttemptFixture(), nil)
	quizzes.On("Get", ctx, int64(3)).Return(testQuiz(), nil)
	// Question 10 (word-linked) never answered, one of three correct.
	quizzes.On("Answers", ctx, int64(20)).Return([]models.QuizAnswer{
		{QuestionID: 11, Answer: "morning", IsCorrect: true, PointsEarned: 1},
		{QuestionID: 12, Answer: "false", IsCorrect: false},
	}, nil)
	quizzes.On("CompleteAttempt", ctx, mock.Anything).Return(nil)

	result, err := svc.CompleteAttempt(ctx, 1, 20)
	require.NoError(t, err)
	assert.InDelta(t, 33.3, result.Score, 0.1)
	assert.False(t, result.Passed)
	assert.Equal(t, 1, result.CorrectAnswers)

	assert.Empty(t, vocab.correct)
	assert.Equal(t, []int64{7}, vocab.incorrect)
}
