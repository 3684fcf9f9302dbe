package services

import (
	"context"
	"strings"
	"time"

	"github.com/linguaflash/linguaflash/internal/errors"
	"github.com/linguaflash/linguaflash/internal/logger"
	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/linguaflash/linguaflash/internal/repository"
	"go.uber.org/zap"
)

// QuizService runs quiz attempts: starting, answering and grading.
type QuizService interface {
	GetQuiz(ctx context.Context, id int64) (*models.QuizWithQuestions, error)
	GetLessonQuiz(ctx context.Context, lessonID int64) (*models.QuizWithQuestions, error)
	StartAttempt(ctx context.Context, userID, quizID int64) (*models.QuizAttempt, error)
	// SubmitAnswer grades one answer in an active attempt and stores it.
	// Resubmitting the same question overwrites the previous answer.
	SubmitAnswer(ctx context.Context, userID, attemptID, questionID int64, answer string) (*models.QuizAnswer, error)
	// CompleteAttempt grades the attempt, updates lesson progress and feeds
	// word-linked questions into the vocabulary tracker.
	CompleteAttempt(ctx context.Context, userID, attemptID int64) (*models.QuizResult, error)
}

type quizService struct {
	quizzes    repository.QuizRepository
	lessons    LessonService
	vocabulary VocabularyService
	now        func() time.Time
}

// NewQuizService creates a new QuizService.
func NewQuizService(quizzes repository.QuizRepository, lessons LessonService, vocabulary VocabularyService) QuizService {
	return &quizService{
		quizzes:    quizzes,
		lessons:    lessons,
		vocabulary: vocabulary,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *quizService) GetQuiz(ctx context.Context, id int64) (*models.QuizWithQuestions, error) {
	quiz, err := s.quizzes.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if quiz == nil {
		return nil, errors.NewNotFoundError("quiz", id)
	}
	return quiz, nil
}

func (s *quizService) GetLessonQuiz(ctx context.Context, lessonID int64) (*models.QuizWithQuestions, error) {
	quiz, err := s.quizzes.GetByLesson(ctx, lessonID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if quiz == nil {
		return nil, errors.NewNotFoundError("quiz for lesson", lessonID)
	}
	return quiz, nil
}

func (s *quizService) StartAttempt(ctx context.Context, userID, quizID int64) (*models.QuizAttempt, error) {
	log := logger.FromContext(ctx)

	if _, err := s.GetQuiz(ctx, quizID); err != nil {
		return nil, err
	}

	attempt, err := s.quizzes.CreateAttempt(ctx, userID, quizID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	log.Info("quiz attempt started",
		zap.Int64("user_id", userID),
		zap.Int64("quiz_id", quizID),
		zap.Int64("attempt_id", attempt.ID))
	return attempt, nil
}

// activeAttempt loads the attempt and verifies ownership and state.
func (s *quizService) activeAttempt(ctx context.Context, userID, attemptID int64) (*models.QuizAttempt, error) {
	attempt, err := s.quizzes.GetAttempt(ctx, attemptID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if attempt == nil || attempt.UserID != userID {
		return nil, errors.NewNotFoundError("quiz attempt", attemptID)
	}
	if attempt.Status != models.AttemptActive {
		return nil, errors.NewConflictError("quiz attempt is no longer active")
	}
	return attempt, nil
}

func (s *quizService) SubmitAnswer(ctx context.Context, userID, attemptID, questionID int64, answer string) (*models.QuizAnswer, error) {
	attempt, err := s.activeAttempt(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.GetQuiz(ctx, attempt.QuizID)
	if err != nil {
		return nil, err
	}

	var question *models.QuizQuestion
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == questionID {
			question = &quiz.Questions[i]
			break
		}
	}
	if question == nil {
		return nil, errors.NewValidationError("question_id", "question does not belong to this quiz")
	}

	correct := checkAnswer(*question, answer)
	graded := models.QuizAnswer{
		AttemptID:  attemptID,
		QuestionID: questionID,
		Answer:     answer,
		IsCorrect:  correct,
		AnsweredAt: s.now(),
	}
	if correct {
		graded.PointsEarned = question.Points
	}

	if err := s.quizzes.UpsertAnswer(ctx, graded); err != nil {
		return nil, errors.NewInternalError(err)
	}
	return &graded, nil
}

func (s *quizService) CompleteAttempt(ctx context.Context, userID, attemptID int64) (*models.QuizResult, error) {
	log := logger.FromContext(ctx)

	attempt, err := s.activeAttempt(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	quiz, err := s.GetQuiz(ctx, attempt.QuizID)
	if err != nil {
		return nil, err
	}
	answers, err := s.quizzes.Answers(ctx, attemptID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	byQuestion := make(map[int64]models.QuizAnswer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	var totalPoints, earnedPoints float64
	var correctCount int
	for _, q := range quiz.Questions {
		totalPoints += q.Points
		answer, answered := byQuestion[q.ID]
		if answered && answer.IsCorrect {
			earnedPoints += answer.PointsEarned
			correctCount++
		}

		// Unanswered word-linked questions count as failed recalls.
		if q.WordID != nil {
			if answered && answer.IsCorrect {
				if _, err := s.vocabulary.MarkCorrect(ctx, userID, *q.WordID, 4); err != nil {
					log.Warn("failed to record correct word use", zap.Int64("word_id", *q.WordID), zap.Error(err))
				}
			} else {
				if _, err := s.vocabulary.MarkIncorrect(ctx, userID, *q.WordID); err != nil {
					log.Warn("failed to record incorrect word use", zap.Int64("word_id", *q.WordID), zap.Error(err))
				}
			}
		}
	}

	var score float64
	if totalPoints > 0 {
		score = earnedPoints / totalPoints * 100
	}
	passed := score >= quiz.PassScore

	now := s.now()
	attempt.Status = models.AttemptCompleted
	attempt.Score = &score
	attempt.Passed = &passed
	attempt.CompletedAt = &now
	attempt.TimeSpentSeconds = int(now.Sub(attempt.StartedAt).Seconds())
	if err := s.quizzes.CompleteAttempt(ctx, *attempt); err != nil {
		return nil, errors.NewInternalError(err)
	}

	if _, err := s.lessons.CompleteComponent(ctx, userID, quiz.LessonID, models.ComponentQuiz, &score); err != nil {
		log.Warn("failed to update lesson progress after quiz",
			zap.Int64("lesson_id", quiz.LessonID), zap.Error(err))
	}

	log.Info("quiz attempt completed",
		zap.Int64("attempt_id", attemptID),
		zap.Float64("score", score),
		zap.Bool("passed", passed))
	return &models.QuizResult{
		AttemptID:        attemptID,
		Score:            score,
		Passed:           passed,
		TotalQuestions:   len(quiz.Questions),
		CorrectAnswers:   correctCount,
		TimeSpentSeconds: attempt.TimeSpentSeconds,
	}, nil
}

// checkAnswer grades a submitted answer against the question key. Choice
// questions compare exactly; fill-in answers ignore case and whitespace.
func checkAnswer(question models.QuizQuestion, answer string) bool {
	switch question.QuestionType {
	case models.QuestionFillBlank:
		return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(question.Answer))
	default:
		return answer == question.Answer
	}
}
