package services

import (
	"context"
	"time"

	"github.com/linguaflash/linguaflash/internal/errors"
	"github.com/linguaflash/linguaflash/internal/logger"
	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/linguaflash/linguaflash/internal/repository"
	"go.uber.org/zap"
)

// LessonService exposes the course catalog and per-user lesson progress.
type LessonService interface {
	ListModules(ctx context.Context) ([]models.LessonModule, error)
	ListLessons(ctx context.Context, moduleID int64) ([]models.Lesson, error)
	GetLesson(ctx context.Context, id int64) (*models.LessonWithWords, error)
	// StartLesson opens a lesson for the user: progress moves to in_progress
	// and every word in the lesson is marked as encountered.
	StartLesson(ctx context.Context, userID, lessonID int64) (*models.LessonWithWords, *models.LessonProgress, error)
	// CompleteComponent marks one lesson component (theory, homework, quiz)
	// as done, optionally with a score. The lesson completes when all three
	// components are done.
	CompleteComponent(ctx context.Context, userID, lessonID int64, component string, score *float64) (*models.LessonProgress, error)
	Progress(ctx context.Context, userID, lessonID int64) (*models.LessonProgress, error)
	ModuleProgress(ctx context.Context, userID, moduleID int64) (*models.ModuleProgress, error)
}

type lessonService struct {
	lessons    repository.LessonRepository
	vocabulary VocabularyService
	now        func() time.Time
}

// NewLessonService creates a new LessonService.
func NewLessonService(lessons repository.LessonRepository, vocabulary VocabularyService) LessonService {
	return &lessonService{
		lessons:    lessons,
		vocabulary: vocabulary,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *lessonService) ListModules(ctx context.Context) ([]models.LessonModule, error) {
	modules, err := s.lessons.ListModules(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return modules, nil
}

func (s *lessonService) ListLessons(ctx context.Context, moduleID int64) ([]models.Lesson, error) {
	lessons, err := s.lessons.ListLessons(ctx, moduleID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return lessons, nil
}

func (s *lessonService) GetLesson(ctx context.Context, id int64) (*models.LessonWithWords, error) {
	lesson, err := s.lessons.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if lesson == nil {
		return nil, errors.NewNotFoundError("lesson", id)
	}
	return lesson, nil
}

func (s *lessonService) StartLesson(ctx context.Context, userID, lessonID int64) (*models.LessonWithWords, *models.LessonProgress, error) {
	log := logger.FromContext(ctx)

	lesson, err := s.GetLesson(ctx, lessonID)
	if err != nil {
		return nil, nil, err
	}

	progress, err := s.lessons.GetOrCreateProgress(ctx, userID, lessonID)
	if err != nil {
		return nil, nil, errors.NewInternalError(err)
	}

	if progress.Status == models.ProgressNotStarted {
		now := s.now()
		progress.Status = models.ProgressInProgress
		progress.StartedAt = &now
		if err := s.lessons.UpdateProgress(ctx, *progress); err != nil {
			return nil, nil, errors.NewInternalError(err)
		}
	}

	// Seed the vocabulary tracker with the lesson's words so they start
	// showing up in review even before the first quiz.
	for _, word := range lesson.Words {
		if _, err := s.vocabulary.MarkEncountered(ctx, userID, word.ID, &lessonID); err != nil {
			log.Warn("failed to mark lesson word encountered",
				zap.Int64("word_id", word.ID), zap.Error(err))
		}
	}

	log.Info("lesson started",
		zap.Int64("user_id", userID),
		zap.Int64("lesson_id", lessonID),
		zap.Int("words", len(lesson.Words)))
	return lesson, progress, nil
}

func (s *lessonService) CompleteComponent(ctx context.Context, userID, lessonID int64, component string, score *float64) (*models.LessonProgress, error) {
	log := logger.FromContext(ctx)

	if _, err := s.GetLesson(ctx, lessonID); err != nil {
		return nil, err
	}

	progress, err := s.lessons.GetOrCreateProgress(ctx, userID, lessonID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	now := s.now()
	if progress.Status == models.ProgressNotStarted {
		progress.Status = models.ProgressInProgress
		progress.StartedAt = &now
	}

	switch component {
	case models.ComponentTheory:
		progress.TheoryCompleted = true
	case models.ComponentHomework:
		progress.HomeworkCompleted = true
		progress.HomeworkScore = score
	case models.ComponentQuiz:
		progress.QuizCompleted = true
		progress.QuizScore = score
	default:
		return nil, errors.NewValidationError("component", "must be one of theory, homework, quiz")
	}

	if progress.TheoryCompleted && progress.HomeworkCompleted && progress.QuizCompleted {
		progress.Status = models.ProgressCompleted
		progress.CompletedAt = &now
		progress.OverallScore = overallScore(progress.HomeworkScore, progress.QuizScore)
	}

	if err := s.lessons.UpdateProgress(ctx, *progress); err != nil {
		return nil, errors.NewInternalError(err)
	}

	log.Info("lesson component completed",
		zap.Int64("user_id", userID),
		zap.Int64("lesson_id", lessonID),
		zap.String("component", component),
		zap.String("status", progress.Status))
	return progress, nil
}

func (s *lessonService) Progress(ctx context.Context, userID, lessonID int64) (*models.LessonProgress, error) {
	if _, err := s.GetLesson(ctx, lessonID); err != nil {
		return nil, err
	}
	progress, err := s.lessons.GetOrCreateProgress(ctx, userID, lessonID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return progress, nil
}

func (s *lessonService) ModuleProgress(ctx context.Context, userID, moduleID int64) (*models.ModuleProgress, error) {
	progress, err := s.lessons.ModuleProgress(ctx, userID, moduleID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return progress, nil
}

// overallScore averages whichever of the two component scores are present.
func overallScore(homework, quiz *float64) *float64 {
	var sum float64
	var n int
	if homework != nil {
		sum += *homework
		n++
	}
	if quiz != nil {
		sum += *quiz
		n++
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}
