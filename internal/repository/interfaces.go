package repository

import (
	"context"
	"time"

	"github.com/linguaflash/linguaflash/internal/models"
)

// UserRepository handles user data access
type UserRepository interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	Upsert(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id int64) error
}

// WordRepository handles vocabulary word data access
type WordRepository interface {
	Get(ctx context.Context, id int64) (*models.Word, error)
	GetByHeadword(ctx context.Context, headword string) (*models.Word, error)
	List(ctx context.Context, filter models.WordFilter) ([]models.Word, error)
	Count(ctx context.Context, filter models.WordFilter) (int, error)
	Insert(ctx context.Context, word models.Word) (int64, error)
	Update(ctx context.Context, word models.Word) error
	// Upsert inserts the word or updates the existing row with the same
	// headword. Reports whether a new row was created.
	Upsert(ctx context.Context, word models.Word) (int64, bool, error)
}

// ReviewRepository handles spaced-repetition state. All timestamps are
// supplied by the caller so scheduling stays deterministic under test.
type ReviewRepository interface {
	// Get returns the item for (user, word), or nil when none exists yet.
	Get(ctx context.Context, userID, wordID int64) (*models.ReviewItem, error)
	// Review runs a read-modify-write against one item inside a single
	// transaction. When no row exists, create supplies the initial state.
	// The mutated item is persisted and returned.
	Review(ctx context.Context, userID, wordID int64, create func() models.ReviewItem, mutate func(*models.ReviewItem) error) (*models.ReviewItem, error)
	// Due returns items with next_review_at <= now, earliest first.
	Due(ctx context.Context, userID int64, now time.Time, limit int) ([]models.ReviewItemWithWord, error)
	DueCount(ctx context.Context, userID int64, now time.Time) (int, error)
	InsertEvent(ctx context.Context, event models.ReviewEvent) error
}

// LessonRepository handles modules, lessons and per-user lesson progress
type LessonRepository interface {
	ListModules(ctx context.Context) ([]models.LessonModule, error)
	ListLessons(ctx context.Context, moduleID int64) ([]models.Lesson, error)
	Get(ctx context.Context, id int64) (*models.LessonWithWords, error)
	GetOrCreateProgress(ctx context.Context, userID, lessonID int64) (*models.LessonProgress, error)
	UpdateProgress(ctx context.Context, progress models.LessonProgress) error
	ModuleProgress(ctx context.Context, userID, moduleID int64) (*models.ModuleProgress, error)
}

// QuizRepository handles quizzes, attempts and answers
type QuizRepository interface {
	Get(ctx context.Context, id int64) (*models.QuizWithQuestions, error)
	GetByLesson(ctx context.Context, lessonID int64) (*models.QuizWithQuestions, error)
	CreateAttempt(ctx context.Context, userID, quizID int64) (*models.QuizAttempt, error)
	GetAttempt(ctx context.Context, id int64) (*models.QuizAttempt, error)
	UpsertAnswer(ctx context.Context, answer models.QuizAnswer) error
	Answers(ctx context.Context, attemptID int64) ([]models.QuizAnswer, error)
	CompleteAttempt(ctx context.Context, attempt models.QuizAttempt) error
	// ExpireStale marks attempts started before cutoff and never completed
	// as expired. Returns the number of attempts touched.
	ExpireStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// StatsRepository handles aggregate statistics
type StatsRepository interface {
	VocabularyStats(ctx context.Context, userID int64, now time.Time) (*models.VocabularyStat, error)
	LevelStats(ctx context.Context, userID int64, now time.Time) ([]models.LevelStat, error)
	ReviewActivity(ctx context.Context, userID int64, days int) ([]models.ActivityStat, error)
	Overview(ctx context.Context, userID int64, now time.Time) (*models.OverviewStat, error)
	// DueByUser returns, for every user with due items, how many are due.
	DueByUser(ctx context.Context, now time.Time) ([]models.ReviewDigest, error)
	InsertDigest(ctx context.Context, digest models.ReviewDigest) error
}
