package services

import (
	"context"
	"time"

	"github.com/linguaflash/linguaflash/internal/errors"
	"github.com/linguaflash/linguaflash/internal/logger"
	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/linguaflash/linguaflash/internal/repository"
	"github.com/linguaflash/linguaflash/internal/srs"
	"go.uber.org/zap"
)

// VocabularyService tracks a user's vocabulary with spaced repetition.
type VocabularyService interface {
	MarkEncountered(ctx context.Context, userID, wordID int64, lessonID *int64) (*models.ReviewItem, error)
	MarkCorrect(ctx context.Context, userID, wordID int64, quality int) (*models.ReviewItem, error)
	MarkIncorrect(ctx context.Context, userID, wordID int64) (*models.ReviewItem, error)
	MarkKnown(ctx context.Context, userID, wordID int64) (*models.ReviewItem, error)
	DueWords(ctx context.Context, userID int64, limit int) ([]models.ReviewItemWithWord, error)
	Stats(ctx context.Context, userID int64) (*models.VocabularyStat, error)
}

type vocabularyService struct {
	reviews repository.ReviewRepository
	words   repository.WordRepository
	stats   repository.StatsRepository
	policy  srs.Policy
	now     func() time.Time
}

// NewVocabularyService creates a new VocabularyService.
func NewVocabularyService(reviews repository.ReviewRepository, words repository.WordRepository, stats repository.StatsRepository, policy srs.Policy) VocabularyService {
	return &vocabularyService{
		reviews: reviews,
		words:   words,
		stats:   stats,
		policy:  policy,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *vocabularyService) checkWord(ctx context.Context, wordID int64) error {
	word, err := s.words.Get(ctx, wordID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if word == nil {
		return errors.NewNotFoundError("word", wordID)
	}
	return nil
}

// MarkEncountered records that the user has seen the word, e.g. inside a
// lesson text. Seeing a word twice moves it from new to learning; a
// forgotten word comes back to learning.
func (s *vocabularyService) MarkEncountered(ctx context.Context, userID, wordID int64, lessonID *int64) (*models.ReviewItem, error) {
	log := logger.FromContext(ctx)
	log.Debug("marking word encountered", zap.Int64("user_id", userID), zap.Int64("word_id", wordID))

	if err := s.checkWord(ctx, wordID); err != nil {
		return nil, err
	}

	now := s.now()
	item, err := s.reviews.Review(ctx, userID, wordID,
		func() models.ReviewItem {
			fresh := s.policy.NewItem(userID, wordID, now)
			fresh.LessonID = lessonID
			return fresh
		},
		func(item *models.ReviewItem) error {
			item.TimesSeen++
			if item.LessonID == nil && lessonID != nil {
				item.LessonID = lessonID
			}
			switch {
			case item.Status == models.StatusForgotten:
				item.Status = models.StatusLearning
			case item.Status == models.StatusNew && item.TimesSeen >= 2:
				item.Status = models.StatusLearning
			}
			return nil
		})
	if err != nil {
		return nil, wrapServiceErr(err)
	}
	log.Debug("word encountered",
		zap.Int64("word_id", wordID), zap.Int("times_seen", item.TimesSeen), zap.String("status", string(item.Status)))
	return item, nil
}

// MarkCorrect records a successful use of the word and reschedules it.
// quality grades the recall from 3 (correct with effort) to 5 (perfect);
// values below 3 belong to MarkIncorrect but are accepted by SM-2 as-is.
func (s *vocabularyService) MarkCorrect(ctx context.Context, userID, wordID int64, quality int) (*models.ReviewItem, error) {
	log := logger.FromContext(ctx)
	log.Debug("marking word correct",
		zap.Int64("user_id", userID), zap.Int64("word_id", wordID), zap.Int("quality", quality))

	// Reject out-of-range quality before touching any state.
	if quality < srs.MinQuality || quality > srs.MaxQuality {
		return nil, errors.NewValidationError("quality", "must be between 0 and 5")
	}
	if err := s.checkWord(ctx, wordID); err != nil {
		return nil, err
	}

	now := s.now()
	item, err := s.reviews.Review(ctx, userID, wordID,
		func() models.ReviewItem {
			fresh := s.policy.NewItem(userID, wordID, now)
			fresh.Status = models.StatusLearning
			return fresh
		},
		func(item *models.ReviewItem) error {
			if quality >= srs.PassThreshold {
				item.TimesCorrect++
			} else {
				item.TimesIncorrect++
			}
			updated, err := s.policy.Apply(*item, quality, now)
			if err != nil {
				return err
			}
			*item = updated
			return nil
		})
	if err != nil {
		return nil, wrapServiceErr(err)
	}

	if err := s.reviews.InsertEvent(ctx, models.ReviewEvent{
		ItemID:     item.ID,
		Quality:    quality,
		Correct:    quality >= srs.PassThreshold,
		ReviewedAt: now,
	}); err != nil {
		// Don't fail the review if history storage fails.
		log.Warn("failed to store review event", zap.Error(err))
	}

	log.Info("word reviewed",
		zap.Int64("word_id", wordID),
		zap.Int("interval_days", item.IntervalDays),
		zap.String("status", string(item.Status)))
	return item, nil
}

// MarkIncorrect records a failed use of the word: quality 0 on the SM-2
// scale, which resets the interval and may demote the status.
func (s *vocabularyService) MarkIncorrect(ctx context.Context, userID, wordID int64) (*models.ReviewItem, error) {
	log := logger.FromContext(ctx)
	log.Debug("marking word incorrect", zap.Int64("user_id", userID), zap.Int64("word_id", wordID))

	if err := s.checkWord(ctx, wordID); err != nil {
		return nil, err
	}

	now := s.now()
	item, err := s.reviews.Review(ctx, userID, wordID,
		func() models.ReviewItem {
			fresh := s.policy.NewItem(userID, wordID, now)
			fresh.Status = models.StatusLearning
			return fresh
		},
		func(item *models.ReviewItem) error {
			item.TimesIncorrect++
			updated, err := s.policy.Apply(*item, 0, now)
			if err != nil {
				return err
			}
			*item = updated
			return nil
		})
	if err != nil {
		return nil, wrapServiceErr(err)
	}

	if err := s.reviews.InsertEvent(ctx, models.ReviewEvent{
		ItemID:     item.ID,
		Quality:    0,
		Correct:    false,
		ReviewedAt: now,
	}); err != nil {
		log.Warn("failed to store review event", zap.Error(err))
	}

	log.Info("word reset after failure",
		zap.Int64("word_id", wordID), zap.String("status", string(item.Status)))
	return item, nil
}

// MarkKnown skips the learning phase for a word the user already knows.
func (s *vocabularyService) MarkKnown(ctx context.Context, userID, wordID int64) (*models.ReviewItem, error) {
	log := logger.FromContext(ctx)
	log.Debug("marking word as known", zap.Int64("user_id", userID), zap.Int64("word_id", wordID))

	if err := s.checkWord(ctx, wordID); err != nil {
		return nil, err
	}

	now := s.now()
	item, err := s.reviews.Review(ctx, userID, wordID,
		func() models.ReviewItem { return s.policy.NewItem(userID, wordID, now) },
		func(item *models.ReviewItem) error {
			*item = s.policy.MarkKnown(*item, now)
			return nil
		})
	if err != nil {
		return nil, wrapServiceErr(err)
	}
	return item, nil
}

func (s *vocabularyService) DueWords(ctx context.Context, userID int64, limit int) ([]models.ReviewItemWithWord, error) {
	log := logger.FromContext(ctx)
	log.Debug("fetching due words", zap.Int64("user_id", userID), zap.Int("limit", limit))

	items, err := s.reviews.Due(ctx, userID, s.now(), limit)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return items, nil
}

func (s *vocabularyService) Stats(ctx context.Context, userID int64) (*models.VocabularyStat, error) {
	stats, err := s.stats.VocabularyStats(ctx, userID, s.now())
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

// wrapServiceErr keeps AppErrors intact and wraps everything else as internal.
func wrapServiceErr(err error) error {
	if _, ok := err.(*errors.AppError); ok {
		return err
	}
	return errors.NewInternalError(err)
}
