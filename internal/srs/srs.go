package srs

import (
	"math"
	"time"

	"github.com/linguaflash/linguaflash/internal/errors"
	"github.com/linguaflash/linguaflash/internal/models"
)

// Quality score bounds. A score below PassThreshold counts as a failed recall.
const (
	MinQuality    = 0
	MaxQuality    = 5
	PassThreshold = 3
)

// Policy carries the tunable constants of the scheduler. The SM-2 arithmetic
// is fixed; the ease default and the promotion thresholds are product policy.
type Policy struct {
	DefaultEase     float64
	MinEase         float64
	LearnedReps     int
	LearnedEase     float64
	MasteredReps    int
	MasteredEase    float64
	MaxIntervalDays int
}

// DefaultPolicy returns the stock policy: SM-2 with ease 2.5, learned at
// 3 repetitions / ease 2.5, mastered at 5 repetitions / ease 3.0.
func DefaultPolicy() Policy {
	return Policy{
		DefaultEase:     2.5,
		MinEase:         1.3,
		LearnedReps:     3,
		LearnedEase:     2.5,
		MasteredReps:    5,
		MasteredEase:    3.0,
		MaxIntervalDays: 365,
	}
}

// NewItem returns the state for a word encountered for the first time.
func (p Policy) NewItem(userID, wordID int64, now time.Time) models.ReviewItem {
	return models.ReviewItem{
		UserID:       userID,
		WordID:       wordID,
		Status:       models.StatusNew,
		EaseFactor:   p.DefaultEase,
		IntervalDays: 1,
		NextReviewAt: now,
		FirstSeenAt:  now,
	}
}

// Apply runs one SM-2 review against a copy of item and returns the updated
// state. quality must be within 0..5: anything else is rejected without
// touching the item, so a bad caller cannot corrupt the schedule.
//
// The item's TimesCorrect/TimesIncorrect counters are expected to already
// reflect this review; Apply uses them for the forgotten demotion rule.
func (p Policy) Apply(item models.ReviewItem, quality int, now time.Time) (models.ReviewItem, error) {
	if quality < MinQuality || quality > MaxQuality {
		return item, errors.NewValidationError("quality", "must be between 0 and 5")
	}

	ef := item.EaseFactor + (0.1 - float64(MaxQuality-quality)*(0.08+float64(MaxQuality-quality)*0.02))
	if ef < p.MinEase {
		ef = p.MinEase
	}
	item.EaseFactor = ef

	if quality < PassThreshold {
		item.Repetitions = 0
		item.IntervalDays = 1
	} else {
		switch item.Repetitions {
		case 0:
			item.IntervalDays = 1
		case 1:
			item.IntervalDays = 6
		default:
			item.IntervalDays = int(math.Round(float64(item.IntervalDays) * ef))
		}
		if p.MaxIntervalDays > 0 && item.IntervalDays > p.MaxIntervalDays {
			item.IntervalDays = p.MaxIntervalDays
		}
		item.Repetitions++
	}
	if item.IntervalDays < 1 {
		item.IntervalDays = 1
	}

	reviewed := now
	item.LastReviewedAt = &reviewed
	item.NextReviewAt = now.AddDate(0, 0, item.IntervalDays)

	item.Status = p.nextStatus(item, quality)
	return item, nil
}

// nextStatus layers the status lifecycle on top of SM-2. Promotion checks
// run mastered-first so an item that satisfies both thresholds lands on
// mastered instead of being stuck at learned.
func (p Policy) nextStatus(item models.ReviewItem, quality int) models.ReviewStatus {
	if quality < PassThreshold {
		// Repeated failures push a word all the way back to forgotten.
		if item.TimesIncorrect > item.TimesCorrect*2 {
			return models.StatusForgotten
		}
		if item.Status == models.StatusLearned || item.Status == models.StatusMastered {
			return models.StatusLearning
		}
		if item.Status == models.StatusNew {
			return models.StatusLearning
		}
		return item.Status
	}

	switch {
	case item.Repetitions >= p.MasteredReps && item.EaseFactor >= p.MasteredEase:
		return models.StatusMastered
	case item.Repetitions >= p.LearnedReps && item.EaseFactor >= p.LearnedEase:
		if item.Status == models.StatusMastered {
			return models.StatusMastered
		}
		return models.StatusLearned
	case item.Status == models.StatusNew || item.Status == models.StatusForgotten:
		return models.StatusLearning
	default:
		return item.Status
	}
}

// MarkKnown short-circuits learning for a word the user already knows.
func (p Policy) MarkKnown(item models.ReviewItem, now time.Time) models.ReviewItem {
	item.Status = models.StatusMastered
	item.Repetitions = 10
	item.EaseFactor = p.MasteredEase
	item.IntervalDays = 180
	reviewed := now
	item.LastReviewedAt = &reviewed
	item.NextReviewAt = now.AddDate(0, 0, item.IntervalDays)
	return item
}
