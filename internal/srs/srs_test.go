package srs_test

import (
	"testing"
	"time"

	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/linguaflash/linguaflash/internal/srs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newItem() models.ReviewItem {
	return srs.DefaultPolicy().NewItem(1, 42, now)
}

func TestApply_RejectsInvalidQuality(t *testing.T) {
	p := srs.DefaultPolicy()
	item := newItem()

	for _, q := range []int{-1, 6, 100} {
		updated, err := p.Apply(item, q, now)
		require.Error(t, err, "quality %d should be rejected", q)
		assert.Equal(t, item, updated, "state must not change on invalid quality")
	}
}

func TestApply_FirstThreeSuccesses(t *testing.T) {
	p := srs.DefaultPolicy()
	item := newItem()
	item.TimesCorrect = 1

	// First success: interval 1 day.
	item, err := p.Apply(item, 4, now)
	require.NoError(t, err)
	assert.Equal(t, 1, item.IntervalDays)
	assert.Equal(t, 1, item.Repetitions)
	assert.Equal(t, now.AddDate(0, 0, 1), item.NextReviewAt)

	// Second success: interval 6 days.
	item.TimesCorrect++
	item, err = p.Apply(item, 4, now)
	require.NoError(t, err)
	assert.Equal(t, 6, item.IntervalDays)
	assert.Equal(t, 2, item.Repetitions)

	// Third success: round(6 * ease). Ease stayed at 2.5 for quality 4.
	item.TimesCorrect++
	item, err = p.Apply(item, 4, now)
	require.NoError(t, err)
	assert.Equal(t, 15, item.IntervalDays)
	assert.Equal(t, 3, item.Repetitions)
}

func TestApply_FailureResetsProgress(t *testing.T) {
	p := srs.DefaultPolicy()

	for _, q := range []int{0, 1, 2} {
		item := newItem()
		item.Status = models.StatusLearning
		item.IntervalDays = 30
		item.Repetitions = 4
		item.TimesCorrect = 10
		item.TimesIncorrect = 1

		updated, err := p.Apply(item, q, now)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.IntervalDays, "quality %d must reset interval", q)
		assert.Equal(t, 0, updated.Repetitions, "quality %d must reset repetitions", q)
		assert.Less(t, updated.EaseFactor, item.EaseFactor)
		assert.Equal(t, now.AddDate(0, 0, 1), updated.NextReviewAt)
	}
}

func TestApply_EaseNeverBelowFloor(t *testing.T) {
	p := srs.DefaultPolicy()
	item := newItem()
	item.TimesIncorrect = 1

	for i := 0; i < 20; i++ {
		var err error
		item, err = p.Apply(item, 0, now)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, item.EaseFactor, 1.3)
	}
	assert.Equal(t, 1.3, item.EaseFactor)
}

func TestApply_SuccessMonotonicity(t *testing.T) {
	p := srs.DefaultPolicy()
	p.MaxIntervalDays = 0 // no cap, growth must still be monotonic
	item := newItem()

	prevInterval := 0
	prevEase := 0.0
	for i := 0; i < 15; i++ {
		item.TimesCorrect++
		var err error
		item, err = p.Apply(item, 5, now)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, item.IntervalDays, prevInterval, "interval must not shrink under success")
		assert.GreaterOrEqual(t, item.EaseFactor, prevEase, "ease must not shrink under quality 5")
		prevInterval = item.IntervalDays
		prevEase = item.EaseFactor
	}
}

func TestApply_IntervalCappedAtMax(t *testing.T) {
	p := srs.DefaultPolicy()
	item := newItem()

	for i := 0; i < 30; i++ {
		item.TimesCorrect++
		var err error
		item, err = p.Apply(item, 5, now)
		require.NoError(t, err)
	}
	assert.Equal(t, p.MaxIntervalDays, item.IntervalDays)
}

func TestApply_NextReviewMatchesInterval(t *testing.T) {
	p := srs.DefaultPolicy()
	item := newItem()

	for _, q := range []int{5, 4, 2, 3, 5, 0, 4} {
		if q >= srs.PassThreshold {
			item.TimesCorrect++
		} else {
			item.TimesIncorrect++
		}
		var err error
		item, err = p.Apply(item, q, now)
		require.NoError(t, err)
		require.NotNil(t, item.LastReviewedAt)
		assert.Equal(t, item.LastReviewedAt.AddDate(0, 0, item.IntervalDays), item.NextReviewAt)
		assert.False(t, item.NextReviewAt.Before(*item.LastReviewedAt))
	}
}

func TestApply_PromotionToLearned(t *testing.T) {
	p := srs.DefaultPolicy()
	item := newItem()

	// Three successes at quality 4 keep ease at 2.5 and reach 3 repetitions.
	for i := 0; i < 3; i++ {
		item.TimesCorrect++
		var err error
		item, err = p.Apply(item, 4, now)
		require.NoError(t, err)
	}
	assert.Equal(t, models.StatusLearned, item.Status)
}

func TestApply_MasteredRequiresFiveRepsAndHighEase(t *testing.T) {
	p := srs.DefaultPolicy()
	item := newItem()

	statuses := []models.ReviewStatus{}
	for i := 0; i < 8; i++ {
		item.TimesCorrect++
		var err error
		item, err = p.Apply(item, 5, now)
		require.NoError(t, err)
		statuses = append(statuses, item.Status)

		if item.Status == models.StatusMastered {
			assert.GreaterOrEqual(t, item.Repetitions, 5)
			assert.GreaterOrEqual(t, item.EaseFactor, 3.0)
		}
	}

	assert.Equal(t, models.StatusMastered, item.Status, "perfect streak must eventually master the word")
	assert.Contains(t, statuses, models.StatusLearned, "mastered must be reached through learned, never straight from new")
	assert.NotEqual(t, models.StatusMastered, statuses[0])
}

func TestApply_FailureDemotesLearnedToLearning(t *testing.T) {
	p := srs.DefaultPolicy()
	item := newItem()
	item.Status = models.StatusLearned
	item.Repetitions = 4
	item.TimesCorrect = 4
	item.TimesIncorrect = 1

	item, err := p.Apply(item, 0, now)
	require.NoError(t, err)
	assert.Equal(t, models.StatusLearning, item.Status)
}

func TestApply_RepeatedFailuresMarkForgotten(t *testing.T) {
	p := srs.DefaultPolicy()
	item := newItem()
	item.Status = models.StatusLearning
	item.TimesCorrect = 2
	item.TimesIncorrect = 5 // more than double the correct count

	item, err := p.Apply(item, 1, now)
	require.NoError(t, err)
	assert.Equal(t, models.StatusForgotten, item.Status)
}

func TestApply_MasteredSurvivesLearnedCheck(t *testing.T) {
	p := srs.DefaultPolicy()
	item := newItem()
	item.Status = models.StatusMastered
	item.Repetitions = 6
	item.EaseFactor = 2.6 // above learned threshold, below mastered threshold
	item.TimesCorrect = 10

	item, err := p.Apply(item, 4, now)
	require.NoError(t, err)
	assert.Equal(t, models.StatusMastered, item.Status, "a mastered item must not be demoted by the learned check")
}

func TestMarkKnown(t *testing.T) {
	p := srs.DefaultPolicy()
	item := p.MarkKnown(newItem(), now)

	assert.Equal(t, models.StatusMastered, item.Status)
	assert.Equal(t, 180, item.IntervalDays)
	assert.Equal(t, now.AddDate(0, 0, 180), item.NextReviewAt)
	assert.Equal(t, p.MasteredEase, item.EaseFactor)
}

func TestNewItem_Defaults(t *testing.T) {
	item := newItem()

	assert.Equal(t, models.StatusNew, item.Status)
	assert.Equal(t, 2.5, item.EaseFactor)
	assert.Equal(t, 1, item.IntervalDays)
	assert.Equal(t, 0, item.Repetitions)
	assert.Equal(t, now, item.NextReviewAt)
	assert.Nil(t, item.LastReviewedAt)
}
