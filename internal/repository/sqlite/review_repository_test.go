package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/linguaflash/linguaflash/internal/repository"
	"github.com/linguaflash/linguaflash/internal/repository/sqlite"
	"github.com/linguaflash/linguaflash/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type ReviewRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ReviewRepository
}

func (s *ReviewRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewReviewRepository(s.db)
}

func (s *ReviewRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ReviewRepositorySuite) insertUser(username string) int64 {
	res, err := s.db.Exec(`INSERT INTO users (username) VALUES (?)`, username)
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func (s *ReviewRepositorySuite) insertWord(headword string) int64 {
	res, err := s.db.Exec(`INSERT INTO words (headword, translation, word_type, level) VALUES (?, ?, 'noun', 'A1')`, headword, headword+"-tr")
	s.Require().NoError(err)
	id, err := res.LastInsertId()
	s.Require().NoError(err)
	return id
}

func newItem(userID, wordID int64, now time.Time) models.ReviewItem {
	return models.ReviewItem{
		UserID:       userID,
		WordID:       wordID,
		Status:       models.StatusNew,
		EaseFactor:   2.5,
		IntervalDays: 1,
		NextReviewAt: now,
		FirstSeenAt:  now,
		UpdatedAt:    now,
	}
}

func (s *ReviewRepositorySuite) TestReviewCreatesWhenMissing() {
	ctx := context.Background()
	userID := s.insertUser("alice")
	wordID := s.insertWord("house")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	item, err := s.repo.Review(ctx, userID, wordID,
		func() models.ReviewItem { return newItem(userID, wordID, now) },
		func(item *models.ReviewItem) error {
			item.TimesSeen++
			return nil
		})
	s.Require().NoError(err)
	s.Require().NotNil(item)
	s.Assert().Greater(item.ID, int64(0))
	s.Assert().Equal(1, item.TimesSeen)
	s.Assert().Equal(models.StatusNew, item.Status)

	stored, err := s.repo.Get(ctx, userID, wordID)
	s.Require().NoError(err)
	s.Require().NotNil(stored)
	s.Assert().Equal(item.ID, stored.ID)
	s.Assert().Equal(1, stored.TimesSeen)
}

func (s *ReviewRepositorySuite) TestReviewMutatesExisting() {
	ctx := context.Background()
	userID := s.insertUser("alice")
	wordID := s.insertWord("house")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	_, err := s.repo.Review(ctx, userID, wordID,
		func() models.ReviewItem { return newItem(userID, wordID, now) },
		func(item *models.ReviewItem) error { item.TimesSeen++; return nil })
	s.Require().NoError(err)

	later := now.Add(time.Hour)
	item, err := s.repo.Review(ctx, userID, wordID,
		func() models.ReviewItem { return newItem(userID, wordID, later) },
		func(item *models.ReviewItem) error {
			item.TimesCorrect++
			item.Status = models.StatusLearning
			item.EaseFactor = 2.6
			item.IntervalDays = 6
			item.Repetitions = 2
			item.LastReviewedAt = &later
			item.NextReviewAt = later.AddDate(0, 0, 6)
			item.UpdatedAt = later
			return nil
		})
	s.Require().NoError(err)
	s.Assert().Equal(1, item.TimesSeen)
	s.Assert().Equal(1, item.TimesCorrect)

	stored, err := s.repo.Get(ctx, userID, wordID)
	s.Require().NoError(err)
	s.Assert().Equal(models.StatusLearning, stored.Status)
	s.Assert().Equal(2.6, stored.EaseFactor)
	s.Assert().Equal(6, stored.IntervalDays)
	s.Assert().Equal(2, stored.Repetitions)
	s.Require().NotNil(stored.LastReviewedAt)
	s.Assert().WithinDuration(later.AddDate(0, 0, 6), stored.NextReviewAt, time.Second)
}

func (s *ReviewRepositorySuite) TestReviewMutateErrorRollsBack() {
	ctx := context.Background()
	userID := s.insertUser("alice")
	wordID := s.insertWord("house")
	now := time.Now().UTC()

	_, err := s.repo.Review(ctx, userID, wordID,
		func() models.ReviewItem { return newItem(userID, wordID, now) },
		func(item *models.ReviewItem) error { item.TimesSeen = 5; return nil })
	s.Require().NoError(err)

	_, err = s.repo.Review(ctx, userID, wordID,
		func() models.ReviewItem { return newItem(userID, wordID, now) },
		func(item *models.ReviewItem) error {
			item.TimesSeen = 99
			return context.Canceled
		})
	s.Require().Error(err)

	stored, err := s.repo.Get(ctx, userID, wordID)
	s.Require().NoError(err)
	s.Assert().Equal(5, stored.TimesSeen)
}

func (s *ReviewRepositorySuite) TestGetMissingReturnsNil() {
	item, err := s.repo.Get(context.Background(), 1, 1)
	s.Require().NoError(err)
	s.Assert().Nil(item)
}

func (s *ReviewRepositorySuite) TestDueOrdering() {
	ctx := context.Background()
	userID := s.insertUser("alice")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Three items: overdue, just due, and not yet due.
	words := []struct {
		headword string
		due      time.Time
	}{
		{"late", now.Add(-48 * time.Hour)},
		{"now", now},
		{"future", now.Add(24 * time.Hour)},
	}
	for _, w := range words {
		wordID := s.insertWord(w.headword)
		_, err := s.db.Exec(`
			INSERT INTO review_items (user_id, word_id, status, ease_factor, interval_days, next_review_at, first_seen_at, updated_at)
			VALUES (?, ?, 'learning', 2.5, 1, ?, ?, ?)
		`, userID, wordID, w.due, now, now)
		s.Require().NoError(err)
	}

	due, err := s.repo.Due(ctx, userID, now, 10)
	s.Require().NoError(err)
	s.Require().Len(due, 2)
	s.Assert().Equal("late", due[0].Headword)
	s.Assert().Equal("now", due[1].Headword)
	s.Assert().NotEmpty(due[0].Translation)

	count, err := s.repo.DueCount(ctx, userID, now)
	s.Require().NoError(err)
	s.Assert().Equal(2, count)
}

func (s *ReviewRepositorySuite) TestDueRespectsLimit() {
	ctx := context.Background()
	userID := s.insertUser("alice")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for _, headword := range []string{"one", "two", "three"} {
		wordID := s.insertWord(headword)
		_, err := s.db.Exec(`
			INSERT INTO review_items (user_id, word_id, status, ease_factor, interval_days, next_review_at, first_seen_at, updated_at)
			VALUES (?, ?, 'learning', 2.5, 1, ?, ?, ?)
		`, userID, wordID, now.Add(-time.Hour), now, now)
		s.Require().NoError(err)
	}

	due, err := s.repo.Due(ctx, userID, now, 2)
	s.Require().NoError(err)
	s.Assert().Len(due, 2)
}

func (s *ReviewRepositorySuite) TestInsertEvent() {
	ctx := context.Background()
	userID := s.insertUser("alice")
	wordID := s.insertWord("house")
	now := time.Now().UTC()

	item, err := s.repo.Review(ctx, userID, wordID,
		func() models.ReviewItem { return newItem(userID, wordID, now) },
		func(item *models.ReviewItem) error { return nil })
	s.Require().NoError(err)

	err = s.repo.InsertEvent(ctx, models.ReviewEvent{
		ItemID:     item.ID,
		Quality:    4,
		Correct:    true,
		ReviewedAt: now,
	})
	s.Require().NoError(err)

	var quality int
	var correct bool
	err = s.db.QueryRow(`SELECT quality, correct FROM review_events WHERE item_id = ?`, item.ID).Scan(&quality, &correct)
	s.Require().NoError(err)
	s.Assert().Equal(4, quality)
	s.Assert().True(correct)
}

func TestReviewRepositorySuite(t *testing.T) {
	suite.Run(t, new(ReviewRepositorySuite))
}
