package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/linguaflash/linguaflash/internal/logger"
	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/linguaflash/linguaflash/internal/repository"
	"go.uber.org/zap"
)

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

const reviewColumns = `id, user_id, word_id, status, times_seen, times_correct, times_incorrect,
ease_factor, interval_days, repetitions, last_reviewed_at, next_review_at, lesson_id, first_seen_at, updated_at`

type rowScanner interface {
	Scan(...any) error
}

func scanReviewItem(row rowScanner) (*models.ReviewItem, error) {
	var item models.ReviewItem
	var lastReviewed sql.NullTime
	var lessonID sql.NullInt64
	err := row.Scan(&item.ID, &item.UserID, &item.WordID, &item.Status,
		&item.TimesSeen, &item.TimesCorrect, &item.TimesIncorrect,
		&item.EaseFactor, &item.IntervalDays, &item.Repetitions,
		&lastReviewed, &item.NextReviewAt, &lessonID, &item.FirstSeenAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if lastReviewed.Valid {
		t := lastReviewed.Time
		item.LastReviewedAt = &t
	}
	if lessonID.Valid {
		id := lessonID.Int64
		item.LessonID = &id
	}
	return &item, nil
}

func (r *reviewRepository) Get(ctx context.Context, userID, wordID int64) (*models.ReviewItem, error) {
	log := logger.FromContext(ctx).Named("review_repo")

	item, err := scanReviewItem(r.db.QueryRowContext(ctx,
		`SELECT `+reviewColumns+` FROM review_items WHERE user_id = ? AND word_id = ?`, userID, wordID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get review item",
			zap.Int64("user_id", userID), zap.Int64("word_id", wordID), zap.Error(err))
		return nil, err
	}
	return item, nil
}

// Review serializes concurrent reviews of the same item: the read, the
// caller's mutation and the write all happen inside one transaction.
func (r *reviewRepository) Review(ctx context.Context, userID, wordID int64, create func() models.ReviewItem, mutate func(*models.ReviewItem) error) (*models.ReviewItem, error) {
	log := logger.FromContext(ctx).Named("review_repo")

	var result *models.ReviewItem
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		item, err := scanReviewItem(tx.QueryRowContext(ctx,
			`SELECT `+reviewColumns+` FROM review_items WHERE user_id = ? AND word_id = ?`, userID, wordID))
		if errors.Is(err, sql.ErrNoRows) {
			fresh := create()
			res, err := tx.ExecContext(ctx, `
INSERT INTO review_items (user_id, word_id, status, times_seen, times_correct, times_incorrect,
    ease_factor, interval_days, repetitions, last_reviewed_at, next_review_at, lesson_id, first_seen_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, fresh.UserID, fresh.WordID, fresh.Status, fresh.TimesSeen, fresh.TimesCorrect, fresh.TimesIncorrect,
				fresh.EaseFactor, fresh.IntervalDays, fresh.Repetitions,
				nullTime(fresh.LastReviewedAt), fresh.NextReviewAt, nullInt(fresh.LessonID),
				fresh.FirstSeenAt, fresh.FirstSeenAt)
			if err != nil {
				return err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			fresh.ID = id
			fresh.UpdatedAt = fresh.FirstSeenAt
			item = &fresh
			log.Debug("created review item",
				zap.Int64("user_id", userID), zap.Int64("word_id", wordID), zap.Int64("id", id))
		} else if err != nil {
			return err
		}

		if err := mutate(item); err != nil {
			return err
		}
		item.UpdatedAt = time.Now().UTC()

		_, err = tx.ExecContext(ctx, `
UPDATE review_items
SET status = ?, times_seen = ?, times_correct = ?, times_incorrect = ?,
    ease_factor = ?, interval_days = ?, repetitions = ?,
    last_reviewed_at = ?, next_review_at = ?, lesson_id = ?, updated_at = ?
WHERE id = ?
`, item.Status, item.TimesSeen, item.TimesCorrect, item.TimesIncorrect,
			item.EaseFactor, item.IntervalDays, item.Repetitions,
			nullTime(item.LastReviewedAt), item.NextReviewAt, nullInt(item.LessonID), item.UpdatedAt, item.ID)
		if err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		log.Error("review transaction failed",
			zap.Int64("user_id", userID), zap.Int64("word_id", wordID), zap.Error(err))
		return nil, err
	}
	return result, nil
}

func (r *reviewRepository) Due(ctx context.Context, userID int64, now time.Time, limit int) ([]models.ReviewItemWithWord, error) {
	log := logger.FromContext(ctx).Named("review_repo")
	log.Debug("fetching due items", zap.Int64("user_id", userID), zap.Int("limit", limit))

	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT
    ri.id, ri.user_id, ri.word_id, ri.status, ri.times_seen, ri.times_correct, ri.times_incorrect,
    ri.ease_factor, ri.interval_days, ri.repetitions, ri.last_reviewed_at, ri.next_review_at,
    ri.lesson_id, ri.first_seen_at, ri.updated_at,
    w.headword, w.translation, w.definition, w.example, w.word_type, w.level
FROM review_items ri
JOIN words w ON w.id = ri.word_id
WHERE ri.user_id = ? AND ri.next_review_at <= ?
ORDER BY ri.next_review_at ASC
LIMIT ?
`, userID, now, limit)
	if err != nil {
		log.Error("failed to query due items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []models.ReviewItemWithWord
	for rows.Next() {
		var it models.ReviewItemWithWord
		var lastReviewed sql.NullTime
		var lessonID sql.NullInt64
		if err := rows.Scan(&it.ID, &it.UserID, &it.WordID, &it.Status,
			&it.TimesSeen, &it.TimesCorrect, &it.TimesIncorrect,
			&it.EaseFactor, &it.IntervalDays, &it.Repetitions,
			&lastReviewed, &it.NextReviewAt, &lessonID, &it.FirstSeenAt, &it.UpdatedAt,
			&it.Headword, &it.Translation, &it.Definition, &it.Example, &it.WordType, &it.Level); err != nil {
			log.Error("failed to scan due item", zap.Error(err))
			return nil, err
		}
		if lastReviewed.Valid {
			t := lastReviewed.Time
			it.LastReviewedAt = &t
		}
		if lessonID.Valid {
			id := lessonID.Int64
			it.LessonID = &id
		}
		items = append(items, it)
	}
	log.Debug("found due items", zap.Int("count", len(items)))
	return items, rows.Err()
}

func (r *reviewRepository) DueCount(ctx context.Context, userID int64, now time.Time) (int, error) {
	log := logger.FromContext(ctx).Named("review_repo")

	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM review_items WHERE user_id = ? AND next_review_at <= ?`, userID, now).Scan(&count)
	if err != nil {
		log.Error("failed to count due items", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *reviewRepository) InsertEvent(ctx context.Context, ev models.ReviewEvent) error {
	log := logger.FromContext(ctx).Named("review_repo")

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_events (item_id, quality, correct, reviewed_at)
VALUES (?, ?, ?, ?)
`, ev.ItemID, ev.Quality, ev.Correct, ev.ReviewedAt)
	if err != nil {
		log.Error("failed to insert review event", zap.Int64("item_id", ev.ItemID), zap.Error(err))
	}
	return err
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullInt(i *int64) any {
	if i == nil {
		return nil
	}
	return *i
}
