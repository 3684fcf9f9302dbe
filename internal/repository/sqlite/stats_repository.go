package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/linguaflash/linguaflash/internal/logger"
	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/linguaflash/linguaflash/internal/repository"
	"go.uber.org/zap"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) VocabularyStats(ctx context.Context, userID int64, now time.Time) (*models.VocabularyStat, error) {
	log := logger.FromContext(ctx).Named("stats_repo")
	log.Debug("fetching vocabulary stats", zap.Int64("user_id", userID))

	var stat models.VocabularyStat
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(*) AS total_words,
    COUNT(CASE WHEN status = 'new' THEN 1 END) AS new_words,
    COUNT(CASE WHEN status = 'learning' THEN 1 END) AS learning,
    COUNT(CASE WHEN status = 'learned' THEN 1 END) AS learned,
    COUNT(CASE WHEN status = 'mastered' THEN 1 END) AS mastered,
    COUNT(CASE WHEN status = 'forgotten' THEN 1 END) AS forgotten,
    COUNT(CASE WHEN next_review_at <= ? THEN 1 END) AS due_for_review,
    CASE
        WHEN SUM(times_correct + times_incorrect) > 0
        THEN ROUND(100.0 * SUM(times_correct) / SUM(times_correct + times_incorrect), 1)
        ELSE 0
    END AS average_accuracy,
    COALESCE(AVG(ease_factor), 0) AS avg_ease_factor,
    COALESCE(AVG(interval_days), 0) AS avg_interval_days
FROM review_items
WHERE user_id = ?
`, now, userID).Scan(
		&stat.TotalWords,
		&stat.New,
		&stat.Learning,
		&stat.Learned,
		&stat.Mastered,
		&stat.Forgotten,
		&stat.DueForReview,
		&stat.AverageAccuracy,
		&stat.AvgEaseFactor,
		&stat.AvgIntervalDays,
	)
	if err != nil {
		log.Error("failed to get vocabulary stats", zap.Error(err))
		return nil, err
	}
	return &stat, nil
}

func (r *statsRepository) LevelStats(ctx context.Context, userID int64, now time.Time) ([]models.LevelStat, error) {
	log := logger.FromContext(ctx).Named("stats_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT
    w.level,
    COUNT(*) AS total_words,
    COUNT(CASE WHEN ri.status = 'mastered' THEN 1 END) AS mastered,
    COALESCE(AVG(ri.ease_factor), 0) AS avg_ease,
    CASE
        WHEN SUM(ri.times_correct + ri.times_incorrect) > 0
        THEN ROUND(100.0 * SUM(ri.times_correct) / SUM(ri.times_correct + ri.times_incorrect), 1)
        ELSE 0
    END AS avg_accuracy,
    COUNT(CASE WHEN ri.next_review_at <= ? THEN 1 END) AS due_for_review
FROM review_items ri
JOIN words w ON w.id = ri.word_id
WHERE ri.user_id = ?
GROUP BY w.level
ORDER BY w.level
`, now, userID)
	if err != nil {
		log.Error("failed to query level stats", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var stats []models.LevelStat
	for rows.Next() {
		var s models.LevelStat
		if err := rows.Scan(&s.Level, &s.TotalWords, &s.Mastered, &s.AvgEase, &s.AvgAccuracy, &s.DueForReview); err != nil {
			log.Error("failed to scan level stat", zap.Error(err))
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *statsRepository) ReviewActivity(ctx context.Context, userID int64, days int) ([]models.ActivityStat, error) {
	log := logger.FromContext(ctx).Named("stats_repo")

	if days <= 0 {
		days = 30
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT
    date(re.reviewed_at) AS day,
    COUNT(*) AS reviews,
    COUNT(CASE WHEN re.correct THEN 1 END) AS correct
FROM review_events re
JOIN review_items ri ON ri.id = re.item_id
WHERE ri.user_id = ? AND re.reviewed_at >= datetime('now', ?)
GROUP BY day
ORDER BY day
`, userID, fmt.Sprintf("-%d days", days))
	if err != nil {
		log.Error("failed to query review activity", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var stats []models.ActivityStat
	for rows.Next() {
		var s models.ActivityStat
		if err := rows.Scan(&s.Day, &s.Reviews, &s.Correct); err != nil {
			log.Error("failed to scan activity stat", zap.Error(err))
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *statsRepository) Overview(ctx context.Context, userID int64, now time.Time) (*models.OverviewStat, error) {
	log := logger.FromContext(ctx).Named("stats_repo")

	vocab, err := r.VocabularyStats(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	var out models.OverviewStat
	out.Vocabulary = *vocab

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lesson_progress WHERE user_id = ? AND status = 'completed'`, userID).
		Scan(&out.LessonsCompleted)
	if err != nil {
		log.Error("failed to count completed lessons", zap.Error(err))
		return nil, err
	}

	var avgScore sql.NullFloat64
	err = r.db.QueryRowContext(ctx, `
SELECT COUNT(CASE WHEN passed THEN 1 END), AVG(score)
FROM quiz_attempts
WHERE user_id = ? AND status = 'completed'
`, userID).Scan(&out.QuizzesPassed, &avgScore)
	if err != nil {
		log.Error("failed to aggregate quiz attempts", zap.Error(err))
		return nil, err
	}
	if avgScore.Valid {
		out.AvgQuizScore = avgScore.Float64
	}
	return &out, nil
}

func (r *statsRepository) DueByUser(ctx context.Context, now time.Time) ([]models.ReviewDigest, error) {
	log := logger.FromContext(ctx).Named("stats_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT user_id, COUNT(*) AS due_count
FROM review_items
WHERE next_review_at <= ?
GROUP BY user_id
HAVING COUNT(*) > 0
`, now)
	if err != nil {
		log.Error("failed to query due counts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var digests []models.ReviewDigest
	for rows.Next() {
		var d models.ReviewDigest
		if err := rows.Scan(&d.UserID, &d.DueCount); err != nil {
			log.Error("failed to scan due count", zap.Error(err))
			return nil, err
		}
		d.GeneratedAt = now
		digests = append(digests, d)
	}
	return digests, rows.Err()
}

func (r *statsRepository) InsertDigest(ctx context.Context, d models.ReviewDigest) error {
	log := logger.FromContext(ctx).Named("stats_repo")

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_digests (user_id, due_count, generated_at)
VALUES (?, ?, ?)
`, d.UserID, d.DueCount, d.GeneratedAt)
	if err != nil {
		log.Error("failed to insert digest", zap.Int64("user_id", d.UserID), zap.Error(err))
	}
	return err
}
