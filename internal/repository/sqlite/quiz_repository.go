package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/linguaflash/linguaflash/internal/logger"
	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/linguaflash/linguaflash/internal/repository"
	"go.uber.org/zap"
)

type quizRepository struct {
	db *sql.DB
}

// NewQuizRepository creates a new QuizRepository implementation
func NewQuizRepository(db *sql.DB) repository.QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Get(ctx context.Context, id int64) (*models.QuizWithQuestions, error) {
	return r.get(ctx, `WHERE id = ?`, id)
}

func (r *quizRepository) GetByLesson(ctx context.Context, lessonID int64) (*models.QuizWithQuestions, error) {
	return r.get(ctx, `WHERE lesson_id = ?`, lessonID)
}

func (r *quizRepository) get(ctx context.Context, where string, arg any) (*models.QuizWithQuestions, error) {
	log := logger.FromContext(ctx).Named("quiz_repo")

	var q models.QuizWithQuestions
	err := r.db.QueryRowContext(ctx,
		`SELECT id, lesson_id, title, pass_score, created_at FROM quizzes `+where, arg).
		Scan(&q.ID, &q.LessonID, &q.Title, &q.PassScore, &q.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get quiz", zap.Error(err))
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, quiz_id, question_order, question_type, prompt, options, answer, points, word_id
FROM quiz_questions
WHERE quiz_id = ?
ORDER BY question_order
`, q.ID)
	if err != nil {
		log.Error("failed to load quiz questions", zap.Int64("quiz_id", q.ID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var question models.QuizQuestion
		var options string
		var wordID sql.NullInt64
		if err := rows.Scan(&question.ID, &question.QuizID, &question.Order, &question.QuestionType,
			&question.Prompt, &options, &question.Answer, &question.Points, &wordID); err != nil {
			log.Error("failed to scan quiz question", zap.Error(err))
			return nil, err
		}
		if err := json.Unmarshal([]byte(options), &question.Options); err != nil {
			log.Warn("malformed options for question, skipping options",
				zap.Int64("question_id", question.ID), zap.Error(err))
		}
		if wordID.Valid {
			id := wordID.Int64
			question.WordID = &id
		}
		q.Questions = append(q.Questions, question)
	}
	return &q, rows.Err()
}

func (r *quizRepository) CreateAttempt(ctx context.Context, userID, quizID int64) (*models.QuizAttempt, error) {
	log := logger.FromContext(ctx).Named("quiz_repo")
	log.Debug("creating quiz attempt", zap.Int64("user_id", userID), zap.Int64("quiz_id", quizID))

	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
INSERT INTO quiz_attempts (user_id, quiz_id, status, started_at)
VALUES (?, ?, ?, ?)
`, userID, quizID, models.AttemptActive, now)
	if err != nil {
		log.Error("failed to create attempt", zap.Error(err))
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.QuizAttempt{
		ID:        id,
		UserID:    userID,
		QuizID:    quizID,
		Status:    models.AttemptActive,
		StartedAt: now,
	}, nil
}

func (r *quizRepository) GetAttempt(ctx context.Context, id int64) (*models.QuizAttempt, error) {
	log := logger.FromContext(ctx).Named("quiz_repo")

	var a models.QuizAttempt
	var score sql.NullFloat64
	var passed sql.NullBool
	var completed sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT id, user_id, quiz_id, status, score, passed, time_spent_seconds, started_at, completed_at
FROM quiz_attempts
WHERE id = ?
`, id).Scan(&a.ID, &a.UserID, &a.QuizID, &a.Status, &score, &passed, &a.TimeSpentSeconds, &a.StartedAt, &completed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get attempt", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if score.Valid {
		a.Score = &score.Float64
	}
	if passed.Valid {
		a.Passed = &passed.Bool
	}
	if completed.Valid {
		a.CompletedAt = &completed.Time
	}
	return &a, nil
}

func (r *quizRepository) UpsertAnswer(ctx context.Context, ans models.QuizAnswer) error {
	log := logger.FromContext(ctx).Named("quiz_repo")
	log.Debug("upserting answer",
		zap.Int64("attempt_id", ans.AttemptID), zap.Int64("question_id", ans.QuestionID))

	_, err := r.db.ExecContext(ctx, `
INSERT INTO quiz_answers (attempt_id, question_id, answer, is_correct, points_earned, answered_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(attempt_id, question_id) DO UPDATE SET
    answer = excluded.answer,
    is_correct = excluded.is_correct,
    points_earned = excluded.points_earned,
    answered_at = excluded.answered_at
`, ans.AttemptID, ans.QuestionID, ans.Answer, ans.IsCorrect, ans.PointsEarned, ans.AnsweredAt)
	if err != nil {
		log.Error("failed to upsert answer", zap.Error(err))
	}
	return err
}

func (r *quizRepository) Answers(ctx context.Context, attemptID int64) ([]models.QuizAnswer, error) {
	log := logger.FromContext(ctx).Named("quiz_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, attempt_id, question_id, answer, is_correct, points_earned, answered_at
FROM quiz_answers
WHERE attempt_id = ?
ORDER BY question_id
`, attemptID)
	if err != nil {
		log.Error("failed to load answers", zap.Int64("attempt_id", attemptID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var answers []models.QuizAnswer
	for rows.Next() {
		var a models.QuizAnswer
		if err := rows.Scan(&a.ID, &a.AttemptID, &a.QuestionID, &a.Answer, &a.IsCorrect, &a.PointsEarned, &a.AnsweredAt); err != nil {
			log.Error("failed to scan answer row", zap.Error(err))
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}

func (r *quizRepository) CompleteAttempt(ctx context.Context, a models.QuizAttempt) error {
	log := logger.FromContext(ctx).Named("quiz_repo")
	log.Debug("completing attempt", zap.Int64("id", a.ID))

	_, err := r.db.ExecContext(ctx, `
UPDATE quiz_attempts
SET status = ?, score = ?, passed = ?, time_spent_seconds = ?, completed_at = ?
WHERE id = ?
`, a.Status, nullFloat(a.Score), nullBool(a.Passed), a.TimeSpentSeconds, nullTime(a.CompletedAt), a.ID)
	if err != nil {
		log.Error("failed to complete attempt", zap.Error(err))
	}
	return err
}

func (r *quizRepository) ExpireStale(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx).Named("quiz_repo")

	res, err := r.db.ExecContext(ctx, `
UPDATE quiz_attempts
SET status = ?
WHERE status = ? AND started_at < ?
`, models.AttemptExpired, models.AttemptActive, cutoff)
	if err != nil {
		log.Error("failed to expire stale attempts", zap.Error(err))
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Info("expired stale quiz attempts", zap.Int64("count", n))
	}
	return n, nil
}

func nullBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}
