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

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new LessonRepository implementation
func NewLessonRepository(db *sql.DB) repository.LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) ListModules(ctx context.Context) ([]models.LessonModule, error) {
	log := logger.FromContext(ctx).Named("lesson_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, description, level, module_number, total_lessons, is_active, created_at
FROM modules
WHERE is_active = 1
ORDER BY level, module_number
`)
	if err != nil {
		log.Error("failed to list modules", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var modules []models.LessonModule
	for rows.Next() {
		var m models.LessonModule
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Level, &m.ModuleNumber, &m.TotalLessons, &m.IsActive, &m.CreatedAt); err != nil {
			log.Error("failed to scan module row", zap.Error(err))
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

func (r *lessonRepository) ListLessons(ctx context.Context, moduleID int64) ([]models.Lesson, error) {
	log := logger.FromContext(ctx).Named("lesson_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, module_id, lesson_number, title, description, grammar_focus, theory, is_active, created_at
FROM lessons
WHERE module_id = ? AND is_active = 1
ORDER BY lesson_number
`, moduleID)
	if err != nil {
		log.Error("failed to list lessons", zap.Int64("module_id", moduleID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var l models.Lesson
		if err := rows.Scan(&l.ID, &l.ModuleID, &l.LessonNumber, &l.Title, &l.Description, &l.GrammarFocus, &l.Theory, &l.IsActive, &l.CreatedAt); err != nil {
			log.Error("failed to scan lesson row", zap.Error(err))
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func (r *lessonRepository) Get(ctx context.Context, id int64) (*models.LessonWithWords, error) {
	log := logger.FromContext(ctx).Named("lesson_repo")

	var lw models.LessonWithWords
	err := r.db.QueryRowContext(ctx, `
SELECT id, module_id, lesson_number, title, description, grammar_focus, theory, is_active, created_at
FROM lessons
WHERE id = ?
`, id).Scan(&lw.ID, &lw.ModuleID, &lw.LessonNumber, &lw.Title, &lw.Description, &lw.GrammarFocus, &lw.Theory, &lw.IsActive, &lw.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get lesson", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT w.id, w.headword, w.translation, w.definition, w.example, w.word_type, w.level, w.created_at
FROM lesson_words lw
JOIN words w ON w.id = lw.word_id
WHERE lw.lesson_id = ?
ORDER BY w.headword
`, id)
	if err != nil {
		log.Error("failed to load lesson vocabulary", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var w models.Word
		if err := rows.Scan(&w.ID, &w.Headword, &w.Translation, &w.Definition, &w.Example, &w.WordType, &w.Level, &w.CreatedAt); err != nil {
			log.Error("failed to scan lesson word", zap.Error(err))
			return nil, err
		}
		lw.Words = append(lw.Words, w)
	}
	return &lw, rows.Err()
}

func (r *lessonRepository) GetOrCreateProgress(ctx context.Context, userID, lessonID int64) (*models.LessonProgress, error) {
	log := logger.FromContext(ctx).Named("lesson_repo")

	var result *models.LessonProgress
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		p, err := scanLessonProgress(tx.QueryRowContext(ctx,
			lessonProgressSelect+` WHERE user_id = ? AND lesson_id = ?`, userID, lessonID))
		if errors.Is(err, sql.ErrNoRows) {
			now := time.Now().UTC()
			res, err := tx.ExecContext(ctx, `
INSERT INTO lesson_progress (user_id, lesson_id, status, updated_at) VALUES (?, ?, ?, ?)
`, userID, lessonID, models.ProgressNotStarted, now)
			if err != nil {
				return err
			}
			id, err := res.LastInsertId()
			if err != nil {
				return err
			}
			result = &models.LessonProgress{
				ID:        id,
				UserID:    userID,
				LessonID:  lessonID,
				Status:    models.ProgressNotStarted,
				UpdatedAt: now,
			}
			return nil
		}
		if err != nil {
			return err
		}
		result = p
		return nil
	})
	if err != nil {
		log.Error("failed to get or create lesson progress",
			zap.Int64("user_id", userID), zap.Int64("lesson_id", lessonID), zap.Error(err))
		return nil, err
	}
	return result, nil
}

const lessonProgressSelect = `
SELECT id, user_id, lesson_id, status, theory_completed, homework_completed, quiz_completed,
       homework_score, quiz_score, overall_score, started_at, completed_at, updated_at
FROM lesson_progress`

func scanLessonProgress(row rowScanner) (*models.LessonProgress, error) {
	var p models.LessonProgress
	var started, completed sql.NullTime
	var homework, quiz, overall sql.NullFloat64
	err := row.Scan(&p.ID, &p.UserID, &p.LessonID, &p.Status,
		&p.TheoryCompleted, &p.HomeworkCompleted, &p.QuizCompleted,
		&homework, &quiz, &overall, &started, &completed, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if homework.Valid {
		p.HomeworkScore = &homework.Float64
	}
	if quiz.Valid {
		p.QuizScore = &quiz.Float64
	}
	if overall.Valid {
		p.OverallScore = &overall.Float64
	}
	if started.Valid {
		p.StartedAt = &started.Time
	}
	if completed.Valid {
		p.CompletedAt = &completed.Time
	}
	return &p, nil
}

func (r *lessonRepository) UpdateProgress(ctx context.Context, p models.LessonProgress) error {
	log := logger.FromContext(ctx).Named("lesson_repo")
	log.Debug("updating lesson progress",
		zap.Int64("user_id", p.UserID), zap.Int64("lesson_id", p.LessonID), zap.String("status", p.Status))

	_, err := r.db.ExecContext(ctx, `
UPDATE lesson_progress
SET status = ?, theory_completed = ?, homework_completed = ?, quiz_completed = ?,
    homework_score = ?, quiz_score = ?, overall_score = ?,
    started_at = ?, completed_at = ?, updated_at = ?
WHERE id = ?
`, p.Status, p.TheoryCompleted, p.HomeworkCompleted, p.QuizCompleted,
		nullFloat(p.HomeworkScore), nullFloat(p.QuizScore), nullFloat(p.OverallScore),
		nullTime(p.StartedAt), nullTime(p.CompletedAt), time.Now().UTC(), p.ID)
	if err != nil {
		log.Error("failed to update lesson progress", zap.Error(err))
	}
	return err
}

func (r *lessonRepository) ModuleProgress(ctx context.Context, userID, moduleID int64) (*models.ModuleProgress, error) {
	log := logger.FromContext(ctx).Named("lesson_repo")

	var mp models.ModuleProgress
	mp.UserID = userID
	mp.ModuleID = moduleID
	var avg sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(l.id) AS lessons_total,
    COUNT(CASE WHEN lp.status = 'completed' THEN 1 END) AS lessons_completed,
    AVG(lp.overall_score) AS average_score
FROM lessons l
LEFT JOIN lesson_progress lp ON lp.lesson_id = l.id AND lp.user_id = ?
WHERE l.module_id = ? AND l.is_active = 1
`, userID, moduleID).Scan(&mp.LessonsTotal, &mp.LessonsCompleted, &avg)
	if err != nil {
		log.Error("failed to compute module progress",
			zap.Int64("user_id", userID), zap.Int64("module_id", moduleID), zap.Error(err))
		return nil, err
	}
	if avg.Valid {
		mp.AverageScore = &avg.Float64
	}
	if mp.LessonsTotal > 0 {
		mp.ProgressPercentage = float64(mp.LessonsCompleted) / float64(mp.LessonsTotal) * 100
	}
	return &mp, nil
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
