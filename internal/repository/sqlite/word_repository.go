package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/linguaflash/linguaflash/internal/logger"
	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/linguaflash/linguaflash/internal/repository"
	"go.uber.org/zap"
)

type wordRepository struct {
	db *sql.DB
}

// NewWordRepository creates a new WordRepository implementation
func NewWordRepository(db *sql.DB) repository.WordRepository {
	return &wordRepository{db: db}
}

const wordColumns = "id, headword, translation, definition, example, word_type, level, created_at"

func scanWord(row interface{ Scan(...any) error }) (*models.Word, error) {
	var w models.Word
	err := row.Scan(&w.ID, &w.Headword, &w.Translation, &w.Definition, &w.Example, &w.WordType, &w.Level, &w.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *wordRepository) Get(ctx context.Context, id int64) (*models.Word, error) {
	log := logger.FromContext(ctx).Named("word_repo")

	w, err := scanWord(r.db.QueryRowContext(ctx, `SELECT `+wordColumns+` FROM words WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get word", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return w, nil
}

func (r *wordRepository) GetByHeadword(ctx context.Context, headword string) (*models.Word, error) {
	log := logger.FromContext(ctx).Named("word_repo")

	w, err := scanWord(r.db.QueryRowContext(ctx, `SELECT `+wordColumns+` FROM words WHERE headword = ?`, headword))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get word by headword", zap.String("headword", headword), zap.Error(err))
		return nil, err
	}
	return w, nil
}

func (r *wordRepository) List(ctx context.Context, filter models.WordFilter) ([]models.Word, error) {
	log := logger.FromContext(ctx).Named("word_repo")
	log.Debug("listing words",
		zap.String("level", filter.Level),
		zap.String("word_type", filter.WordType),
		zap.String("search", filter.Search))

	query := sqlBuilder.Select(
		"id", "headword", "translation", "definition", "example", "word_type", "level", "created_at",
	).From("words")
	query = applyWordFilter(query, filter)

	// Safe ORDER BY with validation
	orderBy := "headword"
	if filter.OrderBy == "created_at" || filter.OrderBy == "level" {
		orderBy = filter.OrderBy
	}
	orderDir := "ASC"
	if filter.OrderDir == "DESC" {
		orderDir = "DESC"
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query", zap.Error(err))
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list words", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var w models.Word
		if err := rows.Scan(&w.ID, &w.Headword, &w.Translation, &w.Definition, &w.Example, &w.WordType, &w.Level, &w.CreatedAt); err != nil {
			log.Error("failed to scan word row", zap.Error(err))
			return nil, err
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

func (r *wordRepository) Count(ctx context.Context, filter models.WordFilter) (int, error) {
	log := logger.FromContext(ctx).Named("word_repo")

	query := applyWordFilter(sqlBuilder.Select("COUNT(*)").From("words"), filter)
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count words", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func applyWordFilter(query squirrel.SelectBuilder, filter models.WordFilter) squirrel.SelectBuilder {
	if filter.Level != "" {
		query = query.Where(squirrel.Eq{"level": filter.Level})
	}
	if filter.WordType != "" {
		query = query.Where(squirrel.Eq{"word_type": filter.WordType})
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.Like{"headword": like},
			squirrel.Like{"translation": like},
		})
	}
	return query
}

func (r *wordRepository) Insert(ctx context.Context, w models.Word) (int64, error) {
	log := logger.FromContext(ctx).Named("word_repo")
	log.Debug("inserting word", zap.String("headword", w.Headword))

	res, err := r.db.ExecContext(ctx, `
INSERT INTO words (headword, translation, definition, example, word_type, level)
VALUES (?, ?, ?, ?, ?, ?)
`, w.Headword, w.Translation, w.Definition, w.Example, w.WordType, w.Level)
	if err != nil {
		log.Error("failed to insert word", zap.Error(err))
		return 0, err
	}
	return res.LastInsertId()
}

func (r *wordRepository) Update(ctx context.Context, w models.Word) error {
	log := logger.FromContext(ctx).Named("word_repo")
	log.Debug("updating word", zap.Int64("id", w.ID))

	_, err := r.db.ExecContext(ctx, `
UPDATE words
SET headword = ?, translation = ?, definition = ?, example = ?, word_type = ?, level = ?
WHERE id = ?
`, w.Headword, w.Translation, w.Definition, w.Example, w.WordType, w.Level, w.ID)
	if err != nil {
		log.Error("failed to update word", zap.Error(err))
	}
	return err
}

func (r *wordRepository) Upsert(ctx context.Context, w models.Word) (int64, bool, error) {
	log := logger.FromContext(ctx).Named("word_repo")

	existing, err := r.GetByHeadword(ctx, w.Headword)
	if err != nil {
		return 0, false, err
	}
	if existing == nil {
		id, err := r.Insert(ctx, w)
		return id, true, err
	}

	w.ID = existing.ID
	if err := r.Update(ctx, w); err != nil {
		log.Error("failed to upsert word", zap.String("headword", w.Headword), zap.Error(err))
		return 0, false, err
	}
	return existing.ID, false, nil
}
