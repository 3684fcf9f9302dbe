package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/linguaflash/linguaflash/internal/logger"
	"github.com/linguaflash/linguaflash/internal/models"
	"github.com/linguaflash/linguaflash/internal/repository"
	"go.uber.org/zap"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).Named("user_repo")

	var u models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, level, created_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Username, &u.Level, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) Upsert(ctx context.Context, username string) (*models.User, error) {
	log := logger.FromContext(ctx).Named("user_repo")
	log.Debug("upserting user", zap.String("username", username))

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username) VALUES (?) ON CONFLICT(username) DO NOTHING`, username)
	if err != nil {
		log.Error("failed to upsert user", zap.Error(err))
		return nil, err
	}

	var u models.User
	err = r.db.QueryRowContext(ctx,
		`SELECT id, username, level, created_at FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.Level, &u.CreatedAt)
	if err != nil {
		log.Error("failed to load upserted user", zap.Error(err))
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx).Named("user_repo")

	rows, err := r.db.QueryContext(ctx, `SELECT id, username, level, created_at FROM users ORDER BY username`)
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Level, &u.CreatedAt); err != nil {
			log.Error("failed to scan user row", zap.Error(err))
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).Named("user_repo")
	log.Debug("deleting user", zap.Int64("id", id))

	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete user", zap.Error(err))
	}
	return err
}
