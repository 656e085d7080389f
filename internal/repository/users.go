package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"todoboard/internal/models"
	"todoboard/pkg/logger"
)

var userColumns = []string{"id", "name", "email", "password_hash", "created_at", "updated_at"}

// UserRepository handles user rows. Account management lives outside this
// service; only seeding needs writes here.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query, args, err := psql().Insert("users").
		Columns(userColumns...).
		Values(user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.Error(ctx, "Repository create user failed", "error", err)
		return err
	}
	return nil
}
