package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"todoboard/internal/apperr"
	"todoboard/internal/models"
	"todoboard/pkg/logger"
)

var categoryColumns = []string{"id", "name", "user_id", "created_at", "updated_at"}

// CategoryRepository handles CRUD for categories.
type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListByUser returns all categories owned by userID, oldest first.
func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]models.Category, error) {
	query, args, err := psql().Select(categoryColumns...).From("categories").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}
	var categories []models.Category
	if err := r.db.SelectContext(ctx, &categories, query, args...); err != nil {
		logger.Error(ctx, "Repository list categories failed", "error", err)
		return nil, err
	}
	return categories, nil
}

// FindByID returns a category regardless of owner; the ownership check is
// the gate's job.
func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	query, args, err := psql().Select(categoryColumns...).From("categories").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find query: %w", err)
	}
	var category models.Category
	if err := r.db.GetContext(ctx, &category, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &apperr.NotFoundError{Resource: "category", ID: id}
		}
		logger.Error(ctx, "Repository find category failed", "error", err, "id", id)
		return nil, err
	}
	return &category, nil
}

// OwnedBy reports whether the category exists and belongs to userID.
func (r *CategoryRepository) OwnedBy(ctx context.Context, id, userID string) (bool, error) {
	query, args, err := psql().Select("1").From("categories").
		Where(squirrel.Eq{"id": id, "user_id": userID}).ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}
	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		logger.Error(ctx, "Repository category exists failed", "error", err, "id", id)
		return false, err
	}
	return true, nil
}

// Create inserts a new category owned by category.UserID, assigning id and
// timestamps.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	query, args, err := psql().Insert("categories").
		Columns(categoryColumns...).
		Values(category.ID, category.Name, category.UserID, category.CreatedAt, category.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.Error(ctx, "Repository create category failed", "error", err)
		return err
	}
	return nil
}

// Rename updates the category name for the category owned by userID.
func (r *CategoryRepository) Rename(ctx context.Context, id, userID, name string) error {
	query, args, err := psql().Update("categories").
		Set("name", name).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id, "user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.Error(ctx, "Repository rename category failed", "error", err, "id", id)
		return err
	}
	return nil
}

// Delete removes the category owned by userID. Todos referencing it keep
// existing with a nulled category_id.
func (r *CategoryRepository) Delete(ctx context.Context, id, userID string) error {
	query, args, err := psql().Delete("categories").
		Where(squirrel.Eq{"id": id, "user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.Error(ctx, "Repository delete category failed", "error", err, "id", id)
		return err
	}
	return nil
}
