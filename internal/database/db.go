package database

import (
	"context"
	"errors"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"todoboard/internal/config"
	"todoboard/pkg/logger"
)

var (
	pool *sqlx.DB
	once sync.Once
)

// DB returns the global database connection pool (initialized on first use).
func DB(ctx context.Context) *sqlx.DB {
	once.Do(func() {
		cfg := config.Get()
		if cfg.DatabaseURL == "" {
			logger.Error(ctx, "DATABASE_URL is not set")
			return
		}
		db, err := sqlx.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logger.Error(ctx, "Failed to open database", "error", err)
			return
		}
		db.SetMaxOpenConns(cfg.DBPoolSize)
		db.SetMaxIdleConns(cfg.DBPoolSize / 2)
		pool = db
		logger.Info(ctx, "Database pool initialized", "max_open", cfg.DBPoolSize)
	})
	return pool
}

// InitDB initializes the DB pool and returns it (for main and scripts).
func InitDB(ctx context.Context) *sqlx.DB {
	return DB(ctx)
}

// schema is applied idempotently at startup. Deleting a parent todo removes
// its direct children through the parent_id foreign key; deleting a
// category nulls the reference on its todos instead of deleting them.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS todos (
		id UUID PRIMARY KEY,
		parent_id UUID REFERENCES todos(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		category_id UUID REFERENCES categories(id) ON DELETE SET NULL,
		due_date DATE,
		priority SMALLINT NOT NULL DEFAULT 2,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_categories_user_id ON categories (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_user_id ON todos (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_parent_id ON todos (parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_category_id ON todos (category_id)`,
}

// MigrateOrCreateSchema creates the tables and indexes if they do not exist.
func MigrateOrCreateSchema(ctx context.Context) error {
	db := DB(ctx)
	if db == nil {
		return errNoDatabase
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			logger.Error(ctx, "Schema statement failed", "error", err)
			return err
		}
	}
	return nil
}

var errNoDatabase = errors.New("database is not available")
