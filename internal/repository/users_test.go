package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoboard/internal/models"
)

func TestUserRepositoryCreate(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO users (id,name,email,password_hash,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6)")).
		WithArgs(sqlmock.AnyArg(), "Demo User", "demo@example.com", "hash", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user := &models.User{Name: "Demo User", Email: "demo@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
