package apperr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	ve := NewValidationError()
	assert.False(t, ve.HasErrors())

	ve.Add("title", "title is required")
	ve.Add("title", "overwritten message is ignored")
	ve.Add("priority", "priority is invalid")
	assert.True(t, ve.HasErrors())
	assert.Equal(t, "title is required", ve.Fields["title"])
	assert.Len(t, ve.Fields, 2)
	assert.Equal(t, "validation failed: priority: priority is invalid; title: title is required", ve.Error())
}

func TestErrorKindMatching(t *testing.T) {
	ve := NewValidationError()
	ve.Add("name", "name is required")
	wrapped := fmt.Errorf("create category: %w", ve)
	got, ok := IsValidation(wrapped)
	require.True(t, ok)
	assert.Contains(t, got.Fields, "name")

	authErr := fmt.Errorf("update todo: %w", &AuthorizationError{Resource: "todo", ID: "t1"})
	assert.True(t, IsAuthorization(authErr))
	assert.False(t, IsNotFound(authErr))

	nfErr := fmt.Errorf("find todo: %w", &NotFoundError{Resource: "todo", ID: "t1"})
	assert.True(t, IsNotFound(nfErr))
	assert.False(t, IsAuthorization(nfErr))

	_, ok = IsValidation(fmt.Errorf("plain"))
	assert.False(t, ok)
}
