package validation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoboard/internal/apperr"
	"todoboard/internal/models"
)

type fakeCategories struct {
	owned map[string]string // category id -> owner id
}

func (f *fakeCategories) OwnedBy(_ context.Context, id, userID string) (bool, error) {
	return f.owned[id] == userID, nil
}

type fakeTodos struct {
	todos map[string]*models.Todo // id -> todo
}

func (f *fakeTodos) FindForUser(_ context.Context, id, userID string) (*models.Todo, error) {
	t, ok := f.todos[id]
	if !ok || t.UserID != userID {
		return nil, nil
	}
	return t, nil
}

func newTestValidator() (*Validator, *fakeCategories, *fakeTodos) {
	categories := &fakeCategories{owned: map[string]string{}}
	todos := &fakeTodos{todos: map[string]*models.Todo{}}
	return New(categories, todos), categories, todos
}

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }
func boolp(b bool) *bool    { return &b }

func TestValidateCreateTodo(t *testing.T) {
	ctx := context.Background()

	t.Run("minimal payload defaults to medium priority", func(t *testing.T) {
		v, _, _ := newTestValidator()
		todo, err := v.ValidateCreateTodo(ctx, "user-a", CreateTodoInput{Title: "Write spec"})
		require.NoError(t, err)
		assert.Equal(t, "Write spec", todo.Title)
		assert.Equal(t, "user-a", todo.UserID)
		assert.Equal(t, models.PriorityMedium, todo.Priority)
		assert.False(t, todo.Completed)
		assert.Nil(t, todo.DueDate)
		assert.Nil(t, todo.CategoryID)
		assert.Nil(t, todo.ParentID)
	})

	t.Run("full payload round-trips into the row", func(t *testing.T) {
		v, categories, _ := newTestValidator()
		categories.owned["cat-1"] = "user-a"
		todo, err := v.ValidateCreateTodo(ctx, "user-a", CreateTodoInput{
			Title:      "Write spec",
			DueDate:    strp("2026-09-15"),
			Priority:   intp(models.PriorityHigh),
			Notes:      strp("first draft"),
			CategoryID: strp("cat-1"),
		})
		require.NoError(t, err)
		require.NotNil(t, todo.DueDate)
		assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), *todo.DueDate)
		assert.Equal(t, models.PriorityHigh, todo.Priority)
		require.NotNil(t, todo.Notes)
		assert.Equal(t, "first draft", *todo.Notes)
		require.NotNil(t, todo.CategoryID)
		assert.Equal(t, "cat-1", *todo.CategoryID)
	})

	t.Run("field rule violations", func(t *testing.T) {
		tests := []struct {
			name  string
			in    CreateTodoInput
			field string
		}{
			{"missing title", CreateTodoInput{}, "title"},
			{"blank title", CreateTodoInput{Title: "   "}, "title"},
			{"title over 255 chars", CreateTodoInput{Title: strings.Repeat("x", 256)}, "title"},
			{"malformed due date", CreateTodoInput{Title: "t", DueDate: strp("next tuesday")}, "due_date"},
			{"priority zero", CreateTodoInput{Title: "t", Priority: intp(0)}, "priority"},
			{"priority out of range", CreateTodoInput{Title: "t", Priority: intp(4)}, "priority"},
			{"unknown category", CreateTodoInput{Title: "t", CategoryID: strp("nope")}, "category_id"},
			{"unknown parent", CreateTodoInput{Title: "t", ParentID: strp("nope")}, "parent_id"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				v, _, _ := newTestValidator()
				_, err := v.ValidateCreateTodo(ctx, "user-a", tt.in)
				ve, ok := apperr.IsValidation(err)
				require.True(t, ok, "expected ValidationError, got %v", err)
				assert.Contains(t, ve.Fields, tt.field)
			})
		}
	})

	t.Run("all violations are collected, not fail-fast", func(t *testing.T) {
		v, _, _ := newTestValidator()
		_, err := v.ValidateCreateTodo(ctx, "user-a", CreateTodoInput{
			DueDate:  strp("not-a-date"),
			Priority: intp(9),
		})
		ve, ok := apperr.IsValidation(err)
		require.True(t, ok)
		assert.Len(t, ve.Fields, 3)
		assert.Contains(t, ve.Fields, "title")
		assert.Contains(t, ve.Fields, "due_date")
		assert.Contains(t, ve.Fields, "priority")
	})

	t.Run("category owned by another user is rejected", func(t *testing.T) {
		v, categories, _ := newTestValidator()
		categories.owned["cat-1"] = "user-b"
		_, err := v.ValidateCreateTodo(ctx, "user-a", CreateTodoInput{
			Title:      "t",
			CategoryID: strp("cat-1"),
		})
		ve, ok := apperr.IsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "category_id")
	})

	t.Run("parent owned by another user is rejected", func(t *testing.T) {
		v, _, todos := newTestValidator()
		todos.todos["todo-1"] = &models.Todo{ID: "todo-1", UserID: "user-b"}
		_, err := v.ValidateCreateTodo(ctx, "user-a", CreateTodoInput{
			Title:    "t",
			ParentID: strp("todo-1"),
		})
		ve, ok := apperr.IsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "parent_id")
	})

	t.Run("top-level parent is accepted", func(t *testing.T) {
		v, _, todos := newTestValidator()
		todos.todos["todo-1"] = &models.Todo{ID: "todo-1", UserID: "user-a"}
		todo, err := v.ValidateCreateTodo(ctx, "user-a", CreateTodoInput{
			Title:    "Step 1",
			ParentID: strp("todo-1"),
		})
		require.NoError(t, err)
		require.NotNil(t, todo.ParentID)
		assert.Equal(t, "todo-1", *todo.ParentID)
	})

	t.Run("subtask cannot become a parent", func(t *testing.T) {
		v, _, todos := newTestValidator()
		parentID := "todo-1"
		todos.todos["todo-1"] = &models.Todo{ID: "todo-1", UserID: "user-a"}
		todos.todos["todo-2"] = &models.Todo{ID: "todo-2", UserID: "user-a", ParentID: &parentID}
		_, err := v.ValidateCreateTodo(ctx, "user-a", CreateTodoInput{
			Title:    "too deep",
			ParentID: strp("todo-2"),
		})
		ve, ok := apperr.IsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "subtasks cannot have subtasks (maximum depth of 1)", ve.Fields["parent_id"])
	})
}

func TestParentIsTopLevel(t *testing.T) {
	ctx := context.Background()
	v, _, todos := newTestValidator()
	rootID := "root"
	todos.todos["root"] = &models.Todo{ID: "root", UserID: "user-a"}
	todos.todos["child"] = &models.Todo{ID: "child", UserID: "user-a", ParentID: &rootID}

	found, topLevel, err := v.ParentIsTopLevel(ctx, "root", "user-a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, topLevel)

	found, topLevel, err = v.ParentIsTopLevel(ctx, "child", "user-a")
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, topLevel)

	found, _, err = v.ParentIsTopLevel(ctx, "missing", "user-a")
	require.NoError(t, err)
	assert.False(t, found)

	found, _, err = v.ParentIsTopLevel(ctx, "root", "user-b")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestValidateUpdateTodo(t *testing.T) {
	ctx := context.Background()

	t.Run("empty payload yields empty patch", func(t *testing.T) {
		v, _, _ := newTestValidator()
		patch, err := v.ValidateUpdateTodo(ctx, "user-a", UpdateTodoInput{})
		require.NoError(t, err)
		assert.True(t, patch.Empty())
	})

	t.Run("present fields are validated like create", func(t *testing.T) {
		v, _, _ := newTestValidator()
		_, err := v.ValidateUpdateTodo(ctx, "user-a", UpdateTodoInput{
			Title:    strp(""),
			Priority: intp(7),
			DueDate:  strp("never"),
		})
		ve, ok := apperr.IsValidation(err)
		require.True(t, ok)
		assert.Len(t, ve.Fields, 3)
	})

	t.Run("completed toggle alone", func(t *testing.T) {
		v, _, _ := newTestValidator()
		patch, err := v.ValidateUpdateTodo(ctx, "user-a", UpdateTodoInput{Completed: boolp(true)})
		require.NoError(t, err)
		require.NotNil(t, patch.Completed)
		assert.True(t, *patch.Completed)
		assert.Nil(t, patch.Title)
	})

	t.Run("empty strings clear nullable fields", func(t *testing.T) {
		v, _, _ := newTestValidator()
		patch, err := v.ValidateUpdateTodo(ctx, "user-a", UpdateTodoInput{
			DueDate:    strp(""),
			Notes:      strp(""),
			CategoryID: strp(""),
			ParentID:   strp(""),
		})
		require.NoError(t, err)
		assert.True(t, patch.ClearDueDate)
		assert.True(t, patch.ClearNotes)
		assert.True(t, patch.ClearCategory)
		assert.True(t, patch.ClearParent)
	})

	t.Run("assigning a nested parent is allowed on update", func(t *testing.T) {
		// Update checks parent ownership only, not the depth rule.
		v, _, todos := newTestValidator()
		rootID := "root"
		todos.todos["root"] = &models.Todo{ID: "root", UserID: "user-a"}
		todos.todos["child"] = &models.Todo{ID: "child", UserID: "user-a", ParentID: &rootID}

		patch, err := v.ValidateUpdateTodo(ctx, "user-a", UpdateTodoInput{ParentID: strp("child")})
		require.NoError(t, err)
		require.NotNil(t, patch.ParentID)
		assert.Equal(t, "child", *patch.ParentID)
	})

	t.Run("assigning a foreign parent is rejected on update", func(t *testing.T) {
		v, _, todos := newTestValidator()
		todos.todos["root"] = &models.Todo{ID: "root", UserID: "user-b"}
		_, err := v.ValidateUpdateTodo(ctx, "user-a", UpdateTodoInput{ParentID: strp("root")})
		ve, ok := apperr.IsValidation(err)
		require.True(t, ok)
		assert.Contains(t, ve.Fields, "parent_id")
	})
}

func TestValidateCategoryName(t *testing.T) {
	v, _, _ := newTestValidator()

	name, err := v.ValidateCategoryName(CategoryInput{Name: "  Work  "})
	require.NoError(t, err)
	assert.Equal(t, "Work", name)

	_, err = v.ValidateCategoryName(CategoryInput{Name: ""})
	ve, ok := apperr.IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "name")

	_, err = v.ValidateCategoryName(CategoryInput{Name: strings.Repeat("x", 256)})
	ve, ok = apperr.IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "name")
}
