package controller

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"

	"todoboard/internal/gate"
	"todoboard/internal/models"
	"todoboard/internal/repository"
	"todoboard/internal/validation"
)

// TodoStore is the storage surface the todo handlers need.
type TodoStore interface {
	List(ctx context.Context, userID string, filter repository.TodoFilter) ([]models.Todo, error)
	FindByID(ctx context.Context, id string) (*models.Todo, error)
	Create(ctx context.Context, todo *models.Todo) error
	Update(ctx context.Context, id, userID string, patch *models.TodoPatch) error
	Delete(ctx context.Context, id, userID string) error
}

// TodoController serves the /todos endpoints.
type TodoController struct {
	todos     TodoStore
	validator *validation.Validator
	listGroup singleflight.Group
}

func NewTodoController(todos TodoStore, validator *validation.Validator) *TodoController {
	return &TodoController{todos: todos, validator: validator}
}

// List returns the requester's todos, filtered and sorted per query
// params, flat (subtasks intermixed) with category, parent and children
// attached. Identical concurrent requests collapse into one query; the
// result is never cached.
func (t *TodoController) List(c *gin.Context) {
	ctx := c.Request.Context()
	uid, ok := currentUser(c)
	if !ok {
		return
	}

	filter := repository.TodoFilter{
		Status:     c.DefaultQuery("status", repository.StatusAll),
		CategoryID: c.Query("category"),
		SortBy:     c.DefaultQuery("sort_by", "created_at"),
		SortOrder:  c.DefaultQuery("sort_order", "desc"),
	}

	// The flight is shared by every collapsed caller, so it must not die
	// with whichever request happened to start it.
	key := strings.Join([]string{uid, filter.Status, filter.CategoryID, filter.SortBy, filter.SortOrder}, "|")
	v, err, _ := t.listGroup.Do(key, func() (interface{}, error) {
		return t.todos.List(context.Background(), uid, filter)
	})
	if err != nil {
		if ctx.Err() != nil || isContextErr(err) {
			return
		}
		respondError(c, err)
		return
	}
	todos := v.([]models.Todo)
	if todos == nil {
		todos = []models.Todo{}
	}
	c.JSON(http.StatusOK, gin.H{
		"todos": todos,
		"filters": gin.H{
			"status":     filter.Status,
			"category":   filter.CategoryID,
			"sort_by":    filter.SortBy,
			"sort_order": filter.SortOrder,
		},
	})
}

// Create validates the payload and inserts a todo owned by the requester.
func (t *TodoController) Create(c *gin.Context) {
	ctx := c.Request.Context()
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	var in validation.CreateTodoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	todo, err := t.validator.ValidateCreateTodo(ctx, uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := t.todos.Create(ctx, todo); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, todo)
}

// Update applies a partial update to a todo the requester owns. The
// ownership gate runs before validation.
func (t *TodoController) Update(c *gin.Context) {
	ctx := c.Request.Context()
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id := c.Param("id")

	todo, err := t.todos.FindByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := gate.RequireOwner("todo", id, todo.UserID, uid); err != nil {
		respondError(c, err)
		return
	}

	var in validation.UpdateTodoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	patch, err := t.validator.ValidateUpdateTodo(ctx, uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := t.todos.Update(ctx, id, uid, patch); err != nil {
		respondError(c, err)
		return
	}

	updated, err := t.todos.FindByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a todo the requester owns; direct children go with it.
func (t *TodoController) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	uid, ok := currentUser(c)
	if !ok {
		return
	}
	id := c.Param("id")

	todo, err := t.todos.FindByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := gate.RequireOwner("todo", id, todo.UserID, uid); err != nil {
		respondError(c, err)
		return
	}
	if err := t.todos.Delete(ctx, id, uid); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
