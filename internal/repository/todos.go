package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"todoboard/internal/apperr"
	"todoboard/internal/models"
	"todoboard/pkg/logger"
)

// Status filter values for listing todos.
const (
	StatusAll       = "all"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// sortableColumns is the safelist of columns the caller may sort by.
// Anything else is silently ignored and the result keeps storage order.
var sortableColumns = map[string]bool{
	"created_at": true,
	"due_date":   true,
	"priority":   true,
	"title":      true,
}

// TodoFilter narrows and orders the scoped todo list. Zero values mean no
// status predicate, no category predicate and no ORDER BY.
type TodoFilter struct {
	Status     string
	CategoryID string
	SortBy     string
	SortOrder  string
}

var todoColumns = []string{
	"id", "parent_id", "title", "completed", "user_id",
	"category_id", "due_date", "priority", "notes", "created_at", "updated_at",
}

// TodoRepository handles CRUD and list queries for todos.
type TodoRepository struct {
	db *sqlx.DB
}

func NewTodoRepository(db *sqlx.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func psql() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// List returns every todo owned by userID that matches the filter, flat
// (top-level rows and subtask rows intermixed), each with its category,
// parent and children attached. The owner predicate always applies first;
// no pagination.
func (r *TodoRepository) List(ctx context.Context, userID string, filter TodoFilter) ([]models.Todo, error) {
	qb := psql().Select(todoColumns...).From("todos").
		Where(squirrel.Eq{"user_id": userID})

	switch filter.Status {
	case StatusCompleted:
		qb = qb.Where(squirrel.Eq{"completed": true})
	case StatusActive:
		qb = qb.Where(squirrel.Eq{"completed": false})
	}

	if filter.CategoryID != "" {
		qb = qb.Where(squirrel.Eq{"category_id": filter.CategoryID})
	}

	if sortableColumns[filter.SortBy] {
		direction := "DESC"
		if strings.EqualFold(filter.SortOrder, "asc") {
			direction = "ASC"
		}
		qb = qb.OrderBy(filter.SortBy + " " + direction)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var todos []models.Todo
	if err := r.db.SelectContext(ctx, &todos, query, args...); err != nil {
		logger.Error(ctx, "Repository list todos failed", "error", err)
		return nil, err
	}

	if err := r.attachRelations(ctx, todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// attachRelations eager-loads the category, children and parent of each
// todo with one IN query per relation.
func (r *TodoRepository) attachRelations(ctx context.Context, todos []models.Todo) error {
	if len(todos) == 0 {
		return nil
	}

	ids := make([]string, 0, len(todos))
	categoryIDs := make([]string, 0, len(todos))
	parentIDs := make([]string, 0, len(todos))
	seenCategory := make(map[string]bool)
	seenParent := make(map[string]bool)
	for i := range todos {
		todos[i].Children = []models.Todo{}
		ids = append(ids, todos[i].ID)
		if cid := todos[i].CategoryID; cid != nil && !seenCategory[*cid] {
			seenCategory[*cid] = true
			categoryIDs = append(categoryIDs, *cid)
		}
		if pid := todos[i].ParentID; pid != nil && !seenParent[*pid] {
			seenParent[*pid] = true
			parentIDs = append(parentIDs, *pid)
		}
	}

	categories := make(map[string]models.Category)
	if len(categoryIDs) > 0 {
		query, args, err := psql().Select("id", "name", "user_id", "created_at", "updated_at").
			From("categories").Where(squirrel.Eq{"id": categoryIDs}).ToSql()
		if err != nil {
			return fmt.Errorf("build categories query: %w", err)
		}
		var rows []models.Category
		if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
			logger.Error(ctx, "Repository load categories failed", "error", err)
			return err
		}
		for _, c := range rows {
			categories[c.ID] = c
		}
	}

	query, args, err := psql().Select(todoColumns...).From("todos").
		Where(squirrel.Eq{"parent_id": ids}).ToSql()
	if err != nil {
		return fmt.Errorf("build children query: %w", err)
	}
	var childRows []models.Todo
	if err := r.db.SelectContext(ctx, &childRows, query, args...); err != nil {
		logger.Error(ctx, "Repository load children failed", "error", err)
		return err
	}
	children := make(map[string][]models.Todo)
	for _, c := range childRows {
		c.Children = []models.Todo{}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	parents := make(map[string]models.Todo)
	if len(parentIDs) > 0 {
		query, args, err := psql().Select(todoColumns...).From("todos").
			Where(squirrel.Eq{"id": parentIDs}).ToSql()
		if err != nil {
			return fmt.Errorf("build parents query: %w", err)
		}
		var parentRows []models.Todo
		if err := r.db.SelectContext(ctx, &parentRows, query, args...); err != nil {
			logger.Error(ctx, "Repository load parents failed", "error", err)
			return err
		}
		for _, p := range parentRows {
			p.Children = []models.Todo{}
			parents[p.ID] = p
		}
	}

	for i := range todos {
		if cid := todos[i].CategoryID; cid != nil {
			if c, ok := categories[*cid]; ok {
				todos[i].Category = &c
			}
		}
		if kids, ok := children[todos[i].ID]; ok {
			todos[i].Children = kids
		}
		if pid := todos[i].ParentID; pid != nil {
			if p, ok := parents[*pid]; ok {
				todos[i].Parent = &p
			}
		}
	}
	return nil
}

// FindByID returns a todo regardless of owner. Missing ids come back as
// NotFoundError; the ownership check is the gate's job.
func (r *TodoRepository) FindByID(ctx context.Context, id string) (*models.Todo, error) {
	query, args, err := psql().Select(todoColumns...).From("todos").
		Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find query: %w", err)
	}
	var todo models.Todo
	if err := r.db.GetContext(ctx, &todo, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &apperr.NotFoundError{Resource: "todo", ID: id}
		}
		logger.Error(ctx, "Repository find todo failed", "error", err, "id", id)
		return nil, err
	}
	return &todo, nil
}

// FindForUser returns the todo with the given id only when userID owns it,
// and nil (without error) otherwise. Used by validation reference checks.
func (r *TodoRepository) FindForUser(ctx context.Context, id, userID string) (*models.Todo, error) {
	query, args, err := psql().Select(todoColumns...).From("todos").
		Where(squirrel.Eq{"id": id, "user_id": userID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find query: %w", err)
	}
	var todo models.Todo
	if err := r.db.GetContext(ctx, &todo, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error(ctx, "Repository find todo for user failed", "error", err, "id", id)
		return nil, err
	}
	return &todo, nil
}

// Create inserts a new todo owned by todo.UserID, assigning id and
// timestamps.
func (r *TodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	query, args, err := psql().Insert("todos").
		Columns(todoColumns...).
		Values(todo.ID, todo.ParentID, todo.Title, todo.Completed, todo.UserID,
			todo.CategoryID, todo.DueDate, todo.Priority, todo.Notes,
			todo.CreatedAt, todo.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.Error(ctx, "Repository create todo failed", "error", err)
		return err
	}
	return nil
}

// Update applies a partial patch to the todo owned by userID. Fields not
// present in the patch keep their stored value.
func (r *TodoRepository) Update(ctx context.Context, id, userID string, patch *models.TodoPatch) error {
	if patch.Empty() {
		return nil
	}

	qb := psql().Update("todos").Set("updated_at", time.Now().UTC())
	if patch.Title != nil {
		qb = qb.Set("title", *patch.Title)
	}
	if patch.Completed != nil {
		qb = qb.Set("completed", *patch.Completed)
	}
	switch {
	case patch.ClearDueDate:
		qb = qb.Set("due_date", nil)
	case patch.DueDate != nil:
		qb = qb.Set("due_date", *patch.DueDate)
	}
	if patch.Priority != nil {
		qb = qb.Set("priority", *patch.Priority)
	}
	switch {
	case patch.ClearNotes:
		qb = qb.Set("notes", nil)
	case patch.Notes != nil:
		qb = qb.Set("notes", *patch.Notes)
	}
	switch {
	case patch.ClearCategory:
		qb = qb.Set("category_id", nil)
	case patch.CategoryID != nil:
		qb = qb.Set("category_id", *patch.CategoryID)
	}
	switch {
	case patch.ClearParent:
		qb = qb.Set("parent_id", nil)
	case patch.ParentID != nil:
		qb = qb.Set("parent_id", *patch.ParentID)
	}

	query, args, err := qb.Where(squirrel.Eq{"id": id, "user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.Error(ctx, "Repository update todo failed", "error", err, "id", id)
		return err
	}
	return nil
}

// Delete removes the todo owned by userID. Direct children go with it
// through the parent_id foreign key cascade.
func (r *TodoRepository) Delete(ctx context.Context, id, userID string) error {
	query, args, err := psql().Delete("todos").
		Where(squirrel.Eq{"id": id, "user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		logger.Error(ctx, "Repository delete todo failed", "error", err, "id", id)
		return err
	}
	return nil
}
