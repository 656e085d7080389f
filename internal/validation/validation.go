// Package validation applies the field-level and cross-entity rules for
// todo and category payloads. Every violation in a request is collected
// into one ValidationError before reporting; storage is never touched on
// failure.
package validation

import (
	"context"
	"strings"
	"time"

	"todoboard/internal/apperr"
	"todoboard/internal/models"
)

const (
	maxTitleLength = 255
	dateLayout     = "2006-01-02"

	msgTitleRequired   = "title is required"
	msgTitleTooLong    = "title must be at most 255 characters"
	msgNameRequired    = "name is required"
	msgNameTooLong     = "name must be at most 255 characters"
	msgInvalidDate     = "due_date must be a valid date (YYYY-MM-DD)"
	msgInvalidPriority = "priority must be one of 1 (low), 2 (medium), 3 (high)"
	msgCategoryMissing = "the selected category does not exist"
	msgParentMissing   = "the selected parent todo does not exist"
	msgParentDepth     = "subtasks cannot have subtasks (maximum depth of 1)"
)

// CategoryFinder answers whether a category belongs to a user.
type CategoryFinder interface {
	OwnedBy(ctx context.Context, id, userID string) (bool, error)
}

// TodoFinder resolves a todo scoped to its owner. Implementations return
// (nil, nil) when no such todo exists for the user.
type TodoFinder interface {
	FindForUser(ctx context.Context, id, userID string) (*models.Todo, error)
}

// Validator checks create/update payloads against the rule set, including
// the cross-entity ownership and subtask depth rules.
type Validator struct {
	categories CategoryFinder
	todos      TodoFinder
}

func New(categories CategoryFinder, todos TodoFinder) *Validator {
	return &Validator{categories: categories, todos: todos}
}

// CreateTodoInput is the payload for creating a todo. Optional references
// and the due date arrive as strings; empty strings count as absent.
type CreateTodoInput struct {
	Title      string  `json:"title"`
	DueDate    *string `json:"due_date"`
	Priority   *int    `json:"priority"`
	Notes      *string `json:"notes"`
	CategoryID *string `json:"category_id"`
	ParentID   *string `json:"parent_id"`
}

// UpdateTodoInput is the payload for a partial todo update. Nil means the
// field was absent and stays unchanged; an empty string on a nullable
// field clears it.
type UpdateTodoInput struct {
	Title      *string `json:"title"`
	Completed  *bool   `json:"completed"`
	DueDate    *string `json:"due_date"`
	Priority   *int    `json:"priority"`
	Notes      *string `json:"notes"`
	CategoryID *string `json:"category_id"`
	ParentID   *string `json:"parent_id"`
}

// CategoryInput is the payload for creating or renaming a category.
type CategoryInput struct {
	Name string `json:"name"`
}

// ParentIsTopLevel is the subtask depth rule: it passes only when the
// candidate parent exists, is owned by ownerID and has no parent itself.
// found distinguishes a missing parent from a nested one.
func (v *Validator) ParentIsTopLevel(ctx context.Context, parentID, ownerID string) (found, topLevel bool, err error) {
	parent, err := v.todos.FindForUser(ctx, parentID, ownerID)
	if err != nil {
		return false, false, err
	}
	if parent == nil {
		return false, false, nil
	}
	return true, parent.ParentID == nil, nil
}

// ValidateCreateTodo checks in against the create rules and returns the
// todo row to insert, owned by userID. On rule violations the returned
// error is a ValidationError carrying every offending field.
func (v *Validator) ValidateCreateTodo(ctx context.Context, userID string, in CreateTodoInput) (*models.Todo, error) {
	ve := apperr.NewValidationError()
	todo := &models.Todo{
		UserID:   userID,
		Priority: models.PriorityMedium,
	}

	title := strings.TrimSpace(in.Title)
	switch {
	case title == "":
		ve.Add("title", msgTitleRequired)
	case len(title) > maxTitleLength:
		ve.Add("title", msgTitleTooLong)
	default:
		todo.Title = title
	}

	if due := optional(in.DueDate); due != "" {
		t, err := time.Parse(dateLayout, due)
		if err != nil {
			ve.Add("due_date", msgInvalidDate)
		} else {
			todo.DueDate = &t
		}
	}

	if in.Priority != nil {
		if !models.ValidPriority(*in.Priority) {
			ve.Add("priority", msgInvalidPriority)
		} else {
			todo.Priority = *in.Priority
		}
	}

	if notes := optional(in.Notes); notes != "" {
		todo.Notes = &notes
	}

	if cid := optional(in.CategoryID); cid != "" {
		owned, err := v.categories.OwnedBy(ctx, cid, userID)
		if err != nil {
			return nil, err
		}
		if !owned {
			ve.Add("category_id", msgCategoryMissing)
		} else {
			todo.CategoryID = &cid
		}
	}

	if pid := optional(in.ParentID); pid != "" {
		found, topLevel, err := v.ParentIsTopLevel(ctx, pid, userID)
		if err != nil {
			return nil, err
		}
		switch {
		case !found:
			ve.Add("parent_id", msgParentMissing)
		case !topLevel:
			ve.Add("parent_id", msgParentDepth)
		default:
			todo.ParentID = &pid
		}
	}

	if ve.HasErrors() {
		return nil, ve
	}
	return todo, nil
}

// ValidateUpdateTodo checks in against the partial-update rules and
// returns the patch to apply. Present fields follow the create rules,
// except that assigning a parent does not re-run the depth rule; only
// ownership of the parent is checked.
func (v *Validator) ValidateUpdateTodo(ctx context.Context, userID string, in UpdateTodoInput) (*models.TodoPatch, error) {
	ve := apperr.NewValidationError()
	patch := &models.TodoPatch{}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		switch {
		case title == "":
			ve.Add("title", msgTitleRequired)
		case len(title) > maxTitleLength:
			ve.Add("title", msgTitleTooLong)
		default:
			patch.Title = &title
		}
	}

	patch.Completed = in.Completed

	if in.DueDate != nil {
		if due := strings.TrimSpace(*in.DueDate); due == "" {
			patch.ClearDueDate = true
		} else if t, err := time.Parse(dateLayout, due); err != nil {
			ve.Add("due_date", msgInvalidDate)
		} else {
			patch.DueDate = &t
		}
	}

	if in.Priority != nil {
		if !models.ValidPriority(*in.Priority) {
			ve.Add("priority", msgInvalidPriority)
		} else {
			patch.Priority = in.Priority
		}
	}

	if in.Notes != nil {
		if notes := *in.Notes; notes == "" {
			patch.ClearNotes = true
		} else {
			patch.Notes = &notes
		}
	}

	if in.CategoryID != nil {
		if cid := strings.TrimSpace(*in.CategoryID); cid == "" {
			patch.ClearCategory = true
		} else {
			owned, err := v.categories.OwnedBy(ctx, cid, userID)
			if err != nil {
				return nil, err
			}
			if !owned {
				ve.Add("category_id", msgCategoryMissing)
			} else {
				patch.CategoryID = &cid
			}
		}
	}

	if in.ParentID != nil {
		if pid := strings.TrimSpace(*in.ParentID); pid == "" {
			patch.ClearParent = true
		} else {
			parent, err := v.todos.FindForUser(ctx, pid, userID)
			if err != nil {
				return nil, err
			}
			if parent == nil {
				ve.Add("parent_id", msgParentMissing)
			} else {
				patch.ParentID = &pid
			}
		}
	}

	if ve.HasErrors() {
		return nil, ve
	}
	return patch, nil
}

// ValidateCategoryName checks the name rules shared by category create and
// rename. Returns the trimmed name.
func (v *Validator) ValidateCategoryName(in CategoryInput) (string, error) {
	ve := apperr.NewValidationError()
	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		ve.Add("name", msgNameRequired)
	case len(name) > maxTitleLength:
		ve.Add("name", msgNameTooLong)
	}
	if ve.HasErrors() {
		return "", ve
	}
	return name, nil
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
