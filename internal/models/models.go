package models

import "time"

// Todo priority levels. The column is a small integer so list sorting by
// priority orders Low < Medium < High naturally.
const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

// ValidPriority reports whether p is one of the accepted priority levels.
func ValidPriority(p int) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// User is the authentication principal. Credentials are opaque to the rest
// of the service; only the id matters for ownership scoping.
type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Category is a named grouping of todos owned by exactly one user.
// Names are not unique, even within one user.
type Category struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	UserID    string    `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Todo is a task item. ParentID links a subtask to its top-level parent;
// nesting is capped at one level. Category, Parent and Children are
// eager-loaded relations, never persisted directly.
type Todo struct {
	ID         string     `db:"id" json:"id"`
	ParentID   *string    `db:"parent_id" json:"parent_id"`
	Title      string     `db:"title" json:"title"`
	Completed  bool       `db:"completed" json:"completed"`
	UserID     string     `db:"user_id" json:"user_id"`
	CategoryID *string    `db:"category_id" json:"category_id"`
	DueDate    *time.Time `db:"due_date" json:"due_date"`
	Priority   int        `db:"priority" json:"priority"`
	Notes      *string    `db:"notes" json:"notes"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`

	Category *Category `db:"-" json:"category,omitempty"`
	Parent   *Todo     `db:"-" json:"parent,omitempty"`
	Children []Todo    `db:"-" json:"children"`
}

// IsSubtask reports whether the todo has a parent.
func (t *Todo) IsSubtask() bool {
	return t.ParentID != nil
}
