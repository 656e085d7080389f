package models

import "time"

// TodoPatch describes a partial update to a todo. Nil pointers leave the
// column unchanged; the Clear flags set a nullable column back to NULL and
// take precedence over the matching pointer.
type TodoPatch struct {
	Title         *string
	Completed     *bool
	DueDate       *time.Time
	ClearDueDate  bool
	Priority      *int
	Notes         *string
	ClearNotes    bool
	CategoryID    *string
	ClearCategory bool
	ParentID      *string
	ClearParent   bool
}

// Empty reports whether the patch changes nothing.
func (p *TodoPatch) Empty() bool {
	return p.Title == nil && p.Completed == nil &&
		p.DueDate == nil && !p.ClearDueDate &&
		p.Priority == nil &&
		p.Notes == nil && !p.ClearNotes &&
		p.CategoryID == nil && !p.ClearCategory &&
		p.ParentID == nil && !p.ClearParent
}
