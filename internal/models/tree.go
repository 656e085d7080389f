package models

// BuildTree assembles the one-level todo tree from a flat list: subtasks
// are grouped under their parent's Children slice and only top-level todos
// are returned, preserving the input order among roots and among siblings.
// Subtasks whose parent is not in the list (e.g. filtered out) are dropped.
// The input slice is not modified.
func BuildTree(todos []Todo) []Todo {
	byParent := make(map[string][]Todo)
	for _, t := range todos {
		if t.ParentID != nil {
			byParent[*t.ParentID] = append(byParent[*t.ParentID], t)
		}
	}

	var roots []Todo
	for _, t := range todos {
		if t.ParentID != nil {
			continue
		}
		if children, ok := byParent[t.ID]; ok {
			t.Children = children
		}
		roots = append(roots, t)
	}
	return roots
}
