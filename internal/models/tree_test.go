package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func todoWithParent(id, parentID string) Todo {
	t := Todo{ID: id}
	if parentID != "" {
		t.ParentID = &parentID
	}
	return t
}

func TestBuildTree(t *testing.T) {
	t.Run("groups subtasks under their parent", func(t *testing.T) {
		flat := []Todo{
			todoWithParent("a", ""),
			todoWithParent("a1", "a"),
			todoWithParent("b", ""),
			todoWithParent("a2", "a"),
		}
		roots := BuildTree(flat)
		require.Len(t, roots, 2)
		assert.Equal(t, "a", roots[0].ID)
		assert.Equal(t, "b", roots[1].ID)
		require.Len(t, roots[0].Children, 2)
		assert.Equal(t, "a1", roots[0].Children[0].ID)
		assert.Equal(t, "a2", roots[0].Children[1].ID)
		assert.Empty(t, roots[1].Children)
	})

	t.Run("drops orphan subtasks", func(t *testing.T) {
		flat := []Todo{
			todoWithParent("a", ""),
			todoWithParent("x1", "missing"),
		}
		roots := BuildTree(flat)
		require.Len(t, roots, 1)
		assert.Equal(t, "a", roots[0].ID)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, BuildTree(nil))
	})

	t.Run("does not modify the input slice", func(t *testing.T) {
		flat := []Todo{
			todoWithParent("a", ""),
			todoWithParent("a1", "a"),
		}
		_ = BuildTree(flat)
		assert.Nil(t, flat[0].Children)
	})
}

func TestValidPriority(t *testing.T) {
	assert.True(t, ValidPriority(PriorityLow))
	assert.True(t, ValidPriority(PriorityMedium))
	assert.True(t, ValidPriority(PriorityHigh))
	assert.False(t, ValidPriority(0))
	assert.False(t, ValidPriority(4))
	assert.False(t, ValidPriority(-1))
}
