package memory

import (
	"testing"

	"codal-docs-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomyCache_Subjects(t *testing.T) {
	c := NewTaxonomyCache()

	_, ok := c.Subjects()
	assert.False(t, ok)

	c.SetSubjects([]*entity.Subject{{Id: "Civil Law"}})
	got, ok := c.Subjects()
	require.True(t, ok)
	require.Len(t, got, 1)

	got[0].Id = "mutated"
	again, _ := c.Subjects()
	assert.Equal(t, "Civil Law", again[0].Id)

	c.InvalidateSubjects()
	_, ok = c.Subjects()
	assert.False(t, ok)
}

func TestTaxonomyCache_EmptyListIsCached(t *testing.T) {
	c := NewTaxonomyCache()
	c.SetSubjects(nil)

	got, ok := c.Subjects()
	assert.True(t, ok)
	assert.Empty(t, got)
}
