package carclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCursor_Defaults(t *testing.T) {
	c := NewCursor(0)
	assert.Equal(t, 1, c.Page)
	assert.Equal(t, DefaultLimit, c.Limit)

	c = NewCursor(35)
	assert.Equal(t, 35, c.Limit)
}

func TestCursor_AdvanceAndReset(t *testing.T) {
	c := NewCursor(20)
	c.Update(45, true)
	c.Advance()
	assert.Equal(t, 2, c.Page)
	assert.Equal(t, 45, c.TotalCount)
	assert.True(t, c.HasMore)

	c.Reset()
	assert.Equal(t, 1, c.Page)
	assert.Equal(t, 0, c.TotalCount)
	assert.False(t, c.HasMore)
	assert.Equal(t, 20, c.Limit)
}

// 45 rows at 20 per page: page 1 has more, page 3 (offset 40) does not.
func TestHasMore_Derivation(t *testing.T) {
	q := Query{Page: 1, Limit: 20}
	assert.True(t, q.Offset()+q.Limit < 45)

	q = Query{Page: 3, Limit: 20}
	assert.Equal(t, 40, q.Offset())
	assert.False(t, q.Offset()+q.Limit < 45)
}
