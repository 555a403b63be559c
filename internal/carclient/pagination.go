package carclient

// Cursor tracks page advancement across successive fetches of the same
// query. HasMore is authoritative from the last fetch response, never
// recomputed from the in-memory set.
type Cursor struct {
	Page       int
	Limit      int
	TotalCount int
	HasMore    bool
}

// NewCursor returns a cursor at page 1 with the given page size.
// A limit outside [MinLimit, MaxLimit] falls back to DefaultLimit.
func NewCursor(limit int) Cursor {
	if limit < MinLimit || limit > MaxLimit {
		limit = DefaultLimit
	}
	return Cursor{Page: 1, Limit: limit}
}

// Reset rewinds to page 1, clearing derived state. Call on any query
// or facet change.
func (c *Cursor) Reset() {
	c.Page = 1
	c.TotalCount = 0
	c.HasMore = false
}

// Advance moves to the next page while holding the query fixed.
func (c *Cursor) Advance() {
	c.Page++
}

// Update records the derived state from the last fetch response.
func (c *Cursor) Update(totalCount int, hasMore bool) {
	c.TotalCount = totalCount
	c.HasMore = hasMore
}
