package carclient

import (
	"errors"

	"autovad-backend/internal/pkg/validation"
)

var (
	// ErrInvalidQuery means the search term contains characters outside
	// [\w\s-] or exceeds 50 characters.
	ErrInvalidQuery = errors.New("invalid search query")
	// ErrInvalidPagination means page < 1 or limit outside [1,50].
	ErrInvalidPagination = errors.New("invalid pagination")
)

// Pagination bounds enforced before any network call.
const (
	MinLimit     = 1
	MaxLimit     = 50
	DefaultLimit = 20
)

// Query is a validated retrieval request against the listings store.
// Results are always ordered newest-created first; a non-empty Search
// asks for a case-insensitive substring match over make OR model.
type Query struct {
	Search string
	Page   int
	Limit  int
}

// Offset is the row offset implied by page and limit.
func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// BuildQuery validates the inputs and produces a Query. It is a pure
// transform: no side effects, no network.
func BuildQuery(search string, page, limit int) (Query, error) {
	if !validation.IsValidSearchQuery(search) {
		return Query{}, ErrInvalidQuery
	}
	if page < 1 || limit < MinLimit || limit > MaxLimit {
		return Query{}, ErrInvalidPagination
	}
	return Query{Search: search, Page: page, Limit: limit}, nil
}
