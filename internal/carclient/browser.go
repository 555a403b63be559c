package carclient

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"autovad-backend/internal/analytics"

	"github.com/rs/zerolog/log"
)

// Browser is a stateful browse session over the cars API: it owns the
// fetched listing set, the active Selection, and the Cursor, and keeps
// them consistent across searches, facet changes and load-more.
//
// Overlapping fetches are allowed; each is tagged with a monotonically
// increasing sequence number and a completion older than the newest
// applied one is discarded, so a slow stale response can never
// overwrite a fresher result. Fetch failures surface as an empty
// result with a logged cause; a cancelled fetch changes nothing.
type Browser struct {
	client  *Client
	tracker analytics.Tracker

	seq uint64 // last issued fetch, atomic

	mu         sync.Mutex
	appliedSeq uint64
	cars       []Car // the fetched page set (accumulated across load-more)
	selection  Selection
	cursor     Cursor
	result     FacetResult
}

// Snapshot is a consistent view of the session for rendering.
type Snapshot struct {
	Cars      []Car // filtered by the active selection
	Options   Options
	Selection Selection
	Cursor    Cursor
}

// NewBrowser returns a session with the given page size (DefaultLimit
// when out of bounds). tracker may be nil.
func NewBrowser(client *Client, limit int, tracker analytics.Tracker) *Browser {
	if tracker == nil {
		tracker = analytics.NopTracker{}
	}
	b := &Browser{
		client:  client,
		tracker: tracker,
		cursor:  NewCursor(limit),
	}
	b.result = ApplyFacets(nil, b.selection)
	return b
}

// Search validates term, fetches page 1 for it, and replaces the
// listing set. Validation failures (ErrInvalidQuery) are returned
// synchronously; fetch failures are absorbed into an empty result.
func (b *Browser) Search(ctx context.Context, term string) error {
	b.mu.Lock()
	limit := b.cursor.Limit
	b.mu.Unlock()

	q, err := BuildQuery(term, 1, limit)
	if err != nil {
		return err
	}

	seq := atomic.AddUint64(&b.seq, 1)
	page, fetchErr := b.client.FetchPage(ctx, q)

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq <= b.appliedSeq {
		return nil // superseded by a newer request
	}

	if fetchErr != nil {
		if isCancellation(fetchErr) {
			return nil
		}
		log.Warn().Err(fetchErr).Str("query", term).Msg("car search failed; showing empty results")
		b.appliedSeq = seq
		b.cars = nil
		b.selection.Search = term
		b.cursor.Reset()
		b.result = ApplyFacets(b.cars, b.selection)
		return nil
	}

	b.appliedSeq = seq
	b.cars = page.Cars
	b.selection.Search = term
	b.cursor = Cursor{Page: page.Page, Limit: page.Limit}
	b.cursor.Update(page.TotalCount, page.HasMore)
	b.result = ApplyFacets(b.cars, b.selection)

	b.tracker.TrackSearch(analytics.SearchEvent{
		Query:        term,
		Filters:      filterMap(b.selection),
		ResultsCount: len(b.result.Cars),
	})
	return nil
}

// LoadMore fetches the next page for the current search term and
// appends it. A no-op when the last response said there is nothing
// more.
func (b *Browser) LoadMore(ctx context.Context) error {
	b.mu.Lock()
	if !b.cursor.HasMore {
		b.mu.Unlock()
		return nil
	}
	q, err := BuildQuery(b.selection.Search, b.cursor.Page+1, b.cursor.Limit)
	b.mu.Unlock()
	if err != nil {
		return err
	}

	seq := atomic.AddUint64(&b.seq, 1)
	page, fetchErr := b.client.FetchPage(ctx, q)

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq <= b.appliedSeq {
		return nil
	}

	if fetchErr != nil {
		if isCancellation(fetchErr) {
			return nil
		}
		log.Warn().Err(fetchErr).Int("page", q.Page).Msg("load more failed; keeping current results")
		b.appliedSeq = seq
		return nil
	}

	b.appliedSeq = seq
	b.cars = append(b.cars, page.Cars...)
	b.cursor.Advance()
	b.cursor.Update(page.TotalCount, page.HasMore)
	b.result = ApplyFacets(b.cars, b.selection)
	return nil
}

// Select sets one facet choice (with the cascading reset) and
// recomputes the view locally. No network.
func (b *Browser) Select(dim Dimension, choice Choice) {
	b.mu.Lock()
	previous := filterMap(b.selection)
	b.selection = b.selection.With(dim, choice)
	b.result = ApplyFacets(b.cars, b.selection)
	b.mu.Unlock()

	if v, ok := choice.Value(); ok {
		b.tracker.TrackFilter(analytics.FilterEvent{
			FilterType:      dim.String(),
			FilterValue:     v,
			PreviousFilters: previous,
		})
	}
}

// ClearFilters resets every facet and the search term, keeping the
// fetched set.
func (b *Browser) ClearFilters() {
	b.mu.Lock()
	previous := filterMap(b.selection)
	b.selection = b.selection.Clear()
	b.result = ApplyFacets(b.cars, b.selection)
	b.mu.Unlock()

	b.tracker.TrackFilter(analytics.FilterEvent{
		FilterType:      "clear_all",
		FilterValue:     "all_filters_cleared",
		PreviousFilters: previous,
	})
}

// Snapshot returns the current view.
func (b *Browser) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		Cars:      b.result.Cars,
		Options:   b.result.Options,
		Selection: b.selection,
		Cursor:    b.cursor,
	}
}

func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func filterMap(s Selection) map[string]string {
	return map[string]string{
		"make":        s.Make.String(),
		"year":        s.Year.String(),
		"fuel_type":   s.FuelType.String(),
		"body_type":   s.BodyType.String(),
		"location":    s.Location.String(),
		"price_range": s.Price.String(),
	}
}
