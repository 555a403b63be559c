package analytics

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SearchEvent captures one executed search.
type SearchEvent struct {
	Query        string
	Filters      map[string]string
	ResultsCount int
}

// FilterEvent captures one facet selection change.
type FilterEvent struct {
	FilterType      string
	FilterValue     string
	PreviousFilters map[string]string
}

// Tracker receives browse events. The capture backend is out of scope;
// implementations only need to be cheap and non-blocking.
type Tracker interface {
	TrackSearch(SearchEvent)
	TrackFilter(FilterEvent)
}

// LogTracker emits events as structured log lines.
type LogTracker struct {
	Logger *zerolog.Logger
}

func (t *LogTracker) logger() *zerolog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return &log.Logger
}

func (t *LogTracker) TrackSearch(e SearchEvent) {
	t.logger().Info().
		Str("event", "search_performed").
		Str("query", e.Query).
		Int("results_count", e.ResultsCount).
		Interface("filters", e.Filters).
		Msg("analytics")
}

func (t *LogTracker) TrackFilter(e FilterEvent) {
	t.logger().Info().
		Str("event", "filter_applied").
		Str("filter_type", e.FilterType).
		Str("filter_value", e.FilterValue).
		Interface("previous_filters", e.PreviousFilters).
		Msg("analytics")
}

// NopTracker discards everything; used in tests.
type NopTracker struct{}

func (NopTracker) TrackSearch(SearchEvent) {}
func (NopTracker) TrackFilter(FilterEvent) {}
