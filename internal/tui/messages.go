package tui

import (
	"github.com/BeshketStudent/movie-search/internal/domain"
	"github.com/BeshketStudent/movie-search/internal/search"
)

// debounceMsg fires when the typeahead debounce timer for a generation runs
// out.
type debounceMsg struct {
	gen int
}

// suggestionsMsg carries the outcome of a suggestion fetch.
type suggestionsMsg struct {
	seq     int
	results []domain.Movie
	err     error
}

// pageMsg carries the outcome of a result-page fetch.
type pageMsg struct {
	seq  int
	mode search.FetchMode
	page *domain.MoviePage
	err  error
}

// trendingMsg carries the refreshed top-searches list.
type trendingMsg struct {
	records []domain.TrendingRecord
	err     error
}

// trendingRecordedMsg signals the increment-or-create write finished.
type trendingRecordedMsg struct {
	err error
}
