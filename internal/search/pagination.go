// Package search models the interactive movie search pipeline as two state
// machines: a typeahead controller that debounces raw input into an effective
// query, and a pagination controller that accumulates result pages under
// infinite scroll. Each controller is an explicit state value plus a pure
// transition function that returns the next state and a list of effects for
// the caller to execute. Every issued fetch carries a monotonically
// increasing sequence number; responses whose sequence number is not the
// latest issued are discarded, so an in-flight fetch for a stale query can
// never clobber newer results.
package search

import "github.com/BeshketStudent/movie-search/internal/domain"

// ErrFetchMessage is the fixed user-visible message for a failed result fetch.
const ErrFetchMessage = "Something went wrong. Please try again later."

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// FetchMode says whether a page of results supersedes or extends the
// accumulator.
type FetchMode int

const (
	Replace FetchMode = iota
	Append
)

// PaginationState accumulates result pages for the current effective query.
// Results are kept in arrival order with no de-duplication: a movie the
// upstream re-ranks across pages renders twice.
type PaginationState struct {
	Status     Status
	Query      string
	Page       int
	TotalPages int
	HasMore    bool
	Results    []domain.Movie
	ErrMessage string

	// Seq is the sequence number of the most recently issued fetch.
	Seq int
}

func NewPaginationState() PaginationState {
	return PaginationState{
		Status:  StatusIdle,
		Page:    1,
		HasMore: true,
	}
}

type PaginationEvent interface{ paginationEvent() }

// QueryChanged commits a new effective query: the cursor resets to page 1
// and a replace-mode fetch is issued.
type QueryChanged struct{ Query string }

// ScrollBottom is the viewport reaching the bottom threshold. It advances
// the cursor by one and issues an append-mode fetch, gated on not already
// loading and more pages existing.
type ScrollBottom struct{}

// PageLoaded delivers a successful fetch result.
type PageLoaded struct {
	Seq  int
	Mode FetchMode
	Page *domain.MoviePage
}

// PageFailed delivers a failed fetch.
type PageFailed struct {
	Seq  int
	Mode FetchMode
	Err  error
}

func (QueryChanged) paginationEvent() {}
func (ScrollBottom) paginationEvent() {}
func (PageLoaded) paginationEvent()   {}
func (PageFailed) paginationEvent()   {}

type PaginationEffect interface{ paginationEffect() }

// FetchPage asks the driver to fetch one page of results. An empty Query
// means discover-by-popularity; a non-empty query means search. The driver
// echoes Seq and Mode back in the resulting PageLoaded/PageFailed event.
type FetchPage struct {
	Seq   int
	Query string
	Page  int
	Mode  FetchMode
}

// RecordTrending asks the driver to increment-or-create the trending record
// for Term. Emitted exactly once per successful first-page fetch of a
// non-empty query that returned at least one result.
type RecordTrending struct {
	Term      string
	TopResult domain.Movie
}

func (FetchPage) paginationEffect()      {}
func (RecordTrending) paginationEffect() {}

// Update is the pure transition function. It never blocks and never touches
// I/O: all side effects are returned for the caller to run.
func (s PaginationState) Update(event PaginationEvent) (PaginationState, []PaginationEffect) {
	switch ev := event.(type) {
	case QueryChanged:
		s.Query = ev.Query
		s.Page = 1
		s.TotalPages = 0
		s.HasMore = true
		s.ErrMessage = ""
		s.Seq++
		s.Status = StatusLoading

		return s, []PaginationEffect{FetchPage{Seq: s.Seq, Query: s.Query, Page: 1, Mode: Replace}}

	case ScrollBottom:
		if s.Status == StatusLoading || !s.HasMore {
			return s, nil
		}

		s.Page++
		s.Seq++
		s.Status = StatusLoading
		s.ErrMessage = ""

		return s, []PaginationEffect{FetchPage{Seq: s.Seq, Query: s.Query, Page: s.Page, Mode: Append}}

	case PageLoaded:
		if ev.Seq != s.Seq {
			return s, nil
		}

		s.Status = StatusLoaded
		s.TotalPages = ev.Page.TotalPages
		s.HasMore = ev.Page.HasMore()

		if ev.Mode == Replace {
			s.Results = ev.Page.Results
		} else {
			s.Results = append(s.Results, ev.Page.Results...)
		}

		var effects []PaginationEffect
		if ev.Mode == Replace && ev.Page.Page == 1 && s.Query != "" && len(ev.Page.Results) > 0 {
			effects = append(effects, RecordTrending{Term: s.Query, TopResult: ev.Page.Results[0]})
		}

		return s, effects

	case PageFailed:
		if ev.Seq != s.Seq {
			return s, nil
		}

		s.Status = StatusError
		s.ErrMessage = ErrFetchMessage

		// A failed "load more" keeps what the user already has; a failed
		// fresh search clears it.
		if ev.Mode == Replace {
			s.Results = nil
		}

		return s, nil
	}

	return s, nil
}
