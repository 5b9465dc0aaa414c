package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/BeshketStudent/movie-search/internal/domain"
)

// Session binds the typeahead and pagination controllers to a catalog and a
// trending store. It executes the effects the pure transition functions
// emit: debounce timers via cancel-and-reschedule, fetches on goroutines
// whose results are fed back in as events. In-flight fetches are never
// cancelled; the sequence numbers in the controllers discard stale results.
type Session struct {
	catalog domain.Catalog
	store   domain.TrendingStore
	logger  *slog.Logger
	delay   time.Duration

	mu        sync.Mutex
	typeahead TypeaheadState
	pager     PaginationState
	timer     *time.Timer
	onChange  func(Snapshot)
}

// Snapshot is a point-in-time view of the session for rendering. Results
// already have the content filter applied.
type Snapshot struct {
	RawQuery        string
	EffectiveQuery  string
	Suggestions     []domain.Movie
	DropdownVisible bool
	Status          Status
	Page            int
	HasMore         bool
	Results         []domain.Movie
	ErrMessage      string
}

type SessionOption func(*Session)

// WithDebounceDelay overrides the 500ms debounce. Used by tests.
func WithDebounceDelay(delay time.Duration) SessionOption {
	return func(s *Session) {
		s.delay = delay
	}
}

// WithOnChange registers a callback invoked after every state change.
func WithOnChange(fn func(Snapshot)) SessionOption {
	return func(s *Session) {
		s.onChange = fn
	}
}

func NewSession(catalog domain.Catalog, store domain.TrendingStore, logger *slog.Logger, opts ...SessionOption) *Session {
	s := &Session{
		catalog:   catalog,
		store:     store,
		logger:    logger,
		delay:     DebounceDelay,
		typeahead: NewTypeaheadState(),
		pager:     NewPaginationState(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start issues the initial fetch: page 1 of discover-by-popularity for the
// empty query.
func (s *Session) Start(ctx context.Context) {
	s.applyPager(ctx, QueryChanged{Query: ""})
}

// Type feeds one raw-input change into the typeahead controller.
func (s *Session) Type(ctx context.Context, text string) {
	s.applyTypeahead(ctx, Keystroke{Text: text})
}

func (s *Session) FocusInput(ctx context.Context) {
	s.applyTypeahead(ctx, Focus{})
}

func (s *Session) BlurInput(ctx context.Context) {
	s.applyTypeahead(ctx, Blur{})
}

// Select picks a dropdown suggestion by index.
func (s *Session) Select(ctx context.Context, index int) {
	s.applyTypeahead(ctx, SelectSuggestion{Index: index})
}

// ScrollBottom reports the viewport reaching the bottom threshold.
func (s *Session) ScrollBottom(ctx context.Context) {
	s.applyPager(ctx, ScrollBottom{})
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		RawQuery:        s.typeahead.RawQuery,
		EffectiveQuery:  s.typeahead.EffectiveQuery,
		Suggestions:     s.typeahead.Suggestions,
		DropdownVisible: s.typeahead.DropdownVisible,
		Status:          s.pager.Status,
		Page:            s.pager.Page,
		HasMore:         s.pager.HasMore,
		Results:         FilterMovies(s.pager.Results),
		ErrMessage:      s.pager.ErrMessage,
	}
}

func (s *Session) applyTypeahead(ctx context.Context, event TypeaheadEvent) {
	s.mu.Lock()
	next, effects := s.typeahead.Update(event)
	s.typeahead = next
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)

	for _, effect := range effects {
		switch eff := effect.(type) {
		case StartDebounce:
			s.scheduleDebounce(ctx, eff)
		case FetchSuggestions:
			go s.fetchSuggestions(ctx, eff)
		case CommitQuery:
			s.applyPager(ctx, QueryChanged{Query: eff.Query})
		}
	}
}

func (s *Session) applyPager(ctx context.Context, event PaginationEvent) {
	s.mu.Lock()
	next, effects := s.pager.Update(event)
	s.pager = next
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)

	for _, effect := range effects {
		switch eff := effect.(type) {
		case FetchPage:
			go s.fetchPage(ctx, eff)
		case RecordTrending:
			go s.recordTrending(ctx, eff)
		}
	}
}

func (s *Session) scheduleDebounce(ctx context.Context, eff StartDebounce) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Stopping is best-effort; a timer that already fired for a stale
	// generation is discarded by the controller.
	if s.timer != nil {
		s.timer.Stop()
	}

	s.timer = time.AfterFunc(eff.Delay, func() {
		s.applyTypeahead(ctx, DebounceElapsed{Gen: eff.Gen})
	})
}

func (s *Session) fetchSuggestions(ctx context.Context, eff FetchSuggestions) {
	page, err := s.catalog.SearchMovies(ctx, eff.Query, 1)
	if err != nil {
		s.logger.Debug("suggestion fetch failed", "term", eff.Query, "error", err)
		s.applyTypeahead(ctx, SuggestionsFailed{Seq: eff.Seq})
		return
	}

	s.applyTypeahead(ctx, SuggestionsLoaded{Seq: eff.Seq, Results: page.Results})
}

func (s *Session) fetchPage(ctx context.Context, eff FetchPage) {
	var (
		page *domain.MoviePage
		err  error
	)

	if eff.Query == "" {
		page, err = s.catalog.DiscoverMovies(ctx, eff.Page)
	} else {
		page, err = s.catalog.SearchMovies(ctx, eff.Query, eff.Page)
	}

	if err != nil {
		s.logger.Error("result fetch failed", "term", eff.Query, "page", eff.Page, "error", err)
		s.applyPager(ctx, PageFailed{Seq: eff.Seq, Mode: eff.Mode, Err: err})
		return
	}

	s.applyPager(ctx, PageLoaded{Seq: eff.Seq, Mode: eff.Mode, Page: page})
}

func (s *Session) recordTrending(ctx context.Context, eff RecordTrending) {
	// A failed trending write never blocks or rolls back displayed results.
	err := s.store.Record(ctx, eff.Term, eff.TopResult)
	if err != nil {
		s.logger.Error("failed to record trending search", "term", eff.Term, "error", err)
	}
}

func (s *Session) notify(snap Snapshot) {
	if s.onChange != nil {
		s.onChange(snap)
	}
}
