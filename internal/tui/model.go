// Package tui is the interactive terminal view over the search controllers:
// a query box with a typeahead dropdown and an infinitely scrolling result
// list. It is a thin event-loop adapter: keystrokes, timer ticks and fetch
// results are translated into controller events, and the effects the
// controllers emit come back as bubbletea commands.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/BeshketStudent/movie-search/internal/domain"
	"github.com/BeshketStudent/movie-search/internal/search"
)

// scrollThreshold is how many rows from the bottom of the list the cursor
// may be before the next page is requested.
const scrollThreshold = 3

const trendingLimit = 5

type Model struct {
	catalog domain.Catalog
	store   domain.TrendingStore
	logger  *slog.Logger

	typeahead search.TypeaheadState
	pager     search.PaginationState

	input textinput.Model
	spin  spinner.Model

	width  int
	height int

	// cursor indexes into the filtered result list; suggestion indexes into
	// the dropdown when it is visible.
	cursor     int
	suggestion int

	trendingSearches []domain.TrendingRecord

	// initCmds carries the fetch commands for the initial discover page.
	// The transition that issued them runs in NewModel, because state
	// changes made inside Init are lost: the program keeps the model Init
	// was called on and only the returned commands survive.
	initCmds []tea.Cmd
}

func NewModel(catalog domain.Catalog, store domain.TrendingStore, logger *slog.Logger) Model {
	input := textinput.New()
	input.Placeholder = "Search for a movie..."
	input.Focus()
	input.CharLimit = 100

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := Model{
		catalog:   catalog,
		store:     store,
		logger:    logger,
		typeahead: search.NewTypeaheadState(),
		pager:     search.NewPaginationState(),
		input:     input,
		spin:      spin,
	}

	// Initial paint: page 1 of discover-by-popularity for the empty query.
	next, effects := m.pager.Update(search.QueryChanged{Query: ""})
	m.pager = next
	m.initCmds = m.pagerCmds(effects)

	return m
}

func (m Model) Init() tea.Cmd {
	cmds := append([]tea.Cmd{}, m.initCmds...)
	cmds = append(cmds, m.fetchTrending(), textinput.Blink, m.spin.Tick)

	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case debounceMsg:
		return m.applyTypeahead(search.DebounceElapsed{Gen: msg.gen})

	case suggestionsMsg:
		if msg.err != nil {
			return m.applyTypeahead(search.SuggestionsFailed{Seq: msg.seq})
		}
		return m.applyTypeahead(search.SuggestionsLoaded{Seq: msg.seq, Results: msg.results})

	case pageMsg:
		if msg.err != nil {
			m.logger.Error("result fetch failed", "error", msg.err)
			return m.applyPager(search.PageFailed{Seq: msg.seq, Mode: msg.mode, Err: msg.err})
		}
		return m.applyPager(search.PageLoaded{Seq: msg.seq, Mode: msg.mode, Page: msg.page})

	case trendingMsg:
		if msg.err != nil {
			// Trending is decorative; a failed read leaves the old list.
			m.logger.Debug("trending fetch failed", "error", msg.err)
			return m, nil
		}
		m.trendingSearches = msg.records
		return m, nil

	case trendingRecordedMsg:
		if msg.err != nil {
			m.logger.Error("failed to record trending search", "error", msg.err)
			return m, nil
		}
		return m, m.fetchTrending()

	case spinner.TickMsg:
		if m.pager.Status != search.StatusLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "up":
		if m.typeahead.DropdownVisible {
			if m.suggestion > 0 {
				m.suggestion--
			}
			return m, nil
		}
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down":
		if m.typeahead.DropdownVisible {
			if m.suggestion < len(m.typeahead.Suggestions)-1 {
				m.suggestion++
			}
			return m, nil
		}
		return m.advanceCursor(1)

	case "pgdown":
		return m.advanceCursor(10)

	case "enter":
		if m.typeahead.DropdownVisible {
			index := m.suggestion
			m.suggestion = 0
			next, cmd := m.applyTypeahead(search.SelectSuggestion{Index: index})
			model := next.(Model)
			model.input.SetValue(model.typeahead.RawQuery)
			return model, cmd
		}
		return m, nil

	case "tab":
		// Outside interaction: hide the dropdown.
		return m.applyTypeahead(search.Blur{})
	}

	before := m.input.Value()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		next, keyCmd := m.applyTypeahead(search.Keystroke{Text: m.input.Value()})
		return next, tea.Batch(cmd, keyCmd)
	}

	return m, cmd
}

// advanceCursor moves down the filtered result list and requests the next
// page once the cursor is within scrollThreshold rows of the bottom. The
// loading gate in the pagination controller keeps repeated presses from
// issuing more than one fetch.
func (m Model) advanceCursor(by int) (tea.Model, tea.Cmd) {
	visible := search.FilterMovies(m.pager.Results)

	m.cursor += by
	if m.cursor > len(visible)-1 {
		m.cursor = len(visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	if m.cursor >= len(visible)-scrollThreshold {
		return m.applyPager(search.ScrollBottom{})
	}

	return m, nil
}

func (m Model) applyTypeahead(event search.TypeaheadEvent) (tea.Model, tea.Cmd) {
	next, effects := m.typeahead.Update(event)
	m.typeahead = next

	var cmds []tea.Cmd
	for _, effect := range effects {
		switch eff := effect.(type) {
		case search.StartDebounce:
			gen := eff.Gen
			cmds = append(cmds, tea.Tick(eff.Delay, func(time.Time) tea.Msg {
				return debounceMsg{gen: gen}
			}))

		case search.FetchSuggestions:
			cmds = append(cmds, m.fetchSuggestions(eff))

		case search.CommitQuery:
			pagerNext, pagerEffects := m.pager.Update(search.QueryChanged{Query: eff.Query})
			m.pager = pagerNext
			m.cursor = 0
			cmds = append(cmds, m.pagerCmds(pagerEffects)...)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) applyPager(event search.PaginationEvent) (tea.Model, tea.Cmd) {
	next, effects := m.pager.Update(event)
	m.pager = next

	return m, tea.Batch(m.pagerCmds(effects)...)
}

func (m Model) pagerCmds(effects []search.PaginationEffect) []tea.Cmd {
	var cmds []tea.Cmd

	for _, effect := range effects {
		switch eff := effect.(type) {
		case search.FetchPage:
			cmds = append(cmds, m.fetchPage(eff), m.spin.Tick)
		case search.RecordTrending:
			cmds = append(cmds, m.recordTrending(eff))
		}
	}

	return cmds
}

func (m Model) fetchPage(eff search.FetchPage) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var (
			page *domain.MoviePage
			err  error
		)

		if eff.Query == "" {
			page, err = m.catalog.DiscoverMovies(ctx, eff.Page)
		} else {
			page, err = m.catalog.SearchMovies(ctx, eff.Query, eff.Page)
		}

		return pageMsg{seq: eff.Seq, mode: eff.Mode, page: page, err: err}
	}
}

func (m Model) fetchSuggestions(eff search.FetchSuggestions) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		page, err := m.catalog.SearchMovies(ctx, eff.Query, 1)
		if err != nil {
			return suggestionsMsg{seq: eff.Seq, err: err}
		}

		return suggestionsMsg{seq: eff.Seq, results: page.Results}
	}
}

func (m Model) recordTrending(eff search.RecordTrending) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return trendingRecordedMsg{err: m.store.Record(ctx, eff.Term, eff.TopResult)}
	}
}

func (m Model) fetchTrending() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		records, err := m.store.TopSearches(ctx, trendingLimit)
		return trendingMsg{records: records, err: err}
	}
}
