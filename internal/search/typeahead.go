package search

import (
	"strings"
	"time"

	"github.com/BeshketStudent/movie-search/internal/domain"
)

const (
	// DebounceDelay is how long raw input must stay quiet before it becomes
	// the effective query.
	DebounceDelay = 500 * time.Millisecond

	// MaxSuggestions caps the typeahead dropdown.
	MaxSuggestions = 6

	// MinSuggestionChars is the trimmed input length below which the
	// suggestion list is cleared instead of fetched.
	MinSuggestionChars = 2
)

// TypeaheadState owns the raw query, the debounced effective query and the
// suggestion dropdown. The raw query updates per keystroke; the effective
// query only after DebounceDelay of inactivity, via a single-flight
// cancel-and-reschedule debounce that never commits intermediate values.
type TypeaheadState struct {
	RawQuery        string
	EffectiveQuery  string
	Suggestions     []domain.Movie
	DropdownVisible bool

	// DebounceGen identifies the pending debounce timer; a timer whose
	// generation is no longer current was cancelled by a later keystroke.
	DebounceGen int

	// SuggestSeq is the sequence number of the latest suggestion fetch.
	SuggestSeq int
}

func NewTypeaheadState() TypeaheadState {
	return TypeaheadState{}
}

type TypeaheadEvent interface{ typeaheadEvent() }

// Keystroke is a change to the raw input value.
type Keystroke struct{ Text string }

// DebounceElapsed fires when a debounce timer started for Gen runs out.
type DebounceElapsed struct{ Gen int }

// SuggestionsLoaded delivers a successful suggestion fetch.
type SuggestionsLoaded struct {
	Seq     int
	Results []domain.Movie
}

// SuggestionsFailed delivers a failed suggestion fetch. Failures are
// swallowed: the dropdown just hides.
type SuggestionsFailed struct{ Seq int }

// Focus is the input gaining focus; Blur is an outside interaction.
type Focus struct{}
type Blur struct{}

// SelectSuggestion picks a dropdown entry, committing its title as both the
// raw and effective query.
type SelectSuggestion struct{ Index int }

func (Keystroke) typeaheadEvent()         {}
func (DebounceElapsed) typeaheadEvent()   {}
func (SuggestionsLoaded) typeaheadEvent() {}
func (SuggestionsFailed) typeaheadEvent() {}
func (Focus) typeaheadEvent()             {}
func (Blur) typeaheadEvent()              {}
func (SelectSuggestion) typeaheadEvent()  {}

type TypeaheadEffect interface{ typeaheadEffect() }

// StartDebounce asks the driver to deliver DebounceElapsed{Gen} after Delay,
// replacing any previously scheduled timer.
type StartDebounce struct {
	Gen   int
	Delay time.Duration
}

// FetchSuggestions asks the driver to fetch page 1 for Query and deliver
// SuggestionsLoaded or SuggestionsFailed tagged with Seq.
type FetchSuggestions struct {
	Seq   int
	Query string
}

// CommitQuery hands the settled effective query to the pagination
// controller.
type CommitQuery struct{ Query string }

func (StartDebounce) typeaheadEffect()    {}
func (FetchSuggestions) typeaheadEffect() {}
func (CommitQuery) typeaheadEffect()      {}

// Update is the pure transition function for the typeahead controller.
func (s TypeaheadState) Update(event TypeaheadEvent) (TypeaheadState, []TypeaheadEffect) {
	switch ev := event.(type) {
	case Keystroke:
		s.RawQuery = ev.Text
		s.DebounceGen++

		effects := []TypeaheadEffect{StartDebounce{Gen: s.DebounceGen, Delay: DebounceDelay}}

		if len(strings.TrimSpace(ev.Text)) >= MinSuggestionChars {
			s.SuggestSeq++
			effects = append(effects, FetchSuggestions{Seq: s.SuggestSeq, Query: ev.Text})
		} else {
			s.Suggestions = nil
			s.DropdownVisible = false
		}

		return s, effects

	case DebounceElapsed:
		if ev.Gen != s.DebounceGen {
			return s, nil
		}

		s.EffectiveQuery = s.RawQuery

		return s, []TypeaheadEffect{CommitQuery{Query: s.EffectiveQuery}}

	case SuggestionsLoaded:
		if ev.Seq != s.SuggestSeq {
			return s, nil
		}
		if len(strings.TrimSpace(s.RawQuery)) < MinSuggestionChars {
			// Input shrank while the fetch was in flight.
			return s, nil
		}

		suggestions := ev.Results
		if len(suggestions) > MaxSuggestions {
			suggestions = suggestions[:MaxSuggestions]
		}

		s.Suggestions = suggestions
		s.DropdownVisible = len(suggestions) > 0

		return s, nil

	case SuggestionsFailed:
		if ev.Seq != s.SuggestSeq {
			return s, nil
		}

		s.Suggestions = nil
		s.DropdownVisible = false

		return s, nil

	case Focus:
		if len(s.Suggestions) > 0 {
			s.DropdownVisible = true
		}

		return s, nil

	case Blur:
		s.DropdownVisible = false

		return s, nil

	case SelectSuggestion:
		if ev.Index < 0 || ev.Index >= len(s.Suggestions) {
			return s, nil
		}

		title := s.Suggestions[ev.Index].Title
		s.RawQuery = title
		s.EffectiveQuery = title
		s.DropdownVisible = false
		s.DebounceGen++ // cancel any pending debounce

		return s, []TypeaheadEffect{CommitQuery{Query: title}}
	}

	return s, nil
}
