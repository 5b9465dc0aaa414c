package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/BeshketStudent/movie-search/internal/domain"
	"github.com/BeshketStudent/movie-search/internal/search"
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	inputBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	dropdownStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).Foreground(lipgloss.Color("245"))
	selectedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	ratingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	trendingHeading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Movie Search"))
	b.WriteString("\n\n")
	b.WriteString(inputBoxStyle.Render(m.input.View()))
	b.WriteString("\n")

	if m.typeahead.DropdownVisible {
		b.WriteString(m.renderDropdown())
		b.WriteString("\n")
	}

	if m.typeahead.EffectiveQuery == "" && len(m.trendingSearches) > 0 {
		b.WriteString(m.renderTrending())
		b.WriteString("\n")
	}

	b.WriteString(m.renderResults())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	return b.String()
}

func (m Model) renderDropdown() string {
	var rows []string

	for i, suggestion := range m.typeahead.Suggestions {
		row := suggestion.Title
		if year := releaseYear(suggestion); year != "" {
			row += dimStyle.Render(" (" + year + ")")
		}
		if i == m.suggestion {
			row = selectedStyle.Render("> ") + row
		} else {
			row = "  " + row
		}
		rows = append(rows, row)
	}

	return dropdownStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) renderTrending() string {
	var b strings.Builder

	b.WriteString(trendingHeading.Render("Trending Searches"))
	b.WriteString("\n")

	for i, record := range m.trendingSearches {
		fmt.Fprintf(&b, "  %d. %s %s\n", i+1, record.Term, dimStyle.Render(fmt.Sprintf("(%d)", record.Count)))
	}

	return b.String()
}

func (m Model) renderResults() string {
	visible := search.FilterMovies(m.pager.Results)

	if len(visible) == 0 {
		if m.pager.Status == search.StatusLoaded {
			return dimStyle.Render("No movies found.")
		}
		return ""
	}

	height := m.listHeight()
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}

	end := start + height
	if end > len(visible) {
		end = len(visible)
	}

	var rows []string
	for i := start; i < end; i++ {
		movie := visible[i]

		row := movie.Title
		if year := releaseYear(movie); year != "" {
			row += dimStyle.Render(" (" + year + ")")
		}
		if movie.VoteAverage > 0 {
			row += " " + ratingStyle.Render(fmt.Sprintf("★ %.1f", movie.VoteAverage))
		}

		if i == m.cursor {
			row = selectedStyle.Render("> ") + row
		} else {
			row = "  " + row
		}

		rows = append(rows, row)
	}

	return strings.Join(rows, "\n")
}

func (m Model) renderStatus() string {
	switch m.pager.Status {
	case search.StatusLoading:
		return m.spin.View() + dimStyle.Render(" loading...")
	case search.StatusError:
		return errStyle.Render(m.pager.ErrMessage)
	}

	visible := search.FilterMovies(m.pager.Results)

	status := fmt.Sprintf("page %d/%d · %d shown", m.pager.Page, m.pager.TotalPages, len(visible))
	if !m.pager.HasMore {
		status += " · end of results"
	}

	return dimStyle.Render(status + "  (↑/↓ scroll · enter select · esc quit)")
}

func (m Model) listHeight() int {
	// Leave room for the header, input box, dropdown and status line.
	height := m.height - 12
	if height < 5 {
		height = 5
	}

	return height
}

func releaseYear(movie domain.Movie) string {
	if len(movie.ReleaseDate) < 4 {
		return ""
	}

	return movie.ReleaseDate[:4]
}
