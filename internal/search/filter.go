package search

import (
	"strings"

	"github.com/BeshketStudent/movie-search/internal/domain"
)

var denylist = []string{"porn", "porno", "adult", "av", "jav", "erotic", "xxx", "sex"}

// Excluded reports whether the movie's title or overview contains a
// denylisted substring, case-insensitively.
func Excluded(movie domain.Movie) bool {
	text := strings.ToLower(movie.Title + movie.Overview)

	for _, term := range denylist {
		if strings.Contains(text, term) {
			return true
		}
	}

	return false
}

// FilterMovies returns movies with excluded entries removed. This is a
// display-time filter: page counters and the has-more computation are taken
// from the unfiltered response, so a page can render short.
func FilterMovies(movies []domain.Movie) []domain.Movie {
	filtered := make([]domain.Movie, 0, len(movies))

	for _, movie := range movies {
		if !Excluded(movie) {
			filtered = append(filtered, movie)
		}
	}

	return filtered
}
