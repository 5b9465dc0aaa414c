package app

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/BeshketStudent/movie-search/internal/domain"
	"github.com/BeshketStudent/movie-search/internal/search"
)

const (
	DefaultPage = 1
	MaxPage     = 500
)

type GetMoviesParams struct {
	Term string `validate:"omitempty,max=100"`
	Page int    `validate:"min=1,max=500"`
}

// GetMovies serves one page of search results. An empty term means
// discover-by-popularity; a non-empty term means a text search. The content
// filter is applied to the returned list only: page counters and hasMore
// reflect the unfiltered upstream totals, so a page can come back short.
func (app *application) GetMovies(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	page, err := app.readInt(qs, "page", DefaultPage)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	params := GetMoviesParams{
		Term: app.readString(qs, "term", ""),
		Page: page,
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	term := strings.TrimSpace(params.Term)

	var result *domain.MoviePage
	if term == "" {
		result, err = app.catalog.DiscoverMovies(r.Context(), params.Page)
	} else {
		result, err = app.catalog.SearchMovies(r.Context(), term, params.Page)
	}
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	// First-page searches with at least one hit bump the trending counter.
	// The top result is captured before filtering, matching what the
	// upstream actually ranked first. Store failures never block the
	// response.
	if params.Page == 1 && term != "" && len(result.Results) > 0 {
		err = app.trendingStore.Record(r.Context(), term, result.Results[0])
		if err != nil {
			app.logger.Error("failed to record trending search", "term", term, "error", err)
		}
	}

	resp := MovieListResponse{
		Page:         result.Page,
		Movies:       toMovieResponses(search.FilterMovies(result.Results)),
		TotalPages:   result.TotalPages,
		TotalResults: result.TotalResults,
		HasMore:      result.HasMore(),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetMovieSuggestions serves the typeahead dropdown: the first six results
// of a page-1 search. Short input yields an empty list, and catalog
// failures are swallowed into an empty list so the dropdown just stays
// hidden.
func (app *application) GetMovieSuggestions(w http.ResponseWriter, r *http.Request) {
	term := app.readString(r.URL.Query(), "term", "")

	resp := SuggestionsResponse{Suggestions: []MovieResponse{}}

	if len(strings.TrimSpace(term)) >= search.MinSuggestionChars {
		result, err := app.catalog.SearchMovies(r.Context(), term, 1)
		if err != nil {
			app.logger.Debug("suggestion fetch failed", "term", term, "error", err)
		} else {
			suggestions := result.Results
			if len(suggestions) > search.MaxSuggestions {
				suggestions = suggestions[:search.MaxSuggestions]
			}
			resp.Suggestions = toMovieResponses(suggestions)
		}
	}

	err := app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	movie, err := app.catalog.GetMovie(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(*movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetMovieVideos(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	videos, err := app.catalog.GetMovieVideos(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := VideoListResponse{Videos: make([]VideoResponse, len(videos))}
	for i, v := range videos {
		resp.Videos[i] = VideoResponse{
			Id:       v.ID,
			Key:      v.Key,
			Name:     v.Name,
			Site:     v.Site,
			Type:     v.Type,
			Official: v.Official,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) readIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		return 0, errors.New("invalid id parameter")
	}

	return id, nil
}
