package app

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/BeshketStudent/movie-search/internal/domain"
	"github.com/BeshketStudent/movie-search/internal/mocks"
)

func moviePage(page, totalPages int, titles ...string) *domain.MoviePage {
	results := make([]domain.Movie, len(titles))
	for i, title := range titles {
		results[i] = domain.Movie{ID: i + 1, Title: title}
	}

	return &domain.MoviePage{
		Page:         page,
		Results:      results,
		TotalPages:   totalPages,
		TotalResults: totalPages * 20,
	}
}

func failIfSearched(t *testing.T) *mocks.MockCatalog {
	return &mocks.MockCatalog{
		SearchMoviesFunc: func(ctx context.Context, term string, page int) (*domain.MoviePage, error) {
			t.Errorf("unexpected SearchMovies(%q, %d)", term, page)
			return nil, errors.New("unexpected call")
		},
		DiscoverMoviesFunc: func(ctx context.Context, page int) (*domain.MoviePage, error) {
			t.Errorf("unexpected DiscoverMovies(%d)", page)
			return nil, errors.New("unexpected call")
		},
	}
}

func failIfRecorded(t *testing.T) *mocks.MockTrendingStore {
	return &mocks.MockTrendingStore{
		RecordFunc: func(ctx context.Context, term string, topResult domain.Movie) error {
			t.Errorf("unexpected Record(%q, %d)", term, topResult.ID)
			return nil
		},
	}
}

func TestGetMoviesSearch(t *testing.T) {
	var gotTerm string
	var gotPage int

	catalog := &mocks.MockCatalog{
		SearchMoviesFunc: func(ctx context.Context, term string, page int) (*domain.MoviePage, error) {
			gotTerm, gotPage = term, page
			return moviePage(1, 3, "Dune", "Dune: Part Two"), nil
		},
	}

	var recorded []string
	store := &mocks.MockTrendingStore{
		RecordFunc: func(ctx context.Context, term string, topResult domain.Movie) error {
			recorded = append(recorded, term)
			require.Equal(t, "Dune", topResult.Title)
			return nil
		},
	}

	app := newTestApplication(catalog, store)

	rr := executeRequest(app, http.MethodGet, "/movies?term=dune")
	requireStatus(t, rr, http.StatusOK)

	require.Equal(t, "dune", gotTerm)
	require.Equal(t, 1, gotPage)
	require.Equal(t, []string{"dune"}, recorded)

	got := decodeResponse[MovieListResponse](t, rr)

	want := MovieListResponse{
		Page: 1,
		Movies: []MovieResponse{
			{Id: 1, Title: "Dune"},
			{Id: 2, Title: "Dune: Part Two"},
		},
		TotalPages:   3,
		TotalResults: 60,
		HasMore:      true,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestGetMoviesTrimsTermBeforeSearching(t *testing.T) {
	var gotTerm string

	catalog := &mocks.MockCatalog{
		SearchMoviesFunc: func(ctx context.Context, term string, page int) (*domain.MoviePage, error) {
			gotTerm = term
			return moviePage(1, 1, "Heat"), nil
		},
	}

	store := &mocks.MockTrendingStore{
		RecordFunc: func(ctx context.Context, term string, topResult domain.Movie) error {
			require.Equal(t, "heat", term)
			return nil
		},
	}

	app := newTestApplication(catalog, store)

	rr := executeRequest(app, http.MethodGet, "/movies?term=%20heat%20")
	requireStatus(t, rr, http.StatusOK)
	require.Equal(t, "heat", gotTerm)
}

func TestGetMoviesEmptyTermDiscovers(t *testing.T) {
	var gotPage int

	catalog := failIfSearched(t)
	catalog.DiscoverMoviesFunc = func(ctx context.Context, page int) (*domain.MoviePage, error) {
		gotPage = page
		return moviePage(2, 5, "Top Pick"), nil
	}

	app := newTestApplication(catalog, failIfRecorded(t))

	rr := executeRequest(app, http.MethodGet, "/movies?page=2")
	requireStatus(t, rr, http.StatusOK)
	require.Equal(t, 2, gotPage)
}

func TestGetMoviesFiltersContentButKeepsTotals(t *testing.T) {
	catalog := &mocks.MockCatalog{
		SearchMoviesFunc: func(ctx context.Context, term string, page int) (*domain.MoviePage, error) {
			return &domain.MoviePage{
				Page: 1,
				Results: []domain.Movie{
					{ID: 1, Title: "Sex and the City"},
					{ID: 2, Title: "The City"},
				},
				TotalPages:   4,
				TotalResults: 80,
			}, nil
		},
	}

	// The excluded title is still the top result the upstream ranked first,
	// so it is the one captured for trending.
	var recordedTop domain.Movie
	store := &mocks.MockTrendingStore{
		RecordFunc: func(ctx context.Context, term string, topResult domain.Movie) error {
			recordedTop = topResult
			return nil
		},
	}

	app := newTestApplication(catalog, store)

	rr := executeRequest(app, http.MethodGet, "/movies?term=city")
	requireStatus(t, rr, http.StatusOK)

	got := decodeResponse[MovieListResponse](t, rr)

	require.Len(t, got.Movies, 1)
	require.Equal(t, "The City", got.Movies[0].Title)
	require.Equal(t, 4, got.TotalPages)
	require.Equal(t, 80, got.TotalResults)
	require.True(t, got.HasMore)
	require.Equal(t, 1, recordedTop.ID)
}

func TestGetMoviesDoesNotRecordLaterPages(t *testing.T) {
	catalog := &mocks.MockCatalog{
		SearchMoviesFunc: func(ctx context.Context, term string, page int) (*domain.MoviePage, error) {
			return moviePage(2, 3, "Dune"), nil
		},
	}

	app := newTestApplication(catalog, failIfRecorded(t))

	rr := executeRequest(app, http.MethodGet, "/movies?term=dune&page=2")
	requireStatus(t, rr, http.StatusOK)
}

func TestGetMoviesDoesNotRecordEmptyResults(t *testing.T) {
	catalog := &mocks.MockCatalog{
		SearchMoviesFunc: func(ctx context.Context, term string, page int) (*domain.MoviePage, error) {
			return moviePage(1, 0), nil
		},
	}

	app := newTestApplication(catalog, failIfRecorded(t))

	rr := executeRequest(app, http.MethodGet, "/movies?term=zzzzz")
	requireStatus(t, rr, http.StatusOK)
}

func TestGetMoviesTrendingFailureDoesNotBlockResponse(t *testing.T) {
	catalog := &mocks.MockCatalog{
		SearchMoviesFunc: func(ctx context.Context, term string, page int) (*domain.MoviePage, error) {
			return moviePage(1, 1, "Dune"), nil
		},
	}

	store := &mocks.MockTrendingStore{
		RecordFunc: func(ctx context.Context, term string, topResult domain.Movie) error {
			return errors.New("redis down")
		},
	}

	app := newTestApplication(catalog, store)

	rr := executeRequest(app, http.MethodGet, "/movies?term=dune")
	requireStatus(t, rr, http.StatusOK)

	got := decodeResponse[MovieListResponse](t, rr)
	require.Len(t, got.Movies, 1)
}

func TestGetMoviesValidation(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{
			name:       "page zero",
			target:     "/movies?page=0",
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "page above limit",
			target:     "/movies?page=501",
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "page not an integer",
			target:     "/movies?page=abc",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApplication(failIfSearched(t), failIfRecorded(t))

			rr := executeRequest(app, http.MethodGet, tc.target)
			requireStatus(t, rr, tc.wantStatus)
		})
	}
}

func TestGetMoviesCatalogError(t *testing.T) {
	catalog := &mocks.MockCatalog{
		SearchMoviesFunc: func(ctx context.Context, term string, page int) (*domain.MoviePage, error) {
			return nil, errors.New("upstream unavailable")
		},
	}

	app := newTestApplication(catalog, failIfRecorded(t))

	rr := executeRequest(app, http.MethodGet, "/movies?term=dune")
	requireStatus(t, rr, http.StatusInternalServerError)

	got := decodeResponse[ErrorResponse](t, rr)
	require.Equal(t, "The server encountered a problem and could not process your request", got.Message)
}

func TestGetMovieSuggestions(t *testing.T) {
	catalog := &mocks.MockCatalog{
		SearchMoviesFunc: func(ctx context.Context, term string, page int) (*domain.MoviePage, error) {
			require.Equal(t, 1, page)
			return moviePage(1, 1, "A", "B", "C", "D", "E", "F", "G", "H"), nil
		},
	}

	app := newTestApplication(catalog, failIfRecorded(t))

	rr := executeRequest(app, http.MethodGet, "/movies/suggestions?term=dune")
	requireStatus(t, rr, http.StatusOK)

	got := decodeResponse[SuggestionsResponse](t, rr)
	require.Len(t, got.Suggestions, 6)
	require.Equal(t, "A", got.Suggestions[0].Title)
}

func TestGetMovieSuggestionsShortTerm(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "single char", target: "/movies/suggestions?term=d"},
		{name: "empty", target: "/movies/suggestions"},
		{name: "whitespace only", target: "/movies/suggestions?term=%20%20"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApplication(failIfSearched(t), failIfRecorded(t))

			rr := executeRequest(app, http.MethodGet, tc.target)
			requireStatus(t, rr, http.StatusOK)

			got := decodeResponse[SuggestionsResponse](t, rr)
			require.Empty(t, got.Suggestions)
		})
	}
}

func TestGetMovieSuggestionsSwallowsCatalogError(t *testing.T) {
	catalog := &mocks.MockCatalog{
		SearchMoviesFunc: func(ctx context.Context, term string, page int) (*domain.MoviePage, error) {
			return nil, errors.New("upstream unavailable")
		},
	}

	app := newTestApplication(catalog, failIfRecorded(t))

	rr := executeRequest(app, http.MethodGet, "/movies/suggestions?term=dune")
	requireStatus(t, rr, http.StatusOK)

	got := decodeResponse[SuggestionsResponse](t, rr)
	require.Empty(t, got.Suggestions)
}

func TestGetMovie(t *testing.T) {
	catalog := &mocks.MockCatalog{
		GetMovieFunc: func(ctx context.Context, id int) (*domain.Movie, error) {
			require.Equal(t, 438631, id)
			return &domain.Movie{
				ID:          438631,
				Title:       "Dune",
				ReleaseDate: "2021-09-15",
				Genres:      []string{"Science Fiction", "Adventure"},
				Runtime:     155,
			}, nil
		},
	}

	app := newTestApplication(catalog, failIfRecorded(t))

	rr := executeRequest(app, http.MethodGet, "/movies/438631")
	requireStatus(t, rr, http.StatusOK)

	got := decodeResponse[MovieResponse](t, rr)

	want := MovieResponse{
		Id:          438631,
		Title:       "Dune",
		ReleaseDate: "2021-09-15",
		Genres:      []string{"Science Fiction", "Adventure"},
		Runtime:     155,
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestGetMovieErrors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		getMovie   func(ctx context.Context, id int) (*domain.Movie, error)
		wantStatus int
	}{
		{
			name:   "unknown id",
			target: "/movies/999",
			getMovie: func(ctx context.Context, id int) (*domain.Movie, error) {
				return nil, domain.ErrRecordNotFound
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "non-numeric id",
			target:     "/movies/abc",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "zero id",
			target:     "/movies/0",
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "catalog failure",
			target: "/movies/438631",
			getMovie: func(ctx context.Context, id int) (*domain.Movie, error) {
				return nil, errors.New("upstream unavailable")
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			catalog := &mocks.MockCatalog{GetMovieFunc: tc.getMovie}

			app := newTestApplication(catalog, failIfRecorded(t))

			rr := executeRequest(app, http.MethodGet, tc.target)
			requireStatus(t, rr, tc.wantStatus)
		})
	}
}

func TestGetMovieVideos(t *testing.T) {
	catalog := &mocks.MockCatalog{
		GetMovieVideosFunc: func(ctx context.Context, id int) ([]domain.Video, error) {
			require.Equal(t, 438631, id)
			return []domain.Video{
				{ID: "v1", Key: "abc123", Name: "Official Trailer", Site: "YouTube", Type: "Trailer", Official: true},
			}, nil
		},
	}

	app := newTestApplication(catalog, failIfRecorded(t))

	rr := executeRequest(app, http.MethodGet, "/movies/438631/videos")
	requireStatus(t, rr, http.StatusOK)

	got := decodeResponse[VideoListResponse](t, rr)

	want := VideoListResponse{
		Videos: []VideoResponse{
			{Id: "v1", Key: "abc123", Name: "Official Trailer", Site: "YouTube", Type: "Trailer", Official: true},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestGetMovieVideosNotFound(t *testing.T) {
	catalog := &mocks.MockCatalog{
		GetMovieVideosFunc: func(ctx context.Context, id int) ([]domain.Video, error) {
			return nil, domain.ErrRecordNotFound
		},
	}

	app := newTestApplication(catalog, failIfRecorded(t))

	rr := executeRequest(app, http.MethodGet, "/movies/999/videos")
	requireStatus(t, rr, http.StatusNotFound)
}
