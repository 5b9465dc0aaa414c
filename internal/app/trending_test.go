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

func TestGetTrendingSearches(t *testing.T) {
	var gotLimit int

	store := &mocks.MockTrendingStore{
		TopSearchesFunc: func(ctx context.Context, n int) ([]domain.TrendingRecord, error) {
			gotLimit = n
			return []domain.TrendingRecord{
				{Term: "dune", Count: 12, MovieID: 438631, PosterPath: "/dune.jpg"},
				{Term: "batman", Count: 7, MovieID: 414906, PosterPath: "/batman.jpg"},
			}, nil
		},
	}

	app := newTestApplication(&mocks.MockCatalog{}, store)

	rr := executeRequest(app, http.MethodGet, "/trending")
	requireStatus(t, rr, http.StatusOK)

	require.Equal(t, DefaultTrendingLimit, gotLimit)

	got := decodeResponse[TrendingListResponse](t, rr)

	want := TrendingListResponse{
		Searches: []TrendingSearchResponse{
			{Term: "dune", Count: 12, MovieId: 438631, PosterPath: "/dune.jpg"},
			{Term: "batman", Count: 7, MovieId: 414906, PosterPath: "/batman.jpg"},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestGetTrendingSearchesCustomLimit(t *testing.T) {
	var gotLimit int

	store := &mocks.MockTrendingStore{
		TopSearchesFunc: func(ctx context.Context, n int) ([]domain.TrendingRecord, error) {
			gotLimit = n
			return nil, nil
		},
	}

	app := newTestApplication(&mocks.MockCatalog{}, store)

	rr := executeRequest(app, http.MethodGet, "/trending?limit=3")
	requireStatus(t, rr, http.StatusOK)
	require.Equal(t, 3, gotLimit)
}

func TestGetTrendingSearchesValidation(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{
			name:       "limit zero",
			target:     "/trending?limit=0",
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "limit above maximum",
			target:     "/trending?limit=21",
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "limit not an integer",
			target:     "/trending?limit=abc",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &mocks.MockTrendingStore{
				TopSearchesFunc: func(ctx context.Context, n int) ([]domain.TrendingRecord, error) {
					t.Errorf("unexpected TopSearches(%d)", n)
					return nil, nil
				},
			}

			app := newTestApplication(&mocks.MockCatalog{}, store)

			rr := executeRequest(app, http.MethodGet, tc.target)
			requireStatus(t, rr, tc.wantStatus)
		})
	}
}

func TestGetTrendingSearchesStoreError(t *testing.T) {
	store := &mocks.MockTrendingStore{
		TopSearchesFunc: func(ctx context.Context, n int) ([]domain.TrendingRecord, error) {
			return nil, errors.New("redis down")
		},
	}

	app := newTestApplication(&mocks.MockCatalog{}, store)

	rr := executeRequest(app, http.MethodGet, "/trending")
	requireStatus(t, rr, http.StatusInternalServerError)
}
