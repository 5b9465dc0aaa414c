package mocks

import (
	"context"

	"github.com/BeshketStudent/movie-search/internal/domain"
)

type MockCatalog struct {
	domain.Catalog
	SearchMoviesFunc   func(ctx context.Context, term string, page int) (*domain.MoviePage, error)
	DiscoverMoviesFunc func(ctx context.Context, page int) (*domain.MoviePage, error)
	GetMovieFunc       func(ctx context.Context, id int) (*domain.Movie, error)
	GetMovieVideosFunc func(ctx context.Context, id int) ([]domain.Video, error)
}

func (m *MockCatalog) SearchMovies(ctx context.Context, term string, page int) (*domain.MoviePage, error) {
	return m.SearchMoviesFunc(ctx, term, page)
}

func (m *MockCatalog) DiscoverMovies(ctx context.Context, page int) (*domain.MoviePage, error) {
	return m.DiscoverMoviesFunc(ctx, page)
}

func (m *MockCatalog) GetMovie(ctx context.Context, id int) (*domain.Movie, error) {
	return m.GetMovieFunc(ctx, id)
}

func (m *MockCatalog) GetMovieVideos(ctx context.Context, id int) ([]domain.Video, error) {
	return m.GetMovieVideosFunc(ctx, id)
}
