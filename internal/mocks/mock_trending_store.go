package mocks

import (
	"context"

	"github.com/BeshketStudent/movie-search/internal/domain"
)

type MockTrendingStore struct {
	domain.TrendingStore
	RecordFunc      func(ctx context.Context, term string, topResult domain.Movie) error
	TopSearchesFunc func(ctx context.Context, n int) ([]domain.TrendingRecord, error)
}

func (m *MockTrendingStore) Record(ctx context.Context, term string, topResult domain.Movie) error {
	return m.RecordFunc(ctx, term, topResult)
}

func (m *MockTrendingStore) TopSearches(ctx context.Context, n int) ([]domain.TrendingRecord, error) {
	return m.TopSearchesFunc(ctx, n)
}
