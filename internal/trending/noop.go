package trending

import (
	"context"

	"github.com/BeshketStudent/movie-search/internal/domain"
)

// NoopStore satisfies domain.TrendingStore without persisting anything.
// Used when no redis instance is configured: search keeps working, the
// popularity ranking is simply not kept.
type NoopStore struct{}

func (NoopStore) Record(ctx context.Context, term string, topResult domain.Movie) error {
	return nil
}

func (NoopStore) TopSearches(ctx context.Context, n int) ([]domain.TrendingRecord, error) {
	return nil, nil
}
