package domain

import "context"

// TrendingRecord tracks how often a search term has been issued. The movie
// identifier and poster are captured from the top result when the record is
// created and are never updated by later increments.
type TrendingRecord struct {
	Term       string
	Count      int
	MovieID    int
	PosterPath string
}

type TrendingStore interface {
	// Record increments the counter for term, creating the record with
	// count 1 and the given top result if the term has never been seen.
	Record(ctx context.Context, term string, topResult Movie) error

	// TopSearches returns up to n records ordered by count descending.
	TopSearches(ctx context.Context, n int) ([]TrendingRecord, error)
}
