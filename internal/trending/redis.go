package trending

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/BeshketStudent/movie-search/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	termKeyPrefix = "trending:term:"
	rankKey       = "trending:rank"
)

var ErrEmptyTerm = errors.New("trending: empty search term")

// RedisTrendingStore keeps one hash per search term plus a sorted set ranking
// terms by count. Increments are read-then-write: two sessions recording the
// same term at once can lose an update, which is acceptable for an
// approximate popularity ranking.
type RedisTrendingStore struct {
	client redis.UniversalClient
}

func NewRedisTrendingStore(client redis.UniversalClient) *RedisTrendingStore {
	return &RedisTrendingStore{client: client}
}

func (s *RedisTrendingStore) Record(ctx context.Context, term string, topResult domain.Movie) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return ErrEmptyTerm
	}

	key := termKey(term)

	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("trending: read %q: %w", term, err)
	}

	count := 1
	if len(fields) == 0 {
		// First sighting: capture the top result. It is never updated
		// by later increments.
		err = s.client.HSet(ctx, key,
			"term", term,
			"count", count,
			"movie_id", topResult.ID,
			"poster_path", topResult.PosterPath,
		).Err()
	} else {
		prev, _ := strconv.Atoi(fields["count"])
		count = prev + 1
		err = s.client.HSet(ctx, key, "count", count).Err()
	}
	if err != nil {
		return fmt.Errorf("trending: write %q: %w", term, err)
	}

	err = s.client.ZAdd(ctx, rankKey, redis.Z{Score: float64(count), Member: normalize(term)}).Err()
	if err != nil {
		return fmt.Errorf("trending: rank %q: %w", term, err)
	}

	return nil
}

func (s *RedisTrendingStore) TopSearches(ctx context.Context, n int) ([]domain.TrendingRecord, error) {
	if n <= 0 {
		return nil, nil
	}

	members, err := s.client.ZRevRange(ctx, rankKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("trending: rank read: %w", err)
	}

	records := make([]domain.TrendingRecord, 0, len(members))
	for _, member := range members {
		fields, err := s.client.HGetAll(ctx, termKeyPrefix+member).Result()
		if err != nil {
			return nil, fmt.Errorf("trending: read %q: %w", member, err)
		}
		if len(fields) == 0 {
			// Ranked term whose record vanished; skip it.
			continue
		}

		records = append(records, recordFromFields(fields))
	}

	return records, nil
}

func recordFromFields(fields map[string]string) domain.TrendingRecord {
	count, _ := strconv.Atoi(fields["count"])
	movieID, _ := strconv.Atoi(fields["movie_id"])

	return domain.TrendingRecord{
		Term:       fields["term"],
		Count:      count,
		MovieID:    movieID,
		PosterPath: fields["poster_path"],
	}
}

func termKey(term string) string {
	return termKeyPrefix + normalize(term)
}

func normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
