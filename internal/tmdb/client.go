package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/BeshketStudent/movie-search/internal/domain"
)

const DefaultBaseURL = "https://api.themoviedb.org/3"

// Client is a thin wrapper around the TMDB HTTP API. It performs a single
// best-effort request per call: no retries, no backoff, no caching.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

type Option func(*Client)

// WithBaseURL overrides the API base URL. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a catalog client authenticating with the given bearer token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) SearchMovies(ctx context.Context, term string, page int) (*domain.MoviePage, error) {
	query := url.Values{}
	query.Set("query", term)
	query.Set("page", strconv.Itoa(page))
	query.Set("include_adult", "false")

	var resp moviePageResponse
	if err := c.get(ctx, "/search/movie", query, &resp); err != nil {
		return nil, err
	}

	return resp.toDomain(), nil
}

func (c *Client) DiscoverMovies(ctx context.Context, page int) (*domain.MoviePage, error) {
	query := url.Values{}
	query.Set("sort_by", "popularity.desc")
	query.Set("page", strconv.Itoa(page))

	var resp moviePageResponse
	if err := c.get(ctx, "/discover/movie", query, &resp); err != nil {
		return nil, err
	}

	return resp.toDomain(), nil
}

func (c *Client) GetMovie(ctx context.Context, id int) (*domain.Movie, error) {
	var resp movieDetailsResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), nil, &resp); err != nil {
		return nil, err
	}

	return resp.toDomain(), nil
}

func (c *Client) GetMovieVideos(ctx context.Context, id int) ([]domain.Video, error) {
	var resp videosResponse
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/videos", id), nil, &resp); err != nil {
		return nil, err
	}

	videos := make([]domain.Video, len(resp.Results))
	for i, v := range resp.Results {
		videos[i] = domain.Video{
			ID:       v.ID,
			Key:      v.Key,
			Name:     v.Name,
			Site:     v.Site,
			Type:     v.Type,
			Official: v.Official,
		}
	}

	return videos, nil
}

// get issues an authenticated GET and normalizes every failure mode into the
// client's error taxonomy: network errors are wrapped, a 404 maps to
// domain.ErrRecordNotFound, other non-2xx statuses become a TransportError,
// and a 2xx body carrying the success:false sentinel becomes a LogicalFailure.
func (c *Client) get(ctx context.Context, path string, query url.Values, dst failureSentinel) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrRecordNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &TransportError{Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("catalog response: %w", err)
	}

	if msg, failed := dst.failure(); failed {
		return &LogicalFailure{Message: msg}
	}

	return nil
}

// TransportError is a non-2xx response from the catalog API.
type TransportError struct {
	Status int
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("catalog request failed with status %d", e.Status)
}

// LogicalFailure is a 2xx response whose body carries the success:false
// sentinel the catalog API uses for logical errors.
type LogicalFailure struct {
	Message string
}

func (e *LogicalFailure) Error() string {
	if e.Message == "" {
		return "catalog reported an unsuccessful response"
	}

	return "catalog reported an unsuccessful response: " + e.Message
}

// IsFailure reports whether err belongs to the client's failure taxonomy,
// as opposed to a context cancellation or a caller bug.
func IsFailure(err error) bool {
	var transportErr *TransportError
	var logicalErr *LogicalFailure

	return errors.As(err, &transportErr) || errors.As(err, &logicalErr) || errors.Is(err, domain.ErrRecordNotFound)
}
