package domain

import "context"

type Movie struct {
	ID               int
	Title            string
	Overview         string
	PosterPath       string
	VoteAverage      float64
	ReleaseDate      string
	OriginalLanguage string
	Genres           []string
	Runtime          int
	Popularity       float64
}

// MoviePage is one page of catalog results. TotalPages comes from the
// upstream response and drives the has-more computation on the client side.
type MoviePage struct {
	Page         int
	Results      []Movie
	TotalPages   int
	TotalResults int
}

// HasMore reports whether pages beyond this one exist upstream.
func (p MoviePage) HasMore() bool {
	return p.Page < p.TotalPages
}

type Video struct {
	ID       string
	Key      string
	Name     string
	Site     string
	Type     string
	Official bool
}

type Catalog interface {
	SearchMovies(ctx context.Context, term string, page int) (*MoviePage, error)
	DiscoverMovies(ctx context.Context, page int) (*MoviePage, error)
	GetMovie(ctx context.Context, id int) (*Movie, error)
	GetMovieVideos(ctx context.Context, id int) ([]Video, error)
}
