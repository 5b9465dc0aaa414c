package tmdb

import "github.com/BeshketStudent/movie-search/internal/domain"

// failureSentinel lets the shared request path detect the success:false
// sentinel regardless of the concrete response shape.
type failureSentinel interface {
	failure() (message string, failed bool)
}

type sentinelFields struct {
	Success       *bool  `json:"success,omitempty"`
	StatusMessage string `json:"status_message,omitempty"`
}

func (s sentinelFields) failure() (string, bool) {
	if s.Success != nil && !*s.Success {
		return s.StatusMessage, true
	}

	return "", false
}

type movieResult struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	VoteAverage      float64 `json:"vote_average"`
	ReleaseDate      string  `json:"release_date"`
	OriginalLanguage string  `json:"original_language"`
	Popularity       float64 `json:"popularity"`
}

func (m movieResult) toDomain() domain.Movie {
	return domain.Movie{
		ID:               m.ID,
		Title:            m.Title,
		Overview:         m.Overview,
		PosterPath:       m.PosterPath,
		VoteAverage:      m.VoteAverage,
		ReleaseDate:      m.ReleaseDate,
		OriginalLanguage: m.OriginalLanguage,
		Popularity:       m.Popularity,
	}
}

type moviePageResponse struct {
	sentinelFields
	Page         int           `json:"page"`
	Results      []movieResult `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

func (r moviePageResponse) toDomain() *domain.MoviePage {
	page := &domain.MoviePage{
		Page:         r.Page,
		Results:      make([]domain.Movie, len(r.Results)),
		TotalPages:   r.TotalPages,
		TotalResults: r.TotalResults,
	}

	for i, m := range r.Results {
		page.Results[i] = m.toDomain()
	}

	return page
}

type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type movieDetailsResponse struct {
	sentinelFields
	movieResult
	Genres  []genre `json:"genres"`
	Runtime int     `json:"runtime"`
}

func (r movieDetailsResponse) toDomain() *domain.Movie {
	movie := r.movieResult.toDomain()
	movie.Runtime = r.Runtime

	for _, g := range r.Genres {
		movie.Genres = append(movie.Genres, g.Name)
	}

	return &movie
}

type videoResult struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type videosResponse struct {
	sentinelFields
	ID      int           `json:"id"`
	Results []videoResult `json:"results"`
}
