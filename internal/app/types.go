package app

import (
	"time"

	"github.com/BeshketStudent/movie-search/internal/domain"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type MovieResponse struct {
	Id               int      `json:"id"`
	Title            string   `json:"title"`
	Overview         string   `json:"overview"`
	PosterPath       string   `json:"posterPath"`
	VoteAverage      float64  `json:"voteAverage"`
	ReleaseDate      string   `json:"releaseDate"`
	OriginalLanguage string   `json:"originalLanguage"`
	Genres           []string `json:"genres,omitempty"`
	Runtime          int      `json:"runtime,omitempty"`
}

type MovieListResponse struct {
	Page         int             `json:"page"`
	Movies       []MovieResponse `json:"movies"`
	TotalPages   int             `json:"totalPages"`
	TotalResults int             `json:"totalResults"`
	HasMore      bool            `json:"hasMore"`
}

type SuggestionsResponse struct {
	Suggestions []MovieResponse `json:"suggestions"`
}

type VideoResponse struct {
	Id       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

type VideoListResponse struct {
	Videos []VideoResponse `json:"videos"`
}

type TrendingSearchResponse struct {
	Term       string `json:"term"`
	Count      int    `json:"count"`
	MovieId    int    `json:"movieId"`
	PosterPath string `json:"posterPath"`
}

type TrendingListResponse struct {
	Searches []TrendingSearchResponse `json:"searches"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

func toMovieResponse(movie domain.Movie) MovieResponse {
	return MovieResponse{
		Id:               movie.ID,
		Title:            movie.Title,
		Overview:         movie.Overview,
		PosterPath:       movie.PosterPath,
		VoteAverage:      movie.VoteAverage,
		ReleaseDate:      movie.ReleaseDate,
		OriginalLanguage: movie.OriginalLanguage,
		Genres:           movie.Genres,
		Runtime:          movie.Runtime,
	}
}

func toMovieResponses(movies []domain.Movie) []MovieResponse {
	responses := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		responses[i] = toMovieResponse(movie)
	}

	return responses
}
