package app

import "net/http"

const (
	DefaultTrendingLimit = 5
	MaxTrendingLimit     = 20
)

type GetTrendingParams struct {
	Limit int `validate:"min=1,max=20"`
}

// GetTrendingSearches serves the top-N most issued search terms, ordered by
// count descending.
func (app *application) GetTrendingSearches(w http.ResponseWriter, r *http.Request) {
	limit, err := app.readInt(r.URL.Query(), "limit", DefaultTrendingLimit)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	params := GetTrendingParams{Limit: limit}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	records, err := app.trendingStore.TopSearches(r.Context(), params.Limit)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := TrendingListResponse{Searches: make([]TrendingSearchResponse, len(records))}
	for i, record := range records {
		resp.Searches[i] = TrendingSearchResponse{
			Term:       record.Term,
			Count:      record.Count,
			MovieId:    record.MovieID,
			PosterPath: record.PosterPath,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
