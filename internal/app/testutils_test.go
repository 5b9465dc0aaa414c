package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BeshketStudent/movie-search/internal/domain"
	appvalidator "github.com/BeshketStudent/movie-search/internal/validator"
)

func newTestApplication(catalog domain.Catalog, store domain.TrendingStore) *application {
	app := &application{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		validator:     appvalidator.NewValidator(),
		catalog:       catalog,
		trendingStore: store,
	}
	app.config.env = "test"

	return app
}

func executeRequest(app *application, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()

	app.routes().ServeHTTP(rr, req)

	return rr
}

func decodeResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	err := json.NewDecoder(rr.Body).Decode(&v)
	require.NoError(t, err)

	return v
}

func requireStatus(t *testing.T, rr *httptest.ResponseRecorder, want int) {
	t.Helper()

	require.Equal(t, want, rr.Code, "body: %s", rr.Body.String())
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}
