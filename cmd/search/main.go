package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/BeshketStudent/movie-search/internal/domain"
	"github.com/BeshketStudent/movie-search/internal/tmdb"
	"github.com/BeshketStudent/movie-search/internal/trending"
	"github.com/BeshketStudent/movie-search/internal/tui"
)

func main() {
	_ = godotenv.Load()

	token := flag.String("tmdb-token", os.Getenv("TMDB_API_TOKEN"), "TMDB API bearer token")
	baseURL := flag.String("tmdb-base-url", tmdb.DefaultBaseURL, "TMDB API base URL")
	redisURL := flag.String("redis-url", os.Getenv("REDIS_URL"), "Redis URL (empty disables trending)")
	flag.Parse()

	if *token == "" {
		fmt.Fprintln(os.Stderr, "missing TMDB API token (set TMDB_API_TOKEN or -tmdb-token)")
		os.Exit(1)
	}

	// The terminal owns stdout; keep logs out of the UI.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	catalog := tmdb.NewClient(*token, tmdb.WithBaseURL(*baseURL))

	var store domain.TrendingStore = trending.NoopStore{}
	if *redisURL != "" {
		store = trending.NewRedisTrendingStore(redis.NewClient(&redis.Options{Addr: *redisURL}))
	}

	model := tui.NewModel(catalog, store, logger)

	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
