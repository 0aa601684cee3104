package router

import (
	"net/http"
	"time"

	"github.com/cinelabs/cinescope/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func Setup(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Catalog
	r.Route("/movies", func(r chi.Router) {
		r.Get("/", h.GetMovies)
		r.Get("/trending", h.GetTrending)
		r.Get("/top-rated", h.GetTopRated)
		r.Get("/{movieID}", h.GetMovieByID)
		r.Get("/{movieID}/recommendations", h.GetRecommendations)
	})
	r.Get("/genres", h.GetGenres)

	// Profiles
	r.Route("/users/{userID}", func(r chi.Router) {
		r.Get("/profile", h.GetProfile)
		r.Post("/favorites/{movieID}", h.ToggleFavorite)
		r.Post("/watchlist/{movieID}", h.ToggleWatchlist)
		r.Put("/ratings/{movieID}", h.RateMovie)
		r.Put("/preferences", h.UpdatePreferences)
	})

	r.Get("/health", healthCheck)

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"up"}`))
}
