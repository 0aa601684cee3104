package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cinelabs/cinescope/internal/domain"
	"github.com/go-chi/chi/v5"
)

// GET /movies?genre=&year=&rating=&sort=&search=
func (h *Handler) GetMovies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// A search query takes over the whole request; filter params are
	// ignored, matching the single-box search of the discovery page.
	if q.Has("search") {
		movies, err := h.service.Search(r.Context(), q.Get("search"))
		if err != nil {
			writeError(w, http.StatusBadGateway, "catalog_unavailable",
				"Catalog source failed, previous results are unchanged")
			return
		}
		writeJSON(w, http.StatusOK, MovieListResponse{Movies: movies, TotalCount: len(movies)})
		return
	}

	var f domain.MovieFilter
	if s := q.Get("genre"); s != "" {
		parsed, err := strconv.ParseInt(s, 10, 64)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid genre parameter")
			return
		}
		f.Genre = parsed
	}
	if s := q.Get("year"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 1888 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid year parameter")
			return
		}
		f.Year = parsed
	}
	if s := q.Get("rating"); s != "" {
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil || parsed < 0 || parsed > 10 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid rating parameter")
			return
		}
		f.Rating = parsed
	}
	if s := q.Get("sort"); s != "" {
		key := domain.SortKey(s)
		if !domain.ValidSortKey(key) {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid sort parameter")
			return
		}
		f.Sort = key
	}

	movies := h.service.Discover(r.Context(), f)
	writeJSON(w, http.StatusOK, MovieListResponse{Movies: movies, TotalCount: len(movies)})
}

// GET /movies/trending
func (h *Handler) GetTrending(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.Trending(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}
	writeJSON(w, http.StatusOK, MovieListResponse{Movies: movies, TotalCount: len(movies)})
}

// GET /movies/top-rated
func (h *Handler) GetTopRated(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.TopRated(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}
	writeJSON(w, http.StatusOK, MovieListResponse{Movies: movies, TotalCount: len(movies)})
}

// GET /movies/{movieID}
func (h *Handler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	movieID, ok := parseMovieID(w, r)
	if !ok {
		return
	}

	movie, err := h.service.MovieByID(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			writeError(w, http.StatusNotFound, "movie_not_found", "Movie not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

// GET /movies/{movieID}/recommendations
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	movieID, ok := parseMovieID(w, r)
	if !ok {
		return
	}

	recs, err := h.service.Recommendations(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			writeError(w, http.StatusNotFound, "movie_not_found", "Movie not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return
	}

	writeJSON(w, http.StatusOK, RecommendationResponse{
		MovieID:         movieID,
		Recommendations: recs,
	})
}

// GET /genres
func (h *Handler) GetGenres(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Genres(r.Context()))
}

func parseMovieID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	movieIDStr := chi.URLParam(r, "movieID")
	movieID, err := strconv.ParseInt(movieIDStr, 10, 64)
	if err != nil || movieID <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid movie id parameter")
		return 0, false
	}
	return movieID, true
}
