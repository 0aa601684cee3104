package handler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/cinelabs/cinescope/internal/domain"
	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// GET /users/{userID}/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	user, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		writeProfileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{User: *user})
}

// POST /users/{userID}/favorites/{movieID}
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.service.ToggleFavorite)
}

// POST /users/{userID}/watchlist/{movieID}
func (h *Handler) ToggleWatchlist(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.service.ToggleWatchlist)
}

// PUT /users/{userID}/ratings/{movieID}
func (h *Handler) RateMovie(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	movieID, ok := parseMovieID(w, r)
	if !ok {
		return
	}

	var req RateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(r.Context(), req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Validation failed: "+err.Error())
		return
	}
	// Star-rating surface: half-point steps from 0 to the configured
	// maximum.
	if req.Rating > h.maxStarRating || math.Mod(req.Rating*2, 1) != 0 {
		writeError(w, http.StatusBadRequest, "invalid_payload",
			fmt.Sprintf("Rating must be between 0 and %g in half-point steps", h.maxStarRating))
		return
	}

	user, err := h.service.RateMovie(r.Context(), userID, movieID, req.Rating)
	if err != nil {
		writeProfileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{User: *user})
}

// PUT /users/{userID}/preferences
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req PreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if err := h.validator.StructCtx(r.Context(), req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Validation failed: "+err.Error())
		return
	}

	user, err := h.service.UpdatePreferences(r.Context(), userID, req.Genres)
	if err != nil {
		writeProfileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{User: *user})
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, userID string, movieID int64) (*domain.User, error)) {

	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	movieID, ok := parseMovieID(w, r)
	if !ok {
		return
	}

	user, err := op(r.Context(), userID, movieID)
	if err != nil {
		writeProfileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{User: *user})
}

func writeProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", "User not found")
	case errors.Is(err, domain.ErrProfileNotLoaded):
		writeError(w, http.StatusConflict, "profile_not_loaded", "User profile is not loaded")
	default:
		// Persistence failure: the in-memory profile is unchanged and
		// the mutation was not applied.
		writeError(w, http.StatusBadGateway, "profile_save_failed",
			"Profile update was not applied")
	}
}

func parseUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := chi.URLParam(r, "userID")
	if _, err := uuid.Parse(userID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user id parameter")
		return "", false
	}
	return userID, true
}
