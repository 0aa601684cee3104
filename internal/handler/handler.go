package handler

import (
	"net/http"

	"github.com/cinelabs/cinescope/internal/service"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
)

type Handler struct {
	service   *service.Service
	validator *validator.Validate

	// maxStarRating bounds the rating surface (half-star steps from 0
	// up to this value). The store itself does not validate.
	maxStarRating float64
}

func NewHandler(svc *service.Service, maxStarRating float64) *Handler {
	if maxStarRating <= 0 {
		maxStarRating = 5
	}
	return &Handler{
		service:       svc,
		validator:     validator.New(),
		maxStarRating: maxStarRating,
	}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}
