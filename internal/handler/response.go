package handler

import "github.com/cinelabs/cinescope/internal/domain"

type MovieListResponse struct {
	Movies     []domain.Movie `json:"movies"`
	TotalCount int            `json:"total_count"`
}

type RecommendationResponse struct {
	MovieID         int64          `json:"movie_id"`
	Recommendations []domain.Movie `json:"recommendations"`
}

type ProfileResponse struct {
	User domain.User `json:"user"`
}

type RateRequest struct {
	Rating float64 `json:"rating" validate:"gte=0"`
}

type PreferencesRequest struct {
	Genres []int64 `json:"genres" validate:"required,dive,gt=0"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
