package domain

import "errors"

var (
	// ErrMovieNotFound is returned when a movie id is absent from the catalog.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrUserNotFound is returned when a user id has no stored profile.
	ErrUserNotFound = errors.New("user not found")

	// ErrProfileNotLoaded is returned by profile mutations attempted before
	// a profile has been loaded into the store.
	ErrProfileNotLoaded = errors.New("user profile not loaded")
)
