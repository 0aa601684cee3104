// Package session owns the catalog snapshot for one application
// session. The snapshot is seeded once from the catalog source at
// construction and only replaced by an explicit reload; a failed
// reload leaves the previous snapshot untouched.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/cinelabs/cinescope/internal/catalog"
	"github.com/cinelabs/cinescope/internal/domain"
	"github.com/rs/zerolog"
)

// CatalogSource is the data-loading collaborator.
type CatalogSource interface {
	Movies(ctx context.Context) ([]domain.Movie, error)
	Genres(ctx context.Context) ([]domain.Genre, error)
	MovieByID(ctx context.Context, id int64) (*domain.Movie, error)
}

// Session holds the in-memory movie and genre snapshot and answers
// filter/search requests against it.
type Session struct {
	source CatalogSource
	logger zerolog.Logger

	mu     sync.RWMutex
	movies []domain.Movie
	genres []domain.Genre
}

// New loads the full catalog and genre set. Construction fails when
// either load fails; the session is unusable without a snapshot.
func New(ctx context.Context, source CatalogSource, logger zerolog.Logger) (*Session, error) {
	s := &Session{
		source: source,
		logger: logger.With().Str("component", "session").Logger(),
	}

	movies, err := source.Movies(ctx)
	if err != nil {
		return nil, fmt.Errorf("load movies: %w", err)
	}
	genres, err := source.Genres(ctx)
	if err != nil {
		return nil, fmt.Errorf("load genres: %w", err)
	}

	s.movies = movies
	s.genres = genres
	s.logger.Info().Int("movies", len(movies)).Int("genres", len(genres)).Msg("catalog loaded")
	return s, nil
}

// Movies returns a copy of the current snapshot in load order.
func (s *Session) Movies() []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Movie(nil), s.movies...)
}

// Genres returns a copy of the genre set.
func (s *Session) Genres() []domain.Genre {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Genre(nil), s.genres...)
}

// Filter applies f to the snapshot.
func (s *Session) Filter(f domain.MovieFilter) []domain.Movie {
	return catalog.Apply(s.Movies(), f)
}

// Search matches query against the snapshot. An empty or
// whitespace-only query resets to the full dataset re-fetched from
// the source of truth, not the current snapshot.
func (s *Session) Search(ctx context.Context, query string) ([]domain.Movie, error) {
	if strings.TrimSpace(query) == "" {
		return s.Reload(ctx)
	}
	return catalog.Search(s.Movies(), query), nil
}

// Reload re-fetches the movie set. On failure the previous snapshot
// stays in place and the error propagates to the caller.
func (s *Session) Reload(ctx context.Context) ([]domain.Movie, error) {
	movies, err := s.source.Movies(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("catalog reload failed, keeping previous snapshot")
		return nil, fmt.Errorf("reload movies: %w", err)
	}

	s.mu.Lock()
	s.movies = movies
	s.mu.Unlock()
	return append([]domain.Movie(nil), movies...), nil
}

// MovieByID resolves one movie through the source. Absence surfaces
// as domain.ErrMovieNotFound, not a generic failure.
func (s *Session) MovieByID(ctx context.Context, id int64) (*domain.Movie, error) {
	return s.source.MovieByID(ctx, id)
}
