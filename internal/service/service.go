// Package service orchestrates the catalog session, the derived-view
// cache and the per-user state stores.
package service

import (
	"context"
	"fmt"

	"github.com/cinelabs/cinescope/internal/cache"
	"github.com/cinelabs/cinescope/internal/domain"
	"github.com/cinelabs/cinescope/internal/recommend"
	"github.com/cinelabs/cinescope/internal/session"
	"github.com/cinelabs/cinescope/internal/userstate"
	"github.com/rs/zerolog"
)

const (
	defaultViewSize        = 10
	defaultRecommendations = 5
	maxViewSize            = 50
)

type Service struct {
	session  *session.Session
	users    *userstate.Manager
	cache    *cache.Cache
	strategy recommend.Strategy
	logger   zerolog.Logger

	viewSize int
	recSize  int
}

type Options struct {
	// TrendingSize bounds the trending and top-rated views. Defaults
	// to 10, capped at 50.
	TrendingSize int
	// RecommendationSize is the number of picks per recommendation
	// request. Defaults to 5.
	RecommendationSize int
}

func New(sess *session.Session, users *userstate.Manager, c *cache.Cache,
	strategy recommend.Strategy, logger zerolog.Logger, opts Options) *Service {

	viewSize := opts.TrendingSize
	if viewSize <= 0 {
		viewSize = defaultViewSize
	} else if viewSize > maxViewSize {
		viewSize = maxViewSize
	}
	recSize := opts.RecommendationSize
	if recSize <= 0 {
		recSize = defaultRecommendations
	}

	return &Service{
		session:  sess,
		users:    users,
		cache:    c,
		strategy: strategy,
		logger:   logger.With().Str("component", "service").Logger(),
		viewSize: viewSize,
		recSize:  recSize,
	}
}

// Discover applies a filter specification to the catalog snapshot.
func (s *Service) Discover(ctx context.Context, f domain.MovieFilter) []domain.Movie {
	return s.session.Filter(f)
}

// Search runs a free-text search; an empty query resets to the full
// re-fetched dataset.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Movie, error) {
	return s.session.Search(ctx, query)
}

// Genres returns the genre set loaded for this session.
func (s *Service) Genres(ctx context.Context) []domain.Genre {
	return s.session.Genres()
}

// MovieByID resolves one movie through the catalog source.
func (s *Service) MovieByID(ctx context.Context, id int64) (*domain.Movie, error) {
	return s.session.MovieByID(ctx, id)
}

// Trending returns the top movies by descending popularity,
// cache-first.
func (s *Service) Trending(ctx context.Context) ([]domain.Movie, error) {
	return s.cachedView(ctx, cache.TrendingKey(s.viewSize), domain.SortPopularity)
}

// TopRated returns the top movies by descending vote average,
// cache-first.
func (s *Service) TopRated(ctx context.Context) ([]domain.Movie, error) {
	return s.cachedView(ctx, cache.TopRatedKey(s.viewSize), domain.SortRating)
}

func (s *Service) cachedView(ctx context.Context, key string, sort domain.SortKey) ([]domain.Movie, error) {
	cached, found, err := s.cache.GetView(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("view cache get failed")
	}
	if found {
		return cached, nil
	}

	view := s.session.Filter(domain.MovieFilter{Sort: sort})
	if len(view) > s.viewSize {
		view = view[:s.viewSize]
	}

	if err := s.cache.SetView(ctx, key, view); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("view cache set failed")
	}
	return view, nil
}

// Recommendations picks movies related to movieID through the
// configured strategy. The movie must exist; absence surfaces as
// domain.ErrMovieNotFound.
func (s *Service) Recommendations(ctx context.Context, movieID int64) ([]domain.Movie, error) {
	if _, err := s.session.MovieByID(ctx, movieID); err != nil {
		return nil, err
	}

	key := cache.RecommendationsKey(movieID, s.recSize)
	cached, found, err := s.cache.GetView(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("view cache get failed")
	}
	if found {
		return cached, nil
	}

	recs := s.strategy.Pick(s.session.Movies(), movieID, s.recSize)
	if err := s.cache.SetView(ctx, key, recs); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("view cache set failed")
	}
	return recs, nil
}

// Reload re-fetches the catalog and drops every cached view.
func (s *Service) Reload(ctx context.Context) ([]domain.Movie, error) {
	movies, err := s.session.Reload(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.ClearViews(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("view cache invalidation failed")
	}
	return movies, nil
}

// Profile returns the committed profile for userID.
func (s *Service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	st, err := s.users.Store(ctx, userID)
	if err != nil {
		return nil, err
	}
	user := st.Profile()
	if user == nil {
		return nil, domain.ErrProfileNotLoaded
	}
	return user, nil
}

// ToggleFavorite flips movieID in the user's favorites set and
// returns the committed profile.
func (s *Service) ToggleFavorite(ctx context.Context, userID string, movieID int64) (*domain.User, error) {
	st, err := s.users.Store(ctx, userID)
	if err != nil {
		return nil, err
	}
	user, err := st.ToggleFavorite(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("toggle favorite %d: %w", movieID, err)
	}
	return user, nil
}

// ToggleWatchlist flips movieID in the user's watchlist.
func (s *Service) ToggleWatchlist(ctx context.Context, userID string, movieID int64) (*domain.User, error) {
	st, err := s.users.Store(ctx, userID)
	if err != nil {
		return nil, err
	}
	user, err := st.ToggleWatchlist(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("toggle watchlist entry %d: %w", movieID, err)
	}
	return user, nil
}

// RateMovie upserts the user's rating for movieID.
func (s *Service) RateMovie(ctx context.Context, userID string, movieID int64, rating float64) (*domain.User, error) {
	st, err := s.users.Store(ctx, userID)
	if err != nil {
		return nil, err
	}
	user, err := st.RateMovie(ctx, movieID, rating)
	if err != nil {
		return nil, fmt.Errorf("rate movie %d: %w", movieID, err)
	}
	return user, nil
}

// UpdatePreferences replaces the user's preferred-genre list.
func (s *Service) UpdatePreferences(ctx context.Context, userID string, genreIDs []int64) (*domain.User, error) {
	st, err := s.users.Store(ctx, userID)
	if err != nil {
		return nil, err
	}
	user, err := st.UpdatePreferences(ctx, genreIDs)
	if err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}
	return user, nil
}
