// Package userstate holds the in-memory user profile and applies
// toggle/set mutations. Every mutation builds a candidate profile,
// persists it through the external collaborator, and commits the
// in-memory copy only on success. On persistence failure the prior
// profile stays committed and the error is surfaced; mutations are
// never retried automatically.
package userstate

import (
	"context"
	"fmt"
	"sync"

	"github.com/cinelabs/cinescope/internal/domain"
)

// Persister saves the full replacement profile.
type Persister interface {
	SaveProfile(ctx context.Context, user domain.User) error
}

// Store is the sole writer of one user's profile. Mutations are
// serialized by a single-writer lock, so overlapping calls cannot
// lose each other's committed updates.
type Store struct {
	persister Persister

	mu   sync.RWMutex
	user *domain.User
}

// NewStore returns a store over a loaded profile. user may be nil;
// mutations then fail with ErrProfileNotLoaded until Load is called.
func NewStore(p Persister, user *domain.User) *Store {
	return &Store{persister: p, user: user}
}

// Load replaces the committed profile, e.g. after a session re-fetch.
func (s *Store) Load(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
}

// Profile returns a copy of the committed profile, or nil when none
// is loaded.
func (s *Store) Profile() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := s.user.Clone()
	return &u
}

// ToggleFavorite removes movieID from the favorites set when present,
// otherwise adds it.
func (s *Store) ToggleFavorite(ctx context.Context, movieID int64) (*domain.User, error) {
	return s.mutate(ctx, func(u *domain.User) {
		u.Favorites = toggleID(u.Favorites, movieID)
	})
}

// ToggleWatchlist removes movieID from the watchlist when present,
// otherwise adds it. Independent of the favorites set.
func (s *Store) ToggleWatchlist(ctx context.Context, movieID int64) (*domain.User, error) {
	return s.mutate(ctx, func(u *domain.User) {
		u.Watchlist = toggleID(u.Watchlist, movieID)
	})
}

// RateMovie upserts the rating for movieID. Bounds are a concern of
// the surface producing the value, not of the store.
func (s *Store) RateMovie(ctx context.Context, movieID int64, rating float64) (*domain.User, error) {
	return s.mutate(ctx, func(u *domain.User) {
		u.Ratings[movieID] = rating
	})
}

// UpdatePreferences replaces the preferred-genre list wholesale.
func (s *Store) UpdatePreferences(ctx context.Context, genreIDs []int64) (*domain.User, error) {
	return s.mutate(ctx, func(u *domain.User) {
		u.Preferences.Genres = append([]int64(nil), genreIDs...)
	})
}

// IsInFavorites reports whether movieID is a favorite. False when no
// profile is loaded.
func (s *Store) IsInFavorites(movieID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && containsID(s.user.Favorites, movieID)
}

// IsInWatchlist reports whether movieID is on the watchlist. False
// when no profile is loaded.
func (s *Store) IsInWatchlist(movieID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && containsID(s.user.Watchlist, movieID)
}

// UserRating returns the stored rating for movieID, or 0 when unrated
// or no profile is loaded.
func (s *Store) UserRating(movieID int64) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return 0
	}
	return s.user.Ratings[movieID]
}

// mutate applies apply to a deep copy of the committed profile,
// persists the copy, and commits it on success.
func (s *Store) mutate(ctx context.Context, apply func(*domain.User)) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil, domain.ErrProfileNotLoaded
	}

	next := s.user.Clone()
	apply(&next)

	if err := s.persister.SaveProfile(ctx, next); err != nil {
		return nil, fmt.Errorf("save profile %s: %w", s.user.ID, err)
	}

	s.user = &next
	out := next.Clone()
	return &out, nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func toggleID(ids []int64, id int64) []int64 {
	if !containsID(ids, id) {
		return append(ids, id)
	}
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
