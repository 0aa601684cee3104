package userstate

import (
	"context"
	"fmt"
	"sync"

	"github.com/cinelabs/cinescope/internal/domain"
	"github.com/rs/zerolog"
)

// ProfileSource loads and saves profiles through the external
// collaborator.
type ProfileSource interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	SaveProfile(ctx context.Context, user domain.User) error
}

// Manager hands out one Store per user id, loading the profile from
// the source on first touch. Profiles are fetched once per session;
// there is no background refresh.
type Manager struct {
	source ProfileSource
	logger zerolog.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager(source ProfileSource, logger zerolog.Logger) *Manager {
	return &Manager{
		source: source,
		logger: logger.With().Str("component", "userstate").Logger(),
		stores: make(map[string]*Store),
	}
}

// Store returns the store for userID, loading the profile on first
// use. Returns domain.ErrUserNotFound when no profile exists.
func (m *Manager) Store(ctx context.Context, userID string) (*Store, error) {
	m.mu.Lock()
	if st, ok := m.stores[userID]; ok {
		m.mu.Unlock()
		return st, nil
	}
	m.mu.Unlock()

	// Load outside the lock: profile fetches can block on the
	// external collaborator.
	user, err := m.source.Profile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", userID, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.stores[userID]; ok {
		// Another caller won the load race.
		return st, nil
	}
	m.logger.Debug().Str("user_id", userID).Msg("profile loaded")
	st := NewStore(m.source, user)
	m.stores[userID] = st
	return st, nil
}
