// Package settings validates and persists the user-adjustable settings.
package settings

import (
	"context"

	"github.com/MrSnakeDoc/extlink/internal/domain"
	"github.com/MrSnakeDoc/extlink/internal/logger"
)

// Store is the slice of ConfigStore the manager needs.
type Store interface {
	GetSettings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, settings domain.Settings) error
}

// Manager guards the only write path for settings.
type Manager struct {
	store Store
	log   logger.Logger
}

// New creates a settings manager.
func New(store Store, log logger.Logger) *Manager {
	return &Manager{store: store, log: log}
}

// Get returns the current settings.
func (m *Manager) Get(ctx context.Context) (domain.Settings, error) {
	return m.store.GetSettings(ctx)
}

// Set validates maxHistory and persists it. maxHistory may be any integer
// kind, a whole float, a json.Number, or a numeric string; anything else,
// or a value outside [domain.MinHistory, domain.MaxHistory], is rejected
// with an error wrapping domain.ErrValidation and nothing is written.
//
// The history log is not truncated here even if the new capacity is smaller.
func (m *Manager) Set(ctx context.Context, maxHistory any) (domain.Settings, error) {
	n, err := domain.ParseMaxHistory(maxHistory)
	if err != nil {
		return domain.Settings{}, err
	}

	next := domain.Settings{MaxHistory: n}
	if err := next.Validate(); err != nil {
		return domain.Settings{}, err
	}
	if err := m.store.SaveSettings(ctx, next); err != nil {
		return domain.Settings{}, err
	}

	m.log.Info("settings updated", logger.Int("max_history", next.MaxHistory))
	return next, nil
}
