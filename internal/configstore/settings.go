package configstore

import (
	"context"

	"github.com/MrSnakeDoc/extlink/internal/domain"
	"github.com/MrSnakeDoc/extlink/internal/logger"
)

type storedSettings struct {
	MaxHistory *int `json:"maxHistory"`
}

// GetSettings returns the stored settings. A missing or unparsable record
// yields the defaults; an out-of-range maxHistory is clamped into range.
func (s *Store) GetSettings(ctx context.Context) (domain.Settings, error) {
	var stored storedSettings
	ok, err := s.readJSON(ctx, KeySettings, "{}", &stored)
	if err != nil {
		return domain.Settings{}, err
	}
	if !ok || stored.MaxHistory == nil {
		return domain.DefaultSettings(), nil
	}

	settings := domain.Settings{MaxHistory: *stored.MaxHistory}
	clamped := settings.Clamp()
	if clamped != settings {
		s.log.Warn("stored maxHistory out of range, clamping",
			logger.Int("stored", settings.MaxHistory),
			logger.Int("used", clamped.MaxHistory))
	}
	return clamped, nil
}

// SaveSettings validates and persists settings. Invalid values are rejected
// and the stored record is left untouched.
func (s *Store) SaveSettings(ctx context.Context, settings domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.settingsMu.Lock()
	defer s.settingsMu.Unlock()

	return s.writeJSON(ctx, KeySettings, settings)
}
