// Package configstore is the typed façade over the persistent kv store.
//
// It owns the serialized form of the four persisted records (mapping table,
// history log, settings, button position) and is the only writer of their keys.
// Missing or unparsable values always read back as the record's default.
package configstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/extlink/internal/kv"
	"github.com/MrSnakeDoc/extlink/internal/logger"
)

// Fixed kv keys, one per record kind.
const (
	KeyMappings       = "openlist_domain_mappings"
	KeyHistory        = "openlist_link_history"
	KeySettings       = "openlist_settings"
	KeyButtonPosition = "openlist_button_position"
)

// Store reads and writes the persisted records.
//
// There is no cache: every call goes to the kv backend. Each record kind has
// its own mutex so a read-modify-write cycle is never interleaved with another
// writer of the same key inside this process.
type Store struct {
	kv    kv.Store
	log   logger.Logger
	newID func() string

	mappingsMu sync.Mutex
	historyMu  sync.Mutex
	settingsMu sync.Mutex
	positionMu sync.Mutex
}

// Option customizes a Store.
type Option func(*Store)

// WithIDGenerator overrides the id source (UUID v4 by default).
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New creates a Store over backend.
func New(backend kv.Store, log logger.Logger, opts ...Option) *Store {
	s := &Store{
		kv:    backend,
		log:   log,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewID returns a fresh record id.
func (s *Store) NewID() string {
	return s.newID()
}

// readJSON decodes key into out. It reports false, without error, when the
// stored value does not parse; out is then left in an unspecified state.
func (s *Store) readJSON(ctx context.Context, key, def string, out any) (bool, error) {
	raw, err := s.kv.Get(ctx, key, def)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.log.Debug("discarding unparsable record, using default",
			logger.String("key", key),
			logger.Error(err))
		return false, nil
	}
	return true, nil
}

func (s *Store) writeJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
