// Package file implements kv.Store on top of a single YAML document.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/extlink/internal/logger"
)

// Store keeps every key in one YAML mapping on disk.
// Writes go to a temp file that is renamed over the original, so a crash
// never leaves a half-written document behind.
//
// A document that does not parse reads as empty, so every key yields its
// default. The next Set moves it aside to path+".corrupt" before writing.
type Store struct {
	mu   sync.Mutex
	path string
	log  logger.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger reports corrupt state files through log.
func WithLogger(log logger.Logger) Option {
	return func(s *Store) { s.log = log }
}

// New returns a store backed by path. The file is created on first Set.
func New(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("file store: empty path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	s := &Store{path: path, log: logger.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Get(_ context.Context, key, def string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, _, err := s.load()
	if err != nil {
		return "", err
	}
	if v, ok := data[key]; ok {
		return v, nil
	}
	return def, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, corrupt, err := s.load()
	if err != nil {
		return err
	}
	if corrupt {
		aside := s.path + ".corrupt"
		if err := os.Rename(s.path, aside); err != nil {
			return fmt.Errorf("failed to move corrupt state file aside: %w", err)
		}
		s.log.Warn("corrupt state file moved aside", logger.String("path", aside))
	}
	data[key] = value
	return s.write(data)
}

// load reads the document. Only I/O failures are errors; an unparsable
// document comes back empty with corrupt set.
func (s *Store) load() (data map[string]string, corrupt bool, err error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, false, nil
		}
		return nil, false, fmt.Errorf("failed to read state file: %w", err)
	}

	data = map[string]string{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		s.log.Warn("state file does not parse, using defaults",
			logger.String("path", s.path),
			logger.Error(err))
		return map[string]string{}, true, nil
	}
	return data, false, nil
}

func (s *Store) write(data map[string]string) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".extlink-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(out); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp state file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
