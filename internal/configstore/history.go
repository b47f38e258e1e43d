package configstore

import (
	"context"

	"github.com/MrSnakeDoc/extlink/internal/domain"
)

// GetHistory returns the history log, most recent first, or an empty log
// when nothing valid is stored.
func (s *Store) GetHistory(ctx context.Context) ([]domain.HistoryEntry, error) {
	var entries []domain.HistoryEntry
	ok, err := s.readJSON(ctx, KeyHistory, "[]", &entries)
	if err != nil {
		return nil, err
	}
	if !ok || entries == nil {
		return []domain.HistoryEntry{}, nil
	}
	return entries, nil
}

// SaveHistory overwrites the whole log.
func (s *Store) SaveHistory(ctx context.Context, entries []domain.HistoryEntry) error {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	return s.saveHistory(ctx, entries)
}

func (s *Store) saveHistory(ctx context.Context, entries []domain.HistoryEntry) error {
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	return s.writeJSON(ctx, KeyHistory, entries)
}

// ModifyHistory runs fn over the current log under the history lock and
// persists its result when fn reports a change.
func (s *Store) ModifyHistory(ctx context.Context, fn func([]domain.HistoryEntry) ([]domain.HistoryEntry, bool)) error {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	entries, err := s.GetHistory(ctx)
	if err != nil {
		return err
	}
	next, changed := fn(entries)
	if !changed {
		return nil
	}
	return s.saveHistory(ctx, next)
}

// RemoveHistoryEntry deletes one entry by id. Unknown ids are ignored.
func (s *Store) RemoveHistoryEntry(ctx context.Context, id string) error {
	return s.ModifyHistory(ctx, func(entries []domain.HistoryEntry) ([]domain.HistoryEntry, bool) {
		kept := make([]domain.HistoryEntry, 0, len(entries))
		for _, e := range entries {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		return kept, len(kept) != len(entries)
	})
}

// ClearHistory empties the log unconditionally.
func (s *Store) ClearHistory(ctx context.Context) error {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	return s.saveHistory(ctx, nil)
}
