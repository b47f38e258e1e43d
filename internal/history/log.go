// Package history keeps the bounded, deduplicated log of produced external URLs.
package history

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/extlink/internal/domain"
	"github.com/MrSnakeDoc/extlink/internal/logger"
)

// Store is the slice of ConfigStore the log needs.
type Store interface {
	GetSettings(ctx context.Context) (domain.Settings, error)
	GetHistory(ctx context.Context) ([]domain.HistoryEntry, error)
	ModifyHistory(ctx context.Context, fn func([]domain.HistoryEntry) ([]domain.HistoryEntry, bool)) error
	RemoveHistoryEntry(ctx context.Context, id string) error
	ClearHistory(ctx context.Context) error
	NewID() string
}

// Observer is notified of each Record outcome. May be nil.
type Observer interface {
	ObserveRecord(inserted bool)
}

// Log records conversions most-recent-first.
//
// Capacity is read from settings on every Record. Lowering it does not shrink
// the stored log right away; the excess is dropped on the next insertion.
type Log struct {
	store    Store
	log      logger.Logger
	observer Observer
	now      func() time.Time
}

// New creates a history log.
func New(store Store, log logger.Logger, observer Observer) *Log {
	return &Log{
		store:    store,
		log:      log,
		observer: observer,
		now:      time.Now,
	}
}

// Record adds externalURL to the head of the log unless an entry with the
// same external URL already exists (first insertion wins, the existing entry
// is left untouched). The returned bool reports whether a new entry was made;
// when false the returned entry is the existing one.
func (l *Log) Record(ctx context.Context, externalURL, originalURL string) (domain.HistoryEntry, bool, error) {
	settings, err := l.store.GetSettings(ctx)
	if err != nil {
		return domain.HistoryEntry{}, false, err
	}

	var (
		result   domain.HistoryEntry
		inserted bool
	)
	err = l.store.ModifyHistory(ctx, func(entries []domain.HistoryEntry) ([]domain.HistoryEntry, bool) {
		for _, e := range entries {
			if e.ExternalURL == externalURL {
				result = e
				return entries, false
			}
		}

		result = domain.HistoryEntry{
			ID:          l.store.NewID(),
			ExternalURL: externalURL,
			OriginalURL: originalURL,
			CreatedAt:   l.now().UnixMilli(),
		}
		inserted = true
		return domain.PushHead(entries, result, settings.MaxHistory), true
	})
	if err != nil {
		return domain.HistoryEntry{}, false, err
	}

	if l.observer != nil {
		l.observer.ObserveRecord(inserted)
	}
	if inserted {
		l.log.Debug("history entry recorded",
			logger.String("id", result.ID),
			logger.String("external", externalURL))
	}
	return result, inserted, nil
}

// List returns the log, most recent first.
func (l *Log) List(ctx context.Context) ([]domain.HistoryEntry, error) {
	return l.store.GetHistory(ctx)
}

// Remove deletes one entry. Unknown ids are ignored.
func (l *Log) Remove(ctx context.Context, id string) error {
	return l.store.RemoveHistoryEntry(ctx, id)
}

// Clear empties the log.
func (l *Log) Clear(ctx context.Context) error {
	if err := l.store.ClearHistory(ctx); err != nil {
		return err
	}
	l.log.Info("history cleared")
	return nil
}
