package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/extlink/internal/domain"
	"github.com/MrSnakeDoc/extlink/internal/logger"
)

// MappingStore is the slice of ConfigStore the importer writes through.
type MappingStore interface {
	GetMappings(ctx context.Context) ([]domain.DomainMapping, error)
	InsertMapping(ctx context.Context, internalPrefix, externalPrefix string, enabled bool) (domain.DomainMapping, error)
	UpdateMapping(ctx context.Context, id, internalPrefix, externalPrefix string, enabled bool) error
}

// Result summarizes one import.
type Result struct {
	Added     int `json:"added"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Skipped   int `json:"skipped"`
}

// Importer merges seed entries into the mapping table.
//
// An entry whose trimmed internal prefix is not in the table yet is appended,
// in file order. An entry whose prefix already exists updates the first such
// mapping in place, so its precedence is kept. Invalid entries are skipped.
type Importer struct {
	loader *Loader
	store  MappingStore
	log    logger.Logger
}

// NewImporter creates an importer reading from loader.
func NewImporter(loader *Loader, store MappingStore, log logger.Logger) *Importer {
	return &Importer{loader: loader, store: store, log: log}
}

// Import loads the seed file and applies it.
func (im *Importer) Import(ctx context.Context) (Result, error) {
	f, err := im.loader.Load()
	if err != nil {
		return Result{}, err
	}
	res, err := im.Apply(ctx, f.Mappings)
	if err != nil {
		return res, err
	}

	im.log.Info("seed imported",
		logger.String("file", im.loader.Path()),
		logger.Int("added", res.Added),
		logger.Int("updated", res.Updated),
		logger.Int("unchanged", res.Unchanged),
		logger.Int("skipped", res.Skipped))
	return res, nil
}

// Apply merges entries into the table.
func (im *Importer) Apply(ctx context.Context, entries []Entry) (Result, error) {
	var res Result

	for i, e := range entries {
		internal, external, err := domain.NormalizePrefixes(e.Internal, e.External)
		if err != nil {
			im.log.Warn("skipping invalid seed entry",
				logger.Int("index", i),
				logger.Error(err))
			res.Skipped++
			continue
		}

		current, err := im.store.GetMappings(ctx)
		if err != nil {
			return res, err
		}

		existing, found := findByInternal(current, internal)
		switch {
		case !found:
			if _, err := im.store.InsertMapping(ctx, internal, external, e.IsEnabled()); err != nil {
				return res, fmt.Errorf("failed to add seed mapping %q: %w", internal, err)
			}
			res.Added++
		case existing.ExternalPrefix == external && existing.Enabled == e.IsEnabled():
			res.Unchanged++
		default:
			if err := im.store.UpdateMapping(ctx, existing.ID, internal, external, e.IsEnabled()); err != nil {
				return res, fmt.Errorf("failed to update seed mapping %q: %w", internal, err)
			}
			res.Updated++
		}
	}
	return res, nil
}

func findByInternal(mappings []domain.DomainMapping, internal string) (domain.DomainMapping, bool) {
	for _, m := range mappings {
		if strings.TrimSpace(m.InternalPrefix) == internal {
			return m, true
		}
	}
	return domain.DomainMapping{}, false
}
