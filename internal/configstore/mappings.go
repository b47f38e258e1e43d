package configstore

import (
	"context"

	"github.com/MrSnakeDoc/extlink/internal/domain"
	"github.com/MrSnakeDoc/extlink/internal/logger"
)

// GetMappings returns the mapping table in stored order, or an empty table
// when nothing valid is stored.
func (s *Store) GetMappings(ctx context.Context) ([]domain.DomainMapping, error) {
	var mappings []domain.DomainMapping
	ok, err := s.readJSON(ctx, KeyMappings, "[]", &mappings)
	if err != nil {
		return nil, err
	}
	if !ok || mappings == nil {
		return []domain.DomainMapping{}, nil
	}
	return mappings, nil
}

// SaveMappings overwrites the whole table, preserving the given order.
func (s *Store) SaveMappings(ctx context.Context, mappings []domain.DomainMapping) error {
	s.mappingsMu.Lock()
	defer s.mappingsMu.Unlock()

	return s.saveMappings(ctx, mappings)
}

func (s *Store) saveMappings(ctx context.Context, mappings []domain.DomainMapping) error {
	if mappings == nil {
		mappings = []domain.DomainMapping{}
	}
	return s.writeJSON(ctx, KeyMappings, mappings)
}

// AddMapping trims both prefixes and appends a new enabled mapping to the end
// of the table. Empty prefixes are rejected with domain.ErrEmptyPrefix and
// nothing is written.
func (s *Store) AddMapping(ctx context.Context, internalPrefix, externalPrefix string) (domain.DomainMapping, error) {
	return s.InsertMapping(ctx, internalPrefix, externalPrefix, true)
}

// InsertMapping is AddMapping with an explicit enabled flag. The row is
// appended in a single write.
func (s *Store) InsertMapping(ctx context.Context, internalPrefix, externalPrefix string, enabled bool) (domain.DomainMapping, error) {
	internalPrefix, externalPrefix, err := domain.NormalizePrefixes(internalPrefix, externalPrefix)
	if err != nil {
		return domain.DomainMapping{}, err
	}

	s.mappingsMu.Lock()
	defer s.mappingsMu.Unlock()

	mappings, err := s.GetMappings(ctx)
	if err != nil {
		return domain.DomainMapping{}, err
	}

	m := domain.DomainMapping{
		ID:             s.newID(),
		InternalPrefix: internalPrefix,
		ExternalPrefix: externalPrefix,
		Enabled:        enabled,
	}
	if err := s.saveMappings(ctx, append(mappings, m)); err != nil {
		return domain.DomainMapping{}, err
	}

	s.log.Info("mapping added",
		logger.String("id", m.ID),
		logger.String("internal", m.InternalPrefix),
		logger.String("external", m.ExternalPrefix),
		logger.Bool("enabled", m.Enabled))
	return m, nil
}

// RemoveMapping deletes the mapping with id. Unknown ids are ignored.
func (s *Store) RemoveMapping(ctx context.Context, id string) error {
	s.mappingsMu.Lock()
	defer s.mappingsMu.Unlock()

	mappings, err := s.GetMappings(ctx)
	if err != nil {
		return err
	}

	kept := make([]domain.DomainMapping, 0, len(mappings))
	for _, m := range mappings {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(mappings) {
		return nil
	}

	if err := s.saveMappings(ctx, kept); err != nil {
		return err
	}
	s.log.Info("mapping removed", logger.String("id", id))
	return nil
}

// UpdateMapping replaces the prefixes and enabled flag of the mapping with id,
// keeping its position and id. Unknown ids are a no-op. Prefixes follow the
// same trimming and non-empty rule as AddMapping.
func (s *Store) UpdateMapping(ctx context.Context, id, internalPrefix, externalPrefix string, enabled bool) error {
	internalPrefix, externalPrefix, err := domain.NormalizePrefixes(internalPrefix, externalPrefix)
	if err != nil {
		return err
	}

	s.mappingsMu.Lock()
	defer s.mappingsMu.Unlock()

	mappings, err := s.GetMappings(ctx)
	if err != nil {
		return err
	}

	for i := range mappings {
		if mappings[i].ID != id {
			continue
		}
		mappings[i].InternalPrefix = internalPrefix
		mappings[i].ExternalPrefix = externalPrefix
		mappings[i].Enabled = enabled
		if err := s.saveMappings(ctx, mappings); err != nil {
			return err
		}
		s.log.Info("mapping updated",
			logger.String("id", id),
			logger.Bool("enabled", enabled))
		return nil
	}
	return nil
}
