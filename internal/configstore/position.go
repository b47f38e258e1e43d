package configstore

import (
	"context"

	"github.com/MrSnakeDoc/extlink/internal/domain"
)

type storedPosition struct {
	Top  *int        `json:"top"`
	Edge domain.Edge `json:"edge"`
}

// GetButtonPosition returns the stored host button position. Missing fields
// and unknown edges fall back to the default position's values.
func (s *Store) GetButtonPosition(ctx context.Context) (domain.ButtonPosition, error) {
	pos := domain.DefaultButtonPosition()

	var stored storedPosition
	ok, err := s.readJSON(ctx, KeyButtonPosition, "{}", &stored)
	if err != nil {
		return domain.ButtonPosition{}, err
	}
	if !ok {
		return pos, nil
	}
	if stored.Top != nil {
		pos.Top = *stored.Top
	}
	if stored.Edge.Valid() {
		pos.Edge = stored.Edge
	}
	return pos, nil
}

// SaveButtonPosition persists pos. Only the edge is checked.
func (s *Store) SaveButtonPosition(ctx context.Context, pos domain.ButtonPosition) error {
	if !pos.Edge.Valid() {
		return domain.ErrInvalidEdge
	}

	s.positionMu.Lock()
	defer s.positionMu.Unlock()

	return s.writeJSON(ctx, KeyButtonPosition, pos)
}
