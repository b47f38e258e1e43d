package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "extlink.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_GetDefault(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Get(context.Background(), "missing", "{}")
	require.NoError(t, err)
	assert.Equal(t, "{}", got)
}

func TestStore_SetOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "openlist_settings", `{"maxHistory":20}`))
	require.NoError(t, s.Set(ctx, "openlist_settings", `{"maxHistory":30}`))

	got, err := s.Get(ctx, "openlist_settings", "")
	require.NoError(t, err)
	assert.Equal(t, `{"maxHistory":30}`, got)
}

func TestStore_Ping(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}
