package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/extlink/internal/configstore"
	"github.com/MrSnakeDoc/extlink/internal/domain"
	"github.com/MrSnakeDoc/extlink/internal/kv"
	"github.com/MrSnakeDoc/extlink/internal/logger"
)

func newTestLog(t *testing.T) (*Log, *configstore.Store) {
	t.Helper()
	n := 0
	store := configstore.New(kv.NewMemory(), logger.NewNop(), configstore.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("h-%d", n)
	}))

	l := New(store, logger.NewNop(), nil)
	clock := time.UnixMilli(1_700_000_000_000)
	l.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return l, store
}

// capacityStore overrides the settings read by Log so capacities below the
// validated minimum can be exercised.
type capacityStore struct {
	*configstore.Store
	capacity int
}

func (c capacityStore) GetSettings(context.Context) (domain.Settings, error) {
	return domain.Settings{MaxHistory: c.capacity}, nil
}

func externals(entries []domain.HistoryEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ExternalURL
	}
	return out
}

func TestRecord_MostRecentFirst(t *testing.T) {
	l, _ := newTestLog(t)
	ctx := context.Background()

	for _, u := range []string{"A", "B", "C"} {
		_, inserted, err := l.Record(ctx, u, "orig-"+u)
		require.NoError(t, err)
		assert.True(t, inserted)
	}

	got, err := l.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, externals(got))
	assert.Equal(t, "orig-C", got[0].OriginalURL)
	assert.Greater(t, got[0].CreatedAt, got[1].CreatedAt)
}

func TestRecord_DedupFirstWins(t *testing.T) {
	l, _ := newTestLog(t)
	ctx := context.Background()

	first, inserted, err := l.Record(ctx, "A", "orig-1")
	require.NoError(t, err)
	require.True(t, inserted)
	_, _, err = l.Record(ctx, "B", "orig-b")
	require.NoError(t, err)

	again, inserted, err := l.Record(ctx, "A", "orig-2")
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, first, again)

	got, _ := l.List(ctx)
	assert.Equal(t, []string{"B", "A"}, externals(got), "position unchanged")
	assert.Equal(t, "orig-1", got[1].OriginalURL)
	assert.Equal(t, first.CreatedAt, got[1].CreatedAt)
}

func TestRecord_CapacityEvictsOldest(t *testing.T) {
	store := configstore.New(kv.NewMemory(), logger.NewNop())
	l := New(capacityStore{Store: store, capacity: 2}, logger.NewNop(), nil)
	ctx := context.Background()

	for _, u := range []string{"A", "B", "C"} {
		_, _, err := l.Record(ctx, u, u)
		require.NoError(t, err)
	}

	got, err := l.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B"}, externals(got))
}

func TestRecord_CapacityInvariant(t *testing.T) {
	l, store := newTestLog(t)
	ctx := context.Background()
	require.NoError(t, store.SaveSettings(ctx, domain.Settings{MaxHistory: 10}))

	for i := 0; i < 35; i++ {
		_, _, err := l.Record(ctx, fmt.Sprintf("U%02d", i), "")
		require.NoError(t, err)

		got, _ := l.List(ctx)
		assert.LessOrEqual(t, len(got), 10)
	}

	got, _ := l.List(ctx)
	require.Len(t, got, 10)
	assert.Equal(t, "U34", got[0].ExternalURL)
	assert.Equal(t, "U25", got[9].ExternalURL)
}

func TestRecord_LazyShrink(t *testing.T) {
	l, store := newTestLog(t)
	ctx := context.Background()
	require.NoError(t, store.SaveSettings(ctx, domain.Settings{MaxHistory: 20}))

	for i := 0; i < 15; i++ {
		_, _, err := l.Record(ctx, fmt.Sprintf("U%02d", i), "")
		require.NoError(t, err)
	}

	require.NoError(t, store.SaveSettings(ctx, domain.Settings{MaxHistory: 10}))
	got, _ := l.List(ctx)
	assert.Len(t, got, 15, "shrinking capacity does not truncate eagerly")

	// A duplicate does not insert, so nothing is truncated either.
	_, inserted, err := l.Record(ctx, "U03", "")
	require.NoError(t, err)
	assert.False(t, inserted)
	got, _ = l.List(ctx)
	assert.Len(t, got, 15)

	_, _, err = l.Record(ctx, "NEW", "")
	require.NoError(t, err)
	got, _ = l.List(ctx)
	assert.Len(t, got, 10)
	assert.Equal(t, "NEW", got[0].ExternalURL)
}

func TestRemoveAndClear(t *testing.T) {
	l, _ := newTestLog(t)
	ctx := context.Background()

	a, _, _ := l.Record(ctx, "A", "")
	_, _, _ = l.Record(ctx, "B", "")

	require.NoError(t, l.Remove(ctx, "nope"))
	require.NoError(t, l.Remove(ctx, a.ID))
	got, _ := l.List(ctx)
	assert.Equal(t, []string{"B"}, externals(got))

	require.NoError(t, l.Clear(ctx))
	require.NoError(t, l.Clear(ctx))
	got, _ = l.List(ctx)
	assert.Empty(t, got)
}

type recordCounter struct{ inserted, duplicate int }

func (r *recordCounter) ObserveRecord(inserted bool) {
	if inserted {
		r.inserted++
	} else {
		r.duplicate++
	}
}

func TestRecord_Observer(t *testing.T) {
	obs := &recordCounter{}
	l := New(configstore.New(kv.NewMemory(), logger.NewNop()), logger.NewNop(), obs)
	ctx := context.Background()

	_, _, _ = l.Record(ctx, "A", "")
	_, _, _ = l.Record(ctx, "A", "")
	_, _, _ = l.Record(ctx, "B", "")

	assert.Equal(t, 2, obs.inserted)
	assert.Equal(t, 1, obs.duplicate)
}
