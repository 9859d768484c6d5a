package sqlite

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/louisbranch/parlor.games/internal/game"
	"github.com/louisbranch/parlor.games/internal/storage"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err, "open store")
	t.Cleanup(func() {
		require.NoError(t, store.Close(), "close store")
	})
	return store
}

func testState(id string, version uint64) game.GameState {
	return game.GameState{
		ID:        id,
		Type:      "dicescore",
		Lifecycle: game.LifecycleActive,
		Players: []game.Player{
			{ID: "p1", Name: "Ada", JoinedAt: testNow},
			{ID: "p2", Name: "Grace", JoinedAt: testNow},
		},
		Phase:     "rolling",
		Metadata:  json.RawMessage(`{"seed":42,"roll_count":0}`),
		Version:   version,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := Open("  ")
	require.Error(t, err)
}

func TestSaveGetRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	want := testState("game-1", 1)

	require.NoError(t, store.Save(context.Background(), want))

	got, err := store.Get(context.Background(), "game-1")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestSaveRejectsDuplicate(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	require.NoError(t, store.Save(context.Background(), testState("game-1", 1)))

	err := store.Save(context.Background(), testState("game-1", 1))
	require.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestGetMissing(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.Get(context.Background(), "absent")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateCompareAndSwap(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	require.NoError(t, store.Save(context.Background(), testState("game-1", 1)))

	next := testState("game-1", 2)
	next.Phase = "scoring"
	require.NoError(t, store.Update(context.Background(), next, 1))

	// A writer still holding version 1 must lose.
	stale := testState("game-1", 2)
	err := store.Update(context.Background(), stale, 1)
	require.ErrorIs(t, err, storage.ErrVersionConflict)

	got, err := store.Get(context.Background(), "game-1")
	require.NoError(t, err)
	require.Equal(t, uint64(2), got.Version)
	require.Equal(t, "scoring", got.Phase)
}

func TestUpdateMissing(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	err := store.Update(context.Background(), testState("absent", 2), 1)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	require.NoError(t, store.Save(context.Background(), testState("game-1", 1)))

	require.NoError(t, store.Delete(context.Background(), "game-1"))

	_, err := store.Get(context.Background(), "game-1")
	require.ErrorIs(t, err, storage.ErrNotFound)

	require.ErrorIs(t, store.Delete(context.Background(), "game-1"), storage.ErrNotFound)
}

func TestStateSurvivesReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "games.db")
	store, err := Open(path)
	require.NoError(t, err)

	want := testState("game-1", 1)
	require.NoError(t, store.Save(context.Background(), want))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, reopened.Close()) })

	got, err := reopened.Get(context.Background(), "game-1")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestContextCancellation(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, store.Save(ctx, testState("game-1", 1)), context.Canceled)
	_, err := store.Get(ctx, "game-1")
	require.ErrorIs(t, err, context.Canceled)
}
