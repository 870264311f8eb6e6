package favorites_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mauv0809/fantafav/internal/database"
	"github.com/mauv0809/fantafav/internal/favorites"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// setupTestDB creates a temporary SQLite database for testing.
func setupTestDB(t *testing.T) (favorites.FavouritesStore, *sql.DB) {
	t.Helper()

	db, teardown, err := database.InitDB(filepath.Join(t.TempDir(), "favourites.db"), "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return favorites.New(db), db
}

func TestLoad_InitialisesEmptySlot(t *testing.T) {
	store, db := setupTestDB(t)
	ctx := context.Background()

	ids, err := store.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)

	var blob []byte
	err = db.QueryRow("SELECT value FROM preferences WHERE key = ?", favorites.SlotKey).Scan(&blob)
	require.NoError(t, err, "first load should persist the empty slot")

	var stored []int
	require.NoError(t, msgpack.Unmarshal(blob, &stored))
	assert.Empty(t, stored)
}

func TestSaveAndLoad(t *testing.T) {
	store, _ := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []int{3, 1, 3, 2}))
	ids, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, ids, "duplicates are dropped and order kept")

	require.NoError(t, store.Save(ctx, []int{}))
	ids, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSave_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favourites.db")
	ctx := context.Background()

	db, teardown, err := database.InitDB(path, "", "")
	require.NoError(t, err)
	require.NoError(t, favorites.New(db).Save(ctx, []int{7, 9}))
	teardown()

	db, teardown, err = database.InitDB(path, "", "")
	require.NoError(t, err)
	defer teardown()

	ids, err := favorites.New(db).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 9}, ids)
}

func TestSave_ConcurrentWritersDoNotCorrupt(t *testing.T) {
	store, _ := setupTestDB(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, store.Save(ctx, []int{n, n + 100}))
		}(i)
	}
	wg.Wait()

	ids, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, ids, 2, "one writer's value wins intact")
	assert.Equal(t, ids[0]+100, ids[1])
}

func TestStore_ErrorsAreWrapped(t *testing.T) {
	store, db := setupTestDB(t)
	require.NoError(t, db.Close())

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load favourites")

	err = store.Save(context.Background(), []int{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save favourites")
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []int{}, favorites.Dedupe(nil))
	assert.Equal(t, []int{2, 1}, favorites.Dedupe([]int{2, 1, 2, 1}))
}
