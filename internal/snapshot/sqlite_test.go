package snapshot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "state.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, dbPath
}

func TestSaveAndLoad(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, KeyCart, []byte(`[{"productId":"A"}]`)))

	value, err := store.Load(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"productId":"A"}]`), value)
}

func TestLoad_MissingKey(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Load(context.Background(), "never-written")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSave_LastWriteWins(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, KeyToken, []byte("first")))
	require.NoError(t, store.Save(ctx, KeyToken, []byte("second")))

	value, err := store.Load(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), value)
}

func TestDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, KeyUser, []byte("{}")))
	require.NoError(t, store.Delete(ctx, KeyUser))

	_, err := store.Load(ctx, KeyUser)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, store.Delete(ctx, KeyUser))
}

func TestReopen_SurvivesRestart(t *testing.T) {
	store, dbPath := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, KeyCart, []byte("cart-blob")))
	require.NoError(t, store.Save(ctx, KeyToken, []byte("tok")))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Load(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, []byte("cart-blob"), value)

	value, err = reopened.Load(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok"), value)
}

func TestKeysAreIndependent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, KeyCart, []byte("cart")))
	require.NoError(t, store.Save(ctx, KeyUser, []byte("user")))
	require.NoError(t, store.Delete(ctx, KeyUser))

	value, err := store.Load(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, []byte("cart"), value)
}
