package asset_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/scenecore/pkg/scenecore/asset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBundle(t *testing.T) *asset.SQLiteStore {
	t.Helper()
	store, err := asset.NewSQLiteStore(filepath.Join(t.TempDir(), "assets.bundle"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := newBundle(t)

	require.NoError(t, store.Put("models/ship.obj", []byte("o ship"), false))

	data, err := store.Read("models/ship.obj")
	require.NoError(t, err)
	assert.Equal(t, []byte("o ship"), data)
}

func TestSQLiteStore_CompressedRoundTrip(t *testing.T) {
	store := newBundle(t)

	// Repetitive payload so compression actually has something to do.
	payload := bytes.Repeat([]byte("vertex normal texcoord "), 512)
	require.NoError(t, store.Put("models/big.obj", payload, true))

	data, err := store.Read("models/big.obj")
	require.NoError(t, err)
	assert.Equal(t, payload, data)

	infos, err := store.List()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.True(t, infos[0].Compressed)
	assert.Equal(t, int64(len(payload)), infos[0].Size)
}

func TestSQLiteStore_Overwrite(t *testing.T) {
	store := newBundle(t)

	require.NoError(t, store.Put("a", []byte("v1"), false))
	require.NoError(t, store.Put("a", []byte("v2"), true))

	data, err := store.Read("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)
}

func TestSQLiteStore_Missing(t *testing.T) {
	store := newBundle(t)

	_, err := store.Read("missing")
	assert.ErrorIs(t, err, asset.ErrNotFound)
}

func TestSQLiteStore_List(t *testing.T) {
	store := newBundle(t)

	require.NoError(t, store.Put("b", []byte("bb"), false))
	require.NoError(t, store.Put("a", []byte("a"), false))

	infos, err := store.List()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "a", infos[0].Name)
	assert.Equal(t, "b", infos[1].Name)
	assert.Equal(t, int64(1), infos[0].Size)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := newBundle(t)

	require.NoError(t, store.Put("a", []byte("1"), false))
	require.NoError(t, store.Delete("a"))
	_, err := store.Read("a")
	assert.ErrorIs(t, err, asset.ErrNotFound)

	assert.NoError(t, store.Delete("a"))
}

func TestSQLiteStore_Closed(t *testing.T) {
	store := newBundle(t)
	require.NoError(t, store.Close())

	assert.ErrorIs(t, store.Put("a", nil, false), asset.ErrStoreClosed)
	_, err := store.Read("a")
	assert.ErrorIs(t, err, asset.ErrStoreClosed)
	_, err = store.List()
	assert.ErrorIs(t, err, asset.ErrStoreClosed)

	// Closing twice is fine.
	assert.NoError(t, store.Close())
}
