package asset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/scenecore/pkg/scenecore/asset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirStore_Read(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "models"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models", "cube.obj"), []byte("v 0 0 0"), 0o644))

	store, err := asset.NewDirStore(dir)
	require.NoError(t, err)
	defer store.Close()

	data, err := store.Read("models/cube.obj")
	require.NoError(t, err)
	assert.Equal(t, []byte("v 0 0 0"), data)
}

func TestDirStore_Missing(t *testing.T) {
	store, err := asset.NewDirStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Read("missing.obj")
	assert.ErrorIs(t, err, asset.ErrNotFound)
}

func TestDirStore_RejectsTraversal(t *testing.T) {
	store, err := asset.NewDirStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	for _, name := range []string{"../outside", "..", ".", "/etc/passwd"} {
		_, err := store.Read(name)
		assert.ErrorIs(t, err, asset.ErrNotFound, "name %q", name)
	}
}

func TestDirStore_RootMustExist(t *testing.T) {
	_, err := asset.NewDirStore(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestDirStore_Closed(t *testing.T) {
	store, err := asset.NewDirStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.Read("a")
	assert.ErrorIs(t, err, asset.ErrStoreClosed)
}
