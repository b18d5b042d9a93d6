package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) *LocalStorage {
	t.Helper()
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestLocalStorage_SaveAndExists(t *testing.T) {
	store := newLocal(t)
	ctx := context.Background()

	path, err := store.Save(ctx, "photo.png", []byte("image bytes"))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), data)

	exists, err := store.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = store.Exists(ctx, "missing.png")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_Delete(t *testing.T) {
	store := newLocal(t)
	ctx := context.Background()

	path, err := store.Save(ctx, "photo.png", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, path))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLocalStorage_DeleteMissing(t *testing.T) {
	store := newLocal(t)

	err := store.Delete(context.Background(), "never-saved.png")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	store := newLocal(t)
	ctx := context.Background()

	for _, name := range []string{"../escape.png", "a/b.png", `a\b.png`, ""} {
		_, err := store.Save(ctx, name, []byte("x"))
		assert.Error(t, err, "name %q must be rejected", name)
	}
}

func TestLocalStorage_CreatesBaseDirectory(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "images")

	store, err := NewLocalStorage(base)
	require.NoError(t, err)
	require.NoError(t, store.Health(context.Background()))

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLocalStorage_Name(t *testing.T) {
	store := newLocal(t)
	assert.Equal(t, "local", store.Name())
}
