package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakostech/blog-backend/internal/storage"
)

func TestSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)

	ref, err := store.Save(context.Background(), "cover.PNG", []byte("image-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ref, "/uploads/"))
	assert.True(t, strings.HasSuffix(ref, ".png"))

	name := strings.TrimPrefix(ref, "/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)

	require.NoError(t, store.Delete(context.Background(), ref))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(context.Background(), "a.png", []byte("one"))
	require.NoError(t, err)
	second, err := store.Save(context.Background(), "a.png", []byte("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestManaged(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.True(t, store.Managed("/uploads/abc.png"))
	assert.False(t, store.Managed("https://example.com/abc.png"))
	assert.False(t, store.Managed("data:image/png;base64,AAAA"))
}

func TestDeleteIgnoresUnmanaged(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "https://example.com/x.png"))
	assert.NoError(t, store.Delete(context.Background(), "/uploads/never-existed.png"))
}

func TestDeleteRejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)

	outside := filepath.Join(filepath.Dir(dir), "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep"), 0o644))

	require.NoError(t, store.Delete(context.Background(), "/uploads/../victim.txt"))
	_, err = os.Stat(outside)
	assert.NoError(t, err, "file outside the upload dir must survive")
}
