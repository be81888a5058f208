package file_store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalUploadStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalUploadStore(dir)
	require.NoError(t, err)

	key, err := store.Store(strings.NewReader("thumbnail bytes"), "cover.png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".png"))

	written, err := os.ReadFile(filepath.Join(dir, key))
	require.NoError(t, err)
	assert.Equal(t, "thumbnail bytes", string(written))

	assert.Equal(t, "/uploads/"+key, store.GetUrlFromKey(key))
}

func TestLocalUploadStoreKeysAreUnique(t *testing.T) {
	store, err := NewLocalUploadStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Store(strings.NewReader("a"), "same.jpg")
	require.NoError(t, err)
	second, err := store.Store(strings.NewReader("b"), "same.jpg")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
