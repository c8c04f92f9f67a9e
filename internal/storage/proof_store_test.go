package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProofStore_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	store := NewProofStore(dir, "http://localhost:5678/public/", zap.NewNop())

	url, err := store.Save("receipt.png", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:5678/public/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), "stored name keeps the extension")
	assert.NotContains(t, url, "receipt", "original name never reaches storage")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	content, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(content))

	require.NoError(t, store.Delete(url))
	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Deleting again is a no-op.
	assert.NoError(t, store.Delete(url))
}

func TestProofStore_UniqueNames(t *testing.T) {
	store := NewProofStore(t.TempDir(), "http://localhost/public", zap.NewNop())

	first, err := store.Save("a.jpg", strings.NewReader("one"))
	require.NoError(t, err)
	second, err := store.Save("a.jpg", strings.NewReader("two"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestProofStore_Delete_RejectsTraversal(t *testing.T) {
	store := NewProofStore(t.TempDir(), "http://localhost/public", zap.NewNop())

	err := store.Delete("http://localhost/public/..%2fescape")
	assert.Error(t, err)
}
