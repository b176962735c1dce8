package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutURLDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	key := "resumes/1/abc-cv.pdf"
	require.NoError(t, store.Put(ctx, key, strings.NewReader("%PDF-1.4"), 8, "application/pdf"))

	data, err := os.ReadFile(filepath.Join(dir, "resumes", "1", "abc-cv.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	url, err := store.URL(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/resumes/1/abc-cv.pdf", url)

	require.NoError(t, store.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(dir, key))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is not an error
	assert.NoError(t, store.Delete(ctx, key))
}

func TestLocalStoreRejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "")
	require.NoError(t, err)

	err = store.Put(context.Background(), "../outside.txt", strings.NewReader("x"), 1, "text/plain")
	assert.Error(t, err)

	url, err := store.URL(context.Background(), "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/a.pdf", url)
}
