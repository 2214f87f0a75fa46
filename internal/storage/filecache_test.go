package storage_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"admissions/internal/storage"
	"admissions/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFileCache_ReadThrough(t *testing.T) {
	dir := t.TempDir()
	store := new(mocks.MockStorage)
	cache, err := storage.NewFileCache(dir, store)
	require.NoError(t, err)

	store.On("Get", mock.Anything, "APP1_type-1_1700.pdf").
		Return(io.NopCloser(strings.NewReader("%PDF-1.4")), storage.ObjectInfo{Size: 8}, nil).Once()

	f, err := cache.Open(context.Background(), "APP1_type-1_1700.pdf")
	require.NoError(t, err)
	body, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Equal(t, "%PDF-1.4", string(body))
	assert.Equal(t, int64(8), f.Size)
	assert.Equal(t, "application/pdf", f.ContentType)

	// second open is served from disk
	f, err = cache.Open(context.Background(), "APP1_type-1_1700.pdf")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = os.Stat(filepath.Join(dir, "APP1_type-1_1700.pdf"))
	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestFileCache_Missing(t *testing.T) {
	store := new(mocks.MockStorage)
	cache, err := storage.NewFileCache(t.TempDir(), store)
	require.NoError(t, err)

	store.On("Get", mock.Anything, "gone.png").Return(nil, storage.ObjectInfo{}, storage.ErrNotExist)

	f, err := cache.Open(context.Background(), "gone.png")
	assert.Nil(t, f)
	assert.True(t, errors.Is(err, storage.ErrNotExist))
}

func TestFileCache_RejectsPaths(t *testing.T) {
	store := new(mocks.MockStorage)
	cache, err := storage.NewFileCache(t.TempDir(), store)
	require.NoError(t, err)

	for _, name := range []string{"", "..", "../etc/passwd", "a/b.pdf", `a\b.pdf`, ".env"} {
		_, err := cache.Open(context.Background(), name)
		assert.ErrorIs(t, err, storage.ErrInvalidName, name)
	}
	store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/png", storage.ContentTypeFor("x.PNG"))
	assert.Equal(t, "application/octet-stream", storage.ContentTypeFor("noext"))
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/files/a%20b.pdf", storage.PublicURL("https://cdn.example.com/files/", "a b.pdf"))
}
