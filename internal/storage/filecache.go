package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/singleflight"
)

// ErrInvalidName is returned for names that are not a single path element.
var ErrInvalidName = errors.New("invalid file name")

// FileCache serves blobs from a local directory, fetching each name from the
// store on first access. Names are write-once, so cached copies never go stale.
type FileCache struct {
	dir   string
	store Storage
	group singleflight.Group
}

// NewFileCache creates dir if needed and returns a cache in front of store.
func NewFileCache(dir string, store Storage) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{dir: dir, store: store}, nil
}

// CachedFile is an open cached blob.
type CachedFile struct {
	io.ReadCloser
	Size        int64
	ContentType string
}

// Open returns the cached file for name, downloading it on a miss.
// Missing blobs yield ErrNotExist.
func (c *FileCache) Open(ctx context.Context, name string) (*CachedFile, error) {
	if !validName(name) {
		return nil, ErrInvalidName
	}
	path := filepath.Join(c.dir, name)

	if f, err := openCached(path); err == nil {
		return f, nil
	}

	_, err, _ := c.group.Do(name, func() (any, error) {
		return nil, c.fetch(ctx, name, path)
	})
	if err != nil {
		return nil, err
	}
	return openCached(path)
}

func (c *FileCache) fetch(ctx context.Context, name, path string) error {
	rc, _, err := c.store.Get(ctx, name)
	if err != nil {
		return err
	}
	defer rc.Close()

	tmp, err := os.CreateTemp(c.dir, ".fetch-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, rc); err != nil {
		tmp.Close()
		return fmt.Errorf("download %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("store cached file: %w", err)
	}
	return nil
}

func openCached(path string) (*CachedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &CachedFile{
		ReadCloser:  f,
		Size:        st.Size(),
		ContentType: ContentTypeFor(path),
	}, nil
}

// ContentTypeFor guesses a content type from the file extension.
func ContentTypeFor(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return false
	}
	return filepath.Base(name) == name && !strings.ContainsAny(name, `/\`)
}
