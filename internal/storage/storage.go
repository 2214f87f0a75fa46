// Package storage contains the blob store abstraction used for applicant uploads,
// its S3-compatible implementation and a local read-through cache.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotExist is returned by Get when no object is stored under the key.
var ErrNotExist = errors.New("object does not exist")

// PutObjectOptions describes an upload. Size is -1 when unknown.
// Metadata carries the uploader's original file name.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored blob.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the blob store collaborator. Keys are written once; replacing a file
// always uses a new key.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get streams the blob. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes a blob; it is used to roll back an upload whose row failed to save.
	Delete(ctx context.Context, key string) error
	// URL returns a link clients can use to download the object.
	URL(ctx context.Context, key string) (string, error)
}
