package repository

import (
	"context"
	"io"
	"time"
)

// UploadOptions carry per-object metadata for the binary store. With Upsert
// false an upload fails instead of overwriting an existing key.
type UploadOptions struct {
	CacheControl string
	Upsert       bool
	ContentType  string
}

// ObjectInfo describes one stored object.
type ObjectInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// ObjectMeta is the metadata recorded alongside an uploaded object.
type ObjectMeta struct {
	CacheControl string `json:"cache_control,omitempty"`
	ContentType  string `json:"content_type,omitempty"`
}

// ObjectStore is the binary attachment store.
type ObjectStore interface {
	Upload(ctx context.Context, path string, r io.Reader, opts UploadOptions) error
	Open(ctx context.Context, path string) (io.ReadCloser, *ObjectMeta, error)
	PublicURL(path string) string
	List(ctx context.Context) ([]ObjectInfo, error)
	Remove(ctx context.Context, path string) error
}
