// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider.
package storage

import (
	"context"
	"io"
)

// Storage is the interface for uploading and enumerating stored objects.
type Storage interface {
	// Upload streams data to the store under the given key, overwriting any
	// existing object with the same key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// List returns the keys of every object currently in the bucket, in
	// whatever order the backend yields them.
	List(ctx context.Context) ([]string, error)
	// Ping performs a cheap reachability probe against the backend.
	Ping(ctx context.Context) error
	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
}
