// Package store defines the interface for object storage collaborators.
package store

import (
	"context"
	"time"
)

// ObjectStore reads and writes opaque objects under bucket/key. Keys use
// "/" as the path separator.
type ObjectStore interface {
	// Read returns the full contents of an object.
	Read(ctx context.Context, bucket, key string) ([]byte, error)

	// Write stores an object with the given content type and metadata.
	Write(ctx context.Context, bucket, key string, data []byte, contentType string, metadata map[string]string) error

	// Presign returns a temporary URL that allows uploading the object
	// directly, without service credentials.
	Presign(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}
