// Package storage provides a driver-agnostic object store used to fetch
// large artifacts such as the pricing model.
package storage

import (
	"context"
	"io"
	"time"
)

// Storage defines the object store operations the application relies on.
type Storage interface {
	io.Closer

	// PutObject uploads data under the key and returns the stored metadata.
	PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error)
	// GetObject streams the object contents together with its metadata.
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error)
	// StatObject returns object metadata without reading the contents.
	StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error)
}

// PutOptions configures an upload.
type PutOptions struct {
	// Size is the expected content length, -1 when unknown.
	Size int64
	// ContentType is the MIME type of the object.
	ContentType string
	// Metadata is user-defined key/value metadata.
	Metadata map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	// Bucket is the bucket name.
	Bucket string
	// Key is the object key.
	Key string
	// Size is the object size in bytes.
	Size int64
	// ETag is the object ETag when the backend provides one.
	ETag string
	// ContentType is the object MIME type.
	ContentType string
	// UpdatedAt is the last modified time.
	UpdatedAt time.Time
}

// ReadObject fetches the full contents of an object.
func ReadObject(ctx context.Context, s Storage, bucket, key string) ([]byte, error) {
	rc, _, err := s.GetObject(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close() //nolint:errcheck // read errors surface through io.ReadAll

	return io.ReadAll(rc)
}
