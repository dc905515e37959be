package storage

import (
	"context"
	"io"

	gcs "cloud.google.com/go/storage"
)

// GCSOptions configures the Google Cloud Storage client.
type GCSOptions struct {
	// Client provides an existing GCS client. When nil, a client is built
	// from the ambient credentials.
	Client *gcs.Client
}

// GCSAdapter implements Storage on Google Cloud Storage.
type GCSAdapter struct {
	client *gcs.Client
}

// NewGCS builds a GCS adapter from the options.
func NewGCS(ctx context.Context, opts GCSOptions) (*GCSAdapter, error) {
	client := opts.Client
	if client == nil {
		created, err := gcs.NewClient(ctx)
		if err != nil {
			return nil, err
		}
		client = created
	}

	return &GCSAdapter{client: client}, nil
}

// PutObject uploads data to GCS.
func (a *GCSAdapter) PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error) {
	writer := a.client.Bucket(bucket).Object(key).NewWriter(ctx)
	if opts.ContentType != "" {
		writer.ContentType = opts.ContentType
	}
	if len(opts.Metadata) > 0 {
		writer.Metadata = opts.Metadata
	}

	if _, err := io.Copy(writer, r); err != nil {
		_ = writer.Close() //nolint:errcheck // the copy error is the root cause
		return ObjectInfo{}, err
	}
	if err := writer.Close(); err != nil {
		return ObjectInfo{}, err
	}

	return gcsAttrsToInfo(writer.Attrs()), nil
}

// GetObject streams an object from GCS.
func (a *GCSAdapter) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error) {
	obj := a.client.Bucket(bucket).Object(key)

	reader, err := obj.NewReader(ctx)
	if err != nil {
		return nil, ObjectInfo{}, err
	}

	attrs, err := obj.Attrs(ctx)
	if err != nil {
		_ = reader.Close() //nolint:errcheck // the attrs error is the root cause
		return nil, ObjectInfo{}, err
	}

	return reader, gcsAttrsToInfo(attrs), nil
}

// StatObject returns metadata for a GCS object.
func (a *GCSAdapter) StatObject(ctx context.Context, bucket, key string) (ObjectInfo, error) {
	attrs, err := a.client.Bucket(bucket).Object(key).Attrs(ctx)
	if err != nil {
		return ObjectInfo{}, err
	}
	return gcsAttrsToInfo(attrs), nil
}

// Close closes the underlying client.
func (a *GCSAdapter) Close() error {
	return a.client.Close()
}

func gcsAttrsToInfo(attrs *gcs.ObjectAttrs) ObjectInfo {
	if attrs == nil {
		return ObjectInfo{}
	}
	return ObjectInfo{
		Bucket:      attrs.Bucket,
		Key:         attrs.Name,
		Size:        attrs.Size,
		ETag:        attrs.Etag,
		ContentType: attrs.ContentType,
		UpdatedAt:   attrs.Updated,
	}
}
