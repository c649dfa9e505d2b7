// Package object stores the snapshot as one object in an S3-compatible
// bucket.
package object

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"

	"github.com/clanwatch/backend/domain"
	"github.com/clanwatch/backend/storage"
)

// Backend targets one bucket+key pair.
type Backend struct {
	client *minio.Client
	bucket string
	key    string
}

var _ storage.Backend = (*Backend)(nil)

// New creates an object-store snapshot backend.
func New(client *minio.Client, bucket, key string) *Backend {
	if key == "" {
		key = "storage.json"
	}
	return &Backend{
		client: client,
		bucket: bucket,
		key:    key,
	}
}

// Write uploads the snapshot, skipping the upload when the stored object
// already carries byte-identical content. The skip saves a round trip on
// the common no-change snapshot cycle; it is not a correctness guarantee.
func (b *Backend) Write(ctx context.Context, content []byte) error {
	if previous, err := b.read(ctx); err == nil && bytes.Equal(previous, content) {
		return nil
	}

	_, err := b.client.PutObject(ctx, b.bucket, b.key,
		bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return domain.WrapError(domain.ErrCodeUnreachable, "uploading snapshot object", err)
	}
	return nil
}

func (b *Backend) Load(ctx context.Context) ([]byte, error) {
	content, err := b.read(ctx)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, domain.ErrNotStored
		}
		return nil, domain.WrapError(domain.ErrCodeUnreachable, "downloading snapshot object", err)
	}
	return content, nil
}

func (b *Backend) read(ctx context.Context) ([]byte, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, b.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	// GetObject defers errors (including NoSuchKey) until the first read.
	return io.ReadAll(obj)
}
