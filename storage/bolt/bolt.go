// Package bolt stores the snapshot under a single key in a BoltDB file.
package bolt

import (
	"context"
	"os"
	"path/filepath"
	"time"

	boltdb "go.etcd.io/bbolt"

	"github.com/clanwatch/backend/domain"
	"github.com/clanwatch/backend/storage"
)

const snapshotKey = "current"

// Backend wraps a BoltDB database holding the snapshot blob.
type Backend struct {
	db     *boltdb.DB
	bucket []byte
}

var _ storage.Backend = (*Backend)(nil)

// Open initializes the BoltDB file and ensures the bucket exists.
func Open(path string, bucket string) (*Backend, error) {
	if bucket == "" {
		bucket = "snapshots"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := boltdb.Open(path, 0o600, &boltdb.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *boltdb.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Backend{
		db:     db,
		bucket: []byte(bucket),
	}, nil
}

func (b *Backend) Write(ctx context.Context, content []byte) error {
	if err := ctx.Err(); err != nil {
		return domain.WrapError(domain.ErrCodeUnreachable, "write canceled", err)
	}
	err := b.db.Update(func(tx *boltdb.Tx) error {
		return tx.Bucket(b.bucket).Put([]byte(snapshotKey), content)
	})
	if err != nil {
		return domain.WrapError(domain.ErrCodeUnreachable, "writing bolt snapshot", err)
	}
	return nil
}

func (b *Backend) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnreachable, "load canceled", err)
	}
	var content []byte
	err := b.db.View(func(tx *boltdb.Tx) error {
		value := tx.Bucket(b.bucket).Get([]byte(snapshotKey))
		if value == nil {
			return nil
		}
		// Bolt values are only valid inside the transaction.
		content = append([]byte(nil), value...)
		return nil
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnreachable, "reading bolt snapshot", err)
	}
	if content == nil {
		return nil, domain.ErrNotStored
	}
	return content, nil
}

// Close closes the underlying Bolt database.
func (b *Backend) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
