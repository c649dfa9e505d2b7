// Package file stores the snapshot as a single file on local disk.
package file

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/clanwatch/backend/domain"
	"github.com/clanwatch/backend/storage"
)

// Backend writes the snapshot blob to one file path.
type Backend struct {
	path string
}

var _ storage.Backend = (*Backend)(nil)

// New returns a file backend for the given path. Parent directories are
// created on the first write.
func New(path string) *Backend {
	return &Backend{path: path}
}

// Write replaces the file's content. Byte-identical content skips the
// disk write; callers must not rely on the skip for ordering.
func (b *Backend) Write(ctx context.Context, content []byte) error {
	if err := ctx.Err(); err != nil {
		return domain.WrapError(domain.ErrCodeUnreachable, "write canceled", err)
	}
	if previous, err := os.ReadFile(b.path); err == nil && bytes.Equal(previous, content) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return domain.WrapError(domain.ErrCodeUnreachable, "creating snapshot directory", err)
	}
	if err := os.WriteFile(b.path, content, 0o644); err != nil {
		return domain.WrapError(domain.ErrCodeUnreachable, "writing snapshot file", err)
	}
	return nil
}

func (b *Backend) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnreachable, "load canceled", err)
	}
	content, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotStored
		}
		return nil, domain.WrapError(domain.ErrCodeUnreachable, "reading snapshot file", err)
	}
	return content, nil
}
