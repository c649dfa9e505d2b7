package storage

import (
	"context"
	"sync"

	"github.com/clanwatch/backend/domain"
)

// MemoryBackend keeps the snapshot in process memory. It exists for
// tests and local demos and is safe for concurrent use.
type MemoryBackend struct {
	mu      sync.RWMutex
	content []byte
	stored  bool
}

var _ Backend = (*MemoryBackend)(nil)

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Write(ctx context.Context, content []byte) error {
	if err := ctx.Err(); err != nil {
		return domain.WrapError(domain.ErrCodeUnreachable, "write canceled", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.content = append([]byte(nil), content...)
	b.stored = true
	return nil
}

func (b *MemoryBackend) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnreachable, "load canceled", err)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.stored {
		return nil, domain.ErrNotStored
	}
	return append([]byte(nil), b.content...), nil
}
