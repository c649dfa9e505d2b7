// Package redis stores the snapshot under a single Redis key.
package redis

import (
	"context"

	redislib "github.com/redis/go-redis/v9"

	"github.com/clanwatch/backend/domain"
	"github.com/clanwatch/backend/storage"
)

// Backend stores the snapshot blob under one key, no expiry.
type Backend struct {
	client *redislib.Client
	key    string
}

var _ storage.Backend = (*Backend)(nil)

// New creates a Redis-backed snapshot store.
func New(client *redislib.Client, key string) *Backend {
	if key == "" {
		key = "clanwatch:snapshot"
	}
	return &Backend{
		client: client,
		key:    key,
	}
}

func (b *Backend) Write(ctx context.Context, content []byte) error {
	if err := b.client.Set(ctx, b.key, content, 0).Err(); err != nil {
		return domain.WrapError(domain.ErrCodeUnreachable, "writing redis snapshot", err)
	}
	return nil
}

func (b *Backend) Load(ctx context.Context) ([]byte, error) {
	content, err := b.client.Get(ctx, b.key).Bytes()
	if err != nil {
		if err == redislib.Nil {
			return nil, domain.ErrNotStored
		}
		return nil, domain.WrapError(domain.ErrCodeUnreachable, "reading redis snapshot", err)
	}
	return content, nil
}
