// Package postgres stores the snapshot in a single-row blob table.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clanwatch/backend/domain"
	"github.com/clanwatch/backend/storage"
)

// Backend upserts the snapshot blob into clan_snapshots, which holds at
// most one row (id is constrained to 1 by the schema).
type Backend struct {
	pool *pgxpool.Pool
}

var _ storage.Backend = (*Backend)(nil)

// New creates a Postgres-backed snapshot store over an existing pool.
func New(pool *pgxpool.Pool) *Backend {
	return &Backend{pool: pool}
}

func (b *Backend) Write(ctx context.Context, content []byte) error {
	const query = `
		INSERT INTO clan_snapshots (id, content, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE
		SET content = EXCLUDED.content, updated_at = now()`

	if _, err := b.pool.Exec(ctx, query, content); err != nil {
		return domain.WrapError(domain.ErrCodeUnreachable, "writing postgres snapshot", err)
	}
	return nil
}

func (b *Backend) Load(ctx context.Context) ([]byte, error) {
	const query = `SELECT content FROM clan_snapshots WHERE id = 1`

	var content []byte
	if err := b.pool.QueryRow(ctx, query).Scan(&content); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotStored
		}
		return nil, domain.WrapError(domain.ErrCodeUnreachable, "reading postgres snapshot", err)
	}
	return content, nil
}
