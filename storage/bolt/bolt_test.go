package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/clanwatch/backend/domain"
)

func openTestBackend(t *testing.T) *Backend {
	t.Helper()
	backend, err := Open(filepath.Join(t.TempDir(), "snapshots.db"), "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { backend.Close() })
	return backend
}

func TestBackend_RoundTrip(t *testing.T) {
	backend := openTestBackend(t)
	ctx := context.Background()

	content := []byte(`{"clans":{}}`)
	if err := backend.Write(ctx, content); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := backend.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != string(content) {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestBackend_WriteReplaces(t *testing.T) {
	backend := openTestBackend(t)
	ctx := context.Background()

	if err := backend.Write(ctx, []byte("first")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := backend.Write(ctx, []byte("second")); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := backend.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != "second" {
		t.Fatalf("expected latest content, got %q", got)
	}
}

func TestBackend_LoadBeforeWrite(t *testing.T) {
	backend := openTestBackend(t)

	_, err := backend.Load(context.Background())
	if err == nil {
		t.Fatal("expected error before any write")
	}
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND code, got %v", err)
	}
}
