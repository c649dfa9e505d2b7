package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/clanwatch/backend/domain"
)

func TestBackend_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "storage.json")
	backend := New(path)
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

func TestBackend_LoadBeforeWrite(t *testing.T) {
	backend := New(filepath.Join(t.TempDir(), "missing.json"))

	_, err := backend.Load(context.Background())
	if err == nil {
		t.Fatal("expected error before any write")
	}
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND code, got %v", err)
	}
}

func TestBackend_SkipsIdenticalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	backend := New(path)
	ctx := context.Background()

	content := []byte(`{"clans":{}}`)
	if err := backend.Write(ctx, content); err != nil {
		t.Fatalf("first write: %v", err)
	}
	before, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	if err := backend.Write(ctx, content); err != nil {
		t.Fatalf("identical write must succeed: %v", err)
	}
	after, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Fatal("identical content must not rewrite the file")
	}

	// Changed content still goes through.
	changed := []byte(`{"clans":{"#A":{}}}`)
	if err := backend.Write(ctx, changed); err != nil {
		t.Fatalf("changed write: %v", err)
	}
	got, err := backend.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != string(changed) {
		t.Fatalf("expected updated content, got %q", got)
	}
}
