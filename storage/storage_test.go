package storage

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/clanwatch/backend/domain"
)

const testClan = domain.ClanTag("#CLAN")

func TestStorage_RegisterClanIdempotent(t *testing.T) {
	s := New()
	season := domain.Season{Year: 2024, Month: 3}

	s.RegisterClan(testClan)
	s.GetOrCreate(testClan, season).PlayerNames["#P1"] = "One"

	s.RegisterClan(testClan)

	if got := s.Get(testClan, season); got == nil || got.PlayerNames["#P1"] != "One" {
		t.Fatal("re-registering a clan must not reset its seasons")
	}
}

func TestStorage_GetOrCreate(t *testing.T) {
	s := New()
	season := domain.Season{Year: 2024, Month: 3}

	if got := s.GetOrCreate(testClan, season); got != nil {
		t.Fatal("GetOrCreate must return nil for an unregistered clan")
	}

	s.RegisterClan(testClan)

	if got := s.Get(testClan, season); got != nil {
		t.Fatal("Get must not create season entries")
	}

	created := s.GetOrCreate(testClan, season)
	if created == nil {
		t.Fatal("GetOrCreate must create a bundle for a registered clan")
	}
	if len(created.Wars) != 0 || len(created.Games) != 0 || len(created.PlayerNames) != 0 {
		t.Fatal("freshly created bundle must be empty")
	}

	if got := s.Get(testClan, season); got != created {
		t.Fatal("Get must return the bundle created by GetOrCreate")
	}
}

func TestStorage_SaveLoadRoundTrip(t *testing.T) {
	s := New()
	s.RegisterClan(testClan)
	season := domain.Season{Year: 2024, Month: 3}

	stats := s.GetOrCreate(testClan, season)
	stats.PlayerNames["#ALICE"] = "Alice"
	start := 10
	stats.Games["#ALICE"] = &domain.PlayerGamesStats{StartScore: &start, EndScore: 45}
	warStart := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	stats.Wars[domain.EventKey(warStart)] = &domain.WarStats{
		StartTime: warStart,
		Members: map[domain.PlayerTag]*domain.MemberWarStats{
			"#ALICE": {Attacks: []domain.WarAttack{{Destruction: 90, Stars: 2, Duration: 100}}},
		},
	}

	// A registered clan with no seasons yet must survive the round trip too.
	s.RegisterClan("#EMPTY")

	backend := NewMemoryBackend()
	ctx := context.Background()

	if err := s.Save(ctx, backend); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(ctx, backend)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !reflect.DeepEqual(s, loaded) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", loaded, s)
	}
}

func TestLoad_MalformedContent(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	if err := backend.Write(ctx, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := Load(ctx, backend)
	if err == nil {
		t.Fatal("expected error for malformed content")
	}
	if !domain.IsDomainError(err, domain.ErrCodeMalformed) {
		t.Fatalf("expected MALFORMED code, got %v", err)
	}
}

func TestMemoryBackend_LoadBeforeWrite(t *testing.T) {
	backend := NewMemoryBackend()

	_, err := backend.Load(context.Background())
	if err == nil {
		t.Fatal("expected error before any write")
	}
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND code, got %v", err)
	}
}
