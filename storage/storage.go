package storage

import (
	"context"
	"encoding/json"

	"github.com/clanwatch/backend/domain"
)

// Storage is the full in-memory aggregate: clan tag -> season -> stats.
// It is persisted and loaded as one unit; there is no delta persistence.
// A single logical writer owns an instance at a time, so the aggregate
// itself carries no locking.
type Storage struct {
	Clans map[domain.ClanTag]map[domain.Season]*domain.ClanStats `json:"clans"`
}

// New returns an empty aggregate.
func New() *Storage {
	return &Storage{
		Clans: make(map[domain.ClanTag]map[domain.Season]*domain.ClanStats),
	}
}

// RegisterClan seeds an empty season map for the tag. Registering an
// already-known tag is a no-op; a registered tag is never removed.
func (s *Storage) RegisterClan(tag domain.ClanTag) {
	if _, ok := s.Clans[tag]; ok {
		return
	}
	s.Clans[tag] = make(map[domain.Season]*domain.ClanStats)
}

// GetOrCreate returns the mutable stats bundle for (tag, season),
// inserting an all-empty bundle on first access. It returns nil when the
// tag was never registered; callers must register before writing.
func (s *Storage) GetOrCreate(tag domain.ClanTag, season domain.Season) *domain.ClanStats {
	seasons, ok := s.Clans[tag]
	if !ok {
		return nil
	}
	stats, ok := seasons[season]
	if !ok {
		stats = domain.NewClanStats()
		seasons[season] = stats
	}
	return stats
}

// Get is the read-only lookup. It never creates entries and returns nil
// when either the tag or the season is absent.
func (s *Storage) Get(tag domain.ClanTag, season domain.Season) *domain.ClanStats {
	seasons, ok := s.Clans[tag]
	if !ok {
		return nil
	}
	return seasons[season]
}

// Load retrieves and deserializes the whole aggregate from the backend.
// Malformed content and backend failures both surface as errors; callers
// that want to distinguish "nothing stored yet" can check for
// domain.ErrCodeNotFound.
func Load(ctx context.Context, backend Backend) (*Storage, error) {
	content, err := backend.Load(ctx)
	if err != nil {
		return nil, err
	}
	loaded := New()
	if err := json.Unmarshal(content, loaded); err != nil {
		return nil, domain.WrapError(domain.ErrCodeMalformed, "decoding snapshot", err)
	}
	if loaded.Clans == nil {
		loaded.Clans = make(map[domain.ClanTag]map[domain.Season]*domain.ClanStats)
	}
	return loaded, nil
}

// Save serializes the whole aggregate and writes it through the backend.
func (s *Storage) Save(ctx context.Context, backend Backend) error {
	content, err := json.Marshal(s)
	if err != nil {
		return domain.WrapError(domain.ErrCodeMalformed, "encoding snapshot", err)
	}
	return backend.Write(ctx, content)
}
