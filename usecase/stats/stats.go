// Package stats is the single logical writer over the clan statistics
// aggregate. All mutation and persistence go through one UseCase
// instance, whose mutex satisfies the aggregate's single-mutator
// contract.
package stats

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/clanwatch/backend/domain"
	"github.com/clanwatch/backend/storage"
)

type UseCase struct {
	mu      sync.Mutex
	store   *storage.Storage
	backend storage.Backend
	logger  *zap.Logger
}

func New(backend storage.Backend, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		store:   storage.New(),
		backend: backend,
		logger:  logger,
	}
}

// Bootstrap loads the persisted aggregate and registers the configured
// clans. "Nothing stored yet" starts a fresh aggregate; any other load
// failure is fatal, so an unreachable store is never mistaken for an
// empty one and overwritten on the next snapshot.
func (uc *UseCase) Bootstrap(ctx context.Context, clans []domain.ClanTag) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	loaded, err := storage.Load(ctx, uc.backend)
	switch {
	case err == nil:
		uc.store = loaded
		uc.logger.Info("aggregate loaded", zap.Int("clans", len(loaded.Clans)))
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		uc.store = storage.New()
		uc.logger.Info("no snapshot found, starting empty")
	default:
		return err
	}

	for _, tag := range clans {
		uc.store.RegisterClan(tag)
	}
	return nil
}

// RegisterClan makes the tag known to the aggregate. Idempotent.
func (uc *UseCase) RegisterClan(tag domain.ClanTag) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.store.RegisterClan(tag)
}

// RecordWar stores a war's stats under its start time.
func (uc *UseCase) RecordWar(tag domain.ClanTag, season domain.Season, war *domain.WarStats) error {
	if war == nil {
		return domain.ErrInvalidPayload
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	stats := uc.store.GetOrCreate(tag, season)
	if stats == nil {
		return domain.ErrClanNotRegistered
	}
	stats.Wars[domain.EventKey(war.StartTime)] = war
	return nil
}

// RecordCWLWar appends one CWL war to the season.
func (uc *UseCase) RecordCWLWar(tag domain.ClanTag, season domain.Season, war domain.CwlWarStats) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	stats := uc.store.GetOrCreate(tag, season)
	if stats == nil {
		return domain.ErrClanNotRegistered
	}
	stats.CWL.Wars = append(stats.CWL.Wars, war)
	return nil
}

// RecordRaidWeekend stores a raid weekend's stats under its start time.
func (uc *UseCase) RecordRaidWeekend(tag domain.ClanTag, season domain.Season, raid *domain.RaidWeekendStats) error {
	if raid == nil {
		return domain.ErrInvalidPayload
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	stats := uc.store.GetOrCreate(tag, season)
	if stats == nil {
		return domain.ErrClanNotRegistered
	}
	stats.RaidWeekends[domain.EventKey(raid.StartTime)] = raid
	return nil
}

// SetGamesScore upserts a member's clan-games score for the season.
func (uc *UseCase) SetGamesScore(tag domain.ClanTag, season domain.Season, player domain.PlayerTag, games domain.PlayerGamesStats) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	stats := uc.store.GetOrCreate(tag, season)
	if stats == nil {
		return domain.ErrClanNotRegistered
	}
	stats.Games[player] = &games
	return nil
}

// SetPlayerName records a member's display name. Names define the member
// universe of Summary.
func (uc *UseCase) SetPlayerName(tag domain.ClanTag, season domain.Season, player domain.PlayerTag, name string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	stats := uc.store.GetOrCreate(tag, season)
	if stats == nil {
		return domain.ErrClanNotRegistered
	}
	stats.PlayerNames[player] = name
	return nil
}

// Summary computes the per-member season summary.
func (uc *UseCase) Summary(tag domain.ClanTag, season domain.Season) (map[domain.PlayerTag]domain.PlayerSummary, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	stats := uc.store.Get(tag, season)
	if stats == nil {
		return nil, domain.ErrSeasonNotFound
	}
	return stats.PlayersSummary(), nil
}

// SeasonStats returns a deep copy of the season bundle, safe to use
// outside the writer's lock.
func (uc *UseCase) SeasonStats(tag domain.ClanTag, season domain.Season) (*domain.ClanStats, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	stats := uc.store.Get(tag, season)
	if stats == nil {
		return nil, domain.ErrSeasonNotFound
	}
	return stats.Clone(), nil
}

// Save persists the whole aggregate through the backend.
func (uc *UseCase) Save(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.store.Save(ctx, uc.backend); err != nil {
		uc.logger.Error("saving aggregate failed", zap.Error(err))
		return err
	}
	return nil
}
