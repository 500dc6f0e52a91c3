package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/atmx/stableswap-engine/internal/model"
)

// CachedStore wraps a primary Store (PostgreSQL) with a Redis
// read-through cache. Writes go to the primary store; CreatePool then
// caches the new pool and the Update* methods invalidate its entry.
// Only GetPool reads Redis first and falls back to the primary;
// ListPools and GetPoolEvents always go to the primary. The cache holds
// the persisted configuration/state snapshot, never the engine's
// in-memory math.
type CachedStore struct {
	primary Store
	rdb     *redis.Client
	ttl     time.Duration
}

// NewCachedStore creates a cached wrapper around a primary store.
func NewCachedStore(primary Store, rdb *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{primary: primary, rdb: rdb, ttl: ttl}
}

// --- Write-through (write to primary, invalidate cache) ---

func (s *CachedStore) CreatePool(ctx context.Context, p *model.Pool) error {
	if err := s.primary.CreatePool(ctx, p); err != nil {
		return err
	}
	s.cachePool(ctx, p)
	return nil
}

func (s *CachedStore) UpdatePoolState(ctx context.Context, id string, balances [3]string, shareSupply string) error {
	if err := s.primary.UpdatePoolState(ctx, id, balances, shareSupply); err != nil {
		return err
	}
	s.rdb.Del(ctx, poolKey(id))
	return nil
}

func (s *CachedStore) UpdatePoolGovernance(ctx context.Context, id string, fee, adminFee, pendingFee, pendingAdminFee string, pendingDeadline *time.Time, killed bool) error {
	if err := s.primary.UpdatePoolGovernance(ctx, id, fee, adminFee, pendingFee, pendingAdminFee, pendingDeadline, killed); err != nil {
		return err
	}
	s.rdb.Del(ctx, poolKey(id))
	return nil
}

func (s *CachedStore) UpdatePoolAmp(ctx context.Context, id string, initialA, futureA string, initialTime, futureTime time.Time) error {
	if err := s.primary.UpdatePoolAmp(ctx, id, initialA, futureA, initialTime, futureTime); err != nil {
		return err
	}
	s.rdb.Del(ctx, poolKey(id))
	return nil
}

func (s *CachedStore) InsertPoolEvent(ctx context.Context, e *model.PoolEvent) error {
	return s.primary.InsertPoolEvent(ctx, e)
}

// --- Read-through (check cache first) ---

func (s *CachedStore) GetPool(ctx context.Context, id string) (*model.Pool, error) {
	data, err := s.rdb.Get(ctx, poolKey(id)).Bytes()
	if err == nil {
		var p model.Pool
		if json.Unmarshal(data, &p) == nil {
			return &p, nil
		}
	}

	p, err := s.primary.GetPool(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cachePool(ctx, p)
	return p, nil
}

// --- Passthrough (not cached: unbounded/listing queries) ---

func (s *CachedStore) ListPools(ctx context.Context) ([]model.Pool, error) {
	return s.primary.ListPools(ctx)
}

func (s *CachedStore) GetPoolEvents(ctx context.Context, poolID string) ([]model.PoolEvent, error) {
	return s.primary.GetPoolEvents(ctx, poolID)
}

// --- Cache helpers ---

func (s *CachedStore) cachePool(ctx context.Context, p *model.Pool) {
	if data, err := json.Marshal(p); err == nil {
		s.rdb.Set(ctx, poolKey(p.ID), data, s.ttl)
	}
}

func poolKey(id string) string { return fmt.Sprintf("pool:%s", id) }
