package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/atmx/stableswap-engine/internal/model"
)

// MemoryStore implements Store with in-memory maps. Used for testing and
// development. Not suitable for production (no persistence).
type MemoryStore struct {
	mu     sync.RWMutex
	pools  map[string]*model.Pool
	events []model.PoolEvent
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pools: make(map[string]*model.Pool)}
}

func (s *MemoryStore) CreatePool(_ context.Context, p *model.Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pools[p.ID]; exists {
		return fmt.Errorf("pool %s already exists", p.ID)
	}
	cp := *p
	s.pools[p.ID] = &cp
	return nil
}

func (s *MemoryStore) GetPool(_ context.Context, id string) (*model.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.pools[id]
	if !ok {
		return nil, fmt.Errorf("pool %s not found", id)
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) ListPools(_ context.Context) ([]model.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pools := make([]model.Pool, 0, len(s.pools))
	for _, p := range s.pools {
		pools = append(pools, *p)
	}
	return pools, nil
}

func (s *MemoryStore) UpdatePoolState(_ context.Context, id string, balances [3]string, shareSupply string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pools[id]
	if !ok {
		return fmt.Errorf("pool %s not found", id)
	}
	p.Balances = balances
	p.ShareSupply = shareSupply
	p.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) UpdatePoolGovernance(_ context.Context, id string, fee, adminFee, pendingFee, pendingAdminFee string, pendingDeadline *time.Time, killed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pools[id]
	if !ok {
		return fmt.Errorf("pool %s not found", id)
	}
	p.Fee = fee
	p.AdminFee = adminFee
	p.PendingFee = pendingFee
	p.PendingAdminFee = pendingAdminFee
	p.PendingDeadline = pendingDeadline
	p.Killed = killed
	return nil
}

func (s *MemoryStore) UpdatePoolAmp(_ context.Context, id string, initialA, futureA string, initialTime, futureTime time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pools[id]
	if !ok {
		return fmt.Errorf("pool %s not found", id)
	}
	p.InitialA = initialA
	p.FutureA = futureA
	p.InitialTime = initialTime
	p.FutureTime = futureTime
	return nil
}

func (s *MemoryStore) InsertPoolEvent(_ context.Context, e *model.PoolEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, *e)
	return nil
}

func (s *MemoryStore) GetPoolEvents(_ context.Context, poolID string) ([]model.PoolEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.PoolEvent
	for _, e := range s.events {
		if e.PoolID == poolID {
			out = append(out, e)
		}
	}
	return out, nil
}
