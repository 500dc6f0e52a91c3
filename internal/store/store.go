// Package store defines the persistence interface for the pool engine.
// PostgreSQL is the source of truth; Redis provides an optional
// read-through cache layer; an in-memory implementation backs tests.
package store

import (
	"context"
	"time"

	"github.com/atmx/stableswap-engine/internal/model"
)

// Store is the persistence interface for pool configuration, running
// state, and the append-only event log.
type Store interface {
	// CreatePool persists a newly constructed pool.
	CreatePool(ctx context.Context, p *model.Pool) error

	// GetPool retrieves a pool by its ID.
	GetPool(ctx context.Context, id string) (*model.Pool, error)

	// ListPools returns every pool.
	ListPools(ctx context.Context) ([]model.Pool, error)

	// UpdatePoolState persists new reserve balances and share supply
	// after a deposit, withdrawal, or swap.
	UpdatePoolState(ctx context.Context, id string, balances [3]string, shareSupply string) error

	// UpdatePoolGovernance persists a fee commit/apply or kill/unkill
	// transition.
	UpdatePoolGovernance(ctx context.Context, id string, fee, adminFee, pendingFee, pendingAdminFee string, pendingDeadline *time.Time, killed bool) error

	// UpdatePoolAmp persists a ramp start or stop.
	UpdatePoolAmp(ctx context.Context, id string, initialA, futureA string, initialTime, futureTime time.Time) error

	// InsertPoolEvent appends an immutable event record.
	InsertPoolEvent(ctx context.Context, e *model.PoolEvent) error

	// GetPoolEvents returns all events for a pool, oldest first.
	GetPoolEvents(ctx context.Context, poolID string) ([]model.PoolEvent, error)
}
