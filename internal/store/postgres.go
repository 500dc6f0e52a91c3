package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atmx/stableswap-engine/internal/model"
)

// PostgresStore implements Store using PostgreSQL as the source of
// truth. Reserve balances, supply, and fee parameters are stored as
// NUMERIC, round-tripped through TEXT to preserve exact integer values.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) CreatePool(ctx context.Context, p *model.Pool) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO pools (
			id, owner,
			asset0_symbol, asset0_decimals, asset0_ledger_address,
			asset1_symbol, asset1_decimals, asset1_ledger_address,
			asset2_symbol, asset2_decimals, asset2_ledger_address,
			balance0, balance1, balance2,
			initial_a, future_a, initial_a_time, future_a_time,
			fee, admin_fee, share_supply, killed, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,
			$12::NUMERIC,$13::NUMERIC,$14::NUMERIC,
			$15::NUMERIC,$16::NUMERIC,$17,$18,
			$19::NUMERIC,$20::NUMERIC,$21::NUMERIC,$22,$23,$23)`,
		p.ID, p.Owner,
		p.Assets[0].Symbol, p.Assets[0].Decimals, p.Assets[0].LedgerAddress,
		p.Assets[1].Symbol, p.Assets[1].Decimals, p.Assets[1].LedgerAddress,
		p.Assets[2].Symbol, p.Assets[2].Decimals, p.Assets[2].LedgerAddress,
		p.Balances[0], p.Balances[1], p.Balances[2],
		p.InitialA, p.FutureA, p.InitialTime, p.FutureTime,
		p.Fee, p.AdminFee, p.ShareSupply, p.Killed, p.CreatedAt,
	)
	return err
}

func scanPool(row pgxRow) (*model.Pool, error) {
	var p model.Pool
	var balance0, balance1, balance2 string

	err := row.Scan(
		&p.ID, &p.Owner,
		&p.Assets[0].Symbol, &p.Assets[0].Decimals, &p.Assets[0].LedgerAddress,
		&p.Assets[1].Symbol, &p.Assets[1].Decimals, &p.Assets[1].LedgerAddress,
		&p.Assets[2].Symbol, &p.Assets[2].Decimals, &p.Assets[2].LedgerAddress,
		&balance0, &balance1, &balance2,
		&p.InitialA, &p.FutureA, &p.InitialTime, &p.FutureTime,
		&p.Fee, &p.AdminFee, &p.ShareSupply, &p.Killed, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Balances = [3]string{balance0, balance1, balance2}
	return &p, nil
}

const poolColumns = `id, owner,
	asset0_symbol, asset0_decimals, asset0_ledger_address,
	asset1_symbol, asset1_decimals, asset1_ledger_address,
	asset2_symbol, asset2_decimals, asset2_ledger_address,
	balance0::TEXT, balance1::TEXT, balance2::TEXT,
	initial_a::TEXT, future_a::TEXT, initial_a_time, future_a_time,
	fee::TEXT, admin_fee::TEXT, share_supply::TEXT, killed, created_at, updated_at`

func (s *PostgresStore) GetPool(ctx context.Context, id string) (*model.Pool, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+poolColumns+` FROM pools WHERE id = $1`, id)
	p, err := scanPool(row)
	if err != nil {
		return nil, fmt.Errorf("get pool %s: %w", id, err)
	}
	return p, nil
}

func (s *PostgresStore) ListPools(ctx context.Context) ([]model.Pool, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+poolColumns+` FROM pools ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pools []model.Pool
	for rows.Next() {
		p, err := scanPool(rows)
		if err != nil {
			return nil, err
		}
		pools = append(pools, *p)
	}
	return pools, rows.Err()
}

func (s *PostgresStore) UpdatePoolState(ctx context.Context, id string, balances [3]string, shareSupply string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE pools SET balance0=$2::NUMERIC, balance1=$3::NUMERIC, balance2=$4::NUMERIC,
		 share_supply=$5::NUMERIC, updated_at=now() WHERE id=$1`,
		id, balances[0], balances[1], balances[2], shareSupply)
	return err
}

func (s *PostgresStore) UpdatePoolGovernance(ctx context.Context, id string, fee, adminFee, pendingFee, pendingAdminFee string, pendingDeadline *time.Time, killed bool) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE pools SET fee=$2::NUMERIC, admin_fee=$3::NUMERIC,
		 pending_fee=NULLIF($4,'')::NUMERIC, pending_admin_fee=NULLIF($5,'')::NUMERIC,
		 pending_deadline=$6, killed=$7, updated_at=now() WHERE id=$1`,
		id, fee, adminFee, pendingFee, pendingAdminFee, pendingDeadline, killed)
	return err
}

func (s *PostgresStore) UpdatePoolAmp(ctx context.Context, id string, initialA, futureA string, initialTime, futureTime time.Time) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE pools SET initial_a=$2::NUMERIC, future_a=$3::NUMERIC,
		 initial_a_time=$4, future_a_time=$5, updated_at=now() WHERE id=$1`,
		id, initialA, futureA, initialTime, futureTime)
	return err
}

func (s *PostgresStore) InsertPoolEvent(ctx context.Context, e *model.PoolEvent) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO pool_events (id, pool_id, type, provider, payload, timestamp)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		e.ID, e.PoolID, e.Type, e.Provider, e.Payload, e.Timestamp)
	return err
}

func (s *PostgresStore) GetPoolEvents(ctx context.Context, poolID string) ([]model.PoolEvent, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, pool_id, type, provider, payload, timestamp
		 FROM pool_events WHERE pool_id = $1 ORDER BY timestamp`, poolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.PoolEvent
	for rows.Next() {
		var e model.PoolEvent
		if err := rows.Scan(&e.ID, &e.PoolID, &e.Type, &e.Provider, &e.Payload, &e.Timestamp); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// pgxRow abstracts pgx.Row/pgx.Rows for the shared scanPool helper.
type pgxRow interface {
	Scan(dest ...interface{}) error
}
