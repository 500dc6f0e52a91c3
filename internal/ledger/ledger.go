// Package ledger defines the AssetLedger capability boundary (spec §6):
// the pool engine never touches token addresses or network I/O directly,
// only this abstract interface. A MemoryLedger implementation is
// provided for tests.
package ledger

import (
	"errors"
	"math/big"
	"sync"
)

// ErrInsufficientBalance is returned by MoveOut/BurnShares when the
// requested amount exceeds what is held or issued.
var ErrInsufficientBalance = errors.New("ledger: insufficient balance")

// AssetLedger is the external custody boundary the pool engine calls
// into for every balance-affecting operation. All amounts are native
// units (not canonical 18-decimal units).
type AssetLedger interface {
	// MoveIn pulls amount of asset i from provider into pool custody.
	// Must move exactly amount or fail — fee-on-transfer assets are out
	// of scope (spec §9).
	MoveIn(provider string, i int, amount *big.Int) error

	// MoveOut pays amount of asset i from pool custody to recipient.
	MoveOut(recipient string, i int, amount *big.Int) error

	// BalanceOf returns the pool's current native-unit custody balance
	// of asset i.
	BalanceOf(i int) *big.Int

	// MintShares credits provider with amount pool shares.
	MintShares(provider string, amount *big.Int) error

	// BurnShares debits provider's share balance by amount.
	BurnShares(provider string, amount *big.Int) error

	// ShareSupply returns the total outstanding pool shares.
	ShareSupply() *big.Int
}

// MemoryLedger is an in-memory AssetLedger used by tests and by
// internal/poolapi, which backs every pool it creates or restores with
// one. It is not safe for concurrent external use
// beyond what pool.Engine's own re-entrancy guard already serializes.
type MemoryLedger struct {
	mu       sync.Mutex
	balances []*big.Int
	shares   map[string]*big.Int
	supply   *big.Int
}

// NewMemoryLedger returns a ledger seeded with the given per-asset
// custody balances (length must equal the pool's asset count).
func NewMemoryLedger(initialBalances []*big.Int) *MemoryLedger {
	balances := make([]*big.Int, len(initialBalances))
	for i, b := range initialBalances {
		balances[i] = new(big.Int).Set(b)
	}
	return &MemoryLedger{
		balances: balances,
		shares:   make(map[string]*big.Int),
		supply:   big.NewInt(0),
	}
}

func (l *MemoryLedger) MoveIn(provider string, i int, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[i].Add(l.balances[i], amount)
	return nil
}

func (l *MemoryLedger) MoveOut(recipient string, i int, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[i].Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	l.balances[i].Sub(l.balances[i], amount)
	return nil
}

func (l *MemoryLedger) BalanceOf(i int) *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(big.Int).Set(l.balances[i])
}

func (l *MemoryLedger) MintShares(provider string, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	bal, ok := l.shares[provider]
	if !ok {
		bal = big.NewInt(0)
		l.shares[provider] = bal
	}
	bal.Add(bal, amount)
	l.supply.Add(l.supply, amount)
	return nil
}

func (l *MemoryLedger) BurnShares(provider string, amount *big.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	bal, ok := l.shares[provider]
	if !ok || bal.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	bal.Sub(bal, amount)
	l.supply.Sub(l.supply, amount)
	return nil
}

func (l *MemoryLedger) ShareSupply() *big.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return new(big.Int).Set(l.supply)
}
