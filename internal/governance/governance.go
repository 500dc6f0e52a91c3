// Package governance implements the time-locked fee-change schedule and
// kill switch described in spec §4.5: a pending fee change must be
// committed, then wait out a fixed delay before it can be applied, while
// the kill switch takes effect immediately and without a delay.
package governance

import (
	"errors"
	"math/big"
	"time"
)

// AdminActionsDelay is the mandatory cooldown between CommitFee and
// ApplyFee, matching the reference contract's ADMIN_ACTIONS_DELAY.
const AdminActionsDelay = 3 * 24 * time.Hour

var (
	ErrPendingActionExists = errors.New("governance: a fee change is already pending")
	ErrNoPendingAction     = errors.New("governance: no fee change is pending")
	ErrDelayNotMet         = errors.New("governance: admin actions delay has not elapsed")
	ErrUnauthorized        = errors.New("governance: caller is not the pool owner")
)

// pendingFee holds a committed-but-not-yet-applied fee change.
type pendingFee struct {
	fee       *big.Int
	adminFee  *big.Int
	deadline  time.Time
}

// Schedule tracks the current fee/adminFee pair, a single in-flight
// pending change, and the kill switch. It mirrors the struct-plus-
// constructor-plus-sentinel-errors-plus-validating-method shape used
// elsewhere in this codebase for small stateful policy types.
type Schedule struct {
	Owner    string
	Fee      *big.Int
	AdminFee *big.Int
	Killed   bool

	pending *pendingFee
}

// NewSchedule returns a schedule with the given initial fee parameters
// and no pending change.
func NewSchedule(owner string, fee, adminFee *big.Int) *Schedule {
	return &Schedule{
		Owner:    owner,
		Fee:      new(big.Int).Set(fee),
		AdminFee: new(big.Int).Set(adminFee),
	}
}

// CommitFee registers a new fee/adminFee pair to take effect after
// AdminActionsDelay. Fails if a commit is already pending or the caller
// is not the owner.
func (s *Schedule) CommitFee(caller string, fee, adminFee *big.Int, now time.Time) error {
	if caller != s.Owner {
		return ErrUnauthorized
	}
	if s.pending != nil {
		return ErrPendingActionExists
	}
	s.pending = &pendingFee{
		fee:      new(big.Int).Set(fee),
		adminFee: new(big.Int).Set(adminFee),
		deadline: now.Add(AdminActionsDelay),
	}
	return nil
}

// ApplyFee commits the pending fee change into effect, provided the
// AdminActionsDelay has elapsed since CommitFee.
func (s *Schedule) ApplyFee(now time.Time) error {
	if s.pending == nil {
		return ErrNoPendingAction
	}
	if now.Before(s.pending.deadline) {
		return ErrDelayNotMet
	}
	s.Fee = s.pending.fee
	s.AdminFee = s.pending.adminFee
	s.pending = nil
	return nil
}

// HasPendingFee reports whether a committed fee change is awaiting
// ApplyFee.
func (s *Schedule) HasPendingFee() bool {
	return s.pending != nil
}

// Kill sets the kill switch, taking effect immediately with no delay and
// no pending-action bookkeeping. Only the owner may call it.
func (s *Schedule) Kill(caller string) error {
	if caller != s.Owner {
		return ErrUnauthorized
	}
	s.Killed = true
	return nil
}

// Unkill clears the kill switch. Only the owner may call it.
func (s *Schedule) Unkill(caller string) error {
	if caller != s.Owner {
		return ErrUnauthorized
	}
	s.Killed = false
	return nil
}
