package pool

import "errors"

// Sentinel errors for every kind named in the error taxonomy. Callers
// (the HTTP layer in internal/poolapi) switch on these with errors.Is.
var (
	ErrInvalidConfig             = errors.New("pool: invalid configuration")
	ErrKilled                    = errors.New("pool: operation refused, pool is killed")
	ErrInvalidIndex              = errors.New("pool: asset index out of range")
	ErrSameCoin                  = errors.New("pool: input and output asset must differ")
	ErrZeroAmount                = errors.New("pool: amount must be positive")
	ErrInitialDepositIncomplete  = errors.New("pool: first deposit must supply every asset")
	ErrInvariantDidNotGrow       = errors.New("pool: invariant did not grow after deposit")
	ErrSlippage                  = errors.New("pool: result below caller-specified minimum")
	ErrInsufficientOutput        = errors.New("pool: withdrawal amount below floor")
	ErrUnauthorized              = errors.New("pool: caller is not the pool owner")
	ErrRampTooSoon               = errors.New("pool: amp ramp started before MinRampTime elapsed")
	ErrRampTooFast               = errors.New("pool: amp ramp exceeds MaxAChangeFactor")
	ErrPendingActionExists       = errors.New("pool: a fee change is already pending")
	ErrNoPendingAction           = errors.New("pool: no fee change is pending")
	ErrDelayNotMet               = errors.New("pool: admin actions delay has not elapsed")
	ErrReentrancy                = errors.New("pool: re-entrant call rejected")
	ErrSolverUnderflow           = errors.New("pool: solver output too close to reserve boundary")
)
