package poolapi

import (
	"errors"
	"net/http"

	"github.com/atmx/stableswap-engine/internal/pool"
)

// ErrInvalidRequestBody indicates the request JSON could not be decoded.
var ErrInvalidRequestBody = errors.New("invalid request body")

// ErrPoolNotFound indicates the requested pool ID has no live engine.
var ErrPoolNotFound = errors.New("pool not found")

// statusForError maps a pool engine error (or local request error) to the
// HTTP status code it should surface as.
func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrInvalidRequestBody):
		return http.StatusBadRequest
	case errors.Is(err, ErrPoolNotFound):
		return http.StatusNotFound
	case errors.Is(err, pool.ErrInvalidConfig),
		errors.Is(err, pool.ErrInvalidIndex),
		errors.Is(err, pool.ErrSameCoin),
		errors.Is(err, pool.ErrZeroAmount),
		errors.Is(err, pool.ErrInitialDepositIncomplete),
		errors.Is(err, pool.ErrInvariantDidNotGrow),
		errors.Is(err, pool.ErrRampTooSoon),
		errors.Is(err, pool.ErrRampTooFast),
		errors.Is(err, pool.ErrPendingActionExists),
		errors.Is(err, pool.ErrNoPendingAction),
		errors.Is(err, pool.ErrDelayNotMet):
		return http.StatusBadRequest
	case errors.Is(err, pool.ErrSlippage),
		errors.Is(err, pool.ErrInsufficientOutput),
		errors.Is(err, pool.ErrSolverUnderflow):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pool.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, pool.ErrKilled):
		return http.StatusConflict
	case errors.Is(err, pool.ErrReentrancy):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
