// Package amp implements the amplification-coefficient ramp described in
// spec §4.4: a linear interpolation between an initial and future A over
// a bounded time window, with rate-of-change and cooldown limits on
// starting a new ramp.
package amp

import (
	"errors"
	"math/big"
	"time"
)

// Bounds on the amplification coefficient and on how fast it may change,
// matching the reference StableSwap contract.
const (
	MinA = 1
	MaxA = 1_000_000

	// MaxAChangeFactor bounds how far a new ramp target may move the
	// coefficient relative to the current one, in either direction.
	MaxAChangeFactor = 10

	// MinRampTime is the cooldown between the start of one ramp and the
	// start of the next.
	MinRampTime = 24 * time.Hour
)

var (
	ErrInvalidA         = errors.New("amp: A out of bounds")
	ErrRampTooSoon       = errors.New("amp: ramp started before MinRampTime elapsed")
	ErrRampTooFast       = errors.New("amp: target A exceeds MaxAChangeFactor of current A")
	ErrRampWindowTooShort = errors.New("amp: ramp duration shorter than MinRampTime")
)

// Schedule tracks a StableSwap amplification ramp: a straight line from
// (initialTime, initialA) to (futureTime, futureA). Effective(now) before
// initialTime or after futureTime clamps to the corresponding endpoint.
type Schedule struct {
	InitialA    *big.Int
	FutureA     *big.Int
	InitialTime time.Time
	FutureTime  time.Time
}

// NewSchedule returns a schedule with no ramp in progress: both endpoints
// equal to the given initial A, anchored at t.
func NewSchedule(initialA *big.Int, t time.Time) (*Schedule, error) {
	if initialA.Sign() <= 0 || initialA.Cmp(big.NewInt(MaxA)) >= 0 {
		return nil, ErrInvalidA
	}
	return &Schedule{
		InitialA:    new(big.Int).Set(initialA),
		FutureA:     new(big.Int).Set(initialA),
		InitialTime: t,
		FutureTime:  t,
	}, nil
}

// Effective returns the interpolated A at time t. Linear interpolation
// runs in both directions (A increasing or decreasing); once t passes
// FutureTime, Effective clamps at FutureA.
func (s *Schedule) Effective(t time.Time) *big.Int {
	if !t.After(s.InitialTime) {
		return new(big.Int).Set(s.InitialA)
	}
	if !t.Before(s.FutureTime) {
		return new(big.Int).Set(s.FutureA)
	}

	elapsed := big.NewInt(t.Unix() - s.InitialTime.Unix())
	total := big.NewInt(s.FutureTime.Unix() - s.InitialTime.Unix())

	if s.FutureA.Cmp(s.InitialA) >= 0 {
		delta := new(big.Int).Sub(s.FutureA, s.InitialA)
		delta.Mul(delta, elapsed)
		delta.Div(delta, total)
		return delta.Add(delta, s.InitialA)
	}

	delta := new(big.Int).Sub(s.InitialA, s.FutureA)
	delta.Mul(delta, elapsed)
	delta.Div(delta, total)
	return new(big.Int).Sub(s.InitialA, delta)
}

// RampTo begins a new ramp toward futureA, completing at futureTime. It
// enforces the MinRampTime cooldown since the last ramp start, the
// minimum ramp duration, and the MaxAChangeFactor bound in both
// directions, exactly as the reference contract's rampA does.
func (s *Schedule) RampTo(futureA *big.Int, futureTime time.Time, now time.Time) error {
	if futureA.Sign() <= 0 || futureA.Cmp(big.NewInt(MaxA)) >= 0 {
		return ErrInvalidA
	}
	if now.Sub(s.InitialTime) < MinRampTime {
		return ErrRampTooSoon
	}
	if futureTime.Sub(now) < MinRampTime {
		return ErrRampWindowTooShort
	}

	currentA := s.Effective(now)
	maxChange := big.NewInt(MaxAChangeFactor)

	if futureA.Cmp(currentA) <= 0 {
		// Decreasing: currentA / MaxAChangeFactor must not exceed futureA.
		bound := new(big.Int).Div(currentA, maxChange)
		if futureA.Cmp(bound) < 0 {
			return ErrRampTooFast
		}
	} else {
		// Increasing: futureA must not exceed currentA * MaxAChangeFactor.
		bound := new(big.Int).Mul(currentA, maxChange)
		if futureA.Cmp(bound) > 0 {
			return ErrRampTooFast
		}
	}

	s.InitialA = currentA
	s.FutureA = new(big.Int).Set(futureA)
	s.InitialTime = now
	s.FutureTime = futureTime
	return nil
}

// Stop freezes the schedule at its current effective value, cancelling
// any ramp in progress.
func (s *Schedule) Stop(now time.Time) {
	current := s.Effective(now)
	s.InitialA = current
	s.FutureA = new(big.Int).Set(current)
	s.InitialTime = now
	s.FutureTime = now
}
