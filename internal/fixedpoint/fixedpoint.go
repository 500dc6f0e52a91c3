// Package fixedpoint implements the StableSwap bonding-curve Newton
// solvers over unsigned, arbitrary-width integers.
//
// All values are non-negative *big.Int in canonical 18-decimal fixed
// point. Division is Go's big.Int.Div — floor/truncating — and the
// multiplication order in ComputeD and ComputeY is exactly as specified:
// reassociating these expressions changes the truncation contract and
// must not be done.
//
// Reference: the StableSwap invariant (Egorov, "StableSwap - efficient
// mechanism for Stablecoin liquidity", 2019).
package fixedpoint

import (
	"errors"
	"math/big"
)

// NCoins is the fixed basket size this engine supports.
const NCoins = 3

// MaxIterations bounds the Newton iteration for both solvers.
const MaxIterations = 255

var (
	// ErrDidNotConverge is returned if a solver fails to reach the
	// 1-unit convergence tolerance within MaxIterations. Unreachable for
	// realistic pool states; indicates corrupted reserves.
	ErrDidNotConverge = errors.New("fixedpoint: solver did not converge")

	// ErrSameIndex is returned when ComputeY is called with i == j.
	ErrSameIndex = errors.New("fixedpoint: input and output index must differ")

	// ErrInvalidIndex is returned when an asset index is out of range.
	ErrInvalidIndex = errors.New("fixedpoint: asset index out of range")

	// ErrNonPositiveReserve is returned when a canonical balance is zero
	// or negative where the solver requires strict positivity.
	ErrNonPositiveReserve = errors.New("fixedpoint: reserve must be positive")
)

var (
	big0 = big.NewInt(0)
	big1 = big.NewInt(1)
	big2 = big.NewInt(2)
	bigN = big.NewInt(NCoins)
)

// Multiplier returns the precision multiplier that converts a balance
// with the given native decimal count into 18-decimal canonical units.
func Multiplier(nativeDecimals int) *big.Int {
	diff := 18 - nativeDecimals
	if diff <= 0 {
		return big.NewInt(1)
	}
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(diff)), nil)
}

// ToCanonical scales native-unit balances into canonical units using the
// per-asset multipliers: xp[i] = balance[i] * mul[i].
func ToCanonical(balances []*big.Int, mul []*big.Int) []*big.Int {
	xp := make([]*big.Int, len(balances))
	for i, b := range balances {
		xp[i] = new(big.Int).Mul(b, mul[i])
	}
	return xp
}

// ToNative floor-divides a canonical amount back into native units for
// asset i.
func ToNative(canonical *big.Int, mul []*big.Int, i int) *big.Int {
	return new(big.Int).Div(canonical, mul[i])
}

// sum returns the sum of a canonical balance vector.
func sum(xp []*big.Int) *big.Int {
	s := new(big.Int)
	for _, v := range xp {
		s.Add(s, v)
	}
	return s
}

// absDiff returns |a - b|.
func absDiff(a, b *big.Int) *big.Int {
	d := new(big.Int).Sub(a, b)
	return d.Abs(d)
}

// ComputeD solves the StableSwap invariant D for the canonical balance
// vector xp under amplification A. See spec §4.1.
//
// D_P is recomputed from scratch each iteration by walking all N assets;
// the multiplication-before-division order (D_P * D / (xp[i] * N)) must
// not be reassociated — it encodes the rounding contract.
func ComputeD(xp []*big.Int, amp *big.Int) (*big.Int, error) {
	s := sum(xp)
	if s.Sign() == 0 {
		return big.NewInt(0), nil
	}

	ann := new(big.Int).Mul(amp, bigN)
	d := new(big.Int).Set(s)

	for iter := 0; iter < MaxIterations; iter++ {
		dP := new(big.Int).Set(d)
		for _, x := range xp {
			if x.Sign() <= 0 {
				return nil, ErrNonPositiveReserve
			}
			denom := new(big.Int).Mul(x, bigN)
			dP.Div(dP.Mul(dP, d), denom)
		}

		dPrev := new(big.Int).Set(d)

		// D_next = ((Ann*S + D_P*N) * D) / ((Ann-1)*D + (N+1)*D_P)
		numer := new(big.Int).Add(
			new(big.Int).Mul(ann, s),
			new(big.Int).Mul(dP, bigN),
		)
		numer.Mul(numer, d)

		annMinus1 := new(big.Int).Sub(ann, big1)
		nPlus1 := big.NewInt(NCoins + 1)
		denom := new(big.Int).Add(
			new(big.Int).Mul(annMinus1, d),
			new(big.Int).Mul(nPlus1, dP),
		)

		d = new(big.Int).Div(numer, denom)

		if absDiff(d, dPrev).Cmp(big1) <= 0 {
			return d, nil
		}
	}
	return nil, ErrDidNotConverge
}

// ComputeY solves for the new canonical balance of output asset j given
// that input asset i has become xNew and all other assets remain as in
// xp. See spec §4.2.
func ComputeY(i, j int, xNew *big.Int, xp []*big.Int, amp *big.Int) (*big.Int, error) {
	if i == j {
		return nil, ErrSameIndex
	}
	if i < 0 || i >= len(xp) || j < 0 || j >= len(xp) {
		return nil, ErrInvalidIndex
	}

	d, err := ComputeD(xp, amp)
	if err != nil {
		return nil, err
	}

	ann := new(big.Int).Mul(amp, bigN)
	c := new(big.Int).Set(d)
	sPrime := big.NewInt(0)

	for k := range xp {
		var v *big.Int
		switch {
		case k == i:
			v = xNew
		case k == j:
			continue
		default:
			v = xp[k]
		}
		sPrime.Add(sPrime, v)
		denom := new(big.Int).Mul(v, bigN)
		c.Div(c.Mul(c, d), denom)
	}

	c.Div(c.Mul(c, d), new(big.Int).Mul(ann, bigN))

	b := new(big.Int).Add(sPrime, new(big.Int).Div(d, ann))

	y := new(big.Int).Set(d)
	for iter := 0; iter < MaxIterations; iter++ {
		yPrev := new(big.Int).Set(y)

		numer := new(big.Int).Add(new(big.Int).Mul(y, y), c)
		denom := new(big.Int).Add(new(big.Int).Mul(big2, y), b)
		denom.Sub(denom, d)
		y = new(big.Int).Div(numer, denom)

		if absDiff(y, yPrev).Cmp(big1) <= 0 {
			return y, nil
		}
	}
	return nil, ErrDidNotConverge
}

// ComputeYD solves for the canonical balance of asset i that reproduces
// the given invariant D while holding every other asset in xp fixed. It
// is the twin of ComputeY used by one-coin withdrawal, where D is a
// target (already discounted by the shares being burned) rather than
// recomputed from xp.
func ComputeYD(i int, xp []*big.Int, d *big.Int, amp *big.Int) (*big.Int, error) {
	if i < 0 || i >= len(xp) {
		return nil, ErrInvalidIndex
	}

	ann := new(big.Int).Mul(amp, bigN)
	c := new(big.Int).Set(d)
	s := big.NewInt(0)

	for k, v := range xp {
		if k == i {
			continue
		}
		if v.Sign() <= 0 {
			return nil, ErrNonPositiveReserve
		}
		s.Add(s, v)
		denom := new(big.Int).Mul(v, bigN)
		c.Div(c.Mul(c, d), denom)
	}

	c.Div(c.Mul(c, d), new(big.Int).Mul(ann, bigN))

	b := new(big.Int).Add(s, new(big.Int).Div(d, ann))

	y := new(big.Int).Set(d)
	for iter := 0; iter < MaxIterations; iter++ {
		yPrev := new(big.Int).Set(y)

		numer := new(big.Int).Add(new(big.Int).Mul(y, y), c)
		denom := new(big.Int).Add(new(big.Int).Mul(big2, y), b)
		denom.Sub(denom, d)
		y = new(big.Int).Div(numer, denom)

		if absDiff(y, yPrev).Cmp(big1) <= 0 {
			return y, nil
		}
	}
	return nil, ErrDidNotConverge
}
