package fixedpoint

import (
	"math/big"
	"testing"
)

func u(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad number: " + s)
	}
	return v
}

func TestComputeD_BalancedPool(t *testing.T) {
	// Three equal reserves of 1,000,000 units (canonical 18dp) should
	// converge D to (approximately) their sum, since a perfectly
	// balanced pool's invariant equals the sum of balances regardless
	// of A.
	xp := []*big.Int{
		u("1000000000000000000000000"),
		u("1000000000000000000000000"),
		u("1000000000000000000000000"),
	}
	amp := big.NewInt(100)

	d, err := ComputeD(xp, amp)
	if err != nil {
		t.Fatalf("ComputeD: %v", err)
	}

	want := u("3000000000000000000000000")
	if d.Cmp(want) != 0 {
		t.Fatalf("balanced D = %s, want %s", d, want)
	}
}

func TestComputeD_ZeroReserves(t *testing.T) {
	xp := []*big.Int{big.NewInt(0), big.NewInt(0), big.NewInt(0)}
	d, err := ComputeD(xp, big.NewInt(100))
	if err != nil {
		t.Fatalf("ComputeD: %v", err)
	}
	if d.Sign() != 0 {
		t.Fatalf("D of empty pool = %s, want 0", d)
	}
}

func TestComputeD_RejectsNonPositiveReserve(t *testing.T) {
	xp := []*big.Int{
		u("1000000000000000000000000"),
		big.NewInt(0),
		u("1000000000000000000000000"),
	}
	if _, err := ComputeD(xp, big.NewInt(100)); err != ErrNonPositiveReserve {
		t.Fatalf("expected ErrNonPositiveReserve, got %v", err)
	}
}

func TestComputeY_ConservesInvariant(t *testing.T) {
	xp := []*big.Int{
		u("1000000000000000000000000"),
		u("1000000000000000000000000"),
		u("1000000000000000000000000"),
	}
	amp := big.NewInt(100)

	d0, err := ComputeD(xp, amp)
	if err != nil {
		t.Fatalf("ComputeD: %v", err)
	}

	// Move 1000 units of asset 0 into the pool and solve for the new
	// balance of asset 1; the resulting basket should still solve to
	// (approximately) the same D.
	dx := u("1000000000000000000000")
	xNew := new(big.Int).Add(xp[0], dx)

	y, err := ComputeY(0, 1, xNew, xp, amp)
	if err != nil {
		t.Fatalf("ComputeY: %v", err)
	}
	if y.Cmp(xp[1]) >= 0 {
		t.Fatalf("expected output balance to decrease, got %s >= %s", y, xp[1])
	}

	post := []*big.Int{xNew, y, xp[2]}
	d1, err := ComputeD(post, amp)
	if err != nil {
		t.Fatalf("ComputeD post: %v", err)
	}

	tolerance := big.NewInt(2)
	if absDiff(d0, d1).Cmp(tolerance) > 0 {
		t.Fatalf("invariant drifted: D0=%s D1=%s", d0, d1)
	}
}

func TestComputeY_RejectsSameIndex(t *testing.T) {
	xp := []*big.Int{
		u("1000000000000000000000000"),
		u("1000000000000000000000000"),
		u("1000000000000000000000000"),
	}
	_, err := ComputeY(0, 0, xp[0], xp, big.NewInt(100))
	if err != ErrSameIndex {
		t.Fatalf("expected ErrSameIndex, got %v", err)
	}
}

func TestComputeY_RejectsInvalidIndex(t *testing.T) {
	xp := []*big.Int{
		u("1000000000000000000000000"),
		u("1000000000000000000000000"),
		u("1000000000000000000000000"),
	}
	_, err := ComputeY(0, 5, xp[0], xp, big.NewInt(100))
	if err != ErrInvalidIndex {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
}

func TestMultiplierAndScaling(t *testing.T) {
	mul := []*big.Int{Multiplier(18), Multiplier(6), Multiplier(6)}
	if mul[0].Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("18-decimal multiplier = %s, want 1", mul[0])
	}
	want := u("1000000000000")
	if mul[1].Cmp(want) != 0 {
		t.Fatalf("6-decimal multiplier = %s, want %s", mul[1], want)
	}

	native := []*big.Int{big.NewInt(1_000000), big.NewInt(1_000000), big.NewInt(1_000000)}
	xp := ToCanonical(native, mul)
	if xp[0].Cmp(big.NewInt(1_000000)) != 0 {
		t.Fatalf("18dp asset should pass through unscaled, got %s", xp[0])
	}
	if xp[1].Cmp(new(big.Int).Mul(big.NewInt(1_000000), mul[1])) != 0 {
		t.Fatalf("6dp asset not scaled correctly: %s", xp[1])
	}

	backNative := ToNative(xp[1], mul, 1)
	if backNative.Cmp(big.NewInt(1_000000)) != 0 {
		t.Fatalf("round-trip mismatch: %s", backNative)
	}
}
