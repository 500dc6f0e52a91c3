package pool

import (
	"math/big"
	"testing"
	"time"

	"github.com/atmx/stableswap-engine/internal/amp"
	"github.com/atmx/stableswap-engine/internal/ledger"
)

func u(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad number: " + s)
	}
	return v
}

func newTestEngine(t *testing.T, now time.Time) (*Engine, *ledger.MemoryLedger) {
	t.Helper()
	l := ledger.NewMemoryLedger([]*big.Int{big.NewInt(0), big.NewInt(0), big.NewInt(0)})
	e, err := NewEngine(Config{
		ID:    "pool-1",
		Owner: "owner",
		Assets: [NCoins]Asset{
			{Symbol: "DAI", Decimals: 18, LedgerAddress: "dai"},
			{Symbol: "USDC", Decimals: 6, LedgerAddress: "usdc"},
			{Symbol: "USDT", Decimals: 6, LedgerAddress: "usdt"},
		},
		Ledger:   l,
		InitialA: big.NewInt(2000),
		Fee:      big.NewInt(4_000_000),
		AdminFee: big.NewInt(5_000_000_000),
		Now:      now,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e, l
}

func seedDeposit(t *testing.T, e *Engine, now time.Time) {
	t.Helper()
	amounts := [NCoins]*big.Int{
		u("100000000000000000000000"), // 100_000 * 1e18
		big.NewInt(100_000_000_000),   // 100_000 * 1e6
		big.NewInt(100_000_000_000),
	}
	if _, err := e.AddLiquidity("lp1", amounts, big.NewInt(0), now); err != nil {
		t.Fatalf("seed AddLiquidity: %v", err)
	}
}

func TestScenario1_InitialBalancedDeposit(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	e, l := newTestEngine(t, now)
	seedDeposit(t, e, now)

	if l.ShareSupply().Sign() <= 0 {
		t.Fatalf("expected positive share supply")
	}
	vp, err := e.VirtualPrice(now)
	if err != nil {
		t.Fatalf("VirtualPrice: %v", err)
	}
	if vp.Cmp(u("1000000000000000000")) != 0 {
		t.Fatalf("virtual price = %s, want 1e18", vp)
	}

	bal := e.Balances()
	want := [NCoins]*big.Int{u("100000000000000000000000"), big.NewInt(100_000_000_000), big.NewInt(100_000_000_000)}
	for i := range bal {
		if bal[i].Cmp(want[i]) != 0 {
			t.Fatalf("balances[%d] = %s, want %s", i, bal[i], want[i])
		}
	}
}

func TestScenario2_ImbalancedDepositAfterSeed(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	e, l := newTestEngine(t, now)
	seedDeposit(t, e, now)

	supplyBefore := l.ShareSupply()

	amounts := [NCoins]*big.Int{u("10000000000000000000000"), big.NewInt(0), big.NewInt(0)}
	mint, err := e.AddLiquidity("lp2", amounts, big.NewInt(0), now)
	if err != nil {
		t.Fatalf("AddLiquidity: %v", err)
	}
	if mint.Sign() <= 0 {
		t.Fatalf("expected positive mint")
	}

	// proportional mint ignoring fees would be supply * 10_000e18 / (3*100_000e18)
	proportional := new(big.Int).Mul(supplyBefore, u("10000000000000000000000"))
	proportional.Div(proportional, u("300000000000000000000000"))
	if mint.Cmp(proportional) >= 0 {
		t.Fatalf("expected imbalance fee to reduce mint below proportional share: mint=%s proportional=%s", mint, proportional)
	}

	vp, err := e.VirtualPrice(now)
	if err != nil {
		t.Fatalf("VirtualPrice: %v", err)
	}
	if vp.Cmp(u("1000000000000000000")) <= 0 {
		t.Fatalf("expected virtual price to strictly increase, got %s", vp)
	}
}

func TestScenario3_SmallSwap(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	e, _ := newTestEngine(t, now)
	seedDeposit(t, e, now)

	dx := u("1000000000000000000000") // 1_000 * 1e18
	out, err := e.Exchange("trader", 0, 1, dx, big.NewInt(0), now)
	if err != nil {
		t.Fatalf("Exchange: %v", err)
	}

	low := big.NewInt(999_000_000)
	high := big.NewInt(999_600_000)
	if out.Cmp(low) < 0 || out.Cmp(high) > 0 {
		t.Fatalf("swap output %s out of expected range [%s, %s]", out, low, high)
	}

	maxOut := new(big.Int).Div(dx, big.NewInt(1_000_000_000_000))
	if out.Cmp(maxOut) > 0 {
		t.Fatalf("output %s exceeds dx/1e12 bound %s", out, maxOut)
	}

	if e.AdminBalance(1).Sign() <= 0 {
		t.Fatalf("expected admin balance for asset 1 to increase")
	}
}

func TestScenario4_LargeSwapSlippageMonotonicity(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	e, _ := newTestEngine(t, now)
	seedDeposit(t, e, now)

	small := u("1000000000000000000000")    // 1_000 * 1e18
	large := u("100000000000000000000000") // 100_000 * 1e18

	outSmall, err := e.Quote(0, 1, small, now)
	if err != nil {
		t.Fatalf("Quote small: %v", err)
	}
	outLarge, err := e.Quote(0, 1, large, now)
	if err != nil {
		t.Fatalf("Quote large: %v", err)
	}

	// per-unit rate = out * 1e18 / dx; compare cross-multiplied to avoid
	// fractional loss: outSmall/small > outLarge/large
	lhs := new(big.Int).Mul(outSmall, large)
	rhs := new(big.Int).Mul(outLarge, small)
	if lhs.Cmp(rhs) <= 0 {
		t.Fatalf("expected small-swap rate to exceed large-swap rate: outSmall=%s outLarge=%s", outSmall, outLarge)
	}
}

func TestScenario5_ProportionalWithdrawalUnderKill(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	e, l := newTestEngine(t, now)
	seedDeposit(t, e, now)

	if err := e.Kill("owner"); err != nil {
		t.Fatalf("Kill: %v", err)
	}

	if _, err := e.Exchange("trader", 0, 1, big.NewInt(1), big.NewInt(0), now); err != ErrKilled {
		t.Fatalf("expected ErrKilled from Exchange, got %v", err)
	}
	if _, err := e.AddLiquidity("lp", [NCoins]*big.Int{big.NewInt(1), big.NewInt(0), big.NewInt(0)}, big.NewInt(0), now); err != ErrKilled {
		t.Fatalf("expected ErrKilled from AddLiquidity, got %v", err)
	}

	supply := l.ShareSupply()
	half := new(big.Int).Div(supply, big.NewInt(2))

	amounts, err := e.RemoveLiquidity("lp1", half, [NCoins]*big.Int{big.NewInt(0), big.NewInt(0), big.NewInt(0)})
	if err != nil {
		t.Fatalf("RemoveLiquidity under kill: %v", err)
	}

	wantDAI := u("50000000000000000000000")
	tolerance := big.NewInt(1)
	if new(big.Int).Abs(new(big.Int).Sub(amounts[0], wantDAI)).Cmp(tolerance) > 0 {
		t.Fatalf("amounts[0] = %s, want ~%s", amounts[0], wantDAI)
	}
}

func TestScenario6_AmpRampInterpolation(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	e, _ := newTestEngine(t, now)
	seedDeposit(t, e, now)

	rampStart := now.Add(amp.MinRampTime + time.Second)
	futureTime := rampStart.Add(86400 * time.Second)

	if err := e.RampA("owner", big.NewInt(4000), futureTime, rampStart); err != nil {
		t.Fatalf("RampA: %v", err)
	}

	mid := rampStart.Add(43200 * time.Second)
	a := e.A(mid)
	if a.Cmp(big.NewInt(2000)) <= 0 || a.Cmp(big.NewInt(4000)) >= 0 {
		t.Fatalf("A at midpoint = %s, want strictly between 2000 and 4000", a)
	}

	if got := e.A(futureTime); got.Cmp(big.NewInt(4000)) != 0 {
		t.Fatalf("A at future time = %s, want 4000", got)
	}

	if err := e.RampA("owner", big.NewInt(4000*amp.MaxAChangeFactor+1), futureTime.Add(2*86400*time.Second), futureTime); err != ErrRampTooFast {
		t.Fatalf("expected ErrRampTooFast, got %v", err)
	}
}

func TestScenario7_FeeGovernanceTimelock(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	e, _ := newTestEngine(t, now)
	seedDeposit(t, e, now)

	if err := e.CommitFee("owner", big.NewInt(2_000_000), big.NewInt(6_000_000_000), now); err != nil {
		t.Fatalf("CommitFee: %v", err)
	}

	if err := e.ApplyFee(now.Add(time.Hour)); err != ErrDelayNotMet {
		t.Fatalf("expected ErrDelayNotMet, got %v", err)
	}

	deadline := now.Add(3 * 86400 * time.Second)
	if err := e.ApplyFee(deadline); err != nil {
		t.Fatalf("ApplyFee after delay: %v", err)
	}

	if err := e.CommitFee("owner", big.NewInt(1_000_000), big.NewInt(0), deadline); err != nil {
		t.Fatalf("expected CommitFee to succeed again after apply: %v", err)
	}
}

func TestReentrancyRejected(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	e, _ := newTestEngine(t, now)
	seedDeposit(t, e, now)

	if err := e.acquire(); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer e.release()

	if _, err := e.Exchange("trader", 0, 1, big.NewInt(1), big.NewInt(0), now); err != ErrReentrancy {
		t.Fatalf("expected ErrReentrancy for nested entry, got %v", err)
	}
}

func TestExchangeRejectsSameCoinAndInvalidIndex(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	e, _ := newTestEngine(t, now)
	seedDeposit(t, e, now)

	if _, err := e.Exchange("trader", 0, 0, big.NewInt(1), big.NewInt(0), now); err != ErrSameCoin {
		t.Fatalf("expected ErrSameCoin, got %v", err)
	}
	if _, err := e.Exchange("trader", 0, 5, big.NewInt(1), big.NewInt(0), now); err != ErrInvalidIndex {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
	if _, err := e.Exchange("trader", 0, 1, big.NewInt(0), big.NewInt(0), now); err != ErrZeroAmount {
		t.Fatalf("expected ErrZeroAmount, got %v", err)
	}
}

func TestRemoveLiquidityImbalanceAndOneCoin(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	e, _ := newTestEngine(t, now)
	seedDeposit(t, e, now)

	amounts := [NCoins]*big.Int{u("1000000000000000000000"), big.NewInt(0), big.NewInt(0)}
	burn, err := e.RemoveLiquidityImbalance("lp1", amounts, u("100000000000000000000000"), now)
	if err != nil {
		t.Fatalf("RemoveLiquidityImbalance: %v", err)
	}
	if burn.Sign() <= 0 {
		t.Fatalf("expected positive burn")
	}

	out, err := e.RemoveLiquidityOneCoin("lp1", u("1000000000000000000000"), 1, big.NewInt(0), now)
	if err != nil {
		t.Fatalf("RemoveLiquidityOneCoin: %v", err)
	}
	if out.Sign() <= 0 {
		t.Fatalf("expected positive one-coin payout")
	}
}

func TestWithdrawAdminFeesOwnerOnly(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	e, _ := newTestEngine(t, now)
	seedDeposit(t, e, now)

	if _, err := e.Exchange("trader", 0, 1, u("1000000000000000000000"), big.NewInt(0), now); err != nil {
		t.Fatalf("Exchange: %v", err)
	}

	if err := e.WithdrawAdminFees("not-owner"); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := e.WithdrawAdminFees("owner"); err != nil {
		t.Fatalf("WithdrawAdminFees: %v", err)
	}
	if e.AdminBalance(1).Sign() != 0 {
		t.Fatalf("expected admin balance to be swept to zero")
	}
}
