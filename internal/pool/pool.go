// Package pool implements PoolEngine and PoolState: the orchestration
// layer that reads AmpSchedule/GovernanceSchedule, scales through
// FixedPointMath, applies FeeMath, and drives an external AssetLedger to
// perform deposits, withdrawals, swaps, and parameter governance on a
// fixed 3-asset StableSwap pool.
package pool

import (
	"math/big"
	"sync/atomic"
	"time"

	"github.com/atmx/stableswap-engine/internal/amp"
	"github.com/atmx/stableswap-engine/internal/feemath"
	"github.com/atmx/stableswap-engine/internal/fixedpoint"
	"github.com/atmx/stableswap-engine/internal/governance"
	"github.com/atmx/stableswap-engine/internal/ledger"
)

// NCoins is the fixed basket size this engine supports.
const NCoins = fixedpoint.NCoins

// MaxFee and MaxAdminFee bound the fee parameters a pool may be
// constructed or governed with, against feemath.FeeDenominator (1e10):
// MaxFee is 50%, MaxAdminFee is 100% of collected trading fees.
const (
	MaxFee      = 5_000_000_000
	MaxAdminFee = 10_000_000_000
)

var precision = big.NewInt(1_000_000_000_000_000_000)

// Asset describes one of the pool's three reserves: its native decimal
// count (used to derive the precision multiplier) and an opaque ledger
// handle the engine never interprets.
type Asset struct {
	Symbol        string
	Decimals      int
	LedgerAddress string
}

// Config is the validated constructor input for a new Engine.
type Config struct {
	ID       string
	Owner    string
	Assets   [NCoins]Asset
	Ledger   ledger.AssetLedger
	InitialA *big.Int
	Fee      *big.Int
	AdminFee *big.Int
	Now      time.Time
	Sink     Sink
}

// Engine is a single pool's orchestration surface: PoolState plus every
// operation in §4.6. It is safe to call concurrently — mutating
// operations serialize behind a busy flag that rejects re-entrant calls
// with ErrReentrancy instead of blocking.
type Engine struct {
	id    string
	owner string

	assets [NCoins]Asset
	mul    [NCoins]*big.Int

	balances [NCoins]*big.Int

	amp *amp.Schedule
	gov *governance.Schedule

	ledger ledger.AssetLedger
	sink   Sink

	busy atomic.Bool
}

// NewEngine validates cfg and returns a freshly constructed pool with
// zero balances. No deposit has been made; the first AddLiquidity call
// must supply every asset (§4.6 InitialDepositIncomplete).
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Owner == "" || cfg.Ledger == nil {
		return nil, ErrInvalidConfig
	}
	for _, a := range cfg.Assets {
		if a.Symbol == "" || a.Decimals <= 0 || a.Decimals > 18 {
			return nil, ErrInvalidConfig
		}
	}
	if cfg.InitialA == nil || cfg.InitialA.Sign() <= 0 || cfg.InitialA.Cmp(big.NewInt(amp.MaxA)) >= 0 {
		return nil, ErrInvalidConfig
	}
	if cfg.Fee == nil || cfg.Fee.Sign() < 0 || cfg.Fee.Cmp(big.NewInt(MaxFee)) > 0 {
		return nil, ErrInvalidConfig
	}
	if cfg.AdminFee == nil || cfg.AdminFee.Sign() < 0 || cfg.AdminFee.Cmp(big.NewInt(MaxAdminFee)) > 0 {
		return nil, ErrInvalidConfig
	}

	schedule, err := amp.NewSchedule(cfg.InitialA, cfg.Now)
	if err != nil {
		return nil, ErrInvalidConfig
	}

	sink := cfg.Sink
	if sink == nil {
		sink = noopSink{}
	}

	e := &Engine{
		id:     cfg.ID,
		owner:  cfg.Owner,
		assets: cfg.Assets,
		ledger: cfg.Ledger,
		sink:   sink,
		amp:    schedule,
		gov:    governance.NewSchedule(cfg.Owner, cfg.Fee, cfg.AdminFee),
	}
	for i, a := range cfg.Assets {
		e.mul[i] = fixedpoint.Multiplier(a.Decimals)
		e.balances[i] = big.NewInt(0)
	}
	return e, nil
}

func (e *Engine) acquire() error {
	if !e.busy.CompareAndSwap(false, true) {
		return ErrReentrancy
	}
	return nil
}

func (e *Engine) release() {
	e.busy.Store(false)
}

func (e *Engine) toCanonical(bal [NCoins]*big.Int) []*big.Int {
	native := make([]*big.Int, NCoins)
	copy(native, bal[:])
	mul := make([]*big.Int, NCoins)
	copy(mul, e.mul[:])
	return fixedpoint.ToCanonical(native, mul)
}

func (e *Engine) toNative(canonical *big.Int, i int) *big.Int {
	return fixedpoint.ToNative(canonical, e.mul[:], i)
}

func (e *Engine) emit(ev *Event) {
	e.sink.Emit(ev)
}

// ID returns the pool's identifier.
func (e *Engine) ID() string { return e.id }

// Balances returns a snapshot copy of the current native-unit balances.
func (e *Engine) Balances() [NCoins]*big.Int {
	var out [NCoins]*big.Int
	for i, b := range e.balances {
		out[i] = new(big.Int).Set(b)
	}
	return out
}

// Killed reports the pool's kill-switch state.
func (e *Engine) Killed() bool { return e.gov.Killed }

// ShareSupply returns the total outstanding pool shares.
func (e *Engine) ShareSupply() *big.Int { return e.ledger.ShareSupply() }

// Fee returns the currently active trading fee.
func (e *Engine) Fee() *big.Int { return new(big.Int).Set(e.gov.Fee) }

// AdminFee returns the currently active admin-fee split.
func (e *Engine) AdminFee() *big.Int { return new(big.Int).Set(e.gov.AdminFee) }

// A returns the effective amplification coefficient at t.
func (e *Engine) A(t time.Time) *big.Int { return e.amp.Effective(t) }

// ---- deposit ----

// depositPlan is the pure-computation result of evaluating a deposit; it
// touches neither the ledger nor engine state, so both AddLiquidity and
// QuoteShare can share it.
type depositPlan struct {
	finalBalances [NCoins]*big.Int
	mint          *big.Int
	d1            *big.Int
}

func (e *Engine) planDeposit(oldBal [NCoins]*big.Int, amounts [NCoins]*big.Int, supply *big.Int, ampVal *big.Int) (*depositPlan, error) {
	oldXp := e.toCanonical(oldBal)

	var d0 *big.Int
	var err error
	if supply.Sign() == 0 {
		d0 = big.NewInt(0)
		for _, a := range amounts {
			if a.Sign() <= 0 {
				return nil, ErrInitialDepositIncomplete
			}
		}
	} else {
		d0, err = fixedpoint.ComputeD(oldXp, ampVal)
		if err != nil {
			return nil, err
		}
	}

	var newBal [NCoins]*big.Int
	for i := range newBal {
		newBal[i] = new(big.Int).Add(oldBal[i], amounts[i])
	}
	newXp := e.toCanonical(newBal)

	d1, err := fixedpoint.ComputeD(newXp, ampVal)
	if err != nil {
		return nil, err
	}
	if d1.Cmp(d0) <= 0 {
		return nil, ErrInvariantDidNotGrow
	}

	var finalBal [NCoins]*big.Int
	var d2 *big.Int

	if supply.Sign() > 0 {
		imbalanceRate := feemath.ImbalanceFeeRate(e.gov.Fee)
		bookXp := make([]*big.Int, NCoins)
		finalXp := make([]*big.Int, NCoins)
		for i := range newXp {
			ideal := feemath.IdealBalance(d1, oldXp[i], d0)
			deviation := feemath.Deviation(newXp[i], ideal)
			feeC := feemath.ChargeOnDeviation(imbalanceRate, deviation)
			adminC := feemath.AdminPortion(feeC, e.gov.AdminFee)
			bookXp[i] = new(big.Int).Sub(newXp[i], feeC)
			finalXp[i] = new(big.Int).Sub(newXp[i], adminC)
		}
		d2, err = fixedpoint.ComputeD(bookXp, ampVal)
		if err != nil {
			return nil, err
		}
		for i := range finalBal {
			finalBal[i] = e.toNative(finalXp[i], i)
		}
	} else {
		d2 = d1
		finalBal = newBal
	}

	var mint *big.Int
	if supply.Sign() == 0 {
		mint = new(big.Int).Set(d1)
	} else {
		mint = new(big.Int).Mul(supply, new(big.Int).Sub(d2, d0))
		mint.Div(mint, d0)
	}

	return &depositPlan{finalBalances: finalBal, mint: mint, d1: d1}, nil
}

// AddLiquidity deposits amounts[N] native-unit balances and mints pool
// shares to provider. See spec §4.6.
func (e *Engine) AddLiquidity(provider string, amounts [NCoins]*big.Int, minMint *big.Int, now time.Time) (*big.Int, error) {
	if err := e.acquire(); err != nil {
		return nil, err
	}
	defer e.release()

	if e.gov.Killed {
		return nil, ErrKilled
	}

	ampVal := e.amp.Effective(now)
	supply := e.ledger.ShareSupply()
	oldBal := e.Balances()

	plan, err := e.planDeposit(oldBal, amounts, supply, ampVal)
	if err != nil {
		return nil, err
	}
	if plan.mint.Cmp(minMint) < 0 {
		return nil, ErrSlippage
	}

	for i, a := range amounts {
		if a.Sign() > 0 {
			if err := e.ledger.MoveIn(provider, i, a); err != nil {
				return nil, err
			}
		}
	}

	e.balances = plan.finalBalances
	if err := e.ledger.MintShares(provider, plan.mint); err != nil {
		return nil, err
	}

	ev := newEvent("AddLiquidity", e.id, provider).withAmounts("amounts", amounts)
	ev.Fields["D1"] = plan.d1
	ev.Fields["newSupply"] = e.ledger.ShareSupply()
	e.emit(ev)

	return plan.mint, nil
}

// QuoteShare estimates the share delta of a deposit (isDeposit==true) or
// an imbalanced withdrawal (isDeposit==false) without mutating state or
// moving funds.
func (e *Engine) QuoteShare(amounts [NCoins]*big.Int, isDeposit bool, now time.Time) (*big.Int, error) {
	ampVal := e.amp.Effective(now)
	supply := e.ledger.ShareSupply()
	oldBal := e.Balances()

	if isDeposit {
		plan, err := e.planDeposit(oldBal, amounts, supply, ampVal)
		if err != nil {
			return nil, err
		}
		return plan.mint, nil
	}

	plan, err := e.planWithdrawImbalance(oldBal, amounts, supply, ampVal)
	if err != nil {
		return nil, err
	}
	return plan.burn, nil
}

// ---- proportional withdrawal ----

// RemoveLiquidity burns shares and returns a proportional share of every
// reserve. Permitted even when the pool is killed.
func (e *Engine) RemoveLiquidity(provider string, shares *big.Int, minAmounts [NCoins]*big.Int) ([NCoins]*big.Int, error) {
	var zero [NCoins]*big.Int
	if err := e.acquire(); err != nil {
		return zero, err
	}
	defer e.release()

	if shares.Sign() <= 0 {
		return zero, ErrZeroAmount
	}
	supply := e.ledger.ShareSupply()
	if supply.Sign() <= 0 {
		return zero, ErrZeroAmount
	}

	var amounts [NCoins]*big.Int
	for i, b := range e.balances {
		a := new(big.Int).Mul(b, shares)
		a.Div(a, supply)
		if a.Cmp(minAmounts[i]) < 0 {
			return zero, ErrInsufficientOutput
		}
		amounts[i] = a
	}

	for i, a := range amounts {
		e.balances[i] = new(big.Int).Sub(e.balances[i], a)
		if err := e.ledger.MoveOut(provider, i, a); err != nil {
			return zero, err
		}
	}
	if err := e.ledger.BurnShares(provider, shares); err != nil {
		return zero, err
	}

	ev := newEvent("RemoveLiquidity", e.id, provider).withAmounts("amounts", amounts)
	ev.Fields["newSupply"] = e.ledger.ShareSupply()
	e.emit(ev)

	return amounts, nil
}

// ---- imbalanced withdrawal [EXPANSION] ----

type withdrawPlan struct {
	finalBalances [NCoins]*big.Int
	burn          *big.Int
}

func (e *Engine) planWithdrawImbalance(oldBal [NCoins]*big.Int, amounts [NCoins]*big.Int, supply *big.Int, ampVal *big.Int) (*withdrawPlan, error) {
	if supply.Sign() <= 0 {
		return nil, ErrZeroAmount
	}
	oldXp := e.toCanonical(oldBal)
	d0, err := fixedpoint.ComputeD(oldXp, ampVal)
	if err != nil {
		return nil, err
	}

	var tentative [NCoins]*big.Int
	for i, b := range oldBal {
		if amounts[i].Cmp(b) > 0 {
			return nil, ErrInsufficientOutput
		}
		tentative[i] = new(big.Int).Sub(b, amounts[i])
	}
	tentativeXp := e.toCanonical(tentative)

	d1, err := fixedpoint.ComputeD(tentativeXp, ampVal)
	if err != nil {
		return nil, err
	}

	imbalanceRate := feemath.ImbalanceFeeRate(e.gov.Fee)
	bookXp := make([]*big.Int, NCoins)
	finalXp := make([]*big.Int, NCoins)
	for i := range tentativeXp {
		ideal := feemath.IdealBalance(d1, oldXp[i], d0)
		deviation := feemath.Deviation(tentativeXp[i], ideal)
		feeC := feemath.ChargeOnDeviation(imbalanceRate, deviation)
		adminC := feemath.AdminPortion(feeC, e.gov.AdminFee)
		bookXp[i] = new(big.Int).Sub(tentativeXp[i], feeC)
		finalXp[i] = new(big.Int).Sub(tentativeXp[i], adminC)
	}

	d2, err := fixedpoint.ComputeD(bookXp, ampVal)
	if err != nil {
		return nil, err
	}

	burn := new(big.Int).Mul(supply, new(big.Int).Sub(d0, d2))
	burn.Div(burn, d0)
	burn.Add(burn, big.NewInt(1))

	var finalBal [NCoins]*big.Int
	for i := range finalBal {
		finalBal[i] = e.toNative(finalXp[i], i)
	}

	return &withdrawPlan{finalBalances: finalBal, burn: burn}, nil
}

// RemoveLiquidityImbalance withdraws an exact, possibly-imbalanced,
// vector of native amounts, burning at most maxBurn shares. See
// SPEC_FULL.md §4 EXPANSION.
func (e *Engine) RemoveLiquidityImbalance(provider string, amounts [NCoins]*big.Int, maxBurn *big.Int, now time.Time) (*big.Int, error) {
	if err := e.acquire(); err != nil {
		return nil, err
	}
	defer e.release()

	if e.gov.Killed {
		return nil, ErrKilled
	}

	ampVal := e.amp.Effective(now)
	supply := e.ledger.ShareSupply()
	oldBal := e.Balances()

	plan, err := e.planWithdrawImbalance(oldBal, amounts, supply, ampVal)
	if err != nil {
		return nil, err
	}
	if plan.burn.Cmp(maxBurn) > 0 {
		return nil, ErrSlippage
	}

	e.balances = plan.finalBalances
	for i, a := range amounts {
		if a.Sign() > 0 {
			if err := e.ledger.MoveOut(provider, i, a); err != nil {
				return nil, err
			}
		}
	}
	if err := e.ledger.BurnShares(provider, plan.burn); err != nil {
		return nil, err
	}

	ev := newEvent("RemoveLiquidityImbalance", e.id, provider).withAmounts("amounts", amounts)
	ev.Fields["newSupply"] = e.ledger.ShareSupply()
	e.emit(ev)

	return plan.burn, nil
}

// RemoveLiquidityOneCoin withdraws the entire value of shares as a
// single asset i. See SPEC_FULL.md §4 EXPANSION.
func (e *Engine) RemoveLiquidityOneCoin(provider string, shares *big.Int, i int, minAmount *big.Int, now time.Time) (*big.Int, error) {
	if err := e.acquire(); err != nil {
		return nil, err
	}
	defer e.release()

	if e.gov.Killed {
		return nil, ErrKilled
	}
	if i < 0 || i >= NCoins {
		return nil, ErrInvalidIndex
	}
	if shares.Sign() <= 0 {
		return nil, ErrZeroAmount
	}

	ampVal := e.amp.Effective(now)
	supply := e.ledger.ShareSupply()
	if supply.Sign() <= 0 || shares.Cmp(supply) > 0 {
		return nil, ErrInsufficientOutput
	}

	oldBal := e.Balances()
	xp := e.toCanonical(oldBal)

	d0, err := fixedpoint.ComputeD(xp, ampVal)
	if err != nil {
		return nil, err
	}

	d1 := new(big.Int).Mul(shares, d0)
	d1.Div(d1, supply)
	d1.Sub(d0, d1)

	newY, err := fixedpoint.ComputeYD(i, xp, d1, ampVal)
	if err != nil {
		return nil, err
	}
	dy0 := new(big.Int).Sub(xp[i], newY)

	imbalanceRate := feemath.ImbalanceFeeRate(e.gov.Fee)
	xpReduced := make([]*big.Int, NCoins)
	copy(xpReduced, xp)
	for j := range xp {
		var dxExpected *big.Int
		if j == i {
			dxExpected = feemath.IdealBalance(d1, xp[j], d0)
			dxExpected.Sub(dxExpected, newY)
		} else {
			ideal := feemath.IdealBalance(d1, xp[j], d0)
			dxExpected = new(big.Int).Sub(xp[j], ideal)
		}
		dev := new(big.Int).Abs(dxExpected)
		feeC := feemath.ChargeOnDeviation(imbalanceRate, dev)
		xpReduced[j] = new(big.Int).Sub(xpReduced[j], feeC)
	}

	finalY, err := fixedpoint.ComputeYD(i, xpReduced, d1, ampVal)
	if err != nil {
		return nil, err
	}
	if new(big.Int).Sub(xpReduced[i], finalY).Cmp(big.NewInt(1)) < 0 {
		return nil, ErrSolverUnderflow
	}
	dy := new(big.Int).Sub(xpReduced[i], finalY)
	dy.Sub(dy, big.NewInt(1))

	dyNative := e.toNative(dy, i)

	dyFeeCanonical := new(big.Int).Sub(dy0, dy)
	if dyFeeCanonical.Sign() < 0 {
		dyFeeCanonical = big.NewInt(0)
	}
	adminC := feemath.AdminPortion(dyFeeCanonical, e.gov.AdminFee)
	adminNative := e.toNative(adminC, i)

	if dyNative.Cmp(minAmount) < 0 {
		return nil, ErrSlippage
	}

	e.balances[i] = new(big.Int).Sub(e.balances[i], new(big.Int).Add(dyNative, adminNative))
	if err := e.ledger.MoveOut(provider, i, dyNative); err != nil {
		return nil, err
	}
	if err := e.ledger.BurnShares(provider, shares); err != nil {
		return nil, err
	}

	ev := newEvent("RemoveLiquidityOne", e.id, provider)
	ev.Fields["shares"] = shares
	ev.Fields["amount"] = dyNative
	ev.Fields["fee"] = e.toNative(dyFeeCanonical, i)
	ev.Fields["newSupply"] = e.ledger.ShareSupply()
	ev.Index["i"] = i
	e.emit(ev)

	return dyNative, nil
}

// ---- swap ----

// Quote is a pure view: the native-unit output of swapping dx of asset i
// for asset j at the given time, after the trading fee, with no state
// mutation.
func (e *Engine) Quote(i, j int, dx *big.Int, now time.Time) (*big.Int, error) {
	if i == j {
		return nil, ErrSameCoin
	}
	if i < 0 || i >= NCoins || j < 0 || j >= NCoins {
		return nil, ErrInvalidIndex
	}

	ampVal := e.amp.Effective(now)
	xp := e.toCanonical(e.Balances())
	xNew := new(big.Int).Add(xp[i], new(big.Int).Mul(dx, e.mul[i]))

	y, err := fixedpoint.ComputeY(i, j, xNew, xp, ampVal)
	if err != nil {
		return nil, err
	}
	if new(big.Int).Sub(xp[j], y).Cmp(big.NewInt(1)) < 0 {
		return nil, ErrSolverUnderflow
	}
	dyC := new(big.Int).Sub(xp[j], y)
	dyC.Sub(dyC, big.NewInt(1))

	netC := new(big.Int).Sub(dyC, feemath.TradingFee(e.gov.Fee, dyC))
	return e.toNative(netC, j), nil
}

// Exchange swaps dx of asset i for at least minDy of asset j, on behalf
// of caller. See spec §4.6.
func (e *Engine) Exchange(caller string, i, j int, dx, minDy *big.Int, now time.Time) (*big.Int, error) {
	if err := e.acquire(); err != nil {
		return nil, err
	}
	defer e.release()

	if e.gov.Killed {
		return nil, ErrKilled
	}
	if i == j {
		return nil, ErrSameCoin
	}
	if i < 0 || i >= NCoins || j < 0 || j >= NCoins {
		return nil, ErrInvalidIndex
	}
	if dx.Sign() <= 0 {
		return nil, ErrZeroAmount
	}

	ampVal := e.amp.Effective(now)
	oldXp := e.toCanonical(e.Balances())
	xNew := new(big.Int).Add(oldXp[i], new(big.Int).Mul(dx, e.mul[i]))

	y, err := fixedpoint.ComputeY(i, j, xNew, oldXp, ampVal)
	if err != nil {
		return nil, err
	}
	if new(big.Int).Sub(oldXp[j], y).Cmp(big.NewInt(1)) < 0 {
		return nil, ErrSolverUnderflow
	}
	dyC := new(big.Int).Sub(oldXp[j], y)
	dyC.Sub(dyC, big.NewInt(1))

	tradingFeeC := feemath.TradingFee(e.gov.Fee, dyC)
	adminC := feemath.AdminPortion(tradingFeeC, e.gov.AdminFee)
	netC := new(big.Int).Sub(dyC, tradingFeeC)

	dyNative := e.toNative(netC, j)
	adminNative := e.toNative(adminC, j)

	if dyNative.Cmp(minDy) < 0 {
		return nil, ErrSlippage
	}

	if err := e.ledger.MoveIn(caller, i, dx); err != nil {
		return nil, err
	}

	e.balances[i] = new(big.Int).Add(e.balances[i], dx)
	e.balances[j] = new(big.Int).Sub(e.balances[j], new(big.Int).Add(dyNative, adminNative))

	if err := e.ledger.MoveOut(caller, j, dyNative); err != nil {
		return nil, err
	}

	ev := newEvent("TokenExchange", e.id, caller)
	ev.Fields["dx"] = dx
	ev.Fields["dy"] = dyNative
	ev.Index["i"] = i
	ev.Index["j"] = j
	e.emit(ev)

	return dyNative, nil
}

// ---- views ----

// VirtualPrice returns D·PRECISION/supply, or 0 if no shares are
// outstanding.
func (e *Engine) VirtualPrice(now time.Time) (*big.Int, error) {
	supply := e.ledger.ShareSupply()
	if supply.Sign() == 0 {
		return big.NewInt(0), nil
	}
	ampVal := e.amp.Effective(now)
	d, err := fixedpoint.ComputeD(e.toCanonical(e.Balances()), ampVal)
	if err != nil {
		return nil, err
	}
	vp := new(big.Int).Mul(d, precision)
	return vp.Div(vp, supply), nil
}

// AdminBalance returns the admin-fee reserve for asset i: the ledger's
// true custody balance minus the pool's own bookkeeping balance.
func (e *Engine) AdminBalance(i int) *big.Int {
	return new(big.Int).Sub(e.ledger.BalanceOf(i), e.balances[i])
}

// WithdrawAdminFees sweeps every positive admin-fee reserve to the pool
// owner. Owner-only; refused while killed.
func (e *Engine) WithdrawAdminFees(caller string) error {
	if err := e.acquire(); err != nil {
		return err
	}
	defer e.release()

	if caller != e.owner {
		return ErrUnauthorized
	}
	if e.gov.Killed {
		return ErrKilled
	}

	for i := range e.balances {
		diff := e.AdminBalance(i)
		if diff.Sign() > 0 {
			if err := e.ledger.MoveOut(e.owner, i, diff); err != nil {
				return err
			}
		}
	}

	e.emit(newEvent("AdminFeesWithdrawn", e.id, e.owner))
	return nil
}

// ---- governance ----

// RampA begins a new amplification ramp. Owner-only.
func (e *Engine) RampA(caller string, newA *big.Int, futureTime, now time.Time) error {
	if err := e.acquire(); err != nil {
		return err
	}
	defer e.release()

	if caller != e.owner {
		return ErrUnauthorized
	}

	oldA := e.amp.Effective(now)
	if err := e.amp.RampTo(newA, futureTime, now); err != nil {
		switch err {
		case amp.ErrRampTooSoon:
			return ErrRampTooSoon
		case amp.ErrRampTooFast:
			return ErrRampTooFast
		default:
			return ErrInvalidConfig
		}
	}

	ev := newEvent("RampA", e.id, caller)
	ev.Fields["oldA"] = oldA
	ev.Fields["newA"] = newA
	e.emit(ev)
	return nil
}

// StopRampA freezes A at its current effective value. Owner-only.
func (e *Engine) StopRampA(caller string, now time.Time) error {
	if err := e.acquire(); err != nil {
		return err
	}
	defer e.release()

	if caller != e.owner {
		return ErrUnauthorized
	}
	e.amp.Stop(now)

	ev := newEvent("StopRampA", e.id, caller)
	ev.Fields["A"] = e.amp.Effective(now)
	e.emit(ev)
	return nil
}

// CommitFee registers a time-locked fee change. Owner-only.
func (e *Engine) CommitFee(caller string, fee, adminFee *big.Int, now time.Time) error {
	if err := e.acquire(); err != nil {
		return err
	}
	defer e.release()

	if fee.Sign() < 0 || fee.Cmp(big.NewInt(MaxFee)) > 0 {
		return ErrInvalidConfig
	}
	if adminFee.Sign() < 0 || adminFee.Cmp(big.NewInt(MaxAdminFee)) > 0 {
		return ErrInvalidConfig
	}

	if err := e.gov.CommitFee(caller, fee, adminFee, now); err != nil {
		switch err {
		case governance.ErrPendingActionExists:
			return ErrPendingActionExists
		case governance.ErrUnauthorized:
			return ErrUnauthorized
		default:
			return err
		}
	}

	ev := newEvent("CommitNewFee", e.id, caller)
	ev.Fields["fee"] = fee
	ev.Fields["adminFee"] = adminFee
	e.emit(ev)
	return nil
}

// ApplyFee commits a previously-committed fee change into effect once
// its delay has elapsed.
func (e *Engine) ApplyFee(now time.Time) error {
	if err := e.acquire(); err != nil {
		return err
	}
	defer e.release()

	if err := e.gov.ApplyFee(now); err != nil {
		switch err {
		case governance.ErrNoPendingAction:
			return ErrNoPendingAction
		case governance.ErrDelayNotMet:
			return ErrDelayNotMet
		default:
			return err
		}
	}

	ev := newEvent("NewFee", e.id, "")
	ev.Fields["fee"] = e.gov.Fee
	ev.Fields["adminFee"] = e.gov.AdminFee
	e.emit(ev)
	return nil
}

// Kill sets the kill switch. Owner-only.
func (e *Engine) Kill(caller string) error {
	if err := e.acquire(); err != nil {
		return err
	}
	defer e.release()

	if err := e.gov.Kill(caller); err != nil {
		return ErrUnauthorized
	}
	e.emit(newEvent("Killed", e.id, caller))
	return nil
}

// Unkill clears the kill switch. Owner-only.
func (e *Engine) Unkill(caller string) error {
	if err := e.acquire(); err != nil {
		return err
	}
	defer e.release()

	if err := e.gov.Unkill(caller); err != nil {
		return ErrUnauthorized
	}
	e.emit(newEvent("Unkilled", e.id, caller))
	return nil
}
