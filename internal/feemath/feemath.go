// Package feemath implements the trading-fee, admin-fee-split, and
// liquidity-imbalance-fee arithmetic for the pool engine. See spec §4.3.
package feemath

import "math/big"

// FeeDenominator is the fixed-point denominator fee and admin-fee
// fractions are expressed against (1e10, matching the reference
// StableSwap contract's FEE_DENOMINATOR).
const FeeDenominator = 10_000_000_000

// NCoins mirrors fixedpoint.NCoins; kept local to avoid an import cycle
// for the one constant this package needs.
const NCoins = 3

var feeDenom = big.NewInt(FeeDenominator)

// TradingFee returns fee * amount / FeeDenominator, truncated.
func TradingFee(fee *big.Int, amount *big.Int) *big.Int {
	out := new(big.Int).Mul(fee, amount)
	return out.Div(out, feeDenom)
}

// AdminPortion returns the admin's share of a collected trading fee:
// fee * adminFee / FeeDenominator.
func AdminPortion(totalFee *big.Int, adminFee *big.Int) *big.Int {
	out := new(big.Int).Mul(totalFee, adminFee)
	return out.Div(out, feeDenom)
}

// ImbalanceFeeRate rescales the flat swap fee into the liquidity-
// imbalance fee applied during deposits/withdrawals: fee * N / (4*(N-1)).
func ImbalanceFeeRate(fee *big.Int) *big.Int {
	numer := new(big.Int).Mul(fee, big.NewInt(NCoins))
	denom := big.NewInt(4 * (NCoins - 1))
	return numer.Div(numer, denom)
}

// IdealBalance returns the proportional balance asset k would hold if
// the pool's composition were unchanged while the invariant moved from
// D0 to D1: D1 * oldBalance[k] / D0.
func IdealBalance(d1, oldBalance, d0 *big.Int) *big.Int {
	out := new(big.Int).Mul(d1, oldBalance)
	return out.Div(out, d0)
}

// Deviation returns |newBalance - ideal|, the quantity the imbalance fee
// is charged against for a single asset.
func Deviation(newBalance, ideal *big.Int) *big.Int {
	d := new(big.Int).Sub(newBalance, ideal)
	return d.Abs(d)
}

// ChargeOnDeviation applies the imbalance fee rate to a deviation:
// imbalanceFeeRate * deviation / FeeDenominator.
func ChargeOnDeviation(imbalanceFeeRate, deviation *big.Int) *big.Int {
	out := new(big.Int).Mul(imbalanceFeeRate, deviation)
	return out.Div(out, feeDenom)
}
