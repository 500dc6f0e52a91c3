package feemath

import (
	"math/big"
	"testing"
)

func TestTradingFee(t *testing.T) {
	// 0.04% fee (4e6 / 1e10) on 1,000,000 units.
	fee := big.NewInt(4_000_000)
	amount := big.NewInt(1_000_000)
	got := TradingFee(fee, amount)
	if got.Cmp(big.NewInt(400)) != 0 {
		t.Fatalf("TradingFee = %s, want 400", got)
	}

	amount = big.NewInt(1_000_000_000_000)
	got = TradingFee(fee, amount)
	want := big.NewInt(400_000_000)
	if got.Cmp(want) != 0 {
		t.Fatalf("TradingFee = %s, want %s", got, want)
	}
}

func TestAdminPortion(t *testing.T) {
	totalFee := big.NewInt(1_000_000)
	adminFee := big.NewInt(5_000_000_000) // 50%
	got := AdminPortion(totalFee, adminFee)
	want := big.NewInt(500_000)
	if got.Cmp(want) != 0 {
		t.Fatalf("AdminPortion = %s, want %s", got, want)
	}
}

func TestImbalanceFeeRate(t *testing.T) {
	// fee * 3 / (4*2) = fee * 3/8
	fee := big.NewInt(8_000_000)
	got := ImbalanceFeeRate(fee)
	want := big.NewInt(3_000_000)
	if got.Cmp(want) != 0 {
		t.Fatalf("ImbalanceFeeRate = %s, want %s", got, want)
	}
}

func TestIdealBalanceAndDeviation(t *testing.T) {
	d1 := big.NewInt(3_000_000)
	d0 := big.NewInt(3_000_000)
	oldBalance := big.NewInt(1_000_000)

	ideal := IdealBalance(d1, oldBalance, d0)
	if ideal.Cmp(oldBalance) != 0 {
		t.Fatalf("IdealBalance with D1==D0 should equal oldBalance, got %s", ideal)
	}

	newBalance := big.NewInt(900_000)
	dev := Deviation(newBalance, ideal)
	want := big.NewInt(100_000)
	if dev.Cmp(want) != 0 {
		t.Fatalf("Deviation = %s, want %s", dev, want)
	}
}

func TestChargeOnDeviation(t *testing.T) {
	rate := big.NewInt(3_000_000)
	deviation := big.NewInt(1_000_000_000_000)
	got := ChargeOnDeviation(rate, deviation)
	want := big.NewInt(300_000_000)
	if got.Cmp(want) != 0 {
		t.Fatalf("ChargeOnDeviation = %s, want %s", got, want)
	}
}
