package amp

import (
	"math/big"
	"testing"
	"time"
)

func TestNewScheduleRejectsOutOfBoundsA(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	if _, err := NewSchedule(big.NewInt(0), now); err != ErrInvalidA {
		t.Fatalf("expected ErrInvalidA for zero A, got %v", err)
	}
	if _, err := NewSchedule(big.NewInt(MaxA+1), now); err != ErrInvalidA {
		t.Fatalf("expected ErrInvalidA for A above MaxA, got %v", err)
	}
}

func TestEffectiveBeforeRampIsFlat(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s, err := NewSchedule(big.NewInt(100), now)
	if err != nil {
		t.Fatalf("NewSchedule: %v", err)
	}
	if s.Effective(now.Add(time.Hour)).Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("expected flat A with no ramp in progress")
	}
}

func TestRampToInterpolatesLinearly(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	s, err := NewSchedule(big.NewInt(100), start.Add(-2*MinRampTime))
	if err != nil {
		t.Fatalf("NewSchedule: %v", err)
	}

	future := start.Add(2 * MinRampTime)
	if err := s.RampTo(big.NewInt(200), future, start); err != nil {
		t.Fatalf("RampTo: %v", err)
	}

	mid := start.Add(MinRampTime)
	got := s.Effective(mid)
	want := big.NewInt(150)
	if got.Cmp(want) != 0 {
		t.Fatalf("midpoint A = %s, want %s", got, want)
	}

	if s.Effective(future).Cmp(big.NewInt(200)) != 0 {
		t.Fatalf("expected A to reach target at future time")
	}
	if s.Effective(future.Add(time.Hour)).Cmp(big.NewInt(200)) != 0 {
		t.Fatalf("expected A to clamp at target after future time")
	}
}

func TestRampToRejectsTooSoon(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	s, err := NewSchedule(big.NewInt(100), start)
	if err != nil {
		t.Fatalf("NewSchedule: %v", err)
	}
	err = s.RampTo(big.NewInt(200), start.Add(2*MinRampTime), start.Add(time.Minute))
	if err != ErrRampTooSoon {
		t.Fatalf("expected ErrRampTooSoon, got %v", err)
	}
}

func TestRampToRejectsTooFast(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	s, err := NewSchedule(big.NewInt(100), start.Add(-2*MinRampTime))
	if err != nil {
		t.Fatalf("NewSchedule: %v", err)
	}
	err = s.RampTo(big.NewInt(100*MaxAChangeFactor+1), start.Add(2*MinRampTime), start)
	if err != ErrRampTooFast {
		t.Fatalf("expected ErrRampTooFast for increase, got %v", err)
	}
}

func TestStopFreezesCurrentValue(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	s, err := NewSchedule(big.NewInt(100), start.Add(-2*MinRampTime))
	if err != nil {
		t.Fatalf("NewSchedule: %v", err)
	}
	future := start.Add(2 * MinRampTime)
	if err := s.RampTo(big.NewInt(200), future, start); err != nil {
		t.Fatalf("RampTo: %v", err)
	}

	mid := start.Add(MinRampTime)
	s.Stop(mid)
	if s.Effective(mid).Cmp(big.NewInt(150)) != 0 {
		t.Fatalf("Stop should freeze at the interpolated value")
	}
	if s.Effective(future).Cmp(big.NewInt(150)) != 0 {
		t.Fatalf("Stop should cancel further ramping")
	}
}
