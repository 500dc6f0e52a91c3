package governance

import (
	"math/big"
	"testing"
	"time"
)

func TestCommitThenApplyAfterDelay(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := NewSchedule("owner", big.NewInt(4_000_000), big.NewInt(5_000_000_000))

	if err := s.CommitFee("owner", big.NewInt(1_000_000), big.NewInt(0), now); err != nil {
		t.Fatalf("CommitFee: %v", err)
	}
	if !s.HasPendingFee() {
		t.Fatalf("expected pending fee after commit")
	}

	if err := s.ApplyFee(now.Add(time.Hour)); err != ErrDelayNotMet {
		t.Fatalf("expected ErrDelayNotMet before delay elapses, got %v", err)
	}

	if err := s.ApplyFee(now.Add(AdminActionsDelay)); err != nil {
		t.Fatalf("ApplyFee after delay: %v", err)
	}
	if s.Fee.Cmp(big.NewInt(1_000_000)) != 0 {
		t.Fatalf("fee not updated after ApplyFee: %s", s.Fee)
	}
	if s.HasPendingFee() {
		t.Fatalf("pending fee should be cleared after apply")
	}
}

func TestCommitRejectsSecondPending(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := NewSchedule("owner", big.NewInt(4_000_000), big.NewInt(5_000_000_000))
	if err := s.CommitFee("owner", big.NewInt(1_000_000), big.NewInt(0), now); err != nil {
		t.Fatalf("CommitFee: %v", err)
	}
	if err := s.CommitFee("owner", big.NewInt(2_000_000), big.NewInt(0), now); err != ErrPendingActionExists {
		t.Fatalf("expected ErrPendingActionExists, got %v", err)
	}
}

func TestApplyWithNoPendingFails(t *testing.T) {
	s := NewSchedule("owner", big.NewInt(4_000_000), big.NewInt(5_000_000_000))
	if err := s.ApplyFee(time.Unix(1_700_000_000, 0)); err != ErrNoPendingAction {
		t.Fatalf("expected ErrNoPendingAction, got %v", err)
	}
}

func TestUnauthorizedCallerRejected(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := NewSchedule("owner", big.NewInt(4_000_000), big.NewInt(5_000_000_000))
	if err := s.CommitFee("attacker", big.NewInt(0), big.NewInt(0), now); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if err := s.Kill("attacker"); err != ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized for Kill, got %v", err)
	}
}

func TestKillAndUnkill(t *testing.T) {
	s := NewSchedule("owner", big.NewInt(4_000_000), big.NewInt(5_000_000_000))
	if err := s.Kill("owner"); err != nil {
		t.Fatalf("Kill: %v", err)
	}
	if !s.Killed {
		t.Fatalf("expected Killed to be true")
	}
	if err := s.Unkill("owner"); err != nil {
		t.Fatalf("Unkill: %v", err)
	}
	if s.Killed {
		t.Fatalf("expected Killed to be false after Unkill")
	}
}
