package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"zenny/internal/core"
	"zenny/internal/kv/memory"
)

func goalFixture(id string, target int64) core.Goal {
	return core.Goal{
		ID:           id,
		Category:     "Travel",
		Title:        "Bali",
		TargetAmount: target,
		CreatedAt:    time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

func loadedGoals(t *testing.T) *Goals {
	t.Helper()
	s := NewGoals(memory.New(), testLogger())
	s.Load(context.Background())
	return s
}

func TestGoalsAddDefaults(t *testing.T) {
	s := loadedGoals(t)

	g := goalFixture("", 1_000_000)
	g.CurrentAmount = 500_000 // must be ignored
	added := s.Add(g)

	if added.ID == "" {
		t.Error("Add left ID empty")
	}
	if added.CurrentAmount != 0 {
		t.Errorf("new goal CurrentAmount = %d, want 0", added.CurrentAmount)
	}
	if added.Icon != "✈️" {
		t.Errorf("icon not derived from category: %q", added.Icon)
	}
}

func TestGoalsAddSavingsClamping(t *testing.T) {
	s := loadedGoals(t)
	g := s.Add(goalFixture("", 1_000_000))

	t.Run("overshooting deposit fills the goal exactly", func(t *testing.T) {
		updated, err := s.AddSavings(g.ID, 1_500_000)
		if err != nil {
			t.Fatalf("AddSavings: %v", err)
		}
		if updated.CurrentAmount != 1_000_000 {
			t.Errorf("CurrentAmount = %d, want 1000000 (clamped)", updated.CurrentAmount)
		}
	})

	t.Run("deposit into a full goal stays clamped", func(t *testing.T) {
		updated, err := s.AddSavings(g.ID, 1)
		if err != nil {
			t.Fatalf("AddSavings: %v", err)
		}
		if updated.CurrentAmount != 1_000_000 {
			t.Errorf("CurrentAmount = %d, want 1000000", updated.CurrentAmount)
		}
	})

	t.Run("negative deposit rejected", func(t *testing.T) {
		if _, err := s.AddSavings(g.ID, -100); !errors.Is(err, core.ErrInvalidAmount) {
			t.Errorf("AddSavings(-100) = %v, want ErrInvalidAmount", err)
		}
	})

	t.Run("unknown goal", func(t *testing.T) {
		if _, err := s.AddSavings("missing", 100); !errors.Is(err, core.ErrNotFound) {
			t.Errorf("AddSavings(missing) = %v, want ErrNotFound", err)
		}
	})
}

// The invariant 0 <= current <= target must survive any deposit sequence.
func TestGoalsInvariantUnderDepositSequences(t *testing.T) {
	s := loadedGoals(t)
	g := s.Add(goalFixture("", 777_000))

	deposits := []int64{100_000, 0, 700_000, 1, 500_000}
	for _, d := range deposits {
		updated, err := s.AddSavings(g.ID, d)
		if err != nil {
			t.Fatalf("AddSavings(%d): %v", d, err)
		}
		if updated.CurrentAmount < 0 || updated.CurrentAmount > updated.TargetAmount {
			t.Fatalf("invariant broken after deposit %d: current=%d target=%d",
				d, updated.CurrentAmount, updated.TargetAmount)
		}
	}
}

func TestGoalsDelete(t *testing.T) {
	s := loadedGoals(t)
	g := s.Add(goalFixture("", 1_000_000))

	if !s.Delete(g.ID) {
		t.Fatal("Delete returned false for an existing goal")
	}
	if len(s.List()) != 0 {
		t.Error("goal still present after delete")
	}
	if s.Delete(g.ID) {
		t.Error("second delete reported success")
	}
}

func TestGoalsSnapshotIndependence(t *testing.T) {
	s := loadedGoals(t)
	g := s.Add(goalFixture("", 1_000_000))

	snapshot := s.List()
	if _, err := s.AddSavings(g.ID, 250_000); err != nil {
		t.Fatalf("AddSavings: %v", err)
	}

	if snapshot[0].CurrentAmount != 0 {
		t.Error("deposit mutated a previously returned snapshot")
	}
	if s.List()[0].CurrentAmount != 250_000 {
		t.Error("deposit missing from fresh snapshot")
	}
}

func TestGoalsRoundTrip(t *testing.T) {
	adapter := memory.New()
	s := NewGoals(adapter, testLogger())
	s.Load(context.Background())

	target := core.NewDate(2026, 6, 1)
	g := goalFixture("", 2_000_000)
	g.TargetDate = &target
	g.MonthlyAmount = 200_000
	g.Note = "liburan"
	added := s.Add(g)
	if _, err := s.AddSavings(added.ID, 300_000); err != nil {
		t.Fatalf("AddSavings: %v", err)
	}
	s.Flush()

	reloaded := NewGoals(adapter, testLogger())
	reloaded.Load(context.Background())

	if !reflect.DeepEqual(reloaded.List(), s.List()) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", reloaded.List(), s.List())
	}
}
