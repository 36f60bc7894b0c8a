package store

import (
	"context"
	"reflect"
	"testing"
	"time"

	"zenny/internal/core"
	"zenny/internal/kv/memory"
)

func txFixture(id string, amount int64) core.Transaction {
	return core.Transaction{
		ID:       id,
		Amount:   amount,
		Type:     core.Expense,
		Category: "Makanan",
		Date:     time.Date(2025, 8, 3, 12, 0, 0, 0, time.UTC),
	}
}

func loadedTransactions(t *testing.T) (*Transactions, *memory.Adapter) {
	t.Helper()
	adapter := memory.New()
	s := NewTransactions(adapter, testLogger())
	s.Load(context.Background())
	return s, adapter
}

func TestTransactionsNewestFirst(t *testing.T) {
	s, _ := loadedTransactions(t)

	s.Add(txFixture("first", 100))
	s.Add(txFixture("second", 200))
	s.Add(txFixture("third", 300))

	got := s.List()
	wantOrder := []string{"third", "second", "first"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Errorf("position %d = %q, want %q", i, got[i].ID, id)
		}
	}
}

func TestTransactionsAddAssignsID(t *testing.T) {
	s, _ := loadedTransactions(t)

	added := s.Add(txFixture("", 100))
	if added.ID == "" {
		t.Fatal("Add left ID empty")
	}
	if got := s.List(); got[0].ID != added.ID {
		t.Errorf("stored ID %q != returned ID %q", got[0].ID, added.ID)
	}
}

func TestTransactionsDelete(t *testing.T) {
	s, _ := loadedTransactions(t)
	s.Add(txFixture("keep", 100))
	s.Add(txFixture("drop", 200))

	if !s.Delete("drop") {
		t.Fatal("Delete returned false for an existing id")
	}
	if s.Delete("drop") {
		t.Error("Delete returned true for an already-removed id")
	}

	got := s.List()
	if len(got) != 1 || got[0].ID != "keep" {
		t.Errorf("after delete: %v", got)
	}
}

// The collection after a sequence of operations must equal the pure fold
// of those operations over the initial state.
func TestTransactionsFoldEquivalence(t *testing.T) {
	type op struct {
		add    *core.Transaction
		delete string
	}
	add := func(id string, amount int64) op { tx := txFixture(id, amount); return op{add: &tx} }
	del := func(id string) op { return op{delete: id} }

	ops := []op{
		add("a", 1), add("b", 2), del("a"), add("c", 3), del("x"), add("d", 4), del("c"),
	}

	s, _ := loadedTransactions(t)
	var folded []core.Transaction
	for _, o := range ops {
		if o.add != nil {
			s.Add(*o.add)
			folded = append([]core.Transaction{*o.add}, folded...)
			continue
		}
		s.Delete(o.delete)
		kept := folded[:0:0]
		for _, tx := range folded {
			if tx.ID != o.delete {
				kept = append(kept, tx)
			}
		}
		folded = kept
	}

	got := s.List()
	if len(got) != len(folded) {
		t.Fatalf("store has %d items, fold has %d", len(got), len(folded))
	}
	if !reflect.DeepEqual(got, folded) {
		t.Errorf("store state %v != folded state %v", got, folded)
	}
}

func TestTransactionsSnapshotsAreIndependent(t *testing.T) {
	s, _ := loadedTransactions(t)
	s.Add(txFixture("a", 100))

	snapshot := s.List()
	s.Add(txFixture("b", 200))

	if len(snapshot) != 1 {
		t.Errorf("earlier snapshot changed length: %d", len(snapshot))
	}
	snapshot[0].Amount = 999_999
	if got := s.List(); got[1].Amount == 999_999 {
		t.Error("mutating a snapshot leaked into the store")
	}
}

func TestTransactionsDerivedReads(t *testing.T) {
	s, _ := loadedTransactions(t)

	t.Run("empty store", func(t *testing.T) {
		if s.Balance() != 0 || s.IncomeTotal() != 0 || s.ExpenseTotal() != 0 {
			t.Errorf("empty store: balance=%d income=%d expense=%d, want all 0",
				s.Balance(), s.IncomeTotal(), s.ExpenseTotal())
		}
	})

	t.Run("income and expense", func(t *testing.T) {
		income := txFixture("", 5_000_000)
		income.Type = core.Income
		income.Category = "Gaji"
		s.Add(income)
		s.Add(txFixture("", 1_200_000))

		if got := s.Balance(); got != 3_800_000 {
			t.Errorf("Balance = %d, want 3800000", got)
		}
		if got := s.IncomeTotal(); got != 5_000_000 {
			t.Errorf("IncomeTotal = %d, want 5000000", got)
		}
		if got := s.ExpenseTotal(); got != 1_200_000 {
			t.Errorf("ExpenseTotal = %d, want 1200000", got)
		}
	})
}

func TestTransactionsRoundTrip(t *testing.T) {
	adapter := memory.New()
	s := NewTransactions(adapter, testLogger())
	s.Load(context.Background())

	withNote := txFixture("n1", 42_000)
	withNote.Note = "makan siang"
	s.Add(txFixture("t1", 100))
	s.Add(withNote)
	s.Flush()

	reloaded := NewTransactions(adapter, testLogger())
	reloaded.Load(context.Background())

	if !reflect.DeepEqual(reloaded.List(), s.List()) {
		t.Errorf("round trip mismatch:\n got %v\nwant %v", reloaded.List(), s.List())
	}
}

func TestTransactionsRevision(t *testing.T) {
	s, _ := loadedTransactions(t)

	before := s.Revision()
	s.Add(txFixture("a", 1))
	if s.Revision() == before {
		t.Error("Add did not bump revision")
	}
	mid := s.Revision()
	s.Delete("a")
	if s.Revision() == mid {
		t.Error("Delete did not bump revision")
	}
	after := s.Revision()
	s.Delete("missing")
	if s.Revision() != after {
		t.Error("no-op delete bumped revision")
	}
}
