package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"zenny/internal/core"
	"zenny/internal/kv/memory"
	"zenny/internal/store"
)

type capturingSyncPublisher struct {
	published [][2]string // id, action
	fail      bool
}

func (p *capturingSyncPublisher) PublishTransactionSync(_ context.Context, id, action string) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.published = append(p.published, [2]string{id, action})
	return nil
}

func newLedger(t *testing.T, pub SyncPublisher) (*Ledger, *store.Transactions) {
	t.Helper()
	transactions := store.NewTransactions(memory.New(), testLogger())
	transactions.Load(context.Background())
	return NewLedger(transactions, pub, testLogger()), transactions
}

func sampleTx() core.Transaction {
	return core.Transaction{
		Amount:   35_000,
		Type:     core.Expense,
		Category: "Makanan",
		Date:     time.Date(2025, 8, 28, 12, 0, 0, 0, time.UTC),
	}
}

func TestLedgerAddAnnounces(t *testing.T) {
	pub := &capturingSyncPublisher{}
	ledger, transactions := newLedger(t, pub)

	added := ledger.Add(context.Background(), sampleTx())

	if got := transactions.List(); len(got) != 1 || got[0].ID != added.ID {
		t.Fatalf("transaction not stored: %v", got)
	}
	if len(pub.published) != 1 || pub.published[0] != [2]string{added.ID, "added"} {
		t.Errorf("published = %v", pub.published)
	}
}

func TestLedgerDeleteAnnouncesOnlyWhenRemoved(t *testing.T) {
	pub := &capturingSyncPublisher{}
	ledger, _ := newLedger(t, pub)
	added := ledger.Add(context.Background(), sampleTx())
	pub.published = nil

	if !ledger.Delete(context.Background(), added.ID) {
		t.Fatal("Delete returned false for an existing transaction")
	}
	if ledger.Delete(context.Background(), added.ID) {
		t.Error("Delete returned true for a removed transaction")
	}
	if len(pub.published) != 1 || pub.published[0][1] != "deleted" {
		t.Errorf("published = %v", pub.published)
	}
}

func TestLedgerPublishFailureDoesNotFailMutation(t *testing.T) {
	ledger, transactions := newLedger(t, &capturingSyncPublisher{fail: true})

	added := ledger.Add(context.Background(), sampleTx())
	if got := transactions.List(); len(got) != 1 || got[0].ID != added.ID {
		t.Errorf("mutation lost on publish failure: %v", got)
	}
}

func TestLedgerWithoutPublisher(t *testing.T) {
	ledger, transactions := newLedger(t, nil)

	ledger.Add(context.Background(), sampleTx())
	if len(transactions.List()) != 1 {
		t.Error("ledger without publisher must still store transactions")
	}
}
