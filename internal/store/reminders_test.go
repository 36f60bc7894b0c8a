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

func reminderFixture(id, name string) core.Reminder {
	return core.Reminder{
		ID:           id,
		Type:         core.Subscription,
		Name:         name,
		Amount:       54_990,
		Date:         core.NewDate(2025, 9, 5),
		Category:     "Spotify",
		ReminderTime: "1",
		CreatedAt:    time.Date(2025, 8, 20, 8, 0, 0, 0, time.UTC),
	}
}

func loadedReminders(t *testing.T) *Reminders {
	t.Helper()
	s := NewReminders(memory.New(), testLogger())
	s.Load(context.Background())
	return s
}

func TestRemindersAddDefaults(t *testing.T) {
	s := loadedReminders(t)

	r := reminderFixture("", "Spotify")
	r.Paid = true // must be ignored, new reminders start unpaid
	added := s.Add(r)

	if added.ID == "" {
		t.Error("Add left ID empty")
	}
	if added.Paid {
		t.Error("new reminder saved as paid")
	}
}

func TestRemindersMarkPaidIdempotent(t *testing.T) {
	s := loadedReminders(t)
	r := s.Add(reminderFixture("", "Listrik"))

	first, err := s.MarkPaid(r.ID)
	if err != nil {
		t.Fatalf("first MarkPaid: %v", err)
	}
	if !first.Paid {
		t.Fatal("reminder not paid after MarkPaid")
	}

	second, err := s.MarkPaid(r.ID)
	if err != nil {
		t.Fatalf("second MarkPaid must not fail: %v", err)
	}
	if !second.Paid {
		t.Error("second MarkPaid toggled paid back off")
	}
}

func TestRemindersMarkPaidUnknown(t *testing.T) {
	s := loadedReminders(t)
	if _, err := s.MarkPaid("missing"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("MarkPaid(missing) = %v, want ErrNotFound", err)
	}
}

func TestRemindersDelete(t *testing.T) {
	s := loadedReminders(t)
	r := s.Add(reminderFixture("", "Netflix"))
	s.Add(reminderFixture("", "Air"))

	if !s.Delete(r.ID) {
		t.Fatal("Delete returned false for an existing reminder")
	}
	got := s.List()
	if len(got) != 1 || got[0].Name != "Air" {
		t.Errorf("after delete: %v", got)
	}
}

func TestRemindersRoundTrip(t *testing.T) {
	adapter := memory.New()
	s := NewReminders(adapter, testLogger())
	s.Load(context.Background())

	bill := reminderFixture("", "Listrik Bulan Ini")
	bill.Type = core.Bill
	bill.Category = ""
	s.Add(bill)
	sub := s.Add(reminderFixture("", "Spotify"))
	if _, err := s.MarkPaid(sub.ID); err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	s.Flush()

	reloaded := NewReminders(adapter, testLogger())
	reloaded.Load(context.Background())

	if !reflect.DeepEqual(reloaded.List(), s.List()) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", reloaded.List(), s.List())
	}
}
