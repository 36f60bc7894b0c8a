package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"zenny/internal/core"
	"zenny/internal/events"
	"zenny/internal/kv/memory"
	"zenny/internal/log"
	"zenny/internal/store"
)

func testLogger() *log.Logger {
	return log.New(log.Config{
		Component: log.ComponentWorker,
		Handler:   slog.NewTextHandler(io.Discard, nil),
	})
}

func TestReminderDue(t *testing.T) {
	now := time.Date(2025, 8, 28, 14, 30, 0, 0, time.UTC)

	mk := func(due core.Date, lead string, paid bool) core.Reminder {
		return core.Reminder{
			ID:           "r",
			Type:         core.Bill,
			Name:         "Listrik",
			Date:         due,
			ReminderTime: lead,
			Paid:         paid,
		}
	}

	tests := []struct {
		name     string
		reminder core.Reminder
		want     bool
	}{
		{"due today, no lead", mk(core.NewDate(2025, 8, 28), "0", false), true},
		{"due tomorrow, one day lead", mk(core.NewDate(2025, 8, 29), "1", false), true},
		{"due tomorrow, no lead", mk(core.NewDate(2025, 8, 29), "0", false), false},
		{"due in three days, one day lead", mk(core.NewDate(2025, 8, 31), "1", false), false},
		{"overdue stays due", mk(core.NewDate(2025, 8, 20), "1", false), true},
		{"paid is never due", mk(core.NewDate(2025, 8, 28), "0", true), false},
		{"bad lead treated as zero", mk(core.NewDate(2025, 8, 28), "??", false), true},
		{"zero due date", mk(core.Date{}, "1", false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReminderDue(tt.reminder, now); got != tt.want {
				t.Errorf("ReminderDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

type capturingPublisher struct {
	due  []*events.ReminderDueMessage
	fail bool
}

func (p *capturingPublisher) PublishReminderDue(_ context.Context, msg *events.ReminderDueMessage) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.due = append(p.due, msg)
	return nil
}

func TestReminderScannerAnnouncesOnce(t *testing.T) {
	reminders := store.NewReminders(memory.New(), testLogger())
	reminders.Load(context.Background())
	due := reminders.Add(core.Reminder{
		Type: core.Bill, Name: "Listrik", Amount: 250_000,
		Date: core.NewDate(2025, 8, 28), ReminderTime: "1",
	})
	reminders.Add(core.Reminder{
		Type: core.Subscription, Name: "Spotify", Amount: 54_990,
		Date: core.NewDate(2025, 9, 20), ReminderTime: "1",
	})

	pub := &capturingPublisher{}
	scanner := NewReminderScanner(reminders, pub, testLogger())
	now := time.Date(2025, 8, 28, 9, 0, 0, 0, time.UTC)

	if got := scanner.Scan(context.Background(), now); got != 1 {
		t.Fatalf("first Scan published %d, want 1", got)
	}
	if pub.due[0].ID != due.ID || pub.due[0].DueDate != "2025-08-28" {
		t.Errorf("published message = %+v", pub.due[0])
	}

	// A second scan must not republish the same reminder.
	if got := scanner.Scan(context.Background(), now); got != 0 {
		t.Errorf("second Scan published %d, want 0", got)
	}
}

func TestReminderScannerRetriesAfterPublishFailure(t *testing.T) {
	reminders := store.NewReminders(memory.New(), testLogger())
	reminders.Load(context.Background())
	reminders.Add(core.Reminder{
		Type: core.Bill, Name: "Air", Amount: 80_000,
		Date: core.NewDate(2025, 8, 28), ReminderTime: "0",
	})

	pub := &capturingPublisher{fail: true}
	scanner := NewReminderScanner(reminders, pub, testLogger())
	now := time.Date(2025, 8, 28, 9, 0, 0, 0, time.UTC)

	if got := scanner.Scan(context.Background(), now); got != 0 {
		t.Fatalf("failed publish counted as announced: %d", got)
	}

	pub.fail = false
	if got := scanner.Scan(context.Background(), now); got != 1 {
		t.Errorf("reminder not retried after publish failure: %d", got)
	}
}
