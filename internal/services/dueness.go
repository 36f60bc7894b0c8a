package services

import (
	"context"
	"time"

	"zenny/internal/core"
	"zenny/internal/events"
	"zenny/internal/log"
)

// ReminderDue reports whether a reminder has entered its notification
// window: unpaid, and today is on or past the due date minus the
// configured lead days. Overdue reminders stay due until paid.
func ReminderDue(r core.Reminder, now time.Time) bool {
	if r.Paid || r.Date.IsZero() {
		return false
	}
	windowStart := r.Date.AddDate(0, 0, -r.LeadDays())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !today.Before(windowStart)
}

// DuePublisher is the slice of the events client the scanner needs.
type DuePublisher interface {
	PublishReminderDue(ctx context.Context, msg *events.ReminderDueMessage) error
}

// ReminderSource yields the current reminders. The in-process store
// satisfies it; the standalone worker re-reads the record instead.
type ReminderSource interface {
	List() []core.Reminder
}

// ReminderScanner periodically walks the reminders and publishes a due
// event once per reminder per process run. Delivery to the device is a
// downstream concern.
type ReminderScanner struct {
	reminders ReminderSource
	publisher DuePublisher
	logger    *log.Logger
	announced map[string]bool
}

func NewReminderScanner(reminders ReminderSource, publisher DuePublisher, logger *log.Logger) *ReminderScanner {
	return &ReminderScanner{
		reminders: reminders,
		publisher: publisher,
		logger:    logger,
		announced: make(map[string]bool),
	}
}

// Scan publishes a due message for every reminder that is due at now and
// has not been announced yet. Returns how many messages were published.
func (s *ReminderScanner) Scan(ctx context.Context, now time.Time) int {
	published := 0
	for _, r := range s.reminders.List() {
		if s.announced[r.ID] || !ReminderDue(r, now) {
			continue
		}

		msg := &events.ReminderDueMessage{
			ID:        r.ID,
			Name:      r.Name,
			Amount:    r.Amount,
			DueDate:   r.Date.String(),
			Timestamp: now,
		}
		if err := s.publisher.PublishReminderDue(ctx, msg); err != nil {
			s.logger.WarnContext(ctx, "Failed to publish reminder due message",
				log.FieldOperation, log.OpPublish,
				log.FieldRecordID, r.ID,
				log.FieldError, err)
			continue // retried on the next scan
		}

		s.announced[r.ID] = true
		published++
	}

	if published > 0 {
		s.logger.InfoContext(ctx, "Due reminders announced",
			log.FieldOperation, log.OpPublish,
			log.FieldCount, published)
	}
	return published
}
