package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"zenny/internal/core"
	"zenny/internal/services"
)

type reminderRequest struct {
	Type         string          `json:"type"`
	Name         string          `json:"name"`
	Amount       json.RawMessage `json:"amount"`
	Date         string          `json:"date"`
	Category     string          `json:"category"`
	ReminderTime string          `json:"reminderTime"`
}

type reminderListResponse struct {
	Reminders []reminderWithDueness `json:"reminders"`
	Count     int                   `json:"count"`
}

type reminderWithDueness struct {
	core.Reminder
	Due bool `json:"due"`
}

// handleListReminders returns all reminders with their current dueness,
// so the client does not re-derive the lead-time window.
func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	reminders := s.reminders.List()
	out := make([]reminderWithDueness, 0, len(reminders))
	for _, rem := range reminders {
		out = append(out, reminderWithDueness{
			Reminder: rem,
			Due:      services.ReminderDue(rem, now),
		})
	}
	writeJSON(w, http.StatusOK, reminderListResponse{Reminders: out, Count: len(out)})
}

func (s *Server) handleAddReminder(w http.ResponseWriter, r *http.Request) {
	var req reminderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := parseAmountField(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	var date core.Date
	if v := strings.TrimSpace(req.Date); v != "" {
		if err := date.UnmarshalJSON([]byte(`"` + v + `"`)); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid date, want YYYY-MM-DD")
			return
		}
	}

	rem := core.Reminder{
		Type:         core.ReminderType(strings.TrimSpace(req.Type)),
		Name:         sanitizeInput(req.Name),
		Amount:       amount,
		Date:         date,
		Category:     sanitizeInput(req.Category),
		ReminderTime: strings.TrimSpace(req.ReminderTime),
	}
	if err := rem.Validate(); err != nil {
		writeError(w, statusForValidation(err), err.Error())
		return
	}

	added := s.reminders.Add(rem)
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	if !s.reminders.Delete(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "reminder not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleMarkPaid marks a reminder paid. Marking an already paid
// reminder succeeds and returns it unchanged.
func (s *Server) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	updated, err := s.reminders.MarkPaid(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusNotFound, "reminder not found")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
