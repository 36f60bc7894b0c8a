package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"zenny/internal/core"
)

type goalRequest struct {
	Category      string          `json:"category"`
	Title         string          `json:"title"`
	TargetAmount  json.RawMessage `json:"targetAmount"`
	MonthlyAmount json.RawMessage `json:"monthlyAmount"`
	TargetDate    string          `json:"targetDate"`
	Note          string          `json:"note"`
}

type savingsRequest struct {
	Amount json.RawMessage `json:"amount"`
}

type goalListResponse struct {
	Goals []core.Goal `json:"goals"`
	Count int         `json:"count"`
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals := s.goals.List()
	writeJSON(w, http.StatusOK, goalListResponse{Goals: goals, Count: len(goals)})
}

func (s *Server) handleAddGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	target, err := parseAmountField(req.TargetAmount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid target amount")
		return
	}

	var monthly int64
	if len(req.MonthlyAmount) > 0 {
		monthly, err = parseAmountField(req.MonthlyAmount)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid monthly amount")
			return
		}
	}

	g := core.Goal{
		Category:      sanitizeInput(req.Category),
		Title:         sanitizeInput(req.Title),
		TargetAmount:  target,
		MonthlyAmount: monthly,
		Note:          sanitizeInput(req.Note),
	}
	if v := strings.TrimSpace(req.TargetDate); v != "" {
		var d core.Date
		if err := d.UnmarshalJSON([]byte(`"` + v + `"`)); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid target date, want YYYY-MM-DD")
			return
		}
		g.TargetDate = &d
	}
	if err := g.Validate(); err != nil {
		writeError(w, statusForValidation(err), err.Error())
		return
	}

	added := s.goals.Add(g)
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if !s.goals.Delete(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "goal not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAddSavings deposits into a goal. The store clamps the balance at
// the target; the updated goal comes back in the response.
func (s *Server) handleAddSavings(w http.ResponseWriter, r *http.Request) {
	var req savingsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := parseAmountField(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	updated, err := s.goals.AddSavings(r.PathValue("id"), amount)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusNotFound, "goal not found")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
