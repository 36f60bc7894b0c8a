package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"zenny/internal/core"
)

// maxBodySize limits request bodies to 64 KiB; payloads are single
// records, never bulk uploads.
const maxBodySize = 64 << 10

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeBody decodes a JSON request body into v, rejecting unknown
// fields and oversized payloads.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	return nil
}

// parseMonth extracts the month query parameter, defaulting to the
// current month. Out-of-range values fall back to the current month.
func parseMonth(r *http.Request) time.Month {
	month := time.Now().Month()
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			month = time.Month(m)
		}
	}
	return month
}

// parseAmountField accepts an amount either as a JSON number or as a
// formatted string ("1.200.000") the way the mobile clients send it.
func parseAmountField(raw json.RawMessage) (int64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, core.ErrInvalidAmount
	}
	s = strings.Trim(s, `"`)
	return core.ParseAmount(s)
}

// statusForValidation maps domain validation errors to HTTP statuses.
func statusForValidation(err error) int {
	if errors.Is(err, core.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusUnprocessableEntity
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}
