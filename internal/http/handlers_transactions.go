package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"zenny/internal/analytics"
	"zenny/internal/core"
	"zenny/internal/log"
)

type transactionRequest struct {
	Amount   json.RawMessage `json:"amount"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
	Note     string          `json:"note"`
}

type transactionListResponse struct {
	Groups []analytics.DayGroup `json:"groups"`
	Count  int                  `json:"count"`
}

type summaryResponse struct {
	Balance          int64  `json:"balance"`
	Income           int64  `json:"income"`
	Expense          int64  `json:"expense"`
	BalanceFormatted string `json:"balanceFormatted"`
}

type smartviewResponse struct {
	Month         int                       `json:"month"`
	Weekly        []analytics.WeekBucket    `json:"weekly"`
	Heatmap       []analytics.HeatmapDay    `json:"heatmap"`
	TopCategories []analytics.CategoryShare `json:"topCategories"`
}

// handleListTransactions returns the ledger grouped by calendar day,
// newest day first. An optional month query narrows it to one month.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs := s.transactions.List()
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		txs = analytics.ByMonth(txs, parseMonth(r))
	}

	count := len(txs)
	writeJSON(w, http.StatusOK, transactionListResponse{
		Groups: analytics.GroupByDay(txs, time.Now()),
		Count:  count,
	})
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := parseAmountField(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	date := time.Now()
	if v := strings.TrimSpace(req.Date); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid date, want YYYY-MM-DD")
			return
		}
		date = parsed
	}

	t := core.Transaction{
		Amount:   amount,
		Type:     core.TransactionType(strings.TrimSpace(req.Type)),
		Category: sanitizeInput(req.Category),
		Date:     date,
		Note:     sanitizeInput(req.Note),
	}
	if err := t.Validate(); err != nil {
		writeError(w, statusForValidation(err), err.Error())
		return
	}

	added := s.ledger.Add(r.Context(), t)
	writeJSON(w, http.StatusCreated, added)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.ledger.Delete(r.Context(), id) {
		writeError(w, http.StatusNotFound, "transaction not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSummary returns the whole-ledger balance and totals.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	balance := s.transactions.Balance()
	writeJSON(w, http.StatusOK, summaryResponse{
		Balance:          balance,
		Income:           s.transactions.IncomeTotal(),
		Expense:          s.transactions.ExpenseTotal(),
		BalanceFormatted: core.FormatRupiah(balance),
	})
}

// handleSmartview returns the monthly chart payloads: weekly expense
// buckets, the spending heatmap, and the top categories ranking.
func (s *Server) handleSmartview(w http.ResponseWriter, r *http.Request) {
	month := parseMonth(r)
	key := s.smartviewKey(month)

	if cached, found := s.smartviewCache.Get(key); found {
		log.FromContext(r.Context()).DebugContext(r.Context(), "Smartview cache hit",
			log.FieldMonth, int(month))
		writeJSON(w, http.StatusOK, cached)
		return
	}

	monthTxs := analytics.ByMonth(s.transactions.List(), month)
	resp := smartviewResponse{
		Month:         int(month),
		Weekly:        analytics.WeeklyExpenses(monthTxs),
		Heatmap:       analytics.Heatmap(monthTxs),
		TopCategories: analytics.TopCategories(monthTxs),
	}

	s.smartviewCache.Set(key, resp)
	writeJSON(w, http.StatusOK, resp)
}

// smartviewKey includes the ledger revision so any mutation makes the
// previous entry unreachable instead of requiring explicit invalidation.
func (s *Server) smartviewKey(month time.Month) string {
	return month.String() + "@" + strconv.FormatInt(s.transactions.Revision(), 10)
}
