package store

import "zenny/internal/analytics"

// Derived reads over the current ledger. These are conveniences for
// callers that hold the store rather than a snapshot; the math lives in
// the analytics package.

// Balance returns income minus expenses.
func (s *Transactions) Balance() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return analytics.Balance(s.items)
}

// IncomeTotal returns the sum of all income amounts.
func (s *Transactions) IncomeTotal() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return analytics.IncomeTotal(s.items)
}

// ExpenseTotal returns the sum of all expense amounts.
func (s *Transactions) ExpenseTotal() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return analytics.ExpenseTotal(s.items)
}
