// Package core holds the domain model shared by the stores, analytics and
// the API layer.
//
// This file contains amount parsing and formatting. Amounts are whole
// rupiah held as int64; there is no fractional unit.
package core

import (
	"strconv"
	"strings"
)

// ParseAmount converts a user-entered amount string to rupiah.
//
// Digits may be grouped with dots or commas ("1.200.000"); signs and
// fractional parts are rejected. Zero is a valid amount (reminders may
// carry no amount); negative values cannot be expressed.
//
// Examples:
//
//	ParseAmount("50000") -> 50000, nil
//	ParseAmount("1.200.000") -> 1200000, nil
//	ParseAmount("-5") -> 0, ErrInvalidAmount
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Grouping separators only; "1.200.000" and "1,200,000" are common.
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", "")
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// FormatRupiah renders an amount as "Rp 1.200.000" with dot grouping.
func FormatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	if neg {
		return "-Rp " + b.String()
	}
	return "Rp " + b.String()
}
