// Package analytics computes read-only views over the transaction ledger.
// Everything here is a pure function of its input; no store access, no
// persistence, no clock except where a reference time is passed in.
package analytics

import (
	"math"
	"sort"
	"time"

	"zenny/internal/core"
)

// Heatmap severity thresholds, in rupiah.
const (
	heatmapMinorBelow  = 20_000
	heatmapMediumBelow = 100_000
)

// Balance returns income minus expenses over the whole ledger.
func Balance(txs []core.Transaction) int64 {
	var balance int64
	for _, t := range txs {
		switch t.Type {
		case core.Income:
			balance += t.Amount
		case core.Expense:
			balance -= t.Amount
		}
	}
	return balance
}

// IncomeTotal sums all income amounts.
func IncomeTotal(txs []core.Transaction) int64 {
	var total int64
	for _, t := range txs {
		if t.Type == core.Income {
			total += t.Amount
		}
	}
	return total
}

// ExpenseTotal sums all expense amounts.
func ExpenseTotal(txs []core.Transaction) int64 {
	var total int64
	for _, t := range txs {
		if t.Type == core.Expense {
			total += t.Amount
		}
	}
	return total
}

// DayGroup is one calendar day of history.
type DayGroup struct {
	Date         string             `json:"date"` // 2006-01-02
	Label        string             `json:"label"`
	Transactions []core.Transaction `json:"transactions"`
}

var (
	weekdayNames = [...]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}
	monthNames   = [...]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}
)

// DayLabel renders a group heading: "Hari Ini", "Kemarin", or an
// Indonesian weekday with day and short month ("Kamis, 28 Agu").
func DayLabel(day, now time.Time) string {
	y1, m1, d1 := day.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Hari Ini"
	}
	y2, m2, d2 = now.AddDate(0, 0, -1).Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Kemarin"
	}
	return weekdayNames[day.Weekday()] + ", " +
		day.Format("2") + " " + monthNames[day.Month()-1]
}

// GroupByDay partitions transactions by the date portion of their
// timestamp, newest day first. Transactions keep their relative order
// inside each group. now anchors the Hari Ini/Kemarin labels.
func GroupByDay(txs []core.Transaction, now time.Time) []DayGroup {
	byDay := make(map[string][]core.Transaction)
	for _, t := range txs {
		key := t.Date.Format("2006-01-02")
		byDay[key] = append(byDay[key], t)
	}

	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	groups := make([]DayGroup, 0, len(keys))
	for _, k := range keys {
		day, _ := time.Parse("2006-01-02", k)
		groups = append(groups, DayGroup{
			Date:         k,
			Label:        DayLabel(day, now),
			Transactions: byDay[k],
		})
	}
	return groups
}

// ByMonth returns the transactions whose date falls in the given month of
// any year. Cross-year collisions are not distinguished; the clients only
// offer a month picker.
func ByMonth(txs []core.Transaction, month time.Month) []core.Transaction {
	var out []core.Transaction
	for _, t := range txs {
		if t.Date.Month() == month {
			out = append(out, t)
		}
	}
	return out
}

// WeekBucket is one bar of the weekly spending chart.
type WeekBucket struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
}

// WeeklyExpenses buckets a month's expenses into four ranges of days:
// 1-7, 8-14, 15-21 and 22 to end of month. Days past 28 land in the
// fourth bucket.
func WeeklyExpenses(monthTxs []core.Transaction) []WeekBucket {
	buckets := []WeekBucket{
		{Name: "Minggu 1"}, {Name: "Minggu 2"}, {Name: "Minggu 3"}, {Name: "Minggu 4"},
	}
	for _, t := range monthTxs {
		if t.Type != core.Expense {
			continue
		}
		idx := (t.Date.Day() - 1) / 7
		if idx > 3 {
			idx = 3
		}
		buckets[idx].Amount += t.Amount
	}
	return buckets
}

// HeatmapDay is one cell of the spending heatmap.
type HeatmapDay struct {
	Day   int `json:"day"`
	Level int `json:"level"`
}

// Heatmap assigns each calendar day 1-31 a severity level from that
// day's expenses: 0 none, 1 under 20.000, 2 under 100.000, 3 otherwise.
//
// The level of a day with several expenses comes from the most recently
// added one alone; amounts do not accumulate. That matches the shipped
// behavior the clients render, so it is kept rather than fixed.
func Heatmap(monthTxs []core.Transaction) []HeatmapDay {
	days := make([]HeatmapDay, 31)
	for i := range days {
		days[i].Day = i + 1
	}
	// The ledger is newest-first; walk backwards so the newest entry for
	// a day is the one that sticks.
	for i := len(monthTxs) - 1; i >= 0; i-- {
		t := monthTxs[i]
		if t.Type != core.Expense {
			continue
		}
		day := t.Date.Day() - 1
		switch {
		case t.Amount < heatmapMinorBelow:
			days[day].Level = 1
		case t.Amount < heatmapMediumBelow:
			days[day].Level = 2
		default:
			days[day].Level = 3
		}
	}
	return days
}

// CategoryShare is one entry of the top-spending ranking.
type CategoryShare struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
	Percent  int    `json:"percent"`
}

// TopCategories ranks a month's expense categories by total spend and
// returns at most the top three. Percent is each category's share of the
// top-three sum, not of the whole month's spend; the shipped ranking
// works this way and the clients label it accordingly.
func TopCategories(monthTxs []core.Transaction) []CategoryShare {
	totals := make(map[string]int64)
	for _, t := range monthTxs {
		if t.Type != core.Expense {
			continue
		}
		totals[t.Category] += t.Amount
	}

	shares := make([]CategoryShare, 0, len(totals))
	for category, amount := range totals {
		shares = append(shares, CategoryShare{Category: category, Amount: amount})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].Category < shares[j].Category
	})
	if len(shares) > 3 {
		shares = shares[:3]
	}

	var topTotal int64
	for _, s := range shares {
		topTotal += s.Amount
	}
	if topTotal > 0 {
		for i := range shares {
			shares[i].Percent = int(math.Round(float64(shares[i].Amount) / float64(topTotal) * 100))
		}
	}
	return shares
}
