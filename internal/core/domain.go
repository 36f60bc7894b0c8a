package core

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"

	Bill         ReminderType = "bill"
	Subscription ReminderType = "subscription"
)

type (
	TransactionType string

	ReminderType string

	// Date is a civil date without a time component. It marshals as
	// "2006-01-02", the format the mobile clients send for due dates.
	Date struct {
		time.Time
	}

	// Transaction is a single income or expense entry. Amounts are in
	// minor currency units (whole rupiah) and never negative; direction
	// is carried by Type.
	Transaction struct {
		ID       string          `json:"id"`
		Amount   int64           `json:"amount"`
		Type     TransactionType `json:"type"`
		Category string          `json:"category"`
		Date     time.Time       `json:"date"`
		Note     string          `json:"note,omitempty"`
	}

	// Goal is a savings goal. CurrentAmount is maintained by the goal
	// store and never exceeds TargetAmount.
	Goal struct {
		ID            string    `json:"id"`
		Category      string    `json:"category"`
		Title         string    `json:"title"`
		TargetAmount  int64     `json:"targetAmount"`
		MonthlyAmount int64     `json:"monthlyAmount"`
		CurrentAmount int64     `json:"currentAmount"`
		Note          string    `json:"note,omitempty"`
		CreatedAt     time.Time `json:"createdAt"`
		TargetDate    *Date     `json:"targetDate,omitempty"`
		Icon          string    `json:"icon"`
	}

	// Reminder is a bill or subscription due on a date. Category is only
	// meaningful for subscriptions. ReminderTime holds the lead days
	// before the due date as a string, the way the clients encode it.
	Reminder struct {
		ID           string       `json:"id"`
		Type         ReminderType `json:"type"`
		Name         string       `json:"name"`
		Amount       int64        `json:"amount"`
		Date         Date         `json:"date"`
		Category     string       `json:"category,omitempty"`
		ReminderTime string       `json:"reminderTime"`
		CreatedAt    time.Time    `json:"createdAt"`
		Paid         bool         `json:"paid"`
	}

	// UserProfile is the singleton account record, replaced wholesale on
	// save. PhotoURI is an opaque reference owned by the client.
	UserProfile struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		PhotoURI string `json:"photoUri,omitempty"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid type")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyCategory = errors.New("empty category")
	ErrEmptyTitle    = errors.New("empty title")
	ErrEmptyName     = errors.New("empty name")
	ErrInvalidTarget = errors.New("invalid target amount")
	ErrNotFound      = errors.New("not found")
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return ErrInvalidDate
	}
	d.Time = t
	return nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (t Transaction) Validate() error {
	if t.Amount < 0 {
		return ErrInvalidAmount
	}
	if t.Type != Income && t.Type != Expense {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (g Goal) Validate() error {
	if g.TargetAmount <= 0 {
		return ErrInvalidTarget
	}
	if g.MonthlyAmount < 0 || g.CurrentAmount < 0 || g.CurrentAmount > g.TargetAmount {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(g.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (r Reminder) Validate() error {
	if r.Type != Bill && r.Type != Subscription {
		return ErrInvalidType
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if r.Amount < 0 {
		return ErrInvalidAmount
	}
	if r.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// LeadDays decodes ReminderTime. Unparseable or negative values count as
// zero lead days rather than an error; a bad client value should never
// keep a reminder from firing on its due date.
func (r Reminder) LeadDays() int {
	n, err := strconv.Atoi(strings.TrimSpace(r.ReminderTime))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// DefaultProfile is the profile used until the user edits theirs.
func DefaultProfile() UserProfile {
	return UserProfile{
		Name:  "Ahmad Nazar",
		Email: "ahmadnazar@gmail.com",
		Phone: "0812 3456 7890",
	}
}
