// Package model defines the expense record and the presentation preference.
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for every stored expense date.
const DateLayout = "2006-01-02"

// Validation errors, checked in this order by Validate.
var (
	ErrDateRequired      = errors.New("date required")
	ErrInvalidDate       = errors.New("invalid date")
	ErrTitleRequired     = errors.New("title required")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrAmountNotPositive = errors.New("amount must be > 0")
)

// Expense is one user-entered spending entry.
type Expense struct {
	ID     int64
	Date   string // YYYY-MM-DD
	Title  string
	Amount decimal.Decimal
}

// MonthKey returns the YYYY-MM prefix used to group expenses for invoicing.
func (e Expense) MonthKey() string {
	if len(e.Date) < 7 {
		return e.Date
	}
	return e.Date[:7]
}

// Validate checks the record invariants, short-circuiting on the first failure.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Date) == "" {
		return ErrDateRequired
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return ErrInvalidDate
	}
	if strings.TrimSpace(e.Title) == "" {
		return ErrTitleRequired
	}
	if !e.Amount.IsPositive() {
		return ErrAmountNotPositive
	}
	return nil
}

// ParseAmount converts user input into an amount. A comma is accepted as the
// decimal mark. Empty input counts as a non-positive amount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrAmountNotPositive
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// Total sums the amounts of all expenses.
func Total(expenses []Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}
