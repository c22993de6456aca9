package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestExpenseValidate_Order(t *testing.T) {
	cases := []struct {
		name string
		e    Expense
		want error
	}{
		{"all empty reports date first", Expense{}, ErrDateRequired},
		{"bad date", Expense{Date: "05/01/2024", Title: "Coffee", Amount: decimal.NewFromInt(1)}, ErrInvalidDate},
		{"whitespace title", Expense{Date: "2024-01-05", Title: "   ", Amount: decimal.NewFromInt(1)}, ErrTitleRequired},
		{"title checked before amount", Expense{Date: "2024-01-05", Title: "", Amount: decimal.Zero}, ErrTitleRequired},
		{"zero amount", Expense{Date: "2024-01-05", Title: "Coffee", Amount: decimal.Zero}, ErrAmountNotPositive},
		{"negative amount", Expense{Date: "2024-01-05", Title: "Coffee", Amount: decimal.NewFromInt(-5)}, ErrAmountNotPositive},
		{"valid", Expense{Date: "2024-01-05", Title: "Coffee", Amount: decimal.NewFromInt(15000)}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.e.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount(" 12,5 ")
	if err != nil {
		t.Fatalf("ParseAmount: %v", err)
	}
	if !d.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("ParseAmount = %s, want 12.5", d)
	}

	if _, err := ParseAmount("abc"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("ParseAmount(abc) err = %v, want ErrInvalidAmount", err)
	}
	if _, err := ParseAmount(""); !errors.Is(err, ErrAmountNotPositive) {
		t.Fatalf("ParseAmount(\"\") err = %v, want ErrAmountNotPositive", err)
	}
}

func TestMonthKeyAndTotal(t *testing.T) {
	exps := []Expense{
		{Date: "2024-01-05", Amount: decimal.NewFromInt(15000)},
		{Date: "2024-02-10", Amount: decimal.NewFromInt(85000)},
	}
	if got := exps[1].MonthKey(); got != "2024-02" {
		t.Fatalf("MonthKey = %q, want 2024-02", got)
	}
	if got := Total(exps); !got.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("Total = %s, want 100000", got)
	}
}

func TestThemeToggleIcon(t *testing.T) {
	if ThemeDark.ToggleIcon() != "☀" || ThemeLight.ToggleIcon() != "☾" {
		t.Fatal("toggle icon should advertise the opposite mode")
	}
	if ThemeDark.Opposite() != ThemeLight || ThemeLight.Opposite() != ThemeDark {
		t.Fatal("Opposite should flip the mode")
	}
	if _, err := ParseTheme("sepia"); err == nil {
		t.Fatal("ParseTheme accepted an unknown theme")
	}
}
