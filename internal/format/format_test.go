package format

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		v        float64
		decimals int
		want     string
	}{
		{1000, 0, "1,000"},
		{25430.5, 2, "25,430.50"},
		{12, 0, "12"},
		{1234567, 0, "1,234,567"},
		{math.NaN(), 2, "0"},
	}

	for _, tt := range tests {
		if got := Number(tt.v, tt.decimals); got != tt.want {
			t.Errorf("Number(%v, %d) = %q, want %q", tt.v, tt.decimals, got, tt.want)
		}
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"int", 15000, "NGN 15,000.00"},
		{"float", 1500.5, "NGN 1,500.50"},
		{"decimal", decimal.RequireFromString("25000.75"), "NGN 25,000.75"},
		{"numeric string", "3200", "NGN 3,200.00"},
		{"grouped string", "1,200.10", "NGN 1,200.10"},
		{"negative", -42, "-NGN 42.00"},
		{"not a number", "free", "free"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.v); got != tt.want {
				t.Errorf("Currency(%v) = %q, want %q", tt.v, got, tt.want)
			}
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		v    any
		want string
	}{
		{"2024-05-01", "Wednesday, May 1, 2024"},
		{time.Date(2023, 12, 25, 10, 0, 0, 0, time.UTC), "Monday, December 25, 2023"},
		{"someday", "someday"},
	}

	for _, tt := range tests {
		if got := Date(tt.v); got != tt.want {
			t.Errorf("Date(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}

	if got := ShortDate("2024-05-01"); got != "May 1, 2024" {
		t.Errorf("ShortDate() = %q, want %q", got, "May 1, 2024")
	}
}

func TestTime(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"14:30", "02:30 PM"},
		{"09:05:00", "09:05 AM"},
		{"00:15", "12:15 AM"},
		{"noon", "noon"},
	}

	for _, tt := range tests {
		if got := Time(tt.in); got != tt.want {
			t.Errorf("Time(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
