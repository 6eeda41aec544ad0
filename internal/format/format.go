// Package format renders numbers, amounts, dates, and times for display.
package format

// Every function accepts the loosely typed values that arrive in table
// records (numbers, numeric strings, decimals, timestamps) and falls back
// to the input text when a value cannot be interpreted, so a malformed
// field shows as-is instead of breaking the row.

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/JonMunkholm/PartnerConsole/internal/datatable"
)

// CurrencyCode is the ISO code prefixed to formatted amounts.
const CurrencyCode = "NGN"

// Number formats v with thousands separators and exactly decimals fraction
// digits. NaN formats as "0".
func Number(v float64, decimals int) string {
	if math.IsNaN(v) {
		return "0"
	}
	if decimals < 0 {
		decimals = 0
	}
	p := message.NewPrinter(language.English)
	return p.Sprintf("%v", number.Decimal(v,
		number.MinFractionDigits(decimals),
		number.MaxFractionDigits(decimals),
	))
}

// Currency formats an amount as "NGN 1,500.50". It accepts numbers,
// decimals, and numeric strings; anything else is returned as text.
func Currency(v any) string {
	d, ok := ToDecimal(v)
	if !ok {
		return datatable.DisplayValue(v)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	return sign + CurrencyCode + " " + Number(d.Round(2).InexactFloat64(), 2)
}

// ToDecimal converts a numeric field value to a decimal.
func ToDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case *decimal.Decimal:
		if n == nil {
			return decimal.Decimal{}, false
		}
		return *n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case float32:
		return finite(float64(n))
	case float64:
		return finite(n)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		d, err := decimal.NewFromString(s)
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

func finite(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(f), true
}

// Date formats a date as "Wednesday, May 1, 2024".
func Date(v any) string {
	t, ok := toTime(v)
	if !ok {
		return datatable.DisplayValue(v)
	}
	return t.Format("Monday, January 2, 2006")
}

// ShortDate formats a date as "May 1, 2024".
func ShortDate(v any) string {
	t, ok := toTime(v)
	if !ok {
		return datatable.DisplayValue(v)
	}
	return t.Format("Jan 2, 2006")
}

// Time formats an "HH:MM" or "HH:MM:SS" clock time as "02:30 PM".
func Time(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05", time.Kitchen} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("03:04 PM")
		}
	}
	return s
}

func toTime(v any) (time.Time, bool) {
	return datatable.Record{"v": v}.Time("v")
}
