package datatable

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// DateRange bounds a date filter. A zero From or To is unset.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Set reports whether both bounds are present.
func (d DateRange) Set() bool {
	return !d.From.IsZero() && !d.To.IsZero()
}

// Contains reports whether t falls within the inclusive range.
func (d DateRange) Contains(t time.Time) bool {
	return !t.Before(d.From) && !t.After(d.To)
}

// Criteria holds the active filters. All of them are ANDed.
type Criteria struct {
	Search       string
	FilterKey    string
	ActiveFilter string
	DateKey      string
	Dates        DateRange
}

// Filter returns the records matching c. The input slice is not modified.
//
// Text search matches when any searchable column contains the search text,
// ignoring case. The categorical filter compares the filter field for
// case-insensitive equality unless the active value is "all" or empty. The
// date filter applies only when both bounds are set; records whose date
// field does not parse are dropped.
func Filter(records []Record, columns []Column, c Criteria) []Record {
	fold := cases.Fold()
	search := fold.String(c.Search)
	active := fold.String(c.ActiveFilter)
	useCategory := c.FilterKey != "" && active != "" && active != FilterAll
	useDates := c.DateKey != "" && c.Dates.Set()

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if search != "" && !matchesSearch(fold, rec, columns, search) {
			continue
		}
		if useCategory && fold.String(rec.Text(c.FilterKey)) != active {
			continue
		}
		if useDates {
			t, ok := rec.Time(c.DateKey)
			if !ok || !c.Dates.Contains(t) {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

func matchesSearch(fold cases.Caser, rec Record, columns []Column, search string) bool {
	for _, col := range columns {
		if !col.Searchable {
			continue
		}
		if strings.Contains(fold.String(rec.Text(col.searchKey())), search) {
			return true
		}
	}
	return false
}
