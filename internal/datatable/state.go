package datatable

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// State is the table's transient UI state. It is owned by one Table and
// never persisted; hosts rebuild it from the request on every render.
type State struct {
	Search       string
	ActiveFilter string
	Dates        DateRange
	Sort         SortState
	Page         int
}

// Reset returns the state to its freshly-mounted value.
func (s *State) Reset() {
	*s = State{ActiveFilter: FilterAll, Page: 1}
}

// Query parameter names carrying the state between requests.
const (
	ParamSearch = "q"
	ParamFilter = "filter"
	ParamFrom   = "from"
	ParamTo     = "to"
	ParamSort   = "sort"
	ParamDir    = "dir"
	ParamPage   = "page"
)

// Encode writes the non-default parts of the state as query parameters.
func (s State) Encode() url.Values {
	v := url.Values{}
	if s.Search != "" {
		v.Set(ParamSearch, s.Search)
	}
	if s.ActiveFilter != "" && s.ActiveFilter != FilterAll {
		v.Set(ParamFilter, s.ActiveFilter)
	}
	if !s.Dates.From.IsZero() {
		v.Set(ParamFrom, s.Dates.From.Format(time.DateOnly))
	}
	if !s.Dates.To.IsZero() {
		v.Set(ParamTo, s.Dates.To.Format(time.DateOnly))
	}
	if s.Sort.Key != "" {
		v.Set(ParamSort, s.Sort.Key)
		v.Set(ParamDir, string(s.Sort.Dir))
	}
	if s.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(s.Page))
	}
	return v
}

// DecodeState reads a state from query parameters. Malformed values fall
// back to their defaults. The To bound covers its whole day. Search text is
// kept verbatim, surrounding spaces included.
func DecodeState(v url.Values) State {
	var s State
	s.Reset()

	s.Search = v.Get(ParamSearch)
	if f := strings.TrimSpace(v.Get(ParamFilter)); f != "" {
		s.ActiveFilter = f
	}
	if t, err := time.Parse(time.DateOnly, v.Get(ParamFrom)); err == nil {
		s.Dates.From = t
	}
	if t, err := time.Parse(time.DateOnly, v.Get(ParamTo)); err == nil {
		s.Dates.To = endOfDay(t)
	}
	if key := strings.TrimSpace(v.Get(ParamSort)); key != "" {
		s.Sort.Key = key
		s.Sort.Dir = Asc
		if v.Get(ParamDir) == string(Desc) {
			s.Sort.Dir = Desc
		}
	}
	if p, err := strconv.Atoi(v.Get(ParamPage)); err == nil && p > 1 {
		s.Page = p
	}
	return s
}

func endOfDay(t time.Time) time.Time {
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond)
}
