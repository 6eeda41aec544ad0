package datatable

import (
	"net/url"
	"testing"
	"time"
)

func TestState_EncodeDefaultsIsEmpty(t *testing.T) {
	var s State
	s.Reset()
	if got := s.Encode(); len(got) != 0 {
		t.Errorf("Encode() = %v, want empty", got)
	}
}

func TestState_RoundTrip(t *testing.T) {
	s := State{
		Search:       "ann",
		ActiveFilter: "pending",
		Dates:        DateRange{From: day("2024-05-01"), To: endOfDay(day("2024-05-31"))},
		Sort:         SortState{Key: "date", Dir: Desc},
		Page:         4,
	}

	got := DecodeState(s.Encode())
	if got != s {
		t.Errorf("DecodeState(Encode()) = %+v, want %+v", got, s)
	}
}

func TestDecodeState_Malformed(t *testing.T) {
	v := url.Values{
		ParamFrom: {"yesterday"},
		ParamTo:   {"2024-13-01"},
		ParamPage: {"-2"},
		ParamDir:  {"sideways"},
		ParamSort: {"name"},
	}

	s := DecodeState(v)
	if !s.Dates.From.IsZero() || !s.Dates.To.IsZero() {
		t.Errorf("Dates = %+v, want zero", s.Dates)
	}
	if s.Page != 1 {
		t.Errorf("Page = %d, want 1", s.Page)
	}
	if s.Sort.Dir != Asc {
		t.Errorf("Sort.Dir = %q, want %q", s.Sort.Dir, Asc)
	}
	if s.ActiveFilter != FilterAll {
		t.Errorf("ActiveFilter = %q, want %q", s.ActiveFilter, FilterAll)
	}
}

func TestDecodeState_ToCoversWholeDay(t *testing.T) {
	s := DecodeState(url.Values{ParamFrom: {"2024-05-01"}, ParamTo: {"2024-05-01"}})
	evening := time.Date(2024, 5, 1, 18, 0, 0, 0, time.UTC)
	if !s.Dates.Contains(evening) {
		t.Errorf("range %+v does not contain %v", s.Dates, evening)
	}
}

func TestDecodeState_SearchKeptVerbatim(t *testing.T) {
	s := DecodeState(url.Values{ParamSearch: {"Ann "}})
	if s.Search != "Ann " {
		t.Errorf("Search = %q, want %q", s.Search, "Ann ")
	}

	tbl := mustNew(t, Config{Columns: []Column{{Key: "name", Searchable: true}}, Pagination: Internal{PageSize: 10}})
	tbl.Restore(url.Values{ParamSearch: {"ann "}})
	v := tbl.View([]Record{{"name": "Ann Lee"}, {"name": "Joann"}})
	if len(v.Rows) != 1 || v.Rows[0].Text("name") != "Ann Lee" {
		t.Errorf("rows = %v, want only Ann Lee", v.Rows)
	}
}
