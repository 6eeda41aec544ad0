// Package datatable renders a collection of schema-agnostic records as a
// searchable, filterable, sortable, paginated grid.
//
// A Table is configured once with columns, actions, and a pagination mode,
// then turned into a View for a given record collection. The pipeline is
// fixed: text search, categorical filter, and date range (ANDed), then a
// stable sort, then pagination. Rendering produces a multi-column table for
// wide viewports and a stacked card list for narrow ones from the same rows.
//
// The table performs no I/O and owns no data. Mutations are delegated to
// the caller through ActionSet callbacks, page changes through
// Controlled.OnChange, and row drill-through through a Navigator.
package datatable

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Navigator accepts a row-click destination.
type Navigator interface {
	Navigate(dest string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(dest string)

// Navigate calls f(dest).
func (f NavigatorFunc) Navigate(dest string) { f(dest) }

// Config is the caller-supplied table definition.
type Config struct {
	// ID prefixes element ids; defaults to "table".
	ID string
	// BasePath is the URL the table's links and forms point at.
	BasePath string

	Columns []Column
	Actions *ActionSet
	Buttons []Button

	SearchPlaceholder string
	FilterOptions     []FilterOption
	FilterKey         string
	DateFilterKey     string

	// Pagination defaults to Internal{PageSize: DefaultPageSize}.
	Pagination Pagination

	// RowKey names the field identifying a record for Lookup and action URLs.
	RowKey string
	// RowURL resolves a row's drill-through destination; "" means none.
	RowURL func(Record) string

	Loading      bool
	EmptyMessage string
	Class        string
}

// DefaultPageSize is used when no pagination mode is configured.
const DefaultPageSize = 10

// Table is one configured table instance and its transient state.
type Table struct {
	cfg   Config
	state State
}

// New validates cfg and returns a table in its initial state.
func New(cfg Config) (*Table, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.ID == "" {
		cfg.ID = "table"
	}
	if cfg.SearchPlaceholder == "" {
		cfg.SearchPlaceholder = "Search..."
	}
	if cfg.Pagination == nil {
		cfg.Pagination = Internal{PageSize: DefaultPageSize}
	}
	t := &Table{cfg: cfg}
	t.state.Reset()
	return t, nil
}

// validate checks every referenced key is a usable field name. Keys are not
// required to be present in any record.
func (c Config) validate() error {
	var errs []error
	for i, col := range c.Columns {
		if strings.TrimSpace(col.Key) == "" {
			errs = append(errs, fmt.Errorf("column %d: empty key", i))
		}
		if it := col.ImageText; it != nil {
			if strings.TrimSpace(it.ImageKey) == "" || strings.TrimSpace(it.TextKey) == "" {
				errs = append(errs, fmt.Errorf("column %q: image+text needs image and text keys", col.Key))
			}
		}
	}
	if len(c.FilterOptions) > 0 && strings.TrimSpace(c.FilterKey) == "" {
		errs = append(errs, errors.New("filter options given without a filter key"))
	}
	switch p := c.Pagination.(type) {
	case nil:
	case Internal:
		if p.PageSize <= 0 {
			errs = append(errs, fmt.Errorf("page size %d must be positive", p.PageSize))
		}
	case Controlled:
		if p.PageSize <= 0 {
			errs = append(errs, fmt.Errorf("page size %d must be positive", p.PageSize))
		}
		if p.Page < 1 {
			errs = append(errs, fmt.Errorf("controlled page %d must be >= 1", p.Page))
		}
		if p.Total < 0 {
			errs = append(errs, fmt.Errorf("controlled total %d must be >= 0", p.Total))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("datatable config: %w", errors.Join(errs...))
	}
	return nil
}

// Config returns the table's configuration with defaults applied.
func (t *Table) Config() Config { return t.cfg }

// State returns a copy of the current state.
func (t *Table) State() State { return t.state }

// Reset restores the freshly-mounted state.
func (t *Table) Reset() { t.state.Reset() }

// Restore replaces the state with one decoded from query parameters.
// Sort keys that do not name a sortable column are dropped.
func (t *Table) Restore(v url.Values) {
	s := DecodeState(v)
	if s.Sort.Key != "" && !t.sortable(s.Sort.Key) {
		s.Sort = SortState{}
	}
	t.state = s
}

// Query encodes the current state as query parameters.
func (t *Table) Query() url.Values { return t.state.Encode() }

// SetSearch changes the search text.
func (t *Table) SetSearch(q string) {
	t.state.Search = q
	t.firstPage()
}

// SelectFilter activates a categorical filter value; "all" clears it.
func (t *Table) SelectFilter(value string) {
	if value == "" {
		value = FilterAll
	}
	t.state.ActiveFilter = value
	t.firstPage()
}

// SetDateRange changes the date range filter.
func (t *Table) SetDateRange(d DateRange) {
	t.state.Dates = d
	t.firstPage()
}

// ToggleSort handles a header click. Clicks on unknown or non-sortable
// columns are ignored and report false.
func (t *Table) ToggleSort(key string) bool {
	if !t.sortable(key) {
		return false
	}
	t.state.Sort = t.state.Sort.Toggle(key)
	return true
}

// GoTo changes page. Internal pagination updates the table's own state;
// controlled pagination forwards the page to the caller.
func (t *Table) GoTo(page int) {
	if page < 1 {
		page = 1
	}
	switch p := t.cfg.Pagination.(type) {
	case Controlled:
		if p.OnChange != nil {
			p.OnChange(page)
		}
	default:
		t.state.Page = page
	}
}

// firstPage returns internal pagination to page 1 after the filtered set changes.
func (t *Table) firstPage() {
	if _, ok := t.cfg.Pagination.(Internal); ok {
		t.state.Page = 1
	}
}

func (t *Table) sortable(key string) bool {
	for _, col := range t.cfg.Columns {
		if col.Key == key {
			return col.Sortable
		}
	}
	return false
}

// Mode is the mutually exclusive rendering state.
type Mode int

const (
	ModeLoading Mode = iota
	ModeEmpty
	ModePopulated
)

func (m Mode) String() string {
	switch m {
	case ModeLoading:
		return "loading"
	case ModeEmpty:
		return "empty"
	default:
		return "populated"
	}
}

// View is the derived, render-ready result of one pass over the records.
type View struct {
	Mode Mode
	Rows []Record

	Total     int
	Page      int
	PageSize  int
	PageCount int

	HasPrev bool
	HasNext bool

	// From and To are the 1-based positions shown in "Showing From to To of Total".
	From int
	To   int
}

// View derives the visible rows for records. Nil records are treated as empty.
func (t *Table) View(records []Record) View {
	size := t.cfg.Pagination.size()
	v := View{PageSize: size, Page: 1, PageCount: 1}

	if t.cfg.Loading {
		v.Mode = ModeLoading
		return v
	}
	if len(records) == 0 {
		v.Mode = ModeEmpty
		return v
	}
	v.Mode = ModePopulated

	rows := Sort(Filter(records, t.cfg.Columns, t.criteria()), t.state.Sort)

	switch p := t.cfg.Pagination.(type) {
	case Controlled:
		v.Page = p.Page
		v.Total = p.Total
		v.Rows = rows
	default:
		v.Total = len(rows)
		// A stale page past the end shows the last page.
		v.Page = min(max(t.state.Page, 1), pageCount(v.Total, size))
		v.Rows = slicePage(rows, v.Page, size)
	}

	v.PageCount = pageCount(v.Total, size)
	v.HasPrev = v.Page > 1
	v.HasNext = len(v.Rows) >= size && v.Page < v.PageCount
	if v.Total > 0 {
		v.From = (v.Page-1)*size + 1
		v.To = min(v.Page*size, v.Total)
	}
	return v
}

func (t *Table) criteria() Criteria {
	return Criteria{
		Search:       t.state.Search,
		FilterKey:    t.cfg.FilterKey,
		ActiveFilter: t.state.ActiveFilter,
		DateKey:      t.cfg.DateFilterKey,
		Dates:        t.state.Dates,
	}
}

// RowURL returns rec's drill-through destination, or "".
func (t *Table) RowURL(rec Record) string {
	if t.cfg.RowURL == nil {
		return ""
	}
	return t.cfg.RowURL(rec)
}

// ClickRow resolves rec's destination and navigates when it is non-empty.
func (t *Table) ClickRow(rec Record, nav Navigator) bool {
	dest := t.RowURL(rec)
	if dest == "" || nav == nil {
		return false
	}
	nav.Navigate(dest)
	return true
}

// Invoke runs the named row action with rec.
func (t *Table) Invoke(ctx context.Context, kind ActionKind, rec Record) error {
	fn := t.cfg.Actions.handler(kind)
	if fn == nil {
		return fmt.Errorf("%w: %s", ErrActionUnavailable, kind)
	}
	if kind == ActionAssign {
		show := t.cfg.Actions.ShowAssign
		if show == nil || !show(rec) {
			return fmt.Errorf("%w: %s", ErrActionUnavailable, kind)
		}
	}
	return fn(ctx, rec)
}

// Press runs the OnClick handler of the button at index.
func (t *Table) Press(ctx context.Context, index int) error {
	if index < 0 || index >= len(t.cfg.Buttons) || t.cfg.Buttons[index].OnClick == nil {
		return fmt.Errorf("%w: %d", ErrButtonUnavailable, index)
	}
	return t.cfg.Buttons[index].OnClick(ctx)
}

// Lookup finds the record whose RowKey field equals id.
func (t *Table) Lookup(records []Record, id string) (Record, bool) {
	if t.cfg.RowKey == "" {
		return nil, false
	}
	for _, rec := range records {
		if rec.Text(t.cfg.RowKey) == id {
			return rec, true
		}
	}
	return nil, false
}

// RowID returns rec's identifier, or "" when no RowKey is configured.
func (t *Table) RowID(rec Record) string {
	if t.cfg.RowKey == "" {
		return ""
	}
	return rec.Text(t.cfg.RowKey)
}

// Href returns the table's URL for the state produced by mutate, leaving the
// current state untouched.
func (t *Table) Href(mutate func(*State)) string {
	s := t.state
	if mutate != nil {
		mutate(&s)
	}
	q := s.Encode().Encode()
	if q == "" {
		return t.basePath()
	}
	return t.basePath() + "?" + q
}

// ActionPath returns the endpoint invoking kind on rec.
func (t *Table) ActionPath(kind ActionKind, rec Record) string {
	return fmt.Sprintf("%s/actions/%s/%s", strings.TrimSuffix(t.basePath(), "/"), kind, url.PathEscape(t.RowID(rec)))
}

func (t *Table) basePath() string {
	if t.cfg.BasePath == "" {
		return "/"
	}
	return t.cfg.BasePath
}
