package datatable

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/PartnerConsole/internal/markup"
)

// Render returns the component for the table's current mode.
func (t *Table) Render(records []Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		v := t.View(records)
		hw := markup.NewWriter(ctx, w)

		hw.Raw(`<div`)
		hw.Attr("id", t.cfg.ID)
		hw.Attr("class", "w-full flex flex-col gap-[20px]")
		hw.Attr("data-mode", v.Mode.String())
		hw.Raw(`>`)

		switch v.Mode {
		case ModeLoading:
			t.writeToolbar(hw, true)
			hw.Raw(`<div class="w-full flex justify-center items-center py-16" role="status" aria-busy="true">`)
			hw.Raw(`<div class="flex flex-col items-center gap-4"><div class="h-12 w-12 rounded-full border-4 border-blue-500 border-t-transparent animate-spin"></div>`)
			hw.Raw(`<p class="text-gray-500 text-lg">Loading data...</p></div></div>`)
		case ModeEmpty:
			t.writeToolbar(hw, false)
			hw.Raw(`<div class="w-full flex flex-col justify-center items-center py-48 text-center" data-empty>`)
			hw.Raw(`<h3 class="text-xl font-semibold text-gray-800 mb-2">`)
			hw.Text(t.cfg.EmptyMessage)
			hw.Raw(`</h3></div>`)
		default:
			t.writeToolbar(hw, false)
			t.writeFilters(hw)
			t.writeTable(hw, v)
			t.writeCards(hw, v)
			t.writeFooter(hw, v)
		}

		hw.Raw(`</div>`)
		return hw.Err()
	})
}

// Card renders rec as a stacked label/value list, the narrow-viewport form
// of one row.
func (t *Table) Card(rec Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := markup.NewWriter(ctx, w)
		t.writeCard(hw, rec)
		return hw.Err()
	})
}

func (t *Table) writeToolbar(hw *markup.Writer, disabled bool) {
	hw.Raw(`<div class="flex flex-col md:flex-row md:items-center gap-4 w-full">`)

	hw.Raw(`<form method="get" class="relative flex-grow w-full md:w-[50%]" role="search"`)
	hw.URL("action", t.basePath())
	hw.Raw(`>`)
	t.writeHidden(hw, ParamSearch, ParamPage)
	hw.Raw(`<input type="search" class="pl-10 pr-4 py-2 w-full border rounded-md focus:outline-none focus:ring-2 focus:ring-gray-100"`)
	hw.Attr("name", ParamSearch)
	hw.Attr("placeholder", t.cfg.SearchPlaceholder)
	hw.Attr("value", t.state.Search)
	if disabled {
		hw.Raw(` disabled`)
	}
	hw.Raw(`></form>`)

	hw.Raw(`<div class="flex gap-2 w-full md:w-[30%] justify-end">`)
	for i, b := range t.cfg.Buttons {
		t.writeButton(hw, i, b, disabled)
	}
	hw.Raw(`</div></div>`)
}

var variantClasses = map[Variant]string{
	VariantPrimary:   "bg-blue-600 text-white hover:bg-blue-700",
	VariantSecondary: "bg-gray-600 text-white hover:bg-gray-700",
	VariantOutline:   "border border-gray-300 text-gray-700 hover:bg-gray-50",
}

func (t *Table) writeButton(hw *markup.Writer, index int, b Button, disabled bool) {
	const base = "px-4 py-2 rounded-md text-sm font-medium transition-colors"
	if disabled || (b.Href == "" && b.OnClick == nil) {
		hw.Raw(`<button type="button" disabled class="` + base + ` bg-gray-200 text-gray-400 cursor-not-allowed">`)
		hw.Text(b.Label)
		hw.Raw(`</button>`)
		return
	}
	variant := variantClasses[b.Variant]
	if variant == "" {
		variant = variantClasses[VariantPrimary]
	}
	// Button links leave the table, so they opt out of the region's boosting.
	if b.Href != "" {
		hw.Raw(`<a hx-boost="false"`)
		hw.URL("href", b.Href)
		hw.Attr("class", markup.Class(base, variant))
		hw.Raw(`>`)
		hw.Text(b.Label)
		hw.Raw(`</a>`)
		return
	}
	hw.Raw(`<form method="post"`)
	hw.URL("action", t.withQuery(fmt.Sprintf("%s/buttons/%d", trimSlash(t.basePath()), index)))
	hw.Raw(`><button type="submit"`)
	hw.Attr("class", markup.Class(base, variant))
	hw.Raw(`>`)
	hw.Text(b.Label)
	hw.Raw(`</button></form>`)
}

func (t *Table) writeFilters(hw *markup.Writer) {
	hw.Raw(`<div class="flex flex-col md:flex-row md:items-center justify-between gap-4">`)

	hw.Raw(`<div class="flex flex-wrap gap-2">`)
	for _, opt := range t.cfg.FilterOptions {
		class := "bg-gray-100 text-gray-700 hover:bg-gray-200"
		if t.state.ActiveFilter == opt.Value {
			class = "bg-blue-100 text-blue-700"
		}
		value := opt.Value
		hw.Raw(`<a`)
		hw.URL("href", t.Href(func(s *State) {
			s.ActiveFilter = value
			s.Page = 1
		}))
		hw.Attr("class", markup.Class("px-4 py-2 rounded-md text-sm font-medium transition-colors", class))
		hw.Raw(`>`)
		hw.Text(opt.Label)
		hw.Raw(`</a>`)
	}
	hw.Raw(`</div>`)

	if t.cfg.DateFilterKey != "" {
		hw.Raw(`<form method="get" class="flex items-center gap-2"`)
		hw.URL("action", t.basePath())
		hw.Raw(`>`)
		t.writeHidden(hw, ParamFrom, ParamTo, ParamPage)
		hw.Raw(`<input type="date" class="px-3 py-2 border rounded-md text-sm"`)
		hw.Attr("name", ParamFrom)
		hw.Attr("value", formatDay(t.state.Dates.From))
		hw.Raw(`><span class="text-gray-500">to</span><input type="date" class="px-3 py-2 border rounded-md text-sm"`)
		hw.Attr("name", ParamTo)
		hw.Attr("value", formatDay(t.state.Dates.To))
		hw.Raw(`><button type="submit" class="px-3 py-2 text-sm rounded-md bg-gray-100 hover:bg-gray-200">Apply</button></form>`)
	}
	hw.Raw(`</div>`)
}

func (t *Table) writeTable(hw *markup.Writer, v View) {
	hw.Raw(`<div class="hidden md:block w-full overflow-x-auto"><table`)
	hw.Attr("class", markup.Class("min-w-full divide-y divide-gray-200", t.cfg.Class))
	hw.Raw(`><thead class="bg-gray-50"><tr>`)
	for _, col := range t.cfg.Columns {
		t.writeHeader(hw, col)
	}
	if t.cfg.Actions != nil {
		hw.Raw(`<th class="px-6 py-3">Actions</th>`)
	}
	hw.Raw(`</tr></thead><tbody class="bg-white divide-y divide-gray-200">`)

	for _, rec := range v.Rows {
		hw.Raw(`<tr`)
		if id := t.RowID(rec); id != "" {
			hw.Attr("data-row", id)
		}
		hw.Raw(`>`)
		dest := t.RowURL(rec)
		for _, col := range t.cfg.Columns {
			hw.Raw(`<td class="px-6 py-4 whitespace-wrap text-sm text-gray-500 cursor-pointer"`)
			writeRowLink(hw, dest)
			hw.Raw(`>`)
			hw.Component(t.Cell(col, rec))
			hw.Raw(`</td>`)
		}
		if t.cfg.Actions != nil {
			hw.Raw(`<td class="px-6 py-4 whitespace-nowrap text-sm text-gray-500"><div class="flex gap-2">`)
			t.writeActions(hw, rec)
			hw.Raw(`</div></td>`)
		}
		hw.Raw(`</tr>`)
	}
	hw.Raw(`</tbody></table></div>`)
}

func (t *Table) writeHeader(hw *markup.Writer, col Column) {
	if !col.Sortable {
		hw.Raw(`<th class="px-6 py-3 text-left text-sm font-medium text-gray-500 tracking-wider">`)
		hw.Text(col.Header)
		hw.Raw(`</th>`)
		return
	}

	active := t.state.Sort.Key == col.Key
	ariaSort := "none"
	if active {
		ariaSort = "ascending"
		if t.state.Sort.Dir == Desc {
			ariaSort = "descending"
		}
	}
	key := col.Key
	hw.Raw(`<th class="px-6 py-3 text-left text-sm font-medium text-gray-500 tracking-wider cursor-pointer"`)
	hw.Attr("aria-sort", ariaSort)
	hw.Raw(`><a class="flex items-center gap-2"`)
	hw.URL("href", t.Href(func(s *State) { s.Sort = s.Sort.Toggle(key) }))
	hw.Raw(`>`)
	hw.Text(col.Header)
	hw.Raw(`<span class="flex flex-col text-[8px] leading-none">`)
	hw.Raw(`<span class="` + indicatorClass(active && t.state.Sort.Dir != Desc) + `">&#9650;</span>`)
	hw.Raw(`<span class="` + indicatorClass(active && t.state.Sort.Dir == Desc) + `">&#9660;</span>`)
	hw.Raw(`</span></a></th>`)
}

func indicatorClass(on bool) string {
	if on {
		return "text-blue-600"
	}
	return "text-gray-400"
}

func (t *Table) writeCards(hw *markup.Writer, v View) {
	hw.Raw(`<div class="md:hidden w-full">`)
	for _, rec := range v.Rows {
		t.writeCard(hw, rec)
	}
	hw.Raw(`</div>`)
}

func (t *Table) writeCard(hw *markup.Writer, rec Record) {
	dest := t.RowURL(rec)
	hw.Raw(`<div class="bg-white p-4 rounded-lg shadow-md mb-4" data-card`)
	if id := t.RowID(rec); id != "" {
		hw.Attr("data-row", id)
	}
	hw.Raw(`>`)
	for _, col := range t.cfg.Columns {
		hw.Raw(`<div class="mb-3 flex justify-between"`)
		writeRowLink(hw, dest)
		hw.Raw(`><div class="text-sm font-medium text-gray-500">`)
		hw.Text(col.Header)
		hw.Raw(`</div><div class="text-sm text-gray-700">`)
		hw.Component(t.Cell(col, rec))
		hw.Raw(`</div></div>`)
	}
	if t.cfg.Actions != nil {
		hw.Raw(`<div class="flex gap-2 mt-3">`)
		t.writeActions(hw, rec)
		hw.Raw(`</div>`)
	}
	hw.Raw(`</div>`)
}

// writeRowLink makes the element navigate to dest on click.
func writeRowLink(hw *markup.Writer, dest string) {
	if dest == "" {
		return
	}
	hw.URL("data-href", dest)
	hw.Raw(` onclick="window.location.assign(this.dataset.href)"`)
}

var actionStyles = map[ActionKind]struct{ label, class string }{
	ActionView:    {"View", "text-blue-600 hover:text-blue-900"},
	ActionEdit:    {"Edit", "text-green-600 hover:text-green-900"},
	ActionDelete:  {"Delete", "text-red-600 hover:text-red-900"},
	ActionApprove: {"Approve", "text-green-600 hover:text-green-900"},
	ActionReject:  {"Reject", "text-red-600 hover:text-red-900"},
	ActionAssign:  {"Assign", "text-red-600 hover:text-red-900"},
}

// writeActions renders one form per available action. Clicks stop
// propagating so the row's own navigation does not also fire.
func (t *Table) writeActions(hw *markup.Writer, rec Record) {
	for _, kind := range t.cfg.Actions.Available(rec) {
		style := actionStyles[kind]
		label := style.label
		if kind == ActionAssign && t.cfg.Actions.AssignText != "" {
			label = t.cfg.Actions.AssignText
		}
		hw.Raw(`<form method="post" onclick="event.stopPropagation()"`)
		hw.URL("action", t.withQuery(t.ActionPath(kind, rec)))
		hw.Raw(`><button type="submit"`)
		hw.Attr("class", style.class)
		hw.Attr("data-action", string(kind))
		hw.Raw(`>`)
		hw.Text(label)
		hw.Raw(`</button></form>`)
	}
}

func (t *Table) writeFooter(hw *markup.Writer, v View) {
	hw.Raw(`<div class="flex flex-col md:flex-row items-center justify-between mt-4 gap-4"><div class="text-sm text-gray-500">`)
	hw.Text(fmt.Sprintf("Showing %d to %d of %d entries", v.From, v.To, v.Total))
	hw.Raw(`</div><div class="flex gap-2 items-center">`)

	t.writePageLink(hw, "prev", "Previous page", v.Page-1, v.HasPrev)
	hw.Raw(`<span class="text-sm text-gray-700">`)
	hw.Text(fmt.Sprintf("Page %d of %d", v.Page, v.PageCount))
	hw.Raw(`</span>`)
	t.writePageLink(hw, "next", "Next page", v.Page+1, v.HasNext)

	hw.Raw(`</div></div>`)
}

func (t *Table) writePageLink(hw *markup.Writer, rel, label string, page int, enabled bool) {
	const class = "p-2 text-gray-700 bg-gray-100 rounded-md hover:bg-gray-200"
	glyph := "&#8249;"
	if rel == "next" {
		glyph = "&#8250;"
	}
	if !enabled {
		hw.Raw(`<button type="button" disabled class="` + class + ` opacity-50 cursor-not-allowed"`)
		hw.Attr("aria-label", label)
		hw.Attr("data-page", rel)
		hw.Raw(`>` + glyph + `</button>`)
		return
	}
	hw.Raw(`<a class="` + class + `"`)
	hw.Attr("rel", rel)
	hw.Attr("aria-label", label)
	hw.Attr("data-page", rel)
	hw.URL("href", t.Href(func(s *State) { s.Page = page }))
	hw.Raw(`>` + glyph + `</a>`)
}

// writeHidden carries the current state through a GET form, except the
// parameters the form itself edits.
func (t *Table) writeHidden(hw *markup.Writer, skip ...string) {
	values := t.Query()
	for _, name := range skip {
		values.Del(name)
	}
	for _, name := range []string{ParamSearch, ParamFilter, ParamFrom, ParamTo, ParamSort, ParamDir, ParamPage} {
		if val := values.Get(name); val != "" {
			hw.Raw(`<input type="hidden"`)
			hw.Attr("name", name)
			hw.Attr("value", val)
			hw.Raw(`>`)
		}
	}
}

// withQuery appends the current state to path so the host can return to it.
func (t *Table) withQuery(path string) string {
	q := t.Query()
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func trimSlash(p string) string {
	if len(p) > 1 && p[len(p)-1] == '/' {
		return p[:len(p)-1]
	}
	if p == "/" {
		return ""
	}
	return p
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}
