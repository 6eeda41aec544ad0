package datatable

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/PartnerConsole/internal/markup"
)

// Cell renders one column of rec. Precedence: image+text composite, custom
// renderer, date-like string normalised to YYYY-MM-DD, raw value.
func (t *Table) Cell(col Column, rec Record) templ.Component {
	if col.ImageText != nil {
		return imageTextCell(col.ImageText, rec)
	}
	v, _ := rec.Value(col.Key)
	if col.Render != nil {
		if c := col.Render(v, rec); c != nil {
			return c
		}
		return templ.NopComponent
	}
	return Text(DisplayValue(v))
}

// DisplayValue formats a raw value the way a default cell shows it.
func DisplayValue(v any) string {
	if s, ok := v.(string); ok {
		if d, ok := ParseDate(s); ok {
			return d.Format(time.DateOnly)
		}
		return s
	}
	return toText(v)
}

// Text is a component writing s as escaped text.
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

// imageTextCell renders the thumbnail beside the text field. A broken image
// is swapped for the fallback by the browser without surfacing an error.
func imageTextCell(it *ImageText, rec Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := markup.NewWriter(ctx, w)
		text := rec.Text(it.TextKey)
		width, height := it.size()

		hw.Raw(`<div class="flex items-center gap-3"><span class="w-[40%] flex justify-end"><img`)
		hw.URL("src", it.ImageSource(rec))
		hw.Attr("alt", text)
		hw.Attr("class", markup.Class("object-cover rounded-md flex justify-center", it.Class))
		hw.Attr("style", "width: "+width+"; height: "+height+";")
		if it.FallbackSrc != "" {
			hw.URL("data-fallback", it.FallbackSrc)
			hw.Raw(` onerror="this.onerror=null;this.src=this.dataset.fallback"`)
		}
		hw.Raw(`></span><span class="font-small text-[12px] text-gray-900 text-right w-[60%] flex justify-start text-wrap">`)
		hw.Text(text)
		hw.Raw(`</span></div>`)
		return hw.Err()
	})
}
