// Package markup writes escaped HTML for hand-built templ components.
package markup

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Writer accumulates the first write error so component code can stay linear.
// Every method is a no-op once a write has failed.
type Writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

// NewWriter returns a Writer rendering child components with ctx.
func NewWriter(ctx context.Context, w io.Writer) *Writer {
	return &Writer{ctx: ctx, w: w}
}

// Raw writes s unescaped.
func (h *Writer) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Text writes s as escaped text.
func (h *Writer) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with value escaped.
func (h *Writer) Attr(name, value string) {
	h.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// URL writes a URL attribute, sanitized the way templ sanitizes href values.
func (h *Writer) URL(name, value string) {
	h.Attr(name, string(templ.URL(value)))
}

// Component renders c in place. A nil component writes nothing.
func (h *Writer) Component(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// Err returns the first write or render error.
func (h *Writer) Err() error { return h.err }

// Class joins the non-empty class lists with single spaces.
func Class(classes ...string) string {
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, " ")
}
