package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/PartnerConsole/internal/markup"
)

// ErrorAlert renders a user-facing error with its suggested action and the
// code support staff look up.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := markup.NewWriter(ctx, w)
		h.Raw(`<div class="rounded-md bg-red-50 border border-red-200 p-4 mb-4" role="alert"`)
		h.Attr("data-code", code)
		h.Raw(`><p class="text-sm font-medium text-red-800">`)
		h.Text(message)
		h.Raw(`</p>`)
		if action != "" {
			h.Raw(`<p class="text-sm text-red-700 mt-1">`)
			h.Text(action)
			h.Raw(`</p>`)
		}
		if code != "" {
			h.Raw(`<p class="text-xs text-red-500 mt-2">Code: `)
			h.Text(code)
			h.Raw(`</p>`)
		}
		h.Raw(`</div>`)
		return h.Err()
	})
}

// Toast renders a dismissable notification. app.js removes it after a delay.
func Toast(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := markup.NewWriter(ctx, w)
		h.Raw(`<div class="rounded-md bg-gray-900 text-white text-sm px-4 py-3 shadow-lg" role="status" data-toast>`)
		h.Text(message)
		h.Raw(`</div>`)
		return h.Err()
	})
}
