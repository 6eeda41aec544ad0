package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/PartnerConsole/internal/markup"
)

var badgeClasses = map[string]string{
	"pending":   "bg-yellow-100 text-yellow-800",
	"completed": "bg-green-100 text-green-800",
	"cancelled": "bg-red-100 text-red-800",
	"active":    "bg-green-100 text-green-800",
}

// BadgeClass returns the colour classes for a status value.
func BadgeClass(status string) string {
	if c, ok := badgeClasses[strings.ToLower(status)]; ok {
		return c
	}
	return "bg-gray-100 text-gray-800"
}

// StatusBadge renders status as a coloured pill.
func StatusBadge(status string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := markup.NewWriter(ctx, w)
		h.Raw(`<span`)
		h.Attr("class", "px-2 inline-flex text-xs leading-5 font-semibold rounded-full capitalize "+BadgeClass(status))
		h.Attr("data-status", status)
		h.Raw(`>`)
		h.Text(status)
		h.Raw(`</span>`)
		return h.Err()
	})
}

// LazyTable wraps placeholder in a region that replaces its content with
// src once the page has loaded. Links and forms inside the region are
// boosted so later state changes swap the region in place.
func LazyTable(id, src string, placeholder templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := markup.NewWriter(ctx, w)
		h.Raw(`<section class="bg-white rounded-lg shadow-sm p-4 md:p-6"`)
		h.Attr("id", id)
		h.URL("hx-get", src)
		h.Raw(` hx-trigger="load" hx-target="this" hx-swap="innerHTML" hx-boost="true">`)
		h.Component(placeholder)
		h.Raw(`</section>`)
		return h.Err()
	})
}

// ActionButton is a POST button shown on a detail page.
type ActionButton struct {
	Label  string
	Action string
	Danger bool
}

// DetailPage renders one record's card with a back link and its actions.
func DetailPage(title, backHref string, card templ.Component, actions []ActionButton) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := markup.NewWriter(ctx, w)
		h.Raw(`<a class="text-sm text-blue-600 hover:text-blue-800"`)
		h.URL("href", backHref)
		h.Raw(`>&larr; Back</a><div class="mt-4 max-w-2xl">`)
		h.Raw(`<h2 class="text-xl font-semibold text-gray-900 mb-4">`)
		h.Text(title)
		h.Raw(`</h2>`)
		h.Component(card)
		if len(actions) > 0 {
			h.Raw(`<div class="flex gap-3 mt-4">`)
			for _, a := range actions {
				class := "px-4 py-2 rounded-md text-sm font-medium bg-blue-600 text-white hover:bg-blue-700"
				if a.Danger {
					class = "px-4 py-2 rounded-md text-sm font-medium bg-red-600 text-white hover:bg-red-700"
				}
				h.Raw(`<form method="post"`)
				h.URL("action", a.Action)
				h.Raw(`><button type="submit"`)
				h.Attr("class", class)
				h.Raw(`>`)
				h.Text(a.Label)
				h.Raw(`</button></form>`)
			}
			h.Raw(`</div>`)
		}
		h.Raw(`</div>`)
		return h.Err()
	})
}
