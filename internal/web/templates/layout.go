package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/PartnerConsole/internal/markup"
)

// Script sources loaded by every page. The CSP in the server allows these hosts.
const (
	HTMXSrc     = "https://unpkg.com/htmx.org@1.9.12"
	TailwindSrc = "https://cdn.tailwindcss.com"
)

// NavItem is one sidebar link.
type NavItem struct {
	Key   string
	Label string
	Href  string
}

// Nav lists the console sections in sidebar order.
var Nav = []NavItem{
	{Key: "appointments", Label: "Appointments", Href: "/appointments"},
	{Key: "patients", Label: "Patients", Href: "/patients"},
}

// Page describes the chrome around a page body.
type Page struct {
	Title  string
	Active string // NavItem.Key highlighted in the sidebar
	Notice string // toast shown once on load
}

// Layout renders a full HTML document with the sidebar, toast region, and body.
func Layout(p Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := markup.NewWriter(ctx, w)
		h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		h.Text(p.Title + " | Partner Console")
		h.Raw(`</title><script`)
		h.URL("src", TailwindSrc)
		h.Raw(`></script><script`)
		h.URL("src", HTMXSrc)
		h.Raw(`></script><script src="/static/app.js" defer></script></head>`)
		h.Raw(`<body class="bg-gray-50 text-gray-900"><div class="flex min-h-screen">`)
		h.Component(Sidebar(p.Active))
		h.Raw(`<main class="flex-1 min-w-0 p-4 md:p-10">`)
		h.Raw(`<div id="toasts" class="fixed top-4 right-4 z-50 flex flex-col gap-2" aria-live="polite">`)
		if p.Notice != "" {
			h.Component(Toast(p.Notice))
		}
		h.Raw(`</div><div id="alerts"></div>`)
		h.Component(body)
		h.Raw(`</main></div></body></html>`)
		return h.Err()
	})
}

// Sidebar renders the navigation column.
func Sidebar(active string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := markup.NewWriter(ctx, w)
		h.Raw(`<nav class="hidden md:flex w-64 flex-col bg-white border-r border-gray-200 p-6 gap-2">`)
		h.Raw(`<a href="/" class="text-lg font-semibold mb-6">Partner Console</a>`)
		for _, item := range Nav {
			class := "px-3 py-2 rounded-md text-sm font-medium text-gray-600 hover:bg-gray-100"
			if item.Key == active {
				class = "px-3 py-2 rounded-md text-sm font-medium bg-blue-50 text-blue-700"
			}
			h.Raw(`<a`)
			h.URL("href", item.Href)
			h.Attr("class", class)
			if item.Key == active {
				h.Raw(` aria-current="page"`)
			}
			h.Raw(`>`)
			h.Text(item.Label)
			h.Raw(`</a>`)
		}
		h.Raw(`</nav>`)
		return h.Err()
	})
}

// PageHeader renders a page title and its subtitle.
func PageHeader(title, subtitle string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := markup.NewWriter(ctx, w)
		h.Raw(`<header class="mb-8"><h1 class="text-2xl font-semibold text-gray-900">`)
		h.Text(title)
		h.Raw(`</h1>`)
		if subtitle != "" {
			h.Raw(`<p class="text-sm text-gray-500 mt-1">`)
			h.Text(subtitle)
			h.Raw(`</p>`)
		}
		h.Raw(`</header>`)
		return h.Err()
	})
}

// Join renders components one after another.
func Join(parts ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := markup.NewWriter(ctx, w)
		for _, c := range parts {
			h.Component(c)
		}
		return h.Err()
	})
}
