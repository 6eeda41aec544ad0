package web

// tables.go binds data tables to HTTP routes.
//
// Every table page exposes the same routes under its path:
//
//	GET  {path}                       full page (loading state) or HTMX partial
//	GET  {path}/{id}                  detail card
//	POST {path}/actions/{kind}/{id}   row action, state in the query string
//	POST {path}/buttons/{index}       quick-action button
//
// Full-page requests render the table in its loading state inside a region
// that fetches the populated table on load. After a mutation HTMX clients
// get the refreshed table and an HX-Trigger toast; plain clients are
// redirected back to the table with a notice parameter.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JonMunkholm/PartnerConsole/internal/datatable"
	"github.com/JonMunkholm/PartnerConsole/internal/logging"
	"github.com/JonMunkholm/PartnerConsole/internal/web/templates"
)

// paramNotice carries a toast message across a redirect.
const paramNotice = "notice"

// tableScope collects what one request's table callbacks report back.
type tableScope struct {
	redirect string
	notice   string
}

// Navigate records a drill-through destination.
func (sc *tableScope) Navigate(dest string) { sc.redirect = dest }

// tablePage is one table-backed console page.
type tablePage struct {
	name     string
	title    string
	subtitle string
	path     string

	// configure returns the table definition. Callbacks report into sc.
	configure func(sc *tableScope) datatable.Config
	// fetch loads the records for state and sets cfg.Pagination.
	fetch func(ctx context.Context, state datatable.State, cfg *datatable.Config) ([]datatable.Record, error)
	// find loads one record by its row id.
	find func(ctx context.Context, id string) (datatable.Record, error)

	detail  []datatable.Column
	heading func(datatable.Record) string
	notices map[datatable.ActionKind]string
}

// open builds the table for a request. A loading table fetches nothing.
func (p *tablePage) open(ctx context.Context, q url.Values, sc *tableScope, loading bool) (*datatable.Table, []datatable.Record, error) {
	cfg := p.configure(sc)

	var records []datatable.Record
	if loading {
		cfg.Loading = true
	} else {
		var err error
		if records, err = p.fetch(ctx, datatable.DecodeState(q), &cfg); err != nil {
			return nil, nil, err
		}
	}

	t, err := datatable.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("%s table: %w", p.name, err)
	}
	t.Restore(q)
	return t, records, nil
}

// mountTable registers p's routes and any page-specific extras.
func (s *Server) mountTable(r chi.Router, p *tablePage, extra ...func(chi.Router)) {
	r.Route(p.path, func(r chi.Router) {
		for _, fn := range extra {
			fn(r)
		}
		r.Get("/", s.handleTable(p))
		r.Get("/{id}", s.handleDetail(p))
		r.Group(func(r chi.Router) {
			r.Use(s.actionLimiter.middleware)
			r.Post("/actions/{kind}/{id}", s.handleAction(p))
			r.Post("/buttons/{index}", s.handleButton(p))
		})
	})
}

func (s *Server) handleTable(p *tablePage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "HX-Request")
		q := r.URL.Query()

		if isHTMX(r) {
			s.renderTable(w, r, p, q, "")
			return
		}

		t, _, err := p.open(r.Context(), q, &tableScope{}, true)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		s.render(w, r, http.StatusOK, templates.Layout(
			templates.Page{Title: p.title, Active: p.name, Notice: q.Get(paramNotice)},
			templates.Join(
				templates.PageHeader(p.title, p.subtitle),
				templates.LazyTable(p.name+"-region", t.Href(nil), t.Render(nil)),
			),
		))
	}
}

// renderTable writes the populated (or empty) table fragment.
func (s *Server) renderTable(w http.ResponseWriter, r *http.Request, p *tablePage, q url.Values, notice string) {
	t, records, err := p.open(r.Context(), q, &tableScope{}, false)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if notice != "" {
		setNoticeTrigger(w, notice)
	}
	s.render(w, r, http.StatusOK, t.Render(records))
}

func (s *Server) handleAction(p *tablePage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		rawKind := chi.URLParam(r, "kind")
		id := chi.URLParam(r, "id")

		kind, ok := datatable.ParseActionKind(rawKind)
		if !ok {
			s.respondError(w, r, fmt.Errorf("unknown action %q", rawKind))
			return
		}

		sc := &tableScope{}
		t, _, err := p.open(ctx, r.URL.Query(), sc, true)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		rec, err := p.find(ctx, id)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		if err := t.Invoke(ctx, kind, rec); err != nil {
			s.respondError(w, r, fmt.Errorf("%s %s: %w", kind, id, err))
			return
		}
		logging.ForTable(ctx, p.name).Info("row action", "action", string(kind), "row", id)

		if sc.redirect != "" {
			s.redirect(w, r, sc.redirect)
			return
		}
		notice := sc.notice
		if notice == "" {
			notice = p.notices[kind]
		}
		s.afterMutation(w, r, p, t, notice)
	}
}

func (s *Server) handleButton(p *tablePage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		raw := chi.URLParam(r, "index")
		index, err := strconv.Atoi(raw)
		if err != nil {
			s.respondError(w, r, fmt.Errorf("%w: %q", datatable.ErrButtonUnavailable, raw))
			return
		}

		sc := &tableScope{}
		t, _, err := p.open(ctx, r.URL.Query(), sc, true)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		if err := t.Press(ctx, index); err != nil {
			s.respondError(w, r, err)
			return
		}
		logging.ForTable(ctx, p.name).Info("button pressed", "button", index, "label", t.Config().Buttons[index].Label)

		if sc.redirect != "" {
			s.redirect(w, r, sc.redirect)
			return
		}
		s.afterMutation(w, r, p, t, sc.notice)
	}
}

func (s *Server) handleDetail(p *tablePage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		rec, err := p.find(ctx, chi.URLParam(r, "id"))
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		t, _, err := p.open(ctx, nil, &tableScope{}, true)
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		card, err := datatable.New(datatable.Config{ID: p.name + "-detail", Columns: p.detail})
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		title := p.heading(rec)
		s.render(w, r, http.StatusOK, templates.Layout(
			templates.Page{Title: title, Active: p.name, Notice: r.URL.Query().Get(paramNotice)},
			templates.DetailPage(title, p.path, card.Card(rec), detailActions(t, rec)),
		))
	}
}

var detailLabels = map[datatable.ActionKind]string{
	datatable.ActionEdit:    "Edit",
	datatable.ActionDelete:  "Delete",
	datatable.ActionApprove: "Approve",
	datatable.ActionReject:  "Reject",
	datatable.ActionAssign:  "Assign",
}

// detailActions lists the row actions of rec other than view.
func detailActions(t *datatable.Table, rec datatable.Record) []templates.ActionButton {
	actions := t.Config().Actions
	var out []templates.ActionButton
	for _, kind := range actions.Available(rec) {
		if kind == datatable.ActionView {
			continue
		}
		label := detailLabels[kind]
		if kind == datatable.ActionAssign && actions.AssignText != "" {
			label = actions.AssignText
		}
		out = append(out, templates.ActionButton{
			Label:  label,
			Action: t.ActionPath(kind, rec),
			Danger: kind == datatable.ActionDelete || kind == datatable.ActionReject,
		})
	}
	return out
}

// afterMutation returns the client to the table it acted on.
func (s *Server) afterMutation(w http.ResponseWriter, r *http.Request, p *tablePage, t *datatable.Table, notice string) {
	href := t.Href(nil)
	if isHTMX(r) {
		w.Header().Set("HX-Push-Url", href)
		s.renderTable(w, r, p, t.Query(), notice)
		return
	}
	http.Redirect(w, r, withNotice(href, notice), http.StatusSeeOther)
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, dest string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// render buffers c so a failed render still produces an error response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		s.respondError(w, r, fmt.Errorf("render: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.FromContext(r.Context()).Warn("write response", "error", err)
	}
}

func setNoticeTrigger(w http.ResponseWriter, notice string) {
	b, err := json.Marshal(map[string]string{"notice": notice})
	if err != nil {
		return
	}
	w.Header().Set("HX-Trigger", string(b))
}

func withNotice(href, notice string) string {
	if notice == "" {
		return href
	}
	sep := "?"
	if strings.Contains(href, "?") {
		sep = "&"
	}
	return href + sep + paramNotice + "=" + url.QueryEscape(notice)
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", raw, err)
	}
	return id, nil
}
