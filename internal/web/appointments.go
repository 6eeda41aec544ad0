package web

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/PartnerConsole/internal/datatable"
	"github.com/JonMunkholm/PartnerConsole/internal/format"
	"github.com/JonMunkholm/PartnerConsole/internal/logging"
	"github.com/JonMunkholm/PartnerConsole/internal/store"
	"github.com/JonMunkholm/PartnerConsole/internal/web/templates"
)

const appointmentsPath = "/appointments"

func appointmentURL(rec datatable.Record) string {
	id := rec.Text("session_id")
	if id == "" {
		return ""
	}
	return appointmentsPath + "/" + url.PathEscape(id)
}

var appointmentDetailColumns = []datatable.Column{
	{Key: "full_name", Header: "Full name"},
	{Key: "email", Header: "Email"},
	{Key: "phone_number", Header: "Phone"},
	{Key: "address", Header: "Address"},
	{Key: "service_needed", Header: "Service"},
	{Key: "where_it_hurts", Header: "Where it hurts"},
	{Key: "pain_durations", Header: "Pain duration"},
	{Key: "limitations", Header: "Limitations"},
	{Key: "session_status", Header: "Status", Render: statusCell},
	{Key: "amount", Header: "Amount", Render: currencyCell},
	{Key: "appointment_date", Header: "Date", Render: longDateCell},
	{Key: "appointment_time", Header: "Time", Render: timeCell},
	{Key: "created_at", Header: "Booked on", Render: longDateCell},
}

// appointmentsPage pages through appointments on the server: the store
// returns one page and the total, and the table never re-slices it.
func (s *Server) appointmentsPage() *tablePage {
	size := min(s.cfg.Table.AppointmentsPageSize, s.cfg.Table.MaxPageSize)

	return &tablePage{
		name:      "appointments",
		title:     "Appointments",
		subtitle:  "Review and manage booked sessions",
		path:      appointmentsPath,
		configure: s.appointmentsConfig,
		fetch: func(ctx context.Context, state datatable.State, cfg *datatable.Config) ([]datatable.Record, error) {
			return s.fetchAppointments(ctx, state.Page, size, cfg)
		},
		find:    s.findAppointment,
		detail:  appointmentDetailColumns,
		heading: func(rec datatable.Record) string { return rec.Text("full_name") },
		notices: map[datatable.ActionKind]string{
			datatable.ActionApprove: "Appointment approved",
			datatable.ActionReject:  "Appointment rejected",
			datatable.ActionDelete:  "Appointment deleted",
		},
	}
}

func (s *Server) appointmentsConfig(sc *tableScope) datatable.Config {
	return datatable.Config{
		ID:       "appointments",
		BasePath: appointmentsPath,
		Columns: []datatable.Column{
			{Key: "full_name", Header: "Name", Sortable: true, Searchable: true},
			{Key: "email", Header: "Email", Searchable: true},
			{Key: "phone_number", Header: "Phone", Searchable: true},
			{Key: "service_needed", Header: "Service"},
			{Key: "session_status", Header: "Status", Render: statusCell},
			{Key: "appointment_date", Header: "Date", Sortable: true},
			{Key: "amount", Header: "Amount", Sortable: true, Render: currencyCell},
		},
		Actions: &datatable.ActionSet{
			View: func(_ context.Context, rec datatable.Record) error {
				sc.Navigate(appointmentURL(rec))
				return nil
			},
			Approve: s.setAppointmentStatus(store.StatusCompleted),
			Reject:  s.setAppointmentStatus(store.StatusCancelled),
			Delete: func(ctx context.Context, rec datatable.Record) error {
				id, err := parseID(rec.Text("session_id"))
				if err != nil {
					return err
				}
				return s.backend.DeleteAppointment(ctx, id)
			},
		},
		Buttons: []datatable.Button{
			{Label: "New appointment", Variant: datatable.VariantPrimary, Href: appointmentsPath + "/new"},
			{Label: "Cancel expired", Variant: datatable.VariantOutline, OnClick: func(ctx context.Context) error {
				n, err := s.backend.CancelExpired(ctx, s.now())
				if err != nil {
					return err
				}
				sc.notice = fmt.Sprintf("%d expired appointments cancelled", n)
				return nil
			}},
		},
		SearchPlaceholder: "Search by name, email or phone...",
		FilterKey:         "session_status",
		FilterOptions: []datatable.FilterOption{
			{Label: "All", Value: datatable.FilterAll},
			{Label: "Pending", Value: store.StatusPending},
			{Label: "Completed", Value: store.StatusCompleted},
			{Label: "Cancelled", Value: store.StatusCancelled},
		},
		DateFilterKey: "appointment_date",
		RowKey:        "session_id",
		RowURL:        appointmentURL,
		EmptyMessage:  "No appointments found",
	}
}

func (s *Server) setAppointmentStatus(status string) datatable.ActionFunc {
	return func(ctx context.Context, rec datatable.Record) error {
		id, err := parseID(rec.Text("session_id"))
		if err != nil {
			return err
		}
		return s.backend.SetAppointmentStatus(ctx, id, status)
	}
}

// fetchAppointments loads one page. A page past the end is clamped to the
// last one so a stale link still shows rows.
func (s *Server) fetchAppointments(ctx context.Context, page, size int, cfg *datatable.Config) ([]datatable.Record, error) {
	page = max(page, 1)
	list, total, err := s.backend.ListAppointments(ctx, page, size)
	if err != nil {
		return nil, err
	}
	if last := lastPage(total, size); page > last {
		page = last
		if list, total, err = s.backend.ListAppointments(ctx, page, size); err != nil {
			return nil, err
		}
	}

	cfg.Pagination = datatable.Controlled{Page: page, Total: total, PageSize: size}

	records := make([]datatable.Record, 0, len(list))
	for _, a := range list {
		records = append(records, a.ToRecord())
	}
	return records, nil
}

func lastPage(total, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

func (s *Server) findAppointment(ctx context.Context, raw string) (datatable.Record, error) {
	id, err := parseID(raw)
	if err != nil {
		return nil, err
	}
	a, err := s.backend.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}
	return a.ToRecord(), nil
}

// appointmentRoutes adds the booking form to the appointments page.
func (s *Server) appointmentRoutes(r chi.Router) {
	r.Get("/new", s.handleNewAppointment)
	r.With(s.actionLimiter.middleware).Post("/", s.handleCreateAppointment)
}

// handleNewAppointment serves the booking page. It is a full page, so an
// HTMX request is sent to it as a navigation instead of a swap.
func (s *Server) handleNewAppointment(w http.ResponseWriter, r *http.Request) {
	if isHTMX(r) {
		s.redirect(w, r, r.URL.RequestURI())
		return
	}
	s.renderAppointmentForm(w, r, nil, nil)
}

func (s *Server) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, fmt.Errorf("parse form: %w", err))
		return
	}

	in, err := appointmentInput(r.PostForm)
	if err == nil {
		var a store.Appointment
		if a, err = s.backend.CreateAppointment(ctx, in); err == nil {
			logging.ForTable(ctx, "appointments").Info("appointment created",
				"row", a.SessionID.String(),
				"service", a.ServiceNeeded,
			)
			http.Redirect(w, r, withNotice(appointmentURL(a.ToRecord()), "Appointment created"), http.StatusSeeOther)
			return
		}
	}

	if isHTMX(r) || wantsJSON(r) {
		s.respondError(w, r, err)
		return
	}
	msg := MapError(err)
	logging.FromContext(ctx).Warn("appointment rejected", "error", err, "code", msg.Code)
	s.renderAppointmentForm(w, r, r.PostForm, &msg)
}

func (s *Server) renderAppointmentForm(w http.ResponseWriter, r *http.Request, values url.Values, problem *UserMessage) {
	types, err := s.backend.ListSessionTypes(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	services := make([]templates.ServiceOption, 0, len(types))
	for _, st := range types {
		services = append(services, templates.ServiceOption{
			ID:    st.ID.String(),
			Name:  st.Name,
			Price: format.Currency(st.Amount),
		})
	}

	status := http.StatusOK
	var alert templ.Component
	if problem != nil {
		alert = templates.ErrorAlert(problem.Message, problem.Action, problem.Code)
		status = StatusFor(*problem)
	}
	s.render(w, r, status, templates.Layout(
		templates.Page{Title: "New appointment", Active: "appointments"},
		templates.Join(
			templates.PageHeader("New appointment", "Book a session for a client"),
			templates.AppointmentForm(appointmentsPath, services, values, alert),
		),
	))
}

// appointmentInput reads the booking form.
func appointmentInput(form url.Values) (store.AppointmentInput, error) {
	in := store.AppointmentInput{
		FullName:        strings.TrimSpace(form.Get("full_name")),
		Email:           strings.TrimSpace(form.Get("email")),
		PhoneNumber:     strings.TrimSpace(form.Get("phone_number")),
		Address:         strings.TrimSpace(form.Get("address")),
		WhereItHurts:    strings.TrimSpace(form.Get("where_it_hurts")),
		PainDurations:   strings.TrimSpace(form.Get("pain_durations")),
		Limitations:     strings.TrimSpace(form.Get("limitations")),
		AppointmentTime: strings.TrimSpace(form.Get("appointment_time")),
	}
	if raw := strings.TrimSpace(form.Get("session_type_id")); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return in, err
		}
		in.SessionTypeID = id
	}
	if raw := strings.TrimSpace(form.Get("appointment_date")); raw != "" {
		d, ok := datatable.ParseDate(raw)
		if !ok {
			return in, fmt.Errorf("invalid date %q", raw)
		}
		in.AppointmentDate = d
	}
	return in, in.Validate()
}
