package web

import (
	"context"
	"net/url"

	"github.com/JonMunkholm/PartnerConsole/internal/datatable"
	"github.com/JonMunkholm/PartnerConsole/internal/store"
)

const patientsPath = "/patients"

func patientURL(rec datatable.Record) string {
	id := rec.Text("id")
	if id == "" {
		return ""
	}
	return patientsPath + "/" + url.PathEscape(id)
}

// patientsPage loads every patient and lets the table page through them.
func (s *Server) patientsPage() *tablePage {
	size := min(s.cfg.Table.PageSize, s.cfg.Table.MaxPageSize)
	avatar := s.cfg.Table.FallbackAvatar

	return &tablePage{
		name:      "patients",
		title:     "Patients",
		subtitle:  "Everyone registered with the practice",
		path:      patientsPath,
		configure: func(sc *tableScope) datatable.Config { return s.patientsConfig(sc, size, avatar) },
		fetch: func(ctx context.Context, _ datatable.State, _ *datatable.Config) ([]datatable.Record, error) {
			list, err := s.backend.ListPatients(ctx)
			if err != nil {
				return nil, err
			}
			records := make([]datatable.Record, 0, len(list))
			for _, p := range list {
				records = append(records, p.ToRecord())
			}
			return records, nil
		},
		find: s.findPatient,
		detail: []datatable.Column{
			{Key: "name", Header: "Patient", ImageText: &datatable.ImageText{
				ImageKey: "photos", TextKey: "name", FallbackSrc: avatar, Width: "96px", Height: "96px",
			}},
			{Key: "email", Header: "Email"},
			{Key: "phone", Header: "Phone"},
			{Key: "last_visit", Header: "Last visit", Render: longDateCell},
			{Key: "next_appointment", Header: "Next appointment", Render: nextAppointmentCell},
			{Key: "status", Header: "Status", Render: statusCell},
		},
		heading: func(rec datatable.Record) string { return rec.Text("name") },
		notices: map[datatable.ActionKind]string{
			datatable.ActionAssign: "Patient marked active",
		},
	}
}

func (s *Server) patientsConfig(sc *tableScope, size int, avatar string) datatable.Config {
	return datatable.Config{
		ID:       "patients",
		BasePath: patientsPath,
		Columns: []datatable.Column{
			{Key: "name", Header: "Name", Sortable: true, Searchable: true, ImageText: &datatable.ImageText{
				ImageKey: "photos", TextKey: "name", FallbackSrc: avatar,
			}},
			{Key: "email", Header: "Email", Searchable: true},
			{Key: "phone", Header: "Phone", Searchable: true},
			{Key: "last_visit", Header: "Last visit", Sortable: true, Render: shortDateCell},
			{Key: "next_appointment", Header: "Next appointment", Sortable: true, Render: nextAppointmentCell},
			{Key: "status", Header: "Status", Render: statusCell},
		},
		Actions: &datatable.ActionSet{
			View: func(_ context.Context, rec datatable.Record) error {
				sc.Navigate(patientURL(rec))
				return nil
			},
			Assign: func(ctx context.Context, rec datatable.Record) error {
				id, err := parseID(rec.Text("id"))
				if err != nil {
					return err
				}
				return s.backend.SetPatientStatus(ctx, id, store.PatientActive)
			},
			AssignText: "Mark active",
			ShowAssign: func(rec datatable.Record) bool {
				return rec.Text("status") == store.PatientInactive
			},
		},
		Buttons: []datatable.Button{
			{Label: "Book appointment", Variant: datatable.VariantSecondary, Href: appointmentsPath + "/new"},
		},
		SearchPlaceholder: "Search patients...",
		FilterKey:         "status",
		FilterOptions: []datatable.FilterOption{
			{Label: "All", Value: datatable.FilterAll},
			{Label: "Active", Value: store.PatientActive},
			{Label: "Inactive", Value: store.PatientInactive},
		},
		Pagination:   datatable.Internal{PageSize: size},
		RowKey:       "id",
		RowURL:       patientURL,
		EmptyMessage: "No patients found",
	}
}

func (s *Server) findPatient(ctx context.Context, raw string) (datatable.Record, error) {
	id, err := parseID(raw)
	if err != nil {
		return nil, err
	}
	p, err := s.backend.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.ToRecord(), nil
}
