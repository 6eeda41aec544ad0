package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/PartnerConsole/internal/datatable"
)

// Patient statuses.
const (
	PatientActive   = "active"
	PatientInactive = "inactive"
)

// Patient is a person registered at the hospital.
type Patient struct {
	ID              uuid.UUID
	Name            string
	Email           string
	Phone           string
	Photos          []string
	LastVisit       *time.Time
	NextAppointment *time.Time
	Status          string
}

// ToRecord exposes the patient for the patients table. Photos become a list
// of {image_url} objects; a patient without photos gets an empty list.
func (p Patient) ToRecord() datatable.Record {
	photos := make([]any, 0, len(p.Photos))
	for _, u := range p.Photos {
		photos = append(photos, datatable.Record{"image_url": u})
	}
	return datatable.Record{
		"id":               p.ID.String(),
		"name":             p.Name,
		"email":            p.Email,
		"phone":            p.Phone,
		"photos":           photos,
		"last_visit":       dateValue(p.LastVisit),
		"next_appointment": dateValue(p.NextAppointment),
		"status":           p.Status,
	}
}

func dateValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.DateOnly)
}

// PatientInput holds the fields of a new patient.
type PatientInput struct {
	Name            string
	Email           string
	Phone           string
	Photos          []string
	LastVisit       *time.Time
	NextAppointment *time.Time
	Status          string
}

const patientColumns = `id, name, email, phone, photos, last_visit, next_appointment, status`

func scanPatient(row pgx.Row) (Patient, error) {
	var p Patient
	var last, next pgtype.Date
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Photos, &last, &next, &p.Status); err != nil {
		return Patient{}, err
	}
	p.LastVisit = fromPgDate(last)
	p.NextAppointment = fromPgDate(next)
	return p, nil
}

func fromPgDate(d pgtype.Date) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

func toPgDate(t *time.Time) pgtype.Date {
	if t == nil || t.IsZero() {
		return pgtype.Date{Valid: false}
	}
	return pgtype.Date{Time: *t, Valid: true}
}

// CreatePatient registers a patient. An empty status means active.
func (s *Store) CreatePatient(ctx context.Context, in PatientInput) (Patient, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Patient{}, fmt.Errorf("create patient: required field missing: name")
	}
	status := in.Status
	if status == "" {
		status = PatientActive
	}
	if status != PatientActive && status != PatientInactive {
		return Patient{}, fmt.Errorf("create patient %q: %w", status, ErrInvalidStatus)
	}
	photos := in.Photos
	if photos == nil {
		photos = []string{}
	}

	p, err := scanPatient(s.db.QueryRow(ctx, `
		INSERT INTO patients (id, name, email, phone, photos, last_visit, next_appointment, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+patientColumns,
		uuid.New(), in.Name, in.Email, in.Phone, photos,
		toPgDate(in.LastVisit), toPgDate(in.NextAppointment), status,
	))
	if err != nil {
		return Patient{}, fmt.Errorf("create patient: %w", err)
	}
	return p, nil
}

// ListPatients returns every patient ordered by name.
func (s *Store) ListPatients(ctx context.Context) ([]Patient, error) {
	rows, err := s.db.Query(ctx, `SELECT `+patientColumns+` FROM patients ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	var patients []Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

// GetPatient returns the patient with the given id.
func (s *Store) GetPatient(ctx context.Context, id uuid.UUID) (Patient, error) {
	p, err := scanPatient(s.db.QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE id = $1`, id))
	if err != nil {
		return Patient{}, fmt.Errorf("get patient %s: %w", id, notFound(err))
	}
	return p, nil
}

// SetPatientStatus marks a patient active or inactive.
func (s *Store) SetPatientStatus(ctx context.Context, id uuid.UUID, status string) error {
	if status != PatientActive && status != PatientInactive {
		return fmt.Errorf("set patient status %q: %w", status, ErrInvalidStatus)
	}
	tag, err := s.db.Exec(ctx, `UPDATE patients SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set patient status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set patient status %s: %w", id, ErrNotFound)
	}
	return nil
}
