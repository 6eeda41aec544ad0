package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/PartnerConsole/internal/datatable"
)

// Appointment session statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is an appointment status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment is one booked session.
type Appointment struct {
	SessionID       uuid.UUID
	FullName        string
	Email           string
	PhoneNumber     string
	Address         string
	ServiceNeeded   string
	WhereItHurts    string
	PainDurations   string
	Limitations     string
	Status          string
	Amount          decimal.Decimal
	AppointmentDate time.Time
	AppointmentTime string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ToRecord exposes the appointment under its wire field names.
func (a Appointment) ToRecord() datatable.Record {
	return datatable.Record{
		"session_id":       a.SessionID.String(),
		"full_name":        a.FullName,
		"email":            a.Email,
		"phone_number":     a.PhoneNumber,
		"address":          a.Address,
		"service_needed":   a.ServiceNeeded,
		"where_it_hurts":   a.WhereItHurts,
		"pain_durations":   a.PainDurations,
		"limitations":      a.Limitations,
		"session_status":   a.Status,
		"amount":           a.Amount,
		"appointment_date": a.AppointmentDate.Format(time.DateOnly),
		"appointment_time": a.AppointmentTime,
		"created_at":       a.CreatedAt,
	}
}

// AppointmentInput holds the fields of a new booking.
type AppointmentInput struct {
	FullName        string
	Email           string
	PhoneNumber     string
	Address         string
	SessionTypeID   uuid.UUID
	WhereItHurts    string
	PainDurations   string
	Limitations     string
	AppointmentDate time.Time
	AppointmentTime string
}

// Validate reports every missing required field.
func (in AppointmentInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.FullName) == "" {
		missing = append(missing, "full name")
	}
	if strings.TrimSpace(in.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(in.PhoneNumber) == "" {
		missing = append(missing, "phone number")
	}
	if strings.TrimSpace(in.Address) == "" {
		missing = append(missing, "address")
	}
	if in.SessionTypeID == uuid.Nil {
		missing = append(missing, "service")
	}
	if in.AppointmentDate.IsZero() {
		missing = append(missing, "appointment date")
	}
	if strings.TrimSpace(in.AppointmentTime) == "" {
		missing = append(missing, "appointment time")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required field missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

const appointmentColumns = `session_id, full_name, email, phone_number, address, service_needed,
	where_it_hurts, pain_durations, limitations, session_status, amount::text,
	appointment_date, appointment_time, created_at, updated_at`

func scanAppointment(row pgx.Row) (Appointment, error) {
	var a Appointment
	var amount string
	err := row.Scan(
		&a.SessionID, &a.FullName, &a.Email, &a.PhoneNumber, &a.Address, &a.ServiceNeeded,
		&a.WhereItHurts, &a.PainDurations, &a.Limitations, &a.Status, &amount,
		&a.AppointmentDate, &a.AppointmentTime, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return Appointment{}, err
	}
	a.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return Appointment{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return a, nil
}

// CreateAppointment books a pending session priced from its session type.
func (s *Store) CreateAppointment(ctx context.Context, in AppointmentInput) (Appointment, error) {
	if err := in.Validate(); err != nil {
		return Appointment{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO appointments (session_id, full_name, email, phone_number, address,
		                          service_needed, where_it_hurts, pain_durations, limitations,
		                          amount, appointment_date, appointment_time)
		SELECT $1, $2, $3, $4, $5, st.session_type, $7, $8, $9, st.amount, $10, $11
		FROM session_types st
		WHERE st.type_id = $6
		RETURNING `+appointmentColumns,
		uuid.New(), in.FullName, in.Email, in.PhoneNumber, in.Address,
		in.SessionTypeID, in.WhereItHurts, in.PainDurations, in.Limitations,
		in.AppointmentDate, in.AppointmentTime,
	)
	a, err := scanAppointment(row)
	if err != nil {
		return Appointment{}, fmt.Errorf("create appointment: %w", notFound(err))
	}
	return a, nil
}

// ListAppointments returns one page of appointments, newest first, and the
// total number of appointments. Both reads share a snapshot.
func (s *Store) ListAppointments(ctx context.Context, page, limit int) ([]Appointment, int, error) {
	if limit <= 0 {
		return nil, 0, fmt.Errorf("list appointments: limit %d must be positive", limit)
	}

	var (
		appts []Appointment
		total int
	)
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT count(*) FROM appointments`).Scan(&total); err != nil {
			return fmt.Errorf("count: %w", err)
		}

		rows, err := tx.Query(ctx, `
			SELECT `+appointmentColumns+`
			FROM appointments
			ORDER BY appointment_date DESC, created_at DESC
			LIMIT $1 OFFSET $2`,
			limit, offset(page, limit),
		)
		if err != nil {
			return fmt.Errorf("query: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			a, err := scanAppointment(rows)
			if err != nil {
				return fmt.Errorf("scan: %w", err)
			}
			appts = append(appts, a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list appointments: %w", err)
	}
	return appts, total, nil
}

// GetAppointment returns the appointment with the given session id.
func (s *Store) GetAppointment(ctx context.Context, id uuid.UUID) (Appointment, error) {
	a, err := scanAppointment(s.db.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE session_id = $1`, id))
	if err != nil {
		return Appointment{}, fmt.Errorf("get appointment %s: %w", id, notFound(err))
	}
	return a, nil
}

// SetAppointmentStatus moves an appointment to status.
func (s *Store) SetAppointmentStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !ValidStatus(status) {
		return fmt.Errorf("set appointment status %q: %w", status, ErrInvalidStatus)
	}
	tag, err := s.db.Exec(ctx,
		`UPDATE appointments SET session_status = $2, updated_at = now() WHERE session_id = $1`,
		id, status)
	if err != nil {
		return fmt.Errorf("set appointment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("set appointment status %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteAppointment removes an appointment.
func (s *Store) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM appointments WHERE session_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete appointment %s: %w", id, ErrNotFound)
	}
	return nil
}

// CancelExpired cancels pending appointments dated before day and returns
// how many were changed.
func (s *Store) CancelExpired(ctx context.Context, day time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE appointments
		SET session_status = $1, updated_at = now()
		WHERE session_status = $2 AND appointment_date < $3`,
		StatusCancelled, StatusPending, time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC))
	if err != nil {
		return 0, fmt.Errorf("cancel expired appointments: %w", err)
	}
	return tag.RowsAffected(), nil
}
