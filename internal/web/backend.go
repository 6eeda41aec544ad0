package web

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JonMunkholm/PartnerConsole/internal/store"
)

// Backend is the data access the handlers need. *store.Store implements it.
type Backend interface {
	Ping(ctx context.Context) error

	ListAppointments(ctx context.Context, page, limit int) ([]store.Appointment, int, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (store.Appointment, error)
	CreateAppointment(ctx context.Context, in store.AppointmentInput) (store.Appointment, error)
	SetAppointmentStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
	CancelExpired(ctx context.Context, day time.Time) (int64, error)
	ListSessionTypes(ctx context.Context) ([]store.SessionType, error)

	ListPatients(ctx context.Context) ([]store.Patient, error)
	GetPatient(ctx context.Context, id uuid.UUID) (store.Patient, error)
	SetPatientStatus(ctx context.Context, id uuid.UUID, status string) error
}

var _ Backend = (*store.Store)(nil)
