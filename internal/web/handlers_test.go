package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/PartnerConsole/internal/config"
	"github.com/JonMunkholm/PartnerConsole/internal/store"
)

// fakeBackend is an in-memory Backend.
type fakeBackend struct {
	mu           sync.Mutex
	appointments []store.Appointment
	patients     []store.Patient
	sessionTypes []store.SessionType

	listCalls   [][2]int // page, limit
	cancelledOn time.Time
	cancelCount int64
	pingErr     error
	listErr     error
}

func (f *fakeBackend) Ping(context.Context) error { return f.pingErr }

func (f *fakeBackend) ListAppointments(_ context.Context, page, limit int) ([]store.Appointment, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, [2]int{page, limit})
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	start := (page - 1) * limit
	if start >= len(f.appointments) {
		return nil, len(f.appointments), nil
	}
	end := min(start+limit, len(f.appointments))
	return append([]store.Appointment(nil), f.appointments[start:end]...), len(f.appointments), nil
}

func (f *fakeBackend) GetAppointment(_ context.Context, id uuid.UUID) (store.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appointments {
		if a.SessionID == id {
			return a, nil
		}
	}
	return store.Appointment{}, fmt.Errorf("get appointment %s: %w", id, store.ErrNotFound)
}

func (f *fakeBackend) CreateAppointment(_ context.Context, in store.AppointmentInput) (store.Appointment, error) {
	if err := in.Validate(); err != nil {
		return store.Appointment{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, st := range f.sessionTypes {
		if st.ID == in.SessionTypeID {
			a := store.Appointment{
				SessionID:       uuid.New(),
				FullName:        in.FullName,
				Email:           in.Email,
				PhoneNumber:     in.PhoneNumber,
				Address:         in.Address,
				ServiceNeeded:   st.Name,
				Status:          store.StatusPending,
				Amount:          st.Amount,
				AppointmentDate: in.AppointmentDate,
				AppointmentTime: in.AppointmentTime,
			}
			f.appointments = append(f.appointments, a)
			return a, nil
		}
	}
	return store.Appointment{}, fmt.Errorf("create appointment: %w", store.ErrNotFound)
}

func (f *fakeBackend) SetAppointmentStatus(_ context.Context, id uuid.UUID, status string) error {
	if !store.ValidStatus(status) {
		return store.ErrInvalidStatus
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.appointments {
		if f.appointments[i].SessionID == id {
			f.appointments[i].Status = status
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeBackend) DeleteAppointment(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, a := range f.appointments {
		if a.SessionID == id {
			f.appointments = append(f.appointments[:i], f.appointments[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeBackend) CancelExpired(_ context.Context, day time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelledOn = day
	return f.cancelCount, nil
}

func (f *fakeBackend) ListSessionTypes(context.Context) ([]store.SessionType, error) {
	return f.sessionTypes, nil
}

func (f *fakeBackend) ListPatients(context.Context) ([]store.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]store.Patient(nil), f.patients...), nil
}

func (f *fakeBackend) GetPatient(_ context.Context, id uuid.UUID) (store.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.patients {
		if p.ID == id {
			return p, nil
		}
	}
	return store.Patient{}, fmt.Errorf("get patient %s: %w", id, store.ErrNotFound)
}

func (f *fakeBackend) SetPatientStatus(_ context.Context, id uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.patients {
		if f.patients[i].ID == id {
			f.patients[i].Status = status
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeBackend) appointment(id uuid.UUID) store.Appointment {
	a, _ := f.GetAppointment(context.Background(), id)
	return a
}

var (
	annID   = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	bobID   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	carlaID = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	massage = uuid.MustParse("44444444-4444-4444-4444-444444444444")
)

func newFakeBackend() *fakeBackend {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	lastVisit := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	return &fakeBackend{
		appointments: []store.Appointment{
			{SessionID: annID, FullName: "Ann Lee", Email: "ann@example.com", PhoneNumber: "0801", ServiceNeeded: "Massage",
				Status: store.StatusPending, Amount: decimal.RequireFromString("15000"), AppointmentDate: day, AppointmentTime: "14:30"},
			{SessionID: bobID, FullName: "Bob Stone", Email: "bob@example.com", PhoneNumber: "0802", ServiceNeeded: "Physio",
				Status: store.StatusCompleted, Amount: decimal.RequireFromString("8000.5"), AppointmentDate: day.AddDate(0, 0, 3)},
		},
		patients: []store.Patient{
			{ID: annID, Name: "Ann Lee", Email: "ann@example.com", Status: store.PatientActive, Photos: []string{"https://img.example.com/ann.jpg"},
				LastVisit: &lastVisit},
			{ID: carlaID, Name: "Carla Diaz", Email: "carla@example.com", Status: store.PatientInactive},
		},
		sessionTypes: []store.SessionType{
			{ID: massage, Name: "Massage", Amount: decimal.RequireFromString("15000")},
		},
	}
}

func testConfig(t *testing.T, vars map[string]string) *config.Config {
	t.Helper()
	base := map[string]string{
		"DATABASE_URL":       "postgres://localhost/test",
		"RATE_LIMIT_ENABLED": "false",
	}
	for k, v := range vars {
		base[k] = v
	}
	cfg, err := config.LoadFrom(func(key string) string { return base[key] })
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	return cfg
}

func newTestServer(t *testing.T, fb *fakeBackend, vars map[string]string) *Server {
	t.Helper()
	s, err := NewServer(fb, testConfig(t, vars))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	s.now = func() time.Time { return time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s
}

type request struct {
	method string
	target string
	htmx   bool
	form   url.Values
	accept string
}

func do(t *testing.T, s *Server, req request) *httptest.ResponseRecorder {
	t.Helper()
	var body *strings.Reader
	if req.form != nil {
		body = strings.NewReader(req.form.Encode())
	} else {
		body = strings.NewReader("")
	}
	r := httptest.NewRequest(req.method, req.target, body)
	if req.form != nil {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if req.htmx {
		r.Header.Set("HX-Request", "true")
	}
	if req.accept != "" {
		r.Header.Set("Accept", req.accept)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, r)
	return rec
}

func assertContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestIndexRedirects(t *testing.T) {
	s := newTestServer(t, newFakeBackend(), nil)
	rec := do(t, s, request{method: http.MethodGet, target: "/"})
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/appointments" {
		t.Errorf("GET / = %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestAppointments_FullPageIsLoading(t *testing.T) {
	fb := newFakeBackend()
	s := newTestServer(t, fb, nil)

	rec := do(t, s, request{method: http.MethodGet, target: "/appointments?sort=full_name&dir=desc&notice=Saved"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	assertContains(t, rec.Body.String(),
		`data-mode="loading"`,
		"Loading data...",
		`hx-trigger="load"`,
		`hx-get="/appointments?dir=desc&amp;sort=full_name"`,
		"Saved",
	)
	if len(fb.listCalls) != 0 {
		t.Errorf("full page fetched data: %v", fb.listCalls)
	}
	if got := rec.Header().Get("Vary"); got != "HX-Request" {
		t.Errorf("Vary = %q", got)
	}
}

func TestAppointments_Partial(t *testing.T) {
	fb := newFakeBackend()
	s := newTestServer(t, fb, nil)

	rec := do(t, s, request{method: http.MethodGet, target: "/appointments", htmx: true})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	assertContains(t, body,
		`data-mode="populated"`,
		"Ann Lee",
		"Bob Stone",
		"NGN 15,000.00",
		`data-status="pending"`,
		"Showing 1 to 2 of 2 entries",
		"Page 1 of 1",
		`data-href="/appointments/`+annID.String()+`"`,
	)
	if strings.Contains(body, "<html") {
		t.Error("partial contains the page layout")
	}
	if len(fb.listCalls) != 1 || fb.listCalls[0] != [2]int{1, 10} {
		t.Errorf("listCalls = %v, want [[1 10]]", fb.listCalls)
	}
}

func TestAppointments_ControlledPages(t *testing.T) {
	fb := newFakeBackend()
	for i := 0; i < 10; i++ {
		fb.appointments = append(fb.appointments, store.Appointment{
			SessionID: uuid.New(), FullName: fmt.Sprintf("Client %02d", i), Status: store.StatusPending,
		})
	}
	s := newTestServer(t, fb, nil)

	t.Run("second page", func(t *testing.T) {
		rec := do(t, s, request{method: http.MethodGet, target: "/appointments?page=2", htmx: true})
		assertContains(t, rec.Body.String(), "Showing 11 to 12 of 12 entries", "Page 2 of 2", `rel="prev"`)
	})

	t.Run("past the end clamps to last page", func(t *testing.T) {
		fb.listCalls = nil
		rec := do(t, s, request{method: http.MethodGet, target: "/appointments?page=9", htmx: true})
		assertContains(t, rec.Body.String(), "Page 2 of 2")
		want := [][2]int{{9, 10}, {2, 10}}
		if fmt.Sprint(fb.listCalls) != fmt.Sprint(want) {
			t.Errorf("listCalls = %v, want %v", fb.listCalls, want)
		}
	})
}

func TestAppointments_Empty(t *testing.T) {
	fb := newFakeBackend()
	fb.appointments = nil
	s := newTestServer(t, fb, nil)

	rec := do(t, s, request{method: http.MethodGet, target: "/appointments", htmx: true})
	assertContains(t, rec.Body.String(), `data-mode="empty"`, "No appointments found")
}

func TestAppointments_ListError(t *testing.T) {
	fb := newFakeBackend()
	fb.listErr = errors.New("dial tcp: connection refused")
	s := newTestServer(t, fb, nil)

	rec := do(t, s, request{method: http.MethodGet, target: "/appointments", htmx: true})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	assertContains(t, rec.Body.String(), `data-code="DB004"`)
}

func TestAppointmentAction_Approve(t *testing.T) {
	fb := newFakeBackend()
	s := newTestServer(t, fb, nil)
	target := "/appointments/actions/approve/" + annID.String() + "?sort=full_name&dir=asc&filter=pending"

	rec := do(t, s, request{method: http.MethodPost, target: target})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	want := "/appointments?dir=asc&filter=pending&sort=full_name&notice=Appointment+approved"
	if got := rec.Header().Get("Location"); got != want {
		t.Errorf("Location = %q, want %q", got, want)
	}
	if got := fb.appointment(annID).Status; got != store.StatusCompleted {
		t.Errorf("status = %q, want completed", got)
	}
}

func TestAppointmentAction_HTMX(t *testing.T) {
	fb := newFakeBackend()
	s := newTestServer(t, fb, nil)

	rec := do(t, s, request{method: http.MethodPost, target: "/appointments/actions/reject/" + annID.String() + "?q=ann", htmx: true})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var trigger map[string]string
	if err := json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &trigger); err != nil {
		t.Fatalf("HX-Trigger: %v", err)
	}
	if trigger["notice"] != "Appointment rejected" {
		t.Errorf("notice = %q", trigger["notice"])
	}
	if got := rec.Header().Get("HX-Push-Url"); got != "/appointments?q=ann" {
		t.Errorf("HX-Push-Url = %q", got)
	}
	assertContains(t, rec.Body.String(), `data-status="cancelled"`, "Ann Lee")
	if strings.Contains(rec.Body.String(), "Bob Stone") {
		t.Error("search state was not kept after the action")
	}
}

func TestAppointmentAction_Delete(t *testing.T) {
	fb := newFakeBackend()
	s := newTestServer(t, fb, nil)

	rec := do(t, s, request{method: http.MethodPost, target: "/appointments/actions/delete/" + bobID.String()})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(fb.appointments) != 1 || fb.appointments[0].SessionID != annID {
		t.Errorf("appointments after delete = %v", fb.appointments)
	}
}

func TestAppointmentAction_View(t *testing.T) {
	s := newTestServer(t, newFakeBackend(), nil)
	dest := "/appointments/" + annID.String()

	rec := do(t, s, request{method: http.MethodPost, target: "/appointments/actions/view/" + annID.String()})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != dest {
		t.Errorf("plain view = %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = do(t, s, request{method: http.MethodPost, target: "/appointments/actions/view/" + annID.String(), htmx: true})
	if got := rec.Header().Get("HX-Redirect"); got != dest {
		t.Errorf("HX-Redirect = %q, want %q", got, dest)
	}
}

func TestAppointmentAction_Errors(t *testing.T) {
	s := newTestServer(t, newFakeBackend(), nil)

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantCode   string
	}{
		{"missing record", "/appointments/actions/approve/" + carlaID.String(), http.StatusNotFound, "REC001"},
		{"malformed id", "/appointments/actions/approve/not-a-uuid", http.StatusBadRequest, "REC005"},
		{"unknown kind", "/appointments/actions/archive/" + annID.String(), http.StatusBadRequest, "REC003"},
		{"kind without handler", "/appointments/actions/assign/" + annID.String(), http.StatusBadRequest, "REC003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, request{method: http.MethodPost, target: tt.target, htmx: true})
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			assertContains(t, rec.Body.String(), `data-code="`+tt.wantCode+`"`)
		})
	}
}

func TestAppointmentAction_JSONError(t *testing.T) {
	s := newTestServer(t, newFakeBackend(), nil)

	rec := do(t, s, request{method: http.MethodPost, target: "/appointments/actions/approve/" + carlaID.String(), accept: "application/json"})
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != "REC001" || rec.Code != http.StatusNotFound {
		t.Errorf("response = %d %+v", rec.Code, resp)
	}
}

func TestAppointmentButtons(t *testing.T) {
	fb := newFakeBackend()
	fb.cancelCount = 3
	s := newTestServer(t, fb, nil)

	rec := do(t, s, request{method: http.MethodPost, target: "/appointments/buttons/1?page=1"})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/appointments?notice=3+expired+appointments+cancelled" {
		t.Errorf("Location = %q", got)
	}
	if want := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC); !fb.cancelledOn.Equal(want) {
		t.Errorf("CancelExpired day = %v, want %v", fb.cancelledOn, want)
	}

	for _, target := range []string{"/appointments/buttons/0", "/appointments/buttons/7", "/appointments/buttons/x"} {
		rec := do(t, s, request{method: http.MethodPost, target: target, htmx: true})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
		assertContains(t, rec.Body.String(), `data-code="REC004"`)
	}
}

func TestAppointmentDetail(t *testing.T) {
	s := newTestServer(t, newFakeBackend(), nil)

	rec := do(t, s, request{method: http.MethodGet, target: "/appointments/" + annID.String() + "?notice=Appointment+created"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	assertContains(t, rec.Body.String(),
		"Ann Lee",
		"Wednesday, May 1, 2024",
		"02:30 PM",
		"NGN 15,000.00",
		`action="/appointments/actions/approve/`+annID.String()+`"`,
		"Appointment created",
	)

	rec = do(t, s, request{method: http.MethodGet, target: "/appointments/" + carlaID.String()})
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing detail status = %d", rec.Code)
	}
}

func TestCreateAppointment(t *testing.T) {
	fb := newFakeBackend()
	s := newTestServer(t, fb, nil)

	rec := do(t, s, request{method: http.MethodGet, target: "/appointments/new"})
	assertContains(t, rec.Body.String(), `value="`+massage.String()+`"`, "NGN 15,000.00")

	form := url.Values{
		"full_name":        {"Dan Obi"},
		"email":            {"dan@example.com"},
		"phone_number":     {"0803"},
		"address":          {"1 Marina"},
		"session_type_id":  {massage.String()},
		"appointment_date": {"2024-06-01"},
		"appointment_time": {"10:00"},
	}
	rec = do(t, s, request{method: http.MethodPost, target: "/appointments", form: form})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if len(fb.appointments) != 3 {
		t.Fatalf("appointments = %d, want 3", len(fb.appointments))
	}
	created := fb.appointments[2]
	want := "/appointments/" + created.SessionID.String() + "?notice=Appointment+created"
	if got := rec.Header().Get("Location"); got != want {
		t.Errorf("Location = %q, want %q", got, want)
	}
	if created.ServiceNeeded != "Massage" || created.AppointmentDate.Format(time.DateOnly) != "2024-06-01" {
		t.Errorf("created = %+v", created)
	}
}

func TestNewAppointment_FromTableRegion(t *testing.T) {
	s := newTestServer(t, newFakeBackend(), nil)

	rec := do(t, s, request{method: http.MethodGet, target: "/appointments", htmx: true})
	assertContains(t, rec.Body.String(), `<a hx-boost="false" href="/appointments/new"`)

	rec = do(t, s, request{method: http.MethodGet, target: "/appointments/new", htmx: true})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("HX-Redirect"); got != "/appointments/new" {
		t.Errorf("HX-Redirect = %q, want %q", got, "/appointments/new")
	}
	if strings.Contains(rec.Body.String(), "<html") {
		t.Error("HTMX request received the full page")
	}
}

func TestCreateAppointment_Invalid(t *testing.T) {
	fb := newFakeBackend()
	s := newTestServer(t, fb, nil)

	rec := do(t, s, request{method: http.MethodPost, target: "/appointments", form: url.Values{"full_name": {"Dan <Obi>"}}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	assertContains(t, rec.Body.String(), `data-code="VAL002"`, `value="Dan &lt;Obi&gt;"`)

	rec = do(t, s, request{method: http.MethodPost, target: "/appointments", form: url.Values{"appointment_date": {"someday"}}})
	assertContains(t, rec.Body.String(), `data-code="VAL001"`)

	if len(fb.appointments) != 2 {
		t.Errorf("invalid submissions created rows: %d", len(fb.appointments))
	}
}

func TestPatients_Partial(t *testing.T) {
	s := newTestServer(t, newFakeBackend(), map[string]string{"TABLE_PAGE_SIZE": "1"})

	rec := do(t, s, request{method: http.MethodGet, target: "/patients?sort=name&dir=desc", htmx: true})
	body := rec.Body.String()
	assertContains(t, body,
		"Carla Diaz",
		"Showing 1 to 1 of 2 entries",
		`src="/static/avatar.svg"`,
		"No upcoming appointments",
		"Mark active",
	)
	if strings.Contains(body, "Ann Lee") {
		t.Error("page 1 of size 1 sorted desc should only show Carla")
	}

	rec = do(t, s, request{method: http.MethodGet, target: "/patients?filter=active", htmx: true})
	assertContains(t, rec.Body.String(), "Ann Lee", `src="https://img.example.com/ann.jpg"`, "Apr 2, 2024")
	if strings.Contains(rec.Body.String(), "Carla Diaz") {
		t.Error("filter=active shows an inactive patient")
	}
}

func TestPatients_Assign(t *testing.T) {
	fb := newFakeBackend()
	s := newTestServer(t, fb, nil)

	rec := do(t, s, request{method: http.MethodPost, target: "/patients/actions/assign/" + annID.String(), htmx: true})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("assign on active patient = %d, want 400", rec.Code)
	}

	rec = do(t, s, request{method: http.MethodPost, target: "/patients/actions/assign/" + carlaID.String()})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/patients?notice=Patient+marked+active" {
		t.Errorf("Location = %q", got)
	}
	p, _ := fb.GetPatient(context.Background(), carlaID)
	if p.Status != store.PatientActive {
		t.Errorf("status = %q, want active", p.Status)
	}
}

func TestPatientDetail(t *testing.T) {
	s := newTestServer(t, newFakeBackend(), nil)

	rec := do(t, s, request{method: http.MethodGet, target: "/patients/" + carlaID.String()})
	assertContains(t, rec.Body.String(),
		"Carla Diaz",
		"No upcoming appointments",
		`action="/patients/actions/assign/`+carlaID.String()+`"`,
	)

	rec = do(t, s, request{method: http.MethodGet, target: "/patients/" + annID.String()})
	if strings.Contains(rec.Body.String(), "/patients/actions/assign/") {
		t.Error("active patient offers Mark active")
	}
}

func TestHealth(t *testing.T) {
	fb := newFakeBackend()
	s := newTestServer(t, fb, nil)

	rec := do(t, s, request{method: http.MethodGet, target: "/healthz"})
	if rec.Code != http.StatusOK {
		t.Errorf("healthy status = %d", rec.Code)
	}

	fb.pingErr = errors.New("connection refused")
	rec = do(t, s, request{method: http.MethodGet, target: "/healthz"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("unhealthy status = %d", rec.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t, newFakeBackend(), nil)
	rec := do(t, s, request{method: http.MethodGet, target: "/static/app.js"})

	if rec.Code != http.StatusOK {
		t.Errorf("static status = %d", rec.Code)
	}
	csp := rec.Header().Get("Content-Security-Policy")
	for _, want := range []string{"https://unpkg.com", "https://cdn.tailwindcss.com", "img-src 'self' data: https:"} {
		if !strings.Contains(csp, want) {
			t.Errorf("CSP missing %q: %s", want, csp)
		}
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options")
	}

	s = newTestServer(t, newFakeBackend(), map[string]string{"SECURITY_ENABLE_CSP": "false"})
	rec = do(t, s, request{method: http.MethodGet, target: "/healthz"})
	if rec.Header().Get("Content-Security-Policy") != "" {
		t.Error("CSP sent while disabled")
	}
}

func TestActionRateLimit(t *testing.T) {
	s := newTestServer(t, newFakeBackend(), map[string]string{
		"RATE_LIMIT_ENABLED": "true",
		"RATE_LIMIT_ACTIONS": "1",
	})

	target := "/appointments/actions/approve/" + annID.String()
	if rec := do(t, s, request{method: http.MethodPost, target: target}); rec.Code != http.StatusSeeOther {
		t.Fatalf("first action = %d", rec.Code)
	}
	rec := do(t, s, request{method: http.MethodPost, target: target})
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("second action = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Errorf("Retry-After = %q", rec.Header().Get("Retry-After"))
	}

	if rec := do(t, s, request{method: http.MethodGet, target: "/appointments", htmx: true}); rec.Code != http.StatusOK {
		t.Errorf("reads should use the general limit, got %d", rec.Code)
	}
}

func TestNotFoundRoute(t *testing.T) {
	s := newTestServer(t, newFakeBackend(), nil)
	rec := do(t, s, request{method: http.MethodGet, target: "/nope", htmx: true})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}
