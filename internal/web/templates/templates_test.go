package templates

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestBadgeClass(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"pending", "bg-yellow-100 text-yellow-800"},
		{"Completed", "bg-green-100 text-green-800"},
		{"cancelled", "bg-red-100 text-red-800"},
		{"active", "bg-green-100 text-green-800"},
		{"inactive", "bg-gray-100 text-gray-800"},
		{"", "bg-gray-100 text-gray-800"},
	}

	for _, tt := range tests {
		if got := BadgeClass(tt.status); got != tt.want {
			t.Errorf("BadgeClass(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestLayout(t *testing.T) {
	out := render(t, Layout(Page{Title: "Patients", Active: "patients", Notice: "Saved <ok>"}, PageHeader("Patients", "All registered patients")))

	for _, want := range []string{
		"<title>Patients | Partner Console</title>",
		`src="` + HTMXSrc + `"`,
		`href="/patients" class="px-3 py-2 rounded-md text-sm font-medium bg-blue-50 text-blue-700" aria-current="page"`,
		"Saved &lt;ok&gt;",
		"data-toast",
		"All registered patients",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("layout missing %q", want)
		}
	}
}

func TestLayout_NoNotice(t *testing.T) {
	out := render(t, Layout(Page{Title: "Appointments"}, templ.NopComponent))
	if strings.Contains(out, "data-toast") {
		t.Error("toast rendered without a notice")
	}
}

func TestErrorAlert(t *testing.T) {
	out := render(t, ErrorAlert("Record not found", "Refresh the table", "REC001"))
	for _, want := range []string{`role="alert"`, `data-code="REC001"`, "Record not found", "Refresh the table", "Code: REC001"} {
		if !strings.Contains(out, want) {
			t.Errorf("alert missing %q: %s", want, out)
		}
	}
}

func TestLazyTable(t *testing.T) {
	out := render(t, LazyTable("appointments-region", "/appointments?sort=full_name", templ.Raw("<p>loading</p>")))
	for _, want := range []string{
		`id="appointments-region"`,
		`hx-get="/appointments?sort=full_name"`,
		`hx-trigger="load"`,
		`hx-boost="true"`,
		"<p>loading</p>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("lazy table missing %q: %s", want, out)
		}
	}
}

func TestDetailPage(t *testing.T) {
	out := render(t, DetailPage("Ann", "/patients", templ.Raw("<dl></dl>"), []ActionButton{
		{Label: "Mark active", Action: "/patients/actions/assign/1"},
		{Label: "Delete", Action: "/patients/actions/delete/1", Danger: true},
	}))
	for _, want := range []string{`href="/patients"`, "<dl></dl>", `action="/patients/actions/assign/1"`, "bg-red-600"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q", want)
		}
	}
}

func TestAppointmentForm(t *testing.T) {
	values := url.Values{"full_name": {"Ann <Lee>"}, "session_type_id": {"s2"}}
	out := render(t, AppointmentForm("/appointments", []ServiceOption{
		{ID: "s1", Name: "Massage", Price: "NGN 5,000.00"},
		{ID: "s2", Name: "Physio", Price: "NGN 8,000.00"},
	}, values, ErrorAlert("Required field is empty", "", "VAL002")))

	for _, want := range []string{
		`value="Ann &lt;Lee&gt;"`,
		`value="s2" checked`,
		"NGN 5,000.00",
		`name="appointment_date"`,
		"VAL002",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("form missing %q", want)
		}
	}
	if strings.Contains(out, `value="s1" checked`) {
		t.Error("unselected service is checked")
	}
}

func TestAppointmentForm_NoServices(t *testing.T) {
	out := render(t, AppointmentForm("/appointments", nil, nil, nil))
	if !strings.Contains(out, "No services are configured yet.") {
		t.Errorf("missing empty services hint")
	}
}
