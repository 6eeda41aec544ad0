package templates

import (
	"context"
	"io"
	"net/url"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/PartnerConsole/internal/markup"
)

// ServiceOption is one bookable session type.
type ServiceOption struct {
	ID    string
	Name  string
	Price string // formatted amount
}

type formField struct {
	name, label, kind, placeholder string
	textarea                       bool
}

var clientFields = []formField{
	{name: "full_name", label: "Full name", kind: "text", placeholder: "Enter client's full name"},
	{name: "email", label: "Email", kind: "email", placeholder: "Enter client's email"},
	{name: "phone_number", label: "Phone number", kind: "tel", placeholder: "Enter client's phone number"},
	{name: "address", label: "Address", kind: "text", placeholder: "Enter client's address"},
}

var conditionFields = []formField{
	{name: "where_it_hurts", label: "Where does it hurt?", placeholder: "Describe the pain location", textarea: true},
	{name: "pain_durations", label: "Pain duration", kind: "text", placeholder: "How long have you had this pain?"},
	{name: "limitations", label: "Limitations", placeholder: "Describe any physical limitations", textarea: true},
}

var scheduleFields = []formField{
	{name: "appointment_date", label: "Date", kind: "date"},
	{name: "appointment_time", label: "Time", kind: "time"},
}

// AppointmentForm renders the booking form. values refills the inputs after
// a rejected submission and alert, when non-nil, is shown above the form.
func AppointmentForm(action string, services []ServiceOption, values url.Values, alert templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := markup.NewWriter(ctx, w)
		h.Component(alert)
		h.Raw(`<form method="post" class="bg-white rounded-lg shadow-sm p-6 flex flex-col gap-8 max-w-3xl"`)
		h.URL("action", action)
		h.Raw(`>`)

		writeFieldset(h, "Client information", clientFields, values)

		h.Raw(`<fieldset class="flex flex-col gap-2"><legend class="text-lg font-medium mb-2">Service needed</legend>`)
		if len(services) == 0 {
			h.Raw(`<p class="text-sm text-gray-500">No services are configured yet.</p>`)
		}
		for _, s := range services {
			h.Raw(`<label class="flex items-center p-3 border border-gray-200 rounded-md hover:bg-gray-50 cursor-pointer gap-3">`)
			h.Raw(`<input type="radio" name="session_type_id" required`)
			h.Attr("value", s.ID)
			if values.Get("session_type_id") == s.ID {
				h.Raw(` checked`)
			}
			h.Raw(`><span class="flex-1 text-sm text-gray-800">`)
			h.Text(s.Name)
			h.Raw(`</span><span class="text-sm text-gray-500">`)
			h.Text(s.Price)
			h.Raw(`</span></label>`)
		}
		h.Raw(`</fieldset>`)

		writeFieldset(h, "Condition", conditionFields, values)
		writeFieldset(h, "Schedule", scheduleFields, values)

		h.Raw(`<div class="flex justify-end gap-3">`)
		h.Raw(`<a href="/appointments" class="px-4 py-2 rounded-md text-sm font-medium border border-gray-300 text-gray-700 hover:bg-gray-50">Cancel</a>`)
		h.Raw(`<button type="submit" class="px-4 py-2 rounded-md text-sm font-medium bg-blue-600 text-white hover:bg-blue-700">Create appointment</button>`)
		h.Raw(`</div></form>`)
		return h.Err()
	})
}

func writeFieldset(h *markup.Writer, legend string, fields []formField, values url.Values) {
	h.Raw(`<fieldset class="grid grid-cols-1 md:grid-cols-2 gap-4"><legend class="text-lg font-medium mb-2">`)
	h.Text(legend)
	h.Raw(`</legend>`)
	for _, f := range fields {
		h.Raw(`<label class="flex flex-col gap-1"><span class="text-sm font-medium text-gray-700">`)
		h.Text(f.label)
		h.Raw(`</span>`)
		if f.textarea {
			h.Raw(`<textarea rows="3" class="px-3 py-2 border border-gray-300 rounded-md"`)
			h.Attr("name", f.name)
			h.Attr("placeholder", f.placeholder)
			h.Raw(`>`)
			h.Text(values.Get(f.name))
			h.Raw(`</textarea></label>`)
			continue
		}
		h.Raw(`<input class="px-3 py-2 border border-gray-300 rounded-md"`)
		h.Attr("type", f.kind)
		h.Attr("name", f.name)
		if f.placeholder != "" {
			h.Attr("placeholder", f.placeholder)
		}
		h.Attr("value", values.Get(f.name))
		h.Raw(`></label>`)
	}
	h.Raw(`</fieldset>`)
}
