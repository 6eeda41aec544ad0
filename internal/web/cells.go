package web

import (
	"github.com/a-h/templ"

	"github.com/JonMunkholm/PartnerConsole/internal/datatable"
	"github.com/JonMunkholm/PartnerConsole/internal/format"
	"github.com/JonMunkholm/PartnerConsole/internal/web/templates"
)

// Custom cell renderers shared by the console tables.

func statusCell(v any, _ datatable.Record) templ.Component {
	return templates.StatusBadge(datatable.DisplayValue(v))
}

func currencyCell(v any, _ datatable.Record) templ.Component {
	return datatable.Text(format.Currency(v))
}

func longDateCell(v any, _ datatable.Record) templ.Component {
	return datatable.Text(format.Date(v))
}

func shortDateCell(v any, _ datatable.Record) templ.Component {
	return datatable.Text(format.ShortDate(v))
}

func timeCell(v any, _ datatable.Record) templ.Component {
	return datatable.Text(format.Time(datatable.DisplayValue(v)))
}

func nextAppointmentCell(v any, _ datatable.Record) templ.Component {
	if datatable.DisplayValue(v) == "" {
		return datatable.Text("No upcoming appointments")
	}
	return datatable.Text(format.Date(v))
}
