package datatable

import (
	"context"
	"errors"
)

var (
	// ErrActionUnavailable is returned when an action is absent from the
	// action set or hidden for the given row.
	ErrActionUnavailable = errors.New("datatable: action unavailable")

	// ErrButtonUnavailable is returned when a quick-action button has no handler.
	ErrButtonUnavailable = errors.New("datatable: button unavailable")
)

// ActionKind names a per-row action.
type ActionKind string

const (
	ActionView    ActionKind = "view"
	ActionEdit    ActionKind = "edit"
	ActionDelete  ActionKind = "delete"
	ActionAssign  ActionKind = "assign"
	ActionApprove ActionKind = "approve"
	ActionReject  ActionKind = "reject"
)

// ParseActionKind validates an action name taken from a request.
func ParseActionKind(s string) (ActionKind, bool) {
	switch k := ActionKind(s); k {
	case ActionView, ActionEdit, ActionDelete, ActionAssign, ActionApprove, ActionReject:
		return k, true
	}
	return "", false
}

// ActionFunc receives the record it was invoked for, unmodified.
type ActionFunc func(ctx context.Context, rec Record) error

// ActionSet holds the optional per-row callbacks. Any of them may be nil.
type ActionSet struct {
	View    ActionFunc
	Edit    ActionFunc
	Delete  ActionFunc
	Assign  ActionFunc
	Approve ActionFunc
	Reject  ActionFunc

	// AssignText labels the assign button.
	AssignText string
	// ShowAssign gates the assign button per row. Assign is hidden when nil.
	ShowAssign func(Record) bool
}

// actionOrder is the display order of row action buttons.
var actionOrder = []ActionKind{ActionView, ActionEdit, ActionDelete, ActionApprove, ActionReject, ActionAssign}

func (a *ActionSet) handler(kind ActionKind) ActionFunc {
	if a == nil {
		return nil
	}
	switch kind {
	case ActionView:
		return a.View
	case ActionEdit:
		return a.Edit
	case ActionDelete:
		return a.Delete
	case ActionAssign:
		return a.Assign
	case ActionApprove:
		return a.Approve
	case ActionReject:
		return a.Reject
	}
	return nil
}

// Available lists the actions rendered for rec, in display order.
func (a *ActionSet) Available(rec Record) []ActionKind {
	if a == nil {
		return nil
	}
	var kinds []ActionKind
	for _, kind := range actionOrder {
		if a.handler(kind) == nil {
			continue
		}
		if kind == ActionAssign && (a.ShowAssign == nil || !a.ShowAssign(rec)) {
			continue
		}
		kinds = append(kinds, kind)
	}
	return kinds
}

// Variant is the visual style of a quick-action button.
type Variant string

const (
	VariantPrimary   Variant = "primary"
	VariantSecondary Variant = "secondary"
	VariantOutline   Variant = "outline"
)

// Button is a quick action shown beside the search bar.
// Href renders a link; OnClick is run through Table.Press.
type Button struct {
	Label   string
	Variant Variant
	Href    string
	OnClick func(ctx context.Context) error
}
