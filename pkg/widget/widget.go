// Package widget defines the opaque handle the dispatch pipeline hands back
// to hosts. A Widget describes one rendered control and carries the input
// binding that converts raw edits into typed values before invoking the
// host's change callback. Hosts own layout, styling, and persistence.
package widget

import (
	"errors"

	"github.com/google/uuid"
)

// Kind identifies the control shape a renderer should produce.
type Kind string

const (
	KindText        Kind = "text"
	KindTextArea    Kind = "textarea"
	KindNumber      Kind = "number"
	KindSlider      Kind = "slider"
	KindToggle      Kind = "toggle"
	KindSelect      Kind = "select"
	KindMultiSelect Kind = "multiselect"
	KindDate        Kind = "date"
	KindTime        Kind = "time"
	KindDateTime    Kind = "datetime"
	KindEditor      Kind = "editor"
	KindList        Kind = "list"
)

// ActionKind classifies an affordance attached to a composite widget.
type ActionKind string

const (
	ActionEdit   ActionKind = "edit"
	ActionRemove ActionKind = "remove"
	ActionAdd    ActionKind = "add"
)

// Action is an affordance on a nested-record or list widget. Index addresses
// the element it targets (-1 for the add affordance); Target carries the
// nested value the host should scope a sub-editor to.
type Action struct {
	Kind   ActionKind
	Label  string
	Index  int
	Target any
}

// Option is a single selectable choice on a select widget.
type Option struct {
	Value string
	Label string
}

// Widget is the handle returned for one dispatched field. The zero value is
// not usable; construct instances with New.
type Widget struct {
	ID          string
	Kind        Kind
	Field       string
	Label       string
	Placeholder string
	Tooltip     string

	// Value is the display value seeded into the control.
	Value string
	// Checked carries the toggle state for KindToggle.
	Checked bool

	Props    map[string]string
	Options  []Option
	Multiple bool
	// Selected holds the currently selected option values of a multi-select.
	// Option values may contain any character, so the selection is kept
	// structured instead of encoded into Value.
	Selected []string

	Min  *float64
	Max  *float64
	Step *float64

	// Actions lists the edit/remove/add affordances of composite widgets.
	Actions []Action

	// Switcher is the type-switcher control a union-of-records widget
	// carries alongside its edit affordance.
	Switcher *Widget

	onInput func(raw any) error
}

// New constructs a widget handle with a fresh identity.
func New(kind Kind, fieldName string) *Widget {
	return &Widget{
		ID:    uuid.NewString(),
		Kind:  kind,
		Field: fieldName,
		Props: make(map[string]string),
	}
}

// Bind installs the input binding invoked on every user edit.
func (w *Widget) Bind(fn func(raw any) error) *Widget {
	w.onInput = fn
	return w
}

// Input feeds a raw edit through the binding. The binding converts the raw
// value to the field's declared type and invokes the host change callback;
// conversion failures come back as validation errors and leave host state
// untouched.
func (w *Widget) Input(raw any) error {
	if w == nil || w.onInput == nil {
		return errors.New("widget: no input binding")
	}
	return w.onInput(raw)
}

// Bound reports whether an input binding is installed.
func (w *Widget) Bound() bool {
	return w != nil && w.onInput != nil
}

// SetProp records a renderer-facing capability or attribute.
func (w *Widget) SetProp(key, value string) *Widget {
	if w.Props == nil {
		w.Props = make(map[string]string)
	}
	w.Props[key] = value
	return w
}

// Prop reads a renderer-facing capability or attribute.
func (w *Widget) Prop(key string) string {
	if w == nil || w.Props == nil {
		return ""
	}
	return w.Props[key]
}

// Clearable reports whether the widget carries the clearable affordance
// optional fields receive.
func (w *Widget) Clearable() bool {
	return w.Prop("clearable") == "true"
}
