// Package handler defines the strategy contract the registry dispatches on:
// a predicate over field descriptors and a factory producing widget handles.
package handler

import (
	"errors"

	"github.com/goliatone/go-fieldwidgets/pkg/field"
	"github.com/goliatone/go-fieldwidgets/pkg/widget"
)

// ErrNoMatch is the sentinel a handler returns from Create for expected
// "can't render this" cases. Any other error is an unexpected creation
// failure the dispatcher converts into a degraded fallback widget.
var ErrNoMatch = errors.New("handler: no match")

// Handler produces widgets for the field descriptors it claims to support.
//
// CanHandle must be pure, total, and deterministic: it may only read the
// descriptor's type and hints, must not touch external state, and must not
// panic. Handlers are stateless with respect to any single record; they may
// hold configuration but never per-call mutable state.
type Handler interface {
	// Name identifies the handler for diagnostics and unregistration.
	Name() string

	// Priority orders resolution; higher values are tried first. Built-in
	// handlers use priority 100, the fallback -1000.
	Priority() int

	// CanHandle reports whether this handler renders the descriptor.
	CanHandle(d field.Descriptor) bool

	// Create produces a widget bound to the context's change callback, or
	// ErrNoMatch when the field turns out not to be renderable by this
	// handler after all.
	Create(ctx Context) (*widget.Widget, error)
}

// ChangeFunc is the host-owned value-changed callback. The core never
// mutates record state itself; every accepted edit flows through here with a
// value convertible to the field's declared type.
type ChangeFunc func(value any)

// Context is the immutable per-dispatch bundle a handler consumes. It is
// constructed fresh for every dispatch call and never reused.
type Context struct {
	// Field is the name of the field being dispatched.
	Field string

	// Descriptor is the read-only field snapshot.
	Descriptor field.Descriptor

	// Value is the field's current value on the record instance.
	Value any

	// OnChange is the host callback invoked with each accepted new value.
	OnChange ChangeFunc

	// Config carries ambient UI configuration.
	Config Config

	// Record references the enclosing record instance. Only nested-object
	// handlers need it, to scope sub-editors.
	Record any
}

// Change invokes the host callback when one is wired.
func (c Context) Change(value any) {
	if c.OnChange != nil {
		c.OnChange(value)
	}
}

// Config is the read-only ambient UI configuration threaded through every
// dispatch call.
type Config struct {
	// ReadOnly renders controls without accepting edits.
	ReadOnly bool

	// InputClass is an extra CSS class hosts want on every control.
	InputClass string

	// CollectionDelimiter separates scalar collection elements; empty means
	// the default ", ".
	CollectionDelimiter string

	// Styles carries host styling tokens renderers may consult.
	Styles map[string]string
}

// Delimiter returns the configured collection separator or the default.
func (c Config) Delimiter() string {
	if c.CollectionDelimiter != "" {
		return c.CollectionDelimiter
	}
	return ", "
}
