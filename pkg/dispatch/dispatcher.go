// Package dispatch provides the single entry point hosts call per field. The
// dispatcher builds a context, resolves a handler through the registry,
// invokes it, and owns the degraded fallback path so failures never reach
// the host.
package dispatch

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-fieldwidgets/pkg/field"
	"github.com/goliatone/go-fieldwidgets/pkg/handler"
	"github.com/goliatone/go-fieldwidgets/pkg/handlers"
	"github.com/goliatone/go-fieldwidgets/pkg/registry"
	"github.com/goliatone/go-fieldwidgets/pkg/widget"
)

// ErrCreation wraps a handler create step that returned an unexpected error
// or an invalid result. It never escapes RenderField; it exists so the
// degraded path and tests can classify failures with errors.Is.
var ErrCreation = errors.New("dispatch: handler creation failed")

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithLogger injects the diagnostic logger. Defaults to the logrus standard
// logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Dispatcher routes fields to handlers and converts every non-success
// outcome into the fallback text widget plus one warning diagnostic.
type Dispatcher struct {
	registry *registry.Registry
	logger   logrus.FieldLogger
}

// New constructs a Dispatcher over the given registry.
func New(reg *registry.Registry, options ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: reg,
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	return d
}

// RenderField dispatches one field and always returns a usable widget. The
// host owns validation and model mutation through onChange; the dispatcher
// only plumbs the callback into the handler context. A resolution miss or a
// handler failure degrades to a plain text widget and one logged warning; no
// error ever propagates, and the next call re-resolves independently.
func (d *Dispatcher) RenderField(record any, name string, descriptor field.Descriptor, value any, cfg handler.Config, onChange handler.ChangeFunc) *widget.Widget {
	ctx := handler.Context{
		Field:      name,
		Descriptor: descriptor,
		Value:      value,
		OnChange:   onChange,
		Config:     cfg,
		Record:     record,
	}

	out := d.dispatch(ctx)
	if out.err == nil {
		return out.widget
	}
	return d.degrade(ctx, out)
}

// outcome is the tagged result of one resolve+create pass.
type outcome struct {
	widget  *widget.Widget
	handler handler.Handler
	err     error
}

func (d *Dispatcher) dispatch(ctx handler.Context) outcome {
	h, err := d.registry.Resolve(ctx.Descriptor)
	if err != nil {
		return outcome{err: err}
	}

	w, err := h.Create(ctx)
	switch {
	case err != nil:
		return outcome{handler: h, err: fmt.Errorf("%w: %w", ErrCreation, err)}
	case w == nil:
		return outcome{handler: h, err: fmt.Errorf("%w: handler %q returned no widget", ErrCreation, h.Name())}
	default:
		return outcome{widget: w, handler: h}
	}
}

// degrade is the single conversion point from a failed outcome to the
// degraded-but-functional state: one warning diagnostic naming the field,
// type, and handler, and a fallback widget identical in shape to the
// fallback handler's output.
func (d *Dispatcher) degrade(ctx handler.Context, out outcome) *widget.Widget {
	fields := logrus.Fields{
		"field": ctx.Field,
		"type":  ctx.Descriptor.Type.Kind,
	}
	if out.handler != nil {
		fields["handler"] = out.handler.Name()
	}

	switch {
	case errors.Is(out.err, registry.ErrNoHandler):
		d.logger.WithFields(fields).Warn("no handler resolved for field; rendering fallback widget")
	case errors.Is(out.err, handler.ErrNoMatch):
		d.logger.WithFields(fields).Warn("handler declined field at create time; rendering fallback widget")
	default:
		fields["error"] = out.err.Error()
		d.logger.WithFields(fields).Warn("handler failed to create widget; rendering fallback widget")
	}

	return handlers.FallbackWidget(ctx)
}
