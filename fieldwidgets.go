// Package fieldwidgets renders editable form widgets for structured data
// records. Field descriptors route through a priority-ordered handler
// registry to exactly one widget-producing strategy, with user-supplied
// overrides and graceful degradation when no handler fits or a handler
// fails.
//
// This package wraps the default process-wide registry and dispatcher for
// hosts that want a single call site; advanced callers assemble their own
// from pkg/registry and pkg/dispatch.
package fieldwidgets

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-fieldwidgets/pkg/dispatch"
	"github.com/goliatone/go-fieldwidgets/pkg/field"
	"github.com/goliatone/go-fieldwidgets/pkg/handler"
	"github.com/goliatone/go-fieldwidgets/pkg/handlers"
	"github.com/goliatone/go-fieldwidgets/pkg/registry"
	"github.com/goliatone/go-fieldwidgets/pkg/widget"
)

var (
	defaultMu         sync.Mutex
	defaultRegistry   *registry.Registry
	defaultDispatcher *dispatch.Dispatcher
)

// DefaultRegistry returns the process-lifetime registry with the built-in
// handler set installed. Registration on it must complete during application
// startup, before concurrent dispatching begins.
func DefaultRegistry() *registry.Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	ensureDefaults()
	return defaultRegistry
}

// RegisterCustomHandler registers a handler for domain-specific types on the
// default registry. Handlers registered above priority 100 are tried before
// the built-ins; equal-priority handlers resolve after them in registration
// order.
func RegisterCustomHandler(h handler.Handler, priority int) error {
	if h == nil {
		return fmt.Errorf("fieldwidgets: handler is required")
	}
	if priority < 0 {
		return fmt.Errorf("fieldwidgets: priority must be non-negative, got %d", priority)
	}
	DefaultRegistry().RegisterWithPriority(h, priority)
	return nil
}

// RenderField dispatches one field through the default registry and returns
// its widget handle. Failures degrade to a plain text widget plus a warning
// diagnostic; no error ever reaches the caller.
func RenderField(record any, name string, descriptor field.Descriptor, value any, cfg handler.Config, onChange handler.ChangeFunc) *widget.Widget {
	defaultMu.Lock()
	ensureDefaults()
	d := defaultDispatcher
	defaultMu.Unlock()
	return d.RenderField(record, name, descriptor, value, cfg, onChange)
}

// Reset tears down the default registry and rebuilds it with only the
// built-in handlers. Intended for test isolation.
func Reset() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRegistry = nil
	defaultDispatcher = nil
	ensureDefaults()
}

func ensureDefaults() {
	if defaultRegistry != nil {
		return
	}
	defaultRegistry = registry.New()
	handlers.Install(defaultRegistry, logrus.StandardLogger())
	defaultDispatcher = dispatch.New(defaultRegistry)
}
