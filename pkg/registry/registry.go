// Package registry holds the priority-ordered handler table and the memoized
// descriptor→handler resolutions the dispatcher consults on every call.
package registry

import (
	"errors"

	"github.com/goliatone/go-fieldwidgets/pkg/field"
	"github.com/goliatone/go-fieldwidgets/pkg/handler"
)

// ErrNoHandler reports an exhausted predicate scan. With the fallback handler
// registered this is unreachable in normal operation; it exists so a registry
// assembled without the built-ins fails loudly instead of returning nil.
var ErrNoHandler = errors.New("registry: no handler matches descriptor")

type entry struct {
	h        handler.Handler
	priority int
	order    int
}

// Registry keeps handlers sorted by descending priority, ties broken by
// registration order, and memoizes resolutions keyed by the descriptor's
// type+hint signature.
//
// The registry carries no internal locking. Registration must complete before
// concurrent dispatch begins; registering concurrently with in-flight
// resolutions is undefined behavior. The expected lifecycle registers the
// built-in set plus any custom handlers during application startup.
type Registry struct {
	entries []entry
	cache   map[string]handler.Handler
	seq     int
}

// New constructs an empty registry. Most callers want the built-in handler
// set installed on top; see the handlers package.
func New() *Registry {
	return &Registry{
		cache: make(map[string]handler.Handler),
	}
}

// Register adds a handler at its own declared priority.
func (r *Registry) Register(h handler.Handler) {
	if h == nil {
		return
	}
	r.RegisterWithPriority(h, h.Priority())
}

// RegisterWithPriority adds a handler at an explicit priority, overriding the
// handler's own value. The entry is inserted preserving descending-priority,
// ascending-insertion-order ordering, and the resolution cache is cleared
// unconditionally: a new handler may win priority over an already-memoized
// resolution.
func (r *Registry) RegisterWithPriority(h handler.Handler, priority int) {
	if h == nil {
		return
	}

	idx := len(r.entries)
	for i, existing := range r.entries {
		if priority > existing.priority {
			idx = i
			break
		}
	}

	e := entry{h: h, priority: priority, order: r.seq}
	r.seq++

	r.entries = append(r.entries, entry{})
	copy(r.entries[idx+1:], r.entries[idx:])
	r.entries[idx] = e

	r.ClearCache()
}

// Resolve returns the first handler whose predicate accepts the descriptor.
// Resolutions are memoized on the descriptor's type+hint signature, not on
// identity: two descriptors with equal type and hints hit the same entry and
// skip the predicate scan entirely.
func (r *Registry) Resolve(d field.Descriptor) (handler.Handler, error) {
	key := d.Signature()
	if h, ok := r.cache[key]; ok {
		return h, nil
	}

	for _, e := range r.entries {
		if e.h.CanHandle(d) {
			r.cache[key] = e.h
			return e.h, nil
		}
	}

	return nil, ErrNoHandler
}

// Unregister removes every handler registered under the given name and
// clears the cache when anything was removed. It reports whether a removal
// happened.
func (r *Registry) Unregister(name string) bool {
	if name == "" {
		return false
	}

	kept := r.entries[:0]
	removed := false
	for _, e := range r.entries {
		if e.h.Name() == name {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept

	if removed {
		r.ClearCache()
	}
	return removed
}

// ClearCache drops all memoized resolutions without touching registrations.
// Resolve answers stay identical afterwards; only the predicate scan is
// recomputed.
func (r *Registry) ClearCache() {
	r.cache = make(map[string]handler.Handler)
}

// Reset removes every handler and memoized resolution. Intended for test
// isolation and teardown.
func (r *Registry) Reset() {
	r.entries = nil
	r.seq = 0
	r.ClearCache()
}

// Len reports the number of registered handlers.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Handlers returns the registered handlers in resolution order.
func (r *Registry) Handlers() []handler.Handler {
	out := make([]handler.Handler, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.h
	}
	return out
}
