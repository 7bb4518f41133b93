// Package handlers provides the built-in widget handler set: text, numeric,
// boolean, temporal, choice, nested-record, scalar-collection, and the
// always-matching fallback. Built-ins register at priority 100; custom
// handlers wanting guaranteed override must register above that.
package handlers

import (
	"fmt"
	"reflect"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-fieldwidgets/pkg/handler"
	"github.com/goliatone/go-fieldwidgets/pkg/registry"
)

// Priorities for the built-in set. The fallback sits far below anything a
// caller would register so it is always evaluated last.
const (
	BuiltinPriority  = 100
	FallbackPriority = -1000
)

// Builtins returns the built-in handler set in registration order. The
// logger feeds the fallback handler's unhandled-type diagnostic; nil selects
// the logrus standard logger.
func Builtins(logger logrus.FieldLogger) []handler.Handler {
	return []handler.Handler{
		TextHandler{},
		NumericHandler{},
		BooleanHandler{},
		TemporalHandler{},
		ChoiceHandler{},
		NestedHandler{},
		CollectionHandler{},
		NewFallbackHandler(logger),
	}
}

// Install registers the built-in set on a registry. Call once during
// application startup, before any dispatching begins.
func Install(reg *registry.Registry, logger logrus.FieldLogger) {
	for _, h := range Builtins(logger) {
		reg.Register(h)
	}
}

func stringify(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

// coerceSlice flattens any slice or array value into []any; non-slice values
// yield nil.
func coerceSlice(value any) []any {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		return v
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out
}
