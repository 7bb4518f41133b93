package handlers

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-fieldwidgets/pkg/field"
	"github.com/goliatone/go-fieldwidgets/pkg/handler"
	"github.com/goliatone/go-fieldwidgets/pkg/widget"
)

// CollectionHandler renders lists and sets of scalar elements as a single
// text input holding the delimiter-separated serialization. Parse failures
// come back as validation errors from the input binding, never as crashes.
type CollectionHandler struct{}

func (CollectionHandler) Name() string  { return "collection" }
func (CollectionHandler) Priority() int { return BuiltinPriority }

func (CollectionHandler) CanHandle(d field.Descriptor) bool {
	t := d.Type
	if t.Kind != field.KindList && t.Kind != field.KindSet {
		return false
	}
	if t.Elem == nil {
		return false
	}
	switch t.Elem.Kind {
	case field.KindString, field.KindInteger, field.KindNumber:
		return true
	}
	return false
}

func (CollectionHandler) Create(ctx handler.Context) (*widget.Widget, error) {
	desc := ctx.Descriptor
	elemKind := desc.Type.Elem.Kind

	delimiter := ctx.Config.Delimiter()
	if hinted := desc.Hints.String(field.HintDelimiter); hinted != "" {
		delimiter = hinted
	}
	separator := strings.TrimSpace(delimiter)
	if separator == "" {
		separator = ","
	}

	w := widget.New(widget.KindText, ctx.Field)
	w.Label = desc.Label()
	w.Value = joinElements(coerceSlice(ctx.Value), delimiter)
	w.Placeholder = fmt.Sprintf("Enter %s values separated by %q", elemKind, separator)
	w.Tooltip = fmt.Sprintf("Values separated by %q (e.g. a%sb%sc)", separator, delimiter, delimiter)
	w.SetProp("collection", string(elemKind))
	applyConfig(w, ctx.Config)

	w.Bind(func(raw any) error {
		text, ok := raw.(string)
		if !ok {
			return fmt.Errorf("handlers: expected %s collection string, got %T", elemKind, raw)
		}
		parsed, err := parseCollection(text, separator, elemKind)
		if err != nil {
			return err
		}
		ctx.Change(parsed)
		return nil
	})
	return w, nil
}

func joinElements(elements []any, delimiter string) string {
	parts := make([]string, 0, len(elements))
	for _, element := range elements {
		parts = append(parts, stringify(element))
	}
	return strings.Join(parts, delimiter)
}

// parseCollection splits and converts the serialized collection. Blank input
// yields an empty collection; any element failing conversion fails the whole
// edit so partial updates never reach the host.
func parseCollection(text, separator string, elemKind field.Kind) (any, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		switch elemKind {
		case field.KindInteger:
			return []int64{}, nil
		case field.KindNumber:
			return []float64{}, nil
		default:
			return []string{}, nil
		}
	}

	var parts []string
	for _, part := range strings.Split(trimmed, separator) {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}

	switch elemKind {
	case field.KindInteger:
		out := make([]int64, 0, len(parts))
		for _, part := range parts {
			value, err := parseNumeric(part, true)
			if err != nil {
				return nil, err
			}
			out = append(out, value.(int64))
		}
		return out, nil
	case field.KindNumber:
		out := make([]float64, 0, len(parts))
		for _, part := range parts {
			value, err := parseNumeric(part, false)
			if err != nil {
				return nil, err
			}
			out = append(out, value.(float64))
		}
		return out, nil
	default:
		return parts, nil
	}
}
