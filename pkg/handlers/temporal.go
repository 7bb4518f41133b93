package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-fieldwidgets/pkg/field"
	"github.com/goliatone/go-fieldwidgets/pkg/handler"
	"github.com/goliatone/go-fieldwidgets/pkg/widget"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05"
	dateTimeLayout = time.RFC3339
)

// TemporalHandler renders date, time, and date-time fields as text inputs
// augmented with the matching picker overlay; date-time fields carry a
// combined date+time picker.
type TemporalHandler struct{}

func (TemporalHandler) Name() string  { return "temporal" }
func (TemporalHandler) Priority() int { return BuiltinPriority }

func (TemporalHandler) CanHandle(d field.Descriptor) bool {
	switch d.Type.Kind {
	case field.KindDate, field.KindTime, field.KindDateTime:
		return true
	}
	return false
}

func (TemporalHandler) Create(ctx handler.Context) (*widget.Widget, error) {
	kind := ctx.Descriptor.Type.Kind

	var wk widget.Kind
	switch kind {
	case field.KindDate:
		wk = widget.KindDate
	case field.KindTime:
		wk = widget.KindTime
	default:
		wk = widget.KindDateTime
	}

	w := widget.New(wk, ctx.Field)
	w.Label = ctx.Descriptor.Label()
	w.Value = formatTemporal(ctx.Value, kind)
	w.SetProp("picker", string(wk))
	if ctx.Descriptor.Type.Optional {
		w.SetProp("clearable", "true")
	}
	applyConfig(w, ctx.Config)

	w.Bind(func(raw any) error {
		parsed, err := parseTemporal(raw, kind)
		if err != nil {
			return err
		}
		ctx.Change(parsed)
		return nil
	})
	return w, nil
}

func formatTemporal(value any, kind field.Kind) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		switch kind {
		case field.KindDate:
			return v.Format(dateLayout)
		case field.KindTime:
			return v.Format(timeLayout)
		default:
			return v.Format(dateTimeLayout)
		}
	default:
		return stringify(value)
	}
}

// parseTemporal converts an edit into a time.Time per the declared temporal
// kind. Blank input maps to nil so optional fields can be cleared.
func parseTemporal(raw any, kind field.Kind) (any, error) {
	if raw == nil {
		return nil, nil
	}
	if t, ok := raw.(time.Time); ok {
		return t, nil
	}
	text, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("handlers: expected %s string, got %T", kind, raw)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	layouts := layoutsFor(kind)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return nil, fmt.Errorf("handlers: parse %s %q: no layout matched", kind, text)
}

func layoutsFor(kind field.Kind) []string {
	switch kind {
	case field.KindDate:
		return []string{dateLayout}
	case field.KindTime:
		return []string{timeLayout, "15:04"}
	default:
		return []string{dateTimeLayout, "2006-01-02T15:04:05", "2006-01-02T15:04"}
	}
}
