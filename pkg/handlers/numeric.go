package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-fieldwidgets/pkg/field"
	"github.com/goliatone/go-fieldwidgets/pkg/handler"
	"github.com/goliatone/go-fieldwidgets/pkg/widget"
)

// NumericHandler renders integer and real fields as bounded number inputs,
// or as a range slider when the descriptor hints one and both bounds exist.
type NumericHandler struct{}

func (NumericHandler) Name() string  { return "numeric" }
func (NumericHandler) Priority() int { return BuiltinPriority }

func (NumericHandler) CanHandle(d field.Descriptor) bool {
	if choiceLike(d) {
		return false
	}
	return d.Type.Kind == field.KindInteger || d.Type.Kind == field.KindNumber
}

func (NumericHandler) Create(ctx handler.Context) (*widget.Widget, error) {
	desc := ctx.Descriptor
	min := desc.Constraints.Min
	max := desc.Constraints.Max

	wantsSlider := desc.Hints.String(field.HintInput) == field.InputSlider
	kind := widget.KindNumber
	if wantsSlider && min != nil && max != nil {
		kind = widget.KindSlider
	}

	w := widget.New(kind, ctx.Field)
	w.Label = desc.Label()
	w.Min = min
	w.Max = max
	if step, ok := desc.Hints.Float(field.HintStep); ok {
		w.Step = &step
	}

	switch {
	case ctx.Value != nil:
		w.Value = stringify(ctx.Value)
	case kind == widget.KindSlider:
		// sliders need a position; seed at the lower bound
		w.Value = stringify(*min)
	}

	if kind == widget.KindNumber && desc.Type.Optional {
		w.SetProp("clearable", "true")
	}
	applyConfig(w, ctx.Config)

	integer := desc.Type.Kind == field.KindInteger
	w.Bind(func(raw any) error {
		value, err := parseNumeric(raw, integer)
		if err != nil {
			return err
		}
		ctx.Change(value)
		return nil
	})
	return w, nil
}

// parseNumeric converts a raw edit into the declared numeric type. A nil or
// blank raw value maps to nil, which clearable optional inputs emit.
func parseNumeric(raw any, integer bool) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case int:
		if integer {
			return int64(v), nil
		}
		return float64(v), nil
	case int64:
		if integer {
			return v, nil
		}
		return float64(v), nil
	case float64:
		if integer {
			if v != float64(int64(v)) {
				return nil, fmt.Errorf("handlers: %v is not an integer", v)
			}
			return int64(v), nil
		}
		return v, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		if integer {
			parsed, err := strconv.ParseInt(trimmed, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("handlers: parse integer %q: %w", trimmed, err)
			}
			return parsed, nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("handlers: parse number %q: %w", trimmed, err)
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("handlers: expected number, got %T", raw)
	}
}
