package handlers

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-fieldwidgets/pkg/field"
	"github.com/goliatone/go-fieldwidgets/pkg/handler"
	"github.com/goliatone/go-fieldwidgets/pkg/widget"
)

// ChoiceHandler renders closed literal sets and hint-selected fields as
// single- or multi-select widgets. Options come from the literal's member
// set, or from an options supplier carried in the hints.
type ChoiceHandler struct{}

func (ChoiceHandler) Name() string  { return "choice" }
func (ChoiceHandler) Priority() int { return BuiltinPriority }

func (ChoiceHandler) CanHandle(d field.Descriptor) bool {
	return choiceLike(d)
}

// choiceLike reports whether a descriptor belongs to the choice handler: a
// closed literal set, or an explicit select/multiselect hint. Text and
// numeric exclude these so a literal string or integer field reaches the
// choice handler regardless of registration order.
func choiceLike(d field.Descriptor) bool {
	if len(d.Type.Enum) > 0 {
		return true
	}
	switch d.Hints.String(field.HintInput) {
	case field.InputSelect, field.InputMultiSelect:
		return true
	}
	return false
}

func (ChoiceHandler) Create(ctx handler.Context) (*widget.Widget, error) {
	desc := ctx.Descriptor
	multiple := desc.Hints.String(field.HintInput) == field.InputMultiSelect

	options := choiceOptions(desc)
	if len(options) == 0 {
		// a hinted select without options cannot render a meaningful widget
		return nil, fmt.Errorf("handlers: choice field %q has no options: %w", ctx.Field, handler.ErrNoMatch)
	}

	kind := widget.KindSelect
	if multiple {
		kind = widget.KindMultiSelect
	}

	w := widget.New(kind, ctx.Field)
	w.Label = desc.Label()
	w.Options = options
	w.Multiple = multiple
	applyConfig(w, ctx.Config)

	if multiple {
		w.Selected = selectedValues(ctx.Value)
		w.Value = strings.Join(w.Selected, ", ")
	} else {
		current := stringify(ctx.Value)
		if !optionExists(options, current) {
			current = options[0].Value
		}
		w.Value = current
	}

	w.Bind(func(raw any) error {
		if !multiple {
			value := stringify(raw)
			if !optionExists(options, value) {
				return fmt.Errorf("handlers: %q is not an option for field %q", value, ctx.Field)
			}
			ctx.Change(value)
			return nil
		}

		selected := coerceSlice(raw)
		if selected == nil && raw != nil {
			return fmt.Errorf("handlers: expected selection list, got %T", raw)
		}
		values := make([]string, 0, len(selected))
		for _, item := range selected {
			value := stringify(item)
			if !optionExists(options, value) {
				return fmt.Errorf("handlers: %q is not an option for field %q", value, ctx.Field)
			}
			values = append(values, value)
		}
		ctx.Change(values)
		return nil
	})
	return w, nil
}

func choiceOptions(desc field.Descriptor) []widget.Option {
	if len(desc.Type.Enum) > 0 {
		out := make([]widget.Option, 0, len(desc.Type.Enum))
		for _, member := range desc.Type.Enum {
			value := stringify(member)
			out = append(out, widget.Option{Value: value, Label: value})
		}
		return out
	}

	hinted := desc.Hints.Options()
	out := make([]widget.Option, 0, len(hinted))
	for _, opt := range hinted {
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		out = append(out, widget.Option{Value: opt.Value, Label: label})
	}
	return out
}

func optionExists(options []widget.Option, value string) bool {
	for _, opt := range options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

func selectedValues(value any) []string {
	items := coerceSlice(value)
	if len(items) == 0 {
		return nil
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = stringify(item)
	}
	return out
}
