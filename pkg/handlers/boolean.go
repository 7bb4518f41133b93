package handlers

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-fieldwidgets/pkg/field"
	"github.com/goliatone/go-fieldwidgets/pkg/handler"
	"github.com/goliatone/go-fieldwidgets/pkg/widget"
)

// BooleanHandler renders boolean fields as toggles.
type BooleanHandler struct{}

func (BooleanHandler) Name() string  { return "boolean" }
func (BooleanHandler) Priority() int { return BuiltinPriority }

func (BooleanHandler) CanHandle(d field.Descriptor) bool {
	return d.Type.Kind == field.KindBool
}

func (BooleanHandler) Create(ctx handler.Context) (*widget.Widget, error) {
	w := widget.New(widget.KindToggle, ctx.Field)
	w.Label = ctx.Descriptor.Label()
	if checked, ok := ctx.Value.(bool); ok {
		w.Checked = checked
	}
	applyConfig(w, ctx.Config)

	w.Bind(func(raw any) error {
		switch v := raw.(type) {
		case bool:
			ctx.Change(v)
			return nil
		case string:
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("handlers: parse boolean %q: %w", v, err)
			}
			ctx.Change(parsed)
			return nil
		default:
			return fmt.Errorf("handlers: expected boolean, got %T", raw)
		}
	})
	return w, nil
}
