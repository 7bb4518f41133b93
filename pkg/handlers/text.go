package handlers

import (
	"github.com/goliatone/go-fieldwidgets/pkg/field"
	"github.com/goliatone/go-fieldwidgets/pkg/handler"
	"github.com/goliatone/go-fieldwidgets/pkg/widget"
)

// TextHandler renders string and path fields as single-line inputs, or as a
// textarea when the descriptor hints a multi-line variant.
type TextHandler struct{}

func (TextHandler) Name() string  { return "text" }
func (TextHandler) Priority() int { return BuiltinPriority }

func (TextHandler) CanHandle(d field.Descriptor) bool {
	if choiceLike(d) {
		return false
	}
	switch d.Type.Kind {
	case field.KindString, field.KindPath:
		return true
	}
	return d.Hints.String(field.HintInput) == field.InputTextArea
}

func (TextHandler) Create(ctx handler.Context) (*widget.Widget, error) {
	kind := widget.KindText
	if ctx.Descriptor.Hints.String(field.HintInput) == field.InputTextArea {
		kind = widget.KindTextArea
	}

	w := widget.New(kind, ctx.Field)
	w.Label = ctx.Descriptor.Label()
	w.Value = stringify(ctx.Value)
	w.Placeholder = ctx.Descriptor.Description
	if ctx.Descriptor.Type.Optional {
		w.SetProp("clearable", "true")
	}
	applyConfig(w, ctx.Config)

	w.Bind(func(raw any) error {
		ctx.Change(stringify(raw))
		return nil
	})
	return w, nil
}

func applyConfig(w *widget.Widget, cfg handler.Config) {
	if cfg.ReadOnly {
		w.SetProp("readonly", "true")
	}
	if cfg.InputClass != "" {
		w.SetProp("class", cfg.InputClass)
	}
}
