package handlers

import (
	"github.com/goliatone/go-fieldwidgets/pkg/field"
	"github.com/goliatone/go-fieldwidgets/pkg/handler"
	"github.com/goliatone/go-fieldwidgets/pkg/widget"
)

// NestedHandler renders structured records, unions of records, and lists of
// records. A single record gets an edit affordance opening a host-owned
// sub-editor; a union additionally gets a type-switcher select; a list gets
// one edit/remove affordance per element plus an add affordance.
type NestedHandler struct{}

func (NestedHandler) Name() string  { return "nested" }
func (NestedHandler) Priority() int { return BuiltinPriority }

func (NestedHandler) CanHandle(d field.Descriptor) bool {
	t := d.Type
	if t.IsRecord() || t.IsRecordUnion() {
		return true
	}
	if t.Kind == field.KindList && t.Elem != nil && t.Elem.Kind == field.KindRecord {
		return true
	}
	return false
}

func (h NestedHandler) Create(ctx handler.Context) (*widget.Widget, error) {
	t := ctx.Descriptor.Type
	if t.Kind == field.KindList {
		return h.createList(ctx), nil
	}
	return h.createEditor(ctx), nil
}

func (NestedHandler) createEditor(ctx handler.Context) *widget.Widget {
	w := widget.New(widget.KindEditor, ctx.Field)
	w.Label = ctx.Descriptor.Label()
	w.Value = stringify(ctx.Value)
	w.Actions = []widget.Action{{
		Kind:   widget.ActionEdit,
		Label:  "Edit",
		Index:  -1,
		Target: ctx.Value,
	}}
	applyConfig(w, ctx.Config)

	if ctx.Descriptor.Type.IsRecordUnion() {
		w.Switcher = typeSwitcher(ctx)
	}

	// edits to the editor widget itself carry a replacement nested value
	// produced by the host's sub-editor
	w.Bind(func(raw any) error {
		ctx.Change(raw)
		return nil
	})
	return w
}

// typeSwitcher builds the select controlling which union variant the field
// holds. Selecting a variant reports the chosen type name through the change
// callback; the host swaps the nested value accordingly.
func typeSwitcher(ctx handler.Context) *widget.Widget {
	variants := ctx.Descriptor.Type.Variants
	sw := widget.New(widget.KindSelect, ctx.Field)
	sw.Label = ctx.Descriptor.Label() + " type"
	sw.Options = make([]widget.Option, 0, len(variants))
	for _, variant := range variants {
		sw.Options = append(sw.Options, widget.Option{Value: variant.Name, Label: variant.Name})
	}
	sw.Bind(func(raw any) error {
		ctx.Change(stringify(raw))
		return nil
	})
	return sw
}

func (NestedHandler) createList(ctx handler.Context) *widget.Widget {
	w := widget.New(widget.KindList, ctx.Field)
	w.Label = ctx.Descriptor.Label()
	applyConfig(w, ctx.Config)

	elements := coerceSlice(ctx.Value)
	actions := make([]widget.Action, 0, len(elements)*2+1)
	for i, element := range elements {
		actions = append(actions,
			widget.Action{Kind: widget.ActionEdit, Label: "Edit", Index: i, Target: element},
			widget.Action{Kind: widget.ActionRemove, Label: "Remove", Index: i, Target: element},
		)
	}
	actions = append(actions, widget.Action{Kind: widget.ActionAdd, Label: "Add", Index: -1})
	w.Actions = actions

	// edits carry the replacement element list after host-side add/remove
	w.Bind(func(raw any) error {
		ctx.Change(raw)
		return nil
	})
	return w
}
