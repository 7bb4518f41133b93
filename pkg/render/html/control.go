package html

import (
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-fieldwidgets/pkg/widget"
)

// buildControl produces the markup for a single widget. The output is safe
// to inject unescaped into the form shell; every dynamic value passes
// through html.EscapeString here.
func buildControl(w *widget.Widget) string {
	var b strings.Builder
	b.Grow(256)

	switch w.Kind {
	case widget.KindTextArea:
		b.WriteString(`<textarea`)
		writeCommonAttrs(&b, w)
		b.WriteString(`>`)
		b.WriteString(html.EscapeString(w.Value))
		b.WriteString(`</textarea>`)

	case widget.KindToggle:
		b.WriteString(`<input type="checkbox"`)
		writeCommonAttrs(&b, w)
		if w.Checked {
			b.WriteString(` checked`)
		}
		b.WriteString(`>`)

	case widget.KindSelect, widget.KindMultiSelect:
		b.WriteString(`<select`)
		writeCommonAttrs(&b, w)
		if w.Multiple {
			b.WriteString(` multiple`)
		}
		b.WriteString(`>`)
		writeOptions(&b, w)
		b.WriteString(`</select>`)

	case widget.KindNumber, widget.KindSlider:
		inputType := "number"
		if w.Kind == widget.KindSlider {
			inputType = "range"
		}
		b.WriteString(`<input type="` + inputType + `"`)
		writeCommonAttrs(&b, w)
		writeValueAttr(&b, w.Value)
		writeNumberAttr(&b, "min", w.Min)
		writeNumberAttr(&b, "max", w.Max)
		writeNumberAttr(&b, "step", w.Step)
		b.WriteString(`>`)

	case widget.KindDate:
		writeInput(&b, "date", w)
	case widget.KindTime:
		writeInput(&b, "time", w)
	case widget.KindDateTime:
		writeInput(&b, "datetime-local", w)

	case widget.KindEditor:
		writeComposite(&b, w, "fieldwidgets-editor")
	case widget.KindList:
		writeComposite(&b, w, "fieldwidgets-list")

	default:
		writeInput(&b, "text", w)
	}

	return b.String()
}

func writeInput(b *strings.Builder, inputType string, w *widget.Widget) {
	b.WriteString(`<input type="` + inputType + `"`)
	writeCommonAttrs(b, w)
	writeValueAttr(b, w.Value)
	b.WriteString(`>`)
}

func writeCommonAttrs(b *strings.Builder, w *widget.Widget) {
	b.WriteString(` id="`)
	b.WriteString(html.EscapeString(w.ID))
	b.WriteString(`" name="`)
	b.WriteString(html.EscapeString(w.Field))
	b.WriteString(`"`)

	if w.Placeholder != "" {
		b.WriteString(` placeholder="`)
		b.WriteString(html.EscapeString(w.Placeholder))
		b.WriteString(`"`)
	}
	if cls := w.Prop("class"); cls != "" {
		b.WriteString(` class="`)
		b.WriteString(html.EscapeString(cls))
		b.WriteString(`"`)
	}
	if w.Prop("readonly") == "true" {
		b.WriteString(` readonly`)
	}
	if w.Clearable() {
		b.WriteString(` data-clearable="true"`)
	}
}

func writeValueAttr(b *strings.Builder, value string) {
	if value == "" {
		return
	}
	b.WriteString(` value="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}

func writeNumberAttr(b *strings.Builder, name string, value *float64) {
	if value == nil {
		return
	}
	b.WriteString(` ` + name + `="`)
	b.WriteString(strconv.FormatFloat(*value, 'f', -1, 64))
	b.WriteString(`"`)
}

func writeOptions(b *strings.Builder, w *widget.Widget) {
	selected := make(map[string]bool)
	if w.Multiple {
		for _, v := range w.Selected {
			selected[v] = true
		}
	} else if w.Value != "" {
		selected[w.Value] = true
	}

	for _, opt := range w.Options {
		b.WriteString(`<option value="`)
		b.WriteString(html.EscapeString(opt.Value))
		b.WriteString(`"`)
		if selected[opt.Value] {
			b.WriteString(` selected`)
		}
		b.WriteString(`>`)
		b.WriteString(html.EscapeString(opt.Label))
		b.WriteString(`</option>`)
	}
}

// writeComposite renders nested-record and list widgets as a fieldset whose
// buttons expose the edit/remove/add affordances. Hosts wire the buttons to
// sub-editors; the markup only carries the addressing data.
func writeComposite(b *strings.Builder, w *widget.Widget, class string) {
	b.WriteString(`<fieldset class="` + class + `" id="`)
	b.WriteString(html.EscapeString(w.ID))
	b.WriteString(`" data-field="`)
	b.WriteString(html.EscapeString(w.Field))
	b.WriteString(`">`)

	if w.Value != "" {
		b.WriteString(`<span class="fieldwidgets-summary">`)
		b.WriteString(html.EscapeString(w.Value))
		b.WriteString(`</span>`)
	}

	if w.Switcher != nil {
		b.WriteString(`<select class="fieldwidgets-switcher" name="`)
		b.WriteString(html.EscapeString(w.Switcher.Field))
		b.WriteString(`">`)
		writeOptions(b, w.Switcher)
		b.WriteString(`</select>`)
	}

	for _, action := range w.Actions {
		b.WriteString(`<button type="button" data-action="`)
		b.WriteString(html.EscapeString(string(action.Kind)))
		b.WriteString(`" data-index="`)
		b.WriteString(strconv.Itoa(action.Index))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(action.Label))
		b.WriteString(`</button>`)
	}

	b.WriteString(`</fieldset>`)
}
