package handlers

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"

	"github.com/goliatone/go-fieldwidgets/pkg/field"
	"github.com/goliatone/go-fieldwidgets/pkg/handler"
	"github.com/goliatone/go-fieldwidgets/pkg/registry"
	"github.com/goliatone/go-fieldwidgets/pkg/widget"
)

func floatPtr(v float64) *float64 { return &v }

func contextFor(d field.Descriptor, value any, onChange handler.ChangeFunc) handler.Context {
	return handler.Context{
		Field:      d.Name,
		Descriptor: d,
		Value:      value,
		OnChange:   onChange,
	}
}

func TestTextHandler_ClearableTracksOptional(t *testing.T) {
	h := TextHandler{}

	optional := field.Descriptor{Name: "nickname", Type: field.TypeSpec{Kind: field.KindString, Optional: true}}
	w, err := h.Create(contextFor(optional, "zed", nil))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !w.Clearable() {
		t.Fatal("optional string widget should be clearable")
	}

	required := field.Descriptor{Name: "name", Type: field.TypeSpec{Kind: field.KindString}}
	w, err = h.Create(contextFor(required, "zed", nil))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if w.Clearable() {
		t.Fatal("required string widget should not be clearable")
	}
}

func TestTextHandler_TextAreaHint(t *testing.T) {
	h := TextHandler{}
	d := field.Descriptor{
		Name:  "body",
		Type:  field.TypeSpec{Kind: field.KindString},
		Hints: field.Hints{field.HintInput: field.InputTextArea},
	}
	if !h.CanHandle(d) {
		t.Fatal("textarea hint should match")
	}
	w, err := h.Create(contextFor(d, "hello", nil))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if w.Kind != widget.KindTextArea {
		t.Fatalf("expected textarea, got %s", w.Kind)
	}
}

func TestTextHandler_InputInvokesCallback(t *testing.T) {
	var got any
	d := field.Descriptor{Name: "name", Type: field.TypeSpec{Kind: field.KindString}}
	w, err := TextHandler{}.Create(contextFor(d, "", func(v any) { got = v }))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := w.Input("updated"); err != nil {
		t.Fatalf("input: %v", err)
	}
	if got != "updated" {
		t.Fatalf("callback received %v", got)
	}
}

func TestNumericHandler_SliderRequiresHintAndBounds(t *testing.T) {
	h := NumericHandler{}

	cases := []struct {
		name string
		desc field.Descriptor
		want widget.Kind
	}{
		{
			name: "slider hint with both bounds",
			desc: field.Descriptor{
				Name:        "volume",
				Type:        field.TypeSpec{Kind: field.KindInteger},
				Constraints: field.Constraints{Min: floatPtr(0), Max: floatPtr(100)},
				Hints:       field.Hints{field.HintInput: field.InputSlider},
			},
			want: widget.KindSlider,
		},
		{
			name: "slider hint missing max",
			desc: field.Descriptor{
				Name:        "volume",
				Type:        field.TypeSpec{Kind: field.KindInteger},
				Constraints: field.Constraints{Min: floatPtr(0)},
				Hints:       field.Hints{field.HintInput: field.InputSlider},
			},
			want: widget.KindNumber,
		},
		{
			name: "no hint",
			desc: field.Descriptor{
				Name:        "volume",
				Type:        field.TypeSpec{Kind: field.KindInteger},
				Constraints: field.Constraints{Min: floatPtr(0), Max: floatPtr(100)},
			},
			want: widget.KindNumber,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, err := h.Create(contextFor(tc.desc, nil, nil))
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if w.Kind != tc.want {
				t.Fatalf("want %s, got %s", tc.want, w.Kind)
			}
		})
	}
}

func TestNumericHandler_IntegerParsing(t *testing.T) {
	var got any
	d := field.Descriptor{Name: "age", Type: field.TypeSpec{Kind: field.KindInteger}}
	w, err := NumericHandler{}.Create(contextFor(d, 7, func(v any) { got = v }))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := w.Input("42"); err != nil {
		t.Fatalf("input: %v", err)
	}
	if got != int64(42) {
		t.Fatalf("callback received %v (%T)", got, got)
	}

	if err := w.Input("4.5"); err == nil {
		t.Fatal("fractional input should fail integer parsing")
	}
	if got != int64(42) {
		t.Fatal("failed parse must not reach the callback")
	}
}

func TestNumericHandler_OptionalClearsToNil(t *testing.T) {
	called := false
	var got any
	d := field.Descriptor{Name: "score", Type: field.TypeSpec{Kind: field.KindNumber, Optional: true}}
	w, err := NumericHandler{}.Create(contextFor(d, 1.5, func(v any) { called = true; got = v }))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !w.Clearable() {
		t.Fatal("optional numeric input should be clearable")
	}
	if err := w.Input(""); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !called || got != nil {
		t.Fatalf("expected nil callback value, got %v (called=%v)", got, called)
	}
}

func TestBooleanHandler_Toggle(t *testing.T) {
	var got any
	d := field.Descriptor{Name: "active", Type: field.TypeSpec{Kind: field.KindBool}}
	w, err := BooleanHandler{}.Create(contextFor(d, true, func(v any) { got = v }))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if w.Kind != widget.KindToggle || !w.Checked {
		t.Fatalf("unexpected toggle state: kind=%s checked=%v", w.Kind, w.Checked)
	}
	if err := w.Input(false); err != nil {
		t.Fatalf("input: %v", err)
	}
	if got != false {
		t.Fatalf("callback received %v", got)
	}
}

func TestTemporalHandler_Kinds(t *testing.T) {
	h := TemporalHandler{}
	cases := []struct {
		kind field.Kind
		want widget.Kind
	}{
		{field.KindDate, widget.KindDate},
		{field.KindTime, widget.KindTime},
		{field.KindDateTime, widget.KindDateTime},
	}
	for _, tc := range cases {
		d := field.Descriptor{Name: "when", Type: field.TypeSpec{Kind: tc.kind}}
		if !h.CanHandle(d) {
			t.Fatalf("%s should match", tc.kind)
		}
		w, err := h.Create(contextFor(d, nil, nil))
		if err != nil {
			t.Fatalf("create %s: %v", tc.kind, err)
		}
		if w.Kind != tc.want {
			t.Fatalf("%s: want %s, got %s", tc.kind, tc.want, w.Kind)
		}
	}
}

func TestTemporalHandler_ParsesAndRejects(t *testing.T) {
	var got any
	d := field.Descriptor{Name: "birthday", Type: field.TypeSpec{Kind: field.KindDate}}
	w, err := TemporalHandler{}.Create(contextFor(d, nil, func(v any) { got = v }))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := w.Input("2024-02-29"); err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	want := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	if !got.(time.Time).Equal(want) {
		t.Fatalf("parsed %v, want %v", got, want)
	}

	if err := w.Input("not-a-date"); err == nil {
		t.Fatal("invalid date should fail")
	}
}

func TestTemporalHandler_FormatsCurrentValue(t *testing.T) {
	d := field.Descriptor{Name: "when", Type: field.TypeSpec{Kind: field.KindDateTime}}
	now := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	w, err := TemporalHandler{}.Create(contextFor(d, now, nil))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if w.Value != "2025-03-01T09:30:00Z" {
		t.Fatalf("unexpected display value %q", w.Value)
	}
}

func TestChoiceHandler_LiteralSet(t *testing.T) {
	d := field.Descriptor{
		Name: "color",
		Type: field.TypeSpec{Kind: field.KindString, Enum: []any{"red", "green", "blue"}},
	}
	h := ChoiceHandler{}
	if !h.CanHandle(d) {
		t.Fatal("enum descriptor should match")
	}

	w, err := h.Create(contextFor(d, "green", nil))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if w.Kind != widget.KindSelect || w.Multiple {
		t.Fatalf("expected single select, got kind=%s multiple=%v", w.Kind, w.Multiple)
	}

	want := []widget.Option{
		{Value: "red", Label: "red"},
		{Value: "green", Label: "green"},
		{Value: "blue", Label: "blue"},
	}
	if diff := cmp.Diff(want, w.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if w.Value != "green" {
		t.Fatalf("current value lost: %q", w.Value)
	}
}

func TestChoiceHandler_ValueOutsideOptionsSnapsToFirst(t *testing.T) {
	d := field.Descriptor{
		Name: "color",
		Type: field.TypeSpec{Kind: field.KindString, Enum: []any{"red", "green"}},
	}
	w, err := ChoiceHandler{}.Create(contextFor(d, "magenta", nil))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if w.Value != "red" {
		t.Fatalf("expected first option, got %q", w.Value)
	}
}

func TestChoiceHandler_DynamicOptionsAndMultiSelect(t *testing.T) {
	var got any
	d := field.Descriptor{
		Name: "tags",
		Type: field.TypeSpec{Kind: field.KindList, Elem: &field.TypeSpec{Kind: field.KindString}},
		Hints: field.Hints{
			field.HintInput: field.InputMultiSelect,
			field.HintOptions: field.OptionsFunc(func() []field.Option {
				return []field.Option{{Value: "go"}, {Value: "sql"}}
			}),
		},
	}
	w, err := ChoiceHandler{}.Create(contextFor(d, []string{"go"}, func(v any) { got = v }))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if w.Kind != widget.KindMultiSelect || !w.Multiple {
		t.Fatalf("expected multiselect, got %s", w.Kind)
	}

	if err := w.Input([]string{"go", "sql"}); err != nil {
		t.Fatalf("input: %v", err)
	}
	if diff := cmp.Diff([]string{"go", "sql"}, got); diff != "" {
		t.Fatalf("callback mismatch (-want +got):\n%s", diff)
	}

	if err := w.Input([]string{"rust"}); err == nil {
		t.Fatal("selection outside options should fail")
	}
}

func TestChoiceHandler_HintedSelectWithoutOptionsIsNoMatch(t *testing.T) {
	d := field.Descriptor{
		Name:  "pick",
		Type:  field.TypeSpec{Kind: field.KindString},
		Hints: field.Hints{field.HintInput: field.InputSelect},
	}
	_, err := ChoiceHandler{}.Create(contextFor(d, nil, nil))
	if err == nil {
		t.Fatal("expected NoMatch for optionless select")
	}
}

func TestNestedHandler_ListOfRecords(t *testing.T) {
	elem := field.TypeSpec{Kind: field.KindRecord, Name: "Address"}
	d := field.Descriptor{
		Name: "addresses",
		Type: field.TypeSpec{Kind: field.KindList, Elem: &elem},
	}
	h := NestedHandler{}
	if !h.CanHandle(d) {
		t.Fatal("list of records should match")
	}

	value := []any{map[string]any{"city": "Lisbon"}, map[string]any{"city": "Porto"}}
	w, err := h.Create(contextFor(d, value, nil))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if w.Kind != widget.KindList {
		t.Fatalf("expected list widget, got %s", w.Kind)
	}

	counts := map[widget.ActionKind]int{}
	for _, action := range w.Actions {
		counts[action.Kind]++
	}
	if counts[widget.ActionEdit] != 2 || counts[widget.ActionRemove] != 2 || counts[widget.ActionAdd] != 1 {
		t.Fatalf("unexpected affordances: %+v", counts)
	}
}

func TestNestedHandler_UnionGetsSwitcher(t *testing.T) {
	d := field.Descriptor{
		Name: "payment",
		Type: field.TypeSpec{
			Kind: field.KindUnion,
			Variants: []field.TypeSpec{
				{Kind: field.KindRecord, Name: "Card"},
				{Kind: field.KindRecord, Name: "Invoice"},
			},
		},
	}
	h := NestedHandler{}
	if !h.CanHandle(d) {
		t.Fatal("record union should match")
	}

	var got any
	w, err := h.Create(contextFor(d, nil, func(v any) { got = v }))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if w.Switcher == nil {
		t.Fatal("union widget must carry a type switcher")
	}
	if len(w.Switcher.Options) != 2 {
		t.Fatalf("switcher options: %+v", w.Switcher.Options)
	}
	if err := w.Switcher.Input("Invoice"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if got != "Invoice" {
		t.Fatalf("callback received %v", got)
	}
}

func TestNestedHandler_MixedUnionDoesNotMatch(t *testing.T) {
	d := field.Descriptor{
		Name: "value",
		Type: field.TypeSpec{
			Kind: field.KindUnion,
			Variants: []field.TypeSpec{
				{Kind: field.KindRecord, Name: "Card"},
				{Kind: field.KindString},
			},
		},
	}
	if (NestedHandler{}).CanHandle(d) {
		t.Fatal("union with non-record variant should not match")
	}
}

func TestCollectionHandler_RoundTrip(t *testing.T) {
	var got any
	d := field.Descriptor{
		Name: "ports",
		Type: field.TypeSpec{Kind: field.KindList, Elem: &field.TypeSpec{Kind: field.KindInteger}},
	}
	w, err := CollectionHandler{}.Create(contextFor(d, []int{80, 443}, func(v any) { got = v }))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if w.Value != "80, 443" {
		t.Fatalf("serialized value %q", w.Value)
	}

	if err := w.Input("8080, 9090"); err != nil {
		t.Fatalf("input: %v", err)
	}
	if diff := cmp.Diff([]int64{8080, 9090}, got); diff != "" {
		t.Fatalf("callback mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectionHandler_ParseFailureIsValidationError(t *testing.T) {
	called := false
	d := field.Descriptor{
		Name: "ports",
		Type: field.TypeSpec{Kind: field.KindList, Elem: &field.TypeSpec{Kind: field.KindInteger}},
	}
	w, err := CollectionHandler{}.Create(contextFor(d, nil, func(any) { called = true }))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := w.Input("80, oops"); err == nil {
		t.Fatal("expected parse error")
	}
	if called {
		t.Fatal("failed parse must not invoke the callback")
	}
}

func TestCollectionHandler_EmptyInputYieldsEmptyCollection(t *testing.T) {
	var got any
	d := field.Descriptor{
		Name: "tags",
		Type: field.TypeSpec{Kind: field.KindSet, Elem: &field.TypeSpec{Kind: field.KindString}},
	}
	w, err := CollectionHandler{}.Create(contextFor(d, nil, func(v any) { got = v }))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := w.Input("   "); err != nil {
		t.Fatalf("input: %v", err)
	}
	if diff := cmp.Diff([]string{}, got); diff != "" {
		t.Fatalf("callback mismatch (-want +got):\n%s", diff)
	}
}

func TestFallbackHandler_WarnsOnceAndSeedsStringValue(t *testing.T) {
	logger, hook := logrustest.NewNullLogger()

	h := NewFallbackHandler(logger)
	d := field.Descriptor{Name: "mystery", Type: field.TypeSpec{Kind: "exotic"}}
	if !h.CanHandle(d) {
		t.Fatal("fallback must match everything")
	}

	w, err := h.Create(contextFor(d, 1234, nil))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if w.Kind != widget.KindText || w.Value != "1234" {
		t.Fatalf("unexpected fallback widget: kind=%s value=%q", w.Kind, w.Value)
	}

	entries := hook.AllEntries()
	if len(entries) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Level != logrus.WarnLevel {
		t.Fatalf("expected warning level, got %s", entry.Level)
	}
	if entry.Data["field"] != "mystery" || entry.Data["type"] != field.Kind("exotic") {
		t.Fatalf("diagnostic missing field/type: %+v", entry.Data)
	}
}

func TestBuiltins_CoverEveryCategory(t *testing.T) {
	set := Builtins(nil)
	if len(set) != 8 {
		t.Fatalf("expected 8 built-in handlers, got %d", len(set))
	}
	names := map[string]bool{}
	for _, h := range set {
		names[h.Name()] = true
	}
	for _, want := range []string{"text", "numeric", "boolean", "temporal", "choice", "nested", "collection", "fallback"} {
		if !names[want] {
			t.Fatalf("missing built-in %q", want)
		}
	}
}

func TestResolve_LiteralAndHintedFieldsReachChoice(t *testing.T) {
	logger, _ := logrustest.NewNullLogger()
	reg := registry.New()
	Install(reg, logger)

	cases := []struct {
		name string
		desc field.Descriptor
		want string
	}{
		{
			name: "string literal set",
			desc: field.Descriptor{
				Name: "color",
				Type: field.TypeSpec{Kind: field.KindString, Enum: []any{"red", "green", "blue"}},
			},
			want: "choice",
		},
		{
			name: "integer literal set",
			desc: field.Descriptor{
				Name: "level",
				Type: field.TypeSpec{Kind: field.KindInteger, Enum: []any{1, 2, 3}},
			},
			want: "choice",
		},
		{
			name: "select-hinted string",
			desc: field.Descriptor{
				Name:  "pick",
				Type:  field.TypeSpec{Kind: field.KindString},
				Hints: field.Hints{field.HintInput: field.InputSelect},
			},
			want: "choice",
		},
		{
			name: "multiselect-hinted list",
			desc: field.Descriptor{
				Name:  "tags",
				Type:  field.TypeSpec{Kind: field.KindList, Elem: &field.TypeSpec{Kind: field.KindString}},
				Hints: field.Hints{field.HintInput: field.InputMultiSelect},
			},
			want: "choice",
		},
		{
			name: "plain string stays with text",
			desc: field.Descriptor{Name: "title", Type: field.TypeSpec{Kind: field.KindString}},
			want: "text",
		},
		{
			name: "plain integer stays with numeric",
			desc: field.Descriptor{Name: "count", Type: field.TypeSpec{Kind: field.KindInteger}},
			want: "numeric",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, err := reg.Resolve(tc.desc)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if h.Name() != tc.want {
				t.Fatalf("resolved %q, want %q", h.Name(), tc.want)
			}
		})
	}
}

func TestChoiceHandler_SelectionSurvivesCommaOptionValues(t *testing.T) {
	d := field.Descriptor{
		Name: "regions",
		Type: field.TypeSpec{Kind: field.KindList, Elem: &field.TypeSpec{Kind: field.KindString}},
		Hints: field.Hints{
			field.HintInput: field.InputMultiSelect,
			field.HintOptions: []field.Option{
				{Value: "Raleigh, NC"},
				{Value: "Austin, TX"},
				{Value: "Boise, ID"},
			},
		},
	}

	w, err := ChoiceHandler{}.Create(contextFor(d, []string{"Raleigh, NC", "Boise, ID"}, nil))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	want := []string{"Raleigh, NC", "Boise, ID"}
	if diff := cmp.Diff(want, w.Selected); diff != "" {
		t.Fatalf("selection mangled (-want +got):\n%s", diff)
	}
}
