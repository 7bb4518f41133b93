package field

import "testing"

func floatPtr(v float64) *float64 { return &v }

func TestSignature_EqualTypeAndHints(t *testing.T) {
	a := Descriptor{
		Name: "age",
		Type: TypeSpec{Kind: KindInteger},
		Hints: Hints{
			HintInput: InputSlider,
			HintStep:  2,
		},
		Constraints: Constraints{Min: floatPtr(0)},
	}
	b := Descriptor{
		Name: "height",
		Type: TypeSpec{Kind: KindInteger},
		Hints: Hints{
			HintStep:  2,
			HintInput: InputSlider,
		},
		Constraints: Constraints{Max: floatPtr(250)},
	}

	if a.Signature() != b.Signature() {
		t.Fatalf("signatures differ for equal type+hints: %q vs %q", a.Signature(), b.Signature())
	}
}

func TestSignature_Distinguishes(t *testing.T) {
	cases := []struct {
		name string
		a, b Descriptor
	}{
		{
			name: "kind",
			a:    Descriptor{Type: TypeSpec{Kind: KindInteger}},
			b:    Descriptor{Type: TypeSpec{Kind: KindNumber}},
		},
		{
			name: "optional wrapper",
			a:    Descriptor{Type: TypeSpec{Kind: KindString}},
			b:    Descriptor{Type: TypeSpec{Kind: KindString, Optional: true}},
		},
		{
			name: "enum members",
			a:    Descriptor{Type: TypeSpec{Kind: KindString, Enum: []any{"red", "green"}}},
			b:    Descriptor{Type: TypeSpec{Kind: KindString, Enum: []any{"red", "blue"}}},
		},
		{
			name: "element type",
			a:    Descriptor{Type: TypeSpec{Kind: KindList, Elem: &TypeSpec{Kind: KindString}}},
			b:    Descriptor{Type: TypeSpec{Kind: KindList, Elem: &TypeSpec{Kind: KindInteger}}},
		},
		{
			name: "hint value",
			a:    Descriptor{Type: TypeSpec{Kind: KindString}, Hints: Hints{HintInput: InputTextArea}},
			b:    Descriptor{Type: TypeSpec{Kind: KindString}, Hints: Hints{HintInput: InputSelect}},
		},
		{
			name: "record name",
			a:    Descriptor{Type: TypeSpec{Kind: KindRecord, Name: "Address"}},
			b:    Descriptor{Type: TypeSpec{Kind: KindRecord, Name: "Contact"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.a.Signature() == tc.b.Signature() {
				t.Fatalf("expected distinct signatures, both %q", tc.a.Signature())
			}
		})
	}
}

func TestSignature_IgnoresSupplierValue(t *testing.T) {
	supplierA := OptionsFunc(func() []Option { return []Option{{Value: "a"}} })
	supplierB := OptionsFunc(func() []Option { return []Option{{Value: "b"}} })

	a := Descriptor{Type: TypeSpec{Kind: KindString}, Hints: Hints{HintInput: InputSelect, HintOptions: supplierA}}
	b := Descriptor{Type: TypeSpec{Kind: KindString}, Hints: Hints{HintInput: InputSelect, HintOptions: supplierB}}

	if a.Signature() != b.Signature() {
		t.Fatalf("supplier identity leaked into signature: %q vs %q", a.Signature(), b.Signature())
	}
}

func TestHints_Options(t *testing.T) {
	fromMap := Hints{HintOptions: map[string]string{"b": "Bee", "a": "Ay"}}
	opts := fromMap.Options()
	if len(opts) != 2 || opts[0].Value != "a" || opts[1].Value != "b" {
		t.Fatalf("map options not normalised: %+v", opts)
	}

	fromFunc := Hints{HintOptions: OptionsFunc(func() []Option {
		return []Option{{Value: "x", Label: "Ex"}}
	})}
	opts = fromFunc.Options()
	if len(opts) != 1 || opts[0].Value != "x" {
		t.Fatalf("supplier options not surfaced: %+v", opts)
	}

	if got := (Hints{}).Options(); got != nil {
		t.Fatalf("expected nil options, got %+v", got)
	}
}

func TestDescriptor_Label(t *testing.T) {
	d := Descriptor{Name: "created_at"}
	if d.Label() != "created_at" {
		t.Fatalf("expected name fallback, got %q", d.Label())
	}
	d.Title = "Created"
	if d.Label() != "Created" {
		t.Fatalf("expected title, got %q", d.Label())
	}
}
