package field

import (
	"fmt"
	"sort"
	"strings"
)

// Signature computes the normalized type+hint cache key for a descriptor.
// Two descriptors with equal types and hints produce equal signatures, even
// when names, titles, or constraints differ: handler predicates may only
// inspect type and hints, so resolution is a pure function of this key.
func (d Descriptor) Signature() string {
	var b strings.Builder
	writeTypeSignature(&b, d.Type)
	b.WriteByte('|')
	writeHintSignature(&b, d.Hints)
	return b.String()
}

func writeTypeSignature(b *strings.Builder, t TypeSpec) {
	b.WriteString(string(t.Kind))
	if t.Optional {
		b.WriteString("?")
	}
	if t.Name != "" {
		b.WriteByte(':')
		b.WriteString(t.Name)
	}
	if len(t.Enum) > 0 {
		b.WriteString("{")
		for i, member := range t.Enum {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(b, "%v", member)
		}
		b.WriteString("}")
	}
	if t.Elem != nil {
		b.WriteString("[")
		writeTypeSignature(b, *t.Elem)
		b.WriteString("]")
	}
	if len(t.Variants) > 0 {
		b.WriteString("(")
		for i, variant := range t.Variants {
			if i > 0 {
				b.WriteByte('|')
			}
			writeTypeSignature(b, variant)
		}
		b.WriteString(")")
	}
	if len(t.Fields) > 0 {
		b.WriteString("<")
		for i, f := range t.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(f.Name)
		}
		b.WriteString(">")
	}
}

// writeHintSignature folds hints into the key. Scalar values contribute their
// rendered form; non-scalar values (option suppliers, maps) contribute only
// the key so dynamic suppliers never break cache determinism.
func writeHintSignature(b *strings.Builder, hints Hints) {
	if len(hints) == 0 {
		return
	}
	keys := make([]string, 0, len(hints))
	for key := range hints {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for i, key := range keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(key)
		switch value := hints[key].(type) {
		case string:
			b.WriteByte('=')
			b.WriteString(value)
		case bool, int, int64, float64:
			fmt.Fprintf(b, "=%v", value)
		default:
			// opaque value; presence only
		}
	}
}
