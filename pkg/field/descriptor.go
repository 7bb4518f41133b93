package field

// Kind enumerates the type categories a field descriptor can declare.
type Kind string

const (
	KindString   Kind = "string"
	KindPath     Kind = "path"
	KindInteger  Kind = "integer"
	KindNumber   Kind = "number"
	KindBool     Kind = "boolean"
	KindDate     Kind = "date"
	KindTime     Kind = "time"
	KindDateTime Kind = "datetime"
	KindRecord   Kind = "record"
	KindUnion    Kind = "union"
	KindList     Kind = "list"
	KindSet      Kind = "set"
)

// TypeSpec is a tagged type description. Exactly one shape applies per kind:
// records carry Fields, lists and sets carry Elem, unions carry Variants, and
// a non-empty Enum marks a closed literal choice set regardless of kind.
type TypeSpec struct {
	Kind     Kind
	Optional bool
	Enum     []any
	Name     string
	Fields   []Descriptor
	Elem     *TypeSpec
	Variants []TypeSpec
}

// IsScalar reports whether the type is a plain value renderable by a single
// input control (string, path, numeric, boolean, temporal).
func (t TypeSpec) IsScalar() bool {
	switch t.Kind {
	case KindString, KindPath, KindInteger, KindNumber, KindBool,
		KindDate, KindTime, KindDateTime:
		return true
	default:
		return false
	}
}

// IsRecord reports whether the type describes a structured record.
func (t TypeSpec) IsRecord() bool {
	return t.Kind == KindRecord
}

// IsRecordUnion reports whether the type is a union whose variants are all
// structured records.
func (t TypeSpec) IsRecordUnion() bool {
	if t.Kind != KindUnion || len(t.Variants) == 0 {
		return false
	}
	for _, variant := range t.Variants {
		if variant.Kind != KindRecord {
			return false
		}
	}
	return true
}

// Constraints carries the optional validation bounds a descriptor declares.
// Nil pointers mean the bound is absent.
type Constraints struct {
	Min       *float64
	Max       *float64
	MinLength *int
	MaxLength *int
	Pattern   string
}

// Descriptor is a read-only snapshot of one editable field: its declared
// type, constraints, display metadata, and free-form UI hints. Once
// constructed for a dispatch call it must not be mutated; the package uses
// value semantics throughout to keep that cheap.
type Descriptor struct {
	Name        string
	Type        TypeSpec
	Constraints Constraints
	Title       string
	Description string
	Default     any
	Hints       Hints
}

// Label returns the human-readable title, falling back to the field name.
func (d Descriptor) Label() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}
