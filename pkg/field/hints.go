package field

import "strconv"

// Well-known hint keys. Hosts may add arbitrary keys; handlers only inspect
// the ones below.
const (
	// HintInput selects an input variant: textarea, slider, select,
	// multiselect.
	HintInput = "input"

	// HintOptions supplies choice options: a map[string]string of
	// value→label, an []Option, or an OptionsFunc for dynamic lookup.
	HintOptions = "options"

	// HintStep sets the numeric step for number inputs and sliders.
	HintStep = "step"

	// HintDelimiter overrides the separator used by scalar collection
	// widgets.
	HintDelimiter = "delimiter"
)

// Input variant values recognised under HintInput.
const (
	InputTextArea    = "textarea"
	InputSlider      = "slider"
	InputSelect      = "select"
	InputMultiSelect = "multiselect"
)

// Option is a single selectable choice.
type Option struct {
	Value string
	Label string
}

// OptionsFunc supplies choice options at dispatch time.
type OptionsFunc func() []Option

// Hints is a free-form map of UI-variant hints attached to a descriptor.
type Hints map[string]any

// String returns the hint value when it is a string.
func (h Hints) String(key string) string {
	if h == nil {
		return ""
	}
	if value, ok := h[key].(string); ok {
		return value
	}
	return ""
}

// Float returns the hint value coerced to float64.
func (h Hints) Float(key string) (float64, bool) {
	if h == nil {
		return 0, false
	}
	switch v := h[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

// Options extracts choice options from the HintOptions entry, accepting the
// supported shapes in order of specificity.
func (h Hints) Options() []Option {
	if h == nil {
		return nil
	}
	switch v := h[HintOptions].(type) {
	case []Option:
		return append([]Option(nil), v...)
	case OptionsFunc:
		if v == nil {
			return nil
		}
		return v()
	case func() []Option:
		if v == nil {
			return nil
		}
		return v()
	case map[string]string:
		out := make([]Option, 0, len(v))
		for value, label := range v {
			out = append(out, Option{Value: value, Label: label})
		}
		sortOptions(out)
		return out
	default:
		return nil
	}
}

func sortOptions(opts []Option) {
	for i := 1; i < len(opts); i++ {
		for j := i; j > 0 && opts[j].Value < opts[j-1].Value; j-- {
			opts[j], opts[j-1] = opts[j-1], opts[j]
		}
	}
}
