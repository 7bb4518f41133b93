package tui

import (
	"context"
	"fmt"

	"github.com/goliatone/go-fieldwidgets/pkg/widget"
)

// Form is the input to Run: a record name plus the widgets the dispatcher
// produced for it, in prompt order.
type Form struct {
	Record  string
	Widgets []*widget.Widget
}

type Option func(*Session)

// WithDriver swaps the prompt implementation, mainly for tests.
func WithDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithMaxAttempts caps how often a field is re-prompted after a validation
// failure before the session moves on.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.attempts = n
		}
	}
}

// Session prompts for every widget of a form and feeds the answers through
// the widget input bindings.
type Session struct {
	driver   PromptDriver
	attempts int
}

// NewSession constructs a session backed by survey prompts unless a driver
// option overrides it.
func NewSession(options ...Option) *Session {
	s := &Session{
		driver:   newSurveyDriver(),
		attempts: 3,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Run walks the form. Validation failures re-prompt the same field up to
// the attempt limit, then the field keeps its previous value and the walk
// continues. Only driver failures and context cancellation abort the run.
func (s *Session) Run(ctx context.Context, form Form) error {
	for _, w := range form.Widgets {
		if w == nil {
			continue
		}
		if err := s.promptField(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) promptField(ctx context.Context, w *widget.Widget) error {
	switch w.Kind {
	case widget.KindEditor:
		return s.promptEditor(ctx, w)
	case widget.KindList:
		return s.driver.Info(ctx, fmt.Sprintf("%s: %s (edit elements in a dedicated session)", label(w), w.Value))
	}
	if !w.Bound() {
		return nil
	}

	for attempt := 0; attempt < s.attempts; attempt++ {
		raw, err := s.ask(ctx, w)
		if err != nil {
			return err
		}

		inputErr := w.Input(raw)
		if inputErr == nil {
			return nil
		}
		if err := s.driver.Info(ctx, fmt.Sprintf("%s: %v", label(w), inputErr)); err != nil {
			return err
		}
	}
	return s.driver.Info(ctx, fmt.Sprintf("%s: keeping previous value", label(w)))
}

func (s *Session) ask(ctx context.Context, w *widget.Widget) (any, error) {
	switch w.Kind {
	case widget.KindToggle:
		return s.driver.Confirm(ctx, ConfirmConfig{
			Message: label(w),
			Default: w.Checked,
			Help:    w.Tooltip,
		})

	case widget.KindTextArea:
		return s.driver.TextArea(ctx, InputConfig{
			Message: label(w),
			Default: w.Value,
			Help:    w.Tooltip,
		})

	case widget.KindSelect:
		values := optionValues(w.Options)
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      label(w),
			Options:      optionLabels(w.Options),
			DefaultIndex: optionIndex(values, w.Value),
			Help:         w.Tooltip,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(values) {
			return nil, fmt.Errorf("tui: selection out of range for %q", w.Field)
		}
		return values[idx], nil

	case widget.KindMultiSelect:
		values := optionValues(w.Options)
		indices, err := s.driver.MultiSelect(ctx, SelectConfig{
			Message:  label(w),
			Options:  optionLabels(w.Options),
			Defaults: selectionIndices(values, w.Selected),
			Help:     w.Tooltip,
		})
		if err != nil {
			return nil, err
		}
		picked := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(values) {
				picked = append(picked, values[idx])
			}
		}
		return picked, nil

	default:
		return s.driver.Input(ctx, InputConfig{
			Message:     label(w),
			Default:     w.Value,
			Help:        w.Tooltip,
			Placeholder: w.Placeholder,
		})
	}
}

// promptEditor surfaces a nested record. The variant switcher is the only
// part a flat prompt walk can drive; the record body needs its own session
// scoped to the nested value.
func (s *Session) promptEditor(ctx context.Context, w *widget.Widget) error {
	if w.Switcher != nil && w.Switcher.Bound() {
		values := optionValues(w.Switcher.Options)
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      label(w) + " type",
			Options:      optionLabels(w.Switcher.Options),
			DefaultIndex: optionIndex(values, w.Switcher.Value),
		})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(values) {
			if inputErr := w.Switcher.Input(values[idx]); inputErr != nil {
				return s.driver.Info(ctx, fmt.Sprintf("%s: %v", label(w), inputErr))
			}
		}
	}
	return s.driver.Info(ctx, fmt.Sprintf("%s: %s (edit in a dedicated session)", label(w), w.Value))
}

func label(w *widget.Widget) string {
	if w.Label != "" {
		return w.Label
	}
	return w.Field
}

func optionValues(options []widget.Option) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		out[i] = opt.Value
	}
	return out
}

func optionLabels(options []widget.Option) []string {
	out := make([]string, len(options))
	for i, opt := range options {
		out[i] = opt.Label
	}
	return out
}

func optionIndex(values []string, value string) int {
	for i, candidate := range values {
		if candidate == value {
			return i
		}
	}
	return -1
}

// selectionIndices maps structured multi-select values to option positions,
// dropping anything no longer offered.
func selectionIndices(values, selected []string) []int {
	if len(selected) == 0 {
		return nil
	}
	out := make([]int, 0, len(selected))
	for _, value := range selected {
		if idx := optionIndex(values, value); idx >= 0 {
			out = append(out, idx)
		}
	}
	return out
}
