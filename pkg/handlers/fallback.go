package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-fieldwidgets/pkg/field"
	"github.com/goliatone/go-fieldwidgets/pkg/handler"
	"github.com/goliatone/go-fieldwidgets/pkg/widget"
)

// FallbackHandler matches every descriptor at the lowest priority so
// resolution never comes up empty. It renders a plain text input seeded with
// the stringified current value and emits one warning naming the unhandled
// field and type.
type FallbackHandler struct {
	logger logrus.FieldLogger
}

// NewFallbackHandler constructs the fallback with the diagnostic logger; nil
// selects the logrus standard logger.
func NewFallbackHandler(logger logrus.FieldLogger) FallbackHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return FallbackHandler{logger: logger}
}

func (FallbackHandler) Name() string  { return "fallback" }
func (FallbackHandler) Priority() int { return FallbackPriority }

func (FallbackHandler) CanHandle(field.Descriptor) bool { return true }

func (f FallbackHandler) Create(ctx handler.Context) (*widget.Widget, error) {
	f.logger.WithFields(logrus.Fields{
		"field": ctx.Field,
		"type":  ctx.Descriptor.Type.Kind,
	}).Warn("no specific handler for field; falling back to text input")

	return FallbackWidget(ctx), nil
}

// FallbackWidget builds the degraded plain text widget both the fallback
// handler and the dispatcher's failure path produce: same shape, same
// guarantees, diagnostics owned by the caller.
func FallbackWidget(ctx handler.Context) *widget.Widget {
	w := widget.New(widget.KindText, ctx.Field)
	w.Label = ctx.Descriptor.Label()
	w.Value = stringify(ctx.Value)
	applyConfig(w, ctx.Config)

	w.Bind(func(raw any) error {
		ctx.Change(stringify(raw))
		return nil
	})
	return w
}
