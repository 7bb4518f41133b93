// Package html renders dispatched widgets as a static HTML form. The
// per-widget control markup is built in Go; a pongo2 template provides the
// surrounding form shell so hosts can replace the chrome without touching
// the control logic.
package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-fieldwidgets/pkg/widget"
)

const shellTemplate = "templates/form.tmpl"

// Form is the input to Render: a record name plus the widgets the
// dispatcher produced for it, in display order.
type Form struct {
	Record  string
	Widgets []*widget.Widget
}

type Option func(*config)

type config struct {
	templateFS fs.FS
	theme      *theme.RendererConfig
	policy     *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTheme applies a resolved go-theme configuration. Tokens become CSS
// variables on the form element.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithSanitizer overrides the policy applied to rich descriptions.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

type Renderer struct {
	templateSet *pongo2.TemplateSet
	shell       *pongo2.Template
	theme       *theme.RendererConfig
	policy      *bluemonday.Policy
}

// New constructs an HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS: TemplatesFS(),
		policy:     bluemonday.UGCPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	set := pongo2.NewSet("fieldwidgets", pongo2.NewFSLoader(cfg.templateFS))
	shell, err := set.FromFile(shellTemplate)
	if err != nil {
		return nil, fmt.Errorf("html renderer: load template %q: %w", shellTemplate, err)
	}

	return &Renderer{
		templateSet: set,
		shell:       shell,
		theme:       cfg.theme,
		policy:      cfg.policy,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the form markup for the given widgets.
func (r *Renderer) Render(ctx context.Context, form Form) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fields := make([]map[string]any, 0, len(form.Widgets))
	for _, w := range form.Widgets {
		if w == nil {
			continue
		}
		fields = append(fields, map[string]any{
			"id":      w.ID,
			"kind":    string(w.Kind),
			"label":   w.Label,
			"tooltip": r.policy.Sanitize(w.Tooltip),
			"control": buildControl(w),
		})
	}

	data := pongo2.Context{
		"record": form.Record,
		"fields": fields,
	}
	if r.theme != nil {
		data["theme"] = r.theme.Theme
		data["theme_variant"] = r.theme.Variant
		data["theme_style"] = cssVarsStyle(r.theme.CSSVars)
	}

	var out strings.Builder
	if err := r.shell.ExecuteWriter(data, &out); err != nil {
		return nil, fmt.Errorf("html renderer: execute template: %w", err)
	}
	return []byte(out.String()), nil
}

// cssVarsStyle flattens theme variables into an inline style attribute
// value, sorted so output stays stable.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}
