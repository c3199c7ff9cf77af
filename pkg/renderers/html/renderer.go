package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-scenario/pkg/model"
	"github.com/goliatone/go-scenario/pkg/render"
	rendertemplate "github.com/goliatone/go-scenario/pkg/render/template"
	"github.com/goliatone/go-scenario/pkg/render/template/gotemplate"
)

// Name is the registry name of the renderer.
const Name = "html"

// DefaultTitle is used when RenderOptions carry no title.
const DefaultTitle = "Scenario"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       string
	logger           *zap.Logger
}

// WithTemplatesFS supplies an alternate template bundle. It must contain
// page.tmpl.
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

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet links a stylesheet when the theme does not provide one.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
	}
}

// WithLogger reports skipped stages.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Renderer draws a page as a standalone HTML document with a single form.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	projector  *render.Projector
	stylesheet string
	logger     *zap.Logger
}

// New constructs the HTML renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		templates:  templates,
		projector:  render.NewProjector(render.WithLogger(cfg.logger)),
		stylesheet: cfg.stylesheet,
		logger:     cfg.logger,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, page model.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	descriptors, err := r.projector.Project(page, options.Answers)
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}

	stages := make([]any, 0, len(descriptors))
	valid := true
	for _, d := range descriptors {
		if d.Field != nil && !d.Field.Valid {
			valid = false
		}
		if !d.Drawable() {
			r.logger.Warn("skipping stage",
				zap.Int("stage", d.Index),
				zap.String("kind", string(d.Kind)),
				zap.String("status", string(d.Status)),
			)
			continue
		}
		stages = append(stages, stageView(d))
	}

	result, err := r.templates.RenderTemplate(PageTemplate, r.pageContext(options, stages, valid))
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) pageContext(options render.RenderOptions, stages []any, valid bool) map[string]any {
	title := strings.TrimSpace(options.Title)
	if title == "" {
		title = DefaultTitle
	}

	data := map[string]any{
		"title":      title,
		"stages":     stages,
		"valid":      valid,
		"stylesheet": r.stylesheet,
		"css_vars":   "",
		"theme_name": "",
	}
	if cfg := options.Theme; cfg != nil {
		data["css_vars"] = cssVarsStyle(cfg.CSSVars)
		data["theme_name"] = cfg.Theme
		if cfg.AssetURL != nil {
			if href := cfg.AssetURL(StylesheetAsset); href != "" {
				data["stylesheet"] = href
			}
		}
	}
	return data
}

// stageView flattens a descriptor for the template. Backend copy is
// sanitised here; user values are left to template autoescaping.
func stageView(d render.Descriptor) map[string]any {
	view := map[string]any{
		"index":  d.Index,
		"kind":   string(d.Kind),
		"status": string(d.Status),
	}
	switch {
	case d.Text != nil:
		view["text"] = sanitizeText(d.Text.Text)
		view["size"] = d.Text.Size
		view["bold"] = d.Text.Bold
	case d.Image != nil:
		view["url"] = d.Image.URL
	case d.Button != nil:
		view["text"] = sanitizeText(d.Button.Text)
		view["action"] = string(d.Button.Action)
		view["destination"] = d.Button.Destination
		view["enabled"] = d.Button.Enabled
	case d.Field != nil:
		view["id"] = d.Field.ID
		view["control_id"] = controlID(d.Field.ID)
		view["label"] = sanitizeText(d.Field.Label)
		view["value"] = d.Field.Value
		view["pattern"] = d.Field.Pattern
		view["required"] = d.Field.Required
		view["show_error"] = d.Field.ShowError
		view["helper"] = sanitizeText(d.Field.HelperText)
	}
	return view
}

func controlID(id string) string {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return ""
	}
	return "sc-" + trimmed
}
