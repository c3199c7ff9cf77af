package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-scenario/pkg/model"
	"github.com/goliatone/go-scenario/pkg/payload"
	"github.com/goliatone/go-scenario/pkg/render"
	"github.com/goliatone/go-scenario/pkg/renderers/html"
	"github.com/goliatone/go-scenario/pkg/renderers/jsonview"
	"github.com/goliatone/go-scenario/pkg/validation"
)

const defaultRendererName = html.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithDecoder injects a custom payload decoder.
func WithDecoder(decoder *payload.Decoder) Option {
	return func(o *Orchestrator) {
		o.decoder = decoder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that can rewrite the decoded page
// before rendering.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithThemeSelector resolves Request.ThemeName/ThemeVariant into renderer
// theme configuration.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithLogger sets the logger handed to the default decoder and renderers.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from page payload to rendered output.
// It applies sensible defaults (html renderer, schema checked decoding) while
// remaining open to dependency injection.
type Orchestrator struct {
	decoder         *payload.Decoder
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	themeSelector   theme.ThemeSelector
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a page.
type Request struct {
	// Payload holds the raw page document. Ignored when Page is set.
	Payload []byte

	// Format of Payload. Empty detects JSON or YAML.
	Format payload.Format

	// Page allows callers to bypass decoding when they already hold a page.
	Page *model.Page

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// ThemeName and ThemeVariant select a theme when a selector is configured.
	ThemeName    string
	ThemeVariant string

	// RenderOptions carries answers and the title for the renderer.
	RenderOptions render.RenderOptions
}

// Generate executes the decode → transform → render sequence and returns the
// rendered bytes (HTML for the default renderer).
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	page, err := o.Page(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	options := req.RenderOptions
	if options.Theme == nil {
		options.Theme, err = o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
	}

	output, err := renderer.Render(ctx, page, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// GenerateAll renders the request page once per named renderer, concurrently.
// With no names every registered renderer is used. The page is decoded and
// transformed a single time; the first render error cancels the rest.
func (o *Orchestrator) GenerateAll(ctx context.Context, req Request, names ...string) (map[string][]byte, error) {
	page, err := o.Page(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		names = o.Renderers()
	}
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderers := make([]render.Renderer, len(names))
	for i, name := range names {
		if renderers[i], err = o.rendererFor(name); err != nil {
			return nil, err
		}
	}

	options := req.RenderOptions
	if options.Theme == nil {
		options.Theme, err = o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
	}

	outputs := make([][]byte, len(renderers))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, renderer := range renderers {
		group.Go(func() error {
			out, err := renderer.Render(groupCtx, page, options)
			if err != nil {
				return fmt.Errorf("orchestrator: render %s: %w", renderer.Name(), err)
			}
			outputs[i] = out
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := make(map[string][]byte, len(renderers))
	for i, renderer := range renderers {
		result[renderer.Name()] = outputs[i]
	}
	o.logger.Debug("rendered page", zap.Strings("renderers", names), zap.Int("stages", len(page.Stages)))
	return result, nil
}

// Validate resolves the page and checks the request answers against it.
func (o *Orchestrator) Validate(ctx context.Context, req Request) (validation.PageResult, error) {
	page, err := o.Page(ctx, req)
	if err != nil {
		return validation.PageResult{}, err
	}
	return validation.CheckPage(page, req.RenderOptions.Answers), nil
}

// Page resolves and transforms the request page without rendering it.
func (o *Orchestrator) Page(ctx context.Context, req Request) (model.Page, error) {
	if ctx == nil {
		return model.Page{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.Page{}, err
	}
	if err := o.initialiseErr; err != nil {
		return model.Page{}, err
	}

	page, err := o.resolvePage(req)
	if err != nil {
		return model.Page{}, err
	}
	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &page); err != nil {
			return model.Page{}, fmt.Errorf("orchestrator: transform page: %w", err)
		}
	}
	return page, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.Names()
}

func (o *Orchestrator) resolvePage(req Request) (model.Page, error) {
	if req.Page != nil {
		return model.NewPage(req.Page.Stages...), nil
	}
	if len(req.Payload) == 0 {
		return model.Page{}, errors.New("orchestrator: payload or page is required")
	}
	page, err := o.decoder.Decode(req.Payload, req.Format)
	if err != nil {
		return model.Page{}, fmt.Errorf("orchestrator: decode page: %w", err)
	}
	return page, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
	}

	names := o.registry.Names()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) resolveTheme(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection == nil || selection.Manifest == nil {
		return nil, nil
	}
	return html.ThemeConfig(selection.Manifest, selection.Variant), nil
}

func (o *Orchestrator) applyDefaults() {
	if o.decoder == nil {
		decoder, err := payload.NewDecoder(payload.WithLogger(o.logger))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default decoder: %w", err)
			return
		}
		o.decoder = decoder
	}
	if o.registry == nil {
		htmlRenderer, err := html.New(html.WithLogger(o.logger))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		registry, err := render.NewRegistry(htmlRenderer, jsonview.New(jsonview.WithLogger(o.logger)))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default registry: %w", err)
			return
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
