// Package jsonview renders a page as its JSON render description so that
// thin clients can draw it without evaluating any rules themselves.
package jsonview

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-scenario/pkg/model"
	"github.com/goliatone/go-scenario/pkg/render"
	"github.com/goliatone/go-scenario/pkg/validation"
)

// Name is the registry name of the renderer.
const Name = "json"

// Document is the rendered payload.
type Document struct {
	Title   string              `json:"title,omitempty"`
	Valid   bool                `json:"valid"`
	Invalid []string            `json:"invalid,omitempty"`
	Answers map[string]any      `json:"answers"`
	Stages  []render.Descriptor `json:"stages"`
}

type Option func(*Renderer)

// WithIndent pretty prints the output with the given indent.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// WithLogger routes projector warnings to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer implements render.Renderer.
type Renderer struct {
	indent    string
	logger    *zap.Logger
	projector *render.Projector
}

// New constructs the renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	r.projector = render.NewProjector(render.WithLogger(r.logger))
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Build projects page into a Document.
func (r *Renderer) Build(page model.Page, options render.RenderOptions) (Document, error) {
	descriptors, err := r.projector.Project(page, options.Answers)
	if err != nil {
		return Document{}, fmt.Errorf("json renderer: %w", err)
	}
	result := validation.CheckPage(page, options.Answers)
	return Document{
		Title:   options.Title,
		Valid:   result.Valid,
		Invalid: result.Invalid(),
		Answers: options.Answers.Payload(page),
		Stages:  descriptors,
	}, nil
}

func (r *Renderer) Render(ctx context.Context, page model.Page, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := r.Build(page, options)
	if err != nil {
		return nil, err
	}
	if r.indent != "" {
		return json.MarshalIndent(doc, "", r.indent)
	}
	return json.Marshal(doc)
}
