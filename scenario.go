// Package scenario renders server-driven pages (text, image, button and
// field stages) and validates the answers entered on them.
//
// Most callers only need Render:
//
//	out, err := scenario.Render(ctx, payload, "html", nil)
//
// The building blocks live in pkg/: model, validation, payload, render and
// the renderers under pkg/renderers.
package scenario

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-scenario/internal/openapi/parser"
	"github.com/goliatone/go-scenario/pkg/model"
	"github.com/goliatone/go-scenario/pkg/openapi"
	"github.com/goliatone/go-scenario/pkg/orchestrator"
	"github.com/goliatone/go-scenario/pkg/render"
	"github.com/goliatone/go-scenario/pkg/renderers/html"
)

// RenderOptions aliases render.RenderOptions for callers that only import the
// root package.
type RenderOptions = render.RenderOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Render decodes payload (JSON or YAML) and renders it with the named
// renderer, seeding fields from answers.
func Render(ctx context.Context, payload []byte, rendererName string, answers model.Answers, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Payload:       payload,
		Renderer:      rendererName,
		RenderOptions: render.RenderOptions{Answers: answers},
	})
}

// OpenAPIOperations lists the operation ids of an OpenAPI document.
func OpenAPIOperations(ctx context.Context, document []byte) ([]string, error) {
	ops, err := parser.New(parser.Options{}).Operations(ctx, document)
	if err != nil {
		return nil, err
	}
	return parser.OperationIDs(ops), nil
}

// PageFromOpenAPI builds a page for operationID from the request body of an
// OpenAPI document.
func PageFromOpenAPI(ctx context.Context, document []byte, operationID string, options ...openapi.BuilderOption) (model.Page, error) {
	ops, err := parser.New(parser.Options{}).Operations(ctx, document)
	if err != nil {
		return model.Page{}, err
	}
	op, ok := ops[operationID]
	if !ok {
		return model.Page{}, fmt.Errorf("scenario: operation %q not found", operationID)
	}
	return openapi.NewPageBuilder(options...).Build(op)
}

// EmbeddedTemplates exposes the built-in HTML renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
