package render

import (
	"context"

	"github.com/goliatone/go-scenario/pkg/model"
)

// Renderer turns a scenario page into a byte representation (JSON, HTML,
// an interactive terminal transcript, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page model.Page, options RenderOptions) ([]byte, error)
}
