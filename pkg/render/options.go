package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-scenario/pkg/model"
)

// RenderOptions carry per-request data renderers use without touching the
// page itself.
type RenderOptions struct {
	// Answers pre-populates field stages keyed by field id. Fields without an
	// entry fall back to their default value.
	Answers model.Answers
	// Title is an optional document title for renderers that emit one.
	Title string
	// Theme carries resolved theme tokens for renderers that style output.
	Theme *theme.RendererConfig
}
