package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// PageTemplate is the template rendered for every page.
const PageTemplate = "page"

// TemplatesFS exposes the embedded template bundle so callers can copy and
// customise it.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
