package openapi

import "context"

// Parser extracts operations from a raw OpenAPI document (JSON or YAML).
type Parser interface {
	Operations(ctx context.Context, raw []byte) (map[string]Operation, error)
}

// Operation is the slice of an OpenAPI operation needed to build a page.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	// Body is the request body schema, zero when the operation has none.
	Body Schema
}

// Schema is an object schema flattened to its direct properties.
type Schema struct {
	Properties map[string]Property
	Required   []string
}

// Property describes one request body property.
type Property struct {
	Name        string
	Type        string
	Title       string
	Description string
	Pattern     string
	Default     any
	// RulesText overrides the description as the field's rules text
	// (x-scenario-rules).
	RulesText string
}

// IsRequired reports whether name is listed as required.
func (s Schema) IsRequired(name string) bool {
	for _, candidate := range s.Required {
		if candidate == name {
			return true
		}
	}
	return false
}
