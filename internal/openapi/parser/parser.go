package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-scenario/pkg/openapi"
)

const rulesExtensionKey = "x-scenario-rules"

// Options configures the parser.
type Options struct {
	// ResolveReferences validates the document so $refs are checked.
	ResolveReferences bool
}

// Parser implements pkgopenapi.Parser using kin-openapi.
type Parser struct {
	options Options
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options Options) *Parser {
	return &Parser{options: options}
}

// Operations converts a raw document into operations keyed by operationId.
// Operations without an id are keyed "<method>:<path>".
func (p *Parser) Operations(ctx context.Context, raw []byte) (map[string]pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.ResolveReferences {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi parser: document does not contain any paths")
	}

	operations := make(map[string]pkgopenapi.Operation)
	for path, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil {
				continue
			}
			op := convertOperation(method, path, operation)
			operations[op.ID] = op
		}
	}
	if len(operations) == 0 {
		return nil, errors.New("openapi parser: no operations extracted")
	}
	return operations, nil
}

// OperationIDs lists the keys of operations sorted.
func OperationIDs(operations map[string]pkgopenapi.Operation) []string {
	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func convertOperation(method, path string, operation *openapi3.Operation) pkgopenapi.Operation {
	method = strings.ToUpper(method)
	id := operation.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	return pkgopenapi.Operation{
		ID:          id,
		Method:      method,
		Path:        path,
		Summary:     operation.Summary,
		Description: operation.Description,
		Body:        extractRequestSchema(operation.RequestBody),
	}
}

func extractRequestSchema(requestBody *openapi3.RequestBodyRef) pkgopenapi.Schema {
	if requestBody == nil || requestBody.Value == nil {
		return pkgopenapi.Schema{}
	}
	content := requestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt != nil {
			return convertSchema(mt.Schema)
		}
	}
	return pkgopenapi.Schema{}
}

func convertSchema(ref *openapi3.SchemaRef) pkgopenapi.Schema {
	if ref == nil || ref.Value == nil {
		return pkgopenapi.Schema{}
	}
	src := ref.Value
	schema := pkgopenapi.Schema{
		Properties: make(map[string]pkgopenapi.Property, len(src.Properties)),
	}
	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	for name, property := range src.Properties {
		if property == nil || property.Value == nil {
			continue
		}
		schema.Properties[name] = convertProperty(name, property.Value)
	}
	return schema
}

func convertProperty(name string, src *openapi3.Schema) pkgopenapi.Property {
	prop := pkgopenapi.Property{
		Name:        name,
		Type:        firstSchemaType(src.Type),
		Title:       src.Title,
		Description: src.Description,
		Pattern:     src.Pattern,
		Default:     src.Default,
	}
	if rules, ok := src.Extensions[rulesExtensionKey].(string); ok {
		prop.RulesText = rules
	}
	return prop
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}
