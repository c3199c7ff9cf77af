package payload

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	js "github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-scenario/internal/patterncache"
	"github.com/goliatone/go-scenario/pkg/model"
)

//go:embed schema/page.schema.json
var embeddedSchema embed.FS

const schemaURL = "mem://scenario/page.schema.json"

// Format selects the document syntax.
type Format string

const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// ParseFormat validates a user supplied format name.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, fmt.Errorf("payload: unknown format %q", raw)
	}
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger routes decoder warnings to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithPatternCacheSize bounds the compiled pattern cache.
func WithPatternCacheSize(size int) Option {
	return func(d *Decoder) {
		d.cacheSize = size
	}
}

// WithoutSchemaCheck skips the JSON Schema pass. Mapping errors are still
// reported.
func WithoutSchemaCheck() Option {
	return func(d *Decoder) {
		d.skipSchema = true
	}
}

// Decoder maps page documents onto model.Page values. A Decoder is safe for
// concurrent use.
type Decoder struct {
	logger     *zap.Logger
	cacheSize  int
	skipSchema bool
	patterns   *patterncache.Cache
	schema     *js.Schema
}

// NewDecoder constructs a Decoder with the embedded page schema.
func NewDecoder(options ...Option) (*Decoder, error) {
	d := &Decoder{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}

	patterns, err := patterncache.New(d.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	d.patterns = patterns

	if !d.skipSchema {
		schema, err := compileSchema()
		if err != nil {
			return nil, err
		}
		d.schema = schema
	}
	return d, nil
}

var defaultDecoder = sync.OnceValues(func() (*Decoder, error) {
	return NewDecoder()
})

// Decode uses a shared default Decoder.
func Decode(data []byte, format Format) (model.Page, error) {
	d, err := defaultDecoder()
	if err != nil {
		return model.Page{}, err
	}
	return d.Decode(data, format)
}

// DecodeFile reads and decodes a document from disk.
func (d *Decoder) DecodeFile(path string) (model.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Page{}, fmt.Errorf("payload: read %s: %w", path, err)
	}
	return d.Decode(data, FormatFromPath(path))
}

// DecodeFS reads and decodes a document from fsys.
func (d *Decoder) DecodeFS(fsys fs.FS, path string) (model.Page, error) {
	if fsys == nil {
		return model.Page{}, errors.New("payload: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return model.Page{}, fmt.Errorf("payload: read %s: %w", path, err)
	}
	return d.Decode(data, FormatFromPath(path))
}

// Decode parses data in the given format. FormatAuto treats documents that
// start with '{' as JSON and everything else as YAML.
func (d *Decoder) Decode(data []byte, format Format) (model.Page, error) {
	raw, err := toJSON(data, format)
	if err != nil {
		return model.Page{}, err
	}

	if d.schema != nil {
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return model.Page{}, fmt.Errorf("payload: parse document: %w", err)
		}
		if err := d.schema.Validate(generic); err != nil {
			return model.Page{}, fmt.Errorf("%w: %v", ErrSchema, err)
		}
	}

	var doc pageDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.Page{}, fmt.Errorf("payload: parse document: %w", err)
	}
	return d.buildPage(doc)
}

func (d *Decoder) buildPage(doc pageDocument) (model.Page, error) {
	stages := make([]model.Stage, 0, len(doc.Stages))
	seen := make(map[string]int, len(doc.Stages))

	for idx, raw := range doc.Stages {
		stage, err := d.buildStage(idx, raw)
		if err != nil {
			return model.Page{}, err
		}
		if field, ok := stage.(model.FieldStage); ok {
			if prev, dup := seen[field.Field.ID]; dup {
				return model.Page{}, &DecodeError{
					Stage: idx,
					Field: field.Field.ID,
					Err:   fmt.Errorf("duplicate field id (first used by stage %d)", prev),
				}
			}
			seen[field.Field.ID] = idx
		}
		stages = append(stages, stage)
	}
	return model.Page{Stages: stages}, nil
}

func (d *Decoder) buildStage(idx int, raw stageDocument) (model.Stage, error) {
	switch raw.Type {
	case stageText:
		size := model.DefaultTextSize
		if raw.Size != nil && *raw.Size > 0 {
			size = *raw.Size
		}
		return model.TextStage{Text: raw.Text, Size: size, Bold: raw.Bold}, nil
	case stageImage:
		return model.ImageStage{URL: raw.URL}, nil
	case stageButton:
		if raw.Action == nil {
			return nil, &DecodeError{Stage: idx, Err: errors.New("button action is required")}
		}
		action, err := buildAction(*raw.Action)
		if err != nil {
			return nil, &DecodeError{Stage: idx, Err: err}
		}
		return model.ButtonStage{Text: raw.Text, Action: action}, nil
	case stageField:
		if raw.Field == nil {
			return nil, &DecodeError{Stage: idx, Err: errors.New("field definition is required")}
		}
		rule, err := d.buildRule(idx, *raw.Field)
		if err != nil {
			return nil, err
		}
		return model.FieldStage{Field: rule}, nil
	default:
		return nil, &DecodeError{Stage: idx, Err: fmt.Errorf("unknown stage type %q", raw.Type)}
	}
}

func buildAction(raw actionDocument) (model.Action, error) {
	switch raw.Type {
	case actionNavigate:
		if strings.TrimSpace(raw.Destination) == "" {
			return nil, errors.New("navigate action requires a destination")
		}
		return model.NavigateAction{Destination: raw.Destination}, nil
	case actionShowNext:
		return model.ShowNextAction{}, nil
	case actionSaveForm:
		return model.SaveFormAction{}, nil
	default:
		return nil, fmt.Errorf("unknown action type %q", raw.Type)
	}
}

func (d *Decoder) buildRule(idx int, raw fieldDocument) (model.FieldRule, error) {
	id := strings.TrimSpace(raw.ID)
	if id == "" {
		return model.FieldRule{}, &DecodeError{Stage: idx, Err: errors.New("field id is required")}
	}

	fieldType := model.FieldTypeText
	if raw.FieldType != nil {
		fieldType = model.ParseFieldType(*raw.FieldType)
		if fieldType == model.FieldTypeUnknown {
			d.logger.Warn("unrecognised field type",
				zap.Int("stage", idx),
				zap.String("field", id),
				zap.String("fieldType", *raw.FieldType),
			)
		}
	}

	rule := model.FieldRule{
		ID:               id,
		DisplayName:      raw.DisplayName,
		Type:             fieldType,
		Required:         raw.Required,
		RulesDisplayName: raw.RulesDisplayName,
		DefaultValue:     raw.DefaultValue,
	}

	if raw.Regexp != nil {
		pattern, err := d.patterns.Compile(*raw.Regexp)
		if err != nil {
			return model.FieldRule{}, &DecodeError{Stage: idx, Field: id, Err: fmt.Errorf("invalid regexp: %w", err)}
		}
		rule.Pattern = pattern
	}
	return rule, nil
}

func toJSON(data []byte, format Format) ([]byte, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmpty
	}
	if format == FormatAuto {
		if trimmed[0] == '{' {
			format = FormatJSON
		} else {
			format = FormatYAML
		}
	}

	switch format {
	case FormatJSON:
		return trimmed, nil
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("payload: parse yaml: %w", err)
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("payload: convert yaml: %w", err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("payload: unknown format %q", format)
	}
}

func compileSchema() (*js.Schema, error) {
	raw, err := embeddedSchema.ReadFile("schema/page.schema.json")
	if err != nil {
		return nil, fmt.Errorf("payload: read page schema: %w", err)
	}
	compiler := js.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("payload: add page schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("payload: compile page schema: %w", err)
	}
	return schema, nil
}
