package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-scenario/pkg/model"
)

// Transformer rewrites a decoded page before it is rendered. Implementations
// can relabel fields, override defaults or tighten rules per deployment.
type Transformer interface {
	Transform(ctx context.Context, page *model.Page) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, page *model.Page) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, page *model.Page) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, page)
}

// Transformers chains transformers in order.
type Transformers []Transformer

// Transform runs every transformer, stopping at the first error.
func (ts Transformers) Transform(ctx context.Context, page *model.Page) error {
	for _, t := range ts {
		if t == nil {
			continue
		}
		if err := t.Transform(ctx, page); err != nil {
			return err
		}
	}
	return nil
}

// PresetTransformer applies declarative field overrides loaded from a JSON or
// YAML document:
//
//	fields:
//	  name:
//	    displayName: Your first name
//	    rulesDisplayName: Letters only
//	    defaultValue: ""
//	    required: true
//	    regexp: "[a-zA-Z]+"
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Fields map[string]fieldPatch `yaml:"fields"`
}

type fieldPatch struct {
	DisplayName      *string `yaml:"displayName"`
	RulesDisplayName *string `yaml:"rulesDisplayName"`
	DefaultValue     *string `yaml:"defaultValue"`
	Required         *bool   `yaml:"required"`
	Regexp           *string `yaml:"regexp"`
}

// NewPresetTransformer parses a preset document. JSON documents are accepted
// since they are valid YAML.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	for id, patch := range document.Fields {
		if patch.Regexp == nil {
			continue
		}
		if _, err := model.NewPattern(*patch.Regexp); err != nil {
			return nil, fmt.Errorf("preset transformer: field %q: invalid regexp: %w", id, err)
		}
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches. Every patched field must exist on the page.
func (t *PresetTransformer) Transform(ctx context.Context, page *model.Page) error {
	if page == nil {
		return errors.New("preset transformer: page is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(t.document.Fields))
	for idx, stage := range page.Stages {
		fieldStage, ok := stage.(model.FieldStage)
		if !ok {
			continue
		}
		patch, ok := t.document.Fields[fieldStage.Field.ID]
		if !ok {
			continue
		}
		rule, err := applyFieldPatch(fieldStage.Field, patch)
		if err != nil {
			return fmt.Errorf("preset transformer: field %q: %w", fieldStage.Field.ID, err)
		}
		page.Stages[idx] = model.FieldStage{Field: rule}
		seen[fieldStage.Field.ID] = true
	}

	for id := range t.document.Fields {
		if !seen[id] {
			return fmt.Errorf("preset transformer: field %q not found", id)
		}
	}
	return nil
}

func applyFieldPatch(rule model.FieldRule, patch fieldPatch) (model.FieldRule, error) {
	if patch.DisplayName != nil {
		rule.DisplayName = *patch.DisplayName
	}
	if patch.RulesDisplayName != nil {
		rule.RulesDisplayName = model.StringPtr(*patch.RulesDisplayName)
	}
	if patch.DefaultValue != nil {
		rule.DefaultValue = model.StringPtr(*patch.DefaultValue)
	}
	if patch.Required != nil {
		rule.Required = *patch.Required
	}
	if patch.Regexp != nil {
		if *patch.Regexp == "" {
			rule.Pattern = nil
		} else {
			pattern, err := model.NewPattern(*patch.Regexp)
			if err != nil {
				return model.FieldRule{}, err
			}
			rule.Pattern = pattern
		}
	}
	return rule, nil
}
