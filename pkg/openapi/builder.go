package openapi

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-scenario/pkg/model"
)

// DefaultSubmitText labels the closing SaveForm button.
const DefaultSubmitText = "Submit"

// BuilderOption configures a PageBuilder.
type BuilderOption func(*PageBuilder)

// WithLabeler overrides how property names become field labels when a
// schema has no title.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(b *PageBuilder) {
		if labeler != nil {
			b.labeler = labeler
		}
	}
}

// WithSubmitText overrides DefaultSubmitText.
func WithSubmitText(text string) BuilderOption {
	return func(b *PageBuilder) {
		if strings.TrimSpace(text) != "" {
			b.submitText = text
		}
	}
}

// WithLogger reports properties that map to unsupported field types.
func WithLogger(logger *zap.Logger) BuilderOption {
	return func(b *PageBuilder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// PageBuilder turns an Operation into a page: a heading, an optional
// description, one field per body property sorted by name and a SaveForm
// button.
type PageBuilder struct {
	labeler    func(string) string
	submitText string
	logger     *zap.Logger
}

// NewPageBuilder constructs a PageBuilder.
func NewPageBuilder(options ...BuilderOption) *PageBuilder {
	b := &PageBuilder{
		labeler:    DefaultLabeler,
		submitText: DefaultSubmitText,
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Build maps op onto a page.
func (b *PageBuilder) Build(op Operation) (model.Page, error) {
	var stages []model.Stage

	heading := strings.TrimSpace(op.Summary)
	if heading == "" {
		heading = b.labeler(op.ID)
	}
	if heading != "" {
		stages = append(stages, model.TextStage{Text: heading, Size: 24, Bold: true})
	}
	if description := strings.TrimSpace(op.Description); description != "" {
		stages = append(stages, model.NewText(description))
	}

	names := make([]string, 0, len(op.Body.Properties))
	for name := range op.Body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		rule, err := b.rule(name, op.Body.Properties[name], op.Body.IsRequired(name))
		if err != nil {
			return model.Page{}, fmt.Errorf("openapi: operation %q: %w", op.ID, err)
		}
		stages = append(stages, model.FieldStage{Field: rule})
	}

	stages = append(stages, model.ButtonStage{Text: b.submitText, Action: model.SaveFormAction{}})
	return model.NewPage(stages...), nil
}

func (b *PageBuilder) rule(name string, prop Property, required bool) (model.FieldRule, error) {
	rule := model.FieldRule{
		ID:          name,
		DisplayName: strings.TrimSpace(prop.Title),
		Type:        model.FieldTypeText,
		Required:    required,
	}
	if rule.DisplayName == "" {
		rule.DisplayName = b.labeler(name)
	}
	if prop.Type != "string" {
		rule.Type = model.FieldTypeUnknown
		b.logger.Warn("property has no text representation",
			zap.String("property", name),
			zap.String("type", prop.Type),
		)
	}

	if prop.Pattern != "" {
		pattern, err := model.NewPattern(prop.Pattern)
		if err != nil {
			return model.FieldRule{}, fmt.Errorf("property %q: invalid pattern: %w", name, err)
		}
		rule.Pattern = pattern
	}

	rules := strings.TrimSpace(prop.RulesText)
	if rules == "" {
		rules = strings.TrimSpace(prop.Description)
	}
	if rules != "" {
		rule.RulesDisplayName = model.StringPtr(rules)
	}

	if prop.Default != nil {
		rule.DefaultValue = model.StringPtr(fmt.Sprint(prop.Default))
	}
	return rule, nil
}
