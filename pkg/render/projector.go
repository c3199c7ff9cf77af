package render

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-scenario/pkg/model"
	"github.com/goliatone/go-scenario/pkg/validation"
)

// ProjectorOption configures a Projector.
type ProjectorOption func(*Projector)

// WithLogger routes projector warnings to logger.
func WithLogger(logger *zap.Logger) ProjectorOption {
	return func(p *Projector) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Projector maps page stages onto descriptors. It holds no per-page state
// and is safe for concurrent use.
type Projector struct {
	logger *zap.Logger
}

// NewProjector constructs a Projector.
func NewProjector(options ...ProjectorOption) *Projector {
	p := &Projector{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// Project returns one descriptor per stage, in stage order.
func (p *Projector) Project(page model.Page, answers model.Answers) ([]Descriptor, error) {
	gateOpen := validation.CheckPage(page, answers).Valid

	out := make([]Descriptor, 0, len(page.Stages))
	for idx, stage := range page.Stages {
		descriptor, err := p.ProjectStage(idx, stage, answers, gateOpen)
		if err != nil {
			return nil, err
		}
		out = append(out, descriptor)
	}
	return out, nil
}

// ProjectStage projects a single stage. gateOpen is the page-level validity
// used to enable ShowNext and SaveForm buttons.
func (p *Projector) ProjectStage(index int, stage model.Stage, answers model.Answers, gateOpen bool) (Descriptor, error) {
	if stage == nil {
		return Descriptor{}, fmt.Errorf("%w: stage %d is nil", ErrUnknownStage, index)
	}

	descriptor := Descriptor{Index: index, Kind: stage.Kind(), Status: StatusReady}

	switch s := stage.(type) {
	case model.TextStage:
		size := s.Size
		if size <= 0 {
			size = model.DefaultTextSize
		}
		descriptor.Text = &TextView{Text: s.Text, Size: size, Bold: s.Bold}
	case model.ImageStage:
		descriptor.Status = StatusNotImplemented
		descriptor.Image = &ImageView{URL: s.URL}
	case model.ButtonStage:
		descriptor.Button = projectButton(s, gateOpen)
	case model.FieldStage:
		descriptor.Field = projectField(s.Field, answers.Lookup(s.Field))
		if s.Field.Type != model.FieldTypeText {
			descriptor.Status = StatusUnsupported
			p.logger.Warn("field type has no renderer",
				zap.Int("stage", index),
				zap.String("field", s.Field.ID),
				zap.String("fieldType", string(s.Field.Type)),
			)
		}
	default:
		return Descriptor{}, fmt.Errorf("%w: stage %d has type %T", ErrUnknownStage, index, stage)
	}
	return descriptor, nil
}

func projectButton(stage model.ButtonStage, gateOpen bool) *ButtonView {
	view := &ButtonView{Text: stage.Text}
	if stage.Action == nil {
		return view
	}
	view.Action = stage.Action.Kind()
	view.Gated = model.Gated(stage.Action)
	view.Enabled = !view.Gated || gateOpen
	if nav, ok := stage.Action.(model.NavigateAction); ok {
		view.Destination = nav.Destination
	}
	return view
}

func projectField(rule model.FieldRule, answer model.FieldAnswer) *FieldView {
	result := validation.Evaluate(rule, answer)
	return &FieldView{
		ID:          rule.ID,
		Label:       rule.DisplayName,
		Type:        rule.Type,
		Required:    rule.Required,
		Pattern:     rule.Pattern.String(),
		Value:       answer.DisplayValue(),
		Valid:       result.Valid,
		ShowError:   result.ShowError,
		HelperText:  result.HelperText,
		Description: result.Description,
		Error:       result.Error,
	}
}
