package render

import (
	"fmt"

	"github.com/goliatone/go-scenario/pkg/model"
	"github.com/goliatone/go-scenario/pkg/validation"
)

// Session holds the transient answers of one screen and keeps its projection
// current as fields are edited. A Session is owned by a single screen and is
// not safe for concurrent use.
type Session struct {
	projector   *Projector
	page        model.Page
	answers     model.Answers
	descriptors []Descriptor
	fieldIndex  map[string]int
	buttons     []int
}

// NewSession projects page with the seed answers. A nil projector uses the
// defaults.
func NewSession(projector *Projector, page model.Page, seed model.Answers) (*Session, error) {
	if projector == nil {
		projector = NewProjector()
	}
	s := &Session{
		projector:  projector,
		page:       page,
		answers:    seed.Clone(),
		fieldIndex: make(map[string]int),
	}
	for idx, stage := range page.Stages {
		switch st := stage.(type) {
		case model.FieldStage:
			if _, exists := s.fieldIndex[st.Field.ID]; !exists {
				s.fieldIndex[st.Field.ID] = idx
			}
		case model.ButtonStage:
			s.buttons = append(s.buttons, idx)
		}
	}

	descriptors, err := projector.Project(page, s.answers)
	if err != nil {
		return nil, err
	}
	s.descriptors = descriptors
	return s, nil
}

// Page returns the page the session projects.
func (s *Session) Page() model.Page {
	return s.page
}

// Descriptors returns a copy of the current projection.
func (s *Session) Descriptors() []Descriptor {
	return append([]Descriptor(nil), s.descriptors...)
}

// Answers returns a copy of the current answers.
func (s *Session) Answers() model.Answers {
	return s.answers.Clone()
}

// Answer returns the effective answer for id, defaulted like Lookup.
func (s *Session) Answer(id string) (model.FieldAnswer, error) {
	rule, err := s.rule(id)
	if err != nil {
		return model.FieldAnswer{}, err
	}
	return s.answers.Lookup(rule), nil
}

// Edit replaces the answer for id and re-projects that field stage. Gated
// buttons are refreshed as well since page validity may have changed.
func (s *Session) Edit(id string, answer model.FieldAnswer) (Descriptor, error) {
	rule, err := s.rule(id)
	if err != nil {
		return Descriptor{}, err
	}
	s.answers = s.answers.With(id, answer)

	gateOpen := s.Result().Valid
	idx := s.fieldIndex[id]
	descriptor, err := s.projector.ProjectStage(idx, model.FieldStage{Field: rule}, s.answers, gateOpen)
	if err != nil {
		return Descriptor{}, err
	}
	s.descriptors[idx] = descriptor

	for _, b := range s.buttons {
		if view := s.descriptors[b].Button; view != nil {
			updated := *view
			updated.Enabled = !updated.Gated || gateOpen
			s.descriptors[b].Button = &updated
		}
	}
	return descriptor, nil
}

// Result validates every field of the page with the current answers.
func (s *Session) Result() validation.PageResult {
	return validation.CheckPage(s.page, s.answers)
}

// CanProceed reports whether gated actions may run.
func (s *Session) CanProceed() bool {
	return s.Result().Valid
}

// Trigger returns the action of the button at stage index. Gated actions
// fail with ErrActionBlocked while any field is invalid.
func (s *Session) Trigger(index int) (model.Action, error) {
	if index < 0 || index >= len(s.page.Stages) {
		return nil, fmt.Errorf("%w: index %d out of range", ErrNotButton, index)
	}
	button, ok := s.page.Stages[index].(model.ButtonStage)
	if !ok {
		return nil, fmt.Errorf("%w: stage %d is %s", ErrNotButton, index, s.page.Stages[index].Kind())
	}
	if model.Gated(button.Action) {
		if result := s.Result(); !result.Valid {
			return nil, fmt.Errorf("%w: %v", ErrActionBlocked, result.Invalid())
		}
	}
	return button.Action, nil
}

func (s *Session) rule(id string) (model.FieldRule, error) {
	idx, ok := s.fieldIndex[id]
	if !ok {
		return model.FieldRule{}, fmt.Errorf("%w: %q", ErrUnknownField, id)
	}
	return s.page.Stages[idx].(model.FieldStage).Field, nil
}
