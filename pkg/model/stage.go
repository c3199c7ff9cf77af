package model

// DefaultTextSize is the font size applied to text stages that omit one.
const DefaultTextSize = 16

// StageKind identifies a Stage variant.
type StageKind string

const (
	StageText   StageKind = "text"
	StageImage  StageKind = "image"
	StageButton StageKind = "button"
	StageField  StageKind = "field"
)

// StageKinds lists every Stage variant. Switches over stages are expected to
// handle each of them.
func StageKinds() []StageKind {
	return []StageKind{StageText, StageImage, StageButton, StageField}
}

// Stage is one renderable unit of a page. The interface is sealed: only the
// variants declared in this package implement it.
type Stage interface {
	Kind() StageKind
	sealedStage()
}

// TextStage is a block of text.
type TextStage struct {
	Text string
	Size int
	Bold bool
}

// NewText returns a text stage with the default size.
func NewText(text string) TextStage {
	return TextStage{Text: text, Size: DefaultTextSize}
}

// ImageStage references a remote image.
type ImageStage struct {
	URL string
}

// ButtonStage triggers an action.
type ButtonStage struct {
	Text   string
	Action Action
}

// FieldStage asks the user for an answer governed by Field.
type FieldStage struct {
	Field FieldRule
}

func (TextStage) Kind() StageKind   { return StageText }
func (ImageStage) Kind() StageKind  { return StageImage }
func (ButtonStage) Kind() StageKind { return StageButton }
func (FieldStage) Kind() StageKind  { return StageField }

func (TextStage) sealedStage()   {}
func (ImageStage) sealedStage()  {}
func (ButtonStage) sealedStage() {}
func (FieldStage) sealedStage()  {}

// ActionKind identifies an Action variant.
type ActionKind string

const (
	ActionNavigate ActionKind = "navigate"
	ActionShowNext ActionKind = "showNext"
	ActionSaveForm ActionKind = "saveForm"
)

// ActionKinds lists every Action variant.
func ActionKinds() []ActionKind {
	return []ActionKind{ActionNavigate, ActionShowNext, ActionSaveForm}
}

// Action is what a button does when pressed. Sealed like Stage.
type Action interface {
	Kind() ActionKind
	sealedAction()
}

// NavigateAction moves to Destination unconditionally.
type NavigateAction struct {
	Destination string
}

// ShowNextAction advances to the next page of the scenario.
type ShowNextAction struct{}

// SaveFormAction submits the answers collected on the page.
type SaveFormAction struct{}

func (NavigateAction) Kind() ActionKind { return ActionNavigate }
func (ShowNextAction) Kind() ActionKind { return ActionShowNext }
func (SaveFormAction) Kind() ActionKind { return ActionSaveForm }

func (NavigateAction) sealedAction() {}
func (ShowNextAction) sealedAction() {}
func (SaveFormAction) sealedAction() {}

// Gated reports whether action may only run once every field on the page is
// valid. Navigation is never gated.
func Gated(action Action) bool {
	if action == nil {
		return false
	}
	switch action.Kind() {
	case ActionShowNext, ActionSaveForm:
		return true
	default:
		return false
	}
}

// Page is an ordered sequence of stages describing one screen. Render order
// is list order.
type Page struct {
	Stages []Stage
}

// NewPage builds a page from stages, keeping their order.
func NewPage(stages ...Stage) Page {
	return Page{Stages: append([]Stage(nil), stages...)}
}

// Fields returns the rules of every field stage in page order.
func (p Page) Fields() []FieldRule {
	var out []FieldRule
	for _, stage := range p.Stages {
		if field, ok := stage.(FieldStage); ok {
			out = append(out, field.Field)
		}
	}
	return out
}

// Field returns the rule with the given id.
func (p Page) Field(id string) (FieldRule, bool) {
	for _, rule := range p.Fields() {
		if rule.ID == id {
			return rule, true
		}
	}
	return FieldRule{}, false
}
