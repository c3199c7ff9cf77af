package render

import "github.com/goliatone/go-scenario/pkg/model"

// Status tells renderers whether a descriptor can be drawn.
type Status string

const (
	// StatusReady descriptors are fully projected.
	StatusReady Status = "ready"
	// StatusNotImplemented marks stages whose presentation is not wired yet
	// (images). The descriptor is still emitted so order is preserved.
	StatusNotImplemented Status = "not_implemented"
	// StatusUnsupported marks field stages with a type no renderer handles.
	// Renderers draw nothing for them.
	StatusUnsupported Status = "unsupported"
)

// Descriptor is the presentation-neutral projection of one stage. Exactly one
// of the variant pointers is set, matching Kind.
type Descriptor struct {
	Index  int             `json:"index"`
	Kind   model.StageKind `json:"kind"`
	Status Status          `json:"status"`
	Text   *TextView       `json:"text,omitempty"`
	Image  *ImageView      `json:"image,omitempty"`
	Button *ButtonView     `json:"button,omitempty"`
	Field  *FieldView      `json:"field,omitempty"`
}

// Drawable reports whether renderers should output anything for d.
func (d Descriptor) Drawable() bool {
	return d.Status != StatusUnsupported
}

// TextView describes a text block.
type TextView struct {
	Text string `json:"text"`
	Size int    `json:"size"`
	Bold bool   `json:"bold"`
}

// ImageView describes an image placeholder.
type ImageView struct {
	URL string `json:"url"`
}

// ButtonView describes a button and whether the host may let it fire.
type ButtonView struct {
	Text        string           `json:"text"`
	Action      model.ActionKind `json:"action"`
	Destination string           `json:"destination,omitempty"`
	Gated       bool             `json:"gated"`
	Enabled     bool             `json:"enabled"`
}

// FieldView describes an input with its live validation state.
type FieldView struct {
	ID          string          `json:"id"`
	Label       string          `json:"label"`
	Type        model.FieldType `json:"type"`
	Required    bool            `json:"required"`
	Pattern     string          `json:"pattern,omitempty"`
	Value       string          `json:"value"`
	Valid       bool            `json:"valid"`
	ShowError   bool            `json:"showError"`
	HelperText  string          `json:"helperText,omitempty"`
	Description string          `json:"description,omitempty"`
	Error       string          `json:"error,omitempty"`
}
