package render

import "errors"

var (
	// ErrUnknownStage is returned for stages the projector cannot handle.
	ErrUnknownStage = errors.New("render: unknown stage")
	// ErrUnknownField is returned when an edit names a field that is not on
	// the page.
	ErrUnknownField = errors.New("render: unknown field")
	// ErrActionBlocked is returned when a gated button is triggered while the
	// page has invalid fields.
	ErrActionBlocked = errors.New("render: action blocked by invalid fields")
	// ErrNotButton is returned when Trigger targets a stage that is not a
	// button.
	ErrNotButton = errors.New("render: stage is not a button")
)
