package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoAction is returned when the user picked nothing from the action
	// prompt.
	ErrNoAction = errors.New("tui: no action selected")
)
