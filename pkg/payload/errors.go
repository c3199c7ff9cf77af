package payload

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned for blank documents.
	ErrEmpty = errors.New("payload: document is empty")
	// ErrSchema wraps structural violations reported by the page schema.
	ErrSchema = errors.New("payload: document does not match page schema")
)

// DecodeError locates a problem inside a page document.
type DecodeError struct {
	Stage int
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("payload: stage %d (field %q): %v", e.Stage, e.Field, e.Err)
	}
	return fmt.Sprintf("payload: stage %d: %v", e.Stage, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
