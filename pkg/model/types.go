package model

import (
	"regexp"
	"strings"
)

// FieldType is the enumerated kind of input a field stage asks for.
type FieldType string

const (
	FieldTypeText    FieldType = "TEXT"
	FieldTypeUnknown FieldType = "UNKNOWN"
)

// ParseFieldType maps a backend token onto a FieldType. Unrecognised tokens
// resolve to FieldTypeUnknown; the function never fails.
func ParseFieldType(token string) FieldType {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case string(FieldTypeText):
		return FieldTypeText
	default:
		return FieldTypeUnknown
	}
}

// Pattern is a compiled validation expression matched against the whole
// display value of an answer.
type Pattern struct {
	source string
	full   *regexp.Regexp
}

// NewPattern compiles expr so that Matches only succeeds when the expression
// covers the entire input.
func NewPattern(expr string) (*Pattern, error) {
	full, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return nil, err
	}
	return &Pattern{source: expr, full: full}, nil
}

// MustPattern is NewPattern for literals known to be valid.
func MustPattern(expr string) *Pattern {
	p, err := NewPattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Matches reports whether value fully matches the pattern. A nil pattern
// matches everything.
func (p *Pattern) Matches(value string) bool {
	if p == nil || p.full == nil {
		return true
	}
	return p.full.MatchString(value)
}

// String returns the expression as supplied by the backend.
func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	return p.source
}

// FieldRule is the display and validation contract of one form field. ID is
// expected to be non-empty and unique within its page; the payload decoder
// enforces that when it builds rules.
type FieldRule struct {
	ID               string
	DisplayName      string
	Type             FieldType
	Required         bool
	Pattern          *Pattern
	RulesDisplayName *string
	DefaultValue     *string
}

// HasPattern reports whether the rule carries a validation pattern.
func (r FieldRule) HasPattern() bool {
	return r.Pattern != nil
}

// RulesText returns the human-readable rule description or "".
func (r FieldRule) RulesText() string {
	if r.RulesDisplayName == nil {
		return ""
	}
	return *r.RulesDisplayName
}

// StringPtr is a small helper for optional string fields.
func StringPtr(value string) *string {
	return &value
}
