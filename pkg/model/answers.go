package model

// FieldAnswer is the current value entered for a field. A nil Value means the
// user has not supplied anything.
type FieldAnswer struct {
	Value *string
}

// NewAnswer wraps a user supplied value.
func NewAnswer(value string) FieldAnswer {
	return FieldAnswer{Value: &value}
}

// EmptyAnswer returns an answer without a value.
func EmptyAnswer() FieldAnswer {
	return FieldAnswer{}
}

// DefaultAnswer seeds an answer from the rule's default value.
func DefaultAnswer(rule FieldRule) FieldAnswer {
	if rule.DefaultValue == nil {
		return EmptyAnswer()
	}
	return NewAnswer(*rule.DefaultValue)
}

// DisplayValue returns the raw value, or "" when absent.
func (a FieldAnswer) DisplayValue() string {
	if a.Value == nil {
		return ""
	}
	return *a.Value
}

// JSONValue returns the value in the shape sent back to the backend: the raw
// string, or nil when no value was supplied.
func (a FieldAnswer) JSONValue() any {
	if a.Value == nil {
		return nil
	}
	return *a.Value
}

// Answers maps field ids to the answers of a single screen.
type Answers map[string]FieldAnswer

// Lookup returns the stored answer for rule, falling back to the rule's
// default value.
func (a Answers) Lookup(rule FieldRule) FieldAnswer {
	if answer, ok := a[rule.ID]; ok {
		return answer
	}
	return DefaultAnswer(rule)
}

// With returns a copy of a with the answer for id replaced.
func (a Answers) With(id string, answer FieldAnswer) Answers {
	out := a.Clone()
	out[id] = answer
	return out
}

// Clone returns a shallow copy. FieldAnswer values are never mutated in
// place, so sharing the pointers is safe.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a)+1)
	for id, answer := range a {
		out[id] = answer
	}
	return out
}

// Payload exports every field of page using the same defaulting as Lookup,
// keyed by field id, ready for JSON submission.
func (a Answers) Payload(page Page) map[string]any {
	fields := page.Fields()
	out := make(map[string]any, len(fields))
	for _, rule := range fields {
		out[rule.ID] = a.Lookup(rule).JSONValue()
	}
	return out
}

// AnswersFromStrings builds Answers from plain id/value pairs.
func AnswersFromStrings(values map[string]string) Answers {
	out := make(Answers, len(values))
	for id, value := range values {
		out[id] = NewAnswer(value)
	}
	return out
}
