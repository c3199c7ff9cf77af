package validation

import "github.com/goliatone/go-scenario/pkg/model"

// IsValid reports whether answer satisfies rule.
//
// Required fields need a non-empty value that fully matches the pattern when
// one is set. Optional fields accept the empty value; a non-empty value is
// only accepted when a pattern is set and fully matches it.
func IsValid(rule model.FieldRule, answer model.FieldAnswer) bool {
	value := answer.DisplayValue()
	if rule.Required {
		if value == "" {
			return false
		}
		return rule.Pattern.Matches(value)
	}
	if value == "" {
		return true
	}
	return rule.HasPattern() && rule.Pattern.Matches(value)
}

// ShowError reports whether the live-edit error indicator is on: the value is
// non-empty, a pattern is set, and the value does not fully match it.
func ShowError(rule model.FieldRule, answer model.FieldAnswer) bool {
	value := answer.DisplayValue()
	return value != "" && rule.HasPattern() && !rule.Pattern.Matches(value)
}

// FieldResult is the per-edit state of one field.
type FieldResult struct {
	ID        string `json:"id"`
	Valid     bool   `json:"valid"`
	ShowError bool   `json:"showError"`
	// HelperText is the text shown beneath the field: the rules description
	// in both states, reused as the error message while ShowError is set.
	HelperText string `json:"helperText,omitempty"`
	// Description is set when the field is not in error.
	Description string `json:"description,omitempty"`
	// Error is set while ShowError is true.
	Error string `json:"error,omitempty"`
}

// Evaluate computes the (valid, showError, helperText) state for one field.
func Evaluate(rule model.FieldRule, answer model.FieldAnswer) FieldResult {
	result := FieldResult{
		ID:         rule.ID,
		Valid:      IsValid(rule, answer),
		ShowError:  ShowError(rule, answer),
		HelperText: rule.RulesText(),
	}
	if result.ShowError {
		result.Error = result.HelperText
	} else {
		result.Description = result.HelperText
	}
	return result
}

// PageResult aggregates the field results of a page.
type PageResult struct {
	Fields []FieldResult `json:"fields"`
	Valid  bool          `json:"valid"`
}

// CheckPage evaluates every field stage of page. Missing answers fall back to
// the field's default value. A page without fields is valid.
func CheckPage(page model.Page, answers model.Answers) PageResult {
	result := PageResult{Valid: true}
	for _, rule := range page.Fields() {
		field := Evaluate(rule, answers.Lookup(rule))
		if !field.Valid {
			result.Valid = false
		}
		result.Fields = append(result.Fields, field)
	}
	return result
}

// Invalid returns the ids of failing fields in page order.
func (r PageResult) Invalid() []string {
	var out []string
	for _, field := range r.Fields {
		if !field.Valid {
			out = append(out, field.ID)
		}
	}
	return out
}

// Field returns the result for id.
func (r PageResult) Field(id string) (FieldResult, bool) {
	for _, field := range r.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return FieldResult{}, false
}
