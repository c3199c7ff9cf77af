package payload

import (
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-scenario/pkg/model"
)

const (
	stageText   = "text"
	stageImage  = "image"
	stageButton = "button"
	stageField  = "field"

	actionNavigate = "navigate"
	actionShowNext = "showNext"
	actionSaveForm = "saveForm"
)

type pageDocument struct {
	Stages []stageDocument `json:"stages"`
}

type stageDocument struct {
	Type   string          `json:"type"`
	Text   string          `json:"text,omitempty"`
	Size   *int            `json:"size,omitempty"`
	Bold   bool            `json:"bold,omitempty"`
	URL    string          `json:"url,omitempty"`
	Action *actionDocument `json:"action,omitempty"`
	Field  *fieldDocument  `json:"field,omitempty"`
}

type actionDocument struct {
	Type        string `json:"type"`
	Destination string `json:"destination,omitempty"`
}

type fieldDocument struct {
	ID               string  `json:"id"`
	DisplayName      string  `json:"displayName"`
	FieldType        *string `json:"fieldType,omitempty"`
	Required         bool    `json:"required"`
	Regexp           *string `json:"regexp,omitempty"`
	RulesDisplayName *string `json:"rulesDisplayName,omitempty"`
	DefaultValue     *string `json:"defaultValue,omitempty"`
}

// Encode writes page in the payload document shape. Stages that do not
// belong to the model package make Encode fail.
func Encode(page model.Page) ([]byte, error) {
	doc := pageDocument{Stages: make([]stageDocument, 0, len(page.Stages))}
	for idx, stage := range page.Stages {
		encoded, err := encodeStage(stage)
		if err != nil {
			return nil, fmt.Errorf("payload: encode stage %d: %w", idx, err)
		}
		doc.Stages = append(doc.Stages, encoded)
	}
	return json.MarshalIndent(doc, "", "  ")
}

func encodeStage(stage model.Stage) (stageDocument, error) {
	switch s := stage.(type) {
	case model.TextStage:
		size := s.Size
		if size <= 0 {
			size = model.DefaultTextSize
		}
		return stageDocument{Type: stageText, Text: s.Text, Size: &size, Bold: s.Bold}, nil
	case model.ImageStage:
		return stageDocument{Type: stageImage, URL: s.URL}, nil
	case model.ButtonStage:
		action, err := encodeAction(s.Action)
		if err != nil {
			return stageDocument{}, err
		}
		return stageDocument{Type: stageButton, Text: s.Text, Action: &action}, nil
	case model.FieldStage:
		rule := s.Field
		fieldType := string(rule.Type)
		if fieldType == "" {
			fieldType = string(model.FieldTypeText)
		}
		field := fieldDocument{
			ID:               rule.ID,
			DisplayName:      rule.DisplayName,
			FieldType:        &fieldType,
			Required:         rule.Required,
			RulesDisplayName: rule.RulesDisplayName,
			DefaultValue:     rule.DefaultValue,
		}
		if rule.Pattern != nil {
			expr := rule.Pattern.String()
			field.Regexp = &expr
		}
		return stageDocument{Type: stageField, Field: &field}, nil
	default:
		return stageDocument{}, fmt.Errorf("unsupported stage %T", stage)
	}
}

func encodeAction(action model.Action) (actionDocument, error) {
	switch a := action.(type) {
	case model.NavigateAction:
		return actionDocument{Type: actionNavigate, Destination: a.Destination}, nil
	case model.ShowNextAction:
		return actionDocument{Type: actionShowNext}, nil
	case model.SaveFormAction:
		return actionDocument{Type: actionSaveForm}, nil
	default:
		return actionDocument{}, fmt.Errorf("unsupported action %T", action)
	}
}
