package render_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-scenario/pkg/model"
	"github.com/goliatone/go-scenario/pkg/render"
	"github.com/goliatone/go-scenario/pkg/testsupport"
)

func TestProject_PreservesStageOrder(t *testing.T) {
	page := testsupport.SamplePage()

	descriptors, err := render.NewProjector().Project(page, nil)
	require.NoError(t, err)

	got := make([]model.StageKind, 0, len(descriptors))
	for i, d := range descriptors {
		assert.Equal(t, i, d.Index)
		got = append(got, d.Kind)
	}
	want := []model.StageKind{
		model.StageText,
		model.StageText,
		model.StageImage,
		model.StageField,
		model.StageButton,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("stage order mismatch (-want +got):\n%s", diff)
	}
}

func TestProject_SampleDescriptors(t *testing.T) {
	descriptors, err := render.NewProjector().Project(testsupport.SamplePage(), nil)
	require.NoError(t, err)
	require.Len(t, descriptors, 5)

	want := []render.Descriptor{
		{Index: 0, Kind: model.StageText, Status: render.StatusReady, Text: &render.TextView{Text: "Buy our drums", Size: 24, Bold: true}},
		{Index: 1, Kind: model.StageText, Status: render.StatusReady, Text: &render.TextView{
			Text: "Our drums are the best in the world. People have been buying them for 100 years.",
			Size: model.DefaultTextSize,
		}},
		{Index: 2, Kind: model.StageImage, Status: render.StatusNotImplemented, Image: &render.ImageView{URL: "https://example.com/media/drums.jpg"}},
		{Index: 3, Kind: model.StageField, Status: render.StatusReady, Field: &render.FieldView{
			ID:          "name",
			Label:       "Enter your name",
			Type:        model.FieldTypeText,
			Required:    true,
			Pattern:     "^[a-zA-Z]{2,30}$",
			Value:       "Vasya",
			Valid:       true,
			HelperText:  "2 to 30 Latin letters",
			Description: "2 to 30 Latin letters",
		}},
		{Index: 4, Kind: model.StageButton, Status: render.StatusReady, Button: &render.ButtonView{
			Text:    "Let's go",
			Action:  model.ActionShowNext,
			Gated:   true,
			Enabled: true,
		}},
	}
	if diff := cmp.Diff(want, descriptors); diff != "" {
		t.Fatalf("descriptors mismatch (-want +got):\n%s", diff)
	}
}

func TestProject_EmptyRequiredFieldDisablesGatedButtons(t *testing.T) {
	page := model.NewPage(
		model.NewText("Contact"),
		model.FieldStage{Field: model.FieldRule{ID: "email", DisplayName: "Email", Type: model.FieldTypeText, Required: true}},
		model.ButtonStage{Text: "Help", Action: model.NavigateAction{Destination: "help"}},
		model.ButtonStage{Text: "Save", Action: model.SaveFormAction{}},
	)

	descriptors, err := render.NewProjector().Project(page, nil)
	require.NoError(t, err)

	field := descriptors[1].Field
	require.NotNil(t, field)
	assert.False(t, field.Valid)
	assert.False(t, field.ShowError, "empty values never show an error")
	assert.Empty(t, field.Value)

	nav := descriptors[2].Button
	require.NotNil(t, nav)
	assert.True(t, nav.Enabled)
	assert.False(t, nav.Gated)
	assert.Equal(t, "help", nav.Destination)

	save := descriptors[3].Button
	require.NotNil(t, save)
	assert.True(t, save.Gated)
	assert.False(t, save.Enabled)
}

func TestProject_MismatchShowsRulesAsError(t *testing.T) {
	page := testsupport.SamplePage()
	answers := model.Answers{"name": model.NewAnswer("V4sya")}

	descriptors, err := render.NewProjector().Project(page, answers)
	require.NoError(t, err)

	field := descriptors[3].Field
	require.NotNil(t, field)
	assert.False(t, field.Valid)
	assert.True(t, field.ShowError)
	assert.Equal(t, "2 to 30 Latin letters", field.Error)
	assert.Empty(t, field.Description)
	assert.Equal(t, field.Error, field.HelperText)
	assert.False(t, descriptors[4].Button.Enabled)
}

func TestProject_UnknownFieldTypeIsUnsupported(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	projector := render.NewProjector(render.WithLogger(zap.New(core)))

	page := testsupport.LoadPage(t, testsupport.UnknownFieldPage)
	descriptors, err := projector.Project(page, nil)
	require.NoError(t, err)
	require.Len(t, descriptors, 3)

	field := descriptors[1]
	assert.Equal(t, render.StatusUnsupported, field.Status)
	assert.False(t, field.Drawable())
	require.NotNil(t, field.Field)
	assert.Equal(t, model.FieldTypeUnknown, field.Field.Type)

	entries := logs.FilterMessage("field type has no renderer").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "date", entries[0].ContextMap()["field"])
}

func TestProject_CoversEveryStageKind(t *testing.T) {
	samples := map[model.StageKind]model.Stage{
		model.StageText:   model.NewText("hello"),
		model.StageImage:  model.ImageStage{URL: "https://example.com/a.png"},
		model.StageButton: model.ButtonStage{Text: "Next", Action: model.ShowNextAction{}},
		model.StageField:  model.FieldStage{Field: model.FieldRule{ID: "f", Type: model.FieldTypeText}},
	}

	projector := render.NewProjector()
	for _, kind := range model.StageKinds() {
		stage, ok := samples[kind]
		require.True(t, ok, "missing sample for stage kind %q", kind)

		descriptor, err := projector.ProjectStage(0, stage, nil, true)
		require.NoError(t, err, "kind %q", kind)
		assert.Equal(t, kind, descriptor.Kind)

		set := 0
		for _, present := range []bool{descriptor.Text != nil, descriptor.Image != nil, descriptor.Button != nil, descriptor.Field != nil} {
			if present {
				set++
			}
		}
		assert.Equal(t, 1, set, "kind %q should set exactly one view", kind)
	}
}

func TestProject_NilStage(t *testing.T) {
	_, err := render.NewProjector().Project(model.Page{Stages: []model.Stage{nil}}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, render.ErrUnknownStage))
}

func TestProject_ZeroSizeTextUsesDefault(t *testing.T) {
	descriptor, err := render.NewProjector().ProjectStage(0, model.TextStage{Text: "x"}, nil, true)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultTextSize, descriptor.Text.Size)
}
