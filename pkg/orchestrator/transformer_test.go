package orchestrator_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-scenario/pkg/model"
	"github.com/goliatone/go-scenario/pkg/orchestrator"
	"github.com/goliatone/go-scenario/pkg/testsupport"
	"github.com/goliatone/go-scenario/pkg/validation"
)

func TestPresetTransformer_YAMLPatch(t *testing.T) {
	files := fstest.MapFS{
		"preset.yaml": {Data: []byte(`
fields:
  name:
    rulesDisplayName: Letters only
    defaultValue: ""
    regexp: "[a-z]+"
`)},
	}
	preset, err := orchestrator.NewPresetTransformerFromFS(files, "preset.yaml")
	require.NoError(t, err)

	page := testsupport.SamplePage()
	require.NoError(t, preset.Transform(context.Background(), &page))

	rule, ok := page.Field("name")
	require.True(t, ok)
	assert.Equal(t, "Letters only", rule.RulesText())
	assert.Equal(t, "[a-z]+", rule.Pattern.String())
	assert.Equal(t, "", model.DefaultAnswer(rule).DisplayValue())
	assert.True(t, rule.Required)

	result := validation.CheckPage(page, nil)
	assert.False(t, result.Valid)
}

func TestPresetTransformer_Errors(t *testing.T) {
	_, err := orchestrator.NewPresetTransformer(nil)
	assert.Error(t, err)

	_, err = orchestrator.NewPresetTransformer([]byte(`{"fields": {"name": {"regexp": "("}}}`))
	assert.Error(t, err)

	preset, err := orchestrator.NewPresetTransformer([]byte(`{"fields": {"missing": {"required": true}}}`))
	require.NoError(t, err)
	page := testsupport.SamplePage()
	err = preset.Transform(context.Background(), &page)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"missing" not found`)
}

func TestTransformers_Chain(t *testing.T) {
	var calls []string
	chain := orchestrator.Transformers{
		orchestrator.TransformerFunc(func(context.Context, *model.Page) error {
			calls = append(calls, "first")
			return nil
		}),
		nil,
		orchestrator.TransformerFunc(func(_ context.Context, page *model.Page) error {
			calls = append(calls, "second")
			page.Stages = append(page.Stages, model.NewText("appended"))
			return nil
		}),
	}

	page := model.NewPage()
	require.NoError(t, chain.Transform(context.Background(), &page))
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Len(t, page.Stages, 1)
}
