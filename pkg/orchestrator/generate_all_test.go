package orchestrator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-scenario/pkg/model"
	"github.com/goliatone/go-scenario/pkg/orchestrator"
	"github.com/goliatone/go-scenario/pkg/render"
	"github.com/goliatone/go-scenario/pkg/testsupport"
)

type failingRenderer struct{}

func (failingRenderer) Name() string        { return "broken" }
func (failingRenderer) ContentType() string { return "text/plain" }
func (failingRenderer) Render(context.Context, model.Page, render.RenderOptions) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestGenerateAll_EveryRegisteredRenderer(t *testing.T) {
	orch := orchestrator.New()

	outputs, err := orch.GenerateAll(context.Background(), orchestrator.Request{
		Payload: testsupport.ReadFixture(t, testsupport.OnboardingPage),
	})
	require.NoError(t, err)

	require.Len(t, outputs, 2)
	assert.Contains(t, string(outputs["html"]), "<!DOCTYPE html>")
	assert.Contains(t, string(outputs["json"]), `"valid":true`)
}

func TestGenerateAll_NamedSubset(t *testing.T) {
	orch := orchestrator.New()
	page := testsupport.SamplePage()

	outputs, err := orch.GenerateAll(context.Background(), orchestrator.Request{Page: &page}, "json")
	require.NoError(t, err)
	assert.Len(t, outputs, 1)
	assert.Contains(t, outputs, "json")
}

func TestGenerateAll_Errors(t *testing.T) {
	page := testsupport.SamplePage()

	t.Run("unknown renderer", func(t *testing.T) {
		_, err := orchestrator.New().GenerateAll(context.Background(), orchestrator.Request{Page: &page}, "json", "pdf")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"pdf" not found`)
	})

	t.Run("render failure", func(t *testing.T) {
		registry, err := render.NewRegistry(&captureRenderer{}, failingRenderer{})
		require.NoError(t, err)

		_, err = orchestrator.New(orchestrator.WithRegistry(registry)).
			GenerateAll(context.Background(), orchestrator.Request{Page: &page})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "render broken: boom")
	})
}
