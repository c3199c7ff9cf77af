package orchestrator_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-scenario/pkg/model"
	"github.com/goliatone/go-scenario/pkg/orchestrator"
	"github.com/goliatone/go-scenario/pkg/payload"
	"github.com/goliatone/go-scenario/pkg/render"
	"github.com/goliatone/go-scenario/pkg/testsupport"
)

type captureRenderer struct {
	page    model.Page
	options render.RenderOptions
}

func (c *captureRenderer) Name() string        { return "capture" }
func (c *captureRenderer) ContentType() string { return "text/plain" }
func (c *captureRenderer) Render(_ context.Context, page model.Page, options render.RenderOptions) ([]byte, error) {
	c.page = page
	c.options = options
	return []byte("ok"), nil
}

type stubThemeSelector struct {
	selection *theme.Selection
	calls     [][2]string
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, [2]string{name, variant})
	return s.selection, nil
}

func TestGenerate_DefaultsToHTML(t *testing.T) {
	orch := orchestrator.New()

	out, err := orch.Generate(context.Background(), orchestrator.Request{
		Payload: testsupport.ReadFixture(t, testsupport.OnboardingPage),
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "<!DOCTYPE html>")
	assert.Contains(t, string(out), `value="Vasya"`)
	assert.Equal(t, []string{"html", "json"}, orch.Renderers())
}

func TestGenerate_JSONRendererFromYAML(t *testing.T) {
	orch := orchestrator.New()

	out, err := orch.Generate(context.Background(), orchestrator.Request{
		Payload:  testsupport.ReadFixture(t, testsupport.ContactPage),
		Format:   payload.FormatYAML,
		Renderer: "json",
		RenderOptions: render.RenderOptions{
			Answers: model.AnswersFromStrings(map[string]string{"email": "ada@example.com"}),
		},
	})
	require.NoError(t, err)

	var doc struct {
		Valid  bool `json:"valid"`
		Stages []struct {
			Kind string `json:"kind"`
		} `json:"stages"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.True(t, doc.Valid)
	assert.Len(t, doc.Stages, 5)
}

func TestGenerate_UnknownRenderer(t *testing.T) {
	_, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{
		Page:     pagePtr(testsupport.SamplePage()),
		Renderer: "pdf",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"pdf" not found`)
}

func TestGenerate_DecodeErrorsAreWrapped(t *testing.T) {
	_, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{
		Payload: testsupport.ReadFixture(t, testsupport.DuplicateIDs),
	})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "orchestrator: decode page:"))
}

func TestGenerate_RequiresInput(t *testing.T) {
	_, err := orchestrator.New().Generate(context.Background(), orchestrator.Request{})
	assert.Error(t, err)
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := orchestrator.New().Generate(ctx, orchestrator.Request{Page: pagePtr(testsupport.SamplePage())})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGenerate_TransformerAndThemeReachRenderer(t *testing.T) {
	capture := &captureRenderer{}
	registry, err := render.NewRegistry(capture)
	require.NoError(t, err)

	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:   "acme",
			Tokens: map[string]string{"brand": "#123456"},
		},
	}}

	preset, err := orchestrator.NewPresetTransformer([]byte(`{"fields": {"name": {"displayName": "First name"}}}`))
	require.NoError(t, err)

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultRenderer("capture"),
		orchestrator.WithThemeSelector(selector),
		orchestrator.WithTransformer(preset),
	)

	original := testsupport.SamplePage()
	out, err := orch.Generate(context.Background(), orchestrator.Request{
		Page:         &original,
		ThemeName:    "acme",
		ThemeVariant: "dark",
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", string(out))

	rule, ok := capture.page.Field("name")
	require.True(t, ok)
	assert.Equal(t, "First name", rule.DisplayName)

	untouched, _ := original.Field("name")
	assert.Equal(t, "Enter your name", untouched.DisplayName)

	require.Len(t, selector.calls, 1)
	assert.Equal(t, [2]string{"acme", "dark"}, selector.calls[0])
	require.NotNil(t, capture.options.Theme)
	assert.Equal(t, "#123456", capture.options.Theme.CSSVars["--brand"])
}

func TestValidate(t *testing.T) {
	result, err := orchestrator.New().Validate(context.Background(), orchestrator.Request{
		Payload: testsupport.ReadFixture(t, testsupport.OnboardingPage),
		RenderOptions: render.RenderOptions{
			Answers: model.AnswersFromStrings(map[string]string{"name": "V4sya"}),
		},
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, []string{"name"}, result.Invalid())
}

func pagePtr(page model.Page) *model.Page {
	return &page
}
