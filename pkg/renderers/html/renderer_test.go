package html_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-scenario/pkg/model"
	"github.com/goliatone/go-scenario/pkg/render"
	"github.com/goliatone/go-scenario/pkg/renderers/html"
	"github.com/goliatone/go-scenario/pkg/testsupport"
)

func renderPage(t *testing.T, page model.Page, options render.RenderOptions, opts ...html.Option) string {
	t.Helper()

	renderer, err := html.New(opts...)
	require.NoError(t, err)

	out, err := renderer.Render(context.Background(), page, options)
	require.NoError(t, err)
	return string(out)
}

func TestRenderer_SamplePage(t *testing.T) {
	out := renderPage(t, testsupport.SamplePage(), render.RenderOptions{Title: "Drums"})

	assert.Contains(t, out, "<title>Drums</title>")
	assert.Contains(t, out, `<p class="scenario-text scenario-text--bold" style="font-size: 24px">Buy our drums</p>`)
	assert.Contains(t, out, `style="font-size: 16px"`)
	assert.Contains(t, out, `data-status="not_implemented" data-src="https://example.com/media/drums.jpg"`)
	assert.Contains(t, out, `name="name" value="Vasya"`)
	assert.Contains(t, out, `pattern="^[a-zA-Z]{2,30}$" required`)
	assert.Contains(t, out, `class="scenario-help">2 to 30 Latin letters</p>`)
	assert.Contains(t, out, `name="action" value="showNext"`)
	assert.NotContains(t, out, "disabled")
	assert.NotContains(t, out, "data-invalid")
}

func TestRenderer_KeepsStageOrder(t *testing.T) {
	out := renderPage(t, testsupport.SamplePage(), render.RenderOptions{})

	markers := []string{"Buy our drums", "Our drums are the best", "scenario-image", `name="name"`, `value="showNext"`}
	last := -1
	for _, marker := range markers {
		idx := strings.Index(out, marker)
		require.NotEqual(t, -1, idx, "missing %q", marker)
		assert.Greater(t, idx, last, "%q out of order", marker)
		last = idx
	}
}

func TestRenderer_InvalidAnswerShowsErrorAndDisablesSubmit(t *testing.T) {
	out := renderPage(t, testsupport.SamplePage(), render.RenderOptions{
		Answers: model.Answers{"name": model.NewAnswer("V4sya")},
	})

	assert.Contains(t, out, "scenario-field--error")
	assert.Contains(t, out, `aria-invalid="true"`)
	assert.Contains(t, out, `class="scenario-error">2 to 30 Latin letters</p>`)
	assert.Contains(t, out, "data-invalid")
	assert.Contains(t, out, " disabled>")
}

func TestRenderer_NavigateStaysEnabled(t *testing.T) {
	out := renderPage(t, testsupport.LoadPage(t, testsupport.ContactPage), render.RenderOptions{})

	assert.Contains(t, out, `<button type="button" name="action" value="navigate" data-destination="help">Help</button>`)
	assert.Contains(t, out, `<button type="submit" name="action" value="saveForm" disabled>Save</button>`)
}

func TestRenderer_SkipsUnsupportedFields(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	out := renderPage(t, testsupport.LoadPage(t, testsupport.UnknownFieldPage), render.RenderOptions{},
		html.WithLogger(zap.New(core)))

	assert.Contains(t, out, "Pick a date")
	assert.NotContains(t, out, `name="date"`)
	assert.Equal(t, 1, logs.FilterMessage("skipping stage").Len())
	assert.Equal(t, 1, logs.FilterMessage("field type has no renderer").Len())
}

func TestRenderer_SanitisesBackendCopyAndEscapesValues(t *testing.T) {
	page := model.NewPage(
		model.NewText("<script>alert(1)</script>Welcome <b>back</b>"),
		model.FieldStage{Field: model.FieldRule{ID: "nick", DisplayName: "<i>Nick</i>", Type: model.FieldTypeText, Required: true}},
	)
	out := renderPage(t, page, render.RenderOptions{
		Answers: model.Answers{"nick": model.NewAnswer(`"><b>x`)},
	})

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "alert(1)")
	assert.Contains(t, out, "Welcome back")
	assert.Contains(t, out, ">Nick</label>")
	assert.NotContains(t, out, `"><b>x`)
}

func TestRenderer_ThemeTokensBecomeCSSVars(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456", "radius": "4px"},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme",
			Files:  map[string]string{html.StylesheetAsset: "scenario.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"brand": "#654321"}},
		},
	}

	out := renderPage(t, testsupport.SamplePage(), render.RenderOptions{Theme: html.ThemeConfig(manifest, "dark")})

	assert.Contains(t, out, `data-theme="acme"`)
	assert.Contains(t, out, "--brand: #654321;")
	assert.Contains(t, out, "--radius: 4px;")
	assert.Contains(t, out, `<link rel="stylesheet" href="/assets/themes/acme/scenario.css">`)
}

func TestRenderer_FallbackStylesheet(t *testing.T) {
	out := renderPage(t, testsupport.SamplePage(), render.RenderOptions{}, html.WithStylesheet("/static/page.css"))
	assert.Contains(t, out, `<link rel="stylesheet" href="/static/page.css">`)
}

func TestThemeConfig(t *testing.T) {
	assert.Nil(t, html.ThemeConfig(nil, ""))

	cfg := html.ThemeConfig(&theme.Manifest{
		Name:   "plain",
		Tokens: map[string]string{"--gap": "8px"},
	}, "missing")
	require.NotNil(t, cfg)
	assert.Equal(t, "plain", cfg.Theme)
	assert.Equal(t, "8px", cfg.CSSVars["--gap"])
	assert.Empty(t, cfg.AssetURL(html.StylesheetAsset))
}
