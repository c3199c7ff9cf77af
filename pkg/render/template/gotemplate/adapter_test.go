package gotemplate_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-scenario/pkg/render/template/gotemplate"
)

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	files := fstest.MapFS{
		"hello.tmpl":      {Data: []byte("Hello {{ name }}!")},
		"use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
		"use-filter.tmpl": {Data: []byte("{{ name|scenario_shout }}")},
		"size.tmpl":       {Data: []byte(`<p style="font-size: {{ text.size|px }}">{{ text.text|trim }}</p>`)},
	}
	engine, err := gotemplate.New(gotemplate.WithFS(files))
	require.NoError(t, err)
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada!", result)
	assert.Equal(t, result, buf.String())
}

func TestEngine_RenderTemplateWithExtension(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("hello.tmpl", map[string]any{"name": "Grace"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Grace!", result)
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	require.NoError(t, engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))

	result, err := engine.RenderTemplate("use-global", nil)
	require.NoError(t, err)
	assert.Equal(t, "env=staging", result)
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("scenario_shout", func(input any, _ any) (any, error) {
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	require.NoError(t, err)

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "ADA!", result)

	err = engine.RegisterFilter("scenario_shout", func(input any, _ any) (any, error) { return input, nil })
	assert.Error(t, err)
}

func TestEngine_StructDataUsesJSONNames(t *testing.T) {
	type textView struct {
		Text string `json:"text"`
		Size int    `json:"size"`
	}
	engine := newEngine(t)

	result, err := engine.RenderTemplate("size", map[string]any{"text": textView{Text: "  Hi ", Size: 24}})
	require.NoError(t, err)
	assert.Equal(t, `<p style="font-size: 24px">Hi</p>`, result)
}

func TestEngine_RenderString(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderString("{% if ok %}yes{% else %}no{% endif %}", map[string]any{"ok": true})
	require.NoError(t, err)
	assert.Equal(t, "yes", result)
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)

	_, err := engine.RenderTemplate("missing", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.tmpl")
}

func TestNew_RequiresSource(t *testing.T) {
	_, err := gotemplate.New()
	assert.Error(t, err)
}
