package html

import (
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// StylesheetAsset is the asset key looked up on the theme for the page
// stylesheet.
const StylesheetAsset = "scenario.stylesheet"

// ThemeConfig flattens manifest and the named variant into the renderer
// configuration. Variant tokens, templates and assets override the base
// manifest. Every token is exposed as a "--<token>" CSS custom property.
func ThemeConfig(manifest *theme.Manifest, variant string) *theme.RendererConfig {
	if manifest == nil {
		return nil
	}

	tokens := mergeStrings(manifest.Tokens, nil)
	partials := mergeStrings(manifest.Templates, nil)
	prefix := manifest.Assets.Prefix
	files := mergeStrings(manifest.Assets.Files, nil)

	variant = strings.TrimSpace(variant)
	if v, ok := manifest.Variants[variant]; ok {
		tokens = mergeStrings(tokens, v.Tokens)
		partials = mergeStrings(partials, v.Templates)
		files = mergeStrings(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	return &theme.RendererConfig{
		Theme:    manifest.Name,
		Variant:  variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			if prefix == "" || strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
				return file
			}
			return path.Join(prefix, file)
		},
	}
}

func mergeStrings(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overrides {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
