package testsupport

import (
	"embed"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-scenario/pkg/model"
	"github.com/goliatone/go-scenario/pkg/payload"
)

//go:embed testdata/*
var fixtures embed.FS

// Fixture names bundled with the package.
const (
	OnboardingPage   = "onboarding.json"
	ContactPage      = "contact.yaml"
	UnknownFieldPage = "unknown_field.json"
	InvalidRegexp    = "invalid_regexp.json"
	DuplicateIDs     = "duplicate_ids.json"
	UnknownStage     = "unknown_stage.json"
)

// FS exposes the fixture directory.
func FS() fs.FS {
	sub, err := fs.Sub(fixtures, "testdata")
	if err != nil {
		panic(err)
	}
	return sub
}

// ReadFixture returns the raw bytes of a fixture.
func ReadFixture(t testing.TB, name string) []byte {
	t.Helper()

	data, err := fs.ReadFile(FS(), name)
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

// LoadPage decodes a fixture with a default decoder.
func LoadPage(t testing.TB, name string) model.Page {
	t.Helper()

	decoder, err := payload.NewDecoder()
	if err != nil {
		t.Fatalf("new decoder: %v", err)
	}
	page, err := decoder.DecodeFS(FS(), name)
	if err != nil {
		t.Fatalf("decode fixture %s: %v", name, err)
	}
	return page
}

// SamplePage builds the onboarding page in code, matching OnboardingPage.
func SamplePage() model.Page {
	return model.NewPage(
		model.TextStage{Text: "Buy our drums", Size: 24, Bold: true},
		model.NewText("Our drums are the best in the world. People have been buying them for 100 years."),
		model.ImageStage{URL: "https://example.com/media/drums.jpg"},
		model.FieldStage{Field: model.FieldRule{
			ID:               "name",
			DisplayName:      "Enter your name",
			Type:             model.FieldTypeText,
			Required:         true,
			Pattern:          model.MustPattern("^[a-zA-Z]{2,30}$"),
			RulesDisplayName: model.StringPtr("2 to 30 Latin letters"),
			DefaultValue:     model.StringPtr("Vasya"),
		}},
		model.ButtonStage{Text: "Let's go", Action: model.ShowNextAction{}},
	)
}

// PatternComparer lets cmp compare values holding compiled patterns by their
// source expression.
var PatternComparer = cmp.Comparer(func(a, b *model.Pattern) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
})
