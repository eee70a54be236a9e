package prompt

import (
	"strings"
	"testing"

	"github.com/cliplens/cliplens/internal/analysis"
)

func TestBuild_WithOptionsSubstitutesCatalog(t *testing.T) {
	got := Build(StyleWithOptions, DefaultCatalog())

	if strings.Contains(got, "{{") || strings.Contains(got, "}}") {
		t.Errorf("rendered prompt still contains template markers:\n%s", got)
	}
	for _, want := range []string{
		"Choose from these options: Education, Lifestyle",
		"Choose from these options: ASMR, Skits",
		"Positive: Uplifting",
		"English, Spanish",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered prompt missing %q", want)
		}
	}
}

func TestBuild_WithOptionsCustomCatalog(t *testing.T) {
	catalog := Catalog{
		ContentThemes: []string{"Cooking", "Baking"},
		Sentiments:    []Bucket{{Name: "Warm", Labels: []string{"Cozy", "Homely"}}},
	}
	got := Build(StyleWithOptions, catalog)

	if !strings.Contains(got, "Choose from these options: Cooking, Baking") {
		t.Errorf("custom themes not substituted:\n%s", got)
	}
	if !strings.Contains(got, "Warm: Cozy, Homely") {
		t.Errorf("custom sentiment bucket not substituted:\n%s", got)
	}
}

func TestBuild_WithoutOptionsIgnoresCatalog(t *testing.T) {
	got := Build(StyleWithoutOptions, DefaultCatalog())

	if got != withoutOptionsText {
		t.Error("without-options prompt should be the embedded text unchanged")
	}
	if !strings.Contains(got, "Examples of this category that are not exhaustive include") {
		t.Error("without-options prompt missing example phrasing")
	}
}

// Every heading phrase the parser matches on must appear in both prompt
// variants, otherwise the model's answer for that dimension lands in the
// wrong field or none at all.
func TestBuild_HeadingsMatchParserSchema(t *testing.T) {
	for _, style := range []Style{StyleWithOptions, StyleWithoutOptions} {
		rendered := strings.ToLower(Build(style, DefaultCatalog()))
		for _, h := range analysis.DefaultHeadings() {
			if !strings.Contains(rendered, h.Phrase) {
				t.Errorf("style %q: prompt missing heading phrase %q", style, h.Phrase)
			}
		}
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    Style
		wantErr bool
	}{
		{"with_options", StyleWithOptions, false},
		{"without_options", StyleWithoutOptions, false},
		{"", "", true},
		{"freeform", "", true},
		{"With_Options", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStyle(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStyle(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStyle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStyleDisplay(t *testing.T) {
	if got := StyleWithOptions.Display(); got != "With Prompt Options" {
		t.Errorf("Display() = %q, want %q", got, "With Prompt Options")
	}
	if got := StyleWithoutOptions.Display(); got != "Without Prompt Options" {
		t.Errorf("Display() = %q, want %q", got, "Without Prompt Options")
	}
}
