// Package prompt renders the video-analysis prompt sent to the model. Two
// styles exist: with-options constrains each dimension to a label catalog,
// without-options leaves the model free to answer open-endedly. Both variants
// request the same category headings the analysis parser keys on.
package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

// Style selects which prompt variant is sent to the model.
type Style string

const (
	// StyleWithOptions constrains each dimension to the label catalog.
	StyleWithOptions Style = "with_options"
	// StyleWithoutOptions asks open-ended questions with example labels only.
	StyleWithoutOptions Style = "without_options"
)

// ParseStyle converts a config token into a Style.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleWithOptions, StyleWithoutOptions:
		return Style(s), nil
	default:
		return "", fmt.Errorf("unknown prompt style %q (want %q or %q)", s, StyleWithOptions, StyleWithoutOptions)
	}
}

// Display returns the human-readable style name recorded in spreadsheet rows.
func (s Style) Display() string {
	if s == StyleWithoutOptions {
		return "Without Prompt Options"
	}
	return "With Prompt Options"
}

// withOptionsText is the catalog-constrained prompt template.
//
//go:embed templates/with-options.txt
var withOptionsText string

// withoutOptionsText is the open-ended prompt. It has no substitutions.
//
//go:embed templates/without-options.txt
var withoutOptionsText string

// Pre-parsed templates for efficiency. Parsing happens once at package
// initialization rather than on each render call.
var withOptionsTmpl = template.Must(template.New("with-options").Parse(withOptionsText))

// templateData carries the rendered option lists substituted into the
// with-options template.
type templateData struct {
	ContentThemes     string
	ContentStyles     string
	CreatorPresence   string
	KeyVideoElements  string
	TextGraphics      string
	SpokenWords       string
	TechnicalElements string
	AuditoryElements  string
	Languages         string
	Sentiments        string
}

// Build renders the analysis prompt for the given style. The catalog is only
// consulted for StyleWithOptions.
func Build(style Style, catalog Catalog) string {
	if style == StyleWithoutOptions {
		return withoutOptionsText
	}
	return renderWithOptions(catalog)
}

func renderWithOptions(c Catalog) string {
	data := templateData{
		ContentThemes:     joinLabels(c.ContentThemes),
		ContentStyles:     joinLabels(c.ContentStyles),
		CreatorPresence:   joinLabels(c.CreatorPresence),
		KeyVideoElements:  joinLabels(c.KeyVideoElements),
		TextGraphics:      joinLabels(c.TextGraphics),
		SpokenWords:       joinLabels(c.SpokenWords),
		TechnicalElements: joinLabels(c.TechnicalElements),
		AuditoryElements:  joinLabels(c.AuditoryElements),
		Languages:         c.languageOptions(),
		Sentiments:        c.sentimentOptions(),
	}
	var buf bytes.Buffer
	_ = withOptionsTmpl.Execute(&buf, data)
	return buf.String()
}

func joinLabels(labels []string) string {
	return strings.Join(labels, ", ")
}
