// Package analysis maps free-form model responses onto a fixed table of
// labeled categories. The parser is a single-pass line classifier: it detects
// category headings, buffers continuation lines, and post-cleans each field.
package analysis

// Category identifies one dimension of the analysis schema. The value is the
// display name used for table rows and spreadsheet columns.
type Category string

const (
	CategoryVideoSummary      Category = "Video Summary"
	CategoryContentTheme      Category = "Content Theme"
	CategoryContentStyle      Category = "Content Style"
	CategoryCreatorPresence   Category = "Creator Presence"
	CategoryKeyVideoElements  Category = "Key Video Elements"
	CategoryOnScreenText      Category = "On-Screen Text/Graphics"
	CategorySpokenWords       Category = "Spoken Words"
	CategoryTechnicalElements Category = "Technical Elements"
	CategoryAuditoryElements  Category = "Auditory Elements"
	CategoryLanguage          Category = "Language"
	CategorySentiment         Category = "Sentiment/Tone/Vibe"
	CategoryVideoLength       Category = "Video Length"
	CategoryBrandSafety       Category = "Brand Safety"
	CategoryBrandsFeatured    Category = "Brands Featured"
	CategoryTargetAudience    Category = "Target Audience"
	CategoryLocation          Category = "Location"
)

// DefaultCategories returns the canonical category order used for display and
// spreadsheet columns.
func DefaultCategories() []Category {
	return []Category{
		CategoryVideoSummary,
		CategoryContentTheme,
		CategoryContentStyle,
		CategoryCreatorPresence,
		CategoryKeyVideoElements,
		CategoryOnScreenText,
		CategorySpokenWords,
		CategoryTechnicalElements,
		CategoryAuditoryElements,
		CategoryLanguage,
		CategorySentiment,
		CategoryVideoLength,
		CategoryBrandSafety,
		CategoryBrandsFeatured,
		CategoryTargetAudience,
		CategoryLocation,
	}
}

// DefaultHeadings returns the heading phrases the default prompt templates
// emit, in match-priority order. Phrases must stay in lock-step with the
// templates in the prompt package, or responses for a renamed heading parse
// into empty fields.
func DefaultHeadings() []Heading {
	return []Heading{
		{Phrase: "brief video summary", Category: CategoryVideoSummary},
		{Phrase: "content theme", Category: CategoryContentTheme},
		{Phrase: "content style", Category: CategoryContentStyle},
		{Phrase: "creator presence", Category: CategoryCreatorPresence},
		{Phrase: "key video elements", Category: CategoryKeyVideoElements},
		{Phrase: "on-screen text/graphics", Category: CategoryOnScreenText},
		{Phrase: "spoken words", Category: CategorySpokenWords},
		{Phrase: "technical elements", Category: CategoryTechnicalElements},
		{Phrase: "auditory elements", Category: CategoryAuditoryElements},
		{Phrase: "language", Category: CategoryLanguage},
		{Phrase: "sentiment/tone/vibe", Category: CategorySentiment},
		{Phrase: "video length", Category: CategoryVideoLength},
		{Phrase: "brand safety", Category: CategoryBrandSafety},
		{Phrase: "brands featured", Category: CategoryBrandsFeatured},
		{Phrase: "target audience", Category: CategoryTargetAudience},
		{Phrase: "location", Category: CategoryLocation},
	}
}

// DefaultSchema returns the schema for the standard sixteen-category video
// analysis.
func DefaultSchema() Schema {
	return NewSchema(DefaultCategories(), DefaultHeadings())
}
