package analysis

import (
	"testing"
)

func TestParse_FieldExtraction(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[Category]string // categories not listed must come back empty
	}{
		{
			name: "two headings with inline values",
			text: "Content Theme: Comedy (80%), Drama (20%)\nContent Style: Vlog",
			want: map[Category]string{
				CategoryContentTheme: "Comedy (80%), Drama (20%)",
				CategoryContentStyle: "Vlog",
			},
		},
		{
			name: "bracketed aside stripped",
			text: "Language: English [choose one]",
			want: map[Category]string{CategoryLanguage: "English"},
		},
		{
			name: "bullet continuation joins with comma",
			text: "Brand Safety: none\n- no concerns noted",
			want: map[Category]string{CategoryBrandSafety: "none, no concerns noted"},
		},
		{
			name: "roman list prefix ignored",
			text: "ii) Content Style: Tutorial",
			want: map[Category]string{CategoryContentStyle: "Tutorial"},
		},
		{
			name: "high roman list prefix ignored",
			text: "xiv) Target Audience: Gen Z (100%)",
			want: map[Category]string{CategoryTargetAudience: "Gen Z (100%)"},
		},
		{
			name: "letter list prefix ignored",
			text: "a) Brief video summary: A cat knocks a glass off a table",
			want: map[Category]string{CategoryVideoSummary: "A cat knocks a glass off a table"},
		},
		{
			name: "heading without colon starts an empty buffer",
			text: "Content Theme\nComedy throughout",
			want: map[Category]string{CategoryContentTheme: "Comedy throughout"},
		},
		{
			name: "markdown emphasis stripped before matching",
			text: "**Content Theme:** Comedy",
			want: map[Category]string{CategoryContentTheme: "Comedy"},
		},
		{
			name: "heading match is case-insensitive",
			text: "CONTENT THEME: Comedy",
			want: map[Category]string{CategoryContentTheme: "Comedy"},
		},
		{
			name: "repeated heading echo removed from body",
			text: "Content Theme: Content Theme: Comedy",
			want: map[Category]string{CategoryContentTheme: "Comedy"},
		},
		{
			name: "text before the first heading is discarded",
			text: "Here is my analysis of the video.\nContent Theme: Comedy",
			want: map[Category]string{CategoryContentTheme: "Comedy"},
		},
		{
			name: "later occurrence of a heading overwrites the earlier value",
			text: "Language: English\nLanguage: French",
			want: map[Category]string{CategoryLanguage: "French"},
		},
		{
			name: "bullet variants and empty bullets",
			text: "Key Video Elements:\n• the creator\n- \n- a dog",
			want: map[Category]string{CategoryKeyVideoElements: "the creator, a dog"},
		},
		{
			name: "blank lines between sections skipped",
			text: "Content Theme: Comedy\n\n\nContent Style: Skit",
			want: map[Category]string{
				CategoryContentTheme: "Comedy",
				CategoryContentStyle: "Skit",
			},
		},
		{
			name: "continuation keeps its own list token until cleanup",
			text: "Sentiment/Tone/Vibe:\nx) Positive (100%)",
			want: map[Category]string{CategorySentiment: "Positive (100%)"},
		},
		{
			name: "fenced response unwrapped",
			text: "```\nContent Theme: Comedy\nContent Style: Skit\n```",
			want: map[Category]string{
				CategoryContentTheme: "Comedy",
				CategoryContentStyle: "Skit",
			},
		},
		{
			name: "fence with language tag unwrapped",
			text: "```text\nLanguage: English\n```",
			want: map[Category]string{CategoryLanguage: "English"},
		},
		{
			name: "unterminated fence passes through",
			text: "```\nContent Theme: Comedy",
			want: map[Category]string{CategoryContentTheme: "Comedy"},
		},
	}

	schema := DefaultSchema()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text, schema)
			for _, c := range schema.Categories() {
				want := tt.want[c]
				if got[c] != want {
					t.Errorf("Parse(%q)[%s] = %q, want %q", tt.text, c, got[c], want)
				}
			}
		})
	}
}

func TestParse_EmptyInput(t *testing.T) {
	schema := DefaultSchema()
	for _, text := range []string{"", "   \n \n\t"} {
		got := Parse(text, schema)
		if len(got) != len(schema.Categories()) {
			t.Fatalf("Parse(%q) returned %d entries, want %d", text, len(got), len(schema.Categories()))
		}
		for c, v := range got {
			if v != "" {
				t.Errorf("Parse(%q)[%s] = %q, want empty", text, c, v)
			}
		}
	}
}

func TestParse_TotalOverHeadingUnion(t *testing.T) {
	// A heading may introduce a category the declared list omits; the record
	// must still be total over the union.
	schema := NewSchema(
		[]Category{"Alpha"},
		[]Heading{
			{Phrase: "alpha", Category: "Alpha"},
			{Phrase: "beta", Category: "Beta"},
		},
	)
	got := Parse("gamma: nothing here", schema)
	if len(got) != 2 {
		t.Fatalf("record has %d entries, want 2", len(got))
	}
	for _, c := range []Category{"Alpha", "Beta"} {
		if _, ok := got[c]; !ok {
			t.Errorf("record missing category %s", c)
		}
	}
}

func TestParse_MatchPriorityIsDeclarationOrder(t *testing.T) {
	// Both phrases appear in the line; the heading declared first wins.
	schema := NewSchema(
		[]Category{"Broad", "Narrow"},
		[]Heading{
			{Phrase: "video", Category: "Broad"},
			{Phrase: "video length", Category: "Narrow"},
		},
	)
	got := Parse("Video Length: Short", schema)
	if got["Broad"] != "Short" {
		t.Errorf("Broad = %q, want %q", got["Broad"], "Short")
	}
	if got["Narrow"] != "" {
		t.Errorf("Narrow = %q, want empty", got["Narrow"])
	}
}

func TestParse_MidLineHeadingRecategorizes(t *testing.T) {
	// A heading phrase quoted mid-sentence in a body line switches the active
	// category. This is the documented trade-off of substring matching: the
	// continuation is not appended to the section it visually belongs to.
	text := "Spoken Words: narration over music\nThe location: a busy market"
	got := Parse(text, DefaultSchema())
	if got[CategorySpokenWords] != "narration over music" {
		t.Errorf("SpokenWords = %q, want %q", got[CategorySpokenWords], "narration over music")
	}
	if got[CategoryLocation] != "a busy market" {
		t.Errorf("Location = %q, want %q", got[CategoryLocation], "a busy market")
	}
}

func TestParse_RealisticResponse(t *testing.T) {
	text := `Here's the analysis of the video:

a) Brief video summary: A creator walks through a morning skincare routine while talking to the camera.

i) Content Theme: Beauty (70%), Lifestyle (30%)

ii) Content Style: Tutorial (60%), Vlog (40%)

iii) Creator Presence: Face only (80%), Hands only (20%)

iv) Key Video Elements: the creator (50%), Beauty Products (50%)

v) On-Screen Text/Graphics: Captions (100%)

vi) Spoken Words: Talking to Camera (100%)

vii) Technical Elements: Jump cuts (70%), Close-ups (30%)

viii) Auditory Elements: Original sounds/music (100%)

ix) Language: English

x) Sentiment/Tone/Vibe: Positive (100%)

xi) Video Length: Short

xii) Brand Safety: none

xiii) Brands Featured: CeraVe, The Ordinary

xiv) Target Audience: Beauty Enthusiasts (60%), Gen Z (40%)

xv) Location: Home Interior, Americas`
	got := Parse(text, DefaultSchema())

	checks := map[Category]string{
		CategoryVideoSummary:   "A creator walks through a morning skincare routine while talking to the camera.",
		CategoryContentTheme:   "Beauty (70%), Lifestyle (30%)",
		CategoryLanguage:       "English",
		CategoryVideoLength:    "Short",
		CategoryBrandsFeatured: "CeraVe, The Ordinary",
		CategoryLocation:       "Home Interior, Americas",
	}
	for c, want := range checks {
		if got[c] != want {
			t.Errorf("%s = %q, want %q", c, got[c], want)
		}
	}
	for _, c := range DefaultCategories() {
		if got[c] == "" {
			t.Errorf("%s is empty, want populated", c)
		}
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"English [choose one]", "English"},
		{"**bold** text", "bold text"},
		{"a  b\t c", "a b c"},
		{"[first] keep [second]", "keep"},
		{"  padded  ", "padded"},
		{"nested [outer [inner] tail]", "nested tail]"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanText_Idempotent(t *testing.T) {
	inputs := []string{
		"Comedy (80%), Drama (20%)",
		"English [choose one]",
		"**Vlog**",
		"  spaced   out  ",
		"unclosed [bracket",
	}
	for _, in := range inputs {
		once := CleanText(in)
		twice := CleanText(once)
		if once != twice {
			t.Errorf("CleanText not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
