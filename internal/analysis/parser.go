package analysis

import (
	"regexp"
	"strings"
)

// Record maps every schema category to its extracted analysis text. A record
// is total: categories the response never mentioned are present with "".
type Record map[Category]string

var (
	romanPrefix  = regexp.MustCompile(`(?i)^[ivx]+\)`)
	letterPrefix = regexp.MustCompile(`^[a-zA-Z]\)`)
	bulletMarker = regexp.MustCompile(`^\s*[*\-•]\s*`)
	bracketAside = regexp.MustCompile(`\[.*?\]`)
)

// Parse maps a raw model response onto the schema's categories. It never
// fails: empty input returns an all-empty record, and malformed input
// degrades to empty or partial fields.
//
// The pass is line-buffered with no backtracking. Emphasis markers are
// stripped globally, each line loses a leading list prefix ("ii)", "a)"),
// and the stripped line is tested against the schema's heading phrases. A
// matching line flushes the buffer into the previously active category and
// starts a new one, seeded with the text after the line's first ":".
// Non-matching lines lose a leading bullet marker and accumulate on the
// active buffer. Buffered lines join with ", ". Heading phrases match
// anywhere in a line, so a phrase quoted mid-sentence in a body line
// re-categorizes from that point on; that trade-off is intentional and
// covered by tests.
func Parse(text string, schema Schema) Record {
	record := make(Record, len(schema.categories))
	for _, c := range schema.categories {
		record[c] = ""
	}
	if text == "" {
		return record
	}

	text = stripFences(text)
	text = strings.ReplaceAll(text, "*", "")

	var (
		active     Category
		haveActive bool
		buffer     []string
	)
	flush := func() {
		if !haveActive || len(buffer) == 0 {
			return
		}
		record[active] = strings.Join(buffer, ", ")
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		stripped := stripListPrefix(line)
		if category, seed, ok := schema.match(stripped); ok {
			flush()
			active = category
			haveActive = true
			buffer = buffer[:0]
			if seed != "" {
				buffer = append(buffer, seed)
			}
			continue
		}
		if haveActive {
			if cleaned := bulletMarker.ReplaceAllString(line, ""); cleaned != "" {
				buffer = append(buffer, cleaned)
			}
		}
	}
	flush()

	for _, c := range schema.categories {
		if record[c] != "" {
			record[c] = schema.cleanField(record[c])
		}
	}
	return record
}

// stripFences unwraps a response the model wrapped in a markdown code fence
// (``` or ```text). Without this the closing fence line would accumulate
// onto the last category's value. Text without a complete fence pair passes
// through unchanged.
func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return text
	}
	lines := strings.Split(trimmed, "\n")
	for i := len(lines) - 1; i > 0; i-- {
		if strings.TrimSpace(lines[i]) == "```" {
			return strings.Join(lines[1:i], "\n")
		}
	}
	return text
}

// stripListPrefix removes a leading list token: a roman numeral followed by
// ")" or a single letter followed by ")". Everything up to the first ")" is
// dropped.
func stripListPrefix(line string) string {
	if romanPrefix.MatchString(line) || letterPrefix.MatchString(line) {
		if _, rest, ok := strings.Cut(line, ")"); ok {
			return strings.TrimSpace(rest)
		}
	}
	return line
}

// cleanField post-processes one populated field: category-name echoes left by
// the model are removed, a list prefix that survived joining is dropped, and
// the text is run through CleanText.
func (s Schema) cleanField(value string) string {
	for _, c := range s.categories {
		value = strings.ReplaceAll(value, string(c)+":", "")
	}
	value = romanPrefix.ReplaceAllString(value, "")
	value = letterPrefix.ReplaceAllString(value, "")
	return CleanText(value)
}

// CleanText strips emphasis markers and bracketed asides ("[...]", shortest
// match), collapses whitespace runs to single spaces, and trims. Applying it
// to already-clean text is a no-op.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "*", "")
	text = bracketAside.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}
