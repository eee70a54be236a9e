package analysis

import "strings"

// Heading associates a lowercase phrase with the category it announces in a
// response.
type Heading struct {
	Phrase   string
	Category Category
}

// Schema is the ordered category set a response is parsed against. Heading
// matching walks the headings in declaration order and the first phrase found
// in a line wins, so match priority is deterministic.
type Schema struct {
	categories []Category
	headings   []Heading
}

// NewSchema builds a schema from an ordered category list and an ordered
// heading list. Phrases are lowercased. Heading categories missing from the
// category list are appended, so a parsed record is always total over both.
func NewSchema(categories []Category, headings []Heading) Schema {
	s := Schema{
		categories: make([]Category, 0, len(categories)),
		headings:   make([]Heading, 0, len(headings)),
	}
	declared := make(map[Category]bool, len(categories))
	for _, c := range categories {
		if declared[c] {
			continue
		}
		declared[c] = true
		s.categories = append(s.categories, c)
	}
	for _, h := range headings {
		h.Phrase = strings.ToLower(h.Phrase)
		s.headings = append(s.headings, h)
		if !declared[h.Category] {
			declared[h.Category] = true
			s.categories = append(s.categories, h.Category)
		}
	}
	return s
}

// Categories returns the schema's category order. The returned slice is a
// copy.
func (s Schema) Categories() []Category {
	out := make([]Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// match tests a prefix-stripped line against the heading phrases. A line
// matches when a phrase appears anywhere in it, case-insensitively. On a
// match it also returns the text after the line's first ":", which seeds the
// new category's buffer.
func (s Schema) match(line string) (Category, string, bool) {
	lower := strings.ToLower(line)
	for _, h := range s.headings {
		if strings.Contains(lower, h.Phrase) {
			seed := ""
			if _, after, ok := strings.Cut(line, ":"); ok {
				seed = strings.TrimSpace(after)
			}
			return h.Category, seed, true
		}
	}
	return "", "", false
}
