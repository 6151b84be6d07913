package lexicon

import (
	"regexp"
	"slices"
	"strings"
)

// Subsection titles, Russian Wiktionary first.
var (
	meaningTitles      = []string{"Значение", "Значения", "Meaning", "Meanings"}
	synonymTitles      = []string{"Синонимы", "Synonyms"}
	usageExampleTitles = []string{"Примеры употребления", "Usage examples"}
	exampleTitles      = []string{"Примеры", "Examples"}
)

var (
	// definitionLineRe matches "# text" but not the example sub-lines "#:", "#*", "##".
	definitionLineRe = regexp.MustCompile(`^#(?:[^#:*]|$)`)
	listLineRe       = regexp.MustCompile(`^[#*]`)
	exampleLineRe    = regexp.MustCompile(`^[#*:;]`)
	subExampleLineRe = regexp.MustCompile(`^#+:`)
	antonymLabelRe   = regexp.MustCompile(`(?i)антоним|antonym`)
	punctOnlyRe      = regexp.MustCompile(`^[\p{P}\p{S}\s]*$`)
	doubledSepRe     = regexp.MustCompile(`(?:,\s*){2,}`)
)

// maxExamples is the number of usage examples an entry carries.
const maxExamples = 2

// Fields holds the values extracted from a language section.
// An empty string or slice means the field could not be determined.
type Fields struct {
	PartOfSpeech string
	Definition   string
	Synonyms     []string
	Examples     []string
}

// Extract runs every field extractor over an uncleaned language section.
func Extract(section string, lang Language) Fields {
	return Fields{
		PartOfSpeech: ExtractPartOfSpeech(section, lang),
		Definition:   ExtractDefinition(section),
		Synonyms:     ExtractSynonyms(section),
		Examples:     ExtractExamples(section),
	}
}

// ExtractPartOfSpeech returns the label of the first non-meta subheading one
// level below the language heading. When the section only has meta headings,
// the first morphology template of the language decides.
func ExtractPartOfSpeech(section string, lang Language) string {
	hs := scanHeadings(section)
	if len(hs) > 1 {
		top := hs[0].level
		subLevel := 0
		for _, h := range hs[1:] {
			if h.level > top && (subLevel == 0 || h.level < subLevel) {
				subLevel = h.level
			}
		}

		for _, h := range hs[1:] {
			if h.level != subLevel || isMetaLabel(h.label) {
				continue
			}
			if label := Clean(h.label); label != "" {
				return label
			}
		}
	}

	return posFromTemplates(section, lang)
}

// ExtractDefinition returns the first definition line of the meaning
// subsection, or of the whole section when the subsection has none.
func ExtractDefinition(section string) string {
	if body, ok := subsection(section, meaningTitles...); ok {
		if def := firstDefinition(body); def != "" {
			return def
		}
	}
	return firstDefinition(section)
}

func firstDefinition(text string) string {
	for _, line := range lines(text) {
		if !definitionLineRe.MatchString(line) {
			continue
		}
		if def := Clean(line); def != "" {
			return def
		}
	}
	return ""
}

// ExtractSynonyms returns the cleaned, deduplicated items listed in the
// synonyms subsection.
func ExtractSynonyms(section string) []string {
	body, ok := subsection(section, synonymTitles...)
	if !ok {
		return nil
	}

	var items []string
	for _, line := range lines(body) {
		if !listLineRe.MatchString(line) {
			continue
		}
		cleaned := Clean(line)
		// Mis-delimited sections sometimes run into the antonyms list.
		if cleaned == "" || antonymLabelRe.MatchString(cleaned) {
			continue
		}
		for _, item := range strings.FieldsFunc(cleaned, isItemSeparator) {
			item = strings.TrimSpace(item)
			if item == "" || punctOnlyRe.MatchString(item) {
				continue
			}
			items = append(items, item)
		}
	}

	return DeduplicateStrings(items)
}

func isItemSeparator(r rune) bool {
	return r == ',' || r == ';'
}

// JoinSynonyms joins non-empty items with ", " and never yields a doubled
// separator.
func JoinSynonyms(items []string) string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	joined := doubledSepRe.ReplaceAllString(strings.Join(kept, ", "), ", ")
	return strings.Trim(joined, ", ")
}

// ExtractExamples returns up to two usage examples. The dedicated examples
// subsection comes first, then "#:" sub-lines anywhere in the section, then
// example templates embedded in definition lines.
func ExtractExamples(section string) []string {
	var out []string
	add := func(raw string) {
		if ex := Clean(unwrapExamples(raw)); ex != "" && !slices.Contains(out, ex) {
			out = append(out, ex)
		}
	}

	body, ok := subsection(section, usageExampleTitles...)
	if !ok {
		body, ok = subsection(section, exampleTitles...)
	}
	if ok {
		for _, line := range lines(body) {
			if exampleLineRe.MatchString(line) {
				add(line)
			}
		}
	}

	if len(out) < maxExamples {
		for _, line := range lines(section) {
			if subExampleLineRe.MatchString(line) {
				add(line)
			}
		}
	}

	if len(out) < maxExamples {
		for _, line := range lines(section) {
			if !definitionLineRe.MatchString(line) {
				continue
			}
			for _, ex := range inlineExamples(line) {
				add(ex)
			}
		}
	}

	if len(out) > maxExamples {
		out = out[:maxExamples]
	}
	return out
}

// lines splits text into lines without trailing carriage returns or leading blanks.
func lines(text string) []string {
	ls := strings.Split(text, "\n")
	for i, l := range ls {
		ls[i] = strings.TrimLeft(strings.TrimRight(l, "\r"), " \t")
	}
	return ls
}

// DeduplicateStrings returns a new slice with duplicate strings removed,
// preserving the order of first occurrence. Returns nil for nil input.
func DeduplicateStrings(ss []string) []string {
	if ss == nil {
		return nil
	}

	seen := make(map[string]struct{}, len(ss))
	result := make([]string, 0, len(ss))

	for _, s := range ss {
		if _, exists := seen[s]; exists {
			continue
		}
		seen[s] = struct{}{}
		result = append(result, s)
	}

	return result
}
