package lexicon

import (
	"strings"

	"github.com/heartmarshall/lexlookup/internal/domain"
)

// Format assembles extracted fields into a fully populated entry,
// substituting domain.Placeholder for anything left empty.
func Format(headword string, f Fields) domain.LexicalEntry {
	return domain.LexicalEntry{
		Headword:     orPlaceholder(headword),
		PartOfSpeech: orPlaceholder(f.PartOfSpeech),
		Definition:   orPlaceholder(f.Definition),
		Synonyms:     orPlaceholder(JoinSynonyms(f.Synonyms)),
		Example1:     orPlaceholder(nth(f.Examples, 0)),
		Example2:     orPlaceholder(nth(f.Examples, 1)),
	}
}

// BuildEntry runs section location, extraction and formatting over a raw
// document. An empty headword, an empty document or a missing language
// section all yield the placeholder entry.
func BuildEntry(headword, doc string, lang Language) domain.LexicalEntry {
	if headword == "" || doc == "" {
		return domain.NewPlaceholderEntry(headword)
	}

	section := LocateSection(doc, lang)
	if section == "" {
		return domain.NewPlaceholderEntry(headword)
	}

	return Format(headword, Extract(section, lang))
}

func orPlaceholder(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return domain.Placeholder
	}
	return s
}

func nth(ss []string, i int) string {
	if i < len(ss) {
		return ss[i]
	}
	return ""
}
