package domain

import (
	"strings"
	"time"
)

// Placeholder is substituted for every entry field that could not be resolved.
const Placeholder = "-"

// LexicalEntry is the structured result of a headword lookup.
// Every field holds either extracted text or Placeholder, never an empty string.
type LexicalEntry struct {
	Headword     string `json:"headword"`
	PartOfSpeech string `json:"partOfSpeech"`
	Definition   string `json:"definition"`
	Synonyms     string `json:"synonyms"`
	Example1     string `json:"example1"`
	Example2     string `json:"example2"`
}

// NewPlaceholderEntry returns an entry where every field except the headword is Placeholder.
func NewPlaceholderEntry(headword string) LexicalEntry {
	if strings.TrimSpace(headword) == "" {
		headword = Placeholder
	}
	return LexicalEntry{
		Headword:     headword,
		PartOfSpeech: Placeholder,
		Definition:   Placeholder,
		Synonyms:     Placeholder,
		Example1:     Placeholder,
		Example2:     Placeholder,
	}
}

// IsPlaceholder reports whether none of the lexical fields were resolved.
func (e LexicalEntry) IsPlaceholder() bool {
	return e.PartOfSpeech == Placeholder &&
		e.Definition == Placeholder &&
		e.Synonyms == Placeholder &&
		e.Example1 == Placeholder &&
		e.Example2 == Placeholder
}

// Text renders the fixed six-line layout returned to plain-text clients.
func (e LexicalEntry) Text() string {
	var b strings.Builder
	b.WriteString("Word: " + e.Headword + "\n")
	b.WriteString("Part of speech: " + e.PartOfSpeech + "\n")
	b.WriteString("Definition: " + e.Definition + "\n")
	b.WriteString("Synonyms: " + e.Synonyms + "\n")
	b.WriteString("Example 1: " + e.Example1 + "\n")
	b.WriteString("Example 2: " + e.Example2)
	return b.String()
}

// CachedEntry is a LexicalEntry persisted by the lookup cache.
type CachedEntry struct {
	Key       string
	Entry     LexicalEntry
	FetchedAt time.Time
}
