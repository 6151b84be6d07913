// Package lexicon turns a wiki markup document into a structured lexical entry.
// Every function in the package is pure: no state is kept between calls.
package lexicon

import (
	"fmt"
	"strings"
	"unicode"
)

// Language describes the target language of a lookup: how its top-level
// heading is spelled and which alphabet its headwords use.
type Language struct {
	// Name is the canonical heading label, e.g. "Russian".
	Name string
	// Code is the ISO 639-1 code used by heading templates such as {{-ru-}}.
	Code string
	// Aliases are additional heading labels for the same language.
	Aliases []string
	// Alphabet is the script headwords are expected to be written in.
	Alphabet *unicode.RangeTable
}

var (
	Russian = Language{
		Name:     "Russian",
		Code:     "ru",
		Aliases:  []string{"Русский", "Русский язык"},
		Alphabet: unicode.Cyrillic,
	}

	English = Language{
		Name:     "English",
		Code:     "en",
		Aliases:  []string{"Английский"},
		Alphabet: unicode.Latin,
	}
)

var languages = map[string]Language{
	"russian": Russian,
	"ru":      Russian,
	"english": English,
	"en":      English,
}

// LanguageByName resolves a configured language name or code (case-insensitive).
func LanguageByName(name string) (Language, error) {
	lang, ok := languages[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Language{}, fmt.Errorf("lexicon: unsupported language %q", name)
	}
	return lang, nil
}

// matchesHeading reports whether a heading label names this language, either
// by plain name or through a code template ({{-ru-}}, {{ru}}).
func (l Language) matchesHeading(label string) bool {
	label = strings.TrimSpace(label)
	if strings.EqualFold(label, l.Name) {
		return true
	}
	for _, a := range l.Aliases {
		if strings.EqualFold(label, a) {
			return true
		}
	}
	if m := codeTemplateRe.FindStringSubmatch(label); m != nil {
		return strings.EqualFold(m[1], l.Code)
	}
	return false
}

// hasAlphabet reports whether s contains at least one letter of the language alphabet.
func (l Language) hasAlphabet(s string) bool {
	if l.Alphabet == nil {
		return true
	}
	for _, r := range s {
		if unicode.Is(l.Alphabet, r) {
			return true
		}
	}
	return false
}
