package lexicon

import (
	"regexp"
	"strings"
)

var (
	headingRe = regexp.MustCompile(`(?m)^(={1,6})[ \t]*([^=\r\n].*?)[ \t]*={1,6}[ \t]*\r?$`)

	// codeTemplateRe matches language-code heading templates: {{-ru-}}, {{ru}}.
	codeTemplateRe = regexp.MustCompile(`^\{\{\s*-?([a-z]{2,3})-?\s*\}\}$`)

	// languageLabelRe matches a capitalized word sequence such as "Old Church Slavonic".
	languageLabelRe = regexp.MustCompile(`^\p{Lu}[\p{L}'’-]*(?:[ \t]+[\p{L}'’-]+)*$`)
)

// heading is a single "== label ==" line of a markup document.
type heading struct {
	level int
	label string
	start int // offset of the heading line
	end   int // offset just past the heading line
}

// scanHeadings returns all headings of doc in document order.
func scanHeadings(doc string) []heading {
	matches := headingRe.FindAllStringSubmatchIndex(doc, -1)
	hs := make([]heading, 0, len(matches))
	for _, m := range matches {
		end := m[1]
		if end < len(doc) && doc[end] == '\n' {
			end++
		}
		hs = append(hs, heading{
			level: m[3] - m[2],
			label: strings.TrimSpace(doc[m[4]:m[5]]),
			start: m[0],
			end:   end,
		})
	}
	return hs
}

// looksLikeLanguage reports whether a heading label could name any language.
func looksLikeLanguage(label string) bool {
	return codeTemplateRe.MatchString(label) || languageLabelRe.MatchString(label)
}

// LocateSection returns the part of doc that belongs to lang: from its
// top-level heading up to the next language heading of the same or a higher
// rank, or to the end of the document. It returns "" when lang has no heading.
func LocateSection(doc string, lang Language) string {
	hs := scanHeadings(doc)

	for i, h := range hs {
		if !lang.matchesHeading(h.label) {
			continue
		}
		for _, next := range hs[i+1:] {
			if next.level <= h.level && looksLikeLanguage(next.label) {
				return doc[h.start:next.start]
			}
		}
		return doc[h.start:]
	}

	return ""
}

// subsection returns the body under the first heading of section whose
// cleaned label equals one of titles. The body ends at the next heading of the
// same or a higher rank.
func subsection(section string, titles ...string) (string, bool) {
	hs := scanHeadings(section)

	for i, h := range hs {
		if !labelIn(h.label, titles) {
			continue
		}
		for _, next := range hs[i+1:] {
			if next.level <= h.level {
				return section[h.end:next.start], true
			}
		}
		return section[h.end:], true
	}

	return "", false
}

func labelIn(label string, titles []string) bool {
	cleaned := Clean(label)
	for _, t := range titles {
		if strings.EqualFold(cleaned, t) {
			return true
		}
	}
	return false
}
