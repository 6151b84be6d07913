package lexicon

import (
	"html"
	"regexp"
	"strings"
)

// maxTemplatePasses caps nested template removal. Each pass strips one level.
const maxTemplatePasses = 16

var (
	mediaLinkRe    = regexp.MustCompile(`(?i)\[\[\s*(?:файл|file|image|изображение|категория|category)\s*:[^\]]*\]\]`)
	wikiLinkRe     = regexp.MustCompile(`\[\[(?:[^\]]*\|)?([^|\]]*)\]\]`)
	extLinkLabelRe = regexp.MustCompile(`\[(?:https?:)?//[^\s\]]+\s+([^\]]*)\]`)
	extLinkBareRe  = regexp.MustCompile(`\[(?:https?:)?//[^\s\]]*\]`)
	nakedURLRe     = regexp.MustCompile(`https?://[^\s\]|}]+`)
	templateRe     = regexp.MustCompile(`\{\{[^{}]*\}\}`)
	openTemplateRe = regexp.MustCompile(`\{\{[^{}]*$`)
	tailTemplateRe = regexp.MustCompile(`^[^{}]*\}\}`)
	commentRe      = regexp.MustCompile(`(?s)<!--.*?(?:-->|$)`)
	refRe          = regexp.MustCompile(`(?is)<ref[^>]*?/>|<ref[^>]*>.*?</ref>`)
	htmlTagRe      = regexp.MustCompile(`<[^>]*>`)
	emphasisRe     = regexp.MustCompile(`'{2,}`)
	listMarkerRe   = regexp.MustCompile(`(?m)^[ \t]*[#*:;]+[ \t]*`)
	whitespaceRe   = regexp.MustCompile(`[\s\p{Zs}]+`)
)

// Clean strips wiki markup from a single line or fragment and returns plain
// prose. It must not be applied to a whole section: list markers are only
// recognised at line starts.
func Clean(s string) string {
	if s == "" {
		return ""
	}

	// Media and category links carry no prose. Otherwise the last segment wins:
	// [[target|label]] → label, [[target]] → target.
	s = mediaLinkRe.ReplaceAllString(s, "")
	s = wikiLinkRe.ReplaceAllString(s, "$1")

	// [url label] → label; [url] and naked URLs are dropped.
	s = extLinkLabelRe.ReplaceAllString(s, "$1")
	s = extLinkBareRe.ReplaceAllString(s, "")
	s = nakedURLRe.ReplaceAllString(s, "")

	s = stripTemplates(s)

	s = commentRe.ReplaceAllString(s, "")
	s = refRe.ReplaceAllString(s, "")
	s = htmlTagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	s = emphasisRe.ReplaceAllString(s, "")
	s = listMarkerRe.ReplaceAllString(s, "")

	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// stripTemplates removes {{...}} spans innermost first until nothing changes,
// then drops halves of templates that continue on another line.
func stripTemplates(s string) string {
	for range maxTemplatePasses {
		next := templateRe.ReplaceAllString(s, "")
		if next == s {
			break
		}
		s = next
	}
	s = openTemplateRe.ReplaceAllString(s, "")
	return tailTemplateRe.ReplaceAllString(s, "")
}
