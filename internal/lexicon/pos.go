package lexicon

import (
	"regexp"
	"strings"
)

// metaLabels are subheadings at part-of-speech level that describe the word
// rather than name its part of speech. The list is open: unknown labels are
// treated as parts of speech.
var metaLabels = []string{
	"морфологические и синтаксические свойства",
	"морфологические свойства",
	"синтаксические свойства",
	"семантические свойства",
	"произношение",
	"этимология",
	"родственные слова",
	"фразеологизмы и устойчивые сочетания",
	"перевод",
	"библиография",
	"анаграммы",
	"morphological and syntactic properties",
	"semantic properties",
	"pronunciation",
	"etymology",
	"alternative forms",
	"alternative spellings",
	"anagrams",
	"references",
	"further reading",
	"see also",
	"translations",
	"related terms",
	"derived terms",
	"descendants",
}

// isMetaLabel matches labels by prefix so that numbered variants such as
// "Etymology 2" are also skipped.
func isMetaLabel(label string) bool {
	label = strings.ToLower(Clean(label))
	for _, m := range metaLabels {
		if strings.HasPrefix(label, m) {
			return true
		}
	}
	return false
}

// posTemplateRe captures the name and language code of a morphology template
// such as {{сущ ru m ina 1a|основа=дом}}.
var posTemplateRe = regexp.MustCompile(`\{\{\s*([^\s|{}]+)\s+([a-z]{2,3})\b`)

// posTemplates maps morphology template names to part-of-speech labels.
var posTemplates = map[string]string{
	"сущ":    "Существительное",
	"гл":     "Глагол",
	"прил":   "Прилагательное",
	"adv":    "Наречие",
	"нар":    "Наречие",
	"мест":   "Местоимение",
	"числ":   "Числительное",
	"prep":   "Предлог",
	"conj":   "Союз",
	"interj": "Междометие",
	"part":   "Частица",
	"predic": "Предикатив",
	"прич":   "Причастие",
	"деепр":  "Деепричастие",
}

// posFromTemplates derives a part of speech from the first morphology
// template in body that is tagged with the language code.
func posFromTemplates(body string, lang Language) string {
	for _, m := range posTemplateRe.FindAllStringSubmatch(body, -1) {
		if m[2] != lang.Code {
			continue
		}
		if pos, ok := posTemplates[strings.ToLower(m[1])]; ok {
			return pos
		}
	}
	return ""
}
