package lexicon

import (
	"regexp"
	"strings"
)

// template is one outermost {{name|param|...}} invocation.
type template struct {
	name   string
	params []string
	start  int
	end    int
}

var namedParamRe = regexp.MustCompile(`^\s*([\p{L}\d_ -]+?)\s*=`)

// findTemplates returns the outermost templates of s in order. An unterminated
// template stops the scan.
func findTemplates(s string) []template {
	var out []template
	for i := 0; i+1 < len(s); {
		if s[i] != '{' || s[i+1] != '{' {
			i++
			continue
		}
		end := matchBraces(s, i)
		if end < 0 {
			break
		}
		parts := splitTopLevel(s[i+2 : end-2])
		out = append(out, template{
			name:   strings.ToLower(strings.TrimSpace(parts[0])),
			params: parts[1:],
			start:  i,
			end:    end,
		})
		i = end
	}
	return out
}

// matchBraces returns the offset just past the "}}" closing the template that
// opens at i, or -1.
func matchBraces(s string, i int) int {
	depth := 0
	for j := i; j+1 < len(s); {
		switch {
		case s[j] == '{' && s[j+1] == '{':
			depth++
			j += 2
		case s[j] == '}' && s[j+1] == '}':
			depth--
			j += 2
			if depth == 0 {
				return j
			}
		default:
			j++
		}
	}
	return -1
}

// splitTopLevel splits s on pipes that are not nested in templates or links.
func splitTopLevel(s string) []string {
	var parts []string
	depth, last := 0, 0
	for j := 0; j < len(s); j++ {
		pair := ""
		if j+1 < len(s) {
			pair = s[j : j+2]
		}
		switch {
		case pair == "{{" || pair == "[[":
			depth++
			j++
		case pair == "}}" || pair == "]]":
			if depth > 0 {
				depth--
			}
			j++
		case s[j] == '|' && depth == 0:
			parts = append(parts, s[last:j])
			last = j + 1
		}
	}
	return append(parts, s[last:])
}

// positional returns the n-th unnamed parameter (0-based).
func (t template) positional(n int) string {
	for _, p := range t.params {
		if namedParamRe.MatchString(p) {
			continue
		}
		if n == 0 {
			return p
		}
		n--
	}
	return ""
}

// named returns the value of the first parameter called name.
func (t template) named(name string) string {
	for _, p := range t.params {
		m := namedParamRe.FindStringSubmatch(p)
		if m != nil && strings.EqualFold(m[1], name) {
			return p[len(m[0]):]
		}
	}
	return ""
}

// exampleTemplates maps usage-example template names to the position of the
// example text among their unnamed parameters.
var exampleTemplates = map[string]int{
	"пример":  0,
	"ux":      1,
	"uxi":     1,
	"usex":    1,
	"ux-lite": 1,
}

// exampleText returns the example sentence carried by t, if t is an example template.
func (t template) exampleText() (string, bool) {
	pos, ok := exampleTemplates[t.name]
	if !ok {
		return "", false
	}
	text := t.positional(pos)
	if strings.TrimSpace(text) == "" {
		text = t.named("текст")
	}
	return text, true
}

// unwrapExamples replaces every example template in line with its sentence so
// that Clean keeps the sentence instead of dropping the whole template.
func unwrapExamples(line string) string {
	ts := findTemplates(line)
	if len(ts) == 0 {
		return line
	}

	var b strings.Builder
	last := 0
	for _, t := range ts {
		text, ok := t.exampleText()
		if !ok {
			continue
		}
		b.WriteString(line[last:t.start])
		b.WriteString(text)
		last = t.end
	}
	b.WriteString(line[last:])
	return b.String()
}

// inlineExamples returns the sentences of all example templates in line.
func inlineExamples(line string) []string {
	var out []string
	for _, t := range findTemplates(line) {
		if text, ok := t.exampleText(); ok {
			out = append(out, text)
		}
	}
	return out
}
