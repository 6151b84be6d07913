package wiktionary

import "net/url"

// strategy is one way of retrieving an article's wikitext from the MediaWiki API.
type strategy struct {
	name string
	// params builds the query string for a title.
	params func(title string) url.Values
	// contentPath is the gjson path of the wikitext inside the response envelope.
	contentPath string
}

// parseStrategy asks the parser for the article wikitext (follows redirects).
var parseStrategy = strategy{
	name: "parse",
	params: func(title string) url.Values {
		return url.Values{
			"action":        {"parse"},
			"page":          {title},
			"prop":          {"wikitext"},
			"redirects":     {"1"},
			"format":        {"json"},
			"formatversion": {"2"},
		}
	},
	contentPath: "parse.wikitext",
}

// revisionStrategy reads the raw content of the latest revision.
var revisionStrategy = strategy{
	name: "revision",
	params: func(title string) url.Values {
		return url.Values{
			"action":        {"query"},
			"prop":          {"revisions"},
			"rvprop":        {"content"},
			"rvslots":       {"main"},
			"titles":        {title},
			"redirects":     {"1"},
			"format":        {"json"},
			"formatversion": {"2"},
		}
	},
	contentPath: "query.pages.0.revisions.0.slots.main.content",
}

// defaultStrategies are tried in order until one yields a document.
var defaultStrategies = []strategy{parseStrategy, revisionStrategy}
