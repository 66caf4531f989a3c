// Package sanitize removes executable and data-exfiltrating constructs from
// author supplied rich text while keeping the formatting structure intact.
package sanitize

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// editorClass matches the formatting classes emitted by the rich text editor
// (ql-align-center, ql-indent-3, ql-direction-rtl, ql-size-large, ...).
var editorClass = regexp.MustCompile(`^(ql-[a-z0-9-]+)(\s+ql-[a-z0-9-]+)*$`)

var (
	blockElements = []string{
		"p", "div", "span", "br", "hr", "pre", "code", "blockquote",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"figure", "figcaption",
	}
	inlineElements = []string{
		"strong", "b", "em", "i", "u", "s", "strike", "del", "ins",
		"sub", "sup", "small", "mark",
	}
	listElements  = []string{"ol", "ul", "li"}
	tableElements = []string{
		"table", "caption", "colgroup", "col", "thead", "tbody", "tfoot", "tr", "th", "td",
	}
)

// Sanitizer applies a fixed allow-list policy. It holds no mutable state and
// is safe for concurrent use.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// New builds the allow-list policy shared by every render surface.
func New() *Sanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements(blockElements...)
	p.AllowElements(inlineElements...)
	p.AllowElements(listElements...)
	p.AllowElements(tableElements...)

	p.AllowAttrs("class").Matching(editorClass).Globally()
	p.AllowAttrs("dir").Matching(regexp.MustCompile(`^(ltr|rtl|auto)$`)).Globally()
	p.AllowStyles("color", "background-color", "text-align", "direction").Globally()

	p.AllowAttrs("data-list").Matching(regexp.MustCompile(`^(bullet|ordered|checked|unchecked)$`)).OnElements("li")
	p.AllowAttrs("start").Matching(bluemonday.Integer).OnElements("ol")
	p.AllowAttrs("colspan", "rowspan").Matching(bluemonday.Integer).OnElements("td", "th")
	p.AllowAttrs("spellcheck").Matching(regexp.MustCompile(`^(true|false)$`)).OnElements("pre")

	p.AllowURLSchemes("http", "https", "mailto", "tel")
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("title").OnElements("a", "img")
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.AllowAttrs("rel").Matching(regexp.MustCompile(`^(noopener|noreferrer|nofollow)( (noopener|noreferrer|nofollow))*$`)).OnElements("a")
	p.AllowElements("a")

	p.AllowImages()
	p.AllowDataURIImages()
	p.AllowAttrs("width", "height").Matching(bluemonday.NumberOrPercent).OnElements("img")

	return &Sanitizer{policy: p}
}

// Sanitize returns the markup with every disallowed element, attribute and
// URL scheme removed. Script and style bodies are dropped with their tags.
// Sanitize(Sanitize(x)) == Sanitize(x).
func (s *Sanitizer) Sanitize(markup string) string {
	if markup == "" {
		return ""
	}
	return s.policy.Sanitize(markup)
}

var (
	defaultOnce      sync.Once
	defaultSanitizer *Sanitizer
)

// Default returns the process-wide sanitizer.
func Default() *Sanitizer {
	defaultOnce.Do(func() {
		defaultSanitizer = New()
	})
	return defaultSanitizer
}

// HTML sanitizes markup with the default policy.
func HTML(markup string) string {
	return Default().Sanitize(markup)
}
