package richtext

import (
	"fmt"
	"strconv"
	"strings"
)

// Stylesheet renders the contract as CSS scoped to ".surface-<name>".
//
// Alignment rules use two class selectors and are emitted after the heading
// rules, so an explicit ql-align-* always beats a surface default such as the
// centered mobile headings.
func (c Contract) Stylesheet(s Surface) string {
	p, ok := c.Profile(s)
	if !ok {
		return ""
	}
	scope := ".surface-" + string(s)

	var sb strings.Builder
	rule := func(selector, body string) {
		fmt.Fprintf(&sb, "%s %s { %s }\n", scope, selector, body)
	}

	fmt.Fprintf(&sb, "%s { max-width: %dpx; margin: 0 auto; overflow-wrap: break-word; }\n", scope, p.ContentWidth)

	for i, size := range c.HeadingSizes {
		rule(fmt.Sprintf("h%d", i+1), fmt.Sprintf("font-size: %srem; font-weight: bold;", formatFloat(size)))
	}
	if p.EmphasizedHeadings {
		fmt.Fprintf(&sb, "%s h1, %s h2 { text-align: center; text-transform: uppercase; }\n", scope, scope)
	}

	rule("ol, "+scope+" ul", "padding-left: 1.5em;")
	rule(`li[data-list="bullet"]`, "list-style-type: disc;")
	rule(`li[data-list="ordered"]`, "list-style-type: decimal;")
	rule("blockquote", fmt.Sprintf("border-left: %dpx solid #ccc; margin: 5px 0; padding-left: 16px;", c.QuoteBorder))
	rule("sub", "vertical-align: sub; font-size: smaller;")
	rule("sup", "vertical-align: super; font-size: smaller;")
	rule("img", "max-width: 100%; height: auto;")
	rule(".ql-size-small", "font-size: 0.75em;")
	rule(".ql-size-large", "font-size: 1.5em;")
	rule(".ql-size-huge", "font-size: 2.5em;")
	rule(".ql-direction-rtl", "direction: rtl;")

	for level := 1; level <= c.MaxIndent; level++ {
		offset := formatFloat(c.IndentOffset(level))
		rule(fmt.Sprintf(".ql-indent-%d", level), fmt.Sprintf("padding-left: %sem;", offset))
		rule(fmt.Sprintf(".ql-direction-rtl.ql-indent-%d", level), fmt.Sprintf("padding-left: 0; padding-right: %sem;", offset))
	}

	for _, a := range Alignments {
		rule(".ql-align-"+string(a), "text-align: "+string(a)+";")
	}

	return sb.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
