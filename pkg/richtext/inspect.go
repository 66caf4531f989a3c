package richtext

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Inspect walks the markup and collects its formatting markers.
func Inspect(markup string) Markers {
	var m Markers
	if markup == "" {
		return m
	}

	headings := map[int]struct{}{}
	indents := map[int]struct{}{}
	aligns := map[Alignment]struct{}{}
	openOrdered := false

	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if openOrdered {
				m.OrderedLists++
			}
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		tok := z.Token()
		switch tok.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			headings[int(tok.Data[1]-'0')] = struct{}{}
		case "ol":
			// the editor emits <ol> for both kinds and marks bullets on the items
			openOrdered = true
		case "ul":
			m.BulletLists++
		case "li":
			if openOrdered {
				if attr(tok, "data-list") == "bullet" {
					m.BulletLists++
				} else {
					m.OrderedLists++
				}
				openOrdered = false
			}
		case "blockquote":
			m.BlockQuotes++
		case "img":
			m.Images++
		case "sub":
			m.Format |= FormatSubscript
		case "sup":
			m.Format |= FormatSuperscript
		case "strong", "b":
			m.Format |= FormatBold
		case "em", "i":
			m.Format |= FormatItalic
		case "u":
			m.Format |= FormatUnderline
		case "s", "strike", "del":
			m.Format |= FormatStrikethrough
		case "code", "pre":
			m.Format |= FormatCode
		case "a":
			m.Format |= FormatLink
		}

		for _, class := range strings.Fields(attr(tok, "class")) {
			switch {
			case strings.HasPrefix(class, "ql-align-"):
				a := Alignment(strings.TrimPrefix(class, "ql-align-"))
				if slices.Contains(Alignments, a) {
					aligns[a] = struct{}{}
				}
			case strings.HasPrefix(class, "ql-indent-"):
				if n, err := strconv.Atoi(strings.TrimPrefix(class, "ql-indent-")); err == nil && n > 0 {
					indents[n] = struct{}{}
				}
			case class == "ql-direction-rtl":
				m.RightToLeft = true
			}
		}
		if attr(tok, "dir") == "rtl" {
			m.RightToLeft = true
		}

		style := ParseStyle(attr(tok, "style"))
		if a, ok := style.Alignment(); ok {
			aligns[a] = struct{}{}
		}
		if _, ok := style["color"]; ok {
			m.Format |= FormatColor
		}
		if _, ok := style["background-color"]; ok {
			m.Format |= FormatBackground
		}
		if style["direction"] == "rtl" {
			m.RightToLeft = true
		}
	}

	m.HeadingLevels = sortedKeys(headings)
	m.IndentLevels = sortedKeys(indents)
	for _, a := range Alignments {
		if _, ok := aligns[a]; ok {
			m.Alignments = append(m.Alignments, a)
		}
	}
	return m
}

// Normalize pairs markup with its markers. The markup is returned unchanged;
// the visual mapping lives in the Contract.
func Normalize(markup string) Normalized {
	return Normalized{HTML: markup, Markers: Inspect(markup)}
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func sortedKeys(set map[int]struct{}) []int {
	if len(set) == 0 {
		return nil
	}
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
