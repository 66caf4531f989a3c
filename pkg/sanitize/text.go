package sanitize

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// StripMarkup returns the text content of markup with tags removed and
// entities decoded. Script and style bodies are not text.
func StripMarkup(markup string) string {
	if markup == "" {
		return ""
	}

	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(markup))
	skipDepth := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or malformed input; either way the text so far is the result
			return sb.String()

		case html.StartTagToken:
			name, _ := z.TagName()
			if isRawText(string(name)) {
				skipDepth++
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if isRawText(string(name)) && skipDepth > 0 {
				skipDepth--
			}

		case html.TextToken:
			if skipDepth == 0 {
				sb.Write(z.Text())
			}
		}
	}
}

// IsBlank reports whether markup carries no visible text once stripped.
// Whitespace includes non-breaking spaces, so "<p>&nbsp;</p>" and the
// editor's empty "<p><br></p>" are both blank.
func IsBlank(markup string) bool {
	return strings.TrimFunc(StripMarkup(markup), unicode.IsSpace) == ""
}

// Excerpt returns the first limit runes of the collapsed plain text, with
// "..." appended when the text was truncated.
func Excerpt(markup string, limit int) string {
	text := strings.Join(strings.FieldsFunc(StripMarkup(markup), unicode.IsSpace), " ")
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}

func isRawText(tag string) bool {
	return tag == "script" || tag == "style"
}
