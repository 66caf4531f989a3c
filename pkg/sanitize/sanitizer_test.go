package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeStripsScripts(t *testing.T) {
	got := HTML("<p>Hello <script>x</script></p>")
	assert.Equal(t, "<p>Hello </p>", got)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		contains    []string
		notContains []string
	}{
		{
			name:        "event handler attribute",
			input:       `<img src="/a.png" onerror="alert(1)">`,
			contains:    []string{`src="/a.png"`},
			notContains: []string{"onerror", "alert"},
		},
		{
			name:        "javascript link",
			input:       `<a href="javascript:alert(1)">click</a>`,
			contains:    []string{"click"},
			notContains: []string{"javascript", "href"},
		},
		{
			name:     "safe link",
			input:    `<a href="https://example.com/x">site</a>`,
			contains: []string{`href="https://example.com/x"`, "site"},
		},
		{
			name:     "data uri image",
			input:    `<img src="data:image/png;base64,iVBORw0KGgo=">`,
			contains: []string{`src="data:image/png;base64,iVBORw0KGgo="`},
		},
		{
			name:        "style element",
			input:       `<style>body{display:none}</style><p>ok</p>`,
			contains:    []string{"<p>ok</p>"},
			notContains: []string{"display"},
		},
		{
			name:     "editor classes kept",
			input:    `<p class="ql-align-center ql-indent-2">x</p>`,
			contains: []string{`class="ql-align-center ql-indent-2"`},
		},
		{
			name:        "foreign classes dropped",
			input:       `<p class="evil ql-indent-1">x</p>`,
			contains:    []string{"<p>x</p>"},
			notContains: []string{"evil"},
		},
		{
			name:     "headings lists and tables",
			input:    `<h1>A</h1><h6>B</h6><ol><li>1</li></ol><ul><li>2</li></ul><table><tbody><tr><td>c</td></tr></tbody></table>`,
			contains: []string{"<h1>A</h1>", "<h6>B</h6>", "<ol><li>1</li></ol>", "<ul><li>2</li></ul>", "<td>c</td>"},
		},
		{
			name:     "sub and superscript",
			input:    `<p>H<sub>2</sub>O x<sup>2</sup></p>`,
			contains: []string{"<sub>2</sub>", "<sup>2</sup>"},
		},
		{
			name:        "iframe embed dropped",
			input:       `<iframe src="https://evil.example"></iframe><p>t</p>`,
			contains:    []string{"<p>t</p>"},
			notContains: []string{"iframe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HTML(tt.input)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestSanitizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text & more",
		"<p>Hello <script>x</script></p>",
		`<p class="ql-align-right">a &lt; b</p>`,
		`<span style="color: #e60000">red</span>`,
		`<a href="https://example.com/?a=1&b=2" target="_blank" rel="noopener noreferrer">q</a>`,
		`<img src="https://example.com/a.png" alt="pic" onload="x()">`,
		`<blockquote>quote</blockquote><pre class="ql-syntax" spellcheck="false">code</pre>`,
		`<p><b>unclosed <i>tags</p>`,
	}

	for _, in := range inputs {
		once := HTML(in)
		assert.Equal(t, once, HTML(once), "input %q", in)
	}
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		input string
		want  string
		blank bool
	}{
		{input: "<p>Hello <b>World</b></p>", want: "Hello World"},
		{input: "<p><br></p>", want: "", blank: true},
		{input: "<p>&nbsp;</p>", want: " ", blank: true},
		{input: "<script>alert(1)</script>", want: "", blank: true},
		{input: "<p>a &amp; b</p>", want: "a & b"},
		{input: "", want: "", blank: true},
		{input: `<img src="x.png">`, want: "", blank: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMarkup(tt.input))
			assert.Equal(t, tt.blank, IsBlank(tt.input))
		})
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "Hello World", Excerpt("<p>Hello</p>\n<p>World</p>", 100))
	assert.Equal(t, "abc...", Excerpt("<p>abcdef</p>", 3))
	assert.Equal(t, "abcdef", Excerpt("<p>abcdef</p>", 0))
}
