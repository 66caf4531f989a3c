// Package richtext maps the formatting markers of sanitized editor markup to a
// fixed visual contract shared by every render surface.
package richtext

// Surface names a place where document content is rendered.
type Surface string

const (
	SurfaceEditor Surface = "editor"
	SurfaceMobile Surface = "mobile"
	SurfaceViewer Surface = "viewer"
)

// Alignment is an explicit text alignment directive.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// Alignments lists every directive the contract honors.
var Alignments = []Alignment{AlignLeft, AlignCenter, AlignRight, AlignJustify}

// Inline format bitmask
const (
	FormatBold = 1 << iota
	FormatItalic
	FormatStrikethrough
	FormatUnderline
	FormatCode
	FormatSubscript
	FormatSuperscript
	FormatColor
	FormatBackground
	FormatLink
)

// Markers summarizes the semantic formatting found in a piece of markup.
// Slices are sorted and hold distinct values.
type Markers struct {
	HeadingLevels []int       `json:"heading_levels,omitempty"`
	IndentLevels  []int       `json:"indent_levels,omitempty"`
	Alignments    []Alignment `json:"alignments,omitempty"`
	OrderedLists  int         `json:"ordered_lists"`
	BulletLists   int         `json:"bullet_lists"`
	BlockQuotes   int         `json:"block_quotes"`
	Images        int         `json:"images"`
	RightToLeft   bool        `json:"right_to_left"`
	Format        int         `json:"format"`
}

// Has reports whether any of the given inline format bits were seen.
func (m Markers) Has(format int) bool {
	return m.Format&format != 0
}

// Normalized is markup paired with the markers the contract applies to it.
// The markup itself is never rewritten.
type Normalized struct {
	HTML    string  `json:"html"`
	Markers Markers `json:"markers"`
}
