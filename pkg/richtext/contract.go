package richtext

// Profile describes the layout constraints of one render surface.
type Profile struct {
	Surface      Surface `json:"surface"`
	ContentWidth int     `json:"content_width_px"`
	// Mobile preview centers and upper-cases the top two heading levels
	// unless an explicit alignment says otherwise.
	EmphasizedHeadings bool `json:"emphasized_headings"`
}

// Contract is the surface independent mapping from formatting markers to
// visual properties. Surfaces consume it; none of them redefine it.
type Contract struct {
	HeadingSizes [6]float64 `json:"heading_sizes_rem"`
	IndentStep   float64    `json:"indent_step_em"`
	MaxIndent    int        `json:"max_indent"`
	QuoteBorder  int        `json:"quote_border_px"`
	Profiles     []Profile  `json:"profiles"`
}

// DefaultContract is the contract every surface in the service renders with.
func DefaultContract() Contract {
	return Contract{
		HeadingSizes: [6]float64{2.0, 1.75, 1.5, 1.25, 1.1, 1.0},
		IndentStep:   3,
		MaxIndent:    8,
		QuoteBorder:  4,
		Profiles: []Profile{
			{Surface: SurfaceEditor, ContentWidth: 720},
			{Surface: SurfaceMobile, ContentWidth: 375, EmphasizedHeadings: true},
			{Surface: SurfaceViewer, ContentWidth: 960},
		},
	}
}

// HeadingSize returns the font size in rem for heading levels 1 through 6.
func (c Contract) HeadingSize(level int) (float64, bool) {
	if level < 1 || level > len(c.HeadingSizes) {
		return 0, false
	}
	return c.HeadingSizes[level-1], true
}

// IndentOffset returns the left offset in em for an indentation level.
// Levels above MaxIndent are clamped, levels below 1 have no offset.
func (c Contract) IndentOffset(level int) float64 {
	if level < 1 {
		return 0
	}
	if level > c.MaxIndent {
		level = c.MaxIndent
	}
	return float64(level) * c.IndentStep
}

// Profile looks up the layout of a surface.
func (c Contract) Profile(s Surface) (Profile, bool) {
	for _, p := range c.Profiles {
		if p.Surface == s {
			return p, true
		}
	}
	return Profile{}, false
}

// Surfaces lists the known surfaces in declaration order.
func (c Contract) Surfaces() []Surface {
	out := make([]Surface, 0, len(c.Profiles))
	for _, p := range c.Profiles {
		out = append(out, p.Surface)
	}
	return out
}
