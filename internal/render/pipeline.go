// Package render turns stored document content into the views the editor
// preview, mobile preview and viewer display.
package render

import (
	"fmt"
	"html"

	"codal-docs-be/internal/apperror"
	"codal-docs-be/pkg/richtext"
	"codal-docs-be/pkg/sanitize"
)

// View is one surface's copy of a document, ready for layout.
type View struct {
	Surface    richtext.Surface `json:"surface"`
	Title      string           `json:"title"`
	HTML       string           `json:"html"`
	Fragment   string           `json:"fragment"`
	Stylesheet string           `json:"stylesheet"`
	Width      int              `json:"content_width_px"`
	Markers    richtext.Markers `json:"markers"`
}

// Pipeline sanitizes, normalizes and fans content out to surfaces. Content
// is sanitized on every render, even when it was sanitized at save time.
type Pipeline struct {
	sanitizer   *sanitize.Sanitizer
	contract    richtext.Contract
	stylesheets map[richtext.Surface]string
}

func NewPipeline(sanitizer *sanitize.Sanitizer, contract richtext.Contract) *Pipeline {
	sheets := make(map[richtext.Surface]string, len(contract.Profiles))
	for _, s := range contract.Surfaces() {
		sheets[s] = contract.Stylesheet(s)
	}
	return &Pipeline{
		sanitizer:   sanitizer,
		contract:    contract,
		stylesheets: sheets,
	}
}

// Default uses the process-wide sanitizer and the default contract.
func Default() *Pipeline {
	return NewPipeline(sanitize.Default(), richtext.DefaultContract())
}

func (p *Pipeline) Contract() richtext.Contract {
	return p.contract
}

func (p *Pipeline) Stylesheet(s richtext.Surface) (string, bool) {
	css, ok := p.stylesheets[s]
	return css, ok
}

// Render produces one view per requested surface, or one per known surface
// when none are named. Every view carries the same sanitized markup.
func (p *Pipeline) Render(title, markup string, surfaces ...richtext.Surface) ([]View, error) {
	if len(surfaces) == 0 {
		surfaces = p.contract.Surfaces()
	}

	normalized := richtext.Normalize(p.sanitizer.Sanitize(markup))
	escaped := html.EscapeString(title)

	views := make([]View, 0, len(surfaces))
	for _, s := range surfaces {
		profile, ok := p.contract.Profile(s)
		if !ok {
			return nil, apperror.Validation("surfaces", fmt.Sprintf("unknown surface %q", s))
		}
		views = append(views, View{
			Surface:    s,
			Title:      escaped,
			HTML:       normalized.HTML,
			Fragment:   fragment(s, escaped, normalized.HTML),
			Stylesheet: p.stylesheets[s],
			Width:      profile.ContentWidth,
			Markers:    normalized.Markers,
		})
	}
	return views, nil
}

func fragment(s richtext.Surface, title, body string) string {
	return fmt.Sprintf(`<article class="surface-%s"><header class="document-title">%s</header>%s</article>`, s, title, body)
}
