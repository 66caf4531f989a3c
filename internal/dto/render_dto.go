package dto

import "codal-docs-be/pkg/richtext"

type RenderPreviewRequest struct {
	Title       string   `json:"title" validate:"max=255"`
	ContentHtml string   `json:"content_html"`
	Surfaces    []string `json:"surfaces" validate:"omitempty,dive,oneof=editor mobile viewer"`
}

func (r *RenderPreviewRequest) SurfaceList() []richtext.Surface {
	out := make([]richtext.Surface, len(r.Surfaces))
	for i, s := range r.Surfaces {
		out[i] = richtext.Surface(s)
	}
	return out
}

type RenderContractResponse struct {
	Contract    richtext.Contract `json:"contract"`
	Stylesheets map[string]string `json:"stylesheets"`
}
