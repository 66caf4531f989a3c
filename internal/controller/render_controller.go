package controller

import (
	"codal-docs-be/internal/dto"
	"codal-docs-be/internal/pkg/serverutils"
	"codal-docs-be/internal/render"

	"github.com/gofiber/fiber/v2"
)

type IRenderController interface {
	RegisterRoutes(r fiber.Router)
	Preview(ctx *fiber.Ctx) error
	Contract(ctx *fiber.Ctx) error
}

type renderController struct {
	pipeline *render.Pipeline
}

func NewRenderController(pipeline *render.Pipeline) IRenderController {
	return &renderController{pipeline: pipeline}
}

func (c *renderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/render/v1")
	h.Post("/preview", c.Preview)
	h.Get("/contract", c.Contract)
}

func (c *renderController) Preview(ctx *fiber.Ctx) error {
	var req dto.RenderPreviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	views, err := c.pipeline.Render(req.Title, req.ContentHtml, req.SurfaceList()...)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success render preview", views))
}

func (c *renderController) Contract(ctx *fiber.Ctx) error {
	contract := c.pipeline.Contract()
	res := dto.RenderContractResponse{
		Contract:    contract,
		Stylesheets: make(map[string]string, len(contract.Profiles)),
	}
	for _, s := range contract.Surfaces() {
		css, _ := c.pipeline.Stylesheet(s)
		res.Stylesheets[string(s)] = css
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get render contract", res))
}
