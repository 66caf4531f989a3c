package controller

import (
	"codal-docs-be/internal/dto"
	"codal-docs-be/internal/pkg/serverutils"
	"codal-docs-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type documentController struct {
	service service.IDocumentService
}

func NewDocumentController(service service.IDocumentService) IDocumentController {
	return &documentController{service: service}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func (c *documentController) GetAll(ctx *fiber.Ctx) error {
	var query dto.DocumentListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}

	docs, err := c.service.List(ctx.UserContext(), query.Filter())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get documents", dto.NewDocumentSummaries(docs)))
}

func (c *documentController) Show(ctx *fiber.Ctx) error {
	doc, err := c.service.Get(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show document", dto.NewDocumentResponse(doc)))
}

func (c *documentController) Create(ctx *fiber.Ctx) error {
	var req dto.DocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	doc, err := c.service.Create(ctx.UserContext(), req.Draft())
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create document", dto.NewDocumentResponse(doc)))
}

func (c *documentController) Update(ctx *fiber.Ctx) error {
	var req dto.DocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	doc, err := c.service.Update(ctx.UserContext(), ctx.Params("id"), req.Draft())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update document", dto.NewDocumentResponse(doc)))
}

func (c *documentController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Remove(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete document", nil))
}
