package controller

import (
	"codal-docs-be/internal/dto"
	"codal-docs-be/internal/pkg/serverutils"
	"codal-docs-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IArticleController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type articleController struct {
	service service.IArticleService
}

func NewArticleController(service service.IArticleService) IArticleController {
	return &articleController{service: service}
}

func (c *articleController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/article/v1")
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func (c *articleController) GetAll(ctx *fiber.Ctx) error {
	articles, err := c.service.List(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get articles", dto.NewArticleResponses(articles)))
}

func (c *articleController) Show(ctx *fiber.Ctx) error {
	article, err := c.service.Get(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show article", dto.NewArticleResponse(article)))
}

func (c *articleController) Create(ctx *fiber.Ctx) error {
	var req dto.ArticleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	article, err := c.service.Create(ctx.UserContext(), toArticleInput(req))
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create article", dto.NewArticleResponse(article)))
}

func (c *articleController) Update(ctx *fiber.Ctx) error {
	var req dto.ArticleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	article, err := c.service.Update(ctx.UserContext(), ctx.Params("id"), toArticleInput(req))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update article", dto.NewArticleResponse(article)))
}

func (c *articleController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.UserContext(), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete article", nil))
}

func toArticleInput(req dto.ArticleRequest) service.ArticleInput {
	return service.ArticleInput{
		Title:       req.Title,
		Author:      req.Author,
		ContentHtml: req.ContentHtml,
	}
}
