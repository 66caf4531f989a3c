package controller

import (
	"codal-docs-be/internal/dto"
	"codal-docs-be/internal/pkg/serverutils"
	"codal-docs-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISubjectController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Refresh(ctx *fiber.Ctx) error
	GetSubtopics(ctx *fiber.Ctx) error
	AddSubtopic(ctx *fiber.Ctx) error
}

type subjectController struct {
	service service.ITaxonomyService
}

func NewSubjectController(service service.ITaxonomyService) ISubjectController {
	return &subjectController{service: service}
}

func (c *subjectController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/subject/v1")
	h.Get("", c.GetAll)
	h.Post("/refresh", c.Refresh)
	h.Get("/:subjectId/subtopics", c.GetSubtopics)
	h.Post("/:subjectId/subtopics", c.AddSubtopic)
}

func (c *subjectController) GetAll(ctx *fiber.Ctx) error {
	subjects, err := c.service.ListSubjects(ctx.UserContext())
	if err != nil {
		return err
	}

	res := dto.NewSubjectListResponse(subjects, c.service.DefaultSubject(subjects))
	return ctx.JSON(serverutils.SuccessResponse("Success get subjects", res))
}

func (c *subjectController) Refresh(ctx *fiber.Ctx) error {
	subjects, err := c.service.RefreshSubjects(ctx.UserContext())
	if err != nil {
		return err
	}

	res := dto.NewSubjectListResponse(subjects, c.service.DefaultSubject(subjects))
	return ctx.JSON(serverutils.SuccessResponse("Success refresh subjects", res))
}

func (c *subjectController) GetSubtopics(ctx *fiber.Ctx) error {
	subtopics, err := c.service.ListSubtopics(ctx.UserContext(), ctx.Params("subjectId"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get subtopics", dto.NewSubtopicResponses(subtopics)))
}

func (c *subjectController) AddSubtopic(ctx *fiber.Ctx) error {
	var req dto.AddSubtopicRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	subtopic, err := c.service.AddSubtopic(ctx.UserContext(), ctx.Params("subjectId"), req.Name)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success add subtopic", dto.NewSubtopicResponse(subtopic)))
}
