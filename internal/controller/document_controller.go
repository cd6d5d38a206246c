package controller

import (
	"case-governance-be/internal/dto"
	"case-governance-be/internal/pkg/serverutils"
	"case-governance-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
}

type documentController struct {
	retrievalService service.IRetrievalService
}

func NewDocumentController(retrievalService service.IRetrievalService) IDocumentController {
	return &documentController{
		retrievalService: retrievalService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Index)
}

func (c *documentController) Index(ctx *fiber.Ctx) error {
	var req dto.IndexDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.retrievalService.IndexDocument(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success index document", res))
}
