package controller

import (
	"case-governance-be/internal/dto"
	"case-governance-be/internal/pkg/serverutils"
	"case-governance-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuditController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type auditController struct {
	auditService service.IAuditService
}

func NewAuditController(auditService service.IAuditService) IAuditController {
	return &auditController{
		auditService: auditService,
	}
}

func (c *auditController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/audit/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
}

func (c *auditController) List(ctx *fiber.Ctx) error {
	var req dto.ListAuditEventsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.auditService.List(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}
