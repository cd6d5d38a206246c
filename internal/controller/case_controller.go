package controller

import (
	"case-governance-be/internal/dto"
	"case-governance-be/internal/pkg/serverutils"
	"case-governance-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICaseController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	UpdateConsent(ctx *fiber.Ctx) error
	Transfer(ctx *fiber.Ctx) error
}

type caseController struct {
	caseService service.ICaseService
}

func NewCaseController(caseService service.ICaseService) ICaseController {
	return &caseController{
		caseService: caseService,
	}
}

func (c *caseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/case/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id/consent", c.UpdateConsent)
	h.Post(":id/transfer", c.Transfer)
}

func (c *caseController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCaseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.caseService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create case", res))
}

func (c *caseController) Show(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.caseService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *caseController) UpdateConsent(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateConsentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.caseService.UpdateConsent(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update consent", res))
}

func (c *caseController) Transfer(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.caseService.Transfer(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Transfer evaluated", res))
}
