package controller

import (
	"case-governance-be/internal/dto"
	"case-governance-be/internal/pkg/serverutils"
	"case-governance-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDraftController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Generate(ctx *fiber.Ctx) error
	CheckPolicy(ctx *fiber.Ctx) error
	Sign(ctx *fiber.Ctx) error
	WriteBack(ctx *fiber.Ctx) error
	Archive(ctx *fiber.Ctx) error
}

type draftController struct {
	draftService service.IDraftService
}

func NewDraftController(draftService service.IDraftService) IDraftController {
	return &draftController{
		draftService: draftService,
	}
}

func (c *draftController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/draft/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Post(":id/generate", c.Generate)
	h.Post(":id/check-policy", c.CheckPolicy)
	h.Post(":id/sign", c.Sign)
	h.Post(":id/write-back", c.WriteBack)
	h.Post(":id/archive", c.Archive)
}

func (c *draftController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.draftService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create draft", res))
}

func (c *draftController) Show(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.draftService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *draftController) Generate(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.draftService.Generate(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate draft", res))
}

func (c *draftController) CheckPolicy(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.draftService.CheckPolicy(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Policy check complete", res))
}

func (c *draftController) Sign(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	signedBy, _ := ctx.Locals("clinician_email").(string)
	if signedBy == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "missing clinician identity")
	}

	res, err := c.draftService.Sign(ctx.Context(), id, signedBy)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Sign evaluated", res))
}

func (c *draftController) WriteBack(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.draftService.WriteBack(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Write-back evaluated", res))
}

func (c *draftController) Archive(ctx *fiber.Ctx) error {
	id, err := parseIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.draftService.Archive(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Archive evaluated", res))
}

func parseIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return id, nil
}
