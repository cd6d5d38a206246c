package controller

import (
	"case-governance-be/internal/dto"
	"case-governance-be/internal/pkg/serverutils"
	"case-governance-be/internal/service"
	"case-governance-be/pkg/risk"
	"case-governance-be/pkg/workflow"

	"github.com/gofiber/fiber/v2"
)

// IGovernanceController exposes the policy checks directly, so operators and
// integrating systems can evaluate a gate without driving the full workflow.
type IGovernanceController interface {
	RegisterRoutes(r fiber.Router)
	AssessRisk(ctx *fiber.Ctx) error
	RetrieveEvidence(ctx *fiber.Ctx) error
	EnforceCitations(ctx *fiber.Ctx) error
	TransferEligibility(ctx *fiber.Ctx) error
	ValidateTransition(ctx *fiber.Ctx) error
}

type governanceController struct {
	governanceService service.IGovernanceService
	retrievalService  service.IRetrievalService
}

func NewGovernanceController(
	governanceService service.IGovernanceService,
	retrievalService service.IRetrievalService,
) IGovernanceController {
	return &governanceController{
		governanceService: governanceService,
		retrievalService:  retrievalService,
	}
}

func (c *governanceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/governance/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("assess-risk", c.AssessRisk)
	h.Post("retrieve-evidence", c.RetrieveEvidence)
	h.Post("enforce-citations", c.EnforceCitations)
	h.Post("transfer-eligibility", c.TransferEligibility)
	h.Post("validate-transition", c.ValidateTransition)
}

func (c *governanceController) AssessRisk(ctx *fiber.Ctx) error {
	var req dto.AssessRiskRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	assessment := risk.Assess(req.Text, req.SeverityScore)
	return ctx.JSON(serverutils.SuccessResponse("Success assess risk", dto.AssessRiskResponse{
		Assessment: assessment,
	}))
}

func (c *governanceController) RetrieveEvidence(ctx *fiber.Ctx) error {
	var req dto.RetrieveEvidenceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	results, err := c.retrievalService.Retrieve(ctx.Context(), req.Query, req.TopK, req.Category)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success retrieve evidence", dto.RetrieveEvidenceResponse{
		Results: results,
	}))
}

func (c *governanceController) EnforceCitations(ctx *fiber.Ctx) error {
	var req dto.EnforceCitationsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	verdict, err := c.governanceService.EnforceCitationPolicy(ctx.Context(), req.Content, req.EvidenceRefs, req.CaseId, req.DraftId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Citation policy evaluated", verdict))
}

func (c *governanceController) TransferEligibility(ctx *fiber.Ctx) error {
	var req dto.TransferEligibilityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	verdict, err := c.governanceService.CheckTransferEligibility(ctx.Context(), req.ConsentConfirmed, req.CapsuleValid, req.CaseStatus, req.CaseId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Transfer eligibility evaluated", verdict))
}

func (c *governanceController) ValidateTransition(ctx *fiber.Ctx) error {
	var req dto.ValidateTransitionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	current := workflow.Status(req.CurrentStatus)
	target := workflow.Status(req.TargetStatus)
	if !workflow.IsValid(current) || !workflow.IsValid(target) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown workflow status")
	}

	verdict, err := c.governanceService.ValidateWorkflowTransition(ctx.Context(), current, target, req.Conditions)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Transition evaluated", verdict))
}
