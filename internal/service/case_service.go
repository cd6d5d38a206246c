package service

import (
	"context"
	"fmt"
	"time"

	"case-governance-be/internal/dto"
	"case-governance-be/internal/entity"
	"case-governance-be/internal/repository/specification"
	"case-governance-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ICaseService interface {
	Create(ctx context.Context, req *dto.CreateCaseRequest) (*dto.CaseResponse, error)
	Show(ctx context.Context, caseId uuid.UUID) (*dto.CaseResponse, error)
	UpdateConsent(ctx context.Context, caseId uuid.UUID, req *dto.UpdateConsentRequest) (*dto.CaseResponse, error)
	// Transfer runs the eligibility gate and, only on an allowed verdict,
	// marks the case transferred. A blocked verdict is returned as data.
	Transfer(ctx context.Context, caseId uuid.UUID) (*dto.TransferCaseResponse, error)
}

type caseService struct {
	uowFactory        unitofwork.RepositoryFactory
	governanceService IGovernanceService
}

func NewCaseService(uowFactory unitofwork.RepositoryFactory, governanceService IGovernanceService) ICaseService {
	return &caseService{
		uowFactory:        uowFactory,
		governanceService: governanceService,
	}
}

func (s *caseService) Create(ctx context.Context, req *dto.CreateCaseRequest) (*dto.CaseResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	c := entity.Case{
		Id:        uuid.New(),
		Track:     req.Track,
		Status:    entity.CaseStatusActive,
		CreatedAt: time.Now(),
	}
	if err := uow.CaseRepository().Create(ctx, &c); err != nil {
		return nil, err
	}
	return caseResponse(&c), nil
}

func (s *caseService) Show(ctx context.Context, caseId uuid.UUID) (*dto.CaseResponse, error) {
	c, err := s.findCase(ctx, caseId)
	if err != nil {
		return nil, err
	}
	return caseResponse(c), nil
}

func (s *caseService) UpdateConsent(ctx context.Context, caseId uuid.UUID, req *dto.UpdateConsentRequest) (*dto.CaseResponse, error) {
	c, err := s.findCase(ctx, caseId)
	if err != nil {
		return nil, err
	}

	c.ConsentConfirmed = req.ConsentConfirmed
	c.CapsuleValid = req.CapsuleValid

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CaseRepository().Update(ctx, c); err != nil {
		return nil, err
	}
	return caseResponse(c), nil
}

func (s *caseService) Transfer(ctx context.Context, caseId uuid.UUID) (*dto.TransferCaseResponse, error) {
	c, err := s.findCase(ctx, caseId)
	if err != nil {
		return nil, err
	}

	verdict, err := s.governanceService.CheckTransferEligibility(ctx, c.ConsentConfirmed, c.CapsuleValid, c.Status, &c.Id)
	if err != nil {
		return nil, err
	}
	if !verdict.Allowed {
		return &dto.TransferCaseResponse{Case: caseResponse(c), Verdict: verdict}, nil
	}

	c.Status = entity.CaseStatusTransferred
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CaseRepository().Update(ctx, c); err != nil {
		return nil, err
	}
	return &dto.TransferCaseResponse{Case: caseResponse(c), Verdict: verdict}, nil
}

func (s *caseService) findCase(ctx context.Context, caseId uuid.UUID) (*entity.Case, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	c, err := uow.CaseRepository().FindOne(ctx, specification.ByID{ID: caseId})
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("case %s: %w", caseId, ErrNotFound)
	}
	return c, nil
}

func caseResponse(c *entity.Case) *dto.CaseResponse {
	return &dto.CaseResponse{
		Id:               c.Id,
		Track:            c.Track,
		Status:           c.Status,
		ConsentConfirmed: c.ConsentConfirmed,
		CapsuleValid:     c.CapsuleValid,
		CreatedAt:        c.CreatedAt,
	}
}
