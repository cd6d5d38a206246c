package service

import (
	"context"
	"fmt"
	"time"

	"case-governance-be/internal/dto"
	"case-governance-be/internal/entity"
	"case-governance-be/internal/pkg/logger"
	"case-governance-be/internal/repository/specification"
	"case-governance-be/internal/repository/unitofwork"
	pkgEvents "case-governance-be/pkg/events"
	pktNats "case-governance-be/pkg/nats"

	"github.com/google/uuid"
)

// IAuditService writes the governance audit trail. Record is fire-and-verify:
// callers must not return a verdict that depends on being recorded until
// Record comes back nil. The NATS publish is a best-effort secondary feed.
type IAuditService interface {
	Record(ctx context.Context, track, eventType, riskTier string, payload map[string]interface{}, caseId, draftId *uuid.UUID) (uuid.UUID, error)
	// List pages through recorded events, newest first.
	List(ctx context.Context, req *dto.ListAuditEventsRequest) (*dto.ListAuditEventsResponse, error)
}

type auditService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  *pktNats.Publisher
	logger     logger.ILogger
}

func NewAuditService(
	uowFactory unitofwork.RepositoryFactory,
	publisher *pktNats.Publisher,
	logger logger.ILogger,
) IAuditService {
	return &auditService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *auditService) Record(ctx context.Context, track, eventType, riskTier string, payload map[string]interface{}, caseId, draftId *uuid.UUID) (uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	event := entity.AuditEvent{
		Id:        uuid.New(),
		Track:     track,
		EventType: eventType,
		RiskTier:  riskTier,
		CaseId:    caseId,
		DraftId:   draftId,
		Payload:   payload,
		CreatedAt: time.Now(),
	}

	if err := uow.AuditEventRepository().Create(ctx, &event); err != nil {
		return uuid.Nil, fmt.Errorf("record audit event: %w", err)
	}

	// Secondary bus feed. Losing it never fails the policy action.
	if s.publisher != nil {
		evt := pkgEvents.BaseEvent{
			Type: eventType,
			Data: map[string]interface{}{
				"event_id":  event.Id.String(),
				"track":     track,
				"risk_tier": riskTier,
				"payload":   payload,
			},
			OccurredAt: event.CreatedAt,
		}
		if err := s.publisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("AUDIT", "Failed to publish audit event to bus", map[string]interface{}{
				"event_id": event.Id.String(),
				"error":    err.Error(),
			})
		}
	}

	return event.Id, nil
}

func (s *auditService) List(ctx context.Context, req *dto.ListAuditEventsRequest) (*dto.ListAuditEventsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	filters := make([]specification.Specification, 0)
	if req.Track != "" {
		filters = append(filters, specification.ByTrack{Track: req.Track})
	}
	if req.EventType != "" {
		filters = append(filters, specification.ByEventType{EventType: req.EventType})
	}
	if req.CaseId != "" {
		caseId, err := uuid.Parse(req.CaseId)
		if err != nil {
			return nil, fmt.Errorf("invalid case_id: %w", err)
		}
		filters = append(filters, specification.ByCaseId{CaseId: caseId})
	}

	total, err := uow.AuditEventRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	specs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: req.Offset},
	)

	events, err := uow.AuditEventRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.AuditEventResponse, len(events))
	for i, e := range events {
		out[i] = &dto.AuditEventResponse{
			Id:        e.Id,
			Track:     e.Track,
			EventType: e.EventType,
			RiskTier:  e.RiskTier,
			CaseId:    e.CaseId,
			DraftId:   e.DraftId,
			Payload:   e.Payload,
			CreatedAt: e.CreatedAt,
		}
	}

	return &dto.ListAuditEventsResponse{Events: out, Total: total}, nil
}
