package mapper

import (
	"encoding/json"

	"case-governance-be/internal/entity"
	"case-governance-be/internal/model"

	"gorm.io/datatypes"
)

type AuditEventMapper struct{}

func NewAuditEventMapper() *AuditEventMapper {
	return &AuditEventMapper{}
}

func (m *AuditEventMapper) ToEntity(a *model.AuditEvent) *entity.AuditEvent {
	if a == nil {
		return nil
	}

	payload := make(map[string]interface{})
	if len(a.Payload) > 0 {
		_ = json.Unmarshal(a.Payload, &payload)
	}

	return &entity.AuditEvent{
		Id:        a.Id,
		Track:     a.Track,
		EventType: a.EventType,
		RiskTier:  a.RiskTier,
		CaseId:    a.CaseId,
		DraftId:   a.DraftId,
		Payload:   payload,
		CreatedAt: a.CreatedAt,
	}
}

func (m *AuditEventMapper) ToModel(e *entity.AuditEvent) *model.AuditEvent {
	if e == nil {
		return nil
	}

	var payloadJson datatypes.JSON
	if e.Payload != nil {
		if raw, err := json.Marshal(e.Payload); err == nil {
			payloadJson = raw
		}
	}

	return &model.AuditEvent{
		Id:        e.Id,
		Track:     e.Track,
		EventType: e.EventType,
		RiskTier:  e.RiskTier,
		CaseId:    e.CaseId,
		DraftId:   e.DraftId,
		Payload:   payloadJson,
		CreatedAt: e.CreatedAt,
	}
}

func (m *AuditEventMapper) ToEntities(events []*model.AuditEvent) []*entity.AuditEvent {
	entities := make([]*entity.AuditEvent, len(events))
	for i, a := range events {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
