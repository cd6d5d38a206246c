package mapper

import (
	"encoding/json"

	"case-governance-be/internal/entity"
	"case-governance-be/internal/model"

	"gorm.io/datatypes"
)

type EscalationMapper struct{}

func NewEscalationMapper() *EscalationMapper {
	return &EscalationMapper{}
}

func (m *EscalationMapper) ToEntity(e *model.Escalation) *entity.Escalation {
	if e == nil {
		return nil
	}

	triggers := make([]string, 0)
	if len(e.Triggers) > 0 {
		_ = json.Unmarshal(e.Triggers, &triggers)
	}

	return &entity.Escalation{
		Id:           e.Id,
		CaseId:       e.CaseId,
		SessionId:    e.SessionId,
		RiskTier:     e.RiskTier,
		Triggers:     triggers,
		SourceText:   e.SourceText,
		Acknowledged: e.Acknowledged,
		CreatedAt:    e.CreatedAt,
	}
}

func (m *EscalationMapper) ToModel(e *entity.Escalation) *model.Escalation {
	if e == nil {
		return nil
	}

	var triggersJson datatypes.JSON
	if e.Triggers != nil {
		if raw, err := json.Marshal(e.Triggers); err == nil {
			triggersJson = raw
		}
	}

	return &model.Escalation{
		Id:           e.Id,
		CaseId:       e.CaseId,
		SessionId:    e.SessionId,
		RiskTier:     e.RiskTier,
		Triggers:     triggersJson,
		SourceText:   e.SourceText,
		Acknowledged: e.Acknowledged,
		CreatedAt:    e.CreatedAt,
	}
}
