package mapper

import (
	"encoding/json"
	"time"

	"case-governance-be/internal/entity"
	"case-governance-be/internal/model"
	"case-governance-be/pkg/policy"
	"case-governance-be/pkg/workflow"

	"gorm.io/datatypes"
)

type DraftMapper struct{}

func NewDraftMapper() *DraftMapper {
	return &DraftMapper{}
}

func (m *DraftMapper) ToEntity(d *model.Draft) *entity.Draft {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	var verdict *policy.Verdict
	if len(d.PolicyCheckResult) > 0 {
		var v policy.Verdict
		if err := json.Unmarshal(d.PolicyCheckResult, &v); err == nil {
			verdict = &v
		}
	}

	return &entity.Draft{
		Id:                d.Id,
		CaseId:            d.CaseId,
		Content:           d.Content,
		Status:            workflow.Status(d.Status),
		SignedBy:          d.SignedBy,
		PolicyCheckResult: verdict,
		Version:           d.Version,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}

func (m *DraftMapper) ToModel(e *entity.Draft) *model.Draft {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	var verdictJson datatypes.JSON
	if e.PolicyCheckResult != nil {
		if raw, err := json.Marshal(e.PolicyCheckResult); err == nil {
			verdictJson = raw
		}
	}

	return &model.Draft{
		Id:                e.Id,
		CaseId:            e.CaseId,
		Content:           e.Content,
		Status:            string(e.Status),
		SignedBy:          e.SignedBy,
		PolicyCheckResult: verdictJson,
		Version:           e.Version,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         updatedAt,
	}
}
