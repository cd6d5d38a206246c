package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByTrack filters audit events by trust tier track.
type ByTrack struct {
	Track string
}

func (s ByTrack) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("track = ?", s.Track)
}

// ByEventType filters audit events by event type.
type ByEventType struct {
	EventType string
}

func (s ByEventType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("event_type = ?", s.EventType)
}

// ByCaseId filters by owning case.
type ByCaseId struct {
	CaseId uuid.UUID
}

func (s ByCaseId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("case_id = ?", s.CaseId)
}

// ByDraftId filters by draft.
type ByDraftId struct {
	DraftId uuid.UUID
}

func (s ByDraftId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("draft_id = ?", s.DraftId)
}
