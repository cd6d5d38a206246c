package mapper

import (
	"time"

	"case-governance-be/internal/entity"
	"case-governance-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Document{
		Id:        d.Id,
		DocId:     d.DocId,
		Title:     d.Title,
		Category:  d.Category,
		Content:   d.Content,
		Embedding: d.Embedding.Slice(),
		Active:    d.Active,
		CreatedAt: d.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *DocumentMapper) ToModel(e *entity.Document) *model.Document {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.Document{
		Id:        e.Id,
		DocId:     e.DocId,
		Title:     e.Title,
		Category:  e.Category,
		Content:   e.Content,
		Embedding: pgvector.NewVector(e.Embedding),
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *DocumentMapper) ToEntities(documents []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(documents))
	for i, d := range documents {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
