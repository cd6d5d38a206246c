package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is an evidence source in the retrieval corpus. Embedding is
// lazily backfilled when absent; a document row and its vector are always
// written together.
type Document struct {
	Id        uuid.UUID
	DocId     string
	Title     string
	Category  string
	Content   string
	Embedding []float32
	Active    bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// HasEmbedding reports whether the stored vector is usable for ranking.
func (d *Document) HasEmbedding() bool {
	return len(d.Embedding) > 0
}
