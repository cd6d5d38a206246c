package dto

import "github.com/google/uuid"

type IndexDocumentRequest struct {
	DocId    string `json:"doc_id" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Category string `json:"category" validate:"omitempty,oneof=guideline protocol policy"`
	Content  string `json:"content" validate:"required"`
}

type IndexDocumentResponse struct {
	Id    uuid.UUID `json:"id"`
	DocId string    `json:"doc_id"`
	// Dims is 0 when the embedding is deferred to the background worker.
	Dims int `json:"dims"`
}

// EmbedDocumentMessage is the payload published to the embed topic for
// asynchronous backfill.
type EmbedDocumentMessage struct {
	DocId string `json:"doc_id"`
}
