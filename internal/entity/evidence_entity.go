package entity

// EvidenceReference is one ranked retrieval hit. Transient: produced fresh
// per retrieval call, ordering is significant and preserved by consumers.
type EvidenceReference struct {
	DocId    string  `json:"doc_id"`
	Title    string  `json:"title"`
	Snippet  string  `json:"snippet"`
	Score    float64 `json:"score"`
	Category string  `json:"category,omitempty"`
}
