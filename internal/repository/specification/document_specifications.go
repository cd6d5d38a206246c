package specification

import "gorm.io/gorm"

// ActiveOnly restricts to documents still part of the retrieval corpus.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}

// ByDocId filters by the stable external document identifier.
type ByDocId struct {
	DocId string
}

func (s ByDocId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("doc_id = ?", s.DocId)
}

// ByCategory filters by document category (guideline, protocol, policy).
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}
