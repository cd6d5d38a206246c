package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"case-governance-be/internal/constant"
	"case-governance-be/internal/dto"
	"case-governance-be/internal/entity"
	"case-governance-be/internal/pkg/logger"
	"case-governance-be/internal/repository/specification"
	"case-governance-be/internal/repository/unitofwork"
	"case-governance-be/pkg/embedding"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const embedTimeout = 30 * time.Second

type IRetrievalService interface {
	// IndexDocument embeds and upserts a document. If the embedding backend
	// is down the document is stored without a vector and queued for
	// asynchronous backfill.
	IndexDocument(ctx context.Context, req *dto.IndexDocumentRequest) (*dto.IndexDocumentResponse, error)
	// Retrieve returns up to topK evidence references ordered by descending
	// cosine similarity. An empty active corpus yields an empty slice.
	Retrieve(ctx context.Context, query string, topK int, categoryFilter string) ([]*entity.EvidenceReference, error)
	// BackfillEmbedding recomputes and stores the vector for one document.
	// Idempotent: recomputing an existing embedding is a deterministic
	// overwrite.
	BackfillEmbedding(ctx context.Context, docId string) error
}

type retrievalService struct {
	uowFactory       unitofwork.RepositoryFactory
	embedder         embedding.Provider
	publisherService IPublisherService
	auditService     IAuditService
	queryCache       *cache.Cache
	logger           logger.ILogger
}

func NewRetrievalService(
	uowFactory unitofwork.RepositoryFactory,
	embedder embedding.Provider,
	publisherService IPublisherService,
	auditService IAuditService,
	logger logger.ILogger,
) IRetrievalService {
	return &retrievalService{
		uowFactory:       uowFactory,
		embedder:         embedder,
		publisherService: publisherService,
		auditService:     auditService,
		// Embeddings are deterministic per text, so cached query vectors
		// stay valid until evicted.
		queryCache: cache.New(15*time.Minute, 5*time.Minute),
		logger:     logger,
	}
}

func (s *retrievalService) IndexDocument(ctx context.Context, req *dto.IndexDocumentRequest) (*dto.IndexDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc := entity.Document{
		Id:        uuid.New(),
		DocId:     req.DocId,
		Title:     req.Title,
		Category:  req.Category,
		Content:   req.Content,
		Active:    true,
		CreatedAt: time.Now(),
	}

	vector, err := s.embedText(ctx, req.Content)
	if err == nil {
		doc.Embedding = vector
	} else {
		s.logger.Warn("RETRIEVAL", "Embedding backend unavailable, deferring to backfill queue", map[string]interface{}{
			"doc_id": req.DocId,
			"error":  err.Error(),
		})
	}

	// Row and vector land in one statement: indexing is all-or-nothing.
	if err := uow.DocumentRepository().Upsert(ctx, &doc); err != nil {
		return nil, fmt.Errorf("index document %s: %w", req.DocId, err)
	}

	if !doc.HasEmbedding() {
		msg, _ := json.Marshal(dto.EmbedDocumentMessage{DocId: doc.DocId})
		if err := s.publisherService.Publish(ctx, msg); err != nil {
			s.logger.Error("RETRIEVAL", "Failed to queue embedding backfill", map[string]interface{}{
				"doc_id": doc.DocId,
				"error":  err.Error(),
			})
		}
	}

	if _, err := s.auditService.Record(ctx, constant.TrackGovernance, entity.EventDocumentIndexed, "", map[string]interface{}{
		"doc_id":   doc.DocId,
		"category": doc.Category,
		"embedded": doc.HasEmbedding(),
	}, nil, nil); err != nil {
		return nil, err
	}

	return &dto.IndexDocumentResponse{
		Id:    doc.Id,
		DocId: doc.DocId,
		Dims:  len(doc.Embedding),
	}, nil
}

func (s *retrievalService) Retrieve(ctx context.Context, query string, topK int, categoryFilter string) ([]*entity.EvidenceReference, error) {
	if topK <= 0 {
		topK = 3
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.ActiveOnly{}}
	if categoryFilter != "" {
		specs = append(specs, specification.ByCategory{Category: categoryFilter})
	}

	docs, err := uow.DocumentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, fmt.Errorf("fetch active documents: %w", err)
	}
	if len(docs) == 0 {
		return []*entity.EvidenceReference{}, nil
	}

	// Self-healing index: compute any missing vector before ranking.
	for _, doc := range docs {
		if doc.HasEmbedding() {
			continue
		}
		if err := s.backfillDocument(ctx, doc); err != nil {
			return nil, fmt.Errorf("%w: backfill %s: %v", ErrRetrievalUnavailable, doc.DocId, err)
		}
	}

	queryVec, err := s.queryEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrievalUnavailable, err)
	}

	results := make([]*entity.EvidenceReference, 0, len(docs))
	for _, doc := range docs {
		results = append(results, &entity.EvidenceReference{
			DocId:    doc.DocId,
			Title:    doc.Title,
			Snippet:  makeSnippet(doc.Content),
			Score:    embedding.CosineSimilarity(queryVec, doc.Embedding),
			Category: doc.Category,
		})
	}

	// Stable sort keeps document insertion order as the tie-break.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

func (s *retrievalService) BackfillEmbedding(ctx context.Context, docId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByDocId{DocId: docId})
	if err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("backfill %s: %w", docId, ErrNotFound)
	}
	return s.backfillDocument(ctx, doc)
}

// backfillDocument embeds and persists the vector for doc, mutating doc in
// place on success. The write is a single upsert: cancellation mid-call
// leaves either the old row or the fully embedded one.
func (s *retrievalService) backfillDocument(ctx context.Context, doc *entity.Document) error {
	vector, err := s.embedText(ctx, doc.Content)
	if err != nil {
		return err
	}
	doc.Embedding = vector

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().Upsert(ctx, doc); err != nil {
		return err
	}

	s.logger.Info("RETRIEVAL", "Backfilled document embedding", map[string]interface{}{
		"doc_id": doc.DocId,
		"dims":   len(doc.Embedding),
	})
	return nil
}

func (s *retrievalService) queryEmbedding(ctx context.Context, query string) ([]float32, error) {
	key := cacheKey(query)
	if v, found := s.queryCache.Get(key); found {
		return v.([]float32), nil
	}

	vector, err := s.embedText(ctx, query)
	if err != nil {
		return nil, err
	}
	s.queryCache.Set(key, vector, cache.DefaultExpiration)
	return vector, nil
}

func (s *retrievalService) embedText(ctx context.Context, text string) ([]float32, error) {
	embedCtx, cancel := context.WithTimeout(ctx, embedTimeout)
	defer cancel()
	return s.embedder.Embed(embedCtx, text)
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// makeSnippet truncates at a fixed rune count. Position-based on purpose:
// the snippet policy is compatibility-sensitive, not semantic.
func makeSnippet(content string) string {
	runes := []rune(content)
	if len(runes) <= constant.SnippetMaxChars {
		return content
	}
	return string(runes[:constant.SnippetMaxChars]) + "..."
}
