package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"case-governance-be/internal/dto"
	"case-governance-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func seedDoc(t *testing.T, factory *fakeFactory, docId, content string, vector []float32) {
	t.Helper()
	err := factory.uow.docs.Upsert(context.Background(), &entity.Document{
		Id:        uuid.New(),
		DocId:     docId,
		Title:     "Title " + docId,
		Category:  "guideline",
		Content:   content,
		Embedding: vector,
		Active:    true,
		CreatedAt: time.Now(),
	})
	assert.NoError(t, err)
}

func newTestRetrievalService(factory *fakeFactory, embedder *fakeEmbedder, pub *fakePublisher) IRetrievalService {
	audit := NewAuditService(factory, nil, noopLogger{})
	return NewRetrievalService(factory, embedder, pub, audit, noopLogger{})
}

func TestRetrieveEmptyCorpus(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestRetrievalService(factory, &fakeEmbedder{}, &fakePublisher{})

	results, err := svc.Retrieve(context.Background(), "any query", 3, "")

	assert.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestRetrieveRanksBySimilarity(t *testing.T) {
	factory := newFakeFactory()
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"sleep problems": {1, 0, 0},
	}}
	svc := newTestRetrievalService(factory, embedder, &fakePublisher{})

	seedDoc(t, factory, "doc_far", "unrelated content", []float32{0, 1, 0})
	seedDoc(t, factory, "doc_near", "sleep hygiene content", []float32{1, 0, 0})
	seedDoc(t, factory, "doc_mid", "partially related", []float32{0.7, 0.7, 0})

	results, err := svc.Retrieve(context.Background(), "sleep problems", 3, "")

	assert.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, "doc_near", results[0].DocId)
	assert.Equal(t, "doc_mid", results[1].DocId)
	assert.Equal(t, "doc_far", results[2].DocId)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestRetrieveTruncatesToTopK(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestRetrievalService(factory, &fakeEmbedder{}, &fakePublisher{})

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		seedDoc(t, factory, id, "content "+id, []float32{1, 0, 0})
	}

	results, err := svc.Retrieve(context.Background(), "query", 2, "")

	assert.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestRetrieveDefaultsTopK(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestRetrievalService(factory, &fakeEmbedder{}, &fakePublisher{})

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		seedDoc(t, factory, id, "content "+id, []float32{1, 0, 0})
	}

	results, err := svc.Retrieve(context.Background(), "query", 0, "")

	assert.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestRetrieveCategoryFilter(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestRetrievalService(factory, &fakeEmbedder{}, &fakePublisher{})

	seedDoc(t, factory, "g1", "guideline content", []float32{1, 0, 0})
	err := factory.uow.docs.Upsert(context.Background(), &entity.Document{
		Id: uuid.New(), DocId: "p1", Category: "protocol",
		Content: "protocol content", Embedding: []float32{1, 0, 0}, Active: true,
	})
	assert.NoError(t, err)

	results, err := svc.Retrieve(context.Background(), "query", 5, "protocol")

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "p1", results[0].DocId)
}

func TestRetrieveSnippetTruncation(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestRetrievalService(factory, &fakeEmbedder{}, &fakePublisher{})

	long := strings.Repeat("x", 450)
	seedDoc(t, factory, "long_doc", long, []float32{1, 0, 0})

	results, err := svc.Retrieve(context.Background(), "query", 1, "")

	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, long[:200]+"...", results[0].Snippet)
}

func TestRetrieveBackfillsMissingEmbedding(t *testing.T) {
	factory := newFakeFactory()
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"lazy content": {0, 1, 0},
	}}
	svc := newTestRetrievalService(factory, embedder, &fakePublisher{})

	seedDoc(t, factory, "lazy", "lazy content", nil)

	results, err := svc.Retrieve(context.Background(), "query", 3, "")

	assert.NoError(t, err)
	assert.Len(t, results, 1)

	stored, err := factory.uow.docs.FindOne(context.Background())
	assert.NoError(t, err)
	assert.True(t, stored.HasEmbedding(), "vector should be persisted after inline backfill")
}

func TestRetrieveFailsClosedWhenBackfillImpossible(t *testing.T) {
	factory := newFakeFactory()
	embedder := &fakeEmbedder{fail: true}
	svc := newTestRetrievalService(factory, embedder, &fakePublisher{})

	seedDoc(t, factory, "lazy", "lazy content", nil)

	_, err := svc.Retrieve(context.Background(), "query", 3, "")

	assert.ErrorIs(t, err, ErrRetrievalUnavailable)
}

func TestIndexDocumentStoresAndAudits(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestRetrievalService(factory, &fakeEmbedder{}, &fakePublisher{})

	res, err := svc.IndexDocument(context.Background(), &dto.IndexDocumentRequest{
		DocId:    "guideline_new",
		Title:    "New Guideline",
		Category: "guideline",
		Content:  "Some guidance text.",
	})

	assert.NoError(t, err)
	assert.Equal(t, "guideline_new", res.DocId)
	assert.Equal(t, 3, res.Dims)

	assert.Len(t, factory.uow.audits.events, 1)
	assert.Equal(t, entity.EventDocumentIndexed, factory.uow.audits.events[0].EventType)
}

func TestIndexDocumentDefersEmbeddingWhenBackendDown(t *testing.T) {
	factory := newFakeFactory()
	pub := &fakePublisher{}
	svc := newTestRetrievalService(factory, &fakeEmbedder{fail: true}, pub)

	res, err := svc.IndexDocument(context.Background(), &dto.IndexDocumentRequest{
		DocId:   "deferred",
		Title:   "Deferred",
		Content: "Content without a vector yet.",
	})

	assert.NoError(t, err, "indexing must succeed even when embedding fails")
	assert.Equal(t, 0, res.Dims)
	assert.Len(t, pub.published, 1, "backfill message should be queued")

	stored, err := factory.uow.docs.FindOne(context.Background())
	assert.NoError(t, err)
	assert.False(t, stored.HasEmbedding())
}

func TestIndexDocumentUpsertReplacesByDocId(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestRetrievalService(factory, &fakeEmbedder{}, &fakePublisher{})

	_, err := svc.IndexDocument(context.Background(), &dto.IndexDocumentRequest{
		DocId: "dup", Title: "First", Content: "first version",
	})
	assert.NoError(t, err)
	_, err = svc.IndexDocument(context.Background(), &dto.IndexDocumentRequest{
		DocId: "dup", Title: "Second", Content: "second version",
	})
	assert.NoError(t, err)

	docs, err := factory.uow.docs.FindAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, "Second", docs[0].Title)
}

func TestBackfillEmbeddingUnknownDoc(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestRetrievalService(factory, &fakeEmbedder{}, &fakePublisher{})

	err := svc.BackfillEmbedding(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
}
