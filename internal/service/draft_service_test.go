package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"case-governance-be/internal/dto"
	"case-governance-be/internal/entity"
	"case-governance-be/pkg/llm"
	"case-governance-be/pkg/lock"
	"case-governance-be/pkg/workflow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLocker struct {
	held     map[uuid.UUID]bool
	acquires int
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[uuid.UUID]bool)}
}

func (l *fakeLocker) Acquire(ctx context.Context, draftId uuid.UUID) (func(), error) {
	l.acquires++
	if l.held[draftId] {
		return nil, lock.ErrNotAcquired
	}
	l.held[draftId] = true
	return func() { delete(l.held, draftId) }, nil
}

type fakeLLM struct {
	reply string
	err   error
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.reply, f.err
}

type draftHarness struct {
	factory *fakeFactory
	locker  *fakeLocker
	llm     *fakeLLM
	svc     IDraftService
	caseId  uuid.UUID
}

func newDraftHarness(t *testing.T, corpus ...string) *draftHarness {
	t.Helper()
	factory := newFakeFactory()
	audit := NewAuditService(factory, nil, noopLogger{})
	embedder := &fakeEmbedder{}
	retrieval := NewRetrievalService(factory, embedder, &fakePublisher{}, audit, noopLogger{})
	governance := NewGovernanceService(factory, audit, &fakeMailer{}, "", noopLogger{})
	locker := newFakeLocker()
	llmProvider := &fakeLLM{reply: "Generated draft [DOC:guideline_phq9]."}

	caseId := uuid.New()
	err := factory.uow.cases.Create(context.Background(), &entity.Case{
		Id:        caseId,
		Track:     "clinician",
		Status:    entity.CaseStatusActive,
		CreatedAt: time.Now(),
	})
	assert.NoError(t, err)

	for i, content := range corpus {
		err := factory.uow.docs.Upsert(context.Background(), &entity.Document{
			Id:        uuid.New(),
			DocId:     fmt.Sprintf("doc_%d", i),
			Title:     fmt.Sprintf("Doc %d", i),
			Category:  "guideline",
			Content:   content,
			Embedding: []float32{1, 0, 0},
			Active:    true,
			CreatedAt: time.Now(),
		})
		assert.NoError(t, err)
	}

	svc := NewDraftService(factory, retrieval, governance, audit, llmProvider, locker, noopLogger{})
	return &draftHarness{factory: factory, locker: locker, llm: llmProvider, svc: svc, caseId: caseId}
}

func (h *draftHarness) createDraft(t *testing.T, content string) uuid.UUID {
	t.Helper()
	res, err := h.svc.Create(context.Background(), &dto.CreateDraftRequest{
		CaseId:  h.caseId,
		Content: content,
	})
	assert.NoError(t, err)
	assert.Equal(t, workflow.StatusDraft, res.Status)
	return res.Id
}

func TestCreateDraftUnknownCase(t *testing.T) {
	h := newDraftHarness(t)

	_, err := h.svc.Create(context.Background(), &dto.CreateDraftRequest{CaseId: uuid.New()})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckPolicyPassMovesToEditing(t *testing.T) {
	h := newDraftHarness(t, "PHQ-9 guidance content")
	id := h.createDraft(t, "Administer screening [DOC:doc_0].")

	res, err := h.svc.CheckPolicy(context.Background(), id)

	assert.NoError(t, err)
	assert.True(t, res.Verdict.Allowed)
	assert.Equal(t, workflow.StatusEditing, res.Status)

	stored, _ := h.factory.uow.drafts.FindOne(context.Background())
	assert.Equal(t, workflow.StatusEditing, stored.Status)
	assert.Equal(t, 2, stored.Version, "transition must bump the version")
	assert.NotNil(t, stored.PolicyCheckResult)
}

func TestCheckPolicyFailMovesToBlocked(t *testing.T) {
	h := newDraftHarness(t, "PHQ-9 guidance content")
	id := h.createDraft(t, "A claim without any citation.")

	res, err := h.svc.CheckPolicy(context.Background(), id)

	assert.NoError(t, err)
	assert.False(t, res.Verdict.Allowed)
	assert.Equal(t, workflow.StatusBlocked, res.Status)
}

func TestCheckPolicyEmptyCorpusBlocks(t *testing.T) {
	h := newDraftHarness(t) // no documents indexed
	id := h.createDraft(t, "Well cited claim [DOC:doc_0].")

	res, err := h.svc.CheckPolicy(context.Background(), id)

	assert.NoError(t, err)
	assert.False(t, res.Verdict.Allowed)
	assert.Contains(t, res.Verdict.Reason, "No evidence retrieved")
	assert.Equal(t, workflow.StatusBlocked, res.Status)
}

func TestSignRequiresPassingPolicy(t *testing.T) {
	h := newDraftHarness(t, "guidance")
	id := h.createDraft(t, "No citations here.")

	// Blocked by the policy check, then recover to editing.
	_, err := h.svc.CheckPolicy(context.Background(), id)
	assert.NoError(t, err)

	res, err := h.svc.Sign(context.Background(), id, "dr@example.org")
	assert.NoError(t, err)
	assert.False(t, res.Verdict.Allowed, "blocked draft cannot be signed")
	assert.Equal(t, workflow.StatusBlocked, res.Status)
}

func TestFullLifecycle(t *testing.T) {
	h := newDraftHarness(t, "screening guidance")
	id := h.createDraft(t, "Grounded claim [DOC:doc_0].")
	ctx := context.Background()

	res, err := h.svc.CheckPolicy(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, workflow.StatusEditing, res.Status)

	res, err = h.svc.Sign(ctx, id, "dr@example.org")
	assert.NoError(t, err)
	assert.True(t, res.Verdict.Allowed)
	assert.Equal(t, workflow.StatusSigned, res.Status)

	res, err = h.svc.WriteBack(ctx, id)
	assert.NoError(t, err)
	assert.True(t, res.Verdict.Allowed)
	assert.Equal(t, workflow.StatusWrittenBack, res.Status)

	res, err = h.svc.Archive(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, workflow.StatusArchived, res.Status)

	// Terminal state rejects everything afterwards.
	res, err = h.svc.Archive(ctx, id)
	assert.NoError(t, err)
	assert.False(t, res.Verdict.Allowed)

	stored, _ := h.factory.uow.drafts.FindOne(ctx)
	assert.Equal(t, "dr@example.org", stored.SignedBy)
}

func TestWriteBackRequiresSignature(t *testing.T) {
	h := newDraftHarness(t, "guidance")
	id := h.createDraft(t, "Grounded claim [DOC:doc_0].")
	ctx := context.Background()

	_, err := h.svc.CheckPolicy(ctx, id)
	assert.NoError(t, err)

	// Skipping the sign step: editing -> written_back is not an edge.
	res, err := h.svc.WriteBack(ctx, id)
	assert.NoError(t, err)
	assert.False(t, res.Verdict.Allowed)
	assert.Equal(t, workflow.StatusEditing, res.Status)
}

func TestTransitionHeldLockConflicts(t *testing.T) {
	h := newDraftHarness(t, "guidance")
	id := h.createDraft(t, "Grounded claim [DOC:doc_0].")

	h.locker.held[id] = true

	_, err := h.svc.CheckPolicy(context.Background(), id)

	assert.ErrorIs(t, err, lock.ErrNotAcquired)
}

func TestGenerateStoresContentAndResetsVerdict(t *testing.T) {
	h := newDraftHarness(t, "sleep hygiene guidance")
	id := h.createDraft(t, "")
	ctx := context.Background()

	res, err := h.svc.Generate(ctx, id, &dto.GenerateDraftRequest{Query: "sleep problems"})

	assert.NoError(t, err)
	assert.Equal(t, "Generated draft [DOC:guideline_phq9].", res.Content)
	assert.Len(t, res.Evidence, 1)

	stored, _ := h.factory.uow.drafts.FindOne(ctx)
	assert.Equal(t, res.Content, stored.Content)
	assert.Nil(t, stored.PolicyCheckResult)
}

func TestGenerateRejectedAfterSigning(t *testing.T) {
	h := newDraftHarness(t, "guidance")
	id := h.createDraft(t, "Grounded claim [DOC:doc_0].")
	ctx := context.Background()

	_, err := h.svc.CheckPolicy(ctx, id)
	assert.NoError(t, err)
	_, err = h.svc.Sign(ctx, id, "dr@example.org")
	assert.NoError(t, err)

	_, err = h.svc.Generate(ctx, id, &dto.GenerateDraftRequest{Query: "anything"})
	assert.Error(t, err, "signed content is frozen")
}
