package service

import (
	"context"
	"fmt"

	"case-governance-be/internal/entity"
	"case-governance-be/internal/repository/contract"
	"case-governance-be/internal/repository/specification"
	"case-governance-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory doubles for the repository layer. Specs are matched by type
// switch since the real implementations translate them to SQL.

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{uow: &fakeUnitOfWork{
		docs:        &fakeDocumentRepo{},
		drafts:      &fakeDraftRepo{},
		cases:       &fakeCaseRepo{},
		escalations: &fakeEscalationRepo{},
		audits:      &fakeAuditEventRepo{},
		clinicians:  &fakeClinicianRepo{},
	}}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeUnitOfWork struct {
	docs        *fakeDocumentRepo
	drafts      *fakeDraftRepo
	cases       *fakeCaseRepo
	escalations *fakeEscalationRepo
	audits      *fakeAuditEventRepo
	clinicians  *fakeClinicianRepo
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return u.docs
}
func (u *fakeUnitOfWork) DraftRepository() contract.DraftRepository {
	return u.drafts
}
func (u *fakeUnitOfWork) CaseRepository() contract.CaseRepository {
	return u.cases
}
func (u *fakeUnitOfWork) EscalationRepository() contract.EscalationRepository {
	return u.escalations
}
func (u *fakeUnitOfWork) AuditEventRepository() contract.AuditEventRepository {
	return u.audits
}
func (u *fakeUnitOfWork) ClinicianRepository() contract.ClinicianRepository {
	return u.clinicians
}

type fakeDocumentRepo struct {
	docs []*entity.Document
}

func (r *fakeDocumentRepo) Upsert(ctx context.Context, document *entity.Document) error {
	for i, d := range r.docs {
		if d.DocId == document.DocId {
			copied := *document
			r.docs[i] = &copied
			return nil
		}
	}
	copied := *document
	r.docs = append(r.docs, &copied)
	return nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, document *entity.Document) error {
	return r.Upsert(ctx, document)
}

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	for _, d := range r.docs {
		if matchDocument(d, specs) {
			copied := *d
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	out := make([]*entity.Document, 0)
	for _, d := range r.docs {
		if matchDocument(d, specs) {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	docs, _ := r.FindAll(ctx, specs...)
	return int64(len(docs)), nil
}

func matchDocument(d *entity.Document, specs []specification.Specification) bool {
	for _, s := range specs {
		switch spec := s.(type) {
		case specification.ActiveOnly:
			if !d.Active {
				return false
			}
		case specification.ByCategory:
			if d.Category != spec.Category {
				return false
			}
		case specification.ByDocId:
			if d.DocId != spec.DocId {
				return false
			}
		case specification.ByID:
			if d.Id != spec.ID {
				return false
			}
		}
	}
	return true
}

type fakeDraftRepo struct {
	drafts []*entity.Draft
}

func (r *fakeDraftRepo) Create(ctx context.Context, draft *entity.Draft) error {
	copied := *draft
	r.drafts = append(r.drafts, &copied)
	return nil
}

func (r *fakeDraftRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Draft, error) {
	for _, d := range r.drafts {
		if matchDraft(d, specs) {
			copied := *d
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeDraftRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Draft, error) {
	out := make([]*entity.Draft, 0)
	for _, d := range r.drafts {
		if matchDraft(d, specs) {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeDraftRepo) UpdateCAS(ctx context.Context, draft *entity.Draft, expectedVersion int) error {
	for i, d := range r.drafts {
		if d.Id == draft.Id {
			if d.Version != expectedVersion {
				return contract.ErrVersionConflict
			}
			copied := *draft
			copied.Version = expectedVersion + 1
			r.drafts[i] = &copied
			return nil
		}
	}
	return contract.ErrVersionConflict
}

func (r *fakeDraftRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, d := range r.drafts {
		if d.Id == id {
			r.drafts = append(r.drafts[:i], r.drafts[i+1:]...)
			return nil
		}
	}
	return nil
}

func matchDraft(d *entity.Draft, specs []specification.Specification) bool {
	for _, s := range specs {
		if spec, ok := s.(specification.ByID); ok && d.Id != spec.ID {
			return false
		}
	}
	return true
}

type fakeCaseRepo struct {
	cases []*entity.Case
}

func (r *fakeCaseRepo) Create(ctx context.Context, c *entity.Case) error {
	copied := *c
	r.cases = append(r.cases, &copied)
	return nil
}

func (r *fakeCaseRepo) Update(ctx context.Context, c *entity.Case) error {
	for i, existing := range r.cases {
		if existing.Id == c.Id {
			copied := *c
			r.cases[i] = &copied
			return nil
		}
	}
	return fmt.Errorf("case %s not found", c.Id)
}

func (r *fakeCaseRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Case, error) {
	for _, c := range r.cases {
		if matchCase(c, specs) {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeCaseRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Case, error) {
	out := make([]*entity.Case, 0)
	for _, c := range r.cases {
		if matchCase(c, specs) {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func matchCase(c *entity.Case, specs []specification.Specification) bool {
	for _, s := range specs {
		if spec, ok := s.(specification.ByID); ok && c.Id != spec.ID {
			return false
		}
	}
	return true
}

type fakeEscalationRepo struct {
	escalations []*entity.Escalation
}

func (r *fakeEscalationRepo) Create(ctx context.Context, escalation *entity.Escalation) error {
	copied := *escalation
	r.escalations = append(r.escalations, &copied)
	return nil
}

func (r *fakeEscalationRepo) Update(ctx context.Context, escalation *entity.Escalation) error {
	return nil
}

func (r *fakeEscalationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Escalation, error) {
	return r.escalations, nil
}

func (r *fakeEscalationRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.escalations)), nil
}

type fakeAuditEventRepo struct {
	events []*entity.AuditEvent
}

func (r *fakeAuditEventRepo) Create(ctx context.Context, event *entity.AuditEvent) error {
	copied := *event
	r.events = append(r.events, &copied)
	return nil
}

func (r *fakeAuditEventRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditEvent, error) {
	return r.events, nil
}

func (r *fakeAuditEventRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.events)), nil
}

type fakeClinicianRepo struct {
	clinicians []*entity.Clinician
}

func (r *fakeClinicianRepo) Create(ctx context.Context, clinician *entity.Clinician) error {
	copied := *clinician
	r.clinicians = append(r.clinicians, &copied)
	return nil
}

func (r *fakeClinicianRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Clinician, error) {
	for _, c := range r.clinicians {
		match := true
		for _, s := range specs {
			if spec, ok := s.(specification.FilterBy); ok && spec.Field == "email" {
				if c.Email != spec.Value.(string) {
					match = false
				}
			}
		}
		if match {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

// fakeEmbedder returns a fixed vector per known text and a default for the
// rest. Vectors are unit length so similarity equals the dot product.
type fakeEmbedder struct {
	vectors map[string][]float32
	fail    bool
	calls   int
}

func (e *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	if e.fail {
		return nil, fmt.Errorf("embedding backend down")
	}
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	return []float32{1, 0, 0}, nil
}

type fakePublisher struct {
	published [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.published = append(p.published, payload)
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }
