package transfermock

import (
	"context"

	"tdr-registry/internal/domain/application"
	"tdr-registry/internal/domain/ident"
	domain "tdr-registry/internal/domain/transfer"
)

var (
	_ domain.Repository  = (*Repo)(nil)
	_ application.Reader = (*Applications)(nil)
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn             func(ctx context.Context, t *domain.Transfer) error
	GetByApplicationIDFn func(ctx context.Context, applicationID ident.ID) (*domain.Transfer, error)
	ListBySourceFn       func(ctx context.Context, sourceDrcID ident.ID) ([]domain.Transfer, error)
}

func (m *Repo) Create(ctx context.Context, t *domain.Transfer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}
func (m *Repo) GetByApplicationID(ctx context.Context, applicationID ident.ID) (*domain.Transfer, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, domain.ErrNotFound
}
func (m *Repo) ListBySource(ctx context.Context, sourceDrcID ident.ID) ([]domain.Transfer, error) {
	if m.ListBySourceFn != nil {
		return m.ListBySourceFn(ctx, sourceDrcID)
	}
	return nil, nil
}

// Applications mocks the application workflow port.
type Applications struct {
	GetFn           func(ctx context.Context, id ident.ID) (*application.Application, error)
	ApplicationAtFn func(ctx context.Context, noticeID ident.ID, index int) (ident.ID, error)
}

func (m *Applications) Get(ctx context.Context, id ident.ID) (*application.Application, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, application.ErrNotFound
}
func (m *Applications) ApplicationAt(ctx context.Context, noticeID ident.ID, index int) (ident.ID, error) {
	if m.ApplicationAtFn != nil {
		return m.ApplicationAtFn(ctx, noticeID, index)
	}
	return ident.ID{}, application.ErrNotFound
}
