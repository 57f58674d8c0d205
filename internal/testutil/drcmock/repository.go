package drcmock

import (
	"context"

	domain "tdr-registry/internal/domain/drc"
	"tdr-registry/internal/domain/ident"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Lookups without a func return ErrNotFound; writes succeed.
type Repo struct {
	CreateFn           func(ctx context.Context, d *domain.DRC) error
	GetByIDFn          func(ctx context.Context, id ident.ID) (*domain.DRC, error)
	GetByIDForUpdateFn func(ctx context.Context, id ident.ID) (*domain.DRC, error)
	ExistsFn           func(ctx context.Context, id ident.ID) (bool, error)
	SaveFn             func(ctx context.Context, d *domain.DRC) error
}

func (m *Repo) Create(ctx context.Context, d *domain.DRC) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}
func (m *Repo) GetByID(ctx context.Context, id ident.ID) (*domain.DRC, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}
func (m *Repo) GetByIDForUpdate(ctx context.Context, id ident.ID) (*domain.DRC, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}
func (m *Repo) Exists(ctx context.Context, id ident.ID) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, id)
	}
	return false, nil
}
func (m *Repo) Save(ctx context.Context, d *domain.DRC) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}
