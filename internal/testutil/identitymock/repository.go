package identitymock

import (
	"context"

	"tdr-registry/internal/domain/ident"
	domain "tdr-registry/internal/domain/identity"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Lookups without a func return ErrNotFound; writes succeed.
type Repo struct {
	InsertFn            func(ctx context.Context, e *domain.Entry) error
	GetByEntryIDFn      func(ctx context.Context, kind domain.Kind, id ident.ID) (*domain.Entry, error)
	GetByAccountFn      func(ctx context.Context, kind domain.Kind, account string) (*domain.Entry, error)
	RepointFn           func(ctx context.Context, kind domain.Kind, id ident.ID, account string) error
	RemoveFn            func(ctx context.Context, kind domain.Kind, id ident.ID) error
	PutOfficerRoleFn    func(ctx context.Context, r *domain.OfficerRole) error
	GetOfficerRoleFn    func(ctx context.Context, id ident.ID) (*domain.OfficerRole, error)
	DeleteOfficerRoleFn func(ctx context.Context, id ident.ID) error
}

func (m *Repo) Insert(ctx context.Context, e *domain.Entry) error {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, e)
	}
	return nil
}
func (m *Repo) GetByEntryID(ctx context.Context, kind domain.Kind, id ident.ID) (*domain.Entry, error) {
	if m.GetByEntryIDFn != nil {
		return m.GetByEntryIDFn(ctx, kind, id)
	}
	return nil, domain.ErrNotFound
}
func (m *Repo) GetByAccount(ctx context.Context, kind domain.Kind, account string) (*domain.Entry, error) {
	if m.GetByAccountFn != nil {
		return m.GetByAccountFn(ctx, kind, account)
	}
	return nil, domain.ErrNotFound
}
func (m *Repo) Repoint(ctx context.Context, kind domain.Kind, id ident.ID, account string) error {
	if m.RepointFn != nil {
		return m.RepointFn(ctx, kind, id, account)
	}
	return nil
}
func (m *Repo) Remove(ctx context.Context, kind domain.Kind, id ident.ID) error {
	if m.RemoveFn != nil {
		return m.RemoveFn(ctx, kind, id)
	}
	return nil
}
func (m *Repo) PutOfficerRole(ctx context.Context, r *domain.OfficerRole) error {
	if m.PutOfficerRoleFn != nil {
		return m.PutOfficerRoleFn(ctx, r)
	}
	return nil
}
func (m *Repo) GetOfficerRole(ctx context.Context, id ident.ID) (*domain.OfficerRole, error) {
	if m.GetOfficerRoleFn != nil {
		return m.GetOfficerRoleFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}
func (m *Repo) DeleteOfficerRole(ctx context.Context, id ident.ID) error {
	if m.DeleteOfficerRoleFn != nil {
		return m.DeleteOfficerRoleFn(ctx, id)
	}
	return nil
}
