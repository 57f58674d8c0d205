package principalmock

import (
	"context"

	"tdr-registry/internal/domain/access"
	domain "tdr-registry/internal/domain/principal"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	GetFn          func(ctx context.Context, slot access.Role) (*domain.Principal, error)
	GetByAccountFn func(ctx context.Context, account string) (*domain.Principal, error)
	PutFn          func(ctx context.Context, p *domain.Principal) error
}

func (m *Repo) Get(ctx context.Context, slot access.Role) (*domain.Principal, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, slot)
	}
	return nil, domain.ErrNotFound
}
func (m *Repo) GetByAccount(ctx context.Context, account string) (*domain.Principal, error) {
	if m.GetByAccountFn != nil {
		return m.GetByAccountFn(ctx, account)
	}
	return nil, domain.ErrNotFound
}
func (m *Repo) Put(ctx context.Context, p *domain.Principal) error {
	if m.PutFn != nil {
		return m.PutFn(ctx, p)
	}
	return nil
}
