package uowmock

import (
	"context"
	"errors"

	"tdr-registry/internal/domain/drc"
	"tdr-registry/internal/domain/ident"
	"tdr-registry/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn    func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinDrcTxFn func(ctx context.Context, drcID ident.ID, fn func(r uow.Repos, d *drc.DRC) error) error
	ReadFn        func(ctx context.Context, fn func(r uow.Repos) error) error
}

// Convenience fluent setters
func New() *UoW { return &UoW{} }
func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinDrcTx(fn func(context.Context, ident.ID, func(uow.Repos, *drc.DRC) error) error) *UoW {
	m.WithinDrcTxFn = fn
	return m
}
func (m *UoW) WithRead(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.ReadFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Passthrough runs every body directly against repos. WithinDrcTx loads the
// record through repos.DRCs.GetByIDForUpdate like the real implementation.
func Passthrough(repos uow.Repos) *UoW {
	run := func(_ context.Context, fn func(uow.Repos) error) error { return fn(repos) }
	return &UoW{
		WithinTxFn: run,
		ReadFn:     run,
		WithinDrcTxFn: func(ctx context.Context, drcID ident.ID, fn func(uow.Repos, *drc.DRC) error) error {
			d, err := repos.DRCs.GetByIDForUpdate(ctx, drcID)
			if err != nil {
				return err
			}
			return fn(repos, d)
		},
	}
}

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinDrcTx(ctx context.Context, drcID ident.ID, fn func(r uow.Repos, d *drc.DRC) error) error {
	if m.WithinDrcTxFn != nil {
		return m.WithinDrcTxFn(ctx, drcID, fn)
	}
	return errUnimplemented
}
func (m *UoW) Read(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.ReadFn != nil {
		return m.ReadFn(ctx, fn)
	}
	return errUnimplemented
}
