package uow

import (
	"context"

	"tdr-registry/internal/domain/drc"
	"tdr-registry/internal/domain/event"
	"tdr-registry/internal/domain/ident"
	"tdr-registry/internal/domain/identity"
	"tdr-registry/internal/domain/principal"
	"tdr-registry/internal/domain/transfer"
)

// Repos is the set of repositories bound to one transaction.
type Repos struct {
	DRCs       drc.Repository
	Transfers  transfer.Repository
	Identities identity.Repository
	Principals principal.Repository
	Outbox     event.Outbox
}

type UnitOfWork interface {
	// WithinTx runs fn as the only mutation in flight; everything commits or nothing does.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinDrcTx is WithinTx with the DRC row locked and loaded up-front.
	WithinDrcTx(ctx context.Context, drcID ident.ID, fn func(r Repos, d *drc.DRC) error) error
	// Read runs fn against one consistent snapshot; reads may run concurrently.
	Read(ctx context.Context, fn func(r Repos) error) error
}
