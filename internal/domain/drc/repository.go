package drc

import (
	"context"

	"tdr-registry/internal/domain/ident"
)

type Repository interface {
	// Create inserts the record and its owners; ErrDuplicate if the id exists.
	Create(ctx context.Context, d *DRC) error
	// GetByID loads the record with owners in list order; ErrNotFound if absent.
	GetByID(ctx context.Context, id ident.ID) (*DRC, error)
	// GetByIDForUpdate is GetByID holding a row lock until the tx ends.
	GetByIDForUpdate(ctx context.Context, id ident.ID) (*DRC, error)
	Exists(ctx context.Context, id ident.ID) (bool, error)
	// Save replaces the stored record and its whole owner list.
	Save(ctx context.Context, d *DRC) error
}
