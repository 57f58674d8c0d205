package transfer

import (
	"context"

	"tdr-registry/internal/domain/ident"
)

type Repository interface {
	Create(ctx context.Context, t *Transfer) error
	GetByApplicationID(ctx context.Context, applicationID ident.ID) (*Transfer, error)
	ListBySource(ctx context.Context, sourceDrcID ident.ID) ([]Transfer, error)
}
