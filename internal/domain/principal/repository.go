package principal

import (
	"context"

	"tdr-registry/internal/domain/access"
)

type Repository interface {
	Get(ctx context.Context, slot access.Role) (*Principal, error)
	GetByAccount(ctx context.Context, account string) (*Principal, error)
	// Put upserts the slot.
	Put(ctx context.Context, p *Principal) error
}
