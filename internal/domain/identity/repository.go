package identity

import (
	"context"

	"tdr-registry/internal/domain/ident"
)

type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	// GetByEntryID is the forward lookup; ErrNotFound if unmapped.
	GetByEntryID(ctx context.Context, kind Kind, id ident.ID) (*Entry, error)
	// GetByAccount is the reverse lookup; ErrNotFound if unmapped.
	GetByAccount(ctx context.Context, kind Kind, account string) (*Entry, error)
	// Repoint moves id to a new account, dropping the old reverse entry in the same write.
	Repoint(ctx context.Context, kind Kind, id ident.ID, account string) error
	Remove(ctx context.Context, kind Kind, id ident.ID) error

	PutOfficerRole(ctx context.Context, r *OfficerRole) error
	GetOfficerRole(ctx context.Context, id ident.ID) (*OfficerRole, error)
	DeleteOfficerRole(ctx context.Context, id ident.ID) error
}
