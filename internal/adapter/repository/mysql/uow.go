package mysql

import (
	"context"
	"database/sql"
	"sync"

	"tdr-registry/internal/domain/drc"
	"tdr-registry/internal/domain/ident"
	"tdr-registry/internal/domain/uow"

	"gorm.io/gorm"
)

// GormUoW runs every mutation under one process-wide write lock, on top of the
// database transaction, so read-modify-write sequences never interleave.
type GormUoW struct {
	db *gorm.DB
	mu sync.RWMutex
}

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		DRCs:       &DrcRepository{db: tx},
		Transfers:  &TransferRepository{db: tx},
		Identities: &IdentityRepository{db: tx},
		Principals: &PrincipalRepository{db: tx},
		Outbox:     &OutboxRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinDrcTx(ctx context.Context, drcID ident.ID, fn func(r uow.Repos, d *drc.DRC) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the source row up-front
		d, err := r.DRCs.GetByIDForUpdate(ctx, drcID)
		if err != nil {
			return err
		}
		return fn(r, d)
	})
}

func (u *GormUoW) Read(ctx context.Context, fn func(r uow.Repos) error) error {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	}, &sql.TxOptions{ReadOnly: true})
}
