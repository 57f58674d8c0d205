package mysql

import (
	"context"
	"errors"

	"tdr-registry/internal/domain/access"
	principalDomain "tdr-registry/internal/domain/principal"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PrincipalRepository struct{ db *gorm.DB }

func NewPrincipalRepository(db *gorm.DB) *PrincipalRepository { return &PrincipalRepository{db: db} }

func (r *PrincipalRepository) Get(ctx context.Context, slot access.Role) (*principalDomain.Principal, error) {
	return r.first(ctx, "slot = ?", slot)
}

func (r *PrincipalRepository) GetByAccount(ctx context.Context, account string) (*principalDomain.Principal, error) {
	return r.first(ctx, "account = ?", account)
}

func (r *PrincipalRepository) first(ctx context.Context, where string, arg any) (*principalDomain.Principal, error) {
	var out principalDomain.Principal
	err := r.db.WithContext(ctx).Where(where, arg).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, principalDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PrincipalRepository) Put(ctx context.Context, p *principalDomain.Principal) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot"}},
			DoUpdates: clause.AssignmentColumns([]string{"account", "updated_at"}),
		}).
		Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return principalDomain.ErrAccountTaken
	}
	return err
}
