package mysql

import (
	"context"
	"errors"

	"tdr-registry/internal/domain/ident"
	identityDomain "tdr-registry/internal/domain/identity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IdentityRepository struct{ db *gorm.DB }

func NewIdentityRepository(db *gorm.DB) *IdentityRepository { return &IdentityRepository{db: db} }

func (r *IdentityRepository) Insert(ctx context.Context, e *identityDomain.Entry) error {
	err := r.db.WithContext(ctx).Create(e).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return identityDomain.ErrAlreadyExists
	}
	return err
}

func (r *IdentityRepository) GetByEntryID(ctx context.Context, kind identityDomain.Kind, id ident.ID) (*identityDomain.Entry, error) {
	return r.first(ctx, "kind = ? AND entry_id = ?", kind, id)
}

func (r *IdentityRepository) GetByAccount(ctx context.Context, kind identityDomain.Kind, account string) (*identityDomain.Entry, error) {
	return r.first(ctx, "kind = ? AND account = ?", kind, account)
}

func (r *IdentityRepository) first(ctx context.Context, where string, args ...any) (*identityDomain.Entry, error) {
	var out identityDomain.Entry
	err := r.db.WithContext(ctx).Where(where, args...).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, identityDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Repoint rewrites the account column of the existing row; the previous reverse
// entry disappears with the old value.
func (r *IdentityRepository) Repoint(ctx context.Context, kind identityDomain.Kind, id ident.ID, account string) error {
	res := r.db.WithContext(ctx).
		Model(&identityDomain.Entry{}).
		Where("kind = ? AND entry_id = ?", kind, id).
		Update("account", account)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return identityDomain.ErrAccountTaken
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// re-pointing to the current account changes nothing
		_, err := r.GetByEntryID(ctx, kind, id)
		return err
	}
	return nil
}

func (r *IdentityRepository) Remove(ctx context.Context, kind identityDomain.Kind, id ident.ID) error {
	res := r.db.WithContext(ctx).
		Where("kind = ? AND entry_id = ?", kind, id).
		Delete(&identityDomain.Entry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return identityDomain.ErrNotFound
	}
	return nil
}

func (r *IdentityRepository) PutOfficerRole(ctx context.Context, role *identityDomain.OfficerRole) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "officer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "department", "zone"}),
		}).
		Create(role).Error
}

func (r *IdentityRepository) GetOfficerRole(ctx context.Context, id ident.ID) (*identityDomain.OfficerRole, error) {
	var out identityDomain.OfficerRole
	err := r.db.WithContext(ctx).Where("officer_id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, identityDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *IdentityRepository) DeleteOfficerRole(ctx context.Context, id ident.ID) error {
	return r.db.WithContext(ctx).Where("officer_id = ?", id).Delete(&identityDomain.OfficerRole{}).Error
}
