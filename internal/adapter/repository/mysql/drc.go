package mysql

import (
	"context"
	"errors"

	drcDomain "tdr-registry/internal/domain/drc"
	"tdr-registry/internal/domain/ident"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DrcRepository struct{ db *gorm.DB }

func NewDrcRepository(db *gorm.DB) *DrcRepository { return &DrcRepository{db: db} }

func (r *DrcRepository) Create(ctx context.Context, d *drcDomain.DRC) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return drcDomain.ErrDuplicate
		}
		return err
	}
	return r.insertOwners(ctx, d)
}

func (r *DrcRepository) GetByID(ctx context.Context, id ident.ID) (*drcDomain.DRC, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

func (r *DrcRepository) GetByIDForUpdate(ctx context.Context, id ident.ID) (*drcDomain.DRC, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *DrcRepository) get(ctx context.Context, q *gorm.DB, id ident.ID) (*drcDomain.DRC, error) {
	var out drcDomain.DRC
	if err := q.Where("drc_id = ?", id).First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, drcDomain.ErrNotFound
		}
		return nil, err
	}
	var owners []drcDomain.Owner
	if err := r.db.WithContext(ctx).
		Where("drc_id = ?", id).
		Order("position ASC").
		Find(&owners).Error; err != nil {
		return nil, err
	}
	out.Owners = owners
	return &out, nil
}

func (r *DrcRepository) Exists(ctx context.Context, id ident.ID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&drcDomain.DRC{}).Where("drc_id = ?", id).Count(&n).Error
	return n > 0, err
}

// Save rewrites the record row, then swaps the whole owner list.
func (r *DrcRepository) Save(ctx context.Context, d *drcDomain.DRC) error {
	res := r.db.WithContext(ctx).
		Model(&drcDomain.DRC{}).
		Where("drc_id = ?", d.ID).
		Select("application_id", "notice_id", "status", "far_credited", "far_available",
			"area_surrendered", "circle_rate_surrendered", "circle_rate_utilization", "updated_at").
		Updates(d)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// mysql reports zero for a matched row whose values did not change
		ok, err := r.Exists(ctx, d.ID)
		if err != nil {
			return err
		}
		if !ok {
			return drcDomain.ErrNotFound
		}
	}
	if err := r.db.WithContext(ctx).Where("drc_id = ?", d.ID).Delete(&drcDomain.Owner{}).Error; err != nil {
		return err
	}
	return r.insertOwners(ctx, d)
}

func (r *DrcRepository) insertOwners(ctx context.Context, d *drcDomain.DRC) error {
	if len(d.Owners) == 0 {
		return nil
	}
	for i := range d.Owners {
		d.Owners[i].ID = 0
		d.Owners[i].DrcID = d.ID
		d.Owners[i].Position = i
	}
	return r.db.WithContext(ctx).Create(&d.Owners).Error
}
