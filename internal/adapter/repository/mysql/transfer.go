package mysql

import (
	"context"
	"errors"

	"tdr-registry/internal/domain/ident"
	transferDomain "tdr-registry/internal/domain/transfer"

	"gorm.io/gorm"
)

type TransferRepository struct{ db *gorm.DB }

func NewTransferRepository(db *gorm.DB) *TransferRepository { return &TransferRepository{db: db} }

func (r *TransferRepository) Create(ctx context.Context, t *transferDomain.Transfer) error {
	err := r.db.WithContext(ctx).Create(t).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return transferDomain.ErrApplicationUsed
	}
	return err
}

func (r *TransferRepository) GetByApplicationID(ctx context.Context, applicationID ident.ID) (*transferDomain.Transfer, error) {
	var out transferDomain.Transfer
	err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, transferDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *TransferRepository) ListBySource(ctx context.Context, sourceDrcID ident.ID) ([]transferDomain.Transfer, error) {
	var out []transferDomain.Transfer
	err := r.db.WithContext(ctx).
		Where("source_drc_id = ?", sourceDrcID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
