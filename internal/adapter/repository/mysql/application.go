package mysql

import (
	"context"
	"errors"

	appDomain "tdr-registry/internal/domain/application"
	"tdr-registry/internal/domain/ident"

	"gorm.io/gorm"
)

// ApplicationReader reads the workflow-owned application tables. It never writes.
type ApplicationReader struct{ db *gorm.DB }

func NewApplicationReader(db *gorm.DB) *ApplicationReader { return &ApplicationReader{db: db} }

func (r *ApplicationReader) Get(ctx context.Context, id ident.ID) (*appDomain.Application, error) {
	var out appDomain.Application
	err := r.db.WithContext(ctx).Where("application_id = ?", id).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("application_id = ?", id).
		Order("position ASC").
		Find(&out.Applicants).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ApplicationReader) ApplicationAt(ctx context.Context, noticeID ident.ID, index int) (ident.ID, error) {
	var out appDomain.Application
	err := r.db.WithContext(ctx).
		Select("application_id").
		Where("notice_id = ? AND notice_index = ?", noticeID, index).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ident.ID{}, appDomain.ErrNotFound
	}
	return out.ApplicationID, err
}
