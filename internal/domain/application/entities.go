// Package application is the read-only view of the notice/application workflow
// that the transfer engine consumes. The workflow owns these tables.
package application

import (
	"context"
	"fmt"
	"time"

	"tdr-registry/internal/domain/apperr"
	"tdr-registry/internal/domain/ident"
)

type Status uint8

const (
	StatusPending Status = iota
	StatusSentForVerification
	StatusVerified
	StatusApproved
	StatusRejected
)

var ErrNotFound = fmt.Errorf("application %w", apperr.ErrNotFound)

type Application struct {
	ApplicationID ident.ID    `gorm:"column:application_id;primaryKey;type:char(64)" json:"application_id"`
	NoticeID      ident.ID    `gorm:"column:notice_id;type:char(64);not null;index:idx_tdr_applications_notice,priority:1" json:"notice_id"`
	NoticeIndex   int         `gorm:"column:notice_index;not null;index:idx_tdr_applications_notice,priority:2" json:"-"`
	Place         string      `gorm:"column:place;size:64" json:"place"`
	FarRequested  uint64      `gorm:"column:far_requested;not null" json:"far_requested"`
	Status        Status      `gorm:"column:status;not null;default:0" json:"status"`
	Applicants    []Applicant `gorm:"-" json:"applicants"`
	AppliedAt     time.Time   `gorm:"column:applied_at" json:"applied_at"`
}

func (Application) TableName() string { return "tdr_applications" }

type Applicant struct {
	ID            uint64   `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ApplicationID ident.ID `gorm:"column:application_id;type:char(64);not null;index" json:"-"`
	Position      int      `gorm:"column:position;not null" json:"-"`
	UserID        ident.ID `gorm:"column:user_id;type:char(64);not null" json:"user_id"`
	HasSigned     bool     `gorm:"column:has_signed;not null" json:"has_user_signed"`
}

func (Applicant) TableName() string { return "tdr_applicants" }

// Reader is the interface consumed from the application workflow.
type Reader interface {
	Get(ctx context.Context, id ident.ID) (*Application, error)
	// ApplicationAt returns the index-th application filed under a notice.
	ApplicationAt(ctx context.Context, noticeID ident.ID, index int) (ident.ID, error)
}
