package drc

import (
	"fmt"
	"time"

	"tdr-registry/internal/domain/apperr"
	"tdr-registry/internal/domain/ident"
)

type Status uint8

const (
	StatusAvailable Status = iota
	StatusPartiallyTransferred
	StatusTransferred
	StatusUtilized
)

func (s Status) Valid() bool { return s <= StatusUtilized }

func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusPartiallyTransferred:
		return "partially_transferred"
	case StatusTransferred:
		return "transferred"
	case StatusUtilized:
		return "utilized"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// FarUnit is the granularity every FAR quantity must be a multiple of.
const FarUnit uint64 = 50

var (
	ErrNotFound  = fmt.Errorf("drc %w", apperr.ErrNotFound)
	ErrDuplicate = fmt.Errorf("drc %w", apperr.ErrDuplicate)
)

// DRC is a development rights certificate. Rows are never deleted; history is
// carried by status transitions.
type DRC struct {
	ID                    ident.ID  `gorm:"column:drc_id;primaryKey;type:char(64)" json:"id"`
	ApplicationID         ident.ID  `gorm:"column:application_id;type:char(64);not null;index" json:"application_id"`
	NoticeID              ident.ID  `gorm:"column:notice_id;type:char(64);not null;index" json:"notice_id"`
	Status                Status    `gorm:"column:status;not null;default:0" json:"status"`
	FarCredited           uint64    `gorm:"column:far_credited;not null" json:"far_credited"`
	FarAvailable          uint64    `gorm:"column:far_available;not null" json:"far_available"`
	AreaSurrendered       uint64    `gorm:"column:area_surrendered;not null" json:"area_surrendered"`
	CircleRateSurrendered uint64    `gorm:"column:circle_rate_surrendered;not null" json:"circle_rate_surrendered"`
	CircleRateUtilization uint64    `gorm:"column:circle_rate_utilization;not null" json:"circle_rate_utilization"`
	Owners                []Owner   `gorm:"-" json:"owners"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DRC) TableName() string { return "drcs" }

// Owner is one entry of a DRC's ordered owner list.
type Owner struct {
	ID        uint64   `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	DrcID     ident.ID `gorm:"column:drc_id;type:char(64);not null;index:idx_drc_owners_drc_position,priority:1" json:"-"`
	Position  int      `gorm:"column:position;not null;index:idx_drc_owners_drc_position,priority:2" json:"-"`
	OwnerID   ident.ID `gorm:"column:owner_id;type:char(64);not null;index" json:"user_id"`
	AreaShare uint64   `gorm:"column:area_share;not null" json:"area"`
}

func (Owner) TableName() string { return "drc_owners" }
