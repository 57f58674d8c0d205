package transfer

import (
	"fmt"
	"time"

	"tdr-registry/internal/domain/apperr"
	"tdr-registry/internal/domain/ident"
)

var (
	ErrNotFound = fmt.Errorf("transfer %w", apperr.ErrNotFound)
	// ErrApplicationUsed guards against spending the same application slot twice.
	ErrApplicationUsed = fmt.Errorf("application already used by a transfer: %w", apperr.ErrDuplicate)
)

// Transfer records one completed split of a source DRC under an application.
type Transfer struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ApplicationID ident.ID  `gorm:"column:application_id;type:char(64);not null;uniqueIndex:ux_transfers_application" json:"application_id"`
	SourceDrcID   ident.ID  `gorm:"column:source_drc_id;type:char(64);not null;index" json:"source_drc_id"`
	DerivedDrcID  ident.ID  `gorm:"column:derived_drc_id;type:char(64);not null;index" json:"derived_drc_id"`
	Far           uint64    `gorm:"column:far;not null" json:"far"`
	BuyerCount    int       `gorm:"column:buyer_count;not null" json:"buyer_count"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Transfer) TableName() string { return "transfers" }
