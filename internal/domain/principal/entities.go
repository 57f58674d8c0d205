package principal

import (
	"fmt"
	"time"

	"tdr-registry/internal/domain/access"
	"tdr-registry/internal/domain/apperr"
)

var (
	ErrNotFound     = fmt.Errorf("principal %w", apperr.ErrNotFound)
	ErrAccountTaken = fmt.Errorf("account already holds another role: %w", apperr.ErrDuplicate)
	ErrUnknownSlot  = fmt.Errorf("unknown principal slot: %w", apperr.ErrInvalidInvariant)
)

// Principal binds a role slot to the single account that holds it.
type Principal struct {
	Slot      access.Role `gorm:"column:slot;primaryKey;size:32" json:"slot"`
	Account   string      `gorm:"column:account;size:42;not null;uniqueIndex" json:"account"`
	UpdatedAt time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Principal) TableName() string { return "principals" }

// SetterOp is the operation needed to (re)assign slot.
func SetterOp(slot access.Role) (access.Operation, error) {
	switch slot {
	case access.RoleAdmin:
		return access.OpSetAdmin, nil
	case access.RoleManager:
		return access.OpSetManager, nil
	case access.RoleTdrManager:
		return access.OpSetTdrManager, nil
	}
	return "", ErrUnknownSlot
}
