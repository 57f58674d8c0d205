package identity

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"tdr-registry/internal/domain/access"
	"tdr-registry/internal/domain/apperr"
	"tdr-registry/internal/domain/ident"
)

// Kind names one of the five independent id<->account registries.
type Kind string

const (
	KindUser     Kind = "user"
	KindOfficer  Kind = "officer"
	KindVerifier Kind = "verifier"
	KindApprover Kind = "approver"
	KindIssuer   Kind = "issuer"
)

var Kinds = []Kind{KindUser, KindOfficer, KindVerifier, KindApprover, KindIssuer}

var (
	ErrNotFound       = fmt.Errorf("identity %w", apperr.ErrNotFound)
	ErrAlreadyExists  = fmt.Errorf("identity id already mapped: %w", apperr.ErrDuplicate)
	ErrAccountTaken   = fmt.Errorf("account already mapped to another id: %w", apperr.ErrDuplicate)
	ErrUnknownKind    = fmt.Errorf("unknown identity kind: %w", apperr.ErrInvalidInvariant)
	ErrInvalidAccount = fmt.Errorf("account must be a 0x-prefixed 20-byte hex address: %w", apperr.ErrInvalidInvariant)
	ErrEmptyID        = fmt.Errorf("identity id is empty: %w", apperr.ErrInvalidInvariant)
)

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", ErrUnknownKind
}

// Operation is the permission a caller needs to mutate this registry.
func (k Kind) Operation() access.Operation {
	switch k {
	case KindUser:
		return access.OpManageUser
	case KindOfficer:
		return access.OpManageOfficer
	case KindVerifier:
		return access.OpManageVerifier
	case KindApprover:
		return access.OpManageApprover
	case KindIssuer:
		return access.OpManageIssuer
	}
	return access.Operation("identity." + string(k))
}

var reAccount = regexp.MustCompile(`^0x[a-f0-9]{40}$`)

// NormalizeAccount lowercases and validates an account address.
func NormalizeAccount(s string) (string, error) {
	a := strings.ToLower(strings.TrimSpace(s))
	if !reAccount.MatchString(a) {
		return "", ErrInvalidAccount
	}
	return a, nil
}

// Entry is one id<->account pair. The forward and reverse maps are the two
// unique indexes of this row, so they cannot disagree.
type Entry struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	Kind      Kind      `gorm:"column:kind;size:16;not null;uniqueIndex:ux_identity_kind_entry,priority:1;uniqueIndex:ux_identity_kind_account,priority:1" json:"kind"`
	EntryID   ident.ID  `gorm:"column:entry_id;type:char(64);not null;uniqueIndex:ux_identity_kind_entry,priority:2" json:"id"`
	Account   string    `gorm:"column:account;size:42;not null;uniqueIndex:ux_identity_kind_account,priority:2" json:"account"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Entry) TableName() string { return "identity_entries" }

// OfficerRole is the metadata carried by officer entries. The zero value is
// what lookups return for unknown officers.
type OfficerRole struct {
	OfficerID  ident.ID `gorm:"column:officer_id;primaryKey;type:char(64)" json:"user_id"`
	Role       uint8    `gorm:"column:role;not null" json:"role"`
	Department uint8    `gorm:"column:department;not null" json:"department"`
	Zone       uint8    `gorm:"column:zone;not null" json:"zone"`
}

func (OfficerRole) TableName() string { return "officer_roles" }
