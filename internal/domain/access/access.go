// Package access is the static permission table for every mutating operation.
// Callers resolve a principal to a Role first and pass it in explicitly.
package access

import (
	"fmt"

	"tdr-registry/internal/domain/apperr"
)

type Role string

const (
	RoleNone       Role = ""
	RoleOwner      Role = "owner"
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleTdrManager Role = "tdr_manager"
)

type Operation string

const (
	OpSetAdmin      Operation = "principal.set_admin"
	OpSetManager    Operation = "principal.set_manager"
	OpSetTdrManager Operation = "principal.set_tdr_manager"

	OpManageUser     Operation = "identity.user"
	OpManageOfficer  Operation = "identity.officer"
	OpManageVerifier Operation = "identity.verifier"
	OpManageApprover Operation = "identity.approver"
	OpManageIssuer   Operation = "identity.issuer"

	OpCreateDrc Operation = "drc.create"
	OpUpdateDrc Operation = "drc.update"
	OpTransfer  Operation = "drc.transfer"
)

var permissions = map[Operation][]Role{
	OpSetAdmin:      {RoleOwner},
	OpSetManager:    {RoleAdmin},
	OpSetTdrManager: {RoleManager},

	OpManageUser:     {RoleManager},
	OpManageOfficer:  {RoleManager},
	OpManageVerifier: {RoleAdmin},
	OpManageApprover: {RoleAdmin},
	OpManageIssuer:   {RoleAdmin},

	OpCreateDrc: {RoleManager, RoleTdrManager},
	OpUpdateDrc: {RoleManager, RoleTdrManager},
	OpTransfer:  {RoleManager, RoleTdrManager},
}

// Allowed reports whether role may perform op. Unknown operations are denied.
func Allowed(role Role, op Operation) bool {
	if role == RoleNone {
		return false
	}
	for _, r := range permissions[op] {
		if r == role {
			return true
		}
	}
	return false
}

func Authorize(role Role, op Operation) error {
	if Allowed(role, op) {
		return nil
	}
	if role == RoleNone {
		return fmt.Errorf("%s: no role: %w", op, apperr.ErrUnauthorized)
	}
	return fmt.Errorf("%s: role %s: %w", op, role, apperr.ErrUnauthorized)
}

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleManager, RoleTdrManager:
		return true
	}
	return false
}
