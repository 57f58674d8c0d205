package access

import (
	"errors"
	"testing"

	"tdr-registry/internal/domain/apperr"
)

func TestAuthorize_Table(t *testing.T) {
	tests := []struct {
		role Role
		op   Operation
		ok   bool
	}{
		{RoleOwner, OpSetAdmin, true},
		{RoleAdmin, OpSetAdmin, false},
		{RoleAdmin, OpSetManager, true},
		{RoleOwner, OpSetManager, false},
		{RoleManager, OpSetTdrManager, true},
		{RoleManager, OpManageUser, true},
		{RoleManager, OpManageOfficer, true},
		{RoleAdmin, OpManageUser, false},
		{RoleAdmin, OpManageVerifier, true},
		{RoleAdmin, OpManageApprover, true},
		{RoleAdmin, OpManageIssuer, true},
		{RoleManager, OpManageIssuer, false},
		{RoleManager, OpCreateDrc, true},
		{RoleTdrManager, OpUpdateDrc, true},
		{RoleTdrManager, OpTransfer, true},
		{RoleTdrManager, OpManageUser, false},
		{RoleAdmin, OpCreateDrc, false},
		{RoleOwner, OpTransfer, false},
		{RoleNone, OpCreateDrc, false},
		{RoleManager, Operation("unknown"), false},
	}
	for _, tt := range tests {
		err := Authorize(tt.role, tt.op)
		if tt.ok && err != nil {
			t.Fatalf("%s/%s: unexpected err %v", tt.role, tt.op, err)
		}
		if !tt.ok && !errors.Is(err, apperr.ErrUnauthorized) {
			t.Fatalf("%s/%s: want ErrUnauthorized, got %v", tt.role, tt.op, err)
		}
	}
}

func TestAdminAndManagerAreDisjoint(t *testing.T) {
	for op := range permissions {
		if Allowed(RoleAdmin, op) && Allowed(RoleManager, op) {
			t.Fatalf("operation %s allowed for both admin and manager", op)
		}
	}
}

func TestRole_Valid(t *testing.T) {
	if !RoleTdrManager.Valid() || RoleNone.Valid() || Role("root").Valid() {
		t.Fatal("unexpected Valid() result")
	}
}
