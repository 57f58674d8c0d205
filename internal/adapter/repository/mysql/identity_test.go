package mysql

import (
	"context"
	"errors"
	"testing"

	"tdr-registry/internal/domain/ident"
	identityDomain "tdr-registry/internal/domain/identity"
	"tdr-registry/internal/testutil/sqlitedb"
)

const (
	addr1 = "0x1111111111111111111111111111111111111111"
	addr2 = "0x2222222222222222222222222222222222222222"
)

func TestIdentity_InsertAndLookups(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewIdentityRepository(db)
	ctx := context.Background()
	uid := ident.MustFromString("officer1")

	if err := repo.Insert(ctx, &identityDomain.Entry{Kind: identityDomain.KindOfficer, EntryID: uid, Account: addr1}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	fwd, err := repo.GetByEntryID(ctx, identityDomain.KindOfficer, uid)
	if err != nil || fwd.Account != addr1 {
		t.Fatalf("forward lookup: %+v, %v", fwd, err)
	}
	rev, err := repo.GetByAccount(ctx, identityDomain.KindOfficer, addr1)
	if err != nil || rev.EntryID != uid {
		t.Fatalf("reverse lookup: %+v, %v", rev, err)
	}

	// registries are independent
	if _, err := repo.GetByEntryID(ctx, identityDomain.KindUser, uid); !errors.Is(err, identityDomain.ErrNotFound) {
		t.Fatalf("user registry should be empty, got %v", err)
	}
	if err := repo.Insert(ctx, &identityDomain.Entry{Kind: identityDomain.KindUser, EntryID: uid, Account: addr1}); err != nil {
		t.Fatalf("same pair in another registry: %v", err)
	}
}

func TestIdentity_InsertDuplicate(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewIdentityRepository(db)
	ctx := context.Background()

	first := &identityDomain.Entry{Kind: identityDomain.KindUser, EntryID: ident.MustFromString("u1"), Account: addr1}
	if err := repo.Insert(ctx, first); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	tests := []struct {
		name string
		e    *identityDomain.Entry
	}{
		{"same id", &identityDomain.Entry{Kind: identityDomain.KindUser, EntryID: ident.MustFromString("u1"), Account: addr2}},
		{"same account", &identityDomain.Entry{Kind: identityDomain.KindUser, EntryID: ident.MustFromString("u2"), Account: addr1}},
	}
	for _, tt := range tests {
		if err := repo.Insert(ctx, tt.e); !errors.Is(err, identityDomain.ErrAlreadyExists) {
			t.Fatalf("%s: want ErrAlreadyExists, got %v", tt.name, err)
		}
	}
}

func TestIdentity_RepointDropsOldReverse(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewIdentityRepository(db)
	ctx := context.Background()
	uid := ident.MustFromString("officer1")

	if err := repo.Insert(ctx, &identityDomain.Entry{Kind: identityDomain.KindOfficer, EntryID: uid, Account: addr1}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := repo.Repoint(ctx, identityDomain.KindOfficer, uid, addr2); err != nil {
		t.Fatalf("Repoint: %v", err)
	}
	if _, err := repo.GetByAccount(ctx, identityDomain.KindOfficer, addr1); !errors.Is(err, identityDomain.ErrNotFound) {
		t.Fatalf("old account still resolves: %v", err)
	}
	rev, err := repo.GetByAccount(ctx, identityDomain.KindOfficer, addr2)
	if err != nil || rev.EntryID != uid {
		t.Fatalf("new account: %+v, %v", rev, err)
	}

	// no-op repoint is not an error
	if err := repo.Repoint(ctx, identityDomain.KindOfficer, uid, addr2); err != nil {
		t.Fatalf("Repoint to same account: %v", err)
	}
	if err := repo.Repoint(ctx, identityDomain.KindOfficer, ident.MustFromString("ghost"), addr1); !errors.Is(err, identityDomain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestIdentity_RepointToTakenAccount(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewIdentityRepository(db)
	ctx := context.Background()

	_ = repo.Insert(ctx, &identityDomain.Entry{Kind: identityDomain.KindUser, EntryID: ident.MustFromString("u1"), Account: addr1})
	_ = repo.Insert(ctx, &identityDomain.Entry{Kind: identityDomain.KindUser, EntryID: ident.MustFromString("u2"), Account: addr2})

	err := repo.Repoint(ctx, identityDomain.KindUser, ident.MustFromString("u2"), addr1)
	if !errors.Is(err, identityDomain.ErrAccountTaken) {
		t.Fatalf("want ErrAccountTaken, got %v", err)
	}
}

func TestIdentity_Remove(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewIdentityRepository(db)
	ctx := context.Background()
	uid := ident.MustFromString("u1")

	_ = repo.Insert(ctx, &identityDomain.Entry{Kind: identityDomain.KindUser, EntryID: uid, Account: addr1})
	if err := repo.Remove(ctx, identityDomain.KindUser, uid); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := repo.GetByAccount(ctx, identityDomain.KindUser, addr1); !errors.Is(err, identityDomain.ErrNotFound) {
		t.Fatalf("reverse entry survived: %v", err)
	}
	if err := repo.Remove(ctx, identityDomain.KindUser, uid); !errors.Is(err, identityDomain.ErrNotFound) {
		t.Fatalf("second Remove: want ErrNotFound, got %v", err)
	}
}

func TestIdentity_OfficerRoleUpsert(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewIdentityRepository(db)
	ctx := context.Background()
	uid := ident.MustFromString("officer1")

	if err := repo.PutOfficerRole(ctx, &identityDomain.OfficerRole{OfficerID: uid, Role: 1, Department: 2, Zone: 3}); err != nil {
		t.Fatalf("PutOfficerRole: %v", err)
	}
	if err := repo.PutOfficerRole(ctx, &identityDomain.OfficerRole{OfficerID: uid, Role: 4, Department: 5, Zone: 6}); err != nil {
		t.Fatalf("PutOfficerRole upsert: %v", err)
	}
	got, err := repo.GetOfficerRole(ctx, uid)
	if err != nil {
		t.Fatalf("GetOfficerRole: %v", err)
	}
	if got.Role != 4 || got.Department != 5 || got.Zone != 6 {
		t.Fatalf("metadata not replaced: %+v", got)
	}

	if err := repo.DeleteOfficerRole(ctx, uid); err != nil {
		t.Fatalf("DeleteOfficerRole: %v", err)
	}
	if _, err := repo.GetOfficerRole(ctx, uid); !errors.Is(err, identityDomain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
