package mysql

import (
	"context"
	"errors"
	"testing"

	drcDomain "tdr-registry/internal/domain/drc"
	"tdr-registry/internal/domain/ident"
	"tdr-registry/internal/testutil/sqlitedb"
)

func makeDrc(key string) *drcDomain.DRC {
	return &drcDomain.DRC{
		ID:                    ident.MustFromString(key),
		ApplicationID:         ident.MustFromString("app001"),
		NoticeID:              ident.MustFromString("notice001"),
		Status:                drcDomain.StatusAvailable,
		FarCredited:           150,
		FarAvailable:          150,
		AreaSurrendered:       10,
		CircleRateSurrendered: 1000,
		CircleRateUtilization: 1200,
		Owners: []drcDomain.Owner{
			{OwnerID: ident.MustFromString("user001"), AreaShare: 5},
			{OwnerID: ident.MustFromString("user002"), AreaShare: 5},
		},
	}
}

func TestDrc_CreateAndGet(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewDrcRepository(db)
	ctx := context.Background()

	d := makeDrc("12345")
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ID != d.ID || got.NoticeID != d.NoticeID || got.FarAvailable != 150 || got.CircleRateUtilization != 1200 {
		t.Fatalf("record mismatch: %+v", got)
	}
	if len(got.Owners) != 2 {
		t.Fatalf("want 2 owners, got %d", len(got.Owners))
	}
	if got.Owners[0].OwnerID != ident.MustFromString("user001") || got.Owners[1].OwnerID != ident.MustFromString("user002") {
		t.Fatalf("owner order not preserved: %+v", got.Owners)
	}

	ok, err := repo.Exists(ctx, d.ID)
	if err != nil || !ok {
		t.Fatalf("Exists: %v, %v", ok, err)
	}
}

func TestDrc_CreateDuplicate(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewDrcRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, makeDrc("12345")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, makeDrc("12345")); !errors.Is(err, drcDomain.ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}
}

func TestDrc_GetNotFound(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewDrcRepository(db)

	_, err := repo.GetByID(context.Background(), ident.MustFromString("missing"))
	if !errors.Is(err, drcDomain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	ok, err := repo.Exists(context.Background(), ident.MustFromString("missing"))
	if err != nil || ok {
		t.Fatalf("Exists: %v, %v", ok, err)
	}
}

func TestDrc_SaveReplacesOwners(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewDrcRepository(db)
	ctx := context.Background()

	d := makeDrc("12345")
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create: %v", err)
	}

	d.Status = drcDomain.StatusPartiallyTransferred
	d.FarAvailable = 100
	d.AreaSurrendered = 10
	d.Owners = []drcDomain.Owner{{OwnerID: ident.MustFromString("user003"), AreaShare: 10}}
	if err := repo.Save(ctx, d); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByIDForUpdate(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetByIDForUpdate: %v", err)
	}
	if got.Status != drcDomain.StatusPartiallyTransferred || got.FarAvailable != 100 {
		t.Fatalf("row not updated: %+v", got)
	}
	if len(got.Owners) != 1 || got.Owners[0].OwnerID != ident.MustFromString("user003") {
		t.Fatalf("owners not replaced: %+v", got.Owners)
	}
}

func TestDrc_SaveStatusZero(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewDrcRepository(db)
	ctx := context.Background()

	d := makeDrc("12345")
	d.Status = drcDomain.StatusPartiallyTransferred
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	d.Status = drcDomain.StatusAvailable
	if err := repo.Save(ctx, d); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != drcDomain.StatusAvailable {
		t.Fatalf("zero-valued status must be written, got %s", got.Status)
	}
}

func TestDrc_SaveMissing(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewDrcRepository(db)

	if err := repo.Save(context.Background(), makeDrc("nope")); !errors.Is(err, drcDomain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
