package transfer

import (
	"errors"
	"testing"

	"tdr-registry/internal/domain/apperr"
	"tdr-registry/internal/domain/ident"
)

func buyers(keys ...string) []ident.ID {
	out := make([]ident.ID, len(keys))
	for i, k := range keys {
		out[i] = ident.MustFromString(k)
	}
	return out
}

func TestCheckFar(t *testing.T) {
	tests := []struct {
		far, avail uint64
		wantErr    error
	}{
		{far: 50, avail: 150},
		{far: 150, avail: 150},
		{far: 200, avail: 150, wantErr: ErrFarUnavailable},
		{far: 75, avail: 150, wantErr: ErrFarGranularity},
		{far: 0, avail: 150, wantErr: ErrFarGranularity},
	}
	for _, tt := range tests {
		err := CheckFar(tt.far, tt.avail)
		if tt.wantErr == nil && err != nil {
			t.Fatalf("far=%d: unexpected %v", tt.far, err)
		}
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) || !errors.Is(err, apperr.ErrInsufficientFar) {
				t.Fatalf("far=%d: want %v, got %v", tt.far, tt.wantErr, err)
			}
		}
	}
}

func TestAllocate_Even(t *testing.T) {
	owners, err := Allocate(100, buyers("b1", "b2", "b3"), nil)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	want := []uint64{34, 33, 33}
	var sum uint64
	for i, o := range owners {
		if o.AreaShare != want[i] {
			t.Fatalf("owner %d share = %d, want %d", i, o.AreaShare, want[i])
		}
		sum += o.AreaShare
	}
	if sum != 100 {
		t.Fatalf("sum = %d, want 100", sum)
	}
	if owners[0].OwnerID.Key() != "b1" || owners[2].OwnerID.Key() != "b3" {
		t.Fatalf("owner order not preserved")
	}
}

func TestAllocate_ExplicitShares(t *testing.T) {
	owners, err := Allocate(100, buyers("b1", "b2"), []uint64{70, 30})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if owners[0].AreaShare != 70 || owners[1].AreaShare != 30 {
		t.Fatalf("unexpected shares: %+v", owners)
	}

	bad := [][]uint64{
		{70},
		{70, 20},
		{70, 40},
		{100, 0},
	}
	for _, s := range bad {
		if _, err := Allocate(100, buyers("b1", "b2"), s); !errors.Is(err, ErrShareMismatch) {
			t.Fatalf("shares %v: want ErrShareMismatch, got %v", s, err)
		}
	}
}

func TestAllocate_BadBuyers(t *testing.T) {
	tests := []struct {
		name string
		in   []ident.ID
		want error
	}{
		{"empty", nil, ErrNoBuyers},
		{"duplicate", buyers("b1", "b1"), ErrDuplicateBuyer},
		{"zero id", []ident.ID{{}}, ErrEmptyBuyer},
	}
	for _, tt := range tests {
		_, err := Allocate(100, tt.in, nil)
		if !errors.Is(err, tt.want) || !errors.Is(err, apperr.ErrInvalidBuyerList) {
			t.Fatalf("%s: want %v, got %v", tt.name, tt.want, err)
		}
	}
}
