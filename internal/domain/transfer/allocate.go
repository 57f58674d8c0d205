package transfer

import (
	"fmt"

	"tdr-registry/internal/domain/apperr"
	"tdr-registry/internal/domain/drc"
	"tdr-registry/internal/domain/ident"
)

var (
	ErrNoBuyers       = fmt.Errorf("no buyers: %w", apperr.ErrInvalidBuyerList)
	ErrDuplicateBuyer = fmt.Errorf("buyer listed twice: %w", apperr.ErrInvalidBuyerList)
	ErrEmptyBuyer     = fmt.Errorf("empty buyer id: %w", apperr.ErrInvalidBuyerList)
	ErrShareMismatch  = fmt.Errorf("shares do not match buyers or transferred far: %w", apperr.ErrInvalidBuyerList)

	ErrFarUnavailable = fmt.Errorf("far exceeds available: %w", apperr.ErrInsufficientFar)
	ErrFarGranularity = fmt.Errorf("far must be a positive multiple of %d: %w", drc.FarUnit, apperr.ErrInsufficientFar)
)

// CheckFar validates the requested quantity against what the source still has.
func CheckFar(far, available uint64) error {
	if far == 0 || far%drc.FarUnit != 0 {
		return ErrFarGranularity
	}
	if far > available {
		return ErrFarUnavailable
	}
	return nil
}

// CheckBuyers rejects empty lists, empty ids and repeats.
func CheckBuyers(buyers []ident.ID) error {
	if len(buyers) == 0 {
		return ErrNoBuyers
	}
	seen := make(map[ident.ID]struct{}, len(buyers))
	for _, b := range buyers {
		if b.IsZero() {
			return ErrEmptyBuyer
		}
		if _, dup := seen[b]; dup {
			return ErrDuplicateBuyer
		}
		seen[b] = struct{}{}
	}
	return nil
}

// Allocate splits far across buyers. With explicit shares they must line up with
// buyers and sum to far; otherwise far is split evenly and the remainder goes one
// unit at a time to the first buyers.
func Allocate(far uint64, buyers []ident.ID, shares []uint64) ([]drc.Owner, error) {
	if err := CheckBuyers(buyers); err != nil {
		return nil, err
	}
	owners := make([]drc.Owner, len(buyers))
	if len(shares) > 0 {
		if len(shares) != len(buyers) {
			return nil, ErrShareMismatch
		}
		var sum uint64
		for i, s := range shares {
			if s == 0 || s > far-sum {
				return nil, ErrShareMismatch
			}
			sum += s
			owners[i] = drc.Owner{OwnerID: buyers[i], AreaShare: s}
		}
		if sum != far {
			return nil, ErrShareMismatch
		}
		return owners, nil
	}

	n := uint64(len(buyers))
	base, rem := far/n, far%n
	for i, b := range buyers {
		share := base
		if uint64(i) < rem {
			share++
		}
		owners[i] = drc.Owner{OwnerID: b, AreaShare: share}
	}
	return owners, nil
}
