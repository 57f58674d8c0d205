package drc

import (
	"fmt"
	"math"

	"tdr-registry/internal/domain/apperr"
	"tdr-registry/internal/domain/ident"
)

var (
	ErrMissingID         = fmt.Errorf("drc id is empty: %w", apperr.ErrInvalidInvariant)
	ErrFarExceedsCredit  = fmt.Errorf("far available exceeds far credited: %w", apperr.ErrInvalidInvariant)
	ErrFarGranularity    = fmt.Errorf("far must be a multiple of %d: %w", FarUnit, apperr.ErrInvalidInvariant)
	ErrOwnerAreaMismatch = fmt.Errorf("owner area shares do not sum to area surrendered: %w", apperr.ErrInvalidInvariant)
	ErrInvalidOwner      = fmt.Errorf("owner list has an empty or repeated owner: %w", apperr.ErrInvalidInvariant)
	ErrInvalidStatus     = fmt.Errorf("unknown drc status: %w", apperr.ErrInvalidInvariant)
)

// Validate checks the conservation and granularity rules of a record.
func (d *DRC) Validate() error {
	if d.ID.IsZero() {
		return ErrMissingID
	}
	if !d.Status.Valid() {
		return ErrInvalidStatus
	}
	if d.FarAvailable > d.FarCredited {
		return ErrFarExceedsCredit
	}
	if d.FarCredited%FarUnit != 0 || d.FarAvailable%FarUnit != 0 {
		return ErrFarGranularity
	}
	var sum uint64
	seen := make(map[ident.ID]struct{}, len(d.Owners))
	for _, o := range d.Owners {
		if o.OwnerID.IsZero() {
			return ErrInvalidOwner
		}
		if _, dup := seen[o.OwnerID]; dup {
			return ErrInvalidOwner
		}
		seen[o.OwnerID] = struct{}{}
		if o.AreaShare > math.MaxUint64-sum {
			return ErrOwnerAreaMismatch
		}
		sum += o.AreaShare
	}
	if sum != d.AreaSurrendered {
		return ErrOwnerAreaMismatch
	}
	return nil
}

// StatusAfterTransfer is the status a source record moves to once its
// available FAR has been decremented.
func StatusAfterTransfer(farAvailable uint64) Status {
	if farAvailable == 0 {
		return StatusTransferred
	}
	return StatusPartiallyTransferred
}
