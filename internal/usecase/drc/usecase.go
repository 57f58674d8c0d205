package drc

import (
	"context"
	"errors"

	"tdr-registry/internal/domain/access"
	domain "tdr-registry/internal/domain/drc"
	"tdr-registry/internal/domain/event"
	"tdr-registry/internal/domain/ident"
	"tdr-registry/internal/domain/uow"
	"tdr-registry/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

type Usecase struct {
	uow uow.UnitOfWork
	log *zap.Logger
	m   *metrics.Metrics
}

func NewUsecase(tx uow.UnitOfWork, log *zap.Logger, m *metrics.Metrics) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = metrics.Nop()
	}
	return &Usecase{uow: tx, log: log, m: m}
}

// Create registers a new record. Status is always Available regardless of input.
func (u *Usecase) Create(ctx context.Context, caller access.Role, id ident.ID, in Record) (*DrcDTO, error) {
	if err := access.Authorize(caller, access.OpCreateDrc); err != nil {
		return nil, err
	}
	d := in.toDomain(id)
	d.Status = domain.StatusAvailable
	if err := d.Validate(); err != nil {
		return nil, err
	}

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		exists, err := r.DRCs.Exists(ctx, id)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicate
		}
		if err := r.DRCs.Create(ctx, d); err != nil {
			return err
		}
		return r.Outbox.Append(ctx, event.New(event.DrcCreated, string(caller), map[string]any{
			"drc_id":        id.String(),
			"far_credited":  d.FarCredited,
			"far_available": d.FarAvailable,
		}))
	})
	if err != nil {
		return nil, err
	}
	u.m.MutationsTotal.WithLabelValues(string(access.OpCreateDrc)).Inc()
	u.log.Info("drc created", zap.String("drc_id", id.Key()), zap.String("by", string(caller)))
	dto := ToDTO(d)
	return &dto, nil
}

// Update replaces the stored record and its owner list in one transaction.
func (u *Usecase) Update(ctx context.Context, caller access.Role, id ident.ID, in Record) (*DrcDTO, error) {
	if err := access.Authorize(caller, access.OpUpdateDrc); err != nil {
		return nil, err
	}
	next := in.toDomain(id)
	if err := next.Validate(); err != nil {
		return nil, err
	}

	err := u.uow.WithinDrcTx(ctx, id, func(r uow.Repos, cur *domain.DRC) error {
		next.CreatedAt = cur.CreatedAt
		if err := r.DRCs.Save(ctx, next); err != nil {
			return err
		}
		return r.Outbox.Append(ctx, event.New(event.DrcUpdated, string(caller), map[string]any{
			"drc_id":      id.String(),
			"status":      uint8(next.Status),
			"prev_status": uint8(cur.Status),
		}))
	})
	if err != nil {
		return nil, err
	}
	u.m.MutationsTotal.WithLabelValues(string(access.OpUpdateDrc)).Inc()
	u.log.Info("drc updated",
		zap.String("drc_id", id.Key()),
		zap.Stringer("status", next.Status),
		zap.String("by", string(caller)),
	)
	dto := ToDTO(next)
	return &dto, nil
}

// Get never fails on a missing record; it returns the zero DTO and callers
// check ID.IsZero().
func (u *Usecase) Get(ctx context.Context, id ident.ID) (DrcDTO, error) {
	var d *domain.DRC
	err := u.uow.Read(ctx, func(r uow.Repos) error {
		var err error
		d, err = r.DRCs.GetByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			d = nil
			return nil
		}
		return err
	})
	if err != nil {
		return DrcDTO{}, err
	}
	return ToDTO(d), nil
}

// History lists the transfers that drew on id, oldest first.
func (u *Usecase) History(ctx context.Context, id ident.ID) ([]TransferDTO, error) {
	out := []TransferDTO{}
	err := u.uow.Read(ctx, func(r uow.Repos) error {
		if ok, err := r.DRCs.Exists(ctx, id); err != nil {
			return err
		} else if !ok {
			return domain.ErrNotFound
		}
		ts, err := r.Transfers.ListBySource(ctx, id)
		if err != nil {
			return err
		}
		for _, t := range ts {
			out = append(out, TransferDTO{
				ApplicationID: t.ApplicationID,
				DerivedDrcID:  t.DerivedDrcID,
				Far:           t.Far,
				BuyerCount:    t.BuyerCount,
				CreatedAt:     t.CreatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
