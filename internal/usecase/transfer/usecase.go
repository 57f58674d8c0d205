package transfer

import (
	"context"
	"errors"
	"fmt"

	"tdr-registry/internal/domain/access"
	"tdr-registry/internal/domain/apperr"
	"tdr-registry/internal/domain/application"
	drcDomain "tdr-registry/internal/domain/drc"
	"tdr-registry/internal/domain/event"
	"tdr-registry/internal/domain/ident"
	"tdr-registry/internal/domain/identity"
	domain "tdr-registry/internal/domain/transfer"
	"tdr-registry/internal/domain/uow"
	"tdr-registry/internal/infrastructure/metrics"
	"tdr-registry/pkg/id"

	"go.uber.org/zap"
)

var (
	ErrExceedsRequested  = fmt.Errorf("far exceeds what the application requested: %w", apperr.ErrInsufficientFar)
	ErrUnregisteredBuyer = fmt.Errorf("buyer is not a registered user: %w", apperr.ErrInvalidBuyerList)
)

type Usecase struct {
	uow  uow.UnitOfWork
	opts Options
	log  *zap.Logger
	m    *metrics.Metrics
}

func NewUsecase(tx uow.UnitOfWork, opts Options, log *zap.Logger, m *metrics.Metrics) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = metrics.Nop()
	}
	return &Usecase{uow: tx, opts: opts, log: log, m: m}
}

// CreateTransferApplication moves Far from the source record into a new record
// owned by the buyers. Every check runs before anything is written.
func (u *Usecase) CreateTransferApplication(ctx context.Context, caller access.Role, in Input) (*Result, error) {
	res, err := u.transfer(ctx, caller, in)
	outcome := "ok"
	if err != nil {
		outcome = outcomeOf(err)
		u.log.Warn("transfer rejected",
			zap.String("source", in.SourceDrcID.Key()),
			zap.String("application", in.ApplicationID.Key()),
			zap.Uint64("far", in.Far),
			zap.Error(err),
		)
	}
	u.m.TransfersTotal.WithLabelValues(outcome).Inc()
	return res, err
}

func (u *Usecase) transfer(ctx context.Context, caller access.Role, in Input) (*Result, error) {
	if err := access.Authorize(caller, access.OpTransfer); err != nil {
		return nil, err
	}
	if in.ApplicationID.IsZero() {
		return nil, fmt.Errorf("application id is empty: %w", apperr.ErrInvalidInvariant)
	}

	// The workflow tables are not part of the registry's unit of work; read them first.
	var app *application.Application
	if u.opts.Applications != nil {
		var err error
		app, err = u.opts.Applications.Get(ctx, in.ApplicationID)
		if err != nil {
			return nil, err
		}
	}

	derivedID := id.Derive(in.SourceDrcID, in.ApplicationID)
	var res *Result
	err := u.uow.WithinDrcTx(ctx, in.SourceDrcID, func(r uow.Repos, src *drcDomain.DRC) error {
		// a spent application slot is Duplicate whatever else is wrong with the call
		_, err := r.Transfers.GetByApplicationID(ctx, in.ApplicationID)
		switch {
		case err == nil:
			return domain.ErrApplicationUsed
		case !errors.Is(err, domain.ErrNotFound):
			return err
		}
		exists, err := r.DRCs.Exists(ctx, derivedID)
		if err != nil {
			return err
		}
		if exists {
			return drcDomain.ErrDuplicate
		}

		if err := domain.CheckFar(in.Far, src.FarAvailable); err != nil {
			return err
		}
		owners, err := domain.Allocate(in.Far, in.BuyerIDs, in.Shares)
		if err != nil {
			return err
		}
		if app != nil && in.Far > app.FarRequested {
			return ErrExceedsRequested
		}
		if u.opts.RequireRegisteredBuyers {
			if err := registered(ctx, r, in.BuyerIDs); err != nil {
				return err
			}
		}

		src.FarAvailable -= in.Far
		src.Status = drcDomain.StatusAfterTransfer(src.FarAvailable)
		derived := &drcDomain.DRC{
			ID:                    derivedID,
			ApplicationID:         in.ApplicationID,
			NoticeID:              src.NoticeID,
			Status:                drcDomain.StatusAvailable,
			FarCredited:           in.Far,
			FarAvailable:          in.Far,
			AreaSurrendered:       in.Far,
			CircleRateSurrendered: src.CircleRateSurrendered,
			CircleRateUtilization: src.CircleRateUtilization,
			Owners:                owners,
		}
		if err := derived.Validate(); err != nil {
			return err
		}

		if err := r.DRCs.Save(ctx, src); err != nil {
			return err
		}
		if err := r.DRCs.Create(ctx, derived); err != nil {
			return err
		}
		if err := r.Transfers.Create(ctx, &domain.Transfer{
			ApplicationID: in.ApplicationID,
			SourceDrcID:   src.ID,
			DerivedDrcID:  derivedID,
			Far:           in.Far,
			BuyerCount:    len(owners),
		}); err != nil {
			return err
		}
		if err := r.Outbox.Append(ctx, event.New(event.TransferCompleted, string(caller), map[string]any{
			"source_drc_id":  src.ID.String(),
			"new_drc_id":     derivedID.String(),
			"application_id": in.ApplicationID.String(),
			"far":            in.Far,
		})); err != nil {
			return err
		}

		res = &Result{
			SourceDrcID:       src.ID,
			DerivedDrcID:      derivedID,
			ApplicationID:     in.ApplicationID,
			Far:               in.Far,
			SourceAvailable:   src.FarAvailable,
			SourceStatus:      uint8(src.Status),
			SourceStatusLabel: src.Status.String(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.m.FarTransferred.Add(float64(in.Far))
	u.log.Info("transfer completed",
		zap.String("source", in.SourceDrcID.Key()),
		zap.String("derived", derivedID.String()),
		zap.String("application", in.ApplicationID.Key()),
		zap.Uint64("far", in.Far),
		zap.Uint64("remaining", res.SourceAvailable),
	)
	return res, nil
}

func registered(ctx context.Context, r uow.Repos, buyers []ident.ID) error {
	for _, b := range buyers {
		_, err := r.Identities.GetByEntryID(ctx, identity.KindUser, b)
		if errors.Is(err, identity.ErrNotFound) {
			return fmt.Errorf("%s: %w", b.Key(), ErrUnregisteredBuyer)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, apperr.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, apperr.ErrNotFound):
		return "not_found"
	case errors.Is(err, apperr.ErrDuplicate):
		return "duplicate"
	case errors.Is(err, apperr.ErrInsufficientFar):
		return "insufficient_far"
	case errors.Is(err, apperr.ErrInvalidBuyerList):
		return "invalid_buyers"
	case errors.Is(err, apperr.ErrInvalidInvariant):
		return "invalid"
	}
	return "error"
}
