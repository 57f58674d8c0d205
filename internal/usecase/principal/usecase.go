package principal

import (
	"context"
	"errors"

	"tdr-registry/internal/domain/access"
	"tdr-registry/internal/domain/event"
	"tdr-registry/internal/domain/identity"
	domain "tdr-registry/internal/domain/principal"
	"tdr-registry/internal/domain/uow"

	"go.uber.org/zap"
)

// Usecase owns the role slots. Each slot is reassigned only by the slot above it.
type Usecase struct {
	uow uow.UnitOfWork
	log *zap.Logger
}

func NewUsecase(tx uow.UnitOfWork, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{uow: tx, log: log}
}

// Seed installs configured accounts into empty slots. Slots already assigned
// keep their account, so restarts do not undo runtime reassignments.
func (u *Usecase) Seed(ctx context.Context, s Seed) error {
	slots := []struct {
		slot    access.Role
		account string
	}{
		{access.RoleOwner, s.Owner},
		{access.RoleAdmin, s.Admin},
		{access.RoleManager, s.Manager},
		{access.RoleTdrManager, s.TdrManager},
	}
	return u.uow.WithinTx(ctx, func(r uow.Repos) error {
		for _, sl := range slots {
			if sl.account == "" {
				continue
			}
			account, err := identity.NormalizeAccount(sl.account)
			if err != nil {
				return err
			}
			_, err = r.Principals.Get(ctx, sl.slot)
			switch {
			case err == nil:
				continue
			case !errors.Is(err, domain.ErrNotFound):
				return err
			}
			if err := r.Principals.Put(ctx, &domain.Principal{Slot: sl.slot, Account: account}); err != nil {
				return err
			}
			u.log.Info("principal seeded", zap.String("slot", string(sl.slot)), zap.String("account", account))
		}
		return nil
	})
}

// Set reassigns slot to account on behalf of caller.
func (u *Usecase) Set(ctx context.Context, caller access.Role, slot access.Role, account string) (*PrincipalDTO, error) {
	op, err := domain.SetterOp(slot)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(caller, op); err != nil {
		return nil, err
	}
	account, err = identity.NormalizeAccount(account)
	if err != nil {
		return nil, err
	}

	var dto *PrincipalDTO
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		holder, err := r.Principals.GetByAccount(ctx, account)
		switch {
		case err == nil && holder.Slot != slot:
			return domain.ErrAccountTaken
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return err
		}
		p := &domain.Principal{Slot: slot, Account: account}
		if err := r.Principals.Put(ctx, p); err != nil {
			return err
		}
		ev := event.New(event.PrincipalSet, string(caller), map[string]any{
			"slot":    string(slot),
			"account": account,
		})
		if err := r.Outbox.Append(ctx, ev); err != nil {
			return err
		}
		dto = &PrincipalDTO{Slot: string(p.Slot), Account: p.Account, UpdatedAt: p.UpdatedAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info("principal set", zap.String("slot", string(slot)), zap.String("by", string(caller)))
	return dto, nil
}

func (u *Usecase) SetAdmin(ctx context.Context, caller access.Role, account string) (*PrincipalDTO, error) {
	return u.Set(ctx, caller, access.RoleAdmin, account)
}

func (u *Usecase) SetManager(ctx context.Context, caller access.Role, account string) (*PrincipalDTO, error) {
	return u.Set(ctx, caller, access.RoleManager, account)
}

func (u *Usecase) SetTdrManager(ctx context.Context, caller access.Role, account string) (*PrincipalDTO, error) {
	return u.Set(ctx, caller, access.RoleTdrManager, account)
}

// Resolve maps a pre-authenticated account to its role; unknown accounts get RoleNone.
func (u *Usecase) Resolve(ctx context.Context, account string) (access.Role, error) {
	account, err := identity.NormalizeAccount(account)
	if err != nil {
		return access.RoleNone, err
	}
	role := access.RoleNone
	err = u.uow.Read(ctx, func(r uow.Repos) error {
		p, err := r.Principals.GetByAccount(ctx, account)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		role = p.Slot
		return nil
	})
	return role, err
}

func (u *Usecase) Get(ctx context.Context, slot access.Role) (*PrincipalDTO, error) {
	if !slot.Valid() {
		return nil, domain.ErrUnknownSlot
	}
	var dto *PrincipalDTO
	err := u.uow.Read(ctx, func(r uow.Repos) error {
		p, err := r.Principals.Get(ctx, slot)
		if err != nil {
			return err
		}
		dto = &PrincipalDTO{Slot: string(p.Slot), Account: p.Account, UpdatedAt: p.UpdatedAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}
