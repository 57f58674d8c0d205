package identity

import (
	"context"
	"errors"

	"tdr-registry/internal/domain/access"
	"tdr-registry/internal/domain/event"
	"tdr-registry/internal/domain/ident"
	domain "tdr-registry/internal/domain/identity"
	"tdr-registry/internal/domain/uow"

	"go.uber.org/zap"
)

// Directory is the only way to mutate the five id<->account registries.
type Directory struct {
	uow uow.UnitOfWork
	log *zap.Logger
}

func NewDirectory(tx uow.UnitOfWork, log *zap.Logger) *Directory {
	if log == nil {
		log = zap.NewNop()
	}
	return &Directory{uow: tx, log: log}
}

func prepare(caller access.Role, kind domain.Kind, id ident.ID) error {
	if _, err := domain.ParseKind(string(kind)); err != nil {
		return err
	}
	if err := access.Authorize(caller, kind.Operation()); err != nil {
		return err
	}
	if id.IsZero() {
		return domain.ErrEmptyID
	}
	return nil
}

func (d *Directory) Add(ctx context.Context, caller access.Role, kind domain.Kind, id ident.ID, account string) (*EntryDTO, error) {
	return d.add(ctx, caller, kind, id, account, nil)
}

func (d *Directory) AddOfficer(ctx context.Context, caller access.Role, in OfficerInput, account string) (*EntryDTO, error) {
	return d.add(ctx, caller, domain.KindOfficer, in.ID, account, officerRole(in))
}

func (d *Directory) add(ctx context.Context, caller access.Role, kind domain.Kind, id ident.ID, account string, meta *domain.OfficerRole) (*EntryDTO, error) {
	if err := prepare(caller, kind, id); err != nil {
		return nil, err
	}
	account, err := domain.NormalizeAccount(account)
	if err != nil {
		return nil, err
	}

	err = d.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := absent(r.Identities.GetByEntryID(ctx, kind, id)); err != nil {
			if errors.Is(err, errPresent) {
				return domain.ErrAlreadyExists
			}
			return err
		}
		if err := absent(r.Identities.GetByAccount(ctx, kind, account)); err != nil {
			if errors.Is(err, errPresent) {
				return domain.ErrAccountTaken
			}
			return err
		}
		if err := r.Identities.Insert(ctx, &domain.Entry{Kind: kind, EntryID: id, Account: account}); err != nil {
			return err
		}
		if meta != nil {
			if err := r.Identities.PutOfficerRole(ctx, meta); err != nil {
				return err
			}
		}
		return r.Outbox.Append(ctx, event.New(event.IdentityEvent(string(kind), "added"), string(caller), map[string]any{
			"id":      id.String(),
			"account": account,
		}))
	})
	if err != nil {
		return nil, err
	}
	d.log.Info("identity added", zap.String("kind", string(kind)), zap.String("id", id.String()))
	return &EntryDTO{Kind: string(kind), ID: id, Account: account}, nil
}

func (d *Directory) Update(ctx context.Context, caller access.Role, kind domain.Kind, id ident.ID, account string) (*EntryDTO, error) {
	return d.update(ctx, caller, kind, id, account, nil)
}

func (d *Directory) UpdateOfficer(ctx context.Context, caller access.Role, in OfficerInput, account string) (*EntryDTO, error) {
	return d.update(ctx, caller, domain.KindOfficer, in.ID, account, officerRole(in))
}

// update re-points id; the previous account stops resolving in the same write.
func (d *Directory) update(ctx context.Context, caller access.Role, kind domain.Kind, id ident.ID, account string, meta *domain.OfficerRole) (*EntryDTO, error) {
	if err := prepare(caller, kind, id); err != nil {
		return nil, err
	}
	account, err := domain.NormalizeAccount(account)
	if err != nil {
		return nil, err
	}

	var previous string
	err = d.uow.WithinTx(ctx, func(r uow.Repos) error {
		cur, err := r.Identities.GetByEntryID(ctx, kind, id)
		if err != nil {
			return err
		}
		previous = cur.Account
		holder, err := r.Identities.GetByAccount(ctx, kind, account)
		switch {
		case err == nil && holder.EntryID != id:
			return domain.ErrAccountTaken
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return err
		}
		if err := r.Identities.Repoint(ctx, kind, id, account); err != nil {
			return err
		}
		if meta != nil {
			if err := r.Identities.PutOfficerRole(ctx, meta); err != nil {
				return err
			}
		}
		return r.Outbox.Append(ctx, event.New(event.IdentityEvent(string(kind), "updated"), string(caller), map[string]any{
			"id":      id.String(),
			"account": account,
		}))
	})
	if err != nil {
		return nil, err
	}
	d.log.Info("identity updated",
		zap.String("kind", string(kind)),
		zap.String("id", id.String()),
		zap.String("previous", previous),
	)
	return &EntryDTO{Kind: string(kind), ID: id, Account: account}, nil
}

// Delete clears both directions and, for officers, the role metadata.
func (d *Directory) Delete(ctx context.Context, caller access.Role, kind domain.Kind, id ident.ID) error {
	if err := prepare(caller, kind, id); err != nil {
		return err
	}
	err := d.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Identities.Remove(ctx, kind, id); err != nil {
			return err
		}
		if kind == domain.KindOfficer {
			if err := r.Identities.DeleteOfficerRole(ctx, id); err != nil {
				return err
			}
		}
		return r.Outbox.Append(ctx, event.New(event.IdentityEvent(string(kind), "deleted"), string(caller), map[string]any{
			"id": id.String(),
		}))
	})
	if err != nil {
		return err
	}
	d.log.Info("identity deleted", zap.String("kind", string(kind)), zap.String("id", id.String()))
	return nil
}

// GetID is the reverse lookup. Unmapped accounts yield the empty id, not an error.
func (d *Directory) GetID(ctx context.Context, kind domain.Kind, account string) (ident.ID, error) {
	if _, err := domain.ParseKind(string(kind)); err != nil {
		return ident.ID{}, err
	}
	account, err := domain.NormalizeAccount(account)
	if err != nil {
		return ident.ID{}, err
	}
	var out ident.ID
	err = d.uow.Read(ctx, func(r uow.Repos) error {
		e, err := r.Identities.GetByAccount(ctx, kind, account)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		out = e.EntryID
		return nil
	})
	return out, err
}

// GetAccount is the forward lookup. Unmapped ids yield "".
func (d *Directory) GetAccount(ctx context.Context, kind domain.Kind, id ident.ID) (string, error) {
	if _, err := domain.ParseKind(string(kind)); err != nil {
		return "", err
	}
	var out string
	err := d.uow.Read(ctx, func(r uow.Repos) error {
		e, err := r.Identities.GetByEntryID(ctx, kind, id)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		out = e.Account
		return nil
	})
	return out, err
}

// GetRole returns the officer metadata, or the zero struct if id is unknown.
func (d *Directory) GetRole(ctx context.Context, id ident.ID) (domain.OfficerRole, error) {
	var out domain.OfficerRole
	err := d.uow.Read(ctx, func(r uow.Repos) error {
		var err error
		out, err = roleOf(ctx, r, id)
		return err
	})
	return out, err
}

// GetRoleByAccount resolves the officer id through the reverse map first.
func (d *Directory) GetRoleByAccount(ctx context.Context, account string) (domain.OfficerRole, error) {
	account, err := domain.NormalizeAccount(account)
	if err != nil {
		return domain.OfficerRole{}, err
	}
	var out domain.OfficerRole
	err = d.uow.Read(ctx, func(r uow.Repos) error {
		e, err := r.Identities.GetByAccount(ctx, domain.KindOfficer, account)
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		out, err = roleOf(ctx, r, e.EntryID)
		return err
	})
	return out, err
}

func roleOf(ctx context.Context, r uow.Repos, id ident.ID) (domain.OfficerRole, error) {
	if id.IsZero() {
		return domain.OfficerRole{}, nil
	}
	role, err := r.Identities.GetOfficerRole(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.OfficerRole{}, nil
	}
	if err != nil {
		return domain.OfficerRole{}, err
	}
	return *role, nil
}

func officerRole(in OfficerInput) *domain.OfficerRole {
	return &domain.OfficerRole{OfficerID: in.ID, Role: in.Role, Department: in.Department, Zone: in.Zone}
}

var errPresent = errors.New("present")

// absent turns a lookup into nil when nothing was found and errPresent when something was.
func absent(_ *domain.Entry, err error) error {
	switch {
	case err == nil:
		return errPresent
	case errors.Is(err, domain.ErrNotFound):
		return nil
	default:
		return err
	}
}
