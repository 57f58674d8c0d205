package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tdr-registry/internal/adapter/middleware"
	"tdr-registry/internal/domain/access"
	"tdr-registry/internal/domain/ident"
	domainIdentity "tdr-registry/internal/domain/identity"
	ucIdentity "tdr-registry/internal/usecase/identity"
)

type IdentityService interface {
	Add(ctx context.Context, caller access.Role, kind domainIdentity.Kind, id ident.ID, account string) (*ucIdentity.EntryDTO, error)
	AddOfficer(ctx context.Context, caller access.Role, in ucIdentity.OfficerInput, account string) (*ucIdentity.EntryDTO, error)
	Update(ctx context.Context, caller access.Role, kind domainIdentity.Kind, id ident.ID, account string) (*ucIdentity.EntryDTO, error)
	UpdateOfficer(ctx context.Context, caller access.Role, in ucIdentity.OfficerInput, account string) (*ucIdentity.EntryDTO, error)
	Delete(ctx context.Context, caller access.Role, kind domainIdentity.Kind, id ident.ID) error
	GetID(ctx context.Context, kind domainIdentity.Kind, account string) (ident.ID, error)
	GetAccount(ctx context.Context, kind domainIdentity.Kind, id ident.ID) (string, error)
	GetRole(ctx context.Context, id ident.ID) (domainIdentity.OfficerRole, error)
	GetRoleByAccount(ctx context.Context, account string) (domainIdentity.OfficerRole, error)
}

type IdentityHandler struct {
	uc  IdentityService
	log *zap.Logger
}

func NewIdentityHandler(uc IdentityService, log *zap.Logger) *IdentityHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &IdentityHandler{uc: uc, log: log}
}

// Role/department/zone are read only for the officer registry.
type identityReq struct {
	Account    string `json:"account"    validate:"required,eth_addr"`
	Role       uint8  `json:"role"`
	Department uint8  `json:"department"`
	Zone       uint8  `json:"zone"`
}

func kindParam(c echo.Context) domainIdentity.Kind {
	return domainIdentity.Kind(strings.ToLower(c.Param("kind")))
}

func (r identityReq) officer(id ident.ID) ucIdentity.OfficerInput {
	return ucIdentity.OfficerInput{ID: id, Role: r.Role, Department: r.Department, Zone: r.Zone}
}

// AddIdentity handles POST /identities/:kind/:id.
func (h *IdentityHandler) AddIdentity(c echo.Context) error {
	id, ok, err := idParam(c, "id")
	if !ok {
		return err
	}
	var req identityReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	ctx, caller, kind := c.Request().Context(), middleware.RoleFrom(c), kindParam(c)

	var dto *ucIdentity.EntryDTO
	if kind == domainIdentity.KindOfficer {
		dto, err = h.uc.AddOfficer(ctx, caller, req.officer(id), req.Account)
	} else {
		dto, err = h.uc.Add(ctx, caller, kind, id, req.Account)
	}
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// UpdateIdentity handles PUT /identities/:kind/:id, re-pointing id to a new account.
func (h *IdentityHandler) UpdateIdentity(c echo.Context) error {
	id, ok, err := idParam(c, "id")
	if !ok {
		return err
	}
	var req identityReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	ctx, caller, kind := c.Request().Context(), middleware.RoleFrom(c), kindParam(c)

	var dto *ucIdentity.EntryDTO
	if kind == domainIdentity.KindOfficer {
		dto, err = h.uc.UpdateOfficer(ctx, caller, req.officer(id), req.Account)
	} else {
		dto, err = h.uc.Update(ctx, caller, kind, id, req.Account)
	}
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *IdentityHandler) DeleteIdentity(c echo.Context) error {
	id, ok, err := idParam(c, "id")
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.Request().Context(), middleware.RoleFrom(c), kindParam(c), id); err != nil {
		return writeError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetAccount answers with an empty account for unmapped ids.
func (h *IdentityHandler) GetAccount(c echo.Context) error {
	id, ok, err := idParam(c, "id")
	if !ok {
		return err
	}
	kind := kindParam(c)
	account, err := h.uc.GetAccount(c.Request().Context(), kind, id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, ucIdentity.EntryDTO{Kind: string(kind), ID: id, Account: account})
}

// GetID answers with the zero id for unmapped accounts.
func (h *IdentityHandler) GetID(c echo.Context) error {
	kind := kindParam(c)
	account := c.Param("account")
	id, err := h.uc.GetID(c.Request().Context(), kind, account)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, ucIdentity.EntryDTO{Kind: string(kind), ID: id, Account: strings.ToLower(account)})
}

func (h *IdentityHandler) GetOfficerRole(c echo.Context) error {
	id, ok, err := idParam(c, "id")
	if !ok {
		return err
	}
	role, err := h.uc.GetRole(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, role)
}

func (h *IdentityHandler) GetOfficerRoleByAccount(c echo.Context) error {
	role, err := h.uc.GetRoleByAccount(c.Request().Context(), c.Param("account"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, role)
}
