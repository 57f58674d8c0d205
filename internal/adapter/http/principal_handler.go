package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tdr-registry/internal/adapter/middleware"
	"tdr-registry/internal/domain/access"
	ucPrincipal "tdr-registry/internal/usecase/principal"
)

type PrincipalService interface {
	Set(ctx context.Context, caller access.Role, slot access.Role, account string) (*ucPrincipal.PrincipalDTO, error)
	Get(ctx context.Context, slot access.Role) (*ucPrincipal.PrincipalDTO, error)
}

type PrincipalHandler struct {
	uc  PrincipalService
	log *zap.Logger
}

func NewPrincipalHandler(uc PrincipalService, log *zap.Logger) *PrincipalHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PrincipalHandler{uc: uc, log: log}
}

type setPrincipalReq struct {
	Account string `json:"account" validate:"required,eth_addr"`
}

// SetPrincipal handles PUT /principals/:slot. Each slot is assignable only by
// the slot above it.
func (h *PrincipalHandler) SetPrincipal(c echo.Context) error {
	var req setPrincipalReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Set(c.Request().Context(), middleware.RoleFrom(c), access.Role(c.Param("slot")), req.Account)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *PrincipalHandler) GetPrincipal(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), access.Role(c.Param("slot")))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
