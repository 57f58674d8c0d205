package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tdr-registry/internal/adapter/middleware"
	"tdr-registry/internal/domain/access"
	domainDrc "tdr-registry/internal/domain/drc"
	"tdr-registry/internal/domain/ident"
	ucDrc "tdr-registry/internal/usecase/drc"
)

type DrcService interface {
	Create(ctx context.Context, caller access.Role, id ident.ID, in ucDrc.Record) (*ucDrc.DrcDTO, error)
	Update(ctx context.Context, caller access.Role, id ident.ID, in ucDrc.Record) (*ucDrc.DrcDTO, error)
	Get(ctx context.Context, id ident.ID) (ucDrc.DrcDTO, error)
	History(ctx context.Context, id ident.ID) ([]ucDrc.TransferDTO, error)
}

type DrcHandler struct {
	uc  DrcService
	log *zap.Logger
}

func NewDrcHandler(uc DrcService, log *zap.Logger) *DrcHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &DrcHandler{uc: uc, log: log}
}

type ownerReq struct {
	UserID string `json:"user_id" validate:"required,bytes32key"`
	Area   uint64 `json:"area"`
}

type drcRecordReq struct {
	ApplicationID         string     `json:"application_id" validate:"omitempty,bytes32key"`
	NoticeID              string     `json:"notice_id"      validate:"omitempty,bytes32key"`
	Status                uint8      `json:"status"         validate:"lte=3"`
	FarCredited           uint64     `json:"far_credited"   validate:"far_unit"`
	FarAvailable          uint64     `json:"far_available"  validate:"far_unit"`
	AreaSurrendered       uint64     `json:"area_surrendered"`
	CircleRateSurrendered uint64     `json:"circle_rate_surrendered"`
	CircleRateUtilization uint64     `json:"circle_rate_utilization"`
	Owners                []ownerReq `json:"owners" validate:"dive"`
}

type createDrcReq struct {
	ID string `json:"id" validate:"required,bytes32key"`
	drcRecordReq
}

func (r drcRecordReq) toRecord() ucDrc.Record {
	owners := make([]ucDrc.OwnerDTO, len(r.Owners))
	for i, o := range r.Owners {
		owners[i] = ucDrc.OwnerDTO{UserID: mustID(o.UserID), Area: o.Area}
	}
	return ucDrc.Record{
		ApplicationID:         mustID(r.ApplicationID),
		NoticeID:              mustID(r.NoticeID),
		Status:                domainDrc.Status(r.Status),
		FarCredited:           r.FarCredited,
		FarAvailable:          r.FarAvailable,
		AreaSurrendered:       r.AreaSurrendered,
		CircleRateSurrendered: r.CircleRateSurrendered,
		CircleRateUtilization: r.CircleRateUtilization,
		Owners:                owners,
	}
}

// CreateDrc handles POST /drcs.
func (h *DrcHandler) CreateDrc(c echo.Context) error {
	var req createDrcReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Create(c.Request().Context(), middleware.RoleFrom(c), mustID(req.ID), req.toRecord())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// UpdateDrc handles PUT /drcs/:id and replaces the whole record.
func (h *DrcHandler) UpdateDrc(c echo.Context) error {
	id, ok, err := idParam(c, "id")
	if !ok {
		return err
	}
	var req drcRecordReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Update(c.Request().Context(), middleware.RoleFrom(c), id, req.toRecord())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DrcHandler) GetDrc(c echo.Context) error {
	id, ok, err := idParam(c, "id")
	if !ok {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if dto.ID.IsZero() {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "drc not found", Kind: "not_found"})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DrcHandler) ListTransfers(c echo.Context) error {
	id, ok, err := idParam(c, "id")
	if !ok {
		return err
	}
	list, err := h.uc.History(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"drc_id": id, "transfers": list})
}
