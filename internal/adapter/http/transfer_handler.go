package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tdr-registry/internal/adapter/middleware"
	"tdr-registry/internal/domain/access"
	ucTransfer "tdr-registry/internal/usecase/transfer"
)

type TransferService interface {
	CreateTransferApplication(ctx context.Context, caller access.Role, in ucTransfer.Input) (*ucTransfer.Result, error)
}

type TransferHandler struct {
	uc  TransferService
	log *zap.Logger
}

func NewTransferHandler(uc TransferService, log *zap.Logger) *TransferHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &TransferHandler{uc: uc, log: log}
}

// Buyer list rules (empty, repeated, share sums) stay with the engine so
// they surface as invalid_buyer_list rather than a field error.
type createTransferReq struct {
	ApplicationID string   `json:"application_id" validate:"required,bytes32key"`
	Far           uint64   `json:"far"`
	BuyerIDs      []string `json:"buyer_ids" validate:"dive,bytes32key"`
	Shares        []uint64 `json:"shares,omitempty"`
}

// CreateTransfer handles POST /drcs/:id/transfers.
func (h *TransferHandler) CreateTransfer(c echo.Context) error {
	source, ok, err := idParam(c, "id")
	if !ok {
		return err
	}
	var req createTransferReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	res, err := h.uc.CreateTransferApplication(c.Request().Context(), middleware.RoleFrom(c), ucTransfer.Input{
		SourceDrcID:   source,
		ApplicationID: mustID(req.ApplicationID),
		Far:           req.Far,
		BuyerIDs:      mustIDs(req.BuyerIDs),
		Shares:        req.Shares,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, res)
}
