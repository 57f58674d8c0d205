package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tdr-registry/internal/domain/application"
)

// ApplicationHandler exposes the read side of the application workflow.
type ApplicationHandler struct {
	apps application.Reader
	log  *zap.Logger
}

func NewApplicationHandler(apps application.Reader, log *zap.Logger) *ApplicationHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ApplicationHandler{apps: apps, log: log}
}

// ApplicationAt handles GET /notices/:id/applications/:index.
func (h *ApplicationHandler) ApplicationAt(c echo.Context) error {
	notice, ok, err := idParam(c, "id")
	if !ok {
		return err
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid index path param"})
	}
	appID, err := h.apps.ApplicationAt(c.Request().Context(), notice, index)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"notice_id":      notice,
		"index":          index,
		"application_id": appID,
	})
}

func (h *ApplicationHandler) GetApplication(c echo.Context) error {
	id, ok, err := idParam(c, "id")
	if !ok {
		return err
	}
	app, err := h.apps.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, app)
}
