package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is a dependency the health check probes.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

type Handler struct{ pingers []Pinger }

func NewHandler(pingers ...Pinger) *Handler { return &Handler{pingers: pingers} }

func (h *Handler) Health(c echo.Context) error {
	status, code := "ok", http.StatusOK
	var checks map[string]string
	if len(h.pingers) > 0 {
		checks = make(map[string]string, len(h.pingers))
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		for _, p := range h.pingers {
			if err := p.Ping(ctx); err != nil {
				checks[p.Name()] = err.Error()
				status, code = "degraded", http.StatusServiceUnavailable
				continue
			}
			checks[p.Name()] = "ok"
		}
	}
	body := map[string]any{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	if checks != nil {
		body["checks"] = checks
	}
	return c.JSON(code, body)
}
