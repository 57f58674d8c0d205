package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tdr-registry/internal/domain/access"
	"tdr-registry/internal/domain/apperr"
	"tdr-registry/internal/domain/identity"
)

const (
	HeaderRequestID = "Ax-Request-Id"
	HeaderRequestAt = "Ax-Request-At"
	// HeaderPrincipal carries the account the gateway already authenticated.
	HeaderPrincipal = "Ax-Principal"

	ctxRole    = "ax.role"
	ctxAccount = "ax.account"
)

type RoleResolver interface {
	Resolve(ctx context.Context, account string) (access.Role, error)
}

// ResolvePrincipal turns Ax-Principal into a Role stored on the echo context.
// A missing header leaves the caller with RoleNone, which is enough for reads.
func ResolvePrincipal(res RoleResolver, log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(HeaderPrincipal))
			if raw == "" {
				c.Set(ctxRole, access.RoleNone)
				return next(c)
			}
			account, err := identity.NormalizeAccount(raw)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid " + HeaderPrincipal})
			}
			role, err := res.Resolve(c.Request().Context(), account)
			if err != nil {
				if errors.Is(err, apperr.ErrInvalidInvariant) {
					return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid " + HeaderPrincipal})
				}
				log.Error("resolve principal", zap.String("account", account), zap.Error(err))
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "principal lookup failed"})
			}
			c.Set(ctxAccount, account)
			c.Set(ctxRole, role)
			return next(c)
		}
	}
}

// RoleFrom returns the caller role set by ResolvePrincipal, or RoleNone.
func RoleFrom(c echo.Context) access.Role {
	if r, ok := c.Get(ctxRole).(access.Role); ok {
		return r
	}
	return access.RoleNone
}

func AccountFrom(c echo.Context) string {
	a, _ := c.Get(ctxAccount).(string)
	return a
}
