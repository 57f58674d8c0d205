package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tdr-registry/internal/adapter/middleware"
	"tdr-registry/internal/domain/apperr"
)

// statusOf maps the shared error taxonomy onto HTTP codes.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apperr.ErrDuplicate):
		return http.StatusConflict, "duplicate"
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusForbidden, "unauthorized"
	case errors.Is(err, apperr.ErrInsufficientFar):
		return http.StatusUnprocessableEntity, "insufficient_far"
	case errors.Is(err, apperr.ErrInvalidBuyerList):
		return http.StatusUnprocessableEntity, "invalid_buyer_list"
	case errors.Is(err, apperr.ErrInvalidInvariant):
		return http.StatusUnprocessableEntity, "invalid_invariant"
	}
	return http.StatusInternalServerError, "internal"
}

func writeError(c echo.Context, log *zap.Logger, err error) error {
	code, kind := statusOf(err)
	fields := []zap.Field{
		zap.String("path", c.Path()),
		zap.String("principal", middleware.AccountFrom(c)),
		zap.String("role", string(middleware.RoleFrom(c))),
		zap.Error(err),
	}
	if code == http.StatusInternalServerError {
		log.Error("request failed", fields...)
		return c.JSON(code, ErrorResponse{Error: "internal error", Kind: kind})
	}
	log.Debug("request rejected", append(fields, zap.String("kind", kind))...)
	return c.JSON(code, ErrorResponse{Error: err.Error(), Kind: kind})
}

// bindAndValidate returns a non-nil response error when the body is unusable;
// the caller returns it as is.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}
