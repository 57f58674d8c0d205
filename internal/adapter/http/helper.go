package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"tdr-registry/internal/domain/ident"
)

// idParam parses a path segment as an identifier. ok=false means a 400 was written.
func idParam(c echo.Context, name string) (id ident.ID, ok bool, err error) {
	id, perr := ident.Parse(c.Param(name))
	if perr != nil {
		return ident.ID{}, false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name + " path param"})
	}
	return id, true, nil
}

// mustID is for fields that already passed the bytes32key validator.
func mustID(s string) ident.ID {
	id, _ := ident.Parse(s)
	return id
}

func mustIDs(in []string) []ident.ID {
	out := make([]ident.ID, len(in))
	for i, s := range in {
		out[i] = mustID(s)
	}
	return out
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
