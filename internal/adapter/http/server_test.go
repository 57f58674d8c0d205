package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"tdr-registry/internal/adapter/middleware"
	"tdr-registry/internal/adapter/repository/mysql"
	"tdr-registry/internal/testutil/sqlitedb"
	ucDrc "tdr-registry/internal/usecase/drc"
	ucIdentity "tdr-registry/internal/usecase/identity"
	ucPrincipal "tdr-registry/internal/usecase/principal"
	ucTransfer "tdr-registry/internal/usecase/transfer"

	"gorm.io/gorm"
)

const (
	ownerAcct   = "0x0000000000000000000000000000000000000001"
	adminAcct   = "0x0000000000000000000000000000000000000002"
	managerAcct = "0x0000000000000000000000000000000000000003"
	tdrAcct     = "0x0000000000000000000000000000000000000004"
	nobodyAcct  = "0x00000000000000000000000000000000000000ff"
)

type testServer struct {
	e  *echo.Echo
	db *gorm.DB
}

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// newServer wires the real usecases over an in-memory database with the four
// principal slots seeded.
func newServer(t *testing.T) *testServer {
	t.Helper()
	gdb := sqlitedb.Open(t)
	tx := mysql.NewGormUoW(gdb)
	apps := mysql.NewApplicationReader(gdb)

	principals := ucPrincipal.NewUsecase(tx, nil)
	require.NoError(t, principals.Seed(context.Background(), ucPrincipal.Seed{
		Owner: ownerAcct, Admin: adminAcct, Manager: managerAcct, TdrManager: tdrAcct,
	}))

	e := newEchoWithValidator()
	e.Use(middleware.ResolvePrincipal(principals, nil))
	Register(e, Handlers{
		Health:       NewHandler(),
		Drc:          NewDrcHandler(ucDrc.NewUsecase(tx, nil, nil), nil),
		Transfer:     NewTransferHandler(ucTransfer.NewUsecase(tx, ucTransfer.Options{Applications: apps}, nil, nil), nil),
		Identity:     NewIdentityHandler(ucIdentity.NewDirectory(tx, nil), nil),
		Principal:    NewPrincipalHandler(principals, nil),
		Applications: NewApplicationHandler(apps, nil),
	})
	return &testServer{e: e, db: gdb}
}

func (s *testServer) do(t *testing.T, method, path, principal string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *stdhttp.Request
	if body != nil {
		req = httptest.NewRequest(method, path, mustJSON(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if principal != "" {
		req.Header.Set(middleware.HeaderPrincipal, principal)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body=%s", rec.Body.String())
	return out
}
