package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	name string
	err  error
}

func (p stubPinger) Name() string               { return p.name }
func (p stubPinger) Ping(context.Context) error { return p.err }

type healthBody struct {
	Status string            `json:"status"`
	Time   string            `json:"time"`
	Checks map[string]string `json:"checks"`
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name    string
		pingers []Pinger
		code    int
		status  string
		checks  map[string]string
	}{
		{"no dependencies", nil, http.StatusOK, "ok", nil},
		{"all up", []Pinger{stubPinger{name: "mysql"}, stubPinger{name: "redis"}}, http.StatusOK, "ok",
			map[string]string{"mysql": "ok", "redis": "ok"}},
		{"redis down", []Pinger{stubPinger{name: "mysql"}, stubPinger{name: "redis", err: errors.New("refused")}},
			http.StatusServiceUnavailable, "degraded", map[string]string{"mysql": "ok", "redis": "refused"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
			before := time.Now().UTC()

			require.NoError(t, NewHandler(tt.pingers...).Health(c))
			assert.Equal(t, tt.code, rec.Code)
			assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON)

			var body healthBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
			assert.Equal(t, tt.status, body.Status)
			for name, want := range tt.checks {
				assert.Equal(t, want, body.Checks[name], name)
			}

			at, err := time.Parse(time.RFC3339Nano, body.Time)
			require.NoError(t, err)
			assert.Equal(t, time.UTC, at.Location())
			assert.WithinDuration(t, before, at, 2*time.Second)
		})
	}
}
