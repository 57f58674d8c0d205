package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tdr-registry/internal/domain/identity"
)

const (
	// reservationTTL bounds how long a crashed handler can block its request id.
	reservationTTL = 60 * time.Second
	// maxClockSkew is the accepted distance between Ax-Request-At and the server clock.
	maxClockSkew = 10 * time.Minute
	storeTimeout = 2 * time.Second
)

// replayRecord is what the store keeps under an idempotency key: a reservation
// while the handler runs, then the answer to replay.
type replayRecord struct {
	Pending   bool      `json:"pending"`
	Status    int       `json:"status"`
	Body      []byte    `json:"body"`
	BodyHash  string    `json:"body_hash"`
	RequestID string    `json:"request_id"`
	RequestAt int64     `json:"request_at_ms"`
	StoredAt  time.Time `json:"stored_at"`
}

func (r replayRecord) replayable() bool { return !r.Pending && r.Status != 0 && len(r.Body) > 0 }

// mutatingCall is a validated idempotent request.
type mutatingCall struct {
	requestID string
	requestAt time.Time
	account   string
	body      []byte
	bodyHash  string
}

func (m mutatingCall) record(pending bool, status int, body []byte) replayRecord {
	return replayRecord{
		Pending:   pending,
		Status:    status,
		Body:      body,
		BodyHash:  m.bodyHash,
		RequestID: m.requestID,
		RequestAt: m.requestAt.UnixMilli(),
		StoredAt:  nowUTC(),
	}
}

type headerError string

func (e headerError) Error() string { return string(e) }

// readMutatingCall checks the idempotency headers and buffers the body so the
// handler can still read it.
func readMutatingCall(req *http.Request) (mutatingCall, error) {
	var call mutatingCall

	call.requestID = strings.TrimSpace(req.Header.Get(HeaderRequestID))
	switch {
	case call.requestID == "":
		return call, headerError("missing " + HeaderRequestID)
	case !validReqID(call.requestID):
		return call, headerError("invalid " + HeaderRequestID + " format")
	}

	at, err := parseAxRequestAt(req.Header.Get(HeaderRequestAt))
	if err != nil {
		return call, headerError(err.Error())
	}
	if now := nowUTC(); at.Before(now.Add(-maxClockSkew)) || at.After(now.Add(maxClockSkew)) {
		return call, headerError(HeaderRequestAt + " too skewed")
	}
	call.requestAt = at

	raw := strings.TrimSpace(req.Header.Get(HeaderPrincipal))
	if raw == "" {
		return call, headerError("missing " + HeaderPrincipal)
	}
	if call.account, err = identity.NormalizeAccount(raw); err != nil {
		return call, headerError("invalid " + HeaderPrincipal)
	}

	if req.Body != nil {
		if call.body, err = io.ReadAll(req.Body); err != nil {
			return call, headerError("unreadable request body")
		}
	}
	req.Body = io.NopCloser(bytes.NewReader(call.body))
	call.bodyHash = bodyHash(call.body)
	return call, nil
}

// captureWriter tees the response so it can be stored for replay.
type captureWriter struct {
	http.ResponseWriter
	body   bytes.Buffer
	status int
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func jsonError(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

// IdempotencyMiddleware guards mutating registry calls so a retried
// create/update/transfer replays the first answer instead of running twice.
// The key is method, route, principal account and Ax-Request-Id.
// Ax-Request-At must be epoch (seconds or ms) or RFC3339 with a timezone.
// Server errors are not cached, so a failed attempt can be retried with the same id.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration, log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	st := store{rdb: rdb}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method == http.MethodGet || req.Method == http.MethodHead || req.Method == http.MethodOptions {
				return next(c)
			}

			call, err := readMutatingCall(req)
			if err != nil {
				return jsonError(c, http.StatusBadRequest, err.Error())
			}

			key := buildKey(req.Method, c.Path(), call.account, call.requestID)
			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()

			reserved, err := st.reserve(ctx, key, call.record(true, 0, nil))
			if err != nil {
				log.Warn("idempotency store unavailable", zap.String("key", key), zap.Error(err))
				return jsonError(c, http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			if !reserved {
				return replay(ctx, c, st, key, call, log)
			}

			w := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = w
			if err := next(c); err != nil {
				c.Error(err)
			}

			if w.status >= http.StatusInternalServerError {
				if err := st.release(context.Background(), key); err != nil {
					log.Warn("idempotency release failed", zap.String("key", key), zap.Error(err))
				}
				return nil
			}
			if err := st.finish(context.Background(), key, call.record(false, w.status, w.body.Bytes()), ttl); err != nil {
				log.Warn("idempotency save failed", zap.String("key", key), zap.Error(err))
			}
			return nil
		}
	}
}

// replay answers a request whose key is already taken.
func replay(ctx context.Context, c echo.Context, st store, key string, call mutatingCall, log *zap.Logger) error {
	prev, err := st.load(ctx, key)
	if err != nil {
		log.Warn("idempotency load failed", zap.String("key", key), zap.Error(err))
	}
	switch {
	case prev.BodyHash != "" && prev.BodyHash != call.bodyHash:
		return jsonError(c, http.StatusConflict, HeaderRequestID+" reused with different body")
	case prev.replayable():
		log.Debug("idempotent replay", zap.String("key", key), zap.Int("status", prev.Status))
		return c.Blob(prev.Status, echo.MIMEApplicationJSON, prev.Body)
	default:
		return jsonError(c, http.StatusConflict, "request is already in progress")
	}
}
