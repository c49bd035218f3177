package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fairyhunter13/salon-management-service/internal/model"
	"github.com/fairyhunter13/salon-management-service/internal/obs"
)

type ctxKey int

const (
	ctxKeyRequestID ctxKey = iota
)

// RequestIDFromContext returns the request id attached by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRequestID).(string)
	return v
}

// actorFrom extracts the caller identity asserted by the upstream gateway.
// Authentication itself happens outside this service.
func actorFrom(r *http.Request) (model.Actor, bool) {
	id := r.Header.Get("X-User-Id")
	role := model.Role(r.Header.Get("X-User-Role"))
	if id == "" || role == "" {
		return model.Actor{}, false
	}
	switch role {
	case model.RoleCustomer, model.RoleStaff, model.RoleInventory, model.RoleAdmin:
		return model.Actor{ID: id, Role: role}, true
	}
	return model.Actor{}, false
}

// requireActor writes a 401 when no valid identity headers are present.
func requireActor(w http.ResponseWriter, r *http.Request) (model.Actor, bool) {
	actor, ok := actorFrom(r)
	if !ok {
		WriteJSONError(w, http.StatusUnauthorized, "unauthorized", "X-User-Id and X-User-Role headers are required")
	}
	return actor, ok
}

// requireRole writes a 403 unless the actor holds one of the roles.
func requireRole(w http.ResponseWriter, r *http.Request, roles ...model.Role) (model.Actor, bool) {
	actor, ok := requireActor(w, r)
	if !ok {
		return model.Actor{}, false
	}
	for _, role := range roles {
		if actor.Role == role {
			return actor, true
		}
	}
	WriteJSONError(w, http.StatusForbidden, "forbidden", "insufficient role")
	return model.Actor{}, false
}

type statusRecorder struct {
	h  http.ResponseWriter
	st int
	n  int
}

func (w *statusRecorder) Header() http.Header { return w.h.Header() }
func (w *statusRecorder) WriteHeader(code int) {
	w.st = code
	w.h.WriteHeader(code)
}
func (w *statusRecorder) Write(b []byte) (int, error) {
	n, err := w.h.Write(b)
	w.n += n
	return n, err
}

// WithRequestID attaches an X-Request-Id header and context value.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", reqID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKeyRequestID, reqID)))
	})
}

// WithLogging logs one structured line per request.
func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{h: w, st: 200}
		next.ServeHTTP(sr, r)
		lat := time.Since(start)
		obs.Logger.Info("http_request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sr.st),
			zap.Int("bytes", sr.n),
			zap.Float64("latency_ms", float64(lat.Microseconds())/1000.0),
			zap.String("request_id", RequestIDFromContext(r.Context())),
		)
	})
}
