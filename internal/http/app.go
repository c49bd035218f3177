package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/fairyhunter13/salon-management-service/internal/booking"
	"github.com/fairyhunter13/salon-management-service/internal/config"
	"github.com/fairyhunter13/salon-management-service/internal/events"
	"github.com/fairyhunter13/salon-management-service/internal/inventory"
	"github.com/fairyhunter13/salon-management-service/internal/orders"
	"github.com/fairyhunter13/salon-management-service/internal/shifts"
)

// App wires the lifecycle managers into HTTP handlers.
type App struct {
	Cfg        config.Config
	Orders     *orders.Manager
	Booking    *booking.Manager
	Shifts     *shifts.Registry
	Inventory  *inventory.Service
	Dispatcher *events.Dispatcher
	started    time.Time
}

// NewApp constructs the handler set.
func NewApp(cfg config.Config, o *orders.Manager, b *booking.Manager, sh *shifts.Registry, inv *inventory.Service, d *events.Dispatcher) *App {
	return &App{Cfg: cfg, Orders: o, Booking: b, Shifts: sh, Inventory: inv, Dispatcher: d, started: time.Now()}
}

// StartShutdown closes event intake ahead of the drain.
func (a *App) StartShutdown() {
	a.Dispatcher.CloseIntake()
}

// decodeJSON enforces the JSON content type and strict field checking,
// writing the error response itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json")
		return false
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	emitted, published, failed, backlog := a.Dispatcher.Metrics()
	writeJSON(w, http.StatusOK, map[string]any{
		"events_emitted":   emitted,
		"events_published": published,
		"events_failed":    failed,
		"event_backlog":    backlog,
		"uptime_sec":       time.Since(a.started).Seconds(),
	})
}
