package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/vasapolrittideah/devconnector-api/shared/utilities"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type dependencyStatus struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

type healthResponse struct {
	Service      string                      `json:"service"`
	UptimeSec    int                         `json:"uptime_sec"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

type healthHandler struct {
	serviceName string
	store       Pinger
	startedAt   time.Time
}

func newHealthHandler(serviceName string, store Pinger) *healthHandler {
	return &healthHandler{
		serviceName: serviceName,
		store:       store,
		startedAt:   time.Now(),
	}
}

func (h *healthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	store := h.checkStore(ctx)

	statusCode := http.StatusOK
	if !store.OK {
		statusCode = http.StatusServiceUnavailable
	}

	utilities.WriteJSON(w, statusCode, healthResponse{
		Service:      h.serviceName,
		UptimeSec:    int(time.Since(h.startedAt).Seconds()),
		Dependencies: map[string]dependencyStatus{"store": store},
	})
}

func (h *healthHandler) checkStore(ctx context.Context) dependencyStatus {
	if h.store == nil {
		return dependencyStatus{OK: true}
	}
	if err := h.store.Ping(ctx); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	return dependencyStatus{OK: true}
}
