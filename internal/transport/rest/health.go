package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// pinger is the minimal interface for a dependency health check.
type pinger interface {
	Ping(ctx context.Context) error
}

type component struct {
	name string
	p    pinger
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	version    string
	components []component
}

// NewHealthHandler creates a HealthHandler with no dependencies. The lookup
// core is stateless, so without components the service is always ready.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

// WithComponent registers a dependency that /ready and /health ping.
func (h *HealthHandler) WithComponent(name string, p pinger) *HealthHandler {
	h.components = append(h.components, component{name: name, p: p})
	return h
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 if every component answers, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	_, ok := h.check(r.Context())
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check with per-component latency and version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components, ok := h.check(r.Context())

	status, overall := http.StatusOK, "ok"
	if !ok {
		status, overall = http.StatusServiceUnavailable, "down"
	}

	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

// check pings every component in registration order.
func (h *HealthHandler) check(ctx context.Context) (map[string]CompStatus, bool) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if len(h.components) == 0 {
		return nil, true
	}

	statuses := make(map[string]CompStatus, len(h.components))
	ok := true

	for _, c := range h.components {
		start := time.Now()
		err := c.p.Ping(ctx)
		latency := time.Since(start)

		if err != nil {
			statuses[c.name] = CompStatus{Status: "down"}
			ok = false
			continue
		}
		statuses[c.name] = CompStatus{Status: "ok", Latency: latency.String()}
	}

	return statuses, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
