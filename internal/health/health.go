// Package health tracks the time of the last served request and exposes the
// liveness endpoints used by the hosting platform's keep-alive pinger.
package health

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// Tracker records the last request time. The value is advisory telemetry
// only; an atomic keeps reads well-defined without any wider coordination.
type Tracker struct {
	lastUnix atomic.Int64
}

func NewTracker() *Tracker {
	t := &Tracker{}
	t.Touch()
	return t
}

// Touch records the current time. Called for every inbound request.
func (t *Tracker) Touch() {
	t.lastUnix.Store(time.Now().Unix())
}

// SinceLast returns the elapsed time since the last recorded request.
func (t *Tracker) SinceLast() time.Duration {
	return time.Since(time.Unix(t.lastUnix.Load(), 0))
}

// Handler serves the liveness endpoints.
type Handler struct {
	tracker *Tracker
	service string
}

func NewHandler(tracker *Tracker, service string) *Handler {
	return &Handler{tracker: tracker, service: service}
}

type healthResponse struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Ready         bool   `json:"ready"`
}

// Health serves GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:        "ok",
		Service:       h.service,
		UptimeSeconds: int64(h.tracker.SinceLast().Seconds()),
		Ready:         true,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Ping serves GET /ping with a bare "pong" body.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("pong"))
}

type keepaliveResponse struct {
	Alive     bool   `json:"alive"`
	Timestamp string `json:"timestamp"`
}

// Keepalive serves GET /api/keepalive.
func (h *Handler) Keepalive(w http.ResponseWriter, r *http.Request) {
	resp := keepaliveResponse{
		Alive:     true,
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
