package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTrackerTouch(t *testing.T) {
	tracker := NewTracker()
	tracker.lastUnix.Store(time.Now().Add(-42 * time.Second).Unix())

	if since := tracker.SinceLast(); since < 41*time.Second || since > 44*time.Second {
		t.Errorf("expected ~42s since last, got %v", since)
	}

	tracker.Touch()
	if since := tracker.SinceLast(); since > 2*time.Second {
		t.Errorf("expected ~0s after touch, got %v", since)
	}
}

func TestHealthHandler(t *testing.T) {
	handler := NewHandler(NewTracker(), "lepen-ai-backend")

	rec := httptest.NewRecorder()
	handler.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Status        string `json:"status"`
		Service       string `json:"service"`
		UptimeSeconds int64  `json:"uptime_seconds"`
		Ready         bool   `json:"ready"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" || resp.Service != "lepen-ai-backend" || !resp.Ready {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestPingHandler(t *testing.T) {
	handler := NewHandler(NewTracker(), "lepen-ai-backend")

	rec := httptest.NewRecorder()
	handler.Ping(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if rec.Body.String() != "pong" {
		t.Errorf("expected pong, got %q", rec.Body.String())
	}
}

func TestKeepaliveHandler(t *testing.T) {
	handler := NewHandler(NewTracker(), "lepen-ai-backend")

	rec := httptest.NewRecorder()
	handler.Keepalive(rec, httptest.NewRequest(http.MethodGet, "/api/keepalive", nil))

	var resp struct {
		Alive     bool   `json:"alive"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Alive {
		t.Error("expected alive true")
	}
	ts, err := time.Parse("2006-01-02T15:04:05Z", resp.Timestamp)
	if err != nil {
		t.Fatalf("timestamp not ISO-8601 UTC: %q", resp.Timestamp)
	}
	if d := time.Since(ts); d < -2*time.Second || d > 2*time.Second {
		t.Errorf("timestamp not current: %v", resp.Timestamp)
	}
}
