package metric

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestServer_HealthAndMetrics(t *testing.T) {
	e := NewServer(func() map[string]int {
		return map[string]int{"rooms": 2, "participants": 5}
	})

	RecordInboundMessage("join-room")
	RecordRelayDropped("offer")

	rr := httptest.NewRecorder()
	e.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("health status=%d, want %d", rr.Code, http.StatusOK)
	}
	var health map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health["status"] != "ok" || health["rooms"] != float64(2) || health["participants"] != float64(5) {
		t.Fatalf("unexpected health body: %s", rr.Body.String())
	}

	rr = httptest.NewRecorder()
	e.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status=%d, want %d", rr.Code, http.StatusOK)
	}

	body := rr.Body.String()
	if !strings.Contains(body, `ws_inbound_messages_total{type="join-room"}`) {
		t.Fatalf("missing inbound counter: %s", body)
	}
	if !strings.Contains(body, `signaling_relay_dropped_total{type="offer"}`) {
		t.Fatalf("missing relay drop counter: %s", body)
	}
}

func TestServer_HealthWithoutCounters(t *testing.T) {
	rr := httptest.NewRecorder()
	NewServer(nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"ok"`) {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
}
