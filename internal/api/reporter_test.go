package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pulseops/regionpulse/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIngestEndpoint(t *testing.T) {
	st := store.New(10)
	srv := NewReporterServer(8001, st, testLogger())

	payload := `{
		"region": "Dallas",
		"decision": {"action": "send_alert", "parameters": {"team": "NetworkOps"}},
		"data_bundle": {"happiness_state": {"state": "TRENDING_DOWN"}}
	}`

	req := httptest.NewRequest("POST", "/", strings.NewReader(payload))
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
	if body["message"] != "Report received" {
		t.Errorf("expected ack message, got %q", body["message"])
	}
	if st.Len() != 1 {
		t.Errorf("expected 1 stored report, got %d", st.Len())
	}
}

func TestIngestRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"junk", `not json at all`},
		{"missing region", `{"decision": {"action": "send_alert"}}`},
		{"missing action", `{"region": "Dallas", "decision": {"parameters": {}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.New(10)
			srv := NewReporterServer(8001, st, testLogger())

			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.payload))
			w := httptest.NewRecorder()
			srv.router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}

			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body["status"] != "error" {
				t.Errorf("expected status error, got %q", body["status"])
			}
			if body["message"] == "" {
				t.Error("expected an error message")
			}
			if st.Len() != 0 {
				t.Errorf("store mutated by rejected payload: %d reports", st.Len())
			}
		})
	}
}

func TestListEndpoint(t *testing.T) {
	st := store.New(10)
	srv := NewReporterServer(8001, st, testLogger())

	for _, region := range []string{"Dallas", "Chicago"} {
		payload := `{"region": "` + region + `", "decision": {"action": "log_and_monitor"}}`
		req := httptest.NewRequest("POST", "/", strings.NewReader(payload))
		w := httptest.NewRecorder()
		srv.router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("ingest failed: %d", w.Code)
		}
	}

	req := httptest.NewRequest("GET", "/reports", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Status  string `json:"status"`
		Count   int    `json:"count"`
		Reports []struct {
			Region string `json:"region"`
		} `json:"reports"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("expected status ok, got %q", body.Status)
	}
	if body.Count != 2 {
		t.Errorf("expected count 2, got %d", body.Count)
	}
	if len(body.Reports) != 2 || body.Reports[0].Region != "Dallas" || body.Reports[1].Region != "Chicago" {
		t.Errorf("expected [Dallas Chicago] oldest first, got %+v", body.Reports)
	}
}

func TestReporterCORS(t *testing.T) {
	srv := NewReporterServer(8001, store.New(10), testLogger())

	req := httptest.NewRequest("GET", "/reports", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard CORS origin, got %q", got)
	}

	req = httptest.NewRequest("OPTIONS", "/", nil)
	w = httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for preflight, got %d", w.Code)
	}
}

func TestReporterHealth(t *testing.T) {
	srv := NewReporterServer(8001, store.New(10), testLogger())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
