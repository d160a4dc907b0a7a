package httpserver_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	httpserver "voyago/internal/adapters/http_server"
)

func TestObserve_LogsRouteStatusAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(httpserver.Observe(l))
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("GET", "/ping", nil))

	if rr.Code != http.StatusTeapot {
		t.Fatalf("status passthrough: %d", rr.Code)
	}
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line not JSON: %v (%q)", err, buf.String())
	}
	if line["route"] != "/ping" || line["method"] != "GET" {
		t.Fatalf("route/method: %v", line)
	}
	if line["status"] != float64(http.StatusTeapot) {
		t.Fatalf("recorded status: %v", line["status"])
	}
	if id, _ := line["request_id"].(string); id == "" {
		t.Fatalf("request id missing from log line: %v", line)
	}
}
