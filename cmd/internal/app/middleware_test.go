package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRequestLogMeta(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status     int
		wantLevel  slog.Level
		wantResult string
	}{
		{status: 200, wantLevel: slog.LevelInfo, wantResult: "success"},
		{status: 302, wantLevel: slog.LevelInfo, wantResult: "redirect"},
		{status: 404, wantLevel: slog.LevelWarn, wantResult: "client_error"},
		{status: 503, wantLevel: slog.LevelError, wantResult: "server_error"},
	}

	for _, tc := range cases {
		level, result := requestLogMeta(tc.status)
		if level != tc.wantLevel || result != tc.wantResult {
			t.Fatalf("status=%d level=%v result=%q; want level=%v result=%q", tc.status, level, result, tc.wantLevel, tc.wantResult)
		}
	}
}

func TestWithRequestLoggingSetsRequestID(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := WithRequestLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}), log, nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d; want 204", rr.Code)
	}
	id := rr.Header().Get(RequestIDHeader)
	if len(id) != 26 {
		t.Fatalf("request id %q is not a ULID", id)
	}

	// A second request gets a different ID.
	rr2 := httptest.NewRecorder()
	h.ServeHTTP(rr2, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr2.Header().Get(RequestIDHeader) == id {
		t.Fatal("request IDs repeat across requests")
	}
}

func TestWithRequestLoggingRecordsMetrics(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := NewMetrics()

	h := WithRequestLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), log, metrics)

	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/login", nil))
	}

	got := testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/login"))
	if got != 3 {
		t.Fatalf("http_requests_total = %v; want 3", got)
	}
	if inflight := testutil.ToFloat64(metrics.ActiveConns); inflight != 0 {
		t.Fatalf("active_connections after requests = %v; want 0", inflight)
	}
}
