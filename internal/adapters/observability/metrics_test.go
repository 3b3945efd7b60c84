package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel_booking/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	observability.ObserveHTTP("/api/rooms", "GET", 200, 12*time.Millisecond)
	observability.ObserveExternal("openweather", "current", 503, 40*time.Millisecond)
	observability.ObserveCache("redis", "miss")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, want := range []string{
		"hotel_http_requests_total",
		`hotel_external_requests_total{endpoint="current",service="openweather",status="5xx"}`,
		`hotel_cache_events_total{cache="redis",event="miss"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output", want)
		}
	}
}

func TestStatusClass(t *testing.T) {
	cases := map[int]string{0: "error", 200: "2xx", 404: "4xx", 502: "5xx"}
	for in, want := range cases {
		if got := observability.StatusClass(in); got != want {
			t.Fatalf("StatusClass(%d) = %q, want %q", in, got, want)
		}
	}
}
