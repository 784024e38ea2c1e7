// internal/metrics/metrics_test.go
package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func findMetric(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestObserveBackendCall_CountsByEndpointAndStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveBackendCall("login", 200, 10*time.Millisecond)
	c.ObserveBackendCall("login", 200, 20*time.Millisecond)
	c.ObserveBackendCall("login", 401, 5*time.Millisecond)

	mf := findMetric(t, reg, "storefront_backend_requests_total")
	if mf == nil {
		t.Fatal("storefront_backend_requests_total metric not found")
	}
	if len(mf.GetMetric()) != 2 {
		t.Fatalf("expected 2 label sets, got %d", len(mf.GetMetric()))
	}
	var total float64
	for _, m := range mf.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	if total != 3 {
		t.Errorf("backend_requests_total = %v, want 3", total)
	}

	latency := findMetric(t, reg, "storefront_backend_latency_seconds")
	if latency == nil {
		t.Fatal("storefront_backend_latency_seconds metric not found")
	}
	if got := latency.GetMetric()[0].GetHistogram().GetSampleCount(); got != 3 {
		t.Errorf("latency sample count = %d, want 3", got)
	}
}

func TestRecordBreakerState(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordBreakerState("backend", "open")

	mf := findMetric(t, reg, "storefront_breaker_transitions_total")
	if mf == nil {
		t.Fatal("storefront_breaker_transitions_total metric not found")
	}
	if v := mf.GetMetric()[0].GetCounter().GetValue(); v != 1 {
		t.Errorf("breaker_transitions_total = %v, want 1", v)
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.ObserveHTTPRequest("/products", http.MethodGet, 200, time.Millisecond)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "storefront_sandbox_requests_total") {
		t.Errorf("expected sandbox request counter in output, got:\n%s", body)
	}
}
