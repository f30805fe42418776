package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestObserveRecordsLabeledSamples(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("POST", "/api/v1/sales", 201, 35*time.Millisecond)
	m.Observe("POST", "/api/v1/sales", 201, 12*time.Millisecond)
	m.Observe("GET", "", 404, time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	byName := map[string]*dto.MetricFamily{}
	for _, fam := range families {
		byName[fam.GetName()] = fam
	}

	requests, ok := byName["http_requests_total"]
	if !ok {
		t.Fatal("http_requests_total not registered")
	}
	var salesCount float64
	var unmatched bool
	for _, metric := range requests.GetMetric() {
		labels := map[string]string{}
		for _, pair := range metric.GetLabel() {
			labels[pair.GetName()] = pair.GetValue()
		}
		if labels["route"] == "/api/v1/sales" && labels["status"] == "201" {
			salesCount = metric.GetCounter().GetValue()
		}
		if labels["route"] == "unmatched" {
			unmatched = true
		}
	}
	if salesCount != 2 {
		t.Fatalf("expected 2 sales requests, got %v", salesCount)
	}
	if !unmatched {
		t.Fatal("expected empty route to be recorded as unmatched")
	}

	if _, ok := byName["http_request_duration_seconds"]; !ok {
		t.Fatal("http_request_duration_seconds not registered")
	}
}

func TestObserveNilReceiverIsSafe(t *testing.T) {
	var m *HTTPMetrics
	m.Observe("GET", "/x", 200, time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.Observe("GET", "/x", 200, time.Millisecond)
}
