package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
)

// testutilCounterValue extracts the current value of a counter via its
// protobuf representation, avoiding a dependency on the separate
// prometheus/client_golang/prometheus/testutil module.
func testutilCounterValue(t *testing.T, c interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("failed to collect metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

// testutilGaugeValue extracts the current value of a gauge.
func testutilGaugeValue(t *testing.T, g interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := g.Write(m); err != nil {
		t.Fatalf("failed to collect metric: %v", err)
	}
	return m.GetGauge().GetValue()
}
