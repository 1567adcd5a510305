package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewWithRegisterer(reg)

	r.RecordProviderCall("wio", "accounts", "ok", 0.12)
	r.RecordProviderCall("wio", "accounts", "ok", 0.08)
	r.RecordProviderCall("wio", "accounts", "error", 5)
	r.RecordTransfer("mashreq", "success")
	r.RecordPriceSource("binance", false, 0.3)

	if got := testutil.ToFloat64(r.providerCalls.WithLabelValues("wio", "accounts", "ok")); got != 2 {
		t.Fatalf("expected 2 ok calls, got %v", got)
	}
	if got := testutil.ToFloat64(r.transfers.WithLabelValues("mashreq", "success")); got != 1 {
		t.Fatalf("expected 1 transfer, got %v", got)
	}
	if got := testutil.ToFloat64(r.sourceUp.WithLabelValues("binance")); got != 0 {
		t.Fatalf("expected source down, got %v", got)
	}
}
