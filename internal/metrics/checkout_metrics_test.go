package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewCheckoutMetricsWithRegisterer(t *testing.T) {
	m := NewCheckoutMetricsWithRegisterer(prometheus.NewRegistry())

	if m.checkouts == nil || m.checkoutRetries == nil || m.checkoutDuration == nil {
		t.Fatal("checkout collectors should not be nil")
	}
	if m.cartMutations == nil || m.activeCheckouts == nil {
		t.Fatal("cart collectors should not be nil")
	}
}

func TestNewCheckoutMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := NewCheckoutMetricsWithRegisterer(reg)
	second := NewCheckoutMetricsWithRegisterer(reg)

	first.RecordRetry()
	second.RecordRetry()

	if got := counterValue(t, second.checkoutRetries); got != 2 {
		t.Fatalf("expected shared counter value 2, got %v", got)
	}
}

func TestCheckoutFinished(t *testing.T) {
	m := NewCheckoutMetricsWithRegisterer(prometheus.NewRegistry())

	m.CheckoutStarted()
	if got := gaugeValue(t, m.activeCheckouts); got != 1 {
		t.Fatalf("expected 1 active checkout, got %v", got)
	}

	m.CheckoutFinished(CheckoutResultInsufficientStock, 15*time.Millisecond)
	if got := gaugeValue(t, m.activeCheckouts); got != 0 {
		t.Fatalf("expected 0 active checkouts, got %v", got)
	}
	if got := counterValue(t, m.checkouts.WithLabelValues(CheckoutResultInsufficientStock)); got != 1 {
		t.Fatalf("expected insufficient_stock counter 1, got %v", got)
	}
}

func TestRecordCartMutation(t *testing.T) {
	m := NewCheckoutMetricsWithRegisterer(prometheus.NewRegistry())

	m.RecordCartMutation("add")
	m.RecordCartMutation("add")
	m.RecordCartMutation("remove")

	if got := counterValue(t, m.cartMutations.WithLabelValues("add")); got != 2 {
		t.Fatalf("expected add counter 2, got %v", got)
	}
	if got := counterValue(t, m.cartMutations.WithLabelValues("remove")); got != 1 {
		t.Fatalf("expected remove counter 1, got %v", got)
	}
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *CheckoutMetrics

	m.CheckoutStarted()
	m.CheckoutFinished(CheckoutResultSuccess, time.Millisecond)
	m.RecordRetry()
	m.RecordOrderPlaced(2, 1000)
	m.RecordCartMutation("add")
	m.RecordTimelineEvent()
	m.RecordStatusChange()
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	var metric dto.Metric
	if err := c.Write(&metric); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	return metric.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()

	var metric dto.Metric
	if err := g.Write(&metric); err != nil {
		t.Fatalf("write gauge: %v", err)
	}
	return metric.GetGauge().GetValue()
}
