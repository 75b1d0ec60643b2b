package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты попытки checkout для метки result.
const (
	CheckoutResultSuccess           = "success"
	CheckoutResultEmptyCart         = "empty_cart"
	CheckoutResultInsufficientStock = "insufficient_stock"
	CheckoutResultUnavailable       = "product_unavailable"
	CheckoutResultConflict          = "conflict"
	CheckoutResultError             = "error"
)

// CheckoutMetrics содержит метрики корзины и checkout.
type CheckoutMetrics struct {
	checkouts        *prometheus.CounterVec
	checkoutRetries  prometheus.Counter
	checkoutDuration prometheus.Histogram
	orderItems       prometheus.Histogram
	orderAmount      prometheus.Histogram
	activeCheckouts  prometheus.Gauge

	cartMutations *prometheus.CounterVec

	timelineEvents prometheus.Counter
	statusChanges  prometheus.Counter
}

// NewCheckoutMetrics регистрирует метрики в prometheus.DefaultRegisterer.
func NewCheckoutMetrics() *CheckoutMetrics {
	return NewCheckoutMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewCheckoutMetricsWithRegisterer позволяет тестам использовать свой реестр.
func NewCheckoutMetricsWithRegisterer(registerer prometheus.Registerer) *CheckoutMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &CheckoutMetrics{
		checkouts: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "shop_checkout_total",
			Help: "Total number of checkout attempts by result",
		}, []string{"result"}),
		checkoutRetries: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_checkout_retries_total",
			Help: "Total number of checkout transactions retried after a concurrency conflict",
		}),
		checkoutDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "shop_checkout_duration_seconds",
			Help:    "Duration of checkout including retries",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}),
		orderItems: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "shop_order_items",
			Help:    "Number of lines per placed order",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		orderAmount: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "shop_order_amount_minor",
			Help:    "Placed order totals in minor currency units",
			Buckets: prometheus.ExponentialBuckets(100, 4, 8),
		}),
		activeCheckouts: registerGauge(registerer, prometheus.GaugeOpts{
			Name: "shop_active_checkouts",
			Help: "Number of checkouts currently in flight",
		}),
		cartMutations: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "shop_cart_mutations_total",
			Help: "Total number of cart mutations by operation",
		}, []string{"op"}),
		timelineEvents: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_timeline_events_total",
			Help: "Total number of order timeline events recorded",
		}),
		statusChanges: registerCounter(registerer, prometheus.CounterOpts{
			Name: "shop_order_status_changes_total",
			Help: "Total number of administrative order status changes",
		}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerGauge(registerer prometheus.Registerer, opts prometheus.GaugeOpts) prometheus.Gauge {
	collector := prometheus.NewGauge(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Gauge)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register gauge %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

// CheckoutStarted отмечает начало checkout; вызывающий обязан вызвать CheckoutFinished.
func (m *CheckoutMetrics) CheckoutStarted() {
	if m == nil {
		return
	}
	m.activeCheckouts.Inc()
}

// CheckoutFinished записывает результат и длительность checkout.
func (m *CheckoutMetrics) CheckoutFinished(result string, duration time.Duration) {
	if m == nil {
		return
	}
	m.activeCheckouts.Dec()
	m.checkouts.WithLabelValues(result).Inc()
	m.checkoutDuration.Observe(duration.Seconds())
}

// RecordRetry увеличивает счётчик повторов транзакции.
func (m *CheckoutMetrics) RecordRetry() {
	if m == nil {
		return
	}
	m.checkoutRetries.Inc()
}

// RecordOrderPlaced записывает размер и сумму оформленного заказа.
func (m *CheckoutMetrics) RecordOrderPlaced(lines int, amountMinor int64) {
	if m == nil {
		return
	}
	m.orderItems.Observe(float64(lines))
	m.orderAmount.Observe(float64(amountMinor))
}

// RecordCartMutation увеличивает счётчик изменений корзины.
func (m *CheckoutMetrics) RecordCartMutation(op string) {
	if m == nil {
		return
	}
	m.cartMutations.WithLabelValues(op).Inc()
}

// RecordTimelineEvent увеличивает счётчик событий timeline.
func (m *CheckoutMetrics) RecordTimelineEvent() {
	if m == nil {
		return
	}
	m.timelineEvents.Inc()
}

// RecordStatusChange увеличивает счётчик смен статуса.
func (m *CheckoutMetrics) RecordStatusChange() {
	if m == nil {
		return
	}
	m.statusChanges.Inc()
}
