package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulingMetrics counts scheduling writes and checkouts. A nil receiver is a no-op.
type SchedulingMetrics struct {
	appointmentsTotal *prometheus.CounterVec
	conflictsTotal    *prometheus.CounterVec
	checkoutsTotal    *prometheus.CounterVec
	checkoutLatency   prometheus.Histogram
	saleAmountTotal   prometheus.Counter
	stockTruncations  prometheus.Counter
	catalogWrites     *prometheus.CounterVec
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		appointmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "scheduling",
			Name:      "appointment_writes_total",
			Help:      "Appointment writes by operation and outcome",
		}, []string{"operation", "outcome"}),
		conflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "scheduling",
			Name:      "conflicts_total",
			Help:      "Rejected or overridden placements by reason",
		}, []string{"reason", "overridden"}),
		checkoutsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "checkout",
			Name:      "total",
			Help:      "Checkouts by outcome",
		}, []string{"outcome", "payment_method"}),
		checkoutLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "salon",
			Subsystem: "checkout",
			Name:      "latency_seconds",
			Help:      "Latency of the checkout transaction",
			Buckets:   prometheus.DefBuckets,
		}),
		saleAmountTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "checkout",
			Name:      "sale_amount_total",
			Help:      "Sum of tax-inclusive sale totals in minor units",
		}),
		stockTruncations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "checkout",
			Name:      "stock_truncations_total",
			Help:      "Product decrements floored at zero stock",
		}),
		catalogWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "salon",
			Subsystem: "catalog",
			Name:      "writes_total",
			Help:      "Staff, menu and inventory writes by operation and outcome",
		}, []string{"operation", "outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.appointmentsTotal, m.conflictsTotal, m.checkoutsTotal, m.checkoutLatency, m.saleAmountTotal, m.stockTruncations, m.catalogWrites)
	return m
}

func (m *SchedulingMetrics) ObserveAppointmentWrite(operation string, err error) {
	if m == nil {
		return
	}
	m.appointmentsTotal.WithLabelValues(operation, outcome(err)).Inc()
}

func (m *SchedulingMetrics) ObserveConflict(reason string, overridden bool) {
	if m == nil {
		return
	}
	label := "false"
	if overridden {
		label = "true"
	}
	m.conflictsTotal.WithLabelValues(reason, label).Inc()
}

func (m *SchedulingMetrics) ObserveCheckout(paymentMethod string, amount int64, seconds float64, err error) {
	if m == nil {
		return
	}
	m.checkoutsTotal.WithLabelValues(outcome(err), paymentMethod).Inc()
	m.checkoutLatency.Observe(seconds)
	if err == nil && amount > 0 {
		m.saleAmountTotal.Add(float64(amount))
	}
}

func (m *SchedulingMetrics) ObserveStockTruncation() {
	if m == nil {
		return
	}
	m.stockTruncations.Inc()
}

func (m *SchedulingMetrics) ObserveCatalogWrite(operation string, err error) {
	if m == nil {
		return
	}
	m.catalogWrites.WithLabelValues(operation, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
