package hqmetrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder captures per-branch sales figures reported to head office.
type Recorder interface {
	RecordSale(storeID, paymentMethod string, total float64, items int)
	RecordLowStock(storeID string)
}

type salesMetrics struct {
	ordersTotal    *prometheus.CounterVec
	revenueTotal   *prometheus.CounterVec
	itemsSold      *prometheus.CounterVec
	lowStockAlerts *prometheus.CounterVec
}

func newSalesMetrics(registry prometheus.Registerer) *salesMetrics {
	m := &salesMetrics{
		ordersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_branch_orders_total",
			Help: "Orders committed per branch.",
		}, []string{"store_id", "payment_method"}),
		revenueTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_branch_revenue_total",
			Help: "Grand total of committed orders per branch, in the configured currency.",
		}, []string{"store_id", "payment_method"}),
		itemsSold: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_branch_items_sold_total",
			Help: "Units sold per branch.",
		}, []string{"store_id"}),
		lowStockAlerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pos_branch_low_stock_alerts_total",
			Help: "Low stock alerts raised per branch.",
		}, []string{"store_id"}),
	}
	registry.MustRegister(m.ordersTotal, m.revenueTotal, m.itemsSold, m.lowStockAlerts)
	return m
}

type recorder struct {
	metrics *salesMetrics
}

func newRecorder(registry prometheus.Registerer) *recorder {
	return &recorder{metrics: newSalesMetrics(registry)}
}

type noopRecorder struct{}

func (noopRecorder) RecordSale(string, string, float64, int) {}
func (noopRecorder) RecordLowStock(string)                   {}

// NoopRecorder discards everything.
func NoopRecorder() Recorder { return noopRecorder{} }

func (r *recorder) RecordSale(storeID, paymentMethod string, total float64, items int) {
	if r == nil || r.metrics == nil {
		return
	}
	store := normalizeLabel(storeID)
	method := normalizeLabel(paymentMethod)
	r.metrics.ordersTotal.WithLabelValues(store, method).Inc()
	if total > 0 {
		r.metrics.revenueTotal.WithLabelValues(store, method).Add(total)
	}
	if items > 0 {
		r.metrics.itemsSold.WithLabelValues(store).Add(float64(items))
	}
}

func (r *recorder) RecordLowStock(storeID string) {
	if r == nil || r.metrics == nil {
		return
	}
	r.metrics.lowStockAlerts.WithLabelValues(normalizeLabel(storeID)).Inc()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return value
}
