package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external
// dependencies. All operations are atomic and safe for concurrent use.
type Metrics struct {
	ordersProcessed atomic.Uint64
	tradesExecuted  atomic.Uint64
	ordersRejected  atomic.Uint64
	reportsEmitted  atomic.Uint64

	latencySumNs atomic.Int64
	latencyCount atomic.Uint64
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordOrder records one processed order with its matching latency.
func (m *Metrics) RecordOrder(latencyNs int64) {
	m.ordersProcessed.Add(1)
	m.latencySumNs.Add(latencyNs)
	m.latencyCount.Add(1)
}

// RecordTrade records one executed match.
func (m *Metrics) RecordTrade() {
	m.tradesExecuted.Add(1)
}

// RecordReject records one rejected order.
func (m *Metrics) RecordReject() {
	m.ordersRejected.Add(1)
}

// RecordReport records one emitted execution report.
func (m *Metrics) RecordReport() {
	m.reportsEmitted.Add(1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	OrdersProcessed uint64    `json:"orders_processed"`
	TradesExecuted  uint64    `json:"trades_executed"`
	OrdersRejected  uint64    `json:"orders_rejected"`
	ReportsEmitted  uint64    `json:"reports_emitted"`
	AvgLatencyNs    int64     `json:"avg_latency_ns"`
	Timestamp       time.Time `json:"timestamp"`
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var avgLatency int64
	count := m.latencyCount.Load()
	if count > 0 {
		avgLatency = m.latencySumNs.Load() / int64(count)
	}

	return MetricsSnapshot{
		OrdersProcessed: m.ordersProcessed.Load(),
		TradesExecuted:  m.tradesExecuted.Load(),
		OrdersRejected:  m.ordersRejected.Load(),
		ReportsEmitted:  m.reportsEmitted.Load(),
		AvgLatencyNs:    avgLatency,
		Timestamp:       time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.ordersProcessed.Store(0)
	m.tradesExecuted.Store(0)
	m.ordersRejected.Store(0)
	m.reportsEmitted.Store(0)
	m.latencySumNs.Store(0)
	m.latencyCount.Store(0)
}
