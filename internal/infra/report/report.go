// Package report provides execution report sinks: CSV files, the audit
// store, logs, and in-memory collectors, plus a fan-out combinator.
package report

import (
	"log/slog"
	"sync"

	"flowex/internal/domain"
	"flowex/internal/engine"
)

// Multi fans one report out to several sinks, in order.
type Multi []engine.Reporter

func (m Multi) Publish(r domain.ExecutionReport) {
	for _, sink := range m {
		sink.Publish(r)
	}
}

// Collector buffers reports in publish order. Safe for concurrent reads
// after the session completes; Publish itself is called from the single
// engine thread.
type Collector struct {
	mu      sync.Mutex
	reports []domain.ExecutionReport
}

func (c *Collector) Publish(r domain.ExecutionReport) {
	c.mu.Lock()
	c.reports = append(c.reports, r)
	c.mu.Unlock()
}

// Reports returns a copy of everything published so far.
func (c *Collector) Reports() []domain.ExecutionReport {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.ExecutionReport, len(c.reports))
	copy(out, c.reports)
	return out
}

// Logger writes each report to slog at debug level, with rejects at warn.
type Logger struct{}

func (Logger) Publish(r domain.ExecutionReport) {
	attrs := []any{
		slog.String("order_id", r.OrderID),
		slog.String("instrument", string(r.Instrument)),
		slog.String("status", string(r.Status)),
		slog.Int64("quantity", r.Quantity),
		slog.String("price", r.Price.String()),
	}
	if r.Status == domain.OrderStatusRejected {
		slog.Warn("order rejected", append(attrs, slog.String("reason", r.Reason))...)
		return
	}
	slog.Debug("execution report", attrs...)
}
