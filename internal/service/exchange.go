// Package service orchestrates exchange sessions: one finite ordered
// run of order requests through the matching engine, with report
// fan-out, metrics, and audit persistence.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"flowex/internal/domain"
	"flowex/internal/engine"
	"flowex/internal/infra"
	"flowex/internal/infra/feed"
	"flowex/internal/infra/report"
	"flowex/internal/infra/storage"
)

// Exchange runs order sessions over feeds. Each session gets a fresh
// engine (fresh books and registry), mirroring one run of the exchange
// over one input sequence.
type Exchange struct {
	instruments []domain.Instrument
	store       *storage.Store // nil disables audit persistence
}

// NewExchange creates an exchange for the given tradable set.
func NewExchange(instruments []domain.Instrument, store *storage.Store) *Exchange {
	return &Exchange{instruments: instruments, store: store}
}

// SessionResult carries everything one run produced.
type SessionResult struct {
	Session domain.Session           `json:"session"`
	Reports []domain.ExecutionReport `json:"reports"`
	Books   []engine.BookView        `json:"books"`
}

// sessionReporter stamps the session id on every report, keeps the
// session tallies, and forwards to the session's sinks.
type sessionReporter struct {
	sessionID string
	sink      engine.Reporter
	emitted   int
	fills     int
	rejects   int
}

func (r *sessionReporter) Publish(rep domain.ExecutionReport) {
	rep.SessionID = r.sessionID
	r.emitted++
	switch {
	case rep.IsFill():
		r.fills++
		infra.GlobalMetrics.RecordTrade()
	case rep.Status == domain.OrderStatusRejected:
		r.rejects++
		infra.GlobalMetrics.RecordReject()
	}
	infra.GlobalMetrics.RecordReport()
	r.sink.Publish(rep)
}

// Run processes the feed to exhaustion. Orders are assigned sequential
// ids and submitted in arrival order; processing of one order is never
// interrupted, the context is only checked between orders.
func (x *Exchange) Run(ctx context.Context, source feed.Feed, sourceName string, sinks ...engine.Reporter) (*SessionResult, error) {
	collector := &report.Collector{}
	wrapped := &sessionReporter{
		sessionID: uuid.NewString(),
		sink:      report.Multi(append([]engine.Reporter{collector, report.Logger{}}, sinks...)),
	}

	eng := engine.New(x.instruments, wrapped)
	startedAt := time.Now()
	seq := 0

	slog.Info("session started",
		slog.String("session_id", wrapped.sessionID),
		slog.String("source", sourceName))

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := source.Next()
		if errors.Is(err, domain.ErrFeedExhausted) {
			break
		}
		if err != nil {
			return nil, err
		}

		req := feed.Validate(rec)
		seq++
		order := &domain.Order{
			ID:            fmt.Sprintf("ord%d", seq),
			ClientOrderID: req.ClientOrderID,
			Instrument:    req.Instrument,
			Side:          req.Side,
			Quantity:      req.Quantity,
			Price:         req.Price,
			RejectReason:  req.Reason,
		}

		submitStart := time.Now()
		eng.Submit(order)
		infra.GlobalMetrics.RecordOrder(time.Since(submitStart).Nanoseconds())
	}

	result := &SessionResult{
		Session: domain.Session{
			ID:              wrapped.sessionID,
			Source:          sourceName,
			OrdersProcessed: seq,
			ReportsEmitted:  wrapped.emitted,
			FillsReported:   wrapped.fills,
			OrdersRejected:  wrapped.rejects,
			StartedAt:       startedAt,
			FinishedAt:      time.Now(),
		},
		Reports: collector.Reports(),
	}
	for _, instrument := range x.instruments {
		if view, ok := eng.Snapshot(instrument); ok {
			result.Books = append(result.Books, view)
		}
	}

	if x.store != nil {
		if err := x.store.SaveReports(result.Reports); err != nil {
			slog.Error("failed to persist execution reports", slog.Any("error", err))
		}
		if err := x.store.SaveSession(&result.Session); err != nil {
			slog.Error("failed to persist session", slog.Any("error", err))
		}
	}

	slog.Info("session finished",
		slog.String("session_id", wrapped.sessionID),
		slog.Int("orders", seq),
		slog.Int("reports", wrapped.emitted),
		slog.Int("rejected", wrapped.rejects),
		slog.Duration("elapsed", result.Session.FinishedAt.Sub(startedAt)))

	return result, nil
}
