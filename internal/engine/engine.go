package engine

import (
	"time"

	"flowex/internal/domain"
)

// Reporter receives one execution report per meaningful order state
// change, in the exact order the transitions occur.
type Reporter interface {
	Publish(domain.ExecutionReport)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(domain.ExecutionReport)

func (f ReporterFunc) Publish(r domain.ExecutionReport) { f(r) }

// Engine owns one order book per instrument plus the shared order
// registry. All mutation of book and registry state happens inside
// Submit; nothing outside the engine holds a reference to book
// internals. Processing is single-threaded: one order is handled fully
// before the next is considered.
type Engine struct {
	books    map[domain.Instrument]*OrderBook
	registry *Registry
	reporter Reporter
}

// New creates an engine with an empty book for each given instrument.
func New(instruments []domain.Instrument, reporter Reporter) *Engine {
	e := &Engine{
		books:    make(map[domain.Instrument]*OrderBook, len(instruments)),
		registry: NewRegistry(),
		reporter: reporter,
	}
	for _, instrument := range instruments {
		e.books[instrument] = NewOrderBook(instrument, e.registry, reporter)
	}
	return e
}

// Submit registers the incoming order and routes it to its instrument's
// book. An unrecognized instrument short-circuits to a Rejected report
// without touching any book.
func (e *Engine) Submit(o *domain.Order) {
	e.registry.Register(o)

	book, ok := e.books[o.Instrument]
	if !ok {
		o.Status = domain.OrderStatusRejected
		if o.RejectReason == "" {
			o.RejectReason = domain.ErrUnknownInstrument.Error()
		}
		e.reporter.Publish(domain.ExecutionReport{
			OrderID:       o.ID,
			ClientOrderID: o.ClientOrderID,
			Instrument:    o.Instrument,
			Side:          o.Side,
			Status:        o.Status,
			Quantity:      o.Quantity,
			Price:         o.Price,
			Reason:        o.RejectReason,
			CreatedAt:     time.Now(),
		})
		return
	}

	book.Submit(o)
}

// Registry exposes the order registry for read-side lookups.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Snapshot returns the resting state of one instrument's book.
func (e *Engine) Snapshot(instrument domain.Instrument) (BookView, bool) {
	book, ok := e.books[instrument]
	if !ok {
		return BookView{}, false
	}
	return book.Snapshot(), true
}
