package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"flowex/internal/domain"
)

// bookEntry is the lightweight form of an order while it rests in a book.
// It tracks its own remaining quantity independently of the order record:
// while resting, the entry's quantity is authoritative for matching and
// the record's quantity is authoritative for reporting. A partial drain
// of a resting entry reduces only the entry and emits no report; the
// record is only revisited when the entry is fully consumed.
type bookEntry struct {
	orderID  string
	quantity int64
	price    decimal.Decimal
}

// OrderBook holds the resting interest for a single instrument and runs
// the matching algorithm. Bids are kept price non-increasing and asks
// price non-decreasing; entries at the same price keep arrival order.
type OrderBook struct {
	instrument domain.Instrument
	bids       []bookEntry
	asks       []bookEntry
	registry   *Registry
	reporter   Reporter
	now        func() time.Time
}

// NewOrderBook creates an empty book bound to a registry and report sink.
func NewOrderBook(instrument domain.Instrument, registry *Registry, reporter Reporter) *OrderBook {
	return &OrderBook{
		instrument: instrument,
		registry:   registry,
		reporter:   reporter,
		now:        time.Now,
	}
}

// Submit matches one incoming order against the opposite side of the
// book, then rests any unmatched remainder on its own side. It is called
// once per order, in arrival order, and publishes one execution report
// per state change as it goes.
func (b *OrderBook) Submit(o *domain.Order) {
	if o.Instrument != b.instrument {
		panic(fmt.Sprintf("INSTRUMENT_MISMATCH: order %s is %s, book is %s", o.ID, o.Instrument, b.instrument))
	}

	if o.RejectReason != "" {
		o.Status = domain.OrderStatusRejected
		b.publish(o, o.Quantity, o.Price)
		return
	}

	if o.Quantity <= 0 {
		panic(fmt.Sprintf("NON_POSITIVE_QUANTITY: order %s qty %d", o.ID, o.Quantity))
	}

	if o.Side == domain.SideBuy {
		b.process(o, &b.asks, &b.bids, false)
	} else {
		b.process(o, &b.bids, &b.asks, true)
	}
}

// process sweeps the opposite queue while the front entry crosses the
// incoming price, then rests any leftover on the same-side queue.
func (b *OrderBook) process(o *domain.Order, opposite, same *[]bookEntry, incomingIsSell bool) {
	for len(*opposite) > 0 && o.Quantity > 0 {
		front := &(*opposite)[0]
		if incomingIsSell {
			if front.price.LessThan(o.Price) {
				break
			}
		} else {
			if front.price.GreaterThan(o.Price) {
				break
			}
		}

		matched := min(o.Quantity, front.quantity)

		// Status compares this step's starting quantities, not the
		// cumulative remainder. A sweep over several entries can leave
		// the taker PARTIALLY_FILLED on the step that drains it.
		if o.Quantity == front.quantity {
			o.Status = domain.OrderStatusFilled
		} else {
			o.Status = domain.OrderStatusPartiallyFilled
		}

		tradePrice := front.price // maker price, never worse for the resting side
		front.quantity -= matched
		b.publish(o, matched, tradePrice)
		o.Quantity -= matched

		if front.quantity == 0 {
			maker, err := b.registry.Lookup(front.orderID)
			if err != nil {
				panic(fmt.Sprintf("UNREGISTERED_RESTING_ORDER: %s", front.orderID))
			}
			maker.Status = domain.OrderStatusFilled
			b.publish(maker, maker.Quantity, maker.Price)
			*opposite = (*opposite)[1:]
		}
	}

	if o.Quantity > 0 {
		b.rest(o, same, incomingIsSell)
	}
}

// rest inserts the unmatched remainder at the position that keeps the
// queue's price ordering, after all entries at the same price.
func (b *OrderBook) rest(o *domain.Order, same *[]bookEntry, ascending bool) {
	entry := bookEntry{orderID: o.ID, quantity: o.Quantity, price: o.Price}

	idx := len(*same)
	for i := range *same {
		if ascending {
			if (*same)[i].price.GreaterThan(o.Price) {
				idx = i
				break
			}
		} else {
			if (*same)[i].price.LessThan(o.Price) {
				idx = i
				break
			}
		}
	}

	*same = append(*same, bookEntry{})
	copy((*same)[idx+1:], (*same)[idx:])
	(*same)[idx] = entry

	o.Status = domain.OrderStatusNew
	b.publish(o, o.Quantity, o.Price)
}

func (b *OrderBook) publish(o *domain.Order, qty int64, price decimal.Decimal) {
	b.reporter.Publish(domain.ExecutionReport{
		OrderID:       o.ID,
		ClientOrderID: o.ClientOrderID,
		Instrument:    o.Instrument,
		Side:          o.Side,
		Status:        o.Status,
		Quantity:      qty,
		Price:         price,
		Reason:        o.RejectReason,
		CreatedAt:     b.now(),
	})
}

// LevelView is one resting entry in a book snapshot.
type LevelView struct {
	OrderID  string          `json:"order_id"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// BookView is a copy of the book's current resting state, best price first.
type BookView struct {
	Instrument domain.Instrument `json:"instrument"`
	Bids       []LevelView       `json:"bids"`
	Asks       []LevelView       `json:"asks"`
}

// Snapshot returns a copy of the current resting state.
func (b *OrderBook) Snapshot() BookView {
	view := BookView{Instrument: b.instrument}
	for _, e := range b.bids {
		view.Bids = append(view.Bids, LevelView{OrderID: e.orderID, Quantity: e.quantity, Price: e.price})
	}
	for _, e := range b.asks {
		view.Asks = append(view.Asks, LevelView{OrderID: e.orderID, Quantity: e.quantity, Price: e.price})
	}
	return view
}
