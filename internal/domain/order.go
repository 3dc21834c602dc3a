package domain

import "github.com/shopspring/decimal"

// Order is the master record for one order request.
// It is created once per incoming request and mutated by the matching
// engine for the rest of the run; records are never removed, so terminal
// orders stay available for reporting and audit.
type Order struct {
	ID            string
	ClientOrderID string
	Instrument    Instrument
	Side          Side
	Quantity      int64 // remaining quantity, decreases as fills occur
	Price         decimal.Decimal
	Status        OrderStatus
	RejectReason  string // non-empty means upstream validation rejected the order
}

// Side is the direction of an order.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// ParseSide converts the wire encoding (1 = buy, 2 = sell) to a Side.
func ParseSide(code int) (Side, bool) {
	switch code {
	case 1:
		return SideBuy, true
	case 2:
		return SideSell, true
	default:
		return "", false
	}
}

// OrderStatus tracks an order through its life.
type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "NEW"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusRejected        OrderStatus = "REJECTED"
)

// IsTerminal reports whether the order can no longer change state.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusFilled || o.Status == OrderStatusRejected
}
