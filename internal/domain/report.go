package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExecutionReport is emitted once per meaningful order state change:
// a new resting order, a taker fill, a maker completion, or a reject.
// Quantity and Price reflect the specific event (match quantity and trade
// price for fills, resting quantity and limit price for new orders).
type ExecutionReport struct {
	Seq           uint64          `json:"seq" gorm:"primaryKey;autoIncrement"`
	SessionID     string          `json:"session_id" gorm:"index"`
	OrderID       string          `json:"order_id" gorm:"index"`
	ClientOrderID string          `json:"client_order_id"`
	Instrument    Instrument      `json:"instrument" gorm:"index"`
	Side          Side            `json:"side"`
	Status        OrderStatus     `json:"status"`
	Quantity      int64           `json:"quantity"`
	Price         decimal.Decimal `json:"price" gorm:"type:text"`
	Reason        string          `json:"reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// IsFill reports whether the report describes an execution rather than a
// resting insert or a reject.
func (r *ExecutionReport) IsFill() bool {
	return r.Status == OrderStatusFilled || r.Status == OrderStatusPartiallyFilled
}
