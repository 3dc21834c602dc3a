// Package feed supplies order requests to the exchange. A Feed yields
// raw records in arrival order; validation turns each record into a
// request the engine can accept, attaching a rejection reason instead of
// dropping bad rows so every request still produces an execution report.
package feed

import (
	"strconv"

	"github.com/shopspring/decimal"

	"flowex/internal/domain"
)

// Record is one raw order row as read from the input.
type Record struct {
	Line          int
	ClientOrderID string
	Instrument    string
	Side          string
	Quantity      string
	Price         string
}

// Feed yields records until domain.ErrFeedExhausted.
type Feed interface {
	Next() (Record, error)
}

// Request is a record after field validation, ready for dispatch.
// Reason is non-empty when any field failed a rule; numeric fields are
// parsed best-effort so a reject report can still echo the request.
type Request struct {
	ClientOrderID string
	Instrument    domain.Instrument
	Side          domain.Side
	Quantity      int64
	Price         decimal.Decimal
	Reason        string
}

// Validate applies the exchange admission rules to one record.
func Validate(rec Record) Request {
	req := Request{
		ClientOrderID: rec.ClientOrderID,
		Instrument:    domain.Instrument(rec.Instrument),
		Price:         decimal.Zero,
	}

	sideCode, sideErr := strconv.Atoi(rec.Side)
	if side, ok := domain.ParseSide(sideCode); sideErr == nil && ok {
		req.Side = side
	}
	qty, qtyErr := strconv.ParseInt(rec.Quantity, 10, 64)
	if qtyErr == nil {
		req.Quantity = qty
	}
	price, priceErr := decimal.NewFromString(rec.Price)
	if priceErr == nil {
		req.Price = price
	}

	switch {
	case rec.ClientOrderID == "":
		req.Reason = "Invalid client order ID"
	case rec.Instrument == "":
		req.Reason = "Invalid instrument"
	case rec.Side == "" || sideErr != nil:
		req.Reason = "Invalid side"
	case rec.Quantity == "" || qtyErr != nil:
		req.Reason = "Invalid size"
	case rec.Price == "" || priceErr != nil:
		req.Reason = "Invalid price"
	default:
		if _, ok := domain.ParseInstrument(rec.Instrument); !ok {
			req.Reason = "Invalid instrument"
		} else if req.Side == "" {
			req.Reason = "Invalid side"
		} else if req.Price.IsNegative() {
			req.Reason = "Invalid price"
		} else if req.Quantity%10 != 0 || req.Quantity < 10 || req.Quantity > 1000 {
			req.Reason = "Invalid size"
		}
	}

	return req
}

// Slice is an in-memory feed over a fixed batch of records.
type Slice struct {
	records []Record
	next    int
}

// NewSlice wraps a batch of records as a Feed.
func NewSlice(records []Record) *Slice {
	return &Slice{records: records}
}

func (s *Slice) Next() (Record, error) {
	if s.next >= len(s.records) {
		return Record{}, domain.ErrFeedExhausted
	}
	rec := s.records[s.next]
	s.next++
	if rec.Line == 0 {
		rec.Line = s.next
	}
	return rec, nil
}
