package engine

import (
	"strconv"
	"testing"

	"github.com/shopspring/decimal"

	"flowex/internal/domain"
)

type discardReporter struct{}

func (discardReporter) Publish(domain.ExecutionReport) {}

func BenchmarkBookSubmit(b *testing.B) {
	reg := NewRegistry()
	book := NewOrderBook(domain.InstrumentRose, reg, discardReporter{})

	prices := make([]decimal.Decimal, 16)
	for i := range prices {
		prices[i] = decimal.NewFromInt(int64(95 + i))
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		side := domain.SideBuy
		if i%2 == 1 {
			side = domain.SideSell
		}
		o := &domain.Order{
			ID:         "ord" + strconv.Itoa(i),
			Instrument: domain.InstrumentRose,
			Side:       side,
			Quantity:   10 * int64(1+i%10),
			Price:      prices[i%len(prices)],
		}
		reg.Register(o)
		book.Submit(o)
	}
}
