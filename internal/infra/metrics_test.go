package infra

import (
	"sync"
	"testing"
)

func TestMetrics_RecordAndSnapshot(t *testing.T) {
	m := &Metrics{}

	m.RecordOrder(1000)
	m.RecordOrder(3000)
	m.RecordTrade()
	m.RecordReject()
	m.RecordReport()
	m.RecordReport()

	snap := m.Snapshot()
	if snap.OrdersProcessed != 2 {
		t.Errorf("expected 2 orders, got %d", snap.OrdersProcessed)
	}
	if snap.TradesExecuted != 1 || snap.OrdersRejected != 1 {
		t.Errorf("unexpected counters: %+v", snap)
	}
	if snap.ReportsEmitted != 2 {
		t.Errorf("expected 2 reports, got %d", snap.ReportsEmitted)
	}
	if snap.AvgLatencyNs != 2000 {
		t.Errorf("expected avg latency 2000ns, got %d", snap.AvgLatencyNs)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := &Metrics{}
	m.RecordOrder(500)
	m.RecordTrade()

	m.Reset()

	snap := m.Snapshot()
	if snap.OrdersProcessed != 0 || snap.TradesExecuted != 0 || snap.AvgLatencyNs != 0 {
		t.Errorf("expected zeroed snapshot, got %+v", snap)
	}
}

func TestMetrics_ConcurrentUpdates(t *testing.T) {
	m := &Metrics{}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordOrder(10)
				m.RecordReport()
			}
		}()
	}
	wg.Wait()

	snap := m.Snapshot()
	if snap.OrdersProcessed != 1000 || snap.ReportsEmitted != 1000 {
		t.Errorf("lost updates: %+v", snap)
	}
}
