package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"flowex/internal/domain"
	"flowex/internal/infra/storage"
	"flowex/internal/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	exchange := service.NewExchange(domain.Instruments(), store)
	ts := httptest.NewServer(New(exchange, store, "*").Routes())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestSubmitOrderBatch(t *testing.T) {
	ts := newTestServer(t)

	body := `{"orders":[
		{"client_order_id":"c1","instrument":"Rose","side":2,"quantity":50,"price":10},
		{"client_order_id":"c2","instrument":"Rose","side":1,"quantity":50,"price":10},
		{"client_order_id":"c3","instrument":"Daisy","side":1,"quantity":50,"price":10}
	]}`

	resp, err := http.Post(ts.URL+"/api/orders", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result service.SessionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if result.Session.OrdersProcessed != 3 {
		t.Errorf("expected 3 orders, got %d", result.Session.OrdersProcessed)
	}
	// NEW, taker fill, maker fill, reject.
	if len(result.Reports) != 4 {
		t.Fatalf("expected 4 reports, got %d", len(result.Reports))
	}
	last := result.Reports[3]
	if last.Status != domain.OrderStatusRejected || last.Reason != "Invalid instrument" {
		t.Errorf("unexpected reject report: %+v", last)
	}

	// Persisted reports are queryable afterwards.
	listResp, err := http.Get(ts.URL + "/api/reports?session_id=" + result.Session.ID)
	if err != nil {
		t.Fatalf("reports request failed: %v", err)
	}
	defer listResp.Body.Close()
	var persisted []domain.ExecutionReport
	if err := json.NewDecoder(listResp.Body).Decode(&persisted); err != nil {
		t.Fatalf("decode reports: %v", err)
	}
	if len(persisted) != 4 {
		t.Errorf("expected 4 persisted reports, got %d", len(persisted))
	}
}

func TestSubmitRejectsBadPayload(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/orders", "application/json", bytes.NewBufferString(`{"orders":[]}`))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for empty batch, got %d", resp.StatusCode)
	}

	resp2, err := http.Post(ts.URL+"/api/orders", "application/json", bytes.NewBufferString(`not json`))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid json, got %d", resp2.StatusCode)
	}
}

func TestSubmitRequiresPost(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/orders")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/metrics")
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	var snap map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	if _, ok := snap["orders_processed"]; !ok {
		t.Errorf("missing orders_processed in %v", snap)
	}
}
