// Package server exposes the exchange over HTTP: batch order
// submission returning the full execution report, audit queries, and a
// live websocket report feed.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"

	"flowex/internal/domain"
	"flowex/internal/engine"
	"flowex/internal/infra"
	"flowex/internal/infra/feed"
	"flowex/internal/infra/storage"
	"flowex/internal/service"
)

// Server handles the HTTP and websocket surface of the exchange.
type Server struct {
	exchange   *service.Exchange
	store      *storage.Store
	reportHub  *hub[domain.ExecutionReport]
	upgrader   websocket.Upgrader
	corsOrigin string
}

// New creates a server around an exchange and its audit store.
func New(exchange *service.Exchange, store *storage.Store, corsOrigin string) *Server {
	return &Server{
		exchange:   exchange,
		store:      store,
		reportHub:  newHub[domain.ExecutionReport](),
		upgrader:   websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		corsOrigin: corsOrigin,
	}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/health", s.withCORS(http.HandlerFunc(s.handleHealth)))
	mux.Handle("/api/orders", s.withCORS(http.HandlerFunc(s.handleOrders)))
	mux.Handle("/api/reports", s.withCORS(http.HandlerFunc(s.handleReports)))
	mux.Handle("/api/sessions", s.withCORS(http.HandlerFunc(s.handleSessions)))
	mux.Handle("/api/metrics", s.withCORS(http.HandlerFunc(s.handleMetrics)))
	mux.Handle("/ws/reports", http.HandlerFunc(s.handleReportStream))
	return mux
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// orderRow is one order request in a batch submission.
type orderRow struct {
	ClientOrderID string          `json:"client_order_id"`
	Instrument    string          `json:"instrument"`
	Side          int             `json:"side"` // 1 = buy, 2 = sell
	Quantity      int64           `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
}

type orderBatch struct {
	Orders []orderRow `json:"orders"`
}

// handleOrders runs a submitted batch through a fresh engine session and
// responds with the complete execution report, mirroring a file run.
func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var batch orderBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload: " + err.Error()})
		return
	}
	if len(batch.Orders) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "empty order batch"})
		return
	}

	records := make([]feed.Record, 0, len(batch.Orders))
	for _, row := range batch.Orders {
		records = append(records, feed.Record{
			ClientOrderID: row.ClientOrderID,
			Instrument:    row.Instrument,
			Side:          strconv.Itoa(row.Side),
			Quantity:      strconv.FormatInt(row.Quantity, 10),
			Price:         row.Price.String(),
		})
	}

	live := engine.ReporterFunc(func(rep domain.ExecutionReport) {
		s.reportHub.Broadcast(rep)
	})

	result, err := s.exchange.Run(r.Context(), feed.NewSlice(records), "http", live)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "audit store disabled"})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	reports, err := s.store.ListReports(r.URL.Query().Get("session_id"), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "audit store disabled"})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	sessions, err := s.store.ListSessions(limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, infra.GlobalMetrics.Snapshot())
}

type outboundMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func (s *Server) handleReportStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	sub := s.reportHub.Subscribe(64)
	defer s.reportHub.Unsubscribe(sub)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case rep, ok := <-sub.ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(outboundMessage{Type: "report", Data: rep}); err != nil {
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}
