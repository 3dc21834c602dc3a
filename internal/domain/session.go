package domain

import "time"

// Session is the audit record for one run over an input sequence.
type Session struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	Source          string    `json:"source"` // input file or "http"
	OrdersProcessed int       `json:"orders_processed"`
	ReportsEmitted  int       `json:"reports_emitted"`
	FillsReported   int       `json:"fills_reported"`
	OrdersRejected  int       `json:"orders_rejected"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
}
