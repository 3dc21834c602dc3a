package report

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"

	"flowex/internal/domain"
)

var csvHeader = []string{"order_id", "client_order_id", "instrument", "side", "status", "quantity", "price", "reason"}

// CSVWriter writes execution reports as CSV rows, one per report, in
// publish order.
type CSVWriter struct {
	writer *csv.Writer
	closer io.Closer
}

// CreateCSVFile creates (or truncates) an execution report file.
func CreateCSVFile(path string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w, err := NewCSVWriter(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// NewCSVWriter wraps a writer and emits the header row.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return nil, err
	}
	return &CSVWriter{writer: cw}, nil
}

func (w *CSVWriter) Publish(r domain.ExecutionReport) {
	row := []string{
		r.OrderID,
		r.ClientOrderID,
		string(r.Instrument),
		string(r.Side),
		string(r.Status),
		strconv.FormatInt(r.Quantity, 10),
		r.Price.String(),
		r.Reason,
	}
	if err := w.writer.Write(row); err != nil {
		slog.Error("failed to write execution report row", slog.String("order_id", r.OrderID), slog.Any("error", err))
	}
}

// Close flushes buffered rows and releases the underlying file, if any.
func (w *CSVWriter) Close() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		return err
	}
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}
