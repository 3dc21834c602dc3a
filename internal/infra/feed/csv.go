package feed

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	"flowex/internal/domain"
)

// CSVFeed reads order records from a CSV stream with the layout
// client_order_id,instrument,side,quantity,price. The first row is
// treated as a header and skipped.
type CSVFeed struct {
	reader *csv.Reader
	closer io.Closer
	line   int
	header bool
}

// OpenCSV opens a CSV order file.
func OpenCSV(path string) (*CSVFeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	feed := NewCSV(f)
	feed.closer = f
	return feed, nil
}

// NewCSV wraps a reader as a CSV feed.
func NewCSV(r io.Reader) *CSVFeed {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows become validation rejects, not read errors
	return &CSVFeed{reader: cr}
}

func (f *CSVFeed) Next() (Record, error) {
	for {
		row, err := f.reader.Read()
		if errors.Is(err, io.EOF) {
			return Record{}, domain.ErrFeedExhausted
		}
		if err != nil {
			return Record{}, &domain.FeedError{Line: f.line + 1, Err: err}
		}
		f.line++
		if !f.header {
			f.header = true
			continue
		}
		return f.record(row), nil
	}
}

func (f *CSVFeed) record(row []string) Record {
	rec := Record{Line: f.line}
	for i, field := range row {
		switch i {
		case 0:
			rec.ClientOrderID = field
		case 1:
			rec.Instrument = field
		case 2:
			rec.Side = field
		case 3:
			rec.Quantity = field
		case 4:
			rec.Price = field
		}
	}
	return rec
}

// Close releases the underlying file, if any.
func (f *CSVFeed) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}
