package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sync"

	"github.com/bidwatch/bidwatch/models"
)

// csvHeader lists the normalized schema's columns in emission order.
var csvHeader = []string{
	"item_url", "image_url", "title",
	"current_bid", "min_bid", "bid_increment",
	"high_bidder", "bids",
	"time_remaining", "item_location",
	"status", "extra_info",
}

// CSVWriter emits normalized records as CSV rows.
type CSVWriter struct {
	w  *csv.Writer
	mu sync.Mutex
}

// NewCSVWriter wraps w and writes the header row.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := &CSVWriter{w: csv.NewWriter(w)}
	if err := cw.w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	cw.w.Flush()
	if err := cw.w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv header: %w", err)
	}
	return cw, nil
}

// Write appends one record.
func (cw *CSVWriter) Write(rec models.NormalizedRecord) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	row := []string{
		rec.ItemURL, rec.ImageURL, rec.Title,
		rec.CurrentBid, rec.MinBid, rec.BidIncrement,
		rec.HighBidder, rec.BidCount,
		rec.TimeRemaining, rec.ItemLocation,
		string(rec.Status), rec.ExtraInfo,
	}
	if err := cw.w.Write(row); err != nil {
		return fmt.Errorf("write csv record: %w", err)
	}
	cw.w.Flush()
	if err := cw.w.Error(); err != nil {
		return fmt.Errorf("flush csv record: %w", err)
	}
	return nil
}
