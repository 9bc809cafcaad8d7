// Package export writes scraped records to the two supported output
// schemas: the legacy 16-column IDS TSV and the normalized CSV.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/bidwatch/bidwatch/models"
)

// TSVWriter emits IDS-compatible rows as tab-separated values. The
// header row is written on construction; each Write flushes so a
// consumer tailing the file sees rows as they are scraped.
type TSVWriter struct {
	w  *bufio.Writer
	mu sync.Mutex
}

// NewTSVWriter wraps w and writes the IDS header row.
func NewTSVWriter(w io.Writer) (*TSVWriter, error) {
	tw := &TSVWriter{w: bufio.NewWriter(w)}
	if _, err := tw.w.WriteString(strings.Join(models.IDSHeaders[:], "\t") + "\n"); err != nil {
		return nil, fmt.Errorf("write tsv header: %w", err)
	}
	if err := tw.w.Flush(); err != nil {
		return nil, fmt.Errorf("flush tsv header: %w", err)
	}
	return tw, nil
}

// Write appends one sanitized row.
func (tw *TSVWriter) Write(row models.IDSRow) error {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	fields := row.Fields()
	cells := make([]string, len(fields))
	for i, f := range fields {
		cells[i] = SanitizeTSVField(f)
	}
	if _, err := tw.w.WriteString(strings.Join(cells, "\t") + "\n"); err != nil {
		return fmt.Errorf("write tsv record: %w", err)
	}
	if err := tw.w.Flush(); err != nil {
		return fmt.Errorf("flush tsv record: %w", err)
	}
	return nil
}

// tsvCleaner maps the characters that would corrupt a TSV stream to
// single spaces. The legacy consumer does not understand quoting, so
// replacement — not escaping — is the contract.
var tsvCleaner = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")

// SanitizeTSVField makes a value safe to embed in a tab-separated row.
func SanitizeTSVField(v string) string {
	return strings.TrimSpace(tsvCleaner.Replace(v))
}
