// Package progress renders the live per-record scrape log the CLI
// shows on stderr.
package progress

import (
	"fmt"
	"io"
	"strings"

	"github.com/bidwatch/bidwatch/models"
	"github.com/jedib0t/go-pretty/v6/text"
)

const titleWidth = 96

// Printer writes progress lines. A disabled printer writes nothing, so
// callers can invoke it unconditionally.
type Printer struct {
	w       io.Writer
	enabled bool
	colors  bool
}

// New creates a Printer writing to w. colors only matters when enabled.
func New(w io.Writer, enabled, colors bool) *Printer {
	return &Printer{w: w, enabled: enabled, colors: colors}
}

// Record prints one scraped item:
//
//	[0042] p3  1994 FORD F-150 ...  |  Current $150  |  Min $100  |  CLOSED
//
// The base is colored by status (WITHDRAWN bold red, CLOSED yellow,
// otherwise bold white) and the detail tail is dimmed.
func (p *Printer) Record(index, page int, row models.IDSRow, rec models.NormalizedRecord) {
	if !p.enabled {
		return
	}

	title := rec.Title
	if title == "" {
		title = row.PicHref
	}
	base := fmt.Sprintf("[%04d] p%d  %s", index, page, shorten(title, titleWidth))

	var details []string
	if rec.CurrentBid != "" {
		details = append(details, "Current "+rec.CurrentBid)
	}
	if rec.MinBid != "" {
		details = append(details, "Min "+rec.MinBid)
	}
	if rec.Status != models.StatusUnset {
		details = append(details, string(rec.Status))
	}
	tail := strings.Join(details, "  |  ")

	if p.colors {
		base = statusColors(rec.Status).Sprint(base)
		if tail != "" {
			tail = text.Colors{text.Faint}.Sprint(tail)
		}
	}

	line := base
	if tail != "" {
		line += "  " + tail
	}
	fmt.Fprintln(p.w, line)
}

// Banner prints a page-transition line (cyan when colored).
func (p *Printer) Banner(msg string) {
	if !p.enabled {
		return
	}
	if p.colors {
		msg = text.Colors{text.FgCyan}.Sprint(msg)
	}
	fmt.Fprintln(p.w, msg)
}

// Halt prints the end-of-data line (magenta when colored).
func (p *Printer) Halt(msg string) {
	if !p.enabled {
		return
	}
	if p.colors {
		msg = text.Colors{text.FgMagenta}.Sprint(msg)
	}
	fmt.Fprintln(p.w, msg)
}

func statusColors(s models.Status) text.Colors {
	switch s {
	case models.StatusWithdrawn:
		return text.Colors{text.Bold, text.FgRed}
	case models.StatusClosed:
		return text.Colors{text.FgYellow}
	default:
		return text.Colors{text.Bold, text.FgWhite}
	}
}

// shorten collapses whitespace and truncates to n runes with an
// ellipsis.
func shorten(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
