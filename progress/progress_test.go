package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bidwatch/bidwatch/models"
	"github.com/stretchr/testify/assert"
)

func TestRecord_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true, false)

	p.Record(42, 3, models.IDSRow{}, models.NormalizedRecord{
		Title:      "1994 FORD F-150",
		CurrentBid: "$150",
		MinBid:     "$100",
		Status:     models.StatusClosed,
	})

	line := buf.String()
	assert.Contains(t, line, "[0042] p3  1994 FORD F-150")
	assert.Contains(t, line, "Current $150")
	assert.Contains(t, line, "Min $100")
	assert.Contains(t, line, "CLOSED")
}

func TestRecord_FallsBackToIdentityURLWhenTitleMissing(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true, false)

	p.Record(1, 1, models.IDSRow{PicHref: "https://x/auction/1/item/9"}, models.NormalizedRecord{})

	assert.Contains(t, buf.String(), "https://x/auction/1/item/9")
}

func TestRecord_TruncatesLongTitles(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true, false)

	p.Record(1, 1, models.IDSRow{}, models.NormalizedRecord{
		Title: strings.Repeat("x", 300),
	})

	assert.Contains(t, buf.String(), "…")
	assert.Less(t, len([]rune(strings.TrimSpace(buf.String()))), 150)
}

func TestDisabledPrinterWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, false, true)

	p.Record(1, 1, models.IDSRow{}, models.NormalizedRecord{Title: "lot"})
	p.Banner("==> Start p1")
	p.Halt("==> done")

	assert.Zero(t, buf.Len())
}

func TestBannerAndHalt_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true, false)

	p.Banner("==> Loaded p2 (load-more)")
	p.Halt("==> Listing exhausted at p2")

	assert.Equal(t, "==> Loaded p2 (load-more)\n==> Listing exhausted at p2\n", buf.String())
}
