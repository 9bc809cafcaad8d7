package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bidwatch/bidwatch/config"
	"github.com/bidwatch/bidwatch/models"
)

// ProgressFunc receives each emitted record in traversal order. index
// counts emitted records from 1; page is the logical page the record
// first appeared on.
type ProgressFunc func(index, page int, row models.IDSRow, rec models.NormalizedRecord)

// PageFunc is notified when a logical page has been materialized.
// strategy is StrategyNone for page 1 (no advance was needed).
type PageFunc func(page int, strategy Strategy)

// Traversal runs one end-to-end page-range scrape over a Page. Create
// one per invocation; its state (the seen-set, the page counter) is
// scoped to a single Run and discarded afterwards.
type Traversal struct {
	cfg     config.ScraperConfig
	driver  *Driver
	metrics *Metrics

	// OnPage, when set, is called after each logical page's content has
	// been materialized (including pages outside the output window).
	OnPage PageFunc
}

// NewTraversal wires a traversal with the configured timings. metrics
// may be nil.
func NewTraversal(cfg config.ScraperConfig, metrics *Metrics) *Traversal {
	return &Traversal{
		cfg: cfg,
		driver: &Driver{
			SettleDelay:     cfg.SettleDelay,
			LoadWaitTimeout: cfg.LoadWaitTimeout,
			ScrollPause:     cfg.ScrollPause,
		},
		metrics: metrics,
	}
}

// Run scrapes pages start..end and returns the collected batch. Pages
// before start are still traversed — their records feed the seen-set so
// a mid-range window stays stable — but are excluded from output.
// Running out of content before reaching end is graceful completion,
// not an error. ctx cancellation aborts the traversal.
func (t *Traversal) Run(ctx context.Context, p Page, start, end int, cb ProgressFunc) (*models.BatchResult, error) {
	if start < 1 || end < start {
		return nil, models.NewScrapeError(
			models.ErrCodeInvalidInput,
			fmt.Sprintf("invalid page range %d..%d: start must be >= 1 and end >= start", start, end),
			nil,
		)
	}

	if err := p.Navigate(t.cfg.SourceURL); err != nil {
		t.metrics.IncTraversal("error")
		return nil, models.NewScrapeError(
			models.ErrCodeNavigation,
			"navigation to source URL failed",
			err,
		)
	}

	// Best-effort wait for the first card; a page that renders slowly
	// (or is genuinely empty) proceeds optimistically.
	if !p.WaitPresent(ItemAnchorSelector, t.cfg.ItemWaitTimeout) {
		slog.Debug("no item card appeared before timeout, proceeding",
			"timeout", t.cfg.ItemWaitTimeout)
	}

	drainScroll(ctx, p, t.cfg.ScrollPause)

	result := &models.BatchResult{
		SourceURL: t.cfg.SourceURL,
		Start:     start,
		End:       end,
	}
	dedup := NewDedup()
	index := 1

	collect := func(pageNum int) error {
		raws, err := ExtractAll(p, t.cfg.SourceURL)
		if err != nil {
			return models.NewScrapeError(
				models.ErrCodeInternal,
				fmt.Sprintf("record extraction failed on page %d", pageNum),
				err,
			)
		}
		fresh := dedup.FilterNew(raws)
		t.metrics.IncPage()

		// Pages below the window feed the seen-set only.
		if pageNum < start {
			return nil
		}

		for _, raw := range fresh {
			row := models.NewIDSRow(raw)
			rec := Normalize(raw)
			result.IDS = append(result.IDS, row)
			result.Normalized = append(result.Normalized, rec)
			if cb != nil {
				emitProgress(cb, index, pageNum, row, rec)
			}
			index++
		}
		t.metrics.AddItems(len(fresh))
		return nil
	}

	currentPage := 1
	if t.OnPage != nil {
		t.OnPage(currentPage, StrategyNone)
	}
	if err := collect(currentPage); err != nil {
		t.metrics.IncTraversal("error")
		return nil, err
	}

	for currentPage < end {
		if err := ctx.Err(); err != nil {
			t.metrics.IncTraversal("error")
			return nil, models.NewScrapeError(models.ErrCodeTimeout, "traversal canceled", err)
		}

		advanceStart := time.Now()
		strategy, progressed := t.driver.Advance(ctx, p)
		t.metrics.ObserveAdvance(time.Since(advanceStart), strategy)

		if !progressed {
			// End of data: the site ran out of content before the
			// requested window closed. Graceful completion.
			slog.Info("no pagination strategy progressed, stopping",
				"page", currentPage, "requestedEnd", end)
			break
		}

		currentPage++
		if t.OnPage != nil {
			t.OnPage(currentPage, strategy)
		}
		if err := collect(currentPage); err != nil {
			t.metrics.IncTraversal("error")
			return nil, err
		}
	}

	result.ItemsCount = len(result.IDS)
	t.metrics.IncTraversal("ok")
	return result, nil
}

// emitProgress shields the traversal from a misbehaving callback: a
// panic in the consumer must not abort the scrape.
func emitProgress(cb ProgressFunc, index, page int, row models.IDSRow, rec models.NormalizedRecord) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("progress callback panicked", "panic", r)
		}
	}()
	cb(index, page, row, rec)
}
