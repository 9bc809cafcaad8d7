package scraper

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Strategy identifies which pagination mechanism produced an advance.
type Strategy string

const (
	StrategyNone     Strategy = ""
	StrategyLoadMore Strategy = "load-more"
	StrategyNextPage Strategy = "next"
	StrategyScroll   Strategy = "scroll"
)

// ControlMatcher describes one candidate pagination control: elements
// matching Selector, optionally filtered to those whose text contains
// Text (case-insensitive). Candidates are evaluated in order and the
// first clickable hit wins.
type ControlMatcher struct {
	Selector string
	Text     string
}

// Candidate controls, in priority order within each strategy. The lists
// are deliberately loose: the target site's markup is not contractually
// stable, so we match generously and fall through silently.
var (
	loadMoreCandidates = []ControlMatcher{
		{Selector: "button", Text: "load more"},
		{Selector: "a", Text: "load more"},
		{Selector: "button", Text: "show more"},
		{Selector: ".load-more, button.load-more, a.load-more"},
	}

	nextPageCandidates = []ControlMatcher{
		{Selector: "a[rel='next']"},
		{Selector: "button", Text: "next"},
		{Selector: "a", Text: "next"},
		{Selector: ".pagination .next a, .pagination-next a, a.pagination-next"},
	}
)

const (
	// stallRounds is how many consecutive no-growth scroll rounds end
	// the drain.
	stallRounds = 2

	// maxScrollIterations is the hard safety cap on scroll rounds
	// within one drain, guarding against pages that grow forever.
	maxScrollIterations = 200
)

const scrollToBottomJS = `() => window.scrollTo(0, document.body.scrollHeight)`

// Driver advances the document to the next logical page. It tries the
// three mutually-exclusive pagination mechanisms in fixed priority
// order and stops at the first that succeeds.
type Driver struct {
	// SettleDelay is the pause after clicking a load-more control.
	SettleDelay time.Duration

	// LoadWaitTimeout bounds the load-complete wait after clicking a
	// next-page link. Expiry degrades to "assume ready".
	LoadWaitTimeout time.Duration

	// ScrollPause is the pause between scroll rounds.
	ScrollPause time.Duration
}

// Advance tries to materialize the next page's content. It reports the
// strategy that made progress, or (StrategyNone, false) when nothing
// did — which is the natural end-of-data signal, not a failure.
func (d *Driver) Advance(ctx context.Context, p Page) (Strategy, bool) {
	// 1. Load-more control: click, settle, drain growth.
	if clickFirstVisible(p, loadMoreCandidates) {
		p.Sleep(ctx, d.SettleDelay)
		count, scrolls := drainScroll(ctx, p, d.ScrollPause)
		slog.Debug("advanced via load-more", "items", count, "scrolls", scrolls)
		return StrategyLoadMore, true
	}

	// 2. Next-page link: click, wait for load (timeout is non-fatal),
	// drain growth.
	if clickFirstVisible(p, nextPageCandidates) {
		if !p.WaitLoad(d.LoadWaitTimeout) {
			slog.Debug("load-complete wait timed out, assuming ready")
		}
		count, scrolls := drainScroll(ctx, p, d.ScrollPause)
		slog.Debug("advanced via next link", "items", count, "scrolls", scrolls)
		return StrategyNextPage, true
	}

	// 3. Passive scroll growth: no control found, but scrolling alone
	// may still mount more items (pure infinite-scroll pages).
	before := p.ItemCount()
	count, scrolls := drainScroll(ctx, p, d.ScrollPause)
	if count > before {
		slog.Debug("advanced via passive scroll", "items", count, "scrolls", scrolls)
		return StrategyScroll, true
	}

	return StrategyNone, false
}

// clickFirstVisible walks the candidate list and clicks the first
// matching, visible control. A candidate that matches nothing, matches
// only invisible elements, or fails to click counts as unavailable and
// falls through to the next candidate.
func clickFirstVisible(p Page, candidates []ControlMatcher) bool {
	for _, cand := range candidates {
		el, ok := firstMatch(p, cand)
		if !ok || !el.Visible() {
			continue
		}
		if err := el.Click(); err != nil {
			slog.Debug("control click failed, trying next candidate",
				"selector", cand.Selector, "error", err)
			continue
		}
		return true
	}
	return false
}

// firstMatch returns the first element matching the candidate's
// selector and, when set, its case-insensitive text filter.
func firstMatch(p Page, cand ControlMatcher) (Element, bool) {
	els := p.Query(cand.Selector)
	if cand.Text == "" {
		if len(els) == 0 {
			return nil, false
		}
		return els[0], true
	}
	needle := strings.ToLower(cand.Text)
	for _, el := range els {
		if strings.Contains(strings.ToLower(el.Text()), needle) {
			return el, true
		}
	}
	return nil, false
}

// drainScroll repeatedly scrolls the document to its maximum extent,
// pausing between rounds so lazy content can mount, until the item
// count stops growing for stallRounds consecutive rounds or the hard
// iteration cap is hit. Returns the final item count and the number of
// scroll rounds performed (diagnostics only).
func drainScroll(ctx context.Context, p Page, pause time.Duration) (count, scrolls int) {
	last := p.ItemCount()
	rounds := 0
	for rounds < stallRounds {
		if ctx.Err() != nil {
			break
		}
		if _, err := p.Eval(scrollToBottomJS); err != nil {
			break
		}
		p.Sleep(ctx, pause)
		scrolls++
		n := p.ItemCount()
		if n <= last {
			rounds++
		} else {
			rounds = 0
			last = n
		}
		if scrolls > maxScrollIterations {
			break
		}
	}
	return last, scrolls
}
