package browser

import (
	"context"
	"log/slog"
	"time"

	"github.com/bidwatch/bidwatch/models"
	"github.com/bidwatch/bidwatch/scraper"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"
)

// Page is one isolated browser tab implementing scraper.Page. It is
// bound to the context it was created with; context expiry aborts any
// in-flight browser operation.
type Page struct {
	page       *rod.Page
	router     *rod.HijackRouter
	navTimeout time.Duration
}

// NewPage opens a fresh tab wired for scraping: stealth script
// installed, user agent and viewport set, and the configured resource
// types blocked — all before the first navigation, which is the only
// point these take effect from.
func (b *Browser) NewPage(ctx context.Context, navTimeout time.Duration) (*Page, error) {
	page, err := b.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, models.NewScrapeError(
			models.ErrCodeBrowserCrash,
			"failed to open page",
			err,
		)
	}
	page = page.Context(ctx)

	if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
		slog.Warn("stealth injection failed, proceeding without stealth",
			"error", evalErr,
		)
	}

	if b.cfg.UserAgent != "" {
		_ = (proto.NetworkSetUserAgentOverride{UserAgent: b.cfg.UserAgent}).Call(page)
	}
	_ = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1400,
		Height:            900,
		DeviceScaleFactor: 1,
	})

	router := setupHijack(page, b.cfg.BlockedResourceTypes)

	if navTimeout <= 0 {
		navTimeout = navTimeoutDefault
	}

	return &Page{page: page, router: router, navTimeout: navTimeout}, nil
}

// Close stops the resource interceptor and closes the tab.
func (p *Page) Close() {
	if p.router != nil {
		_ = p.router.Stop()
	}
	_ = p.page.Close()
}

// Navigate loads the URL, bounded by the page's navigation timeout.
func (p *Page) Navigate(url string) error {
	return p.page.Timeout(p.navTimeout).Navigate(url)
}

// WaitPresent blocks until the selector matches at least one element or
// the timeout expires.
func (p *Page) WaitPresent(selector string, timeout time.Duration) bool {
	return p.page.Timeout(timeout).WaitElementsMoreThan(selector, 0) == nil
}

// WaitLoad blocks until the document's load event or the timeout.
func (p *Page) WaitLoad(timeout time.Duration) bool {
	return p.page.Timeout(timeout).WaitLoad() == nil
}

// Query returns the elements currently matching the selector. Matching
// nothing — or a query failure on a page mid-navigation — yields an
// empty result, never an error.
func (p *Page) Query(selector string) []scraper.Element {
	els, err := p.page.Elements(selector)
	if err != nil {
		return nil
	}
	out := make([]scraper.Element, len(els))
	for i, el := range els {
		out[i] = element{el: el}
	}
	return out
}

// Eval runs a JS function in the page.
func (p *Page) Eval(js string) (gson.JSON, error) {
	res, err := p.page.Eval(js)
	if err != nil {
		return gson.New(nil), err
	}
	return res.Value, nil
}

// Sleep pauses for d, returning early when ctx is done.
func (p *Page) Sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// ItemCount reports how many item anchors are currently mounted.
func (p *Page) ItemCount() int {
	els, err := p.page.Elements(scraper.ItemAnchorSelector)
	if err != nil {
		return 0
	}
	return len(els)
}

// element adapts a rod element handle to scraper.Element.
type element struct {
	el *rod.Element
}

func (e element) Text() string {
	t, err := e.el.Text()
	if err != nil {
		return ""
	}
	return t
}

func (e element) Visible() bool {
	v, err := e.el.Visible()
	return err == nil && v
}

func (e element) Click() error {
	return e.el.Click(proto.InputMouseButtonLeft, 1)
}
