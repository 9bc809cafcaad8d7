// Package scraper implements the page-traversal and record-normalization
// engine: the pagination driver, the positional card extractor, the
// identity-URL deduplicator, the normalizer and the traversal
// orchestrator that composes them.
//
// The package never touches a browser directly. Everything it needs from
// the rendered document is expressed by the Page interface; the browser
// package provides the Rod-backed implementation and tests provide fakes.
package scraper

import (
	"context"
	"time"

	"github.com/ysmood/gson"
)

// ItemAnchorSelector matches the anchor of one item card: a link into an
// auction's item detail page that wraps a thumbnail image.
const ItemAnchorSelector = "a[href*='/auction/'][href*='/item/']:has(img)"

// Page is the rendering capability the traversal consumes. All methods
// operate on one live document; implementations are not required to be
// safe for concurrent use, and the traversal never calls them
// concurrently.
type Page interface {
	// Navigate loads the given URL. Failure here is fatal to the
	// traversal.
	Navigate(url string) error

	// WaitPresent blocks until at least one element matches the
	// selector, or the timeout expires. Returns whether an element
	// appeared. Expiry is not an error condition.
	WaitPresent(selector string, timeout time.Duration) bool

	// WaitLoad blocks until the document reports load-complete, or the
	// timeout expires. Returns whether the load signal arrived.
	WaitLoad(timeout time.Duration) bool

	// Query returns the elements currently matching the selector, in
	// document order. A selector matching nothing returns an empty
	// slice, never an error.
	Query(selector string) []Element

	// Eval runs a JavaScript function in the page and returns its
	// JSON-serializable result.
	Eval(js string) (gson.JSON, error)

	// Sleep pauses for d, returning early if ctx is done.
	Sleep(ctx context.Context, d time.Duration)

	// ItemCount reports how many item anchors are currently in the
	// document. This is the growth signal the scroll-stall loop and the
	// passive-scroll strategy watch.
	ItemCount() int
}

// Element is one queried element handle.
type Element interface {
	// Text returns the element's rendered text, or "" if it cannot be
	// read.
	Text() string

	// Visible reports whether the element is rendered and visible.
	Visible() bool

	// Click simulates a click on the element.
	Click() error
}
