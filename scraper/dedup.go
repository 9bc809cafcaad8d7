package scraper

import "github.com/bidwatch/bidwatch/models"

// Dedup tracks the identity URLs seen during one traversal. It is
// scoped to a single scrape invocation and never persisted. The site
// re-renders cards as the document grows (bid counts tick up, layouts
// reflow), so the same identity URL shows up in extraction after
// extraction; the first-seen record wins and every later sighting is
// dropped.
//
// One traversal runs on one goroutine, so no locking.
type Dedup struct {
	seen map[string]struct{}
}

// NewDedup returns an empty seen-set.
func NewDedup() *Dedup {
	return &Dedup{seen: make(map[string]struct{})}
}

// FilterNew returns the records whose identity URL has not been seen
// before, marking them seen. The operation is monotonic: once a URL is
// in the set it is never emitted again for the lifetime of the Dedup.
func (d *Dedup) FilterNew(records []models.RawRecord) []models.RawRecord {
	fresh := records[:0:0]
	for _, r := range records {
		if _, ok := d.seen[r.IdentityURL]; ok {
			continue
		}
		d.seen[r.IdentityURL] = struct{}{}
		fresh = append(fresh, r)
	}
	return fresh
}

// Len reports how many distinct identity URLs have been seen.
func (d *Dedup) Len() int {
	return len(d.seen)
}
