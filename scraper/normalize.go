package scraper

import (
	"regexp"
	"strings"

	"github.com/bidwatch/bidwatch/models"
)

var (
	// bidsRE captures the count from "(bids: 12)" anywhere in a card's
	// flattened text.
	bidsRE = regexp.MustCompile(`(?i)\(bids:\s*([0-9]+)\)`)

	// dollarRE matches currency amounts like "$1,500" or "$ 25.00".
	dollarRE = regexp.MustCompile(`\$\s?[\d,]+(?:\.\d{2})?`)
)

// Normalize maps one raw positional record onto the canonical schema.
// It is a pure function of its input: no cross-record state, same
// output for the same RawRecord every time.
func Normalize(raw models.RawRecord) models.NormalizedRecord {
	n := models.NormalizedRecord{
		ItemURL:  raw.IdentityURL,
		ImageURL: raw.ImageURL,
		Title:    raw.Title,
	}
	n.ExtraInfo = raw.ExtraInfo
	if n.ExtraInfo == "" {
		n.ExtraInfo = raw.RedInfo
	}

	// Zip labels with values by index and route each pair to a field by
	// case-insensitive substring match on the label. Only the first
	// pair matching a category sets the field; repeats are ignored.
	// This is a deliberate, lossy simplification for cards that repeat
	// labels.
	var haveCurrent, haveMin, haveBidder, haveTime, haveLocation bool
	for i, lbl := range raw.LeftLabels {
		if lbl == "" {
			continue
		}
		label := strings.ToLower(strings.TrimRight(strings.TrimSpace(lbl), ":"))
		value := normSpace(raw.Right(i))
		switch {
		case strings.Contains(label, "current bid"):
			if !haveCurrent {
				n.CurrentBid, haveCurrent = value, true
			}
		case strings.Contains(label, "min bid"):
			if !haveMin {
				n.MinBid, haveMin = value, true
			}
		case strings.Contains(label, "high bidder"):
			if !haveBidder {
				n.HighBidder, haveBidder = value, true
			}
		case strings.Contains(label, "time remaining"):
			if !haveTime {
				n.TimeRemaining, haveTime = value, true
			}
		case strings.Contains(label, "item location"):
			if !haveLocation {
				n.ItemLocation, haveLocation = value, true
			}
		}
	}

	if m := bidsRE.FindStringSubmatch(raw.CardText); m != nil {
		n.BidCount = m[1]
	}

	// Status markers and stray dollar figures hide anywhere in the
	// card, so scan one uppercased concatenation of everything textual.
	textAll := strings.ToUpper(strings.Join([]string{
		n.ExtraInfo, raw.RedInfo, raw.CardText, raw.Title,
	}, " "))

	if strings.Contains(textAll, "WITHDRAWN") {
		n.Status = models.StatusWithdrawn
	} else if strings.Contains(textAll, "CLOSED") {
		n.Status = models.StatusClosed
	}

	// Bid-increment inference: the site does not label the increment in
	// every layout, so the first dollar figure not already claimed by
	// current or min bid is assumed to be it.
	if dollars := dollarRE.FindAllString(textAll, -1); len(dollars) > 0 {
		seen := make(map[string]struct{}, len(dollars))
		for _, d := range dollars {
			if _, dup := seen[d]; dup {
				continue
			}
			seen[d] = struct{}{}
			if d == n.CurrentBid || d == n.MinBid {
				continue
			}
			n.BidIncrement = d
			break
		}
	}

	// On some pages the location field doubles as a status annotation;
	// when it says WITHDRAWN, it wins over whatever the general scan
	// concluded.
	if n.ItemLocation != "" && strings.Contains(strings.ToUpper(n.ItemLocation), "WITHDRAWN") {
		n.Status = models.StatusWithdrawn
	}

	n.ItemURL = normSpace(n.ItemURL)
	n.ImageURL = normSpace(n.ImageURL)
	n.Title = normSpace(n.Title)
	n.CurrentBid = normSpace(n.CurrentBid)
	n.MinBid = normSpace(n.MinBid)
	n.BidIncrement = normSpace(n.BidIncrement)
	n.HighBidder = normSpace(n.HighBidder)
	n.BidCount = normSpace(n.BidCount)
	n.TimeRemaining = normSpace(n.TimeRemaining)
	n.ItemLocation = normSpace(n.ItemLocation)
	n.ExtraInfo = normSpace(n.ExtraInfo)

	return n
}

// normSpace collapses every whitespace run (including newlines) to a
// single space and trims the ends.
func normSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
