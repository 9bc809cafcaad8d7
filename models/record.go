// Package models defines the record schemas shared by the scraper,
// the export writers and the API layer.
package models

// Status classifies an item's lifecycle as advertised on its card.
// The zero value means the card carried no status marker.
type Status string

const (
	StatusUnset     Status = ""
	StatusClosed    Status = "CLOSED"
	StatusWithdrawn Status = "WITHDRAWN"
)

// RawRecord is one item card exactly as it currently renders, before any
// normalization. Left labels and right values are positional columns:
// they pair up by index only, and the site's markup is trusted to keep
// both columns in lockstep. Empty strings stand for absent text.
type RawRecord struct {
	// IdentityURL is the absolute, fragment-stripped item detail URL.
	// It is the primary key: two RawRecords with the same IdentityURL
	// are the same item regardless of any other field.
	IdentityURL string

	ImageURL string
	Title    string

	LeftLabels  []string
	RightValues []string

	// ExtraInfo and RedInfo are the single-instance annotation blocks
	// some card layouts carry (RedInfo is the visually-highlighted one).
	ExtraInfo string
	RedInfo   string

	// CardText is the full flattened text of the card's container,
	// used for pattern scanning during normalization.
	CardText string
}

// Left returns the left-column label at index i, or "" past the end.
func (r RawRecord) Left(i int) string {
	if i < len(r.LeftLabels) {
		return r.LeftLabels[i]
	}
	return ""
}

// Right returns the right-column value at index i, or "" past the end.
func (r RawRecord) Right(i int) string {
	if i < len(r.RightValues) {
		return r.RightValues[i]
	}
	return ""
}

// NormalizedRecord is the canonical output schema derived from a single
// RawRecord. All fields except ItemURL may be empty.
type NormalizedRecord struct {
	ItemURL       string `json:"item_url"`
	ImageURL      string `json:"image_url"`
	Title         string `json:"title"`
	CurrentBid    string `json:"current_bid"`
	MinBid        string `json:"min_bid"`
	BidIncrement  string `json:"bid_increment"`
	HighBidder    string `json:"high_bidder"`
	BidCount      string `json:"bids"`
	TimeRemaining string `json:"time_remaining"`
	ItemLocation  string `json:"item_location"`
	Status        Status `json:"status"`
	ExtraInfo     string `json:"extra_info"`
}

// BatchResult is the aggregate returned by one traversal and by the
// HTTP scrape endpoint.
type BatchResult struct {
	SourceURL  string             `json:"source_url"`
	Start      int                `json:"start"`
	End        int                `json:"end"`
	ItemsCount int                `json:"items_count"`
	IDS        []IDSRow           `json:"ids"`
	Normalized []NormalizedRecord `json:"normalized"`
}
