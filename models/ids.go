package models

// IDSHeaders lists the 16 column names of the legacy IDS export, in
// emission order. The strings and their order are a compatibility
// contract with a downstream consumer and must not change.
var IDSHeaders = [16]string{
	"pic href", "pic src", "trunc-title",
	"float-left", "float-right",
	"float-left 2", "float-right 2", "float-right 3", "float-left 4",
	"item_extra_info", "float-right 5", "red_small",
	"float-left 5", "float-left 6", "float-right 6", "float-left 7",
}

// IDSRow is the legacy 16-column positional projection of a RawRecord.
type IDSRow struct {
	PicHref       string `json:"pic href"`
	PicSrc        string `json:"pic src"`
	TruncTitle    string `json:"trunc-title"`
	FloatLeft     string `json:"float-left"`
	FloatRight    string `json:"float-right"`
	FloatLeft2    string `json:"float-left 2"`
	FloatRight2   string `json:"float-right 2"`
	FloatRight3   string `json:"float-right 3"`
	FloatLeft4    string `json:"float-left 4"`
	ItemExtraInfo string `json:"item_extra_info"`
	FloatRight5   string `json:"float-right 5"`
	RedSmall      string `json:"red_small"`
	FloatLeft5    string `json:"float-left 5"`
	FloatLeft6    string `json:"float-left 6"`
	FloatRight6   string `json:"float-right 6"`
	FloatLeft7    string `json:"float-left 7"`
}

// NewIDSRow projects a RawRecord onto the legacy columns. The mapping
// skips left index 2 and right index 3: those slots never appeared in
// the original export, and the gap is part of the format.
func NewIDSRow(r RawRecord) IDSRow {
	return IDSRow{
		PicHref:       r.IdentityURL,
		PicSrc:        r.ImageURL,
		TruncTitle:    r.Title,
		FloatLeft:     r.Left(0),
		FloatRight:    r.Right(0),
		FloatLeft2:    r.Left(1),
		FloatRight2:   r.Right(1),
		FloatRight3:   r.Right(2),
		FloatLeft4:    r.Left(3),
		ItemExtraInfo: r.ExtraInfo,
		FloatRight5:   r.Right(4),
		RedSmall:      r.RedInfo,
		FloatLeft5:    r.Left(4),
		FloatLeft6:    r.Left(5),
		FloatRight6:   r.Right(5),
		FloatLeft7:    r.Left(6),
	}
}

// Fields returns the row's values in IDSHeaders order.
func (row IDSRow) Fields() [16]string {
	return [16]string{
		row.PicHref, row.PicSrc, row.TruncTitle,
		row.FloatLeft, row.FloatRight,
		row.FloatLeft2, row.FloatRight2, row.FloatRight3, row.FloatLeft4,
		row.ItemExtraInfo, row.FloatRight5, row.RedSmall,
		row.FloatLeft5, row.FloatLeft6, row.FloatRight6, row.FloatLeft7,
	}
}
