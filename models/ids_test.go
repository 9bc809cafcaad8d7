package models

import "testing"

func fullRaw() RawRecord {
	return RawRecord{
		IdentityURL: "https://x/auction/1/item/1",
		ImageURL:    "https://x/img/1.jpg",
		Title:       "lot 1",
		LeftLabels:  []string{"l0", "l1", "l2", "l3", "l4", "l5", "l6"},
		RightValues: []string{"r0", "r1", "r2", "r3", "r4", "r5"},
		ExtraInfo:   "extra",
		RedInfo:     "red",
	}
}

func TestNewIDSRow_ColumnMapping(t *testing.T) {
	row := NewIDSRow(fullRaw())

	want := IDSRow{
		PicHref:       "https://x/auction/1/item/1",
		PicSrc:        "https://x/img/1.jpg",
		TruncTitle:    "lot 1",
		FloatLeft:     "l0",
		FloatRight:    "r0",
		FloatLeft2:    "l1",
		FloatRight2:   "r1",
		FloatRight3:   "r2",
		FloatLeft4:    "l3",
		ItemExtraInfo: "extra",
		FloatRight5:   "r4",
		RedSmall:      "red",
		FloatLeft5:    "l4",
		FloatLeft6:    "l5",
		FloatRight6:   "r5",
		FloatLeft7:    "l6",
	}
	if row != want {
		t.Errorf("column mapping mismatch:\n got %+v\nwant %+v", row, want)
	}
}

// The legacy format has holes: left index 2 and right index 3 were never
// exported and must not leak into any column.
func TestNewIDSRow_SkippedSlotsNeverAppear(t *testing.T) {
	fields := NewIDSRow(fullRaw()).Fields()

	for i, f := range fields {
		if f == "l2" || f == "r3" {
			t.Errorf("skipped slot value %q leaked into column %d (%s)", f, i, IDSHeaders[i])
		}
	}
}

func TestNewIDSRow_ShortColumnsYieldEmptyCells(t *testing.T) {
	row := NewIDSRow(RawRecord{
		IdentityURL: "https://x/auction/1/item/1",
		LeftLabels:  []string{"l0"},
		RightValues: []string{"r0"},
	})

	if row.FloatLeft != "l0" || row.FloatRight != "r0" {
		t.Errorf("first columns not mapped: %+v", row)
	}
	if row.FloatLeft2 != "" || row.FloatRight2 != "" || row.FloatLeft7 != "" {
		t.Errorf("out-of-range columns should be empty: %+v", row)
	}
}

func TestIDSRow_FieldsMatchesHeaderOrder(t *testing.T) {
	if len(IDSHeaders) != 16 {
		t.Fatalf("header must stay 16 columns, got %d", len(IDSHeaders))
	}
	fields := NewIDSRow(fullRaw()).Fields()
	if len(fields) != len(IDSHeaders) {
		t.Fatalf("Fields() returned %d values for %d headers", len(fields), len(IDSHeaders))
	}
	if fields[0] != "https://x/auction/1/item/1" {
		t.Errorf("column %q out of position", IDSHeaders[0])
	}
	if fields[9] != "extra" {
		t.Errorf("column %q out of position", IDSHeaders[9])
	}
	if fields[11] != "red" {
		t.Errorf("column %q out of position", IDSHeaders[11])
	}
}

func TestRawRecord_PositionalAccessorsAreBoundsSafe(t *testing.T) {
	r := RawRecord{LeftLabels: []string{"a"}, RightValues: nil}

	if got := r.Left(0); got != "a" {
		t.Errorf("Left(0) = %q", got)
	}
	if got := r.Left(5); got != "" {
		t.Errorf("Left(5) = %q, want empty", got)
	}
	if got := r.Right(0); got != "" {
		t.Errorf("Right(0) on nil slice = %q, want empty", got)
	}
}
