package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const extractBase = "https://www.example.com/allitems"

func TestExtractAll_ResolvesAndStripsFragments(t *testing.T) {
	p := newFakePage(map[string]any{
		"href":      "/auction/12/item/34#photos",
		"imgSrc":    "/thumbs/34.jpg",
		"title":     "lot 34",
		"lefts":     []string{"Current Bid:"},
		"rights":    []string{"$50"},
		"extraInfo": "",
		"redInfo":   "",
		"cardText":  "lot 34",
	})

	records, err := ExtractAll(p, extractBase)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "https://www.example.com/auction/12/item/34", records[0].IdentityURL)
	assert.Equal(t, "https://www.example.com/thumbs/34.jpg", records[0].ImageURL)
	assert.Equal(t, "lot 34", records[0].Title)
	assert.Equal(t, []string{"Current Bid:"}, records[0].LeftLabels)
	assert.Equal(t, []string{"$50"}, records[0].RightValues)
}

func TestExtractAll_SkipsCardsWithoutHref(t *testing.T) {
	p := newFakePage(
		card("", "ghost"),
		card("/auction/1/item/2", "real"),
	)

	records, err := ExtractAll(p, extractBase)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "https://www.example.com/auction/1/item/2", records[0].IdentityURL)
}

func TestExtractAll_AbsoluteHrefsPassThrough(t *testing.T) {
	p := newFakePage(card("https://cdn.example.org/auction/9/item/9#x", "lot 9"))

	records, err := ExtractAll(p, extractBase)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "https://cdn.example.org/auction/9/item/9", records[0].IdentityURL)
}

func TestExtractAll_PreservesDocumentOrder(t *testing.T) {
	p := newFakePage(
		card("/auction/1/item/3", "c"),
		card("/auction/1/item/1", "a"),
		card("/auction/1/item/2", "b"),
	)

	records, err := ExtractAll(p, extractBase)

	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "c", records[0].Title)
	assert.Equal(t, "a", records[1].Title)
	assert.Equal(t, "b", records[2].Title)
}

func TestExtractAll_EvalErrorPropagates(t *testing.T) {
	p := newFakePage()
	p.evalErr = assert.AnError

	_, err := ExtractAll(p, extractBase)

	assert.Error(t, err)
}

func TestExtractAll_BadBaseURL(t *testing.T) {
	p := newFakePage()

	_, err := ExtractAll(p, "://not-a-url")

	assert.Error(t, err)
}
