// Package pricebook - Structural validation tests
// Malformed documents must be rejected whole; a book that constructs is
// trustworthy for the lifetime of every quote priced against it.
package pricebook

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carport-quote/core/types"
	"carport-quote/internal/errors"
)

func minimalDocument() *Document {
	return &Document{
		RevisionID:    "R1-TEST",
		RegionCode:    "NW",
		EffectiveDate: "2024-01-01",
		AttachmentFee: decimal.NewFromInt(495),
		BaseMatrix: []BaseRow{
			{Style: "REGULAR", Roof: "HORIZONTAL", WidthFt: 12, LengthFt: 21, Price: decimal.NewFromInt(2595)},
			{Style: "REGULAR", Roof: "HORIZONTAL", WidthFt: 12, LengthFt: 26, Price: decimal.NewFromInt(2995)},
		},
	}
}

// TestNewRejectsMissingIdentity proves a book without revision or region never constructs
func TestNewRejectsMissingIdentity(t *testing.T) {
	doc := minimalDocument()
	doc.RevisionID = "  "
	_, err := New(doc)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeMalformedPriceBook))

	doc = minimalDocument()
	doc.RegionCode = ""
	_, err = New(doc)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeMalformedPriceBook))
}

// TestNewRejectsDuplicateBaseCell proves conflicting cells reject the whole document
func TestNewRejectsDuplicateBaseCell(t *testing.T) {
	doc := minimalDocument()
	doc.BaseMatrix = append(doc.BaseMatrix, BaseRow{
		Style: "regular", Roof: "horizontal", WidthFt: 12, LengthFt: 21,
		Price: decimal.NewFromInt(9999),
	})

	_, err := New(doc)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeMalformedPriceBook))
	assert.Contains(t, err.Error(), "duplicate base matrix entry")
}

// TestNewRejectsUnknownRoof proves orientations are a closed set
func TestNewRejectsUnknownRoof(t *testing.T) {
	doc := minimalDocument()
	doc.BaseMatrix[0].Roof = "DIAGONAL"

	_, err := New(doc)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeMalformedPriceBook))
}

// TestNewRejectsBadEffectiveDate proves dates must parse as YYYY-MM-DD
func TestNewRejectsBadEffectiveDate(t *testing.T) {
	doc := minimalDocument()
	doc.EffectiveDate = "03/01/2024"

	_, err := New(doc)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeMalformedPriceBook))
}

// TestNewRejectsDeclaredOptionWithoutRows proves every declared option needs a price
func TestNewRejectsDeclaredOptionWithoutRows(t *testing.T) {
	doc := minimalDocument()
	doc.DeclaredOptions = []string{"GROUND_CERTIFICATION"}

	_, err := New(doc)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeMalformedPriceBook))
	assert.Contains(t, err.Error(), "has no price in region")
}

// TestNewRejectsDuplicateOptionRow proves option rows are unique per (code, wall, length)
func TestNewRejectsDuplicateOptionRow(t *testing.T) {
	doc := minimalDocument()
	doc.Options = []OptionRow{
		{Code: "WINDOW_24X36", Price: decimal.NewFromInt(175), Flat: true},
		{Code: " window_24x36 ", Price: decimal.NewFromInt(200), Flat: true},
	}

	_, err := New(doc)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeMalformedPriceBook))
}

// TestNewRejectsOptionWithoutShape proves a row must be flat or length-indexed
func TestNewRejectsOptionWithoutShape(t *testing.T) {
	doc := minimalDocument()
	doc.Options = []OptionRow{{Code: "WINDOW_24X36", Price: decimal.NewFromInt(175)}}

	_, err := New(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither flat nor length-indexed")
}

// TestNewRejectsDuplicateClosedWallRows proves conflicting enclosure rows
// reject the whole document
func TestNewRejectsDuplicateClosedWallRows(t *testing.T) {
	doc := minimalDocument()
	doc.ClosedEnds = []ClosedEndRow{
		{HeightFt: 6, WidthFt: 12, Price: decimal.NewFromInt(330)},
		{HeightFt: 6, WidthFt: 12, Price: decimal.NewFromInt(340)},
	}
	_, err := New(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate closed end")

	doc = minimalDocument()
	doc.ClosedSides = []ClosedSideRow{
		{WidthFt: 12, Price: decimal.NewFromInt(250)},
		{WidthFt: 12, Price: decimal.NewFromInt(260)},
	}
	_, err = New(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate closed side")
}

// TestNewRejectsNegativeClosedWallPrices proves enclosure prices are non-negative
func TestNewRejectsNegativeClosedWallPrices(t *testing.T) {
	doc := minimalDocument()
	doc.ClosedEnds = []ClosedEndRow{{HeightFt: 6, WidthFt: 12, Price: decimal.NewFromInt(-1)}}
	_, err := New(doc)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeMalformedPriceBook))

	doc = minimalDocument()
	doc.ClosedSides = []ClosedSideRow{{WidthFt: 12, Price: decimal.NewFromInt(-1)}}
	_, err = New(doc)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeMalformedPriceBook))
}

// TestClosedWallEntriesOrdered proves enclosure tables iterate ascending
func TestClosedWallEntriesOrdered(t *testing.T) {
	doc := minimalDocument()
	doc.ClosedEnds = []ClosedEndRow{
		{HeightFt: 8, WidthFt: 18, Price: decimal.NewFromInt(520)},
		{HeightFt: 6, WidthFt: 18, Price: decimal.NewFromInt(440)},
		{HeightFt: 6, WidthFt: 12, Price: decimal.NewFromInt(330)},
	}
	doc.ClosedSides = []ClosedSideRow{
		{WidthFt: 18, Price: decimal.NewFromInt(325)},
		{WidthFt: 12, Price: decimal.NewFromInt(250)},
	}
	book, err := New(doc)
	require.NoError(t, err)

	assert.Equal(t, []int{6, 8}, book.ClosedEndHeights())
	entries := book.ClosedEndEntries(6)
	require.Len(t, entries, 2)
	assert.Equal(t, 12, entries[0].WidthFt)
	assert.Equal(t, 18, entries[1].WidthFt)

	sides := book.ClosedSideEntries()
	require.Len(t, sides, 2)
	assert.Equal(t, 12, sides[0].WidthFt)
	assert.Equal(t, 18, sides[1].WidthFt)
}

// TestNewAppliesDefaultSpan proves the documented span applies when undeclared
func TestNewAppliesDefaultSpan(t *testing.T) {
	book, err := New(minimalDocument())
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxSingleSpanFt, book.MaxSingleSpanFt())

	doc := minimalDocument()
	doc.MaxSingleSpanFt = 24
	book, err = New(doc)
	require.NoError(t, err)
	assert.Equal(t, 24, book.MaxSingleSpanFt())
}

// TestBaseEntriesOrdered proves matrices iterate by (width, length) ascending
func TestBaseEntriesOrdered(t *testing.T) {
	book := Sample()

	entries := book.BaseEntries(types.StyleRegular, types.RoofHorizontal)
	require.NotEmpty(t, entries)
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		ordered := prev.WidthFt < cur.WidthFt ||
			(prev.WidthFt == cur.WidthFt && prev.LengthFt < cur.LengthFt)
		assert.True(t, ordered, "entries out of order at %d: %dx%d then %dx%d",
			i, prev.WidthFt, prev.LengthFt, cur.WidthFt, cur.LengthFt)
	}
}

// TestSampleBookLookups spot-checks the built-in revision
func TestSampleBookLookups(t *testing.T) {
	book := Sample()

	assert.Equal(t, "R29-NW", book.Revision())
	assert.Equal(t, "NW", book.Region())

	price, ok := book.BasePrice(types.StyleRegular, types.RoofHorizontal, 12, 21)
	require.True(t, ok)
	assert.True(t, price.Equal(decimal.NewFromInt(2595)))

	_, ok = book.BasePrice(types.StyleRegular, types.RoofHorizontal, 13, 21)
	assert.False(t, ok)

	// VERTICAL is only priced for A-FRAME in this revision.
	assert.Empty(t, book.BaseEntries(types.StyleRegular, types.RoofVertical))
	assert.NotEmpty(t, book.BaseEntries(types.StyleAFrame, types.RoofVertical))

	assert.True(t, book.HasOption("ground_certification"))
	assert.False(t, book.HasOption("SOLAR_PANEL"))

	heights := book.LegHeights()
	require.NotEmpty(t, heights)
	assert.Equal(t, 6, heights[0])
	assert.Equal(t, 13, heights[len(heights)-1])
}

// TestNormalizeCode proves codes are case and whitespace insensitive
func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "GROUND_CERTIFICATION", NormalizeCode("  ground_certification "))
	assert.Equal(t, "", NormalizeCode("   "))
}
