// Package options - Closed end and side pricing tests
package options

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carport-quote/core/pricebook"
	"carport-quote/core/types"
	"carport-quote/internal/errors"
)

func enclosureBook(t *testing.T) *pricebook.PriceBook {
	t.Helper()
	doc := &pricebook.Document{
		RevisionID: "R-ENCL",
		RegionCode: "NW",
		BaseMatrix: []pricebook.BaseRow{
			{Style: "REGULAR", Roof: "HORIZONTAL", WidthFt: 12, LengthFt: 21, Price: decimal.NewFromInt(2595)},
		},
		ClosedEnds: []pricebook.ClosedEndRow{
			{HeightFt: 6, WidthFt: 12, Price: decimal.NewFromInt(330)},
			{HeightFt: 6, WidthFt: 18, Price: decimal.NewFromInt(440)},
			{HeightFt: 8, WidthFt: 12, Price: decimal.NewFromInt(390)},
			{HeightFt: 8, WidthFt: 18, Price: decimal.NewFromInt(520)},
		},
		ClosedSides: []pricebook.ClosedSideRow{
			{WidthFt: 12, Price: decimal.NewFromInt(250)},
			{WidthFt: 18, Price: decimal.NewFromInt(325)},
		},
	}
	book, err := pricebook.New(doc)
	require.NoError(t, err)
	return book
}

// TestClosedEndsExactMatch proves an exact height/width cell prices per end
func TestClosedEndsExactMatch(t *testing.T) {
	book := enclosureBook(t)

	item, warnings, err := ClosedEnds(book, 6, 12, 2)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, types.CodeClosedEnd, item.Code)
	assert.Equal(t, "Closed end x2", item.Description)
	assert.Equal(t, 2, item.Quantity)
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(330)))
	assert.True(t, item.ExtendedPrice.Equal(decimal.NewFromInt(660)))
	assert.Empty(t, warnings)
}

// TestClosedEndsNextSizeUp proves off-table heights and widths round up with
// a warning naming the priced cell
func TestClosedEndsNextSizeUp(t *testing.T) {
	book := enclosureBook(t)

	item, warnings, err := ClosedEnds(book, 7, 14, 1)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(520)))
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "height 8 ft and width 18 ft")
}

// TestClosedEndsClampsPastTable proves oversize requests clamp to the largest
// row rather than failing
func TestClosedEndsClampsPastTable(t *testing.T) {
	book := enclosureBook(t)

	item, warnings, err := ClosedEnds(book, 14, 30, 1)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(520)))
	require.Len(t, warnings, 1)
}

// TestClosedEndsZeroCount proves an unrequested enclosure contributes nothing
func TestClosedEndsZeroCount(t *testing.T) {
	book := enclosureBook(t)

	item, warnings, err := ClosedEnds(book, 6, 12, 0)
	require.NoError(t, err)
	assert.Nil(t, item)
	assert.Empty(t, warnings)
}

// TestClosedEndsRejectsImpossibleCount proves a building has at most two ends
func TestClosedEndsRejectsImpossibleCount(t *testing.T) {
	book := enclosureBook(t)

	_, _, err := ClosedEnds(book, 6, 12, 3)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInvalidConfiguration))
}

// TestClosedEndsWithoutTable proves a count against a book with no
// closed-end table is a configuration error, not a $0 item
func TestClosedEndsWithoutTable(t *testing.T) {
	book := pricebook.Sample()

	_, _, err := ClosedEnds(book, 6, 12, 1)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInvalidConfiguration))
}

// TestClosedSidesExactMatch proves an exact width row prices per side
func TestClosedSidesExactMatch(t *testing.T) {
	book := enclosureBook(t)

	item, warnings, err := ClosedSides(book, 12, 2)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, types.CodeClosedSide, item.Code)
	assert.Equal(t, "Closed side x2", item.Description)
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(250)))
	assert.True(t, item.ExtendedPrice.Equal(decimal.NewFromInt(500)))
	assert.Empty(t, warnings)
}

// TestClosedSidesNextWidthUp proves an off-table width rounds up with a warning
func TestClosedSidesNextWidthUp(t *testing.T) {
	book := enclosureBook(t)

	item, warnings, err := ClosedSides(book, 14, 1)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(325)))
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "next width up: 18 ft")
}

// TestClosedSidesClampsPastTable proves oversize widths clamp to the largest row
func TestClosedSidesClampsPastTable(t *testing.T) {
	book := enclosureBook(t)

	item, warnings, err := ClosedSides(book, 30, 1)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(325)))
	require.Len(t, warnings, 1)
}

// TestClosedSidesWithoutTable proves a count needs a closed-side table
func TestClosedSidesWithoutTable(t *testing.T) {
	book := pricebook.Sample()

	_, _, err := ClosedSides(book, 12, 1)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInvalidConfiguration))
}
