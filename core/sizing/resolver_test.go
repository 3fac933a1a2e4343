// Package sizing - Dimensional resolution tests
package sizing

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carport-quote/core/pricebook"
	"carport-quote/core/types"
	"carport-quote/internal/errors"
)

// TestResolveExactMatch proves a recorded size is charged as-is with no warnings
func TestResolveExactMatch(t *testing.T) {
	book := pricebook.Sample()

	res, err := Resolve(book, types.StyleRegular, types.RoofHorizontal, 12, 21)
	require.NoError(t, err)

	assert.True(t, res.BasePrice.Equal(decimal.NewFromInt(2595)))
	assert.Equal(t, 12, res.PricedWidthFt)
	assert.Equal(t, 21, res.PricedLengthFt)
	assert.Equal(t, 12, res.NormalizedWidthFt)
	assert.Equal(t, 21, res.NormalizedLengthFt)
	assert.True(t, strings.HasPrefix(res.Trace, types.TraceExactMatch))
	assert.Nil(t, res.Extrapolation)
	assert.Empty(t, res.Warnings)
}

// TestResolveNextSizeUp proves off-matrix sizes round up, never down
func TestResolveNextSizeUp(t *testing.T) {
	book := pricebook.Sample()

	// Length between columns: 12x22 -> 12x26.
	res, err := Resolve(book, types.StyleRegular, types.RoofHorizontal, 12, 22)
	require.NoError(t, err)
	assert.Equal(t, 12, res.PricedWidthFt)
	assert.Equal(t, 26, res.PricedLengthFt)
	assert.True(t, res.BasePrice.Equal(decimal.NewFromInt(2995)))
	assert.True(t, strings.HasPrefix(res.Trace, types.TraceNextSizeUp))
	assert.NotEmpty(t, res.Warnings)

	// Width between tiers: 13x22 -> the lexicographically smallest covering
	// cell is 18x26, not any 13- or 14-foot cell.
	res, err = Resolve(book, types.StyleRegular, types.RoofHorizontal, 13, 22)
	require.NoError(t, err)
	assert.Equal(t, 18, res.PricedWidthFt)
	assert.Equal(t, 26, res.PricedLengthFt)
	assert.Equal(t, 18, res.NormalizedWidthFt)
	assert.Equal(t, 26, res.NormalizedLengthFt)
}

// TestResolveLengthExtrapolation proves length overruns anchor at the width
// tier's longest column and project at that tier's own per-foot rate
func TestResolveLengthExtrapolation(t *testing.T) {
	book := pricebook.Sample()

	res, err := Resolve(book, types.StyleRegular, types.RoofHorizontal, 12, 55)
	require.NoError(t, err)

	// Anchored at 12x51 = 4995; the 12-wide tier steps $400 per 5 ft, so
	// four extra feet project to $320.
	assert.Equal(t, 12, res.PricedWidthFt)
	assert.Equal(t, 51, res.PricedLengthFt)
	assert.True(t, res.BasePrice.Equal(decimal.NewFromInt(4995)))
	assert.True(t, strings.HasPrefix(res.Trace, types.TraceTableMax))

	require.NotNil(t, res.Extrapolation)
	assert.True(t, res.Extrapolation.Delta.Equal(decimal.NewFromInt(320)),
		"delta = %s", res.Extrapolation.Delta)
	assert.True(t, res.Extrapolation.Delta.IsPositive())
	assert.True(t, strings.HasPrefix(res.Extrapolation.Note, types.TraceExtrapolated))

	// The quote is still considered to be for the requested size.
	assert.Equal(t, 12, res.NormalizedWidthFt)
	assert.Equal(t, 55, res.NormalizedLengthFt)
	assert.NotEmpty(t, res.Warnings)
}

// TestResolveWidthExtrapolation proves width overruns project from the last
// two width tiers at the anchored length
func TestResolveWidthExtrapolation(t *testing.T) {
	book := pricebook.Sample()

	res, err := Resolve(book, types.StyleRegular, types.RoofHorizontal, 26, 21)
	require.NoError(t, err)

	// Anchored at 24x21 = 4395; widths 22 -> 24 step $400 over 2 ft, so two
	// extra feet project to $400.
	assert.Equal(t, 24, res.PricedWidthFt)
	assert.Equal(t, 21, res.PricedLengthFt)
	require.NotNil(t, res.Extrapolation)
	assert.True(t, res.Extrapolation.Delta.Equal(decimal.NewFromInt(400)),
		"delta = %s", res.Extrapolation.Delta)
}

// TestResolveExtrapolationMonotonic proves a longer overrun never costs less
func TestResolveExtrapolationMonotonic(t *testing.T) {
	book := pricebook.Sample()

	prev := decimal.Zero
	for _, length := range []int{52, 55, 60, 70, 90} {
		res, err := Resolve(book, types.StyleRegular, types.RoofHorizontal, 12, length)
		require.NoError(t, err)
		require.NotNil(t, res.Extrapolation, "length %d", length)
		assert.True(t, res.Extrapolation.Delta.GreaterThanOrEqual(prev),
			"length %d: delta %s < previous %s", length, res.Extrapolation.Delta, prev)
		prev = res.Extrapolation.Delta
	}
}

// TestResolveOutOfDomain proves non-positive and unpriced domains reject
func TestResolveOutOfDomain(t *testing.T) {
	book := pricebook.Sample()

	_, err := Resolve(book, types.StyleRegular, types.RoofHorizontal, 0, 21)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeDimensionOutOfDomain))

	_, err = Resolve(book, types.StyleRegular, types.RoofHorizontal, 12, -5)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeDimensionOutOfDomain))

	// No matrix exists for this style at all.
	_, err = Resolve(book, types.Style("BARN"), types.RoofHorizontal, 12, 21)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeDimensionOutOfDomain))
}

// TestHorizontalEquivalentLength proves vertical lengths map one foot short
func TestHorizontalEquivalentLength(t *testing.T) {
	assert.Equal(t, 21, HorizontalEquivalentLength(types.RoofHorizontal, 21))
	assert.Equal(t, 20, HorizontalEquivalentLength(types.RoofVertical, 21))
	assert.Equal(t, 1, HorizontalEquivalentLength(types.RoofVertical, 1))
}

// TestResolveVerticalUsesItsOwnMatrix proves vertical buildings price from the
// vertical matrix and carry the horizontal-equivalent option length
func TestResolveVerticalUsesItsOwnMatrix(t *testing.T) {
	book := pricebook.Sample()

	res, err := Resolve(book, types.StyleAFrame, types.RoofVertical, 12, 25)
	require.NoError(t, err)
	assert.True(t, res.BasePrice.Equal(decimal.NewFromInt(3495)))
	assert.Equal(t, 24, res.OptionLengthFt)
}
