// Package rules - Configuration rule tests
package rules

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carport-quote/core/pricebook"
	"carport-quote/core/types"
	"carport-quote/internal/errors"
)

func input(style types.Style, roof types.RoofOrientation, w, l, h int) *types.QuoteInput {
	return &types.QuoteInput{Style: style, Roof: roof, WidthFt: w, LengthFt: l, HeightFt: h}
}

// TestVerticalRoofRequiresAFrame proves the roof compatibility rejection is a
// hard error, not a warning
func TestVerticalRoofRequiresAFrame(t *testing.T) {
	book := pricebook.Sample()

	_, err := Validate(input(types.StyleRegular, types.RoofVertical, 12, 21, 6), book)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInvalidConfiguration))

	res, err := Validate(input(types.StyleAFrame, types.RoofVertical, 12, 25, 6), book)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
}

// TestLiftWarningAtThreshold proves tall buildings warn but still validate
func TestLiftWarningAtThreshold(t *testing.T) {
	book := pricebook.Sample()

	res, err := Validate(input(types.StyleRegular, types.RoofHorizontal, 12, 21, 12), book)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	for _, h := range []int{13, 14, 20} {
		res, err = Validate(input(types.StyleRegular, types.RoofHorizontal, 12, 21, h), book)
		require.NoError(t, err)
		require.Len(t, res.Warnings, 1, "height %d", h)
		assert.Contains(t, res.Warnings[0], "lift")
	}
}

// TestAttachmentCount proves one attachment per started span past the threshold
func TestAttachmentCount(t *testing.T) {
	book := pricebook.Sample()

	cases := []struct {
		lengthFt int
		count    int
	}{
		{51, 0},  // at the threshold, none
		{52, 1},  // 1 ft over, first span started
		{60, 1},  // 9 ft over
		{72, 1},  // exactly one full span over
		{73, 2},  // second span started
		{94, 3},  // 43 ft over -> three spans
		{115, 4}, // 64 ft over -> four spans
	}

	for _, tc := range cases {
		res, err := Validate(input(types.StyleRegular, types.RoofHorizontal, 12, tc.lengthFt, 6), book)
		require.NoError(t, err, "length %d", tc.lengthFt)

		if tc.count == 0 {
			assert.Empty(t, res.Items, "length %d", tc.lengthFt)
			continue
		}

		require.Len(t, res.Items, 1, "length %d", tc.lengthFt)
		item := res.Items[0]
		assert.Equal(t, types.CodeAttachment, item.Code)
		assert.Equal(t, tc.count, item.Quantity, "length %d", tc.lengthFt)
		assert.True(t, item.UnitPrice.Equal(book.AttachmentFee()))
		expected := book.AttachmentFee().Mul(decimal.NewFromInt(int64(tc.count)))
		assert.True(t, item.ExtendedPrice.Equal(expected))
	}
}

// TestAttachmentUsesBookSpan proves the span comes from the book, not a constant
func TestAttachmentUsesBookSpan(t *testing.T) {
	doc := &pricebook.Document{
		RevisionID:      "R-SPAN",
		RegionCode:      "NW",
		MaxSingleSpanFt: 10,
		AttachmentFee:   decimal.NewFromInt(300),
		BaseMatrix: []pricebook.BaseRow{
			{Style: "REGULAR", Roof: "HORIZONTAL", WidthFt: 12, LengthFt: 21, Price: decimal.NewFromInt(2595)},
		},
	}
	book, err := pricebook.New(doc)
	require.NoError(t, err)

	// 60 ft is 9 ft over; with a 10 ft span that is still one attachment,
	// but 62 ft crosses into a second.
	res, err := Validate(input(types.StyleRegular, types.RoofHorizontal, 12, 60, 6), book)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 1, res.Items[0].Quantity)

	res, err = Validate(input(types.StyleRegular, types.RoofHorizontal, 12, 62, 6), book)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 2, res.Items[0].Quantity)
}

// TestAttachmentZeroFeeWarns proves a book without an attachment fee still
// itemizes required attachments but flags the $0 pricing
func TestAttachmentZeroFeeWarns(t *testing.T) {
	doc := &pricebook.Document{
		RevisionID: "R-NOFEE",
		RegionCode: "NW",
		BaseMatrix: []pricebook.BaseRow{
			{Style: "REGULAR", Roof: "HORIZONTAL", WidthFt: 12, LengthFt: 21, Price: decimal.NewFromInt(2595)},
		},
	}
	book, err := pricebook.New(doc)
	require.NoError(t, err)

	res, err := Validate(input(types.StyleRegular, types.RoofHorizontal, 12, 60, 6), book)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.True(t, res.Items[0].UnitPrice.IsZero())
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "no attachment fee")
	assert.Contains(t, res.Warnings[0], "R-NOFEE")

	// Under the threshold there is nothing to warn about.
	res, err = Validate(input(types.StyleRegular, types.RoofHorizontal, 12, 41, 6), book)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
}
