// Package options - Closed end and side pricing
// Fully enclosed ends price per end from a height-by-width table; fully
// enclosed sides price per side from a width table. Both use next-size-up
// lookup; running past the table clamps to the largest row with a warning.
package options

import (
	"fmt"

	"github.com/shopspring/decimal"

	"carport-quote/core/pricebook"
	"carport-quote/core/types"
	"carport-quote/internal/errors"
)

// ClosedEnds prices fully enclosed ends. Returns a nil item when count is
// zero. The book must carry a closed-end table when count is positive.
func ClosedEnds(book *pricebook.PriceBook, heightFt, widthFt, count int) (*types.LineItem, []string, error) {
	if count <= 0 {
		return nil, nil, nil
	}
	if count > 2 {
		return nil, nil, errors.InvalidConfiguration("a building has at most two ends to enclose").
			WithContext("closed_end_count", count)
	}

	heights := book.ClosedEndHeights()
	if len(heights) == 0 {
		return nil, nil, errors.InvalidConfiguration("closed ends have no price in this book").
			WithContext("revision", book.Revision())
	}

	pricedHeight := nextSizeUp(heightFt, heights)
	entries := book.ClosedEndEntries(pricedHeight)

	widths := make([]int, 0, len(entries))
	byWidth := make(map[int]decimal.Decimal, len(entries))
	for _, e := range entries {
		widths = append(widths, e.WidthFt)
		byWidth[e.WidthFt] = e.Price
	}
	pricedWidth := nextSizeUp(widthFt, widths)

	var warnings []string
	trace := fmt.Sprintf("%s: height %d ft, width %d ft", types.TraceExactMatch, pricedHeight, pricedWidth)
	if pricedHeight != heightFt || pricedWidth != widthFt {
		trace = fmt.Sprintf("%s: %dx%d priced at height %d ft, width %d ft",
			types.TraceNextSizeUp, heightFt, widthFt, pricedHeight, pricedWidth)
		warnings = append(warnings,
			fmt.Sprintf("Per manufacturer rules, closed end was priced at height %d ft and width %d ft.", pricedHeight, pricedWidth))
	}

	item := &types.LineItem{
		Code:        types.CodeClosedEnd,
		Description: fmt.Sprintf("Closed end x%d", count),
		Quantity:    count,
		UnitPrice:   byWidth[pricedWidth],
		Wall:        types.WallNone,
		TraceNote:   trace,
	}
	item.Extend()
	return item, warnings, nil
}

// ClosedSides prices fully enclosed sides. Returns a nil item when count is
// zero. The book must carry a closed-side table when count is positive.
func ClosedSides(book *pricebook.PriceBook, widthFt, count int) (*types.LineItem, []string, error) {
	if count <= 0 {
		return nil, nil, nil
	}
	if count > 2 {
		return nil, nil, errors.InvalidConfiguration("a building has at most two sides to enclose").
			WithContext("closed_side_count", count)
	}

	entries := book.ClosedSideEntries()
	if len(entries) == 0 {
		return nil, nil, errors.InvalidConfiguration("closed sides have no price in this book").
			WithContext("revision", book.Revision())
	}

	widths := make([]int, 0, len(entries))
	byWidth := make(map[int]decimal.Decimal, len(entries))
	for _, e := range entries {
		widths = append(widths, e.WidthFt)
		byWidth[e.WidthFt] = e.Price
	}
	pricedWidth := nextSizeUp(widthFt, widths)

	var warnings []string
	trace := fmt.Sprintf("%s: width %d ft", types.TraceExactMatch, pricedWidth)
	if pricedWidth != widthFt {
		trace = fmt.Sprintf("%s: width %d priced at %d", types.TraceNextSizeUp, widthFt, pricedWidth)
		warnings = append(warnings,
			fmt.Sprintf("Per manufacturer rules, closed side was priced at the next width up: %d ft.", pricedWidth))
	}

	item := &types.LineItem{
		Code:        types.CodeClosedSide,
		Description: fmt.Sprintf("Closed side x%d", count),
		Quantity:    count,
		UnitPrice:   byWidth[pricedWidth],
		Wall:        types.WallNone,
		TraceNote:   trace,
	}
	item.Extend()
	return item, warnings, nil
}

// nextSizeUp returns the first value in the ascending list at or above want,
// clamping to the largest when nothing reaches it.
func nextSizeUp(want int, ascending []int) int {
	for _, v := range ascending {
		if v >= want {
			return v
		}
	}
	return ascending[len(ascending)-1]
}
