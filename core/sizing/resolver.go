// Package sizing - Dimensional resolution against a base-price matrix
// Implements the manufacturer's sizing rules: exact match, round up to the
// next standard size (never down), and beyond-range extrapolation as an
// explicit, separately labeled amount.
package sizing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"carport-quote/core/pricebook"
	"carport-quote/core/types"
	"carport-quote/internal/errors"
)

// Extrapolation is a price projection beyond the largest recorded cell.
// It is always surfaced as its own line item, never folded into the base.
type Extrapolation struct {
	// Delta is the projected amount above the anchor cell's price
	Delta decimal.Decimal

	// AnchorWidthFt and AnchorLengthFt identify the cell the projection starts from
	AnchorWidthFt  int
	AnchorLengthFt int

	// Note identifies the anchor entries the per-foot rates were derived from
	Note string
}

// Resolution is the outcome of resolving one (style, roof, width, length)
type Resolution struct {
	// RequestedWidthFt and RequestedLengthFt echo the request
	RequestedWidthFt  int
	RequestedLengthFt int

	// PricedWidthFt and PricedLengthFt are the matrix cell that was charged
	PricedWidthFt  int
	PricedLengthFt int

	// BasePrice is the charged cell's price
	BasePrice decimal.Decimal

	// Trace documents the lookup path (exact_match, next_size_up, table_max)
	Trace string

	// NormalizedWidthFt and NormalizedLengthFt are the dimensions the quote
	// is considered to be for (the requested size when extrapolating)
	NormalizedWidthFt  int
	NormalizedLengthFt int

	// OptionLengthFt is the horizontal-equivalent length option and
	// leg-height lookups must use
	OptionLengthFt int

	// Extrapolation is non-nil when the request exceeded the matrix
	Extrapolation *Extrapolation

	// Warnings are advisory notes produced during resolution
	Warnings []string
}

// HorizontalEquivalentLength maps a nominal length to the length used for
// option and leg-height columns. Vertical buildings are physically one foot
// shorter than the nominal length of the matching horizontal columns.
func HorizontalEquivalentLength(roof types.RoofOrientation, lengthFt int) int {
	if roof == types.RoofVertical && lengthFt > 1 {
		return lengthFt - 1
	}
	return lengthFt
}

// Resolve finds the matrix cell to charge for a requested size
func Resolve(book *pricebook.PriceBook, style types.Style, roof types.RoofOrientation, widthFt, lengthFt int) (*Resolution, error) {
	if widthFt <= 0 {
		return nil, errors.DimensionOutOfDomain("width must be positive").
			WithContext("width_ft", widthFt).
			WithContext("revision", book.Revision())
	}
	if lengthFt <= 0 {
		return nil, errors.DimensionOutOfDomain("length must be positive").
			WithContext("length_ft", lengthFt).
			WithContext("revision", book.Revision())
	}

	entries := book.BaseEntries(style, roof)
	if len(entries) == 0 {
		return nil, errors.DimensionOutOfDomain("no base matrix for style").
			WithContext("style", string(style)).
			WithContext("roof", string(roof)).
			WithContext("revision", book.Revision())
	}

	res := &Resolution{
		RequestedWidthFt:  widthFt,
		RequestedLengthFt: lengthFt,
		OptionLengthFt:    HorizontalEquivalentLength(roof, lengthFt),
	}

	if price, ok := book.BasePrice(style, roof, widthFt, lengthFt); ok {
		res.PricedWidthFt = widthFt
		res.PricedLengthFt = lengthFt
		res.BasePrice = price
		res.Trace = fmt.Sprintf("%s: %dx%d", types.TraceExactMatch, widthFt, lengthFt)
		res.NormalizedWidthFt = widthFt
		res.NormalizedLengthFt = lengthFt
		return res, nil
	}

	// Next size up: the lexicographically smallest cell covering both
	// dimensions. Entries arrive ordered by (width, length) ascending, so the
	// first covering cell is the answer. Never rounds down.
	for _, e := range entries {
		if e.WidthFt >= widthFt && e.LengthFt >= lengthFt {
			res.PricedWidthFt = e.WidthFt
			res.PricedLengthFt = e.LengthFt
			res.BasePrice = e.Price
			res.Trace = fmt.Sprintf("%s: requested %dx%d, priced %dx%d",
				types.TraceNextSizeUp, widthFt, lengthFt, e.WidthFt, e.LengthFt)
			res.NormalizedWidthFt = e.WidthFt
			res.NormalizedLengthFt = e.LengthFt
			res.Warnings = append(res.Warnings,
				"Per manufacturer pricing rules, sizes not in the matrix are priced at the next size up.")
			return res, nil
		}
	}

	extrapolate(res, entries, widthFt, lengthFt)
	return res, nil
}

// extrapolate anchors the request at the largest covering-enough cell and
// projects the overage from the table's own per-foot rates.
func extrapolate(res *Resolution, entries []pricebook.BaseEntry, widthFt, lengthFt int) {
	cells := make(map[[2]int]decimal.Decimal, len(entries))
	widthSet := make(map[int]bool)
	for _, e := range entries {
		cells[[2]int{e.WidthFt, e.LengthFt}] = e.Price
		widthSet[e.WidthFt] = true
	}
	widths := sortedKeys(widthSet)
	maxWidth := widths[len(widths)-1]

	// Matching width tier when available, nearest recorded width otherwise.
	anchorW := maxWidth
	widthExceeds := widthFt > maxWidth
	if !widthExceeds {
		for _, w := range widths {
			if w >= widthFt {
				anchorW = w
				break
			}
		}
	}

	lengthsAtW := lengthsForWidth(entries, anchorW)
	maxLength := lengthsAtW[len(lengthsAtW)-1]
	anchorL := maxLength
	lengthExceeds := lengthFt > maxLength
	if !lengthExceeds {
		for _, l := range lengthsAtW {
			if l >= lengthFt {
				anchorL = l
				break
			}
		}
	}

	base := cells[[2]int{anchorW, anchorL}]
	res.PricedWidthFt = anchorW
	res.PricedLengthFt = anchorL
	res.BasePrice = base
	res.Trace = fmt.Sprintf("%s: anchored at largest recorded size %dx%d",
		types.TraceTableMax, anchorW, anchorL)
	res.NormalizedWidthFt = widthFt
	res.NormalizedLengthFt = lengthFt

	delta := decimal.Zero
	var anchors []string

	if lengthExceeds && len(lengthsAtW) >= 2 {
		prevL := lengthsAtW[len(lengthsAtW)-2]
		prev := cells[[2]int{anchorW, prevL}]
		rate := base.Sub(prev).Div(decimal.NewFromInt(int64(anchorL - prevL)))
		delta = delta.Add(rate.Mul(decimal.NewFromInt(int64(lengthFt - anchorL))))
		anchors = append(anchors, fmt.Sprintf("length rate from %dx%d and %dx%d", anchorW, prevL, anchorW, anchorL))
	}

	if widthExceeds {
		widthsAtL := widthsForLength(entries, anchorL)
		if len(widthsAtL) >= 2 {
			lastW := widthsAtL[len(widthsAtL)-1]
			prevW := widthsAtL[len(widthsAtL)-2]
			rate := cells[[2]int{lastW, anchorL}].Sub(cells[[2]int{prevW, anchorL}]).
				Div(decimal.NewFromInt(int64(lastW - prevW)))
			delta = delta.Add(rate.Mul(decimal.NewFromInt(int64(widthFt - lastW))))
			anchors = append(anchors, fmt.Sprintf("width rate from %dx%d and %dx%d", prevW, anchorL, lastW, anchorL))
		}
	}

	// Last resort: the anchor cell's own per-square-foot rate.
	if !delta.IsPositive() {
		anchorArea := int64(anchorW) * int64(anchorL)
		requestArea := int64(widthFt) * int64(lengthFt)
		if requestArea > anchorArea && anchorArea > 0 {
			perSqft := base.Div(decimal.NewFromInt(anchorArea))
			delta = perSqft.Mul(decimal.NewFromInt(requestArea - anchorArea))
			anchors = append(anchors, fmt.Sprintf("area rate from %dx%d", anchorW, anchorL))
		}
	}

	res.Extrapolation = &Extrapolation{
		Delta:          delta.Round(2),
		AnchorWidthFt:  anchorW,
		AnchorLengthFt: anchorL,
		Note: fmt.Sprintf("%s: %s", types.TraceExtrapolated,
			joinAnchors(anchors, anchorW, anchorL)),
	}
	res.Warnings = append(res.Warnings, fmt.Sprintf(
		"Commercial sizing: requested %dx%d exceeds the price matrix; base anchored at %dx%d with an extrapolated size charge.",
		widthFt, lengthFt, anchorW, anchorL))
}

func joinAnchors(anchors []string, anchorW, anchorL int) string {
	if len(anchors) == 0 {
		return fmt.Sprintf("no rate derivable beyond %dx%d", anchorW, anchorL)
	}
	out := anchors[0]
	for _, a := range anchors[1:] {
		out += "; " + a
	}
	return out
}

func lengthsForWidth(entries []pricebook.BaseEntry, widthFt int) []int {
	set := make(map[int]bool)
	for _, e := range entries {
		if e.WidthFt == widthFt {
			set[e.LengthFt] = true
		}
	}
	return sortedKeys(set)
}

func widthsForLength(entries []pricebook.BaseEntry, lengthFt int) []int {
	set := make(map[int]bool)
	for _, e := range entries {
		if e.LengthFt == lengthFt {
			set[e.WidthFt] = true
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
