// Package quote - Quote assembly
// Compute is the engine's sole entry point: given an immutable PriceBook and
// a QuoteInput it produces an itemized QuoteResult with no side effects. The
// assembler is purely additive and order-preserving; it never recomputes a
// line item after it is added.
package quote

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"carport-quote/core/options"
	"carport-quote/core/pricebook"
	"carport-quote/core/rules"
	"carport-quote/core/sizing"
	"carport-quote/core/types"
	"carport-quote/internal/errors"
)

// Compute prices one configuration against one price book revision.
// Line item order is deterministic: base first, rule-derived items in
// validator order, leg height, closed ends, closed sides, lean-to, option
// items in selection order, and any extrapolation item last.
func Compute(in *types.QuoteInput, book *pricebook.PriceBook, terms types.Terms) (*types.QuoteResult, error) {
	if in == nil {
		return nil, errors.Input("nil quote input")
	}
	if book == nil {
		return nil, errors.Input("nil price book")
	}

	ruleRes, err := rules.Validate(in, book)
	if err != nil {
		return nil, err
	}

	res, err := sizing.Resolve(book, in.Style, in.Roof, in.WidthFt, in.LengthFt)
	if err != nil {
		return nil, err
	}

	base := types.LineItem{
		Code: types.CodeBase,
		Description: fmt.Sprintf("Base price (%s, %s roof, %dx%d)",
			in.Style, in.Roof, res.PricedWidthFt, res.PricedLengthFt),
		Quantity:  1,
		UnitPrice: res.BasePrice,
		Wall:      types.WallNone,
		TraceNote: res.Trace,
	}

	legItem, legWarnings, err := options.LegHeight(book, in.HeightFt, res.OptionLengthFt)
	if err != nil {
		return nil, err
	}

	endItem, endWarnings, err := options.ClosedEnds(book, in.HeightFt, res.NormalizedWidthFt, in.ClosedEndCount)
	if err != nil {
		return nil, err
	}

	sideItem, sideWarnings, err := options.ClosedSides(book, res.NormalizedWidthFt, in.ClosedSideCount)
	if err != nil {
		return nil, err
	}

	leanToItem, leanToWarnings, err := priceLeanTo(in, book)
	if err != nil {
		return nil, err
	}

	priced, err := options.Price(book, in, res.OptionLengthFt)
	if err != nil {
		return nil, err
	}

	// Structural modifiers merge into the base structure's line item.
	if priced.StructuralAddon.IsPositive() {
		base.UnitPrice = base.UnitPrice.Add(priced.StructuralAddon)
		for _, note := range priced.StructuralNotes {
			base.TraceNote += "; includes " + note
		}
	}
	base.Extend()

	items := make([]types.LineItem, 0, 4+len(priced.Items))
	items = append(items, base)
	items = append(items, ruleRes.Items...)
	if legItem != nil {
		items = append(items, *legItem)
	}
	if endItem != nil {
		items = append(items, *endItem)
	}
	if sideItem != nil {
		items = append(items, *sideItem)
	}
	if leanToItem != nil {
		items = append(items, *leanToItem)
	}
	items = append(items, priced.Items...)

	if res.Extrapolation != nil {
		extrap := types.LineItem{
			Code: types.CodeSizeExtrap,
			Description: fmt.Sprintf("Commercial size extrapolation (%dx%d)",
				in.WidthFt, in.LengthFt),
			Quantity:  1,
			UnitPrice: res.Extrapolation.Delta,
			Wall:      types.WallNone,
			TraceNote: res.Extrapolation.Note,
		}
		extrap.Extend()
		items = append(items, extrap)
	}

	var warnings []string
	warnings = append(warnings, ruleRes.Warnings...)
	warnings = append(warnings, res.Warnings...)
	warnings = append(warnings, legWarnings...)
	warnings = append(warnings, endWarnings...)
	warnings = append(warnings, sideWarnings...)
	warnings = append(warnings, leanToWarnings...)
	warnings = append(warnings, priced.Warnings...)

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.ExtendedPrice)
	}
	discount := subtotal.Mul(terms.DiscountRate).Round(2)
	total := subtotal.Sub(discount)
	downPayment := total.Mul(terms.DownPaymentRate).Round(2)

	return &types.QuoteResult{
		QuoteID:            uuid.NewString(),
		PriceBookRevision:  book.Revision(),
		NormalizedWidthFt:  res.NormalizedWidthFt,
		NormalizedLengthFt: res.NormalizedLengthFt,
		LineItems:          items,
		Subtotal:           subtotal,
		Discount:           discount,
		Total:              total,
		DownPayment:        downPayment,
		BalanceDue:         total.Sub(downPayment),
		Warnings:           warnings,
	}, nil
}

// priceLeanTo prices an attached lean-to section off the same base matrix at
// next size up. A lean-to past the matrix is priced at the largest recorded
// size with a warning; extrapolation is reserved for the main structure.
func priceLeanTo(in *types.QuoteInput, book *pricebook.PriceBook) (*types.LineItem, []string, error) {
	if in.LeanTo == nil {
		return nil, nil, nil
	}
	if in.LeanTo.WidthFt <= 0 || in.LeanTo.LengthFt <= 0 {
		return nil, nil, errors.Input("lean-to dimensions must be positive").
			WithContext("width_ft", in.LeanTo.WidthFt).
			WithContext("length_ft", in.LeanTo.LengthFt)
	}
	if in.LeanTo.Placement != "" && in.LeanTo.Placement != types.WallNone && !in.LeanTo.Placement.Valid() {
		return nil, nil, errors.InvalidPlacement("unknown lean-to wall").
			WithContext("wall", string(in.LeanTo.Placement))
	}

	res, err := sizing.Resolve(book, in.Style, in.Roof, in.LeanTo.WidthFt, in.LeanTo.LengthFt)
	if err != nil {
		return nil, nil, err
	}

	warnings := res.Warnings
	trace := res.Trace
	if res.Extrapolation != nil {
		warnings = []string{fmt.Sprintf(
			"Lean-to %dx%d exceeds the price matrix; priced at the largest recorded size %dx%d.",
			in.LeanTo.WidthFt, in.LeanTo.LengthFt, res.PricedWidthFt, res.PricedLengthFt)}
		trace = fmt.Sprintf("%s: lean-to priced at largest recorded size %dx%d",
			types.TraceNoFallbackExceedsTable, res.PricedWidthFt, res.PricedLengthFt)
	}

	desc := fmt.Sprintf("Lean-to add-on (%dx%d)", res.PricedWidthFt, res.PricedLengthFt)
	if in.LeanTo.Placement.Valid() {
		desc = fmt.Sprintf("Lean-to add-on (%s, %dx%d)", in.LeanTo.Placement, res.PricedWidthFt, res.PricedLengthFt)
	}

	item := &types.LineItem{
		Code:        types.CodeLeanTo,
		Description: desc,
		Quantity:    1,
		UnitPrice:   res.BasePrice,
		Wall:        in.LeanTo.Placement,
		TraceNote:   trace,
	}
	if item.Wall == "" {
		item.Wall = types.WallNone
	}
	item.Extend()
	return item, warnings, nil
}
