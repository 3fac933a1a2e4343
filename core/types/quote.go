// Package types - Quote result types
package types

import "github.com/shopspring/decimal"

// Trace notes document which lookup path produced a price.
const (
	// TraceExactMatch means the requested key existed in the table
	TraceExactMatch = "exact_match"

	// TraceNextSizeUp means the request was rounded up to the next recorded size
	TraceNextSizeUp = "next_size_up"

	// TraceTableMax means the request was anchored at the largest recorded size
	TraceTableMax = "table_max"

	// TraceExtrapolated means the price was projected beyond the table
	TraceExtrapolated = "extrapolated"

	// TraceNoFallbackExceedsTable means no column covered the request and the
	// longest available column was used instead
	TraceNoFallbackExceedsTable = "no_fallback_exceeds_table"

	// TraceFlat means the option prices as a flat fee, independent of dimensions
	TraceFlat = "flat"
)

// Reserved line item codes
const (
	CodeBase       = "BASE"
	CodeSizeExtrap = "COMMERCIAL_SIZE_EXTRAP"
	CodeAttachment = "ATTACHMENT"
	CodeLegHeight  = "LEG_HEIGHT"
	CodeLeanTo     = "LEAN_TO"
	CodeClosedEnd  = "CLOSED_END"
	CodeClosedSide = "CLOSED_SIDE"
)

// LineItem is a single billable line on a quote
type LineItem struct {
	// Code identifies the charge (BASE, ATTACHMENT, or an option code)
	Code string `json:"code"`

	// Description is a human-readable label
	Description string `json:"description"`

	// Quantity is the number of units charged
	Quantity int `json:"quantity"`

	// UnitPrice is the price per unit
	UnitPrice decimal.Decimal `json:"unit_price"`

	// ExtendedPrice is Quantity * UnitPrice
	ExtendedPrice decimal.Decimal `json:"extended_price"`

	// Wall carries placement for downstream rendering (WallNone otherwise)
	Wall Wall `json:"wall,omitempty"`

	// TraceNote explains how the price was derived
	TraceNote string `json:"trace_note"`
}

// Extend recalculates ExtendedPrice from Quantity and UnitPrice
func (li *LineItem) Extend() {
	li.ExtendedPrice = li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Terms are caller-supplied numeric transforms applied after the subtotal.
// They are a pass-through; the engine performs no discount or financing logic
// beyond these two rates.
type Terms struct {
	// DiscountRate is a fractional discount on the subtotal (0 to 1)
	DiscountRate decimal.Decimal `json:"discount_rate"`

	// DownPaymentRate is the fractional down payment on the total (0 to 1)
	DownPaymentRate decimal.Decimal `json:"down_payment_rate"`
}

// QuoteResult is the itemized outcome of pricing one QuoteInput.
// It is produced once, immutable, and safe to serialize.
type QuoteResult struct {
	// QuoteID uniquely identifies this computation
	QuoteID string `json:"quote_id"`

	// PriceBookRevision is the revision the quote was priced against
	PriceBookRevision string `json:"pricebook_revision_used"`

	// NormalizedWidthFt is the width the building was priced at
	NormalizedWidthFt int `json:"normalized_width_ft"`

	// NormalizedLengthFt is the length the building was priced at
	NormalizedLengthFt int `json:"normalized_length_ft"`

	// LineItems are the ordered charges
	LineItems []LineItem `json:"line_items"`

	// Subtotal is the sum of all extended prices before terms
	Subtotal decimal.Decimal `json:"subtotal"`

	// Discount is the amount subtracted by Terms.DiscountRate
	Discount decimal.Decimal `json:"discount"`

	// Total is Subtotal minus Discount
	Total decimal.Decimal `json:"total"`

	// DownPayment is the amount due up front per Terms.DownPaymentRate
	DownPayment decimal.Decimal `json:"down_payment"`

	// BalanceDue is Total minus DownPayment
	BalanceDue decimal.Decimal `json:"balance_due"`

	// Warnings are non-fatal advisory notes attached during pricing
	Warnings []string `json:"warnings,omitempty"`
}
