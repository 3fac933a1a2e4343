package api

import (
	"strings"

	"github.com/shopspring/decimal"

	"carport-quote/core/compare"
	"carport-quote/core/types"
)

// QuoteRequest is the body of POST /quote
type QuoteRequest struct {
	// Revision selects the price book; empty uses the server default
	Revision string `json:"revision,omitempty"`

	// Style is the building style, e.g. REGULAR or A-FRAME
	Style string `json:"style"`

	// Roof is the roof panel orientation, HORIZONTAL or VERTICAL
	Roof string `json:"roof"`

	// WidthFt, LengthFt and HeightFt are the nominal dimensions in feet
	WidthFt  int `json:"width_ft"`
	LengthFt int `json:"length_ft"`
	HeightFt int `json:"height_ft"`

	// ClosedEndCount and ClosedSideCount request fully enclosed ends
	// and sides, priced per end and per side
	ClosedEndCount  int `json:"closed_end_count,omitempty"`
	ClosedSideCount int `json:"closed_side_count,omitempty"`

	// Options are the selected options
	Options []OptionRequest `json:"options,omitempty"`

	// LeanTo is an optional attached lean-to
	LeanTo *LeanToRequest `json:"lean_to,omitempty"`

	// Terms override the server default terms
	Terms *TermsRequest `json:"terms,omitempty"`
}

// OptionRequest is one option selection
type OptionRequest struct {
	Code     string `json:"code"`
	Wall     string `json:"wall,omitempty"`
	OffsetFt int    `json:"offset_ft,omitempty"`
}

// LeanToRequest describes an attached lean-to
type LeanToRequest struct {
	WidthFt   int    `json:"width_ft"`
	LengthFt  int    `json:"length_ft"`
	Placement string `json:"placement"`
}

// TermsRequest carries pass-through financial terms
type TermsRequest struct {
	DiscountRate    decimal.Decimal `json:"discount_rate"`
	DownPaymentRate decimal.Decimal `json:"down_payment_rate"`
}

// CompareRequest is the body of POST /compare
type CompareRequest struct {
	// Quote is the configuration to price
	Quote QuoteRequest `json:"quote"`

	// Vendor is the reference fixture to compare against
	Vendor compare.VendorFixture `json:"vendor"`
}

// PriceBookInfo summarizes one loaded price book
type PriceBookInfo struct {
	Revision      string   `json:"revision"`
	Region        string   `json:"region"`
	EffectiveDate string   `json:"effective_date"`
	Styles        []string `json:"styles"`
	OptionCodes   []string `json:"option_codes"`
	Notes         string   `json:"notes,omitempty"`
}

// toInput converts the request to an engine input. Enum-like fields
// are normalized so clients may send any case.
func (r *QuoteRequest) toInput() types.QuoteInput {
	in := types.QuoteInput{
		Style:           types.Style(normalize(r.Style)),
		Roof:            types.RoofOrientation(normalize(r.Roof)),
		WidthFt:         r.WidthFt,
		LengthFt:        r.LengthFt,
		HeightFt:        r.HeightFt,
		ClosedEndCount:  r.ClosedEndCount,
		ClosedSideCount: r.ClosedSideCount,
	}
	for _, opt := range r.Options {
		in.Options = append(in.Options, types.OptionSelection{
			Code:     opt.Code,
			Wall:     types.Wall(normalize(opt.Wall)),
			OffsetFt: opt.OffsetFt,
		})
	}
	if r.LeanTo != nil {
		in.LeanTo = &types.LeanTo{
			WidthFt:   r.LeanTo.WidthFt,
			LengthFt:  r.LeanTo.LengthFt,
			Placement: types.Wall(normalize(r.LeanTo.Placement)),
		}
	}
	return in
}

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
