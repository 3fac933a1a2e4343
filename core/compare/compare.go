// Package compare - Vendor quote comparison
// Compares a reference vendor quote fixture against an engine result without
// altering either input. Used by the simulation harness to track how closely
// the engine reproduces vendor-issued quotes.
package compare

import (
	"sort"

	"github.com/shopspring/decimal"

	"carport-quote/core/types"
)

// MatchStatus classifies one compared line
type MatchStatus string

const (
	// StatusMatched means both sides priced the code
	StatusMatched MatchStatus = "matched"

	// StatusVendorOnly means the vendor priced a code the engine did not
	StatusVendorOnly MatchStatus = "vendor_only"

	// StatusEngineOnly means the engine priced a code the vendor did not
	StatusEngineOnly MatchStatus = "engine_only"
)

// VendorLine is one expected line from a vendor quote fixture
type VendorLine struct {
	// Code is the charge code, matching engine line item codes
	Code string `json:"code"`

	// Description is the vendor's label
	Description string `json:"description,omitempty"`

	// Amount is the vendor's extended amount for the code
	Amount decimal.Decimal `json:"amount"`
}

// VendorFixture is a reference quote captured from a vendor document
type VendorFixture struct {
	// Source labels where the fixture came from
	Source string `json:"source"`

	// Lines are the vendor's itemized charges
	Lines []VendorLine `json:"lines"`

	// GrandTotal is the vendor's stated total
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// LineDelta is the per-code difference between vendor and engine
type LineDelta struct {
	// Code is the charge code
	Code string `json:"code"`

	// VendorAmount is the vendor's total for the code
	VendorAmount decimal.Decimal `json:"vendor_amount"`

	// EngineAmount is the engine's total for the code
	EngineAmount decimal.Decimal `json:"engine_amount"`

	// Delta is EngineAmount minus VendorAmount
	Delta decimal.Decimal `json:"delta"`

	// Status classifies the match
	Status MatchStatus `json:"status"`
}

// Report is the comparison outcome
type Report struct {
	// Source echoes the fixture label
	Source string `json:"source"`

	// PriceBookRevision is the revision the engine priced against
	PriceBookRevision string `json:"pricebook_revision"`

	// Lines are the per-code deltas, engine order first, then vendor-only
	// codes sorted
	Lines []LineDelta `json:"lines"`

	// VendorTotal is the vendor's stated grand total
	VendorTotal decimal.Decimal `json:"vendor_total"`

	// EngineTotal is the engine's computed total
	EngineTotal decimal.Decimal `json:"engine_total"`

	// TotalDelta is EngineTotal minus VendorTotal
	TotalDelta decimal.Decimal `json:"total_delta"`

	// MatchedCount, EngineOnlyCount and VendorOnlyCount summarize coverage
	MatchedCount    int `json:"matched_count"`
	EngineOnlyCount int `json:"engine_only_count"`
	VendorOnlyCount int `json:"vendor_only_count"`
}

// Compare builds a per-line delta report between fixture and result.
// Amounts are aggregated per code on both sides before comparing.
func Compare(fixture *VendorFixture, result *types.QuoteResult) *Report {
	vendor := make(map[string]decimal.Decimal)
	for _, line := range fixture.Lines {
		vendor[line.Code] = vendor[line.Code].Add(line.Amount)
	}

	engine := make(map[string]decimal.Decimal)
	var engineOrder []string
	for _, item := range result.LineItems {
		if _, seen := engine[item.Code]; !seen {
			engineOrder = append(engineOrder, item.Code)
		}
		engine[item.Code] = engine[item.Code].Add(item.ExtendedPrice)
	}

	report := &Report{
		Source:            fixture.Source,
		PriceBookRevision: result.PriceBookRevision,
		VendorTotal:       fixture.GrandTotal,
		EngineTotal:       result.Total,
		TotalDelta:        result.Total.Sub(fixture.GrandTotal),
	}

	for _, code := range engineOrder {
		delta := LineDelta{
			Code:         code,
			EngineAmount: engine[code],
			Status:       StatusEngineOnly,
		}
		if vendorAmount, ok := vendor[code]; ok {
			delta.VendorAmount = vendorAmount
			delta.Status = StatusMatched
			report.MatchedCount++
		} else {
			report.EngineOnlyCount++
		}
		delta.Delta = delta.EngineAmount.Sub(delta.VendorAmount)
		report.Lines = append(report.Lines, delta)
	}

	var vendorOnly []string
	for code := range vendor {
		if _, ok := engine[code]; !ok {
			vendorOnly = append(vendorOnly, code)
		}
	}
	sort.Strings(vendorOnly)
	for _, code := range vendorOnly {
		report.VendorOnlyCount++
		report.Lines = append(report.Lines, LineDelta{
			Code:         code,
			VendorAmount: vendor[code],
			Delta:        vendor[code].Neg(),
			Status:       StatusVendorOnly,
		})
	}

	return report
}
