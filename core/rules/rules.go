// Package rules - Configuration rule checks
// A fixed, ordered list of rules runs before pricing. Each rule either
// rejects the configuration outright, attaches an advisory warning, or
// derives its own line items. Rules never mutate the input.
package rules

import (
	"fmt"

	"carport-quote/core/pricebook"
	"carport-quote/core/types"
	"carport-quote/internal/errors"
)

const (
	// liftHeightFt is the leg height at which installation needs a lift
	liftHeightFt = 13

	// attachmentThresholdFt is the length above which attachments are required
	attachmentThresholdFt = 51
)

// Result carries what a rule contributed
type Result struct {
	// Warnings are advisory notes for the eventual quote
	Warnings []string

	// Items are rule-derived line items
	Items []types.LineItem
}

// Rule checks one aspect of a requested configuration
type Rule interface {
	// Name identifies the rule
	Name() string

	// Apply evaluates the rule against an input and price book
	Apply(in *types.QuoteInput, book *pricebook.PriceBook) (*Result, error)
}

// Default returns the rules in their required evaluation order
func Default() []Rule {
	return []Rule{
		roofCompatibilityRule{},
		liftRequirementRule{},
		attachmentRequirementRule{},
	}
}

// Validate runs the default rule set in order, merging contributions.
// The first hard rejection stops evaluation.
func Validate(in *types.QuoteInput, book *pricebook.PriceBook) (*Result, error) {
	merged := &Result{}
	for _, rule := range Default() {
		res, err := rule.Apply(in, book)
		if err != nil {
			return nil, err
		}
		if res != nil {
			merged.Warnings = append(merged.Warnings, res.Warnings...)
			merged.Items = append(merged.Items, res.Items...)
		}
	}
	return merged, nil
}

// roofCompatibilityRule rejects vertical roofs on anything but A-FRAME
type roofCompatibilityRule struct{}

func (roofCompatibilityRule) Name() string { return "roof_compatibility" }

func (roofCompatibilityRule) Apply(in *types.QuoteInput, book *pricebook.PriceBook) (*Result, error) {
	if in.Roof == types.RoofVertical && in.Style != types.StyleAFrame {
		return nil, errors.InvalidConfiguration("vertical roof is only available on A-FRAME style buildings").
			WithContext("style", string(in.Style)).
			WithContext("roof", string(in.Roof)).
			WithContext("revision", book.Revision())
	}
	return &Result{}, nil
}

// liftRequirementRule warns when installation needs a customer-provided lift
type liftRequirementRule struct{}

func (liftRequirementRule) Name() string { return "lift_requirement" }

func (liftRequirementRule) Apply(in *types.QuoteInput, book *pricebook.PriceBook) (*Result, error) {
	if in.HeightFt >= liftHeightFt {
		return &Result{Warnings: []string{
			fmt.Sprintf("Requires customer-provided lift for installation (%d' or taller); not supplied by the base price.", liftHeightFt),
		}}, nil
	}
	return &Result{}, nil
}

// attachmentRequirementRule derives attachment line items for long buildings.
// Buildings past the threshold need one attachment per started span.
type attachmentRequirementRule struct{}

func (attachmentRequirementRule) Name() string { return "attachment_requirement" }

func (attachmentRequirementRule) Apply(in *types.QuoteInput, book *pricebook.PriceBook) (*Result, error) {
	if in.LengthFt <= attachmentThresholdFt {
		return &Result{}, nil
	}

	span := book.MaxSingleSpanFt()
	overage := in.LengthFt - attachmentThresholdFt
	count := (overage + span - 1) / span

	item := types.LineItem{
		Code:        types.CodeAttachment,
		Description: fmt.Sprintf("Structural attachment (length over %d ft)", attachmentThresholdFt),
		Quantity:    count,
		UnitPrice:   book.AttachmentFee(),
		Wall:        types.WallNone,
		TraceNote: fmt.Sprintf("ceil((%d-%d)/%d) attachments at the book's per-attachment fee",
			in.LengthFt, attachmentThresholdFt, span),
	}
	item.Extend()

	res := &Result{Items: []types.LineItem{item}}
	if book.AttachmentFee().IsZero() {
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"Price book %s has no attachment fee; %d required attachment(s) were priced at $0.",
			book.Revision(), count))
	}
	return res, nil
}
