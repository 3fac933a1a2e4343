// Package pricebook - HCL ingestion
// Price books can also be hand-authored in HCL, which reviews better than
// machine-emitted JSON. The HCL form decodes to the same Document and runs
// through the same validation.
package pricebook

import (
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/shopspring/decimal"

	"carport-quote/internal/errors"
)

type hclDocument struct {
	RevisionID      string             `hcl:"revision_id"`
	RegionCode      string             `hcl:"region_code"`
	EffectiveDate   string             `hcl:"effective_date,optional"`
	Notes           string             `hcl:"notes,optional"`
	MaxSingleSpanFt int                `hcl:"max_single_span_ft,optional"`
	AttachmentFee   float64            `hcl:"attachment_fee,optional"`
	DeclaredOptions []string           `hcl:"declared_options,optional"`
	Base            []hclBaseRow       `hcl:"base,block"`
	Options         []hclOptionRow     `hcl:"option,block"`
	LegHeights      []hclLegHeightRow  `hcl:"leg_height,block"`
	ClosedEnds      []hclClosedEndRow  `hcl:"closed_end,block"`
	ClosedSides     []hclClosedSideRow `hcl:"closed_side,block"`
}

type hclBaseRow struct {
	Style    string  `hcl:"style,label"`
	Roof     string  `hcl:"roof,label"`
	WidthFt  int     `hcl:"width_ft"`
	LengthFt int     `hcl:"length_ft"`
	Price    float64 `hcl:"price"`
}

type hclOptionRow struct {
	Code       string  `hcl:"code,label"`
	LengthFt   int     `hcl:"length_ft,optional"`
	Price      float64 `hcl:"price"`
	Placement  string  `hcl:"placement,optional"`
	Flat       bool    `hcl:"flat,optional"`
	Structural bool    `hcl:"structural,optional"`
}

type hclLegHeightRow struct {
	HeightFt int     `hcl:"height_ft"`
	LengthFt int     `hcl:"length_ft"`
	Price    float64 `hcl:"price"`
}

type hclClosedEndRow struct {
	HeightFt int     `hcl:"height_ft"`
	WidthFt  int     `hcl:"width_ft"`
	Price    float64 `hcl:"price"`
}

type hclClosedSideRow struct {
	WidthFt int     `hcl:"width_ft"`
	Price   float64 `hcl:"price"`
}

// LoadHCL reads an HCL price book file and constructs a PriceBook
func LoadHCL(path string) (*PriceBook, error) {
	var raw hclDocument
	if err := hclsimple.DecodeFile(path, nil, &raw); err != nil {
		return nil, errors.Wrap(errors.TypeMalformedPriceBook, "invalid price book HCL", err).
			WithContext("path", path)
	}

	doc := &Document{
		RevisionID:      raw.RevisionID,
		RegionCode:      raw.RegionCode,
		EffectiveDate:   raw.EffectiveDate,
		Notes:           raw.Notes,
		MaxSingleSpanFt: raw.MaxSingleSpanFt,
		AttachmentFee:   decimal.NewFromFloat(raw.AttachmentFee),
		DeclaredOptions: raw.DeclaredOptions,
	}
	for _, row := range raw.Base {
		doc.BaseMatrix = append(doc.BaseMatrix, BaseRow{
			Style:    row.Style,
			Roof:     row.Roof,
			WidthFt:  row.WidthFt,
			LengthFt: row.LengthFt,
			Price:    decimal.NewFromFloat(row.Price),
		})
	}
	for _, row := range raw.Options {
		doc.Options = append(doc.Options, OptionRow{
			Code:       row.Code,
			LengthFt:   row.LengthFt,
			Price:      decimal.NewFromFloat(row.Price),
			Placement:  row.Placement,
			Flat:       row.Flat,
			Structural: row.Structural,
		})
	}
	for _, row := range raw.LegHeights {
		doc.LegHeights = append(doc.LegHeights, LegHeightRow{
			HeightFt: row.HeightFt,
			LengthFt: row.LengthFt,
			Price:    decimal.NewFromFloat(row.Price),
		})
	}
	for _, row := range raw.ClosedEnds {
		doc.ClosedEnds = append(doc.ClosedEnds, ClosedEndRow{
			HeightFt: row.HeightFt,
			WidthFt:  row.WidthFt,
			Price:    decimal.NewFromFloat(row.Price),
		})
	}
	for _, row := range raw.ClosedSides {
		doc.ClosedSides = append(doc.ClosedSides, ClosedSideRow{
			WidthFt: row.WidthFt,
			Price:   decimal.NewFromFloat(row.Price),
		})
	}

	book, err := New(doc)
	if err != nil {
		if e, ok := err.(*errors.Error); ok {
			return nil, e.WithContext("path", path)
		}
		return nil, err
	}
	return book, nil
}
