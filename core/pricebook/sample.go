// Package pricebook - Built-in sample revision
package pricebook

import (
	"fmt"

	"github.com/shopspring/decimal"

	"carport-quote/core/types"
)

// Sample returns the built-in R29 (NW) demo book: REGULAR and A-FRAME
// horizontal matrices, the A-FRAME vertical matrix, the leg-height table,
// and a small option list. Used by tests and as the CLI fallback when no
// price book is given.
func Sample() *PriceBook {
	book, err := New(sampleDocument())
	if err != nil {
		panic(fmt.Sprintf("built-in sample book failed validation: %v", err))
	}
	return book
}

func sampleDocument() *Document {
	widths := []int{12, 18, 20, 22, 24}
	horizLengths := []int{21, 26, 31, 36, 41, 46, 51}
	vertLengths := []int{20, 25, 30, 35, 40, 45, 50}

	// Rows are widths (ascending), columns are lengths (ascending).
	regularHoriz := [][]int{
		{2595, 2995, 3395, 3795, 4195, 4595, 4995},
		{3295, 3795, 4295, 4795, 5295, 5795, 6295},
		{3595, 4195, 4795, 5395, 5995, 6595, 7195},
		{3995, 4695, 5395, 6095, 6795, 7495, 8195},
		{4395, 5195, 5995, 6795, 7595, 8395, 9195},
	}
	aFrameHoriz := [][]int{
		{2895, 3295, 3695, 4095, 4495, 4895, 5295},
		{3595, 4095, 4595, 5095, 5595, 6095, 6595},
		{3895, 4495, 5095, 5695, 6295, 6895, 7495},
		{4295, 4995, 5695, 6395, 7095, 7795, 8495},
		{4695, 5495, 6295, 7095, 7895, 8695, 9495},
	}
	aFrameVert := [][]int{
		{2895, 3495, 3995, 4595, 4995, 5595, 6195},
		{3695, 4295, 4895, 5495, 6095, 6695, 7295},
		{3995, 4695, 5395, 6095, 6795, 7495, 8195},
		{4395, 5195, 5995, 6795, 7595, 8395, 9195},
		{4795, 5695, 6595, 7495, 8395, 9295, 10195},
	}

	doc := &Document{
		RevisionID:    "R29-NW",
		RegionCode:    "NW",
		EffectiveDate: "2024-03-01",
		Notes:         "Built-in sample derived from the R29 northwest price book pages 4-5.",
		AttachmentFee: decimal.NewFromInt(495),
	}

	appendMatrix := func(style types.Style, roof types.RoofOrientation, lengths []int, prices [][]int) {
		for wi, w := range widths {
			for li, l := range lengths {
				doc.BaseMatrix = append(doc.BaseMatrix, BaseRow{
					Style:    string(style),
					Roof:     string(roof),
					WidthFt:  w,
					LengthFt: l,
					Price:    decimal.NewFromInt(int64(prices[wi][li])),
				})
			}
		}
	}
	appendMatrix(types.StyleRegular, types.RoofHorizontal, horizLengths, regularHoriz)
	appendMatrix(types.StyleAFrame, types.RoofHorizontal, horizLengths, aFrameHoriz)
	appendMatrix(types.StyleAFrame, types.RoofVertical, vertLengths, aFrameVert)

	// Leg height add-ons; 6 ft is the standard height and carries no charge.
	legHeightRows := map[int][]int{
		6:  {0, 0, 0, 0, 0, 0, 0},
		7:  {110, 135, 150, 180, 205, 240, 265},
		8:  {200, 265, 300, 360, 410, 480, 530},
		9:  {325, 400, 450, 580, 690, 720, 800},
		10: {1285, 1630, 1895, 2220, 2570, 2960, 3310},
		11: {1390, 1760, 2050, 2400, 2770, 3200, 3570},
		12: {1560, 1895, 2100, 2580, 2975, 3440, 3840},
		13: {1740, 2120, 2400, 2890, 3330, 3850, 4300},
	}
	for h, row := range legHeightRows {
		for li, l := range horizLengths {
			doc.LegHeights = append(doc.LegHeights, LegHeightRow{
				HeightFt: h,
				LengthFt: l,
				Price:    decimal.NewFromInt(int64(row[li])),
			})
		}
	}

	groundCert := []int{600, 700, 700, 800, 900, 1000, 1200}
	for li, l := range horizLengths {
		doc.Options = append(doc.Options, OptionRow{
			Code:     "GROUND_CERTIFICATION",
			LengthFt: l,
			Price:    decimal.NewFromInt(int64(groundCert[li])),
		})
	}

	gaugeUpgrade := []int{250, 300, 350, 400, 450, 500, 550}
	for li, l := range horizLengths {
		doc.Options = append(doc.Options, OptionRow{
			Code:       "GAUGE_UPGRADE_12GA",
			LengthFt:   l,
			Price:      decimal.NewFromInt(int64(gaugeUpgrade[li])),
			Structural: true,
		})
	}

	doc.Options = append(doc.Options,
		OptionRow{Code: "WALK_IN_DOOR_36X80", Price: decimal.NewFromInt(400), Flat: true},
		OptionRow{Code: "WINDOW_24X36", Price: decimal.NewFromInt(175), Flat: true},
		OptionRow{Code: "GARAGE_DOOR_9X8", Price: decimal.NewFromInt(595), Flat: true},
		// 10x10 garage doors price per wall: gable ends take the standard
		// framing, eave sides need a header kit.
		OptionRow{Code: "GARAGE_DOOR_10X10", Price: decimal.NewFromInt(795), Flat: true, Placement: "FRONT"},
		OptionRow{Code: "GARAGE_DOOR_10X10", Price: decimal.NewFromInt(795), Flat: true, Placement: "BACK"},
		OptionRow{Code: "GARAGE_DOOR_10X10", Price: decimal.NewFromInt(895), Flat: true, Placement: "LEFT"},
		OptionRow{Code: "GARAGE_DOOR_10X10", Price: decimal.NewFromInt(895), Flat: true, Placement: "RIGHT"},
	)

	doc.DeclaredOptions = []string{
		"GROUND_CERTIFICATION",
		"GAUGE_UPGRADE_12GA",
		"WALK_IN_DOOR_36X80",
		"WINDOW_24X36",
		"GARAGE_DOOR_9X8",
		"GARAGE_DOOR_10X10",
	}

	return doc
}
