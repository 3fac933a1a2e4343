// Package options - Option and leg-height pricing
// Resolves each selected option against the book's option tables using the
// same exact-match then next-size-up policy as base sizing. Running past the
// table is a warning, never a failure.
package options

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"carport-quote/core/pricebook"
	"carport-quote/core/types"
	"carport-quote/internal/errors"
)

// Priced is the outcome of pricing every selection on a quote
type Priced struct {
	// Items are the option line items, selection order preserved,
	// identical selections merged by quantity
	Items []types.LineItem

	// StructuralAddon is the sum of structural-modifier option prices,
	// merged into the base structure's line item by the assembler
	StructuralAddon decimal.Decimal

	// StructuralNotes carry trace fragments for merged structural options
	StructuralNotes []string

	// Warnings are advisory notes produced while pricing
	Warnings []string
}

// Price resolves every selection against the book. optionLengthFt is the
// horizontal-equivalent length from dimensional resolution.
func Price(book *pricebook.PriceBook, in *types.QuoteInput, optionLengthFt int) (*Priced, error) {
	out := &Priced{StructuralAddon: decimal.Zero}

	for _, sel := range in.Options {
		code := pricebook.NormalizeCode(sel.Code)
		if code == "" {
			continue
		}

		entries := book.OptionEntries(code)
		if len(entries) == 0 {
			return nil, errors.InvalidConfiguration("option has no price in this book").
				WithContext("option_code", code).
				WithContext("revision", book.Revision())
		}

		wall, err := validatePlacement(in, sel, entries, book.Revision())
		if err != nil {
			return nil, err
		}

		price, trace, warnings := resolveEntry(entriesForWall(entries, wall), code, optionLengthFt)
		out.Warnings = append(out.Warnings, warnings...)

		if structural(entries) {
			out.StructuralAddon = out.StructuralAddon.Add(price)
			out.StructuralNotes = append(out.StructuralNotes, fmt.Sprintf("%s (%s)", code, trace))
			continue
		}

		out.addItem(types.LineItem{
			Code:        code,
			Description: describe(code, wall),
			Quantity:    1,
			UnitPrice:   price,
			Wall:        wall,
			TraceNote:   trace,
		})
	}

	return out, nil
}

// LegHeight prices the leg-height add-on for a height and horizontal-equivalent
// length. Returns a nil item when the height carries no charge.
func LegHeight(book *pricebook.PriceBook, heightFt, optionLengthFt int) (*types.LineItem, []string, error) {
	if heightFt <= 0 {
		return nil, nil, errors.Input("leg height must be positive").
			WithContext("height_ft", heightFt)
	}

	heights := book.LegHeights()
	if len(heights) == 0 {
		return nil, nil, nil
	}

	var warnings []string
	priced := heightFt
	if len(book.LegHeightEntries(heightFt)) == 0 {
		// No exact row: next height up, longest-priced height past the table.
		priced = heights[len(heights)-1]
		for _, h := range heights {
			if h >= heightFt {
				priced = h
				break
			}
		}
		warnings = append(warnings,
			fmt.Sprintf("Per manufacturer rules, leg height add-on was priced at %d ft (no %d ft column).", priced, heightFt))
	}

	entries := book.LegHeightEntries(priced)
	price, lengthTrace, lengthWarnings := resolveLengths(toLengthPrices(entries), fmt.Sprintf("leg height add-on (%d ft)", heightFt), optionLengthFt)
	warnings = append(warnings, lengthWarnings...)

	if price.IsZero() {
		return nil, warnings, nil
	}

	item := &types.LineItem{
		Code:        types.CodeLegHeight,
		Description: fmt.Sprintf("Leg height add-on (%d ft)", heightFt),
		Quantity:    1,
		UnitPrice:   price,
		Wall:        types.WallNone,
		TraceNote:   fmt.Sprintf("height %d ft, %s", priced, lengthTrace),
	}
	item.Extend()
	return item, warnings, nil
}

// addItem merges the selection into an existing item when the charge is
// identical, preserving first-occurrence order.
func (p *Priced) addItem(item types.LineItem) {
	for i := range p.Items {
		existing := &p.Items[i]
		if existing.Code == item.Code && existing.Wall == item.Wall &&
			existing.UnitPrice.Equal(item.UnitPrice) {
			existing.Quantity++
			existing.Extend()
			return
		}
	}
	item.Extend()
	p.Items = append(p.Items, item)
}

func validatePlacement(in *types.QuoteInput, sel types.OptionSelection, entries []pricebook.OptionEntry, revision string) (types.Wall, error) {
	wall := sel.Wall
	if wall == "" {
		wall = types.WallNone
	}

	if wall == types.WallNone {
		if hasWallVariants(entries) {
			return wall, errors.InvalidPlacement("option prices per wall and requires one").
				WithContext("option_code", sel.Code).
				WithContext("revision", revision)
		}
		return wall, nil
	}

	if !wall.Valid() {
		return wall, errors.InvalidPlacement("unknown wall").
			WithContext("option_code", sel.Code).
			WithContext("wall", string(wall)).
			WithContext("revision", revision)
	}

	wallLen := wall.LengthFt(in.WidthFt, in.LengthFt)
	if sel.OffsetFt < 0 || sel.OffsetFt > wallLen {
		return wall, errors.InvalidPlacement("offset exceeds wall length").
			WithContext("option_code", sel.Code).
			WithContext("wall", string(wall)).
			WithContext("offset_ft", sel.OffsetFt).
			WithContext("wall_length_ft", wallLen).
			WithContext("revision", revision)
	}

	return wall, nil
}

// entriesForWall prefers per-wall price variants, falling back to
// wall-agnostic rows. Placement alone never changes the price.
func entriesForWall(entries []pricebook.OptionEntry, wall types.Wall) []pricebook.OptionEntry {
	if wall != types.WallNone {
		var variants []pricebook.OptionEntry
		for _, e := range entries {
			if e.Wall == wall {
				variants = append(variants, e)
			}
		}
		if len(variants) > 0 {
			return variants
		}
	}
	var agnostic []pricebook.OptionEntry
	for _, e := range entries {
		if e.Wall == types.WallNone {
			agnostic = append(agnostic, e)
		}
	}
	if len(agnostic) > 0 {
		return agnostic
	}
	return entries
}

func resolveEntry(entries []pricebook.OptionEntry, label string, optionLengthFt int) (decimal.Decimal, string, []string) {
	for _, e := range entries {
		if e.Flat {
			return e.Price, types.TraceFlat, nil
		}
	}
	lengths := make(map[int]decimal.Decimal, len(entries))
	for _, e := range entries {
		if !e.Flat {
			lengths[e.LengthFt] = e.Price
		}
	}
	return resolveLengths(lengths, label, optionLengthFt)
}

// resolveLengths applies exact-match then next-length-up, then the longest
// available column with a warning. Never next-length-down, never a failure.
func resolveLengths(byLength map[int]decimal.Decimal, label string, optionLengthFt int) (decimal.Decimal, string, []string) {
	if len(byLength) == 0 {
		return decimal.Zero, types.TraceNoFallbackExceedsTable,
			[]string{fmt.Sprintf("No %s table available; nothing charged.", label)}
	}
	if price, ok := byLength[optionLengthFt]; ok {
		return price, fmt.Sprintf("%s: length %d", types.TraceExactMatch, optionLengthFt), nil
	}

	bestUp := 0
	longest := 0
	for l := range byLength {
		if l >= optionLengthFt && (bestUp == 0 || l < bestUp) {
			bestUp = l
		}
		if l > longest {
			longest = l
		}
	}

	if bestUp > 0 {
		return byLength[bestUp],
			fmt.Sprintf("%s: length %d priced at %d", types.TraceNextSizeUp, optionLengthFt, bestUp),
			[]string{fmt.Sprintf("Per manufacturer rules, %s was priced at the next length up: %d ft.", label, bestUp)}
	}

	return byLength[longest],
		fmt.Sprintf("%s: length %d priced at longest column %d", types.TraceNoFallbackExceedsTable, optionLengthFt, longest),
		[]string{fmt.Sprintf("No %s column reaches %d ft; priced at the longest available column (%d ft).", label, optionLengthFt, longest)}
}

func toLengthPrices(entries []pricebook.LegHeightEntry) map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal, len(entries))
	for _, e := range entries {
		out[e.LengthFt] = e.Price
	}
	return out
}

func structural(entries []pricebook.OptionEntry) bool {
	for _, e := range entries {
		if e.Structural {
			return true
		}
	}
	return false
}

func hasWallVariants(entries []pricebook.OptionEntry) bool {
	for _, e := range entries {
		if e.Wall != types.WallNone {
			return true
		}
	}
	return false
}

// describe renders an option code as a customer-facing label
func describe(code string, wall types.Wall) string {
	words := strings.Split(strings.ToLower(strings.ReplaceAll(code, "_", " ")), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	label := strings.Join(words, " ")
	if wall != types.WallNone && wall != "" {
		return fmt.Sprintf("%s (%s)", label, wall)
	}
	return label
}
