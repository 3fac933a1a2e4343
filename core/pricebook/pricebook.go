// Package pricebook - Immutable manufacturer price tables
// A PriceBook is constructed once from a normalized document, validated up
// front, and read-only for the lifetime of every quote computed against it.
// Switching revisions means substituting which PriceBook a quote uses; a book
// is never patched in place.
package pricebook

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"carport-quote/core/types"
	"carport-quote/internal/errors"
)

// DefaultMaxSingleSpanFt is the manufacturer's documented maximum
// single-piece length, used when a document does not declare its own.
const DefaultMaxSingleSpanFt = 21

// BaseEntry is one cell of a base-price matrix
type BaseEntry struct {
	// Style is the building style
	Style types.Style `json:"style"`

	// Roof is the roof orientation
	Roof types.RoofOrientation `json:"roof"`

	// WidthFt is the cell width in feet
	WidthFt int `json:"width_ft"`

	// LengthFt is the cell length in feet
	LengthFt int `json:"length_ft"`

	// Price is the base price for this cell
	Price decimal.Decimal `json:"price"`
}

// OptionEntry is one priced row of an option table
type OptionEntry struct {
	// Code is the option code
	Code string `json:"code"`

	// LengthFt is the length column this row prices (0 for flat rows)
	LengthFt int `json:"length_ft,omitempty"`

	// Wall is a per-wall price variant; WallNone applies to every wall
	Wall types.Wall `json:"wall,omitempty"`

	// Price is the unit price
	Price decimal.Decimal `json:"price"`

	// Flat marks a fee charged once regardless of dimensions
	Flat bool `json:"flat,omitempty"`

	// Structural marks an option merged into the base structure's line item
	Structural bool `json:"structural,omitempty"`
}

// ClosedEndEntry prices one fully enclosed end for one width column
type ClosedEndEntry struct {
	// HeightFt is the leg height row
	HeightFt int `json:"height_ft"`

	// WidthFt is the width column
	WidthFt int `json:"width_ft"`

	// Price is the per-end price
	Price decimal.Decimal `json:"price"`
}

// ClosedSideEntry prices one fully enclosed side for one width
type ClosedSideEntry struct {
	// WidthFt is the width column
	WidthFt int `json:"width_ft"`

	// Price is the per-side price
	Price decimal.Decimal `json:"price"`
}

// LegHeightEntry prices extra leg height for one length column
type LegHeightEntry struct {
	// HeightFt is the leg height in feet
	HeightFt int `json:"height_ft"`

	// LengthFt is the length column
	LengthFt int `json:"length_ft"`

	// Price is the add-on price
	Price decimal.Decimal `json:"price"`
}

type baseKey struct {
	style types.Style
	roof  types.RoofOrientation
	w, l  int
}

type matrixKey struct {
	style types.Style
	roof  types.RoofOrientation
}

// PriceBook holds all pricing tables for one manufacturer revision/region.
// All accessors are safe for concurrent use; nothing mutates after New returns.
type PriceBook struct {
	revision        string
	region          string
	effectiveDate   time.Time
	notes           string
	maxSingleSpanFt int
	attachmentFee   decimal.Decimal

	base        map[baseKey]decimal.Decimal
	matrices    map[matrixKey][]BaseEntry
	styles      []types.Style
	options     map[string][]OptionEntry
	optionCodes []string
	legHeights  map[int][]LegHeightEntry
	heights     []int

	closedEnds       map[int][]ClosedEndEntry
	closedEndHeights []int
	closedSides      []ClosedSideEntry
}

// New validates a normalized document and constructs an immutable PriceBook
func New(doc *Document) (*PriceBook, error) {
	if doc == nil {
		return nil, errors.MalformedPriceBook("nil document")
	}
	if strings.TrimSpace(doc.RevisionID) == "" {
		return nil, errors.MalformedPriceBook("missing revision_id")
	}
	if strings.TrimSpace(doc.RegionCode) == "" {
		return nil, errors.MalformedPriceBook("missing region_code").
			WithContext("revision", doc.RevisionID)
	}

	var effective time.Time
	if strings.TrimSpace(doc.EffectiveDate) != "" {
		t, err := time.Parse("2006-01-02", doc.EffectiveDate)
		if err != nil {
			return nil, errors.Wrap(errors.TypeMalformedPriceBook, "invalid effective_date", err).
				WithContext("revision", doc.RevisionID).
				WithContext("effective_date", doc.EffectiveDate)
		}
		effective = t
	}

	span := doc.MaxSingleSpanFt
	if span <= 0 {
		span = DefaultMaxSingleSpanFt
	}

	book := &PriceBook{
		revision:        strings.TrimSpace(doc.RevisionID),
		region:          strings.TrimSpace(doc.RegionCode),
		effectiveDate:   effective,
		notes:           doc.Notes,
		maxSingleSpanFt: span,
		attachmentFee:   doc.AttachmentFee,
		base:            make(map[baseKey]decimal.Decimal),
		matrices:        make(map[matrixKey][]BaseEntry),
		options:         make(map[string][]OptionEntry),
		legHeights:      make(map[int][]LegHeightEntry),
		closedEnds:      make(map[int][]ClosedEndEntry),
	}

	if err := book.loadBase(doc); err != nil {
		return nil, err
	}
	if err := book.loadOptions(doc); err != nil {
		return nil, err
	}
	if err := book.loadLegHeights(doc); err != nil {
		return nil, err
	}
	if err := book.loadClosedWalls(doc); err != nil {
		return nil, err
	}

	book.freeze()
	return book, nil
}

func (b *PriceBook) loadBase(doc *Document) error {
	for _, row := range doc.BaseMatrix {
		style, roof, err := parseStyleRoof(row.Style, row.Roof)
		if err != nil {
			return err.WithContext("revision", b.revision)
		}
		if row.WidthFt <= 0 || row.LengthFt <= 0 {
			return errors.MalformedPriceBookf("base matrix row has non-positive size %dx%d", row.WidthFt, row.LengthFt).
				WithContext("revision", b.revision).
				WithContext("style", row.Style)
		}
		if row.Price.IsNegative() {
			return errors.MalformedPriceBookf("base matrix row %s/%s %dx%d has negative price", row.Style, row.Roof, row.WidthFt, row.LengthFt).
				WithContext("revision", b.revision)
		}
		key := baseKey{style: style, roof: roof, w: row.WidthFt, l: row.LengthFt}
		if _, exists := b.base[key]; exists {
			return errors.MalformedPriceBookf("duplicate base matrix entry %s/%s %dx%d", style, roof, row.WidthFt, row.LengthFt).
				WithContext("revision", b.revision)
		}
		b.base[key] = row.Price
		mk := matrixKey{style: style, roof: roof}
		b.matrices[mk] = append(b.matrices[mk], BaseEntry{
			Style:    style,
			Roof:     roof,
			WidthFt:  row.WidthFt,
			LengthFt: row.LengthFt,
			Price:    row.Price,
		})
	}
	return nil
}

func (b *PriceBook) loadOptions(doc *Document) error {
	type optionKey struct {
		code string
		wall types.Wall
		l    int
		flat bool
	}
	seen := make(map[optionKey]bool)

	for _, row := range doc.Options {
		code := NormalizeCode(row.Code)
		if code == "" {
			return errors.MalformedPriceBook("option row with empty code").
				WithContext("revision", b.revision)
		}
		wall := types.WallNone
		if strings.TrimSpace(row.Placement) != "" {
			wall = types.Wall(strings.ToUpper(strings.TrimSpace(row.Placement)))
			if !wall.Valid() && wall != types.WallNone {
				return errors.MalformedPriceBookf("option %s has invalid placement %q", code, row.Placement).
					WithContext("revision", b.revision)
			}
		}
		if !row.Flat && row.LengthFt <= 0 {
			return errors.MalformedPriceBookf("option %s row is neither flat nor length-indexed", code).
				WithContext("revision", b.revision)
		}
		if row.Price.IsNegative() {
			return errors.MalformedPriceBookf("option %s has negative price", code).
				WithContext("revision", b.revision)
		}
		lengthFt := row.LengthFt
		if row.Flat {
			lengthFt = 0
		}
		key := optionKey{code: code, wall: wall, l: lengthFt, flat: row.Flat}
		if seen[key] {
			return errors.MalformedPriceBookf("duplicate option row %s (length %d, wall %s)", code, lengthFt, wall).
				WithContext("revision", b.revision)
		}
		seen[key] = true
		b.options[code] = append(b.options[code], OptionEntry{
			Code:       code,
			LengthFt:   lengthFt,
			Wall:       wall,
			Price:      row.Price,
			Flat:       row.Flat,
			Structural: row.Structural,
		})
	}

	// Every code the region declares must carry at least one priced row.
	for _, declared := range doc.DeclaredOptions {
		code := NormalizeCode(declared)
		if code == "" {
			continue
		}
		if len(b.options[code]) == 0 {
			return errors.MalformedPriceBookf("declared option %s has no price in region %s", code, b.region).
				WithContext("revision", b.revision).
				WithContext("option_code", code)
		}
	}
	return nil
}

func (b *PriceBook) loadLegHeights(doc *Document) error {
	type legKey struct{ h, l int }
	seen := make(map[legKey]bool)

	for _, row := range doc.LegHeights {
		if row.HeightFt <= 0 || row.LengthFt <= 0 {
			return errors.MalformedPriceBookf("leg height row has non-positive key %d/%d", row.HeightFt, row.LengthFt).
				WithContext("revision", b.revision)
		}
		if row.Price.IsNegative() {
			return errors.MalformedPriceBookf("leg height %d ft has negative price", row.HeightFt).
				WithContext("revision", b.revision)
		}
		key := legKey{h: row.HeightFt, l: row.LengthFt}
		if seen[key] {
			return errors.MalformedPriceBookf("duplicate leg height entry %d ft / %d ft", row.HeightFt, row.LengthFt).
				WithContext("revision", b.revision)
		}
		seen[key] = true
		b.legHeights[row.HeightFt] = append(b.legHeights[row.HeightFt], LegHeightEntry{
			HeightFt: row.HeightFt,
			LengthFt: row.LengthFt,
			Price:    row.Price,
		})
	}
	return nil
}

func (b *PriceBook) loadClosedWalls(doc *Document) error {
	type endKey struct{ h, w int }
	endSeen := make(map[endKey]bool)

	for _, row := range doc.ClosedEnds {
		if row.HeightFt <= 0 || row.WidthFt <= 0 {
			return errors.MalformedPriceBookf("closed end row has non-positive key %d/%d", row.HeightFt, row.WidthFt).
				WithContext("revision", b.revision)
		}
		if row.Price.IsNegative() {
			return errors.MalformedPriceBookf("closed end at %d ft / %d ft has negative price", row.HeightFt, row.WidthFt).
				WithContext("revision", b.revision)
		}
		key := endKey{h: row.HeightFt, w: row.WidthFt}
		if endSeen[key] {
			return errors.MalformedPriceBookf("duplicate closed end entry %d ft / %d ft", row.HeightFt, row.WidthFt).
				WithContext("revision", b.revision)
		}
		endSeen[key] = true
		b.closedEnds[row.HeightFt] = append(b.closedEnds[row.HeightFt], ClosedEndEntry{
			HeightFt: row.HeightFt,
			WidthFt:  row.WidthFt,
			Price:    row.Price,
		})
	}

	sideSeen := make(map[int]bool)
	for _, row := range doc.ClosedSides {
		if row.WidthFt <= 0 {
			return errors.MalformedPriceBookf("closed side row has non-positive width %d", row.WidthFt).
				WithContext("revision", b.revision)
		}
		if row.Price.IsNegative() {
			return errors.MalformedPriceBookf("closed side at %d ft has negative price", row.WidthFt).
				WithContext("revision", b.revision)
		}
		if sideSeen[row.WidthFt] {
			return errors.MalformedPriceBookf("duplicate closed side entry %d ft", row.WidthFt).
				WithContext("revision", b.revision)
		}
		sideSeen[row.WidthFt] = true
		b.closedSides = append(b.closedSides, ClosedSideEntry{
			WidthFt: row.WidthFt,
			Price:   row.Price,
		})
	}
	return nil
}

// freeze sorts every table into its canonical iteration order
func (b *PriceBook) freeze() {
	styleSeen := make(map[types.Style]bool)
	for mk, entries := range b.matrices {
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].WidthFt != entries[j].WidthFt {
				return entries[i].WidthFt < entries[j].WidthFt
			}
			return entries[i].LengthFt < entries[j].LengthFt
		})
		b.matrices[mk] = entries
		if !styleSeen[mk.style] {
			styleSeen[mk.style] = true
			b.styles = append(b.styles, mk.style)
		}
	}
	sort.Slice(b.styles, func(i, j int) bool { return b.styles[i] < b.styles[j] })

	for code, entries := range b.options {
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Wall != entries[j].Wall {
				return entries[i].Wall < entries[j].Wall
			}
			return entries[i].LengthFt < entries[j].LengthFt
		})
		b.options[code] = entries
		b.optionCodes = append(b.optionCodes, code)
	}
	sort.Strings(b.optionCodes)

	for h, entries := range b.legHeights {
		sort.Slice(entries, func(i, j int) bool { return entries[i].LengthFt < entries[j].LengthFt })
		b.legHeights[h] = entries
		b.heights = append(b.heights, h)
	}
	sort.Ints(b.heights)

	for h, entries := range b.closedEnds {
		sort.Slice(entries, func(i, j int) bool { return entries[i].WidthFt < entries[j].WidthFt })
		b.closedEnds[h] = entries
		b.closedEndHeights = append(b.closedEndHeights, h)
	}
	sort.Ints(b.closedEndHeights)
	sort.Slice(b.closedSides, func(i, j int) bool { return b.closedSides[i].WidthFt < b.closedSides[j].WidthFt })
}

// NormalizeCode canonicalizes an option code for lookup
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Revision returns the revision id
func (b *PriceBook) Revision() string { return b.revision }

// Region returns the region code
func (b *PriceBook) Region() string { return b.region }

// EffectiveDate returns when this revision takes effect
func (b *PriceBook) EffectiveDate() time.Time { return b.effectiveDate }

// Notes returns the free-text source notes
func (b *PriceBook) Notes() string { return b.notes }

// MaxSingleSpanFt returns the maximum single-piece length for attachments
func (b *PriceBook) MaxSingleSpanFt() int { return b.maxSingleSpanFt }

// AttachmentFee returns the per-attachment fee
func (b *PriceBook) AttachmentFee() decimal.Decimal { return b.attachmentFee }

// BasePrice looks up an exact base matrix cell
func (b *PriceBook) BasePrice(style types.Style, roof types.RoofOrientation, widthFt, lengthFt int) (decimal.Decimal, bool) {
	price, ok := b.base[baseKey{style: style, roof: roof, w: widthFt, l: lengthFt}]
	return price, ok
}

// BaseEntries returns the matrix for one style/orientation, ordered by
// (width, length) ascending. The returned slice is a copy.
func (b *PriceBook) BaseEntries(style types.Style, roof types.RoofOrientation) []BaseEntry {
	entries := b.matrices[matrixKey{style: style, roof: roof}]
	return append([]BaseEntry(nil), entries...)
}

// Styles returns every style declared in this book, sorted
func (b *PriceBook) Styles() []types.Style {
	return append([]types.Style(nil), b.styles...)
}

// Roofs returns every roof orientation priced for a style, sorted
func (b *PriceBook) Roofs(style types.Style) []types.RoofOrientation {
	var roofs []types.RoofOrientation
	for mk := range b.matrices {
		if mk.style == style {
			roofs = append(roofs, mk.roof)
		}
	}
	sort.Slice(roofs, func(i, j int) bool { return roofs[i] < roofs[j] })
	return roofs
}

// SortedByRevision flattens a revision map into a slice ordered by revision id
func SortedByRevision(books map[string]*PriceBook) []*PriceBook {
	sorted := make([]*PriceBook, 0, len(books))
	for _, book := range books {
		sorted = append(sorted, book)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].revision < sorted[j].revision })
	return sorted
}

// HasOption reports whether the code has any priced row
func (b *PriceBook) HasOption(code string) bool {
	return len(b.options[NormalizeCode(code)]) > 0
}

// OptionEntries returns all rows for an option code, ordered by (wall, length).
// The returned slice is a copy.
func (b *PriceBook) OptionEntries(code string) []OptionEntry {
	entries := b.options[NormalizeCode(code)]
	return append([]OptionEntry(nil), entries...)
}

// OptionCodes returns every option code with at least one row, sorted
func (b *PriceBook) OptionCodes() []string {
	return append([]string(nil), b.optionCodes...)
}

// LegHeights returns every priced leg height, ascending
func (b *PriceBook) LegHeights() []int {
	return append([]int(nil), b.heights...)
}

// LegHeightEntries returns the length columns priced for one height,
// ordered by length ascending. The returned slice is a copy.
func (b *PriceBook) LegHeightEntries(heightFt int) []LegHeightEntry {
	entries := b.legHeights[heightFt]
	return append([]LegHeightEntry(nil), entries...)
}

// ClosedEndHeights returns every leg height with closed-end prices, ascending
func (b *PriceBook) ClosedEndHeights() []int {
	return append([]int(nil), b.closedEndHeights...)
}

// ClosedEndEntries returns the width columns priced for one closed-end
// height, ordered by width ascending. The returned slice is a copy.
func (b *PriceBook) ClosedEndEntries(heightFt int) []ClosedEndEntry {
	entries := b.closedEnds[heightFt]
	return append([]ClosedEndEntry(nil), entries...)
}

// ClosedSideEntries returns every closed-side price, ordered by width
// ascending. The returned slice is a copy.
func (b *PriceBook) ClosedSideEntries() []ClosedSideEntry {
	return append([]ClosedSideEntry(nil), b.closedSides...)
}

func parseStyleRoof(style, roof string) (types.Style, types.RoofOrientation, *errors.Error) {
	// Styles are an open set; revisions introduce new ones. Orientations are not.
	s := types.Style(strings.ToUpper(strings.TrimSpace(style)))
	if s == "" {
		return "", "", errors.MalformedPriceBook("base matrix row with empty style")
	}
	r := types.RoofOrientation(strings.ToUpper(strings.TrimSpace(roof)))
	switch r {
	case types.RoofHorizontal, types.RoofVertical:
	default:
		return "", "", errors.MalformedPriceBookf("unknown roof orientation %q", roof)
	}
	return s, r, nil
}
