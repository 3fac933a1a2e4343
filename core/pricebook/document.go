// Package pricebook - Normalized document ingestion
// The normalization collaborator hands the engine a flat, structured document.
// Malformed documents are rejected whole; there is no partial recovery.
package pricebook

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"carport-quote/internal/errors"
)

// Document is the structured form a normalized price book arrives in
type Document struct {
	// RevisionID identifies the manufacturer revision (e.g. "R29")
	RevisionID string `json:"revision_id"`

	// RegionCode identifies the pricing region (e.g. "NW")
	RegionCode string `json:"region_code"`

	// EffectiveDate is the date this revision takes effect (YYYY-MM-DD)
	EffectiveDate string `json:"effective_date,omitempty"`

	// Notes are free-text source notes
	Notes string `json:"notes,omitempty"`

	// MaxSingleSpanFt overrides the documented maximum single-piece length
	MaxSingleSpanFt int `json:"max_single_span_ft,omitempty"`

	// AttachmentFee is the fixed fee per required attachment
	AttachmentFee decimal.Decimal `json:"attachment_fee,omitempty"`

	// DeclaredOptions lists option codes this region declares; each must
	// have at least one priced row
	DeclaredOptions []string `json:"declared_options,omitempty"`

	// BaseMatrix holds the base-price matrix rows
	BaseMatrix []BaseRow `json:"base_matrix"`

	// Options holds the option table rows
	Options []OptionRow `json:"options,omitempty"`

	// LegHeights holds the leg-height add-on rows
	LegHeights []LegHeightRow `json:"leg_heights,omitempty"`

	// ClosedEnds holds per-end enclosure prices keyed by leg height and width
	ClosedEnds []ClosedEndRow `json:"closed_ends,omitempty"`

	// ClosedSides holds per-side enclosure prices keyed by width
	ClosedSides []ClosedSideRow `json:"closed_sides,omitempty"`
}

// BaseRow is one flat base-matrix record
type BaseRow struct {
	Style    string          `json:"style"`
	Roof     string          `json:"roof"`
	WidthFt  int             `json:"width_ft"`
	LengthFt int             `json:"length_ft"`
	Price    decimal.Decimal `json:"price"`
}

// OptionRow is one flat option record
type OptionRow struct {
	Code       string          `json:"code"`
	LengthFt   int             `json:"length_ft,omitempty"`
	Price      decimal.Decimal `json:"price"`
	Placement  string          `json:"placement,omitempty"`
	Flat       bool            `json:"flat,omitempty"`
	Structural bool            `json:"structural,omitempty"`
}

// LegHeightRow is one flat leg-height record
type LegHeightRow struct {
	HeightFt int             `json:"height_ft"`
	LengthFt int             `json:"length_ft"`
	Price    decimal.Decimal `json:"price"`
}

// ClosedEndRow prices one fully enclosed end at a leg height and width
type ClosedEndRow struct {
	HeightFt int             `json:"height_ft"`
	WidthFt  int             `json:"width_ft"`
	Price    decimal.Decimal `json:"price"`
}

// ClosedSideRow prices one fully enclosed side at a width
type ClosedSideRow struct {
	WidthFt int             `json:"width_ft"`
	Price   decimal.Decimal `json:"price"`
}

// LoadJSON reads a normalized JSON document and constructs a PriceBook
func LoadJSON(r io.Reader) (*PriceBook, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.TypeMalformedPriceBook, "invalid price book JSON", err)
	}
	return New(&doc)
}

// LoadFile loads a price book from a .json or .hcl file
func LoadFile(path string) (*PriceBook, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(errors.TypeMalformedPriceBook, "cannot open price book", err).
				WithContext("path", path)
		}
		defer f.Close()
		book, err := LoadJSON(f)
		if err != nil {
			if e, ok := err.(*errors.Error); ok {
				return nil, e.WithContext("path", path)
			}
			return nil, err
		}
		return book, nil
	case ".hcl":
		return LoadHCL(path)
	default:
		return nil, errors.MalformedPriceBookf("unsupported price book format %q", filepath.Ext(path)).
			WithContext("path", path)
	}
}

// LoadDir loads every price book under dir, keyed by revision id
func LoadDir(dir string) (map[string]*PriceBook, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.TypeConfig, "cannot read price book directory", err).
			WithContext("dir", dir)
	}

	books := make(map[string]*PriceBook)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".hcl" {
			continue
		}
		book, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if _, exists := books[book.Revision()]; exists {
			// Conflicting revisions are surfaced, not resolved.
			return nil, errors.MalformedPriceBookf("revision %s loaded twice", book.Revision()).
				WithContext("dir", dir).
				WithContext("file", entry.Name())
		}
		books[book.Revision()] = book
	}
	return books, nil
}
