// Package pricebook - Ingestion tests for the JSON and HCL document forms
package pricebook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carport-quote/core/types"
	"carport-quote/internal/errors"
)

const validJSON = `{
  "revision_id": "R2-TEST",
  "region_code": "SE",
  "effective_date": "2024-06-01",
  "attachment_fee": 495,
  "declared_options": ["WINDOW_24X36"],
  "base_matrix": [
    {"style": "REGULAR", "roof": "HORIZONTAL", "width_ft": 12, "length_ft": 21, "price": 2795},
    {"style": "REGULAR", "roof": "HORIZONTAL", "width_ft": 12, "length_ft": 26, "price": 3195}
  ],
  "options": [
    {"code": "WINDOW_24X36", "price": 175, "flat": true}
  ],
  "leg_heights": [
    {"height_ft": 7, "length_ft": 21, "price": 110}
  ],
  "closed_ends": [
    {"height_ft": 6, "width_ft": 12, "price": 330}
  ],
  "closed_sides": [
    {"width_ft": 12, "price": 250}
  ]
}`

// TestLoadJSON proves a well formed document constructs a usable book
func TestLoadJSON(t *testing.T) {
	book, err := LoadJSON(strings.NewReader(validJSON))
	require.NoError(t, err)

	assert.Equal(t, "R2-TEST", book.Revision())
	assert.Equal(t, "SE", book.Region())

	price, ok := book.BasePrice(types.StyleRegular, types.RoofHorizontal, 12, 21)
	require.True(t, ok)
	assert.Equal(t, "2795", price.String())
	assert.True(t, book.HasOption("WINDOW_24X36"))
	assert.Equal(t, []int{6}, book.ClosedEndHeights())
	require.Len(t, book.ClosedSideEntries(), 1)
}

// TestLoadJSONRejectsUnknownFields proves typos reject the document instead of
// silently dropping data
func TestLoadJSONRejectsUnknownFields(t *testing.T) {
	doc := strings.Replace(validJSON, `"attachment_fee"`, `"atachment_fee"`, 1)

	_, err := LoadJSON(strings.NewReader(doc))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeMalformedPriceBook))
}

// TestLoadJSONRejectsGarbage proves non-JSON input maps to the malformed error type
func TestLoadJSONRejectsGarbage(t *testing.T) {
	_, err := LoadJSON(strings.NewReader("width: yes"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeMalformedPriceBook))
}

// TestLoadFileDispatch proves extension-based format dispatch
func TestLoadFileDispatch(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "r2.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(validJSON), 0644))
	book, err := LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "R2-TEST", book.Revision())

	_, err = LoadFile(filepath.Join(dir, "r2.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported price book format")
}

const validHCL = `
revision_id    = "R3-HCL"
region_code    = "SW"
effective_date = "2024-07-01"
attachment_fee = 495

base "REGULAR" "HORIZONTAL" {
  width_ft  = 12
  length_ft = 21
  price     = 2695
}

base "REGULAR" "HORIZONTAL" {
  width_ft  = 12
  length_ft = 26
  price     = 3095
}

option "WINDOW_24X36" {
  price = 175
  flat  = true
}

leg_height {
  height_ft = 7
  length_ft = 21
  price     = 110
}

closed_end {
  height_ft = 6
  width_ft  = 12
  price     = 330
}

closed_side {
  width_ft = 12
  price    = 250
}
`

// TestLoadHCL proves the hand-authored HCL form reaches the same validation
func TestLoadHCL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "r3.hcl")
	require.NoError(t, os.WriteFile(path, []byte(validHCL), 0644))

	book, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "R3-HCL", book.Revision())

	price, ok := book.BasePrice(types.StyleRegular, types.RoofHorizontal, 12, 21)
	require.True(t, ok)
	assert.Equal(t, "2695", price.String())
	assert.Equal(t, []int{6}, book.ClosedEndHeights())
	require.Len(t, book.ClosedSideEntries(), 1)
}

// TestLoadHCLRejectsDuplicates proves HCL input runs the same structural checks
func TestLoadHCLRejectsDuplicates(t *testing.T) {
	dup := validHCL + `
base "REGULAR" "HORIZONTAL" {
  width_ft  = 12
  length_ft = 21
  price     = 9999
}
`
	dir := t.TempDir()
	path := filepath.Join(dir, "dup.hcl")
	require.NoError(t, os.WriteFile(path, []byte(dup), 0644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeMalformedPriceBook))
}

// TestLoadDirRejectsDuplicateRevisions proves conflicting revisions surface
// instead of being resolved
func TestLoadDirRejectsDuplicateRevisions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(validJSON), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(validJSON), 0644))

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loaded twice")
}

// TestLoadDirKeysByRevision proves books are addressed by revision id
func TestLoadDirKeysByRevision(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "se.json"), []byte(validJSON), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	books, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, books, 1)
	_, ok := books["R2-TEST"]
	assert.True(t, ok)
}
