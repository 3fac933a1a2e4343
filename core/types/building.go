// Package types - Building configuration types
package types

// Style represents a manufacturer building style
type Style string

const (
	StyleRegular Style = "REGULAR"
	StyleAFrame  Style = "A-FRAME"
)

// String returns the string representation
func (s Style) String() string {
	return string(s)
}

// RoofOrientation is the panel direction of the roof
type RoofOrientation string

const (
	RoofHorizontal RoofOrientation = "HORIZONTAL"
	RoofVertical   RoofOrientation = "VERTICAL"
)

// String returns the string representation
func (r RoofOrientation) String() string {
	return string(r)
}

// Wall identifies a wall of the building (facing the structure)
type Wall string

const (
	WallFront Wall = "FRONT"
	WallBack  Wall = "BACK"
	WallLeft  Wall = "LEFT"
	WallRight Wall = "RIGHT"

	// WallNone marks an option that is not wall-mounted
	WallNone Wall = "NONE"
)

// Valid reports whether the wall is one of the four physical walls
func (w Wall) Valid() bool {
	switch w {
	case WallFront, WallBack, WallLeft, WallRight:
		return true
	}
	return false
}

// LengthFt returns the physical length of this wall for a width x length footprint.
// Front and back walls run the width of the building; sides run its length.
func (w Wall) LengthFt(widthFt, lengthFt int) int {
	switch w {
	case WallFront, WallBack:
		return widthFt
	case WallLeft, WallRight:
		return lengthFt
	}
	return 0
}

// OptionSelection is one option requested on a quote
type OptionSelection struct {
	// Code is the manufacturer option code (e.g. "GROUND_CERTIFICATION")
	Code string `json:"code"`

	// Wall is where a wall-mounted option is placed (WallNone otherwise)
	Wall Wall `json:"wall,omitempty"`

	// OffsetFt is the distance along the wall from its left edge
	OffsetFt int `json:"offset_ft,omitempty"`
}

// LeanTo describes an attached lean-to section
type LeanTo struct {
	// WidthFt is the lean-to width
	WidthFt int `json:"width_ft"`

	// LengthFt is the lean-to length
	LengthFt int `json:"length_ft"`

	// Placement is the wall the lean-to attaches to
	Placement Wall `json:"placement,omitempty"`
}

// QuoteInput is a configuration request to be priced.
// It is constructed fresh per quote and never mutated after validation begins.
type QuoteInput struct {
	// Style is the building style
	Style Style `json:"style"`

	// Roof is the roof orientation
	Roof RoofOrientation `json:"roof"`

	// WidthFt is the requested width in feet
	WidthFt int `json:"width_ft"`

	// LengthFt is the requested nominal length in feet
	LengthFt int `json:"length_ft"`

	// HeightFt is the requested leg height in feet
	HeightFt int `json:"height_ft"`

	// ClosedEndCount is how many ends are fully enclosed (0-2)
	ClosedEndCount int `json:"closed_end_count,omitempty"`

	// ClosedSideCount is how many sides are fully enclosed (0-2)
	ClosedSideCount int `json:"closed_side_count,omitempty"`

	// Options are the selected options, in selection order
	Options []OptionSelection `json:"options,omitempty"`

	// LeanTo is an optional attached section
	LeanTo *LeanTo `json:"lean_to,omitempty"`
}
