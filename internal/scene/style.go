package scene

import "hanzireel/internal/palette"

// StrokeUnit converts Style.StrokeWidth into scene units.
const StrokeUnit = 0.01

// Style controls how a shape is filled and outlined. A zero StrokeWidth
// disables the outline.
type Style struct {
	Fill          palette.Color
	FillOpacity   float64
	Stroke        palette.Color
	StrokeWidth   float64
	StrokeOpacity float64
}

// Filled returns a style with only a fill.
func Filled(c palette.Color, opacity float64) Style {
	return Style{Fill: c, FillOpacity: opacity}
}

// WithStroke returns a copy of s with an opaque outline.
func (s Style) WithStroke(c palette.Color, width float64) Style {
	s.Stroke = c
	s.StrokeWidth = width
	s.StrokeOpacity = 1
	return s
}
