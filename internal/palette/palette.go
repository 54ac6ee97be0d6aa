// Package palette holds the fixed color lists the composer draws from.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"
	"strconv"
	"strings"
)

// ErrEmptyPalette is returned when a palette has no colors.
var ErrEmptyPalette = errors.New("palette has no colors")

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

var (
	White = Color{R: 0xff, G: 0xff, B: 0xff}
	Black = Color{}
)

// ParseColor parses a "#rrggbb" string.
func ParseColor(value string) (Color, error) {
	value = strings.TrimSpace(value)
	if len(value) != 7 || value[0] != '#' {
		return Color{}, fmt.Errorf("color %q: expected #rrggbb", value)
	}
	n, err := strconv.ParseUint(value[1:], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", value, err)
	}
	return Color{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, nil
}

// MustColor is ParseColor for compile-time constants.
func MustColor(value string) Color {
	c, err := ParseColor(value)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the lowercase "#rrggbb" form.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// NRGBA returns the color with the given opacity in [0, 1].
func (c Color) NRGBA(opacity float64) color.NRGBA {
	switch {
	case opacity < 0:
		opacity = 0
	case opacity > 1:
		opacity = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(opacity*255 + 0.5)}
}

// Palette is a named, non-empty, ordered list of colors.
type Palette struct {
	Name   string
	Colors []Color
}

// New builds a palette from hex strings.
func New(name string, hex ...string) (Palette, error) {
	if len(hex) == 0 {
		return Palette{}, fmt.Errorf("%s: %w", name, ErrEmptyPalette)
	}
	colors := make([]Color, 0, len(hex))
	for _, h := range hex {
		c, err := ParseColor(h)
		if err != nil {
			return Palette{}, fmt.Errorf("%s: %w", name, err)
		}
		colors = append(colors, c)
	}
	return Palette{Name: name, Colors: colors}, nil
}

func mustNew(name string, hex ...string) Palette {
	p, err := New(name, hex...)
	if err != nil {
		panic(err)
	}
	return p
}

// Len reports the number of colors.
func (p Palette) Len() int { return len(p.Colors) }

// Validate reports ErrEmptyPalette for a zero-length palette.
func (p Palette) Validate() error {
	if len(p.Colors) == 0 {
		return fmt.Errorf("%s: %w", p.Name, ErrEmptyPalette)
	}
	return nil
}

// At returns the color at index i, wrapping around the palette length.
func (p Palette) At(i int) Color {
	n := len(p.Colors)
	i %= n
	if i < 0 {
		i += n
	}
	return p.Colors[i]
}

// Pick returns a uniformly random color.
func (p Palette) Pick(rng *rand.Rand) Color {
	return p.Colors[rng.Intn(len(p.Colors))]
}

// Kurzgesagt is the bright accent palette used for particles and decorations.
func Kurzgesagt() Palette {
	return mustNew("kurzgesagt",
		"#FF9F1C", "#FFBF69", "#CBF3F0", "#2EC4B6", "#3D5A80",
		"#E71D36", "#FF9F1C", "#2EB6AF", "#4259C3",
	)
}

// Ghibli is the soft palette used for the sky and mountains.
func Ghibli() Palette {
	return mustNew("ghibli",
		"#83BCFF", "#EAC7C7", "#A7E8BD", "#FCBC58", "#D6619E",
		"#7EB5A6", "#E8D5C4",
	)
}

// Resolve returns the override palette when one is configured, or the fallback.
func Resolve(name string, override []string, fallback Palette) (Palette, error) {
	if len(override) == 0 {
		return fallback, nil
	}
	return New(name, override...)
}
