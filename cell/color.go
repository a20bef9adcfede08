package cell

import "fmt"

// Color is a compact color representation shared by foreground, background
// and underline colors. The low bits hold either a palette index (0-255)
// or, when ColorIsRGB is set, a packed 24-bit RGB triplet. This layout is
// grounded on the tcell-derived Color type the teacher vendors in
// terminal/color.go, trimmed to the subset spec.md §4.5's SGR repertoire
// (16-color, 256-color, 24-bit RGB) actually needs.
type Color uint32

const (
	// ColorDefault leaves the color unchanged (the zero value).
	ColorDefault Color = 0
	// ColorValid marks the value as set rather than "unspecified".
	ColorValid Color = 1 << 24
	// ColorIsRGB marks the low 24 bits as a packed RGB triplet rather
	// than a palette index.
	ColorIsRGB Color = 1 << 25
)

// PaletteColor builds a color referencing palette slot index (0-255 for
// standard/bright ANSI colors, 0-255 again for the 256-color cube — the
// palette itself resolves the final RGB, see terminal.Palette).
func PaletteColor(index int) Color {
	return Color(index&0xff) | ColorValid
}

// RGBColor builds a 24-bit true color from 0-255 components.
func RGBColor(r, g, b int) Color {
	v := (r&0xff)<<16 | (g&0xff)<<8 | (b & 0xff)
	return Color(v) | ColorValid | ColorIsRGB
}

// Valid reports whether the color has been explicitly set.
func (c Color) Valid() bool { return c&ColorValid != 0 }

// IsRGB reports whether the color is a direct RGB triplet rather than a
// palette index.
func (c Color) IsRGB() bool { return c&(ColorValid|ColorIsRGB) == (ColorValid | ColorIsRGB) }

// Index returns the palette index, or -1 if the color is RGB or unset.
func (c Color) Index() int {
	if !c.Valid() || c.IsRGB() {
		return -1
	}
	return int(c & 0xff)
}

// RGB returns the packed RGB components, or -1,-1,-1 if c is not an RGB
// color (unset or a palette index).
func (c Color) RGB() (r, g, b int) {
	if !c.IsRGB() {
		return -1, -1, -1
	}
	v := int(c & 0xffffff)
	return (v >> 16) & 0xff, (v >> 8) & 0xff, v & 0xff
}

func (c Color) String() string {
	if !c.Valid() {
		return "default"
	}
	if c.IsRGB() {
		r, g, b := c.RGB()
		return fmt.Sprintf("rgb:%02x/%02x/%02x", r, g, b)
	}
	return fmt.Sprintf("palette:%d", c.Index())
}
