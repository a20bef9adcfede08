package cell

import (
	"fmt"
	"strings"
)

// AttrFlag is a single bit in the GraphicsAttributes flag bitset, grounded
// on the charAttribute bitset in the teacher's renditions.go, extended
// with the fuller SGR repertoire spec.md §4.5 requires (crossed-out,
// framed, overline, distinct underline styles, protected).
type AttrFlag uint32

const (
	Bold AttrFlag = 1 << iota
	Faint
	Italic
	Blink
	RapidBlink
	Inverse
	Invisible
	CrossedOut
	Framed
	Overline
	CharacterProtected // set by DECSCA, skipped by selective-erase (§4.5, §9)
)

// UnderlineStyle distinguishes the `4`, `4:1..5`, `21` SGR underline forms.
type UnderlineStyle uint8

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// GraphicsAttributes carries the full SGR state applied to a cell:
// foreground/background/underline color plus the flag bitset and
// underline style. This is the "GraphicsAttributes" spec.md §3 names and
// generalizes the teacher's Renditions struct (which only tracked 8
// boolean attributes and two colors) with underline color/style and the
// extra flags listed in spec.md §4.5.
type GraphicsAttributes struct {
	Foreground     Color
	Background     Color
	UnderlineColor Color
	Flags          AttrFlag
	Underline      UnderlineStyle
}

// Set turns flag on or off.
func (g *GraphicsAttributes) Set(flag AttrFlag, on bool) {
	if on {
		g.Flags |= flag
	} else {
		g.Flags &^= flag
	}
}

// Has reports whether flag is currently set.
func (g GraphicsAttributes) Has(flag AttrFlag) bool { return g.Flags&flag != 0 }

// Reset clears all attributes back to defaults, as SGR 0 does.
func (g *GraphicsAttributes) Reset() { *g = GraphicsAttributes{} }

// SGR renders the sequence of SGR parameters (without the leading CSI or
// trailing 'm') that reproduce these attributes, used by DECRQSS replies.
// Grounded on Renditions.SGR in the teacher, generalized to the underline
// style/color and additional flags SPEC_FULL adds.
func (g GraphicsAttributes) SGR() string {
	if g == (GraphicsAttributes{}) {
		return "0"
	}
	var b strings.Builder
	b.WriteString("0")
	writeIf := func(on bool, code string) {
		if on {
			b.WriteString(";")
			b.WriteString(code)
		}
	}
	writeIf(g.Has(Bold), "1")
	writeIf(g.Has(Faint), "2")
	writeIf(g.Has(Italic), "3")
	switch g.Underline {
	case UnderlineSingle:
		b.WriteString(";4")
	case UnderlineDouble:
		b.WriteString(";4:2")
	case UnderlineCurly:
		b.WriteString(";4:3")
	case UnderlineDotted:
		b.WriteString(";4:4")
	case UnderlineDashed:
		b.WriteString(";4:5")
	}
	writeIf(g.Has(Blink), "5")
	writeIf(g.Has(RapidBlink), "6")
	writeIf(g.Has(Inverse), "7")
	writeIf(g.Has(Invisible), "8")
	writeIf(g.Has(CrossedOut), "9")
	writeIf(g.Has(Framed), "51")
	writeIf(g.Has(Overline), "53")

	writeColor(&b, g.Foreground, 30, 90, 38)
	writeColor(&b, g.Background, 40, 100, 48)
	if g.UnderlineColor.Valid() {
		if g.UnderlineColor.IsRGB() {
			r, gg, bl := g.UnderlineColor.RGB()
			fmt.Fprintf(&b, ";58:2::%d:%d:%d", r, gg, bl)
		} else {
			fmt.Fprintf(&b, ";58:5:%d", g.UnderlineColor.Index())
		}
	}
	return b.String()
}

func writeColor(b *strings.Builder, c Color, base, brightBase, extBase int) {
	if !c.Valid() {
		return
	}
	if c.IsRGB() {
		r, g, bl := c.RGB()
		fmt.Fprintf(b, ";%d:2::%d:%d:%d", extBase, r, g, bl)
		return
	}
	idx := c.Index()
	switch {
	case idx < 8:
		fmt.Fprintf(b, ";%d", base+idx)
	case idx < 16:
		fmt.Fprintf(b, ";%d", brightBase+idx-8)
	default:
		fmt.Fprintf(b, ";%d:5:%d", extBase, idx)
	}
}
