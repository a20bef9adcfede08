package screen

import "github.com/christianparpart/libterminal/cell"

// emptySub mirrors vtsequence's empty-sub-parameter sentinel (0xffff); an
// empty colon field decodes to 0 for color/underline-style purposes.
const emptySub = 0xffff

func subVal(v uint16) int {
	if v == emptySub {
		return 0
	}
	return int(v)
}

// ApplySGR applies one SGR parameter (already split into its own
// sub-parameter list by vtsequence.decodeParams) to the screen's active
// attributes. Grounded on the renditions-toggle switch in the teacher's
// handler.go SGR case, extended with the underline-substyle and 24-bit
// color forms spec.md §4.5 requires.
func (s *Screen) ApplySGR(code uint16, sub []uint16) {
	if !ApplySGRAttr(&s.attrs, code, sub) {
		s.logUnsupported("SGR")
	}
}

// ApplySGRAttr applies one SGR parameter directly to an arbitrary
// GraphicsAttributes, independent of any Screen's own cursor attributes.
// Factored out of ApplySGR so DECCARA (which rewrites already-placed
// cells' attributes in a rectangle rather than the cursor's pending
// attributes) can reuse the same rendition table. Reports whether code
// was recognized.
func ApplySGRAttr(a *cell.GraphicsAttributes, code uint16, sub []uint16) bool {
	switch code {
	case 0:
		a.Reset()
	case 1:
		a.Set(cell.Bold, true)
	case 2:
		a.Set(cell.Faint, true)
	case 3:
		a.Set(cell.Italic, true)
	case 4:
		a.Underline = decodeUnderlineStyle(sub)
	case 5:
		a.Set(cell.Blink, true)
	case 6:
		a.Set(cell.RapidBlink, true)
	case 7:
		a.Set(cell.Inverse, true)
	case 8:
		a.Set(cell.Invisible, true)
	case 9:
		a.Set(cell.CrossedOut, true)
	case 21:
		a.Underline = cell.UnderlineDouble
	case 22:
		a.Set(cell.Bold, false)
		a.Set(cell.Faint, false)
	case 23:
		a.Set(cell.Italic, false)
	case 24:
		a.Underline = cell.UnderlineNone
	case 25:
		a.Set(cell.Blink, false)
		a.Set(cell.RapidBlink, false)
	case 27:
		a.Set(cell.Inverse, false)
	case 28:
		a.Set(cell.Invisible, false)
	case 29:
		a.Set(cell.CrossedOut, false)
	case 30, 31, 32, 33, 34, 35, 36, 37:
		a.Foreground = cell.PaletteColor(int(code - 30))
	case 38:
		a.Foreground = decodeExtendedColor(sub)
	case 39:
		a.Foreground = cell.ColorDefault
	case 40, 41, 42, 43, 44, 45, 46, 47:
		a.Background = cell.PaletteColor(int(code - 40))
	case 48:
		a.Background = decodeExtendedColor(sub)
	case 49:
		a.Background = cell.ColorDefault
	case 51:
		a.Set(cell.Framed, true)
	case 53:
		a.Set(cell.Overline, true)
	case 54:
		a.Set(cell.Framed, false)
	case 55:
		a.Set(cell.Overline, false)
	case 58:
		a.UnderlineColor = decodeExtendedColor(sub)
	case 59:
		a.UnderlineColor = cell.ColorDefault
	case 90, 91, 92, 93, 94, 95, 96, 97:
		a.Foreground = cell.PaletteColor(int(code-90) + 8)
	case 100, 101, 102, 103, 104, 105, 106, 107:
		a.Background = cell.PaletteColor(int(code-100) + 8)
	default:
		return false
	}
	return true
}

func decodeUnderlineStyle(sub []uint16) cell.UnderlineStyle {
	if len(sub) == 0 {
		return cell.UnderlineSingle
	}
	switch subVal(sub[0]) {
	case 0:
		return cell.UnderlineNone
	case 1:
		return cell.UnderlineSingle
	case 2:
		return cell.UnderlineDouble
	case 3:
		return cell.UnderlineCurly
	case 4:
		return cell.UnderlineDotted
	case 5:
		return cell.UnderlineDashed
	default:
		return cell.UnderlineSingle
	}
}

// decodeExtendedColor handles the sub-parameter forms of 38/48/58:
// `5;n`/`5:n` (256-color palette) and `2;r;g;b`/`2::r:g:b`/`2:r:g:b`
// (24-bit RGB, with an optional empty colorspace-id field).
func decodeExtendedColor(sub []uint16) cell.Color {
	if len(sub) == 0 {
		return cell.ColorDefault
	}
	switch sub[0] {
	case 5:
		if len(sub) >= 2 {
			return cell.PaletteColor(subVal(sub[1]))
		}
	case 2:
		// sub may be [2, r, g, b] or [2, cs, r, g, b] (colon form with an
		// explicit, possibly-empty colorspace id in position 1).
		vals := sub[1:]
		if len(vals) == 4 {
			vals = vals[1:] // drop colorspace-id field
		}
		if len(vals) >= 3 {
			return cell.RGBColor(subVal(vals[0]), subVal(vals[1]), subVal(vals[2]))
		}
	}
	return cell.ColorDefault
}
