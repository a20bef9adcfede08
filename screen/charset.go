package screen

// decSpecialGraphics maps the DEC Special Graphics character set (VT100
// line-drawing set, designated by ESC ( 0) onto Unicode box-drawing
// codepoints. Grounded on the teacher's charset table in
// terminal/base.go, which performs the same 0x5f-0x7e remap.
var decSpecialGraphics = map[rune]rune{
	'_': ' ', '`': '♦', 'a': '▒', 'b': '␉', 'c': '␌', 'd': '␍', 'e': '␊',
	'f': '°', 'g': '±', 'h': '␤', 'i': '␋', 'j': '┘', 'k': '┐', 'l': '┌',
	'm': '└', 'n': '┼', 'o': '⎺', 'p': '⎻', 'q': '─', 'r': '⎼', 's': '⎽',
	't': '├', 'u': '┤', 'v': '┴', 'w': '┬', 'x': '│', 'y': '≤', 'z': '≥',
	'{': 'π', '|': '≠', '}': '£', '~': '·',
}

// SCS designates set (0-3, i.e. G0-G3) to use charset cs.
func (s *Screen) SCS(set int, cs Charset) {
	if set < 0 || set > 3 {
		return
	}
	s.gset[set] = cs
}

// LS0/LS1 invoke G0/G1 into GL (Locking Shift).
func (s *Screen) LS0() { s.gl = 0 }
func (s *Screen) LS1() { s.gl = 1 }

// LS2/LS3 invoke G2/G3 into GL.
func (s *Screen) LS2() { s.gl = 2 }
func (s *Screen) LS3() { s.gl = 3 }

// singleShift holds a one-character-only GL override set by SS2/SS3.
func (s *Screen) SS2() { s.singleShift(2) }
func (s *Screen) SS3() { s.singleShift(3) }

func (s *Screen) singleShift(set int) {
	// A single shift affects only the very next printed codepoint; the
	// simplest correct implementation is a one-shot override consumed by
	// mapCharset, mirrored here as a small piece of state.
	s.pendingShift = set
}

// mapCharset applies the active charset (a pending single-shift, else GL)
// to r before it is written into a cell.
func (s *Screen) mapCharset(r rune) rune {
	set := s.gl
	if s.pendingShift != 0 {
		set = s.pendingShift
		s.pendingShift = 0
	}
	if s.gset[set] == CharsetDECSpecialGraphics {
		if mapped, ok := decSpecialGraphics[r]; ok {
			return mapped
		}
	}
	return r
}
