package screen

import (
	"github.com/christianparpart/libterminal/cell"
	"github.com/christianparpart/libterminal/coord"
)

// eraseRange blanks columns [from,to] (inclusive) of physical row line
// with the current attributes; when selective is true, cells carrying
// CharacterProtected are left untouched (DECSED/DECSEL, spec.md §4.5).
func (s *Screen) eraseRange(line coord.LineOffset, from, to int, selective bool) {
	l := s.Grid.LineAt(line)
	if l == nil {
		return
	}
	if !selective && from == 0 && to >= int(s.Grid.PageSize().Columns)-1 {
		l.Reset(s.links, l.Flags(), s.attrs)
		return
	}
	cells := l.Inflate()
	for c := from; c <= to && c < len(cells); c++ {
		if c < 0 {
			continue
		}
		if selective && cells[c].Attrs.Has(cell.CharacterProtected) {
			continue
		}
		s.releaseLink(cells[c].Link)
		cells[c] = cell.Blank()
		cells[c].Attrs = s.attrs
	}
}

func (s *Screen) eraseFullLine(line coord.LineOffset, selective bool) {
	s.eraseRange(line, 0, int(s.Grid.PageSize().Columns)-1, selective)
}

// ED implements Erase in Display: 0=below, 1=above, 2=all, 3=all+history.
func (s *Screen) ED(mode int, selective bool) {
	rows := int(s.Grid.PageSize().Lines)
	switch mode {
	case 0:
		s.eraseRange(s.cursor.Line, int(s.cursor.Column), int(s.Grid.PageSize().Columns)-1, selective)
		for y := int(s.cursor.Line) + 1; y < rows; y++ {
			s.eraseFullLine(coord.LineOffset(y), selective)
		}
	case 1:
		for y := 0; y < int(s.cursor.Line); y++ {
			s.eraseFullLine(coord.LineOffset(y), selective)
		}
		s.eraseRange(s.cursor.Line, 0, int(s.cursor.Column), selective)
	case 2:
		for y := 0; y < rows; y++ {
			s.eraseFullLine(coord.LineOffset(y), selective)
		}
	case 3:
		for y := 0; y < rows; y++ {
			s.eraseFullLine(coord.LineOffset(y), selective)
		}
		s.Grid.ClearHistory()
	default:
		s.logUnsupported("ED")
	}
}

// EL implements Erase in Line: 0=to right, 1=to left, 2=all.
func (s *Screen) EL(mode int, selective bool) {
	switch mode {
	case 0:
		s.eraseRange(s.cursor.Line, int(s.cursor.Column), int(s.Grid.PageSize().Columns)-1, selective)
	case 1:
		s.eraseRange(s.cursor.Line, 0, int(s.cursor.Column), selective)
	case 2:
		s.eraseFullLine(s.cursor.Line, selective)
	default:
		s.logUnsupported("EL")
	}
}

// ECH erases n characters starting at the cursor, without moving it.
func (s *Screen) ECH(n int) {
	if n < 1 {
		n = 1
	}
	limit := int(s.cursor.Column) + n - 1
	if limit > s.rightMarginOrPage() {
		limit = s.rightMarginOrPage()
	}
	s.eraseRange(s.cursor.Line, int(s.cursor.Column), limit, false)
}

// DECERA erases a rectangular area unconditionally (ignores protection).
func (s *Screen) DECERA(top, left, bottom, right int) {
	for y := top; y <= bottom; y++ {
		s.eraseRange(coord.LineOffset(y), left, right, false)
	}
}

// DECSERA erases a rectangular area, respecting CharacterProtected.
func (s *Screen) DECSERA(top, left, bottom, right int) {
	for y := top; y <= bottom; y++ {
		s.eraseRange(coord.LineOffset(y), left, right, true)
	}
}

// DECFRA fills a rectangular area with codepoint cp (must be in
// [32,126]∪[160,255] per spec.md §4.5; out-of-range values are clamped to
// space).
func (s *Screen) DECFRA(cp rune, top, left, bottom, right int) {
	if !(cp >= 32 && cp <= 126) && !(cp >= 160 && cp <= 255) {
		cp = ' '
	}
	for y := top; y <= bottom; y++ {
		l := s.Grid.LineAt(coord.LineOffset(y))
		if l == nil {
			continue
		}
		cells := l.Inflate()
		for x := left; x <= right && x < len(cells); x++ {
			if x < 0 {
				continue
			}
			cells[x] = cell.Cell{Width: 1, Attrs: s.attrs}
			cells[x].SetBase(cp, 1)
		}
	}
}
