package screen

import (
	"github.com/christianparpart/libterminal/coord"
	"github.com/christianparpart/libterminal/grid"
	"github.com/rivo/uniseg"
)

// canUseTrivialLine reports whether the fast bulk-text path applies:
// cursor at the left margin of an otherwise-empty line, plain USASCII, and
// no SGR change since the line started (spec.md §4.5's four conditions).
func (s *Screen) canUseTrivialLine() bool {
	if int(s.cursor.Column) != s.originColumn() {
		return false
	}
	if s.gset[s.gl] != CharsetUSASCII {
		return false
	}
	line := s.Grid.LineAt(s.cursor.Line)
	if line == nil || !line.IsTrivial() {
		return false
	}
	if line.TrimBlankRight() != 0 || line.CellAt(0).Attrs != s.attrs {
		return false
	}
	return true
}

// WriteText handles a contiguous run of bytes the parser's bulk-print
// fast path handed it: cellCount is len(text) precomputed by the caller
// since every byte in the run is known 7-bit printable, one cell wide.
func (s *Screen) WriteText(text string, cellCount int) {
	if len(text) == 0 {
		return
	}
	if s.wrapPending {
		s.performWrap()
	}
	if s.canUseTrivialLine() {
		avail := s.rightMargin - int(s.cursor.Column) + 1
		if cellCount <= avail {
			frag := grid.NewFragment([]byte(text))
			line := grid.NewTrivialLine(int(s.Grid.PageSize().Columns), frag, 0, len(text), cellCount, s.attrs, s.currentLink, grid.Wrappable)
			dst := s.Grid.LineAt(s.cursor.Line)
			dst.Reset(s.links, dst.Flags(), s.attrs) // releases whatever hyperlink ref the overwritten line held
			*dst = line
			s.retainLink(s.currentLink)
			s.cursor.Column += coord.ColumnOffset(cellCount)
			if int(s.cursor.Column) > s.rightMargin {
				s.cursor.Column = coord.ColumnOffset(s.rightMargin)
				if s.autoWrap {
					s.wrapPending = true
				}
			}
			return
		}
	}
	// Slow path: codepoint by codepoint, so it applies uniformly whether or
	// not the run was UTF-8 (this function also receives isolated runes via
	// PrintRune below).
	for _, r := range text {
		s.PrintRune(r)
	}
}

// PrintRune writes a single decoded codepoint, applying the active G0/G1
// charset mapping, computing width via grapheme-cluster rules, and
// handling autowrap. Grounded on the runesWidth/hdl_graphemes combination
// in the teacher's handler.go, generalized to spec.md's breakable vs
// non-breakable combining-mark rule (append to the preceding cell instead
// of always starting a new one).
func (s *Screen) PrintRune(r rune) {
	r = s.mapCharset(r)
	width := uniseg.StringWidth(string(r))
	if width < 0 {
		width = 0
	}

	if width == 0 {
		// Combining mark or zero-width joiner: append to the preceding cell
		// rather than consuming a column of its own.
		s.appendCombining(r)
		return
	}

	if s.wrapPending {
		s.performWrap()
	}

	if int(s.cursor.Column)+width-1 > s.rightMargin {
		if s.autoWrap {
			s.performWrap()
		} else {
			s.cursor.Column = coord.ColumnOffset(s.rightMargin - width + 1)
			if s.cursor.Column < 0 {
				s.cursor.Column = 0
			}
		}
	}

	line := s.Grid.LineAt(s.cursor.Line)
	c := line.UseCellAt(int(s.cursor.Column))
	if c != nil {
		s.releaseLink(c.Link)
		c.Reset(s.attrs)
		c.SetBase(r, width)
		c.Link = s.currentLink
		s.retainLink(s.currentLink)
		for k := 1; k < width; k++ {
			if cc := line.UseCellAt(int(s.cursor.Column) + k); cc != nil {
				s.releaseLink(cc.Link)
				cc.Continuation()
				cc.Attrs = s.attrs
				cc.Link = s.currentLink
				s.retainLink(s.currentLink)
			}
		}
	}
	line.SetFlag(grid.Wrappable)

	s.cursor.Column += coord.ColumnOffset(width)
	if int(s.cursor.Column) > s.rightMargin {
		s.cursor.Column = coord.ColumnOffset(s.rightMargin)
		if s.autoWrap {
			s.wrapPending = true
		}
	}
}

func (s *Screen) appendCombining(r rune) {
	col := int(s.cursor.Column) - 1
	if col < 0 {
		return
	}
	line := s.Grid.LineAt(s.cursor.Line)
	if c := line.UseCellAt(col); c != nil {
		c.AppendCombining(r)
	}
}

// performWrap moves the cursor to the start of the next row, marking the
// current line Wrapped-eligible successor, i.e. flags the *next* line as
// Wrapped when it was itself Wrappable (spec.md §4.4's join predicate).
func (s *Screen) performWrap() {
	s.wrapPending = false
	cur := s.Grid.LineAt(s.cursor.Line)
	wrappable := cur != nil && cur.HasFlag(grid.Wrappable)

	if int(s.cursor.Line) >= s.bottomMargin {
		s.Grid.ScrollUp(1, s.attrs, s.vMargin())
	} else {
		s.cursor.Line++
	}
	s.cursor.Column = coord.ColumnOffset(s.originColumn())
	if wrappable {
		if next := s.Grid.LineAt(s.cursor.Line); next != nil {
			next.SetFlag(grid.Wrapped)
		}
	}
}

// CarriageReturn moves the cursor to the left margin (CR, C0 0x0D).
func (s *Screen) CarriageReturn() {
	s.cursor.Column = coord.ColumnOffset(s.originColumn())
	s.wrapPending = false
}

// LineFeed moves the cursor down one row, scrolling if at the bottom
// margin (LF/VT/FF, C0 0x0A/0x0B/0x0C).
func (s *Screen) LineFeed() {
	s.wrapPending = false
	if int(s.cursor.Line) >= s.bottomMargin {
		s.Grid.ScrollUp(1, s.attrs, s.vMargin())
		return
	}
	s.cursor.Line++
}

// ReverseLineFeed moves the cursor up one row, scrolling down if at the
// top margin (RI, ESC M).
func (s *Screen) ReverseLineFeed() {
	s.wrapPending = false
	if int(s.cursor.Line) <= s.topMargin {
		s.Grid.ScrollDown(1, s.attrs, s.vMargin())
		return
	}
	s.cursor.Line--
}

// Backspace moves the cursor left one column, never wrapping (BS, C0 0x08).
func (s *Screen) Backspace() {
	s.wrapPending = false
	if int(s.cursor.Column) > s.originColumn() {
		s.cursor.Column--
	}
}
