package screen

import (
	"github.com/christianparpart/libterminal/cell"
	"github.com/christianparpart/libterminal/coord"
)

func blankCell(attrs cell.GraphicsAttributes) cell.Cell {
	c := cell.Blank()
	c.Attrs = attrs
	return c
}

// SU scrolls the vertical margin up by n lines (content moves up, new
// blank lines enter at the bottom), pushing to history only when the
// margin spans the full page (grid.Grid.ScrollUp's own invariant).
func (s *Screen) SU(n int) {
	s.Grid.ScrollUp(n, s.attrs, s.vMargin())
}

// SD scrolls the vertical margin down by n lines.
func (s *Screen) SD(n int) {
	s.Grid.ScrollDown(n, s.attrs, s.vMargin())
}

// IL inserts n blank lines at the cursor row, pushing the margin's
// content down (lines below the bottom margin are discarded); cursor
// moves to the left margin per ECMA-48.
func (s *Screen) IL(n int) {
	margin := coord.Margin{Begin: int(s.cursor.Line), End: s.bottomMargin}
	s.Grid.ScrollDown(n, s.attrs, margin)
	s.cursor.Column = coord.ColumnOffset(s.originColumn())
}

// DL deletes n lines at the cursor row, pulling the margin's content up
// (blank lines enter at the bottom margin); cursor moves to the left
// margin.
func (s *Screen) DL(n int) {
	margin := coord.Margin{Begin: int(s.cursor.Line), End: s.bottomMargin}
	s.Grid.ScrollUp(n, s.attrs, margin)
	s.cursor.Column = coord.ColumnOffset(s.originColumn())
}

// ICH inserts n blank cells at the cursor column, shifting the remainder
// of the row right within the right margin (content past it is dropped).
func (s *Screen) ICH(n int) {
	if n < 1 {
		n = 1
	}
	line := s.Grid.LineAt(s.cursor.Line)
	cells := line.Inflate()
	right := s.rightMarginOrPage()
	col := int(s.cursor.Column)
	if col > right {
		return
	}
	if n > right-col+1 {
		n = right - col + 1
	}
	copy(cells[col+n:right+1], cells[col:right+1-n])
	for i := col; i < col+n; i++ {
		cells[i] = blankCell(s.attrs)
	}
}

// DCH deletes n cells at the cursor column, shifting the remainder of the
// row left within the right margin, filling vacated columns with blanks.
func (s *Screen) DCH(n int) {
	if n < 1 {
		n = 1
	}
	line := s.Grid.LineAt(s.cursor.Line)
	cells := line.Inflate()
	right := s.rightMarginOrPage()
	col := int(s.cursor.Column)
	if col > right {
		return
	}
	if n > right-col+1 {
		n = right - col + 1
	}
	copy(cells[col:right+1-n], cells[col+n:right+1])
	for i := right - n + 1; i <= right; i++ {
		cells[i] = blankCell(s.attrs)
	}
}

// DECIC inserts n blank columns at the cursor column across every row of
// the vertical margin (VT420 rectangular column insert).
func (s *Screen) DECIC(n int) {
	if n < 1 {
		n = 1
	}
	for y := s.topMargin; y <= s.bottomMargin; y++ {
		line := s.Grid.LineAt(coord.LineOffset(y))
		cells := line.Inflate()
		right := s.rightMarginOrPage()
		col := int(s.cursor.Column)
		if n > right-col+1 {
			continue
		}
		copy(cells[col+n:right+1], cells[col:right+1-n])
		for i := col; i < col+n; i++ {
			cells[i] = blankCell(s.attrs)
		}
	}
}

// DECDC deletes n columns at the cursor column across every row of the
// vertical margin.
func (s *Screen) DECDC(n int) {
	if n < 1 {
		n = 1
	}
	for y := s.topMargin; y <= s.bottomMargin; y++ {
		line := s.Grid.LineAt(coord.LineOffset(y))
		cells := line.Inflate()
		right := s.rightMarginOrPage()
		col := int(s.cursor.Column)
		if n > right-col+1 {
			continue
		}
		copy(cells[col:right+1-n], cells[col+n:right+1])
		for i := right - n + 1; i <= right; i++ {
			cells[i] = blankCell(s.attrs)
		}
	}
}

// DECBI (Back Index) moves the cursor one column left; if the cursor is
// already at the left margin, the vertical margin's content shifts one
// column right instead, with a blank column entering at the left margin
// (VT420's horizontal analogue of RI).
func (s *Screen) DECBI() {
	left := s.leftMarginOrPage()
	if int(s.cursor.Column) > left {
		s.cursor.Column--
		return
	}
	right := s.rightMarginOrPage()
	for y := s.topMargin; y <= s.bottomMargin; y++ {
		cells := s.Grid.LineAt(coord.LineOffset(y)).Inflate()
		copy(cells[left+1:right+1], cells[left:right])
		cells[left] = blankCell(s.attrs)
	}
}

// DECFI (Forward Index) moves the cursor one column right; if the cursor
// is already at the right margin, the vertical margin's content shifts
// one column left instead, with a blank column entering at the right
// margin (VT420's horizontal analogue of IND).
func (s *Screen) DECFI() {
	right := s.rightMarginOrPage()
	if int(s.cursor.Column) < right {
		s.cursor.Column++
		return
	}
	left := s.leftMarginOrPage()
	for y := s.topMargin; y <= s.bottomMargin; y++ {
		cells := s.Grid.LineAt(coord.LineOffset(y)).Inflate()
		copy(cells[left:right], cells[left+1:right+1])
		cells[right] = blankCell(s.attrs)
	}
}

// DECCRA copies a rectangular region [srcTop,srcLeft,srcBottom,srcRight]
// to destination (dstTop,dstLeft), handling downward/rightward overlap by
// copying in reverse order so source and destination may overlap safely.
func (s *Screen) DECCRA(srcTop, srcLeft, srcBottom, srcRight, dstTop, dstLeft int) {
	height := srcBottom - srcTop + 1
	width := srcRight - srcLeft + 1
	if height <= 0 || width <= 0 {
		return
	}
	rowsDown := dstTop > srcTop
	yFrom, yTo, yStep := 0, height, 1
	if rowsDown {
		yFrom, yTo, yStep = height-1, -1, -1
	}
	for y := yFrom; y != yTo; y += yStep {
		srcLine := s.Grid.LineAt(coord.LineOffset(srcTop + y))
		dstLine := s.Grid.LineAt(coord.LineOffset(dstTop + y))
		if srcLine == nil || dstLine == nil {
			continue
		}
		srcCells := srcLine.Inflate()
		dstCells := dstLine.Inflate()
		colsRight := dstLeft > srcLeft
		xFrom, xTo, xStep := 0, width, 1
		if colsRight {
			xFrom, xTo, xStep = width-1, -1, -1
		}
		for x := xFrom; x != xTo; x += xStep {
			si, di := srcLeft+x, dstLeft+x
			if si < 0 || si >= len(srcCells) || di < 0 || di >= len(dstCells) {
				continue
			}
			dstCells[di] = srcCells[si]
		}
	}
}

// DECCARA applies an SGR change to every cell of a rectangular region
// without altering cell text; apply receives each cell's attributes by
// pointer so it can toggle flags/colors in place.
func (s *Screen) DECCARA(top, left, bottom, right int, apply func(*cell.GraphicsAttributes)) {
	for y := top; y <= bottom; y++ {
		line := s.Grid.LineAt(coord.LineOffset(y))
		cells := line.Inflate()
		for x := left; x <= right && x < len(cells); x++ {
			if x < 0 {
				continue
			}
			apply(&cells[x].Attrs)
		}
	}
}
