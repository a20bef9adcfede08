package screen

import "github.com/christianparpart/libterminal/coord"

func (s *Screen) clampLine(l int) int {
	return coord.Clamp(l, s.originLine(), s.bottomMarginOrPage())
}

func (s *Screen) bottomMarginOrPage() int {
	if s.originMode {
		return s.bottomMargin
	}
	return int(s.Grid.PageSize().Lines) - 1
}

func (s *Screen) rightMarginOrPage() int {
	if s.originMode && s.marginsEnabled {
		return s.rightMargin
	}
	return int(s.Grid.PageSize().Columns) - 1
}

func (s *Screen) leftMarginOrPage() int {
	if s.originMode && s.marginsEnabled {
		return s.leftMargin
	}
	return 0
}

// CUU moves the cursor up n rows (default 1), stopping at the top margin.
func (s *Screen) CUU(n int) {
	if n < 1 {
		n = 1
	}
	floor := s.originLine()
	if int(s.cursor.Line) >= s.topMargin {
		floor = s.topMargin
	}
	if int(s.cursor.Line)-n < floor {
		s.cursor.Line = coord.LineOffset(floor)
	} else {
		s.cursor.Line -= coord.LineOffset(n)
	}
	s.wrapPending = false
}

// CUD moves the cursor down n rows, stopping at the bottom margin.
func (s *Screen) CUD(n int) {
	if n < 1 {
		n = 1
	}
	ceil := s.bottomMarginOrPage()
	if int(s.cursor.Line) <= s.bottomMargin {
		ceil = s.bottomMargin
	}
	if int(s.cursor.Line)+n > ceil {
		s.cursor.Line = coord.LineOffset(ceil)
	} else {
		s.cursor.Line += coord.LineOffset(n)
	}
	s.wrapPending = false
}

// CUF moves the cursor right n columns, stopping at the right margin.
func (s *Screen) CUF(n int) {
	if n < 1 {
		n = 1
	}
	ceil := s.rightMarginOrPage()
	if s.marginsEnabled && int(s.cursor.Column) <= s.rightMargin {
		ceil = s.rightMargin
	}
	if int(s.cursor.Column)+n > ceil {
		s.cursor.Column = coord.ColumnOffset(ceil)
	} else {
		s.cursor.Column += coord.ColumnOffset(n)
	}
	s.wrapPending = false
}

// CUB moves the cursor left n columns, stopping at the left margin.
func (s *Screen) CUB(n int) {
	if n < 1 {
		n = 1
	}
	floor := s.originColumn()
	if s.marginsEnabled && int(s.cursor.Column) >= s.leftMargin {
		floor = s.leftMargin
	}
	if int(s.cursor.Column)-n < floor {
		s.cursor.Column = coord.ColumnOffset(floor)
	} else {
		s.cursor.Column -= coord.ColumnOffset(n)
	}
	s.wrapPending = false
}

// CNL moves the cursor down n rows and to the left margin (CNL).
func (s *Screen) CNL(n int) {
	s.CUD(n)
	s.cursor.Column = coord.ColumnOffset(s.originColumn())
}

// CPL moves the cursor up n rows and to the left margin (CPL).
func (s *Screen) CPL(n int) {
	s.CUU(n)
	s.cursor.Column = coord.ColumnOffset(s.originColumn())
}

// CHA moves the cursor to column n (1-based) of the current row (CHA/HPA).
func (s *Screen) CHA(n int) {
	if n < 1 {
		n = 1
	}
	s.cursor.Column = coord.ColumnOffset(coord.Clamp(s.originColumn()+n-1, 0, int(s.Grid.PageSize().Columns)-1))
	s.wrapPending = false
}

// VPA moves the cursor to row n (1-based) of the current column.
func (s *Screen) VPA(n int) {
	if n < 1 {
		n = 1
	}
	s.cursor.Line = coord.LineOffset(coord.Clamp(s.originLine()+n-1, 0, int(s.Grid.PageSize().Lines)-1))
	s.wrapPending = false
}

// CUP moves the cursor to (row, col), both 1-based and margin-relative
// under origin mode (CUP/HVP).
func (s *Screen) CUP(row, col int) {
	if row < 1 {
		row = 1
	}
	if col < 1 {
		col = 1
	}
	s.cursor.Line = coord.LineOffset(coord.Clamp(s.originLine()+row-1, 0, int(s.Grid.PageSize().Lines)-1))
	s.cursor.Column = coord.ColumnOffset(coord.Clamp(s.originColumn()+col-1, 0, int(s.Grid.PageSize().Columns)-1))
	s.wrapPending = false
}

// tabWidth is the default tab stop interval used when the tab vector has
// been fully cleared, per spec.md §4.5.
const tabWidth = 8

// HTS sets a tab stop at the current column.
func (s *Screen) HTS() {
	if c := int(s.cursor.Column); c < len(s.tabStops) {
		s.tabStops[c] = true
	}
}

// TBC clears tab stops: 0 clears the one at the cursor, 3 clears all.
func (s *Screen) TBC(mode int) {
	switch mode {
	case 0:
		if c := int(s.cursor.Column); c < len(s.tabStops) {
			s.tabStops[c] = false
		}
	case 3:
		for i := range s.tabStops {
			s.tabStops[i] = false
		}
	}
}

func (s *Screen) nextTabStop(from int) int {
	for c := from + 1; c < len(s.tabStops); c++ {
		if s.tabStops[c] {
			return c
		}
	}
	if from/tabWidth*tabWidth+tabWidth < len(s.tabStops) {
		return from/tabWidth*tabWidth + tabWidth
	}
	return len(s.tabStops) - 1
}

func (s *Screen) prevTabStop(from int) int {
	for c := from - 1; c >= 0; c-- {
		if s.tabStops[c] {
			return c
		}
	}
	return 0
}

// CHT advances the cursor n tab stops forward, bounded by the right margin.
func (s *Screen) CHT(n int) {
	if n < 1 {
		n = 1
	}
	c := int(s.cursor.Column)
	for i := 0; i < n; i++ {
		c = s.nextTabStop(c)
	}
	if c > s.rightMarginOrPage() {
		c = s.rightMarginOrPage()
	}
	s.cursor.Column = coord.ColumnOffset(c)
}

// CBT moves the cursor n tab stops backward.
func (s *Screen) CBT(n int) {
	if n < 1 {
		n = 1
	}
	c := int(s.cursor.Column)
	for i := 0; i < n; i++ {
		c = s.prevTabStop(c)
	}
	s.cursor.Column = coord.ColumnOffset(c)
}

// HorizontalTab advances to the next tab stop (C0 0x09).
func (s *Screen) HorizontalTab() {
	s.cursor.Column = coord.ColumnOffset(s.nextTabStop(int(s.cursor.Column)))
}
