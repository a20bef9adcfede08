package screen

import (
	"github.com/christianparpart/libterminal/cell"
	"github.com/christianparpart/libterminal/coord"
)

// DECSCA sets or clears the sticky CharacterProtected flag new cells are
// stamped with (mode 1 sets, 0/2 clears), per spec.md §4.5.
func (s *Screen) DECSCA(protect bool) {
	s.protectedSel = protect
	s.attrs.Set(cell.CharacterProtected, protect)
}

// DECSTR performs a soft terminal reset: clears margins, origin mode,
// attributes, tab stops, and the saved-cursor slot, without touching grid
// contents (a hard reset additionally clears the screen; that is
// Terminal's responsibility since it also spans mode registers).
func (s *Screen) DECSTR() {
	s.topMargin = 0
	s.bottomMargin = int(s.Grid.PageSize().Lines) - 1
	s.leftMargin = 0
	s.rightMargin = int(s.Grid.PageSize().Columns) - 1
	s.marginsEnabled = false
	s.originMode = false
	s.autoWrap = true
	s.attrs = cell.GraphicsAttributes{}
	s.SetLink(0)
	s.protectedSel = false
	s.wrapPending = false
	s.savedCursor = coord.CellLocation{}
	s.savedAttrs = cell.GraphicsAttributes{}
	s.releaseLink(s.savedLink)
	s.savedLink = 0
	s.savedOriginMode = false
	s.savedAutoWrap = false
	s.savedGL, s.savedGR = 0, 0
	s.savedGset = [4]Charset{}
	s.resetTabStops()
}
