// Package screen implements the operator interface the sequencer drives,
// per spec.md §4.5: text entry, cursor motion, erase, scroll primitives,
// SGR, modes' cell-level effects, charsets, Sixel placement, and reports.
// Grounded on the teacher's terminal/handler.go, which implements a
// comparable (narrower) set of hdl_csi_*/hdl_esc_* functions against its
// own Framebuffer/emulator pair; this package generalizes that repertoire
// onto grid.Grid and adds the DEC-private and xterm operations
// handler.go's mosh-scoped subset omits (margins, DECSLRM, protected
// erase, Sixel placement, rectangular copy/fill).
package screen

import (
	"github.com/christianparpart/libterminal/cell"
	"github.com/christianparpart/libterminal/coord"
	"github.com/christianparpart/libterminal/grid"
	"github.com/christianparpart/libterminal/hyperlink"
	"github.com/christianparpart/libterminal/vtimage"
	"github.com/christianparpart/libterminal/vtlog"
)

// Charset names one of the G0-G3 designated character sets a Screen can
// map codepoints through before writing a cell (SCS, spec.md §4.5).
type Charset uint8

const (
	CharsetUSASCII Charset = iota
	CharsetDECSpecialGraphics
	CharsetUK
)

// ReplyWriter is how a Screen sends VT replies (DA, DSR, DECRQSS, ...)
// back toward the PTY; Terminal supplies the implementation, which writes
// each reply to its attached PTY (spec.md §4.6's "reply channel").
type ReplyWriter interface {
	Reply(s string)
}

// Screen owns one grid (primary or alternate) plus the cursor, margins,
// pending-wrap flag, charset state, and active SGR attributes that make
// sense to keep per-screen rather than per-terminal.
type Screen struct {
	Grid *grid.Grid

	cursor      coord.CellLocation
	savedCursor coord.CellLocation
	savedAttrs  cell.GraphicsAttributes
	savedLink   cell.HyperlinkID

	savedOriginMode  bool
	savedAutoWrap    bool
	savedGL, savedGR int
	savedGset        [4]Charset

	attrs        cell.GraphicsAttributes
	currentLink  cell.HyperlinkID
	protectedSel bool // DECSCA sticky mode

	topMargin, bottomMargin int
	leftMargin, rightMargin int
	marginsEnabled          bool // DECLRMM

	originMode  bool
	autoWrap    bool
	wrapPending bool

	gl, gr       int // active G-set index for GL/GR (0-3)
	gset         [4]Charset
	pendingShift int // one-shot SS2/SS3 override, 0 = none

	tabStops []bool

	links  *hyperlink.Storage
	images *vtimage.Pool
	reply  ReplyWriter

	activeSixel *vtimage.SixelDecoder
}

// New builds a Screen over g, with links/images shared with the owning
// Terminal (either may be nil for tests that don't exercise hyperlinks or
// Sixel placement).
func New(g *grid.Grid, links *hyperlink.Storage, images *vtimage.Pool, reply ReplyWriter) *Screen {
	s := &Screen{
		Grid:         g,
		autoWrap:     true,
		bottomMargin: int(g.PageSize().Lines) - 1,
		rightMargin:  int(g.PageSize().Columns) - 1,
		links:        links,
		images:       images,
		reply:        reply,
	}
	s.resetTabStops()
	return s
}

func (s *Screen) resetTabStops() {
	cols := int(s.Grid.PageSize().Columns)
	s.tabStops = make([]bool, cols)
	for i := 8; i < cols; i += 8 {
		s.tabStops[i] = true
	}
}

// Cursor returns the current cursor position.
func (s *Screen) Cursor() coord.CellLocation { return s.cursor }

// SetCursor forcibly relocates the cursor, clamped to the page, clearing
// wrapPending — used by CUP/HVP and by Terminal on screen switch.
func (s *Screen) SetCursor(pos coord.CellLocation) {
	s.cursor = s.clampToPage(pos)
	s.wrapPending = false
}

func (s *Screen) clampToPage(pos coord.CellLocation) coord.CellLocation {
	pos.Line = coord.LineOffset(coord.Clamp(int(pos.Line), 0, int(s.Grid.PageSize().Lines)-1))
	pos.Column = coord.ColumnOffset(coord.Clamp(int(pos.Column), 0, int(s.Grid.PageSize().Columns)-1))
	return pos
}

func (s *Screen) originLine() int {
	if s.originMode {
		return s.topMargin
	}
	return 0
}

func (s *Screen) originColumn() int {
	if s.originMode && s.marginsEnabled {
		return s.leftMargin
	}
	return 0
}

// vMargin returns the current [top,bottom] vertical scroll margin.
func (s *Screen) vMargin() coord.Margin { return coord.Margin{Begin: s.topMargin, End: s.bottomMargin} }

// hMargin returns the current [left,right] horizontal scroll margin
// (only meaningful when DECLRMM is on).
func (s *Screen) hMargin() coord.Margin { return coord.Margin{Begin: s.leftMargin, End: s.rightMargin} }

// SetMargins sets the vertical scroll region (DECSTBM); an empty range
// (top>=bottom) resets to the full page, per xterm convention.
func (s *Screen) SetMargins(top, bottom int) {
	rows := int(s.Grid.PageSize().Lines)
	if top < 0 {
		top = 0
	}
	if bottom <= 0 || bottom >= rows {
		bottom = rows - 1
	}
	if top >= bottom {
		top, bottom = 0, rows-1
	}
	s.topMargin, s.bottomMargin = top, bottom
	s.SetCursor(coord.CellLocation{Line: coord.LineOffset(s.originLine()), Column: coord.ColumnOffset(s.originColumn())})
}

// SetLeftRightMargins sets the horizontal scroll region (DECSLRM),
// effective only once DECLRMM has enabled the mode.
func (s *Screen) SetLeftRightMargins(left, right int) {
	cols := int(s.Grid.PageSize().Columns)
	if left < 0 {
		left = 0
	}
	if right <= 0 || right >= cols {
		right = cols - 1
	}
	if left >= right {
		left, right = 0, cols-1
	}
	s.leftMargin, s.rightMargin = left, right
	s.SetCursor(coord.CellLocation{Line: coord.LineOffset(s.originLine()), Column: coord.ColumnOffset(s.originColumn())})
}

// SetOriginMode toggles DECOM.
func (s *Screen) SetOriginMode(on bool) {
	s.originMode = on
	s.SetCursor(coord.CellLocation{Line: coord.LineOffset(s.originLine()), Column: coord.ColumnOffset(s.originColumn())})
}

// SetAutoWrap toggles DECAWM.
func (s *Screen) SetAutoWrap(on bool) { s.autoWrap = on }

// SetLeftRightMarginMode toggles DECLRMM.
func (s *Screen) SetLeftRightMarginMode(on bool) {
	s.marginsEnabled = on
	if !on {
		s.leftMargin, s.rightMargin = 0, int(s.Grid.PageSize().Columns)-1
	}
}

// Attrs returns the currently active graphics attributes new cells are
// stamped with.
func (s *Screen) Attrs() cell.GraphicsAttributes { return s.attrs }

// SetAttrs replaces the active graphics attributes wholesale (used by SGR).
func (s *Screen) SetAttrs(a cell.GraphicsAttributes) { s.attrs = a }

// Link returns the hyperlink ID newly printed cells are stamped with
// (spec.md §3's "Hyperlinks"; zero means no active hyperlink).
func (s *Screen) Link() cell.HyperlinkID { return s.currentLink }

// retainLink/releaseLink adjust the hyperlink table's refcount for id,
// tolerating a nil links table (tests that don't exercise hyperlinks) and
// the zero id (no hyperlink).
func (s *Screen) retainLink(id cell.HyperlinkID) {
	if s.links != nil && id != 0 {
		s.links.Retain(id)
	}
}

func (s *Screen) releaseLink(id cell.HyperlinkID) {
	if s.links != nil && id != 0 {
		s.links.Release(id)
	}
}

// SetLink sets the hyperlink ID attached to subsequently printed cells,
// left in force until cleared (an OSC 8 with an empty URI passes 0).
// currentLink is itself an owning slot: taking on a new id retains it,
// dropping the old one releases it, matching the refcounting every other
// slot that stores a HyperlinkID (a cell, a trivial line) follows.
func (s *Screen) SetLink(id cell.HyperlinkID) {
	if id == s.currentLink {
		return
	}
	s.retainLink(id)
	s.releaseLink(s.currentLink)
	s.currentLink = id
}

// DECSC saves the cursor position, attributes, charset state, and origin
// mode, per spec.md §4.6's per-screen saved-cursor slot. savedLink is its
// own owning slot (a second reference on the same id as currentLink, not
// a transfer), since DECRC may be invoked more than once for one DECSC.
func (s *Screen) DECSC() {
	s.savedCursor = s.cursor
	s.savedAttrs = s.attrs
	s.retainLink(s.currentLink)
	s.releaseLink(s.savedLink)
	s.savedLink = s.currentLink
	s.savedOriginMode = s.originMode
	s.savedAutoWrap = s.autoWrap
	s.savedGL, s.savedGR = s.gl, s.gr
	s.savedGset = s.gset
}

// DECRC restores what DECSC saved.
func (s *Screen) DECRC() {
	s.cursor = s.clampToPage(s.savedCursor)
	s.attrs = s.savedAttrs
	s.retainLink(s.savedLink)
	s.releaseLink(s.currentLink)
	s.currentLink = s.savedLink
	s.originMode = s.savedOriginMode
	s.autoWrap = s.savedAutoWrap
	s.gl, s.gr = s.savedGL, s.savedGR
	s.gset = s.savedGset
	s.wrapPending = false
}

// Resize propagates a page resize into the grid and clamps margins/cursor.
func (s *Screen) Resize(newSize coord.PageSize, allowReflow bool) {
	s.Grid.Resize(newSize, s.cursor, s.wrapPending) // grid owns reflow flag internally
	s.cursor = s.clampToPage(s.cursor)
	rows, cols := int(newSize.Lines), int(newSize.Columns)
	if s.bottomMargin >= rows {
		s.bottomMargin = rows - 1
	}
	if s.rightMargin >= cols {
		s.rightMargin = cols - 1
	}
	s.resetTabStops()
	s.wrapPending = false
}

func (s *Screen) logUnsupported(op string) {
	vtlog.Unsupported("screen operation not implemented", "op", op)
}
