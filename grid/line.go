package grid

import (
	"strings"

	"github.com/christianparpart/libterminal/cell"
	"github.com/christianparpart/libterminal/hyperlink"
)

// LineFlags is the bitset spec.md §3 attaches to every Line.
type LineFlags uint8

const (
	// Wrappable marks a line eligible to be joined with its successor
	// during reflow when that successor carries Wrapped.
	Wrappable LineFlags = 1 << iota
	// Wrapped marks a line as the continuation of the previous logical
	// line (it was produced by an autowrap, not a newline).
	Wrapped
	// Marked is a user/embedder-set bookmark flag (e.g. search hit).
	Marked
)

type lineKind uint8

const (
	kindTrivial lineKind = iota
	kindInflated
)

// Line is the grid's storage unit for one physical row: either Trivial (a
// byte range into a reference-counted Fragment, a uniform
// GraphicsAttributes and a single hyperlink id) or Inflated (a full
// []cell.Cell vector). Grounded on the tagged-union design in spec.md §9
// and the teacher's split between a plain-text fast path
// (terminal/framebuffer.go's fillCells fast paths) and a per-cell Row.
type Line struct {
	kind  lineKind
	flags LineFlags
	width int // page column count this line was allocated for

	// trivial fields
	frag     Fragment
	used     int // columns actually occupied (<=width); rest is implicit blank
	trivAttr cell.GraphicsAttributes
	trivLink cell.HyperlinkID

	// inflated fields
	cells []cell.Cell
}

// NewBlankLine returns a Trivial line of the given width, entirely blank,
// carrying attrs (used when scrolling in a new bottom line or erasing).
func NewBlankLine(width int, attrs cell.GraphicsAttributes, flags LineFlags) Line {
	return Line{kind: kindTrivial, width: width, trivAttr: attrs, flags: flags}
}

// NewTrivialLine builds a Trivial line aliasing frag[start:start+length)
// as its text, used columns as given. This is the bulk-text fast path
// spec.md §4.5 describes.
func NewTrivialLine(width int, frag Fragment, start, length, usedCols int, attrs cell.GraphicsAttributes, link cell.HyperlinkID, flags LineFlags) Line {
	return Line{
		kind: kindTrivial, width: width,
		frag: frag.Slice(start, length), used: usedCols,
		trivAttr: attrs, trivLink: link, flags: flags,
	}
}

// IsTrivial reports whether the line is still in its compact
// representation.
func (l *Line) IsTrivial() bool { return l.kind == kindTrivial }

// Columns returns the page width this line is sized for.
func (l *Line) Columns() int { return l.width }

// Flags returns the line's flag bitset.
func (l *Line) Flags() LineFlags { return l.flags }

// SetFlag/ClearFlag toggle individual bits.
func (l *Line) SetFlag(f LineFlags)   { l.flags |= f }
func (l *Line) ClearFlag(f LineFlags) { l.flags &^= f }
func (l *Line) HasFlag(f LineFlags) bool { return l.flags&f != 0 }

// Reset restores the line to blank, releasing any hyperlink/fragment
// references it held, matching spec.md §4.4's Line.reset(flags, sgr).
func (l *Line) Reset(links *hyperlink.Storage, flags LineFlags, attrs cell.GraphicsAttributes) {
	l.releaseRefs(links)
	*l = Line{kind: kindTrivial, width: l.width, trivAttr: attrs, flags: flags}
}

func (l *Line) releaseRefs(links *hyperlink.Storage) {
	if l.kind == kindTrivial {
		if links != nil && l.trivLink != 0 {
			links.Release(l.trivLink)
		}
		l.frag = Fragment{}
		return
	}
	if links != nil {
		for i := range l.cells {
			if l.cells[i].Link != 0 {
				links.Release(l.cells[i].Link)
			}
		}
	}
}

// Inflate upgrades a Trivial line to Inflated in place (a no-op if it
// already is), and returns the resulting cell slice. Grounded on
// spec.md's invariant "a trivial line must upgrade to inflated on any
// non-appending mutation".
func (l *Line) Inflate() []cell.Cell {
	if l.kind == kindInflated {
		return l.cells
	}
	cells := make([]cell.Cell, l.width)
	for i := range cells {
		cells[i] = cell.Blank()
		cells[i].Attrs = l.trivAttr
		cells[i].Link = l.trivLink
	}
	if l.used > 0 && len(l.frag.Bytes()) > 0 {
		col := 0
		for _, r := range string(l.frag.Bytes()) {
			if col >= l.width {
				break
			}
			w := cell.RuneWidth(r)
			if w <= 0 {
				w = 1
			}
			cells[col].SetBase(r, w)
			cells[col].Attrs = l.trivAttr
			cells[col].Link = l.trivLink
			for k := 1; k < w && col+k < l.width; k++ {
				cells[col+k].Continuation()
				cells[col+k].Attrs = l.trivAttr
			}
			col += w
		}
	}
	l.kind = kindInflated
	l.cells = cells
	l.frag = Fragment{}
	return l.cells
}

// UseCellAt returns a mutable pointer to the cell at col, upgrading the
// line to Inflated first if necessary.
func (l *Line) UseCellAt(col int) *cell.Cell {
	cells := l.Inflate()
	if col < 0 || col >= len(cells) {
		return nil
	}
	return &cells[col]
}

// CellAt returns a read-only copy of the cell at col, synthesizing it
// from the trivial representation without inflating when possible.
func (l *Line) CellAt(col int) cell.Cell {
	if l.kind == kindInflated {
		if col < 0 || col >= len(l.cells) {
			return cell.Blank()
		}
		return l.cells[col]
	}
	// Trivial: walk runes counting columns; this is O(used) but used
	// lines are short and this path is for random-access reads only
	// (rendering and reflow use ToUTF8/Inflate instead).
	c := cell.Cell{}
	c.Attrs = l.trivAttr
	c.Link = l.trivLink
	pos := 0
	for _, r := range string(l.frag.Bytes()) {
		w := cell.RuneWidth(r)
		if w <= 0 {
			w = 1
		}
		if pos == col {
			c.SetBase(r, w)
			c.Attrs = l.trivAttr
			c.Link = l.trivLink
			return c
		}
		if col > pos && col < pos+w {
			c.Continuation()
			c.Attrs = l.trivAttr
			return c
		}
		pos += w
	}
	c.SetBase(' ', 1)
	return c
}

// TrimBlankRight drops trailing blank cells from an Inflated line's
// logical content count; it does not shrink the slice (page width is
// fixed). For a Trivial line it returns the used column count.
func (l *Line) TrimBlankRight() int {
	if l.kind == kindTrivial {
		return l.used
	}
	n := len(l.cells)
	for n > 0 && l.cells[n-1].IsEmpty() == false && string(l.cells[n-1].Runes()) == " " {
		n--
	}
	return n
}

// MatchTextAt reports whether pattern occurs starting at column col.
func (l *Line) MatchTextAt(pattern string, col int) bool {
	text := l.ToUTF8()
	runes := []rune(text)
	pr := []rune(pattern)
	if col < 0 || col+len(pr) > len(runes) {
		return false
	}
	for i, r := range pr {
		if runes[col+i] != r {
			return false
		}
	}
	return true
}

// ToUTF8 renders the line's visible text (no trailing padding beyond
// used content), continuation cells of wide characters omitted.
func (l *Line) ToUTF8() string {
	if l.kind == kindTrivial {
		return string(l.frag.Bytes())
	}
	var b strings.Builder
	for i := 0; i < len(l.cells); i++ {
		c := l.cells[i]
		if c.Width == 0 {
			continue // continuation cell of a wide char
		}
		if c.IsEmpty() {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(string(c.Runes()))
	}
	return strings.TrimRight(b.String(), " ")
}

// Fill sets every cell to codepoint with the given width and attributes.
// Always inflates: a fill is a non-appending mutation touching every cell.
func (l *Line) Fill(flags LineFlags, attrs cell.GraphicsAttributes, r rune, width int) {
	cells := l.Inflate()
	for i := range cells {
		cells[i] = cell.Cell{Width: uint8(width), Attrs: attrs}
		cells[i].SetBase(r, width)
	}
	l.flags = flags
}

// Clone returns a value copy of the line, retaining a shared reference to
// the fragment (bumping its refcount) or copying the cell slice.
func (l Line) Clone(links *hyperlink.Storage) Line {
	out := l
	if l.kind == kindTrivial {
		out.frag = l.frag.Retain()
		if links != nil && l.trivLink != 0 {
			links.Retain(l.trivLink)
		}
	} else {
		out.cells = make([]cell.Cell, len(l.cells))
		copy(out.cells, l.cells)
		if links != nil {
			for _, c := range out.cells {
				if c.Link != 0 {
					links.Retain(c.Link)
				}
			}
		}
	}
	return out
}
