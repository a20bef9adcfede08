package cell

// HyperlinkID references an entry in the process-wide hyperlink table
// (spec.md §3 "Hyperlinks"). Zero means "no hyperlink".
type HyperlinkID uint32

// ImageFragmentRef locates a sub-grid slice of a placed image (spec.md §3
// "Images"). Zero-value Image means "no image fragment".
type ImageFragmentRef struct {
	Image      uint32 // handle into the image pool, 0 = none
	OffsetX    int    // column offset within the placed image, in cells
	OffsetY    int    // row offset within the placed image, in cells
}

// maxCombining bounds the inline combining-mark storage so that the
// common case (one base codepoint, no combining marks, ASCII, default
// attributes) stays a small value type with no heap allocation — the
// "compact representation for ASCII with default attributes" spec.md §9
// asks for. Grounded on the width-then-append shape of
// terminal/handler.go:hdl_graphemes, which likewise treats "one base rune
// plus rare combining runes" as the hot path.
const maxCombining = 5

// Cell is the primitive grid unit: a small codepoint sequence (a base rune
// plus up to maxCombining combining marks), a display width, graphics
// attributes, and optional hyperlink/image references.
type Cell struct {
	runes    [1 + maxCombining]rune
	numRunes uint8
	Width    uint8 // 0 (unused continuation cell), 1, or 2
	Attrs    GraphicsAttributes
	Link     HyperlinkID
	Image    ImageFragmentRef
}

// Blank returns a blank cell: one space, width 1, default
// attributes — what a freshly erased cell looks like.
func Blank() Cell {
	c := Cell{Width: 1}
	c.runes[0] = ' '
	c.numRunes = 1
	return c
}

// Reset restores the cell to a blank cell carrying attrs (erase
// operations preserve the current SGR background per spec.md §4.5).
func (c *Cell) Reset(attrs GraphicsAttributes) {
	*c = Cell{Width: 1, Attrs: attrs}
	c.runes[0] = ' '
	c.numRunes = 1
}

// SetBase replaces the cell's base codepoint, dropping any combining
// marks that were attached to the previous base.
func (c *Cell) SetBase(r rune, width int) {
	c.runes[0] = r
	c.numRunes = 1
	c.Width = uint8(width)
}

// AppendCombining attaches a non-spacing combining mark to the current
// base codepoint. Marks beyond maxCombining are dropped — matching
// terminal behavior generally, extra marks have no visible effect anyway.
func (c *Cell) AppendCombining(r rune) {
	if c.numRunes == 0 {
		c.SetBase(r, 1)
		return
	}
	if int(c.numRunes) < len(c.runes) {
		c.runes[c.numRunes] = r
		c.numRunes++
	}
}

// Runes returns the base codepoint followed by any combining marks.
func (c Cell) Runes() []rune {
	return c.runes[:c.numRunes]
}

// IsEmpty reports whether the cell holds no codepoints at all — the
// trailing continuation half of a wide character.
func (c Cell) IsEmpty() bool { return c.numRunes == 0 }

// Continuation marks the cell as the invisible right half of a
// double-width character to its left.
func (c *Cell) Continuation() {
	c.numRunes = 0
	c.Width = 0
}
