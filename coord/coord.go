// Package coord defines the coordinate and size primitives shared by the
// grid, screen and terminal packages (spec §3 "Coordinates").
package coord

import "golang.org/x/exp/constraints"

// LineOffset is a signed row offset. Negative values are used transiently
// while clamping cursor motion against margins.
type LineOffset int

// ColumnOffset is a signed column offset.
type ColumnOffset int

// LineCount is a nonnegative row count.
type LineCount int

// ColumnCount is a nonnegative column count.
type ColumnCount int

// CellLocation addresses one cell of a grid.
type CellLocation struct {
	Line   LineOffset
	Column ColumnOffset
}

// PageSize is the visible rectangle of a grid, in cells.
type PageSize struct {
	Lines   LineCount
	Columns ColumnCount
}

// ImageSize is a size in pixels, used for Sixel/graphics placement.
type ImageSize struct {
	Width  int
	Height int
}

// ScrollOffset is the distance from the bottom edge of the live page into
// history; 0 means the page is live (not scrolled back).
type ScrollOffset int

// Margin is an inclusive [Begin,End] range, used for both vertical
// (top/bottom) and horizontal (left/right) margins.
type Margin struct {
	Begin int
	End   int
}

// Contains reports whether v lies within the inclusive margin.
func (m Margin) Contains(v int) bool { return v >= m.Begin && v <= m.End }

// Length returns the number of cells/lines spanned by the margin.
func (m Margin) Length() int { return m.End - m.Begin + 1 }

// Clamp restricts v to lie within the margin.
func (m Margin) Clamp(v int) int {
	if v < m.Begin {
		return m.Begin
	}
	if v > m.End {
		return m.End
	}
	return v
}

// Clamp restricts v to the inclusive range [lo,hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Min returns the smaller of a and b. Grounded on terminal.Min in the
// teacher, generalized with golang.org/x/exp/constraints so it works over
// every coordinate type declared above (each is a distinct named int type)
// without duplicating the function per type.
func Min[T constraints.Signed](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T constraints.Signed](a, b T) T {
	if a > b {
		return a
	}
	return b
}
