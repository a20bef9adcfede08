package screen

import (
	"github.com/christianparpart/libterminal/cell"
	"github.com/christianparpart/libterminal/coord"
	"github.com/christianparpart/libterminal/vtimage"
)

// BeginSixel starts collecting a DECSIXEL payload (DCS hookable state).
func (s *Screen) BeginSixel() {
	s.activeSixel = vtimage.NewSixelDecoder()
}

// FeedSixel forwards one payload byte to the active Sixel decoder.
func (s *Screen) FeedSixel(b byte) {
	if s.activeSixel != nil {
		s.activeSixel.Put(b)
	}
}

// EndSixel finalizes the Sixel image and places it at the cursor
// (spec.md §4.5: "on completion the image is placed at the current
// cursor... auto-scroll occurs when sixel scrolling mode is enabled").
// cellSize is the terminal's current cell pixel dimensions, needed to
// compute how many text rows/columns the raster spans.
func (s *Screen) EndSixel(cellSize coord.PageSize, sixelScrolling, cursorNextToGraphic bool) {
	if s.activeSixel == nil || s.images == nil {
		s.activeSixel = nil
		return
	}
	pixels, size, spanCells := s.activeSixel.Finish(int(cellSize.Columns), int(cellSize.Lines))
	s.activeSixel = nil
	if len(pixels) == 0 {
		return
	}
	img, err := s.images.Insert(pixels, size, spanCells)
	if err != nil {
		s.logUnsupported("DECSIXEL: " + err.Error())
		return
	}
	handle := img.Handle()

	line := s.cursor.Line
	for row := 0; row < int(spanCells.Lines); row++ {
		l := s.Grid.LineAt(line + coord.LineOffset(row))
		if l == nil {
			continue
		}
		cells := l.Inflate()
		for col := 0; col < int(spanCells.Columns) && int(s.cursor.Column)+col < len(cells); col++ {
			c := &cells[int(s.cursor.Column)+col]
			*c = cell.Cell{Width: 1}
			c.SetBase(' ', 1)
			c.Image = cell.ImageFragmentRef{Image: handle, OffsetX: col, OffsetY: row}
			s.images.Retain(handle)
		}
	}

	if cursorNextToGraphic {
		s.cursor.Line += coord.LineOffset(spanCells.Lines)
		if int(s.cursor.Line) > s.bottomMargin {
			if sixelScrolling {
				s.Grid.ScrollUp(int(s.cursor.Line)-s.bottomMargin, s.attrs, s.vMargin())
			}
			s.cursor.Line = coord.LineOffset(s.bottomMargin)
		}
	}
}
