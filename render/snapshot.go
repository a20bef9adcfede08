package render

import (
	"github.com/christianparpart/libterminal/cell"
	"github.com/christianparpart/libterminal/coord"
	"github.com/christianparpart/libterminal/grid"
)

// BuildSnapshot walks the visible page of g and produces a Snapshot ready
// for CommitBack. Trivial lines are copied as their raw text without
// forcing an inflate, so a render pass never mutates the grid it is
// reading (a Trivial line stays Trivial after being painted).
func BuildSnapshot(g *grid.Grid, cursor coord.CellLocation, cursorVisible bool, shape CursorShape, blinking bool) Snapshot {
	size := g.PageSize()
	lines := make([]RenderLine, 0, int(size.Lines))
	for i := 0; i < int(size.Lines); i++ {
		l := g.LineAt(coord.LineOffset(i))
		if l.IsTrivial() {
			lines = append(lines, RenderLine{Line: i, Text: l.ToUTF8()})
			continue
		}
		cells := l.Inflate()
		rc := make([]RenderCell, len(cells))
		for x, c := range cells {
			rc[x] = renderCellFrom(x, c)
		}
		lines = append(lines, RenderLine{Line: i, Cells: rc})
	}

	var rcursor *RenderCursor
	if cursorVisible {
		rcursor = &RenderCursor{Position: cursor, Shape: shape, Visible: true, Blinking: blinking}
	}

	return Snapshot{Lines: lines, Cursor: rcursor, PageSize: size}
}

func renderCellFrom(col int, c cell.Cell) RenderCell {
	return RenderCell{
		Column: col,
		Runes:  c.Runes(),
		Width:  int(c.Width),
		Attrs:  c.Attrs,
		Link:   c.Link,
		Image:  c.Image,
	}
}
