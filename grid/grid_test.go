package grid

import (
	"testing"

	"github.com/christianparpart/libterminal/cell"
	"github.com/christianparpart/libterminal/coord"
)

func TestScrollUpMovesLinesToHistoryUpToMax(t *testing.T) {
	g := New(coord.PageSize{Lines: 4, Columns: 10}, 2, false, nil)
	margin := coord.Margin{Begin: 0, End: 3}
	for i := 0; i < 5; i++ {
		g.ScrollUp(1, cell.GraphicsAttributes{}, margin)
	}
	if got, want := g.HistoryLineCount(), 2; got != want {
		t.Fatalf("historyLineCount = %d, want %d (bounded at maxHistory)", got, want)
	}
}

func TestScrollUpPartialMarginDoesNotGrowHistory(t *testing.T) {
	g := New(coord.PageSize{Lines: 4, Columns: 10}, 10, false, nil)
	margin := coord.Margin{Begin: 1, End: 2}
	g.ScrollUp(1, cell.GraphicsAttributes{}, margin)
	if got := g.HistoryLineCount(); got != 0 {
		t.Fatalf("historyLineCount = %d, want 0 for a scoped-margin scroll", got)
	}
}

func TestInflateProducesExactlyPageWidthCells(t *testing.T) {
	g := New(coord.PageSize{Lines: 2, Columns: 8}, 0, false, nil)
	l := g.LineAt(0)
	cells := l.Inflate()
	if len(cells) != 8 {
		t.Fatalf("inflate(line).len = %d, want pageSize.columns (8)", len(cells))
	}
}

func TestResizeWithReflowRoundTripPreservesText(t *testing.T) {
	g := New(coord.PageSize{Lines: 2, Columns: 10}, 0, true, nil)
	frag := NewFragment([]byte("hello world"))
	l0 := NewTrivialLine(10, frag, 0, 10, 10, cell.GraphicsAttributes{}, 0, Wrappable)
	l0.SetFlag(Wrappable)
	l1 := NewTrivialLine(10, frag, 10, 1, 1, cell.GraphicsAttributes{}, 0, Wrapped)
	g.page[0] = l0
	g.page[1] = l1

	cur := g.Resize(coord.PageSize{Lines: 2, Columns: 20}, coord.CellLocation{}, false)
	_ = cur

	var text string
	for i := 0; i < len(g.page); i++ {
		text += g.page[i].ToUTF8()
	}
	if got, want := text, "hello world"; got != want {
		t.Fatalf("reflowed text = %q, want %q", got, want)
	}
}

func TestClearHistoryEmptiesRing(t *testing.T) {
	g := New(coord.PageSize{Lines: 2, Columns: 10}, 10, false, nil)
	margin := coord.Margin{Begin: 0, End: 1}
	g.ScrollUp(2, cell.GraphicsAttributes{}, margin)
	if g.HistoryLineCount() == 0 {
		t.Fatal("expected history to be non-empty before Clear")
	}
	g.ClearHistory()
	if got := g.HistoryLineCount(); got != 0 {
		t.Fatalf("historyLineCount after ClearHistory = %d, want 0", got)
	}
}
