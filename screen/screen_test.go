package screen

import (
	"testing"

	"github.com/christianparpart/libterminal/coord"
	"github.com/christianparpart/libterminal/grid"
)

type discardReply struct{ last string }

func (d *discardReply) Reply(s string) { d.last = s }

func newTestScreen(lines, cols int) *Screen {
	g := grid.New(coord.PageSize{Lines: coord.LineCount(lines), Columns: coord.ColumnCount(cols)}, 0, false, nil)
	return New(g, nil, nil, &discardReply{})
}

func TestWriteTextTrivialFastPath(t *testing.T) {
	s := newTestScreen(5, 20)
	s.WriteText("hello", 5)

	line := s.Grid.LineAt(0)
	if !line.IsTrivial() {
		t.Fatal("expected the line to remain Trivial after a fast-path write")
	}
	if got := line.ToUTF8(); got != "hello" {
		t.Fatalf("line text = %q, want %q", got, "hello")
	}
	if s.Cursor().Column != 5 {
		t.Fatalf("cursor column = %d, want 5", s.Cursor().Column)
	}
}

func TestAutoWrapMarksNextLineWrapped(t *testing.T) {
	s := newTestScreen(3, 5)
	s.WriteText("abcde", 5)
	if !s.wrapPending {
		t.Fatal("expected wrapPending after filling the line exactly to the margin")
	}
	s.PrintRune('f')
	if s.Cursor().Line != 1 || s.Cursor().Column != 1 {
		t.Fatalf("cursor after wrap = %+v, want line 1 col 1", s.Cursor())
	}
	if !s.Grid.LineAt(1).HasFlag(grid.Wrapped) {
		t.Fatal("expected line 1 to carry the Wrapped flag after autowrap")
	}
}

func TestEDEraseBelowLeavesLinesAboveIntact(t *testing.T) {
	s := newTestScreen(3, 10)
	s.WriteText("row0", 4)
	s.SetCursor(coord.CellLocation{Line: 1, Column: 0})
	s.WriteText("row1", 4)
	s.SetCursor(coord.CellLocation{Line: 1, Column: 0})

	s.ED(0, false)

	if got := s.Grid.LineAt(0).ToUTF8(); got != "row0" {
		t.Fatalf("line 0 after ED(0) = %q, want untouched %q", got, "row0")
	}
	if got := s.Grid.LineAt(1).ToUTF8(); got != "" {
		t.Fatalf("line 1 after ED(0) = %q, want erased", got)
	}
}

func TestApplySGRForegroundPalette(t *testing.T) {
	s := newTestScreen(2, 10)
	s.ApplySGR(31, nil)
	if !s.Attrs().Foreground.Valid() || s.Attrs().Foreground.Index() != 1 {
		t.Fatalf("foreground = %+v, want palette index 1", s.Attrs().Foreground)
	}
}

func TestApplySGRTrueColorSubParams(t *testing.T) {
	s := newTestScreen(2, 10)
	// 38:2::255:128:0 decoded as one Param [2, empty, 255, 128, 0]
	s.ApplySGR(38, []uint16{2, emptySub, 255, 128, 0})
	r, g, b := s.Attrs().Foreground.RGB()
	if r != 255 || g != 128 || b != 0 {
		t.Fatalf("rgb = %d,%d,%d, want 255,128,0", r, g, b)
	}
}

func TestTabStopsDefaultEvery8Columns(t *testing.T) {
	s := newTestScreen(2, 40)
	s.HorizontalTab()
	if s.Cursor().Column != 8 {
		t.Fatalf("first default tab stop = %d, want 8", s.Cursor().Column)
	}
}

func TestHTSInstallsCustomTabStop(t *testing.T) {
	s := newTestScreen(2, 40)
	s.SetCursor(coord.CellLocation{Line: 0, Column: 5})
	s.HTS()
	s.SetCursor(coord.CellLocation{Line: 0, Column: 0})
	s.HorizontalTab()
	if s.Cursor().Column != 5 {
		t.Fatalf("cursor after tab = %d, want custom stop at 5", s.Cursor().Column)
	}
}

func TestScrollUpWithinMarginDoesNotGrowHistory(t *testing.T) {
	s := newTestScreen(5, 10)
	s.SetMargins(2, 4)
	s.SU(1)
	if s.Grid.HistoryLineCount() != 0 {
		t.Fatalf("history should stay empty for a margin-scoped scroll, got %d", s.Grid.HistoryLineCount())
	}
}

func TestDECSCDECRCRestoresCursorSGRCharsetsOriginAutoWrapAndLink(t *testing.T) {
	s := newTestScreen(5, 20)
	s.ApplySGR(31, nil)
	s.SetLink(7)
	s.SetOriginMode(true) // homes the cursor, so position it afterwards
	s.SetCursor(coord.CellLocation{Line: 1, Column: 3})
	s.SetAutoWrap(false)
	s.SCS(0, CharsetDECSpecialGraphics)
	s.LS1()

	s.DECSC()

	s.SetCursor(coord.CellLocation{Line: 4, Column: 0})
	s.ApplySGR(0, nil)
	s.SetLink(0)
	s.SetOriginMode(false)
	s.SetAutoWrap(true)
	s.SCS(0, CharsetUSASCII)
	s.LS0()

	s.DECRC()

	if s.Cursor().Line != 1 || s.Cursor().Column != 3 {
		t.Fatalf("cursor after DECRC = %+v, want line 1 col 3", s.Cursor())
	}
	if !s.Attrs().Foreground.Valid() || s.Attrs().Foreground.Index() != 1 {
		t.Fatalf("attrs after DECRC = %+v, want palette index 1 foreground", s.Attrs())
	}
	if s.Link() != 7 {
		t.Fatalf("link after DECRC = %d, want 7", s.Link())
	}
	if !s.originMode {
		t.Fatal("expected DECRC to restore origin mode")
	}
	if s.autoWrap {
		t.Fatal("expected DECRC to restore autoWrap=false")
	}
	if s.gset[0] != CharsetDECSpecialGraphics {
		t.Fatalf("gset[0] after DECRC = %v, want DECSpecialGraphics", s.gset[0])
	}
	if s.gl != 1 {
		t.Fatalf("gl after DECRC = %d, want 1", s.gl)
	}
}
