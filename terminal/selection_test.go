package terminal

import (
	"testing"

	"github.com/christianparpart/libterminal/coord"
)

func TestSelectionLinearExtractSingleLine(t *testing.T) {
	term := New(coord.PageSize{Lines: 5, Columns: 20}, 100, 8, 16)
	term.Feed([]byte("hello world"))
	term.StartSelection(SelectionLinear, coord.CellLocation{Line: 0, Column: 0})
	term.ExtendSelection(coord.CellLocation{Line: 0, Column: 4})
	term.CompleteSelection()

	if got := term.SelectionText(); got != "hello" {
		t.Fatalf("SelectionText() = %q, want %q", got, "hello")
	}
}

func TestSelectionLinearJoinsWrappedLines(t *testing.T) {
	term := New(coord.PageSize{Lines: 5, Columns: 5}, 100, 8, 16)
	term.Feed([]byte("abcdefgh"))
	term.StartSelection(SelectionLinear, coord.CellLocation{Line: 0, Column: 0})
	term.ExtendSelection(coord.CellLocation{Line: 1, Column: 2})
	term.CompleteSelection()

	if got := term.SelectionText(); got != "abcdefgh" {
		t.Fatalf("SelectionText() across a wrap = %q, want %q (no newline at the wrap point)", got, "abcdefgh")
	}
}

func TestSelectionRectangularTakesColumnBand(t *testing.T) {
	term := New(coord.PageSize{Lines: 3, Columns: 10}, 100, 8, 16)
	term.Feed([]byte("0123456789\r\n0123456789\r\n0123456789"))
	term.StartSelection(SelectionRectangular, coord.CellLocation{Line: 0, Column: 2})
	term.ExtendSelection(coord.CellLocation{Line: 2, Column: 4})
	term.CompleteSelection()

	want := "234\n234\n234"
	if got := term.SelectionText(); got != want {
		t.Fatalf("SelectionText() = %q, want %q", got, want)
	}
}

func TestSelectionClearedByResize(t *testing.T) {
	term := New(coord.PageSize{Lines: 5, Columns: 20}, 100, 8, 16)
	term.StartSelection(SelectionLinear, coord.CellLocation{Line: 0, Column: 0})
	term.ExtendSelection(coord.CellLocation{Line: 0, Column: 5})
	term.CompleteSelection()

	term.Resize(coord.PageSize{Lines: 6, Columns: 20})
	if term.selection.Active() {
		t.Fatal("expected Resize to clear the live selection")
	}
}

func TestSelectionContainsHonorsShape(t *testing.T) {
	s := NewSelection()
	s.Start(SelectionRectangular, coord.CellLocation{Line: 0, Column: 5})
	s.Extend(coord.CellLocation{Line: 2, Column: 8})
	s.Complete()

	if !s.Contains(coord.CellLocation{Line: 1, Column: 6}) {
		t.Fatal("expected the rectangle's middle row/column to be contained")
	}
	if s.Contains(coord.CellLocation{Line: 1, Column: 2}) {
		t.Fatal("expected a column left of the rectangle's band to be excluded")
	}
}

func TestSnapToWordExpandsToWordBoundaries(t *testing.T) {
	term := New(coord.PageSize{Lines: 3, Columns: 20}, 100, 8, 16)
	term.Feed([]byte("hello world"))

	from, to := SnapToWord(term.active().Grid, coord.CellLocation{Line: 0, Column: 8})
	if from.Column != 6 || to.Column != 10 {
		t.Fatalf("SnapToWord = %v..%v, want columns 6..10 (\"world\")", from, to)
	}
}
