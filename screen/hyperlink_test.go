package screen

import (
	"testing"

	"github.com/christianparpart/libterminal/coord"
	"github.com/christianparpart/libterminal/grid"
	"github.com/christianparpart/libterminal/hyperlink"
)

func newTestScreenWithLinks(lines, cols int) (*Screen, *hyperlink.Storage) {
	links := hyperlink.New()
	g := grid.New(coord.PageSize{Lines: coord.LineCount(lines), Columns: coord.ColumnCount(cols)}, 0, false, links)
	return New(g, links, nil, &discardReply{}), links
}

func TestPrintRuneRetainsHyperlinkPerCellSurvivesPartialErase(t *testing.T) {
	s, links := newTestScreenWithLinks(2, 10)
	id := links.Open(hyperlink.Link{URI: "https://example.com"})
	s.SetLink(id)
	for _, r := range "abc" {
		s.PrintRune(r)
	}
	s.SetLink(0)

	if links.Len() != 1 {
		t.Fatalf("Len() after printing 3 linked cells = %d, want 1", links.Len())
	}

	s.SetCursor(coord.CellLocation{Line: 0, Column: 0})
	s.ECH(1) // erases only the first cell, releasing 1 of 3 refs

	if links.Len() != 1 {
		t.Fatalf("Len() after erasing 1 of 3 linked cells = %d, want 1", links.Len())
	}

	s.EL(0, false) // erases the rest of the line, releasing the remaining 2 refs

	if links.Len() != 0 {
		t.Fatalf("Len() after erasing all linked cells = %d, want 0 (entry evicted)", links.Len())
	}
}

func TestPrintRuneOverwriteReleasesOldHyperlink(t *testing.T) {
	s, links := newTestScreenWithLinks(2, 10)
	id := links.Open(hyperlink.Link{URI: "https://example.com"})
	s.SetLink(id)
	s.PrintRune('a')
	s.SetLink(0)

	if links.Len() != 1 {
		t.Fatalf("Len() after printing one linked cell = %d, want 1", links.Len())
	}

	s.SetCursor(coord.CellLocation{Line: 0, Column: 0})
	s.PrintRune('b') // overwrites the linked cell with an unlinked one

	if links.Len() != 0 {
		t.Fatalf("Len() after overwriting the only linked cell = %d, want 0", links.Len())
	}
}

func TestWriteTextTrivialFastPathRetainsAndReleasesLineLink(t *testing.T) {
	s, links := newTestScreenWithLinks(2, 10)
	id := links.Open(hyperlink.Link{URI: "https://example.com"})
	s.SetLink(id)
	s.WriteText("hello", 5)
	s.SetLink(0)

	if links.Len() != 1 {
		t.Fatalf("Len() after trivial-path write = %d, want 1", links.Len())
	}

	s.SetCursor(coord.CellLocation{Line: 0, Column: 0})
	s.EL(0, false)

	if links.Len() != 0 {
		t.Fatalf("Len() after erasing the trivial line = %d, want 0", links.Len())
	}
}

func TestDECSCDECRCEachHoldTheirOwnHyperlinkReference(t *testing.T) {
	s, links := newTestScreenWithLinks(2, 10)
	id := links.Open(hyperlink.Link{URI: "https://example.com"})
	s.SetLink(id)
	s.DECSC()
	s.SetLink(0) // cursor's own reference drops; DECSC's saved slot should keep the entry alive

	if links.Len() != 1 {
		t.Fatalf("Len() after clearing currentLink post-DECSC = %d, want 1 (savedLink still owns a ref)", links.Len())
	}

	s.DECRC()
	if s.Link() != id {
		t.Fatalf("Link() after DECRC = %d, want %d", s.Link(), id)
	}

	s.SetLink(0)
	if links.Len() != 1 {
		t.Fatalf("Len() after clearing the restored link = %d, want 1 (savedLink still owns a ref until the next DECSC or a reset)", links.Len())
	}

	s.DECSTR()
	if links.Len() != 0 {
		t.Fatalf("Len() after DECSTR = %d, want 0 (soft reset releases the saved-cursor slot's link)", links.Len())
	}
}

func TestOSC8StyleReassignReleasesPreviousLink(t *testing.T) {
	s, links := newTestScreenWithLinks(2, 10)
	first := links.Open(hyperlink.Link{URI: "https://a.example"})
	s.SetLink(first)
	second := links.Open(hyperlink.Link{URI: "https://b.example"})
	s.SetLink(second)

	if links.Len() != 1 {
		t.Fatalf("Len() after reassigning the active link = %d, want 1 (first released)", links.Len())
	}
	if s.Link() != second {
		t.Fatalf("Link() = %d, want %d", s.Link(), second)
	}
}
