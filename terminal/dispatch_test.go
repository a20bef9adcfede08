package terminal

import (
	"testing"

	"github.com/christianparpart/libterminal/cell"
	"github.com/christianparpart/libterminal/coord"
	"github.com/christianparpart/libterminal/render"
	"github.com/christianparpart/libterminal/vtsequence"
)

func newTestTerminal() *Terminal {
	return New(coord.PageSize{Lines: 5, Columns: 20}, 100, 8, 16)
}

func TestDispatchPrintWritesToActiveScreen(t *testing.T) {
	term := newTestTerminal()
	term.disp.Print('A')
	if got := term.active().Grid.LineAt(0).ToUTF8(); got == "" {
		t.Fatal("expected Print to leave a visible character on line 0")
	}
}

func TestDispatchCUPMovesCursor(t *testing.T) {
	term := newTestTerminal()
	seq := vtsequence.Sequence{
		Category:  vtsequence.CategoryCSI,
		FinalByte: 'H',
		Params:    []vtsequence.Param{{3}, {5}},
	}
	term.disp.dispatch(seq)
	pos := term.active().Cursor()
	if pos.Line != 2 || pos.Column != 4 {
		t.Fatalf("cursor = %+v, want row 2 col 4 (1-based 3,5)", pos)
	}
}

func TestDispatchDECSETAltScreenSwitchesActive(t *testing.T) {
	term := newTestTerminal()
	seq := vtsequence.Sequence{
		Category:      vtsequence.CategoryCSI,
		Leader:        '?',
		FinalByte:     'h',
		Params:        []vtsequence.Param{{1049}},
	}
	term.disp.dispatch(seq)
	if term.active() != term.alt {
		t.Fatal("expected DECSET 1049 to switch the active screen to alt")
	}
	if !term.modes.Current().AltScreenBuffer {
		t.Fatal("expected AltScreenBuffer mode to be set")
	}
}

func TestDispatchDECRSTShowCursorClearsFlag(t *testing.T) {
	term := newTestTerminal()
	on := vtsequence.Sequence{Category: vtsequence.CategoryCSI, Leader: '?', FinalByte: 'l', Params: []vtsequence.Param{{25}}}
	term.disp.dispatch(on)
	if term.modes.Current().ShowCursor {
		t.Fatal("expected DECRST 25 to clear ShowCursor")
	}
}

func TestDispatchSMInsertSetsMode(t *testing.T) {
	term := newTestTerminal()
	seq := vtsequence.Sequence{Category: vtsequence.CategoryCSI, FinalByte: 'h', Params: []vtsequence.Param{{4}}}
	term.disp.dispatch(seq)
	if !term.modes.Current().Insert {
		t.Fatal("expected SM 4 to set Insert mode")
	}
}

func TestDispatchOSC4ReassignsBasePaletteSlot(t *testing.T) {
	term := newTestTerminal()
	term.disp.handleOSC("4;1;rgb:11/22/33")
	r, g, b := term.palette.Resolve(cell.PaletteColor(1))
	if r != 0x11 || g != 0x22 || b != 0x33 {
		t.Fatalf("slot 1 = %d,%d,%d, want 17,34,51", r, g, b)
	}
}

func TestDispatchOSC8OpensAndClearsHyperlink(t *testing.T) {
	term := newTestTerminal()
	term.disp.handleOSC("8;id=x;https://example.com")
	if term.active().Link() == 0 {
		t.Fatal("expected OSC 8 with a URI to set the active link")
	}
	term.disp.handleOSC("8;;")
	if term.active().Link() != 0 {
		t.Fatal("expected OSC 8 with an empty URI to clear the active link")
	}
}

func TestDispatchXTSAVERESTOREModesRoundTrip(t *testing.T) {
	term := newTestTerminal()
	save := vtsequence.Sequence{Category: vtsequence.CategoryCSI, Leader: '?', FinalByte: 's', Params: []vtsequence.Param{{25}}}
	term.disp.dispatch(save)

	hideCursor := vtsequence.Sequence{Category: vtsequence.CategoryCSI, Leader: '?', FinalByte: 'l', Params: []vtsequence.Param{{25}}}
	term.disp.dispatch(hideCursor)

	restore := vtsequence.Sequence{Category: vtsequence.CategoryCSI, Leader: '?', FinalByte: 'r', Params: []vtsequence.Param{{25}}}
	term.disp.dispatch(restore)
	if !term.modes.Current().ShowCursor {
		t.Fatal("expected XTRESTORE to bring back the saved mode set")
	}
}

func TestDispatchDECSCUSRSetsCursorShapeAndBlink(t *testing.T) {
	term := newTestTerminal()
	seq := vtsequence.Sequence{Category: vtsequence.CategoryCSI, Intermediates: " ", FinalByte: 'q', Params: []vtsequence.Param{{4}}}
	term.disp.dispatch(seq)
	m := term.modes.Current()
	if m.CursorShape != render.CursorShapeUnderline || m.CursorBlink {
		t.Fatalf("modes after DECSCUSR 4 = %+v, want steady underline", m)
	}
}

func TestDispatchDECFIKeepsCursorAtRightMargin(t *testing.T) {
	term := newTestTerminal()
	term.active().SetCursor(coord.CellLocation{Line: 0, Column: 19})
	term.disp.dispatch(vtsequence.Sequence{Category: vtsequence.CategoryESC, FinalByte: '9'})
	if got := term.active().Cursor().Column; got != 19 {
		t.Fatalf("cursor column after DECFI at page edge = %d, want unchanged at 19 (shift path)", got)
	}
}

func TestDispatchDECCARASetsBoldAcrossRectangle(t *testing.T) {
	term := newTestTerminal()
	term.active().WriteText("hello", 5)
	seq := vtsequence.Sequence{
		Category:      vtsequence.CategoryCSI,
		Intermediates: "$",
		FinalByte:     'r',
		Params:        []vtsequence.Param{{1}, {1}, {1}, {5}, {1}},
	}
	term.disp.dispatch(seq)
	cells := term.active().Grid.LineAt(0).Inflate()
	if !cells[0].Attrs.Has(cell.Bold) {
		t.Fatal("expected DECCARA to set Bold on the rectangle's cells")
	}
}

func TestDispatchWinManipLegacyDECSLPPResizesLines(t *testing.T) {
	term := newTestTerminal()
	seq := vtsequence.Sequence{Category: vtsequence.CategoryCSI, FinalByte: 't', Params: []vtsequence.Param{{30}}}
	term.disp.dispatch(seq)
	if got := term.active().Grid.PageSize().Lines; got != 30 {
		t.Fatalf("lines after WINMANIP 30 = %d, want 30", got)
	}
}

func TestDispatchDECSCPPResizesColumns(t *testing.T) {
	term := newTestTerminal()
	seq := vtsequence.Sequence{Category: vtsequence.CategoryCSI, Intermediates: "$", FinalByte: '|', Params: []vtsequence.Param{{132}}}
	term.disp.dispatch(seq)
	if got := term.active().Grid.PageSize().Columns; got != 132 {
		t.Fatalf("columns after DECSCPP 132 = %d, want 132", got)
	}
}

func TestDispatchSGRSemicolonTrueColorGroupsRGBTriplet(t *testing.T) {
	term := newTestTerminal()
	seq := vtsequence.Sequence{
		Category:  vtsequence.CategoryCSI,
		FinalByte: 'm',
		Params:    []vtsequence.Param{{38}, {2}, {10}, {20}, {30}},
	}
	term.disp.dispatch(seq)
	r, g, b := term.active().Attrs().Foreground.RGB()
	if r != 10 || g != 20 || b != 30 {
		t.Fatalf("foreground after 38;2;10;20;30 = %d,%d,%d, want 10,20,30", r, g, b)
	}
}

func TestDispatchSGRColonTrueColorStripsLeadingCode(t *testing.T) {
	term := newTestTerminal()
	seq := vtsequence.Sequence{
		Category:  vtsequence.CategoryCSI,
		FinalByte: 'm',
		Params:    []vtsequence.Param{{38, 2, 0xffff, 255, 128, 0}}, // 0xffff is vtsequence's empty-colon-field sentinel
	}
	term.disp.dispatch(seq)
	r, g, b := term.active().Attrs().Foreground.RGB()
	if r != 255 || g != 128 || b != 0 {
		t.Fatalf("foreground after 38:2::255:128:0 = %d,%d,%d, want 255,128,0", r, g, b)
	}
}

func TestDispatchSGRColonUnderlineSubstyleStripsLeadingCode(t *testing.T) {
	term := newTestTerminal()
	seq := vtsequence.Sequence{
		Category:  vtsequence.CategoryCSI,
		FinalByte: 'm',
		Params:    []vtsequence.Param{{4, 3}},
	}
	term.disp.dispatch(seq)
	if got := term.active().Attrs().Underline; got != cell.UnderlineCurly {
		t.Fatalf("underline after 4:3 = %v, want curly", got)
	}
}

func TestDispatchExecuteBellInvokesCallback(t *testing.T) {
	term := newTestTerminal()
	rang := false
	term.OnBell(func() { rang = true })
	term.disp.Execute(0x07)
	if !rang {
		t.Fatal("expected BEL to invoke the bell callback")
	}
}
