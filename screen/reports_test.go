package screen

import (
	"strings"
	"testing"

	"github.com/christianparpart/libterminal/coord"
	"github.com/christianparpart/libterminal/grid"
)

type collectReply struct{ sb strings.Builder }

func (c *collectReply) Reply(s string) { c.sb.WriteString(s) }

func newTestScreenWithReply(lines, cols int, reply ReplyWriter) *Screen {
	g := grid.New(coord.PageSize{Lines: coord.LineCount(lines), Columns: coord.ColumnCount(cols)}, 100, false, nil)
	return New(g, nil, nil, reply)
}

func TestReportModeANSIAndPrivateForms(t *testing.T) {
	reply := &collectReply{}
	s := newTestScreenWithReply(5, 20, reply)

	s.ReportMode(false, 4, 1)
	if reply.sb.String() != "\x1b[4;1$y" {
		t.Fatalf("ANSI reply = %q", reply.sb.String())
	}

	reply.sb.Reset()
	s.ReportMode(true, 25, 2)
	if reply.sb.String() != "\x1b[?25;2$y" {
		t.Fatalf("private reply = %q", reply.sb.String())
	}
}

func TestReportTextAreaSize(t *testing.T) {
	reply := &collectReply{}
	s := newTestScreenWithReply(24, 80, reply)
	s.ReportTextAreaSize(24, 80)
	if reply.sb.String() != "\x1b[8;24;80t" {
		t.Fatalf("reply = %q", reply.sb.String())
	}
}

func TestReportGraphicsAttrColorRegisters(t *testing.T) {
	reply := &collectReply{}
	s := newTestScreenWithReply(5, 20, reply)
	s.ReportGraphicsAttr(1, 0, 256)
	if reply.sb.String() != "\x1b[?1;0;256S" {
		t.Fatalf("reply = %q", reply.sb.String())
	}
}

func TestReportColorStackDepth(t *testing.T) {
	reply := &collectReply{}
	s := newTestScreenWithReply(5, 20, reply)
	s.ReportColorStackDepth(2)
	if reply.sb.String() != "\x1b[2#Q" {
		t.Fatalf("reply = %q", reply.sb.String())
	}
}

func TestCaptureBufferPhysicalLinesTrimsBlankRight(t *testing.T) {
	reply := &collectReply{}
	s := newTestScreenWithReply(3, 10, reply)
	s.WriteText("row0", 4)
	s.SetCursor(coord.CellLocation{Line: 1, Column: 0})
	s.WriteText("row1", 4)

	s.CaptureBuffer(false, 3)

	out := reply.sb.String()
	if !strings.Contains(out, "row0\n") || !strings.Contains(out, "row1\n") {
		t.Fatalf("capture output = %q, want it to contain both trimmed rows", out)
	}
	if !strings.HasPrefix(out, "\x1b^314;") || !strings.HasSuffix(out, "\x1b^314;\x1b\\") {
		t.Fatalf("capture output = %q, want it framed by the 314 envelope", out)
	}
}

func TestCaptureBufferEmptyPageStillSendsTerminatingEnvelope(t *testing.T) {
	reply := &collectReply{}
	s := newTestScreenWithReply(2, 10, reply)
	s.CaptureBuffer(false, 2)
	if reply.sb.String() != "\x1b^314;\x1b\\" {
		t.Fatalf("reply = %q, want just the terminating envelope", reply.sb.String())
	}
}
