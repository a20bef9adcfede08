package screen

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/christianparpart/libterminal/coord"
)

// DA1 replies to Primary Device Attributes. Grounded on hdl_csi_da1's
// plain-VT220 reply in the teacher, extended to the VT525-class
// capability set spec.md §6 implies (DECSLRM/rectangular ops -> "vt525"
// class capability numbers rather than mosh's bare vt220).
func (s *Screen) DA1() {
	s.reply.Reply("\x1b[?65;1;9;15;22;28;41;42;52;61;62;63;64;65c")
}

// DA2 replies to Secondary Device Attributes.
func (s *Screen) DA2() {
	s.reply.Reply("\x1b[>65;1;0c")
}

// DA3 replies to Tertiary Device Attributes with a unit ID.
func (s *Screen) DA3() {
	s.reply.Reply("\x1bP!|00000000\x1b\\")
}

// DSR replies to Device Status Report; mode 6 is CPR (position query),
// everything else reports OK per xterm convention.
func (s *Screen) DSR(mode int) {
	switch mode {
	case 6:
		s.CPRReply()
	default:
		s.reply.Reply("\x1b[0n")
	}
}

// CPRReply reports the current cursor position (1-based, margin-relative
// under origin mode is NOT applied to the report per xterm convention:
// CPR always reports absolute page coordinates).
func (s *Screen) CPRReply() {
	s.reply.Reply(fmt.Sprintf("\x1b[%d;%dR", int(s.cursor.Line)+1, int(s.cursor.Column)+1))
}

// XTVERSION replies with an implementation name/version string.
func (s *Screen) XTVERSION() {
	s.reply.Reply("\x1bP>|libterminal(1.0.0)\x1b\\")
}

// XTGetTcap replies to DCS + q, hex-decoding each `;`-separated capability
// name and replying with its hex-encoded value (or an unsuccessful "0"
// reply prefix when the name is unknown), per spec.md §6.
func (s *Screen) XTGetTcap(names []string, lookup func(name string) (string, bool)) {
	valid := 1
	var out string
	for i, hexName := range names {
		if i > 0 {
			out += ";"
		}
		raw, err := hex.DecodeString(hexName)
		if err != nil {
			valid = 0
			continue
		}
		val, ok := lookup(string(raw))
		if !ok {
			valid = 0
			out += hexName
			continue
		}
		out += hexName + "=" + hex.EncodeToString([]byte(val))
	}
	s.reply.Reply(fmt.Sprintf("\x1bP%dq%s\x1b\\", valid, out))
}

// DECRQSS replies to a status-string request with a valid-request DCS
// carrying reply, the queried control's current setting as already
// rendered by the caller (Terminal).
func (s *Screen) DECRQSS(reply string) {
	s.reply.Reply(fmt.Sprintf("\x1bP1$r%s\x1b\\", reply))
}

// DECRQSSInvalid replies that the queried control string is not
// recognized.
func (s *Screen) DECRQSSInvalid() {
	s.reply.Reply("\x1bP0$r\x1b\\")
}

// CurrentSGRString renders the active attributes for a DECRQSS "m" query.
func (s *Screen) CurrentSGRString() string {
	return s.attrs.SGR()
}

// ReportMode replies to DECRQM (CSI Ps $ p / CSI ? Ps $ p): private
// selects the DEC-private vs. ANSI reply form, state follows xterm's
// convention (0 not recognized, 1 set, 2 reset, 3 permanently set, 4
// permanently reset).
func (s *Screen) ReportMode(private bool, mode, state int) {
	if private {
		s.reply.Reply(fmt.Sprintf("\x1b[?%d;%d$y", mode, state))
		return
	}
	s.reply.Reply(fmt.Sprintf("\x1b[%d;%d$y", mode, state))
}

// ReportTextAreaSize replies to WINMANIP Ps 18/19 (report the text area
// size in characters), per xterm's CSI 8 ; height ; width t convention.
func (s *Screen) ReportTextAreaSize(lines, cols int) {
	s.reply.Reply(fmt.Sprintf("\x1b[8;%d;%dt", lines, cols))
}

// ReportGraphicsAttr replies to XTSMGRAPHICS with CSI ? Pi ; Ps ; Pv S,
// where Pv is zero or more semicolon-joined item-specific values (a
// register count for Pi=1, pixel width;height for Pi=2). Ps follows
// xterm's convention (0 success, 1 item error, 2 action error, 3 failure).
func (s *Screen) ReportGraphicsAttr(pi, ps int, values ...int) {
	out := fmt.Sprintf("\x1b[?%d;%d", pi, ps)
	for _, v := range values {
		out += fmt.Sprintf(";%d", v)
	}
	s.reply.Reply(out + "S")
}

// ReportColorStackDepth replies to XTREPORTCOLORS with CSI Ps # Q, Ps
// being the number of palettes currently saved on the color stack (not
// the number of colors).
func (s *Screen) ReportColorStackDepth(n int) {
	s.reply.Reply(fmt.Sprintf("\x1b[%d#Q", n))
}

// captureChunkSize bounds each capture-buffer reply envelope, matching
// the original implementation's chunking so a huge scrollback capture
// doesn't block behind one unbounded write.
const captureChunkSize = 4096

// captureBufferCode is the private code the original implementation
// wraps each capture-buffer chunk in (ESC ^ code ; <text> ST).
const captureBufferCode = 314

// CaptureBuffer replies to CSI Mode;[Count]t: streams up to lineCount
// trailing rows of the grid back over the pty, physical (logical=false)
// or with soft-wrapped continuations rejoined (logical=true), as one or
// more ESC ^ 314 ; <text> ST envelopes bounded by captureChunkSize bytes,
// terminated by an empty envelope. Grounded on the original's
// Screen::captureBuffer.
func (s *Screen) CaptureBuffer(logical bool, lineCount int) {
	pageLines := int(s.Grid.PageSize().Lines)
	history := s.Grid.HistoryLineCount()

	var start coord.LineOffset
	if logical {
		start = s.Grid.ComputeLogicalLineNumberFromBottom(lineCount)
	} else {
		start = coord.LineOffset(pageLines - lineCount)
	}
	start = coord.LineOffset(coord.Clamp(int(start), -history, pageLines))

	chunk := 0
	push := func(data string) {
		if data == "" {
			return
		}
		if chunk == 0 {
			s.reply.Reply(fmt.Sprintf("\x1b^%d;", captureBufferCode))
		} else if chunk+len(data) >= captureChunkSize {
			s.reply.Reply("\x1b\\")
			s.reply.Reply(fmt.Sprintf("\x1b^%d;", captureBufferCode))
			chunk = 0
		}
		s.reply.Reply(data)
		chunk += len(data)
	}
	visitLine := func(text string) {
		text = strings.TrimRight(text, " ")
		if text == "" {
			return
		}
		push(text)
		push("\n")
	}

	if logical {
		s.Grid.LogicalLinesFrom(start, func(_ coord.LineOffset, text string) bool {
			visitLine(text)
			return true
		})
	} else {
		for line := start; line < coord.LineOffset(pageLines); line++ {
			if l := s.Grid.LineAt(line); l != nil {
				visitLine(l.ToUTF8())
			}
		}
	}

	if chunk != 0 {
		s.reply.Reply("\x1b\\")
	}
	s.reply.Reply(fmt.Sprintf("\x1b^%d;\x1b\\", captureBufferCode))
}

// DECRQPSRTabStops replies to DECRQPSR mode 2 (tab stop report): a
// slash-separated list of 1-based tab stop columns.
func (s *Screen) DECRQPSRTabStops() {
	out := "\x1bP2$u"
	first := true
	for i, set := range s.tabStops {
		if !set {
			continue
		}
		if !first {
			out += "/"
		}
		out += fmt.Sprintf("%d", i+1)
		first = false
	}
	s.reply.Reply(out + "\x1b\\")
}
