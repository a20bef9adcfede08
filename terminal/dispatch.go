package terminal

import (
	"strconv"
	"strings"

	"github.com/christianparpart/libterminal/cell"
	"github.com/christianparpart/libterminal/coord"
	"github.com/christianparpart/libterminal/hyperlink"
	"github.com/christianparpart/libterminal/render"
	"github.com/christianparpart/libterminal/screen"
	"github.com/christianparpart/libterminal/vtlog"
	"github.com/christianparpart/libterminal/vtparser"
	"github.com/christianparpart/libterminal/vtsequence"
)

// dcsMode identifies which DCS payload collector is active between Hook
// and Unhook, since Screen and Terminal each own a different subset of
// the DCS repertoire (Sixel data goes to Screen's image decoder; GetTcap/
// DECRQSS need the full Terminal to answer).
type dcsMode uint8

const (
	dcsNone dcsMode = iota
	dcsSixel
	dcsGetTcap
	dcsDecrqss
	dcsStp
)

// dispatcher implements vtparser.Sink for a Terminal, turning parser events into
// vtsequence.Sequence values and dispatching them against the active
// screen (or, for state spanning both grids, against itself). Grounded
// on terminal/handler.go's Handler, which performed the same
// event-to-action mapping directly off action.go's typed events rather
// than through an explicit FunctionID table.
type dispatcher struct {
	t *Terminal

	dcs        dcsMode
	dcsBuf     strings.Builder
	oscBuf     strings.Builder
	apcBuf     strings.Builder
	pmBuf      strings.Builder
	sixelCellW int
	sixelCellH int
}

func (d *dispatcher) Print(r rune) { d.t.active().PrintRune(r) }

func (d *dispatcher) BulkPrint(s string, cells int) { d.t.active().WriteText(s, cells) }

func (d *dispatcher) Execute(b byte) {
	s := d.t.active()
	switch b {
	case '\n', '\v', '\f':
		s.LineFeed()
		if d.t.modes.Current().AutoNewline {
			s.CarriageReturn()
		}
	case '\r':
		s.CarriageReturn()
	case '\b':
		s.Backspace()
	case '\t':
		s.HorizontalTab()
	case 0x07: // BEL
		d.t.onBell()
	case 0x0e: // SO -> G1
		s.LS1()
	case 0x0f: // SI -> G0
		s.LS0()
	default:
		vtlog.Unsupported("execute", "byte", b)
	}
}

func (d *dispatcher) EscDispatch(intermediates []byte, final byte) {
	seq := vtsequence.Sequence{Category: vtsequence.CategoryESC, Intermediates: string(intermediates), FinalByte: final}
	d.dispatch(seq)
}

func (d *dispatcher) CsiDispatch(raw vtparser.RawSequence) {
	seq := vtsequence.FromRaw(vtsequence.CategoryCSI, raw)
	d.dispatch(seq)
}

func (d *dispatcher) Hook(raw vtparser.RawSequence) {
	seq := vtsequence.FromRaw(vtsequence.CategoryDCS, raw)
	switch vtsequence.Lookup(seq) {
	case vtsequence.FnDCSSixel:
		d.dcs = dcsSixel
		d.sixelCellW, d.sixelCellH = d.t.cellWidth, d.t.cellHeight
		d.t.active().BeginSixel()
	case vtsequence.FnDCSGetTcap:
		d.dcs = dcsGetTcap
		d.dcsBuf.Reset()
	case vtsequence.FnDCSDecrqss:
		d.dcs = dcsDecrqss
		d.dcsBuf.Reset()
	case vtsequence.FnDCSSTP:
		d.dcs = dcsStp
		d.dcsBuf.Reset()
	default:
		d.dcs = dcsNone
		vtlog.Unsupported("dcs hook", "final", string(raw.Final))
	}
}

func (d *dispatcher) Put(b byte) {
	switch d.dcs {
	case dcsSixel:
		d.t.active().FeedSixel(b)
	case dcsGetTcap, dcsDecrqss, dcsStp:
		d.dcsBuf.WriteByte(b)
	}
}

func (d *dispatcher) Unhook() {
	switch d.dcs {
	case dcsSixel:
		cellSize := coord.PageSize{Lines: 1, Columns: 1}
		if d.sixelCellW > 0 && d.sixelCellH > 0 {
			cellSize = coord.PageSize{Lines: coord.LineCount(d.sixelCellH), Columns: coord.ColumnCount(d.sixelCellW)}
		}
		d.t.active().EndSixel(cellSize, d.t.modes.Current().AltScroll, false)
	case dcsGetTcap:
		names := strings.Split(d.dcsBuf.String(), ";")
		d.t.active().XTGetTcap(names, d.t.lookupTermcap)
	case dcsDecrqss:
		d.handleDECRQSS(d.dcsBuf.String())
	case dcsStp:
		vtlog.Unsupported("stp", "payload", d.dcsBuf.String())
	}
	d.dcs = dcsNone
}

func (d *dispatcher) OscStart() { d.oscBuf.Reset() }
func (d *dispatcher) OscPut(b byte) { d.oscBuf.WriteByte(b) }
func (d *dispatcher) OscEnd()   { d.handleOSC(d.oscBuf.String()) }

func (d *dispatcher) ApcStart() { d.apcBuf.Reset() }
func (d *dispatcher) ApcPut(b byte) { d.apcBuf.WriteByte(b) }
func (d *dispatcher) ApcEnd()   { vtlog.Unsupported("apc", "payload", d.apcBuf.String()) }

func (d *dispatcher) PmStart() { d.pmBuf.Reset() }
func (d *dispatcher) PmPut(b byte) { d.pmBuf.WriteByte(b) }
func (d *dispatcher) PmEnd()   { vtlog.Unsupported("pm", "payload", d.pmBuf.String()) }

func (d *dispatcher) dispatch(seq vtsequence.Sequence) {
	fn := vtsequence.Lookup(seq)
	s := d.t.active()
	switch fn {
	case vtsequence.FnCUU:
		s.CUU(int(seq.Param0(0, 1)))
	case vtsequence.FnCUD:
		s.CUD(int(seq.Param0(0, 1)))
	case vtsequence.FnCUF:
		s.CUF(int(seq.Param0(0, 1)))
	case vtsequence.FnCUB:
		s.CUB(int(seq.Param0(0, 1)))
	case vtsequence.FnCNL:
		s.CNL(int(seq.Param0(0, 1)))
	case vtsequence.FnCPL:
		s.CPL(int(seq.Param0(0, 1)))
	case vtsequence.FnCHA, vtsequence.FnHPA:
		s.CHA(int(seq.Param0(0, 1)))
	case vtsequence.FnHPR:
		s.CUF(int(seq.Param0(0, 1)))
	case vtsequence.FnCUP, vtsequence.FnHVP:
		s.CUP(int(seq.Param0(0, 1)), int(seq.Param0(1, 1)))
	case vtsequence.FnVPA:
		s.VPA(int(seq.Param0(0, 1)))
	case vtsequence.FnDECSC:
		s.DECSC()
	case vtsequence.FnDECRC:
		s.DECRC()
	case vtsequence.FnDECBI:
		s.DECBI()
	case vtsequence.FnDECFI:
		s.DECFI()
	case vtsequence.FnHTS:
		s.HTS()
	case vtsequence.FnTBC:
		s.TBC(int(seq.Param0(0, 0)))
	case vtsequence.FnCHT:
		s.CHT(int(seq.Param0(0, 1)))
	case vtsequence.FnCBT:
		s.CBT(int(seq.Param0(0, 1)))
	case vtsequence.FnED:
		s.ED(int(seq.Param0(0, 0)), false)
	case vtsequence.FnDECSED:
		s.ED(int(seq.Param0(0, 0)), true)
	case vtsequence.FnEL:
		s.EL(int(seq.Param0(0, 0)), false)
	case vtsequence.FnDECSEL:
		s.EL(int(seq.Param0(0, 0)), true)
	case vtsequence.FnECH:
		s.ECH(int(seq.Param0(0, 1)))
	case vtsequence.FnSU:
		s.SU(int(seq.Param0(0, 1)))
	case vtsequence.FnSD:
		s.SD(int(seq.Param0(0, 1)))
	case vtsequence.FnDECSTBM:
		s.SetMargins(int(seq.Param0(0, 1))-1, int(seq.Param0(1, 0))-1)
	case vtsequence.FnDECSLRM:
		s.SetLeftRightMargins(int(seq.Param0(0, 1))-1, int(seq.Param0(1, 0))-1)
	case vtsequence.FnDECIC:
		s.DECIC(int(seq.Param0(0, 1)))
	case vtsequence.FnDECDC:
		s.DECDC(int(seq.Param0(0, 1)))
	case vtsequence.FnDECFRA:
		s.DECFRA(rune(seq.Param0(0, ' ')), int(seq.Param0(1, 1))-1, int(seq.Param0(2, 1))-1, int(seq.Param0(3, 1))-1, int(seq.Param0(4, 1))-1)
	case vtsequence.FnDECERA:
		s.DECERA(int(seq.Param0(0, 1))-1, int(seq.Param0(1, 1))-1, int(seq.Param0(2, 1))-1, int(seq.Param0(3, 1))-1)
	case vtsequence.FnDECSERA:
		s.DECSERA(int(seq.Param0(0, 1))-1, int(seq.Param0(1, 1))-1, int(seq.Param0(2, 1))-1, int(seq.Param0(3, 1))-1)
	case vtsequence.FnDECCRA:
		s.DECCRA(int(seq.Param0(0, 1))-1, int(seq.Param0(1, 1))-1, int(seq.Param0(2, 1))-1, int(seq.Param0(3, 1))-1, int(seq.Param0(5, 1))-1, int(seq.Param0(6, 1))-1)
	case vtsequence.FnDECCARA:
		d.dispatchDECCARA(seq)
	case vtsequence.FnDECSCPP:
		d.t.SetColumns(int(seq.Param0(0, 80)))
	case vtsequence.FnDECSNLS:
		d.t.SetLines(int(seq.Param0(0, 24)))
	case vtsequence.FnWINMANIP:
		d.handleWinManip(seq)
	case vtsequence.FnSGR:
		d.dispatchSGR(seq)
	case vtsequence.FnDECSCA:
		s.DECSCA(seq.Param0(0, 0) == 1)
	case vtsequence.FnDECSCUSR:
		d.handleDECSCUSR(seq)
	case vtsequence.FnSM:
		d.setAnsiModes(seq, true)
	case vtsequence.FnRM:
		d.setAnsiModes(seq, false)
	case vtsequence.FnDECSET:
		d.setDecModes(seq, true)
	case vtsequence.FnDECRST:
		d.setDecModes(seq, false)
	case vtsequence.FnDECRQM:
		d.handleDECRQM(seq)
	case vtsequence.FnDECSTR:
		s.DECSTR()
		d.t.modes.Set(Default())
	case vtsequence.FnDECKPAM:
		m := d.t.modes.Current()
		m.Keypad = KeypadApplication
		d.t.modes.Set(m)
	case vtsequence.FnDECKPNM:
		m := d.t.modes.Current()
		m.Keypad = KeypadNormal
		d.t.modes.Set(m)
	case vtsequence.FnDECALN:
		s.DECFRA('E', 0, 0, int(s.Grid.PageSize().Lines)-1, int(s.Grid.PageSize().Columns)-1)
	case vtsequence.FnXTSAVE:
		d.t.modes.Save()
	case vtsequence.FnXTRESTORE:
		d.t.modes.Restore()
	case vtsequence.FnXTPUSHCOLORS:
		d.t.colorStack.Push(d.t.palette)
	case vtsequence.FnXTPOPCOLORS:
		d.t.colorStack.Pop(d.t.palette)
	case vtsequence.FnXTREPORTCOLORS:
		s.ReportColorStackDepth(d.t.colorStack.Len())
	case vtsequence.FnXTSMGRAPHICS:
		d.handleXTSMGraphics(seq)
	case vtsequence.FnXTVERSION:
		s.XTVERSION()
	case vtsequence.FnDA1:
		s.DA1()
	case vtsequence.FnDA2:
		s.DA2()
	case vtsequence.FnDA3:
		s.DA3()
	case vtsequence.FnDSR:
		s.DSR(int(seq.Param0(0, 0)))
	case vtsequence.FnSCS:
		d.dispatchSCS(seq)
	default:
		vtlog.Unsupported("sequence", "category", seq.Category.String(), "final", string(seq.FinalByte))
	}
}

// walkSGRParams splits a sequence's parameter list into (code, sub) pairs
// and invokes apply for each. A colon-joined parameter (e.g.
// "38:2::255:128:0" or "4:3") arrives as one Param whose first element is
// the code itself and the rest are its sub-parameters, so those get split
// off before calling apply. A semicolon-joined extended color (e.g.
// "38;2;10;20;30" or "38;5;196") arrives as several independent singleton
// Params instead; 38/48/58 there must reach ahead and consume the
// following params as its sub-parameters rather than treating each as its
// own SGR code.
func walkSGRParams(params []vtsequence.Param, apply func(code uint16, sub []uint16)) {
	for i := 0; i < len(params); i++ {
		p := params[i]
		code := p.Get(0, 0)
		var sub []uint16
		if len(p) > 1 {
			sub = []uint16(p)[1:]
		}
		switch code {
		case 38, 48, 58:
			if len(sub) == 0 {
				switch {
				case i+2 < len(params) && params[i+1].Get(0, 0) == 5:
					sub = []uint16{5, params[i+2].Get(0, 0)}
					i += 2
				case i+4 < len(params) && params[i+1].Get(0, 0) == 2:
					sub = []uint16{2, params[i+2].Get(0, 0), params[i+3].Get(0, 0), params[i+4].Get(0, 0)}
					i += 4
				}
			}
		}
		apply(code, sub)
	}
}

func (d *dispatcher) dispatchSGR(seq vtsequence.Sequence) {
	s := d.t.active()
	if seq.ParamCount() == 0 {
		s.ApplySGR(0, nil)
		return
	}
	walkSGRParams(seq.Params, s.ApplySGR)
}

func (d *dispatcher) dispatchSCS(seq vtsequence.Sequence) {
	// SCS is collected as ESC ( / ) / * / + <final>; the intermediate byte
	// selects which G-set (0-3), the final byte selects the character set.
	if len(seq.Intermediates) == 0 {
		return
	}
	set := map[byte]int{'(': 0, ')': 1, '*': 2, '+': 3}[seq.Intermediates[0]]
	var cs screen.Charset
	switch seq.FinalByte {
	case '0':
		cs = screen.CharsetDECSpecialGraphics
	case 'A':
		cs = screen.CharsetUK
	default:
		cs = screen.CharsetUSASCII
	}
	d.t.active().SCS(set, cs)
}

// dispatchDECCARA applies DECCARA's trailing SGR-style parameters to every
// cell of the rectangle named by the first four, reusing screen.ApplySGRAttr
// so the same rendition table backs both the cursor's pending attributes and
// an already-placed cell's attributes.
func (d *dispatcher) dispatchDECCARA(seq vtsequence.Sequence) {
	s := d.t.active()
	top := int(seq.Param0(0, 1)) - 1
	left := int(seq.Param0(1, 1)) - 1
	bottom := int(seq.Param0(2, 1)) - 1
	right := int(seq.Param0(3, 1)) - 1
	var sgrParams []vtsequence.Param
	if len(seq.Params) > 4 {
		sgrParams = seq.Params[4:]
	}
	s.DECCARA(top, left, bottom, right, func(a *cell.GraphicsAttributes) {
		walkSGRParams(sgrParams, func(code uint16, sub []uint16) {
			screen.ApplySGRAttr(a, code, sub)
		})
	})
}

// handleDECSCUSR sets the cursor's display shape and blink from a DECSCUSR
// Ps parameter (0/1 blinking block .. 6 steady bar), threaded into every
// subsequent render snapshot via Modes.
func (d *dispatcher) handleDECSCUSR(seq vtsequence.Sequence) {
	m := d.t.modes.Current()
	switch int(seq.Param0(0, 1)) {
	case 0, 1:
		m.CursorShape, m.CursorBlink = render.CursorShapeBlock, true
	case 2:
		m.CursorShape, m.CursorBlink = render.CursorShapeBlock, false
	case 3:
		m.CursorShape, m.CursorBlink = render.CursorShapeUnderline, true
	case 4:
		m.CursorShape, m.CursorBlink = render.CursorShapeUnderline, false
	case 5:
		m.CursorShape, m.CursorBlink = render.CursorShapeBar, true
	case 6:
		m.CursorShape, m.CursorBlink = render.CursorShapeBar, false
	}
	d.t.modes.Set(m)
}

// boolState renders a boolean mode flag as DECRQM's 1 (set) / 2 (reset).
func boolState(on bool) int {
	if on {
		return 1
	}
	return 2
}

// handleDECRQM answers a DECRQM query against the modes this tree actually
// tracks; anything else reports 0 (not recognized) per xterm convention.
func (d *dispatcher) handleDECRQM(seq vtsequence.Sequence) {
	mode := int(seq.Param0(0, 0))
	private := seq.Leader == '?'
	m := d.t.modes.Current()
	state := 0
	if private {
		switch mode {
		case 1:
			state = boolState(bool(m.CursorKey))
		case 6:
			state = boolState(m.OriginMode)
		case 7:
			state = boolState(m.AutoWrap)
		case 9:
			state = boolState(m.SendMouseX10)
		case 25:
			state = boolState(m.ShowCursor)
		case 69:
			state = boolState(m.HorizMargin)
		case 47, 1047, 1049:
			state = boolState(m.AltScreenBuffer)
		case 1000:
			state = boolState(m.SendMouseButton)
		case 1002:
			state = boolState(m.SendMouseAny)
		case 1004:
			state = boolState(m.SendFocusEvents)
		case 1006:
			state = boolState(m.SendMouseSGR)
		case 2004:
			state = boolState(m.BracketedPaste)
		case 2026:
			state = boolState(m.SynchronizedOut)
		}
	} else {
		switch mode {
		case 4:
			state = boolState(m.Insert)
		case 20:
			state = boolState(m.AutoNewline)
		}
	}
	d.t.active().ReportMode(private, mode, state)
}

// handleWinManip implements the CSI Ps [;Ps;Ps] t repertoire: capture
// buffer (Ps 0/1, an overload xterm itself never assigns), the legacy
// DECSLPP set-lines form (Ps >= 24), and the text-area-size-in-characters
// query (Ps 18/19); real window-placement ops have no window to act on in
// this VT core and fall through to Unsupported.
func (d *dispatcher) handleWinManip(seq vtsequence.Sequence) {
	s := d.t.active()
	ps := int(seq.Param0(0, 0))
	size := s.Grid.PageSize()
	switch {
	case ps == 0 || ps == 1:
		count := int(seq.Param0(1, uint16(size.Lines)))
		if count == 0 {
			count = int(size.Lines)
		}
		s.CaptureBuffer(ps == 1, count)
	case ps == 18 || ps == 19:
		s.ReportTextAreaSize(int(size.Lines), int(size.Columns))
	case ps >= 24:
		d.t.SetLines(ps)
	default:
		vtlog.Unsupported("winmanip", "ps", ps)
	}
}

// handleXTSMGraphics answers CSI ? Pi ; Pa ; Pv S: Pi=1 reports a fixed
// color-register count, Pi=2 reports the current Sixel pixel geometry
// derived from the active page size and cell metrics; any other item is an
// item error per xterm convention.
func (d *dispatcher) handleXTSMGraphics(seq vtsequence.Sequence) {
	s := d.t.active()
	switch item := int(seq.Param0(0, 0)); item {
	case 1:
		s.ReportGraphicsAttr(1, 0, 256)
	case 2:
		size := s.Grid.PageSize()
		width := int(size.Columns) * d.t.cellWidth
		height := int(size.Lines) * d.t.cellHeight
		s.ReportGraphicsAttr(2, 0, width, height)
	default:
		s.ReportGraphicsAttr(item, 1)
	}
}

func (d *dispatcher) setAnsiModes(seq vtsequence.Sequence, on bool) {
	m := d.t.modes.Current()
	for _, p := range seq.Params {
		switch p.Get(0, 0) {
		case 4:
			m.Insert = on
		case 20:
			m.AutoNewline = on
		}
	}
	d.t.modes.Set(m)
}

func (d *dispatcher) setDecModes(seq vtsequence.Sequence, on bool) {
	m := d.t.modes.Current()
	s := d.t.active()
	for _, p := range seq.Params {
		switch p.Get(0, 0) {
		case 1:
			m.CursorKey = CursorKeyMode(on)
		case 6:
			m.OriginMode = on
			s.SetOriginMode(on)
		case 7:
			m.AutoWrap = on
			s.SetAutoWrap(on)
		case 9:
			m.SendMouseX10 = on
		case 25:
			m.ShowCursor = on
		case 69:
			m.HorizMargin = on
			s.SetLeftRightMarginMode(on)
		case 1000:
			m.SendMouseButton = on
		case 1002:
			m.SendMouseAny = on
		case 1006:
			m.SendMouseSGR = on
		case 1004:
			m.SendFocusEvents = on
		case 1049, 47, 1047:
			d.t.setAltScreen(on)
			m.AltScreenBuffer = on
		case 2004:
			m.BracketedPaste = on
		case 2026:
			m.SynchronizedOut = on
		}
	}
	d.t.modes.Set(m)
}

func (d *dispatcher) handleOSC(payload string) {
	msg := vtsequence.ParseOsc(payload)
	switch msg.Code {
	case 0, 2:
		d.t.onTitle(msg.Text)
	case 4:
		d.handleOSC4(msg.Text)
	case 8:
		d.handleOSC8(msg.Text)
	case 10, 11:
		// foreground/background default color queries/sets are accepted
		// and ignored: nothing is replied and no state changes.
	default:
		vtlog.Unsupported("osc", "code", msg.Code)
	}
}

func (d *dispatcher) handleOSC4(text string) {
	// "index;spec[;index;spec...]"
	parts := strings.Split(text, ";")
	for i := 0; i+1 < len(parts); i += 2 {
		idx, err := strconv.Atoi(parts[i])
		if err != nil || idx < 0 || idx > 255 {
			continue
		}
		c, ok := parseColorSpec(parts[i+1])
		if !ok {
			continue
		}
		if idx < 16 {
			d.t.palette.SetBase(idx, c)
		}
	}
}

func parseColorSpec(spec string) (cell.Color, bool) {
	if !strings.HasPrefix(spec, "rgb:") {
		return cell.ColorDefault, false
	}
	fields := strings.Split(spec[len("rgb:"):], "/")
	if len(fields) != 3 {
		return cell.ColorDefault, false
	}
	vals := make([]int, 3)
	for i, f := range fields {
		v, err := strconv.ParseInt(f[:2], 16, 32)
		if err != nil {
			return cell.ColorDefault, false
		}
		vals[i] = int(v)
	}
	return cell.RGBColor(vals[0], vals[1], vals[2]), true
}

func (d *dispatcher) handleOSC8(text string) {
	// "params;uri" — params is a colon-separated key=value list, spec.md
	// §6's hyperlink convention; only "id" is meaningful.
	parts := strings.SplitN(text, ";", 2)
	if len(parts) != 2 {
		return
	}
	userID, uri := extractID(parts[0]), parts[1]
	if uri == "" {
		d.t.active().SetLink(0)
		return
	}
	id := d.t.links.Open(hyperlink.Link{UserID: userID, URI: uri})
	d.t.active().SetLink(id)
}

func extractID(params string) string {
	for _, kv := range strings.Split(params, ":") {
		if strings.HasPrefix(kv, "id=") {
			return kv[len("id="):]
		}
	}
	return ""
}

func (d *dispatcher) handleDECRQSS(query string) {
	s := d.t.active()
	switch query {
	case "m":
		s.DECRQSS(s.CurrentSGRString())
	default:
		s.DECRQSSInvalid()
	}
}
