package vtsequence

// FunctionID names one entry of the static dispatch table spec.md §4.3
// describes; Screen (or Terminal, for mode/OSC/DCS handling that spans
// grids) switches on this instead of re-parsing leader/intermediates/final
// bytes itself.
type FunctionID uint16

const (
	FnUnknown FunctionID = iota

	// Cursor motion
	FnCUU // CSI n A
	FnCUD // CSI n B
	FnCUF // CSI n C
	FnCUB // CSI n D
	FnCNL // CSI n E
	FnCPL // CSI n F
	FnCHA // CSI n G
	FnCUP // CSI n;m H
	FnHVP // CSI n;m f
	FnVPA // CSI n d
	FnVPR // CSI n e
	FnHPA // CSI n `
	FnHPR // CSI n a
	FnDECSC
	FnDECRC
	FnDECBI  // ESC 6
	FnDECFI  // ESC 9

	// Erase
	FnED  // CSI n J
	FnEL  // CSI n K
	FnDECSED
	FnDECSEL
	FnECH // CSI n X

	// Scrolling / margins
	FnSU // CSI n S
	FnSD // CSI n T
	FnDECSTBM
	FnDECSLRM
	FnDECIC // CSI n '}
	FnDECDC // CSI n '~
	FnDECFRA
	FnDECERA
	FnDECSERA
	FnDECCRA
	FnDECCARA
	FnDECSLPP
	FnDECSCPP
	FnDECSNLS

	// SGR / attributes
	FnSGR
	FnDECSCA
	FnDECSCUSR

	// Modes
	FnSM   // CSI h (ANSI)
	FnRM   // CSI l (ANSI)
	FnDECSET // CSI ? h
	FnDECRST // CSI ? l
	FnDECRQM
	FnDECSTR // soft reset
	FnDECRQPSR
	FnDECRQSS // DCS $ q ... ST

	// Keypad
	FnDECKPAM
	FnDECKPNM
	FnDECALN

	// Save/restore (xterm)
	FnXTSAVE
	FnXTRESTORE
	FnXTPUSHCOLORS
	FnXTPOPCOLORS
	FnXTREPORTCOLORS
	FnXTVERSION
	FnXTSMGRAPHICS
	FnWINMANIP // CSI ... t

	// Reports
	FnDA1
	FnDA2
	FnDA3
	FnDSR
	FnCPR

	// Charset designation
	FnSCS

	// DCS payload collectors
	FnDCSSixel   // DCS q ... ST
	FnDCSGetTcap // DCS + q ... ST
	FnDCSDecrqss // DCS $ q ... ST
	FnDCSSTP     // DCS ! p ... ST (set-terminal-profile, generic)

	// OSC (routed by numeric code inside the payload, not final byte)
	FnOSC

	// Mouse tracking mode toggles route through DECSET/DECRST as well;
	// selective-erase / tabs
	FnHTS // ESC H
	FnTBC // CSI g
	FnCHT // CSI n I
	FnCBT // CSI n Z
)

// Result is the return code every dispatch produces, per spec.md §4.3.
type Result uint8

const (
	ResultOk Result = iota
	ResultInvalid
	ResultUnsupported
)

func (r Result) String() string {
	switch r {
	case ResultOk:
		return "ok"
	case ResultInvalid:
		return "invalid"
	case ResultUnsupported:
		return "unsupported"
	default:
		return "?"
	}
}
