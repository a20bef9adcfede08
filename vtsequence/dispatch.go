package vtsequence

// key identifies one dispatch-table row: category, leader byte (0 for
// none), intermediate bytes as collected (usually 0 or 1 byte), and the
// final byte. OSC entries are never looked up this way (see FnOSC).
type key struct {
	cat   Category
	lead  byte
	inter string
	final byte
}

var table map[key]FunctionID

func reg(cat Category, lead byte, inter string, final byte, fn FunctionID) {
	table[key{cat, lead, inter, final}] = fn
}

func init() {
	table = make(map[key]FunctionID, 128)

	// Cursor motion (CSI, no leader)
	reg(CategoryCSI, 0, "", 'A', FnCUU)
	reg(CategoryCSI, 0, "", 'B', FnCUD)
	reg(CategoryCSI, 0, "", 'C', FnCUF)
	reg(CategoryCSI, 0, "", 'D', FnCUB)
	reg(CategoryCSI, 0, "", 'E', FnCNL)
	reg(CategoryCSI, 0, "", 'F', FnCPL)
	reg(CategoryCSI, 0, "", 'G', FnCHA)
	reg(CategoryCSI, 0, "", 'H', FnCUP)
	reg(CategoryCSI, 0, "", 'f', FnHVP)
	reg(CategoryCSI, 0, "", 'd', FnVPA)
	reg(CategoryCSI, 0, "", 'e', FnVPR)
	reg(CategoryCSI, 0, "", '`', FnHPA)
	reg(CategoryCSI, 0, "", 'a', FnHPR)
	reg(CategoryESC, 0, "", '7', FnDECSC)
	reg(CategoryESC, 0, "", '8', FnDECRC)
	reg(CategoryESC, 0, "", '6', FnDECBI)
	reg(CategoryESC, 0, "", '9', FnDECFI)
	reg(CategoryESC, 0, "", 'H', FnHTS)

	// Erase
	reg(CategoryCSI, 0, "", 'J', FnED)
	reg(CategoryCSI, 0, "", 'K', FnEL)
	reg(CategoryCSI, '?', "", 'J', FnDECSED)
	reg(CategoryCSI, '?', "", 'K', FnDECSEL)
	reg(CategoryCSI, 0, "", 'X', FnECH)

	// Scroll / margins
	reg(CategoryCSI, 0, "", 'S', FnSU)
	reg(CategoryCSI, 0, "", 'T', FnSD)
	reg(CategoryCSI, 0, "", 'r', FnDECSTBM)
	reg(CategoryCSI, 0, "", 's', FnDECSLRM)
	reg(CategoryCSI, 0, "'", '}', FnDECIC)
	reg(CategoryCSI, 0, "'", '~', FnDECDC)
	reg(CategoryCSI, 0, "$", 'x', FnDECFRA)
	reg(CategoryCSI, 0, "$", 'z', FnDECERA)
	reg(CategoryCSI, 0, "$", '{', FnDECSERA)
	reg(CategoryCSI, 0, "$", 'v', FnDECCRA)
	reg(CategoryCSI, 0, "$", 'r', FnDECCARA)
	reg(CategoryCSI, 0, "", 't', FnWINMANIP) // also covers DECSLPP legacy form
	reg(CategoryCSI, 0, "*", '|', FnDECSNLS)
	reg(CategoryCSI, 0, "$", '|', FnDECSCPP)

	// SGR / attributes
	reg(CategoryCSI, 0, "", 'm', FnSGR)
	reg(CategoryCSI, 0, "\"", 'q', FnDECSCA)
	reg(CategoryCSI, 0, " ", 'q', FnDECSCUSR)

	// Modes
	reg(CategoryCSI, 0, "", 'h', FnSM)
	reg(CategoryCSI, 0, "", 'l', FnRM)
	reg(CategoryCSI, '?', "", 'h', FnDECSET)
	reg(CategoryCSI, '?', "", 'l', FnDECRST)
	reg(CategoryCSI, 0, "$", 'p', FnDECRQM)
	reg(CategoryCSI, '?', "$", 'p', FnDECRQM)
	reg(CategoryCSI, 0, "!", 'p', FnDECSTR)
	reg(CategoryCSI, 0, "$", 'w', FnDECRQPSR)

	// Keypad / alignment
	reg(CategoryESC, 0, "", '=', FnDECKPAM)
	reg(CategoryESC, 0, "", '>', FnDECKPNM)
	reg(CategoryESC, 0, "#", '8', FnDECALN)

	// xterm save/restore/colors/version
	reg(CategoryCSI, '?', "", 's', FnXTSAVE)
	reg(CategoryCSI, '?', "", 'r', FnXTRESTORE)
	reg(CategoryCSI, 0, "#", 'p', FnXTPUSHCOLORS)
	reg(CategoryCSI, 0, "#", 'q', FnXTPOPCOLORS)
	reg(CategoryCSI, 0, "#", 'r', FnXTREPORTCOLORS)
	reg(CategoryCSI, '?', "", 'S', FnXTSMGRAPHICS)
	reg(CategoryCSI, '>', "", 'c', FnDA2)
	reg(CategoryCSI, 0, "", 'c', FnDA1)
	reg(CategoryCSI, '=', "", 'c', FnDA3)
	reg(CategoryCSI, 0, "", 'n', FnDSR)
	reg(CategoryCSI, 0, "", 'R', FnCPR)

	// Tabs
	reg(CategoryCSI, 0, "", 'g', FnTBC)
	reg(CategoryCSI, 0, "", 'I', FnCHT)
	reg(CategoryCSI, 0, "", 'Z', FnCBT)

	// DCS payload collectors
	reg(CategoryDCS, 0, "", 'q', FnDCSSixel)
	reg(CategoryDCS, 0, "+", 'q', FnDCSGetTcap)
	reg(CategoryDCS, 0, "$", 'q', FnDCSDecrqss)
	reg(CategoryDCS, 0, "!", 'p', FnDCSSTP)
}

// Lookup resolves a Sequence's dispatch-table row. OSC sequences always
// resolve to FnOSC; the numeric OSC code lives in the payload and is
// decoded separately (see spec.md §6's OSC list), since OSC has no final
// byte to key on.
func Lookup(s Sequence) FunctionID {
	if s.Category == CategoryOSC {
		return FnOSC
	}
	if fn, ok := table[key{s.Category, s.Leader, s.Intermediates, s.FinalByte}]; ok {
		return fn
	}
	return FnUnknown
}
