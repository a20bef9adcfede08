package vtsequence

import "github.com/christianparpart/libterminal/vtparser"

// FromRaw builds a Sequence from a vtparser.RawSequence collected during
// CSI dispatch or DCS hook. cat distinguishes CSI from DCS since both
// share the same RawSequence shape.
func FromRaw(cat Category, raw vtparser.RawSequence) Sequence {
	return Sequence{
		Category:      cat,
		Leader:        raw.Leader,
		Intermediates: string(raw.Intermediates),
		Params:        decodeParams(raw.Params),
		FinalByte:     raw.Final,
	}
}

// decodeParams splits raw parameter bytes into a `;`-delimited list of
// Params, each itself possibly `:`-delimited into sub-parameters, per
// spec.md §4.3's requirement to distinguish `38;5;9` (three scalar
// parameters) from `38:5:9` (one parameter with three sub-parameters).
func decodeParams(raw []byte) []Param {
	if len(raw) == 0 {
		return nil
	}
	var params []Param
	var cur Param
	var digits []byte
	haveDigits := false

	flushSub := func() {
		if !haveDigits {
			cur = append(cur, emptyParam)
			return
		}
		cur = append(cur, parseUint16(digits))
		digits = digits[:0]
		haveDigits = false
	}
	flushParam := func() {
		flushSub()
		params = append(params, cur)
		cur = nil
	}

	for _, b := range raw {
		switch {
		case b >= '0' && b <= '9':
			digits = append(digits, b)
			haveDigits = true
		case b == ':':
			flushSub()
		case b == ';':
			flushParam()
		}
	}
	flushParam()
	return params
}

func parseUint16(digits []byte) uint16 {
	var v uint32
	for _, d := range digits {
		v = v*10 + uint32(d-'0')
		if v > 0xffff {
			return 0xffff
		}
	}
	return uint16(v)
}
