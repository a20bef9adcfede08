package vtsequence

import (
	"testing"

	"github.com/christianparpart/libterminal/vtparser"
)

func TestDecodeParamsDistinguishesSemicolonFromColon(t *testing.T) {
	semi := decodeParams([]byte("38;5;9"))
	if len(semi) != 3 {
		t.Fatalf("38;5;9 -> %d top-level params, want 3", len(semi))
	}
	colon := decodeParams([]byte("38:5:9"))
	if len(colon) != 1 || len(colon[0]) != 3 {
		t.Fatalf("38:5:9 -> %+v, want one param with 3 sub-parameters", colon)
	}
}

func TestDecodeParamsEmptySubParameter(t *testing.T) {
	p := decodeParams([]byte("38:2::255:0:0"))
	if len(p) != 1 {
		t.Fatalf("expected one top-level param, got %d", len(p))
	}
	if got := p[0].Get(2, 999); got != 999 {
		t.Fatalf("empty sub-parameter should fall back to default, got %d", got)
	}
	if got := p[0].Get(3, 0); got != 255 {
		t.Fatalf("sub-parameter 3 = %d, want 255", got)
	}
}

func TestLookupCursorUp(t *testing.T) {
	seq := FromRaw(CategoryCSI, vtparser.RawSequence{Params: []byte("3"), Final: 'A'})
	if fn := Lookup(seq); fn != FnCUU {
		t.Fatalf("Lookup(CSI 3 A) = %v, want FnCUU", fn)
	}
	if got := seq.Param0(0, 1); got != 3 {
		t.Fatalf("Param0 = %d, want 3", got)
	}
}

func TestLookupDecset(t *testing.T) {
	seq := FromRaw(CategoryCSI, vtparser.RawSequence{Leader: '?', Params: []byte("25"), Final: 'h'})
	if fn := Lookup(seq); fn != FnDECSET {
		t.Fatalf("Lookup(CSI ?25h) = %v, want FnDECSET", fn)
	}
}

func TestLookupUnknownSequence(t *testing.T) {
	seq := Sequence{Category: CategoryCSI, FinalByte: '~'}
	if fn := Lookup(seq); fn != FnUnknown {
		t.Fatalf("Lookup(unregistered) = %v, want FnUnknown", fn)
	}
}

func TestParseOscHyperlink(t *testing.T) {
	msg := ParseOsc("8;id=1;http://example.com")
	if msg.Code != 8 {
		t.Fatalf("code = %d, want 8", msg.Code)
	}
	if msg.Text != "id=1;http://example.com" {
		t.Fatalf("text = %q", msg.Text)
	}
}
