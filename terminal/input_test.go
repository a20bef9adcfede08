package terminal

import "testing"

func TestCursorKeyUsesCSIInAnsiMode(t *testing.T) {
	var gen InputGenerator
	got := gen.CursorKey(KeyUp, false)
	if string(got) != "\x1b[A" {
		t.Fatalf("got %q, want CSI-A", got)
	}
}

func TestCursorKeyUsesSS3InApplicationMode(t *testing.T) {
	var gen InputGenerator
	got := gen.CursorKey(KeyLeft, true)
	if string(got) != "\x1bOD" {
		t.Fatalf("got %q, want SS3-D", got)
	}
}

func TestCursorKeyUnknownReturnsNil(t *testing.T) {
	var gen InputGenerator
	if got := gen.CursorKey(Key(99), false); got != nil {
		t.Fatalf("got %q, want nil for an unrecognized key", got)
	}
}

func TestBytesPassesThroughPlainRunes(t *testing.T) {
	var gen InputGenerator
	if got := string(gen.Bytes('a')); got != "a" {
		t.Fatalf("got %q, want %q", got, "a")
	}
}

func TestBracketedPasteWrapsOnlyWhenEnabled(t *testing.T) {
	var gen InputGenerator
	if got := string(gen.BracketedPaste("hi", false)); got != "hi" {
		t.Fatalf("got %q, want unwrapped text", got)
	}
	want := "\x1b[200~hi\x1b[201~"
	if got := string(gen.BracketedPaste("hi", true)); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
