package terminal

import "testing"

func TestDefaultModesShowCursorAndAutoWrap(t *testing.T) {
	m := Default()
	if !m.ShowCursor || !m.AutoWrap {
		t.Fatalf("default modes = %+v, want ShowCursor and AutoWrap set", m)
	}
	if m.AltScreenBuffer || m.Insert {
		t.Fatalf("default modes = %+v, want AltScreenBuffer and Insert clear", m)
	}
}

func TestModeRegistrySaveRestoreRoundTrip(t *testing.T) {
	r := NewModeRegistry(4)
	r.Save()

	m := r.Current()
	m.Insert = true
	r.Set(m)

	if !r.Restore() {
		t.Fatal("Restore should succeed against a non-empty stack")
	}
	if r.Current().Insert {
		t.Fatal("expected Insert to revert to false after Restore")
	}
}

func TestModeRegistryRestoreOnEmptyStackFails(t *testing.T) {
	r := NewModeRegistry(4)
	if r.Restore() {
		t.Fatal("Restore should fail against an empty save stack")
	}
}

func TestModeRegistrySaveStackEvictsOldestPastDepth(t *testing.T) {
	r := NewModeRegistry(2)
	first := Default()
	first.Insert = true
	r.Set(first)
	r.Save() // depth 1: {Insert:true}

	second := Default()
	second.AltScroll = true
	r.Set(second)
	r.Save() // depth 2: {AltScroll:true}

	third := Default()
	third.AutoNewline = true
	r.Set(third)
	r.Save() // depth 2, evicts the {Insert:true} save

	r.Restore() // pops the most recent save, {AutoNewline:true}
	if !r.Current().AutoNewline {
		t.Fatal("expected the most recent save to be restored first")
	}
	r.Restore() // pops {AltScroll:true}
	if !r.Current().AltScroll {
		t.Fatal("expected the second-most-recent save next")
	}
	if r.Restore() {
		t.Fatal("expected the oldest save ({Insert:true}) to have been evicted at depth 2")
	}
}
