package terminal

import (
	"testing"

	"github.com/christianparpart/libterminal/cell"
)

func TestPaletteResolvesBaseSlot(t *testing.T) {
	p := NewPalette()
	r, g, b := p.Resolve(cell.PaletteColor(1))
	if r != 205 || g != 0 || b != 0 {
		t.Fatalf("base slot 1 = %d,%d,%d, want the default red 205,0,0", r, g, b)
	}
}

func TestPaletteResolvesCubeCorners(t *testing.T) {
	p := NewPalette()
	r, g, b := p.Resolve(cell.PaletteColor(16)) // cube index 0,0,0
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("cube origin = %d,%d,%d, want 0,0,0", r, g, b)
	}
	r, g, b = p.Resolve(cell.PaletteColor(231)) // cube index 5,5,5
	if r != 255 || g != 255 || b != 255 {
		t.Fatalf("cube corner = %d,%d,%d, want 255,255,255", r, g, b)
	}
}

func TestPaletteResolvesGrayscaleRamp(t *testing.T) {
	p := NewPalette()
	r, g, b := p.Resolve(cell.PaletteColor(232))
	if r != 8 || g != 8 || b != 8 {
		t.Fatalf("ramp start = %d,%d,%d, want 8,8,8", r, g, b)
	}
}

func TestPaletteResolvesRGBUnchanged(t *testing.T) {
	p := NewPalette()
	r, g, b := p.Resolve(cell.RGBColor(10, 20, 30))
	if r != 10 || g != 20 || b != 30 {
		t.Fatalf("rgb passthrough = %d,%d,%d, want 10,20,30", r, g, b)
	}
}

func TestSetBaseReassignsSlot(t *testing.T) {
	p := NewPalette()
	p.SetBase(1, cell.RGBColor(1, 2, 3))
	r, g, b := p.Resolve(cell.PaletteColor(1))
	if r != 1 || g != 2 || b != 3 {
		t.Fatalf("reassigned slot = %d,%d,%d, want 1,2,3", r, g, b)
	}
	p.ResetBase(1)
	r, _, _ = p.Resolve(cell.PaletteColor(1))
	if r != 205 {
		t.Fatalf("after ResetBase, r = %d, want default 205", r)
	}
}

func TestColorStackPushPop(t *testing.T) {
	p := NewPalette()
	cs := NewColorStack(4)
	cs.Push(p)

	p.SetBase(0, cell.RGBColor(9, 9, 9))
	if !cs.Pop(p) {
		t.Fatal("expected Pop to succeed against a non-empty stack")
	}
	r, g, b := p.Resolve(cell.PaletteColor(0))
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("after Pop, slot 0 = %d,%d,%d, want restored default 0,0,0", r, g, b)
	}
}
