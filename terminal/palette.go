package terminal

import "github.com/christianparpart/libterminal/cell"

// Palette resolves a cell.Color's palette index to concrete RGB, and
// holds the 16 user/OS-configurable base colors (SGR 30-37/90-97 plus
// OSC 4/104 reassignment) separately from the fixed 6x6x6 cube and
// grayscale ramp defined by the xterm 256-color layout, which spec.md §6
// requires but the teacher's terminal/color.go never actually
// tabulates (it only carries an X11 color-name lookup, GetColor/
// ColorNames, for parsing SGR-adjacent config strings, not a resolvable
// index->RGB palette). The cube/ramp formulas below are the standard
// xterm 256-color layout, not the teacher's own data.
type Palette struct {
	base [16]cell.Color // slots 0-15, reassignable via OSC 4
}

// NewPalette returns the standard 16 ANSI colors (the VGA-derived
// defaults xterm ships with).
func NewPalette() *Palette {
	p := &Palette{}
	defaults := [16][3]int{
		{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
		{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
		{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
		{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
	}
	for i, rgb := range defaults {
		p.base[i] = cell.RGBColor(rgb[0], rgb[1], rgb[2])
	}
	return p
}

// SetBase reassigns one of the 16 base color slots (OSC 4/104).
func (p *Palette) SetBase(index int, c cell.Color) {
	if index >= 0 && index < 16 {
		p.base[index] = c
	}
}

// ResetBase restores index to its startup default.
func (p *Palette) ResetBase(index int) {
	fresh := NewPalette()
	if index >= 0 && index < 16 {
		p.base[index] = fresh.base[index]
	}
}

// Resolve turns a cell.Color into concrete 0-255 RGB, passing RGB colors
// through untouched and mapping palette indices through the base slots,
// the 6x6x6 cube (16-231), or the 24-step grayscale ramp (232-255).
func (p *Palette) Resolve(c cell.Color) (r, g, b int) {
	if c.IsRGB() {
		return c.RGB()
	}
	idx := c.Index()
	switch {
	case idx < 0:
		return 0, 0, 0
	case idx < 16:
		return p.base[idx].RGB()
	case idx < 232:
		idx -= 16
		r = cubeStep(idx / 36)
		g = cubeStep((idx / 6) % 6)
		b = cubeStep(idx % 6)
		return r, g, b
	default:
		v := 8 + (idx-232)*10
		return v, v, v
	}
}

func cubeStep(n int) int {
	if n == 0 {
		return 0
	}
	return 55 + n*40
}

// ColorStack backs XTPUSHCOLORS/XTPOPCOLORS (spec.md §6), reusing the
// same bounded LIFO as ModeRegistry's XTSAVE/XTRESTORE stack.
type ColorStack struct {
	entries *stack[[16]cell.Color]
}

func NewColorStack(depth int) *ColorStack {
	return &ColorStack{entries: NewStack[[16]cell.Color](depth)}
}

func (cs *ColorStack) Push(p *Palette) { cs.entries.Push(p.base) }

func (cs *ColorStack) Pop(p *Palette) bool {
	v, err := cs.entries.Pop()
	if err == ErrEmptyStack {
		return false
	}
	p.base = v
	return true
}

func (cs *ColorStack) Len() int { return cs.entries.Len() }
