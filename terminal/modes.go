// Package terminal implements the root Terminal orchestrator: the
// primary and alternate grids, the mode registry, the color palette,
// hyperlink and selection state, and the IO/parser/render thread wiring
// described in spec.md §4.6 and §5.
//
// This file's ModeRegistry is grounded on this package's former
// Emulator struct, which held the same shape of state (a flat set of
// boolean/enum mode fields plus saved-cursor slots per grid) scattered
// directly on Emulator rather than behind a registry type; it is
// generalized here so ANSI (SM/RM) and DEC private (DECSET/DECRST) modes
// share one save/restore mechanism (XTSAVE/XTRESTORE, per spec.md §6)
// instead of being one-off fields.
package terminal

import "github.com/christianparpart/libterminal/render"

// CursorKeyMode mirrors DECCKM: false sends ANSI cursor sequences from
// the input generator, true sends application (SS3-prefixed) sequences.
type CursorKeyMode bool

// KeypadMode mirrors DECKPAM/DECKPNM.
type KeypadMode bool

const (
	KeypadNormal      KeypadMode = false
	KeypadApplication KeypadMode = true
)

// Modes holds every settable ANSI/DEC mode as a flat struct.
type Modes struct {
	ShowCursor      bool
	AltScreenBuffer bool
	AutoWrap        bool
	AutoNewline     bool
	Insert          bool
	OriginMode      bool
	BracketedPaste  bool
	AltScroll       bool
	HorizMargin     bool
	CursorKey       CursorKeyMode
	Keypad          KeypadMode
	SendMouseX10    bool
	SendMouseButton bool
	SendMouseAny    bool
	SendMouseSGR    bool
	SendFocusEvents bool
	SynchronizedOut bool // mode 2026
	CursorShape     render.CursorShape
	CursorBlink     bool
}

// Default returns the mode set active on a freshly reset terminal.
func Default() Modes {
	return Modes{
		ShowCursor:  true,
		AutoWrap:    true,
		CursorKey:   false,
		Keypad:      KeypadNormal,
		CursorShape: render.CursorShapeBlock,
		CursorBlink: true,
	}
}

// ModeRegistry tracks the live Modes plus a save/restore stack for
// XTSAVE/XTRESTORE (spec.md §6), built on the teacher's generic LIFO
// stack (terminal/stack.go) rather than a bespoke save-slot pair.
type ModeRegistry struct {
	current Modes
	saved   *stack[Modes]
}

// NewModeRegistry returns a registry seeded with the default mode set
// and a save stack bounded to depth entries (xterm bounds XTSAVE's stack
// too, to prevent unbounded memory growth from a runaway client).
func NewModeRegistry(depth int) *ModeRegistry {
	return &ModeRegistry{current: Default(), saved: NewStack[Modes](depth)}
}

func (r *ModeRegistry) Current() Modes { return r.current }
func (r *ModeRegistry) Set(m Modes)    { r.current = m }
func (r *ModeRegistry) Save()          { r.saved.Push(r.current) }

// Restore pops the most recently saved mode set and makes it current,
// reporting false if the save stack was already empty (ErrLastItem still
// means the pop succeeded, just that the stack is now drained).
func (r *ModeRegistry) Restore() bool {
	m, err := r.saved.Pop()
	if err == ErrEmptyStack {
		return false
	}
	r.current = m
	return true
}
