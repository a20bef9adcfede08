package terminal

import "fmt"

// Key identifies a logical key event the InputGenerator turns into a byte
// sequence, deliberately excluding any GUI toolkit's own keycode type
// (translating a toolkit event into a Key is the embedder's job, per
// spec.md's Non-goals on key-to-toolkit translation).
type Key rune

const (
	KeyUp Key = iota
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
)

// InputGenerator turns keyboard input into the byte sequence written to
// the pty, choosing between CSI and SS3 forms for the cursor keys based
// on DECCKM (CursorKeyMode). Grounded on this file's own prior UserInput
// state machine (a lookahead across ESC/O/final-byte to decide CSI vs
// SS3), generalized into an explicit Key enum so it no longer needs to
// first parse a raw ANSI escape back out of the caller's own keystrokes.
type InputGenerator struct{}

// Bytes returns the sequence to write to the pty for a plain rune (not a
// cursor/function key); most keystrokes pass straight through.
func (InputGenerator) Bytes(r rune) []byte { return []byte(string(r)) }

// CursorKey returns the escape sequence for one of the four arrow keys
// (or Home/End), honoring applicationMode (DECCKM).
func (InputGenerator) CursorKey(k Key, applicationMode bool) []byte {
	final, ok := cursorKeyFinal(k)
	if !ok {
		return nil
	}
	if applicationMode {
		return []byte(fmt.Sprintf("\x1bO%c", final))
	}
	return []byte(fmt.Sprintf("\x1b[%c", final))
}

func cursorKeyFinal(k Key) (byte, bool) {
	switch k {
	case KeyUp:
		return 'A', true
	case KeyDown:
		return 'B', true
	case KeyRight:
		return 'C', true
	case KeyLeft:
		return 'D', true
	case KeyHome:
		return 'H', true
	case KeyEnd:
		return 'F', true
	default:
		return 0, false
	}
}

// BracketedPaste wraps text in the bracketed-paste markers when mode 2004
// is enabled, otherwise returns it unchanged.
func (InputGenerator) BracketedPaste(text string, enabled bool) []byte {
	if !enabled {
		return []byte(text)
	}
	return []byte("\x1b[200~" + text + "\x1b[201~")
}
