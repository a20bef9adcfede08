// Package render implements the double-buffered snapshot handoff between
// the IO/parser thread and an external renderer thread, per spec.md §4.7
// and §5. The teacher has no analogous type (mosh's frontend renders
// synchronously off statesync.Complete under a single goroutine, with no
// producer/consumer split at all), so the state machine itself is
// authored directly from spec.md §4.7's three-state description; the
// locking shape (a dedicated sync.RWMutex separate from any other lock)
// is grounded on network/network.go's Transport type, which embeds its
// own sync.RWMutex to guard connection state independently of the
// session-level locking elsewhere in the teacher.
package render

import (
	"sync"
	"sync/atomic"

	"github.com/christianparpart/libterminal/cell"
	"github.com/christianparpart/libterminal/coord"
)

// State is one node of the three-state producer/consumer handoff spec.md
// §4.7 describes.
type State uint8

const (
	// WaitingForRefresh: the consumer has not asked for a new frame; the
	// producer has nothing to do.
	WaitingForRefresh State = iota
	// RefreshBuffersAndTrySwap: the producer is rebuilding the back
	// buffer; a swap will be attempted once it finishes.
	RefreshBuffersAndTrySwap
	// TrySwapBuffers: the back buffer is ready; the next reader lock
	// acquisition swaps it to the front.
	TrySwapBuffers
)

// RenderCell is one cell's fully-resolved paint data: display glyph(s),
// attributes, and (for image-backed cells) the fragment reference the
// renderer resolves against vtimage.Pool.
type RenderCell struct {
	Column int
	Runes  []rune
	Width  int
	Attrs  cell.GraphicsAttributes
	Link   cell.HyperlinkID
	Image  cell.ImageFragmentRef
}

// RenderLine is one physical row's snapshot: either the raw text of a
// Trivial line the renderer can draw uninspected, or a resolved RenderCell
// slice for an Inflated line.
type RenderLine struct {
	Line  int
	Text  string       // set when Trivial
	Cells []RenderCell // set when not Trivial
}

// RenderCursor is the snapshot cursor state (nil in the Snapshot's
// pointer field when the cursor is hidden).
type RenderCursor struct {
	Position coord.CellLocation
	Shape    CursorShape
	Visible  bool
	Blinking bool
}

// CursorShape mirrors DECSCUSR's shape parameter.
type CursorShape uint8

const (
	CursorShapeBlock CursorShape = iota
	CursorShapeUnderline
	CursorShapeBar
)

// Snapshot is one complete rendered frame.
type Snapshot struct {
	Lines    []RenderLine
	Cursor   *RenderCursor
	FrameID  uint64
	PageSize coord.PageSize
}

// RenderBuffer is the double-buffered handoff. The producer (render
// snapshot thread) calls FetchAndClear/CommitBack; the consumer (external
// renderer thread) calls Touch to request a refresh and Acquire/Release
// to read the current front buffer under readerLock, matching spec.md
// §4.7's invariant that readerLock is held for the consumer's entire
// inspection of the front buffer.
type RenderBuffer struct {
	readerLock sync.RWMutex // held by the consumer for the whole front-buffer read

	state      atomic.Uint32 // State, mutated only per the rules below
	cleanPaint atomic.Bool

	front, back Snapshot
	frameID     uint64
}

// New returns a RenderBuffer in WaitingForRefresh with an empty snapshot.
func New() *RenderBuffer {
	rb := &RenderBuffer{}
	rb.state.Store(uint32(WaitingForRefresh))
	return rb
}

// Touch marks the buffer stale, requesting a refresh, without racing an
// in-flight paint: if a refresh is already underway (RefreshBuffersAndTrySwap)
// or a swap is pending (TrySwapBuffers), Touch leaves the state alone so a
// paint already in flight is not restarted or lost.
func (rb *RenderBuffer) Touch() {
	rb.state.CompareAndSwap(uint32(WaitingForRefresh), uint32(RefreshBuffersAndTrySwap))
}

// FetchAndClear is called by the producer at the start of building a new
// back buffer. It returns the prior state and unconditionally marks
// CleanPainting (the producer commits to finishing a full repaint once it
// starts one, per spec.md §4.7).
func (rb *RenderBuffer) FetchAndClear() State {
	prior := State(rb.state.Load())
	rb.cleanPaint.Store(true)
	return prior
}

// CommitBack is called by the producer once the back buffer is complete;
// it advances the state to TrySwapBuffers, bumps the frame id, and clears
// CleanPainting so the next FetchAndClear call reports honestly.
func (rb *RenderBuffer) CommitBack(back Snapshot) {
	rb.frameID++
	back.FrameID = rb.frameID
	rb.readerLock.Lock()
	rb.back = back
	rb.readerLock.Unlock()
	rb.cleanPaint.Store(false)
	rb.state.Store(uint32(TrySwapBuffers))
}

// CleanPainting reports whether the producer is mid-repaint (has called
// FetchAndClear but not yet CommitBack). A renderer that resizes its
// window mid-paint uses this to decide whether the in-flight frame is
// still trustworthy or must be discarded and repainted from scratch.
func (rb *RenderBuffer) CleanPainting() bool { return rb.cleanPaint.Load() }

// Finish reports whether the producer's current paint cycle is complete
// (no further repaint is queued): true iff the state has returned to
// WaitingForRefresh, i.e. nothing re-touched the buffer while it painted.
func (rb *RenderBuffer) Finish() bool {
	if rb.state.CompareAndSwap(uint32(TrySwapBuffers), uint32(WaitingForRefresh)) {
		rb.readerLock.Lock()
		rb.front = rb.back
		rb.readerLock.Unlock()
		return true
	}
	return State(rb.state.Load()) == WaitingForRefresh
}

// Acquire locks the front buffer for reading and returns it; the caller
// must call Release when done. This is the "RenderBufferRef" construction
// spec.md §5 lists as a suspension point.
func (rb *RenderBuffer) Acquire() Snapshot {
	rb.readerLock.RLock()
	return rb.front
}

// Release unlocks the front buffer after a read started by Acquire.
func (rb *RenderBuffer) Release() {
	rb.readerLock.RUnlock()
}

// State returns the current producer/consumer state, for diagnostics and
// tests.
func (rb *RenderBuffer) State() State { return State(rb.state.Load()) }
