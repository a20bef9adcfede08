package terminal

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/ericwq/terminfo"
	"golang.org/x/sync/errgroup"

	"github.com/christianparpart/libterminal/coord"
	"github.com/christianparpart/libterminal/grid"
	"github.com/christianparpart/libterminal/hyperlink"
	"github.com/christianparpart/libterminal/pty"
	"github.com/christianparpart/libterminal/render"
	"github.com/christianparpart/libterminal/screen"
	"github.com/christianparpart/libterminal/vtimage"
	"github.com/christianparpart/libterminal/vtparser"
)

// ExecutionMode traces where the terminal's parser loop is with respect
// to a debugger/introspection client, per spec.md §4.6. New relative to
// the teacher; grounded on the state-machine-with-condition-variable
// pattern implied by spec.md's description of stepping and breaking.
type ExecutionMode uint8

const (
	ExecNormal ExecutionMode = iota
	ExecWaiting
	ExecSingleStep
	ExecBreakAtEmptyQueue
)

// Terminal owns the primary and alternate grids, mode/color state,
// hyperlink and image storage, the RenderBuffer, and the pty, wiring the
// IO-thread/parser/render-thread split of spec.md §4.6 and §5. Grounded
// on this package's former Emulator (which held two Framebuffers plus
// the mode/cursor fields spec.md's ModeRegistry now generalizes) and on
// frontend/server/server.go:serve's errgroup.Group + channel fan-out for
// the thread wiring.
type Terminal struct {
	mu sync.Mutex // guards primary/alt/activeAlt/modes/palette/links/images

	primary   *screen.Screen
	alt       *screen.Screen
	activeAlt bool

	modes      *ModeRegistry
	palette    *Palette
	colorStack *ColorStack
	input      InputGenerator
	selection  *Selection
	links      *hyperlink.Storage
	images     *vtimage.Pool

	renderBuf *render.RenderBuffer
	pty       *pty.PTY
	parser    *vtparser.Parser
	disp      *dispatcher

	cellWidth, cellHeight int

	execMu   sync.Mutex
	execCond *sync.Cond
	execMode ExecutionMode

	titleCallback func(string)
	bellCallback  func()
}

// New builds a Terminal sized to size with maxHistory scrollback lines
// on the primary grid (the alt grid never accumulates history, matching
// xterm's own alt-screen convention).
func New(size coord.PageSize, maxHistory int, cellWidth, cellHeight int) *Terminal {
	links := hyperlink.New()
	images := vtimage.NewPool()

	t := &Terminal{
		modes:      NewModeRegistry(10),
		palette:    NewPalette(),
		colorStack: NewColorStack(10),
		selection:  NewSelection(),
		links:      links,
		images:     images,
		renderBuf:  render.New(),
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
	}
	t.execCond = sync.NewCond(&t.execMu)

	primaryGrid := grid.New(size, maxHistory, true, links)
	altGrid := grid.New(size, 0, false, links)
	t.primary = screen.New(primaryGrid, links, images, t)
	t.alt = screen.New(altGrid, links, images, t)

	t.disp = &dispatcher{t: t}
	t.parser = vtparser.New(t.disp)
	return t
}

// active returns the currently displayed screen (primary or alt).
func (t *Terminal) active() *screen.Screen {
	if t.activeAlt {
		return t.alt
	}
	return t.primary
}

func (t *Terminal) setAltScreen(on bool) {
	if on == t.activeAlt {
		return
	}
	t.activeAlt = on
	if on {
		t.alt.ED(2, false)
		t.alt.SetCursor(coord.CellLocation{})
	}
	t.renderBuf.Touch()
}

// Reply implements screen.ReplyWriter, writing device-status/report
// bytes straight to the pty master.
func (t *Terminal) Reply(s string) {
	if t.pty == nil {
		return
	}
	t.pty.Master.Write([]byte(s))
}

func (t *Terminal) onBell() {
	if t.bellCallback != nil {
		t.bellCallback()
	}
}

func (t *Terminal) onTitle(title string) {
	if t.titleCallback != nil {
		t.titleCallback(title)
	}
}

// OnTitle registers a callback for OSC 0/2 title changes (the embedder's
// window-title/tab-title update; spec.md excludes any concrete UI here).
func (t *Terminal) OnTitle(fn func(string)) { t.titleCallback = fn }

// OnBell registers a callback for BEL (spec.md's Non-goals exclude audio
// output itself; this just notifies the embedder a bell occurred).
func (t *Terminal) OnBell(fn func()) { t.bellCallback = fn }

// lookupTermcap answers one XTGETTCAP capability name against the
// process's own $TERM entry. "TN" (the terminal name itself) is answered
// directly off the loaded entry; per-capability string lookup (e.g.
// "cup", "smcup") is not yet wired through this library's API and falls
// through to "unsupported," which XTGetTcap already reports per-name.
func (t *Terminal) lookupTermcap(name string) (string, bool) {
	ti, err := terminfo.LookupTerminfo(os.Getenv("TERM"))
	if err != nil {
		return "", false
	}
	if name == "TN" {
		return ti.Name, true
	}
	return "", false
}

// AttachPTY wires a live pty to the terminal for both reply writes and
// the IO-thread feeding Feed.
func (t *Terminal) AttachPTY(p *pty.PTY) { t.pty = p }

// Feed parses one chunk of pty output, mutating the active grid.
func (t *Terminal) Feed(data []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.waitIfPaused()
	t.parser.Feed(data)
	t.renderBuf.Touch()
}

func (t *Terminal) waitIfPaused() {
	t.execMu.Lock()
	defer t.execMu.Unlock()
	for t.execMode == ExecWaiting {
		t.execCond.Wait()
	}
	if t.execMode == ExecSingleStep {
		t.execMode = ExecWaiting
	}
}

// SetExecutionMode changes the parser loop's tracing mode, waking any
// goroutine blocked in waitIfPaused.
func (t *Terminal) SetExecutionMode(m ExecutionMode) {
	t.execMu.Lock()
	t.execMode = m
	t.execMu.Unlock()
	t.execCond.Broadcast()
}

// Resize propagates a new page size to both grids and the pty. Any live
// selection is dropped: its coordinates are page-relative (coord.LineOffset
// 0 means "current page top"), and a reflow can shift how much of the
// live page becomes history, which would silently relocate the
// selection to the wrong text rather than just resize its rectangle.
func (t *Terminal) Resize(size coord.PageSize) {
	t.mu.Lock()
	t.primary.Resize(size, true)
	t.alt.Resize(size, false)
	t.selection.Clear()
	t.mu.Unlock()
	if t.pty != nil {
		t.pty.Resize(size, t.cellWidth, t.cellHeight)
	}
	t.renderBuf.Touch()
}

// SetColumns resizes the page to cols columns, keeping the current line
// count, per DECSCPP (spec.md §6).
func (t *Terminal) SetColumns(cols int) {
	if cols < 1 {
		cols = 1
	}
	size := t.active().Grid.PageSize()
	t.Resize(coord.PageSize{Lines: size.Lines, Columns: coord.ColumnCount(cols)})
}

// SetLines resizes the page to lines rows, keeping the current column
// count, per the legacy DECSLPP form of WINMANIP and DECSNLS (spec.md
// §6).
func (t *Terminal) SetLines(lines int) {
	if lines < 1 {
		lines = 1
	}
	size := t.active().Grid.PageSize()
	t.Resize(coord.PageSize{Lines: coord.LineCount(lines), Columns: size.Columns})
}

// StartSelection begins a new selection of shape at pos on the active
// screen's grid (word-wise selections snap immediately to word bounds).
func (t *Terminal) StartSelection(shape SelectionShape, pos coord.CellLocation) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if shape == SelectionWordWise {
		t.selection.StartWord(t.active().Grid, pos)
		return
	}
	t.selection.Start(shape, pos)
}

// ExtendSelection moves the selection's moving edge, per a mouse-drag
// sample under the drag modifier (spec.md's extendSelection).
func (t *Terminal) ExtendSelection(pos coord.CellLocation) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection.Extend(pos)
}

// CompleteSelection freezes the selection on mouse button release.
func (t *Terminal) CompleteSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection.Complete()
}

// ClearSelection drops the current selection.
func (t *Terminal) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection.Clear()
}

// SelectionText extracts the current selection's text off the active
// screen's grid, per spec.md's extractSelectionText().
func (t *Terminal) SelectionText() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selection.ExtractText(t.active().Grid)
}

// WriteInput sends bytes to the pty (the reverse data path: InputGenerator
// -> PTY write, per spec.md's data-flow summary).
func (t *Terminal) WriteInput(data []byte) {
	if t.pty == nil {
		return
	}
	t.pty.Master.Write(data)
}

// SendKey routes a logical key event through InputGenerator honoring the
// live CursorKey mode.
func (t *Terminal) SendKey(k Key) {
	app := bool(t.modes.Current().CursorKey)
	t.WriteInput(t.input.CursorKey(k, app))
}

// Snapshot builds a render.Snapshot off the active grid's current state
// under the terminal mutex, independent of RenderBuffer's own lock.
func (t *Terminal) Snapshot() render.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.active()
	m := t.modes.Current()
	return render.BuildSnapshot(s.Grid, s.Cursor(), m.ShowCursor, m.CursorShape, m.CursorBlink)
}

// RenderBuffer exposes the double buffer for a renderer thread to read.
func (t *Terminal) RenderBuffer() *render.RenderBuffer { return t.renderBuf }

// Run drives the IO-thread/render-thread split: one goroutine reads pty
// output and feeds the parser, one goroutine rebuilds the RenderBuffer's
// back buffer whenever Touch requests a refresh, until ctx is canceled or
// the pty closes. Grounded on frontend/server/server.go:serve's
// errgroup.Group fan-out of a pty-reader goroutine and a signal-handling
// goroutine around one main select loop.
func (t *Terminal) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	chunks := make(chan pty.Chunk, 8)
	shutdown := make(chan struct{})

	eg.Go(func() error {
		pty.ReadLoop(t.pty.Master, chunks, shutdown, 200*time.Millisecond)
		return nil
	})

	eg.Go(func() error {
		defer close(shutdown)
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case c, ok := <-chunks:
				if !ok {
					return nil
				}
				if c.Err != nil {
					return c.Err
				}
				t.Feed(c.Data)
			}
		}
	})

	eg.Go(func() error {
		ticker := time.NewTicker(16 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				t.paintIfTouched()
			}
		}
	})

	return eg.Wait()
}

func (t *Terminal) paintIfTouched() {
	if t.renderBuf.FetchAndClear() != render.RefreshBuffersAndTrySwap {
		return
	}
	t.renderBuf.CommitBack(t.Snapshot())
	t.renderBuf.Finish()
}
