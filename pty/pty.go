// Package pty wraps a master/slave pseudo-terminal pair, grounded on
// frontend/server/server.go's openPTS/startShell plumbing: pty.Open for
// the master/slave handles, convertWinsize/pty.Setsize for the window
// size, setIUTF8 for the input-UTF8 termios bit (both adapted from the
// teacher's util package, the only two of its functions this tree ever
// called), and syscall.SysProcAttr{Setsid, Setctty} for handing the
// slave to a child process as its controlling terminal, per spec.md §4.1.
package pty

import (
	"errors"
	"os"
	"os/exec"
	"syscall"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/christianparpart/libterminal/coord"
)

// PTY holds the master side of a pseudo-terminal plus the child process
// attached to its slave.
type PTY struct {
	Master  *os.File
	slave   *os.File
	process *os.Process
}

// Open allocates a fresh pseudo-terminal pair sized to size and sets the
// IUTF8 termios bit on the slave, mirroring openPTS+startShell's IUTF8
// handling in the teacher.
func Open(size coord.PageSize, cellWidth, cellHeight int) (*PTY, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, err
	}
	if err := pty.Setsize(master, toPtySize(size, cellWidth, cellHeight)); err != nil {
		master.Close()
		slave.Close()
		return nil, err
	}
	if err := setIUTF8(int(slave.Fd())); err != nil {
		master.Close()
		slave.Close()
		return nil, err
	}
	return &PTY{Master: master, slave: slave}, nil
}

func toPtySize(size coord.PageSize, cellWidth, cellHeight int) *pty.Winsize {
	return convertWinsize(&unix.Winsize{
		Row:    uint16(size.Lines),
		Col:    uint16(size.Columns),
		Xpixel: uint16(int(size.Columns) * cellWidth),
		Ypixel: uint16(int(size.Lines) * cellHeight),
	})
}

// convertWinsize adapts an x/sys/unix.Winsize (as returned by ioctl
// queries) to creack/pty's own Winsize shape, mirroring the teacher's
// util.ConvertWinsize.
func convertWinsize(windowSize *unix.Winsize) *pty.Winsize {
	if windowSize == nil {
		return nil
	}
	return &pty.Winsize{
		Rows: windowSize.Row,
		Cols: windowSize.Col,
		X:    windowSize.Xpixel,
		Y:    windowSize.Ypixel,
	}
}

// Resize applies a new page size (and, for image-aware terminals, pixel
// geometry) to the pseudo-terminal, which delivers SIGWINCH to the
// foreground process group.
func (p *PTY) Resize(size coord.PageSize, cellWidth, cellHeight int) error {
	return pty.Setsize(p.Master, toPtySize(size, cellWidth, cellHeight))
}

// StartShell execs argv against the slave as stdin/stdout/stderr, setting
// it as the controlling terminal of a new session, matching startShell's
// SysProcAttr{Setsid: true, Setctty: true} in the teacher.
func (p *PTY) StartShell(argv []string, dir string, env []string) error {
	if len(argv) == 0 {
		return errors.New("pty: empty argv")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdin = p.slave
	cmd.Stdout = p.slave
	cmd.Stderr = p.slave
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true, Setctty: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	p.process = cmd.Process
	// the child now owns the slave end for its lifetime
	p.slave.Close()
	p.slave = nil
	return nil
}

// Process returns the started child process, or nil before StartShell.
func (p *PTY) Process() *os.Process { return p.process }

// Close releases the master (and slave, if StartShell was never called).
func (p *PTY) Close() error {
	if p.slave != nil {
		p.slave.Close()
	}
	return p.Master.Close()
}

// HostRawMode puts the embedder's own controlling terminal (typically
// os.Stdin) into raw mode for the duration of a session, so keystrokes
// reach WriteInput un-interpreted by the host's line discipline, mirroring
// the teacher's savedTermios/rawTermios pair around term.MakeRaw. The
// returned restore func puts the host terminal back exactly as found.
func HostRawMode(fd int) (restore func() error, err error) {
	state, err := term.GetState(fd)
	if err != nil {
		return nil, err
	}
	if _, err := term.MakeRaw(fd); err != nil {
		return nil, err
	}
	return func() error { return term.Restore(fd, state) }, nil
}

// HostSize reports the embedder's own controlling terminal's current
// column/row count, for sizing a freshly opened PTY to match it.
func HostSize(fd int) (cols, rows int, err error) {
	return term.GetSize(fd)
}
