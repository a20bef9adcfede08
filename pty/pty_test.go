package pty

import (
	"testing"

	"golang.org/x/term"

	"github.com/christianparpart/libterminal/coord"
)

func TestOpenAllocatesMasterAndSlave(t *testing.T) {
	p, err := Open(coord.PageSize{Lines: 24, Columns: 80}, 8, 16)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if p.Master == nil {
		t.Fatal("expected a non-nil master file")
	}
}

func TestResizeAfterOpenSucceeds(t *testing.T) {
	p, err := Open(coord.PageSize{Lines: 24, Columns: 80}, 8, 16)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if err := p.Resize(coord.PageSize{Lines: 40, Columns: 120}, 8, 16); err != nil {
		t.Fatalf("Resize: %v", err)
	}
}

func TestStartShellRunsTrueAndExits(t *testing.T) {
	p, err := Open(coord.PageSize{Lines: 24, Columns: 80}, 8, 16)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if err := p.StartShell([]string{"/bin/true"}, "/", []string{"TERM=xterm-256color"}); err != nil {
		t.Fatalf("StartShell: %v", err)
	}
	if p.Process() == nil {
		t.Fatal("expected a non-nil process after StartShell")
	}
	state, err := p.Process().Wait()
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !state.Success() {
		t.Fatalf("expected /bin/true to exit successfully, got %v", state)
	}
}

func TestHostRawModeRoundTripsOnAPty(t *testing.T) {
	p, err := Open(coord.PageSize{Lines: 24, Columns: 80}, 8, 16)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	fd := int(p.Master.Fd())
	if !term.IsTerminal(fd) {
		t.Skip("pty master fd is not recognized as a terminal in this environment")
	}

	restore, err := HostRawMode(fd)
	if err != nil {
		t.Fatalf("HostRawMode: %v", err)
	}
	if err := restore(); err != nil {
		t.Fatalf("restore: %v", err)
	}
}
