package terminal

import (
	"testing"

	"github.com/christianparpart/libterminal/coord"
)

func TestFeedMutatesActiveGrid(t *testing.T) {
	term := New(coord.PageSize{Lines: 5, Columns: 20}, 100, 8, 16)
	term.Feed([]byte("hello"))
	if got := term.active().Grid.LineAt(0).ToUTF8(); got == "" {
		t.Fatal("expected Feed to write visible text to line 0")
	}
}

func TestFeedTouchesRenderBuffer(t *testing.T) {
	term := New(coord.PageSize{Lines: 5, Columns: 20}, 100, 8, 16)
	if term.RenderBuffer().State() != 0 {
		t.Fatalf("expected a fresh RenderBuffer to start WaitingForRefresh")
	}
	term.Feed([]byte("x"))
	if term.RenderBuffer().State() == 0 {
		t.Fatal("expected Feed to Touch the RenderBuffer out of WaitingForRefresh")
	}
}

func TestResizePropagatesToBothGrids(t *testing.T) {
	term := New(coord.PageSize{Lines: 5, Columns: 20}, 100, 8, 16)
	term.Resize(coord.PageSize{Lines: 10, Columns: 30})
	if term.primary.Grid.PageSize().Lines != 10 || term.primary.Grid.PageSize().Columns != 30 {
		t.Fatalf("primary grid size = %+v, want 10x30", term.primary.Grid.PageSize())
	}
	if term.alt.Grid.PageSize().Lines != 10 || term.alt.Grid.PageSize().Columns != 30 {
		t.Fatalf("alt grid size = %+v, want 10x30", term.alt.Grid.PageSize())
	}
}

func TestSetAltScreenTogglesActive(t *testing.T) {
	term := New(coord.PageSize{Lines: 5, Columns: 20}, 100, 8, 16)
	if term.active() != term.primary {
		t.Fatal("expected a fresh Terminal to start on the primary screen")
	}
	term.setAltScreen(true)
	if term.active() != term.alt {
		t.Fatal("expected setAltScreen(true) to switch to the alt screen")
	}
	term.setAltScreen(false)
	if term.active() != term.primary {
		t.Fatal("expected setAltScreen(false) to switch back to primary")
	}
}

func TestExecutionModeSingleStepPausesAfterOneFeed(t *testing.T) {
	term := New(coord.PageSize{Lines: 5, Columns: 20}, 100, 8, 16)
	term.SetExecutionMode(ExecSingleStep)

	done := make(chan struct{})
	go func() {
		term.Feed([]byte("a"))
		close(done)
	}()
	<-done

	if term.execMode != ExecWaiting {
		t.Fatalf("expected SingleStep to drop into Waiting after one Feed, got %v", term.execMode)
	}

	unblocked := make(chan struct{})
	go func() {
		term.Feed([]byte("b"))
		close(unblocked)
	}()

	select {
	case <-unblocked:
		t.Fatal("expected the second Feed to block while ExecutionMode is Waiting")
	default:
	}

	term.SetExecutionMode(ExecNormal)
	<-unblocked
}

func TestOnTitleCallbackReceivesOSCText(t *testing.T) {
	term := New(coord.PageSize{Lines: 5, Columns: 20}, 100, 8, 16)
	var got string
	term.OnTitle(func(s string) { got = s })
	term.Feed([]byte("\x1b]2;my title\x07"))
	if got != "my title" {
		t.Fatalf("title callback got %q, want %q", got, "my title")
	}
}

func TestLookupTermcapRejectsUnsupportedCapabilityNames(t *testing.T) {
	// "TN" additionally depends on $TERM resolving against the host's
	// terminfo database, which this test environment does not control;
	// only the always-false case is asserted here.
	term := New(coord.PageSize{Lines: 5, Columns: 20}, 100, 8, 16)
	if _, ok := term.lookupTermcap("nonexistent-capability"); ok {
		t.Fatal("expected an unrecognized termcap name to report false")
	}
}
