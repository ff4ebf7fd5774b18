//go:build unix

package pager

import (
	"strings"
	"testing"
)

func TestSuspendRestoresAndReenablesRawMode(t *testing.T) {
	original := suspendProcess
	t.Cleanup(func() {
		suspendProcess = original
	})

	p, _, console := newTestPager(t, sequence(10), 12, 2)
	console.raw = true
	bridge := NewResizeBridge(func() (int, int, error) { return 30, 4, nil })
	p.resize = bridge

	var rawWhileStopped bool
	suspendProcess = func() error {
		rawWhileStopped = console.raw
		return nil
	}

	got, err := p.Classify(keySuspend, 4)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if got != OutcomeAct {
		t.Fatalf("outcome = %s, want act", got)
	}
	if rawWhileStopped {
		t.Fatalf("terminal was still raw while the process was stopped")
	}
	if console.restores != 1 || console.enables != 1 || !console.raw {
		t.Fatalf("restores=%d enables=%d raw=%v", console.restores, console.enables, console.raw)
	}
	if !strings.Contains(console.out.String(), seqShowCursor) {
		t.Fatalf("cursor should be visible in the shell")
	}
	if g, ok := bridge.Take(); !ok || g.Cols != 30 {
		t.Fatalf("expected geometry to be re-measured after resume, got %+v %v", g, ok)
	}
}
