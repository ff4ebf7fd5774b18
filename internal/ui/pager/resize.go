package pager

import (
	"errors"
	"os"
	"os/signal"
	"sync/atomic"
)

// ErrResizeFailed is returned by Run when a resize could not be handled.
var ErrResizeFailed = errors.New("terminal resize was not handled")

// ResizeState is the outcome of the most recent resize notification.
type ResizeState int32

const (
	ResizeNotRaised ResizeState = iota
	ResizeOK
	ResizeError
)

func (s ResizeState) String() string {
	switch s {
	case ResizeOK:
		return "ok"
	case ResizeError:
		return "error"
	default:
		return "not raised"
	}
}

// Geometry is the terminal size in character cells.
type Geometry struct {
	Cols int
	Rows int
}

// SizeFunc queries the current terminal geometry.
type SizeFunc func() (cols, rows int, err error)

// ResizeBridge turns asynchronous resize notifications into geometry the
// main loop picks up at its poll points. The notification side only queries
// the size and publishes the result; it never touches view or file state.
type ResizeBridge struct {
	size SizeFunc

	state   atomic.Int32
	pending atomic.Pointer[Geometry]
	failure atomic.Pointer[resizeFailure]

	sigCh  chan os.Signal
	stopCh chan struct{}
	doneCh chan struct{}
}

type resizeFailure struct {
	err error
}

// NewResizeBridge returns a bridge that measures the terminal with size.
func NewResizeBridge(size SizeFunc) *ResizeBridge {
	return &ResizeBridge{size: size}
}

// Start listens for resize notifications until Stop. Starting twice is a no-op.
func (b *ResizeBridge) Start() {
	if b.stopCh != nil {
		return
	}
	sigs := resizeSignals()
	b.stopCh = make(chan struct{})
	b.doneCh = make(chan struct{})
	b.sigCh = make(chan os.Signal, 1)
	if len(sigs) > 0 {
		signal.Notify(b.sigCh, sigs...)
	}

	go func() {
		defer close(b.doneCh)
		for {
			select {
			case <-b.stopCh:
				return
			case <-b.sigCh:
				b.Raise()
			}
		}
	}()
}

// Stop stops listening and waits for the watcher to exit.
func (b *ResizeBridge) Stop() {
	if b.stopCh == nil {
		return
	}
	signal.Stop(b.sigCh)
	close(b.stopCh)
	<-b.doneCh
	b.stopCh = nil
}

// Raise handles one resize notification: it measures the terminal, publishes
// the geometry and records the outcome.
func (b *ResizeBridge) Raise() {
	cols, rows, err := b.size()
	if err == nil && (cols <= 0 || rows <= 0) {
		err = errors.New("terminal reported an empty window")
	}
	if err != nil {
		b.failure.Store(&resizeFailure{err: err})
		b.state.Store(int32(ResizeError))
		return
	}
	b.pending.Store(&Geometry{Cols: cols, Rows: rows})
	b.state.Store(int32(ResizeOK))
}

// State returns the outcome of the latest notification.
func (b *ResizeBridge) State() ResizeState {
	return ResizeState(b.state.Load())
}

// Err returns the failure recorded by the latest failed notification.
func (b *ResizeBridge) Err() error {
	if f := b.failure.Load(); f != nil {
		return f.err
	}
	return nil
}

// Take returns the geometry published since the last call, if any.
func (b *ResizeBridge) Take() (Geometry, bool) {
	g := b.pending.Swap(nil)
	if g == nil {
		return Geometry{}, false
	}
	return *g, true
}

// Dirty reports whether the main loop has resize work to do.
func (b *ResizeBridge) Dirty() bool {
	return b.pending.Load() != nil || b.State() == ResizeError
}
