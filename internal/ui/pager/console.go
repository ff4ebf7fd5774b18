package pager

import "errors"

// ErrNotTerminal is returned when no controlling terminal is available.
var ErrNotTerminal = errors.New("no terminal available")

// Console is the terminal surface the pager drives.
type Console interface {
	// EnableRaw switches the terminal into raw mode. The attributes in effect
	// on the first call are captured and are the only ones Restore applies.
	EnableRaw() error
	// Restore reinstates the captured attributes. It is a no-op when raw mode
	// is not active.
	Restore() error
	// Size returns the current terminal geometry.
	Size() (cols, rows int, err error)
	// PollByte waits at most one poll interval for input. ok is false when
	// the interval elapsed without a byte.
	PollByte() (b byte, ok bool, err error)
	// Write emits p in a single write.
	Write(p []byte) error
}
