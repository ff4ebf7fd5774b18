//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package pager

// TTY is unavailable on this platform.
type TTY struct{}

// OpenTTY reports that raw terminal access is not supported here.
func OpenTTY() (*TTY, error) {
	return nil, ErrNotTerminal
}

func (t *TTY) Close() error { return nil }
func (t *TTY) EnableRaw() error { return ErrNotTerminal }
func (t *TTY) Restore() error { return nil }
func (t *TTY) Size() (int, int, error) { return 0, 0, ErrNotTerminal }
func (t *TTY) PollByte() (byte, bool, error) { return 0, false, ErrNotTerminal }
func (t *TTY) Write(p []byte) error { return ErrNotTerminal }
