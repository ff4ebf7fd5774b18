//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package pager

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// pollTenths bounds each read in tenths of a second so a pending resize is
// noticed promptly.
const pollTenths = 1

var termGetSize = term.GetSize

// TTY is the Console backed by the controlling terminal.
type TTY struct {
	input  *os.File
	output *os.File
	owned  bool

	initial  unix.Termios
	captured bool
	raw      bool

	buf [1]byte
}

// OpenTTY uses stdin/stdout when both are terminals and falls back to /dev/tty.
func OpenTTY() (*TTY, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		return &TTY{input: os.Stdin, output: os.Stdout}, nil
	}
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotTerminal, err)
	}
	return &TTY{input: tty, output: tty, owned: true}, nil
}

// Close releases /dev/tty when it was opened by OpenTTY.
func (t *TTY) Close() error {
	if !t.owned || t.input == nil {
		return nil
	}
	err := t.input.Close()
	t.input, t.output = nil, nil
	return err
}

func (t *TTY) EnableRaw() error {
	if t.raw {
		return nil
	}
	fd := int(t.input.Fd())
	if !t.captured {
		initial, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
		if err != nil {
			return fmt.Errorf("get terminal attributes: %w", err)
		}
		t.initial = *initial
		t.captured = true
	}

	raw := t.initial
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INLCR | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = pollTenths

	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &raw); err != nil {
		return fmt.Errorf("set terminal raw mode: %w", err)
	}
	t.raw = true
	return nil
}

func (t *TTY) Restore() error {
	if !t.raw {
		return nil
	}
	if err := unix.IoctlSetTermios(int(t.input.Fd()), ioctlWriteTermios, &t.initial); err != nil {
		return fmt.Errorf("restore terminal attributes: %w", err)
	}
	t.raw = false
	return nil
}

func (t *TTY) Size() (int, int, error) {
	cols, rows, err := termGetSize(int(t.output.Fd()))
	if err != nil && t.input != t.output {
		cols, rows, err = termGetSize(int(t.input.Fd()))
	}
	if err != nil {
		return 0, 0, fmt.Errorf("get terminal size: %w", err)
	}
	if cols <= 0 || rows <= 0 {
		return 0, 0, fmt.Errorf("get terminal size: reported %dx%d", cols, rows)
	}
	return cols, rows, nil
}

func (t *TTY) PollByte() (byte, bool, error) {
	n, err := unix.Read(int(t.input.Fd()), t.buf[:])
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read keypress: %w", err)
	}
	if n != 1 {
		return 0, false, nil
	}
	return t.buf[0], true, nil
}

func (t *TTY) Write(p []byte) error {
	_, err := t.output.Write(p)
	return err
}
