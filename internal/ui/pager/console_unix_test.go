//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package pager

import (
	"errors"
	"os"
	"testing"
)

func TestSizeFallsBackToInputFd(t *testing.T) {
	original := termGetSize
	t.Cleanup(func() {
		termGetSize = original
	})

	var seen []int
	termGetSize = func(fd int) (int, int, error) {
		seen = append(seen, fd)
		switch fd {
		case 1011:
			return 0, 0, errors.New("no size")
		case 1010:
			return 80, 25, nil
		}
		return 0, 0, errors.New("unexpected fd")
	}

	input := os.NewFile(uintptr(1010), "input-fd")
	output := os.NewFile(uintptr(1011), "output-fd")
	t.Cleanup(func() {
		_ = input.Close()
		_ = output.Close()
	})

	tty := &TTY{input: input, output: output}
	cols, rows, err := tty.Size()
	if err != nil {
		t.Fatalf("size: %v", err)
	}
	if cols != 80 || rows != 25 {
		t.Fatalf("expected fallback size 80x25, got %dx%d", cols, rows)
	}
	if len(seen) != 2 {
		t.Fatalf("expected both descriptors to be attempted, got %v", seen)
	}
}

func TestSizeRejectsEmptyWindow(t *testing.T) {
	original := termGetSize
	t.Cleanup(func() {
		termGetSize = original
	})
	termGetSize = func(int) (int, int, error) { return 0, 0, nil }

	output := os.NewFile(uintptr(1012), "output-fd")
	t.Cleanup(func() { _ = output.Close() })

	tty := &TTY{input: output, output: output}
	if _, _, err := tty.Size(); err == nil {
		t.Fatalf("expected an error for a 0x0 terminal")
	}
}

func TestRestoreWithoutRawIsNoop(t *testing.T) {
	tty := &TTY{}
	if err := tty.Restore(); err != nil {
		t.Fatalf("restore: %v", err)
	}
}
