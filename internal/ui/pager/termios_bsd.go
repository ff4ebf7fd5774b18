//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package pager

import "golang.org/x/sys/unix"

const (
	ioctlReadTermios  = unix.TIOCGETA
	ioctlWriteTermios = unix.TIOCSETAF // discard pending input, like TCSAFLUSH
)
