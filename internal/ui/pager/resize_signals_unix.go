//go:build unix

package pager

import (
	"os"

	"golang.org/x/sys/unix"
)

// resizeSignals lists the notifications that mean the window geometry changed.
func resizeSignals() []os.Signal {
	return []os.Signal{unix.SIGWINCH}
}
