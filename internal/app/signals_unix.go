//go:build unix

package app

import (
	"os"
	"syscall"
)

// terminationSignals end the session cooperatively so the terminal is
// restored before the process exits.
func terminationSignals() []os.Signal {
	return []os.Signal{syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT}
}
