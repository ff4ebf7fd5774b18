//go:build unix

package pager

import (
	"fmt"
	"syscall"
)

var suspendProcess = func() error {
	return syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

// suspend hands the terminal back to the shell, stops the process and takes
// raw mode again once the shell resumes it. The geometry is re-measured since
// the window may have changed meanwhile.
func (p *Pager) suspend() error {
	if err := p.console.Restore(); err != nil {
		return fmt.Errorf("restore before suspend: %w", err)
	}
	_ = p.console.Write([]byte(seqShowCursor))
	if err := suspendProcess(); err != nil {
		return fmt.Errorf("suspend: %w", err)
	}
	if err := p.console.EnableRaw(); err != nil {
		return fmt.Errorf("re-enable raw mode: %w", err)
	}
	if p.resize != nil {
		p.resize.Raise()
	}
	return nil
}
