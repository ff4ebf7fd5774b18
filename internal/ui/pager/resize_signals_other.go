//go:build !unix

package pager

import "os"

// No resize notifications; the initial pass is the only layout.
func resizeSignals() []os.Signal {
	return nil
}
