//go:build !unix

package pager

// No job control here; Ctrl+Z only redraws.
func (p *Pager) suspend() error {
	return nil
}
