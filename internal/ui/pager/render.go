package pager

import (
	"bytes"
	"fmt"
)

// Render draws one page starting at the window cursor and leaves the cursor
// where it was. The frame goes out in a single write.
func (p *Pager) Render() error {
	view := p.views.Active()
	enc := view.ID.Encoding()

	var frame bytes.Buffer
	frame.Grow(p.rows*(p.cols+len(seqEraseLine)+len(seqRowBreak)) + 32)
	frame.WriteString(seqHideCursor)
	frame.WriteString(seqCursorHome)

	consumed := 0
	for row := 0; row < p.rows; row++ {
		n, err := p.window.ReadAs(&frame, enc, view.RowWidth)
		consumed += n
		if err != nil {
			p.rewind(consumed)
			return fmt.Errorf("read row %d: %w", row, err)
		}
		frame.WriteString(seqEraseLine)
		if row < p.rows-1 {
			frame.WriteString(seqRowBreak)
		}
	}

	frame.WriteString(seqCursorHome)
	frame.WriteString(seqShowCursor)

	if err := p.rewind(consumed); err != nil {
		return err
	}
	return p.console.Write(frame.Bytes())
}

func (p *Pager) rewind(consumed int) error {
	if consumed == 0 {
		return nil
	}
	if err := p.window.Move(-int64(consumed)); err != nil {
		return fmt.Errorf("restore cursor: %w", err)
	}
	return nil
}
