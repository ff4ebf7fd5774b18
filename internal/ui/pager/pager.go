package pager

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/kk-code-lab/rhd/internal/fs"
	"github.com/sirupsen/logrus"
)

// Window is the file window the pager pages through.
type Window interface {
	Cursor
	ReadAs(dst *bytes.Buffer, enc fs.Encoding, n int) (int, error)
	Move(delta int64) error
	Len() int64
}

// Pager is the keypress-driven viewport over a Window.
type Pager struct {
	console Console
	window  Window
	views   *Views
	resize  *ResizeBridge
	log     logrus.FieldLogger

	cols int
	rows int
}

// New returns a pager drawing on console. resize may be nil when geometry is
// only ever set through Relayout.
func New(console Console, window Window, resize *ResizeBridge, log logrus.FieldLogger) *Pager {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(nopWriter{})
		log = discard
	}
	return &Pager{
		console: console,
		window:  window,
		views:   NewViews(),
		resize:  resize,
		log:     log,
	}
}

// Views exposes the view state.
func (p *Pager) Views() *Views {
	return p.views
}

// Geometry returns the layout currently in effect.
func (p *Pager) Geometry() Geometry {
	return Geometry{Cols: p.cols, Rows: p.rows}
}

// Relayout applies a new terminal geometry: row widths are recomputed and
// every view cursor is realigned before the next render.
func (p *Pager) Relayout(g Geometry) error {
	if g.Rows <= 0 {
		return fmt.Errorf("invalid terminal height %d", g.Rows)
	}
	if err := p.views.Recompute(g.Cols, p.window); err != nil {
		return err
	}
	p.cols, p.rows = g.Cols, g.Rows
	p.log.WithFields(logrus.Fields{"cols": g.Cols, "rows": g.Rows}).Debug("layout recomputed")
	return nil
}

// ApplyResize takes the geometry published by the resize bridge, if any, and
// relayouts. It reports whether a relayout happened.
func (p *Pager) ApplyResize() (bool, error) {
	if p.resize == nil {
		return false, nil
	}
	if p.resize.State() == ResizeError {
		return false, fmt.Errorf("%w: %v", ErrResizeFailed, p.resize.Err())
	}
	g, ok := p.resize.Take()
	if !ok {
		return false, nil
	}
	if err := p.Relayout(g); err != nil {
		return false, fmt.Errorf("%w: %v", ErrResizeFailed, err)
	}
	return true, nil
}

// SwitchTo activates a view.
func (p *Pager) SwitchTo(id ViewID) error {
	return p.views.SwitchTo(id, p.window)
}

// Run renders and processes keys until quit, an error, or ctx is done.
// Cancellation is noticed between polls.
func (p *Pager) Run(ctx context.Context) error {
	defer func() {
		_ = p.console.Write([]byte(seqShowCursor))
	}()

	outcome := OutcomeAct
	for {
		resized, err := p.ApplyResize()
		if err != nil {
			return err
		}
		if resized {
			outcome = OutcomeAct
		}

		if outcome == OutcomeAct {
			if err := p.Render(); err != nil {
				return fmt.Errorf("refresh screen: %w", err)
			}
		}

		// Captured before blocking so a resize during the wait cannot change
		// what the key that ends it means.
		rowWidth := p.views.Active().RowWidth

		key, ok, err := p.readKey(ctx)
		if err != nil {
			return err
		}
		if !ok {
			outcome = OutcomeIgnore
			continue
		}

		outcome, err = p.Classify(key, rowWidth)
		p.log.WithFields(logrus.Fields{
			"key":     keyName(key),
			"outcome": outcome,
			"offset":  p.window.Tell(),
		}).Debug("keypress")

		switch outcome {
		case OutcomeError:
			return fmt.Errorf("process keypress: %w", err)
		case OutcomeQuit:
			return p.clearScreen()
		}
	}
}

// readKey blocks until a key arrives. It returns ok=false without a key when
// resize work is pending so the loop can handle it first.
func (p *Pager) readKey(ctx context.Context) (byte, bool, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, false, err
		}
		if p.resize != nil && p.resize.Dirty() {
			return 0, false, nil
		}

		b, ok, err := p.console.PollByte()
		if err != nil {
			return 0, false, err
		}
		if !ok {
			continue
		}
		if b == keyEscape {
			key, err := p.decodeEscape()
			return key, err == nil, err
		}
		return b, true, nil
	}
}

// Classify applies the action bound to key, interpreting row movement with
// rowWidth.
func (p *Pager) Classify(key byte, rowWidth int) (Outcome, error) {
	switch key {
	case keyQuit:
		return OutcomeQuit, nil

	case 'w', 'W':
		return p.move(-int64(rowWidth))

	case 's', 'S':
		return p.move(int64(rowWidth))

	case 'a', 'A':
		return p.move(-int64(p.rows) * int64(rowWidth))

	case 'd', 'D':
		return p.pageDown(rowWidth)

	case 'h', 'H':
		return p.switchOutcome(ViewHex)

	case 'c', 'C':
		return p.switchOutcome(ViewAnnotated)

	case keyPlain:
		return p.switchOutcome(ViewPlain)

	case 'g':
		return p.seekOutcome(0)

	case 'G':
		return p.seekOutcome(p.lastPageOffset(rowWidth))

	case keyRedraw:
		return OutcomeAct, nil

	case keySuspend:
		if err := p.suspend(); err != nil {
			return OutcomeError, err
		}
		return OutcomeAct, nil

	default:
		return OutcomeIgnore, nil
	}
}

func (p *Pager) move(delta int64) (Outcome, error) {
	if err := p.window.Move(delta); err != nil {
		if errors.Is(err, fs.ErrPastEnd) {
			return OutcomeIgnore, nil
		}
		return OutcomeError, err
	}
	return OutcomeAct, nil
}

func (p *Pager) pageDown(rowWidth int) (Outcome, error) {
	moved := 0
	for i := 0; i < p.rows; i++ {
		if err := p.window.Move(int64(rowWidth)); err != nil {
			if errors.Is(err, fs.ErrPastEnd) {
				break
			}
			return OutcomeError, err
		}
		moved++
	}
	if moved == 0 {
		return OutcomeIgnore, nil
	}
	return OutcomeAct, nil
}

func (p *Pager) switchOutcome(id ViewID) (Outcome, error) {
	if p.views.ActiveID() == id {
		return OutcomeIgnore, nil
	}
	if err := p.SwitchTo(id); err != nil {
		return OutcomeError, err
	}
	return OutcomeAct, nil
}

func (p *Pager) seekOutcome(offset int64) (Outcome, error) {
	if p.window.Tell() == offset {
		return OutcomeIgnore, nil
	}
	if err := p.window.SeekTo(offset); err != nil {
		return OutcomeError, err
	}
	return OutcomeAct, nil
}

// lastPageOffset is the row-aligned offset whose page ends with the last row
// of the file.
func (p *Pager) lastPageOffset(rowWidth int) int64 {
	if rowWidth <= 0 {
		return 0
	}
	width := int64(rowWidth)
	totalRows := (p.window.Len() + width - 1) / width
	first := totalRows - int64(p.rows)
	if first < 0 {
		first = 0
	}
	return first * width
}

func (p *Pager) clearScreen() error {
	return p.console.Write([]byte(seqEraseScreen + seqCursorHome))
}

type nopWriter struct{}

func (nopWriter) Write(b []byte) (int, error) { return len(b), nil }
