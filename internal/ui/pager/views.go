package pager

import (
	"errors"
	"fmt"

	"github.com/kk-code-lab/rhd/internal/fs"
)

// minColumns is the narrowest terminal that still fits one hex cell per row.
const minColumns = 3

// ErrTerminalTooNarrow is returned when the terminal cannot fit a single hex cell.
var ErrTerminalTooNarrow = errors.New("terminal is too narrow")

// ViewID identifies one of the three renderings of the file.
type ViewID int

const (
	ViewHex ViewID = iota
	ViewAnnotated
	ViewPlain
)

const viewCount = 3

func (id ViewID) String() string {
	return id.Encoding().String()
}

// Encoding returns the byte encoding the view renders with.
func (id ViewID) Encoding() fs.Encoding {
	switch id {
	case ViewAnnotated:
		return fs.EncodingAnnotated
	case ViewPlain:
		return fs.EncodingPlain
	default:
		return fs.EncodingHex
	}
}

// ParseViewID maps a view name (hex, chars, plain) onto a ViewID.
func ParseViewID(name string) (ViewID, error) {
	enc, err := fs.ParseEncoding(name)
	if err != nil {
		return ViewHex, err
	}
	switch enc {
	case fs.EncodingAnnotated:
		return ViewAnnotated, nil
	case fs.EncodingPlain:
		return ViewPlain, nil
	default:
		return ViewHex, nil
	}
}

// View is the saved position and row geometry of one rendering.
type View struct {
	ID ViewID
	// Cursor is the offset of the first visible byte when the view was last active.
	Cursor int64
	// RowWidth is the number of raw bytes shown per terminal row.
	RowWidth int
}

// Cursor is the part of the file window the view state drives.
type Cursor interface {
	Tell() int64
	SeekTo(offset int64) error
}

// Views holds the three views and tracks the active one. Hex and annotated
// views always share a cursor; the plain view keeps its own.
type Views struct {
	views  [viewCount]View
	active ViewID
}

// NewViews returns views with zero cursors and row widths, hex active.
func NewViews() *Views {
	v := &Views{active: ViewHex}
	for i := range v.views {
		v.views[i].ID = ViewID(i)
	}
	return v
}

// Active returns the active view.
func (v *Views) Active() *View {
	return &v.views[v.active]
}

// ActiveID returns the identity of the active view.
func (v *Views) ActiveID() ViewID {
	return v.active
}

// Get returns a copy of the view with the given id.
func (v *Views) Get(id ViewID) View {
	return v.views[id]
}

// SaveActive records the window cursor as the active view's cursor.
func (v *Views) SaveActive(c Cursor) error {
	pos := c.Tell()
	if pos < 0 {
		return fs.ErrClosed
	}
	v.views[v.active].Cursor = pos
	switch v.active {
	case ViewHex:
		v.views[ViewAnnotated].Cursor = pos
	case ViewAnnotated:
		v.views[ViewHex].Cursor = pos
	}
	return nil
}

// SwitchTo saves the active view, activates id and moves the window to the
// cursor saved for it.
func (v *Views) SwitchTo(id ViewID, c Cursor) error {
	if id < 0 || id >= viewCount {
		return fmt.Errorf("unknown view %d", int(id))
	}
	if err := v.SaveActive(c); err != nil {
		return fmt.Errorf("save %s view: %w", v.active, err)
	}
	v.active = id
	if err := c.SeekTo(v.views[id].Cursor); err != nil {
		return fmt.Errorf("restore %s view: %w", id, err)
	}
	return nil
}

// Recompute derives row widths from the terminal width and aligns every saved
// cursor down to a row boundary, then moves the window to the active cursor.
func (v *Views) Recompute(cols int, c Cursor) error {
	if cols < minColumns {
		return fmt.Errorf("%w: %d columns", ErrTerminalTooNarrow, cols)
	}
	if err := v.SaveActive(c); err != nil {
		return err
	}

	v.views[ViewHex].RowWidth = cols / 3
	v.views[ViewAnnotated].RowWidth = cols / 3
	v.views[ViewPlain].RowWidth = cols

	for i := range v.views {
		view := &v.views[i]
		view.Cursor -= view.Cursor % int64(view.RowWidth)
	}

	return c.SeekTo(v.views[v.active].Cursor)
}
