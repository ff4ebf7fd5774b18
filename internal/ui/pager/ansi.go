package pager

// VT100 sequences used by the renderer.
const (
	seqEraseLine   = "\x1b[0K"
	seqCursorHome  = "\x1b[1;1H"
	seqHideCursor  = "\x1b[?25l"
	seqShowCursor  = "\x1b[?25h"
	seqEraseScreen = "\x1b[2J"
	seqRowBreak    = "\r\n"
)
