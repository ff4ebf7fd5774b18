package pager

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Control keys delivered as raw bytes in raw mode.
const (
	keyQuit    = byte(tcell.KeyCtrlQ)
	keyPlain   = byte(tcell.KeyCtrlC)
	keyRedraw  = byte(tcell.KeyCtrlL)
	keySuspend = byte(tcell.KeyCtrlZ)
	keyEscape  = byte(tcell.KeyEscape)
	keyNone    = 0
)

// maxCSILen bounds how many bytes of an escape sequence are consumed.
const maxCSILen = 5

// Outcome is the result of classifying one keypress.
type Outcome int

const (
	// OutcomeIgnore needs no redraw.
	OutcomeIgnore Outcome = iota
	// OutcomeAct changed the page and needs a redraw.
	OutcomeAct
	// OutcomeQuit ends the loop.
	OutcomeQuit
	// OutcomeError ends the loop with a failure.
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnore:
		return "ignore"
	case OutcomeAct:
		return "act"
	case OutcomeQuit:
		return "quit"
	case OutcomeError:
		return "error"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// keyName describes b for diagnostics.
func keyName(b byte) string {
	if b < 0x20 || b == 0x7f {
		if name, ok := tcell.KeyNames[tcell.Key(b)]; ok {
			return name
		}
		return fmt.Sprintf("%#02x", b)
	}
	return fmt.Sprintf("%q", rune(b))
}

// decodeEscape reads the rest of an escape sequence and maps navigation keys
// onto their letter bindings. A lone escape or an unknown sequence yields
// keyNone.
func (p *Pager) decodeEscape() (byte, error) {
	next, ok, err := p.console.PollByte()
	if err != nil || !ok {
		return keyNone, err
	}

	switch next {
	case '[':
		return p.decodeCSI()
	case 'O':
		final, ok, err := p.console.PollByte()
		if err != nil || !ok {
			return keyNone, err
		}
		switch final {
		case 'A':
			return 'w', nil
		case 'B':
			return 's', nil
		case 'H':
			return 'g', nil
		case 'F':
			return 'G', nil
		}
	}
	return keyNone, nil
}

func (p *Pager) decodeCSI() (byte, error) {
	seq := make([]byte, 0, maxCSILen)
	for {
		b, ok, err := p.console.PollByte()
		if err != nil || !ok {
			return keyNone, err
		}
		seq = append(seq, b)
		if (b >= 'A' && b <= 'Z') || b == '~' || len(seq) >= maxCSILen {
			break
		}
	}

	switch seq[len(seq)-1] {
	case 'A':
		return 'w', nil
	case 'B':
		return 's', nil
	case 'H':
		return 'g', nil
	case 'F':
		return 'G', nil
	case '~':
		switch string(seq[:len(seq)-1]) {
		case "5":
			return 'a', nil
		case "6":
			return 'd', nil
		case "1", "7":
			return 'g', nil
		case "4", "8":
			return 'G', nil
		}
	}
	return keyNone, nil
}
