package textutil

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// Placeholder stands in for bytes that have no single-cell glyph.
const Placeholder = '.'

// PrintableByte reports whether b can be written to the terminal as-is and
// occupies exactly one cell. Only printable ASCII qualifies; bytes of the high
// half would be decoded by the terminal as UTF-8 fragments.
func PrintableByte(b byte) bool {
	return b < utf8.RuneSelf && runewidth.RuneWidth(rune(b)) == 1
}

// SanitizeByte returns b unchanged when it is printable and Placeholder otherwise.
func SanitizeByte(b byte) byte {
	if PrintableByte(b) {
		return b
	}
	return Placeholder
}

// DisplayName prepares a file name for diagnostics: decomposed names (as
// produced by macOS file systems) are composed to NFC and control characters
// are masked.
func DisplayName(name string) string {
	return SanitizeTerminalText(norm.NFC.String(name))
}

// SanitizeTerminalText replaces control characters so user-controlled text cannot
// inject terminal escape sequences when rendered.
func SanitizeTerminalText(text string) string {
	for _, r := range text {
		if requiresSanitization(r) {
			return sanitize(text)
		}
	}
	return text
}

func requiresSanitization(r rune) bool {
	if r == '\t' {
		return false
	}
	if r == '\n' || r == '\r' {
		return true
	}
	return (r >= 0 && r < 0x20) || r == 0x7f
}

func sanitize(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
