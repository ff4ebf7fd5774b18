package fs

import (
	"fmt"
	"strings"

	"github.com/kk-code-lab/rhd/internal/textutil"
)

// Encoding selects how raw file bytes are turned into terminal text.
type Encoding int

const (
	// EncodingHex renders each byte as two uppercase hex digits, pairs
	// separated by a single space.
	EncodingHex Encoding = iota
	// EncodingAnnotated renders each byte as a space-framed single character
	// cell, aligned with the hex columns.
	EncodingAnnotated
	// EncodingPlain renders one character per byte with no separators.
	EncodingPlain
)

const hexDigits = "0123456789ABCDEF"

func (e Encoding) String() string {
	switch e {
	case EncodingHex:
		return "hex"
	case EncodingAnnotated:
		return "chars"
	case EncodingPlain:
		return "plain"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// ParseEncoding maps a configuration name onto an Encoding.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hex", "":
		return EncodingHex, nil
	case "chars", "char", "annotated":
		return EncodingAnnotated, nil
	case "plain", "text":
		return EncodingPlain, nil
	}
	return EncodingHex, fmt.Errorf("unknown view %q (want hex, chars or plain)", name)
}

// FormattedLen returns the number of output bytes produced for n raw bytes.
func (e Encoding) FormattedLen(n int) int {
	if n <= 0 {
		return 0
	}
	switch e {
	case EncodingHex, EncodingAnnotated:
		return n*3 - 1
	default:
		return n
	}
}

// Format returns raw rendered in this encoding.
func (e Encoding) Format(raw []byte) []byte {
	return e.AppendFormat(make([]byte, 0, e.FormattedLen(len(raw))), raw)
}

// AppendFormat appends raw rendered in this encoding to dst.
func (e Encoding) AppendFormat(dst, raw []byte) []byte {
	last := len(raw) - 1
	switch e {
	case EncodingHex:
		for i, b := range raw {
			dst = append(dst, hexDigits[b>>4], hexDigits[b&0x0f])
			if i < last {
				dst = append(dst, ' ')
			}
		}
	case EncodingAnnotated:
		for i, b := range raw {
			dst = append(dst, ' ', textutil.SanitizeByte(b))
			if i < last {
				dst = append(dst, ' ')
			}
		}
	default:
		for _, b := range raw {
			dst = append(dst, textutil.SanitizeByte(b))
		}
	}
	return dst
}
