package textutil

import (
	"testing"
)

func TestSanitizeTerminalTextLeavesSafeInput(t *testing.T) {
	input := "safe-file.bin"
	if got := SanitizeTerminalText(input); got != input {
		t.Fatalf("expected %q to remain untouched, got %q", input, got)
	}
}

func TestSanitizeTerminalTextReplacesControlSequences(t *testing.T) {
	input := "bad\x1b[31m\npath"
	got := SanitizeTerminalText(input)
	if got != "bad?[31m path" {
		t.Fatalf("expected sanitized string \"bad?[31m path\", got %q", got)
	}
	if containsControl(got) {
		t.Fatalf("sanitized text should not contain control characters: %q", got)
	}
}

func TestPrintableByte(t *testing.T) {
	tests := []struct {
		b    byte
		want bool
	}{
		{0x00, false},
		{0x09, false},
		{0x1f, false},
		{' ', true},
		{'A', true},
		{'~', true},
		{0x7f, false},
		{0x80, false},
		{0xa0, false},
		{0xff, false},
	}
	for _, tt := range tests {
		if got := PrintableByte(tt.b); got != tt.want {
			t.Fatalf("PrintableByte(%#02x)=%v want %v", tt.b, got, tt.want)
		}
	}
}

func TestPrintableByteCoversExactlyASCIIGraphics(t *testing.T) {
	for i := 0; i < 256; i++ {
		b := byte(i)
		want := b >= 0x20 && b <= 0x7e
		if got := PrintableByte(b); got != want {
			t.Fatalf("PrintableByte(%#02x)=%v want %v", b, got, want)
		}
	}
}

func TestSanitizeByte(t *testing.T) {
	if got := SanitizeByte('A'); got != 'A' {
		t.Fatalf("SanitizeByte('A')=%q", got)
	}
	if got := SanitizeByte(0x01); got != Placeholder {
		t.Fatalf("SanitizeByte(0x01)=%q want %q", got, Placeholder)
	}
}

func containsControl(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return true
		}
	}
	return false
}

func TestDisplayNameComposesAndMasks(t *testing.T) {
	decomposed := "café\x07.bin"
	if got := DisplayName(decomposed); got != "café?.bin" {
		t.Fatalf("DisplayName(%q)=%q", decomposed, got)
	}
}
