package output

import (
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the attached terminal can display.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// Symbols is the glyph set used for status lines and spinners.
type Symbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int
}

// DetectTerminalCapabilities inspects stdout, NO_COLOR and OASNOTES_ASCII.
func DetectTerminalCapabilities() TerminalCapabilities {
	fd := int(os.Stdout.Fd())
	isTTY := term.IsTerminal(fd)

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(fd); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && os.Getenv("NO_COLOR") == "",
		SupportsUnicode: isTTY && os.Getenv("OASNOTES_ASCII") != "1",
		Width:           width,
	}
}

// SelectSymbols picks Unicode or ASCII glyphs for caps.
// Spinner set 14 is braille dots, set 9 is |/-\.
func SelectSymbols(caps TerminalCapabilities) Symbols {
	if caps.SupportsUnicode {
		return Symbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14}
	}
	return Symbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9}
}
