// Package output provides terminal output formatting for the oasnotes CLI.
// It has no dependencies on other internal packages.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// DebugLogger is the logging hook accepted by packages that emit debug output.
type DebugLogger func(format string, args ...any)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintStep prints a progress line with a cyan arrow.
func PrintStep(out io.Writer, message string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", cyan("→"), message)
}

// PrintSuccess prints a green checkmark followed by the message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), cyan(message))
}

// PrintIgnored reports a change that was excluded from the notes.
func PrintIgnored(out io.Writer, path, field string) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s\n", dim(fmt.Sprintf("  ignored %s change at %s", field, path)))
}

// PrintWarning prints a yellow warning line.
func PrintWarning(out io.Writer, message string) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("⚠"), message)
}

// PrintRule prints a dim separator labelled with title, sized to the terminal.
func PrintRule(out io.Writer, title string) {
	magenta := color.New(color.FgMagenta, color.Faint).SprintFunc()

	label := " " + title + " "
	lineLen := (GetTerminalWidth() - len(label)) / 2
	if lineLen < 3 {
		lineLen = 3
	}

	line := strings.Repeat("─", lineLen)
	fmt.Fprintf(out, "%s%s%s\n", magenta(line), magenta(label), magenta(line))
}

// NewDebugLogger returns a DebugLogger writing dim "[debug]" lines to out,
// or nil when disabled.
func NewDebugLogger(out io.Writer, enabled bool) DebugLogger {
	if !enabled {
		return nil
	}
	dim := color.New(color.Faint).SprintFunc()
	return func(format string, args ...any) {
		fmt.Fprintln(out, dim("[debug] "+fmt.Sprintf(format, args...)))
	}
}
