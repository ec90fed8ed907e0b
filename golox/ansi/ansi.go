// Package ansi formats text with ANSI escape sequences.
//
// Strings passed to the functions in this package can contain placeholders of the form ${NAME}, where NAME is one of
// RESET, BOLD, FAINT, RESET_BOLD, RED, GREEN, YELLOW, CYAN or DEFAULT. Each placeholder is replaced by the
// corresponding escape sequence if output is [Enabled], otherwise it's removed. Placeholders are replaced after any
// arguments have been interpolated.
package ansi

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var codes = map[string]int{
	"RESET":      0,
	"BOLD":       1,
	"FAINT":      2,
	"RESET_BOLD": 22,
	"RED":        31,
	"GREEN":      32,
	"YELLOW":     33,
	"CYAN":       36,
	"DEFAULT":    39,
}

var (
	escapeReplacer *strings.Replacer
	emptyReplacer  *strings.Replacer
)

func init() {
	escapeOldnew := make([]string, 0, 2*len(codes))
	emptyOldnew := make([]string, 0, 2*len(codes))
	for name, code := range codes {
		placeholder := "${" + name + "}"
		escapeOldnew = append(escapeOldnew, placeholder, fmt.Sprintf("\x1b[%dm", code))
		emptyOldnew = append(emptyOldnew, placeholder, "")
	}
	escapeReplacer = strings.NewReplacer(escapeOldnew...)
	emptyReplacer = strings.NewReplacer(emptyOldnew...)
}

// Enabled determines whether escape sequences are output. It defaults to [IsTerminal].
var Enabled = IsTerminal()

// IsTerminal reports whether stdout and stderr are both connected to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

func replace(s string) string {
	if Enabled {
		return escapeReplacer.Replace(s)
	}
	return emptyReplacer.Replace(s)
}

// Sprintf formats according to a format specifier and returns the resulting string.
func Sprintf(format string, a ...any) string {
	return replace(fmt.Sprintf(format, a...))
}

// Sprint formats its operands like [fmt.Sprint] and returns the resulting string.
func Sprint(a ...any) string {
	return replace(fmt.Sprint(a...))
}

// Fprintln formats its operands like [fmt.Sprintln] and writes to w.
func Fprintln(w io.Writer, a ...any) (n int, err error) {
	return io.WriteString(w, replace(fmt.Sprintln(a...)))
}
