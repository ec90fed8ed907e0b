package loxerr

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Excerpt formats err followed by the line of src that it applies to, with the offending token highlighted.
// If err wraps more than one [*Error] then each is formatted in turn. Errors which aren't [*Error]s are formatted
// with their Error method.
//
// For example:
//
//	[line 2] Error at '-': Operand must be a number.
//	print -"bar";
//	      ~
func Excerpt(err error, src []byte) string {
	var errs []error
	if multi, ok := err.(interface{ WrappedErrors() []error }); ok {
		errs = multi.WrappedErrors()
	} else {
		errs = []error{err}
	}
	excerpts := make([]string, len(errs))
	for i, err := range errs {
		loxErr := &Error{}
		if !errors.As(err, &loxErr) {
			excerpts[i] = err.Error()
			continue
		}
		excerpts[i] = loxErr.excerpt(src)
	}
	return strings.Join(excerpts, "\n")
}

func (e *Error) excerpt(src []byte) string {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)

	var b strings.Builder
	bold.Fprint(&b, e.Error())

	lines := bytes.Split(src, []byte("\n"))
	if e.Line < 1 || e.Line > len(lines) {
		return b.String()
	}
	line := bytes.TrimSuffix(lines[e.Line-1], []byte("\r"))
	if !utf8.Valid(line) {
		// If the line is not valid UTF-8 then we can't display it, so just return the error message on its own.
		return b.String()
	}
	fmt.Fprint(&b, "\n", string(line))
	if e.Width == 0 || e.Column+e.Width > len(line) {
		// There's nothing to highlight
		return b.String()
	}

	fmt.Fprint(&b, "\n", strings.Repeat(" ", runewidth.StringWidth(string(line[:e.Column]))))
	red.Fprint(&b, strings.Repeat("~", runewidth.StringWidth(string(line[e.Column:e.Column+e.Width]))))
	return b.String()
}
