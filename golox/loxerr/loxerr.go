// Package loxerr defines the type which describes an error during the scanning, parsing, resolving, or execution of a
// Lox program.
package loxerr

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/loxlang/lox/golox/token"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type Kind -linecomment

// Kind identifies the category of an [*Error].
type Kind int

// The list of all error kinds, grouped by the phase which reports them.
const (
	// Scanner
	UnexpectedCharacter Kind = iota // unexpected character
	UnterminatedString              // unterminated string

	// Parser
	ExpectToken             // expected token
	ExpectExpression        // expected expression
	ExpectVariableName      // expected variable name
	InvalidAssignmentTarget // invalid assignment target
	MaxArgumentCount        // too many arguments
	ExpectName              // expected name

	// Resolver
	ReadInOwnInitializer       // read in own initializer
	DuplicateDeclaration       // duplicate declaration
	ReturnOutsideFunction      // return outside function
	ReturnValueFromInitializer // return value from initializer
	ThisOutsideClass           // this outside class
	SuperOutsideClass          // super outside class
	SuperWithoutSuperclass     // super without superclass
	InheritFromSelf            // inherit from self

	// Interpreter
	TypeMismatch                // type mismatch
	BinaryOperation             // binary operation
	DivideByZero                // divide by zero
	NotCallable                 // not callable
	ArityMismatch               // arity mismatch
	OnlyInstancesHaveProperties // only instances have properties
	UndefinedProperty           // undefined property
	SuperclassNotClass          // superclass not class

	// Environment
	UndefinedVariable // undefined variable
)

// Error describes an error that occurred during the execution of a Lox program.
// It can describe any error which can be attributed to a line of the source code and, usually, a token on that line.
type Error struct {
	Kind   Kind
	Msg    string
	Line   int    // 1-based line that the error applies to
	Column int    // 0-based byte offset of the offending token, if there is one
	Width  int    // Length in bytes of the offending token, or 0 if there isn't one
	Where  string // Location of the error on the line, such as "at 'foo'" or "at end"
}

// Newf creates a [*Error] which describes a problem with the given token.
// The error message is constructed from the given format string and arguments, as in [fmt.Sprintf].
func Newf(tok token.Token, kind Kind, format string, args ...any) *Error {
	where := fmt.Sprintf("at '%s'", tok.Lexeme)
	if tok.Type == token.EOF {
		where = "at end"
	}
	return &Error{
		Kind:   kind,
		Msg:    fmt.Sprintf(format, args...),
		Line:   tok.Line,
		Column: tok.Column,
		Width:  len(tok.Lexeme),
		Where:  where,
	}
}

// NewAtLinef creates a [*Error] which can only be attributed to a line of the source code.
func NewAtLinef(line int, kind Kind, format string, args ...any) *Error {
	return &Error{
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
		Line: line,
	}
}

// Error formats the error as a single line diagnostic.
//
// For example:
//
//	[line 2] Error at '+': Operands must be two numbers or two strings.
//	[line 1] Error : Unexpected character.
func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] Error %s: %s", e.Line, e.Where, e.Msg)
}

func (e *Error) compare(other *Error) int {
	if e.Line != other.Line {
		return cmp.Compare(e.Line, other.Line)
	}
	return cmp.Compare(e.Column, other.Column)
}

// Errors is a list of [*Error]s.
type Errors []*Error

// Add adds a [*Error] to the list of errors.
func (e *Errors) Add(err *Error) {
	*e = append(*e, err)
}

// Addf adds a [*Error] to the list of errors.
// The parameters are the same as for [Newf].
func (e *Errors) Addf(tok token.Token, kind Kind, format string, args ...any) {
	e.Add(Newf(tok, kind, format, args...))
}

// Err orders the errors in the list by their position in the source code and returns them as a single error which
// formats each error on its own line. If the list is empty then nil is returned.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	slices.SortStableFunc(e, (*Error).compare)
	result := &multierror.Error{ErrorFormat: formatErrorList}
	for _, err := range e {
		result = multierror.Append(result, err)
	}
	return result
}

func formatErrorList(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}
