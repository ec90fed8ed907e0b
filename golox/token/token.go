// Package token declares the type representing a lexical token of Lox code.
package token

import (
	"fmt"
)

// Constants for special identifiers.
const (
	IdentThis  = "this"
	IdentSuper = "super"
	IdentInit  = "init"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type Type -linecomment

// Type is the type of a lexical token of Lox code.
type Type int

// The list of all token types.
const (
	EOF Type = iota

	// Keywords
	keywordsStart
	And    // and
	Class  // class
	Else   // else
	False  // false
	For    // for
	Fun    // fun
	If     // if
	Nil    // nil
	Or     // or
	Print  // print
	Return // return
	Super  // super
	This   // this
	True   // true
	Var    // var
	While  // while
	keywordsEnd

	// Literals
	Ident  // identifier
	String // string
	Number // number

	// Symbols
	symbolsStart
	LeftParen    // (
	RightParen   // )
	LeftBrace    // {
	RightBrace   // }
	Comma        // ,
	Dot          // .
	Minus        // -
	Plus         // +
	Semicolon    // ;
	Slash        // /
	Asterisk     // *
	Bang         // !
	BangEqual    // !=
	Equal        // =
	EqualEqual   // ==
	Greater      // >
	GreaterEqual // >=
	Less         // <
	LessEqual    // <=
	symbolsEnd
)

var keywordTypesByIdent = func() map[string]Type {
	keywordTypesByIdent := make(map[string]Type, keywordsEnd-keywordsStart-1)
	for i := keywordsStart + 1; i < keywordsEnd; i++ {
		keywordTypesByIdent[i.String()] = i
	}
	return keywordTypesByIdent
}()

// IdentType returns the type of the keyword with the given identifier, or Ident if the identifier is not a
// keyword.
func IdentType(ident string) Type {
	if keywordType, ok := keywordTypesByIdent[ident]; ok {
		return keywordType
	}
	return Ident
}

// IsKeyword reports whether t is the type of a reserved word.
func (t Type) IsKeyword() bool {
	return keywordsStart < t && t < keywordsEnd
}

// IsSymbol reports whether t is the type of a punctuation or operator token.
func (t Type) IsSymbol() bool {
	return symbolsStart < t && t < symbolsEnd
}

// Token is a lexical token of Lox code.
type Token struct {
	Type   Type
	Lexeme string // Exact source text of the token
	// Literal is the payload of the token: the unquoted contents of a String, the float64 value of a Number, or the
	// name of an Ident. It's nil for all other types.
	Literal any
	Line    int // 1-based line number
	Column  int // 0-based byte offset from the start of the line
}

// Equal reports whether t and other have the same type, lexeme and line. The column is not compared.
func (t Token) Equal(other Token) bool {
	return t.Type == other.Type && t.Lexeme == other.Lexeme && t.Line == other.Line
}

func (t Token) String() string {
	switch {
	case t.Type == EOF:
		return fmt.Sprintf("%d: [%s]", t.Line, t.Type)
	case t.Type.IsKeyword() || t.Type.IsSymbol():
		return fmt.Sprintf("%d: %s", t.Line, t.Lexeme)
	default:
		return fmt.Sprintf("%d: %s [%s]", t.Line, t.Lexeme, t.Type)
	}
}
