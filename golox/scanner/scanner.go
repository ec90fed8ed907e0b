// Package scanner converts Lox source code into lexical tokens.
package scanner

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/loxlang/lox/golox/loxerr"
	"github.com/loxlang/lox/golox/token"
)

const eof = -1

// Scan converts src into a sequence of tokens terminated by a single [token.EOF] token.
// Scanning stops at the first lexical error, in which case no tokens are returned and the error is a [*loxerr.Error].
func Scan(src []byte) (tokens []token.Token, err error) {
	s := &scanner{src: src, line: 1}
	s.next()
	defer func() {
		if r := recover(); r != nil {
			if scanErr, ok := r.(*loxerr.Error); ok {
				tokens = nil
				err = scanErr
			} else {
				panic(r)
			}
		}
	}()
	for {
		tok := s.scan()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

type scanner struct {
	src []byte

	ch         rune // character currently being considered
	offset     int  // offset of character currently being considered
	readOffset int  // offset of next character to be read
	line       int  // line of character currently being considered
	lineOffset int  // offset of the first character of the current line
}

func (s *scanner) scan() token.Token {
	s.skipWhitespaceAndComments()

	startOffset := s.offset
	tok := token.Token{Line: s.line, Column: s.offset - s.lineOffset}

	switch ch := s.ch; {
	case ch == eof:
		tok.Type = token.EOF
		return tok
	case ch == '(':
		tok.Type = token.LeftParen
	case ch == ')':
		tok.Type = token.RightParen
	case ch == '{':
		tok.Type = token.LeftBrace
	case ch == '}':
		tok.Type = token.RightBrace
	case ch == ',':
		tok.Type = token.Comma
	case ch == '.':
		tok.Type = token.Dot
	case ch == '-':
		tok.Type = token.Minus
	case ch == '+':
		tok.Type = token.Plus
	case ch == ';':
		tok.Type = token.Semicolon
	case ch == '/':
		tok.Type = token.Slash
	case ch == '*':
		tok.Type = token.Asterisk
	case ch == '!':
		tok.Type = s.either('=', token.BangEqual, token.Bang)
	case ch == '=':
		tok.Type = s.either('=', token.EqualEqual, token.Equal)
	case ch == '<':
		tok.Type = s.either('=', token.LessEqual, token.Less)
	case ch == '>':
		tok.Type = s.either('=', token.GreaterEqual, token.Greater)
	case ch == '"':
		tok.Type = token.String
		tok.Literal = s.consumeString(tok)
		tok.Lexeme = string(s.src[startOffset:s.offset])
		return tok
	case isDigit(ch):
		tok.Type = token.Number
		tok.Lexeme = s.consumeNumber()
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			panic(fmt.Sprintf("unexpected error parsing number literal: %s", err))
		}
		tok.Literal = value
		return tok
	case isAlpha(ch):
		tok.Lexeme = s.consumeIdent()
		tok.Type = token.IdentType(tok.Lexeme)
		if tok.Type == token.Ident {
			tok.Literal = tok.Lexeme
		}
		return tok
	default:
		panic(loxerr.NewAtLinef(s.line, loxerr.UnexpectedCharacter, "Unexpected character."))
	}

	s.next()
	tok.Lexeme = string(s.src[startOffset:s.offset])
	return tok
}

// either consumes the next character and returns ifMatch if it's equal to expected. Otherwise, it returns otherwise.
func (s *scanner) either(expected rune, ifMatch token.Type, otherwise token.Type) token.Type {
	if s.peek() == expected {
		s.next()
		return ifMatch
	}
	return otherwise
}

func (s *scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespace(s.ch):
			s.next()
		case s.ch == '/' && s.peek() == '/':
			for s.ch != '\n' && s.ch != eof {
				s.next()
			}
		default:
			return
		}
	}
}

// consumeString consumes a string literal and returns its contents without the surrounding quotes.
// startTok is the token that the string literal starts at.
func (s *scanner) consumeString(startTok token.Token) string {
	s.next() // "
	contentStart := s.offset
	for s.ch != '"' {
		if s.ch == eof {
			panic(loxerr.NewAtLinef(startTok.Line, loxerr.UnterminatedString, "Unterminated string."))
		}
		s.next()
	}
	contents := string(s.src[contentStart:s.offset])
	s.next() // "
	return contents
}

func (s *scanner) consumeNumber() string {
	start := s.offset
	for isDigit(s.ch) {
		s.next()
	}
	if s.ch == '.' && isDigit(s.peek()) {
		s.next()
		for isDigit(s.ch) {
			s.next()
		}
	}
	return string(s.src[start:s.offset])
}

func (s *scanner) consumeIdent() string {
	start := s.offset
	for isAlphaNumeric(s.ch) {
		s.next()
	}
	return string(s.src[start:s.offset])
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\r', '\t', '\n':
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isAlpha(r rune) bool {
	return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || r == '_'
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}

// next reads the next character into s.ch and advances the scanner.
// If the end of the source code has been reached, s.ch is set to eof.
// The line counter is incremented when moving past a newline, wherever it appears.
func (s *scanner) next() {
	if s.ch == eof {
		return
	}
	if s.ch == '\n' {
		s.line++
		s.lineOffset = s.readOffset
	}

	s.offset = s.readOffset
	if s.readOffset == len(s.src) {
		s.ch = eof
		return
	}

	r, size := utf8.DecodeRune(s.src[s.readOffset:])
	s.readOffset += size
	s.ch = r
}

// peek returns the next character without advancing the scanner.
// If the end of the source code has been reached, eof is returned.
func (s *scanner) peek() rune {
	if s.readOffset >= len(s.src) {
		return eof
	}
	r, _ := utf8.DecodeRune(s.src[s.readOffset:])
	return r
}
