package scanner_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/loxlang/lox/golox/loxerr"
	"github.com/loxlang/lox/golox/scanner"
	"github.com/loxlang/lox/golox/token"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Token
	}{
		{
			name: "empty",
			src:  "",
			want: []token.Token{
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name: "punctuation and operators",
			src:  "(){},.-+;/* ! != = == > >= < <=",
			want: []token.Token{
				{Type: token.LeftParen, Lexeme: "(", Line: 1},
				{Type: token.RightParen, Lexeme: ")", Line: 1},
				{Type: token.LeftBrace, Lexeme: "{", Line: 1},
				{Type: token.RightBrace, Lexeme: "}", Line: 1},
				{Type: token.Comma, Lexeme: ",", Line: 1},
				{Type: token.Dot, Lexeme: ".", Line: 1},
				{Type: token.Minus, Lexeme: "-", Line: 1},
				{Type: token.Plus, Lexeme: "+", Line: 1},
				{Type: token.Semicolon, Lexeme: ";", Line: 1},
				{Type: token.Slash, Lexeme: "/", Line: 1},
				{Type: token.Asterisk, Lexeme: "*", Line: 1},
				{Type: token.Bang, Lexeme: "!", Line: 1},
				{Type: token.BangEqual, Lexeme: "!=", Line: 1},
				{Type: token.Equal, Lexeme: "=", Line: 1},
				{Type: token.EqualEqual, Lexeme: "==", Line: 1},
				{Type: token.Greater, Lexeme: ">", Line: 1},
				{Type: token.GreaterEqual, Lexeme: ">=", Line: 1},
				{Type: token.Less, Lexeme: "<", Line: 1},
				{Type: token.LessEqual, Lexeme: "<=", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name: "var declaration",
			src:  "var x = 1.5;",
			want: []token.Token{
				{Type: token.Var, Lexeme: "var", Line: 1},
				{Type: token.Ident, Lexeme: "x", Literal: "x", Line: 1},
				{Type: token.Equal, Lexeme: "=", Line: 1},
				{Type: token.Number, Lexeme: "1.5", Literal: 1.5, Line: 1},
				{Type: token.Semicolon, Lexeme: ";", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name: "trailing dot is not part of number",
			src:  "123.",
			want: []token.Token{
				{Type: token.Number, Lexeme: "123", Literal: 123.0, Line: 1},
				{Type: token.Dot, Lexeme: ".", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
		{
			name: "comments and newlines",
			src:  "// comment\nprint \"hi\"; // another\n",
			want: []token.Token{
				{Type: token.Print, Lexeme: "print", Line: 2},
				{Type: token.String, Lexeme: `"hi"`, Literal: "hi", Line: 2},
				{Type: token.Semicolon, Lexeme: ";", Line: 2},
				{Type: token.EOF, Line: 3},
			},
		},
		{
			name: "multiline string",
			src:  "\"a\nb\" x",
			want: []token.Token{
				{Type: token.String, Lexeme: "\"a\nb\"", Literal: "a\nb", Line: 1},
				{Type: token.Ident, Lexeme: "x", Literal: "x", Line: 2},
				{Type: token.EOF, Line: 2},
			},
		},
		{
			name: "keywords and identifiers",
			src:  "and class else false for fun if nil or print return super this true var while orchid _a1",
			want: []token.Token{
				{Type: token.And, Lexeme: "and", Line: 1},
				{Type: token.Class, Lexeme: "class", Line: 1},
				{Type: token.Else, Lexeme: "else", Line: 1},
				{Type: token.False, Lexeme: "false", Line: 1},
				{Type: token.For, Lexeme: "for", Line: 1},
				{Type: token.Fun, Lexeme: "fun", Line: 1},
				{Type: token.If, Lexeme: "if", Line: 1},
				{Type: token.Nil, Lexeme: "nil", Line: 1},
				{Type: token.Or, Lexeme: "or", Line: 1},
				{Type: token.Print, Lexeme: "print", Line: 1},
				{Type: token.Return, Lexeme: "return", Line: 1},
				{Type: token.Super, Lexeme: "super", Line: 1},
				{Type: token.This, Lexeme: "this", Line: 1},
				{Type: token.True, Lexeme: "true", Line: 1},
				{Type: token.Var, Lexeme: "var", Line: 1},
				{Type: token.While, Lexeme: "while", Line: 1},
				{Type: token.Ident, Lexeme: "orchid", Literal: "orchid", Line: 1},
				{Type: token.Ident, Lexeme: "_a1", Literal: "_a1", Line: 1},
				{Type: token.EOF, Line: 1},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := scanner.Scan([]byte(test.src))
			if err != nil {
				t.Fatalf("Scan(%q) returned unexpected error: %s", test.src, err)
			}
			if diff := cmp.Diff(test.want, got, cmpopts.IgnoreFields(token.Token{}, "Column")); diff != "" {
				t.Errorf("Scan(%q) mismatch (-want +got):\n%s", test.src, diff)
			}
		})
	}
}

func TestScanColumns(t *testing.T) {
	got, err := scanner.Scan([]byte("a +\n  bc"))
	if err != nil {
		t.Fatalf("Scan returned unexpected error: %s", err)
	}
	var cols []int
	for _, tok := range got {
		cols = append(cols, tok.Column)
	}
	if diff := cmp.Diff([]int{0, 2, 2, 4}, cols); diff != "" {
		t.Errorf("columns mismatch (-want +got):\n%s", diff)
	}
}

func TestScanEOFLine(t *testing.T) {
	srcs := []string{
		"",
		"\n",
		"print 1;\n\n\nprint 2;",
		"// only a comment\n// and another\n",
		"\"one\ntwo\nthree\"\n",
	}
	for _, src := range srcs {
		got, err := scanner.Scan([]byte(src))
		if err != nil {
			t.Fatalf("Scan(%q) returned unexpected error: %s", src, err)
		}
		var eofs int
		for _, tok := range got {
			if tok.Type == token.EOF {
				eofs++
			}
		}
		if eofs != 1 {
			t.Errorf("Scan(%q) returned %d EOF tokens, want 1", src, eofs)
		}
		last := got[len(got)-1]
		if last.Type != token.EOF {
			t.Errorf("Scan(%q) last token = %s, want EOF", src, last.Type)
		}
		if want := 1 + strings.Count(src, "\n"); last.Line != want {
			t.Errorf("Scan(%q) EOF line = %d, want %d", src, last.Line, want)
		}
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantKind loxerr.Kind
		wantMsg  string
	}{
		{
			name:     "unexpected character",
			src:      "print 1;\nvar a = @;",
			wantKind: loxerr.UnexpectedCharacter,
			wantMsg:  "[line 2] Error : Unexpected character.",
		},
		{
			name:     "unterminated string reported at starting line",
			src:      "print \"abc\ndef\n",
			wantKind: loxerr.UnterminatedString,
			wantMsg:  "[line 1] Error : Unterminated string.",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tokens, err := scanner.Scan([]byte(test.src))
			if err == nil {
				t.Fatalf("Scan(%q) returned no error", test.src)
			}
			if tokens != nil {
				t.Errorf("Scan(%q) returned tokens alongside error: %v", test.src, tokens)
			}
			loxErr := &loxerr.Error{}
			if !errors.As(err, &loxErr) {
				t.Fatalf("Scan(%q) error is %T, want *loxerr.Error", test.src, err)
			}
			if loxErr.Kind != test.wantKind {
				t.Errorf("Scan(%q) error kind = %s, want %s", test.src, loxErr.Kind, test.wantKind)
			}
			if got := err.Error(); got != test.wantMsg {
				t.Errorf("Scan(%q) error = %q, want %q", test.src, got, test.wantMsg)
			}
		})
	}
}
