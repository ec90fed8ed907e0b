// Package lox runs Lox source code through each phase of the interpreter.
package lox

import (
	"github.com/sirupsen/logrus"

	"github.com/loxlang/lox/golox/ast"
	"github.com/loxlang/lox/golox/interpreter"
	"github.com/loxlang/lox/golox/parser"
	"github.com/loxlang/lox/golox/resolver"
	"github.com/loxlang/lox/golox/scanner"
	"github.com/loxlang/lox/golox/token"
)

// Run scans, parses, resolves and then interprets src with interp.
// Output is printed to the interpreter's stdout. If any phase fails then the phases after it are not run and the
// error is returned. Its Error method formats the diagnostics, one per line.
// Global state is kept between calls with the same interpreter.
func Run(src []byte, interp *interpreter.Interpreter) error {
	program, err := ParseAST(src)
	if err != nil {
		return err
	}

	locals, err := resolver.Resolve(program)
	if err != nil {
		logrus.WithField("phase", "resolve").WithError(err).Debug("Resolution failed")
		return err
	}
	logrus.WithField("phase", "resolve").Debugf("Resolved %d local variable references", locals.Len())

	if err := interp.Interpret(program, locals); err != nil {
		logrus.WithField("phase", "interpret").WithError(err).Debug("Execution failed")
		return err
	}
	logrus.WithField("phase", "interpret").Debug("Execution finished")
	return nil
}

// Tokens scans src and returns its tokens.
func Tokens(src []byte) ([]token.Token, error) {
	tokens, err := scanner.Scan(src)
	if err != nil {
		logrus.WithField("phase", "scan").WithError(err).Debug("Scanning failed")
		return nil, err
	}
	logrus.WithField("phase", "scan").Debugf("Scanned %d tokens", len(tokens))
	return tokens, nil
}

// ParseAST scans and parses src and returns its AST.
func ParseAST(src []byte) (*ast.Program, error) {
	tokens, err := Tokens(src)
	if err != nil {
		return nil, err
	}
	program, err := parser.Parse(tokens)
	if err != nil {
		logrus.WithField("phase", "parse").WithError(err).Debug("Parsing failed")
		return nil, err
	}
	logrus.WithField("phase", "parse").Debugf("Parsed %d statements", len(program.Stmts))
	return program, nil
}
