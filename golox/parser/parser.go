// Package parser implements a parser for Lox source code.
package parser

import (
	"slices"

	"github.com/loxlang/lox/golox/ast"
	"github.com/loxlang/lox/golox/loxerr"
	"github.com/loxlang/lox/golox/token"
)

const maxArgs = 255

// Parse parses a sequence of tokens, as produced by [scanner.Scan], into an abstract syntax tree. tokens must end with
// a [token.EOF] token.
// All syntax errors are reported in the returned error. If an error is returned then an incomplete AST will still be
// returned along with it, with each declaration which could not be parsed replaced by an [*ast.IllegalStmt].
func Parse(tokens []token.Token) (*ast.Program, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.EOF {
		panic("token sequence must end with EOF")
	}
	p := &parser{tokens: tokens}
	p.tok = tokens[0]
	return p.parseProgram(), p.errs.Err()
}

type parser struct {
	tokens []token.Token
	pos    int
	tok    token.Token // token currently being considered

	errs    loxerr.Errors
	lastErr token.Token
}

func (p *parser) parseProgram() *ast.Program {
	return &ast.Program{
		Stmts: p.parseDeclsUntil(token.EOF),
	}
}

func (p *parser) parseDeclsUntil(types ...token.Type) []ast.Stmt {
	var stmts []ast.Stmt
	for !slices.Contains(types, p.tok.Type) && p.tok.Type != token.EOF {
		stmts = append(stmts, p.safelyParseDecl())
	}
	return stmts
}

func (p *parser) safelyParseDecl() (stmt ast.Stmt) {
	from := p.tok
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(unwind); ok {
				to := p.sync()
				stmt = &ast.IllegalStmt{From: from, To: to}
			} else {
				panic(r)
			}
		}
	}()
	return p.parseDecl()
}

// sync synchronises the parser with the next statement. This is used to recover from a parsing error.
// The final token before the next statement is returned.
func (p *parser) sync() token.Token {
	finalTok := p.tok
	for {
		switch p.tok.Type {
		case token.Semicolon:
			finalTok := p.tok
			p.next()
			return finalTok
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return, token.EOF:
			return finalTok
		}
		finalTok = p.tok
		p.next()
	}
}

func (p *parser) parseDecl() ast.Stmt {
	switch {
	case p.match(token.Class):
		return p.parseClassDecl()
	case p.match(token.Fun):
		return p.parseFunction("function")
	case p.match(token.Var):
		return p.parseVarDecl()
	default:
		return p.parseStmt()
	}
}

func (p *parser) parseClassDecl() *ast.ClassDecl {
	name := p.expectName(loxerr.ExpectName, "Expect class name.")
	var superclass *ast.VariableExpr
	if p.match(token.Less) {
		superclass = &ast.VariableExpr{Name: p.expectName(loxerr.ExpectName, "Expect superclass name.")}
	}
	p.expectf(token.LeftBrace, "Expect '{' before class body.")
	var methods []*ast.FunDecl
	for p.tok.Type != token.RightBrace && p.tok.Type != token.EOF {
		methods = append(methods, p.parseFunction("method"))
	}
	p.expectf(token.RightBrace, "Expect '}' after class body.")
	return &ast.ClassDecl{Name: name, Superclass: superclass, Methods: methods}
}

// parseFunction parses the name, parameters and body of a function or method. kind is used in error messages.
func (p *parser) parseFunction(kind string) *ast.FunDecl {
	name := p.expectName(loxerr.ExpectName, "Expect %s name.", kind)
	p.expectf(token.LeftParen, "Expect '(' after %s name.", kind)
	var params []token.Token
	if p.tok.Type != token.RightParen {
		for {
			if len(params) >= maxArgs {
				p.addErrorf(p.tok, loxerr.MaxArgumentCount, "Can't have more than %d parameters.", maxArgs)
			}
			params = append(params, p.expectName(loxerr.ExpectName, "Expect parameter name."))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.expectf(token.RightParen, "Expect ')' after parameters.")
	leftBrace := p.expectf(token.LeftBrace, "Expect '{' before %s body.", kind)
	body := p.parseBlock(leftBrace)
	return &ast.FunDecl{Name: name, Params: params, Body: body.Stmts}
}

func (p *parser) parseVarDecl() *ast.VarDecl {
	name := p.expectName(loxerr.ExpectVariableName, "Expect variable name.")
	var value ast.Expr
	if p.match(token.Equal) {
		value = p.parseExpr()
	}
	p.expectf(token.Semicolon, "Expect ';' after variable declaration.")
	return &ast.VarDecl{Name: name, Initialiser: value}
}

func (p *parser) parseStmt() ast.Stmt {
	switch tok := p.tok; {
	case p.match(token.Print):
		return p.parsePrintStmt(tok)
	case p.match(token.LeftBrace):
		return p.parseBlock(tok)
	case p.match(token.If):
		return p.parseIfStmt(tok)
	case p.match(token.While):
		return p.parseWhileStmt(tok)
	case p.match(token.For):
		return p.parseForStmt(tok)
	case p.match(token.Return):
		return p.parseReturnStmt(tok)
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseExprStmt() *ast.ExprStmt {
	expr := p.parseExpr()
	p.expectf(token.Semicolon, "Expect ';' after expression.")
	return &ast.ExprStmt{Expr: expr}
}

func (p *parser) parsePrintStmt(printTok token.Token) *ast.PrintStmt {
	expr := p.parseExpr()
	p.expectf(token.Semicolon, "Expect ';' after value.")
	return &ast.PrintStmt{Print: printTok, Expr: expr}
}

func (p *parser) parseBlock(leftBrace token.Token) *ast.BlockStmt {
	stmts := p.parseDeclsUntil(token.RightBrace)
	p.expectf(token.RightBrace, "Expect '}' after block.")
	return &ast.BlockStmt{LeftBrace: leftBrace, Stmts: stmts}
}

func (p *parser) parseIfStmt(ifTok token.Token) *ast.IfStmt {
	p.expectf(token.LeftParen, "Expect '(' after 'if'.")
	condition := p.parseExpr()
	p.expectf(token.RightParen, "Expect ')' after if condition.")
	thenBranch := p.parseStmt()
	var elseBranch ast.Stmt
	if p.match(token.Else) {
		elseBranch = p.parseStmt()
	}
	return &ast.IfStmt{If: ifTok, Condition: condition, Then: thenBranch, Else: elseBranch}
}

func (p *parser) parseWhileStmt(whileTok token.Token) *ast.WhileStmt {
	p.expectf(token.LeftParen, "Expect '(' after 'while'.")
	condition := p.parseExpr()
	p.expectf(token.RightParen, "Expect ')' after condition.")
	body := p.parseStmt()
	return &ast.WhileStmt{While: whileTok, Condition: condition, Body: body}
}

// parseForStmt parses a for statement into the equivalent while statement, wrapped in a block if there's an
// initialiser:
//
//	{
//	  initialiser;
//	  while (condition) {
//	    body;
//	    update;
//	  }
//	}
func (p *parser) parseForStmt(forTok token.Token) ast.Stmt {
	p.expectf(token.LeftParen, "Expect '(' after 'for'.")
	var initialise ast.Stmt
	switch {
	case p.match(token.Semicolon):
	case p.match(token.Var):
		initialise = p.parseVarDecl()
	default:
		initialise = p.parseExprStmt()
	}
	var condition ast.Expr
	if p.tok.Type != token.Semicolon {
		condition = p.parseExpr()
	}
	p.expectf(token.Semicolon, "Expect ';' after loop condition.")
	var update ast.Expr
	if p.tok.Type != token.RightParen {
		update = p.parseExpr()
	}
	p.expectf(token.RightParen, "Expect ')' after for clauses.")
	body := p.parseStmt()

	if update != nil {
		body = &ast.BlockStmt{
			LeftBrace: forTok,
			Stmts:     []ast.Stmt{body, &ast.ExprStmt{Expr: update}},
		}
	}
	if condition == nil {
		condition = &ast.LiteralExpr{Value: token.Token{Type: token.True, Lexeme: "true", Line: forTok.Line, Column: forTok.Column}}
	}
	var loop ast.Stmt = &ast.WhileStmt{While: forTok, Condition: condition, Body: body}
	if initialise != nil {
		loop = &ast.BlockStmt{LeftBrace: forTok, Stmts: []ast.Stmt{initialise, loop}}
	}
	return loop
}

func (p *parser) parseReturnStmt(returnTok token.Token) *ast.ReturnStmt {
	var value ast.Expr
	if p.tok.Type != token.Semicolon {
		value = p.parseExpr()
	}
	p.expectf(token.Semicolon, "Expect ';' after return value.")
	return &ast.ReturnStmt{Return: returnTok, Value: value}
}

func (p *parser) parseExpr() ast.Expr {
	return p.parseAssignmentExpr()
}

func (p *parser) parseAssignmentExpr() ast.Expr {
	expr := p.parseLogicalOrExpr()
	if equals, ok := p.match2(token.Equal); ok {
		value := p.parseAssignmentExpr()
		switch left := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignmentExpr{Name: left.Name, Value: value}
		case *ast.GetExpr:
			return &ast.SetExpr{Object: left.Object, Name: left.Name, Value: value}
		default:
			p.addErrorf(equals, loxerr.InvalidAssignmentTarget, "Invalid assignment target.")
		}
	}
	return expr
}

func (p *parser) parseLogicalOrExpr() ast.Expr {
	return p.parseLogicalExpr(p.parseLogicalAndExpr, token.Or)
}

func (p *parser) parseLogicalAndExpr() ast.Expr {
	return p.parseLogicalExpr(p.parseEqualityExpr, token.And)
}

// parseLogicalExpr is like parseBinaryExpr but produces short-circuiting logical expressions.
func (p *parser) parseLogicalExpr(next func() ast.Expr, operator token.Type) ast.Expr {
	expr := next()
	for {
		op, ok := p.match2(operator)
		if !ok {
			return expr
		}
		right := next()
		expr = &ast.LogicalExpr{Left: expr, Op: op, Right: right}
	}
}

func (p *parser) parseEqualityExpr() ast.Expr {
	return p.parseBinaryExpr(p.parseComparisonExpr, token.EqualEqual, token.BangEqual)
}

func (p *parser) parseComparisonExpr() ast.Expr {
	return p.parseBinaryExpr(p.parseTermExpr, token.Less, token.LessEqual, token.Greater, token.GreaterEqual)
}

func (p *parser) parseTermExpr() ast.Expr {
	return p.parseBinaryExpr(p.parseFactorExpr, token.Plus, token.Minus)
}

func (p *parser) parseFactorExpr() ast.Expr {
	return p.parseBinaryExpr(p.parseUnaryExpr, token.Asterisk, token.Slash)
}

// parseBinaryExpr parses a left-associative binary expression which uses the given operators. next is a function
// which parses an expression of next highest precedence.
func (p *parser) parseBinaryExpr(next func() ast.Expr, operators ...token.Type) ast.Expr {
	expr := next()
	for {
		op, ok := p.match2(operators...)
		if !ok {
			return expr
		}
		right := next()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}
}

func (p *parser) parseUnaryExpr() ast.Expr {
	if op, ok := p.match2(token.Bang, token.Minus); ok {
		right := p.parseUnaryExpr()
		return &ast.UnaryExpr{Op: op, Right: right}
	}
	return p.parseCallExpr()
}

func (p *parser) parseCallExpr() ast.Expr {
	expr := p.parsePrimaryExpr()
	for {
		switch {
		case p.match(token.LeftParen):
			var args []ast.Expr
			if p.tok.Type != token.RightParen {
				args = p.parseArgs()
			}
			rightParen := p.expectf(token.RightParen, "Expect ')' after arguments.")
			expr = &ast.CallExpr{Callee: expr, RightParen: rightParen, Args: args}
		case p.match(token.Dot):
			name := p.expectName(loxerr.ExpectName, "Expect property name after '.'.")
			expr = &ast.GetExpr{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *parser) parseArgs() []ast.Expr {
	var args []ast.Expr
	for {
		if len(args) >= maxArgs {
			p.addErrorf(p.tok, loxerr.MaxArgumentCount, "Can't have more than %d arguments.", maxArgs)
		}
		args = append(args, p.parseExpr())
		if !p.match(token.Comma) {
			return args
		}
	}
}

func (p *parser) parsePrimaryExpr() ast.Expr {
	switch tok := p.tok; {
	case p.match(token.Number, token.String, token.True, token.False, token.Nil):
		return &ast.LiteralExpr{Value: tok}
	case p.match(token.Ident):
		return &ast.VariableExpr{Name: tok}
	case p.match(token.This):
		return &ast.ThisExpr{This: tok}
	case p.match(token.Super):
		p.expectf(token.Dot, "Expect '.' after 'super'.")
		method := p.expectName(loxerr.ExpectName, "Expect superclass method name.")
		return &ast.SuperExpr{Super: tok, Method: method}
	case p.match(token.LeftParen):
		expr := p.parseExpr()
		p.expectf(token.RightParen, "Expect ')' after expression.")
		return &ast.GroupExpr{LeftParen: tok, Expr: expr}
	default:
		p.addErrorf(tok, loxerr.ExpectExpression, "Expect expression.")
		panic(unwind{})
	}
}

// match reports whether the current token is one of the given types and advances the parser if so.
func (p *parser) match(types ...token.Type) bool {
	if slices.Contains(types, p.tok.Type) {
		p.next()
		return true
	}
	return false
}

// match2 is like match but also returns the matched token.
func (p *parser) match2(types ...token.Type) (token.Token, bool) {
	tok := p.tok
	return tok, p.match(types...)
}

// expectf returns the current token and advances the parser if it has the given type. Otherwise, an
// [loxerr.ExpectToken] error with the given message is added and the method panics to unwind the stack.
func (p *parser) expectf(t token.Type, format string, args ...any) token.Token {
	return p.expectKindf(t, loxerr.ExpectToken, format, args...)
}

// expectName is like expectf but expects an identifier and reports errors of the given kind.
func (p *parser) expectName(kind loxerr.Kind, format string, args ...any) token.Token {
	return p.expectKindf(token.Ident, kind, format, args...)
}

func (p *parser) expectKindf(t token.Type, kind loxerr.Kind, format string, args ...any) token.Token {
	if p.tok.Type == t {
		tok := p.tok
		p.next()
		return tok
	}
	p.addErrorf(p.tok, kind, format, args...)
	panic(unwind{})
}

// next advances the parser to the next token. The parser never advances past the final EOF token.
func (p *parser) next() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	p.tok = p.tokens[p.pos]
}

// addErrorf adds an error at the given token. Only the first error reported at a token is kept, so that an error
// which caused the parser to unwind isn't repeated by the declaration which encloses it.
func (p *parser) addErrorf(tok token.Token, kind loxerr.Kind, format string, args ...any) {
	if len(p.errs) > 0 && tok == p.lastErr {
		return
	}
	p.lastErr = tok
	p.errs.Addf(tok, kind, format, args...)
}

// unwind is used as a panic value so that we can unwind the stack and recover from a parsing error without having to
// check for errors after every call to each parsing method.
type unwind struct{}
