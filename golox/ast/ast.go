// Package ast defines the types which are used to represent the abstract syntax tree of the Lox programming language.
//
// Every node is referred to by pointer and a node's identity is its address. Two lexically identical expressions in
// different places of a program are different nodes. Nodes are not modified after parsing.
package ast

import (
	"github.com/loxlang/lox/golox/token"
)

// Node is the interface which all AST nodes implement.
type Node interface {
	// Line returns the line that the node starts on.
	Line() int
}

// Program is the root node of the AST.
type Program struct {
	Stmts []Stmt
}

// Line returns the line of the first statement, or 1 if the program is empty.
func (p *Program) Line() int {
	if len(p.Stmts) == 0 {
		return 1
	}
	return p.Stmts[0].Line()
}

// Stmt is the interface which all statement nodes implement.
//
//sumtype:decl
type Stmt interface {
	Node
	isStmt()
}

type stmt struct{}

func (stmt) isStmt() {}

// ExprStmt is an expression statement, such as a function call.
type ExprStmt struct {
	Expr Expr
	stmt
}

func (s *ExprStmt) Line() int { return s.Expr.Line() }

// PrintStmt is a print statement, such as print "abc".
type PrintStmt struct {
	Print token.Token
	Expr  Expr
	stmt
}

func (s *PrintStmt) Line() int { return s.Print.Line }

// VarDecl is a variable declaration, such as var a = 123 or var b.
type VarDecl struct {
	Name        token.Token
	Initialiser Expr // nil if there's no initialiser
	stmt
}

func (d *VarDecl) Line() int { return d.Name.Line }

// BlockStmt is a block statement, such as
//
//	{
//	    var a = 123;
//	    var b = 456;
//	}
type BlockStmt struct {
	LeftBrace token.Token
	Stmts     []Stmt
	stmt
}

func (b *BlockStmt) Line() int { return b.LeftBrace.Line }

// IfStmt is an if statement, such as
//
//	if (a == 123) {
//	    print "abc";
//	} else {
//	    print "def";
//	}
type IfStmt struct {
	If        token.Token
	Condition Expr
	Then      Stmt
	Else      Stmt // nil if there's no else branch
	stmt
}

func (s *IfStmt) Line() int { return s.If.Line }

// WhileStmt is a while statement, such as
//
//	while (a < 10) {
//	    print a;
//	}
//
// For statements are parsed into while statements.
type WhileStmt struct {
	While     token.Token
	Condition Expr
	Body      Stmt
	stmt
}

func (s *WhileStmt) Line() int { return s.While.Line }

// FunDecl is a function declaration, such as fun add(x, y) { return x + y; }. Methods of a class are also FunDecls.
type FunDecl struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
	stmt
}

func (d *FunDecl) Line() int { return d.Name.Line }

// ReturnStmt is a return statement, such as return a + 1.
type ReturnStmt struct {
	Return token.Token
	Value  Expr // nil if no value is returned
	stmt
}

func (s *ReturnStmt) Line() int { return s.Return.Line }

// ClassDecl is a class declaration, such as
//
//	class Foo < Bar {
//	  baz() {
//	    return "qux";
//	  }
//	}
type ClassDecl struct {
	Name       token.Token
	Superclass *VariableExpr // nil if the class has no superclass
	Methods    []*FunDecl
	stmt
}

func (d *ClassDecl) Line() int { return d.Name.Line }

// IllegalStmt is an illegal statement, used as a placeholder when parsing fails.
type IllegalStmt struct {
	From, To token.Token
	stmt
}

func (s *IllegalStmt) Line() int { return s.From.Line }

// Expr is the interface which all expression nodes implement.
//
//sumtype:decl
type Expr interface {
	Node
	isExpr()
}

type expr struct{}

func (expr) isExpr() {}

// LiteralExpr is a literal expression, such as 123, "abc", true or nil.
type LiteralExpr struct {
	Value token.Token
	expr
}

func (e *LiteralExpr) Line() int { return e.Value.Line }

// UnaryExpr is a unary operator expression, such as !a.
type UnaryExpr struct {
	Op    token.Token
	Right Expr
	expr
}

func (e *UnaryExpr) Line() int { return e.Op.Line }

// BinaryExpr is a binary operator expression, such as a + b.
type BinaryExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
	expr
}

func (e *BinaryExpr) Line() int { return e.Left.Line() }

// LogicalExpr is a short-circuiting logical expression, such as a and b.
type LogicalExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
	expr
}

func (e *LogicalExpr) Line() int { return e.Left.Line() }

// GroupExpr is a group expression, such as (a + b).
type GroupExpr struct {
	LeftParen token.Token
	Expr      Expr
	expr
}

func (e *GroupExpr) Line() int { return e.LeftParen.Line }

// VariableExpr is a variable expression, such as a or b.
type VariableExpr struct {
	Name token.Token
	expr
}

func (e *VariableExpr) Line() int { return e.Name.Line }

// AssignmentExpr is an assignment expression, such as a = 2.
type AssignmentExpr struct {
	Name  token.Token
	Value Expr
	expr
}

func (e *AssignmentExpr) Line() int { return e.Name.Line }

// CallExpr is a call expression, such as add(x, 1).
type CallExpr struct {
	Callee     Expr
	RightParen token.Token // used to report errors which occur during the call
	Args       []Expr
	expr
}

func (e *CallExpr) Line() int { return e.Callee.Line() }

// GetExpr is a property access expression, such as a.b.
type GetExpr struct {
	Object Expr
	Name   token.Token
	expr
}

func (e *GetExpr) Line() int { return e.Object.Line() }

// SetExpr is a property assignment expression, such as a.b = 2.
type SetExpr struct {
	Object Expr
	Name   token.Token
	Value  Expr
	expr
}

func (e *SetExpr) Line() int { return e.Object.Line() }

// ThisExpr represents usage of the 'this' keyword.
type ThisExpr struct {
	This token.Token
	expr
}

func (e *ThisExpr) Line() int { return e.This.Line }

// SuperExpr is a superclass method access, such as super.foo.
type SuperExpr struct {
	Super  token.Token
	Method token.Token
	expr
}

func (e *SuperExpr) Line() int { return e.Super.Line }
