// Package resolver implements the static resolution of variables in a Lox program.
package resolver

import (
	"fmt"
	"iter"
	"maps"

	"github.com/loxlang/lox/golox/ast"
	"github.com/loxlang/lox/golox/loxerr"
	"github.com/loxlang/lox/golox/stack"
	"github.com/loxlang/lox/golox/token"
)

// Locals maps expressions which refer to local variables to the distance from the scope where they appear to the
// scope where the variable was declared. A distance of 0 means the variable was declared in the current scope, 1
// means it was declared in the enclosing scope, and so on. Expressions which refer to global variables are not
// present.
// The zero value is an empty table. Locals is never modified after it's returned by [Resolve].
type Locals struct {
	distances map[ast.Expr]int
}

// Distance returns the distance to the scope where the variable referred to by expr was declared. ok is false if
// expr refers to a global variable.
func (l Locals) Distance(expr ast.Expr) (distance int, ok bool) {
	distance, ok = l.distances[expr]
	return distance, ok
}

// Len returns the number of resolved expressions.
func (l Locals) Len() int {
	return len(l.distances)
}

// All returns an iterator over all resolved expressions and their distances.
func (l Locals) All() iter.Seq2[ast.Expr, int] {
	return maps.All(l.distances)
}

// Resolve resolves the variables referred to in the given program.
// Every resolution error in the program is reported in the returned error.
func Resolve(program *ast.Program) (Locals, error) {
	r := &resolver{
		scopes:    stack.New[map[string]bool](),
		distances: map[ast.Expr]int{},
	}
	r.resolveStmts(program.Stmts)
	return Locals{distances: r.distances}, r.errs.Err()
}

type funType int

const (
	funTypeNone funType = iota
	funTypeFunction
	funTypeMethod
	funTypeInitialiser
)

type classType int

const (
	classTypeNone classType = iota
	classTypeClass
	classTypeSubclass
)

type resolver struct {
	// scopes is a stack of local scopes where each scope maps variable names to whether they've been defined.
	// The global scope is not tracked.
	scopes    *stack.Stack[map[string]bool]
	distances map[ast.Expr]int

	curFunType   funType
	curClassType classType

	errs loxerr.Errors
}

func (r *resolver) beginScope() func() {
	r.scopes.Push(map[string]bool{})
	return func() {
		r.scopes.Pop()
	}
}

// declare adds name to the innermost scope as declared but not yet defined.
func (r *resolver) declare(name token.Token) {
	if r.scopes.Empty() {
		return
	}
	scope := r.scopes.Peek()
	if _, ok := scope[name.Lexeme]; ok {
		r.errs.Addf(name, loxerr.DuplicateDeclaration, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *resolver) define(name token.Token) {
	if r.scopes.Empty() {
		return
	}
	r.scopes.Peek()[name.Lexeme] = true
}

// resolveLocal records the distance to the innermost scope which declares name. If no scope declares it then it's
// assumed to be global and nothing is recorded.
func (r *resolver) resolveLocal(expr ast.Expr, name string) {
	for distance, scope := range r.scopes.Backward() {
		if _, ok := scope[name]; ok {
			r.distances[expr] = distance
			return
		}
	}
}

func (r *resolver) resolveStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		r.resolveStmt(stmt)
	}
}

func (r *resolver) resolveStmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.ExprStmt:
		r.resolveExpr(stmt.Expr)
	case *ast.PrintStmt:
		r.resolveExpr(stmt.Expr)
	case *ast.VarDecl:
		r.resolveVarDecl(stmt)
	case *ast.BlockStmt:
		endScope := r.beginScope()
		r.resolveStmts(stmt.Stmts)
		endScope()
	case *ast.IfStmt:
		r.resolveExpr(stmt.Condition)
		r.resolveStmt(stmt.Then)
		if stmt.Else != nil {
			r.resolveStmt(stmt.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpr(stmt.Condition)
		r.resolveStmt(stmt.Body)
	case *ast.FunDecl:
		r.declare(stmt.Name)
		r.define(stmt.Name)
		r.resolveFun(stmt, funTypeFunction)
	case *ast.ReturnStmt:
		r.resolveReturnStmt(stmt)
	case *ast.ClassDecl:
		r.resolveClassDecl(stmt)
	case *ast.IllegalStmt:
		panic("illegal statement can't be resolved")
	default:
		panic(fmt.Sprintf("unexpected statement type: %T", stmt))
	}
}

func (r *resolver) resolveVarDecl(stmt *ast.VarDecl) {
	r.declare(stmt.Name)
	if stmt.Initialiser != nil {
		r.resolveExpr(stmt.Initialiser)
	}
	r.define(stmt.Name)
}

func (r *resolver) resolveFun(decl *ast.FunDecl, typ funType) {
	enclosingFunType := r.curFunType
	r.curFunType = typ
	defer func() { r.curFunType = enclosingFunType }()

	endScope := r.beginScope()
	defer endScope()
	for _, param := range decl.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(decl.Body)
}

func (r *resolver) resolveReturnStmt(stmt *ast.ReturnStmt) {
	if r.curFunType == funTypeNone {
		r.errs.Addf(stmt.Return, loxerr.ReturnOutsideFunction, "Can't return from top-level code.")
	}
	if stmt.Value == nil {
		return
	}
	if r.curFunType == funTypeInitialiser {
		r.errs.Addf(stmt.Return, loxerr.ReturnValueFromInitializer, "Can't return a value from an initializer.")
	}
	r.resolveExpr(stmt.Value)
}

func (r *resolver) resolveClassDecl(stmt *ast.ClassDecl) {
	enclosingClassType := r.curClassType
	r.curClassType = classTypeClass
	defer func() { r.curClassType = enclosingClassType }()

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil {
		if stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
			r.errs.Addf(stmt.Superclass.Name, loxerr.InheritFromSelf, "A class can't inherit from itself.")
		}
		r.curClassType = classTypeSubclass
		r.resolveExpr(stmt.Superclass)

		endSuperScope := r.beginScope()
		defer endSuperScope()
		r.scopes.Peek()[token.IdentSuper] = true
	}

	endThisScope := r.beginScope()
	defer endThisScope()
	r.scopes.Peek()[token.IdentThis] = true

	for _, method := range stmt.Methods {
		typ := funTypeMethod
		if method.Name.Lexeme == token.IdentInit {
			typ = funTypeInitialiser
		}
		r.resolveFun(method, typ)
	}
}

func (r *resolver) resolveExpr(expr ast.Expr) {
	switch expr := expr.(type) {
	case *ast.LiteralExpr:
	case *ast.UnaryExpr:
		r.resolveExpr(expr.Right)
	case *ast.BinaryExpr:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)
	case *ast.LogicalExpr:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)
	case *ast.GroupExpr:
		r.resolveExpr(expr.Expr)
	case *ast.VariableExpr:
		r.resolveVariableExpr(expr)
	case *ast.AssignmentExpr:
		r.resolveExpr(expr.Value)
		r.resolveLocal(expr, expr.Name.Lexeme)
	case *ast.CallExpr:
		r.resolveExpr(expr.Callee)
		for _, arg := range expr.Args {
			r.resolveExpr(arg)
		}
	case *ast.GetExpr:
		r.resolveExpr(expr.Object)
	case *ast.SetExpr:
		r.resolveExpr(expr.Value)
		r.resolveExpr(expr.Object)
	case *ast.ThisExpr:
		if r.curClassType == classTypeNone {
			r.errs.Addf(expr.This, loxerr.ThisOutsideClass, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(expr, token.IdentThis)
	case *ast.SuperExpr:
		switch r.curClassType {
		case classTypeNone:
			r.errs.Addf(expr.Super, loxerr.SuperOutsideClass, "Can't use 'super' outside of a class.")
			return
		case classTypeClass:
			r.errs.Addf(expr.Super, loxerr.SuperWithoutSuperclass, "Can't use 'super' in a class with no superclass.")
			return
		}
		r.resolveLocal(expr, token.IdentSuper)
	default:
		panic(fmt.Sprintf("unexpected expression type: %T", expr))
	}
}

func (r *resolver) resolveVariableExpr(expr *ast.VariableExpr) {
	if !r.scopes.Empty() {
		if defined, ok := r.scopes.Peek()[expr.Name.Lexeme]; ok && !defined {
			r.errs.Addf(expr.Name, loxerr.ReadInOwnInitializer, "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(expr, expr.Name.Lexeme)
}
