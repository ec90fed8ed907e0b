// Package interpreter implements a tree-walking interpreter for Lox programs.
package interpreter

import (
	"fmt"
	"io"
	"maps"
	"os"
	"sync"

	"github.com/loxlang/lox/golox/ast"
	"github.com/loxlang/lox/golox/loxerr"
	"github.com/loxlang/lox/golox/resolver"
	"github.com/loxlang/lox/golox/token"
)

//sumtype:decl
type stmtResult interface {
	stmtResult()
}

type stmtResultNone struct{}

func (stmtResultNone) stmtResult() {}

type stmtResultReturn struct {
	Value loxObject
}

func (stmtResultReturn) stmtResult() {}

// Interpreter is the interpreter for the language.
// Global state is kept between calls to [Interpreter.Interpret]. Calls to Interpret on the same Interpreter are
// executed one at a time.
type Interpreter struct {
	stdout   io.Writer
	replMode bool

	mu      sync.Mutex
	globals *environment
	env     *environment // environment of the scope currently being executed
	locals  map[ast.Expr]int
}

// Option can be passed to New to configure the interpreter.
type Option func(*Interpreter)

// WithStdout sets the writer that print statements write to. The default is [os.Stdout].
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) {
		i.stdout = w
	}
}

// REPLMode sets the interpreter to REPL mode.
// In REPL mode, the interpreter will print the result of expression statements.
func REPLMode() Option {
	return func(i *Interpreter) {
		i.replMode = true
	}
}

// New constructs a new Interpreter with the given options.
func New(opts ...Option) *Interpreter {
	globals := newEnvironment(nil)
	for _, fn := range builtins {
		globals.Define(fn.name, fn)
	}
	interpreter := &Interpreter{
		stdout:  os.Stdout,
		globals: globals,
		env:     globals,
		locals:  map[ast.Expr]int{},
	}
	for _, opt := range opts {
		opt(interpreter)
	}
	return interpreter
}

// Interpret executes a program whose variables have been resolved by [resolver.Resolve]. Execution stops at the
// first runtime error, which is returned as a [*loxerr.Error].
// Interpret can be called multiple times with different programs and the state will be maintained between calls.
func (i *Interpreter) Interpret(program *ast.Program, locals resolver.Locals) (err error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			if runtimeErr, ok := r.(*loxerr.Error); ok {
				err = runtimeErr
			} else {
				panic(r)
			}
		}
	}()

	maps.Insert(i.locals, locals.All())
	for _, stmt := range program.Stmts {
		i.execStmt(stmt)
	}
	return nil
}

func (i *Interpreter) execStmt(stmt ast.Stmt) stmtResult {
	switch stmt := stmt.(type) {
	case *ast.ExprStmt:
		i.execExprStmt(stmt)
	case *ast.PrintStmt:
		i.execPrintStmt(stmt)
	case *ast.VarDecl:
		i.execVarDecl(stmt)
	case *ast.BlockStmt:
		return i.executeBlock(i.env.Child(), stmt.Stmts)
	case *ast.IfStmt:
		return i.execIfStmt(stmt)
	case *ast.WhileStmt:
		return i.execWhileStmt(stmt)
	case *ast.FunDecl:
		i.env.Define(stmt.Name.Lexeme, newLoxFunction(stmt, i.env, false))
	case *ast.ReturnStmt:
		return i.execReturnStmt(stmt)
	case *ast.ClassDecl:
		i.execClassDecl(stmt)
	case *ast.IllegalStmt:
		panic("illegal statement can't be executed")
	default:
		panic(fmt.Sprintf("unexpected statement type: %T", stmt))
	}
	return stmtResultNone{}
}

func (i *Interpreter) execExprStmt(stmt *ast.ExprStmt) {
	value := i.evalExpr(stmt.Expr)
	if i.replMode {
		fmt.Fprintln(i.stdout, value.String())
	}
}

func (i *Interpreter) execPrintStmt(stmt *ast.PrintStmt) {
	value := i.evalExpr(stmt.Expr)
	fmt.Fprintln(i.stdout, value.String())
}

func (i *Interpreter) execVarDecl(stmt *ast.VarDecl) {
	var value loxObject = loxNil{}
	if stmt.Initialiser != nil {
		value = i.evalExpr(stmt.Initialiser)
	}
	i.env.Define(stmt.Name.Lexeme, value)
}

// executeBlock executes stmts in env. The current environment is restored when it returns, including when it's
// unwinding from a runtime error.
func (i *Interpreter) executeBlock(env *environment, stmts []ast.Stmt) stmtResult {
	prev := i.env
	i.env = env
	defer func() { i.env = prev }()
	for _, stmt := range stmts {
		result := i.execStmt(stmt)
		if _, ok := result.(stmtResultNone); !ok {
			return result
		}
	}
	return stmtResultNone{}
}

func (i *Interpreter) execIfStmt(stmt *ast.IfStmt) stmtResult {
	if isTruthy(i.evalExpr(stmt.Condition)) {
		return i.execStmt(stmt.Then)
	} else if stmt.Else != nil {
		return i.execStmt(stmt.Else)
	}
	return stmtResultNone{}
}

func (i *Interpreter) execWhileStmt(stmt *ast.WhileStmt) stmtResult {
	for isTruthy(i.evalExpr(stmt.Condition)) {
		if result, ok := i.execStmt(stmt.Body).(stmtResultReturn); ok {
			return result
		}
	}
	return stmtResultNone{}
}

func (i *Interpreter) execReturnStmt(stmt *ast.ReturnStmt) stmtResultReturn {
	var value loxObject = loxNil{}
	if stmt.Value != nil {
		value = i.evalExpr(stmt.Value)
	}
	return stmtResultReturn{Value: value}
}

func (i *Interpreter) execClassDecl(stmt *ast.ClassDecl) {
	var superclass *loxClass
	if stmt.Superclass != nil {
		var ok bool
		superclass, ok = i.evalExpr(stmt.Superclass).(*loxClass)
		if !ok {
			panic(loxerr.Newf(stmt.Superclass.Name, loxerr.SuperclassNotClass, "Superclass must be a class."))
		}
	}

	i.env.Define(stmt.Name.Lexeme, loxNil{})

	methodEnv := i.env
	if superclass != nil {
		methodEnv = i.env.Child()
		methodEnv.Define(token.IdentSuper, superclass)
	}
	methodsByName := make(map[string]*loxFunction, len(stmt.Methods))
	for _, decl := range stmt.Methods {
		methodsByName[decl.Name.Lexeme] = newLoxFunction(decl, methodEnv, decl.Name.Lexeme == token.IdentInit)
	}

	class := newLoxClass(stmt.Name.Lexeme, superclass, methodsByName)
	i.env.Assign(stmt.Name, class)
}

func (i *Interpreter) evalExpr(expr ast.Expr) loxObject {
	switch expr := expr.(type) {
	case *ast.LiteralExpr:
		return i.evalLiteralExpr(expr)
	case *ast.UnaryExpr:
		return i.evalUnaryExpr(expr)
	case *ast.BinaryExpr:
		return i.evalBinaryExpr(expr)
	case *ast.LogicalExpr:
		return i.evalLogicalExpr(expr)
	case *ast.GroupExpr:
		return i.evalExpr(expr.Expr)
	case *ast.VariableExpr:
		return i.lookUpVariable(expr, expr.Name)
	case *ast.AssignmentExpr:
		return i.evalAssignmentExpr(expr)
	case *ast.CallExpr:
		return i.evalCallExpr(expr)
	case *ast.GetExpr:
		return i.evalGetExpr(expr)
	case *ast.SetExpr:
		return i.evalSetExpr(expr)
	case *ast.ThisExpr:
		return i.lookUpVariable(expr, expr.This)
	case *ast.SuperExpr:
		return i.evalSuperExpr(expr)
	default:
		panic(fmt.Sprintf("unexpected expression type: %T", expr))
	}
}

func (i *Interpreter) evalLiteralExpr(expr *ast.LiteralExpr) loxObject {
	switch tok := expr.Value; tok.Type {
	case token.Number:
		return loxNumber(tok.Literal.(float64))
	case token.String:
		return loxString(tok.Literal.(string))
	case token.True, token.False:
		return loxBool(tok.Type == token.True)
	case token.Nil:
		return loxNil{}
	default:
		panic(fmt.Sprintf("unexpected literal type: %s", tok.Type))
	}
}

func (i *Interpreter) evalUnaryExpr(expr *ast.UnaryExpr) loxObject {
	right := i.evalExpr(expr.Right)
	if expr.Op.Type == token.Bang {
		// The behaviour of ! is independent of the type of the operand, so we can implement it here.
		return loxBool(!isTruthy(right))
	}
	if operand, ok := right.(loxUnaryOperand); ok {
		if result := operand.UnaryOp(expr.Op); result != nil {
			return result
		}
	}
	panic(loxerr.Newf(expr.Op, loxerr.TypeMismatch, "Operand must be a number."))
}

func (i *Interpreter) evalBinaryExpr(expr *ast.BinaryExpr) loxObject {
	left := i.evalExpr(expr.Left)
	right := i.evalExpr(expr.Right)
	switch expr.Op.Type {
	case token.EqualEqual:
		// The behaviour of == is independent of the types of the operands, so we can implement it here.
		return loxBool(left == right)
	case token.BangEqual:
		return loxBool(left != right)
	}

	if operand, ok := left.(loxBinaryOperand); ok {
		if result := operand.BinaryOp(expr.Op, right); result != nil {
			return result
		}
	}
	if expr.Op.Type == token.Plus {
		panic(loxerr.Newf(expr.Op, loxerr.BinaryOperation, "Operands must be two numbers or two strings."))
	}
	panic(loxerr.Newf(expr.Op, loxerr.BinaryOperation, "Operands must be numbers."))
}

func (i *Interpreter) evalLogicalExpr(expr *ast.LogicalExpr) loxObject {
	left := i.evalExpr(expr.Left)
	switch expr.Op.Type {
	case token.Or:
		if isTruthy(left) {
			return left
		}
	case token.And:
		if !isTruthy(left) {
			return left
		}
	default:
		panic(fmt.Sprintf("unexpected logical operator: %s", expr.Op.Type))
	}
	return i.evalExpr(expr.Right)
}

// lookUpVariable returns the value of the variable referred to by expr, using its resolved distance if it's local and
// the global environment otherwise.
func (i *Interpreter) lookUpVariable(expr ast.Expr, name token.Token) loxObject {
	if distance, ok := i.locals[expr]; ok {
		return i.env.GetAt(distance, name.Lexeme)
	}
	return i.globals.Get(name)
}

func (i *Interpreter) evalAssignmentExpr(expr *ast.AssignmentExpr) loxObject {
	value := i.evalExpr(expr.Value)
	if distance, ok := i.locals[expr]; ok {
		i.env.AssignAt(distance, expr.Name.Lexeme, value)
	} else {
		i.globals.Assign(expr.Name, value)
	}
	return value
}

func (i *Interpreter) evalCallExpr(expr *ast.CallExpr) loxObject {
	callee := i.evalExpr(expr.Callee)
	args := make([]loxObject, len(expr.Args))
	for j, arg := range expr.Args {
		args[j] = i.evalExpr(arg)
	}

	callable, ok := callee.(loxCallable)
	if !ok {
		panic(loxerr.Newf(expr.RightParen, loxerr.NotCallable, "Can only call functions and classes."))
	}
	if arity := callable.Arity(); len(args) != arity {
		panic(loxerr.Newf(expr.RightParen, loxerr.ArityMismatch, "Expected %d arguments but got %d.", arity, len(args)))
	}
	return callable.Call(i, args)
}

func (i *Interpreter) evalGetExpr(expr *ast.GetExpr) loxObject {
	object := i.evalExpr(expr.Object)
	instance, ok := object.(*loxInstance)
	if !ok {
		panic(loxerr.Newf(expr.Name, loxerr.OnlyInstancesHaveProperties, "Only instances have properties."))
	}
	return instance.Get(expr.Name)
}

func (i *Interpreter) evalSetExpr(expr *ast.SetExpr) loxObject {
	object := i.evalExpr(expr.Object)
	instance, ok := object.(*loxInstance)
	if !ok {
		panic(loxerr.Newf(expr.Name, loxerr.OnlyInstancesHaveProperties, "Only instances have fields."))
	}
	value := i.evalExpr(expr.Value)
	instance.Set(expr.Name, value)
	return value
}

func (i *Interpreter) evalSuperExpr(expr *ast.SuperExpr) loxObject {
	distance, ok := i.locals[expr]
	if !ok {
		// This should have been caught by the resolver.
		panic("super expression has not been resolved")
	}
	superclass := i.env.GetAt(distance, token.IdentSuper).(*loxClass)
	instance := i.env.GetAt(distance-1, token.IdentThis).(*loxInstance)
	method, ok := superclass.FindMethod(expr.Method.Lexeme)
	if !ok {
		panic(loxerr.Newf(expr.Method, loxerr.UndefinedProperty, "Undefined property '%s'.", expr.Method.Lexeme))
	}
	return method.Bind(instance)
}
