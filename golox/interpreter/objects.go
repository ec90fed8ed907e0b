package interpreter

import (
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/loxlang/lox/golox/ast"
	"github.com/loxlang/lox/golox/loxerr"
	"github.com/loxlang/lox/golox/token"
)

// loxObject is a Lox runtime value.
// Values of the same type are equal if their underlying Go values are equal: numbers and strings by value, and
// functions, classes and instances by identity.
type loxObject interface {
	String() string
}

type loxUnaryOperand interface {
	// UnaryOp returns the result of applying the given unary operator to the object. If the operator is not supported,
	// then the return value is nil.
	UnaryOp(op token.Token) loxObject
}

type loxBinaryOperand interface {
	// BinaryOp returns the result of applying the given binary operator to the object. If the operator is not
	// supported for the given operand, then the return value is nil.
	BinaryOp(op token.Token, right loxObject) loxObject
}

type loxCallable interface {
	loxObject
	Arity() int
	Call(interpreter *Interpreter, args []loxObject) loxObject
}

// isTruthy reports whether obj is considered true in a boolean context. nil and false are falsy and everything else
// is truthy.
func isTruthy(obj loxObject) bool {
	switch obj := obj.(type) {
	case loxNil:
		return false
	case loxBool:
		return bool(obj)
	default:
		return true
	}
}

type loxNumber float64

var (
	_ loxObject        = loxNumber(0)
	_ loxUnaryOperand  = loxNumber(0)
	_ loxBinaryOperand = loxNumber(0)
)

func (n loxNumber) String() string {
	switch {
	case math.IsInf(float64(n), 1):
		return "Infinity"
	case math.IsInf(float64(n), -1):
		return "-Infinity"
	default:
		return strconv.FormatFloat(float64(n), 'f', -1, 64)
	}
}

func (n loxNumber) UnaryOp(op token.Token) loxObject {
	if op.Type == token.Minus {
		return -n
	}
	return nil
}

func (n loxNumber) BinaryOp(op token.Token, right loxObject) loxObject {
	m, ok := right.(loxNumber)
	if !ok {
		return nil
	}
	switch op.Type {
	case token.Asterisk:
		return n * m
	case token.Slash:
		if m == 0 {
			if n == 0 {
				return loxNumber(math.NaN())
			}
			panic(loxerr.Newf(op, loxerr.DivideByZero, "Division by zero."))
		}
		return n / m
	case token.Plus:
		return n + m
	case token.Minus:
		return n - m
	case token.Less:
		return loxBool(n < m)
	case token.LessEqual:
		return loxBool(n <= m)
	case token.Greater:
		return loxBool(n > m)
	case token.GreaterEqual:
		return loxBool(n >= m)
	default:
		return nil
	}
}

type loxString string

var (
	_ loxObject        = loxString("")
	_ loxBinaryOperand = loxString("")
)

func (s loxString) String() string {
	return string(s)
}

func (s loxString) BinaryOp(op token.Token, right loxObject) loxObject {
	if right, ok := right.(loxString); ok && op.Type == token.Plus {
		return s + right
	}
	return nil
}

type loxBool bool

var _ loxObject = loxBool(false)

func (b loxBool) String() string {
	if b {
		return "true"
	}
	return "false"
}

type loxNil struct{}

var _ loxObject = loxNil{}

func (loxNil) String() string {
	return "nil"
}

// loxFunction is a function or method declared in Lox code.
type loxFunction struct {
	decl          *ast.FunDecl
	closure       *environment
	isInitialiser bool
}

func newLoxFunction(decl *ast.FunDecl, closure *environment, isInitialiser bool) *loxFunction {
	return &loxFunction{
		decl:          decl,
		closure:       closure,
		isInitialiser: isInitialiser,
	}
}

var _ loxCallable = &loxFunction{}

func (f *loxFunction) String() string {
	return fmt.Sprintf("<fn %s>", f.decl.Name.Lexeme)
}

func (f *loxFunction) Arity() int {
	return len(f.decl.Params)
}

func (f *loxFunction) Call(interpreter *Interpreter, args []loxObject) loxObject {
	env := f.closure.Child()
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}
	result := interpreter.executeBlock(env, f.decl.Body)
	if f.isInitialiser {
		return f.closure.GetAt(0, token.IdentThis)
	}
	if r, ok := result.(stmtResultReturn); ok {
		return r.Value
	}
	return loxNil{}
}

// Bind returns a copy of the method whose closure binds this to instance.
func (f *loxFunction) Bind(instance *loxInstance) *loxFunction {
	env := f.closure.Child()
	env.Define(token.IdentThis, instance)
	return newLoxFunction(f.decl, env, f.isInitialiser)
}

type nativeFunBody func(args []loxObject) loxObject

// loxNativeFunction is a function implemented in Go.
type loxNativeFunction struct {
	name  string
	arity int
	body  nativeFunBody
}

var _ loxCallable = &loxNativeFunction{}

func (f *loxNativeFunction) String() string {
	return "<native fn>"
}

func (f *loxNativeFunction) Arity() int {
	return f.arity
}

func (f *loxNativeFunction) Call(_ *Interpreter, args []loxObject) loxObject {
	return f.body(args)
}

type loxClass struct {
	Name          string
	superclass    *loxClass
	methodsByName map[string]*loxFunction
}

func newLoxClass(name string, superclass *loxClass, methodsByName map[string]*loxFunction) *loxClass {
	return &loxClass{
		Name:          name,
		superclass:    superclass,
		methodsByName: methodsByName,
	}
}

var _ loxCallable = &loxClass{}

func (c *loxClass) String() string {
	return c.Name
}

// Arity returns the arity of the class's initialiser, or 0 if it doesn't have one.
func (c *loxClass) Arity() int {
	if init, ok := c.FindMethod(token.IdentInit); ok {
		return init.Arity()
	}
	return 0
}

// Call creates a new instance of the class and runs its initialiser, if it has one.
func (c *loxClass) Call(interpreter *Interpreter, args []loxObject) loxObject {
	instance := newLoxInstance(c)
	if init, ok := c.FindMethod(token.IdentInit); ok {
		init.Bind(instance).Call(interpreter, args)
	}
	return instance
}

// FindMethod returns the method with the given name declared by the class or the nearest superclass which declares
// it.
func (c *loxClass) FindMethod(name string) (*loxFunction, bool) {
	for class := c; class != nil; class = class.superclass {
		if method, ok := class.methodsByName[name]; ok {
			return method, true
		}
	}
	return nil, false
}

type loxInstance struct {
	Class *loxClass

	mu                sync.Mutex
	fieldValuesByName map[string]loxObject
}

func newLoxInstance(class *loxClass) *loxInstance {
	return &loxInstance{
		Class:             class,
		fieldValuesByName: map[string]loxObject{},
	}
}

var _ loxObject = &loxInstance{}

func (i *loxInstance) String() string {
	return fmt.Sprintf("%s instance", i.Class.Name)
}

// Get returns the value of the field with the given name or, if there isn't one, the method with that name bound to
// the instance.
func (i *loxInstance) Get(name token.Token) loxObject {
	i.mu.Lock()
	value, ok := i.fieldValuesByName[name.Lexeme]
	i.mu.Unlock()
	if ok {
		return value
	}

	if method, ok := i.Class.FindMethod(name.Lexeme); ok {
		return method.Bind(i)
	}

	panic(loxerr.Newf(name, loxerr.UndefinedProperty, "Undefined property '%s'.", name.Lexeme))
}

func (i *loxInstance) Set(name token.Token, value loxObject) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.fieldValuesByName[name.Lexeme] = value
}
