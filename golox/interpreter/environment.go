package interpreter

import (
	"fmt"
	"sync"

	"github.com/loxlang/lox/golox/loxerr"
	"github.com/loxlang/lox/golox/token"
)

// environment stores the values of variables in a lexical scope.
// Variables in an enclosing environment are visible in its children, and variables declared in a child shadow those
// with the same name in its ancestors. The enclosing environment is fixed when the environment is created.
type environment struct {
	enclosing *environment

	mu     sync.Mutex
	values map[string]loxObject
}

func newEnvironment(enclosing *environment) *environment {
	return &environment{
		enclosing: enclosing,
		values:    map[string]loxObject{},
	}
}

// Child creates a new environment enclosed by this one.
func (e *environment) Child() *environment {
	return newEnvironment(e)
}

// Define binds name to value in this environment, replacing any existing binding of name in it.
func (e *environment) Define(name string, value loxObject) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.values[name] = value
}

// Get returns the value of the variable named by ident, searching this environment and then each of its ancestors.
// If the variable isn't defined in any of them then a runtime error is raised.
func (e *environment) Get(ident token.Token) loxObject {
	for env := e; env != nil; env = env.enclosing {
		if value, ok := env.lookup(ident.Lexeme); ok {
			return value
		}
	}
	panic(loxerr.Newf(ident, loxerr.UndefinedVariable, "Undefined variable '%s'.", ident.Lexeme))
}

// Assign assigns value to the variable named by ident in the nearest environment which defines it.
// If the variable isn't defined in any of them then a runtime error is raised.
func (e *environment) Assign(ident token.Token, value loxObject) {
	for env := e; env != nil; env = env.enclosing {
		if env.replace(ident.Lexeme, value) {
			return
		}
	}
	panic(loxerr.Newf(ident, loxerr.UndefinedVariable, "Undefined variable '%s'.", ident.Lexeme))
}

// GetAt returns the value of the variable with the given name in the ancestor at the given distance. The variable
// must have been defined there.
func (e *environment) GetAt(distance int, name string) loxObject {
	value, ok := e.ancestor(distance).lookup(name)
	if !ok {
		// This should have been caught by the resolver.
		panic(fmt.Sprintf("%s is not defined at distance %d", name, distance))
	}
	return value
}

// AssignAt assigns value to the variable with the given name in the ancestor at the given distance. The variable
// must have been defined there.
func (e *environment) AssignAt(distance int, name string, value loxObject) {
	if !e.ancestor(distance).replace(name, value) {
		// This should have been caught by the resolver.
		panic(fmt.Sprintf("%s is not defined at distance %d", name, distance))
	}
}

func (e *environment) ancestor(distance int) *environment {
	env := e
	for range distance {
		if env.enclosing == nil {
			panic(fmt.Sprintf("no environment at distance %d", distance))
		}
		env = env.enclosing
	}
	return env
}

func (e *environment) lookup(name string) (loxObject, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	value, ok := e.values[name]
	return value, ok
}

func (e *environment) replace(name string, value loxObject) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.values[name]; !ok {
		return false
	}
	e.values[name] = value
	return true
}
