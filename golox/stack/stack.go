// Package stack implements a generic LIFO stack.
package stack

import (
	"iter"
)

// Stack is a generic LIFO stack. The zero value is an empty stack ready to use.
type Stack[E any] struct {
	elems []E
}

// New creates a new stack.
func New[E any]() *Stack[E] {
	return &Stack[E]{}
}

// Push pushes a value onto the stack.
func (s *Stack[E]) Push(v E) {
	s.elems = append(s.elems, v)
}

// Pop pops a value from the stack and returns it.
// If the stack is empty, it panics.
func (s *Stack[E]) Pop() E {
	if len(s.elems) == 0 {
		panic("pop from empty stack")
	}
	v := s.elems[len(s.elems)-1]
	s.elems = s.elems[:len(s.elems)-1]
	return v
}

// Peek returns the top value of the stack without removing it.
// If the stack is empty, it panics.
func (s *Stack[E]) Peek() E {
	if len(s.elems) == 0 {
		panic("peek of empty stack")
	}
	return s.elems[len(s.elems)-1]
}

// Len returns the number of elements in the stack.
func (s *Stack[E]) Len() int {
	return len(s.elems)
}

// Empty reports whether the stack has no elements.
func (s *Stack[E]) Empty() bool {
	return len(s.elems) == 0
}

// Backward returns an iterator over the elements of the stack from the top down, paired with their depth: the top
// element has depth 0, the one below it depth 1, and so on.
func (s *Stack[E]) Backward() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		for i := len(s.elems) - 1; i >= 0; i-- {
			if !yield(len(s.elems)-1-i, s.elems[i]) {
				return
			}
		}
	}
}
