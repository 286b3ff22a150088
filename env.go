package main

import "fmt"

// Env is a list of (name value) bindings, most recent first. Binding never
// modifies an existing Env, so older values stay valid for anyone holding them.
type Env struct {
	bindings *List
}

func NewEnv() Env {
	return Env{Nil}
}

// EnvFromList wraps a list that is already shaped like an environment
func EnvFromList(l *List) (Env, error) {
	for rest := l; rest != nil; rest = rest.tail {
		binding, err := AsList(rest.head)
		if err != nil {
			return Env{}, fmt.Errorf("invalid binding %v: %w", rest.head, err)
		}
		if binding.Len() != 2 {
			return Env{}, fmt.Errorf("invalid binding %v: %w: expected (name value)", binding, ErrTypeMismatch)
		}
		if _, err := AsIdentifier(binding.head); err != nil {
			return Env{}, fmt.Errorf("invalid binding %v: %w", binding, err)
		}
	}
	return Env{l}, nil
}

// Bind returns a new Env with name bound to value in front of the existing bindings
func (e Env) Bind(name Identifier, value Exp) Env {
	return Env{Cons(NewList(name, value), e.bindings)}
}

// Lookup returns the newest value bound to name, or Nil if there is none
func (e Env) Lookup(name Identifier) Exp {
	for rest := e.bindings; rest != nil; rest = rest.tail {
		binding := rest.head.(*List)
		if binding.head == name {
			return binding.tail.head
		}
	}
	return Nil
}

// List exposes the bindings as a list value
func (e Env) List() *List {
	return e.bindings
}

// Len is the number of bindings in the chain, shadowed ones included
func (e Env) Len() int {
	return e.bindings.Len()
}

func (e Env) String() string {
	return Print(e.bindings)
}
