package eval

import (
	"sort"

	"primer/types"
)

// slot is one variable binding
type slot struct {
	value       types.Value
	constant    bool
	initialized bool // false between hoisting and the declaration
}

// Environment manages variable bindings with lexical scoping.
// Each block and each function call gets a nested scope.
type Environment struct {
	vars   map[string]*slot
	parent *Environment
}

// NewEnvironment creates a new environment with no parent (global scope)
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]*slot)}
}

// NewNestedEnvironment creates a new environment with a parent scope
func NewNestedEnvironment(parent *Environment) *Environment {
	return &Environment{
		vars:   make(map[string]*slot),
		parent: parent,
	}
}

// lookup finds the innermost binding of name
func (e *Environment) lookup(name string) *slot {
	for env := e; env != nil; env = env.parent {
		if s, ok := env.vars[name]; ok {
			return s
		}
	}
	return nil
}

// Get returns the value of an initialized binding
func (e *Environment) Get(name string) (types.Value, bool) {
	s := e.lookup(name)
	if s == nil || !s.initialized {
		return nil, false
	}
	return s.value, true
}

// Declare creates an uninitialized binding in the current scope; reading
// or writing it before Initialize is an error
func (e *Environment) Declare(name string, constant bool) {
	e.vars[name] = &slot{constant: constant}
}

// Initialize gives a declared binding its first value. A name that was
// never declared is defined as a let binding.
func (e *Environment) Initialize(name string, value types.Value) {
	s, ok := e.vars[name]
	if !ok {
		s = &slot{}
		e.vars[name] = s
	}
	s.value = value
	s.initialized = true
}

// Define creates a mutable binding in the current scope
func (e *Environment) Define(name string, value types.Value) {
	e.vars[name] = &slot{value: value, initialized: true}
}

// DefineConst creates an immutable binding in the current scope
func (e *Environment) DefineConst(name string, value types.Value) {
	e.vars[name] = &slot{value: value, constant: true, initialized: true}
}

// Set assigns to the innermost binding of name
func (e *Environment) Set(name string, value types.Value) *types.Exception {
	s := e.lookup(name)
	switch {
	case s == nil:
		return types.NewException(types.E_REFERENCE, "%s is not defined", name)
	case !s.initialized:
		return types.NewException(types.E_REFERENCE, "Cannot access '%s' before initialization", name)
	case s.constant:
		return types.NewException(types.E_TYPE, "Assignment to constant variable.")
	}
	s.value = value
	return nil
}

// Names returns every name visible from this scope, sorted
func (e *Environment) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for env := e; env != nil; env = env.parent {
		for name := range env.vars {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
