package check

import (
	"primer/parser"
	"primer/types"
)

type bindingKind int

const (
	bindLet bindingKind = iota
	bindConst
	bindFunc
	bindParam
	bindGlobal
)

// binding is one declared name
type binding struct {
	name string
	kind bindingKind
	typ  types.Type
	pos  parser.Position
	fn   *funcContext // function whose body declares the name

	// declared is false between block entry (where the name is hoisted)
	// and the declaration itself.
	declared bool
}

// Environment represents a lexical scope used during checking
type Environment struct {
	parent  *Environment
	symbols map[string]*binding

	// narrowed holds types refined by an enclosing condition, e.g. the
	// body of `if (name)` sees `string` for a `string | undefined` name.
	narrowed map[string]types.Type
}

// NewEnvironment creates a new environment with an optional parent
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		parent:  parent,
		symbols: make(map[string]*binding),
	}
}

// Extend returns a child environment
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}

// define binds a name in the current scope
func (e *Environment) define(b *binding) {
	e.symbols[b.name] = b
}

// local returns a binding declared in this scope only
func (e *Environment) local(name string) (*binding, bool) {
	b, ok := e.symbols[name]
	return b, ok
}

// lookup searches the scope chain and returns the binding together with
// its current (possibly narrowed) type
func (e *Environment) lookup(name string) (*binding, types.Type, bool) {
	var narrowed types.Type
	for env := e; env != nil; env = env.parent {
		if narrowed == nil && env.narrowed != nil {
			narrowed = env.narrowed[name]
		}
		if b, ok := env.symbols[name]; ok {
			if narrowed != nil {
				return b, narrowed, true
			}
			return b, b.typ, true
		}
	}
	return nil, nil, false
}

// narrow refines the type of name within this scope
func (e *Environment) narrow(name string, t types.Type) {
	if e.narrowed == nil {
		e.narrowed = make(map[string]types.Type)
	}
	e.narrowed[name] = t
}

// forget drops refinements of name up to the scope declaring it; an
// assignment invalidates what a condition proved.
func (e *Environment) forget(name string) {
	for env := e; env != nil; env = env.parent {
		delete(env.narrowed, name)
		if _, ok := env.symbols[name]; ok {
			return
		}
	}
}

// refine returns a view of e that shares its bindings and adds f to its
// refinements. Statements after an if whose clauses all return are
// checked in such a view; closures queued earlier keep seeing e.
func (e *Environment) refine(f facts) *Environment {
	view := &Environment{parent: e.parent, symbols: e.symbols}
	if len(e.narrowed) > 0 {
		view.narrowed = make(map[string]types.Type, len(e.narrowed))
		for name, t := range e.narrowed {
			view.narrowed[name] = t
		}
	}
	return view.with(f)
}
