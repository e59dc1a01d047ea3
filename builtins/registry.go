package builtins

import (
	"io"
	"math"
	"sort"

	"primer/types"
)

// Registry holds the global values every script starts with
type Registry struct {
	values map[string]types.Value
	out    io.Writer
}

// NewRegistry creates a registry whose console writes to out
func NewRegistry(out io.Writer) *Registry {
	r := &Registry{
		values: make(map[string]types.Value),
		out:    out,
	}

	console := types.NewRecord()
	console.Set("log", types.NewBuiltin("log", r.consoleLog))
	r.Register("console", console)

	r.Register("NaN", types.NewNum(math.NaN()))
	r.Register("Infinity", types.NewNum(math.Inf(1)))
	r.Register("Math", newMath())
	r.Register("String", types.NewBuiltin("String", builtinString))
	r.Register("Number", types.NewBuiltin("Number", builtinNumber))
	r.Register("isNaN", types.NewBuiltin("isNaN", builtinIsNaN))

	return r
}

// Register binds a global name
func (r *Registry) Register(name string, v types.Value) {
	r.values[name] = v
}

// Get looks up a global by name
func (r *Registry) Get(name string) (types.Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
