package check

import (
	"primer/parser"
	"primer/types"
)

// Options adjusts how strictly scripts are validated
type Options struct {
	// StrictAssignment rejects reading a let binding whose type excludes
	// undefined before it is definitely assigned.
	StrictAssignment bool

	// ExtensibleRecords lets a script insert a field its record type does
	// not declare; the field is added to the type as optional.
	ExtensibleRecords bool
}

// funcContext describes the function whose body is being checked
type funcContext struct {
	name   string
	result types.Type // nil when the return type is not annotated
}

// pendingBody is a function body waiting to be checked
type pendingBody struct {
	fn  *parser.FuncExpr
	sig *types.Func
	env *Environment
	ctx *funcContext
}

// Checker traverses the AST and records diagnostics. A Checker keeps its
// global scope between calls to Check, so an interactive session can
// validate one entry at a time.
type Checker struct {
	opts   Options
	global *Environment
	top    *funcContext

	fn      *funcContext
	pending []pendingBody

	// assigned tracks let bindings of the current function that are
	// definitely assigned at the current point
	assigned map[*binding]bool

	// chainShort is set while checking an optional chain once a ?. link
	// may short-circuit
	chainShort bool

	// widened logs record types grown by ExtensibleRecords during the
	// current Check, so a rejected program can shrink them back
	widened []widening
}

// widening is a record type and its field count before a field was added
type widening struct {
	obj    *types.Object
	fields int
}

// New returns a checker whose global scope holds the built-in names
func New(opts Options) *Checker {
	c := &Checker{
		opts:     opts,
		global:   NewEnvironment(nil),
		top:      &funcContext{name: "<script>"},
		assigned: make(map[*binding]bool),
	}
	c.fn = c.top
	for name, t := range globals() {
		c.global.define(&binding{name: name, kind: bindGlobal, typ: t, declared: true, fn: c.top})
	}
	return c
}

// globals lists the names every script can see
func globals() map[string]types.Type {
	return map[string]types.Type{
		"console": &types.Object{Fields: []types.Field{
			{Name: "log", Type: &types.Func{Variadic: true, Result: types.VoidType}, ReadOnly: true},
		}},
		"NaN":      types.NumberType,
		"Infinity": types.NumberType,
		"Math":     mathType(),
		"String":   &types.Func{Params: []types.Param{{Name: "value", Type: types.AnyType, Optional: true}}, Result: types.StringType},
		"Number":   &types.Func{Params: []types.Param{{Name: "value", Type: types.AnyType, Optional: true}}, Result: types.NumberType},
		"isNaN":    &types.Func{Params: []types.Param{{Name: "value", Type: types.AnyType}}, Result: types.BooleanType},
	}
}

func mathType() *types.Object {
	num := func(names ...string) *types.Func {
		f := &types.Func{Result: types.NumberType}
		for _, name := range names {
			f.Params = append(f.Params, types.Param{Name: name, Type: types.NumberType})
		}
		return f
	}
	m := &types.Object{}
	for _, name := range []string{"abs", "ceil", "floor", "round", "sqrt", "trunc"} {
		m.Fields = append(m.Fields, types.Field{Name: name, Type: num("x")})
	}
	m.Fields = append(m.Fields,
		types.Field{Name: "PI", Type: types.NumberType},
		types.Field{Name: "pow", Type: num("x", "y")},
		types.Field{Name: "random", Type: num()},
		types.Field{Name: "min", Type: &types.Func{Variadic: true, Result: types.NumberType}},
		types.Field{Name: "max", Type: &types.Func{Variadic: true, Result: types.NumberType}},
	)
	for i := range m.Fields {
		m.Fields[i].ReadOnly = true
	}
	return m
}

// Check validates a program. When it reports diagnostics the checker is
// left as it was: names the program declared are removed, and the
// definite-assignment state and widened record types are restored.
func (c *Checker) Check(program []parser.Stmt) Diagnostics {
	before := make(map[string]bool, len(c.global.symbols))
	for name := range c.global.symbols {
		before[name] = true
	}
	assigned := c.snapshot()

	c.fn = c.top
	c.pending = nil
	c.widened = nil
	diags := c.checkBlockIn(c.global, program)
	diags = append(diags, c.drainPending()...)
	sortDiagnostics(diags)

	if len(diags) > 0 {
		for name := range c.global.symbols {
			if !before[name] {
				delete(c.global.symbols, name)
			}
		}
		c.assigned = assigned
		for i := len(c.widened) - 1; i >= 0; i-- {
			w := c.widened[i]
			w.obj.Fields = w.obj.Fields[:w.fields]
		}
	}
	c.widened = nil
	return diags
}

// Check validates a whole script with a fresh checker
func Check(program []parser.Stmt, opts Options) Diagnostics {
	return New(opts).Check(program)
}

// drainPending checks queued function bodies in declaration order. Bodies
// may queue further nested functions.
func (c *Checker) drainPending() Diagnostics {
	var diags Diagnostics
	for len(c.pending) > 0 {
		body := c.pending[0]
		c.pending = c.pending[1:]
		diags = append(diags, c.checkFuncBody(body)...)
	}
	return diags
}

// withFunction runs check with ctx as the current function and a fresh
// definite-assignment state
func (c *Checker) withFunction(ctx *funcContext, check func() Diagnostics) Diagnostics {
	savedFn, savedAssigned := c.fn, c.assigned
	c.fn, c.assigned = ctx, make(map[*binding]bool)
	defer func() {
		c.fn, c.assigned = savedFn, savedAssigned
	}()
	return check()
}
