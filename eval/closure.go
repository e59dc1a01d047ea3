package eval

import (
	"primer/parser"
	"primer/trace"
	"primer/types"
)

// Closure is a function defined by the script together with the scope it
// was created in
type Closure struct {
	Name string
	Func *parser.FuncExpr
	Env  *Environment
}

func (c *Closure) Type() types.TypeCode { return types.TYPE_FUNC }
func (c *Closure) Truthy() bool         { return true }

func (c *Closure) String() string {
	if c.Name == "" {
		return "[Function (anonymous)]"
	}
	return "[Function: " + c.Name + "]"
}

// Equal is reference identity
func (c *Closure) Equal(other types.Value) bool {
	o, ok := other.(*Closure)
	return ok && o == c
}

// makeClosure captures the current scope. A named function expression
// can call itself by name; a declaration's name is bound by hoisting.
func (e *Evaluator) makeClosure(fn *parser.FuncExpr, isExpr bool) *Closure {
	c := &Closure{Name: fn.Name, Func: fn, Env: e.env}
	if isExpr && fn.Name != "" {
		c.Env = NewNestedEnvironment(e.env)
		c.Env.DefineConst(fn.Name, c)
	}
	return c
}

// evalCall evaluates the callee, then the arguments left to right, then
// makes the call. short has the same meaning as in evalLink.
func (e *Evaluator) evalCall(node *parser.CallExpr, ctx *types.TaskContext) (types.Result, bool) {
	calleeResult, short := e.evalLink(node.Callee, ctx)
	if short || !calleeResult.IsNormal() {
		return calleeResult, short
	}
	if node.Optional && types.IsNullish(calleeResult.Val) {
		return types.Ok(types.Undefined), true
	}

	args := make([]types.Value, len(node.Args))
	for i, argExpr := range node.Args {
		argResult := e.Eval(argExpr, ctx)
		if !argResult.IsNormal() {
			return argResult, false // Propagate error/control flow
		}
		args[i] = argResult.Val
	}

	switch fn := calleeResult.Val.(type) {
	case *types.BuiltinValue:
		result := fn.Fn(ctx, args)
		if result.IsError() && result.Exc != nil && result.Exc.Line == 0 {
			return e.raise(node, result.Exc), false
		}
		return result, false
	case *Closure:
		return e.callClosure(node, fn, args, ctx), false
	}
	return e.raise(node, types.NewException(types.E_TYPE,
		"%s is not a function", parser.UnparseExpr(node.Callee))), false
}

// callClosure runs a script function in a fresh scope whose parent is the
// closure's scope. Missing arguments are undefined; extra ones are ignored.
func (e *Evaluator) callClosure(node parser.Node, fn *Closure, args []types.Value, ctx *types.TaskContext) types.Result {
	if !ctx.Enter() {
		return e.raise(node, types.NewException(types.E_RANGE, "Maximum call stack size exceeded"))
	}
	defer ctx.Leave()

	name := fn.Name
	if name == "" {
		name = "<anonymous>"
	}
	if trace.IsEnabled() {
		trace.Call(name, args)
	}

	env := NewNestedEnvironment(fn.Env)
	for i, param := range fn.Func.Params {
		var v types.Value = types.Undefined
		if i < len(args) {
			v = args[i]
		}
		env.Define(param.Name, v)
	}

	savedEnv := e.env
	e.env = env
	e.stack = append(e.stack, Frame{Function: name, Line: fn.Func.Pos.Line})
	defer func() {
		e.env = savedEnv
		e.stack = e.stack[:len(e.stack)-1]
	}()

	var result types.Result
	if fn.Func.ExprBody != nil {
		result = e.Eval(fn.Func.ExprBody, ctx)
	} else {
		result = e.EvalStatements(fn.Func.Body, ctx)
		if result.IsNormal() {
			// Falling off the end returns undefined
			result = types.Ok(types.Undefined)
		}
	}

	switch {
	case result.IsError():
		return result
	case result.IsReturn():
		result = types.Ok(result.Val)
	}
	if trace.IsEnabled() {
		trace.Return(name, result.Val)
	}
	return result
}
