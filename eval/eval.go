package eval

import (
	"io"
	"strings"

	"primer/builtins"
	"primer/parser"
	"primer/trace"
	"primer/types"
)

// Evaluator walks the AST and evaluates expressions/statements
type Evaluator struct {
	env   *Environment
	stack []Frame

	// fault is the call stack captured when the exception now propagating
	// was raised
	fault []Frame
}

// NewEvaluator creates an evaluator whose global scope holds the builtin
// values; console output goes to out
func NewEvaluator(out io.Writer) *Evaluator {
	registry := builtins.NewRegistry(out)
	env := NewEnvironment()
	for _, name := range registry.Names() {
		v, _ := registry.Get(name)
		env.DefineConst(name, v)
	}
	return &Evaluator{
		env:   env,
		stack: []Frame{{Function: "<script>"}},
	}
}

// Run evaluates a program in the global scope and returns the value of its
// last statement. An exception that escapes the program is returned as a
// *RuntimeError. The global scope persists, so Run may be called again
// with further programs.
func (e *Evaluator) Run(program []parser.Stmt, ctx *types.TaskContext) (types.Value, error) {
	result := e.EvalStatements(program, ctx)
	if result.IsError() {
		return nil, &RuntimeError{Exc: result.Exc, Stack: e.fault}
	}
	if result.Val == nil {
		return types.Undefined, nil
	}
	return result.Val, nil
}

// Eval evaluates an expression and returns a Result
// All evaluation methods follow this pattern:
// - Accept *TaskContext for tick counting and call depth
// - Return Result (not raw Value) to unify error handling and control flow
// - Check tick limit before processing
func (e *Evaluator) Eval(node parser.Expr, ctx *types.TaskContext) types.Result {
	if !ctx.ConsumeTick() {
		return e.raise(node, types.NewException(types.E_TICKS, ""))
	}

	switch n := node.(type) {
	case *parser.LiteralExpr:
		return types.Ok(n.Value)
	case *parser.IdentifierExpr:
		return e.evalIdentifier(n)
	case *parser.TemplateExpr:
		return e.evalTemplate(n, ctx)
	case *parser.ObjectExpr:
		return e.evalObject(n, ctx)
	case *parser.ParenExpr:
		return e.Eval(n.Expr, ctx)
	case *parser.UnaryExpr:
		return e.evalUnary(n, ctx)
	case *parser.BinaryExpr:
		return e.evalBinary(n, ctx)
	case *parser.TernaryExpr:
		return e.evalTernary(n, ctx)
	case *parser.ChainExpr:
		return e.evalChain(n, ctx)
	case *parser.PropertyExpr, *parser.CallExpr:
		result, _ := e.evalLink(n, ctx)
		return result
	case *parser.AssignExpr:
		return e.evalAssign(n, ctx)
	case *parser.FuncExpr:
		return types.Ok(e.makeClosure(n, true))
	default:
		// Unknown node type - this should never happen if parser is correct
		return e.raise(node, types.NewException(types.E_TYPE, "unsupported expression %T", node))
	}
}

// raise starts propagating exc, located at node
func (e *Evaluator) raise(node parser.Node, exc *types.Exception) types.Result {
	pos := node.Position()
	exc.Line, exc.Column = pos.Line, pos.Column

	e.fault = make([]Frame, len(e.stack))
	copy(e.fault, e.stack)
	e.fault[len(e.fault)-1].Line = pos.Line

	if trace.IsEnabled() {
		trace.Exception(e.current().Function, exc)
	}
	return types.Throw(exc)
}

// current returns the innermost frame
func (e *Evaluator) current() *Frame {
	return &e.stack[len(e.stack)-1]
}

// evalIdentifier looks up a variable by name
func (e *Evaluator) evalIdentifier(node *parser.IdentifierExpr) types.Result {
	s := e.env.lookup(node.Name)
	switch {
	case s == nil:
		return e.raise(node, types.NewException(types.E_REFERENCE, "%s is not defined", node.Name))
	case !s.initialized:
		return e.raise(node, types.NewException(types.E_REFERENCE, "Cannot access '%s' before initialization", node.Name))
	}
	return types.Ok(s.value)
}

// evalTemplate substitutes each ${} with its value's string form
func (e *Evaluator) evalTemplate(node *parser.TemplateExpr, ctx *types.TaskContext) types.Result {
	var b strings.Builder
	for i, quasi := range node.Quasis {
		b.WriteString(quasi)
		if i >= len(node.Exprs) {
			continue
		}
		r := e.Eval(node.Exprs[i], ctx)
		if !r.IsNormal() {
			return r
		}
		b.WriteString(r.Val.String())
	}
	return types.Ok(types.NewStr(b.String()))
}

// evalObject builds a fresh record; fields keep source order
func (e *Evaluator) evalObject(node *parser.ObjectExpr, ctx *types.TaskContext) types.Result {
	rec := types.NewRecord()
	for _, prop := range node.Props {
		r := e.Eval(prop.Value, ctx)
		if !r.IsNormal() {
			return r
		}
		rec.Set(prop.Key, r.Val)
	}
	return types.Ok(rec)
}

// evalUnary evaluates a unary expression
// Implements: - (negation), + (to number), ! (logical not), typeof
func (e *Evaluator) evalUnary(node *parser.UnaryExpr, ctx *types.TaskContext) types.Result {
	operandResult := e.Eval(node.Operand, ctx)
	if !operandResult.IsNormal() {
		return operandResult // Propagate error/control flow
	}

	operand := operandResult.Val

	switch node.Operator {
	case parser.TOKEN_MINUS:
		return types.Ok(types.NewNum(-types.ToNumber(operand)))
	case parser.TOKEN_PLUS:
		return types.Ok(types.NewNum(types.ToNumber(operand)))
	case parser.TOKEN_NOT:
		return types.Ok(types.NewBool(!operand.Truthy()))
	case parser.TOKEN_TYPEOF:
		return types.Ok(types.NewStr(operand.Type().TypeOf()))
	default:
		return e.raise(node, types.NewException(types.E_TYPE, "unsupported operator %s", node.Operator.Symbol()))
	}
}

// evalBinary evaluates a binary expression
func (e *Evaluator) evalBinary(node *parser.BinaryExpr, ctx *types.TaskContext) types.Result {
	// Short-circuit evaluation for &&, || and ??
	switch node.Operator {
	case parser.TOKEN_AND, parser.TOKEN_OR, parser.TOKEN_NULLISH:
		return e.evalLogical(node, ctx)
	}

	leftResult := e.Eval(node.Left, ctx)
	if !leftResult.IsNormal() {
		return leftResult // Propagate error/control flow
	}

	rightResult := e.Eval(node.Right, ctx)
	if !rightResult.IsNormal() {
		return rightResult // Propagate error/control flow
	}

	v, ok := binaryOp(node.Operator, leftResult.Val, rightResult.Val)
	if !ok {
		return e.raise(node, types.NewException(types.E_TYPE, "unsupported operator %s", node.Operator.Symbol()))
	}
	return types.Ok(v)
}

// evalLogical evaluates && || and ?? with short-circuit semantics
func (e *Evaluator) evalLogical(node *parser.BinaryExpr, ctx *types.TaskContext) types.Result {
	leftResult := e.Eval(node.Left, ctx)
	if !leftResult.IsNormal() {
		return leftResult // Propagate error/control flow
	}

	left := leftResult.Val

	switch node.Operator {
	case parser.TOKEN_AND:
		// Short-circuit: if left is falsy, return left without evaluating right
		if !left.Truthy() {
			return types.Ok(left)
		}
	case parser.TOKEN_OR:
		// Short-circuit: if left is truthy, return left without evaluating right
		if left.Truthy() {
			return types.Ok(left)
		}
	case parser.TOKEN_NULLISH:
		// Only null and undefined fall through to the right operand
		if !types.IsNullish(left) {
			return types.Ok(left)
		}
	}
	return e.Eval(node.Right, ctx)
}

// evalTernary evaluates cond ? a : b
func (e *Evaluator) evalTernary(node *parser.TernaryExpr, ctx *types.TaskContext) types.Result {
	condResult := e.Eval(node.Condition, ctx)
	if !condResult.IsNormal() {
		return condResult // Propagate error/control flow
	}

	if condResult.Val.Truthy() {
		return e.Eval(node.ThenExpr, ctx)
	}
	return e.Eval(node.ElseExpr, ctx)
}

// evalAssign evaluates target = value and the compound forms. A compound
// assignment reads the target before evaluating the value.
func (e *Evaluator) evalAssign(node *parser.AssignExpr, ctx *types.TaskContext) types.Result {
	op, compound := parser.CompoundBase(node.Operator)

	switch target := node.Target.(type) {
	case *parser.IdentifierExpr:
		var current types.Value
		if compound {
			r := e.evalIdentifier(target)
			if !r.IsNormal() {
				return r
			}
			current = r.Val
		}
		valueResult := e.Eval(node.Value, ctx)
		if !valueResult.IsNormal() {
			return valueResult
		}
		value := valueResult.Val
		if compound {
			value, _ = binaryOp(op, current, value)
		}
		if exc := e.env.Set(target.Name, value); exc != nil {
			return e.raise(target, exc)
		}
		return types.Ok(value)

	case *parser.PropertyExpr:
		// Property assignment: obj.property = value
		return e.evalAssignProperty(node, target, op, compound, ctx)

	default:
		return e.raise(node, types.NewException(types.E_TYPE, "Invalid left-hand side in assignment"))
	}
}

// GetEnvironment returns the evaluator's current scope
func (e *Evaluator) GetEnvironment() *Environment {
	return e.env
}

// Note: Operator implementation functions (binaryOp, compare, etc.)
// are defined in operators.go to keep this file focused on the evaluation structure
