package eval

import (
	"primer/parser"
	"primer/types"
)

// evalChain evaluates an optional chain. When a ?. link meets null or
// undefined the rest of the chain is skipped and the chain yields undefined.
func (e *Evaluator) evalChain(node *parser.ChainExpr, ctx *types.TaskContext) types.Result {
	result, short := e.evalLink(node.Expr, ctx)
	if short {
		return types.Ok(types.Undefined)
	}
	return result
}

// evalLink evaluates one link of a member/call chain. short reports that an
// optional link met null or undefined, which ends the whole chain.
func (e *Evaluator) evalLink(node parser.Expr, ctx *types.TaskContext) (types.Result, bool) {
	switch n := node.(type) {
	case *parser.PropertyExpr:
		objResult, short := e.evalLink(n.Expr, ctx)
		if short || !objResult.IsNormal() {
			return objResult, short
		}
		if n.Optional && types.IsNullish(objResult.Val) {
			return types.Ok(types.Undefined), true
		}
		return e.getProperty(n, objResult.Val), false

	case *parser.CallExpr:
		return e.evalCall(n, ctx)
	}
	return e.Eval(node, ctx), false
}

// getProperty reads obj.name
func (e *Evaluator) getProperty(node *parser.PropertyExpr, obj types.Value) types.Result {
	switch v := obj.(type) {
	case *types.RecordValue:
		if val, ok := v.Get(node.Property); ok {
			return types.Ok(val)
		}
	case types.StrValue:
		if node.Property == "length" {
			return types.Ok(types.NewNum(float64(v.Len())))
		}
	case types.UndefinedValue, types.NullValue:
		return e.raise(node, types.NewException(types.E_TYPE,
			"Cannot read properties of %s (reading '%s')", obj, node.Property))
	}
	// Missing fields read as undefined
	return types.Ok(types.Undefined)
}

// evalAssignProperty evaluates obj.name = value and obj.name op= value.
// The object is evaluated before the value.
func (e *Evaluator) evalAssignProperty(node *parser.AssignExpr, target *parser.PropertyExpr, op parser.TokenType, compound bool, ctx *types.TaskContext) types.Result {
	objResult := e.Eval(target.Expr, ctx)
	if !objResult.IsNormal() {
		return objResult
	}
	obj := objResult.Val

	var current types.Value
	if compound {
		r := e.getProperty(target, obj)
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
	return e.setProperty(target, obj, value)
}

// setProperty writes obj.name; only records have writable fields
func (e *Evaluator) setProperty(node *parser.PropertyExpr, obj, value types.Value) types.Result {
	switch v := obj.(type) {
	case *types.RecordValue:
		v.Set(node.Property, value)
		return types.Ok(value)
	case types.UndefinedValue, types.NullValue:
		return e.raise(node, types.NewException(types.E_TYPE,
			"Cannot set properties of %s (setting '%s')", obj, node.Property))
	case types.StrValue:
		if node.Property == "length" {
			return e.raise(node, types.NewException(types.E_TYPE,
				"Cannot assign to read only property 'length' of string '%s'", v.Value()))
		}
	}
	return e.raise(node, types.NewException(types.E_TYPE,
		"Cannot create property '%s' on %s '%s'", node.Property, obj.Type(), obj))
}
