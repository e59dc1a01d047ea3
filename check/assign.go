package check

import (
	"primer/parser"
	"primer/types"
)

// checkAssign checks `target = value` and the compound forms
func (c *Checker) checkAssign(env *Environment, e *parser.AssignExpr) ([]Diagnostic, types.Type) {
	switch target := e.Target.(type) {
	case *parser.IdentifierExpr:
		return c.assignName(env, e, target)
	case *parser.PropertyExpr:
		return c.assignProperty(env, e, target)
	case *parser.ChainExpr:
		diags, _ := c.checkExpression(env, target)
		d, vt := c.checkExpression(env, e.Value)
		diags = append(diags, d...)
		diags = append(diags, typeErr(target, "the left-hand side of an assignment expression may not be an optional property access"))
		return diags, vt
	}
	diags, vt := c.checkExpression(env, e.Value)
	return append(diags, typeErr(e.Target, "invalid assignment target")), vt
}

func (c *Checker) assignName(env *Environment, e *parser.AssignExpr, target *parser.IdentifierExpr) ([]Diagnostic, types.Type) {
	b, current, ok := env.lookup(target.Name)
	if !ok {
		diags, vt := c.checkExpression(env, e.Value)
		return append(diags, scopeErr(target, "cannot find name '%s'", target.Name)), vt
	}

	var diags []Diagnostic
	switch b.kind {
	case bindConst, bindGlobal:
		diags = append(diags, scopeErr(target, "cannot assign to '%s' because it is a constant", target.Name))
	case bindFunc:
		diags = append(diags, scopeErr(target, "cannot assign to '%s' because it is a function", target.Name))
	}

	op, compound := parser.CompoundBase(e.Operator)
	if compound {
		// x += v reads x first
		d, t := c.checkIdentifier(env, target)
		diags = append(diags, d...)
		current = t
	} else if !b.declared && b.fn == c.fn {
		diags = append(diags, scopeErr(target, "block-scoped variable '%s' used before its declaration", target.Name))
	}

	d, vt := c.checkExpression(env, e.Value)
	diags = append(diags, d...)
	if compound {
		d, result := binaryType(e, op, current, vt)
		diags = append(diags, d...)
		if len(d) == 0 && !types.Assignable(result, b.typ) {
			diags = append(diags, typeErr(e, "type '%s' is not assignable to type '%s'", result, b.typ))
		}
	} else {
		diags = append(diags, c.checkAssignable(e.Value, vt, b.typ)...)
	}

	if b.kind == bindLet {
		c.assigned[b] = true
	}
	env.forget(target.Name)
	return diags, vt
}

func (c *Checker) assignProperty(env *Environment, e *parser.AssignExpr, target *parser.PropertyExpr) ([]Diagnostic, types.Type) {
	diags, ot := c.checkExpression(env, target.Expr)
	vd, vt := c.checkExpression(env, e.Value)
	diags = append(diags, vd...)

	d, base := c.receiver(target.Expr, ot, false, "'%s' is possibly %s")
	diags = append(diags, d...)
	if base == nil || types.IsAny(base) {
		return diags, vt
	}

	if types.IsKind(base, types.KindString) && target.Property == "length" {
		return append(diags, typeErr(target, "cannot assign to 'length' because it is a read-only property")), vt
	}
	if obj, ok := base.(*types.Object); ok {
		if f, ok := obj.Field(target.Property); ok && f.ReadOnly {
			return append(diags, typeErr(target, "cannot assign to '%s' because it is a read-only property", target.Property)), vt
		}
	}

	op, compound := parser.CompoundBase(e.Operator)
	fieldType, found := propertyType(base, target.Property)
	if !found {
		obj, isObj := base.(*types.Object)
		if compound || !isObj || !c.opts.ExtensibleRecords {
			return append(diags, typeErr(target, "property '%s' does not exist on type '%s'", target.Property, base)), vt
		}
		c.widened = append(c.widened, widening{obj: obj, fields: len(obj.Fields)})
		obj.AddField(target.Property, vt)
		return diags, vt
	}

	if compound {
		d, result := binaryType(e, op, fieldType, vt)
		diags = append(diags, d...)
		if len(d) == 0 && !types.Assignable(result, fieldType) {
			diags = append(diags, typeErr(e, "type '%s' is not assignable to type '%s'", result, fieldType))
		}
		return diags, vt
	}
	return append(diags, c.checkAssignable(e.Value, vt, fieldType)...), vt
}
