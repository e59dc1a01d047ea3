package check

import (
	"strconv"

	"primer/parser"
	"primer/types"
)

// checkExpression returns the diagnostics and static type of an expression
func (c *Checker) checkExpression(env *Environment, expr parser.Expr) ([]Diagnostic, types.Type) {
	switch e := expr.(type) {
	case *parser.LiteralExpr:
		return nil, literalType(e.Value)

	case *parser.IdentifierExpr:
		return c.checkIdentifier(env, e)

	case *parser.TemplateExpr:
		var diags []Diagnostic
		for _, sub := range e.Exprs {
			d, _ := c.checkExpression(env, sub)
			diags = append(diags, d...)
		}
		return diags, types.StringType

	case *parser.ObjectExpr:
		return c.checkObjectLiteral(env, e)

	case *parser.ParenExpr:
		return c.checkExpression(env, e.Expr)

	case *parser.UnaryExpr:
		return c.checkUnary(env, e)

	case *parser.BinaryExpr:
		switch e.Operator {
		case parser.TOKEN_AND, parser.TOKEN_OR, parser.TOKEN_NULLISH:
			return c.checkLogical(env, e)
		}
		ld, lt := c.checkExpression(env, e.Left)
		rd, rt := c.checkExpression(env, e.Right)
		diags := append(ld, rd...)
		d, t := binaryType(e, e.Operator, lt, rt)
		return append(diags, d...), t

	case *parser.TernaryExpr:
		return c.checkTernary(env, e)

	case *parser.ChainExpr:
		saved := c.chainShort
		c.chainShort = false
		diags, t := c.checkExpression(env, e.Expr)
		if c.chainShort {
			t = types.NewUnion(t, types.UndefinedType)
		}
		c.chainShort = saved
		return diags, t

	case *parser.PropertyExpr:
		return c.checkProperty(env, e)

	case *parser.CallExpr:
		return c.checkCall(env, e)

	case *parser.AssignExpr:
		return c.checkAssign(env, e)

	case *parser.FuncExpr:
		diags, sig := c.signature(e)
		if e.Result == nil && e.ExprBody != nil {
			return append(diags, c.inferArrow(e, sig, env)...), sig
		}
		c.queue(e, sig, env, true)
		return diags, sig
	}
	return nil, types.AnyType
}

// inferArrow checks an unannotated arrow with an expression body right
// away and takes the body's type as the result, so callers see it.
func (c *Checker) inferArrow(e *parser.FuncExpr, sig *types.Func, env *Environment) Diagnostics {
	short := c.chainShort
	c.chainShort = false
	defer func() { c.chainShort = short }()
	return c.checkFuncBody(pendingBody{fn: e, sig: sig, env: env, ctx: &funcContext{name: "<anonymous>"}})
}

func literalType(v types.Value) types.Type {
	switch v.Type() {
	case types.TYPE_NUMBER:
		return types.NumberType
	case types.TYPE_STR:
		return types.StringType
	case types.TYPE_BOOL:
		return types.BooleanType
	case types.TYPE_NULL:
		return types.NullType
	case types.TYPE_UNDEFINED:
		return types.UndefinedType
	}
	return types.AnyType
}

func (c *Checker) checkIdentifier(env *Environment, e *parser.IdentifierExpr) ([]Diagnostic, types.Type) {
	b, t, ok := env.lookup(e.Name)
	if !ok {
		return []Diagnostic{scopeErr(e, "cannot find name '%s'", e.Name)}, types.AnyType
	}
	if !b.declared && b.fn == c.fn {
		return []Diagnostic{scopeErr(e, "block-scoped variable '%s' used before its declaration", e.Name)}, t
	}
	if c.opts.StrictAssignment && b.kind == bindLet && b.fn == c.fn && !c.assigned[b] && !types.Includes(b.typ, types.KindUndefined) {
		return []Diagnostic{scopeErr(e, "variable '%s' is used before being assigned", e.Name)}, t
	}
	return nil, t
}

func (c *Checker) checkObjectLiteral(env *Environment, e *parser.ObjectExpr) ([]Diagnostic, types.Type) {
	var diags []Diagnostic
	obj := &types.Object{}
	for _, prop := range e.Props {
		d, t := c.checkExpression(env, prop.Value)
		diags = append(diags, d...)
		if _, dup := obj.Field(prop.Key); dup {
			diags = append(diags, typeErr(prop, "an object literal cannot have multiple properties with the same name '%s'", prop.Key))
			continue
		}
		obj.Fields = append(obj.Fields, types.Field{Name: prop.Key, Type: t})
	}
	return diags, obj
}

func (c *Checker) checkUnary(env *Environment, e *parser.UnaryExpr) ([]Diagnostic, types.Type) {
	diags, t := c.checkExpression(env, e.Operand)
	switch e.Operator {
	case parser.TOKEN_MINUS, parser.TOKEN_PLUS:
		if !numeric(t) {
			diags = append(diags, typeErr(e, "operator '%s' cannot be applied to type '%s'", e.Operator.Symbol(), t))
		}
		return diags, types.NumberType
	case parser.TOKEN_NOT:
		return diags, types.BooleanType
	case parser.TOKEN_TYPEOF:
		return diags, types.StringType
	}
	return diags, types.AnyType
}

// numeric reports whether t may be used in arithmetic
func numeric(t types.Type) bool {
	return types.Assignable(t, types.NumberType)
}

// stringy reports whether t is a string type (any does not count)
func stringy(t types.Type) bool {
	return !types.IsAny(t) && types.Assignable(t, types.StringType)
}

// binaryType types the non-short-circuit operators; node locates any
// diagnostic
func binaryType(node parser.Node, op parser.TokenType, lt, rt types.Type) ([]Diagnostic, types.Type) {
	mismatch := func() []Diagnostic {
		return []Diagnostic{typeErr(node, "operator '%s' cannot be applied to types '%s' and '%s'", op.Symbol(), lt, rt)}
	}

	switch op {
	case parser.TOKEN_PLUS:
		switch {
		case stringy(lt) || stringy(rt):
			return nil, types.StringType
		case types.IsAny(lt) || types.IsAny(rt):
			return nil, types.AnyType
		case numeric(lt) && numeric(rt):
			return nil, types.NumberType
		}
		return mismatch(), types.AnyType

	case parser.TOKEN_MINUS, parser.TOKEN_STAR, parser.TOKEN_SLASH, parser.TOKEN_PERCENT:
		if !numeric(lt) || !numeric(rt) {
			return mismatch(), types.NumberType
		}
		return nil, types.NumberType

	case parser.TOKEN_LT, parser.TOKEN_GT, parser.TOKEN_LE, parser.TOKEN_GE:
		if numeric(lt) && numeric(rt) {
			return nil, types.BooleanType
		}
		if types.Assignable(lt, types.StringType) && types.Assignable(rt, types.StringType) {
			return nil, types.BooleanType
		}
		return mismatch(), types.BooleanType

	case parser.TOKEN_STRICT_EQ, parser.TOKEN_STRICT_NE:
		return nil, types.BooleanType

	case parser.TOKEN_EQ:
		return []Diagnostic{typeErr(node, "use '===' instead of '=='")}, types.BooleanType

	case parser.TOKEN_NE:
		return []Diagnostic{typeErr(node, "use '!==' instead of '!='")}, types.BooleanType
	}
	return nil, types.AnyType
}

// checkLogical types && || ??. The right operand sees what the left one
// proves, and assignments inside it are not definite.
func (c *Checker) checkLogical(env *Environment, e *parser.BinaryExpr) ([]Diagnostic, types.Type) {
	diags, lt := c.checkExpression(env, e.Left)

	whenTrue, whenFalse := conditionFacts(env, e.Left)
	rightEnv := env
	switch e.Operator {
	case parser.TOKEN_AND:
		rightEnv = env.Extend().with(whenTrue)
	case parser.TOKEN_OR:
		rightEnv = env.Extend().with(whenFalse)
	}

	saved := c.snapshot()
	rd, rt := c.checkExpression(rightEnv, e.Right)
	c.assigned = saved
	diags = append(diags, rd...)

	switch e.Operator {
	case parser.TOKEN_AND:
		return diags, types.NewUnion(falsyPart(lt), rt)
	default:
		return diags, types.NewUnion(types.RemoveNullish(lt), rt)
	}
}

func (c *Checker) checkTernary(env *Environment, e *parser.TernaryExpr) ([]Diagnostic, types.Type) {
	diags, _ := c.checkExpression(env, e.Condition)
	whenTrue, whenFalse := conditionFacts(env, e.Condition)

	start := c.snapshot()
	td, tt := c.checkExpression(env.Extend().with(whenTrue), e.ThenExpr)
	afterThen := c.assigned
	c.assigned = start
	ed, et := c.checkExpression(env.Extend().with(whenFalse), e.ElseExpr)
	c.assigned = intersect([]map[*binding]bool{afterThen, c.assigned})

	diags = append(diags, td...)
	diags = append(diags, ed...)
	return diags, types.NewUnion(tt, et)
}

// nullishName describes which nullish kinds t admits
func nullishName(t types.Type) string {
	hasNull := types.Includes(t, types.KindNull)
	hasUndef := types.Includes(t, types.KindUndefined)
	switch {
	case hasNull && hasUndef:
		return "'null' or 'undefined'"
	case hasNull:
		return "'null'"
	}
	return "'undefined'"
}

// propertyType looks up a property on a non-nullish type
func propertyType(t types.Type, name string) (types.Type, bool) {
	switch tt := t.(type) {
	case *types.Object:
		f, ok := tt.Field(name)
		if !ok {
			return nil, false
		}
		if f.Optional {
			return types.NewUnion(f.Type, types.UndefinedType), true
		}
		return f.Type, true
	case *types.Union:
		members := make([]types.Type, 0, len(tt.Members))
		for _, m := range tt.Members {
			mt, ok := propertyType(m, name)
			if !ok {
				return nil, false
			}
			members = append(members, mt)
		}
		return types.NewUnion(members...), true
	case *types.Primitive:
		if tt.Kind == types.KindAny {
			return types.AnyType, true
		}
		if tt.Kind == types.KindString && name == "length" {
			return types.NumberType, true
		}
	}
	return nil, false
}

// receiver resolves the object of a member access or call. Optional links
// may short-circuit the enclosing chain; plain links on a nullable object
// are reported. A nil type means the link always short-circuits.
func (c *Checker) receiver(object parser.Expr, t types.Type, optional bool, what string) ([]Diagnostic, types.Type) {
	if types.IsAny(t) || !types.IsNullable(t) {
		return nil, t
	}
	var diags []Diagnostic
	if optional {
		c.chainShort = true
	} else {
		diags = append(diags, typeErr(object, what, parser.UnparseExpr(object), nullishName(t)))
	}
	return diags, types.RemoveNullish(t)
}

func (c *Checker) checkProperty(env *Environment, e *parser.PropertyExpr) ([]Diagnostic, types.Type) {
	diags, ot := c.checkExpression(env, e.Expr)
	d, base := c.receiver(e.Expr, ot, e.Optional, "'%s' is possibly %s")
	diags = append(diags, d...)
	if base == nil {
		return diags, types.UndefinedType
	}

	t, ok := propertyType(base, e.Property)
	if !ok {
		diags = append(diags, typeErr(e, "property '%s' does not exist on type '%s'", e.Property, base))
		return diags, types.AnyType
	}
	return diags, t
}

func (c *Checker) checkCall(env *Environment, e *parser.CallExpr) ([]Diagnostic, types.Type) {
	diags, ct := c.checkExpression(env, e.Callee)
	argTypes := make([]types.Type, len(e.Args))
	for i, arg := range e.Args {
		d, t := c.checkExpression(env, arg)
		diags = append(diags, d...)
		argTypes[i] = t
	}

	d, callee := c.receiver(e.Callee, ct, e.Optional, "cannot invoke '%s' which is possibly %s")
	diags = append(diags, d...)
	if callee == nil {
		return diags, types.UndefinedType
	}
	if types.IsAny(callee) {
		return diags, types.AnyType
	}

	fn, ok := callee.(*types.Func)
	if !ok {
		diags = append(diags, typeErr(e.Callee, "this expression is not callable: type '%s' has no call signatures", callee))
		return diags, types.AnyType
	}
	if fn.Variadic {
		return diags, fn.Result
	}

	required, most := fn.RequiredParams(), len(fn.Params)
	if len(e.Args) < required || len(e.Args) > most {
		want := strconv.Itoa(most)
		if required != most {
			want = strconv.Itoa(required) + "-" + want
		}
		diags = append(diags, typeErr(e, "expected %s arguments, but got %d", want, len(e.Args)))
	}
	for i, arg := range e.Args {
		if i >= most {
			break
		}
		pt := fn.Params[i].Type
		if fn.Params[i].Optional {
			pt = types.NewUnion(pt, types.UndefinedType)
		}
		if !types.Assignable(argTypes[i], pt) {
			diags = append(diags, typeErr(arg, "argument of type '%s' is not assignable to parameter of type '%s'", argTypes[i], pt))
			continue
		}
		diags = append(diags, excessProperties(arg, pt)...)
	}
	return diags, fn.Result
}

// checkAssignable reports a value of type src, produced by expr, that
// cannot be stored where dst is expected
func (c *Checker) checkAssignable(expr parser.Expr, src, dst types.Type) []Diagnostic {
	if !types.Assignable(src, dst) {
		return []Diagnostic{typeErr(expr, "type '%s' is not assignable to type '%s'", src, dst)}
	}
	return excessProperties(expr, dst)
}

// excessProperties rejects object literal keys the target record type
// does not declare
func excessProperties(expr parser.Expr, dst types.Type) []Diagnostic {
	for {
		p, ok := expr.(*parser.ParenExpr)
		if !ok {
			break
		}
		expr = p.Expr
	}
	lit, ok := expr.(*parser.ObjectExpr)
	if !ok || types.IsAny(dst) {
		return nil
	}
	target := types.RemoveNullish(dst)
	obj, ok := target.(*types.Object)
	if !ok {
		return nil
	}

	var diags []Diagnostic
	for _, prop := range lit.Props {
		f, found := obj.Field(prop.Key)
		if !found {
			diags = append(diags, typeErr(prop, "object literal may only specify known properties, and '%s' does not exist in type '%s'", prop.Key, obj))
			continue
		}
		diags = append(diags, excessProperties(prop.Value, f.Type)...)
	}
	return diags
}
