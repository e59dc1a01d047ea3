package check

import (
	"primer/parser"
	"primer/types"
)

// checkBlockIn checks statements in env after hoisting their declarations
func (c *Checker) checkBlockIn(env *Environment, stmts []parser.Stmt) Diagnostics {
	diags := Diagnostics(c.hoist(env, stmts))
	for _, stmt := range stmts {
		if s, ok := stmt.(*parser.IfStmt); ok {
			d, after := c.checkIf(env, s)
			diags = append(diags, d...)
			if len(after) > 0 {
				env = env.refine(after)
			}
			continue
		}
		diags = append(diags, c.checkStatement(env, stmt)...)
	}
	return diags
}

// hoist declares every name of a block up front. let and const names stay
// undeclared until their statement is reached; function declarations are
// usable everywhere in the block and their bodies are queued.
func (c *Checker) hoist(env *Environment, stmts []parser.Stmt) []Diagnostic {
	var diags []Diagnostic
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *parser.VarDecl:
			if _, dup := env.local(s.Name); dup {
				diags = append(diags, scopeErr(s, "cannot redeclare block-scoped variable '%s'", s.Name))
				continue
			}
			kind := bindLet
			if s.Kind == parser.DeclConst {
				kind = bindConst
			}
			env.define(&binding{name: s.Name, kind: kind, typ: types.AnyType, pos: s.Pos, fn: c.fn})

		case *parser.FuncDecl:
			fn := s.Func
			if _, dup := env.local(fn.Name); dup {
				diags = append(diags, scopeErr(s, "cannot redeclare block-scoped variable '%s'", fn.Name))
				continue
			}
			d, sig := c.signature(fn)
			diags = append(diags, d...)
			env.define(&binding{name: fn.Name, kind: bindFunc, typ: sig, pos: s.Pos, fn: c.fn, declared: true})
			c.queue(fn, sig, env, false)
		}
	}
	return diags
}

// queue defers a function body until the enclosing program has been
// checked, so the body may refer to bindings declared after it.
func (c *Checker) queue(fn *parser.FuncExpr, sig *types.Func, env *Environment, isExpr bool) {
	ctx := &funcContext{name: fn.Name}
	if fn.Result != nil {
		ctx.result = sig.Result
	}
	if ctx.name == "" {
		ctx.name = "<anonymous>"
	}
	if isExpr && fn.Name != "" {
		// a named function expression sees its own name
		env = env.Extend()
		env.define(&binding{name: fn.Name, kind: bindFunc, typ: sig, pos: fn.Pos, fn: c.fn, declared: true})
	}
	c.pending = append(c.pending, pendingBody{fn: fn, sig: sig, env: env, ctx: ctx})
}

// checkStatement checks one statement
func (c *Checker) checkStatement(env *Environment, stmt parser.Stmt) []Diagnostic {
	switch s := stmt.(type) {
	case *parser.VarDecl:
		return c.checkVarDecl(env, s)
	case *parser.FuncDecl:
		return nil // hoisted
	case *parser.ExprStmt:
		if s.Expr == nil {
			return nil
		}
		diags, _ := c.checkExpression(env, s.Expr)
		return diags
	case *parser.BlockStmt:
		return c.checkBlockIn(env.Extend(), s.Body)
	case *parser.IfStmt:
		diags, _ := c.checkIf(env, s)
		return diags
	case *parser.ReturnStmt:
		return c.checkReturn(env, s)
	}
	return nil
}

func (c *Checker) checkVarDecl(env *Environment, s *parser.VarDecl) []Diagnostic {
	var diags []Diagnostic
	var declared, initType types.Type
	if s.Type != nil {
		var d []Diagnostic
		d, declared = c.resolveType(s.Type)
		diags = append(diags, d...)
	}
	if s.Init != nil {
		var d []Diagnostic
		d, initType = c.checkExpression(env, s.Init)
		diags = append(diags, d...)
		if declared != nil {
			diags = append(diags, c.checkAssignable(s.Init, initType, declared)...)
		}
	}

	b, ok := env.local(s.Name)
	if !ok || b.pos != s.Pos {
		// redeclaration, already reported
		return diags
	}
	switch {
	case declared != nil:
		b.typ = declared
	case initType != nil:
		b.typ = initType
		if s.Kind == parser.DeclLet && (types.IsKind(initType, types.KindNull) || types.IsKind(initType, types.KindUndefined)) {
			b.typ = types.AnyType
		}
	default:
		b.typ = types.AnyType
	}
	b.declared = true
	if s.Init != nil {
		c.assigned[b] = true
	}
	return diags
}

// checkIf checks each clause with the narrowing its condition proves. A
// binding is definitely assigned afterwards only when every clause that
// can complete assigns it. When every conditional clause returns, the
// statements after the if only run once all conditions were false, and
// the facts that proves are returned.
func (c *Checker) checkIf(env *Environment, s *parser.IfStmt) ([]Diagnostic, facts) {
	type clause struct {
		cond parser.Expr
		body []parser.Stmt
	}
	clauses := []clause{{s.Condition, s.Body}}
	for _, ei := range s.ElseIfs {
		clauses = append(clauses, clause{ei.Condition, ei.Body})
	}

	var diags []Diagnostic
	var outcomes []map[*binding]bool
	var rest facts
	allReturn := true
	condEnv := env
	for _, cl := range clauses {
		d, _ := c.checkExpression(condEnv, cl.cond)
		diags = append(diags, d...)
		thenFacts, elseFacts := conditionFacts(condEnv, cl.cond)

		afterCond := c.snapshot()
		diags = append(diags, c.checkBlockIn(condEnv.Extend().with(thenFacts), cl.body)...)
		if !alwaysReturns(cl.body) {
			outcomes = append(outcomes, c.assigned)
			allReturn = false
		}
		c.assigned = afterCond
		condEnv = condEnv.Extend().with(elseFacts)
		rest = merge(rest, elseFacts)
	}

	afterConds := c.snapshot()
	if s.Else != nil {
		diags = append(diags, c.checkBlockIn(condEnv.Extend(), s.Else)...)
		if !alwaysReturns(s.Else) {
			outcomes = append(outcomes, c.assigned)
		}
	} else {
		outcomes = append(outcomes, afterConds)
	}

	if len(outcomes) == 0 {
		c.assigned = afterConds
	} else {
		c.assigned = intersect(outcomes)
	}
	if !allReturn {
		return diags, nil
	}
	return diags, rest
}

func (c *Checker) checkReturn(env *Environment, s *parser.ReturnStmt) []Diagnostic {
	var diags []Diagnostic
	valueType := types.UndefinedType
	if s.Value != nil {
		diags, valueType = c.checkExpression(env, s.Value)
	}
	if c.fn == c.top {
		return append(diags, typeErr(s, "a 'return' statement can only be used within a function body"))
	}

	result := c.fn.result
	switch {
	case result == nil:
		// unannotated: anything goes
	case types.IsKind(result, types.KindVoid):
		if s.Value != nil && !types.Assignable(valueType, types.VoidType) {
			diags = append(diags, typeErr(s.Value, "a 'void' function cannot return a value"))
		}
	case s.Value == nil:
		if !types.Includes(result, types.KindUndefined) {
			diags = append(diags, typeErr(s, "type 'undefined' is not assignable to type '%s'", result))
		}
	default:
		diags = append(diags, c.checkAssignable(s.Value, valueType, result)...)
	}
	return diags
}

// checkFuncBody checks a queued function body in a scope holding its
// parameters
func (c *Checker) checkFuncBody(p pendingBody) Diagnostics {
	return c.withFunction(p.ctx, func() Diagnostics {
		env := p.env.Extend()
		for i, param := range p.sig.Params {
			t := param.Type
			if param.Optional {
				t = types.NewUnion(t, types.UndefinedType)
			}
			env.define(&binding{
				name:     param.Name,
				kind:     bindParam,
				typ:      t,
				pos:      p.fn.Params[i].Pos,
				fn:       c.fn,
				declared: true,
			})
		}

		result := p.ctx.result
		if p.fn.ExprBody != nil {
			diags, t := c.checkExpression(env, p.fn.ExprBody)
			switch {
			case result == nil:
				p.sig.Result = t
			case !types.IsKind(result, types.KindVoid):
				diags = append(diags, c.checkAssignable(p.fn.ExprBody, t, result)...)
			}
			return diags
		}

		diags := c.checkBlockIn(env, p.fn.Body)
		if result != nil && !types.Includes(result, types.KindUndefined) && !alwaysReturns(p.fn.Body) {
			diags = append(diags, typeErr(p.fn.Result, "function lacks ending return statement and return type does not include 'undefined'"))
		}
		return diags
	})
}

// alwaysReturns reports whether every path through stmts ends in a return
func alwaysReturns(stmts []parser.Stmt) bool {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *parser.ReturnStmt:
			return true
		case *parser.BlockStmt:
			if alwaysReturns(s.Body) {
				return true
			}
		case *parser.IfStmt:
			if s.Else == nil || !alwaysReturns(s.Body) || !alwaysReturns(s.Else) {
				continue
			}
			all := true
			for _, ei := range s.ElseIfs {
				all = all && alwaysReturns(ei.Body)
			}
			if all {
				return true
			}
		}
	}
	return false
}
