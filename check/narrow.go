package check

import (
	"primer/parser"
	"primer/types"
)

// facts maps binding names to the types a condition proves for them
type facts map[string]types.Type

// with applies refinements to e and returns it
func (e *Environment) with(f facts) *Environment {
	for name, t := range f {
		e.narrow(name, t)
	}
	return e
}

// conditionFacts derives what holds when cond is truthy and when it is
// falsy. Recognized forms: `x`, `!cond`, `a && b`, `a || b`, and
// comparisons of a name against null or undefined.
func conditionFacts(env *Environment, cond parser.Expr) (whenTrue, whenFalse facts) {
	switch e := cond.(type) {
	case *parser.ParenExpr:
		return conditionFacts(env, e.Expr)

	case *parser.IdentifierExpr:
		_, t, ok := env.lookup(e.Name)
		if !ok || !types.IsNullable(t) {
			return nil, nil
		}
		if narrowed := types.RemoveNullish(t); narrowed != nil {
			return facts{e.Name: narrowed}, nil
		}

	case *parser.UnaryExpr:
		if e.Operator == parser.TOKEN_NOT {
			t, f := conditionFacts(env, e.Operand)
			return f, t
		}

	case *parser.BinaryExpr:
		switch e.Operator {
		case parser.TOKEN_AND:
			lt, _ := conditionFacts(env, e.Left)
			rt, _ := conditionFacts(env.Extend().with(lt), e.Right)
			return merge(lt, rt), nil
		case parser.TOKEN_OR:
			_, lf := conditionFacts(env, e.Left)
			_, rf := conditionFacts(env.Extend().with(lf), e.Right)
			return nil, merge(lf, rf)
		case parser.TOKEN_STRICT_EQ, parser.TOKEN_STRICT_NE:
			name, kind, ok := nullishComparison(e)
			if !ok {
				return nil, nil
			}
			_, t, found := env.lookup(name)
			if !found {
				return nil, nil
			}
			without := removeKind(t, kind)
			if without == nil {
				return nil, nil
			}
			if e.Operator == parser.TOKEN_STRICT_NE {
				return facts{name: without}, nil
			}
			return nil, facts{name: without}
		}
	}
	return nil, nil
}

// nullishComparison matches `name === null`, `undefined !== name` and so on
func nullishComparison(e *parser.BinaryExpr) (string, types.Kind, bool) {
	id, lit := e.Left, e.Right
	if _, ok := id.(*parser.IdentifierExpr); !ok {
		id, lit = e.Right, e.Left
	}
	ident, ok := id.(*parser.IdentifierExpr)
	if !ok {
		return "", 0, false
	}
	l, ok := lit.(*parser.LiteralExpr)
	if !ok {
		return "", 0, false
	}
	switch l.Value.Type() {
	case types.TYPE_NULL:
		return ident.Name, types.KindNull, true
	case types.TYPE_UNDEFINED:
		return ident.Name, types.KindUndefined, true
	}
	return "", 0, false
}

// removeKind strips one nullish kind from t; undefined also strips void
func removeKind(t types.Type, kind types.Kind) types.Type {
	drop := func(m types.Type) bool {
		if types.IsKind(m, kind) {
			return true
		}
		return kind == types.KindUndefined && types.IsKind(m, types.KindVoid)
	}
	u, ok := t.(*types.Union)
	if !ok {
		if drop(t) {
			return nil
		}
		return t
	}
	var kept []types.Type
	for _, m := range u.Members {
		if !drop(m) {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return types.NewUnion(kept...)
}

// falsyPart keeps the members of t that can hold a falsy value; records
// and functions are always truthy
func falsyPart(t types.Type) types.Type {
	keep := func(m types.Type) bool {
		switch m.(type) {
		case *types.Object, *types.Func:
			return false
		}
		return true
	}
	u, ok := t.(*types.Union)
	if !ok {
		if keep(t) {
			return t
		}
		return nil
	}
	var kept []types.Type
	for _, m := range u.Members {
		if keep(m) {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return types.NewUnion(kept...)
}

func merge(a, b facts) facts {
	if len(a) == 0 {
		return b
	}
	out := make(facts, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// snapshot copies the definite-assignment state
func (c *Checker) snapshot() map[*binding]bool {
	out := make(map[*binding]bool, len(c.assigned))
	for b, ok := range c.assigned {
		out[b] = ok
	}
	return out
}

// intersect keeps the bindings assigned in every state
func intersect(states []map[*binding]bool) map[*binding]bool {
	out := make(map[*binding]bool)
	for b := range states[0] {
		all := true
		for _, s := range states[1:] {
			if !s[b] {
				all = false
				break
			}
		}
		if all {
			out[b] = true
		}
	}
	return out
}
