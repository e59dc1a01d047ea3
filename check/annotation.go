package check

import (
	"primer/parser"
	"primer/types"
)

// resolveType converts a type annotation into a static type. Unknown
// names resolve to any after reporting a diagnostic.
func (c *Checker) resolveType(t parser.TypeExpr) ([]Diagnostic, types.Type) {
	switch tt := t.(type) {
	case *parser.NamedType:
		if p, ok := types.LookupPrimitive(tt.Name); ok {
			return nil, p
		}
		return []Diagnostic{typeErr(tt, "cannot find name '%s'", tt.Name)}, types.AnyType

	case *parser.UnionType:
		var diags []Diagnostic
		members := make([]types.Type, 0, len(tt.Members))
		for _, m := range tt.Members {
			d, mt := c.resolveType(m)
			diags = append(diags, d...)
			members = append(members, mt)
		}
		return diags, types.NewUnion(members...)

	case *parser.ObjectType:
		var diags []Diagnostic
		obj := &types.Object{}
		for _, f := range tt.Fields {
			if _, dup := obj.Field(f.Name); dup {
				diags = append(diags, typeErr(f, "duplicate identifier '%s'", f.Name))
				continue
			}
			d, ft := c.resolveType(f.Type)
			diags = append(diags, d...)
			obj.Fields = append(obj.Fields, types.Field{Name: f.Name, Type: ft, Optional: f.Optional})
		}
		return diags, obj

	case *parser.FuncType:
		diags, params := c.resolveParams(tt.Params)
		d, result := c.resolveType(tt.Result)
		return append(diags, d...), &types.Func{Params: params, Result: result}
	}
	return nil, types.AnyType
}

// resolveParams resolves parameter annotations; unannotated parameters
// are any
func (c *Checker) resolveParams(params []*parser.Param) ([]Diagnostic, []types.Param) {
	var diags []Diagnostic
	out := make([]types.Param, 0, len(params))
	seen := make(map[string]bool)
	sawOptional := false
	for _, p := range params {
		if seen[p.Name] {
			diags = append(diags, scopeErr(p, "duplicate identifier '%s'", p.Name))
		}
		seen[p.Name] = true
		if sawOptional && !p.Optional {
			diags = append(diags, typeErr(p, "a required parameter cannot follow an optional parameter"))
		}
		sawOptional = sawOptional || p.Optional

		pt := types.AnyType
		if p.Type != nil {
			var d []Diagnostic
			d, pt = c.resolveType(p.Type)
			diags = append(diags, d...)
		}
		out = append(out, types.Param{Name: p.Name, Type: pt, Optional: p.Optional})
	}
	return diags, out
}

// signature builds the static type of a function. An unannotated return
// type is any.
func (c *Checker) signature(fn *parser.FuncExpr) ([]Diagnostic, *types.Func) {
	diags, params := c.resolveParams(fn.Params)
	sig := &types.Func{Params: params, Result: types.AnyType}
	if fn.Result != nil {
		d, rt := c.resolveType(fn.Result)
		diags = append(diags, d...)
		sig.Result = rt
	}
	return diags, sig
}
