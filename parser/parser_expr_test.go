package parser

import (
	"testing"

	"primer/types"
)

func parseExpr(t *testing.T, input string) Expr {
	t.Helper()
	p := NewParser(input)
	expr, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		t.Fatalf("ParseExpression(%q) error = %v", input, err)
	}
	if p.current.Type != TOKEN_EOF {
		t.Fatalf("ParseExpression(%q) stopped at %s", input, describe(p.current))
	}
	return expr
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  types.Value
	}{
		{"42", types.NewNum(42)},
		{"0.5", types.NewNum(0.5)},
		{"1e3", types.NewNum(1000)},
		{`"Admin"`, types.NewStr("Admin")},
		{"'x'", types.NewStr("x")},
		{"true", types.NewBool(true)},
		{"false", types.NewBool(false)},
		{"null", types.Null},
		{"undefined", types.Undefined},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lit, ok := parseExpr(t, tt.input).(*LiteralExpr)
			if !ok {
				t.Fatalf("got %T, want *LiteralExpr", parseExpr(t, tt.input))
			}
			if lit.Value.Type() != tt.want.Type() || !lit.Value.Equal(tt.want) {
				t.Errorf("value = %v, want %v", lit.Value, tt.want)
			}
		})
	}
}

// Precedence is checked by unparsing with minimal parentheses added by
// the test: a fully parenthesized rendering shows the tree shape.
func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"a - b - c", "((a - b) - c)"},
		{"a % 2 === 0", "((a % 2) === 0)"},
		{"a && b || c", "((a && b) || c)"},
		{"a || b && c", "(a || (b && c))"},
		{"a ?? b ?? c", "((a ?? b) ?? c)"},
		{"a < b === c > d", "((a < b) === (c > d))"},
		{"-a * b", "((-a) * b)"},
		{"!a && b", "((!a) && b)"},
		{"typeof a === 'string'", "((typeof a) === 'string')"},
		{"a ? b : c ? d : e", "(a ? b : (c ? d : e))"},
		{"x = y = 1", "(x = (y = 1))"},
		{"x += 1 + 2", "(x += (1 + 2))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := shape(parseExpr(t, tt.input))
			if got != tt.want {
				t.Errorf("shape(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

// shape renders an expression fully parenthesized
func shape(e Expr) string {
	switch e := e.(type) {
	case *BinaryExpr:
		return "(" + shape(e.Left) + " " + e.Operator.Symbol() + " " + shape(e.Right) + ")"
	case *UnaryExpr:
		op := e.Operator.Symbol()
		if e.Operator == TOKEN_TYPEOF {
			op += " "
		}
		return "(" + op + shape(e.Operand) + ")"
	case *TernaryExpr:
		return "(" + shape(e.Condition) + " ? " + shape(e.ThenExpr) + " : " + shape(e.ElseExpr) + ")"
	case *AssignExpr:
		return "(" + shape(e.Target) + " " + e.Operator.Symbol() + " " + shape(e.Value) + ")"
	case *ParenExpr:
		return shape(e.Expr)
	default:
		return UnparseExpr(e)
	}
}

func TestParseMemberAndCall(t *testing.T) {
	call, ok := parseExpr(t, "console.log(a, 'b', 1 + 2)").(*CallExpr)
	if !ok {
		t.Fatalf("expected *CallExpr")
	}
	if len(call.Args) != 3 {
		t.Fatalf("args = %d, want 3", len(call.Args))
	}
	prop, ok := call.Callee.(*PropertyExpr)
	if !ok {
		t.Fatalf("callee = %T, want *PropertyExpr", call.Callee)
	}
	if prop.Property != "log" || prop.Optional {
		t.Errorf("property = %q optional=%v", prop.Property, prop.Optional)
	}
	if id, ok := prop.Expr.(*IdentifierExpr); !ok || id.Name != "console" {
		t.Errorf("object = %v", prop.Expr)
	}
}

func TestParseOptionalChain(t *testing.T) {
	chain, ok := parseExpr(t, "user?.profile?.name").(*ChainExpr)
	if !ok {
		t.Fatalf("expected *ChainExpr")
	}
	outer, ok := chain.Expr.(*PropertyExpr)
	if !ok || outer.Property != "name" || !outer.Optional {
		t.Fatalf("outer link = %#v", chain.Expr)
	}
	inner, ok := outer.Expr.(*PropertyExpr)
	if !ok || inner.Property != "profile" || !inner.Optional {
		t.Fatalf("inner link = %#v", outer.Expr)
	}
}

func TestParseOptionalChainMixed(t *testing.T) {
	chain, ok := parseExpr(t, "a?.b.c").(*ChainExpr)
	if !ok {
		t.Fatalf("expected *ChainExpr")
	}
	outer := chain.Expr.(*PropertyExpr)
	if outer.Optional {
		t.Errorf(".c should not be optional")
	}
	if !outer.Expr.(*PropertyExpr).Optional {
		t.Errorf("?.b should be optional")
	}
}

func TestParseOptionalCall(t *testing.T) {
	chain, ok := parseExpr(t, "f?.(1)").(*ChainExpr)
	if !ok {
		t.Fatalf("expected *ChainExpr")
	}
	call, ok := chain.Expr.(*CallExpr)
	if !ok || !call.Optional || len(call.Args) != 1 {
		t.Errorf("call = %#v", chain.Expr)
	}
}

func TestParseKeywordProperty(t *testing.T) {
	prop, ok := parseExpr(t, "a.default.if").(*PropertyExpr)
	if !ok || prop.Property != "if" {
		t.Fatalf("got %#v", prop)
	}
}

func TestParseObjectLiteral(t *testing.T) {
	obj, ok := parseExpr(t, `{ name: "Omkar", id: 1, role, "full name": "x", }`).(*ObjectExpr)
	if !ok {
		t.Fatalf("expected *ObjectExpr")
	}
	wantKeys := []string{"name", "id", "role", "full name"}
	if len(obj.Props) != len(wantKeys) {
		t.Fatalf("props = %d, want %d", len(obj.Props), len(wantKeys))
	}
	for i, key := range wantKeys {
		if obj.Props[i].Key != key {
			t.Errorf("prop %d key = %q, want %q", i, obj.Props[i].Key, key)
		}
	}
	if id, ok := obj.Props[2].Value.(*IdentifierExpr); !ok || id.Name != "role" {
		t.Errorf("shorthand value = %#v", obj.Props[2].Value)
	}
}

func TestParseNestedObjectLiteral(t *testing.T) {
	obj := parseExpr(t, `{ profile: { name: "Alex" } }`).(*ObjectExpr)
	inner, ok := obj.Props[0].Value.(*ObjectExpr)
	if !ok || inner.Props[0].Key != "name" {
		t.Errorf("inner = %#v", obj.Props[0].Value)
	}
}

func TestParseTemplateExpr(t *testing.T) {
	tmpl, ok := parseExpr(t, "`Doing the addition of ${a} and ${b} = ${add(a, b)}`").(*TemplateExpr)
	if !ok {
		t.Fatalf("expected *TemplateExpr")
	}
	if len(tmpl.Quasis) != 4 || len(tmpl.Exprs) != 3 {
		t.Fatalf("quasis=%d exprs=%d", len(tmpl.Quasis), len(tmpl.Exprs))
	}
	if _, ok := tmpl.Exprs[2].(*CallExpr); !ok {
		t.Errorf("third substitution = %T, want *CallExpr", tmpl.Exprs[2])
	}
	if tmpl.Quasis[3] != "" {
		t.Errorf("last quasi = %q, want empty", tmpl.Quasis[3])
	}
}

func TestParseTemplatePositions(t *testing.T) {
	p := NewParser("let s = 1\nconsole.log(`x ${missing}`)")
	stmts, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() error = %v", err)
	}
	call := stmts[1].(*ExprStmt).Expr.(*CallExpr)
	id := call.Args[0].(*TemplateExpr).Exprs[0].(*IdentifierExpr)
	if id.Pos.Line != 2 || id.Pos.Column != 18 {
		t.Errorf("substitution position = %d:%d, want 2:18", id.Pos.Line, id.Pos.Column)
	}
}

func TestParseArrowFunctions(t *testing.T) {
	tests := []struct {
		input      string
		params     int
		typedParam bool
		result     bool
		exprBody   bool
	}{
		{"(a: number, b: number): number => { return a + b }", 2, true, true, false},
		{"(a, b) => a * b", 2, false, false, true},
		{"x => x + 1", 1, false, false, true},
		{"() => 1", 0, false, false, true},
		{"(name?: string): string => `Hello, ${name}!`", 1, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			fn, ok := parseExpr(t, tt.input).(*FuncExpr)
			if !ok {
				t.Fatalf("expected *FuncExpr")
			}
			if !fn.Arrow {
				t.Errorf("Arrow = false")
			}
			if len(fn.Params) != tt.params {
				t.Fatalf("params = %d, want %d", len(fn.Params), tt.params)
			}
			if tt.params > 0 && (fn.Params[0].Type != nil) != tt.typedParam {
				t.Errorf("param typed = %v, want %v", fn.Params[0].Type != nil, tt.typedParam)
			}
			if (fn.Result != nil) != tt.result {
				t.Errorf("result annotated = %v, want %v", fn.Result != nil, tt.result)
			}
			if (fn.ExprBody != nil) != tt.exprBody {
				t.Errorf("expression body = %v, want %v", fn.ExprBody != nil, tt.exprBody)
			}
		})
	}
}

func TestParseParenIsNotArrow(t *testing.T) {
	tests := []string{"(a)", "(a + b) * c", "(a ? b : c)", "(a, b)"}
	for _, input := range tests[:3] {
		t.Run(input, func(t *testing.T) {
			if _, ok := parseExpr(t, input).(*FuncExpr); ok {
				t.Errorf("%q parsed as a function", input)
			}
		})
	}
	// a parenthesized comma list is not an expression in this language
	if _, err := NewParser(tests[3]).ParseExpression(PREC_LOWEST); err == nil {
		t.Errorf("%q should fail to parse", tests[3])
	}
}

func TestParseFunctionExpression(t *testing.T) {
	fn, ok := parseExpr(t, "function (a: number): void { console.log(a) }").(*FuncExpr)
	if !ok {
		t.Fatalf("expected *FuncExpr")
	}
	if fn.Arrow || fn.Name != "" || len(fn.Body) != 1 {
		t.Errorf("fn = %#v", fn)
	}
}

func TestParseAssignTargets(t *testing.T) {
	valid := []string{"x = 1", "user.name = 'x'", "a.b.c += 2", "a?.b = 1"}
	for _, input := range valid {
		t.Run(input, func(t *testing.T) {
			if _, ok := parseExpr(t, input).(*AssignExpr); !ok {
				t.Errorf("%q is not an assignment", input)
			}
		})
	}

	invalid := []string{"1 = 2", "f() = 1", "(a) = 1", "a + b = c"}
	for _, input := range invalid {
		t.Run(input, func(t *testing.T) {
			_, err := NewParser(input).ParseExpression(PREC_LOWEST)
			if err == nil {
				t.Fatalf("%q should fail", input)
			}
		})
	}
}
