package parser

import (
	"fmt"
	"strings"

	"primer/types"
)

// UnparseProgram converts AST statements back to source code lines
func UnparseProgram(stmts []Stmt) []string {
	lines := []string{}
	for _, stmt := range stmts {
		lines = append(lines, strings.Split(unparseStmt(stmt, 0), "\n")...)
	}
	return lines
}

// UnparseStmt renders a single statement; nested bodies span several lines
func UnparseStmt(stmt Stmt) string {
	return unparseStmt(stmt, 0)
}

// UnparseExpr renders an expression as source code
func UnparseExpr(expr Expr) string {
	return unparseExpr(expr, PREC_LOWEST)
}

// unparseStmt converts a statement to source code
func unparseStmt(stmt Stmt, indent int) string {
	indentStr := strings.Repeat("  ", indent)

	switch s := stmt.(type) {
	case *ExprStmt:
		if s.Expr == nil {
			return indentStr + ";"
		}
		return indentStr + unparseExpr(s.Expr, PREC_LOWEST)

	case *VarDecl:
		result := indentStr + s.Kind.String() + " " + s.Name
		if s.Type != nil {
			result += ": " + UnparseType(s.Type)
		}
		if s.Init != nil {
			result += " = " + unparseExpr(s.Init, PREC_ASSIGN)
		}
		return result

	case *FuncDecl:
		return indentStr + unparseFunc(s.Func, indent)

	case *ReturnStmt:
		if s.Value == nil {
			return indentStr + "return"
		}
		return indentStr + "return " + unparseExpr(s.Value, PREC_LOWEST)

	case *BlockStmt:
		return indentStr + unparseBlock(s.Body, indent)

	case *IfStmt:
		var sb strings.Builder
		sb.WriteString(indentStr + "if (" + unparseExpr(s.Condition, PREC_LOWEST) + ") ")
		sb.WriteString(unparseBlock(s.Body, indent))
		for _, elseif := range s.ElseIfs {
			sb.WriteString(" else if (" + unparseExpr(elseif.Condition, PREC_LOWEST) + ") ")
			sb.WriteString(unparseBlock(elseif.Body, indent))
		}
		if s.Else != nil {
			sb.WriteString(" else ")
			sb.WriteString(unparseBlock(s.Else, indent))
		}
		return sb.String()

	default:
		return indentStr + fmt.Sprintf("<unknown stmt: %T>", stmt)
	}
}

// unparseBlock renders { ... } with the closing brace at the given indent
func unparseBlock(body []Stmt, indent int) string {
	if len(body) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{\n")
	for _, stmt := range body {
		sb.WriteString(unparseStmt(stmt, indent+1) + "\n")
	}
	sb.WriteString(strings.Repeat("  ", indent) + "}")
	return sb.String()
}

// unparseExpr converts an expression to source code, parenthesizing it
// when it binds looser than its context
func unparseExpr(expr Expr, parentPrecedence int) string {
	switch e := expr.(type) {
	case *LiteralExpr:
		return unparseLiteral(e.Value)

	case *IdentifierExpr:
		return e.Name

	case *TemplateExpr:
		var sb strings.Builder
		sb.WriteByte('`')
		for i, q := range e.Quasis {
			sb.WriteString(escapeTemplate(q))
			if i < len(e.Exprs) {
				sb.WriteString("${" + unparseExpr(e.Exprs[i], PREC_LOWEST) + "}")
			}
		}
		sb.WriteByte('`')
		return sb.String()

	case *ObjectExpr:
		if len(e.Props) == 0 {
			return "{}"
		}
		parts := make([]string, len(e.Props))
		for i, prop := range e.Props {
			if id, ok := prop.Value.(*IdentifierExpr); ok && id.Name == prop.Key {
				parts[i] = prop.Key
				continue
			}
			parts[i] = prop.Key + ": " + unparseExpr(prop.Value, PREC_ASSIGN)
		}
		return "{ " + strings.Join(parts, ", ") + " }"

	case *UnaryExpr:
		op := e.Operator.Symbol()
		operand := unparseExpr(e.Operand, PREC_PREFIX)
		if e.Operator == TOKEN_TYPEOF || strings.HasPrefix(operand, op) {
			// typeof x, - -x
			op += " "
		}
		return wrap(op+operand, PREC_PREFIX, parentPrecedence)

	case *BinaryExpr:
		prec := precedences[e.Operator]
		left := unparseExpr(e.Left, prec)
		right := unparseExpr(e.Right, prec+1)
		return wrap(left+" "+e.Operator.Symbol()+" "+right, prec, parentPrecedence)

	case *TernaryExpr:
		result := unparseExpr(e.Condition, PREC_TERNARY) + " ? " +
			unparseExpr(e.ThenExpr, PREC_ASSIGN) + " : " +
			unparseExpr(e.ElseExpr, PREC_ASSIGN)
		return wrap(result, PREC_TERNARY, parentPrecedence)

	case *ParenExpr:
		return "(" + unparseExpr(e.Expr, PREC_LOWEST) + ")"

	case *PropertyExpr:
		sep := "."
		if e.Optional {
			sep = "?."
		}
		return unparseExpr(e.Expr, PREC_CALL) + sep + e.Property

	case *CallExpr:
		callee := unparseExpr(e.Callee, PREC_CALL)
		if e.Optional {
			callee += "?."
		}
		return callee + "(" + unparseArgs(e.Args) + ")"

	case *ChainExpr:
		return unparseExpr(e.Expr, parentPrecedence)

	case *AssignExpr:
		result := unparseExpr(e.Target, PREC_CALL) + " " + e.Operator.Symbol() + " " + unparseExpr(e.Value, PREC_ASSIGN)
		return wrap(result, PREC_ASSIGN, parentPrecedence)

	case *FuncExpr:
		return wrap(unparseFunc(e, 0), PREC_ASSIGN, parentPrecedence)

	default:
		return fmt.Sprintf("<unknown expr: %T>", expr)
	}
}

func wrap(s string, prec, parentPrecedence int) string {
	if prec < parentPrecedence {
		return "(" + s + ")"
	}
	return s
}

// unparseFunc renders a function declaration, function expression or
// arrow function
func unparseFunc(fn *FuncExpr, indent int) string {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = unparseParam(p)
	}
	sig := "(" + strings.Join(params, ", ") + ")"
	if fn.Result != nil {
		sig += ": " + UnparseType(fn.Result)
	}

	if fn.Arrow {
		if fn.ExprBody != nil {
			return sig + " => " + unparseExpr(fn.ExprBody, PREC_ASSIGN)
		}
		return sig + " => " + unparseBlock(fn.Body, indent)
	}

	head := "function"
	if fn.Name != "" {
		head += " " + fn.Name
	}
	return head + sig + " " + unparseBlock(fn.Body, indent)
}

func unparseParam(p *Param) string {
	s := p.Name
	if p.Optional {
		s += "?"
	}
	if p.Type != nil {
		s += ": " + UnparseType(p.Type)
	}
	return s
}

// UnparseType renders a type annotation
func UnparseType(t TypeExpr) string {
	switch tt := t.(type) {
	case *NamedType:
		return tt.Name
	case *UnionType:
		parts := make([]string, len(tt.Members))
		for i, m := range tt.Members {
			parts[i] = UnparseType(m)
			if _, ok := m.(*FuncType); ok {
				parts[i] = "(" + parts[i] + ")"
			}
		}
		return strings.Join(parts, " | ")
	case *ObjectType:
		if len(tt.Fields) == 0 {
			return "{}"
		}
		parts := make([]string, len(tt.Fields))
		for i, f := range tt.Fields {
			opt := ""
			if f.Optional {
				opt = "?"
			}
			parts[i] = f.Name + opt + ": " + UnparseType(f.Type)
		}
		return "{ " + strings.Join(parts, "; ") + " }"
	case *FuncType:
		params := make([]string, len(tt.Params))
		for i, p := range tt.Params {
			params[i] = unparseParam(p)
		}
		return "(" + strings.Join(params, ", ") + ") => " + UnparseType(tt.Result)
	default:
		return fmt.Sprintf("<unknown type: %T>", t)
	}
}

// unparseLiteral renders a literal the way it would be written in source
func unparseLiteral(v types.Value) string {
	if s, ok := v.(types.StrValue); ok {
		return s.Quoted()
	}
	return v.String()
}

// unparseArgs converts function arguments to source code
func unparseArgs(args []Expr) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = unparseExpr(arg, PREC_ASSIGN)
	}
	return strings.Join(parts, ", ")
}

func escapeTemplate(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "`", "\\`", "${", "\\${")
	return r.Replace(s)
}
