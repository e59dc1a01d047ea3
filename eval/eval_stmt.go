package eval

import (
	"primer/parser"
	"primer/trace"
	"primer/types"
)

// EvalStatements hoists the declarations of a statement list into the
// current scope, then evaluates the statements in order. The result holds
// the value of the last statement.
func (e *Evaluator) EvalStatements(stmts []parser.Stmt, ctx *types.TaskContext) types.Result {
	e.hoist(stmts)

	result := types.Ok(types.Undefined)
	for _, stmt := range stmts {
		result = e.EvalStmt(stmt, ctx)
		// Propagate control flow (return, error)
		if !result.IsNormal() {
			return result
		}
	}
	return result
}

// hoist binds every name a statement list declares. Functions are usable
// from the start of the block; let and const stay uninitialized until
// their declaration runs.
func (e *Evaluator) hoist(stmts []parser.Stmt) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *parser.VarDecl:
			e.env.Declare(s.Name, s.Kind == parser.DeclConst)
		case *parser.FuncDecl:
			e.env.Define(s.Func.Name, e.makeClosure(s.Func, false))
		}
	}
}

// EvalStmt evaluates a single statement
func (e *Evaluator) EvalStmt(stmt parser.Stmt, ctx *types.TaskContext) types.Result {
	// Tick counting
	if !ctx.ConsumeTick() {
		return e.raise(stmt, types.NewException(types.E_TICKS, ""))
	}

	frame := e.current()
	frame.Line = stmt.Position().Line
	if trace.IsEnabled() {
		trace.Statement(frame.Function, frame.Line, parser.UnparseStmt(stmt))
	}

	switch s := stmt.(type) {
	case *parser.VarDecl:
		return e.evalVarDecl(s, ctx)
	case *parser.FuncDecl:
		return types.Ok(types.Undefined) // bound by hoist
	case *parser.ExprStmt:
		return e.evalExprStmt(s, ctx)
	case *parser.BlockStmt:
		return e.evalBlock(s.Body, ctx)
	case *parser.IfStmt:
		return e.evalIfStmt(s, ctx)
	case *parser.ReturnStmt:
		return e.evalReturnStmt(s, ctx)
	default:
		return e.raise(stmt, types.NewException(types.E_TYPE, "unsupported statement %T", stmt))
	}
}

// evalVarDecl initializes a hoisted binding. A declaration without an
// initializer holds undefined.
func (e *Evaluator) evalVarDecl(stmt *parser.VarDecl, ctx *types.TaskContext) types.Result {
	var value types.Value = types.Undefined
	if stmt.Init != nil {
		result := e.Eval(stmt.Init, ctx)
		if !result.IsNormal() {
			return result
		}
		value = result.Val

		// const greet = () => ... names the function "greet"
		if c, ok := value.(*Closure); ok && c.Name == "" {
			if _, isFunc := stmt.Init.(*parser.FuncExpr); isFunc {
				c.Name = stmt.Name
			}
		}
	}
	e.env.Initialize(stmt.Name, value)
	return types.Ok(types.Undefined)
}

// evalExprStmt evaluates an expression statement; its value is kept so an
// interactive session can echo it
func (e *Evaluator) evalExprStmt(stmt *parser.ExprStmt, ctx *types.TaskContext) types.Result {
	if stmt.Expr == nil {
		// Empty statement
		return types.Ok(types.Undefined)
	}
	return e.Eval(stmt.Expr, ctx)
}

// evalBlock evaluates statements in a nested scope
func (e *Evaluator) evalBlock(stmts []parser.Stmt, ctx *types.TaskContext) types.Result {
	saved := e.env
	e.env = NewNestedEnvironment(saved)
	defer func() { e.env = saved }()
	return e.EvalStatements(stmts, ctx)
}

// evalIfStmt evaluates if/else if/else statements
func (e *Evaluator) evalIfStmt(stmt *parser.IfStmt, ctx *types.TaskContext) types.Result {
	condResult := e.Eval(stmt.Condition, ctx)
	if !condResult.IsNormal() {
		return condResult
	}

	if condResult.Val.Truthy() {
		return e.evalBlock(stmt.Body, ctx)
	}

	// Try else if clauses
	for _, elseIf := range stmt.ElseIfs {
		elseIfCondResult := e.Eval(elseIf.Condition, ctx)
		if !elseIfCondResult.IsNormal() {
			return elseIfCondResult
		}

		if elseIfCondResult.Val.Truthy() {
			return e.evalBlock(elseIf.Body, ctx)
		}
	}

	// Execute else body if present
	if stmt.Else != nil {
		return e.evalBlock(stmt.Else, ctx)
	}

	// No condition matched, no else - return normal
	return types.Ok(types.Undefined)
}

// evalReturnStmt evaluates return [expr]
func (e *Evaluator) evalReturnStmt(stmt *parser.ReturnStmt, ctx *types.TaskContext) types.Result {
	if stmt.Value == nil {
		return types.Return(types.Undefined)
	}

	result := e.Eval(stmt.Value, ctx)
	if !result.IsNormal() {
		return result
	}
	return types.Return(result.Val)
}
