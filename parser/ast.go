package parser

import "primer/types"

// Node is the base interface for all AST nodes
type Node interface {
	Position() Position
}

// Expr represents an expression node
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node
type Stmt interface {
	Node
	stmtNode()
}

// TypeExpr represents a type annotation
type TypeExpr interface {
	Node
	typeNode()
}

// LiteralExpr wraps a scalar Value
type LiteralExpr struct {
	Pos   Position
	Value types.Value
}

func (e *LiteralExpr) Position() Position { return e.Pos }
func (e *LiteralExpr) exprNode()          {}

// IdentifierExpr represents a variable reference
type IdentifierExpr struct {
	Pos  Position
	Name string
}

func (e *IdentifierExpr) Position() Position { return e.Pos }
func (e *IdentifierExpr) exprNode()          {}

// TemplateExpr represents `text ${expr} text`
// len(Quasis) == len(Exprs)+1
type TemplateExpr struct {
	Pos    Position
	Quasis []string
	Exprs  []Expr
}

func (e *TemplateExpr) Position() Position { return e.Pos }
func (e *TemplateExpr) exprNode()          {}

// ObjectExpr represents a record literal: { key: value, shorthand }
type ObjectExpr struct {
	Pos   Position
	Props []*PropertyInit
}

// PropertyInit is one key/value pair of an object literal
type PropertyInit struct {
	Pos   Position
	Key   string
	Value Expr
}

func (p *PropertyInit) Position() Position { return p.Pos }

func (e *ObjectExpr) Position() Position { return e.Pos }
func (e *ObjectExpr) exprNode()          {}

// UnaryExpr represents a unary operation
type UnaryExpr struct {
	Pos      Position
	Operator TokenType // TOKEN_MINUS, TOKEN_PLUS, TOKEN_NOT, TOKEN_TYPEOF
	Operand  Expr
}

func (e *UnaryExpr) Position() Position { return e.Pos }
func (e *UnaryExpr) exprNode()          {}

// BinaryExpr represents a binary operation, including the short-circuit
// operators && || ??
type BinaryExpr struct {
	Pos      Position
	Left     Expr
	Operator TokenType
	Right    Expr
}

func (e *BinaryExpr) Position() Position { return e.Pos }
func (e *BinaryExpr) exprNode()          {}

// TernaryExpr represents conditional expression: cond ? then : else
type TernaryExpr struct {
	Pos       Position
	Condition Expr
	ThenExpr  Expr
	ElseExpr  Expr
}

func (e *TernaryExpr) Position() Position { return e.Pos }
func (e *TernaryExpr) exprNode()          {}

// ParenExpr represents a parenthesized expression
type ParenExpr struct {
	Pos  Position
	Expr Expr
}

func (e *ParenExpr) Position() Position { return e.Pos }
func (e *ParenExpr) exprNode()          {}

// PropertyExpr represents property access: expr.property or expr?.property
type PropertyExpr struct {
	Pos      Position
	Expr     Expr
	Property string
	Optional bool // ?. short-circuits when Expr is null or undefined
}

func (e *PropertyExpr) Position() Position { return e.Pos }
func (e *PropertyExpr) exprNode()          {}

// CallExpr represents a call: callee(args) or callee?.(args)
type CallExpr struct {
	Pos      Position
	Callee   Expr
	Args     []Expr
	Optional bool
}

func (e *CallExpr) Position() Position { return e.Pos }
func (e *CallExpr) exprNode()          {}

// ChainExpr marks the extent of an optional chain. When any ?. link
// inside short-circuits, the whole chain evaluates to undefined.
type ChainExpr struct {
	Pos  Position
	Expr Expr
}

func (e *ChainExpr) Position() Position { return e.Pos }
func (e *ChainExpr) exprNode()          {}

// AssignExpr represents assignment: lvalue = expr, lvalue += expr, ...
type AssignExpr struct {
	Pos      Position
	Target   Expr // IdentifierExpr, PropertyExpr, or ChainExpr (rejected by the checker)
	Operator TokenType
	Value    Expr
}

func (e *AssignExpr) Position() Position { return e.Pos }
func (e *AssignExpr) exprNode()          {}

// Param is a function parameter with an optional annotation
type Param struct {
	Pos      Position
	Name     string
	Type     TypeExpr // nil when unannotated
	Optional bool
}

func (p *Param) Position() Position { return p.Pos }

// FuncExpr represents a function: a declaration's body, a function
// expression, or an arrow function. Arrow functions with an expression
// body set ExprBody instead of Body.
type FuncExpr struct {
	Pos      Position
	Name     string
	Params   []*Param
	Result   TypeExpr // nil when unannotated
	Body     []Stmt
	ExprBody Expr
	Arrow    bool
}

func (e *FuncExpr) Position() Position { return e.Pos }
func (e *FuncExpr) exprNode()          {}

// Type annotation nodes

// NamedType is a primitive type name: number, string, boolean, ...
type NamedType struct {
	Pos  Position
	Name string
}

func (t *NamedType) Position() Position { return t.Pos }
func (t *NamedType) typeNode()          {}

// UnionType is A | B | ...
type UnionType struct {
	Pos     Position
	Members []TypeExpr
}

func (t *UnionType) Position() Position { return t.Pos }
func (t *UnionType) typeNode()          {}

// ObjectType is { name: T; other?: U }
type ObjectType struct {
	Pos    Position
	Fields []*FieldType
}

// FieldType is one member of an object type
type FieldType struct {
	Pos      Position
	Name     string
	Type     TypeExpr
	Optional bool
}

func (f *FieldType) Position() Position { return f.Pos }

func (t *ObjectType) Position() Position { return t.Pos }
func (t *ObjectType) typeNode()          {}

// FuncType is (a: T, b: U) => R
type FuncType struct {
	Pos    Position
	Params []*Param
	Result TypeExpr
}

func (t *FuncType) Position() Position { return t.Pos }
func (t *FuncType) typeNode()          {}

// Statement AST nodes

// DeclKind distinguishes const from let
type DeclKind int

const (
	DeclConst DeclKind = iota
	DeclLet
)

func (k DeclKind) String() string {
	if k == DeclConst {
		return "const"
	}
	return "let"
}

// VarDecl represents const/let declarations
type VarDecl struct {
	Pos  Position
	Kind DeclKind
	Name string
	Type TypeExpr // nil when unannotated
	Init Expr     // nil for `let x` / `let x: T`
}

func (s *VarDecl) Position() Position { return s.Pos }
func (s *VarDecl) stmtNode()          {}

// FuncDecl represents a named function declaration; it is hoisted to the
// top of its enclosing block.
type FuncDecl struct {
	Pos  Position
	Func *FuncExpr
}

func (s *FuncDecl) Position() Position { return s.Pos }
func (s *FuncDecl) stmtNode()          {}

// ExprStmt represents an expression used as a statement
type ExprStmt struct {
	Pos  Position
	Expr Expr // nil for an empty statement
}

func (s *ExprStmt) Position() Position { return s.Pos }
func (s *ExprStmt) stmtNode()          {}

// IfStmt represents if / else if / else
type IfStmt struct {
	Pos       Position
	Condition Expr
	Body      []Stmt
	ElseIfs   []*ElseIfClause
	Else      []Stmt // Can be nil
}

type ElseIfClause struct {
	Pos       Position
	Condition Expr
	Body      []Stmt
}

func (s *IfStmt) Position() Position { return s.Pos }
func (s *IfStmt) stmtNode()          {}

// BlockStmt represents a bare { ... } block
type BlockStmt struct {
	Pos  Position
	Body []Stmt
}

func (s *BlockStmt) Position() Position { return s.Pos }
func (s *BlockStmt) stmtNode()          {}

// ReturnStmt represents return statement
type ReturnStmt struct {
	Pos   Position
	Value Expr // Can be nil (returns undefined)
}

func (s *ReturnStmt) Position() Position { return s.Pos }
func (s *ReturnStmt) stmtNode()          {}
