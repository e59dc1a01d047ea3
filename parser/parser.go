package parser

import (
	"fmt"
	"strconv"

	"primer/types"
)

// Operator precedence levels (higher = tighter binding)
const (
	PREC_LOWEST     = iota
	PREC_ASSIGN     // = += -= ...
	PREC_TERNARY    // ? :
	PREC_NULLISH    // ??
	PREC_OR         // ||
	PREC_AND        // &&
	PREC_EQUALITY   // === !== == !=
	PREC_COMPARISON // < <= > >=
	PREC_SUM        // + -
	PREC_PRODUCT    // * / %
	PREC_PREFIX     // - + ! typeof
	PREC_CALL       // . ?. ()
)

var precedences = map[TokenType]int{
	TOKEN_ASSIGN:         PREC_ASSIGN,
	TOKEN_PLUS_ASSIGN:    PREC_ASSIGN,
	TOKEN_MINUS_ASSIGN:   PREC_ASSIGN,
	TOKEN_STAR_ASSIGN:    PREC_ASSIGN,
	TOKEN_SLASH_ASSIGN:   PREC_ASSIGN,
	TOKEN_PERCENT_ASSIGN: PREC_ASSIGN,
	TOKEN_QUESTION:       PREC_TERNARY,
	TOKEN_NULLISH:        PREC_NULLISH,
	TOKEN_OR:             PREC_OR,
	TOKEN_AND:            PREC_AND,
	TOKEN_STRICT_EQ:      PREC_EQUALITY,
	TOKEN_STRICT_NE:      PREC_EQUALITY,
	TOKEN_EQ:             PREC_EQUALITY,
	TOKEN_NE:             PREC_EQUALITY,
	TOKEN_LT:             PREC_COMPARISON,
	TOKEN_GT:             PREC_COMPARISON,
	TOKEN_LE:             PREC_COMPARISON,
	TOKEN_GE:             PREC_COMPARISON,
	TOKEN_PLUS:           PREC_SUM,
	TOKEN_MINUS:          PREC_SUM,
	TOKEN_STAR:           PREC_PRODUCT,
	TOKEN_SLASH:          PREC_PRODUCT,
	TOKEN_PERCENT:        PREC_PRODUCT,
}

// Parser parses lesson source code into an AST
type Parser struct {
	tokens  []Token
	index   int
	current Token
	peek    Token
}

// NewParser creates a new Parser instance
func NewParser(input string) *Parser {
	return newParserFromLexer(NewLexer(input))
}

func newParserFromLexer(l *Lexer) *Parser {
	p := &Parser{tokens: l.Tokenize(), index: -1}
	p.nextToken()
	return p
}

// nextToken advances to the next token
func (p *Parser) nextToken() {
	p.reset(p.index + 1)
}

// reset moves the parser to token i; used to back out of a tentative
// parse such as an arrow-function header.
func (p *Parser) reset(i int) {
	if i >= len(p.tokens) {
		i = len(p.tokens) - 1
	}
	p.index = i
	p.current = p.tokens[i]
	if i+1 < len(p.tokens) {
		p.peek = p.tokens[i+1]
	} else {
		p.peek = p.tokens[i]
	}
}

// expect consumes a token of the given type or fails
func (p *Parser) expect(t TokenType, what string) (Token, error) {
	if p.current.Type != t {
		return Token{}, p.errorf("expected %s, found %s", what, describe(p.current))
	}
	tok := p.current
	p.nextToken()
	return tok, nil
}

// ParseExpression parses an expression whose operators bind tighter than prec
func (p *Parser) ParseExpression(prec int) (Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		infixPrec, ok := precedences[p.current.Type]
		if !ok || infixPrec <= prec {
			return left, nil
		}
		switch {
		case infixPrec == PREC_ASSIGN:
			left, err = p.parseAssign(left)
		case p.current.Type == TOKEN_QUESTION:
			left, err = p.parseTernary(left)
		default:
			left, err = p.parseBinary(left, infixPrec)
		}
		if err != nil {
			return nil, err
		}
	}
}

// parseBinary parses the right operand of a left-associative operator
func (p *Parser) parseBinary(left Expr, prec int) (Expr, error) {
	op := p.current
	p.nextToken()
	right, err := p.ParseExpression(prec)
	if err != nil {
		return nil, err
	}
	return &BinaryExpr{Pos: op.Position, Left: left, Operator: op.Type, Right: right}, nil
}

// parseAssign parses a (right-associative) assignment
func (p *Parser) parseAssign(target Expr) (Expr, error) {
	op := p.current
	switch target.(type) {
	case *IdentifierExpr, *PropertyExpr, *ChainExpr:
	default:
		return nil, p.errorf("invalid assignment target")
	}
	p.nextToken()
	value, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	return &AssignExpr{Pos: target.Position(), Target: target, Operator: op.Type, Value: value}, nil
}

// parseTernary parses cond ? then : else
func (p *Parser) parseTernary(cond Expr) (Expr, error) {
	pos := p.current.Position
	p.nextToken() // consume '?'
	thenExpr, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOKEN_COLON, "':' in conditional expression"); err != nil {
		return nil, err
	}
	elseExpr, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	return &TernaryExpr{Pos: pos, Condition: cond, ThenExpr: thenExpr, ElseExpr: elseExpr}, nil
}

// parsePrefix parses a primary or prefix-operator expression followed by
// any member accesses and calls
func (p *Parser) parsePrefix() (Expr, error) {
	tok := p.current

	switch tok.Type {
	case TOKEN_MINUS, TOKEN_PLUS, TOKEN_NOT, TOKEN_TYPEOF:
		p.nextToken()
		operand, err := p.ParseExpression(PREC_PREFIX)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Pos: tok.Position, Operator: tok.Type, Operand: operand}, nil
	}

	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseCallTail(primary)
}

// parsePrimary parses literals, names, parentheses, object literals and
// function expressions
func (p *Parser) parsePrimary() (Expr, error) {
	tok := p.current

	switch tok.Type {
	case TOKEN_NUMBER:
		return p.parseNumberLiteral()
	case TOKEN_STRING:
		p.nextToken()
		return &LiteralExpr{Pos: tok.Position, Value: types.NewStr(tok.Literal)}, nil
	case TOKEN_TEMPLATE:
		return p.parseTemplate()
	case TOKEN_TRUE, TOKEN_FALSE:
		p.nextToken()
		return &LiteralExpr{Pos: tok.Position, Value: types.NewBool(tok.Type == TOKEN_TRUE)}, nil
	case TOKEN_NULL:
		p.nextToken()
		return &LiteralExpr{Pos: tok.Position, Value: types.Null}, nil
	case TOKEN_UNDEFINED:
		p.nextToken()
		return &LiteralExpr{Pos: tok.Position, Value: types.Undefined}, nil
	case TOKEN_IDENTIFIER:
		if p.peek.Type == TOKEN_FATARROW {
			return p.parseArrowFromIdent()
		}
		p.nextToken()
		return &IdentifierExpr{Pos: tok.Position, Name: tok.Value}, nil
	case TOKEN_LPAREN:
		if fn, err := p.tryParseArrow(); fn != nil || err != nil {
			return fn, err
		}
		p.nextToken() // consume '('
		inner, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOKEN_RPAREN, "')'"); err != nil {
			return nil, err
		}
		return &ParenExpr{Pos: tok.Position, Expr: inner}, nil
	case TOKEN_LBRACE:
		return p.parseObjectLiteral()
	case TOKEN_FUNCTION:
		return p.parseFunction(false)
	case TOKEN_ILLEGAL:
		return nil, p.errorf("%s", tok.Literal)
	default:
		return nil, p.errorf("unexpected %s", describe(tok))
	}
}

// parseNumberLiteral parses a numeric literal
func (p *Parser) parseNumberLiteral() (Expr, error) {
	tok := p.current
	val, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return nil, p.errorf("invalid number %q", tok.Value)
	}
	p.nextToken()
	return &LiteralExpr{Pos: tok.Position, Value: types.NewNum(val)}, nil
}

// parseTemplate parses each ${...} substitution of a template token with
// a sub-parser positioned inside the enclosing source
func (p *Parser) parseTemplate() (Expr, error) {
	tok := p.current
	parts := tok.Template
	tmpl := &TemplateExpr{Pos: tok.Position, Quasis: parts.Quasis}

	for i, src := range parts.Exprs {
		sub := newParserFromLexer(newLexerAt(src, parts.ExprPos[i]))
		if sub.current.Type == TOKEN_EOF {
			return nil, &SyntaxError{Pos: parts.ExprPos[i], Message: "empty template substitution"}
		}
		expr, err := sub.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		if sub.current.Type != TOKEN_EOF {
			return nil, sub.errorf("unexpected %s in template substitution", describe(sub.current))
		}
		tmpl.Exprs = append(tmpl.Exprs, expr)
	}

	p.nextToken()
	return tmpl, nil
}

// parseObjectLiteral parses { key: value, shorthand, "quoted": value }
func (p *Parser) parseObjectLiteral() (Expr, error) {
	obj := &ObjectExpr{Pos: p.current.Position}
	p.nextToken() // consume '{'

	for p.current.Type != TOKEN_RBRACE {
		keyTok := p.current
		var key string
		switch {
		case keyTok.Type == TOKEN_STRING:
			key = keyTok.Literal
		case keyTok.Type == TOKEN_NUMBER:
			key = keyTok.Value
		case isName(keyTok):
			key = keyTok.Value
		default:
			return nil, p.errorf("expected property name, found %s", describe(keyTok))
		}
		p.nextToken()

		prop := &PropertyInit{Pos: keyTok.Position, Key: key}
		if p.current.Type == TOKEN_COLON {
			p.nextToken()
			value, err := p.ParseExpression(PREC_LOWEST)
			if err != nil {
				return nil, err
			}
			prop.Value = value
		} else if keyTok.Type == TOKEN_IDENTIFIER {
			// shorthand { name }
			prop.Value = &IdentifierExpr{Pos: keyTok.Position, Name: key}
		} else {
			return nil, p.errorf("expected ':' after property name")
		}
		obj.Props = append(obj.Props, prop)

		if p.current.Type == TOKEN_COMMA {
			p.nextToken()
			continue
		}
		if p.current.Type != TOKEN_RBRACE {
			return nil, p.errorf("expected ',' or '}' in object literal, found %s", describe(p.current))
		}
	}
	p.nextToken() // consume '}'
	return obj, nil
}

// parseCallTail parses the member accesses and calls following a primary
// expression. A chain containing ?. is wrapped in a ChainExpr.
func (p *Parser) parseCallTail(expr Expr) (Expr, error) {
	optional := false
	for {
		switch p.current.Type {
		case TOKEN_DOT:
			p.nextToken()
			name, err := p.parsePropertyName()
			if err != nil {
				return nil, err
			}
			expr = &PropertyExpr{Pos: name.Position, Expr: expr, Property: name.Value}

		case TOKEN_OPTCHAIN:
			optional = true
			p.nextToken()
			if p.current.Type == TOKEN_LPAREN {
				pos := p.current.Position
				args, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				expr = &CallExpr{Pos: pos, Callee: expr, Args: args, Optional: true}
				continue
			}
			name, err := p.parsePropertyName()
			if err != nil {
				return nil, err
			}
			expr = &PropertyExpr{Pos: name.Position, Expr: expr, Property: name.Value, Optional: true}

		case TOKEN_LPAREN:
			if p.current.NewlineBefore {
				// a line opening with '(' starts a new statement
				return p.finishChain(expr, optional), nil
			}
			pos := p.current.Position
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			expr = &CallExpr{Pos: pos, Callee: expr, Args: args}

		case TOKEN_LBRACKET:
			return nil, p.errorf("index access is not supported; use .name")

		default:
			return p.finishChain(expr, optional), nil
		}
	}
}

func (p *Parser) finishChain(expr Expr, optional bool) Expr {
	if !optional {
		return expr
	}
	return &ChainExpr{Pos: expr.Position(), Expr: expr}
}

// parsePropertyName accepts identifiers and keywords after '.' or '?.'
func (p *Parser) parsePropertyName() (Token, error) {
	if !isName(p.current) {
		return Token{}, p.errorf("expected property name, found %s", describe(p.current))
	}
	tok := p.current
	p.nextToken()
	return tok, nil
}

// parseArgs parses a parenthesized argument list
func (p *Parser) parseArgs() ([]Expr, error) {
	p.nextToken() // consume '('
	var args []Expr
	for p.current.Type != TOKEN_RPAREN {
		arg, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.current.Type == TOKEN_COMMA {
			p.nextToken()
			continue
		}
		if p.current.Type != TOKEN_RPAREN {
			return nil, p.errorf("expected ',' or ')' in argument list, found %s", describe(p.current))
		}
	}
	p.nextToken() // consume ')'
	return args, nil
}

// isName reports whether a token can serve as a property name
func isName(tok Token) bool {
	if tok.Type == TOKEN_IDENTIFIER {
		return true
	}
	kw, ok := keywords[tok.Value]
	return ok && tok.Type == kw
}

// describe renders a token for error messages
func describe(tok Token) string {
	switch tok.Type {
	case TOKEN_EOF:
		return "end of input"
	case TOKEN_ILLEGAL:
		return tok.Literal
	case TOKEN_IDENTIFIER:
		return fmt.Sprintf("identifier '%s'", tok.Value)
	case TOKEN_STRING, TOKEN_NUMBER:
		return tok.Value
	case TOKEN_TEMPLATE:
		return "template literal"
	}
	return fmt.Sprintf("'%s'", tok.Value)
}
