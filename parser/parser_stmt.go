package parser

// ParseProgram parses a complete script (sequence of statements)
func (p *Parser) ParseProgram() ([]Stmt, error) {
	statements := []Stmt{}

	for p.current.Type != TOKEN_EOF {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}

	return statements, nil
}

// parseStatement parses a single statement
func (p *Parser) parseStatement() (Stmt, error) {
	switch p.current.Type {
	case TOKEN_CONST, TOKEN_LET:
		return p.parseVarDecl()
	case TOKEN_FUNCTION:
		return p.parseFuncDecl()
	case TOKEN_IF:
		return p.parseIfStatement()
	case TOKEN_RETURN:
		return p.parseReturnStatement()
	case TOKEN_LBRACE:
		pos := p.current.Position
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{Pos: pos, Body: body}, nil
	case TOKEN_SEMICOLON:
		// Empty statement
		pos := p.current.Position
		p.nextToken()
		return &ExprStmt{Pos: pos, Expr: nil}, nil
	default:
		return p.parseExpressionStatement()
	}
}

// parseVarDecl parses const/let declarations
func (p *Parser) parseVarDecl() (Stmt, error) {
	decl := &VarDecl{Pos: p.current.Position, Kind: DeclLet}
	if p.current.Type == TOKEN_CONST {
		decl.Kind = DeclConst
	}
	p.nextToken() // consume 'const' / 'let'

	name, err := p.expect(TOKEN_IDENTIFIER, "variable name")
	if err != nil {
		return nil, err
	}
	decl.Name = name.Value

	if p.current.Type == TOKEN_COLON {
		p.nextToken()
		if decl.Type, err = p.parseType(); err != nil {
			return nil, err
		}
	}

	if p.current.Type == TOKEN_ASSIGN {
		p.nextToken()
		if decl.Init, err = p.ParseExpression(PREC_LOWEST); err != nil {
			return nil, err
		}
	} else if decl.Kind == DeclConst {
		return nil, p.errorf("'const' declarations must be initialized")
	}

	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseFuncDecl parses a named function declaration
func (p *Parser) parseFuncDecl() (Stmt, error) {
	pos := p.current.Position
	fn, err := p.parseFunction(true)
	if err != nil {
		return nil, err
	}
	return &FuncDecl{Pos: pos, Func: fn}, nil
}

// parseIfStatement parses if / else if / else
func (p *Parser) parseIfStatement() (Stmt, error) {
	pos := p.current.Position
	p.nextToken() // consume 'if'

	condition, err := p.parseCondition("if")
	if err != nil {
		return nil, err
	}
	body, err := p.parseClauseBody()
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{Pos: pos, Condition: condition, Body: body}

	for p.current.Type == TOKEN_ELSE {
		elsePos := p.current.Position
		p.nextToken() // consume 'else'

		if p.current.Type == TOKEN_IF {
			p.nextToken() // consume 'if'
			cond, err := p.parseCondition("else if")
			if err != nil {
				return nil, err
			}
			body, err := p.parseClauseBody()
			if err != nil {
				return nil, err
			}
			stmt.ElseIfs = append(stmt.ElseIfs, &ElseIfClause{Pos: elsePos, Condition: cond, Body: body})
			continue
		}

		elseBody, err := p.parseClauseBody()
		if err != nil {
			return nil, err
		}
		stmt.Else = elseBody
		break
	}

	return stmt, nil
}

// parseCondition parses the parenthesized condition of an if
func (p *Parser) parseCondition(keyword string) (Expr, error) {
	if _, err := p.expect(TOKEN_LPAREN, "'(' after '"+keyword+"'"); err != nil {
		return nil, err
	}
	cond, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TOKEN_RPAREN, "')' after condition"); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseClauseBody parses the body of an if/else clause. A braced block is
// the usual form; a single statement is accepted and wrapped. The result
// is never nil so an empty else can be told apart from a missing one.
func (p *Parser) parseClauseBody() ([]Stmt, error) {
	if p.current.Type == TOKEN_LBRACE {
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		if body == nil {
			body = []Stmt{}
		}
		return body, nil
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, ok := stmt.(*VarDecl); ok {
		return nil, &SyntaxError{Pos: stmt.Position(), Message: "declarations are not allowed here; wrap them in a block"}
	}
	return []Stmt{stmt}, nil
}

// parseBlock parses { statements }
func (p *Parser) parseBlock() ([]Stmt, error) {
	p.nextToken() // consume '{'

	var body []Stmt
	for p.current.Type != TOKEN_RBRACE {
		if p.current.Type == TOKEN_EOF {
			return nil, p.errorf("expected '}', found end of input")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	p.nextToken() // consume '}'
	return body, nil
}

// parseReturnStatement parses return [expr]. A line break right after
// `return` ends the statement.
func (p *Parser) parseReturnStatement() (Stmt, error) {
	pos := p.current.Position
	p.nextToken() // consume 'return'

	stmt := &ReturnStmt{Pos: pos}
	if !p.atStatementEnd() {
		value, err := p.ParseExpression(PREC_LOWEST)
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}

	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseExpressionStatement parses an expression used as a statement
func (p *Parser) parseExpressionStatement() (Stmt, error) {
	pos := p.current.Position

	expr, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}

	if err := p.endStatement(); err != nil {
		return nil, err
	}
	return &ExprStmt{Pos: pos, Expr: expr}, nil
}

// atStatementEnd reports whether the current token may end a statement
// without consuming anything
func (p *Parser) atStatementEnd() bool {
	switch p.current.Type {
	case TOKEN_SEMICOLON, TOKEN_RBRACE, TOKEN_EOF:
		return true
	}
	return p.current.NewlineBefore
}

// endStatement consumes an optional ';'. Without one the statement must be
// followed by a line break, a '}' or the end of input.
func (p *Parser) endStatement() error {
	if p.current.Type == TOKEN_SEMICOLON {
		p.nextToken()
		return nil
	}
	if p.atStatementEnd() {
		return nil
	}
	return p.errorf("expected ';' or line break, found %s", describe(p.current))
}
