package parser

// parseFunction parses `function name(params): T { body }`. Declarations
// require a name; function expressions may omit it.
func (p *Parser) parseFunction(requireName bool) (*FuncExpr, error) {
	fn := &FuncExpr{Pos: p.current.Position}
	p.nextToken() // consume 'function'

	if p.current.Type == TOKEN_IDENTIFIER {
		fn.Name = p.current.Value
		p.nextToken()
	} else if requireName {
		return nil, p.errorf("expected function name, found %s", describe(p.current))
	}

	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	fn.Params = params

	if p.current.Type == TOKEN_COLON {
		p.nextToken()
		if fn.Result, err = p.parseType(); err != nil {
			return nil, err
		}
	}

	if p.current.Type != TOKEN_LBRACE {
		return nil, p.errorf("expected '{' before function body, found %s", describe(p.current))
	}
	if fn.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	if fn.Body == nil {
		fn.Body = []Stmt{}
	}
	return fn, nil
}

// parseArrowFromIdent parses `x => body`
func (p *Parser) parseArrowFromIdent() (Expr, error) {
	tok := p.current
	p.nextToken() // consume name
	p.nextToken() // consume '=>'
	fn := &FuncExpr{
		Pos:    tok.Position,
		Params: []*Param{{Pos: tok.Position, Name: tok.Value}},
		Arrow:  true,
	}
	return p.parseArrowBody(fn)
}

// tryParseArrow attempts `(params): T => body` at a '('. When the tokens
// do not form an arrow-function header it rewinds and returns nil, nil so
// the caller can parse a parenthesized expression instead.
func (p *Parser) tryParseArrow() (Expr, error) {
	start := p.index
	pos := p.current.Position

	params, err := p.parseParamList()
	if err != nil {
		p.reset(start)
		return nil, nil
	}

	fn := &FuncExpr{Pos: pos, Params: params, Arrow: true}
	if p.current.Type == TOKEN_COLON {
		p.nextToken()
		result, err := p.parseType()
		if err != nil {
			p.reset(start)
			return nil, nil
		}
		fn.Result = result
	}
	if p.current.Type != TOKEN_FATARROW {
		p.reset(start)
		return nil, nil
	}
	p.nextToken() // consume '=>'
	return p.parseArrowBody(fn)
}

// parseArrowBody parses either a block body or a single expression
func (p *Parser) parseArrowBody(fn *FuncExpr) (Expr, error) {
	if p.current.Type == TOKEN_LBRACE {
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		if body == nil {
			body = []Stmt{}
		}
		fn.Body = body
		return fn, nil
	}
	body, err := p.ParseExpression(PREC_LOWEST)
	if err != nil {
		return nil, err
	}
	fn.ExprBody = body
	return fn, nil
}

// parseParamList parses (a: T, b?: U, c)
func (p *Parser) parseParamList() ([]*Param, error) {
	if _, err := p.expect(TOKEN_LPAREN, "'('"); err != nil {
		return nil, err
	}
	params := []*Param{}
	for p.current.Type != TOKEN_RPAREN {
		if p.current.Type != TOKEN_IDENTIFIER {
			return nil, p.errorf("expected parameter name, found %s", describe(p.current))
		}
		param := &Param{Pos: p.current.Position, Name: p.current.Value}
		p.nextToken()
		if p.current.Type == TOKEN_QUESTION {
			param.Optional = true
			p.nextToken()
		}
		if p.current.Type == TOKEN_COLON {
			p.nextToken()
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			param.Type = t
		}
		params = append(params, param)

		if p.current.Type == TOKEN_COMMA {
			p.nextToken()
			continue
		}
		if p.current.Type != TOKEN_RPAREN {
			return nil, p.errorf("expected ',' or ')' in parameter list, found %s", describe(p.current))
		}
	}
	p.nextToken() // consume ')'
	return params, nil
}

// parseType parses a type annotation: a union of primary types
func (p *Parser) parseType() (TypeExpr, error) {
	pos := p.current.Position
	if p.current.Type == TOKEN_PIPE {
		p.nextToken() // leading | is allowed
	}
	first, err := p.parsePrimaryType()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TOKEN_PIPE {
		return first, nil
	}

	union := &UnionType{Pos: pos, Members: []TypeExpr{first}}
	for p.current.Type == TOKEN_PIPE {
		p.nextToken()
		member, err := p.parsePrimaryType()
		if err != nil {
			return nil, err
		}
		union.Members = append(union.Members, member)
	}
	return union, nil
}

func (p *Parser) parsePrimaryType() (TypeExpr, error) {
	tok := p.current
	switch tok.Type {
	case TOKEN_IDENTIFIER, TOKEN_NULL, TOKEN_UNDEFINED:
		p.nextToken()
		return &NamedType{Pos: tok.Position, Name: tok.Value}, nil
	case TOKEN_LBRACE:
		return p.parseObjectType()
	case TOKEN_LPAREN:
		start := p.index
		if params, err := p.parseParamList(); err == nil && p.current.Type == TOKEN_FATARROW {
			p.nextToken()
			result, err := p.parseType()
			if err != nil {
				return nil, err
			}
			return &FuncType{Pos: tok.Position, Params: params, Result: result}, nil
		}
		p.reset(start)
		p.nextToken() // consume '('
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TOKEN_RPAREN, "')' in type"); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.errorf("expected type, found %s", describe(tok))
	}
}

// parseObjectType parses { name: T; other?: U }; members may be separated
// by ';', ',' or line breaks
func (p *Parser) parseObjectType() (TypeExpr, error) {
	obj := &ObjectType{Pos: p.current.Position}
	p.nextToken() // consume '{'

	for p.current.Type != TOKEN_RBRACE {
		if !isName(p.current) && p.current.Type != TOKEN_STRING {
			return nil, p.errorf("expected property name in type, found %s", describe(p.current))
		}
		field := &FieldType{Pos: p.current.Position, Name: p.current.Value}
		if p.current.Type == TOKEN_STRING {
			field.Name = p.current.Literal
		}
		p.nextToken()
		if p.current.Type == TOKEN_QUESTION {
			field.Optional = true
			p.nextToken()
		}
		if _, err := p.expect(TOKEN_COLON, "':' after property name in type"); err != nil {
			return nil, err
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		field.Type = t
		obj.Fields = append(obj.Fields, field)

		switch {
		case p.current.Type == TOKEN_SEMICOLON || p.current.Type == TOKEN_COMMA:
			p.nextToken()
		case p.current.Type == TOKEN_RBRACE || p.current.NewlineBefore:
		default:
			return nil, p.errorf("expected ';' or '}' in object type, found %s", describe(p.current))
		}
	}
	p.nextToken() // consume '}'
	return obj, nil
}
