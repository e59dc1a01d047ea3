package parser

// Lexer tokenizes lesson source code
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
	line         int
	column       int
	base         int // offset of input within the enclosing source

	sawNewline bool // a line break was skipped before the current token
}

// NewLexer creates a new Lexer instance
func NewLexer(input string) *Lexer {
	return newLexerAt(input, Position{Line: 1, Column: 1})
}

// newLexerAt creates a lexer whose first character sits at pos; template
// substitutions are lexed this way so their positions point into the
// enclosing script.
func newLexerAt(input string, pos Position) *Lexer {
	l := &Lexer{
		input:  input,
		line:   pos.Line,
		column: pos.Column - 1,
		base:   pos.Offset,
	}
	l.readChar()
	return l
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NUL
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++
}

// peekChar returns the next character without advancing
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

func (l *Lexer) pos() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.base + l.position}
}

// skipTrivia skips whitespace and both comment forms, remembering whether
// a line break was crossed. It returns a non-empty message for an
// unterminated block comment.
func (l *Lexer) skipTrivia() string {
	for {
		switch {
		case l.ch == '\n':
			l.sawNewline = true
			l.readChar()
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && !l.atEOF() {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for !(l.ch == '*' && l.peekChar() == '/') {
				if l.atEOF() {
					return "unterminated comment"
				}
				if l.ch == '\n' {
					l.sawNewline = true
				}
				l.readChar()
			}
			l.readChar()
			l.readChar()
		default:
			return ""
		}
	}
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	var tok Token

	l.sawNewline = false
	if msg := l.skipTrivia(); msg != "" {
		return Token{Type: TOKEN_ILLEGAL, Literal: msg, Position: l.pos(), NewlineBefore: l.sawNewline}
	}

	tok.Position = l.pos()
	tok.NewlineBefore = l.sawNewline

	single := func(t TokenType) {
		tok.Type = t
		tok.Value = string(l.ch)
		l.readChar()
	}
	withAssign := func(plain, assign TokenType) {
		if l.peekChar() == '=' {
			tok.Type = assign
			tok.Value = l.input[l.position : l.position+2]
			l.readChar()
			l.readChar()
			return
		}
		single(plain)
	}
	take := func(t TokenType, n int) {
		tok.Type = t
		tok.Value = l.input[l.position : l.position+n]
		for i := 0; i < n; i++ {
			l.readChar()
		}
	}

	switch l.ch {
	case 0:
		if l.atEOF() {
			tok.Type = TOKEN_EOF
			return tok
		}
		single(TOKEN_ILLEGAL)
		tok.Literal = "unexpected NUL character"
	case '(':
		single(TOKEN_LPAREN)
	case ')':
		single(TOKEN_RPAREN)
	case '{':
		single(TOKEN_LBRACE)
	case '}':
		single(TOKEN_RBRACE)
	case '[':
		single(TOKEN_LBRACKET)
	case ']':
		single(TOKEN_RBRACKET)
	case ',':
		single(TOKEN_COMMA)
	case ';':
		single(TOKEN_SEMICOLON)
	case ':':
		single(TOKEN_COLON)
	case '+':
		withAssign(TOKEN_PLUS, TOKEN_PLUS_ASSIGN)
	case '-':
		withAssign(TOKEN_MINUS, TOKEN_MINUS_ASSIGN)
	case '*':
		withAssign(TOKEN_STAR, TOKEN_STAR_ASSIGN)
	case '/':
		withAssign(TOKEN_SLASH, TOKEN_SLASH_ASSIGN)
	case '%':
		withAssign(TOKEN_PERCENT, TOKEN_PERCENT_ASSIGN)
	case '<':
		withAssign(TOKEN_LT, TOKEN_LE)
	case '>':
		withAssign(TOKEN_GT, TOKEN_GE)
	case '=':
		switch {
		case l.peekChar() == '=' && l.peekAt(2) == '=':
			take(TOKEN_STRICT_EQ, 3)
		case l.peekChar() == '=':
			take(TOKEN_EQ, 2)
		case l.peekChar() == '>':
			take(TOKEN_FATARROW, 2)
		default:
			single(TOKEN_ASSIGN)
		}
	case '!':
		switch {
		case l.peekChar() == '=' && l.peekAt(2) == '=':
			take(TOKEN_STRICT_NE, 3)
		case l.peekChar() == '=':
			take(TOKEN_NE, 2)
		default:
			single(TOKEN_NOT)
		}
	case '&':
		if l.peekChar() == '&' {
			take(TOKEN_AND, 2)
		} else {
			single(TOKEN_ILLEGAL)
			tok.Literal = "unexpected character '&'"
		}
	case '|':
		if l.peekChar() == '|' {
			take(TOKEN_OR, 2)
		} else {
			single(TOKEN_PIPE)
		}
	case '?':
		switch {
		case l.peekChar() == '?':
			take(TOKEN_NULLISH, 2)
		case l.peekChar() == '.' && !isDigit(l.peekAt(2)):
			// a?.5:b is a ternary, not a chain
			take(TOKEN_OPTCHAIN, 2)
		default:
			single(TOKEN_QUESTION)
		}
	case '.':
		if isDigit(l.peekChar()) {
			return l.readNumber(tok)
		}
		single(TOKEN_DOT)
	case '"', '\'':
		return l.readString(tok)
	case '`':
		return l.readTemplate(tok)
	default:
		if isLetter(l.ch) {
			start := l.position
			for isLetter(l.ch) || isDigit(l.ch) {
				l.readChar()
			}
			tok.Value = l.input[start:l.position]
			tok.Type = LookupKeyword(tok.Value)
			return tok
		}
		if isDigit(l.ch) {
			return l.readNumber(tok)
		}
		single(TOKEN_ILLEGAL)
		tok.Literal = "unexpected character '" + tok.Value + "'"
	}

	return tok
}

// peekAt returns the character n positions ahead of the current one
func (l *Lexer) peekAt(n int) byte {
	i := l.position + n
	if i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

// readNumber reads a decimal number with optional fraction and exponent
func (l *Lexer) readNumber(tok Token) Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || (next == '+' || next == '-') && isDigit(l.peekAt(2)) {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	tok.Type = TOKEN_NUMBER
	tok.Value = l.input[start:l.position]
	if isLetter(l.ch) {
		for isLetter(l.ch) || isDigit(l.ch) {
			l.readChar()
		}
		tok.Type = TOKEN_ILLEGAL
		tok.Value = l.input[start:l.position]
		tok.Literal = "identifier starts immediately after numeric literal"
	}
	return tok
}

// Tokenize lexes the whole input, ending with a single EOF token
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TOKEN_EOF {
			return tokens
		}
	}
}

// isLetter returns true if the character may start an identifier.
// Bytes above ASCII are accepted so UTF-8 identifiers lex as one token.
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch == '$' || ch >= 0x80
}

// isDigit returns true if the character is a digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
