package parser

// TokenType represents different types of lexical tokens
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ILLEGAL

	// Literals
	TOKEN_NUMBER   // 42, 3.14, 1e3
	TOKEN_STRING   // "hello" or 'hello'
	TOKEN_TEMPLATE // `Hello ${name}`

	// Keywords
	TOKEN_CONST
	TOKEN_LET
	TOKEN_FUNCTION
	TOKEN_RETURN
	TOKEN_IF
	TOKEN_ELSE
	TOKEN_TRUE
	TOKEN_FALSE
	TOKEN_NULL
	TOKEN_UNDEFINED
	TOKEN_TYPEOF

	// Identifiers
	TOKEN_IDENTIFIER

	// Operators
	TOKEN_PLUS    // +
	TOKEN_MINUS   // -
	TOKEN_STAR    // *
	TOKEN_SLASH   // /
	TOKEN_PERCENT // %

	TOKEN_STRICT_EQ // ===
	TOKEN_STRICT_NE // !==
	TOKEN_EQ        // ==
	TOKEN_NE        // !=
	TOKEN_LT        // <
	TOKEN_GT        // >
	TOKEN_LE        // <=
	TOKEN_GE        // >=

	TOKEN_AND      // &&
	TOKEN_OR       // ||
	TOKEN_NOT      // !
	TOKEN_NULLISH  // ??
	TOKEN_OPTCHAIN // ?.

	TOKEN_ASSIGN         // =
	TOKEN_PLUS_ASSIGN    // +=
	TOKEN_MINUS_ASSIGN   // -=
	TOKEN_STAR_ASSIGN    // *=
	TOKEN_SLASH_ASSIGN   // /=
	TOKEN_PERCENT_ASSIGN // %=

	TOKEN_QUESTION // ?
	TOKEN_FATARROW // =>
	TOKEN_PIPE     // |

	// Delimiters
	TOKEN_LPAREN    // (
	TOKEN_RPAREN    // )
	TOKEN_LBRACE    // {
	TOKEN_RBRACE    // }
	TOKEN_LBRACKET  // [
	TOKEN_RBRACKET  // ]
	TOKEN_COMMA     // ,
	TOKEN_SEMICOLON // ;
	TOKEN_DOT       // .
	TOKEN_COLON     // :
)

// Position represents a position in the source code
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token represents a lexical token
type Token struct {
	Type     TokenType
	Value    string // Source text of the token
	Literal  string // Decoded string value (for TOKEN_STRING)
	Position Position

	// NewlineBefore is set when a line break separates this token from the
	// previous one; statements may end there without a semicolon.
	NewlineBefore bool

	// Template holds the cooked pieces of a TOKEN_TEMPLATE
	Template *TemplateParts
}

// TemplateParts splits a template literal into its text segments and the
// raw source of each ${...} substitution. len(Quasis) == len(Exprs)+1.
type TemplateParts struct {
	Quasis  []string
	Exprs   []string
	ExprPos []Position
}

var tokenNames = map[TokenType]string{
	TOKEN_EOF:            "EOF",
	TOKEN_ILLEGAL:        "ILLEGAL",
	TOKEN_NUMBER:         "NUMBER",
	TOKEN_STRING:         "STRING",
	TOKEN_TEMPLATE:       "TEMPLATE",
	TOKEN_CONST:          "CONST",
	TOKEN_LET:            "LET",
	TOKEN_FUNCTION:       "FUNCTION",
	TOKEN_RETURN:         "RETURN",
	TOKEN_IF:             "IF",
	TOKEN_ELSE:           "ELSE",
	TOKEN_TRUE:           "TRUE",
	TOKEN_FALSE:          "FALSE",
	TOKEN_NULL:           "NULL",
	TOKEN_UNDEFINED:      "UNDEFINED",
	TOKEN_TYPEOF:         "TYPEOF",
	TOKEN_IDENTIFIER:     "IDENTIFIER",
	TOKEN_PLUS:           "PLUS",
	TOKEN_MINUS:          "MINUS",
	TOKEN_STAR:           "STAR",
	TOKEN_SLASH:          "SLASH",
	TOKEN_PERCENT:        "PERCENT",
	TOKEN_STRICT_EQ:      "STRICT_EQ",
	TOKEN_STRICT_NE:      "STRICT_NE",
	TOKEN_EQ:             "EQ",
	TOKEN_NE:             "NE",
	TOKEN_LT:             "LT",
	TOKEN_GT:             "GT",
	TOKEN_LE:             "LE",
	TOKEN_GE:             "GE",
	TOKEN_AND:            "AND",
	TOKEN_OR:             "OR",
	TOKEN_NOT:            "NOT",
	TOKEN_NULLISH:        "NULLISH",
	TOKEN_OPTCHAIN:       "OPTCHAIN",
	TOKEN_ASSIGN:         "ASSIGN",
	TOKEN_PLUS_ASSIGN:    "PLUS_ASSIGN",
	TOKEN_MINUS_ASSIGN:   "MINUS_ASSIGN",
	TOKEN_STAR_ASSIGN:    "STAR_ASSIGN",
	TOKEN_SLASH_ASSIGN:   "SLASH_ASSIGN",
	TOKEN_PERCENT_ASSIGN: "PERCENT_ASSIGN",
	TOKEN_QUESTION:       "QUESTION",
	TOKEN_FATARROW:       "FATARROW",
	TOKEN_PIPE:           "PIPE",
	TOKEN_LPAREN:         "LPAREN",
	TOKEN_RPAREN:         "RPAREN",
	TOKEN_LBRACE:         "LBRACE",
	TOKEN_RBRACE:         "RBRACE",
	TOKEN_LBRACKET:       "LBRACKET",
	TOKEN_RBRACKET:       "RBRACKET",
	TOKEN_COMMA:          "COMMA",
	TOKEN_SEMICOLON:      "SEMICOLON",
	TOKEN_DOT:            "DOT",
	TOKEN_COLON:          "COLON",
}

// String returns a string representation of the token type
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Symbol returns the source spelling of an operator token, used in messages
func (t TokenType) Symbol() string {
	if s, ok := operatorSymbols[t]; ok {
		return s
	}
	return t.String()
}

var operatorSymbols = map[TokenType]string{
	TOKEN_PLUS:           "+",
	TOKEN_MINUS:          "-",
	TOKEN_STAR:           "*",
	TOKEN_SLASH:          "/",
	TOKEN_PERCENT:        "%",
	TOKEN_STRICT_EQ:      "===",
	TOKEN_STRICT_NE:      "!==",
	TOKEN_EQ:             "==",
	TOKEN_NE:             "!=",
	TOKEN_LT:             "<",
	TOKEN_GT:             ">",
	TOKEN_LE:             "<=",
	TOKEN_GE:             ">=",
	TOKEN_AND:            "&&",
	TOKEN_OR:             "||",
	TOKEN_NOT:            "!",
	TOKEN_NULLISH:        "??",
	TOKEN_ASSIGN:         "=",
	TOKEN_PLUS_ASSIGN:    "+=",
	TOKEN_MINUS_ASSIGN:   "-=",
	TOKEN_STAR_ASSIGN:    "*=",
	TOKEN_SLASH_ASSIGN:   "/=",
	TOKEN_PERCENT_ASSIGN: "%=",
	TOKEN_TYPEOF:         "typeof",
}

// Keywords maps keyword strings to their token types
var keywords = map[string]TokenType{
	"const":     TOKEN_CONST,
	"let":       TOKEN_LET,
	"function":  TOKEN_FUNCTION,
	"return":    TOKEN_RETURN,
	"if":        TOKEN_IF,
	"else":      TOKEN_ELSE,
	"true":      TOKEN_TRUE,
	"false":     TOKEN_FALSE,
	"null":      TOKEN_NULL,
	"undefined": TOKEN_UNDEFINED,
	"typeof":    TOKEN_TYPEOF,
}

// LookupKeyword checks if an identifier is a keyword
func LookupKeyword(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TOKEN_IDENTIFIER
}

// CompoundBase maps a compound assignment to its arithmetic operator
func CompoundBase(t TokenType) (TokenType, bool) {
	switch t {
	case TOKEN_PLUS_ASSIGN:
		return TOKEN_PLUS, true
	case TOKEN_MINUS_ASSIGN:
		return TOKEN_MINUS, true
	case TOKEN_STAR_ASSIGN:
		return TOKEN_STAR, true
	case TOKEN_SLASH_ASSIGN:
		return TOKEN_SLASH, true
	case TOKEN_PERCENT_ASSIGN:
		return TOKEN_PERCENT, true
	}
	return t, false
}
