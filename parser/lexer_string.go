package parser

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

// readEscape decodes the escape sequence after a backslash into result.
// The lexer is positioned on the character after the backslash. A
// malformed hex or unicode escape returns a non-empty message.
func (l *Lexer) readEscape(result *strings.Builder) string {
	switch l.ch {
	case 'n':
		result.WriteByte('\n')
	case 't':
		result.WriteByte('\t')
	case 'r':
		result.WriteByte('\r')
	case 'b':
		result.WriteByte('\b')
	case 'f':
		result.WriteByte('\f')
	case 'v':
		result.WriteByte('\v')
	case '0':
		result.WriteByte(0)
	case 'x':
		code, ok := l.readHex(2)
		if !ok {
			l.readChar()
			return "invalid hexadecimal escape sequence"
		}
		result.WriteRune(rune(code))
	case 'u':
		code, msg := l.readUnicodeEscape()
		if msg != "" {
			l.readChar()
			return msg
		}
		result.WriteRune(code)
	case '\r':
		// line continuation, \r\n counts as one break
		if l.peekChar() == '\n' {
			l.readChar()
		}
	case '\n':
		// line continuation
	default:
		// \" \' \\ \` \$ and unknown escapes keep the character
		result.WriteByte(l.ch)
	}
	l.readChar()
	return ""
}

// readHex consumes n hex digits following the current character and
// leaves the lexer on the last of them
func (l *Lexer) readHex(n int) (uint64, bool) {
	if l.readPosition+n > len(l.input) {
		return 0, false
	}
	digits := l.input[l.readPosition : l.readPosition+n]
	for i := 0; i < n; i++ {
		if !isHexDigit(digits[i]) {
			return 0, false
		}
	}
	code, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, false
	}
	for i := 0; i < n; i++ {
		l.readChar()
	}
	return code, true
}

// readUnicodeEscape decodes \uXXXX, a \uXXXX\uXXXX surrogate pair, or
// \u{X...}. The lexer is on the 'u'.
func (l *Lexer) readUnicodeEscape() (rune, string) {
	if l.peekChar() == '{' {
		rest := l.input[l.readPosition+1:]
		end := strings.IndexByte(rest, '}')
		if end <= 0 {
			return 0, "invalid Unicode escape sequence"
		}
		for i := 0; i < end; i++ {
			if !isHexDigit(rest[i]) {
				return 0, "invalid Unicode escape sequence"
			}
		}
		code, err := strconv.ParseUint(rest[:end], 16, 32)
		if err != nil || code > unicode.MaxRune {
			return 0, "undefined Unicode code-point"
		}
		// '{', the digits, then '}'
		for i := 0; i < end+2; i++ {
			l.readChar()
		}
		return rune(code), ""
	}

	code, ok := l.readHex(4)
	if !ok {
		return 0, "invalid Unicode escape sequence"
	}
	r := rune(code)
	if utf16.IsSurrogate(r) {
		rest := l.input[l.readPosition:]
		if len(rest) >= 6 && rest[0] == '\\' && rest[1] == 'u' {
			if lo, err := strconv.ParseUint(rest[2:6], 16, 32); err == nil {
				if pair := utf16.DecodeRune(r, rune(lo)); pair != unicode.ReplacementChar {
					for i := 0; i < 6; i++ {
						l.readChar()
					}
					return pair, ""
				}
			}
		}
	}
	// a lone surrogate has no UTF-8 form and becomes U+FFFD
	return r, ""
}

func isHexDigit(ch byte) bool {
	return '0' <= ch && ch <= '9' || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

// readString reads a single- or double-quoted string literal
func (l *Lexer) readString(tok Token) Token {
	tok.Type = TOKEN_STRING

	quote := l.ch
	start := l.position
	l.readChar() // skip opening quote

	var result strings.Builder
	var bad string
	for l.ch != quote {
		if l.atEOF() || l.ch == '\n' {
			tok.Type = TOKEN_ILLEGAL
			tok.Value = l.input[start:l.position]
			tok.Literal = "unterminated string literal"
			return tok
		}
		if l.ch == '\\' {
			l.readChar() // skip backslash
			if msg := l.readEscape(&result); msg != "" && bad == "" {
				bad = msg
			}
			continue
		}
		result.WriteByte(l.ch)
		l.readChar()
	}
	l.readChar() // skip closing quote

	tok.Value = l.input[start:l.position] // Store the full quoted string
	tok.Literal = result.String()         // Store the decoded value
	if bad != "" {
		tok.Type = TOKEN_ILLEGAL
		tok.Literal = bad
	}
	return tok
}

// readTemplate reads a backtick template literal. Text segments are
// decoded; each ${...} substitution is kept as raw source to be parsed
// as an expression later.
func (l *Lexer) readTemplate(tok Token) Token {
	tok.Type = TOKEN_TEMPLATE

	start := l.position
	l.readChar() // skip opening backtick

	parts := &TemplateParts{}
	var quasi strings.Builder
	var bad string
	for l.ch != '`' {
		if l.atEOF() {
			return l.unterminatedTemplate(tok, start)
		}
		switch {
		case l.ch == '\\':
			l.readChar()
			if msg := l.readEscape(&quasi); msg != "" && bad == "" {
				bad = msg
			}
		case l.ch == '$' && l.peekChar() == '{':
			l.readChar()
			l.readChar()
			exprPos := l.pos()
			exprStart := l.position
			if !l.skipSubstitution() {
				return l.unterminatedTemplate(tok, start)
			}
			parts.Quasis = append(parts.Quasis, quasi.String())
			parts.Exprs = append(parts.Exprs, l.input[exprStart:l.position])
			parts.ExprPos = append(parts.ExprPos, exprPos)
			quasi.Reset()
			l.readChar() // skip closing brace
		default:
			quasi.WriteByte(l.ch)
			l.readChar()
		}
	}
	l.readChar() // skip closing backtick

	parts.Quasis = append(parts.Quasis, quasi.String())
	tok.Value = l.input[start:l.position]
	if bad != "" {
		tok.Type = TOKEN_ILLEGAL
		tok.Literal = bad
		return tok
	}
	tok.Template = parts
	return tok
}

func (l *Lexer) unterminatedTemplate(tok Token, start int) Token {
	tok.Type = TOKEN_ILLEGAL
	tok.Value = l.input[start:l.position]
	tok.Literal = "unterminated template literal"
	return tok
}

// skipSubstitution advances to the '}' closing a ${ substitution,
// stepping over nested braces, strings and templates. It reports false
// when the input ends first.
func (l *Lexer) skipSubstitution() bool {
	depth := 0
	for !l.atEOF() {
		switch l.ch {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return true
			}
			depth--
		case '"', '\'':
			if t := l.readString(Token{}); t.Type == TOKEN_ILLEGAL {
				return false
			}
			continue
		case '`':
			if t := l.readTemplate(Token{}); t.Type == TOKEN_ILLEGAL {
				return false
			}
			continue
		}
		l.readChar()
	}
	return false
}
