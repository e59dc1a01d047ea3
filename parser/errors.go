package parser

import (
	"errors"
	"fmt"
)

// SyntaxError is returned for source that does not parse
type SyntaxError struct {
	Pos     Position
	Message string

	// Incomplete is set when the input ended before the construct did,
	// so more input could still make it valid (used by the REPL).
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: syntax error: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// IsIncomplete reports whether err is a syntax error caused by input
// ending too early
func IsIncomplete(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se) && se.Incomplete
}

// errorf builds a syntax error at the current token
func (p *Parser) errorf(format string, args ...interface{}) *SyntaxError {
	tok := p.current
	incomplete := tok.Type == TOKEN_EOF
	if tok.Type == TOKEN_ILLEGAL {
		switch tok.Literal {
		case "unterminated template literal", "unterminated comment":
			incomplete = true
		}
	}
	return &SyntaxError{
		Pos:        tok.Position,
		Message:    fmt.Sprintf(format, args...),
		Incomplete: incomplete,
	}
}
