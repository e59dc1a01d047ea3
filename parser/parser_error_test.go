package parser

import (
	"errors"
	"testing"
)

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		line  int
		col   int
		msg   string
	}{
		{"let = 1", 1, 5, "expected variable name, found '='"},
		{"let x = ", 1, 9, "unexpected end of input"},
		{"x[0]", 1, 2, "index access is not supported; use .name"},
		{"1 = 2", 1, 3, "invalid assignment target"},
		{"if x {}", 1, 4, "expected '(' after 'if', found identifier 'x'"},
		{"function () {}", 1, 10, "expected function name, found '('"},
		{"const s = `a ${}`", 1, 16, "empty template substitution"},
		{"let a = 'open\nb", 1, 9, "unterminated string literal"},
		{"let a = { b: 1 c: 2 }", 1, 16, "expected ',' or '}' in object literal, found identifier 'c'"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := NewParser(tt.input).ParseProgram()
			if err == nil {
				t.Fatalf("expected error")
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error = %T, want *SyntaxError", err)
			}
			if se.Pos.Line != tt.line || se.Pos.Column != tt.col {
				t.Errorf("position = %d:%d, want %d:%d", se.Pos.Line, se.Pos.Column, tt.line, tt.col)
			}
			if se.Message != tt.msg {
				t.Errorf("message = %q, want %q", se.Message, tt.msg)
			}
		})
	}
}

func TestIsIncomplete(t *testing.T) {
	tests := []struct {
		input      string
		incomplete bool
	}{
		{"function f() {", true},
		{"if (x) {\n  console.log(1)", true},
		{"let user = {", true},
		{"console.log(", true},
		{"let s = `abc ${x}", true},
		{"/* comment", true},
		{"let x = 1 +", true},
		{"let = 1", false},
		{"let s = 'abc", false},
		{"}", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := NewParser(tt.input).ParseProgram()
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := IsIncomplete(err); got != tt.incomplete {
				t.Errorf("IsIncomplete = %v, want %v (err: %v)", got, tt.incomplete, err)
			}
		})
	}
}
