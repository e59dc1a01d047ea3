package types

import (
	"strings"
)

// StrValue represents a string
type StrValue struct {
	val string
}

// NewStr creates a new string value
func NewStr(s string) StrValue {
	return StrValue{val: s}
}

// String returns the raw text; templates and console output use it unquoted
func (s StrValue) String() string {
	return s.val
}

// Quoted returns the single-quoted form used when a string is nested
// inside an inspected record
func (s StrValue) Quoted() string {
	var result strings.Builder
	result.WriteByte('\'')
	for _, r := range s.val {
		switch r {
		case '\'':
			result.WriteString("\\'")
		case '\\':
			result.WriteString("\\\\")
		case '\n':
			result.WriteString("\\n")
		case '\t':
			result.WriteString("\\t")
		case '\r':
			result.WriteString("\\r")
		default:
			result.WriteRune(r)
		}
	}
	result.WriteByte('\'')
	return result.String()
}

// Type returns the type code
func (s StrValue) Type() TypeCode {
	return TYPE_STR
}

// Truthy returns whether the value is truthy
// Empty strings are falsy, non-empty strings are truthy
func (s StrValue) Truthy() bool {
	return len(s.val) > 0
}

// Equal compares two values for strict equality (case-sensitive)
func (s StrValue) Equal(other Value) bool {
	if o, ok := other.(StrValue); ok {
		return s.val == o.val
	}
	return false
}

// Value returns the internal string value
func (s StrValue) Value() string {
	return s.val
}

// Len returns the length in UTF-16 code units, matching the .length property
func (s StrValue) Len() int {
	n := 0
	for _, r := range s.val {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
