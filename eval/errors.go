package eval

import (
	"fmt"
	"strings"

	"primer/types"
)

// Frame is one active function call
type Frame struct {
	Function string
	Line     int // line of the statement being executed
}

// RuntimeError is an exception that escaped the script
type RuntimeError struct {
	Exc   *types.Exception
	Stack []Frame // innermost last, as it was when the exception was raised
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Exc.Line, e.Exc.Column, e.Exc.Error())
}

// Code returns the exception class
func (e *RuntimeError) Code() types.ErrorCode {
	return e.Exc.Code
}

// Traceback formats the exception and its call stack:
//
//	TypeError: Cannot read properties of undefined (reading 'name')
//	    at show (line 3)
//	    at <script> (line 6)
func (e *RuntimeError) Traceback() []string {
	lines := []string{e.Exc.Error()}
	for i := len(e.Stack) - 1; i >= 0; i-- {
		frame := e.Stack[i]
		lines = append(lines, fmt.Sprintf("    at %s (line %d)", frame.Function, frame.Line))
	}
	return lines
}

// TracebackString returns the traceback as a single string with newlines
func (e *RuntimeError) TracebackString() string {
	return strings.Join(e.Traceback(), "\n")
}
