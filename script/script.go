// Package script runs lesson scripts: it parses the source, validates the
// whole program and only then evaluates it.
package script

import (
	"fmt"
	"io"
	"os"

	"primer/check"
	"primer/eval"
	"primer/parser"
	"primer/types"
)

// Options configures validation and evaluation
type Options struct {
	// Stdout receives console output; nil means os.Stdout
	Stdout io.Writer

	StrictAssignment  bool
	ExtensibleRecords bool

	// MaxTicks bounds the number of evaluation steps and MaxDepth the call
	// depth; zero selects the defaults
	MaxTicks int64
	MaxDepth int
}

func (o Options) stdout() io.Writer {
	if o.Stdout == nil {
		return os.Stdout
	}
	return o.Stdout
}

func (o Options) checkOptions() check.Options {
	return check.Options{
		StrictAssignment:  o.StrictAssignment,
		ExtensibleRecords: o.ExtensibleRecords,
	}
}

func (o Options) newTaskContext() *types.TaskContext {
	ctx := types.NewTaskContext()
	if o.MaxTicks > 0 {
		ctx.TicksRemaining = o.MaxTicks
	}
	if o.MaxDepth > 0 {
		ctx.MaxDepth = o.MaxDepth
	}
	return ctx
}

// Parse parses a script. Errors are prefixed with name.
func Parse(name, src string) ([]parser.Stmt, error) {
	program, err := parser.NewParser(src).ParseProgram()
	if err != nil {
		return nil, fmt.Errorf("%s:%w", name, err)
	}
	return program, nil
}

// Check parses and validates a script without running it. Validation
// failures are returned as check.Diagnostics.
func Check(name, src string, opts Options) ([]parser.Stmt, error) {
	program, err := Parse(name, src)
	if err != nil {
		return nil, err
	}
	if diags := check.Check(program, opts.checkOptions()); len(diags) > 0 {
		return nil, fmt.Errorf("%s:%w", name, diags)
	}
	return program, nil
}

// Run parses, validates and evaluates a script. Nothing executes unless
// the whole script is valid. An exception escaping the script is returned
// as an *eval.RuntimeError.
func Run(name, src string, opts Options) error {
	_, err := Eval(name, src, opts)
	return err
}

// Eval is Run returning the value of the script's last statement
func Eval(name, src string, opts Options) (types.Value, error) {
	program, err := Check(name, src, opts)
	if err != nil {
		return nil, err
	}
	v, err := eval.NewEvaluator(opts.stdout()).Run(program, opts.newTaskContext())
	if err != nil {
		return nil, fmt.Errorf("%s:%w", name, err)
	}
	return v, nil
}
