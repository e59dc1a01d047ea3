package script

import (
	"primer/check"
	"primer/eval"
	"primer/parser"
	"primer/types"
)

// Session evaluates a sequence of entries against one global scope, the
// way an interactive prompt does. An entry that fails to parse or validate
// leaves the session as it was.
type Session struct {
	opts    Options
	checker *check.Checker
	eval    *eval.Evaluator
}

// NewSession creates a session with an empty global scope
func NewSession(opts Options) *Session {
	return &Session{
		opts:    opts,
		checker: check.New(opts.checkOptions()),
		eval:    eval.NewEvaluator(opts.stdout()),
	}
}

// Eval runs one entry and returns the value of its last statement. Each
// entry gets a fresh evaluation budget.
func (s *Session) Eval(src string) (types.Value, error) {
	program, err := parser.NewParser(src).ParseProgram()
	if err != nil {
		return nil, err
	}
	if err := s.checker.Check(program).Err(); err != nil {
		return nil, err
	}
	return s.eval.Run(program, s.opts.newTaskContext())
}

// Names lists the globals visible to the next entry
func (s *Session) Names() []string {
	return s.eval.GetEnvironment().Names()
}
