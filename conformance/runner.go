package conformance

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"primer/check"
	"primer/eval"
	"primer/parser"
	"primer/script"
	"primer/types"
)

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Error      error
}

// Runner executes conformance tests. Every test runs in a fresh global
// scope.
type Runner struct{}

// NewRunner creates a new test runner
func NewRunner() *Runner {
	return &Runner{}
}

// outcome is everything a test can make assertions about
type outcome struct {
	value  types.Value
	output []string
	err    error
}

// Run executes a single test case
func (r *Runner) Run(test LoadedTest) TestResult {
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{
			Test:       test,
			Skipped:    true,
			SkipReason: reason,
		}
	}

	src := test.Test.Statement
	if src == "" {
		src = test.Test.Code
	}
	if src == "" {
		return TestResult{
			Test:       test,
			Skipped:    true,
			SkipReason: "no code/statement",
		}
	}

	o := runScript(test.Test.Name, src, test.Test.options(test.Suite))
	passed, cerr := r.checkExpectation(test.Test, o)
	return TestResult{
		Test:   test,
		Passed: passed,
		Error:  cerr,
	}
}

// runScript validates and evaluates src, capturing console output
func runScript(name, src string, opts TestOptions) outcome {
	var out bytes.Buffer
	v, err := script.Eval(name, src, script.Options{
		Stdout:            &out,
		StrictAssignment:  opts.Strict,
		ExtensibleRecords: opts.LooseRecords,
		MaxTicks:          opts.MaxTicks,
	})
	return outcome{value: v, output: splitLines(out.String()), err: err}
}

// RunAll executes all loaded tests
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))
	for i, test := range tests {
		results[i] = r.Run(test)
	}
	return results
}

// SummaryStats computes statistics from test results
type SummaryStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// ComputeStats generates statistics from test results
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		if r.Skipped {
			stats.Skipped++
		} else if r.Passed {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	return stats
}

// FormatStats returns a human-readable summary
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)",
		stats.Passed, stats.Failed, stats.Skipped, stats.Total)
}

// checkExpectation checks if the outcome matches the expected one
func (r *Runner) checkExpectation(test TestCase, o outcome) (bool, error) {
	expect := test.Expect

	if expect.Diagnostic != nil {
		return checkDiagnostic(*expect.Diagnostic, o.err)
	}
	if expect.RuntimeError != nil {
		if ok, err := checkRuntimeError(*expect.RuntimeError, o.err); !ok {
			return false, err
		}
		// output printed before the exception is still checked
		if expect.Output != nil {
			return checkOutput(expect.Output, o.output)
		}
		return true, nil
	}

	if o.err != nil {
		return false, fmt.Errorf("unexpected error: %v", o.err)
	}

	if expect.Output != nil {
		if ok, err := checkOutput(expect.Output, o.output); !ok {
			return false, err
		}
	}

	if expect.Value != nil {
		expectedVal, err := convertYAMLValue(expect.Value)
		if err != nil {
			return false, fmt.Errorf("failed to convert expected value: %w", err)
		}
		if !expectedVal.Equal(o.value) {
			return false, fmt.Errorf("expected %s, got %s", types.Inspect(expectedVal), types.Inspect(o.value))
		}
	}

	if expect.Printed != "" {
		if got := types.Inspect(o.value); got != expect.Printed {
			return false, fmt.Errorf("expected %s to print, got %s", expect.Printed, got)
		}
	}

	if expect.Type != "" {
		expectedType, ok := types.TypeCodeFromString(expect.Type)
		if !ok {
			return false, fmt.Errorf("unknown type: %s", expect.Type)
		}
		if o.value.Type() != expectedType {
			return false, fmt.Errorf("expected type %s, got %s", expect.Type, o.value.Type())
		}
	}

	if !expect.HasExpectation() {
		return false, fmt.Errorf("no expectation specified")
	}
	return true, nil
}

func checkOutput(want, got []string) (bool, error) {
	if len(want) != len(got) {
		return false, fmt.Errorf("expected %d output lines %q, got %d %q", len(want), want, len(got), got)
	}
	for i := range want {
		if want[i] != got[i] {
			return false, fmt.Errorf("output line %d: expected %q, got %q", i+1, want[i], got[i])
		}
	}
	return true, nil
}

func checkDiagnostic(want DiagnosticExpect, err error) (bool, error) {
	if err == nil {
		return false, fmt.Errorf("expected %s diagnostic, script ran", want.Kind)
	}

	var found []check.Diagnostic
	var diags check.Diagnostics
	var syntax *parser.SyntaxError
	switch {
	case errors.As(err, &diags):
		found = diags
	case errors.As(err, &syntax):
		found = []check.Diagnostic{{Pos: syntax.Pos, Kind: "syntax", Message: syntax.Message}}
	default:
		return false, fmt.Errorf("expected %s diagnostic, got %v", want.Kind, err)
	}

	for _, d := range found {
		if string(d.Kind) != want.Kind || !strings.Contains(d.Message, want.Message) {
			continue
		}
		if want.Line != 0 && d.Pos.Line != want.Line {
			continue
		}
		return true, nil
	}
	return false, fmt.Errorf("no %s diagnostic matching %q at line %d in: %v", want.Kind, want.Message, want.Line, err)
}

func checkRuntimeError(want RuntimeExpect, err error) (bool, error) {
	expectedErr, ok := types.ErrorFromString(want.Error)
	if !ok {
		return false, fmt.Errorf("unknown error class: %s", want.Error)
	}

	var rt *eval.RuntimeError
	if !errors.As(err, &rt) {
		return false, fmt.Errorf("expected %s, got %v", want.Error, err)
	}
	if rt.Code() != expectedErr {
		return false, fmt.Errorf("expected %s, got %s", want.Error, rt.Exc.Error())
	}
	if !strings.Contains(rt.Exc.Message, want.Message) {
		return false, fmt.Errorf("expected message containing %q, got %q", want.Message, rt.Exc.Message)
	}
	if want.Line != 0 && rt.Exc.Line != want.Line {
		return false, fmt.Errorf("expected %s at line %d, got line %d", want.Error, want.Line, rt.Exc.Line)
	}
	return true, nil
}

// convertYAMLValue converts a YAML scalar to a runtime value
func convertYAMLValue(v interface{}) (types.Value, error) {
	switch val := v.(type) {
	case int:
		return types.NewNum(float64(val)), nil
	case int64:
		return types.NewNum(float64(val)), nil
	case float64:
		return types.NewNum(val), nil
	case string:
		return types.NewStr(val), nil
	case bool:
		return types.NewBool(val), nil
	default:
		return nil, fmt.Errorf("unsupported YAML type: %T", v)
	}
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "\n")
}
