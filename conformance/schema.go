package conformance

// TestSuite represents a complete YAML test file
type TestSuite struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Options     *TestOptions `yaml:"options,omitempty"` // defaults for every test
	Tests       []TestCase   `yaml:"tests"`
}

// TestOptions mirror the CLI flags
type TestOptions struct {
	Strict       bool  `yaml:"strict,omitempty"`
	LooseRecords bool  `yaml:"loose_records,omitempty"`
	MaxTicks     int64 `yaml:"max_ticks,omitempty"`
}

// TestCase represents a single test within a suite
type TestCase struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Skip        interface{}  `yaml:"skip,omitempty"`      // bool or string
	Code        string       `yaml:"code,omitempty"`      // expression whose value is checked
	Statement   string       `yaml:"statement,omitempty"` // whole script
	Options     *TestOptions `yaml:"options,omitempty"`   // overrides the suite options
	Expect      Expectation  `yaml:"expect"`
}

// Expectation defines what result is expected from a test
type Expectation struct {
	Value        interface{}       `yaml:"value,omitempty"`   // number, string or bool, strict equality
	Printed      string            `yaml:"printed,omitempty"` // console.log rendering of the value
	Type         string            `yaml:"type,omitempty"`    // number, string, undefined, ...
	Output       []string          `yaml:"output,omitempty"`  // console lines, in order
	Diagnostic   *DiagnosticExpect `yaml:"diagnostic,omitempty"`
	RuntimeError *RuntimeExpect    `yaml:"runtime_error,omitempty"`
}

// DiagnosticExpect matches one validation failure
type DiagnosticExpect struct {
	Kind    string `yaml:"kind"`              // type|scope|syntax
	Message string `yaml:"message,omitempty"` // substring
	Line    int    `yaml:"line,omitempty"`
}

// RuntimeExpect matches the exception that ended the script
type RuntimeExpect struct {
	Error   string `yaml:"error"`             // TypeError, ReferenceError, ...
	Message string `yaml:"message,omitempty"` // substring
	Line    int    `yaml:"line,omitempty"`
}

// HasExpectation reports whether the test states any outcome
func (e Expectation) HasExpectation() bool {
	return e.Value != nil || e.Printed != "" || e.Type != "" ||
		e.Output != nil || e.Diagnostic != nil || e.RuntimeError != nil
}

// IsSkipped returns true if this test should be skipped
func (tc *TestCase) IsSkipped() (bool, string) {
	if tc.Skip == nil {
		return false, ""
	}

	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
		return false, ""
	case string:
		return true, v
	default:
		return false, ""
	}
}

// options resolves the effective options for a test
func (tc *TestCase) options(suite TestSuite) TestOptions {
	if tc.Options != nil {
		return *tc.Options
	}
	if suite.Options != nil {
		return *suite.Options
	}
	return TestOptions{}
}
