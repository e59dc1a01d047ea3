package script

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"primer/check"
	"primer/eval"
	"primer/parser"
	"primer/types"
)

func TestRunOutput(t *testing.T) {
	src := `function getGreeting(name: string): string {
  return ` + "`Hello, ${name}!`" + `
}
console.log(getGreeting("Meth Meth"))`

	var out bytes.Buffer
	if err := Run("greet.primer", src, Options{Stdout: &out}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, want := out.String(), "Hello, Meth Meth!\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestInvalidScriptDoesNotRun(t *testing.T) {
	src := `console.log("side effect")
const port = 3000
port = 4000`

	var out bytes.Buffer
	err := Run("const.primer", src, Options{Stdout: &out})
	var diags check.Diagnostics
	if !errors.As(err, &diags) {
		t.Fatalf("expected diagnostics, got %v", err)
	}
	if len(diags) != 1 || diags[0].Kind != check.KindScope {
		t.Errorf("diagnostics = %v", diags)
	}
	if out.Len() != 0 {
		t.Errorf("script ran: %q", out.String())
	}
	if want := "const.primer:3:1: scope error: cannot assign to 'port' because it is a constant"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestSyntaxError(t *testing.T) {
	_, err := Check("bad.primer", "let = 1", Options{})
	var se *parser.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *parser.SyntaxError, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "bad.primer:1:") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestOptions(t *testing.T) {
	absent := "let address: string | null\nconsole.log(address)"
	insert := "const user = { id: 1 }\nuser.address = \"India\"\nconsole.log(user.address)"

	tests := []struct {
		name    string
		src     string
		opts    Options
		want    string
		invalid bool
	}{
		{"absent read allowed", absent, Options{}, "undefined\n", false},
		{"absent read rejected when strict", absent, Options{StrictAssignment: true}, "", true},
		{"insertion rejected", insert, Options{}, "", true},
		{"insertion with extensible records", insert, Options{ExtensibleRecords: true}, "India\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			tt.opts.Stdout = &out
			err := Run("opts.primer", tt.src, tt.opts)
			var diags check.Diagnostics
			if got := errors.As(err, &diags); got != tt.invalid {
				t.Fatalf("invalid = %v, want %v (err: %v)", got, tt.invalid, err)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestRuntimeError(t *testing.T) {
	src := `const data: any = {}
console.log("start")
console.log(data.profile.name)
console.log("unreachable")`

	var out bytes.Buffer
	err := Run("any.primer", src, Options{Stdout: &out})
	var rerr *eval.RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *eval.RuntimeError, got %v", err)
	}
	if rerr.Code() != types.E_TYPE {
		t.Errorf("code = %s", rerr.Code())
	}
	if out.String() != "start\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestMaxTicks(t *testing.T) {
	src := `function count(n: number): number {
  return n === 0 ? 0 : count(n - 1)
}
count(200)`
	err := Run("ticks.primer", src, Options{MaxTicks: 100})
	var rerr *eval.RuntimeError
	if !errors.As(err, &rerr) || rerr.Code() != types.E_TICKS {
		t.Fatalf("expected a tick budget error, got %v", err)
	}

	err = Run("depth.primer", src, Options{MaxDepth: 50})
	if !errors.As(err, &rerr) || rerr.Code() != types.E_RANGE {
		t.Fatalf("expected a depth error, got %v", err)
	}

	if err := Run("ok.primer", src, Options{}); err != nil {
		t.Errorf("defaults: %v", err)
	}
}

func TestEvalValue(t *testing.T) {
	tests := []struct {
		src  string
		want types.Value
	}{
		{"10 === 10", types.NewBool(true)},
		{`10 === "10"`, types.NewBool(false)},
		{`null ?? "Guest"`, types.NewStr("Guest")},
		{`const user = { profile: { name: "Alex" } }
user?.profile?.name`, types.NewStr("Alex")},
		{`const empty: { profile?: { name: string } } = {}
empty?.profile?.name`, types.Undefined},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			v, err := Eval("<eval>", tt.src, Options{})
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}
			if !v.Equal(tt.want) {
				t.Errorf("got %v, want %v", v, tt.want)
			}
		})
	}
}

func TestSession(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(Options{Stdout: &out})

	steps := []struct {
		src     string
		want    types.Value
		wantErr bool
	}{
		{src: "let counter = 0", want: types.Undefined},
		{src: "counter += 1", want: types.NewNum(1)},
		{src: "const port = 3000", want: types.Undefined},
		{src: "port = 1", wantErr: true},
		{src: "let broken: number = 'x'", wantErr: true},
		// rolled back, so the name is free again
		{src: "let broken = 2", want: types.Undefined},
		{src: "function double(n: number): number { return n * 2 }", want: types.Undefined},
		{src: "double(counter + broken)", want: types.NewNum(6)},
		{src: "console.log(port)", want: types.Undefined},
	}

	for _, step := range steps {
		v, err := s.Eval(step.src)
		if step.wantErr {
			if err == nil {
				t.Errorf("%q: expected an error", step.src)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", step.src, err)
		}
		if !v.Equal(step.want) {
			t.Errorf("%q = %v, want %v", step.src, v, step.want)
		}
	}

	if out.String() != "3000\n" {
		t.Errorf("output = %q", out.String())
	}

	names := strings.Join(s.Names(), ",")
	for _, name := range []string{"broken", "counter", "double", "port", "console"} {
		if !strings.Contains(names, name) {
			t.Errorf("Names() = %s, missing %s", names, name)
		}
	}
}

func TestSessionRejectedEntryLeavesNoTrace(t *testing.T) {
	s := NewSession(Options{StrictAssignment: true, ExtensibleRecords: true})

	for _, src := range []string{"let a: string", "const user = { id: 1 }"} {
		if _, err := s.Eval(src); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
	for _, src := range []string{"a = \"x\"\nnope", "user.address = \"India\"\nnope"} {
		if _, err := s.Eval(src); err == nil {
			t.Fatalf("%q: expected an error", src)
		}
	}

	tests := []struct {
		src string
		msg string
	}{
		{"a.length", "variable 'a' is used before being assigned"},
		{"user.address", "property 'address' does not exist on type '{ id: number }'"},
	}
	for _, tt := range tests {
		_, err := s.Eval(tt.src)
		var diags check.Diagnostics
		if !errors.As(err, &diags) || len(diags) != 1 || diags[0].Message != tt.msg {
			t.Errorf("%q: err = %v, want diagnostic %q", tt.src, err, tt.msg)
		}
	}

	if _, err := s.Eval("a = \"xy\""); err != nil {
		t.Fatal(err)
	}
	v, err := s.Eval("a.length")
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(types.NewNum(2)) {
		t.Errorf("a.length = %v, want 2", v)
	}
}
