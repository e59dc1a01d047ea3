package eval

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"primer/parser"
	"primer/trace"
	"primer/types"
)

func TestEvalPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "records and counters",
			src: `const port = 3000
const user = { id: 1, name: "Omkar", weight: 90 }
console.log(user.weight)
user.name = "Admin"
user.weight = 80
user.address = "India"
console.log(` + "`Username is ${user.name} and the id is ${user.id} and weight is ${user.weight}, address ${user.address}`" + `)
let counter = 0
counter = counter + 1
console.log(counter)
counter += 1
console.log(counter)`,
			want: "90\nUsername is Admin and the id is 1 and weight is 80, address India\n1\n2\n",
		},
		{
			name: "typed functions",
			src: `function add(a: number, b: number): number {
  let c = a + b
  return c
}
const multiply = (x: number, y: number): number => {
  return x * y
}
console.log(` + "`Doing the addition of 60 and 9 = ${add(60, 9)}`" + `)
console.log(multiply(23, 3))`,
			want: "Doing the addition of 60 and 9 = 69\n69\n",
		},
		{
			name: "absent and empty",
			src: `let token: string | undefined
let email: string | null = null
console.log(` + "`token: ${token}`" + `)
console.log(token, email)
console.log(token === undefined, email === null, token === email)`,
			want: "token: undefined\nundefined null\ntrue true false\n",
		},
		{
			name: "hoisted function",
			src: `console.log(double(21))
function double(n: number): number {
  return n * 2
}`,
			want: "42\n",
		},
		{
			name: "closures keep their scope",
			src: `function makeCounter() {
  let count = 0
  return () => {
    count += 1
    return count
  }
}
const next = makeCounter()
next()
console.log(next())
const other = makeCounter()
console.log(other())`,
			want: "2\n1\n",
		},
		{
			name: "recursion",
			src: `function fact(n: number): number {
  if (n <= 1) {
    return 1
  }
  return n * fact(n - 1)
}
console.log(fact(5))`,
			want: "120\n",
		},
		{
			name: "named function expression",
			src: `const f = function fib(n) {
  return n < 2 ? n : fib(n - 1) + fib(n - 2)
}
console.log(f(10))`,
			want: "55\n",
		},
		{
			name: "block scope shadows",
			src: `let x = 1
{
  let x = 2
  console.log(x)
}
if (true) {
  const x = 10
  let y = 20
  console.log(x + y)
}
console.log(x)`,
			want: "2\n30\n1\n",
		},
		{
			name: "else if chain",
			src: `function sign(n: number): string {
  if (n > 0) {
    return "positive"
  } else if (n < 0) {
    return "negative"
  } else {
    return "zero"
  }
}
console.log(sign(3), sign(-3), sign(0))`,
			want: "positive negative zero\n",
		},
		{
			name: "missing return and missing arguments",
			src: `function nothing() {}
function second(a, b) {
  return b
}
console.log(nothing(), second(1))`,
			want: "undefined undefined\n",
		},
		{
			name: "records are shared by reference",
			src: `const a = { n: 1 }
const b = a
b.n = 2
console.log(a.n, a === b, a === { n: 2 })`,
			want: "2 true false\n",
		},
		{
			name: "inspecting values",
			src: `console.log({ id: 1, name: "Admin", tags: { admin: true } })
console.log({})
console.log("Log:", "message")
const greet = () => "hi"
console.log(greet, function () {})`,
			want: "{ id: 1, name: 'Admin', tags: { admin: true } }\n{}\nLog: message\n[Function: greet] [Function (anonymous)]\n",
		},
		{
			name: "statements stop at return",
			src: `function early(): string {
  return "early"
  console.log("unreachable")
}
console.log(early())`,
			want: "early\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != tt.want {
				t.Errorf("output:\n%s\nwant:\n%s", out, tt.want)
			}
		})
	}
}

func TestRunReturnsLastValue(t *testing.T) {
	tests := []struct {
		src  string
		want types.Value
	}{
		{"1 + 2", types.NewNum(3)},
		{"let x = 5\nx * 2", types.NewNum(10)},
		{"let x = 5", types.Undefined},
		{`console.log("hi")`, types.Undefined},
		{"", types.Undefined},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, v, err := run(t, tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !v.Equal(tt.want) {
				t.Errorf("got %v, want %v", v, tt.want)
			}
		})
	}
}

func TestGlobalsPersistAcrossRuns(t *testing.T) {
	ev := NewEvaluator(io.Discard)
	ctx := types.NewTaskContext()
	for _, src := range []string{"let total = 1", "function bump() { total += 1 }", "bump()"} {
		program, err := parser.NewParser(src).ParseProgram()
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if _, err := ev.Run(program, ctx); err != nil {
			t.Fatalf("%s: %v", src, err)
		}
	}
	v, ok := ev.GetEnvironment().Get("total")
	if !ok || !v.Equal(types.NewNum(2)) {
		t.Errorf("total = %v, want 2", v)
	}
}

func TestEnvironmentNames(t *testing.T) {
	ev := NewEvaluator(io.Discard)
	names := ev.GetEnvironment().Names()
	want := []string{"Infinity", "Math", "NaN", "Number", "String", "console", "isNaN"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", names, want)
	}
}

func TestTraceCallsAndReturns(t *testing.T) {
	var buf bytes.Buffer
	trace.Init(true, []string{"add"}, &buf)
	defer trace.Init(false, nil, nil)

	src := `function add(a: number, b: number): number {
  return a + b
}
add(60, 9)`
	if _, _, err := run(t, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "[TRACE] CALL add(60, 9)\n" +
		"[TRACE] STMT add:2 return a + b\n" +
		"[TRACE] RETURN add => 69\n"
	if got := buf.String(); got != want {
		t.Errorf("trace:\n%s\nwant:\n%s", got, want)
	}
}
