package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeScript(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunCommand(t *testing.T) {
	ok := writeScript(t, "ok.primer", "const sum = 10 + 5\nconsole.log(sum)\n")
	invalid := writeScript(t, "const.primer", "const port = 3000\nconsole.log(port)\nport = 4000\n")
	failing := writeScript(t, "fail.primer", "function show(u) {\n  return u.name\n}\nconsole.log(\"start\")\nshow(undefined)\n")

	tests := []struct {
		name       string
		args       []string
		code       int
		stdout     string
		stderrHave []string
	}{
		{"valid script", []string{"run", ok}, 0, "15\n", nil},
		{"invalid script does not run", []string{"-color=never", "run", invalid}, 1, "",
			[]string{"const.primer:3:1: scope error: cannot assign to 'port' because it is a constant"}},
		{"runtime error", []string{"-color=never", "run", failing}, 1, "start\n",
			[]string{
				"fail.primer:2:12: TypeError: Cannot read properties of undefined (reading 'name')",
				"    at show (line 2)",
				"    at <script> (line 5)",
			}},
		{"missing file", []string{"run", filepath.Join(t.TempDir(), "nope.primer")}, 1, "", []string{"nope.primer"}},
		{"missing file does not stop the rest", []string{"run", filepath.Join(t.TempDir(), "nope.primer"), ok}, 1, "15\n", []string{"nope.primer"}},
		{"no files", []string{"run"}, 2, "", []string{"usage: primer run"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(tt.args...)
			if code != tt.code {
				t.Errorf("exit code = %d, want %d\nstderr: %s", code, tt.code, stderr)
			}
			if stdout != tt.stdout {
				t.Errorf("stdout = %q, want %q", stdout, tt.stdout)
			}
			for _, want := range tt.stderrHave {
				if !strings.Contains(stderr, want) {
					t.Errorf("stderr missing %q:\n%s", want, stderr)
				}
			}
		})
	}
}

func TestCheckCommand(t *testing.T) {
	ok := writeScript(t, "ok.primer", "let x: number = 1\nx = 2\n")
	bad := writeScript(t, "bad.primer", "let x: number = 1\nx = \"two\"\nconst y = 1\ny = 2\n")

	code, stdout, stderr := runCLI("check", ok)
	if code != 0 || stdout != "" || stderr != "" {
		t.Errorf("check ok = %d, %q, %q", code, stdout, stderr)
	}

	missing := filepath.Join(t.TempDir(), "nope.primer")
	code, _, stderr = runCLI("-color=never", "check", missing, bad)
	if code != 1 || !strings.Contains(stderr, "nope.primer") || !strings.Contains(stderr, "bad.primer:2:") {
		t.Errorf("check past a missing file = %d, stderr:\n%s", code, stderr)
	}

	code, _, stderr = runCLI("-color=never", "check", bad)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	if len(lines) != 2 {
		t.Fatalf("want one line per diagnostic, got:\n%s", stderr)
	}
	for i, want := range []string{"bad.primer:2:", "bad.primer:4:"} {
		if !strings.Contains(lines[i], want) {
			t.Errorf("line %d = %q, want it to contain %q", i, lines[i], want)
		}
	}
}

func TestEvalCommand(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"10 + 5", "15\n"},
		{`"a" + 1`, "a1\n"},
		{"10 === \"10\"", "false\n"},
		{"null ?? \"Guest\"", "Guest\n"},
		{`({ profile: { name: "Alex" } })`, "{ profile: { name: 'Alex' } }\n"},
		{"typeof undefined", "undefined\n"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			code, stdout, stderr := runCLI("eval", tt.expr)
			if code != 0 {
				t.Fatalf("exit code %d: %s", code, stderr)
			}
			if stdout != tt.want {
				t.Errorf("eval %s = %q, want %q", tt.expr, stdout, tt.want)
			}
		})
	}
}

func TestLessonCommand(t *testing.T) {
	code, stdout, stderr := runCLI("lesson", "primitives")
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Doing the addition of 60 and 9 = 69\n") {
		t.Errorf("unexpected output:\n%s", stdout)
	}

	code, _, stderr = runCLI("-strict", "-color=never", "lesson", "2")
	if code != 1 || !strings.Contains(stderr, "primitives.primer:19:") {
		t.Errorf("strict lesson = %d, stderr:\n%s", code, stderr)
	}

	code, stdout, _ = runCLI("lesson")
	if code != 0 {
		t.Fatalf("all lessons exit code %d", code)
	}
	if !strings.HasPrefix(stdout, "== 01 let vs const ==\n90\n") {
		t.Errorf("all lessons output starts:\n%s", stdout)
	}

	if code, _, _ := runCLI("lesson", "loops"); code != 2 {
		t.Errorf("unknown lesson exit code = %d, want 2", code)
	}
}

func TestLessonsCommand(t *testing.T) {
	_, stdout, _ := runCLI("lessons")
	want := []string{
		"01  let-vs-const   let vs const",
		"02  primitives     primitives, null vs undefined, return types",
	}
	if diff := cmp.Diff(want, strings.Split(strings.TrimSpace(stdout), "\n")); diff != "" {
		t.Errorf("lessons mismatch (-want +got):\n%s", diff)
	}
}

func TestTraceFlag(t *testing.T) {
	code, _, stderr := runCLI("-trace", "-trace-filter", "add", "lesson", "primitives")
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(stderr, "[TRACE] CALL add(60, 9)") {
		t.Errorf("trace missing call:\n%s", stderr)
	}
	if strings.Contains(stderr, "multiply") {
		t.Errorf("filter let other functions through:\n%s", stderr)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := [][]string{
		{},
		{"frobnicate"},
		{"-color=sometimes", "lessons"},
		{"-no-such-flag", "lessons"},
		{"eval"},
	}
	for _, args := range tests {
		if code, _, _ := runCLI(args...); code != 2 {
			t.Errorf("primer %v exit code = %d, want 2", args, code)
		}
	}
}

func TestColor(t *testing.T) {
	bad := writeScript(t, "bad.primer", "const a = 1\na = 2\n")
	_, _, stderr := runCLI("-color=always", "check", bad)
	if !strings.Contains(stderr, "\x1b[31m") {
		t.Errorf("expected colour codes in %q", stderr)
	}
	_, _, stderr = runCLI("-color=auto", "check", bad)
	if strings.Contains(stderr, "\x1b[") {
		t.Errorf("auto colour on a buffer should be off: %q", stderr)
	}
}

func TestComplete(t *testing.T) {
	names := []string{"console", "counter", "user"}
	tests := []struct {
		line string
		want []string
	}{
		{"co", []string{"console", "const", "counter"}},
		{"console.log(us", []string{"console.log(user"}},
		{"let x = ty", []string{"let x = typeof"}},
		{"x + ", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, complete(tt.line, names)); diff != "" {
			t.Errorf("complete(%q) mismatch (-want +got):\n%s", tt.line, diff)
		}
	}
}
