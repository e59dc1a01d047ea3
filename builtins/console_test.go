package builtins

import (
	"bytes"
	"testing"

	"primer/types"
)

func callLog(t *testing.T, args ...types.Value) string {
	t.Helper()
	var buf bytes.Buffer
	r := NewRegistry(&buf)
	console, ok := r.Get("console")
	if !ok {
		t.Fatal("console is not registered")
	}
	log, ok := console.(*types.RecordValue).Get("log")
	if !ok {
		t.Fatal("console.log is not registered")
	}
	result := log.(*types.BuiltinValue).Fn(types.NewTaskContext(), args)
	if !result.IsNormal() {
		t.Fatalf("console.log failed: %v", result.Exc)
	}
	if !result.Val.Equal(types.Undefined) {
		t.Errorf("console.log returned %v, want undefined", result.Val)
	}
	return buf.String()
}

func TestConsoleLog(t *testing.T) {
	user := types.NewRecord()
	user.Set("id", types.NewNum(1))
	user.Set("name", types.NewStr("Admin"))

	tests := []struct {
		name string
		args []types.Value
		want string
	}{
		{"no arguments", nil, "\n"},
		{"raw string", []types.Value{types.NewStr("Guest")}, "Guest\n"},
		{"number", []types.Value{types.NewNum(69)}, "69\n"},
		{"several", []types.Value{types.NewStr("Log:"), types.NewStr("hi")}, "Log: hi\n"},
		{"absent and empty", []types.Value{types.Undefined, types.Null}, "undefined null\n"},
		{"boolean", []types.Value{types.NewBool(true)}, "true\n"},
		{"record", []types.Value{user}, "{ id: 1, name: 'Admin' }\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := callLog(t, tt.args...); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry(nil)
	got := r.Names()
	want := []string{"Infinity", "Math", "NaN", "Number", "String", "console", "isNaN"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
