package builtins

import (
	"math"
	"testing"

	"primer/types"
)

func call(t *testing.T, v types.Value, args ...types.Value) types.Value {
	t.Helper()
	fn, ok := v.(*types.BuiltinValue)
	if !ok {
		t.Fatalf("%v is not a builtin", v)
	}
	result := fn.Fn(types.NewTaskContext(), args)
	if !result.IsNormal() {
		t.Fatalf("%s failed: %v", fn.Name, result.Exc)
	}
	return result.Val
}

func num(f float64) types.Value { return types.NewNum(f) }

func TestMath(t *testing.T) {
	m := newMath()
	tests := []struct {
		fn   string
		args []types.Value
		want float64
	}{
		{"abs", []types.Value{num(-3)}, 3},
		{"ceil", []types.Value{num(1.2)}, 2},
		{"floor", []types.Value{num(-1.2)}, -2},
		{"trunc", []types.Value{num(-1.7)}, -1},
		{"round", []types.Value{num(2.5)}, 3},
		{"round", []types.Value{num(-2.5)}, -2},
		{"sqrt", []types.Value{num(81)}, 9},
		{"pow", []types.Value{num(2), num(10)}, 1024},
		{"min", []types.Value{num(3), num(1), num(2)}, 1},
		{"max", []types.Value{num(3), num(1), num(2)}, 3},
		{"max", []types.Value{types.NewStr("7"), num(1)}, 7},
		{"min", nil, math.Inf(1)},
		{"max", nil, math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.fn, func(t *testing.T) {
			fn, _ := m.Get(tt.fn)
			got := call(t, fn, tt.args...)
			if !got.Equal(num(tt.want)) {
				t.Errorf("Math.%s(%v) = %v, want %v", tt.fn, tt.args, got, tt.want)
			}
		})
	}
}

func TestMathNaN(t *testing.T) {
	m := newMath()
	tests := []struct {
		fn   string
		args []types.Value
	}{
		{"abs", nil},
		{"sqrt", []types.Value{num(-1)}},
		{"floor", []types.Value{types.NewStr("abc")}},
		{"max", []types.Value{num(1), types.Undefined}},
	}
	for _, tt := range tests {
		fn, _ := m.Get(tt.fn)
		got := call(t, fn, tt.args...)
		if n, ok := got.(types.NumValue); !ok || !n.IsNaN() {
			t.Errorf("Math.%s(%v) = %v, want NaN", tt.fn, tt.args, got)
		}
	}
}

func TestMathRandom(t *testing.T) {
	fn, _ := newMath().Get("random")
	for i := 0; i < 100; i++ {
		n := call(t, fn).(types.NumValue).Val
		if n < 0 || n >= 1 {
			t.Fatalf("Math.random() = %v, want [0, 1)", n)
		}
	}
}

func TestConversions(t *testing.T) {
	r := NewRegistry(nil)
	str, _ := r.Get("String")
	number, _ := r.Get("Number")
	isNaN, _ := r.Get("isNaN")

	tests := []struct {
		name string
		fn   types.Value
		args []types.Value
		want types.Value
	}{
		{"String number", str, []types.Value{num(69)}, types.NewStr("69")},
		{"String null", str, []types.Value{types.Null}, types.NewStr("null")},
		{"String undefined", str, []types.Value{types.Undefined}, types.NewStr("undefined")},
		{"String no args", str, nil, types.NewStr("")},
		{"Number text", number, []types.Value{types.NewStr("42")}, num(42)},
		{"Number bool", number, []types.Value{types.NewBool(true)}, num(1)},
		{"Number no args", number, nil, num(0)},
		{"isNaN text", isNaN, []types.Value{types.NewStr("abc")}, types.NewBool(true)},
		{"isNaN numeric text", isNaN, []types.Value{types.NewStr("12")}, types.NewBool(false)},
		{"isNaN undefined", isNaN, []types.Value{types.Undefined}, types.NewBool(true)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := call(t, tt.fn, tt.args...); !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
